package auth

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"ayura/internal/infrastructure/config"
	"ayura/internal/infrastructure/metrics"
	"ayura/internal/infrastructure/storage"
	"ayura/internal/pkg/common"
)

// 密碼長度限制，bcrypt 最多接受 72 位元組
const (
	MinPasswordLength = 6
	MaxPasswordLength = 72
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// SignupRequest 註冊資料
type SignupRequest struct {
	Name     string
	Email    string
	Password string
	Role     string
	// Doctor 醫師必填
	Doctor *common.DoctorDetails
}

// Result 登入或註冊結果
type Result struct {
	Token string       `json:"token"`
	User  *common.User `json:"user"`
}

// Service 認證服務
type Service struct {
	users      storage.UserRepository
	tokens     *TokenManager
	bcryptCost int
}

// NewService 創建認證服務
func NewService(users storage.UserRepository, tokens *TokenManager, cfg config.AuthConfig) *Service {
	cost := cfg.BcryptCost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	return &Service{
		users:      users,
		tokens:     tokens,
		bcryptCost: cost,
	}
}

// Tokens 回傳 token 管理器
func (s *Service) Tokens() *TokenManager {
	return s.tokens
}

func validateSignup(req *SignupRequest) error {
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	req.Role = strings.ToLower(strings.TrimSpace(req.Role))

	if req.Name == "" || req.Email == "" || req.Password == "" || req.Role == "" {
		return common.InvalidInput("name, email, password and role are required")
	}
	if !emailPattern.MatchString(req.Email) {
		return common.InvalidInput("invalid email format")
	}
	if len(req.Password) < MinPasswordLength {
		return common.InvalidInput("password must be at least 6 characters")
	}
	if len(req.Password) > MaxPasswordLength {
		return common.InvalidInput("password must be at most 72 bytes")
	}

	switch req.Role {
	case common.RolePatient:
		req.Doctor = nil
	case common.RoleDoctor:
		d := req.Doctor
		if d == nil || d.LicenseNumber == "" || d.Specialization == "" || d.Experience == "" ||
			d.Phone == "" || d.Clinic == "" || d.Location == "" {
			return common.InvalidInput("doctor registration requires license, specialization, experience, phone, clinic and location")
		}
	default:
		return common.InvalidInput("role must be patient or doctor")
	}
	return nil
}

// Signup 註冊新使用者
func (s *Service) Signup(ctx context.Context, req SignupRequest) (*Result, error) {
	if err := validateSignup(&req); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.bcryptCost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return nil, common.InvalidInput("password must be at most 72 bytes")
	}
	if err != nil {
		return nil, common.WrapError(common.ErrInternalError, "failed to hash password", err)
	}

	user := &common.User{
		ID:           common.GenerateUUID(),
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hash),
		Role:         req.Role,
		CreatedAt:    time.Now().UTC(),
	}
	if req.Role == common.RoleDoctor {
		doctor := *req.Doctor
		doctor.VerificationStatus = "pending"
		user.Doctor = &doctor
	}

	if err := s.users.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	token, err := s.tokens.Issue(user.ID, user.Role)
	if err != nil {
		return nil, err
	}

	metrics.UserRegistered(user.Role)
	common.LogInfo("user registered", zap.String("user_id", user.ID), zap.String("role", user.Role))
	return &Result{Token: token, User: user}, nil
}

// Login 以 email 與密碼登入
func (s *Service) Login(ctx context.Context, email, password string) (*Result, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, common.InvalidInput("email and password are required")
	}

	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.WrapError(common.ErrUnauthorized, "invalid credentials", nil)
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, common.WrapError(common.ErrUnauthorized, "invalid credentials", nil)
	}

	token, err := s.tokens.Issue(user.ID, user.Role)
	if err != nil {
		return nil, err
	}

	common.LogInfo("user logged in", zap.String("user_id", user.ID))
	return &Result{Token: token, User: user}, nil
}
