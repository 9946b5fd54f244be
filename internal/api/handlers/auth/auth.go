package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ayura/internal/api/handlers"
	authService "ayura/internal/core/auth"
	"ayura/internal/pkg/common"
)

// SignupRequest 註冊請求，醫師欄位只在 role=doctor 時使用
type SignupRequest struct {
	Name           string `json:"name"`
	Email          string `json:"email"`
	Password       string `json:"password"`
	Role           string `json:"role"`
	LicenseNumber  string `json:"licenseNumber"`
	Specialization string `json:"specialization"`
	Experience     string `json:"experience"`
	Phone          string `json:"phone"`
	Clinic         string `json:"clinic"`
	Location       string `json:"location"`
}

// LoginRequest 登入請求
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Response 認證成功回應
type Response struct {
	Success bool         `json:"success"`
	Token   string       `json:"token"`
	User    *common.User `json:"user"`
}

// Handler 認證處理器
type Handler struct {
	service *authService.Service
}

// NewHandler 創建認證處理器
func NewHandler(service *authService.Service) *Handler {
	return &Handler{service: service}
}

// HandleSignup POST /auth/signup
func (h *Handler) HandleSignup(c *gin.Context) {
	var req SignupRequest
	if !handlers.BindJSON(c, &req) {
		return
	}

	signup := authService.SignupRequest{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
	}
	if req.Role == common.RoleDoctor {
		signup.Doctor = &common.DoctorDetails{
			LicenseNumber:  req.LicenseNumber,
			Specialization: req.Specialization,
			Experience:     req.Experience,
			Phone:          req.Phone,
			Clinic:         req.Clinic,
			Location:       req.Location,
		}
	}

	result, err := h.service.Signup(c.Request.Context(), signup)
	if err != nil {
		handlers.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, Response{Success: true, Token: result.Token, User: result.User})
}

// HandleLogin POST /auth/login
func (h *Handler) HandleLogin(c *gin.Context) {
	var req LoginRequest
	if !handlers.BindJSON(c, &req) {
		return
	}
	if req.Email == "" || req.Password == "" {
		handlers.RespondError(c, common.InvalidInput("email and password are required"))
		return
	}

	result, err := h.service.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		handlers.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, Response{Success: true, Token: result.Token, User: result.User})
}
