package auth

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"ayura/internal/infrastructure/config"
	"ayura/internal/infrastructure/storage"
	"ayura/internal/pkg/common"
)

type AuthServiceSuite struct {
	suite.Suite
	ctx   context.Context
	store *storage.MemoryStore
	svc   *Service
}

func (s *AuthServiceSuite) SetupTest() {
	s.ctx = context.Background()
	s.store = storage.NewMemoryStore()
	s.svc = NewService(s.store, NewTokenManager("test-secret", time.Hour), config.AuthConfig{BcryptCost: 4})
}

func patient() SignupRequest {
	return SignupRequest{Name: "Asha", Email: "Asha@Example.com ", Password: "secret1", Role: "patient"}
}

func (s *AuthServiceSuite) TestSignupAndLogin() {
	res, err := s.svc.Signup(s.ctx, patient())
	s.Require().NoError(err)
	s.NotEmpty(res.Token)
	s.Equal("asha@example.com", res.User.Email)
	s.NotEqual("secret1", res.User.PasswordHash)
	s.Nil(res.User.Doctor)

	claims, err := s.svc.Tokens().Parse(res.Token)
	s.Require().NoError(err)
	s.Equal(res.User.ID, claims.UserID)
	s.Equal(common.RolePatient, claims.Role)

	login, err := s.svc.Login(s.ctx, "ASHA@example.com", "secret1")
	s.Require().NoError(err)
	s.Equal(res.User.ID, login.User.ID)
}

func (s *AuthServiceSuite) TestSignupDuplicateEmail() {
	_, err := s.svc.Signup(s.ctx, patient())
	s.Require().NoError(err)

	_, err = s.svc.Signup(s.ctx, patient())
	s.ErrorIs(err, common.ErrConflict)
}

func (s *AuthServiceSuite) TestSignupValidation() {
	tests := []struct {
		name   string
		mutate func(*SignupRequest)
	}{
		{"missing name", func(r *SignupRequest) { r.Name = " " }},
		{"bad email", func(r *SignupRequest) { r.Email = "not-an-email" }},
		{"email without tld", func(r *SignupRequest) { r.Email = "a@b" }},
		{"short password", func(r *SignupRequest) { r.Password = "12345" }},
		{"password over 72 bytes", func(r *SignupRequest) { r.Password = strings.Repeat("p", 80) }},
		{"unknown role", func(r *SignupRequest) { r.Role = "admin" }},
		{"doctor without details", func(r *SignupRequest) { r.Role = "doctor" }},
		{"doctor missing clinic", func(r *SignupRequest) {
			r.Role = "doctor"
			r.Doctor = &common.DoctorDetails{LicenseNumber: "L1", Specialization: "Ayurveda", Experience: "5", Phone: "123", Location: "Pune"}
		}},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			req := patient()
			tt.mutate(&req)
			_, err := s.svc.Signup(s.ctx, req)
			s.ErrorIs(err, common.ErrInvalidInput)
		})
	}
}

func (s *AuthServiceSuite) TestDoctorSignupIsPending() {
	req := patient()
	req.Role = "doctor"
	req.Doctor = &common.DoctorDetails{
		LicenseNumber: "L1", Specialization: "Ayurveda", Experience: "5",
		Phone: "123", Clinic: "Veda", Location: "Pune", VerificationStatus: "verified",
	}

	res, err := s.svc.Signup(s.ctx, req)
	s.Require().NoError(err)
	s.Require().NotNil(res.User.Doctor)
	s.Equal("pending", res.User.Doctor.VerificationStatus)
}

func (s *AuthServiceSuite) TestSignupLongPasswordStatus() {
	req := patient()
	req.Password = strings.Repeat("p", 80)

	_, err := s.svc.Signup(s.ctx, req)
	ce := common.AsCustomError(err)
	s.Equal(common.ErrCodeInvalidInput, ce.Code)
	s.Equal(400, ce.Status)

	req.Password = strings.Repeat("p", 72)
	_, err = s.svc.Signup(s.ctx, req)
	s.NoError(err)
}

func (s *AuthServiceSuite) TestLoginFailures() {
	_, err := s.svc.Signup(s.ctx, patient())
	s.Require().NoError(err)

	_, err = s.svc.Login(s.ctx, "asha@example.com", "wrong-password")
	s.ErrorIs(err, common.ErrUnauthorized)

	_, err = s.svc.Login(s.ctx, "nobody@example.com", "secret1")
	s.ErrorIs(err, common.ErrUnauthorized)

	_, err = s.svc.Login(s.ctx, "", "")
	s.ErrorIs(err, common.ErrInvalidInput)
}

func TestAuthServiceSuite(t *testing.T) {
	suite.Run(t, new(AuthServiceSuite))
}

func TestTokenManager(t *testing.T) {
	m := NewTokenManager("secret", time.Hour)

	token, err := m.Issue("u1", common.RoleDoctor)
	require.NoError(t, err)

	claims, err := m.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.UserID)
	assert.Equal(t, common.RoleDoctor, claims.Role)

	_, err = NewTokenManager("other-secret", time.Hour).Parse(token)
	assert.ErrorIs(t, err, common.ErrUnauthorized)

	_, err = m.Parse("")
	assert.ErrorIs(t, err, common.ErrUnauthorized)

	_, err = m.Parse("not.a.token")
	assert.ErrorIs(t, err, common.ErrUnauthorized)
}

func TestTokenManagerExpiry(t *testing.T) {
	m := NewTokenManager("secret", time.Minute)
	issued := time.Now()
	m.now = func() time.Time { return issued }

	token, err := m.Issue("u1", common.RolePatient)
	require.NoError(t, err)

	m.now = func() time.Time { return issued.Add(2 * time.Minute) }
	_, err = m.Parse(token)
	require.ErrorIs(t, err, common.ErrUnauthorized)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestTokenManagerRejectsNoneAlgorithm(t *testing.T) {
	token := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{
		UserID:           "u1",
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))},
	})
	signed, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = NewTokenManager("secret", time.Hour).Parse(signed)
	assert.ErrorIs(t, err, common.ErrUnauthorized)
}
