package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/talentbridge/backend/internal/domain"
	"github.com/talentbridge/backend/internal/dto"
)

// stubAuthService returns canned results per operation.
type stubAuthService struct {
	registerErr error
	verifyErr   error
	loginResp   *dto.LoginResponse
	loginErr    error
	refreshErr  error
}

func (s *stubAuthService) Register(context.Context, *dto.RegisterRequest) (*dto.RegisterResponse, error) {
	if s.registerErr != nil {
		return nil, s.registerErr
	}
	return &dto.RegisterResponse{Token: "signed-token"}, nil
}

func (s *stubAuthService) VerifyAccount(context.Context, string, string) error {
	return s.verifyErr
}

func (s *stubAuthService) Login(context.Context, *dto.LoginRequest) (*dto.LoginResponse, error) {
	return s.loginResp, s.loginErr
}

func (s *stubAuthService) ForgotPassword(context.Context, string) error { return nil }

func (s *stubAuthService) ResetPassword(context.Context, *dto.ResetPasswordRequest, string) error {
	return nil
}

func (s *stubAuthService) ResendCode(context.Context, string) (*dto.RegisterResponse, error) {
	return &dto.RegisterResponse{Token: "signed-token"}, nil
}

func (s *stubAuthService) RefreshToken(context.Context, string) (*dto.RefreshTokenResponse, error) {
	if s.refreshErr != nil {
		return nil, s.refreshErr
	}
	return &dto.RefreshTokenResponse{AccessToken: "new-access"}, nil
}

func authRouter(svc *stubAuthService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewAuthHandler(svc)
	r := gin.New()
	auth := r.Group("/api/v1/auth")
	auth.POST("/register", h.Register)
	auth.POST("/verify-account", h.VerifyAccount)
	auth.POST("/login", h.Login)
	auth.POST("/refresh-token", h.RefreshToken)
	return r
}

func postJSON(r *gin.Engine, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

const validRegisterBody = `{
	"name": "Jane Doe",
	"email": "jane@example.com",
	"password": "Password1!",
	"confirmPassword": "Password1!",
	"role": "TRAINEE"
}`

func TestRegisterHandler(t *testing.T) {
	t.Run("returns 201 with the token", func(t *testing.T) {
		w := postJSON(authRouter(&stubAuthService{}), "/api/v1/auth/register", validRegisterBody)
		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Contains(t, w.Body.String(), "signed-token")
		assert.Contains(t, w.Body.String(), "Account registered successfully")
	})

	t.Run("rejects an invalid payload before the service", func(t *testing.T) {
		body := strings.Replace(validRegisterBody, "Password1!", "weak", 2)
		w := postJSON(authRouter(&stubAuthService{registerErr: domain.Internal("boom", nil)}),
			"/api/v1/auth/register", body)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "VALIDATION_ERROR")
	})

	t.Run("maps a conflict to 409", func(t *testing.T) {
		svc := &stubAuthService{registerErr: domain.Conflict("Email already exist, please login")}
		w := postJSON(authRouter(svc), "/api/v1/auth/register", validRegisterBody)
		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Contains(t, w.Body.String(), "CONFLICT")
	})
}

func TestVerifyAccountHandler(t *testing.T) {
	t.Run("returns 200 on success", func(t *testing.T) {
		w := postJSON(authRouter(&stubAuthService{}),
			"/api/v1/auth/verify-account?token=abc", `{"code":"123456"}`)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Account verified successfully")
	})

	t.Run("maps a bad code to 400", func(t *testing.T) {
		svc := &stubAuthService{verifyErr: domain.BadRequest("Invalid verification code")}
		w := postJSON(authRouter(svc), "/api/v1/auth/verify-account?token=abc", `{"code":"999999"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "Invalid verification code")
	})
}

func TestLoginHandler(t *testing.T) {
	t.Run("returns tokens without the password hash", func(t *testing.T) {
		svc := &stubAuthService{loginResp: &dto.LoginResponse{
			User:  domain.PublicUser{ID: "u1", Email: "jane@example.com", Role: domain.RoleTrainee},
			Token: dto.TokenPair{AccessToken: "at", RefreshToken: "rt"},
		}}
		w := postJSON(authRouter(svc), "/api/v1/auth/login",
			`{"email":"jane@example.com","password":"Password1!"}`)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "accessToken")
		assert.NotContains(t, w.Body.String(), "passwordHash")
	})

	t.Run("maps an unverified account to 401", func(t *testing.T) {
		svc := &stubAuthService{loginErr: domain.Unauthorized("Please verify your account before you can login")}
		w := postJSON(authRouter(svc), "/api/v1/auth/login",
			`{"email":"jane@example.com","password":"Password1!"}`)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("hides internal causes behind the generic message", func(t *testing.T) {
		svc := &stubAuthService{loginErr: domain.Internal("Something went wrong, try again later", errors.New("pg: connection refused"))}
		w := postJSON(authRouter(svc), "/api/v1/auth/login",
			`{"email":"jane@example.com","password":"Password1!"}`)
		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.NotContains(t, w.Body.String(), "connection refused")
	})
}

func TestRefreshTokenHandler(t *testing.T) {
	t.Run("returns a new access token", func(t *testing.T) {
		w := postJSON(authRouter(&stubAuthService{}), "/api/v1/auth/refresh-token",
			`{"refreshToken":"rt"}`)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "new-access")
	})

	t.Run("rejects a missing token at the binding layer", func(t *testing.T) {
		w := postJSON(authRouter(&stubAuthService{}), "/api/v1/auth/refresh-token", `{}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
