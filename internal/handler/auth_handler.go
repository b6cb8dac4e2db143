package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/talentbridge/backend/internal/domain"
	"github.com/talentbridge/backend/internal/dto"
	"github.com/talentbridge/backend/internal/service"
	"github.com/talentbridge/backend/pkg/response"
)

// AuthHandler handles the authentication HTTP surface.
type AuthHandler struct {
	authService service.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

func writeDomainError(c *gin.Context, err error) {
	response.Error(c, domain.HTTPStatus(err), domain.Code(err), domain.MessageOf(err), "")
}

// Register handles user registration.
// POST /api/v1/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	if ok, msg := req.Validate(); !ok {
		response.Error(c, 400, "VALIDATION_ERROR", msg, "")
		return
	}

	result, err := h.authService.Register(c.Request.Context(), &req)
	if err != nil {
		writeDomainError(c, err)
		return
	}

	response.Created(c, "Account registered successfully", result)
}

// VerifyAccount flips an account to VERIFIED. The token comes from the query
// string, the code from the body.
// POST /api/v1/auth/verify-account?token=...
func (h *AuthHandler) VerifyAccount(c *gin.Context) {
	var req dto.VerifyAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	if err := h.authService.VerifyAccount(c.Request.Context(), req.Code, c.Query("token")); err != nil {
		writeDomainError(c, err)
		return
	}

	response.SuccessMessage(c, "Account verified successfully", nil)
}

// Login handles user login.
// POST /api/v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	if ok, msg := req.Validate(); !ok {
		response.Error(c, 400, "VALIDATION_ERROR", msg, "")
		return
	}

	result, err := h.authService.Login(c.Request.Context(), &req)
	if err != nil {
		writeDomainError(c, err)
		return
	}

	response.SuccessMessage(c, "Login successful", result)
}

// ForgotPassword emails a password reset link.
// POST /api/v1/auth/forgot-password
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req dto.EmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	if ok, msg := req.Validate(); !ok {
		response.Error(c, 400, "VALIDATION_ERROR", msg, "")
		return
	}

	if err := h.authService.ForgotPassword(c.Request.Context(), req.Email); err != nil {
		writeDomainError(c, err)
		return
	}

	response.SuccessMessage(c, "Password reset email sent", nil)
}

// ResetPassword replaces the password for the token's subject.
// POST /api/v1/auth/reset-password?token=...
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req dto.ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	if ok, msg := req.Validate(); !ok {
		response.Error(c, 400, "VALIDATION_ERROR", msg, "")
		return
	}

	if err := h.authService.ResetPassword(c.Request.Context(), &req, c.Query("token")); err != nil {
		writeDomainError(c, err)
		return
	}

	response.SuccessMessage(c, "Password reset successfully", nil)
}

// ResendCode issues and emails a fresh verification code.
// POST /api/v1/auth/resend-code
func (h *AuthHandler) ResendCode(c *gin.Context) {
	var req dto.EmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	if ok, msg := req.Validate(); !ok {
		response.Error(c, 400, "VALIDATION_ERROR", msg, "")
		return
	}

	result, err := h.authService.ResendCode(c.Request.Context(), req.Email)
	if err != nil {
		writeDomainError(c, err)
		return
	}

	response.SuccessMessage(c, "Verification code sent", result)
}

// ResendEmail re-sends the password reset link. It is a thin alias over the
// forgot-password flow for clients that expose a "didn't get it?" button.
// POST /api/v1/auth/resend-email
func (h *AuthHandler) ResendEmail(c *gin.Context) {
	var req dto.EmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	if ok, msg := req.Validate(); !ok {
		response.Error(c, 400, "VALIDATION_ERROR", msg, "")
		return
	}

	if err := h.authService.ForgotPassword(c.Request.Context(), req.Email); err != nil {
		writeDomainError(c, err)
		return
	}

	response.SuccessMessage(c, "Password reset email sent", nil)
}

// RefreshToken exchanges a refresh token for a new access token.
// POST /api/v1/auth/refresh-token
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	var req dto.RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Refresh token is required")
		return
	}

	result, err := h.authService.RefreshToken(c.Request.Context(), req.RefreshToken)
	if err != nil {
		writeDomainError(c, err)
		return
	}

	response.Success(c, result)
}
