package dto

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/talentbridge/backend/internal/domain"
)

var (
	emailRe = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	nameRe  = regexp.MustCompile(`^[a-zA-Z]+(?: [a-zA-Z]+)*$`)
)

const (
	msgName     = "Name must contain only letters and single spaces between words"
	msgPassword = "Password must be at least 8 characters long, contain at least one uppercase letter, one lowercase letter, one number, and one special character"
)

// passwordOK enforces the platform password policy: >=8 chars with at least
// one lower, one upper, one digit and one special character.
func passwordOK(password string) bool {
	if len(password) < 8 {
		return false
	}
	var lower, upper, digit, special bool
	for _, r := range password {
		switch {
		case unicode.IsLower(r):
			lower = true
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsDigit(r):
			digit = true
		case strings.ContainsRune("@$!%*?&#^()[]{}_+-=.,:;", r):
			special = true
		}
	}
	return lower && upper && digit && special
}

// RegisterRequest is the registration payload.
type RegisterRequest struct {
	Name            string      `json:"name" binding:"required"`
	Email           string      `json:"email" binding:"required"`
	Password        string      `json:"password" binding:"required"`
	ConfirmPassword string      `json:"confirmPassword" binding:"required"`
	Role            domain.Role `json:"role" binding:"required"`
}

// Validate checks the payload at the input boundary so invalid shapes never
// reach the service layer.
func (r *RegisterRequest) Validate() (bool, string) {
	if len(r.Name) < 2 || !nameRe.MatchString(r.Name) {
		return false, msgName
	}
	if !emailRe.MatchString(r.Email) {
		return false, "Invalid email format"
	}
	if !passwordOK(r.Password) {
		return false, msgPassword
	}
	if r.Password != r.ConfirmPassword {
		return false, "Confirm password must match password"
	}
	if !r.Role.IsValid() {
		return false, "Role must be one of: TRAINEE, EMPLOYER, ORGANIZATION, ADMIN"
	}
	return true, ""
}

// RegisterResponse returns the signed verification token so the client-side
// "enter your code" flow can resubmit it without a server-side lookup.
type RegisterResponse struct {
	Token string `json:"token"`
}

// LoginRequest is the login payload.
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Validate checks email shape only; password content is never policed at login.
func (r *LoginRequest) Validate() (bool, string) {
	if !emailRe.MatchString(r.Email) {
		return false, "Invalid email format"
	}
	return true, ""
}

// TokenPair carries the credentials returned by a successful login.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// LoginResponse is the login result: a public user projection plus tokens.
// The password hash is never part of it.
type LoginResponse struct {
	User  domain.PublicUser `json:"user"`
	Token TokenPair         `json:"token"`
}

// VerifyAccountRequest carries the code the user typed; the token arrives as
// a query parameter.
type VerifyAccountRequest struct {
	Code string `json:"code"`
}

// EmailRequest is shared by forgot-password and resend-code.
type EmailRequest struct {
	Email string `json:"email" binding:"required"`
}

func (r *EmailRequest) Validate() (bool, string) {
	if !emailRe.MatchString(r.Email) {
		return false, "Invalid email format"
	}
	return true, ""
}

// ResetPasswordRequest is the reset payload; the token arrives as a query
// parameter.
type ResetPasswordRequest struct {
	NewPassword     string `json:"newPassword" binding:"required"`
	ConfirmPassword string `json:"confirmPassword" binding:"required"`
}

// Validate rejects weak or mismatched passwords before the token or store
// layers are touched.
func (r *ResetPasswordRequest) Validate() (bool, string) {
	if !passwordOK(r.NewPassword) {
		return false, msgPassword
	}
	if r.NewPassword != r.ConfirmPassword {
		return false, "Confirm password must match new password"
	}
	return true, ""
}

// RefreshTokenRequest carries the long-lived refresh token.
type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// RefreshTokenResponse returns the renewed access token only; refresh tokens
// are not rotated.
type RefreshTokenResponse struct {
	AccessToken string `json:"accessToken"`
}
