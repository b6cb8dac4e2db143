package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"

	"github.com/talentbridge/backend/internal/domain"
	"github.com/talentbridge/backend/internal/dto"
	"github.com/talentbridge/backend/internal/mail"
	"github.com/talentbridge/backend/internal/repository"
	"github.com/talentbridge/backend/internal/security"
	"github.com/talentbridge/backend/internal/token"
	"github.com/talentbridge/backend/pkg/logger"
	"github.com/talentbridge/backend/pkg/telemetry"
)

const genericLoginError = "Invalid email or password"

// normalizeEmail applies the canonical form every email-keyed operation uses;
// the store compares case-insensitively, so trimming is what matters at login.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// AuthService orchestrates the credential lifecycle: registration, account
// verification, login, password reset, code resend and token refresh.
type AuthService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.RegisterResponse, error)
	VerifyAccount(ctx context.Context, code, tokenString string) error
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error)
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, req *dto.ResetPasswordRequest, tokenString string) error
	ResendCode(ctx context.Context, email string) (*dto.RegisterResponse, error)
	RefreshToken(ctx context.Context, refreshToken string) (*dto.RefreshTokenResponse, error)
}

type authService struct {
	users  repository.UserRepository
	tokens *token.Service
	mailer mail.Mailer
}

// NewAuthService wires the service from its collaborators. It holds a
// reference to the repository interface; it never embeds persistence.
func NewAuthService(users repository.UserRepository, tokens *token.Service, mailer mail.Mailer) AuthService {
	return &authService{users: users, tokens: tokens, mailer: mailer}
}

// Register creates an UNVERIFIED user and returns a signed verification token
// whose payload carries the emailed 6-digit code.
func (s *authService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.RegisterResponse, error) {
	ctx, span := telemetry.StartSpan(ctx, "service.auth.register")
	defer span.End()

	email := normalizeEmail(req.Email)
	span.SetAttributes(attribute.String("email", email))

	exists, err := s.users.ExistsByEmail(ctx, email)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, domain.Internal("Something went wrong, try again later", err)
	}
	if exists {
		span.SetStatus(codes.Error, "email taken")
		return nil, domain.Conflict("Email already exist, please login")
	}

	hash, err := security.HashPassword(req.Password)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, domain.Internal("Something went wrong, try again later", err)
	}

	now := time.Now()
	user := &domain.User{
		ID:            uuid.New().String(),
		Name:          req.Name,
		Email:         email,
		PasswordHash:  hash,
		Role:          req.Role,
		AccountStatus: domain.StatusUnverified,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.users.Create(ctx, user); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, domain.Internal("Something went wrong, try again later", err)
	}

	code := security.GenerateCode()
	signed, err := s.tokens.VerificationToken(user.Email, code)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, domain.Internal("Something went wrong, try again later", err)
	}

	// Delivery failure is non-fatal here; the user can request a resend.
	if err := s.mailer.SendVerificationEmail(ctx, user.Email, user.Name, code); err != nil {
		logger.Get().Warn("verification email failed",
			zap.String("email", user.Email), zap.Error(err))
	}

	span.SetAttributes(attribute.String("user_id", user.ID))
	span.SetStatus(codes.Ok, "")
	return &dto.RegisterResponse{Token: signed}, nil
}

// VerifyAccount flips an account to VERIFIED exactly once. The submitted code
// must match the one embedded in the token payload.
func (s *authService) VerifyAccount(ctx context.Context, code, tokenString string) error {
	ctx, span := telemetry.StartSpan(ctx, "service.auth.verify_account")
	defer span.End()

	if code == "" {
		return domain.BadRequest("Code is required")
	}
	if tokenString == "" {
		return domain.BadRequest("Token is required")
	}

	claims, err := s.tokens.Verify(tokenString)
	if err != nil {
		span.SetStatus(codes.Error, "token rejected")
		return domain.BadRequest("Invalid token or token expired")
	}
	// The signing library already enforces exp; re-check here so a claims
	// object with a stale exp can never slip through.
	if claims.ExpiresAt == nil || claims.ExpiresAt.Before(time.Now()) {
		return domain.BadRequest("Invalid token or token expired")
	}
	if claims.Kind != token.KindVerification {
		return domain.BadRequest("Invalid token or token expired")
	}
	if claims.Code != code {
		return domain.BadRequest("Invalid verification code")
	}

	user, err := s.users.GetByEmail(ctx, claims.Subject)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return domain.Internal("Something went wrong, try again later", err)
	}
	if user == nil {
		return domain.NotFound("User not found")
	}
	if user.AccountStatus == domain.StatusVerified {
		return domain.BadRequest("Account already verified")
	}

	user.AccountStatus = domain.StatusVerified
	if err := s.users.Update(ctx, user); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return domain.Internal("Something went wrong, try again later", err)
	}

	span.SetAttributes(attribute.String("user_id", user.ID))
	span.SetStatus(codes.Ok, "")
	return nil
}

// Login checks credentials and verification status, then issues an access and
// a refresh token. Failure messages never reveal whether the email exists.
func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	ctx, span := telemetry.StartSpan(ctx, "service.auth.login")
	defer span.End()

	user, err := s.users.GetByEmail(ctx, normalizeEmail(req.Email))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, domain.Internal("Something went wrong, try again later", err)
	}
	if user == nil {
		span.SetStatus(codes.Error, "unknown email")
		return nil, domain.NotFound(genericLoginError)
	}
	if !security.VerifyPassword(req.Password, user.PasswordHash) {
		span.SetStatus(codes.Error, "password mismatch")
		return nil, domain.BadRequest(genericLoginError)
	}
	if user.AccountStatus != domain.StatusVerified {
		span.SetStatus(codes.Error, "account unverified")
		return nil, domain.Unauthorized("Please verify your account before you can login")
	}

	accessToken, err := s.tokens.AccessToken(user.ID, user.Role)
	if err != nil {
		span.RecordError(err)
		return nil, domain.Internal("Something went wrong, try again later", err)
	}
	refreshToken, err := s.tokens.RefreshToken(user.ID)
	if err != nil {
		span.RecordError(err)
		return nil, domain.Internal("Something went wrong, try again later", err)
	}

	span.SetAttributes(attribute.String("user_id", user.ID))
	span.SetStatus(codes.Ok, "")
	return &dto.LoginResponse{
		User: user.Public(),
		Token: dto.TokenPair{
			AccessToken:  accessToken,
			RefreshToken: refreshToken,
		},
	}, nil
}

// ForgotPassword emails a reset link carrying a 3-hour reset token.
func (s *authService) ForgotPassword(ctx context.Context, email string) error {
	ctx, span := telemetry.StartSpan(ctx, "service.auth.forgot_password")
	defer span.End()

	user, err := s.users.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return domain.Internal("Something went wrong, try again later", err)
	}
	if user == nil {
		return domain.NotFound("User not found")
	}

	resetToken, err := s.tokens.ResetToken(user.Email)
	if err != nil {
		span.RecordError(err)
		return domain.Internal("Something went wrong, try again later", err)
	}

	if err := s.mailer.SendPasswordResetEmail(ctx, user.Email, user.Name, resetToken); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "mail failed")
		return domain.Internal("Something went wrong, try again later", err)
	}

	span.SetStatus(codes.Ok, "")
	return nil
}

// ResetPassword replaces the stored hash for the token's subject. The old
// password is deliberately not required on this path.
func (s *authService) ResetPassword(ctx context.Context, req *dto.ResetPasswordRequest, tokenString string) error {
	ctx, span := telemetry.StartSpan(ctx, "service.auth.reset_password")
	defer span.End()

	if tokenString == "" {
		return domain.BadRequest("Token is required")
	}

	claims, err := s.tokens.Verify(tokenString)
	if err != nil {
		span.SetStatus(codes.Error, "token rejected")
		if errors.Is(err, token.ErrExpiredToken) {
			return domain.BadRequest("Invalid token, token expired")
		}
		return domain.BadRequest("Invalid token")
	}
	if claims.Kind != token.KindReset {
		return domain.BadRequest("Invalid token")
	}

	user, err := s.users.GetByEmail(ctx, claims.Subject)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return domain.Internal("Something went wrong, try again later", err)
	}
	if user == nil {
		return domain.NotFound("User not found")
	}

	hash, err := security.HashPassword(req.NewPassword)
	if err != nil {
		span.RecordError(err)
		return domain.Internal("Something went wrong, try again later", err)
	}

	user.PasswordHash = hash
	if err := s.users.Update(ctx, user); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return domain.Internal("Something went wrong, try again later", err)
	}

	span.SetAttributes(attribute.String("user_id", user.ID))
	span.SetStatus(codes.Ok, "")
	return nil
}

// ResendCode issues a fresh code and verification token for an account that
// has not verified yet, and returns the token so the client can resubmit it
// alongside the new code.
func (s *authService) ResendCode(ctx context.Context, email string) (*dto.RegisterResponse, error) {
	ctx, span := telemetry.StartSpan(ctx, "service.auth.resend_code")
	defer span.End()

	user, err := s.users.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, domain.Internal("Something went wrong, try again later", err)
	}
	if user == nil {
		return nil, domain.NotFound("User not found")
	}
	if user.AccountStatus == domain.StatusVerified {
		return nil, domain.BadRequest("Account already verified")
	}

	code := security.GenerateCode()
	signed, err := s.tokens.VerificationToken(user.Email, code)
	if err != nil {
		span.RecordError(err)
		return nil, domain.Internal("Something went wrong, try again later", err)
	}

	if err := s.mailer.SendVerificationEmail(ctx, user.Email, user.Name, code); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "mail failed")
		return nil, domain.Internal("Failed to send email", err)
	}

	span.SetStatus(codes.Ok, "")
	return &dto.RegisterResponse{Token: signed}, nil
}

// RefreshToken exchanges a valid refresh token for a new access token. An
// access token presented here is rejected by kind, not merely by validity.
func (s *authService) RefreshToken(ctx context.Context, refreshToken string) (*dto.RefreshTokenResponse, error) {
	ctx, span := telemetry.StartSpan(ctx, "service.auth.refresh_token")
	defer span.End()

	if refreshToken == "" {
		return nil, domain.BadRequest("Refresh token is required")
	}

	claims, err := s.tokens.Verify(refreshToken)
	if err != nil {
		span.SetStatus(codes.Error, "token rejected")
		return nil, domain.Unauthorized("Invalid or expired refresh token")
	}
	if claims.Kind != token.KindRefresh {
		span.SetStatus(codes.Error, "wrong token kind")
		return nil, domain.Unauthorized("Invalid refresh token")
	}

	user, err := s.users.GetByID(ctx, claims.Subject)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, domain.Internal("Something went wrong, try again later", err)
	}
	if user == nil {
		return nil, domain.NotFound("User not found")
	}

	accessToken, err := s.tokens.AccessToken(user.ID, user.Role)
	if err != nil {
		span.RecordError(err)
		return nil, domain.Internal("Something went wrong, try again later", err)
	}

	span.SetAttributes(attribute.String("user_id", user.ID))
	span.SetStatus(codes.Ok, "")
	return &dto.RefreshTokenResponse{AccessToken: accessToken}, nil
}
