package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talentbridge/backend/internal/domain"
	"github.com/talentbridge/backend/internal/dto"
	"github.com/talentbridge/backend/internal/token"
)

// mockUserRepository is an in-memory UserRepository.
type mockUserRepository struct {
	users      map[string]*domain.User
	emailIndex map[string]*domain.User
	failWith   error
}

func newMockUserRepository() *mockUserRepository {
	return &mockUserRepository{
		users:      make(map[string]*domain.User),
		emailIndex: make(map[string]*domain.User),
	}
}

func (r *mockUserRepository) Create(_ context.Context, user *domain.User) error {
	if r.failWith != nil {
		return r.failWith
	}
	r.users[user.ID] = user
	r.emailIndex[strings.ToLower(user.Email)] = user
	return nil
}

func (r *mockUserRepository) GetByID(_ context.Context, id string) (*domain.User, error) {
	if r.failWith != nil {
		return nil, r.failWith
	}
	return r.users[id], nil
}

func (r *mockUserRepository) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	if r.failWith != nil {
		return nil, r.failWith
	}
	return r.emailIndex[strings.ToLower(email)], nil
}

func (r *mockUserRepository) ExistsByEmail(_ context.Context, email string) (bool, error) {
	if r.failWith != nil {
		return false, r.failWith
	}
	_, ok := r.emailIndex[strings.ToLower(email)]
	return ok, nil
}

func (r *mockUserRepository) Update(_ context.Context, user *domain.User) error {
	if r.failWith != nil {
		return r.failWith
	}
	r.users[user.ID] = user
	r.emailIndex[strings.ToLower(user.Email)] = user
	return nil
}

func (r *mockUserRepository) Delete(_ context.Context, id string) error {
	if user := r.users[id]; user != nil {
		delete(r.emailIndex, strings.ToLower(user.Email))
		delete(r.users, id)
	}
	return nil
}

func (r *mockUserRepository) List(_ context.Context, query *dto.UsersQuery) ([]*domain.User, int64, error) {
	var out []*domain.User
	for _, u := range r.users {
		if query.Role != "" && u.Role != query.Role {
			continue
		}
		if query.Search != "" && !strings.Contains(strings.ToLower(u.Name), strings.ToLower(query.Search)) {
			continue
		}
		out = append(out, u)
	}
	total := int64(len(out))
	start := (query.Page - 1) * query.Limit
	if start > len(out) {
		start = len(out)
	}
	end := start + query.Limit
	if end > len(out) {
		end = len(out)
	}
	return out[start:end], total, nil
}

// mockMailer records every send so tests can read back the emailed code.
type mockMailer struct {
	lastEmail string
	lastCode  string
	lastToken string
	sendCount int
	failWith  error
}

func (m *mockMailer) SendVerificationEmail(_ context.Context, email, _, code string) error {
	if m.failWith != nil {
		return m.failWith
	}
	m.lastEmail = email
	m.lastCode = code
	m.sendCount++
	return nil
}

func (m *mockMailer) SendPasswordResetEmail(_ context.Context, email, _, token string) error {
	if m.failWith != nil {
		return m.failWith
	}
	m.lastEmail = email
	m.lastToken = token
	m.sendCount++
	return nil
}

func newTestAuthService(t *testing.T) (AuthService, *mockUserRepository, *mockMailer, *token.Service) {
	t.Helper()
	repo := newMockUserRepository()
	mailer := &mockMailer{}
	tokens, err := token.NewService("test-secret-key", 30*time.Minute, 7*24*time.Hour)
	require.NoError(t, err)
	return NewAuthService(repo, tokens, mailer), repo, mailer, tokens
}

func registerRequest() *dto.RegisterRequest {
	return &dto.RegisterRequest{
		Name:            "Jane Doe",
		Email:           "jane@example.com",
		Password:        "Password1!",
		ConfirmPassword: "Password1!",
		Role:            domain.RoleTrainee,
	}
}

func TestRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("creates an unverified account and emails the code", func(t *testing.T) {
		svc, repo, mailer, tokens := newTestAuthService(t)

		resp, err := svc.Register(ctx, registerRequest())
		require.NoError(t, err)
		require.NotEmpty(t, resp.Token)

		user := repo.emailIndex["jane@example.com"]
		require.NotNil(t, user)
		assert.Equal(t, domain.StatusUnverified, user.AccountStatus)
		assert.Equal(t, domain.RoleTrainee, user.Role)
		assert.NotEqual(t, "Password1!", user.PasswordHash)

		assert.Equal(t, "jane@example.com", mailer.lastEmail)
		require.Len(t, mailer.lastCode, 6)

		claims, err := tokens.Verify(resp.Token)
		require.NoError(t, err)
		assert.Equal(t, token.KindVerification, claims.Kind)
		assert.Equal(t, mailer.lastCode, claims.Code)
		assert.Equal(t, "jane@example.com", claims.Subject)
	})

	t.Run("lowercases the email", func(t *testing.T) {
		svc, repo, _, _ := newTestAuthService(t)

		req := registerRequest()
		req.Email = "Jane@Example.COM"
		_, err := svc.Register(ctx, req)
		require.NoError(t, err)

		user := repo.emailIndex["jane@example.com"]
		require.NotNil(t, user)
		assert.Equal(t, "jane@example.com", user.Email)
	})

	t.Run("rejects a duplicate email", func(t *testing.T) {
		svc, _, _, _ := newTestAuthService(t)

		_, err := svc.Register(ctx, registerRequest())
		require.NoError(t, err)

		_, err = svc.Register(ctx, registerRequest())
		require.Error(t, err)
		assert.Equal(t, domain.KindConflict, domain.KindOf(err))
		assert.Equal(t, "Email already exist, please login", domain.MessageOf(err))
	})

	t.Run("succeeds even when the email fails to send", func(t *testing.T) {
		svc, repo, mailer, _ := newTestAuthService(t)
		mailer.failWith = errors.New("sendgrid down")

		resp, err := svc.Register(ctx, registerRequest())
		require.NoError(t, err)
		assert.NotEmpty(t, resp.Token)
		assert.NotNil(t, repo.emailIndex["jane@example.com"])
	})
}

func TestVerifyAccount(t *testing.T) {
	ctx := context.Background()

	register := func(t *testing.T) (AuthService, *mockUserRepository, *mockMailer, string) {
		svc, repo, mailer, _ := newTestAuthService(t)
		resp, err := svc.Register(ctx, registerRequest())
		require.NoError(t, err)
		return svc, repo, mailer, resp.Token
	}

	t.Run("flips the account to verified", func(t *testing.T) {
		svc, repo, mailer, signed := register(t)

		err := svc.VerifyAccount(ctx, mailer.lastCode, signed)
		require.NoError(t, err)
		assert.Equal(t, domain.StatusVerified, repo.emailIndex["jane@example.com"].AccountStatus)
	})

	t.Run("rejects a wrong code", func(t *testing.T) {
		svc, repo, mailer, signed := register(t)

		wrong := "000000"
		if mailer.lastCode == wrong {
			wrong = "000001"
		}
		err := svc.VerifyAccount(ctx, wrong, signed)
		require.Error(t, err)
		assert.Equal(t, domain.KindBadRequest, domain.KindOf(err))
		assert.Equal(t, "Invalid verification code", domain.MessageOf(err))
		assert.Equal(t, domain.StatusUnverified, repo.emailIndex["jane@example.com"].AccountStatus)
	})

	t.Run("rejects a missing code", func(t *testing.T) {
		svc, _, _, signed := register(t)
		err := svc.VerifyAccount(ctx, "", signed)
		require.Error(t, err)
		assert.Equal(t, "Code is required", domain.MessageOf(err))
	})

	t.Run("rejects a garbage token", func(t *testing.T) {
		svc, _, mailer, _ := register(t)
		err := svc.VerifyAccount(ctx, mailer.lastCode, "garbage")
		require.Error(t, err)
		assert.Equal(t, "Invalid token or token expired", domain.MessageOf(err))
	})

	t.Run("rejects an expired token even with the right code", func(t *testing.T) {
		svc, repo, mailer, _ := register(t)

		past := time.Now().Add(-time.Hour)
		expired := jwt.NewWithClaims(jwt.SigningMethodHS256, token.Claims{
			Code: mailer.lastCode,
			Kind: token.KindVerification,
			RegisteredClaims: jwt.RegisteredClaims{
				Subject:   "jane@example.com",
				IssuedAt:  jwt.NewNumericDate(past.Add(-15 * time.Minute)),
				ExpiresAt: jwt.NewNumericDate(past),
			},
		})
		signed, err := expired.SignedString([]byte("test-secret-key"))
		require.NoError(t, err)

		err = svc.VerifyAccount(ctx, mailer.lastCode, signed)
		require.Error(t, err)
		assert.Equal(t, domain.KindBadRequest, domain.KindOf(err))
		assert.Equal(t, "Invalid token or token expired", domain.MessageOf(err))
		assert.Equal(t, domain.StatusUnverified, repo.emailIndex["jane@example.com"].AccountStatus)
	})

	t.Run("rejects a token of the wrong kind", func(t *testing.T) {
		svc, repo, mailer, _ := register(t)

		tokens, err := token.NewService("test-secret-key", 30*time.Minute, 7*24*time.Hour)
		require.NoError(t, err)
		user := repo.emailIndex["jane@example.com"]
		access, err := tokens.AccessToken(user.ID, user.Role)
		require.NoError(t, err)

		err = svc.VerifyAccount(ctx, mailer.lastCode, access)
		require.Error(t, err)
		assert.Equal(t, domain.KindBadRequest, domain.KindOf(err))
	})

	t.Run("is not repeatable", func(t *testing.T) {
		svc, _, mailer, signed := register(t)

		require.NoError(t, svc.VerifyAccount(ctx, mailer.lastCode, signed))
		err := svc.VerifyAccount(ctx, mailer.lastCode, signed)
		require.Error(t, err)
		assert.Equal(t, "Account already verified", domain.MessageOf(err))
	})
}

func TestLogin(t *testing.T) {
	ctx := context.Background()

	setup := func(t *testing.T, verify bool) (AuthService, *mockUserRepository) {
		svc, repo, mailer, _ := newTestAuthService(t)
		resp, err := svc.Register(ctx, registerRequest())
		require.NoError(t, err)
		if verify {
			require.NoError(t, svc.VerifyAccount(ctx, mailer.lastCode, resp.Token))
		}
		return svc, repo
	}

	t.Run("returns tokens and the public user", func(t *testing.T) {
		svc, repo := setup(t, true)

		resp, err := svc.Login(ctx, &dto.LoginRequest{Email: "jane@example.com", Password: "Password1!"})
		require.NoError(t, err)
		assert.NotEmpty(t, resp.Token.AccessToken)
		assert.NotEmpty(t, resp.Token.RefreshToken)
		assert.Equal(t, repo.emailIndex["jane@example.com"].ID, resp.User.ID)
		assert.Equal(t, domain.StatusVerified, resp.User.AccountStatus)
	})

	t.Run("accepts surrounding whitespace and mixed case in the email", func(t *testing.T) {
		svc, _ := setup(t, true)

		resp, err := svc.Login(ctx, &dto.LoginRequest{Email: "  Jane@Example.COM ", Password: "Password1!"})
		require.NoError(t, err)
		assert.NotEmpty(t, resp.Token.AccessToken)
	})

	t.Run("rejects an unknown email with the generic message", func(t *testing.T) {
		svc, _ := setup(t, true)

		_, err := svc.Login(ctx, &dto.LoginRequest{Email: "nobody@example.com", Password: "Password1!"})
		require.Error(t, err)
		assert.Equal(t, "Invalid email or password", domain.MessageOf(err))
	})

	t.Run("rejects a wrong password with the generic message", func(t *testing.T) {
		svc, _ := setup(t, true)

		_, err := svc.Login(ctx, &dto.LoginRequest{Email: "jane@example.com", Password: "Wrong1!!"})
		require.Error(t, err)
		assert.Equal(t, "Invalid email or password", domain.MessageOf(err))
	})

	t.Run("rejects an unverified account", func(t *testing.T) {
		svc, _ := setup(t, false)

		_, err := svc.Login(ctx, &dto.LoginRequest{Email: "jane@example.com", Password: "Password1!"})
		require.Error(t, err)
		assert.Equal(t, domain.KindUnauthorized, domain.KindOf(err))
		assert.Equal(t, "Please verify your account before you can login", domain.MessageOf(err))
	})
}

func TestPasswordResetFlow(t *testing.T) {
	ctx := context.Background()

	setup := func(t *testing.T) (AuthService, *mockMailer) {
		svc, _, mailer, _ := newTestAuthService(t)
		resp, err := svc.Register(ctx, registerRequest())
		require.NoError(t, err)
		require.NoError(t, svc.VerifyAccount(ctx, mailer.lastCode, resp.Token))
		return svc, mailer
	}

	t.Run("resets with a valid token and invalidates the old password", func(t *testing.T) {
		svc, mailer := setup(t)

		require.NoError(t, svc.ForgotPassword(ctx, "jane@example.com"))
		require.NotEmpty(t, mailer.lastToken)

		req := &dto.ResetPasswordRequest{NewPassword: "NewPass2@", ConfirmPassword: "NewPass2@"}
		require.NoError(t, svc.ResetPassword(ctx, req, mailer.lastToken))

		_, err := svc.Login(ctx, &dto.LoginRequest{Email: "jane@example.com", Password: "Password1!"})
		assert.Error(t, err)

		_, err = svc.Login(ctx, &dto.LoginRequest{Email: "jane@example.com", Password: "NewPass2@"})
		assert.NoError(t, err)
	})

	t.Run("forgot-password fails for an unknown email", func(t *testing.T) {
		svc, _ := setup(t)

		err := svc.ForgotPassword(ctx, "nobody@example.com")
		require.Error(t, err)
		assert.Equal(t, domain.KindNotFound, domain.KindOf(err))
	})

	t.Run("reset rejects a non-reset token", func(t *testing.T) {
		svc, _ := setup(t)

		tokens, err := token.NewService("test-secret-key", 30*time.Minute, 7*24*time.Hour)
		require.NoError(t, err)
		verification, err := tokens.VerificationToken("jane@example.com", "123456")
		require.NoError(t, err)

		req := &dto.ResetPasswordRequest{NewPassword: "NewPass2@", ConfirmPassword: "NewPass2@"}
		err = svc.ResetPassword(ctx, req, verification)
		require.Error(t, err)
		assert.Equal(t, "Invalid token", domain.MessageOf(err))
	})
}

func TestResendCode(t *testing.T) {
	ctx := context.Background()

	t.Run("issues a fresh code and token", func(t *testing.T) {
		svc, _, mailer, tokens := newTestAuthService(t)
		_, err := svc.Register(ctx, registerRequest())
		require.NoError(t, err)

		resp, err := svc.ResendCode(ctx, "jane@example.com")
		require.NoError(t, err)
		require.NotEmpty(t, resp.Token)
		assert.Equal(t, 2, mailer.sendCount)

		// The new code verifies against the new token.
		claims, err := tokens.Verify(resp.Token)
		require.NoError(t, err)
		assert.Equal(t, mailer.lastCode, claims.Code)

		require.NoError(t, svc.VerifyAccount(ctx, mailer.lastCode, resp.Token))
	})

	t.Run("rejects an already verified account", func(t *testing.T) {
		svc, _, mailer, _ := newTestAuthService(t)
		resp, err := svc.Register(ctx, registerRequest())
		require.NoError(t, err)
		require.NoError(t, svc.VerifyAccount(ctx, mailer.lastCode, resp.Token))

		_, err = svc.ResendCode(ctx, "jane@example.com")
		require.Error(t, err)
		assert.Equal(t, "Account already verified", domain.MessageOf(err))
	})

	t.Run("fails when the email cannot be sent", func(t *testing.T) {
		svc, _, mailer, _ := newTestAuthService(t)
		_, err := svc.Register(ctx, registerRequest())
		require.NoError(t, err)

		mailer.failWith = errors.New("sendgrid down")
		_, err = svc.ResendCode(ctx, "jane@example.com")
		require.Error(t, err)
		assert.Equal(t, domain.KindInternal, domain.KindOf(err))
	})
}

func TestRefreshToken(t *testing.T) {
	ctx := context.Background()

	setup := func(t *testing.T) (AuthService, *dto.LoginResponse, *token.Service) {
		svc, _, mailer, tokens := newTestAuthService(t)
		resp, err := svc.Register(ctx, registerRequest())
		require.NoError(t, err)
		require.NoError(t, svc.VerifyAccount(ctx, mailer.lastCode, resp.Token))
		login, err := svc.Login(ctx, &dto.LoginRequest{Email: "jane@example.com", Password: "Password1!"})
		require.NoError(t, err)
		return svc, login, tokens
	}

	t.Run("exchanges a refresh token for a new access token", func(t *testing.T) {
		svc, login, tokens := setup(t)

		resp, err := svc.RefreshToken(ctx, login.Token.RefreshToken)
		require.NoError(t, err)
		require.NotEmpty(t, resp.AccessToken)

		claims, err := tokens.Verify(resp.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, token.KindAccess, claims.Kind)
		assert.Equal(t, domain.RoleTrainee, claims.Role)
	})

	t.Run("rejects an access token by kind", func(t *testing.T) {
		svc, login, _ := setup(t)

		_, err := svc.RefreshToken(ctx, login.Token.AccessToken)
		require.Error(t, err)
		assert.Equal(t, domain.KindUnauthorized, domain.KindOf(err))
		assert.Equal(t, "Invalid refresh token", domain.MessageOf(err))
	})

	t.Run("rejects an empty token", func(t *testing.T) {
		svc, _, _ := setup(t)
		_, err := svc.RefreshToken(ctx, "")
		require.Error(t, err)
		assert.Equal(t, domain.KindBadRequest, domain.KindOf(err))
	})

	t.Run("rejects a forged token", func(t *testing.T) {
		svc, _, _ := setup(t)

		other, err := token.NewService("attacker-secret", 0, 0)
		require.NoError(t, err)
		forged, err := other.RefreshToken("some-user")
		require.NoError(t, err)

		_, err = svc.RefreshToken(ctx, forged)
		require.Error(t, err)
		assert.Equal(t, "Invalid or expired refresh token", domain.MessageOf(err))
	})
}
