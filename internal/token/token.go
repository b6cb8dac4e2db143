package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/talentbridge/backend/internal/domain"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token expired")
)

// Kind distinguishes the four token purposes. A token of one kind must never
// be accepted where another kind is expected.
type Kind string

const (
	KindVerification Kind = "verify-tk"
	KindAccess       Kind = "access-tk"
	KindRefresh      Kind = "refresh-tk"
	KindReset        Kind = "reset-tk"
)

// TTLs for the self-service flows are fixed; access/refresh TTLs come from
// configuration.
const (
	VerificationTTL = 15 * time.Minute
	ResetTTL        = 3 * time.Hour
)

// Claims is the payload embedded in every signed token. Subject carries the
// user ID for access/refresh tokens and the email for verification/reset
// tokens.
type Claims struct {
	Code string      `json:"code,omitempty"`
	Role domain.Role `json:"role,omitempty"`
	Kind Kind        `json:"token,omitempty"`
	jwt.RegisteredClaims
}

// ExpiresIn reports the remaining lifetime relative to now.
func (c *Claims) ExpiresIn(now time.Time) time.Duration {
	if c.ExpiresAt == nil {
		return 0
	}
	return c.ExpiresAt.Time.Sub(now)
}

// Service signs and verifies stateless HS256 tokens with a single shared
// secret. Verification never touches the user store, keeping the per-request
// hot path free of extra round trips.
type Service struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
}

// NewService constructs the token service. An empty secret is a startup
// error, not a per-call one.
func NewService(secret string, accessTTL, refreshTTL time.Duration) (*Service, error) {
	if secret == "" {
		return nil, errors.New("token: signing secret is required")
	}
	if accessTTL == 0 {
		accessTTL = 30 * time.Minute
	}
	if refreshTTL == 0 {
		refreshTTL = 7 * 24 * time.Hour
	}
	return &Service{
		secret:     []byte(secret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}, nil
}

// AccessTTL returns the configured access-token lifetime.
func (s *Service) AccessTTL() time.Duration { return s.accessTTL }

func (s *Service) sign(claims Claims, ttl time.Duration) (string, error) {
	now := time.Now()
	claims.IssuedAt = jwt.NewNumericDate(now)
	claims.ExpiresAt = jwt.NewNumericDate(now.Add(ttl))
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(s.secret)
}

// VerificationToken carries the email and the 6-digit code a new account must
// echo back. The token is the code's only container; nothing is persisted.
func (s *Service) VerificationToken(email, code string) (string, error) {
	return s.sign(Claims{
		Code: code,
		Kind: KindVerification,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject: email,
		},
	}, VerificationTTL)
}

// AccessToken authenticates API calls for its holder.
func (s *Service) AccessToken(userID string, role domain.Role) (string, error) {
	return s.sign(Claims{
		Role: role,
		Kind: KindAccess,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject: userID,
		},
	}, s.accessTTL)
}

// RefreshToken services many access-token renewals over its lifetime; it is
// not rotated on use.
func (s *Service) RefreshToken(userID string) (string, error) {
	return s.sign(Claims{
		Kind: KindRefresh,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject: userID,
		},
	}, s.refreshTTL)
}

// ResetToken authorizes a password reset for the subject email.
func (s *Service) ResetToken(email string) (string, error) {
	return s.sign(Claims{
		Kind: KindReset,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject: email,
		},
	}, ResetTTL)
}

// Verify parses and validates a token. It returns ErrExpiredToken for an
// elapsed exp and ErrInvalidToken for every other failure so callers can give
// the two cases different messages.
func (s *Service) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}
	t, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}
	if !t.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
