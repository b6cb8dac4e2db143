package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/talentbridge/backend/internal/domain"
	"github.com/talentbridge/backend/internal/repository"
	"github.com/talentbridge/backend/internal/token"
	"github.com/talentbridge/backend/pkg/response"
)

// ContextUserKey is where the access guard stores the authenticated principal.
const ContextUserKey = "user"

// CurrentUser returns the principal attached by the access guard.
func CurrentUser(c *gin.Context) (*domain.User, bool) {
	v, exists := c.Get(ContextUserKey)
	if !exists {
		return nil, false
	}
	user, ok := v.(*domain.User)
	return user, ok
}

func extractBearerToken(c *gin.Context) string {
	parts := strings.SplitN(c.GetHeader("Authorization"), " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return ""
	}
	return parts[1]
}

// AccessGuard authenticates every protected request: it extracts the bearer
// token, verifies it, requires the access kind, loads the user and attaches
// it to the request context. Expired and malformed tokens both fail with 401
// but carry different messages for client UX.
//
// Account status is not re-checked here; verification gating happens at login.
func AccessGuard(tokens *token.Service, users repository.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := extractBearerToken(c)
		if raw == "" {
			response.Error(c, 401, "MISSING_TOKEN", "Access denied, no token provided", "")
			c.Abort()
			return
		}

		claims, err := tokens.Verify(raw)
		if err != nil {
			if errors.Is(err, token.ErrExpiredToken) {
				response.Error(c, 401, "TOKEN_EXPIRED", "Your session has expired. Please log in again.", "")
			} else {
				response.Error(c, 401, "INVALID_TOKEN", "Your token is invalid.", "")
			}
			c.Abort()
			return
		}

		// A refresh or verification token must never authenticate an API
		// call; this is the primary defense against token confusion.
		if claims.Kind != token.KindAccess {
			response.Error(c, 401, "INVALID_TOKEN", "Your token is invalid.", "")
			c.Abort()
			return
		}

		user, err := users.GetByID(c.Request.Context(), claims.Subject)
		if err != nil || user == nil {
			response.Error(c, 401, "UNAUTHORIZED", "Access denied", "")
			c.Abort()
			return
		}

		c.Set(ContextUserKey, user)
		c.Next()
	}
}
