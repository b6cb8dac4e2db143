package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/talentbridge/backend/internal/domain"
	"github.com/talentbridge/backend/pkg/response"
)

// RequireRoles restricts a route to the declared role set. Declaring no roles
// grants access unconditionally. Runs after AccessGuard; a missing principal
// is treated as unauthenticated.
func RequireRoles(roles ...domain.Role) gin.HandlerFunc {
	allowed := make(map[domain.Role]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}

	return func(c *gin.Context) {
		if len(allowed) == 0 {
			c.Next()
			return
		}

		user, ok := CurrentUser(c)
		if !ok {
			response.Error(c, 401, "UNAUTHORIZED", "Access denied", "")
			c.Abort()
			return
		}
		if _, ok := allowed[user.Role]; !ok {
			response.Error(c, 401, "UNAUTHORIZED",
				"Role does not have the required privileges to access this resource", "")
			c.Abort()
			return
		}
		c.Next()
	}
}
