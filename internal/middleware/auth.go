package middleware

import (
	"context"
	"net/http"
	"strings"

	"petmarket/internal/domain"
	jwtsvc "petmarket/internal/pkg/jwt"
	"petmarket/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

// UserGetter is the slice of the user repository the auth middleware needs
// to reject blocked accounts.
type UserGetter interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

// Auth validates the bearer token and loads user_id/role into the context.
func Auth(jwt *jwtsvc.Service, users UserGetter) gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.GetHeader("Authorization")
		if h == "" || !strings.HasPrefix(h, "Bearer ") {
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Missing or invalid Authorization header")
			c.Abort()
			return
		}

		tokenStr := strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
		if tokenStr == "" {
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Empty token")
			c.Abort()
			return
		}

		claims, err := jwt.ValidateToken(tokenStr)
		if err != nil {
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Invalid token")
			c.Abort()
			return
		}

		if users != nil {
			u, err := users.GetByID(c.Request.Context(), claims.UserID)
			if err != nil || u == nil {
				response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Unknown account")
				c.Abort()
				return
			}
			if u.Blocked {
				response.Error(c, http.StatusForbidden, "FORBIDDEN", "Account is blocked")
				c.Abort()
				return
			}
		}

		c.Set("user_id", claims.UserID)
		c.Set("role", claims.Role)

		c.Next()
	}
}
