package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kashafa/tadreeb-backend/internal/response"
	"github.com/kashafa/tadreeb-backend/internal/service"
)

// RequireAdminSecret guards admin endpoints with the shared X-Admin-Secret
// header. The admin surface is a small internal panel, so a shared secret
// replaces a full account system.
func RequireAdminSecret(authService *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		secret := c.GetHeader("X-Admin-Secret")
		if secret == "" {
			response.AbortFail(c, http.StatusUnauthorized, response.ErrTokenRequired)
			return
		}
		if err := authService.CheckAdminSecret(secret); err != nil {
			response.AbortFail(c, http.StatusForbidden, response.ErrAdminAccessOnly)
			return
		}
		c.Next()
	}
}
