package middleware

import (
	"net/http"

	"go-presence/internal/shared/apperror"
	"go-presence/internal/shared/contextutil"
	"go-presence/internal/shared/response"

	"github.com/gin-gonic/gin"
)

// ExtractUserID pins the authenticated user id as user_id_validated. The id
// comes from the gin context, or from the request context when an upstream
// middleware only set that one.
func ExtractUserID() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")
		if userID == "" {
			userID = contextutil.GetUserID(c.Request.Context())
		}
		if userID == "" {
			response.Error(c, http.StatusUnauthorized, apperror.CodeUnauthorized, "User is not authenticated", nil)
			c.Abort()
			return
		}

		c.Set("user_id_validated", userID)
		c.Next()
	}
}
