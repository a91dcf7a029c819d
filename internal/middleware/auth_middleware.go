package middleware

import (
	"errors"
	"os"
	"strings"

	autherrors "go-presence/internal/auth/errors"
	"go-presence/internal/domain"
	"go-presence/internal/shared/apperror"
	"go-presence/internal/shared/contextutil"
	"go-presence/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

func abortWith(c *gin.Context, err *apperror.AppError) {
	response.Error(c, err.HTTPStatus, err.Code, err.Message, err.Details)
	c.Abort()
}

func bearerToken(c *gin.Context) string {
	if token, found := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer "); found && token != "" {
		return token
	}
	if cookie, err := c.Cookie("access_token"); err == nil {
		return cookie
	}
	return ""
}

// AuthMiddleware validates the access token and exposes its claims as
// user_id, employee_id, company_id and role on the gin context.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := bearerToken(c)
		if raw == "" {
			abortWith(c, autherrors.ErrMissingToken)
			return
		}

		claims, err := domain.ParseToken(raw, os.Getenv("JWT_SECRET"))
		if err != nil {
			if errors.Is(err, jwt.ErrTokenExpired) {
				abortWith(c, autherrors.ErrTokenExpired)
				return
			}
			abortWith(c, autherrors.ErrInvalidToken)
			return
		}

		if claims.TokenType == domain.TokenTypeRefresh || claims.UserID == "" || claims.CompanyID == "" || claims.EmployeeID == "" {
			abortWith(c, autherrors.ErrInvalidToken)
			return
		}

		role := strings.ToUpper(strings.TrimSpace(claims.Role))
		if role == "" {
			role = domain.RoleEmployee
		}

		c.Set("user_id", claims.UserID)
		c.Set("employee_id", claims.EmployeeID)
		c.Set("company_id", claims.CompanyID)
		c.Set("role", role)

		ctx := contextutil.WithUserID(c.Request.Context(), claims.UserID)
		ctx = contextutil.WithRole(ctx, role)
		logger := contextutil.GetLogger(ctx, zap.L()).With(
			zap.String("user_id", claims.UserID),
			zap.String("employee_id", claims.EmployeeID),
			zap.String("company_id", claims.CompanyID),
		)
		c.Request = c.Request.WithContext(contextutil.WithLogger(ctx, logger))

		c.Next()
	}
}
