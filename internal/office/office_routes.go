package office

import (
	"go-presence/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, rbacService middleware.RBACService) {
	offices := r.Group("/offices")
	offices.Use(middleware.AuthMiddleware(), middleware.RBACAuthorize(rbacService, "office", "read"))
	{
		offices.GET("", h.List)
		offices.GET("/nearest", h.Nearest)
	}
}
