package audit

import (
	"go-presence/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, rbacService middleware.RBACService) {
	logs := r.Group("/audit-logs")
	logs.Use(middleware.AuthMiddleware(), middleware.ExtractUserID())
	{
		logs.GET("", middleware.RBACAuthorize(rbacService, "audit", "read"), h.List)
		logs.GET("/export", middleware.RBACAuthorize(rbacService, "audit", "export"), h.Export)
	}
}
