package attendance

import (
	"go-presence/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, rbacService middleware.RBACService, rdb *redis.Client) {
	attendances := r.Group("/attendances")
	attendances.Use(middleware.AuthMiddleware(), middleware.ExtractUserID())
	{
		attendances.GET("", middleware.RBACAuthorize(rbacService, "attendance", "read"), h.GetAll)
		attendances.GET("/today", middleware.RBACAuthorize(rbacService, "attendance", "read"), h.Today)
		attendances.GET("/export", middleware.RBACAuthorize(rbacService, "attendance", "export"), h.Export)
		attendances.POST("/clock",
			middleware.RBACAuthorize(rbacService, "attendance", "clock"),
			middleware.RateLimitByUser(0.5, 3),
			middleware.Idempotency(rdb),
			h.Clock,
		)
	}
}
