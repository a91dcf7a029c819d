package face

import (
	"go-presence/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, rbacService middleware.RBACService) {
	face := r.Group("/face")
	face.Use(middleware.AuthMiddleware(), middleware.ExtractUserID())
	{
		face.GET("/health", middleware.RBACAuthorize(rbacService, "face", "read"), h.Health)
		face.GET("/enrolled-users", middleware.RBACAuthorize(rbacService, "face", "read"), h.EnrolledUsers)
		face.DELETE("/users/:userId", middleware.RBACAuthorize(rbacService, "face", "delete"), h.DeleteUser)
	}
}
