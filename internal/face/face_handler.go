package face

import (
	"net/http"
	"strings"

	"go-presence/internal/shared/apperror"
	"go-presence/internal/shared/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func writeError(c *gin.Context, err error) {
	response.FromError(c, err)
}

func (h *Handler) Health(c *gin.Context) {
	status, err := h.service.Health(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, status, nil)
}

func (h *Handler) EnrolledUsers(c *gin.Context) {
	users, err := h.service.EnrolledUsers(c.Request.Context(), c.GetString("company_id"))
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"count": len(users), "users": users}, nil)
}

func (h *Handler) DeleteUser(c *gin.Context) {
	userID := strings.TrimSpace(c.Param("userId"))
	if userID == "" {
		writeError(c, apperror.RequiredField("userId"))
		return
	}

	if err := h.service.DeleteUser(c.Request.Context(), c.GetString("company_id"), c.GetString("employee_id"), userID); err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "Face data deleted for user " + userID}, nil)
}
