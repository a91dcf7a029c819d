package attendance

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	attendanceerrors "go-presence/internal/attendance/errors"
	"go-presence/internal/session"
	"go-presence/internal/shared/apperror"
	"go-presence/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

type Handler struct {
	service Service
	rdb     *redis.Client
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func NewHandlerWithRedis(service Service, rdb *redis.Client) *Handler {
	return &Handler{service: service, rdb: rdb}
}

func getActorID(c *gin.Context) string {
	actorID := c.GetString("employee_id")
	if actorID == "" {
		actorID = c.GetString("user_id_validated")
	}
	return actorID
}

func writeServiceError(c *gin.Context, err error) {
	response.FromError(c, err)
}

func (h *Handler) Clock(c *gin.Context) {
	lockKey, _ := c.Get("idempotency_lock_key")
	cacheKey, _ := c.Get("idempotency_cache_key")

	if h.rdb != nil {
		if lk, ok := lockKey.(string); ok && lk != "" {
			defer h.rdb.Del(c.Request.Context(), lk)
		}
	}

	var req ClockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.service.Clock(c.Request.Context(), c.GetString("company_id"), getActorID(c), req)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	if h.rdb != nil {
		if ck, ok := cacheKey.(string); ok && ck != "" {
			if payload, marshalErr := json.Marshal(resp); marshalErr == nil {
				_ = h.rdb.Set(c.Request.Context(), ck, payload, 24*time.Hour).Err()
			}
		}
	}

	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) Today(c *gin.Context) {
	resp, err := h.service.Today(c.Request.Context(), c.GetString("company_id"), getActorID(c))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) GetAll(c *gin.Context) {
	filter, err := parseListFilter(c)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	resp, err := h.service.GetAll(c.Request.Context(), c.GetString("company_id"), getActorID(c), canReadAll(c), filter)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	page, pageSize := response.PageParams(c, 10)
	rows, meta := response.Paginate(resp, page, pageSize)
	response.Success(c, http.StatusOK, rows, &meta)
}

func (h *Handler) Export(c *gin.Context) {
	format, err := ParseExportFormat(c.Query("format"))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	filter, err := parseListFilter(c)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	file, err := h.service.Export(c.Request.Context(), c.GetString("company_id"), getActorID(c), canReadAll(c), format, filter)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	response.Attachment(c, file.Filename, file.ContentType, file.Data)
}

func canReadAll(c *gin.Context) bool {
	return isPrivilegedRole(strings.ToUpper(strings.TrimSpace(c.GetString("role"))))
}

func isPrivilegedRole(role string) bool {
	switch role {
	case "ADMIN", "MANAGER":
		return true
	default:
		return false
	}
}

func parseListFilter(c *gin.Context) (ListFilter, error) {
	var f ListFilter
	for key, dst := range map[string]**time.Time{"from": &f.From, "to": &f.To} {
		raw := strings.TrimSpace(c.Query(key))
		if raw == "" {
			continue
		}
		t, err := time.Parse(session.DayLayout, raw)
		if err != nil {
			return ListFilter{}, attendanceerrors.ErrInvalidDateRange
		}
		*dst = &t
	}
	return f, nil
}
