package audit

import (
	"net/http"
	"strings"
	"time"

	auditerrors "go-presence/internal/audit/errors"
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

func parseFilter(c *gin.Context) (ListFilter, error) {
	f := ListFilter{Action: strings.TrimSpace(c.Query("action"))}
	for key, dst := range map[string]**time.Time{"from": &f.From, "to": &f.To} {
		raw := strings.TrimSpace(c.Query(key))
		if raw == "" {
			continue
		}
		t, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return ListFilter{}, auditerrors.ErrInvalidDateRange
		}
		*dst = &t
	}
	return f, nil
}

func (h *Handler) List(c *gin.Context) {
	filter, err := parseFilter(c)
	if err != nil {
		writeError(c, err)
		return
	}

	logs, err := h.service.List(c.Request.Context(), c.GetString("company_id"), filter)
	if err != nil {
		writeError(c, err)
		return
	}

	page, pageSize := response.PageParams(c, 20)
	rows, meta := response.Paginate(logs, page, pageSize)
	response.Success(c, http.StatusOK, rows, &meta)
}

func (h *Handler) Export(c *gin.Context) {
	filter, err := parseFilter(c)
	if err != nil {
		writeError(c, err)
		return
	}

	data, err := h.service.ExportCSV(c.Request.Context(), c.GetString("company_id"), filter)
	if err != nil {
		writeError(c, err)
		return
	}

	response.Attachment(c, ExportFilename, "text/csv; charset=utf-8", data)
}
