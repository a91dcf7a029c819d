package audit_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"go-presence/internal/audit"
	auditMock "go-presence/internal/audit/mock"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newAuditRouter(svc audit.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := audit.NewHandler(svc)
	router := gin.New()
	router.Use(func(c *gin.Context) { c.Set("company_id", "company-1") })
	router.GET("/audit-logs", h.List)
	router.GET("/audit-logs/export", h.Export)
	return router
}

func TestHandler_List(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := auditMock.NewMockService(ctrl)
	router := newAuditRouter(svc)

	svc.EXPECT().List(gomock.Any(), "company-1", gomock.Any()).
		DoAndReturn(func(_ any, _ string, f audit.ListFilter) ([]audit.AuditLogResponse, error) {
			assert.Equal(t, "clock", f.Action)
			require.NotNil(t, f.From)
			return []audit.AuditLogResponse{{ID: "1"}, {ID: "2"}, {ID: "3"}}, nil
		})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/audit-logs?action=clock&from=2026-01-01&page=2&page_size=2", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	var res struct {
		Data []audit.AuditLogResponse `json:"data"`
		Meta struct {
			Total int `json:"total"`
		} `json:"meta"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	require.Len(t, res.Data, 1)
	assert.Equal(t, "3", res.Data[0].ID)
	assert.Equal(t, 3, res.Meta.Total)

	t.Run("bad date", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/audit-logs?to=yesterday", nil))
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestHandler_Export(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := auditMock.NewMockService(ctrl)
	router := newAuditRouter(svc)

	svc.EXPECT().ExportCSV(gomock.Any(), "company-1", audit.ListFilter{}).
		Return([]byte("Timestamp,Actor,Role,Action,Target,IP Address,Device\n"), nil)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/audit-logs/export", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, `attachment; filename="security_audit.csv"`, w.Header().Get("Content-Disposition"))
	assert.Contains(t, w.Header().Get("Content-Type"), "text/csv")
	assert.Contains(t, w.Body.String(), "IP Address")
}
