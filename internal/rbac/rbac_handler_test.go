package rbac

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go-presence/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubService struct {
	got domain.EnforceRequest
}

func (s *stubService) Enforce(req domain.EnforceRequest) (bool, error) {
	s.got = req
	return req.Resource == "attendance" && req.Action == "read", nil
}

func (s *stubService) Permissions(role string) ([]string, error) {
	return []string{"attendance:read"}, nil
}

func newRouter(svc Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewHandler(svc)

	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set("role", "EMPLOYEE")
		c.Set("company_id", "company-1")
		c.Set("employee_id", "emp-1")
	})
	router.POST("/rbac/enforce", h.Enforce)
	router.GET("/rbac/permissions", h.MyPermissions)
	return router
}

func TestHandler_Enforce(t *testing.T) {
	svc := &stubService{}
	router := newRouter(svc)

	req := httptest.NewRequest(http.MethodPost, "/rbac/enforce", strings.NewReader(`{"resource":"attendance","action":"read"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "EMPLOYEE", svc.got.Role)
	assert.Equal(t, "company-1", svc.got.CompanyID)

	var res struct {
		Data domain.EnforceResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.True(t, res.Data.Allowed)

	t.Run("missing action", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/rbac/enforce", strings.NewReader(`{"resource":"attendance"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestHandler_MyPermissions(t *testing.T) {
	router := newRouter(&stubService{})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/rbac/permissions", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"ok":true,"data":{"name":"EMPLOYEE","permissions":["attendance:read"]}}`, w.Body.String())
}
