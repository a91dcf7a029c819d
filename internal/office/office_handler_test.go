package office_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"go-presence/internal/geo"
	"go-presence/internal/office"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var offices = []geo.OfficeLocation{
	{Key: "main", Name: "Main Office", Coordinate: geo.Coordinate{Latitude: 19.2605095, Longitude: 76.8209881}},
	{Key: "branch1", Name: "Branch Office 1", Coordinate: geo.Coordinate{Latitude: 28.5355, Longitude: 77.3910}},
}

func newRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := office.NewHandler(offices, 100)
	router := gin.New()
	router.GET("/offices", h.List)
	router.GET("/offices/nearest", h.Nearest)
	return router
}

func get(router *gin.Engine, target string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))
	return w
}

func TestHandler_List(t *testing.T) {
	w := get(newRouter(), "/offices")
	assert.Equal(t, http.StatusOK, w.Code)

	var res struct {
		Data office.CatalogueResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.Equal(t, "You must be within 100m of office", res.Data.Notice)
	assert.Len(t, res.Data.Offices, 2)
	assert.Equal(t, "main", res.Data.Offices[0].Key)
}

func TestHandler_Nearest(t *testing.T) {
	router := newRouter()

	tests := []struct {
		name       string
		query      string
		wantCode   int
		wantOffice string
		wantWithin bool
	}{
		{name: "at main office", query: "latitude=19.2605095&longitude=76.8209881", wantCode: http.StatusOK, wantOffice: "main", wantWithin: true},
		{name: "near branch but outside", query: "latitude=28.5375&longitude=77.3910", wantCode: http.StatusOK, wantOffice: "branch1", wantWithin: false},
		{name: "missing longitude", query: "latitude=1", wantCode: http.StatusBadRequest},
		{name: "latitude out of range", query: "latitude=91&longitude=0", wantCode: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := get(router, "/offices/nearest?"+tt.query)
			assert.Equal(t, tt.wantCode, w.Code)
			if tt.wantCode != http.StatusOK {
				return
			}
			var res struct {
				Data office.NearestResponse `json:"data"`
			}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
			assert.Equal(t, tt.wantOffice, res.Data.Office.Key)
			assert.Equal(t, tt.wantWithin, res.Data.WithinRange)
		})
	}

	t.Run("empty catalogue", func(t *testing.T) {
		h := office.NewHandler(nil, 100)
		r := gin.New()
		r.GET("/n", h.Nearest)
		assert.Equal(t, http.StatusNotFound, get(r, "/n?latitude=0&longitude=0").Code)
	})
}
