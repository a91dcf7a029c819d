package office

import (
	"math"
	"net/http"
	"strconv"

	"go-presence/internal/geo"
	"go-presence/internal/shared/apperror"
	"go-presence/internal/shared/response"

	"github.com/gin-gonic/gin"
)

// Handler serves the static office catalogue the geofence checks against.
type Handler struct {
	offices   []geo.OfficeLocation
	maxMeters float64
}

func NewHandler(offices []geo.OfficeLocation, maxMeters float64) *Handler {
	return &Handler{offices: offices, maxMeters: maxMeters}
}

func writeError(c *gin.Context, err error) {
	response.FromError(c, err)
}

func (h *Handler) List(c *gin.Context) {
	response.Success(c, http.StatusOK, CatalogueResponse{
		MaxDistanceMeters: h.maxMeters,
		Notice:            "You must be within " + geo.FormatDistance(h.maxMeters) + " of office",
		Offices:           h.offices,
	}, nil)
}

// Nearest previews the geofence for a coordinate without clocking.
func (h *Handler) Nearest(c *gin.Context) {
	lat, latErr := strconv.ParseFloat(c.Query("latitude"), 64)
	if latErr != nil {
		writeError(c, apperror.InvalidField("latitude"))
		return
	}
	lng, lngErr := strconv.ParseFloat(c.Query("longitude"), 64)
	if lngErr != nil {
		writeError(c, apperror.InvalidField("longitude"))
		return
	}

	from := geo.Coordinate{Latitude: lat, Longitude: lng}
	if err := from.Validate(); err != nil {
		writeError(c, apperror.ErrInvalidInput.WithCause(err).WithDetails(err.Error()))
		return
	}

	nearest, distance, ok := geo.Nearest(from, h.offices)
	if !ok {
		writeError(c, apperror.ErrNotFound)
		return
	}

	response.Success(c, http.StatusOK, NearestResponse{
		Office:          nearest,
		DistanceMeters:  int(math.Round(distance)),
		DistanceDisplay: geo.FormatDistance(distance),
		WithinRange:     geo.WithinRadius(distance, h.maxMeters),
	}, nil)
}
