package office

import "go-presence/internal/geo"

type CatalogueResponse struct {
	MaxDistanceMeters float64              `json:"max_distance_meters"`
	Notice            string               `json:"notice"`
	Offices           []geo.OfficeLocation `json:"offices"`
}

type NearestResponse struct {
	Office          geo.OfficeLocation `json:"office"`
	DistanceMeters  int                `json:"distance_meters"`
	DistanceDisplay string             `json:"distance_display"`
	WithinRange     bool               `json:"within_range"`
}
