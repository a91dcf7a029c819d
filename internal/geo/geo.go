package geo

import (
	"fmt"
	"math"
)

// EarthRadiusMeters is the mean Earth radius used by the Haversine formula.
const EarthRadiusMeters = 6371000.0

type Coordinate struct {
	Latitude  float64 `json:"latitude" yaml:"latitude"`
	Longitude float64 `json:"longitude" yaml:"longitude"`
}

// Validate rejects NaN/Inf and values outside the legal latitude/longitude range.
func (c Coordinate) Validate() error {
	if math.IsNaN(c.Latitude) || math.IsInf(c.Latitude, 0) || c.Latitude < -90 || c.Latitude > 90 {
		return fmt.Errorf("latitude out of range: %v", c.Latitude)
	}
	if math.IsNaN(c.Longitude) || math.IsInf(c.Longitude, 0) || c.Longitude < -180 || c.Longitude > 180 {
		return fmt.Errorf("longitude out of range: %v", c.Longitude)
	}
	return nil
}

type OfficeLocation struct {
	Key        string     `json:"id" yaml:"key"`
	Name       string     `json:"name" yaml:"name"`
	Address    string     `json:"address" yaml:"address"`
	Coordinate Coordinate `json:"coordinate" yaml:",inline"`
}

func toRadians(deg float64) float64 {
	return deg * (math.Pi / 180.0)
}

// DistanceMeters returns the great-circle distance between a and b in meters.
func DistanceMeters(a, b Coordinate) float64 {
	dLat := toRadians(b.Latitude - a.Latitude)
	dLon := toRadians(b.Longitude - a.Longitude)

	lat1 := toRadians(a.Latitude)
	lat2 := toRadians(b.Latitude)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Sin(dLon/2)*math.Sin(dLon/2)*math.Cos(lat1)*math.Cos(lat2)

	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return EarthRadiusMeters * c
}

// WithinRadius reports whether distance is inside the geofence. The boundary is inclusive.
func WithinRadius(distance, maxMeters float64) bool {
	return distance <= maxMeters
}

// Nearest returns the office closest to from. ok is false when offices is empty.
func Nearest(from Coordinate, offices []OfficeLocation) (office OfficeLocation, distance float64, ok bool) {
	distance = math.Inf(1)
	for _, o := range offices {
		d := DistanceMeters(from, o.Coordinate)
		if d < distance {
			distance = d
			office = o
			ok = true
		}
	}
	if !ok {
		return OfficeLocation{}, 0, false
	}
	return office, distance, true
}

func FormatDistance(meters float64) string {
	if meters < 1000 {
		return fmt.Sprintf("%dm", int(math.Round(meters)))
	}
	return fmt.Sprintf("%.2fkm", meters/1000)
}
