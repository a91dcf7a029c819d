package config

import (
	"fmt"
	"os"

	"go-presence/internal/geo"

	"gopkg.in/yaml.v3"
)

type OfficesFile struct {
	MaxDistanceMeters float64              `yaml:"max_distance_meters"`
	Offices           []geo.OfficeLocation `yaml:"offices"`
}

func DefaultOffices() OfficesFile {
	return OfficesFile{
		MaxDistanceMeters: defaultMaxDistance,
		Offices: []geo.OfficeLocation{
			{
				Key:        "main",
				Name:       "Main Office",
				Address:    "Nanded, Maharashtra, India",
				Coordinate: geo.Coordinate{Latitude: 19.2605095, Longitude: 76.8209881},
			},
			{
				Key:        "branch1",
				Name:       "Branch Office - Gurugram",
				Address:    "Cyber City, Gurugram, Haryana, India",
				Coordinate: geo.Coordinate{Latitude: 28.5355, Longitude: 77.3910},
			},
		},
	}
}

// LoadOffices reads the office catalogue. An empty path yields the defaults.
func LoadOffices(path string) (OfficesFile, error) {
	if path == "" {
		return DefaultOffices(), nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return OfficesFile{}, fmt.Errorf("read offices file: %w", err)
	}
	return ParseOffices(raw)
}

func ParseOffices(raw []byte) (OfficesFile, error) {
	var f OfficesFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return OfficesFile{}, fmt.Errorf("unmarshal offices yaml: %w", err)
	}

	if f.MaxDistanceMeters == 0 {
		f.MaxDistanceMeters = defaultMaxDistance
	}
	if f.MaxDistanceMeters < 0 {
		return OfficesFile{}, fmt.Errorf("max_distance_meters must be positive")
	}
	if len(f.Offices) == 0 {
		return OfficesFile{}, fmt.Errorf("offices file lists no office")
	}

	seen := make(map[string]struct{}, len(f.Offices))
	for i, o := range f.Offices {
		if o.Key == "" {
			return OfficesFile{}, fmt.Errorf("office #%d has no key", i)
		}
		if _, dup := seen[o.Key]; dup {
			return OfficesFile{}, fmt.Errorf("duplicate office key %q", o.Key)
		}
		seen[o.Key] = struct{}{}
		if err := o.Coordinate.Validate(); err != nil {
			return OfficesFile{}, fmt.Errorf("office %q: %w", o.Key, err)
		}
	}
	return f, nil
}
