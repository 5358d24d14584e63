package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/mvcastillo/healthoffice-backend/internal/common/apperr"
	"github.com/mvcastillo/healthoffice-backend/internal/common/models"
)

// StationCatalog is the fixed set of service points the office operates,
// loaded from a YAML file maintained alongside the deployment. The
// occupancy snapshot reports one record per catalogued station.
type StationCatalog struct {
	Groups []StationGroup `yaml:"stations"`
}

// StationGroup declares how many numbered stations exist for one type,
// e.g. type: doctor, count: 3 yields doctor stations 1..3.
type StationGroup struct {
	Type  models.StationType `yaml:"type"`
	Count int                `yaml:"count"`
}

// LoadStations reads and validates the station catalogue. A missing file
// is an error; an empty catalogue is not.
func LoadStations(path string) (*StationCatalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cat StationCatalog
	if err := yaml.Unmarshal(data, &cat); err != nil {
		return nil, err
	}

	for _, g := range cat.Groups {
		if !models.ValidStationType(g.Type) {
			return nil, apperr.Validationf("unknown station type %q in %s", g.Type, path)
		}
		if g.Count < 0 {
			return nil, apperr.Validationf("negative station count for %q in %s", g.Type, path)
		}
	}
	return &cat, nil
}

// Stations expands the catalogue into individual numbered stations in
// declaration order.
func (c *StationCatalog) Stations() []models.Station {
	var out []models.Station
	for _, g := range c.Groups {
		for n := 1; n <= g.Count; n++ {
			out = append(out, models.Station{Type: g.Type, Number: n})
		}
	}
	return out
}
