package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mvcastillo/healthoffice-backend/internal/common/apperr"
	"github.com/mvcastillo/healthoffice-backend/internal/common/models"
)

func writeCatalog(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "stations.yml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadStations(t *testing.T) {
	path := writeCatalog(t, `
stations:
  - type: doctor
    count: 2
  - type: pharmacist
    count: 1
`)

	cat, err := LoadStations(path)
	require.NoError(t, err)

	stations := cat.Stations()
	require.Len(t, stations, 3)
	assert.Equal(t, models.Station{Type: models.StationDoctor, Number: 1}, stations[0])
	assert.Equal(t, models.Station{Type: models.StationDoctor, Number: 2}, stations[1])
	assert.Equal(t, models.Station{Type: models.StationPharmacist, Number: 1}, stations[2])
}

func TestLoadStationsEmptyCatalogIsValid(t *testing.T) {
	path := writeCatalog(t, "stations: []\n")

	cat, err := LoadStations(path)
	require.NoError(t, err)
	assert.Empty(t, cat.Stations())
}

func TestLoadStationsRejectsUnknownType(t *testing.T) {
	path := writeCatalog(t, `
stations:
  - type: janitor
    count: 1
`)

	_, err := LoadStations(path)
	require.Error(t, err)
	assert.True(t, apperr.IsValidation(err))
}

func TestLoadStationsRejectsNegativeCount(t *testing.T) {
	path := writeCatalog(t, `
stations:
  - type: doctor
    count: -1
`)

	_, err := LoadStations(path)
	require.Error(t, err)
	assert.True(t, apperr.IsValidation(err))
}

func TestLoadStationsMissingFile(t *testing.T) {
	_, err := LoadStations(filepath.Join(t.TempDir(), "nope.yml"))
	assert.Error(t, err)
}
