package services

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mvcastillo/healthoffice-backend/config"
	"github.com/mvcastillo/healthoffice-backend/internal/common/apperr"
	common "github.com/mvcastillo/healthoffice-backend/internal/common/models"
)

func newMock(t *testing.T, catalog *config.StationCatalog) (*OccupancyService, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewOccupancyService(db, catalog), mock
}

func oneDoctorCatalog() *config.StationCatalog {
	return &config.StationCatalog{
		Groups: []config.StationGroup{{Type: common.StationDoctor, Count: 1}},
	}
}

func at(t *testing.T, clock string) time.Time {
	t.Helper()
	ts, err := time.Parse("2006-01-02 15:04:05", "2025-01-10 "+clock)
	require.NoError(t, err)
	return ts
}

func TestSnapshotEmptyCatalog(t *testing.T) {
	svc, mock := newMock(t, &config.StationCatalog{})

	snaps, err := svc.Snapshot("2025-01-10", at(t, "10:00:00"))
	require.NoError(t, err)
	assert.NotNil(t, snaps)
	assert.Empty(t, snaps)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSnapshotRejectsBadDate(t *testing.T) {
	svc, _ := newMock(t, oneDoctorCatalog())

	_, err := svc.Snapshot("Jan 10", at(t, "10:00:00"))
	require.Error(t, err)
	assert.True(t, apperr.IsValidation(err))
}

// A station whose shift does not cover the request time reports inactive
// with zeroed counts, even if queue rows exist for it.
func TestSnapshotUnstaffedStationIsZeroed(t *testing.T) {
	svc, mock := newMock(t, oneDoctorCatalog())

	// 08:00-17:00 shift does not cover 18:00, so COUNT(*) is 0 and the
	// queue tables are never consulted.
	mock.ExpectQuery("SELECT COUNT").
		WithArgs("doctor", 1, "2025-01-10", "18:00:00", "18:00:00").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	snaps, err := svc.Snapshot("2025-01-10", at(t, "18:00:00"))
	require.NoError(t, err)
	require.Len(t, snaps, 1)
	assert.False(t, snaps[0].IsActive)
	assert.Zero(t, snaps[0].WaitingCount)
	assert.Zero(t, snaps[0].InProgressCount)
	assert.Nil(t, snaps[0].Current)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSnapshotActiveStationCounts(t *testing.T) {
	svc, mock := newMock(t, oneDoctorCatalog())
	started := time.Date(2025, 1, 10, 9, 55, 0, 0, time.UTC)

	mock.ExpectQuery("SELECT COUNT").
		WithArgs("doctor", 1, "2025-01-10", "10:00:00", "10:00:00").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery("SELECT COALESCE").
		WithArgs("doctor", 1, "2025-01-10").
		WillReturnRows(sqlmock.NewRows([]string{"waiting", "in_progress"}).AddRow(4, 1))
	mock.ExpectQuery("SELECT q.patient_id").
		WithArgs("doctor", 1, "2025-01-10").
		WillReturnRows(sqlmock.NewRows([]string{"patient_id", "name", "ticket_code", "started_at"}).
			AddRow(31, "Santos, Ana", "09D-002", started))

	snaps, err := svc.Snapshot("2025-01-10", at(t, "10:00:00"))
	require.NoError(t, err)
	require.Len(t, snaps, 1)

	snap := snaps[0]
	assert.True(t, snap.IsActive)
	assert.Equal(t, 4, snap.WaitingCount)
	assert.Equal(t, 1, snap.InProgressCount)
	require.NotNil(t, snap.Current)
	assert.Equal(t, int64(31), snap.Current.PatientID)
	assert.Equal(t, "Santos, Ana", snap.Current.Name)
	assert.Equal(t, "09D-002", snap.Current.Ticket)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// Shift bounds are inclusive: a request exactly at shift_end still counts
// as staffed, which the SQL comparison handles; here we only check that a
// positive COUNT makes the station active with nobody in progress.
func TestSnapshotActiveStationIdle(t *testing.T) {
	svc, mock := newMock(t, oneDoctorCatalog())

	mock.ExpectQuery("SELECT COUNT").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery("SELECT COALESCE").
		WillReturnRows(sqlmock.NewRows([]string{"waiting", "in_progress"}).AddRow(0, 0))
	mock.ExpectQuery("SELECT q.patient_id").
		WillReturnRows(sqlmock.NewRows([]string{"patient_id", "name", "ticket_code", "started_at"}))

	snaps, err := svc.Snapshot("2025-01-10", at(t, "17:00:00"))
	require.NoError(t, err)
	require.Len(t, snaps, 1)
	assert.True(t, snaps[0].IsActive)
	assert.Nil(t, snaps[0].Current)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSnapshotMultipleStations(t *testing.T) {
	catalog := &config.StationCatalog{
		Groups: []config.StationGroup{
			{Type: common.StationDoctor, Count: 2},
			{Type: common.StationPharmacist, Count: 1},
		},
	}
	svc, mock := newMock(t, catalog)

	// doctor 1 staffed and busy, doctor 2 and pharmacist 1 unstaffed
	mock.ExpectQuery("SELECT COUNT").
		WithArgs("doctor", 1, "2025-01-10", "10:00:00", "10:00:00").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery("SELECT COALESCE").
		WillReturnRows(sqlmock.NewRows([]string{"waiting", "in_progress"}).AddRow(2, 0))
	mock.ExpectQuery("SELECT q.patient_id").
		WillReturnRows(sqlmock.NewRows([]string{"patient_id", "name", "ticket_code", "started_at"}))
	mock.ExpectQuery("SELECT COUNT").
		WithArgs("doctor", 2, "2025-01-10", "10:00:00", "10:00:00").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery("SELECT COUNT").
		WithArgs("pharmacist", 1, "2025-01-10", "10:00:00", "10:00:00").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	snaps, err := svc.Snapshot("2025-01-10", at(t, "10:00:00"))
	require.NoError(t, err)
	require.Len(t, snaps, 3)
	assert.True(t, snaps[0].IsActive)
	assert.Equal(t, 2, snaps[0].WaitingCount)
	assert.False(t, snaps[1].IsActive)
	assert.False(t, snaps[2].IsActive)
	assert.NoError(t, mock.ExpectationsWereMet())
}
