package services

import (
	"database/sql"
	"time"

	"github.com/mvcastillo/healthoffice-backend/config"
	"github.com/mvcastillo/healthoffice-backend/internal/common/apperr"
	common "github.com/mvcastillo/healthoffice-backend/internal/common/models"
	"github.com/mvcastillo/healthoffice-backend/internal/occupancy/models"
)

type OccupancyService struct {
	DB      *sql.DB
	Catalog *config.StationCatalog
}

func NewOccupancyService(db *sql.DB, catalog *config.StationCatalog) *OccupancyService {
	return &OccupancyService{DB: db, Catalog: catalog}
}

// Snapshot computes per-station occupancy for the given date at the given
// wall-clock time. It is a pure read: callers needing freshness poll it.
// An empty catalogue yields an empty slice, which is a legitimate
// "no stations configured" state; storage failures propagate as errors.
func (s *OccupancyService) Snapshot(date string, now time.Time) ([]models.StationSnapshot, error) {
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return nil, apperr.Validationf("invalid date %q, expected YYYY-MM-DD", date)
	}

	stations := s.Catalog.Stations()
	out := make([]models.StationSnapshot, 0, len(stations))
	timeOfDay := now.Format("15:04:05")

	for _, st := range stations {
		snap := models.StationSnapshot{Station: st}

		active, err := s.stationStaffed(st, date, timeOfDay)
		if err != nil {
			return nil, err
		}
		if !active {
			// Unstaffed stations always report zero counts, whatever
			// queue rows exist for them.
			out = append(out, snap)
			continue
		}
		snap.IsActive = true

		if err := s.DB.QueryRow(`
			SELECT COALESCE(SUM(status = 'waiting'), 0),
			       COALESCE(SUM(status = 'in_progress'), 0)
			FROM queue_entries
			WHERE station_type = ? AND station_number = ? AND queue_date = ?
		`, string(st.Type), st.Number, date).Scan(&snap.WaitingCount, &snap.InProgressCount); err != nil {
			return nil, apperr.Store("count queue entries", err)
		}

		current, err := s.currentPatient(st, date)
		if err != nil {
			return nil, err
		}
		snap.Current = current

		out = append(out, snap)
	}

	return out, nil
}

// stationStaffed reports whether an active assignment covers timeOfDay on
// date for this station. Shift bounds are inclusive on both ends.
func (s *OccupancyService) stationStaffed(st common.Station, date, timeOfDay string) (bool, error) {
	var n int
	err := s.DB.QueryRow(`
		SELECT COUNT(*)
		FROM station_assignments
		WHERE station_type = ? AND station_number = ? AND assigned_date = ?
		  AND status = 'active'
		  AND shift_start <= ? AND shift_end >= ?
	`, string(st.Type), st.Number, date, timeOfDay, timeOfDay).Scan(&n)
	if err != nil {
		return false, apperr.Store("check station assignment", err)
	}
	return n > 0, nil
}

// currentPatient returns the earliest-started in-progress entry, ties
// broken by ticket sequence. Nil when nobody is being served.
func (s *OccupancyService) currentPatient(st common.Station, date string) (*models.CurrentPatient, error) {
	var cp models.CurrentPatient
	err := s.DB.QueryRow(`
		SELECT q.patient_id, CONCAT(p.surname, ', ', p.given_name), q.ticket_code, q.started_at
		FROM queue_entries q
		JOIN patients p ON q.patient_id = p.id
		WHERE q.station_type = ? AND q.station_number = ? AND q.queue_date = ?
		  AND q.status = 'in_progress'
		ORDER BY q.started_at ASC, q.ticket_code ASC
		LIMIT 1
	`, string(st.Type), st.Number, date).Scan(&cp.PatientID, &cp.Name, &cp.Ticket, &cp.StartedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, apperr.Store("load current patient", err)
	}
	return &cp, nil
}
