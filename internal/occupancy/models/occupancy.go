package models

import (
	"time"

	common "github.com/mvcastillo/healthoffice-backend/internal/common/models"
)

// CurrentPatient describes the patient being served at a station.
type CurrentPatient struct {
	PatientID int64     `json:"patient_id"`
	Name      string    `json:"name"`
	Ticket    string    `json:"ticket"`
	StartedAt time.Time `json:"started_at"`
}

// StationSnapshot is the derived, non-persisted occupancy record the
// dashboards poll for. A station with no assignment covering the request
// time reports IsActive=false and zeroed counts.
type StationSnapshot struct {
	Station         common.Station  `json:"station"`
	IsActive        bool            `json:"is_active"`
	WaitingCount    int             `json:"waiting_count"`
	InProgressCount int             `json:"in_progress_count"`
	Current         *CurrentPatient `json:"current_patient,omitempty"`
}
