package models

import (
	"time"

	common "github.com/mvcastillo/healthoffice-backend/internal/common/models"
)

const (
	StatusWaiting    = "waiting"
	StatusInProgress = "in_progress"
	StatusDone       = "done"
	StatusSkipped    = "skipped"
	StatusExpired    = "expired"
)

// QueueEntry is one patient's place in a station queue. The ticket code
// is minted once on entry and never reused.
type QueueEntry struct {
	ID        int64          `json:"id"`
	PatientID int64          `json:"patient_id"`
	Station   common.Station `json:"station"`
	QueueDate string         `json:"queue_date"` // "2006-01-02"
	Ticket    string         `json:"ticket_code"`
	Status    string         `json:"status"`
	StartedAt *time.Time     `json:"started_at,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
}

// CalledPatient is the announcement payload produced when a station calls
// its next patient; the ws hub broadcasts it to waiting-room displays.
type CalledPatient struct {
	EntryID   int64          `json:"entry_id"`
	PatientID int64          `json:"patient_id"`
	Name      string         `json:"name"`
	Ticket    string         `json:"ticket"`
	Station   common.Station `json:"station"`
}
