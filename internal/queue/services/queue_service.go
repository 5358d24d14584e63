package services

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/go-sql-driver/mysql"

	"github.com/mvcastillo/healthoffice-backend/internal/common/apperr"
	common "github.com/mvcastillo/healthoffice-backend/internal/common/models"
	"github.com/mvcastillo/healthoffice-backend/internal/queue/models"
	"github.com/mvcastillo/healthoffice-backend/pkg/queuecode"
)

// mysqlDuplicateEntry is the driver error number raised when an insert
// violates a unique index.
const mysqlDuplicateEntry = 1062

// enqueueAttempts bounds the retries when two enqueues race for the same
// slot sequence and the loser must re-count.
const enqueueAttempts = 3

type QueueService struct {
	DB *sql.DB
}

func NewQueueService(db *sql.DB) *QueueService {
	return &QueueService{DB: db}
}

// Enqueue mints the next ticket for the station's current quarter-hour
// slot and inserts a waiting entry. The sequence is the number of tickets
// already minted in that slot plus one; the uq_queue_ticket unique index
// is the arbiter when two enqueues count the same slot concurrently, and
// the loser re-counts and retries.
func (s *QueueService) Enqueue(stationType common.StationType, stationNumber int, patientID int64, now time.Time) (*models.QueueEntry, error) {
	if !common.ValidStationType(stationType) {
		return nil, apperr.Validationf("unknown station type %q", stationType)
	}
	if stationNumber < 1 {
		return nil, apperr.Validationf("station number must be positive, got %d", stationNumber)
	}

	for attempt := 0; attempt < enqueueAttempts; attempt++ {
		entry, err := s.enqueueOnce(stationType, stationNumber, patientID, now)
		if err != nil {
			var me *mysql.MySQLError
			if errors.As(err, &me) && me.Number == mysqlDuplicateEntry {
				continue
			}
			return nil, err
		}
		return entry, nil
	}
	return nil, apperr.Conflictf("could not mint a unique ticket for %s station %d", stationType, stationNumber)
}

func (s *QueueService) enqueueOnce(stationType common.StationType, stationNumber int, patientID int64, now time.Time) (*models.QueueEntry, error) {
	date := now.Format("2006-01-02")
	hour := now.Hour()
	quarter := queuecode.QuarterForMinute(now.Minute())
	slotPrefix := fmt.Sprintf("%02d%c-%%", hour, quarter)

	tx, err := s.DB.Begin()
	if err != nil {
		return nil, apperr.Store("begin enqueue", err)
	}

	var minted int
	err = tx.QueryRow(`
		SELECT COUNT(*)
		FROM queue_entries
		WHERE station_type = ? AND station_number = ? AND queue_date = ? AND ticket_code LIKE ?
	`, string(stationType), stationNumber, date, slotPrefix).Scan(&minted)
	if err != nil {
		tx.Rollback()
		return nil, apperr.Store("count slot tickets", err)
	}

	ticket, err := queuecode.Encode(hour, quarter, minted+1)
	if err != nil {
		tx.Rollback()
		return nil, err
	}

	res, err := tx.Exec(`
		INSERT INTO queue_entries
			(patient_id, station_type, station_number, queue_date, ticket_code, status)
		VALUES (?, ?, ?, ?, ?, 'waiting')
	`, patientID, string(stationType), stationNumber, date, ticket)
	if err != nil {
		tx.Rollback()
		return nil, apperr.Store("insert queue entry", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		tx.Rollback()
		return nil, apperr.Store("read queue entry id", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, apperr.Store("commit enqueue", err)
	}

	return &models.QueueEntry{
		ID:        id,
		PatientID: patientID,
		Station:   common.Station{Type: stationType, Number: stationNumber},
		QueueDate: date,
		Ticket:    ticket,
		Status:    models.StatusWaiting,
		CreatedAt: now,
	}, nil
}

// CallNext moves the oldest waiting entry to in_progress and returns the
// announcement payload. NotFound when the queue is empty.
func (s *QueueService) CallNext(stationType common.StationType, stationNumber int, date string, now time.Time) (*models.CalledPatient, error) {
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return nil, apperr.Validationf("invalid date %q, expected YYYY-MM-DD", date)
	}

	tx, err := s.DB.Begin()
	if err != nil {
		return nil, apperr.Store("begin call", err)
	}

	var called models.CalledPatient
	called.Station = common.Station{Type: stationType, Number: stationNumber}
	err = tx.QueryRow(`
		SELECT q.id, q.patient_id, CONCAT(p.surname, ', ', p.given_name), q.ticket_code
		FROM queue_entries q
		JOIN patients p ON q.patient_id = p.id
		WHERE q.station_type = ? AND q.station_number = ? AND q.queue_date = ? AND q.status = 'waiting'
		ORDER BY q.ticket_code ASC
		LIMIT 1
		FOR UPDATE
	`, string(stationType), stationNumber, date).Scan(&called.EntryID, &called.PatientID, &called.Name, &called.Ticket)
	if err == sql.ErrNoRows {
		tx.Rollback()
		return nil, apperr.NotFoundf("no patients waiting at %s station %d", stationType, stationNumber)
	}
	if err != nil {
		tx.Rollback()
		return nil, apperr.Store("select next waiting", err)
	}

	res, err := tx.Exec(`
		UPDATE queue_entries SET status = 'in_progress', started_at = ? WHERE id = ? AND status = 'waiting'
	`, now, called.EntryID)
	if err != nil {
		tx.Rollback()
		return nil, apperr.Store("start queue entry", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		tx.Rollback()
		return nil, apperr.Store("start queue entry", err)
	}
	if affected == 0 {
		tx.Rollback()
		return nil, apperr.Conflictf("entry %d was taken by another caller", called.EntryID)
	}

	if err := tx.Commit(); err != nil {
		return nil, apperr.Store("commit call", err)
	}
	return &called, nil
}

// Complete marks an in-progress entry done.
func (s *QueueService) Complete(entryID int64) error {
	return s.transition(entryID, models.StatusInProgress, models.StatusDone)
}

// Skip marks a waiting entry skipped (patient not present when called up).
func (s *QueueService) Skip(entryID int64) error {
	return s.transition(entryID, models.StatusWaiting, models.StatusSkipped)
}

func (s *QueueService) transition(entryID int64, from, to string) error {
	var current string
	err := s.DB.QueryRow("SELECT status FROM queue_entries WHERE id = ?", entryID).Scan(&current)
	if err == sql.ErrNoRows {
		return apperr.NotFoundf("queue entry %d not found", entryID)
	}
	if err != nil {
		return apperr.Store("check queue entry", err)
	}
	if current != from {
		return apperr.Validationf("queue entry %d is %s, expected %s", entryID, current, from)
	}

	res, err := s.DB.Exec(
		"UPDATE queue_entries SET status = ? WHERE id = ? AND status = ?",
		to, entryID, from,
	)
	if err != nil {
		return apperr.Store("update queue entry", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return apperr.Store("update queue entry", err)
	}
	if affected == 0 {
		return apperr.Conflictf("queue entry %d changed state concurrently", entryID)
	}
	return nil
}
