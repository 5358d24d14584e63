package services

import (
	"database/sql"
	"errors"
	"time"

	"github.com/go-sql-driver/mysql"

	"github.com/mvcastillo/healthoffice-backend/internal/assignment/models"
	"github.com/mvcastillo/healthoffice-backend/internal/common/apperr"
	common "github.com/mvcastillo/healthoffice-backend/internal/common/models"
)

// mysqlDuplicateEntry is the driver error number raised when an insert
// violates a unique index.
const mysqlDuplicateEntry = 1062

type AssignmentService struct {
	DB *sql.DB
}

func NewAssignmentService(db *sql.DB) *AssignmentService {
	return &AssignmentService{DB: db}
}

// Assign books an employee onto a station slot for one date. Any active
// assignment the employee already holds on that date is ended in the same
// transaction, so an employee is never double-booked. The slot itself is
// guarded by the uq_assignment_slot unique index; losing the insert race
// surfaces as a ConflictError.
func (s *AssignmentService) Assign(
	employeeID int64,
	stationType common.StationType,
	stationNumber int,
	date, shiftStart, shiftEnd string,
	assignedBy int64,
) (int64, error) {
	if !common.ValidStationType(stationType) {
		return 0, apperr.Validationf("unknown station type %q", stationType)
	}
	if stationNumber < 1 {
		return 0, apperr.Validationf("station number must be positive, got %d", stationNumber)
	}
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return 0, apperr.Validationf("invalid date %q, expected YYYY-MM-DD", date)
	}
	start, err := time.Parse("15:04:05", shiftStart)
	if err != nil {
		return 0, apperr.Validationf("invalid shift_start %q, expected HH:MM:SS", shiftStart)
	}
	end, err := time.Parse("15:04:05", shiftEnd)
	if err != nil {
		return 0, apperr.Validationf("invalid shift_end %q, expected HH:MM:SS", shiftEnd)
	}
	if !start.Before(end) {
		return 0, apperr.Validationf("shift_start %s must be before shift_end %s", shiftStart, shiftEnd)
	}

	tx, err := s.DB.Begin()
	if err != nil {
		return 0, apperr.Store("begin assign", err)
	}

	var exists int
	err = tx.QueryRow(
		"SELECT 1 FROM employees WHERE id = ? AND deleted_at IS NULL",
		employeeID,
	).Scan(&exists)
	if err == sql.ErrNoRows {
		tx.Rollback()
		return 0, apperr.NotFoundf("employee %d not found or inactive", employeeID)
	}
	if err != nil {
		tx.Rollback()
		return 0, apperr.Store("resolve employee", err)
	}

	// Supersede any assignment the employee already holds on this date.
	if _, err := tx.Exec(`
		UPDATE station_assignments
		SET status = 'ended', active_flag = NULL
		WHERE employee_id = ? AND assigned_date = ? AND status = 'active'
	`, employeeID, date); err != nil {
		tx.Rollback()
		return 0, apperr.Store("supersede assignment", err)
	}

	res, err := tx.Exec(`
		INSERT INTO station_assignments
			(employee_id, station_type, station_number, assigned_date, shift_start, shift_end, status, active_flag, assigned_by)
		VALUES (?, ?, ?, ?, ?, ?, 'active', 1, ?)
	`, employeeID, string(stationType), stationNumber, date, shiftStart, shiftEnd, assignedBy)
	if err != nil {
		tx.Rollback()
		var me *mysql.MySQLError
		if errors.As(err, &me) && me.Number == mysqlDuplicateEntry {
			return 0, apperr.Conflictf("%s station %d is already assigned on %s", stationType, stationNumber, date)
		}
		return 0, apperr.Store("insert assignment", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		tx.Rollback()
		return 0, apperr.Store("read assignment id", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, apperr.Store("commit assign", err)
	}
	return id, nil
}

// Unassign ends the matching active assignment. A second call, or a call
// against a slot that was never assigned, is a successful no-op.
func (s *AssignmentService) Unassign(
	employeeID int64,
	stationType common.StationType,
	stationNumber int,
	date string,
) error {
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return apperr.Validationf("invalid date %q, expected YYYY-MM-DD", date)
	}

	_, err := s.DB.Exec(`
		UPDATE station_assignments
		SET status = 'ended', active_flag = NULL
		WHERE employee_id = ? AND station_type = ? AND station_number = ? AND assigned_date = ? AND status = 'active'
	`, employeeID, string(stationType), stationNumber, date)
	if err != nil {
		return apperr.Store("unassign", err)
	}
	return nil
}

// ListForDate returns every assignment on a date joined with employee
// display attributes, ordered by surname then given name. Display only;
// nothing downstream decides on this ordering.
func (s *AssignmentService) ListForDate(date string) ([]models.AssignmentRow, error) {
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return nil, apperr.Validationf("invalid date %q, expected YYYY-MM-DD", date)
	}

	rows, err := s.DB.Query(`
		SELECT a.id, a.employee_id, a.station_type, a.station_number,
		       DATE_FORMAT(a.assigned_date, '%Y-%m-%d'),
		       TIME_FORMAT(a.shift_start, '%H:%i:%s'),
		       TIME_FORMAT(a.shift_end, '%H:%i:%s'),
		       a.status, a.assigned_by, a.created_at,
		       e.surname, e.given_name, e.role
		FROM station_assignments a
		JOIN employees e ON a.employee_id = e.id
		WHERE a.assigned_date = ?
		ORDER BY e.surname, e.given_name
	`, date)
	if err != nil {
		return nil, apperr.Store("list assignments", err)
	}
	defer rows.Close()

	var out []models.AssignmentRow
	for rows.Next() {
		var r models.AssignmentRow
		if err := rows.Scan(
			&r.ID, &r.EmployeeID, &r.StationType, &r.StationNumber,
			&r.AssignedDate, &r.ShiftStart, &r.ShiftEnd,
			&r.Status, &r.AssignedBy, &r.CreatedAt,
			&r.Surname, &r.GivenName, &r.Role,
		); err != nil {
			return nil, apperr.Store("scan assignment", err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.Store("list assignments", err)
	}
	return out, nil
}
