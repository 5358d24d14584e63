package services

import (
	"database/sql"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/mvcastillo/healthoffice-backend/internal/common/apperr"
	"github.com/mvcastillo/healthoffice-backend/internal/employee/models"
	"github.com/mvcastillo/healthoffice-backend/pkg/utils"
)

type EmployeeService struct {
	DB *sql.DB
}

func NewEmployeeService(db *sql.DB) *EmployeeService {
	return &EmployeeService{DB: db}
}

// ListActive returns all non-deleted employees ordered for display.
func (s *EmployeeService) ListActive() ([]models.Employee, error) {
	query := `
		SELECT id, surname, given_name, role, username, created_at, updated_at
		FROM employees
		WHERE deleted_at IS NULL
		ORDER BY surname, given_name
	`
	rows, err := s.DB.Query(query)
	if err != nil {
		return nil, apperr.Store("list employees", err)
	}
	defer rows.Close()

	var out []models.Employee
	for rows.Next() {
		var e models.Employee
		if err := rows.Scan(&e.ID, &e.Surname, &e.GivenName, &e.Role, &e.Username, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, apperr.Store("scan employee", err)
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.Store("list employees", err)
	}
	return out, nil
}

// ResolveActive loads one active employee; a missing or deactivated id is
// a NotFoundError.
func (s *EmployeeService) ResolveActive(id int64) (*models.Employee, error) {
	var e models.Employee
	err := s.DB.QueryRow(`
		SELECT id, surname, given_name, role, username, created_at, updated_at
		FROM employees
		WHERE id = ? AND deleted_at IS NULL
	`, id).Scan(&e.ID, &e.Surname, &e.GivenName, &e.Role, &e.Username, &e.CreatedAt, &e.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, apperr.NotFoundf("employee %d not found or inactive", id)
	}
	if err != nil {
		return nil, apperr.Store("resolve employee", err)
	}
	return &e, nil
}

// Login verifies credentials and issues a JWT valid for one shift day.
func (s *EmployeeService) Login(username, password string) (string, *models.Employee, error) {
	var e models.Employee
	var hashed string
	err := s.DB.QueryRow(`
		SELECT id, surname, given_name, role, username, password
		FROM employees
		WHERE username = ? AND deleted_at IS NULL
	`, username).Scan(&e.ID, &e.Surname, &e.GivenName, &e.Role, &e.Username, &hashed)
	if err == sql.ErrNoRows {
		return "", nil, apperr.NotFoundf("unknown username")
	}
	if err != nil {
		return "", nil, apperr.Store("load credentials", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(hashed), []byte(password)); err != nil {
		return "", nil, apperr.Validationf("invalid password")
	}

	token, err := utils.GenerateJWTToken(e.ID, e.Role, e.Username, time.Now().Add(12*time.Hour))
	if err != nil {
		return "", nil, err
	}
	return token, &e, nil
}

// ResetPassword re-hashes and stores a new password for an active employee.
func (s *EmployeeService) ResetPassword(employeeID int64, newPassword string) error {
	if len(newPassword) < 8 {
		return apperr.Validationf("password must be at least 8 characters")
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	res, err := s.DB.Exec(`
		UPDATE employees SET password = ? WHERE id = ? AND deleted_at IS NULL
	`, string(hashed), employeeID)
	if err != nil {
		return apperr.Store("reset password", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return apperr.Store("reset password", err)
	}
	if affected == 0 {
		return apperr.NotFoundf("employee %d not found or inactive", employeeID)
	}
	return nil
}
