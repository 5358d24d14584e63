package services

import (
	"database/sql"

	"github.com/mvcastillo/healthoffice-backend/internal/common/apperr"
	"github.com/mvcastillo/healthoffice-backend/internal/referral/models"
)

type ReferralService struct {
	DB *sql.DB
}

func NewReferralService(db *sql.DB) *ReferralService {
	return &ReferralService{DB: db}
}

// Create issues a new referral in pending state.
func (s *ReferralService) Create(patientID, issuedBy int64, destination, reason string) (int64, error) {
	if destination == "" {
		return 0, apperr.Validationf("destination must be provided")
	}
	if reason == "" {
		return 0, apperr.Validationf("reason must be provided")
	}

	var exists int
	err := s.DB.QueryRow("SELECT 1 FROM patients WHERE id = ?", patientID).Scan(&exists)
	if err == sql.ErrNoRows {
		return 0, apperr.NotFoundf("patient %d not found", patientID)
	}
	if err != nil {
		return 0, apperr.Store("resolve patient", err)
	}

	res, err := s.DB.Exec(`
		INSERT INTO referrals (patient_id, issued_by, destination, reason, status)
		VALUES (?, ?, ?, ?, 'pending')
	`, patientID, issuedBy, destination, reason)
	if err != nil {
		return 0, apperr.Store("insert referral", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, apperr.Store("read referral id", err)
	}
	return id, nil
}

// Apply fires one named action against a referral. The guard table
// decides legality; the UPDATE is conditioned on the status we read, so
// a concurrent writer (operator or sweep) makes this a conflict instead
// of a lost update.
func (s *ReferralService) Apply(referralID int64, action string) error {
	target, ok := models.TargetStatus(action)
	if !ok {
		return apperr.Validationf("unknown referral action %q", action)
	}

	var current models.ReferralStatus
	err := s.DB.QueryRow("SELECT status FROM referrals WHERE id = ?", referralID).Scan(&current)
	if err == sql.ErrNoRows {
		return apperr.NotFoundf("referral %d not found", referralID)
	}
	if err != nil {
		return apperr.Store("check referral", err)
	}

	if !models.ValidTransition(action, current) {
		return apperr.Validationf("cannot %s a %s referral", action, current)
	}

	res, err := s.DB.Exec(
		"UPDATE referrals SET status = ? WHERE id = ? AND status = ?",
		string(target), referralID, string(current),
	)
	if err != nil {
		return apperr.Store("update referral", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return apperr.Store("update referral", err)
	}
	if affected == 0 {
		return apperr.Conflictf("referral %d changed state concurrently", referralID)
	}
	return nil
}

// GetByID loads one referral.
func (s *ReferralService) GetByID(referralID int64) (*models.Referral, error) {
	var r models.Referral
	err := s.DB.QueryRow(`
		SELECT id, patient_id, issued_by, destination, reason, status, created_at, updated_at
		FROM referrals WHERE id = ?
	`, referralID).Scan(&r.ID, &r.PatientID, &r.IssuedBy, &r.Destination, &r.Reason, &r.Status, &r.CreatedAt, &r.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, apperr.NotFoundf("referral %d not found", referralID)
	}
	if err != nil {
		return nil, apperr.Store("load referral", err)
	}
	return &r, nil
}

// ListByStatus returns referrals in one status, newest first.
func (s *ReferralService) ListByStatus(status models.ReferralStatus) ([]models.Referral, error) {
	rows, err := s.DB.Query(`
		SELECT id, patient_id, issued_by, destination, reason, status, created_at, updated_at
		FROM referrals
		WHERE status = ?
		ORDER BY created_at DESC
	`, string(status))
	if err != nil {
		return nil, apperr.Store("list referrals", err)
	}
	defer rows.Close()

	var out []models.Referral
	for rows.Next() {
		var r models.Referral
		if err := rows.Scan(&r.ID, &r.PatientID, &r.IssuedBy, &r.Destination, &r.Reason, &r.Status, &r.CreatedAt, &r.UpdatedAt); err != nil {
			return nil, apperr.Store("scan referral", err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.Store("list referrals", err)
	}
	return out, nil
}
