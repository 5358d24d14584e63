package models

import "time"

type ReferralStatus string

const (
	ReferralPending   ReferralStatus = "pending"
	ReferralActive    ReferralStatus = "active"
	ReferralAccepted  ReferralStatus = "accepted"
	ReferralCompleted ReferralStatus = "completed"
	ReferralCancelled ReferralStatus = "cancelled"
	ReferralVoided    ReferralStatus = "voided"
)

// Referral points a patient at an internal facility or an external
// provider. Rows are mutated by explicit status actions or the sweeper's
// age rule, never deleted.
type Referral struct {
	ID          int64          `json:"id"`
	PatientID   int64          `json:"patient_id"`
	IssuedBy    int64          `json:"issued_by"`
	Destination string         `json:"destination"`
	Reason      string         `json:"reason"`
	Status      ReferralStatus `json:"status"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}
