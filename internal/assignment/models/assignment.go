package models

import (
	"time"

	common "github.com/mvcastillo/healthoffice-backend/internal/common/models"
)

type AssignmentStatus string

const (
	AssignmentActive AssignmentStatus = "active"
	AssignmentEnded  AssignmentStatus = "ended"
)

// Assignment is one (employee, station, date, shift) row. Rows are never
// deleted: unassignment marks them ended so the audit trail survives.
type Assignment struct {
	ID            int64              `json:"id"`
	EmployeeID    int64              `json:"employee_id"`
	StationType   common.StationType `json:"station_type"`
	StationNumber int                `json:"station_number"`
	AssignedDate  string             `json:"assigned_date"` // "2006-01-02"
	ShiftStart    string             `json:"shift_start"`   // "15:04:05"
	ShiftEnd      string             `json:"shift_end"`     // "15:04:05"
	Status        AssignmentStatus   `json:"status"`
	AssignedBy    int64              `json:"assigned_by"`
	CreatedAt     time.Time          `json:"created_at"`
}

// AssignmentRow is an assignment joined with employee display attributes
// for the per-date listing.
type AssignmentRow struct {
	Assignment
	Surname   string `json:"surname"`
	GivenName string `json:"given_name"`
	Role      string `json:"role"`
}
