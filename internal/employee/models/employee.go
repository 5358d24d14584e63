package models

import "time"

// Employee is a roster record. The roster is externally maintained; the
// scheduling core only reads it to validate assignments and render names.
type Employee struct {
	ID        int64     `json:"id"`
	Surname   string    `json:"surname"`
	GivenName string    `json:"given_name"`
	Role      string    `json:"role"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// DisplayName renders "Surname, GivenName" for lists and displays.
func (e Employee) DisplayName() string {
	return e.Surname + ", " + e.GivenName
}
