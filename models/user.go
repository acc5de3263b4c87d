package models

// Role classifies an identity for route-level authorization.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// User represents a borrower identified by an RFID badge.
// It maps to the `users` table in SQLite.
type User struct {
	ID      int64  `db:"id" json:"id"`
	Name    string `db:"name" json:"name"`
	RFIDTag string `db:"rfid_tag" json:"rfid_tag"`
	Role    Role   `db:"role" json:"role"`
}
