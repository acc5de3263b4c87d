package models

// Admin is a distinct principal from User: admins log in with username and
// password, and may optionally carry an RFID badge of their own. The password
// hash never leaves the process boundary.
type Admin struct {
	ID           int64   `db:"id" json:"id"`
	Username     string  `db:"username" json:"username"`
	PasswordHash string  `db:"password_hash" json:"-"`
	RFIDTag      *string `db:"rfid_tag" json:"rfid_tag,omitempty"`
}
