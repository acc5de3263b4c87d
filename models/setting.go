package models

// Well-known settings keys.
const (
	SettingAutoLogoutTime   = "auto_logout_time"
	SettingAutoSubmitLength = "auto_submit_length"
)

// DefaultAutoLogoutSeconds applies when no auto_logout_time row exists.
const DefaultAutoLogoutSeconds = 60

// MinAutoLogoutSeconds is the lowest accepted auto_logout_time value.
const MinAutoLogoutSeconds = 10

// Setting is a process-wide key/value configuration pair, upserted by admins.
type Setting struct {
	Key   string `db:"key" json:"key"`
	Value string `db:"value" json:"value"`
}
