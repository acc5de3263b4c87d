package models

// Transaction records a single checkout. A nil ReturnTime means the tool is
// still out; the return flow closes the most recent open transaction for the
// (user, tool) pair. UserID goes nil when the borrower is later deleted, so
// the checkout history survives user removal.
// Times are stored as SQLite TIMESTAMP text (UTC, `2006-01-02 15:04:05`).
type Transaction struct {
	ID           int64   `db:"id" json:"id"`
	UserID       *int64  `db:"user_id" json:"user_id,omitempty"`
	ToolID       int64   `db:"tool_id" json:"tool_id"`
	CheckoutTime string  `db:"checkout_time" json:"checkout_time"`
	ReturnTime   *string `db:"return_time" json:"return_time,omitempty"`
}

// LogEntry is a transaction joined with its user and tool names, as rendered
// on the admin logs view.
type LogEntry struct {
	ID           int64   `json:"id"`
	UserName     string  `json:"user_name"`
	ToolName     string  `json:"tool_name"`
	Barcode      string  `json:"barcode"`
	CheckoutTime string  `json:"checkout_time"`
	ReturnTime   *string `json:"return_time,omitempty"`
}
