package models

// Tool represents a lendable item tracked by barcode.
// Quantity is the number of units currently on the shelf; the schema enforces
// that it never drops below zero.
type Tool struct {
	ID       int64   `db:"id" json:"id"`
	Name     string  `db:"name" json:"name"`
	Barcode  string  `db:"barcode" json:"barcode"`
	Quantity int64   `db:"quantity" json:"quantity"`
	Image    *string `db:"image" json:"image,omitempty"`
}
