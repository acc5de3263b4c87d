package models

// Room is an optional location dimension for the catalog.
type Room struct {
	ID   int64  `db:"id" json:"id"`
	Name string `db:"name" json:"name"`
}
