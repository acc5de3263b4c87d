package repository

import (
	"errors"

	sqlite3 "github.com/mattn/go-sqlite3"
)

// ErrDuplicate indicates a uniqueness conflict (RFID tag, username, barcode).
// Raw driver constraint errors are translated to this at the repository
// boundary so callers never match on storage internals.
var ErrDuplicate = errors.New("duplicate record")

func translateUnique(err error) error {
	if err == nil {
		return nil
	}
	var se sqlite3.Error
	if errors.As(err, &se) {
		if se.ExtendedCode == sqlite3.ErrConstraintUnique || se.ExtendedCode == sqlite3.ErrConstraintPrimaryKey {
			return ErrDuplicate
		}
	}
	return err
}
