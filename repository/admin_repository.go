package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"toolLendingManagement/models"
)

type AdminRepository struct {
	db *sql.DB
}

func NewAdminRepository(db *sql.DB) *AdminRepository {
	return &AdminRepository{db: db}
}

// Create inserts a new admin with a precomputed password hash.
// Returns ErrDuplicate when the username (or RFID tag) is already taken.
func (r *AdminRepository) Create(ctx context.Context, username, passwordHash string, rfidTag *string) (*models.Admin, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var tag any
	if rfidTag != nil {
		tag = *rfidTag
	}
	res, err := r.db.ExecContext(ctx, `INSERT INTO admins (username, password_hash, rfid_tag) VALUES (?, ?, ?)`,
		username, passwordHash, tag)
	if err != nil {
		return nil, translateUnique(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return &models.Admin{ID: id, Username: username, PasswordHash: passwordHash, RFIDTag: rfidTag}, nil
}

func (r *AdminRepository) GetByUsername(ctx context.Context, username string) (*models.Admin, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	return scanAdmin(r.db.QueryRowContext(ctx,
		`SELECT id, username, password_hash, rfid_tag FROM admins WHERE username = ?`, username))
}

func (r *AdminRepository) GetByRFID(ctx context.Context, rfidTag string) (*models.Admin, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	return scanAdmin(r.db.QueryRowContext(ctx,
		`SELECT id, username, password_hash, rfid_tag FROM admins WHERE rfid_tag = ?`, rfidTag))
}

func (r *AdminRepository) GetByID(ctx context.Context, id int64) (*models.Admin, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	return scanAdmin(r.db.QueryRowContext(ctx,
		`SELECT id, username, password_hash, rfid_tag FROM admins WHERE id = ?`, id))
}

// Count reports how many admin rows exist. Zero triggers the default-admin
// bootstrap in the auth service.
func (r *AdminRepository) Count(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var n int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM admins`).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

func (r *AdminRepository) UpdatePasswordHash(ctx context.Context, id int64, passwordHash string) error {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	res, err := r.db.ExecContext(ctx, `UPDATE admins SET password_hash = ? WHERE id = ?`, passwordHash, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func scanAdmin(row *sql.Row) (*models.Admin, error) {
	var a models.Admin
	var tag sql.NullString
	err := row.Scan(&a.ID, &a.Username, &a.PasswordHash, &tag)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	if tag.Valid {
		v := tag.String
		a.RFIDTag = &v
	}
	return &a, nil
}
