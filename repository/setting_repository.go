package repository

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"time"

	"toolLendingManagement/models"
)

type SettingRepository struct {
	db *sql.DB
}

func NewSettingRepository(db *sql.DB) *SettingRepository {
	return &SettingRepository{db: db}
}

// Get returns the value for key, or "" when the key is unset.
func (r *SettingRepository) Get(ctx context.Context, key string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var value string
	err := r.db.QueryRowContext(ctx, `SELECT value FROM settings WHERE key = ?`, key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", nil
		}
		return "", err
	}
	return value, nil
}

// Upsert stores value under key, replacing any previous value.
func (r *SettingRepository) Upsert(ctx context.Context, key, value string) error {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO settings (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, value)
	return err
}

func (r *SettingRepository) List(ctx context.Context) ([]models.Setting, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, `SELECT key, value FROM settings ORDER BY key`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []models.Setting
	for rows.Next() {
		var s models.Setting
		if err := rows.Scan(&s.Key, &s.Value); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// AutoLogoutSeconds reads auto_logout_time, falling back to the default when
// the key is unset or malformed.
func (r *SettingRepository) AutoLogoutSeconds(ctx context.Context) (int, error) {
	raw, err := r.Get(ctx, models.SettingAutoLogoutTime)
	if err != nil {
		return 0, err
	}
	if raw == "" {
		return models.DefaultAutoLogoutSeconds, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return models.DefaultAutoLogoutSeconds, nil
	}
	return n, nil
}
