package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"toolLendingManagement/models"
)

type TransactionRepository struct {
	db *sql.DB
}

func NewTransactionRepository(db *sql.DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

func (r *TransactionRepository) GetByID(ctx context.Context, id int64) (*models.Transaction, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var t models.Transaction
	var userID sql.NullInt64
	var returnTime sql.NullString
	err := r.db.QueryRowContext(ctx,
		`SELECT id, user_id, tool_id, checkout_time, return_time FROM transactions WHERE id = ?`, id).
		Scan(&t.ID, &userID, &t.ToolID, &t.CheckoutTime, &returnTime)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	if userID.Valid {
		v := userID.Int64
		t.UserID = &v
	}
	if returnTime.Valid {
		v := returnTime.String
		t.ReturnTime = &v
	}
	return &t, nil
}

// FindOpen returns the most recent outstanding transaction for the
// (user, tool) pair, or nil when everything has been returned.
func (r *TransactionRepository) FindOpen(ctx context.Context, userID, toolID int64) (*models.Transaction, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var t models.Transaction
	var uid sql.NullInt64
	err := r.db.QueryRowContext(ctx,
		`SELECT id, user_id, tool_id, checkout_time FROM transactions
         WHERE user_id = ? AND tool_id = ? AND return_time IS NULL
         ORDER BY checkout_time DESC, id DESC LIMIT 1`, userID, toolID).
		Scan(&t.ID, &uid, &t.ToolID, &t.CheckoutTime)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	if uid.Valid {
		v := uid.Int64
		t.UserID = &v
	}
	return &t, nil
}

// ListLog joins transactions with their user and tool rows, newest checkout
// first, for the admin logs view. Users deleted after the fact show up as
// "deleted user"; tool rows are cascade-deleted so the join stays inner.
func (r *TransactionRepository) ListLog(ctx context.Context) ([]models.LogEntry, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	rows, err := r.db.QueryContext(ctx,
		`SELECT t.id, COALESCE(u.name, 'deleted user'), tl.name, tl.barcode, t.checkout_time, t.return_time
         FROM transactions t
         LEFT JOIN users u ON u.id = t.user_id
         JOIN tools tl ON tl.id = t.tool_id
         ORDER BY t.checkout_time DESC, t.id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []models.LogEntry
	for rows.Next() {
		var e models.LogEntry
		var returnTime sql.NullString
		if err := rows.Scan(&e.ID, &e.UserName, &e.ToolName, &e.Barcode, &e.CheckoutTime, &returnTime); err != nil {
			return nil, err
		}
		if returnTime.Valid {
			v := returnTime.String
			e.ReturnTime = &v
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
