// Package ledger performs tool checkouts and returns as single all-or-nothing
// database transactions, keeping stock counts and the transaction log in step.
package ledger

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"toolLendingManagement/models"
)

// Business-rule errors surfaced to callers. Anything else coming out of the
// ledger is a store failure.
var (
	ErrToolNotFound   = errors.New("tool not found")
	ErrOutOfStock     = errors.New("tool out of stock")
	ErrNoOpenCheckout = errors.New("no open checkout for this tool")
)

// timeFormat matches SQLite's CURRENT_TIMESTAMP text representation.
const timeFormat = "2006-01-02 15:04:05"

// Ledger owns the checkout/return workflow. It takes the raw handle rather
// than the per-entity repositories because both mutations of an operation
// must ride the same database transaction.
type Ledger struct {
	db  *sql.DB
	now func() time.Time
}

func New(db *sql.DB) *Ledger {
	return &Ledger{db: db, now: time.Now}
}

// Checkout decrements the tool's stock and records an open transaction for
// userID. The decrement is guarded by quantity > 0, so two concurrent
// checkouts of the last unit resolve to exactly one success; the loser sees
// ErrOutOfStock and no mutation. The guarded UPDATE is deliberately the first
// statement of the transaction: SQLite acquires the write lock up front and
// busy_timeout serializes contenders instead of failing a later lock upgrade.
func (l *Ledger) Checkout(ctx context.Context, userID int64, barcode string) (*models.Transaction, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	tx, err := l.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin checkout: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx,
		`UPDATE tools SET quantity = quantity - 1 WHERE barcode = ? AND quantity > 0`, barcode)
	if err != nil {
		return nil, fmt.Errorf("decrement stock: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	if n == 0 {
		// Nothing decremented: unknown barcode or an empty shelf.
		if _, _, err := lookupTool(ctx, tx, barcode); err != nil {
			return nil, err
		}
		return nil, ErrOutOfStock
	}

	toolID, _, err := lookupTool(ctx, tx, barcode)
	if err != nil {
		return nil, err
	}

	checkoutAt := l.now().UTC().Format(timeFormat)
	ins, err := tx.ExecContext(ctx,
		`INSERT INTO transactions (user_id, tool_id, checkout_time) VALUES (?, ?, ?)`,
		userID, toolID, checkoutAt)
	if err != nil {
		return nil, fmt.Errorf("record checkout: %w", err)
	}
	id, err := ins.LastInsertId()
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit checkout: %w", err)
	}
	uid := userID
	return &models.Transaction{ID: id, UserID: &uid, ToolID: toolID, CheckoutTime: checkoutAt}, nil
}

// Return closes the most recent open transaction for (userID, tool) and
// increments the tool's stock. When no open transaction exists the call fails
// with ErrNoOpenCheckout and the stock is left untouched.
func (l *Ledger) Return(ctx context.Context, userID int64, barcode string) (*models.Transaction, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	tx, err := l.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin return: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	toolID, _, err := lookupTool(ctx, tx, barcode)
	if err != nil {
		return nil, err
	}

	var openID int64
	var checkoutAt string
	err = tx.QueryRowContext(ctx,
		`SELECT id, checkout_time FROM transactions
         WHERE user_id = ? AND tool_id = ? AND return_time IS NULL
         ORDER BY checkout_time DESC, id DESC LIMIT 1`, userID, toolID).
		Scan(&openID, &checkoutAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNoOpenCheckout
		}
		return nil, err
	}

	returnAt := l.now().UTC().Format(timeFormat)
	res, err := tx.ExecContext(ctx,
		`UPDATE transactions SET return_time = ? WHERE id = ? AND return_time IS NULL`, returnAt, openID)
	if err != nil {
		return nil, fmt.Errorf("close transaction: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, ErrNoOpenCheckout
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE tools SET quantity = quantity + 1 WHERE id = ?`, toolID); err != nil {
		return nil, fmt.Errorf("increment stock: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit return: %w", err)
	}
	uid := userID
	return &models.Transaction{ID: openID, UserID: &uid, ToolID: toolID, CheckoutTime: checkoutAt, ReturnTime: &returnAt}, nil
}

func lookupTool(ctx context.Context, tx *sql.Tx, barcode string) (id, quantity int64, err error) {
	err = tx.QueryRowContext(ctx, `SELECT id, quantity FROM tools WHERE barcode = ?`, barcode).
		Scan(&id, &quantity)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, 0, ErrToolNotFound
		}
		return 0, 0, err
	}
	return id, quantity, nil
}
