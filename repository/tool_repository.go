package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"toolLendingManagement/models"
)

type ToolRepository struct {
	db *sql.DB
}

func NewToolRepository(db *sql.DB) *ToolRepository {
	return &ToolRepository{db: db}
}

// Create inserts a new tool. Returns ErrDuplicate when the barcode is taken.
func (r *ToolRepository) Create(ctx context.Context, t *models.Tool) (*models.Tool, error) {
	if t == nil {
		return nil, errors.New("tool is nil")
	}
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var image any
	if t.Image != nil {
		image = *t.Image
	}
	res, err := r.db.ExecContext(ctx, `INSERT INTO tools (name, barcode, quantity, image) VALUES (?,?,?,?)`,
		t.Name, t.Barcode, t.Quantity, image)
	if err != nil {
		return nil, translateUnique(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	t.ID = id
	return t, nil
}

func (r *ToolRepository) GetByID(ctx context.Context, id int64) (*models.Tool, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	return scanTool(r.db.QueryRowContext(ctx,
		`SELECT id, name, barcode, quantity, image FROM tools WHERE id = ?`, id))
}

func (r *ToolRepository) GetByBarcode(ctx context.Context, barcode string) (*models.Tool, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	return scanTool(r.db.QueryRowContext(ctx,
		`SELECT id, name, barcode, quantity, image FROM tools WHERE barcode = ?`, barcode))
}

func (r *ToolRepository) List(ctx context.Context) ([]models.Tool, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, `SELECT id, name, barcode, quantity, image FROM tools ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []models.Tool
	for rows.Next() {
		var t models.Tool
		var image sql.NullString
		if err := rows.Scan(&t.ID, &t.Name, &t.Barcode, &t.Quantity, &image); err != nil {
			return nil, err
		}
		if image.Valid {
			v := image.String
			t.Image = &v
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Delete removes a tool by id. The schema cascades the delete to the tool's
// transaction rows.
func (r *ToolRepository) Delete(ctx context.Context, id int64) error {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	_, err := r.db.ExecContext(ctx, `DELETE FROM tools WHERE id = ?`, id)
	return err
}

func scanTool(row *sql.Row) (*models.Tool, error) {
	var t models.Tool
	var image sql.NullString
	err := row.Scan(&t.ID, &t.Name, &t.Barcode, &t.Quantity, &image)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	if image.Valid {
		v := image.String
		t.Image = &v
	}
	return &t, nil
}
