package repository

import (
	"context"
	"errors"
	"testing"

	"toolLendingManagement/internal/db"
	"toolLendingManagement/models"
)

func TestToolRepository_CRUDAndQueries(t *testing.T) {
	d, err := db.Open("file:toolrepo?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = d.Close() })

	repo := NewToolRepository(d)
	ctx := context.Background()

	created, err := repo.Create(ctx, &models.Tool{Name: "Drill", Barcode: "D100", Quantity: 2})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.ID == 0 {
		t.Fatalf("missing id: %+v", created)
	}

	g, err := repo.GetByBarcode(ctx, "D100")
	if err != nil || g == nil || g.Name != "Drill" || g.Quantity != 2 {
		t.Fatalf("get by barcode: %v %+v", err, g)
	}

	missing, err := repo.GetByBarcode(ctx, "X999")
	if err != nil || missing != nil {
		t.Fatalf("expected nil for unknown barcode, got %+v err=%v", missing, err)
	}

	list, err := repo.List(ctx)
	if err != nil || len(list) != 1 {
		t.Fatalf("list: %v len=%d", err, len(list))
	}

	if err := repo.Delete(ctx, created.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	gone, err := repo.GetByID(ctx, created.ID)
	if err != nil || gone != nil {
		t.Fatalf("expected tool deleted, got %+v err=%v", gone, err)
	}
}

func TestToolRepository_DuplicateBarcode(t *testing.T) {
	d, err := db.Open("file:toolrepo_dup?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = d.Close() })

	repo := NewToolRepository(d)
	ctx := context.Background()

	if _, err := repo.Create(ctx, &models.Tool{Name: "Drill", Barcode: "D100", Quantity: 1}); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := repo.Create(ctx, &models.Tool{Name: "Saw", Barcode: "D100", Quantity: 1}); !errors.Is(err, ErrDuplicate) {
		t.Fatalf("err = %v, want ErrDuplicate", err)
	}
	list, err := repo.List(ctx)
	if err != nil || len(list) != 1 {
		t.Fatalf("store changed by failed insert: %v len=%d", err, len(list))
	}
}

// Deleting a tool cascades to its transaction rows.
func TestToolRepository_DeleteCascadesTransactions(t *testing.T) {
	d, err := db.Open("file:toolrepo_cascade?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = d.Close() })

	tools := NewToolRepository(d)
	users := NewUserRepository(d)
	ctx := context.Background()

	u, err := users.Create(ctx, "alice", "TAG-1")
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	tool, err := tools.Create(ctx, &models.Tool{Name: "Drill", Barcode: "D100", Quantity: 1})
	if err != nil {
		t.Fatalf("create tool: %v", err)
	}
	if _, err := d.Exec(`INSERT INTO transactions (user_id, tool_id, checkout_time) VALUES (?, ?, '2026-01-02 10:00:00')`, u.ID, tool.ID); err != nil {
		t.Fatalf("insert transaction: %v", err)
	}

	if err := tools.Delete(ctx, tool.ID); err != nil {
		t.Fatalf("delete tool: %v", err)
	}
	var n int
	if err := d.QueryRow(`SELECT COUNT(*) FROM transactions`).Scan(&n); err != nil {
		t.Fatalf("count transactions: %v", err)
	}
	if n != 0 {
		t.Fatalf("transactions left after tool delete: %d", n)
	}
}
