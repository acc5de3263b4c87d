package testutil

import (
	"database/sql"
	"testing"
	"time"

	"toolLendingManagement/internal/auth"
	"toolLendingManagement/internal/db"
)

// OpenInMemoryDB opens an in-memory SQLite database and applies migrations.
// A shared-cache URI keeps multiple connections on the same database. Cleanup
// is registered on t.
func OpenInMemoryDB(t *testing.T, name string) *sql.DB {
	t.Helper()
	d, err := db.Open("file:" + name + "?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { _ = d.Close() })
	return d
}

// SessionToken issues a signed session token for tests.
func SessionToken(t *testing.T, sm *auth.SessionManager, id *auth.Identity, ttl time.Duration) string {
	t.Helper()
	token, err := sm.Issue(id, ttl)
	if err != nil {
		t.Fatalf("issue session token: %v", err)
	}
	return token
}
