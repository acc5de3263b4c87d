package auth

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"toolLendingManagement/internal/db"
	"toolLendingManagement/repository"
)

func openServiceTestDB(t *testing.T, name string) (*Service, *repository.UserRepository, *repository.AdminRepository, *sql.DB) {
	t.Helper()
	d, err := db.Open("file:" + name + "?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = d.Close() })

	users := repository.NewUserRepository(d)
	admins := repository.NewAdminRepository(d)
	return NewService(users, admins), users, admins, d
}

func TestIdentifyByRFID(t *testing.T) {
	svc, users, admins, d := openServiceTestDB(t, "auth_identify")
	ctx := context.Background()

	u, err := users.Create(ctx, "alice", "TAG-USER")
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	adminTag := "TAG-ADMIN"
	a, err := admins.Create(ctx, "boss", "hash", &adminTag)
	if err != nil {
		t.Fatalf("create admin: %v", err)
	}

	id, err := svc.IdentifyByRFID(ctx, "TAG-USER")
	if err != nil {
		t.Fatalf("identify user: %v", err)
	}
	if id.Kind != KindUser || id.ID != u.ID || id.Name != "alice" || !id.Borrower {
		t.Fatalf("unexpected user identity: %+v", id)
	}

	id, err = svc.IdentifyByRFID(ctx, "TAG-ADMIN")
	if err != nil {
		t.Fatalf("identify admin: %v", err)
	}
	if id.Kind != KindAdmin || id.ID != a.ID || id.Borrower {
		t.Fatalf("unexpected admin identity: %+v", id)
	}

	// A users-table record with the admin role identifies as an admin that
	// can still borrow.
	if _, err := d.Exec(`UPDATE users SET role = 'admin' WHERE id = ?`, u.ID); err != nil {
		t.Fatalf("promote user: %v", err)
	}
	id, err = svc.IdentifyByRFID(ctx, "TAG-USER")
	if err != nil {
		t.Fatalf("identify promoted user: %v", err)
	}
	if id.Kind != KindAdmin || !id.Borrower {
		t.Fatalf("unexpected promoted identity: %+v", id)
	}

	if _, err := svc.IdentifyByRFID(ctx, "TAG-NOPE"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestLoginBootstrapsDefaultAdminOnce(t *testing.T) {
	svc, _, admins, _ := openServiceTestDB(t, "auth_bootstrap")
	ctx := context.Background()

	// First login against an empty admin table provisions the default
	// account and asks the caller to retry.
	if _, err := svc.Login(ctx, "whoever", "whatever"); !errors.Is(err, ErrDefaultAdminCreated) {
		t.Fatalf("err = %v, want ErrDefaultAdminCreated", err)
	}
	n, err := admins.Count(ctx)
	if err != nil || n != 1 {
		t.Fatalf("admin count after bootstrap: %v n=%d", err, n)
	}

	// The retry with the default credentials succeeds.
	id, err := svc.Login(ctx, DefaultAdminUsername, DefaultAdminPassword)
	if err != nil {
		t.Fatalf("default login: %v", err)
	}
	if id.Kind != KindAdmin || id.Name != DefaultAdminUsername || id.Borrower {
		t.Fatalf("unexpected identity: %+v", id)
	}

	// Bootstrap never fires again and never resets existing credentials.
	created, err := svc.Bootstrap(ctx)
	if err != nil || created {
		t.Fatalf("second bootstrap: created=%v err=%v", created, err)
	}
}

func TestLoginRejectsBadCredentialsWithoutLockout(t *testing.T) {
	svc, _, _, _ := openServiceTestDB(t, "auth_badcreds")
	ctx := context.Background()

	if _, err := svc.Bootstrap(ctx); err != nil {
		t.Fatalf("bootstrap: %v", err)
	}

	for i := 0; i < 3; i++ {
		if _, err := svc.Login(ctx, DefaultAdminUsername, "wrong"); !errors.Is(err, ErrInvalidCredentials) {
			t.Fatalf("attempt %d: err = %v, want ErrInvalidCredentials", i+1, err)
		}
	}
	if _, err := svc.Login(ctx, "ghost", "whatever"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("unknown user err = %v, want ErrInvalidCredentials", err)
	}

	// Three failures in a row do not lock the account.
	if _, err := svc.Login(ctx, DefaultAdminUsername, DefaultAdminPassword); err != nil {
		t.Fatalf("login after failures: %v", err)
	}
}

func TestSetPassword(t *testing.T) {
	svc, _, admins, _ := openServiceTestDB(t, "auth_setpw")
	ctx := context.Background()

	if _, err := svc.Bootstrap(ctx); err != nil {
		t.Fatalf("bootstrap: %v", err)
	}
	admin, err := admins.GetByUsername(ctx, DefaultAdminUsername)
	if err != nil || admin == nil {
		t.Fatalf("get admin: %v %+v", err, admin)
	}

	if err := svc.SetPassword(ctx, admin.ID, "short"); !errors.Is(err, ErrPasswordTooShort) {
		t.Fatalf("err = %v, want ErrPasswordTooShort", err)
	}
	if err := svc.SetPassword(ctx, admin.ID, "hunter22"); err != nil {
		t.Fatalf("set password: %v", err)
	}

	if _, err := svc.Login(ctx, DefaultAdminUsername, DefaultAdminPassword); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("old password still accepted: %v", err)
	}
	if _, err := svc.Login(ctx, DefaultAdminUsername, "hunter22"); err != nil {
		t.Fatalf("new password rejected: %v", err)
	}
}
