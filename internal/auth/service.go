// Package auth validates RFID badges and admin credentials and turns the
// result into session identities carried by signed tokens.
package auth

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"toolLendingManagement/models"
	"toolLendingManagement/repository"
)

var (
	// ErrNotFound means the RFID tag matched neither an admin nor a user.
	ErrNotFound = errors.New("identity not found")
	// ErrInvalidCredentials covers both unknown usernames and bad passwords.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrDefaultAdminCreated tells the login caller a first admin was just
	// provisioned and the login should be retried with the default account.
	ErrDefaultAdminCreated = errors.New("default admin created")
	// ErrPasswordTooShort rejects passwords below the minimum length.
	ErrPasswordTooShort = errors.New("password must be at least 6 characters long")
)

// minPasswordLen is the floor enforced by SetPassword.
const minPasswordLen = 6

// Default admin account provisioned when the admin table is empty.
// A bootstrap convenience inherited from the physical-terminal deployment,
// not a security feature.
const (
	DefaultAdminUsername = "admin"
	DefaultAdminPassword = "admin123"
)

// IdentityKind distinguishes the three session states.
type IdentityKind string

const (
	KindNone  IdentityKind = "none"
	KindUser  IdentityKind = "user"
	KindAdmin IdentityKind = "admin"
)

// Identity is the authenticated principal issued by the auth service and
// carried inside the session token. Borrower marks identities backed by a
// users-table record; only those may appear in the transaction ledger, since
// admins-table principals have no user row to reference.
type Identity struct {
	Kind     IdentityKind `json:"kind"`
	ID       int64        `json:"id"`
	Name     string       `json:"name"`
	Role     models.Role  `json:"role,omitempty"`
	RFIDTag  string       `json:"rfid_tag,omitempty"`
	Borrower bool         `json:"borrower,omitempty"`
}

// IsAdmin reports whether the identity may reach admin-only operations.
func (i *Identity) IsAdmin() bool {
	return i != nil && i.Kind == KindAdmin
}

// Service resolves RFID tags and admin credentials against the store.
type Service struct {
	users  repository.UserRepositoryI
	admins repository.AdminRepositoryI
}

func NewService(users repository.UserRepositoryI, admins repository.AdminRepositoryI) *Service {
	return &Service{users: users, admins: admins}
}

// IdentifyByRFID looks the tag up against both identity spaces, admins first
// since an admin badge must win over a user badge with the same tag. Returns
// ErrNotFound when neither matches. No side effects.
func (s *Service) IdentifyByRFID(ctx context.Context, tag string) (*Identity, error) {
	admin, err := s.admins.GetByRFID(ctx, tag)
	if err != nil {
		return nil, fmt.Errorf("lookup admin by rfid: %w", err)
	}
	if admin != nil {
		return &Identity{Kind: KindAdmin, ID: admin.ID, Name: admin.Username, Role: models.RoleAdmin, RFIDTag: tag}, nil
	}

	user, err := s.users.GetByRFID(ctx, tag)
	if err != nil {
		return nil, fmt.Errorf("lookup user by rfid: %w", err)
	}
	if user == nil {
		return nil, ErrNotFound
	}
	kind := KindUser
	if user.Role == models.RoleAdmin {
		kind = KindAdmin
	}
	return &Identity{Kind: kind, ID: user.ID, Name: user.Name, Role: user.Role, RFIDTag: tag, Borrower: true}, nil
}

// Login verifies an admin's username and password. When no admin exists at
// all it provisions the default account once and reports
// ErrDefaultAdminCreated so the caller can retry; subsequent calls find a
// non-empty admin set and never reach that branch again.
func (s *Service) Login(ctx context.Context, username, password string) (*Identity, error) {
	n, err := s.admins.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count admins: %w", err)
	}
	if n == 0 {
		if _, err := s.Bootstrap(ctx); err != nil {
			return nil, err
		}
		return nil, ErrDefaultAdminCreated
	}

	admin, err := s.admins.GetByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("lookup admin: %w", err)
	}
	if admin == nil {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	id := &Identity{Kind: KindAdmin, ID: admin.ID, Name: admin.Username, Role: models.RoleAdmin}
	if admin.RFIDTag != nil {
		id.RFIDTag = *admin.RFIDTag
	}
	return id, nil
}

// SetPassword rehashes and stores a new password for the admin after
// enforcing the minimum length policy.
func (s *Service) SetPassword(ctx context.Context, adminID int64, newPassword string) error {
	if len(newPassword) < minPasswordLen {
		return ErrPasswordTooShort
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	if err := s.admins.UpdatePasswordHash(ctx, adminID, string(hash)); err != nil {
		return fmt.Errorf("store password: %w", err)
	}
	return nil
}

// Bootstrap creates the default admin account when the admin table is empty.
// It reports whether an account was created. Safe to call at startup and from
// the login path; it never touches existing credentials.
func (s *Service) Bootstrap(ctx context.Context) (bool, error) {
	n, err := s.admins.Count(ctx)
	if err != nil {
		return false, fmt.Errorf("count admins: %w", err)
	}
	if n > 0 {
		return false, nil
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(DefaultAdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return false, fmt.Errorf("hash default password: %w", err)
	}
	if _, err := s.admins.Create(ctx, DefaultAdminUsername, string(hash), nil); err != nil {
		// A concurrent bootstrap may have won the race; that still counts.
		if errors.Is(err, repository.ErrDuplicate) {
			return false, nil
		}
		return false, fmt.Errorf("create default admin: %w", err)
	}
	return true, nil
}
