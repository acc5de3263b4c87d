package auth

import (
	"errors"
	"strconv"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"

	"toolLendingManagement/models"
)

// SessionCookie is the name of the cookie carrying the session token.
const SessionCookie = "session"

// SessionManager issues and verifies the signed tokens that stand in for
// server-side session state. A token is replaced wholesale on every identity
// change, never merged, so a fresh badge scan at a shared terminal cannot
// inherit the previous holder's role. Expiry doubles as the auto-logout
// deadline; an expired or absent token simply reads as anonymous.
type SessionManager struct {
	secret []byte
	issuer string
}

func NewSessionManager(secret, issuer string) *SessionManager {
	return &SessionManager{secret: []byte(secret), issuer: issuer}
}

type sessionClaims struct {
	Kind     string `json:"kind"`
	Name     string `json:"name"`
	Role     string `json:"role,omitempty"`
	RFID     string `json:"rfid,omitempty"`
	Borrower bool   `json:"borrower,omitempty"`
	jwt.RegisteredClaims
}

// Issue signs a token for the identity, valid for ttl.
func (m *SessionManager) Issue(id *Identity, ttl time.Duration) (string, error) {
	if id == nil || id.Kind == KindNone {
		return "", errors.New("cannot issue a session for an anonymous identity")
	}
	now := time.Now()
	claims := sessionClaims{
		Kind:     string(id.Kind),
		Name:     id.Name,
		Role:     string(id.Role),
		RFID:     id.RFIDTag,
		Borrower: id.Borrower,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    m.issuer,
			Subject:   strconv.FormatInt(id.ID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// Verify parses and validates a token and reconstructs the identity. Any
// failure (bad signature, expiry, malformed claims) is returned as an error;
// callers treat it as an anonymous request.
func (m *SessionManager) Verify(tokenStr string) (*Identity, error) {
	tok, err := jwt.ParseWithClaims(tokenStr, &sessionClaims{}, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, errors.New("unexpected signing method")
		}
		return m.secret, nil
	})
	if err != nil || !tok.Valid {
		if err == nil {
			err = errors.New("invalid token")
		}
		return nil, err
	}
	c, _ := tok.Claims.(*sessionClaims)
	if c == nil || c.Kind == "" || c.Subject == "" {
		return nil, errors.New("invalid session claims")
	}
	id, err := strconv.ParseInt(c.Subject, 10, 64)
	if err != nil {
		return nil, errors.New("invalid session subject")
	}
	kind := IdentityKind(c.Kind)
	if kind != KindUser && kind != KindAdmin {
		return nil, errors.New("invalid session kind")
	}
	return &Identity{
		Kind:     kind,
		ID:       id,
		Name:     c.Name,
		Role:     models.Role(c.Role),
		RFIDTag:  c.RFID,
		Borrower: c.Borrower,
	}, nil
}
