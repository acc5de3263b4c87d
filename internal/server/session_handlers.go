package server

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"toolLendingManagement/internal/auth"
)

// identify reads and verifies the session cookie. A missing, expired or
// otherwise invalid token reads as anonymous (nil).
func (h *Handlers) identify(r *http.Request) *auth.Identity {
	c, err := r.Cookie(auth.SessionCookie)
	if err != nil || c.Value == "" {
		return nil
	}
	id, err := h.sessions.Verify(c.Value)
	if err != nil {
		return nil
	}
	return id
}

// startSession issues a fresh token for the identity and sets the cookie,
// replacing whatever session the request carried. The token lifetime is the
// configured auto-logout time.
func (h *Handlers) startSession(ctx context.Context, w http.ResponseWriter, id *auth.Identity) error {
	secs, err := h.settings.AutoLogoutSeconds(ctx)
	if err != nil {
		return err
	}
	token, err := h.sessions.Issue(id, time.Duration(secs)*time.Second)
	if err != nil {
		return err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     auth.SessionCookie,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

func clearSession(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     auth.SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// handleIndex redirects to RFID verification.
func (h *Handlers) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	http.Redirect(w, r, "/verify_rfid", http.StatusFound)
}

// handleVerifyRFID identifies a badge and starts the matching session. A
// failed scan clears any prior session so a stale role cannot leak to the
// next person at the terminal.
func (h *Handlers) handleVerifyRFID(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		render(w, "verify_rfid.html", nil)
	case http.MethodPost:
		tag := strings.TrimSpace(r.PostFormValue("rfid"))
		if tag == "" {
			http.Error(w, "rfid is required", http.StatusBadRequest)
			return
		}
		id, err := h.auth.IdentifyByRFID(r.Context(), tag)
		if err != nil {
			if errors.Is(err, auth.ErrNotFound) {
				clearSession(w)
				http.Error(w, "RFID not recognized", http.StatusUnauthorized)
				return
			}
			log.Printf("verify rfid: %v", err)
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		if err := h.startSession(r.Context(), w, id); err != nil {
			log.Printf("start session: %v", err)
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		if id.Kind == auth.KindAdmin && !id.Borrower {
			http.Redirect(w, r, "/admin", http.StatusFound)
			return
		}
		http.Redirect(w, r, "/checkout", http.StatusFound)
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

// handleLogin performs the username/password admin login.
func (h *Handlers) handleLogin(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		render(w, "login.html", nil)
	case http.MethodPost:
		username := strings.TrimSpace(r.PostFormValue("username"))
		password := r.PostFormValue("password")
		if username == "" || password == "" {
			http.Error(w, "username and password are required", http.StatusBadRequest)
			return
		}
		id, err := h.auth.Login(r.Context(), username, password)
		if err != nil {
			switch {
			case errors.Is(err, auth.ErrDefaultAdminCreated):
				http.Error(w, "Default admin created. Please log in with 'admin' / 'admin123'", http.StatusUnauthorized)
			case errors.Is(err, auth.ErrInvalidCredentials):
				http.Error(w, "Invalid credentials", http.StatusUnauthorized)
			default:
				log.Printf("login: %v", err)
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}
		if err := h.startSession(r.Context(), w, id); err != nil {
			log.Printf("start session: %v", err)
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		http.Redirect(w, r, "/admin", http.StatusFound)
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

// handleLogout serves both /logout and /user_logout.
func (h *Handlers) handleLogout(w http.ResponseWriter, r *http.Request) {
	clearSession(w)
	http.Redirect(w, r, "/verify_rfid", http.StatusFound)
}
