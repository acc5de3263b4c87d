package server

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"

	"toolLendingManagement/internal/auth"
	"toolLendingManagement/models"
	"toolLendingManagement/repository"
)

// requireAdmin enforces the admin gate on catalog routes. Anything less than
// an admin session gets 403 and no mutation.
func (h *Handlers) requireAdmin(w http.ResponseWriter, r *http.Request) *auth.Identity {
	id := h.identify(r)
	if !id.IsAdmin() {
		http.Error(w, "Unauthorized", http.StatusForbidden)
		return nil
	}
	return id
}

type adminPageData struct {
	AdminName         string
	Users             []models.User
	Tools             []models.Tool
	Rooms             []models.Room
	AutoLogoutSeconds int
	AutoSubmitLength  string
}

func (h *Handlers) handleAdminPanel(w http.ResponseWriter, r *http.Request) {
	id := h.requireAdmin(w, r)
	if id == nil {
		return
	}
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	ctx := r.Context()
	users, err := h.users.List(ctx)
	if err != nil {
		log.Printf("list users: %v", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	tools, err := h.tools.List(ctx)
	if err != nil {
		log.Printf("list tools: %v", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	rooms, err := h.rooms.List(ctx)
	if err != nil {
		log.Printf("list rooms: %v", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	secs, err := h.settings.AutoLogoutSeconds(ctx)
	if err != nil {
		secs = models.DefaultAutoLogoutSeconds
	}
	autoSubmit, _ := h.settings.Get(ctx, models.SettingAutoSubmitLength)

	render(w, "admin.html", adminPageData{
		AdminName:         id.Name,
		Users:             users,
		Tools:             tools,
		Rooms:             rooms,
		AutoLogoutSeconds: secs,
		AutoSubmitLength:  autoSubmit,
	})
}

func (h *Handlers) handleAddUser(w http.ResponseWriter, r *http.Request) {
	if h.requireAdmin(w, r) == nil {
		return
	}
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	name := strings.TrimSpace(r.PostFormValue("name"))
	tag := strings.TrimSpace(r.PostFormValue("rfid"))
	if name == "" || tag == "" {
		http.Error(w, "name and rfid are required", http.StatusBadRequest)
		return
	}
	if _, err := h.users.Create(r.Context(), name, tag); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			http.Error(w, "RFID tag already exists", http.StatusBadRequest)
			return
		}
		log.Printf("add user: %v", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, "/admin", http.StatusFound)
}

func (h *Handlers) handleAddTool(w http.ResponseWriter, r *http.Request) {
	if h.requireAdmin(w, r) == nil {
		return
	}
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	name := strings.TrimSpace(r.PostFormValue("name"))
	barcode := strings.TrimSpace(r.PostFormValue("barcode"))
	quantity, err := strconv.ParseInt(strings.TrimSpace(r.PostFormValue("quantity")), 10, 64)
	if name == "" || barcode == "" || err != nil || quantity < 1 {
		http.Error(w, "name, barcode and a quantity of at least 1 are required", http.StatusBadRequest)
		return
	}
	tool := &models.Tool{Name: name, Barcode: barcode, Quantity: quantity}
	if _, err := h.tools.Create(r.Context(), tool); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			http.Error(w, "Barcode already exists", http.StatusBadRequest)
			return
		}
		log.Printf("add tool: %v", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, "/admin", http.StatusFound)
}

func (h *Handlers) handleDeleteUser(w http.ResponseWriter, r *http.Request) {
	if h.requireAdmin(w, r) == nil {
		return
	}
	id, ok := h.formID(w, r)
	if !ok {
		return
	}
	if err := h.users.Delete(r.Context(), id); err != nil {
		log.Printf("delete user %d: %v", id, err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, "/admin", http.StatusFound)
}

func (h *Handlers) handleDeleteTool(w http.ResponseWriter, r *http.Request) {
	if h.requireAdmin(w, r) == nil {
		return
	}
	id, ok := h.formID(w, r)
	if !ok {
		return
	}
	if err := h.tools.Delete(r.Context(), id); err != nil {
		log.Printf("delete tool %d: %v", id, err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, "/admin", http.StatusFound)
}

func (h *Handlers) handleAddRoom(w http.ResponseWriter, r *http.Request) {
	if h.requireAdmin(w, r) == nil {
		return
	}
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	name := strings.TrimSpace(r.PostFormValue("name"))
	if name == "" {
		http.Error(w, "name is required", http.StatusBadRequest)
		return
	}
	if _, err := h.rooms.Create(r.Context(), name); err != nil {
		log.Printf("add room: %v", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, "/admin", http.StatusFound)
}

// handleUpdateSettings upserts the submitted settings. auto_logout_time must
// be at least 10 seconds; auto_submit_length must be a non-negative integer.
func (h *Handlers) handleUpdateSettings(w http.ResponseWriter, r *http.Request) {
	if h.requireAdmin(w, r) == nil {
		return
	}
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if raw := strings.TrimSpace(r.PostFormValue(models.SettingAutoLogoutTime)); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < models.MinAutoLogoutSeconds {
			http.Error(w, "auto_logout_time must be at least 10 seconds", http.StatusBadRequest)
			return
		}
		if err := h.settings.Upsert(r.Context(), models.SettingAutoLogoutTime, strconv.Itoa(n)); err != nil {
			log.Printf("update auto_logout_time: %v", err)
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
	}
	if raw := strings.TrimSpace(r.PostFormValue(models.SettingAutoSubmitLength)); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			http.Error(w, "auto_submit_length must be a non-negative integer", http.StatusBadRequest)
			return
		}
		if err := h.settings.Upsert(r.Context(), models.SettingAutoSubmitLength, strconv.Itoa(n)); err != nil {
			log.Printf("update auto_submit_length: %v", err)
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
	}
	http.Redirect(w, r, "/admin", http.StatusFound)
}

func (h *Handlers) handleChangePassword(w http.ResponseWriter, r *http.Request) {
	id := h.requireAdmin(w, r)
	if id == nil {
		return
	}
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if id.Borrower {
		// Role-carrying users have no admins-table credentials to change.
		http.Error(w, "no password on this account", http.StatusBadRequest)
		return
	}
	if err := h.auth.SetPassword(r.Context(), id.ID, r.PostFormValue("new_password")); err != nil {
		if errors.Is(err, auth.ErrPasswordTooShort) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		log.Printf("change password for admin %d: %v", id.ID, err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, "/admin", http.StatusFound)
}

func (h *Handlers) handleLogs(w http.ResponseWriter, r *http.Request) {
	if h.requireAdmin(w, r) == nil {
		return
	}
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	entries, err := h.txs.ListLog(r.Context())
	if err != nil {
		log.Printf("list logs: %v", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	render(w, "logs.html", struct{ Entries []models.LogEntry }{Entries: entries})
}

func (h *Handlers) formID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return 0, false
	}
	id, err := strconv.ParseInt(strings.TrimSpace(r.PostFormValue("id")), 10, 64)
	if err != nil || id <= 0 {
		http.Error(w, "id is required", http.StatusBadRequest)
		return 0, false
	}
	return id, true
}
