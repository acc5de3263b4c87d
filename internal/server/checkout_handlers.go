package server

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"toolLendingManagement/internal/auth"
	"toolLendingManagement/internal/ledger"
	"toolLendingManagement/models"
)

type scanPageData struct {
	Title            string
	Mode             string
	UserName         string
	RFID             string
	LogoutSeconds    int
	AutoSubmitLength string
}

// requireBorrower resolves the session for the scan pages. Anonymous requests
// are bounced to badge verification; admins without a user record are sent to
// the admin panel since the ledger has no user row to book against.
func (h *Handlers) requireBorrower(w http.ResponseWriter, r *http.Request) *auth.Identity {
	id := h.identify(r)
	if id == nil {
		http.Redirect(w, r, "/verify_rfid", http.StatusFound)
		return nil
	}
	if !id.Borrower {
		http.Redirect(w, r, "/admin", http.StatusFound)
		return nil
	}
	return id
}

func (h *Handlers) renderScanPage(w http.ResponseWriter, r *http.Request, id *auth.Identity, title, mode string) {
	secs, err := h.settings.AutoLogoutSeconds(r.Context())
	if err != nil {
		log.Printf("read auto logout: %v", err)
		secs = models.DefaultAutoLogoutSeconds
	}
	autoSubmit, err := h.settings.Get(r.Context(), models.SettingAutoSubmitLength)
	if err != nil {
		log.Printf("read auto submit length: %v", err)
	}
	if autoSubmit == "" {
		autoSubmit = "0"
	}
	render(w, "scan.html", scanPageData{
		Title:            title,
		Mode:             mode,
		UserName:         id.Name,
		RFID:             id.RFIDTag,
		LogoutSeconds:    secs,
		AutoSubmitLength: autoSubmit,
	})
}

func (h *Handlers) handleCheckoutPage(w http.ResponseWriter, r *http.Request) {
	id := h.requireBorrower(w, r)
	if id == nil {
		return
	}
	h.renderScanPage(w, r, id, "Check out a tool", "checkout")
}

func (h *Handlers) handleCheckoutReturnPage(w http.ResponseWriter, r *http.Request) {
	id := h.requireBorrower(w, r)
	if id == nil {
		return
	}
	h.renderScanPage(w, r, id, "Check out or return a tool", "checkout_return")
}

// handleReturnTool renders the return page on GET and performs a JSON return
// on POST.
func (h *Handlers) handleReturnTool(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		id := h.requireBorrower(w, r)
		if id == nil {
			return
		}
		h.renderScanPage(w, r, id, "Return a tool", "return")
	case http.MethodPost:
		h.scanJSON(w, r, func(id *auth.Identity, barcode string) (*models.Transaction, string, error) {
			tx, err := h.ledger.Return(r.Context(), id.ID, barcode)
			return tx, "Tool returned successfully", err
		})
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

// handleScanTool performs a JSON checkout.
func (h *Handlers) handleScanTool(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	h.scanJSON(w, r, func(id *auth.Identity, barcode string) (*models.Transaction, string, error) {
		tx, err := h.ledger.Checkout(r.Context(), id.ID, barcode)
		return tx, "Tool checked out successfully", err
	})
}

// scanJSON handles the shared shape of the JSON scan flows: session check,
// payload parse, ledger call, error translation.
func (h *Handlers) scanJSON(w http.ResponseWriter, r *http.Request, op func(*auth.Identity, string) (*models.Transaction, string, error)) {
	id := h.identify(r)
	if id == nil {
		respondError(w, http.StatusForbidden, "Unauthorized")
		return
	}
	if !id.Borrower {
		respondError(w, http.StatusForbidden, "Admin accounts cannot borrow tools")
		return
	}

	var req struct {
		Barcode string `json:"barcode"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}
	barcode := strings.TrimSpace(req.Barcode)
	if barcode == "" {
		respondError(w, http.StatusBadRequest, "barcode is required")
		return
	}

	_, message, err := op(id, barcode)
	if err != nil {
		switch {
		case errors.Is(err, ledger.ErrToolNotFound):
			respondError(w, http.StatusNotFound, "Tool not found")
		case errors.Is(err, ledger.ErrOutOfStock):
			respondError(w, http.StatusBadRequest, "Tool out of stock")
		case errors.Is(err, ledger.ErrNoOpenCheckout):
			respondError(w, http.StatusBadRequest, "No open checkout for this tool")
		default:
			log.Printf("scan %s by %d: %v", barcode, id.ID, err)
			respondError(w, http.StatusInternalServerError, "store error, please retry")
		}
		return
	}
	respondMessage(w, http.StatusOK, message)
}
