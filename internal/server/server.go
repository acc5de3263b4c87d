// Package server exposes the tool lending workflows over HTTP: badge
// verification and scanning for borrowers, catalog management and transaction
// logs for admins.
package server

import (
	"context"
	"net/http"
	"time"

	"toolLendingManagement/internal/auth"
	"toolLendingManagement/internal/config"
	"toolLendingManagement/internal/ledger"
	"toolLendingManagement/repository"
)

// Handlers bundles the services and repositories the HTTP surface delegates to.
type Handlers struct {
	auth     *auth.Service
	sessions *auth.SessionManager
	ledger   *ledger.Ledger
	users    *repository.UserRepository
	tools    *repository.ToolRepository
	rooms    *repository.RoomRepository
	settings *repository.SettingRepository
	txs      *repository.TransactionRepository
}

func NewHandlers(
	authSvc *auth.Service,
	sessions *auth.SessionManager,
	ldg *ledger.Ledger,
	users *repository.UserRepository,
	tools *repository.ToolRepository,
	rooms *repository.RoomRepository,
	settings *repository.SettingRepository,
	txs *repository.TransactionRepository,
) *Handlers {
	return &Handlers{
		auth:     authSvc,
		sessions: sessions,
		ledger:   ldg,
		users:    users,
		tools:    tools,
		rooms:    rooms,
		settings: settings,
		txs:      txs,
	}
}

// Register attaches every route to the mux.
func (h *Handlers) Register(mux *http.ServeMux) {
	mux.HandleFunc("/", h.handleIndex)
	mux.HandleFunc("/verify_rfid", h.handleVerifyRFID)
	mux.HandleFunc("/login", h.handleLogin)
	mux.HandleFunc("/logout", h.handleLogout)
	mux.HandleFunc("/user_logout", h.handleLogout)

	mux.HandleFunc("/checkout", h.handleCheckoutPage)
	mux.HandleFunc("/return_tool", h.handleReturnTool)
	mux.HandleFunc("/checkout_return", h.handleCheckoutReturnPage)
	mux.HandleFunc("/scan_tool", h.handleScanTool)

	mux.HandleFunc("/admin", h.handleAdminPanel)
	mux.HandleFunc("/add_user", h.handleAddUser)
	mux.HandleFunc("/add_tool", h.handleAddTool)
	mux.HandleFunc("/delete_user", h.handleDeleteUser)
	mux.HandleFunc("/delete_tool", h.handleDeleteTool)
	mux.HandleFunc("/add_room", h.handleAddRoom)
	mux.HandleFunc("/update_settings", h.handleUpdateSettings)
	mux.HandleFunc("/change_password", h.handleChangePassword)
	mux.HandleFunc("/logs", h.handleLogs)
}

// Server wraps an http.Server with configured routes.
type Server struct {
	inner *http.Server
}

// New wires up middleware and routes and returns a ready server.
func New(cfg *config.Config, h *Handlers) *Server {
	mux := http.NewServeMux()
	h.Register(mux)

	httpServer := &http.Server{
		Addr:              cfg.HTTP.Address,
		Handler:           logging(mux),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
	return &Server{inner: httpServer}
}

// Start begins serving HTTP traffic.
func (s *Server) Start() error {
	return s.inner.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.inner.Shutdown(ctx)
}
