package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"toolLendingManagement/internal/auth"
	"toolLendingManagement/internal/config"
	"toolLendingManagement/internal/db"
	"toolLendingManagement/internal/ledger"
	"toolLendingManagement/internal/server"
	"toolLendingManagement/repository"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found; relying on existing environment")
	}

	cfg, err := config.LoadWithDefaults()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	log.Printf("Configuration loaded: %v", cfg)

	d, err := db.Open(cfg.Database.Path)
	if err != nil {
		log.Fatalf("open db: %v", err)
	}
	defer func() {
		if err := d.Close(); err != nil {
			log.Printf("close db: %v", err)
		}
	}()

	users := repository.NewUserRepository(d)
	admins := repository.NewAdminRepository(d)
	tools := repository.NewToolRepository(d)
	rooms := repository.NewRoomRepository(d)
	settings := repository.NewSettingRepository(d)
	txs := repository.NewTransactionRepository(d)

	authSvc := auth.NewService(users, admins)
	sessions := auth.NewSessionManager(cfg.Session.Secret, cfg.Session.Issuer)
	ldg := ledger.New(d)

	// First-run convenience: make sure an admin account exists before the
	// first login attempt ever arrives.
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	created, err := authSvc.Bootstrap(ctx)
	cancel()
	if err != nil {
		log.Fatalf("bootstrap admin: %v", err)
	}
	if created {
		log.Printf("no admin found; created default admin %q", auth.DefaultAdminUsername)
	}

	handlers := server.NewHandlers(authSvc, sessions, ldg, users, tools, rooms, settings, txs)
	srv := server.New(cfg, handlers)

	go func() {
		log.Printf("tool lending server listening on %s", cfg.HTTP.Address)
		if err := srv.Start(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("http server error: %v", err)
		}
	}()

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
	<-sigc

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("graceful shutdown error: %v", err)
	}
}
