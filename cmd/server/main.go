package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/tablica-app/backend/internal/auth"
	"github.com/tablica-app/backend/internal/config"
	"github.com/tablica-app/backend/internal/handler"
	"github.com/tablica-app/backend/internal/middleware"
	"github.com/tablica-app/backend/internal/service"
	"github.com/tablica-app/backend/internal/storage/sqlite"
	"github.com/tablica-app/backend/pkg/logging"
)

func main() {
	logging.Setup()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	store, err := sqlite.New(cfg.DBPath)
	if err != nil {
		slog.Error("Failed to initialize storage", "error", err)
		os.Exit(1)
	}
	defer store.Close()
	slog.Info("Storage initialized", "database", cfg.DBPath)

	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.TokenTTL)
	authenticator := auth.NewPasswordAuthenticator(store)

	authService := service.NewAuthService(authenticator, jwtManager, slog.Default())
	groupService := service.NewGroupService(store, slog.Default())

	mux := handler.NewMux(authService, groupService, jwtManager)

	// Metrics → logging → CORS → routes
	root := middleware.Metrics(middleware.Logging(middleware.CORS(mux)))

	// HTTP/2 without TLS for clients that upgrade
	h2cHandler := h2c.NewHandler(root, &http2.Server{})

	addr := fmt.Sprintf(":%d", cfg.Port)
	slog.Info("Server starting", "address", addr, "token_ttl", cfg.TokenTTL)
	if err := http.ListenAndServe(addr, h2cHandler); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}
