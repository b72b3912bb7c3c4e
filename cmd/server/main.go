package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mkale/dishpoll/internal/auth"
	"github.com/mkale/dishpoll/internal/catalog"
	"github.com/mkale/dishpoll/internal/config"
	"github.com/mkale/dishpoll/internal/handler"
	"github.com/mkale/dishpoll/internal/service"
	"github.com/mkale/dishpoll/internal/storage"
	"github.com/mkale/dishpoll/internal/storage/sqlite"
	"github.com/mkale/dishpoll/pkg/logging"
)

func main() {
	logger := logging.Setup()

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}
	if os.Getenv("JWT_SECRET") == "" {
		logger.Warn("JWT_SECRET not set, sessions will reset on restart")
	}
	if os.Getenv("ROSTER_PATH") == "" {
		logger.Warn("ROSTER_PATH not set, using the built-in demo roster")
	}

	kv, err := sqlite.New(cfg.DBPath)
	if err != nil {
		logger.Error("failed to initialize storage", "error", err)
		os.Exit(1)
	}
	defer kv.Close()
	logger.Info("storage initialized", "database", cfg.DBPath)

	ballots := storage.NewBallotStore(kv, logger)
	dishes := catalog.NewClient(cfg.CatalogURL, logger)
	poll := service.NewPollService(dishes, ballots, cfg.UserIDs(), logger)
	authn := auth.NewAuthenticator(cfg.Roster)
	tokens := auth.NewJWTManager(cfg.JWTSecret, cfg.TokenTTL)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           handler.New(poll, authn, tokens, logger),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server starting", "address", srv.Addr, "voters", len(cfg.Roster))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", "error", err)
			os.Exit(1)
		}
	case <-ctx.Done():
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("shutdown failed", "error", err)
		}
	}
}
