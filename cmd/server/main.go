package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/winecellar/intake/internal/config"
	"github.com/winecellar/intake/internal/handler"
	"github.com/winecellar/intake/internal/logging"
	"github.com/winecellar/intake/internal/router"
	"github.com/winecellar/intake/internal/service"
	"github.com/winecellar/intake/internal/store"
	"github.com/winecellar/intake/pkg/resend"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	logger := logging.Setup(cfg.LogLevel)

	ctx := context.Background()
	st, closeStore, err := store.Open(ctx, cfg.Store)
	if err != nil {
		logging.Fatal("failed to open store", "backend", cfg.Store.Backend, "error", err)
	}
	defer closeStore()

	// Email is skipped, not an error, when RESEND_KEY is absent.
	var emailClient resend.Client
	if cfg.EmailConfigured() {
		emailClient = resend.NewClient(cfg.ResendKey, cfg.ResendBaseURL)
	} else {
		logger.Warn("RESEND_KEY not set, notification email disabled")
	}

	emailNotifier := service.NewEmailNotifier(emailClient, cfg.EmailFrom, cfg.EmailTo, logger)
	intakeService := service.NewIntakeService(st, emailNotifier, service.WithLogger(logger))

	var pinger store.Pinger
	if p, ok := st.(store.Pinger); ok {
		pinger = p
	}
	h := handler.New(pinger)
	intakeHandler := handler.NewIntakeHandler(intakeService, cfg.MaxBodyBytes)

	server := &http.Server{
		Addr:              cfg.Addr,
		Handler:           router.New(logger, h, intakeHandler),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("server listening", "addr", server.Addr, "store", cfg.Store.Backend)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Fatal("server error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown error", "error", err)
	}
}
