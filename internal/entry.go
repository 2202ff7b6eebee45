// Package internal provides the main application initialization and runtime logic.
package internal

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/robfig/cron/v3"
	"golang.org/x/sync/errgroup"

	"github.com/minjae-im/dallyeok/internal/api"
	"github.com/minjae-im/dallyeok/internal/holiday"
	"github.com/minjae-im/dallyeok/internal/notify"
	"github.com/minjae-im/dallyeok/internal/store"
	"github.com/minjae-im/dallyeok/internal/syncer"
	"github.com/minjae-im/dallyeok/internal/toast"
)

// Run starts the application with the given options.
func Run(ctx context.Context, opts ...Option) error {
	app := &application{}

	for _, opt := range opts {
		opt(app)
	}

	if app.config == nil {
		return fmt.Errorf("config is required")
	}

	cfg := app.config

	// Initialize structured JSON logger.
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.App.LogLevel,
	}))
	slog.SetDefault(logger)

	logger.Info("Configuration loaded",
		slog.String("http_address", cfg.App.HTTP.Address()),
		slog.String("store_path", cfg.Store.Path),
		slog.String("log_level", cfg.App.LogLevel.String()))

	// Initialize the event store.
	db, err := store.Open(cfg.Store.Path)
	if err != nil {
		return fmt.Errorf("init store: %w", err)
	}
	defer db.Close()

	// Holiday table, with optional overlay file.
	holidays := holiday.NewSource()
	if cfg.Holiday.Path != "" {
		if err := holidays.LoadFile(cfg.Holiday.Path); err != nil {
			logger.Warn("holiday overlay load failed",
				slog.String("path", cfg.Holiday.Path),
				slog.String("error", err.Error()))
		}
	}

	scheduler := notify.NewScheduler()

	// SSE broker for toasts and due notifications.
	broker := toast.NewBroker()
	defer broker.Close()

	// Build chi router.
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// Health check endpoints (unauthenticated).
	r.Get("/health/live", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	r.Get("/health/ready", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	// Mount API routes under /api.
	r.Mount("/api", api.NewRouter(db, scheduler, holidays, cfg.Auth.AuthEnabled(), cfg.Auth.Token, broker))

	// Bind the listener up front so the sync controller has a concrete
	// loopback address even when the configured port is 0.
	ln, err := net.Listen("tcp", cfg.App.HTTP.Address())
	if err != nil {
		return fmt.Errorf("listen %s: %w", cfg.App.HTTP.Address(), err)
	}

	baseURL := cfg.Remote.BaseURL
	if baseURL == "" {
		port := ln.Addr().(*net.TCPAddr).Port
		baseURL = fmt.Sprintf("http://127.0.0.1:%d", port)
	}

	controller := syncer.NewController(
		syncer.NewClient(baseURL, cfg.Remote.Timeout),
		toast.Multi{broker, &toast.LogNotifier{Logger: logger}},
	)

	httpServer := &http.Server{
		Handler: r,
	}

	logger.Info("Server starting...",
		slog.String("http_address", cfg.App.HTTP.Address()),
		slog.String("store_url", baseURL))

	g, gCtx := errgroup.WithContext(ctx)

	// Start HTTP server.
	g.Go(func() error {
		if err := httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("HTTP server error: %w", err)
		}
		return nil
	})

	// Initial load of the local event list.
	g.Go(func() error {
		if err := controller.Load(gCtx); err != nil {
			logger.Warn("initial event load failed", slog.String("error", err.Error()))
		}
		return nil
	})

	// Holiday overlay hot reload.
	if cfg.Holiday.Path != "" {
		g.Go(func() error {
			if err := holiday.Watch(gCtx, holidays, cfg.Holiday.Path, logger); err != nil {
				logger.Warn("holiday watcher failed", slog.String("error", err.Error()))
			}
			return nil
		})
	}

	// Scheduled jobs: the notification tick and the background reconcile.
	jobs := cron.New()
	if _, err := jobs.AddFunc(fmt.Sprintf("@every %s", cfg.Notify.TickInterval), func() {
		for _, n := range scheduler.Tick(controller.Events(), time.Now()) {
			logger.Info("notification due",
				slog.String("event_id", n.ID),
				slog.String("message", n.Message))
			broker.Publish(toast.Event{Type: "notification", Data: n})
		}
	}); err != nil {
		return fmt.Errorf("schedule notification tick: %w", err)
	}
	if _, err := jobs.AddFunc(fmt.Sprintf("@every %s", cfg.Notify.ReconcileInterval), func() {
		if err := controller.Refresh(context.Background()); err != nil {
			logger.Warn("reconcile failed", slog.String("error", err.Error()))
		}
	}); err != nil {
		return fmt.Errorf("schedule reconcile: %w", err)
	}
	jobs.Start()

	// Handle shutdown signals.
	g.Go(func() error {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

		select {
		case sig := <-quit:
			logger.Info("Received shutdown signal", slog.String("signal", sig.String()))
		case <-gCtx.Done():
			logger.Info("Context cancelled, initiating shutdown")
		}

		logger.Info("Shutting down server...")

		<-jobs.Stop().Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("HTTP server shutdown error", slog.String("error", err.Error()))
		}

		return nil
	})

	if err := g.Wait(); err != nil {
		logger.Error("Application error", slog.String("error", err.Error()))
		return err
	}

	logger.Info("Server stopped successfully")
	return nil
}
