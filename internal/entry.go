// Package internal provides the main application initialization and runtime logic.
package internal

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"

	"github.com/starford/rollover/internal/api"
	"github.com/starford/rollover/internal/mcpserver"
	"github.com/starford/rollover/internal/rollover"
	"github.com/starford/rollover/internal/sse"
	"github.com/starford/rollover/internal/state"
	"github.com/starford/rollover/internal/storage"
	"github.com/starford/rollover/internal/watcher"
)

// components are the pieces shared by every entry point.
type components struct {
	cfg    *Config
	logger *slog.Logger
	store  *storage.FS
	db     *state.DB
	svc    *rollover.Service
}

func (c *components) Close() error {
	return c.db.Close()
}

func setup(opts []Option) (*application, *components, error) {
	app := &application{logOutput: os.Stdout, version: "dev"}
	for _, opt := range opts {
		opt(app)
	}
	if app.config == nil {
		return nil, nil, fmt.Errorf("config is required")
	}
	cfg := app.config

	// Initialize structured JSON logger.
	logger := slog.New(slog.NewJSONHandler(app.logOutput, &slog.HandlerOptions{
		Level: cfg.App.LogLevel,
	}))
	slog.SetDefault(logger)

	logger.Info("Configuration loaded",
		slog.String("vault_path", cfg.Vault.Path),
		slog.String("daily_folder", cfg.DailyNotes.Folder),
		slog.String("template", cfg.DailyNotes.TemplatePath()),
		slog.String("sqlite_path", cfg.SQLite.Path),
		slog.String("log_level", cfg.App.LogLevel.String()))

	if !cfg.DailyNotes.Enabled {
		logger.Warn("Daily notes are not enabled. Enable daily_notes in the config and restart.")
	}

	store, err := storage.NewFS(cfg.Vault.Path)
	if err != nil {
		return nil, nil, fmt.Errorf("init storage: %w", err)
	}

	db, err := state.Open(cfg.SQLite.Path)
	if err != nil {
		return nil, nil, fmt.Errorf("init state: %w", err)
	}

	svc, err := rollover.NewService(store, db, rollover.Options{
		Folder:       cfg.DailyNotes.Folder,
		TemplatePath: cfg.DailyNotes.TemplatePath(),
		FreshWithin:  cfg.Rollover.FreshWithin,
	}, logger)
	if err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("init rollover: %w", err)
	}

	return app, &components{cfg: cfg, logger: logger, store: store, db: db, svc: svc}, nil
}

// Run starts the watcher and the HTTP server with the given options.
func Run(ctx context.Context, opts ...Option) error {
	_, c, err := setup(opts)
	if err != nil {
		return err
	}
	defer c.Close()

	cfg, logger := c.cfg, c.logger

	broker := sse.NewBroker(30 * time.Second)
	defer broker.Close()

	h := api.NewHandler(c.svc, c.db, broker)
	apiRouter := api.NewRouter(h, cfg.Auth.AuthEnabled(), cfg.Auth.Token, broker)

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

	r.Mount("/api", apiRouter)

	httpServer := &http.Server{
		Addr:              cfg.App.HTTP.Address(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gCtx := errgroup.WithContext(ctx)

	if cfg.DailyNotes.Enabled {
		dailyDir := filepath.Join(c.store.Root(), filepath.FromSlash(cfg.DailyNotes.Folder))
		if err := os.MkdirAll(dailyDir, 0o755); err != nil {
			return fmt.Errorf("create daily notes dir: %w", err)
		}

		g.Go(func() error {
			return watcher.Watch(gCtx, c.store.Root(), cfg.DailyNotes.Folder, cfg.Rollover.SettleDelay, logger,
				func(ctx context.Context, path string) {
					res, err := c.svc.HandleCreated(ctx, path)
					if err != nil {
						logger.Error("rollover failed", slog.String("path", path), slog.String("error", err.Error()))
						broker.PublishFailure(path, err)
						return
					}
					broker.PublishRollover(res)
				})
		})
	}

	g.Go(func() error {
		logger.Info("Starting HTTP server", slog.String("address", cfg.App.HTTP.Address()))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("HTTP server error: %w", err)
		}
		return nil
	})

	// Handle shutdown signals.
	g.Go(func() error {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		defer signal.Stop(quit)

		select {
		case sig := <-quit:
			logger.Info("Received shutdown signal", slog.String("signal", sig.String()))
		case <-gCtx.Done():
			logger.Info("Context cancelled, initiating shutdown")
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("HTTP server shutdown error", slog.String("error", err.Error()))
		}

		return errShutdown
	})

	if err := g.Wait(); err != nil && !errors.Is(err, errShutdown) {
		logger.Error("Application error", slog.String("error", err.Error()))
		return err
	}

	logger.Info("Server stopped successfully")
	return nil
}

// errShutdown cancels the group context so the watcher stops with the server.
var errShutdown = errors.New("shutdown")

// RunMCP serves the MCP tools over stdio. Logs must not go to stdout here.
func RunMCP(_ context.Context, opts ...Option) error {
	opts = append([]Option{WithLogOutput(os.Stderr)}, opts...)
	app, c, err := setup(opts)
	if err != nil {
		return err
	}
	defer c.Close()

	return mcpserver.New(c.svc, c.db, app.version).ServeStdio()
}

// Preview writes the merged content a rollover into note would produce.
func Preview(ctx context.Context, out io.Writer, note string, opts ...Option) error {
	opts = append([]Option{WithLogOutput(io.Discard)}, opts...)
	_, c, err := setup(opts)
	if err != nil {
		return err
	}
	defer c.Close()

	p, err := c.svc.Preview(ctx, note)
	if err != nil {
		return err
	}
	_, err = io.WriteString(out, p.Content)
	return err
}

// Headings writes the template heading candidates, marking the current one.
func Headings(ctx context.Context, out io.Writer, opts ...Option) error {
	opts = append([]Option{WithLogOutput(io.Discard)}, opts...)
	_, c, err := setup(opts)
	if err != nil {
		return err
	}
	defer c.Close()

	candidates, err := c.svc.HeadingCandidates(ctx)
	if err != nil {
		return err
	}
	current := c.svc.TemplateHeading()
	for _, h := range candidates {
		marker := "  "
		if h == current {
			marker = "* "
		}
		if _, err := fmt.Fprintln(out, marker+h); err != nil {
			return err
		}
	}
	return nil
}
