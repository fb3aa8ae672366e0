package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"

	"github.com/jmcleod/authgate/api"
	"github.com/jmcleod/authgate/internal/config"
	"github.com/jmcleod/authgate/session"
	"github.com/jmcleod/authgate/store"
	boltstore "github.com/jmcleod/authgate/store/bbolt"
	"github.com/jmcleod/authgate/store/postgres"
)

var (
	port         string
	storeBackend string
	dataFile     string
)

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the authentication gateway server",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Load()
		if port != "" {
			cfg.Port = port
		}
		if storeBackend != "" {
			cfg.StoreBackend = storeBackend
		}
		if dataFile != "" {
			cfg.DataFile = dataFile
		}

		logger := slog.New(slog.NewJSONHandler(os.Stderr, nil))
		if cfg.SessionSecret == config.DefaultSessionSecret {
			logger.Warn("SESSION_SECRET is unset, using insecure development default")
		}

		st, err := openStore(cfg, logger)
		if err != nil {
			return err
		}
		defer st.Close()

		// A missing store at bootstrap must not halt startup; only
		// hard failures (e.g. a corrupt schema) are fatal here.
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		err = store.Bootstrap(ctx, st, logger, cfg.SeedUsername, cfg.SeedPassword)
		cancel()
		if err != nil {
			return fmt.Errorf("bootstrapping credential store: %w", err)
		}

		sessions, err := session.NewManager([]byte(cfg.SessionSecret), session.NewMemoryStore())
		if err != nil {
			return fmt.Errorf("creating session manager: %w", err)
		}

		a := api.New(st, sessions, api.WithLogger(logger))

		r := chi.NewRouter()
		r.Use(middleware.Logger)
		r.Use(middleware.Recoverer)
		r.Use(api.SecurityHeaders)
		r.Mount("/", a.Router())

		server := &http.Server{
			Addr:              ":" + cfg.Port,
			Handler:           r,
			ReadHeaderTimeout: 10 * time.Second,
			ReadTimeout:       15 * time.Second,
			WriteTimeout:      30 * time.Second,
			IdleTimeout:       60 * time.Second,
		}

		// Graceful shutdown on SIGINT/SIGTERM.
		done := make(chan error, 1)
		go func() {
			if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				done <- fmt.Errorf("server failed: %w", err)
				return
			}
			done <- nil
		}()

		logger.Info("server started", "port", cfg.Port, "store", cfg.StoreBackend)

		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

		select {
		case sig := <-quit:
			logger.Info("shutting down", "signal", sig.String())
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := server.Shutdown(ctx); err != nil {
				return fmt.Errorf("server shutdown failed: %w", err)
			}
			return nil
		case err := <-done:
			return err
		}
	},
}

// openStore opens the configured backend. A backend that cannot be
// opened is not fatal: startup continues over store.Unavailable and
// lookups degrade to the store-unavailable path. Only a misconfigured
// backend name is an error.
func openStore(cfg *config.Config, logger *slog.Logger) (store.Store, error) {
	switch cfg.StoreBackend {
	case "postgres":
		st, err := postgres.Open(cfg.DatabaseDSN())
		if err != nil {
			logger.Warn("postgres store unavailable, continuing without store", "error", err)
			return store.Unavailable{Err: err}, nil
		}
		return st, nil
	case "bolt":
		if err := os.MkdirAll(filepath.Dir(cfg.DataFile), 0o700); err != nil {
			logger.Warn("bolt data directory unavailable, continuing without store", "error", err)
			return store.Unavailable{Err: err}, nil
		}
		st, err := boltstore.Open(cfg.DataFile, nil)
		if err != nil {
			logger.Warn("bolt store unavailable, continuing without store", "error", err)
			return store.Unavailable{Err: err}, nil
		}
		return st, nil
	default:
		return nil, fmt.Errorf("unknown store backend %q (want postgres or bolt)", cfg.StoreBackend)
	}
}

func init() {
	rootCmd.AddCommand(serverCmd)
	serverCmd.Flags().StringVarP(&port, "port", "p", "", "Port to listen on (overrides PORT)")
	serverCmd.Flags().StringVar(&storeBackend, "store", "", "Credential store backend: postgres or bolt (overrides STORE_BACKEND)")
	serverCmd.Flags().StringVar(&dataFile, "data-file", "", "Path to the bolt data file (overrides DATA_FILE)")
}
