// Command pedsim-server hosts the simulation engine over HTTP for a UI.
package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	_ "github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/brightward-health/pedsim/internal/catalog"
	"github.com/brightward-health/pedsim/internal/config"
	"github.com/brightward-health/pedsim/internal/explain"
	"github.com/brightward-health/pedsim/internal/logging"
	"github.com/brightward-health/pedsim/internal/results"
	"github.com/brightward-health/pedsim/internal/server"
)

func main() {
	cfg := config.Load()

	logger, err := logging.New(cfg.Log.Level, cfg.Log.Format, "pedsim-server")
	if err != nil {
		panic(err)
	}
	defer func() { _ = logger.Sync() }()

	cat := catalog.Load()

	var store *results.Repository
	if cfg.DatabaseURL != "" {
		db, err := sql.Open("postgres", cfg.DatabaseURL)
		if err != nil {
			logger.Fatal("failed to open results database", zap.Error(err))
		}
		defer db.Close()
		if err := db.Ping(); err != nil {
			logger.Fatal("results database unreachable", zap.Error(err))
		}
		store = results.NewRepository(db, logger)
	} else {
		logger.Warn("no database configured; session results will not be persisted")
	}

	var remote explain.Service
	if cfg.ExplainURL != "" {
		remote = explain.NewComposer(cfg.ExplainURL)
	}
	explainer := explain.NewWithFallback(remote, logger)

	manager := server.NewSessionManager(cat, logger, explainer, store, cfg.Seed)
	defer manager.Close()

	router := chi.NewRouter()
	router.Mount("/api/v1", server.NewHandler(manager, cat).Routes())

	srv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info("listening", zap.String("addr", cfg.ListenAddr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	logger.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("shutdown error", zap.Error(err))
	}
}
