package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/MikeSquared-Agency/msgram/internal/api"
	"github.com/MikeSquared-Agency/msgram/internal/hermes"
	"github.com/MikeSquared-Agency/msgram/internal/store"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd(a *app) *cobra.Command {
	var modelPath string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the quality HTTP API and metrics server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.serve(cmd.Context(), modelPath)
		},
	}
	cmd.Flags().StringVarP(&modelPath, "model", "m", "", "quality model file (default: configured or built-in model)")
	return cmd
}

func (a *app) serve(ctx context.Context, modelPath string) error {
	logger := a.logger
	cfg := a.cfg

	m, err := a.loadModel(modelPath)
	if err != nil {
		return err
	}
	engine, err := a.newEngine(m)
	if err != nil {
		return err
	}
	comparator, err := a.newComparator(m)
	if err != nil {
		return err
	}
	logger.Info("quality model loaded", "version", m.Version, "measures", len(m.MeasureKeys()))

	// Database (optional)
	var db store.Store
	if cfg.Database.URL != "" {
		pg, err := store.NewPostgresStore(ctx, cfg.Database.URL)
		if err != nil {
			return err
		}
		defer pg.Close()
		if err := pg.Migrate(ctx); err != nil {
			return err
		}
		db = pg
		logger.Info("connected to database")
	}

	// Hermes (optional)
	var hermesClient hermes.Client
	if cfg.Hermes.URL != "" {
		hc, err := hermes.NewNATSClient(ctx, cfg.Hermes.URL, logger)
		if err != nil {
			logger.Warn("failed to connect to hermes, running without events", "error", err)
		} else {
			hermesClient = hc
			defer hc.Close()
			logger.Info("connected to hermes")
		}
	}
	emitter := hermes.NewEmitter(hermesClient, logger)

	apiServer := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           api.NewRouter(engine, comparator, db, emitter, cfg.Server.AdminToken, cfg.Server.RateLimit, logger),
		ReadHeaderTimeout: 10 * time.Second,
	}
	metricsServer := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.MetricsPort),
		Handler:           api.NewMetricsRouter(db),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 2)
	go func() {
		logger.Info("API server starting", "port", cfg.Server.Port)
		if err := apiServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("api server: %w", err)
		}
	}()
	go func() {
		logger.Info("metrics server starting", "port", cfg.Server.MetricsPort)
		if err := metricsServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("metrics server: %w", err)
		}
	}()

	var serveErr error
	select {
	case <-ctx.Done():
	case serveErr = <-errCh:
		logger.Error("server error", "error", serveErr)
	}

	logger.Info("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	_ = apiServer.Shutdown(shutdownCtx)
	_ = metricsServer.Shutdown(shutdownCtx)

	logger.Info("shutdown complete")
	return serveErr
}
