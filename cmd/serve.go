package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/killallgit/reporadar-api/api"
	"github.com/killallgit/reporadar-api/api/types"
	"github.com/killallgit/reporadar-api/internal/database"
	"github.com/killallgit/reporadar-api/internal/services/cleanup"
	"github.com/killallgit/reporadar-api/internal/services/searchlog"
	"github.com/killallgit/reporadar-api/pkg/logger"
)

var (
	serverHost string
	serverPort int
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the API server",
	Long: `Start the Repo Radar API server with the configured settings.

The server answers repository searches at /api/v1/github-search/search,
serves health and version endpoints and, when the audit log is enabled,
records every handled search.

Example:
  reporadar serve
  reporadar serve --port 9090
  reporadar serve --host 0.0.0.0 --port 8080`,
	RunE: runServer,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	// Server flags
	serveCmd.Flags().StringVar(&serverHost, "host", "", "server host (overrides config)")
	serveCmd.Flags().IntVar(&serverPort, "port", 0, "server port (overrides config)")
}

func runServer(cmd *cobra.Command, args []string) error {
	cfg := *appConfig
	if serverHost != "" {
		cfg.Server.Host = serverHost
	}
	if serverPort != 0 {
		cfg.Server.Port = serverPort
	}

	log := logger.L()

	searchService, err := newSearchService(&cfg, log)
	if err != nil {
		return err
	}

	var db *database.DB
	if cfg.AuditEnabled() {
		db, err = openDatabase(&cfg, log)
		if err != nil {
			return fmt.Errorf("opening audit database: %w", err)
		}
		defer db.Close()
		log.Info("search audit log enabled", zap.String("path", cfg.Database.Path))
	}

	srv := api.NewServer(api.OptionsFromConfig(&cfg, buildInfo(), log))
	srv.SetDependencies(&types.Dependencies{
		DB:            db,
		SearchService: searchService,
		SearchLog:     newSearchLog(db, log),
		Logger:        log,
	})
	if err := srv.Initialize(); err != nil {
		return fmt.Errorf("initializing server: %w", err)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info("starting Repo Radar API server",
			zap.String("address", srv.Addr()),
			zap.String("version", Version))
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server forced to shutdown: %w", err)
		}
		log.Info("server gracefully stopped")
		return nil
	})

	if db != nil {
		retention := cleanup.NewService(searchlog.NewRepository(db.DB),
			cfg.Audit.Retention, cfg.Audit.CleanupInterval, log)
		g.Go(func() error {
			return retention.Run(gctx)
		})
	}

	return g.Wait()
}
