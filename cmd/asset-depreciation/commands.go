package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/iwvelando/asset-depreciation/internal/config"
	"github.com/iwvelando/asset-depreciation/internal/logging"
	"github.com/iwvelando/asset-depreciation/internal/metrics"
	"github.com/iwvelando/asset-depreciation/internal/registry"
	"github.com/iwvelando/asset-depreciation/internal/server"
	"github.com/iwvelando/asset-depreciation/internal/store"
	"github.com/iwvelando/asset-depreciation/pkg/constants"
	"github.com/iwvelando/asset-depreciation/pkg/depreciation"
	"github.com/iwvelando/asset-depreciation/pkg/output"
	"github.com/iwvelando/asset-depreciation/pkg/report"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newScheduleCmd(opts *cliOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "schedule",
		Short: "Print the depreciation schedule of every configured asset",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := load(opts)
			if err != nil {
				return err
			}
			defer func() { _ = r.logger.Sync() }()

			generator := depreciation.NewScheduleGenerator(logging.Named(r.logger, "schedule"))
			schedules := output.ComputeSchedules(generator, r.items)
			metrics.ObserveSchedules(schedules)

			writer, err := output.NewWriter(r.outputFormat, r.formatter)
			if err != nil {
				return err
			}
			return withOutput(cmd, opts, func(w io.Writer) error {
				return writer.WriteSchedules(w, schedules)
			})
		},
	}
}

func newReportCmd(opts *cliOptions) *cobra.Command {
	var year int

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Aggregate depreciation and book value across assets for one year",
		Long: `Aggregate depreciation and book value across assets for one year.

With the sqlite storage driver, configured assets are imported into the
database first and the report covers every stored asset, including those
added by earlier runs or through the HTTP API. Imported assets must pass
validation.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := load(opts)
			if err != nil {
				return err
			}
			defer func() { _ = r.logger.Sync() }()

			summary, err := buildReport(cmd.Context(), r, reportYear(year, r.conf.Report.Year, time.Now()))
			if err != nil {
				return err
			}

			writer, err := output.NewWriter(r.outputFormat, r.formatter)
			if err != nil {
				return err
			}
			return withOutput(cmd, opts, func(w io.Writer) error {
				return writer.WriteReport(w, summary)
			})
		},
	}
	cmd.Flags().IntVar(&year, "year", 0, "calendar year to report (defaults to report.year, then the current year)")
	return cmd
}

// buildReport aggregates the configured assets directly for memory storage,
// and the stored records otherwise.
func buildReport(ctx context.Context, r *run, year int) (report.Summary, error) {
	if r.conf.Storage.Driver == "" || r.conf.Storage.Driver == constants.StorageDriverMemory {
		return report.ForYear(year, r.items), nil
	}

	repo, closeRepo, err := store.OpenRepository[registry.Record](
		r.conf.Storage.Driver, r.conf.Storage.Path, registry.RecordKind)
	if err != nil {
		return report.Summary{}, err
	}
	defer func() { _ = closeRepo() }()

	service := registry.NewService(repo, logging.Named(r.logger, "registry"))
	if _, err := service.Import(ctx, r.items); err != nil {
		return report.Summary{}, err
	}
	return service.Report(ctx, year)
}

func newServeCmd(opts *cliOptions) *cobra.Command {
	var serverConfigPath string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the depreciation HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.LoadEnv(opts.envFile); err != nil {
				return err
			}
			serverConfig, err := server.LoadConfig(serverConfigPath)
			if err != nil {
				return err
			}

			logger, err := logging.New(serverConfig.Logging, opts.logLevel)
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			defer func() { _ = logger.Sync() }()

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return serve(ctx, serverConfig, logger)
		},
	}
	cmd.Flags().StringVar(&serverConfigPath, "server-config", constants.DefaultServerConfigFile, "path to server configuration file")
	return cmd
}

// serve runs the HTTP server until ctx is cancelled, then shuts it down
// gracefully.
func serve(ctx context.Context, serverConfig *server.Config, logger *zap.Logger) error {
	repo, closeRepo, err := store.OpenRepository[registry.Record](
		serverConfig.Storage.Driver, serverConfig.Storage.Path, registry.RecordKind)
	if err != nil {
		return err
	}
	defer func() {
		if err := closeRepo(); err != nil {
			logger.Warn("failed to close storage", zap.String("op", "main.serve"), zap.Error(err))
		}
	}()

	service := registry.NewService(repo, logging.Named(logger, "registry"))
	if serverConfig.SeedConfig != "" {
		if err := seed(ctx, service, serverConfig.SeedConfig, logger); err != nil {
			return err
		}
	}

	srv := &http.Server{
		Addr: serverConfig.Address,
		Handler: server.NewHandler(server.Options{
			Logger:         logging.Named(logger, "http"),
			MaxUploadSize:  serverConfig.UploadSizeBytes(),
			Version:        version,
			Assets:         service,
			AllowedOrigins: serverConfig.CORS.AllowedOrigins,
		}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting server",
			zap.String("op", "main.serve"),
			zap.String("address", serverConfig.Address),
			zap.String("storage", serverConfig.Storage.Driver),
		)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down server", zap.String("op", "main.serve"))
	shutdownCtx, cancel := context.WithTimeout(context.Background(), constants.DefaultShutdownTimeoutSeconds*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down server: %w", err)
	}
	return nil
}

func seed(ctx context.Context, service *registry.Service, path string, logger *zap.Logger) error {
	conf, err := config.LoadConfiguration(path)
	if err != nil {
		return fmt.Errorf("failed to load seed configuration at %s: %w", path, err)
	}
	for _, warning := range conf.ValidateConfiguration() {
		logger.Warn("Seed configuration warning: "+warning, zap.String("op", "main.seed"))
	}
	items, err := conf.Items()
	if err != nil {
		return fmt.Errorf("failed to parse seed assets: %w", err)
	}
	imported, err := service.Import(ctx, items)
	if err != nil {
		return err
	}
	logger.Info("seeded assets",
		zap.String("op", "main.seed"),
		zap.String("path", path),
		zap.Int("assets", imported),
	)
	return nil
}
