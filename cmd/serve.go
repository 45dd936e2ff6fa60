package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"osintscan/internal/api"
	"osintscan/internal/api/handler/v1handler"
	"osintscan/internal/config"
	"osintscan/internal/correlation"
	"osintscan/internal/credit"
	"osintscan/internal/orchestrator"
	"osintscan/internal/scanjob"
	"osintscan/internal/worker"
	"osintscan/pkg/engine/spiderfoot"
	"osintscan/pkg/logger"
	"osintscan/pkg/metrics"
	"osintscan/pkg/progress"
	"osintscan/pkg/storage/postgres"
	"syscall"

	"github.com/jonboulle/clockwork"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	progressTransportPostgres = "postgres"
	progressTransportMemory   = "memory"
)

// setupProgress returns the publisher used by the background side, the bus
// read by the API, and the relay that feeds the bus when events travel
// through Postgres.
func setupProgress(cfg *config.Config,
	strg *postgres.PgSQL,
	clock clockwork.Clock) (progress.Publisher, *progress.Bus, *progress.PGListener, error) {
	bus := progress.NewBus(cfg.Progress.BufferSize)

	switch cfg.Progress.Transport {
	case progressTransportPostgres:
		return progress.NewPGNotifier(strg.Pool, cfg.Progress.Channel),
			bus,
			progress.NewPGListener(strg.Pool, bus, cfg.Progress.Channel, clock),
			nil
	case progressTransportMemory:
		return bus, bus, nil, nil
	default:
		return nil, nil, nil, fmt.Errorf("unknown progress transport %q", cfg.Progress.Transport)
	}
}

func setupOrchestrator(cfg *config.Config,
	strg *postgres.PgSQL,
	publisher progress.Publisher,
	clock clockwork.Clock,
	meters metric.MeterProvider) (*orchestrator.Orchestrator, error) {
	engineClient, err := spiderfoot.New(&http.Client{Timeout: cfg.Engine.RequestTimeout}, spiderfoot.Options{
		BaseURL:       cfg.Engine.BaseURL,
		APIKey:        cfg.Engine.APIKey,
		MeterProvider: meters,
	})
	if err != nil {
		return nil, fmt.Errorf("could not create engine client: %w", err)
	}

	return orchestrator.New(orchestrator.Deps{
		Jobs:      strg,
		Engine:    engineClient,
		Progress:  publisher,
		Extractor: correlation.New(correlation.NewOptions(cfg)),
		Clock:     clock,
	}, orchestrator.NewOptions(cfg)), nil
}

func serveCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Starts API server, background workers and progress relay",
		Run: func(cmd *cobra.Command, args []string) {
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			strg, closeStrg := getPostgres(ctx, cfg)
			defer closeStrg()

			meters, err := metrics.NewMeterProvider()
			if err != nil {
				logger.Fatal(ctx, "could not create meter provider", zap.Error(err))
			}

			clock := clockwork.NewRealClock()
			publisher, bus, listener, err := setupProgress(cfg, strg, clock)
			if err != nil {
				logger.Fatal(ctx, "could not set up progress broadcasting", zap.Error(err))
			}

			orch, err := setupOrchestrator(cfg, strg, publisher, clock, meters)
			if err != nil {
				logger.Fatal(ctx, "could not set up orchestrator", zap.Error(err))
			}

			g, gctx := errgroup.WithContext(ctx)

			if listener != nil {
				g.Go(func() error {
					logger.Info(gctx, "starting progress listener...")

					return listener.Run(gctx)
				})
			}

			riverClient, err := worker.Start(gctx, strg.Pool, worker.Deps{
				Orchestrator: orch,
				Jobs:         strg,
				Progress:     publisher,
				Clock:        clock,
			}, worker.NewOptions(cfg))
			if err != nil {
				logger.Fatal(ctx, "could not start workers", zap.Error(err))
			}

			server, err := api.NewServer(api.Deps{
				Deps: v1handler.Deps{
					ScanJobs: scanjob.New(strg, credit.New(credit.NewOptions(cfg)), scanjob.NewOptions(cfg)),
					Progress: bus,
				},
			}, api.NewOptions(cfg))
			if err != nil {
				logger.Fatal(ctx, "could not create webserver", zap.Error(err))
			}

			g.Go(func() error {
				logger.Info(gctx, "starting webserver...", zap.String("addr", server.Addr))
				if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					return fmt.Errorf("could not start webserver: %w", err)
				}

				return nil
			})

			g.Go(func() error {
				// wait for interrupt or a failed component
				<-gctx.Done()
				shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.GracefulShutdownTimeout)
				defer cancel()

				logger.Info(shutdownCtx, "stopping webserver...")
				if err := server.Shutdown(shutdownCtx); err != nil {
					logger.Error(shutdownCtx, "could not stop webserver", zap.Error(err))
				}

				// running scans are cancelled and recorded as interrupted
				logger.Info(shutdownCtx, "stopping workers...")
				if err := riverClient.StopAndCancel(shutdownCtx); err != nil {
					logger.Error(shutdownCtx, "could not stop workers", zap.Error(err))
				}

				if err := meters.Shutdown(shutdownCtx); err != nil {
					logger.Warn(shutdownCtx, "could not stop meter provider", zap.Error(err))
				}

				return nil
			})

			if err := g.Wait(); err != nil {
				logger.Error(ctx, "service stopped with error", zap.Error(err))
			}
		},
	}

	return cmd
}
