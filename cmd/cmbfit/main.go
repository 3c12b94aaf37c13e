package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	httpadapter "github.com/couchcryptid/cmb-spectrum/internal/adapter/http"
	kafkaadapter "github.com/couchcryptid/cmb-spectrum/internal/adapter/kafka"
	"github.com/couchcryptid/cmb-spectrum/internal/adapter/lambda"
	"github.com/couchcryptid/cmb-spectrum/internal/config"
	"github.com/couchcryptid/cmb-spectrum/internal/fit"
	"github.com/couchcryptid/cmb-spectrum/internal/observability"
	"github.com/couchcryptid/cmb-spectrum/internal/pipeline"
	"github.com/couchcryptid/cmb-spectrum/internal/render"
)

func main() {
	os.Exit(run())
}

func run() int {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		return 1
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	// Remote ingestion is feature-flagged via CMB_REMOTE_ENABLED.
	var source pipeline.SpectrumSource
	if cfg.RemoteEnabled {
		source = lambda.NewClient(cfg.SourceURL, cfg.UserAgent, cfg.FetchTimeout, logger)
		logger.Info("remote ingestion enabled", "url", cfg.SourceURL, "timeout", cfg.FetchTimeout)
	} else {
		logger.Info("remote ingestion disabled")
	}
	provider := pipeline.NewProvider(source, logger, metrics)

	reporters := []pipeline.Reporter{pipeline.NewConsoleReporter(os.Stdout)}
	if cfg.PlotEnabled {
		reporters = append(reporters, render.NewSpectrumPlot(cfg.PlotPath, logger))
	}
	if brokers := cfg.Brokers(); len(brokers) > 0 {
		publisher := kafkaadapter.NewPublisher(brokers, cfg.KafkaTopic, logger)
		reporters = append(reporters, publisher)
		defer func() {
			if err := publisher.Close(); err != nil {
				logger.Error("kafka publisher close error", "error", err)
			}
		}()
		logger.Info("kafka publishing enabled", "brokers", brokers, "topic", cfg.KafkaTopic)
	}
	// Textfile last so it captures the metrics of the other reporters.
	if cfg.MetricsTextfile != "" {
		reporters = append(reporters, observability.NewTextfileReporter(cfg.MetricsTextfile, metrics.Registry, logger))
	}

	p := pipeline.New(provider, fit.New(), reporters, logger, metrics)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	_, err = p.Run(ctx)
	code, abort := handleRunError(logger, err)
	if abort {
		return code
	}

	if cfg.HTTPAddr == "" {
		return code
	}

	srv := httpadapter.NewServer(cfg.HTTPAddr, p, metrics.Registry, logger)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}

	logger.Info("shutdown complete")
	return code
}

// handleRunError logs the outcome of a run and returns the exit code. A fit
// failure aborts the process; reporter failures still allow serving.
func handleRunError(logger *slog.Logger, err error) (code int, abort bool) {
	switch {
	case err == nil:
		return 0, false
	case errors.Is(err, pipeline.ErrFitFailed):
		logger.Error("fit failed", "error", err)
		return 1, true
	default:
		logger.Error("reporting incomplete", "error", err)
		return 1, false
	}
}
