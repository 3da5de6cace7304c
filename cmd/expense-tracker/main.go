package main

import (
	"context"
	"fmt"
	"os"

	"expense-tracker/internal/cli"
	applog "expense-tracker/internal/log"
	"expense-tracker/internal/metrics"
	"expense-tracker/internal/services"
	"expense-tracker/internal/shell"
)

func main() {
	if err := run(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "expense-tracker:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cli.LoadEnvFile()

	cfg, err := cli.LoadAndValidateConfig()
	if err != nil {
		return err
	}

	logger, closeLog, err := cli.SetupLogger(cfg, os.Stderr)
	if err != nil {
		return err
	}
	defer closeLog()

	logger.Info("Starting expense tracker",
		applog.FieldOperation, applog.OpStartup,
		applog.FieldBackend, cfg.DataBackend)

	result, err := cli.InitBackend(ctx, logger, cfg)
	if err != nil {
		logger.Error("Failed to initialize backend", applog.FieldError, err)
		return err
	}
	defer func() {
		if err := result.Close(); err != nil {
			logger.Error("Backend cleanup failed", applog.FieldError, err)
		}
	}()

	m := metrics.NewPrometheusMetrics()
	if cfg.MetricsTextfile != "" {
		defer func() {
			if err := m.WriteTextfile(cfg.MetricsTextfile); err != nil {
				logger.Warn("Failed to write metrics", applog.FieldPath, cfg.MetricsTextfile, applog.FieldError, err)
			}
		}()
	}

	service, err := services.NewExpenseService(ctx, result.Store, services.ExpenseServiceConfig{
		SummaryCacheTTL: cfg.SummaryCacheTTL,
		Metrics:         m,
		Logger:          logger,
	})
	if err != nil {
		logger.Error("Failed to load expenses", applog.FieldError, err)
		return err
	}

	if err := shell.New(service, os.Stdin, os.Stdout, logger).Run(ctx); err != nil {
		logger.Error("Session ended with error", applog.FieldError, err)
		return err
	}

	logger.Info("Expense tracker stopped", applog.FieldOperation, applog.OpShutdown)
	return nil
}
