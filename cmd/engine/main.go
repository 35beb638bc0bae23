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

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/iho/paymentsengine/internal/adapter/csvio"
	httpAdapter "github.com/iho/paymentsengine/internal/adapter/http"
	"github.com/iho/paymentsengine/internal/adapter/http/handler"
	"github.com/iho/paymentsengine/internal/infrastructure/config"
	"github.com/iho/paymentsengine/internal/infrastructure/idgen"
	"github.com/iho/paymentsengine/internal/infrastructure/logger"
	"github.com/iho/paymentsengine/internal/infrastructure/metrics"
	"github.com/iho/paymentsengine/internal/usecase"
)

// stdinPath selects standard input as the transaction source.
const stdinPath = "-"

// options holds flag values. A flag only overrides the environment when it
// was set explicitly.
type options struct {
	logLevel          string
	logFormat         string
	rejectDuplicateTx bool
	metricsFile       string
	port              string
}

func main() {
	if err := newRootCmd(os.Stdin, os.Stdout, os.Stderr).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func newRootCmd(stdin io.Reader, stdout, stderr io.Writer) *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:           "paymentsengine [flags] <transactions.csv|->",
		Short:         "Process a transaction CSV and print the resulting accounts",
		Long:          `Reads deposits, withdrawals, disputes, resolves and chargebacks from a CSV file and writes the final state of every client account to stdout as CSV.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd, opts, stderr)
			if err != nil {
				return err
			}

			if err := a.ingest(cmd.Context(), args[0], stdin); err != nil {
				return err
			}

			if err := a.ingestUC.Export(cmd.Context(), csvio.NewAccountWriter(stdout)); err != nil {
				return fmt.Errorf("export accounts: %w", err)
			}

			return a.writeMetrics()
		},
	}

	rootCmd.SetIn(stdin)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&opts.logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	flags.StringVar(&opts.logFormat, "log-format", "json", "Log format (json, console)")
	flags.BoolVar(&opts.rejectDuplicateTx, "reject-duplicate-tx", false, "Reject deposits and withdrawals that reuse a stored transaction id")
	flags.StringVar(&opts.metricsFile, "metrics-file", "", "Write Prometheus metrics to this file after the run")

	rootCmd.AddCommand(newServeCmd(opts, stdin, stderr))

	return rootCmd
}

func newServeCmd(opts *options, stdin io.Reader, stderr io.Writer) *cobra.Command {
	serveCmd := &cobra.Command{
		Use:   "serve [flags] <transactions.csv|->",
		Short: "Process a transaction CSV, then serve the account snapshot over HTTP",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd, opts, stderr)
			if err != nil {
				return err
			}

			if err := a.ingest(cmd.Context(), args[0], stdin); err != nil {
				return err
			}

			if err := a.writeMetrics(); err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return a.serve(ctx)
		},
	}

	serveCmd.Flags().StringVar(&opts.port, "port", "8080", "HTTP port")

	return serveCmd
}

// app wires the engine, use cases and adapters for one run.
type app struct {
	cfg      *config.Config
	logger   zerolog.Logger
	registry *prometheus.Registry
	metrics  *metrics.Metrics
	ingestUC *usecase.IngestUseCase
	ledgerUC *usecase.LedgerUseCase
}

func newApp(cmd *cobra.Command, opts *options, stderr io.Writer) (*app, error) {
	cfg, err := loadConfig(cmd, opts)
	if err != nil {
		return nil, err
	}

	log := logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
		Output: stderr,
	})

	registry := prometheus.NewRegistry()
	m := metrics.New(registry)

	engineOpts := []usecase.EngineOption{usecase.WithMetrics(m)}
	if cfg.RejectDuplicateTx {
		engineOpts = append(engineOpts, usecase.WithDuplicateRejection())
	}
	engine := usecase.NewInMemoryEngine(engineOpts...)

	return &app{
		cfg:      cfg,
		logger:   log,
		registry: registry,
		metrics:  m,
		ingestUC: usecase.NewIngestUseCase(engine, idgen.NewULIDGenerator(), log, m),
		ledgerUC: usecase.NewLedgerUseCase(engine),
	}, nil
}

// loadConfig reads the environment, then applies explicitly set flags.
func loadConfig(cmd *cobra.Command, opts *options) (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}

	flags := cmd.Flags()
	if flags.Changed("log-level") {
		cfg.LogLevel = opts.logLevel
	}
	if flags.Changed("log-format") {
		cfg.LogFormat = opts.logFormat
	}
	if flags.Changed("reject-duplicate-tx") {
		cfg.RejectDuplicateTx = opts.rejectDuplicateTx
	}
	if flags.Changed("metrics-file") {
		cfg.MetricsFile = opts.metricsFile
	}
	if flags.Changed("port") {
		cfg.HTTPPort = opts.port
	}

	return cfg, nil
}

func (a *app) ingest(ctx context.Context, path string, stdin io.Reader) error {
	input, closeInput, err := openInput(path, stdin)
	if err != nil {
		return err
	}
	defer closeInput()

	if _, err := a.ingestUC.Ingest(ctx, csvio.NewTransactionReader(input)); err != nil {
		return fmt.Errorf("ingest %s: %w", path, err)
	}

	if err := a.ledgerUC.CheckConsistency(ctx); err != nil {
		a.logger.Error().Err(err).Msg("ledger consistency check failed")
	}

	return nil
}

func (a *app) writeMetrics() error {
	if a.cfg.MetricsFile == "" {
		return nil
	}

	if err := prometheus.WriteToTextfile(a.cfg.MetricsFile, a.registry); err != nil {
		return fmt.Errorf("write metrics file: %w", err)
	}

	a.logger.Debug().Str("path", a.cfg.MetricsFile).Msg("metrics written")
	return nil
}

func (a *app) serve(ctx context.Context) error {
	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		AccountHandler: handler.NewAccountHandler(a.ledgerUC),
		HealthHandler:  handler.NewHealthHandler(),
		Logger:         a.logger,
		Metrics:        a.metrics,
		Gatherer:       a.registry,
	})

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", a.cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  a.cfg.HTTPReadTimeout,
		WriteTimeout: a.cfg.HTTPWriteTimeout,
	}

	a.logger.Info().Str("port", a.cfg.HTTPPort).Msg("starting server")

	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	a.logger.Info().Msg("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	<-serverErr

	a.logger.Info().Msg("server stopped")
	return nil
}

func openInput(path string, stdin io.Reader) (io.Reader, func(), error) {
	if path == stdinPath {
		return stdin, func() {}, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open input: %w", err)
	}

	return f, func() { f.Close() }, nil
}
