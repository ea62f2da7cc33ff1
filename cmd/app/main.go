package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"packhouse/cmd"
	httpin "packhouse/internal/adapters/in/http"
	"packhouse/internal/adapters/out/postgres/classificationrepo"
	"packhouse/internal/pkg/logging"
	"packhouse/internal/pkg/metrics"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const shutdownTimeout = 10 * time.Second

var (
	envFile string
	v       = viper.New()
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd().ExecuteContext(ctx)
	stop()

	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "packhouse",
		Short:         "Classification weight ledger service",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file loaded before reading the environment")
	root.PersistentFlags().String("log-level", "", "log level (debug, info, warn, error)")
	root.PersistentFlags().String("log-format", "", "log format (json, console)")
	_ = v.BindPFlag(cmd.KeyLogLevel, root.PersistentFlags().Lookup("log-level"))
	_ = v.BindPFlag(cmd.KeyLogFormat, root.PersistentFlags().Lookup("log-format"))

	root.AddCommand(serveCmd(), migrateCmd())
	return root
}

func serveCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and background jobs",
		RunE: func(c *cobra.Command, _ []string) error {
			return serve(c.Context())
		},
	}

	c.Flags().String("http-port", "", "HTTP listen port")
	_ = v.BindPFlag(cmd.KeyHTTPPort, c.Flags().Lookup("http-port"))
	return c
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE: func(c *cobra.Command, _ []string) error {
			config, logger, err := bootstrap()
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			db, err := openDatabase(config)
			if err != nil {
				return err
			}

			if err = db.WithContext(c.Context()).AutoMigrate(classificationrepo.Models()...); err != nil {
				return fmt.Errorf("migration failed: %w", err)
			}

			logger.Info("schema migrated", zap.String("database", config.DBName))
			return nil
		},
	}
}

func bootstrap() (cmd.Config, *zap.Logger, error) {
	config, err := cmd.LoadConfig(v, envFile)
	if err != nil {
		return cmd.Config{}, nil, err
	}

	logger, err := logging.NewLogger(config.Logging())
	if err != nil {
		return cmd.Config{}, nil, err
	}

	return config, logger, nil
}

func openDatabase(config cmd.Config) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(config.DSN()), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return db, nil
}

func serve(ctx context.Context) error {
	config, logger, err := bootstrap()
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	db, err := openDatabase(config)
	if err != nil {
		return err
	}

	doc, err := httpin.LoadAPIDocument(ctx)
	if err != nil {
		return err
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	app := cmd.NewCompositionRoot(config, db, metrics.NewLedgerMetrics(registry), logger)

	jobManager := app.CreateJobManager()
	if err = jobManager.StartAll(); err != nil {
		return err
	}
	defer jobManager.StopAll()

	e := httpin.NewRouter(app.CreateServer(), httpin.RouterConfig{
		Document: doc,
		Gatherer: registry,
		Logger:   logging.Component(logger, "http"),
		Debug:    config.LogLevel == "debug",
	})

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", zap.String("port", config.HTTPPort))
		errCh <- e.Start(fmt.Sprintf("0.0.0.0:%s", config.HTTPPort))
	}()

	select {
	case err = <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	logger.Info("shutting down")
	return e.Shutdown(shutdownCtx)
}
