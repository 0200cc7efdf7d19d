// Command preprocessd runs the JD preprocessing workers: one Kafka consumer
// loop per source (TEXT, IMAGE, URL) publishing canonical section maps, or
// structured fail events, back to the broker.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dongwoo46/HireLog/internal/config"
	"github.com/dongwoo46/HireLog/internal/logging"
	"github.com/dongwoo46/HireLog/internal/worker"
)

var (
	configPath string
	logLevel   string
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "preprocessd",
		Short:        "JD preprocessing worker service",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to config YAML (optional)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "override log level (debug/info/warn/error)")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if logLevel != "" {
		cfg.Logging.Level = logLevel
	}

	logger, err := logging.New(cfg.Logging.Level, cfg.Logging.JSON)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()
	zap.ReplaceGlobals(logger)

	logger.Info("preprocess pipeline starting",
		zap.Strings("brokers", cfg.Kafka.Brokers),
		zap.String("group", cfg.Kafka.ConsumerGroup),
		zap.String("textTopic", cfg.Kafka.TextTopic),
		zap.String("ocrTopic", cfg.Kafka.OCRTopic),
		zap.String("urlTopic", cfg.Kafka.URLTopic))

	svc, err := worker.NewService(cfg, logger)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := svc.Run(ctx); err != nil {
		return err
	}

	logger.Info("pipeline stopped")
	return nil
}
