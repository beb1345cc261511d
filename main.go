package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"prep-meter/internal/app"
	"prep-meter/internal/config"
	"prep-meter/internal/database"
	"prep-meter/internal/logging"
	"prep-meter/internal/services"
)

var (
	cfg      *config.Config
	logger   *zap.Logger
	logLevel string
)

var rootCmd = &cobra.Command{
	Use:           "prepmeter",
	Short:         "Study analytics for JEE preparation",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load()
		if err != nil {
			return err
		}
		if logLevel != "" {
			cfg.Log.Level = logLevel
		}
		logger, err = logging.New(cfg.Log.Level, cfg.Log.Development)
		return err
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the Telegram bot and scheduled digests",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cfg.Validate(true); err != nil {
			return fmt.Errorf("invalid configuration: %w", err)
		}

		application, err := app.New(cmd.Context(), cfg, logger)
		if err != nil {
			return err
		}
		if err := application.Start(); err != nil {
			return err
		}

		waitForShutdown()
		logger.Info("shutting down")
		return application.Stop()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")
	rootCmd.AddCommand(serveCmd, reportCmd, importCmd)
}

// openServices opens the store for one-shot commands.
func openServices(ctx context.Context) (*services.ServiceManager, func(), error) {
	if err := cfg.Validate(false); err != nil {
		return nil, nil, fmt.Errorf("invalid configuration: %w", err)
	}
	db, err := database.New(ctx, cfg.Database.Path, logger.Named("database"))
	if err != nil {
		return nil, nil, err
	}
	closeDB := func() {
		if err := db.Close(); err != nil {
			logger.Warn("close database failed", zap.Error(err))
		}
	}
	return services.NewServiceManager(db, cfg.Report.Title, cfg.Location(), logger), closeDB, nil
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "❌", err)
		os.Exit(1)
	}
}

func waitForShutdown() {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan
}
