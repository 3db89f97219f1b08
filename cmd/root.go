package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gasfill/internal/adapters/out/postgres"
	"gasfill/internal/pkg/logging"

	"github.com/spf13/cobra"
)

const shutdownTimeout = 10 * time.Second

var (
	envFile string
	cfg     Config
)

var rootCmd = &cobra.Command{
	Use:           "gasfill",
	Short:         "LPG cylinder delivery backend",
	Long:          `gasfill serves the order and rider API, dispatches riders to cylinder orders and expires unconfirmed assignments.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := LoadEnvFile(envFile); err != nil {
			return err
		}
		loaded, err := LoadConfig(NewViper())
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = loaded
		return nil
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API and the assignment expiry job",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cfg.Validate(true); err != nil {
			return err
		}
		return serve(cmd.Context(), cfg)
	},
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cfg.Validate(false); err != nil {
			return err
		}
		db, err := OpenDatabase(cfg)
		if err != nil {
			return err
		}
		if err := postgres.Migrate(db); err != nil {
			return err
		}
		logging.NewLogger(cfg.LogLevel).Info("schema migrated")
		return nil
	},
}

var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Expire overdue assignments once and exit",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cfg.Validate(false); err != nil {
			return err
		}
		logger := logging.NewLogger(cfg.LogLevel)
		db, err := OpenDatabase(cfg)
		if err != nil {
			return err
		}
		root := NewCompositionRoot(cfg, db, logger)
		defer closeRoot(root, logger)

		expired, err := root.CreateAssignmentExpiryJob().RunOnce(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "expired %d assignment(s)\n", len(expired))
		for _, id := range expired {
			fmt.Fprintln(cmd.OutOrStdout(), id)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file loaded before reading the environment")

	seedCmd.Flags().Int("riders", 10, "Number of riders to register")
	seedCmd.Flags().Int("orders", 20, "Number of pending orders to place")
	seedCmd.Flags().Float64("radius-km", 5, "Maximum distance from the station for generated locations")

	rootCmd.AddCommand(serveCmd, migrateCmd, sweepCmd, seedCmd)
}

// Execute runs the root command.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}

func serve(ctx context.Context, cfg Config) error {
	logger := logging.NewLogger(cfg.LogLevel)

	db, err := OpenDatabase(cfg)
	if err != nil {
		return err
	}
	if err := postgres.Migrate(db); err != nil {
		return err
	}

	root := NewCompositionRoot(cfg, db, logger)
	defer closeRoot(root, logger)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	err = root.Ping(pingCtx)
	cancel()
	if err != nil {
		return err
	}

	jobManager := root.CreateJobManager()
	if err := jobManager.StartAll(); err != nil {
		return err
	}
	defer jobManager.StopAll()

	e, err := root.CreateEcho(ctx)
	if err != nil {
		return err
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("http server starting", slog.String("port", cfg.HTTPPort))
		if err := e.Start(fmt.Sprintf("0.0.0.0:%s", cfg.HTTPPort)); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancelShutdown()
	return e.Shutdown(shutdownCtx)
}

func closeRoot(root *CompositionRoot, logger *slog.Logger) {
	if err := root.Close(); err != nil {
		logger.Warn("close dependencies", slog.Any("error", err))
	}
}

