package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/lueurxax/intel-watch/internal/app"
	"github.com/lueurxax/intel-watch/internal/platform/config"
)

var (
	logDirFlag string
	roomsFlag  []string
)

var rootCmd = &cobra.Command{
	Use:           "intel-watch",
	Short:         "intel-watch - chat-log intel tracker",
	SilenceUsage:  true,
	SilenceErrors: true,
}

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Tail the chat-log directory and stream intel events",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return run(cmd.Context(), func(ctx context.Context, a *app.App) error {
			return a.RunWatch(ctx)
		})
	},
}

var replayCmd = &cobra.Command{
	Use:   "replay FILE...",
	Short: "Classify complete chat-log files once and print the events",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(cmd.Context(), func(ctx context.Context, a *app.App) error {
			return a.RunReplay(ctx, args)
		})
	},
}

var kosCmd = &cobra.Command{
	Use:   "kos NAME...",
	Short: "Run one KOS check and print the summary",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(cmd.Context(), func(ctx context.Context, a *app.App) error {
			return a.RunKOS(ctx, args)
		})
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logDirFlag, "log-dir", "", "chat-log directory (overrides LOG_DIR)")
	rootCmd.PersistentFlags().StringSliceVar(&roomsFlag, "rooms", nil, "monitored intel rooms (overrides INTEL_ROOMS)")
	rootCmd.AddCommand(watchCmd, replayCmd, kosCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, mode func(context.Context, *app.App) error) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if logDirFlag != "" {
		cfg.LogDir = logDirFlag
	}

	if len(roomsFlag) > 0 {
		cfg.IntelRooms = roomsFlag
	}

	logger := newLogger(cfg.AppEnv, cfg.LogLevel)

	if err := mode(ctx, app.New(cfg, os.Stdout, &logger)); err != nil {
		if errors.Is(err, context.Canceled) {
			logger.Info().Msg("application stopped")
			return nil
		}

		return err
	}

	return nil
}

func newLogger(appEnv, level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}

	if appEnv == "local" {
		return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
			Level(lvl).With().Timestamp().Logger()
	}

	return zerolog.New(os.Stderr).Level(lvl).With().Timestamp().Logger()
}
