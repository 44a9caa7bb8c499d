// Package main is the entry point for the dicegraph command line
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/dicegraph/internal/config"
)

var (
	envFile string
	app     *application
)

var rootCmd = &cobra.Command{
	Use:   "dicegraph",
	Short: "Dice roll tracker, simulator and fairness tester",
	Long: `dicegraph records rolls of physical dice, simulates large numbers of rolls
and tests whether the recorded distribution is consistent with fair dice.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(envFile)
		if err != nil {
			return err
		}

		level, err := cfg.SlogLevel()
		if err != nil {
			return err
		}
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

		app, err = newApplication(cmd.Context(), cfg)
		return err
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if app == nil {
			return nil
		}
		return app.Close()
	},
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "optional file of environment variables")

	rootCmd.AddCommand(rollCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(fairnessCmd)
	rootCmd.AddCommand(setsCmd)
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(prefsCmd)
	rootCmd.AddCommand(clearDataCmd)
}
