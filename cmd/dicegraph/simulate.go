package main

import (
	"errors"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/dicegraph/internal/handlers/tabs"
)

var (
	simulateFlags diceFlags
	simulateRolls int
	simulateSeed  int64
	simulateYes   bool
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Simulate rolls of fair dice and save the result",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		view, err := app.simulator.OnApply(ctx, simulateFlags.request(
			tabs.FieldRolls, strconv.Itoa(simulateRolls),
			tabs.FieldSeed, strconv.FormatInt(simulateSeed, 10),
		))
		if err != nil {
			return err
		}
		if err := printView(cmd.OutOrStdout(), view); err != nil {
			return err
		}
		if view.NeedsConfirmation && !simulateYes {
			return errors.New("large simulation not confirmed, rerun with --yes")
		}

		done := make(chan *tabs.View, 1)
		view, err = app.simulator.Run(ctx, simulateYes, func(v *tabs.View) { done <- v })
		if err != nil {
			return err
		}
		if err := printView(cmd.OutOrStdout(), view); err != nil {
			return err
		}

		var result *tabs.View
		select {
		case result = <-done:
		case <-ctx.Done():
			return ctx.Err()
		}

		if err := printView(cmd.OutOrStdout(), result); err != nil {
			return err
		}
		printHistogram(cmd.OutOrStdout(), result.Store)
		return nil
	},
}

func init() {
	simulateFlags.register(simulateCmd)
	simulateCmd.Flags().IntVar(&simulateRolls, "rolls", 1000, "number of rolls to simulate")
	simulateCmd.Flags().Int64Var(&simulateSeed, "seed", 0, "seed for a reproducible run (0 picks one)")
	simulateCmd.Flags().BoolVar(&simulateYes, "yes", false, "confirm large simulations")
}
