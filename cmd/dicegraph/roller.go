package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/dicegraph/internal/handlers/tabs"
)

var rollFlags diceFlags

var rollCmd = &cobra.Command{
	Use:   "roll [face...]",
	Short: "Record rolls of physical dice",
	Long: `Record one or more rolls. Each roll takes one face per die, so with --dice 2
the faces are read in pairs.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		faces := make([]int, 0, len(args))
		for _, a := range args {
			f, err := strconv.Atoi(a)
			if err != nil {
				return fmt.Errorf("face %q is not a number", a)
			}
			faces = append(faces, f)
		}
		if rollFlags.dice < 1 || len(faces)%rollFlags.dice != 0 {
			return fmt.Errorf("got %d faces, need a multiple of %d", len(faces), rollFlags.dice)
		}

		view, err := app.roller.OnApply(ctx, rollFlags.request())
		if err != nil {
			return err
		}
		if err := printView(cmd.OutOrStdout(), view); err != nil {
			return err
		}

		for i := 0; i < len(faces); i += rollFlags.dice {
			view, err = app.roller.Roll(ctx, faces[i:i+rollFlags.dice]...)
			if err != nil {
				return err
			}
			if err := printView(cmd.OutOrStdout(), view); err != nil {
				return err
			}
		}

		printHistogram(cmd.OutOrStdout(), view.Store)
		return nil
	},
}

var resetFlags diceFlags

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Clear every roll of a dice set",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		view, err := app.roller.OnApply(ctx, resetFlags.request())
		if err != nil {
			return err
		}
		if err := printView(cmd.OutOrStdout(), view); err != nil {
			return err
		}

		view, err = app.roller.Reset(ctx)
		if err != nil {
			return err
		}
		return printView(cmd.OutOrStdout(), view)
	},
}

var (
	fairnessSimulation bool
	fairnessAllowLow   bool
)

var fairnessCmd = &cobra.Command{
	Use:   "fairness [name]",
	Short: "Run a chi-square fairness test on a saved set",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		name := ""
		if len(args) == 1 {
			name = args[0]
		}
		req := tabs.NewRequest(
			tabs.FieldName, name,
			tabs.FieldAllowLowCounts, strconv.FormatBool(fairnessAllowLow),
		)

		var (
			view *tabs.View
			err  error
		)
		if fairnessSimulation {
			if view, err = app.simulator.OnLoad(ctx, req); err == nil && !view.IsError {
				view, err = app.simulator.Fairness(ctx, req)
			}
		} else {
			if view, err = app.roller.OnLoad(ctx, req); err == nil && !view.IsError {
				view, err = app.roller.Fairness(ctx, req)
			}
		}
		if err != nil {
			return err
		}

		if err := printView(cmd.OutOrStdout(), view); err != nil {
			return err
		}
		printHistogram(cmd.OutOrStdout(), view.Store)
		return nil
	},
}

var setsSimulations bool

var setsCmd = &cobra.Command{
	Use:   "sets",
	Short: "List saved roll sets",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		var (
			view *tabs.View
			err  error
		)
		if setsSimulations {
			view, err = app.simulator.Sets(cmd.Context())
		} else {
			view, err = app.roller.Sets(cmd.Context())
		}
		if err != nil {
			return err
		}
		return printView(cmd.OutOrStdout(), view)
	},
}

var deleteSimulation bool

var deleteCmd = &cobra.Command{
	Use:   "delete <name>",
	Short: "Delete a saved roll set",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var (
			view *tabs.View
			err  error
		)
		if deleteSimulation {
			view, err = app.simulator.Delete(cmd.Context(), args[0])
		} else {
			view, err = app.roller.Delete(cmd.Context(), args[0])
		}
		if err != nil {
			return err
		}
		return printView(cmd.OutOrStdout(), view)
	},
}

func init() {
	rollFlags.register(rollCmd)
	resetFlags.register(resetCmd)

	fairnessCmd.Flags().BoolVar(&fairnessSimulation, "simulation", false, "test a saved simulation")
	fairnessCmd.Flags().BoolVar(&fairnessAllowLow, "allow-low-counts", false, "report even when expected counts are below 5")

	setsCmd.Flags().BoolVar(&setsSimulations, "simulations", false, "list saved simulations")
	deleteCmd.Flags().BoolVar(&deleteSimulation, "simulation", false, "delete a saved simulation")
}
