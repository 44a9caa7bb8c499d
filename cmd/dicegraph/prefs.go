package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/dicegraph/internal/handlers/tabs"
)

var prefsCmd = &cobra.Command{
	Use:   "prefs",
	Short: "Show and change preferences",
}

var prefsGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Print one preference",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		view, err := app.preferences.OnLoad(cmd.Context(), nil)
		if err != nil {
			return err
		}

		value, ok := view.Fields[args[0]]
		if !ok {
			return fmt.Errorf("preference %q is not set", args[0])
		}
		fmt.Fprintln(cmd.OutOrStdout(), value)
		return nil
	},
}

var prefsSetCmd = &cobra.Command{
	Use:   "set <key> <value> [<key> <value>...]",
	Short: "Change preferences",
	Args: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 || len(args)%2 != 0 {
			return errors.New("expected key value pairs")
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		view, err := app.preferences.OnApply(cmd.Context(), tabs.NewRequest(args...))
		if err != nil {
			return err
		}
		return printView(cmd.OutOrStdout(), view)
	},
}

var prefsListCmd = &cobra.Command{
	Use:   "list",
	Short: "Print every preference",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		view, err := app.preferences.OnLoad(cmd.Context(), nil)
		if err != nil {
			return err
		}
		return printView(cmd.OutOrStdout(), view)
	},
}

var clearDataYes bool

var clearDataCmd = &cobra.Command{
	Use:   "clear-data",
	Short: "Delete every saved roll set and simulation",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		view, err := app.preferences.ClearData(cmd.Context(), clearDataYes)
		if err != nil {
			return err
		}
		if err := printView(cmd.OutOrStdout(), view); err != nil {
			return err
		}
		if view.NeedsConfirmation {
			return errors.New("not confirmed, rerun with --yes")
		}
		return nil
	},
}

func init() {
	prefsCmd.AddCommand(prefsGetCmd)
	prefsCmd.AddCommand(prefsSetCmd)
	prefsCmd.AddCommand(prefsListCmd)

	clearDataCmd.Flags().BoolVar(&clearDataYes, "yes", false, "confirm deletion")
}
