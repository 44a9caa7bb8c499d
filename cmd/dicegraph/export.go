package main

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/dicegraph/internal/common/atomicfile"
	"github.com/KirkDiggler/dicegraph/internal/handlers/tabs"
	"github.com/KirkDiggler/dicegraph/internal/models"
	"github.com/KirkDiggler/dicegraph/internal/render"
)

var (
	exportOut        string
	exportSimulation bool
)

var exportCmd = &cobra.Command{
	Use:   "export <name>...",
	Short: "Export saved sets as a chart (svg, png) or workbook (xlsx)",
	Long: `Export one saved set as a bar chart, or any number of sets as a workbook with
one sheet per set. The format follows the extension of --out.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		sheets := make([]render.Sheet, 0, len(args))
		for _, name := range args {
			req := tabs.NewRequest(tabs.FieldName, name)

			var (
				view *tabs.View
				err  error
			)
			if exportSimulation {
				view, err = app.simulator.OnLoad(ctx, req)
			} else {
				view, err = app.roller.OnLoad(ctx, req)
			}
			if err != nil {
				return err
			}
			if view.IsError {
				return printView(cmd.OutOrStdout(), view)
			}
			sheets = append(sheets, render.Sheet{Name: view.Title, Store: view.Store})
		}

		var buf bytes.Buffer
		switch ext := strings.ToLower(filepath.Ext(exportOut)); ext {
		case ".xlsx":
			if err := render.Workbook(&buf, sheets...); err != nil {
				return err
			}
		case ".svg", ".png":
			if len(sheets) != 1 {
				return fmt.Errorf("a chart shows one set, got %d", len(sheets))
			}
			err := render.Chart(&buf, sheets[0].Store, render.ChartOptions{
				Format:   render.Format(ext[1:]),
				DarkMode: app.prefs.Snapshot().Bool(models.PrefDarkMode, false),
				Title:    sheets[0].Name,
				Width:    app.prefs.Snapshot().Int(models.PrefWindowWidth, 800),
				Height:   app.prefs.Snapshot().Int(models.PrefWindowHeight, 600),
			})
			if err != nil {
				return err
			}
		default:
			return fmt.Errorf("unsupported export format %q, use .svg, .png or .xlsx", ext)
		}

		if err := atomicfile.WriteFile(exportOut, buf.Bytes(), 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", exportOut, err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", exportOut)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "output file (.svg, .png or .xlsx)")
	exportCmd.Flags().BoolVar(&exportSimulation, "simulation", false, "export saved simulations")
	_ = exportCmd.MarkFlagRequired("out")
}
