package main

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/dicegraph/internal/handlers/tabs"
	"github.com/KirkDiggler/dicegraph/internal/models"
)

const histogramWidth = 40

// diceFlags are the flags that describe a dice configuration
type diceFlags struct {
	name  string
	dice  int
	faces int
	mode  string
}

func (f *diceFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.name, "name", "", "name of the dice set")
	cmd.Flags().IntVar(&f.dice, "dice", 1, "number of dice per roll")
	cmd.Flags().IntVar(&f.faces, "faces", 0, "faces per die (default from preferences)")
	cmd.Flags().StringVar(&f.mode, "mode", "", "tally mode: faces or sum")
	_ = cmd.MarkFlagRequired("name")
}

func (f *diceFlags) request(extra ...string) *tabs.Request {
	kv := []string{
		tabs.FieldName, f.name,
		tabs.FieldDice, strconv.Itoa(f.dice),
		tabs.FieldMode, f.mode,
	}
	if f.faces > 0 {
		kv = append(kv, tabs.FieldFaces, strconv.Itoa(f.faces))
	}
	return tabs.NewRequest(append(kv, extra...)...)
}

// printView writes a view to w. A view describing a failure becomes the
// command's error so the exit status is non-zero.
func printView(w io.Writer, view *tabs.View) error {
	if view.IsError {
		return errors.New(view.Title + ": " + view.Message)
	}

	if view.Title != "" {
		fmt.Fprintf(w, "== %s ==\n", view.Title)
	}
	if view.Message != "" {
		fmt.Fprintln(w, view.Message)
	}
	for _, line := range view.Lines {
		fmt.Fprintf(w, "  %s\n", line)
	}
	return nil
}

// printHistogram draws the distribution of store as text
func printHistogram(w io.Writer, store *models.RollStore) {
	if store == nil {
		return
	}

	var highest int64
	for _, c := range store.Distribution() {
		highest = max(highest, c)
	}

	width := len(strconv.Itoa(store.Config().Max()))
	percentages := store.Percentages()
	for value, count := range store.Distribution() {
		bar := 0
		if highest > 0 {
			bar = int(count * histogramWidth / highest)
		}
		fmt.Fprintf(w, "%*d | %-*s %d (%.1f%%)\n",
			width, value, histogramWidth, strings.Repeat("#", bar), count, percentages[value])
	}
}
