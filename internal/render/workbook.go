package render

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/KirkDiggler/dicegraph/internal/models"
	"github.com/xuri/excelize/v2"
)

// Sheet is one roll set written to a workbook
type Sheet struct {
	Name  string
	Store *models.RollStore
}

const maxSheetName = 31

// Workbook writes an XLSX file with one sheet per roll set. Each sheet holds
// the value, count and percentage of every category followed by the totals.
func Workbook(w io.Writer, sheets ...Sheet) error {
	if len(sheets) == 0 {
		return errors.New("at least one sheet is required")
	}

	f := excelize.NewFile()
	defer f.Close()

	used := map[string]bool{}
	for i, sheet := range sheets {
		if sheet.Store == nil {
			return fmt.Errorf("sheet %q: %w", sheet.Name, ErrNilStore)
		}

		name := sheetName(sheet.Name, used)
		used[strings.ToLower(name)] = true

		if i == 0 {
			if err := f.SetSheetName(f.GetSheetName(0), name); err != nil {
				return fmt.Errorf("failed to name sheet %q: %w", name, err)
			}
		} else if _, err := f.NewSheet(name); err != nil {
			return fmt.Errorf("failed to add sheet %q: %w", name, err)
		}

		if err := writeSheet(f, name, sheet.Store); err != nil {
			return err
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func writeSheet(f *excelize.File, sheet string, store *models.RollStore) error {
	rows := [][]any{{"Value", "Count", "Percent"}}

	percentages := store.Percentages()
	for value, count := range store.Distribution() {
		rows = append(rows, []any{value, count, percentages[value]})
	}

	cfg := store.Config()
	rows = append(rows,
		[]any{},
		[]any{"Total", store.Total()},
		[]any{"Dice", cfg.DiceCount},
		[]any{"Faces", cfg.FaceCount},
		[]any{"Mode", string(cfg.Mode)},
	)

	for r, row := range rows {
		for c, v := range row {
			cell, err := excelize.CoordinatesToCellName(c+1, r+1)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return fmt.Errorf("failed to write %s!%s: %w", sheet, cell, err)
			}
		}
	}
	return nil
}

// sheetName strips characters excel rejects, truncates to the length limit
// and appends a suffix when the name is already taken.
func sheetName(name string, used map[string]bool) string {
	clean := strings.Map(func(r rune) rune {
		if strings.ContainsRune(`[]:*?/\`, r) {
			return '_'
		}
		return r
	}, strings.Trim(strings.TrimSpace(name), "'"))
	if clean == "" {
		clean = "Rolls"
	}
	clean = truncate(clean, maxSheetName)

	candidate := clean
	for n := 2; used[strings.ToLower(candidate)]; n++ {
		suffix := fmt.Sprintf(" (%d)", n)
		candidate = truncate(clean, maxSheetName-len(suffix)) + suffix
	}
	return candidate
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
