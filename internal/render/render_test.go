package render

import (
	"bytes"
	"testing"

	"github.com/KirkDiggler/dicegraph/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func newStore(t *testing.T, dice, faces int, mode models.TallyMode, values ...int) *models.RollStore {
	t.Helper()

	cfg, err := models.NewDiceConfig("test", dice, faces, mode)
	require.NoError(t, err)
	store, err := models.NewRollStore(cfg)
	require.NoError(t, err)
	require.NoError(t, store.RecordBatch(values))
	return store
}

func TestChartSVG(t *testing.T) {
	store := newStore(t, 1, 6, models.TallyModeFaces, 1, 2, 2, 6, 6, 6)

	var buf bytes.Buffer
	require.NoError(t, Chart(&buf, store, ChartOptions{Format: FormatSVG, Title: "Red d6"}))

	out := buf.String()
	assert.Contains(t, out, "<svg")
	assert.Contains(t, out, "Red d6 (6 rolls)")
}

func TestChartPNGDarkMode(t *testing.T) {
	store := newStore(t, 2, 6, models.TallyModeSum, 7, 7, 2, 12)

	var buf bytes.Buffer
	require.NoError(t, Chart(&buf, store, ChartOptions{Format: FormatPNG, DarkMode: true}))

	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("\x89PNG")))
}

func TestChartEmptyStore(t *testing.T) {
	store := newStore(t, 1, 20, models.TallyModeFaces)

	var buf bytes.Buffer
	require.NoError(t, Chart(&buf, store, ChartOptions{}))
	assert.Contains(t, buf.String(), "<svg")
}

func TestChartErrors(t *testing.T) {
	var buf bytes.Buffer
	assert.ErrorIs(t, Chart(&buf, nil, ChartOptions{}), ErrNilStore)

	store := newStore(t, 1, 6, models.TallyModeFaces)
	assert.Error(t, Chart(&buf, store, ChartOptions{Format: "gif"}))
}

func TestWorkbook(t *testing.T) {
	d6 := newStore(t, 1, 6, models.TallyModeFaces, 1, 1, 3, 6)
	twoD6 := newStore(t, 2, 6, models.TallyModeSum, 7)

	var buf bytes.Buffer
	require.NoError(t, Workbook(&buf,
		Sheet{Name: "Red d6", Store: d6},
		Sheet{Name: "Red d6", Store: twoD6},
	))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Red d6", "Red d6 (2)"}, f.GetSheetList())

	header, err := f.GetCellValue("Red d6", "A1")
	require.NoError(t, err)
	assert.Equal(t, "Value", header)

	value, err := f.GetCellValue("Red d6", "A2")
	require.NoError(t, err)
	assert.Equal(t, "1", value)

	count, err := f.GetCellValue("Red d6", "B2")
	require.NoError(t, err)
	assert.Equal(t, "2", count)

	percent, err := f.GetCellValue("Red d6", "C2")
	require.NoError(t, err)
	assert.Equal(t, "50", percent)

	// 2d6 sum has 11 categories, 2..12
	first, err := f.GetCellValue("Red d6 (2)", "A2")
	require.NoError(t, err)
	assert.Equal(t, "2", first)
	last, err := f.GetCellValue("Red d6 (2)", "A12")
	require.NoError(t, err)
	assert.Equal(t, "12", last)
}

func TestWorkbookErrors(t *testing.T) {
	var buf bytes.Buffer
	assert.Error(t, Workbook(&buf))
	assert.ErrorIs(t, Workbook(&buf, Sheet{Name: "x"}), ErrNilStore)
}

func TestSheetName(t *testing.T) {
	used := map[string]bool{}
	assert.Equal(t, "a_b_c", sheetName("a/b?c", used))
	assert.Equal(t, "Rolls", sheetName("  ", used))

	long := "abcdefghijklmnopqrstuvwxyz0123456789"
	assert.Equal(t, long[:31], sheetName(long, used))

	used["abcdefghijklmnopqrstuvwxyz01234"] = true
	name := sheetName(long, used)
	assert.Len(t, name, 31)
	assert.Equal(t, " (2)", name[len(name)-4:])
}
