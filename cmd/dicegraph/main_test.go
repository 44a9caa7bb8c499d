package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

// execute runs the command line with args after restoring every flag to its default
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var reset func(cmd *cobra.Command)
	reset = func(cmd *cobra.Command) {
		cmd.Flags().VisitAll(func(f *pflag.Flag) {
			_ = f.Value.Set(f.DefValue)
			f.Changed = false
		})
		for _, c := range cmd.Commands() {
			reset(c)
		}
	}
	reset(rootCmd)
	app = nil

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)

	err := rootCmd.Execute()
	return out.String(), err
}

func fileBackend(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	t.Setenv("DICEGRAPH_DATA_DIR", dir)
	t.Setenv("DICEGRAPH_BACKEND", "file")
	t.Setenv("DICEGRAPH_LOG_LEVEL", "error")
	t.Setenv("DICEGRAPH_LARGE_SIMULATION", "10000")
	return dir
}

func TestRollAndFairness(t *testing.T) {
	dir := fileBackend(t)

	out, err := execute(t, "roll", "--name", "Red d6", "1", "2", "3")
	require.NoError(t, err)
	assert.Contains(t, out, "Recorded. 3 values in Red d6")
	assert.FileExists(t, filepath.Join(dir, "rolls", "Red_d6.dicegraph"))

	_, err = execute(t, "fairness", "Red_d6")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Not enough data")

	out, err = execute(t, "fairness", "Red_d6", "--allow-low-counts")
	require.NoError(t, err)
	assert.Contains(t, out, "P-value")

	out, err = execute(t, "sets")
	require.NoError(t, err)
	assert.Contains(t, out, "Red_d6")
}

func TestRollRejectsIncompleteRoll(t *testing.T) {
	fileBackend(t)

	_, err := execute(t, "roll", "--name", "pair", "--dice", "2", "--mode", "sum", "3", "4", "5")
	assert.Error(t, err)

	_, err = execute(t, "roll", "--name", "d6", "7")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Invalid roll")
}

func TestSimulateNeedsConfirmationForLargeRuns(t *testing.T) {
	fileBackend(t)

	_, err := execute(t, "simulate", "--name", "big", "--rolls", "20000")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--yes")

	out, err := execute(t, "simulate", "--name", "big", "--rolls", "20000", "--seed", "3", "--yes")
	require.NoError(t, err)
	assert.Contains(t, out, "Simulated 20000 rolls")

	out, err = execute(t, "sets", "--simulations")
	require.NoError(t, err)
	assert.Contains(t, out, "big_1d6_20000rolls")
}

func TestExportWorkbookAndChart(t *testing.T) {
	dir := fileBackend(t)

	_, err := execute(t, "roll", "--name", "d6", "1", "6", "6")
	require.NoError(t, err)

	xlsx := filepath.Join(dir, "out.xlsx")
	_, err = execute(t, "export", "d6", "--out", xlsx)
	require.NoError(t, err)

	f, err := excelize.OpenFile(xlsx)
	require.NoError(t, err)
	defer f.Close()
	assert.Equal(t, []string{"d6"}, f.GetSheetList())

	svg := filepath.Join(dir, "out.svg")
	_, err = execute(t, "export", "d6", "-o", svg)
	require.NoError(t, err)
	data, err := os.ReadFile(svg)
	require.NoError(t, err)
	assert.Contains(t, string(data), "<svg")

	_, err = execute(t, "export", "d6", "-o", filepath.Join(dir, "out.gif"))
	assert.Error(t, err)
}

func TestPreferencesAndClearData(t *testing.T) {
	dir := fileBackend(t)

	_, err := execute(t, "prefs", "set", "dark_mode", "true", "default_faces", "20")
	require.NoError(t, err)

	out, err := execute(t, "prefs", "get", "default_faces")
	require.NoError(t, err)
	assert.Equal(t, "20\n", out)
	assert.FileExists(t, filepath.Join(dir, "usersettings.dicegraphprefs"))

	_, err = execute(t, "prefs", "set", "statistical_alpha", "7")
	assert.Error(t, err)

	_, err = execute(t, "roll", "--name", "d20", "20")
	require.NoError(t, err)

	_, err = execute(t, "clear-data")
	assert.Error(t, err)

	out, err = execute(t, "clear-data", "--yes")
	require.NoError(t, err)
	assert.Contains(t, out, "Deleted 1 saved sets")
}

func TestCorruptPreferencesFileIsReplaced(t *testing.T) {
	dir := fileBackend(t)
	path := filepath.Join(dir, "usersettings.dicegraphprefs")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	out, err := execute(t, "prefs", "get", "default_faces")
	require.NoError(t, err)
	assert.Equal(t, "6\n", out)

	_, err = execute(t, "prefs", "set", "message_tone", "funny")
	require.NoError(t, err)

	out, err = execute(t, "prefs", "get", "message_tone")
	require.NoError(t, err)
	assert.Equal(t, "funny\n", out)
}

func TestRedisBackend(t *testing.T) {
	mr := miniredis.RunT(t)

	t.Setenv("DICEGRAPH_DATA_DIR", t.TempDir())
	t.Setenv("DICEGRAPH_BACKEND", "redis")
	t.Setenv("REDIS_ADDR", mr.Addr())
	t.Setenv("DICEGRAPH_LOG_LEVEL", "error")

	_, err := execute(t, "roll", "--name", "d6", "2", "2")
	require.NoError(t, err)

	_, err = execute(t, "simulate", "--name", "s", "--rolls", "100", "--seed", "1")
	require.NoError(t, err)

	out, err := execute(t, "sets")
	require.NoError(t, err)
	assert.Contains(t, out, "d6")
	assert.NotContains(t, out, "s_1d6_100rolls")

	out, err = execute(t, "sets", "--simulations")
	require.NoError(t, err)
	assert.Contains(t, out, "s_1d6_100rolls")

	_, err = execute(t, "delete", "s_1d6_100rolls", "--simulation")
	require.NoError(t, err)

	_, err = execute(t, "delete", "s_1d6_100rolls", "--simulation")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Not found")
}
