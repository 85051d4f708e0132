package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexshd/fuzzydose"
	"github.com/alexshd/fuzzydose/internal/chart"
)

const testPresets = `
presets:
  - name: pediatric
    temp_low:  [[36.5, 1], [37.5, 0.5], [38.5, 0]]
    temp_high: [[37.5, 0], [38.5, 0.5], [39.5, 1]]
    dose_low:  [[0, 1], [10, 0]]
    dose_high: [[0, 0], [10, 1]]
`

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	return executeWithInput(t, "", args...)
}

func executeWithInput(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	// Flags are package-level; reset the ones tests touch.
	configPath, batchFile, plotOut, plotTemp = "", "", ".", ""
	for _, name := range []string{"preset", "method", "presets-file", "strict"} {
		f := rootCmd.PersistentFlags().Lookup(name)
		require.NoError(t, f.Value.Set(f.DefValue))
		f.Changed = false
	}

	var out, errOut bytes.Buffer
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)

	err := rootCmd.Execute()
	return out.String(), err
}

func TestInferCommand(t *testing.T) {
	out, err := execute(t, "infer", "38.0")
	require.NoError(t, err)

	assert.Contains(t, out, "Membership in T_LOW: 0.50")
	assert.Contains(t, out, "Membership in T_HIGH: 0.20")
	assert.Contains(t, out, "Recommended dose: 4.15 ml")
}

func TestInferCommand_PresetAndMethodFlags(t *testing.T) {
	out, err := execute(t, "infer", "38.0", "--preset", "1", "--method", "product")
	require.NoError(t, err)
	assert.Contains(t, out, "Recommended dose: 3.91 ml")
	assert.Contains(t, out, "method: product-max")
}

func TestInferCommand_Errors(t *testing.T) {
	_, err := execute(t, "infer", "hot")
	assert.Error(t, err)

	_, err = execute(t, "infer", "38", "--method", "average")
	assert.ErrorIs(t, err, fuzzydose.ErrInvalidArgument)

	_, err = execute(t, "infer", "38", "--preset", "nope")
	assert.ErrorIs(t, err, fuzzydose.ErrInvalidArgument)

	_, err = execute(t, "infer", "30", "--strict")
	assert.ErrorIs(t, err, fuzzydose.ErrNoRuleFired)
}

func TestInferCommand_EnvironmentOverridesDefault(t *testing.T) {
	t.Setenv("FUZZYDOSE_METHOD", "product-max")

	out, err := execute(t, "infer", "38.0")
	require.NoError(t, err)
	assert.Contains(t, out, "method: product-max")
}

func TestInferCommand_ConfigFile(t *testing.T) {
	dir := t.TempDir()

	presetsPath := filepath.Join(dir, "presets.yaml")
	require.NoError(t, os.WriteFile(presetsPath, []byte(testPresets), 0o600))

	configFile := filepath.Join(dir, "fuzzydose.yaml")
	require.NoError(t, os.WriteFile(configFile, []byte(
		"preset: pediatric\nmethod: min\npresets_file: "+presetsPath+"\ndomain:\n  samples: 11\n"), 0o600))

	out, err := execute(t, "infer", "38", "--config", configFile)
	require.NoError(t, err)
	assert.Contains(t, out, "Preset: pediatric")
}

func TestBatchCommand(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "temps.txt")
	require.NoError(t, os.WriteFile(file, []byte("# ward A\n38.5\n\n41\n"), 0o600))

	out, err := execute(t, "batch", "36", "38", "--file", file)
	require.NoError(t, err)

	assert.Contains(t, out, "4 readings, 2 without a firing rule")
	assert.Contains(t, out, "5.85")
	assert.Contains(t, out, "4.15")

	_, err = execute(t, "batch")
	assert.Error(t, err)
}

func TestBatchCommand_Stdin(t *testing.T) {
	out, err := executeWithInput(t, "38\n# ward B\n38.5\n", "batch", "--file", "-")
	require.NoError(t, err)

	assert.Contains(t, out, "2 readings, 0 without a firing rule")
	assert.Contains(t, out, "4.15")
	assert.Contains(t, out, "5.85")
}

func TestReadTemperatures(t *testing.T) {
	temps, err := readTemperatures(strings.NewReader("37\n  # comment\n\n38.25\n"))
	require.NoError(t, err)
	assert.Equal(t, []float64{37, 38.25}, temps)

	_, err = readTemperatures(strings.NewReader("37\nwarm\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 2")
}

func TestPresetsCommand(t *testing.T) {
	out, err := execute(t, "presets")
	require.NoError(t, err)

	assert.Contains(t, out, "1. default")
	assert.Contains(t, out, "2. alternative")
	assert.Contains(t, out, "37.5: 1")
}

func TestPresetsCommand_RejectsBuiltinRedefinition(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "presets.yaml")
	require.NoError(t, os.WriteFile(path,
		[]byte(strings.Replace(testPresets, "pediatric", "default", 1)), 0o600))

	_, err := execute(t, "presets", "--presets-file", path)
	assert.Error(t, err)
}

func TestPlotCommand(t *testing.T) {
	dir := t.TempDir()

	_, err := execute(t, "plot", "--out", dir, "--temp", "38.2")
	require.NoError(t, err)

	for _, name := range []string{"sets.png", "result.png"} {
		info, err := os.Stat(filepath.Join(dir, name))
		require.NoError(t, err, name)
		assert.Greater(t, info.Size(), int64(0), name)
	}
}

func TestConfig_ChartSize(t *testing.T) {
	c := &Config{Plot: PlotConfig{WidthInches: 8}}
	size := c.chartSize(chart.DefaultSetsSize())

	assert.Equal(t, 8.0, size.Width)
	assert.Equal(t, chart.DefaultSetsSize().Height, size.Height)
}

func TestLoadConfig_Defaults(t *testing.T) {
	v, err := newViper("", nil)
	require.NoError(t, err)

	c, err := LoadConfig(v)
	require.NoError(t, err)

	assert.Equal(t, "default", c.Preset)
	assert.Equal(t, "min-max", c.Method)
	assert.Equal(t, 100, c.Domain.Samples)
	assert.Equal(t, 10.0, c.Domain.Max)

	ctrl, err := c.Controller()
	require.NoError(t, err)
	assert.Equal(t, fuzzydose.DefaultDomain(), ctrl.Domain())
}
