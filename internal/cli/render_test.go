package cli

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender_Text(t *testing.T) {
	out := filepath.Join(t.TempDir(), "cmp.svg")

	stdout, _, err := executeCommand(t, "render", "-o", out, "--points", "200", "--good-seed", "7")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Wrote "+out)
	assert.Contains(t, stdout, "LCG m=256 a=137 c=1 x0=1, 199 lag pairs")
	assert.Contains(t, stdout, "period 256")
	assert.Contains(t, stdout, "good: pcg seed=7, 199 lag pairs")

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Bad RNG (Lag-1 Plot)")
}

func TestRender_JSON(t *testing.T) {
	out := filepath.Join(t.TempDir(), "cmp.png")

	stdout, _, err := executeCommand(t, "--format", "json", "render", "-o", out,
		"--good-seed", "3", "--lcg-modulus", "2048", "--lcg-multiplier", "1229")
	require.NoError(t, err)

	var resp struct {
		Status string         `json:"status"`
		Data   map[string]any `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, out, resp.Data["output_path"])
	assert.Equal(t, float64(500), resp.Data["points"])
	assert.Equal(t, float64(3), resp.Data["good_seed"])
	assert.Equal(t, "pcg", resp.Data["good_source"])

	lcg, ok := resp.Data["lcg"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, float64(2048), lcg["modulus"])
	assert.Equal(t, float64(1229), lcg["multiplier"])

	info, err := os.Stat(out)
	require.NoError(t, err)
	assert.Equal(t, resp.Data["output_bytes"], float64(info.Size()))
}

func TestRender_TextParamsHaveNoSeparators(t *testing.T) {
	out := filepath.Join(t.TempDir(), "wide.svg")

	stdout, _, err := executeCommand(t, "render", "-o", out, "--points", "50",
		"--lcg-modulus", "65536", "--lcg-multiplier", "25173", "--lcg-increment", "13849",
		"--lcg-seed", "12345", "--good-seed", "4294967296")
	require.NoError(t, err)
	assert.Contains(t, stdout, "LCG m=65536 a=25173 c=13849 x0=12345,")
	assert.Contains(t, stdout, "period 65536\n")
	assert.Contains(t, stdout, "seed=4294967296,")
	assert.NotContains(t, stdout, "65,536")
}

func TestRender_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "from-config.svg")
	cfgPath := filepath.Join(dir, "lagplot.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(
		"point_count: 64\noutput_path: "+out+"\ngood:\n  source: mt19937\n  seed: 11\n"), 0o644))

	stdout, _, err := executeCommand(t, "-c", cfgPath, "render")
	require.NoError(t, err)
	assert.Contains(t, stdout, "63 lag pairs")
	assert.Contains(t, stdout, "good: mt19937 seed=11")
	assert.FileExists(t, out)
}

func TestRender_FlagOverridesConfig(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "lagplot.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("point_count: 64\n"), 0o644))
	out := filepath.Join(dir, "out.svg")

	stdout, _, err := executeCommand(t, "-c", cfgPath, "render", "-o", out, "-n", "10", "--good-seed", "1")
	require.NoError(t, err)
	assert.Contains(t, stdout, "9 lag pairs")
}

func TestRender_InvalidInput(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name string
		args []string
		code int
	}{
		{"one_point", []string{"render", "-o", filepath.Join(dir, "a.png"), "-n", "1"}, ExitCommandError},
		{"bad_extension", []string{"render", "-o", filepath.Join(dir, "a.gif")}, ExitCommandError},
		{"multiplier_too_large", []string{"render", "-o", filepath.Join(dir, "b.png"), "--lcg-multiplier", "300"}, ExitCommandError},
		{"zero_dpi", []string{"render", "-o", filepath.Join(dir, "c.png"), "--dpi", "0"}, ExitCommandError},
		{"unknown_good", []string{"render", "-o", filepath.Join(dir, "d.png"), "--good-source", "lfsr"}, ExitCommandError},
		{"unwritable", []string{"render", "-o", filepath.Join(dir, "missing", "e.png"), "--good-seed", "1"}, ExitFailure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := executeCommand(t, tt.args...)
			require.Error(t, err)
			assert.Equal(t, tt.code, GetExitCode(err))
		})
	}
}

func TestRender_Verbose(t *testing.T) {
	out := filepath.Join(t.TempDir(), "v.svg")

	_, stderr, err := executeCommand(t, "-v", "render", "-o", out, "--good-seed", "99")
	require.NoError(t, err)
	assert.Contains(t, stderr, "good generator pcg seeded with 99")
}
