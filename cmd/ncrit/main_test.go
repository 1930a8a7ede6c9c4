package main

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/ncrit/internal/config"
	"github.com/katalvlaran/ncrit/source"
)

// dataDir lays out a two-level CO data set: one line file, H2 and He rates
// and an abundance table with two kinds.
func dataDir(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	files := map[string]string{
		"Lines/line_co.dat": "# 2\n\nx nu nl J_u J_l Aij(s-1)\n" +
			"2 1 1 0 1.0e-4 s-1\n" +
			"3 2 2 1 2.0e-5 s-1\n",
		"Collisions/rates_H2_co.dat": "!M\nCO\n!N\n2\n!NT\n2\n!T\n50 100\n!TRANS\n" +
			"2 1 1e-10 2e-10\n" +
			"3 1 1e-11 1e-11\n",
		"Collisions/rates_He_co.dat": "!M\nCO\n!N\n1\n!NT\n1\n!T\n100\n!TRANS\n" +
			"2 1 5e-11\n",
		"abundance_colliders.csv": "collider,name,diffuse,dense\nH2,hydrogen,0.5,0.5\nHe,helium,0.1,\n",
	}
	for rel, body := range files {
		p := filepath.Join(root, rel)
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
	}
	return root
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{config.EnvDataDir, config.EnvAbundances, config.EnvDebug, config.EnvWorkers} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	clearEnv(t)
	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestCurves_CSV(t *testing.T) {
	root := dataDir(t)

	out, logs, err := run(t, "curves", "co", "-d", root, "--kinds", "dense", "--levels", "2")
	require.NoError(t, err)

	// He has no 50 K sample, so 50 K is dropped from the merged grid.
	// At 100 K only H2 contributes for dense: 1e-4 / (0.5 * 2e-10).
	assert.Equal(t, "level,kind,temperature,density\n2,dense,100,1e+06\n", out)
	assert.Contains(t, logs, "run=")
}

func TestCurves_RunFileJSON(t *testing.T) {
	root := dataDir(t)
	runDir := t.TempDir()
	runFile := filepath.Join(runDir, "run.hcl")
	require.NoError(t, os.WriteFile(runFile, []byte(`
data_dir = "`+filepath.ToSlash(root)+`"
species  = ["12c16o", "co"]
kinds    = ["diffuse"]
output {
  format = "json"
  path   = "out/curves.json"
}
`), 0o644))

	_, _, err := run(t, "curves", "-c", runFile)
	require.NoError(t, err)

	raw, err := os.ReadFile(filepath.Join(runDir, "out", "curves.json"))
	require.NoError(t, err)
	var doc struct {
		RunID  string `json:"run_id"`
		Curves []struct {
			Level    int      `json:"level"`
			Kind     string   `json:"kind"`
			Partners []string `json:"partners"`
		} `json:"curves"`
	}
	require.NoError(t, json.Unmarshal(raw, &doc))
	assert.NotEmpty(t, doc.RunID)
	require.Len(t, doc.Curves, 2)
	assert.Equal(t, 2, doc.Curves[0].Level)
	assert.Equal(t, []string{"H2", "He"}, doc.Curves[0].Partners)
	assert.Equal(t, 3, doc.Curves[1].Level)
	assert.Equal(t, []string{"H2"}, doc.Curves[1].Partners)
}

func TestCurves_FlagsOverrideRunFile(t *testing.T) {
	root := dataDir(t)
	runFile := filepath.Join(t.TempDir(), "run.hcl")
	require.NoError(t, os.WriteFile(runFile, []byte(`
data_dir = "/nonexistent"
species  = ["co"]
output {
  format = "json"
}
`), 0o644))

	out, _, err := run(t, "curves", "-c", runFile, "-d", root, "-f", "csv", "-l", "2", "-k", "dense")
	require.NoError(t, err)
	assert.Equal(t, "level,kind,temperature,density\n2,dense,100,1e+06\n", out)
}

func TestCurves_Errors(t *testing.T) {
	root := dataDir(t)

	_, _, err := run(t, "curves", "-d", root)
	assert.ErrorIs(t, err, config.ErrInvalid, "no species")

	_, _, err = run(t, "curves", "h2o", "-d", root)
	assert.ErrorIs(t, err, source.ErrMissingSource)

	_, _, err = run(t, "curves", "co", "-d", root, "-f", "xml")
	assert.ErrorIs(t, err, config.ErrInvalid)
}

func TestLevels(t *testing.T) {
	out, _, err := run(t, "levels", "co", "-d", dataDir(t))
	require.NoError(t, err)
	assert.Contains(t, out, "LEVEL")
	assert.Regexp(t, `(?m)^2\s+1\s+0\.0001\s+H2,He$`, out)
	assert.Regexp(t, `(?m)^3\s+1\s+2e-05\s+H2$`, out)
}

func TestInspect(t *testing.T) {
	out, _, err := run(t, "inspect", "co", "-d", dataDir(t), "--level", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "J_u = 1")
	assert.NotContains(t, out, "J_l")
	assert.Contains(t, out, "T=100")

	_, _, err = run(t, "inspect", "co", "-d", dataDir(t))
	assert.Error(t, err, "--level is required")
}

func TestDebugReportsMissingDotEnv(t *testing.T) {
	_, logs, err := run(t, "levels", "co", "-d", dataDir(t), "--debug", "--env-file", filepath.Join(t.TempDir(), ".env"))
	require.NoError(t, err)
	assert.Contains(t, logs, "No .env file found")

	_, logs, err = run(t, "levels", "co", "-d", dataDir(t), "--env-file", filepath.Join(t.TempDir(), ".env"))
	require.NoError(t, err)
	assert.NotContains(t, logs, "No .env file found", "debug lines hidden at info level")
}

func TestExecute_LogsFailure(t *testing.T) {
	clearEnv(t)
	for name, args := range map[string][]string{
		"run error":    {"curves", "-d", dataDir(t)},
		"unknown flag": {"curves", "--bogus"},
	} {
		t.Run(name, func(t *testing.T) {
			var errOut bytes.Buffer
			root := newRootCmd()
			root.SetOut(io.Discard)
			root.SetErr(&errOut)
			root.SetArgs(args)

			assert.Equal(t, 1, execute(root))
			assert.Contains(t, errOut.String(), "command failed")
		})
	}

	root := newRootCmd()
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	root.SetArgs([]string{"levels", "co", "-d", dataDir(t)})
	assert.Equal(t, 0, execute(root))
}
