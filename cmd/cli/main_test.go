package main

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/specialistvlad/qcgrid/internal/cli"
	"github.com/specialistvlad/qcgrid/internal/dataset"
	tu "github.com/specialistvlad/qcgrid/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeDataset(t *testing.T, mutate func(*dataset.Dataset)) string {
	t.Helper()
	ds := tu.LidarDataset(t)
	if mutate != nil {
		mutate(ds)
	}
	p := filepath.Join(t.TempDir(), "lidar.yaml")
	require.NoError(t, dataset.WriteFile(p, ds))
	return p
}

func exitCode(t *testing.T, err error) int {
	t.Helper()
	if err == nil {
		return cli.ExitOK
	}
	var exitErr *cli.ExitError
	require.ErrorAs(t, err, &exitErr)
	return exitErr.Code
}

func TestRun_ExitCodes(t *testing.T) {
	t.Parallel()

	rules := tu.WriteFiles(t, map[string]string{"lidar.yaml": tu.LidarRulesYAML})
	badRules := tu.WriteFiles(t, map[string]string{"bad.hcl": `rule "r" {`})
	good := writeDataset(t, nil)
	missingTime := writeDataset(t, func(ds *dataset.Dataset) {
		tm, _ := ds.Variable("time")
		tm.Data[0] = tu.Fill
		tm.Attrs["_FillValue"] = tu.Fill
	})

	testCases := []struct {
		name string
		args []string
		code int
	}{
		{name: "completed", args: []string{"-d", good, rules}, code: cli.ExitOK},
		{name: "aborted", args: []string{"-d", missingTime, rules}, code: cli.ExitAborted},
		{name: "invalid rules", args: []string{"-d", good, badRules}, code: cli.ExitUsage},
		{name: "unknown flag", args: []string{"--this-is-not-a-valid-flag"}, code: cli.ExitUsage},
		{name: "missing dataset", args: []string{"-d", filepath.Join(t.TempDir(), "nope.yaml"), rules}, code: cli.ExitFailure},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			out, logs := &bytes.Buffer{}, &tu.SafeBuffer{}
			err := run(context.Background(), out, logs, tc.args)
			assert.Equal(t, tc.code, exitCode(t, err), "logs:\n%s", logs.String())
		})
	}
}

func TestRun_WritesSnapshotToStdout(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	rules := tu.WriteFiles(t, map[string]string{"lidar.yaml": tu.LidarRulesYAML})
	args := []string{"--log-format", "text", "-d", writeDataset(t, nil), "-o", "-", rules}
	out := &bytes.Buffer{}

	// --- Act ---
	err := run(context.Background(), out, &tu.SafeBuffer{}, args)

	// --- Assert ---
	require.NoError(t, err)
	ds, err := dataset.Decode(out)
	require.NoError(t, err)
	qcDir, ok := ds.Variable("qc_wind_direction")
	require.True(t, ok)
	assert.Equal(t, []float64{0, 0, 0, 0, 0, 0, 2, 0}, qcDir.Data)
}

func TestRun_ShouldExit(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	// The "-h" (help) flag should cause cli.Parse to return `shouldExit=true`.
	args := []string{"-h"}
	out := &bytes.Buffer{}

	// --- Act ---
	err := run(context.Background(), out, &tu.SafeBuffer{}, args)

	// --- Assert ---
	require.NoError(t, err, "run() should return a nil error when shouldExit is true")
	require.Contains(t, out.String(), "Usage:", "Expected help text to be printed to the output buffer")
}
