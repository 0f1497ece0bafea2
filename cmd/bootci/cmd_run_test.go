package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/spboyer/bootci/internal/statistics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runRoot executes the root command with args in an isolated working
// directory and returns stdout.
func runRoot(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Chdir(t.TempDir())

	var out, errOut bytes.Buffer
	cmd := newRootCommand()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

// createScoresFile writes content to a temp file and returns its path.
func createScoresFile(t *testing.T, name, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

func decodeReport(t *testing.T, out string) statistics.ConfidenceReport {
	t.Helper()
	var r statistics.ConfidenceReport
	require.NoError(t, json.Unmarshal([]byte(out), &r))
	return r
}

// ---------------------------------------------------------------------------
// Happy path
// ---------------------------------------------------------------------------

func TestRunCommand_TableOutput(t *testing.T) {
	scores := createScoresFile(t, "scores.txt", "1\n2\n3\n4\n5\n")

	out, err := runRoot(t, "run", scores, "--trials", "2000", "--seed", "7")
	require.NoError(t, err)

	assert.Contains(t, out, "Bootstrap confidence interval (95%)")
	assert.Contains(t, out, "CI:")
	assert.Contains(t, out, "Original mean:      3\n")
	assert.Contains(t, out, "Bootstrapped mean:")
	assert.Contains(t, out, "2,000")
	assert.NotContains(t, out, "\x1b[", "non-terminal output must not be coloured")
}

func TestRunCommand_JSONOutput(t *testing.T) {
	scores := createScoresFile(t, "scores.txt", "1\n2\n3\n4\n5\n")

	out, err := runRoot(t, "run", "--file", scores, "-b", "5000", "-c", "95", "-f", "json", "-w", "8")
	require.NoError(t, err)

	r := decodeReport(t, out)
	assert.Equal(t, 3.0, r.OriginalMean)
	assert.Equal(t, 5000, r.Trials)
	assert.Equal(t, 8, r.Workers)
	assert.Equal(t, 5, r.SampleSize)
	assert.LessOrEqual(t, r.Lower, r.BootstrappedMean)
	assert.GreaterOrEqual(t, r.Upper, r.BootstrappedMean)
}

func TestRunCommand_PositionalTrialsAndConfidence(t *testing.T) {
	scores := createScoresFile(t, "scores.txt", "4\n8\n15\n16\n23\n42\n")

	out, err := runRoot(t, "run", scores, "300", "90", "--format", "json")
	require.NoError(t, err)

	r := decodeReport(t, out)
	assert.Equal(t, 300, r.Trials)
	assert.Equal(t, 90, r.Confidence)
}

func TestRunCommand_SeedIsReproducible(t *testing.T) {
	scores := createScoresFile(t, "scores.txt", "0.1\n0.4\n0.35\n0.8\n0.62\n")
	args := []string{"run", scores, "-b", "1000", "-w", "2", "--seed", "99", "-f", "json"}

	first, err := runRoot(t, args...)
	require.NoError(t, err)
	second, err := runRoot(t, args...)
	require.NoError(t, err)
	assert.JSONEq(t, first, second)
}

func TestRunCommand_CSVColumn(t *testing.T) {
	scores := createScoresFile(t, "runs.csv", "run,score\na,1\nb,2\nc,3\n")

	out, err := runRoot(t, "run", scores, "--column", "score", "-b", "100", "-f", "json")
	require.NoError(t, err)
	assert.Equal(t, 2.0, decodeReport(t, out).OriginalMean)
}

func TestRunCommand_ConfigFileDefaults(t *testing.T) {
	scores := createScoresFile(t, "scores.txt", "1\n2\n3\n")
	cfgPath := createScoresFile(t, "bootci.yaml", "defaults:\n  trials: 250\n  confidence: 80\noutput:\n  format: json\n")

	out, err := runRoot(t, "--config", cfgPath, "run", scores)
	require.NoError(t, err)
	r := decodeReport(t, out)
	assert.Equal(t, 250, r.Trials)
	assert.Equal(t, 80, r.Confidence)

	// Flags override the file.
	out, err = runRoot(t, "--config", cfgPath, "run", scores, "-c", "99")
	require.NoError(t, err)
	assert.Equal(t, 99, decodeReport(t, out).Confidence)
}

// ---------------------------------------------------------------------------
// Error handling
// ---------------------------------------------------------------------------

func TestRunCommand_Rejections(t *testing.T) {
	scores := createScoresFile(t, "scores.txt", "1\n2\n3\n")
	empty := createScoresFile(t, "empty.txt", "\n")
	bad := createScoresFile(t, "bad.txt", "1\nabc\n")
	huge := createScoresFile(t, "huge.txt", "1e308\n1e308\n")

	tests := []struct {
		name     string
		args     []string
		wantCode int
		wantMsg  string
	}{
		{"zero trials", []string{"run", scores, "-b", "0"}, ExitInvalidInput, "no trials requested"},
		{"confidence 100", []string{"run", scores, "-c", "100"}, ExitInvalidInput, "between 1 and 99"},
		{"positional trials 0", []string{"run", scores, "0", "95"}, ExitInvalidInput, "no trials requested"},
		{"positional confidence 0", []string{"run", scores, "10", "0"}, ExitInvalidInput, "between 1 and 99"},
		{"negative workers", []string{"run", scores, "--workers=-3"}, ExitInvalidInput, "must not be negative"},
		{"empty sample", []string{"run", empty}, ExitInvalidInput, "sample is empty"},
		{"bad record", []string{"run", bad}, ExitInvalidInput, "bad.txt:2"},
		{"overflowing mean", []string{"run", huge}, ExitInvalidInput, "too large for a finite mean"},
		{"missing file", []string{"run", filepath.Join(t.TempDir(), "missing.txt")}, ExitInvalidInput, "missing.txt"},
		{"no file", []string{"run"}, ExitInvalidInput, "no scores file given"},
		{"non-numeric trials", []string{"run", scores, "many"}, ExitInvalidInput, "not an integer"},
		{"unknown format", []string{"run", scores, "-f", "xml"}, ExitInvalidInput, "must be table or json"},
		{"file twice", []string{"run", scores, "--file", scores}, ExitError, "given twice"},
		{"trials twice", []string{"run", scores, "10", "-b", "20"}, ExitError, "given both"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := runRoot(t, tt.args...)
			require.Error(t, err)
			assert.Empty(t, out, "no partial report may be printed")
			assert.Contains(t, err.Error(), tt.wantMsg)
			assert.Equal(t, tt.wantCode, exitCode(err))
		})
	}
}

func TestRunCommand_InvalidConfigFile(t *testing.T) {
	scores := createScoresFile(t, "scores.txt", "1\n2\n3\n")
	cfgPath := createScoresFile(t, "bootci.yaml", "defaults:\n  confidence: 150\n")

	_, err := runRoot(t, "--config", cfgPath, "run", scores)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "/defaults/confidence")
	assert.Equal(t, ExitInvalidInput, exitCode(err))
}

func TestRunCommand_InvalidOutputConfig(t *testing.T) {
	scores := createScoresFile(t, "scores.txt", "1\n2\n3\n")
	cfgPath := createScoresFile(t, "bootci.yaml", "output:\n  format: xml\n")

	_, err := runRoot(t, "--config", cfgPath, "run", scores)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "/output/format")
	assert.Equal(t, ExitError, exitCode(err))
}
