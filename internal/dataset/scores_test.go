package dataset

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/spboyer/bootci/internal/statistics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadScores(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		want     []float64
		wantLine int
		wantErr  error
	}{
		{
			name:  "one per line",
			input: "1\n2\n3\n4\n5\n",
			want:  []float64{1, 2, 3, 4, 5},
		},
		{
			name:  "no trailing newline",
			input: "0.25\n0.75",
			want:  []float64{0.25, 0.75},
		},
		{
			name:  "whitespace and blank lines",
			input: "  1.5 \n\n\t-2e3\r\n\n",
			want:  []float64{1.5, -2000},
		},
		{
			name:     "not a number",
			input:    "1\n2\nthree\n",
			wantLine: 3,
		},
		{
			name:     "NaN rejected",
			input:    "1\nNaN\n",
			wantLine: 2,
		},
		{
			name:     "overflow rejected",
			input:    "1e400\n",
			wantLine: 1,
		},
		{
			name:    "empty input",
			input:   "\n\n",
			wantErr: statistics.ErrEmptySample,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ReadScores(strings.NewReader(tt.input), "scores.txt")
			if tt.wantLine == 0 && tt.wantErr == nil {
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
				return
			}

			var inputErr *statistics.InputError
			require.ErrorAs(t, err, &inputErr)
			assert.Nil(t, got)
			assert.Equal(t, "scores.txt", inputErr.Path)
			assert.Equal(t, tt.wantLine, inputErr.Line)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestLoadScores_MissingFile(t *testing.T) {
	_, err := LoadScores(filepath.Join(t.TempDir(), "missing.txt"))
	var inputErr *statistics.InputError
	require.ErrorAs(t, err, &inputErr)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadScores_Compressed(t *testing.T) {
	dir := t.TempDir()
	content := []byte("3\n1\n4\n1\n5\n")

	var gz bytes.Buffer
	gw := gzip.NewWriter(&gz)
	_, err := gw.Write(content)
	require.NoError(t, err)
	require.NoError(t, gw.Close())

	zw, err := zstd.NewWriter(nil)
	require.NoError(t, err)
	zst := zw.EncodeAll(content, nil)
	require.NoError(t, zw.Close())

	files := map[string][]byte{
		"scores.txt":     content,
		"scores.txt.gz":  gz.Bytes(),
		"scores.txt.zst": zst,
	}
	for name, data := range files {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name)
			require.NoError(t, os.WriteFile(path, data, 0o644))

			got, err := LoadScores(path)
			require.NoError(t, err)
			assert.Equal(t, []float64{3, 1, 4, 1, 5}, got)
		})
	}
}

func TestLoadScores_CorruptGzip(t *testing.T) {
	path := writeFile(t, t.TempDir(), "bad.gz", "definitely not gzip")
	_, err := LoadScores(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "gzip")
}
