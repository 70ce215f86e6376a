package cli

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/runnerr0/replay/internal/config"
)

// captureOutput redirects stdout while fn runs and returns what was printed.
func captureOutput(t *testing.T, fn func()) string {
	t.Helper()
	old := os.Stdout
	r, w, err := os.Pipe()
	require.NoError(t, err)
	os.Stdout = w

	fn()

	w.Close()
	os.Stdout = old

	var buf bytes.Buffer
	_, _ = io.Copy(&buf, r)
	return buf.String()
}

// writeExportFile writes data under name in a temp dir and returns its path.
func writeExportFile(t *testing.T, name, data string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))
	return path
}

func testConfig() *config.Config {
	return config.DefaultConfig()
}

// testHistory has four plays above the duration threshold (track "Two"
// twice) and one below it, so rankings and filtering are both visible.
const testHistory = `[
	{"endTime": "2024-01-01 06:30:00", "artistName": "Alpha", "trackName": "One", "msPlayed": 3600000},
	{"endTime": "2024-02-10 19:00:00", "artistName": "Alpha", "trackName": "Two", "msPlayed": 60000},
	{"endTime": "2024-02-11 19:30:00", "artistName": "Beta", "trackName": "Three", "msPlayed": 60000},
	{"endTime": "2024-02-12 20:00:00", "artistName": "Alpha", "trackName": "Two", "msPlayed": 60000},
	{"endTime": "2024-02-13 20:00:00", "artistName": "Beta", "trackName": "Three", "msPlayed": 15000}
]`
