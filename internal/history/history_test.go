package history

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func TestRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.yaml")
	t.Setenv("PDFSECTION_HISTORY", path)

	Save(testLogger(), State{LastOutputDir: "/books/out"})

	got := Load(testLogger())
	assert.Equal(t, "/books/out", got.LastOutputDir)
}

func TestLoadMissingFile(t *testing.T) {
	t.Setenv("PDFSECTION_HISTORY", filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Equal(t, State{}, Load(testLogger()))
}

func TestLoadMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.yaml")
	require.NoError(t, os.WriteFile(path, []byte("last_output_dir: [oops\n"), 0600))
	t.Setenv("PDFSECTION_HISTORY", path)

	assert.Equal(t, State{}, Load(testLogger()))
}

func TestSaveCreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "history.yaml")
	t.Setenv("PDFSECTION_HISTORY", path)

	Save(testLogger(), State{LastOutputDir: "/x"})

	_, err := os.Stat(path)
	assert.NoError(t, err)
}
