package config

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

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PDFSECTION_CONFIG", filepath.Join(t.TempDir(), "missing.yaml"))

	cfg, err := Load(testLogger())
	require.NoError(t, err)
	assert.Equal(t, "less", cfg.EndPageMode)
	assert.Empty(t, cfg.Engine)
	assert.False(t, cfg.NoColor)
}

func TestLoadFromFile(t *testing.T) {
	path := writeConfig(t, "engine: qpdf\nend_page_mode: exact\noutput_dir: /tmp/sections\n")
	t.Setenv("PDFSECTION_CONFIG", path)

	cfg, err := Load(testLogger())
	require.NoError(t, err)
	assert.Equal(t, "qpdf", cfg.Engine)
	assert.Equal(t, "exact", cfg.EndPageMode)
	assert.Equal(t, "/tmp/sections", cfg.OutputDir)
}

func TestEnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "engine: qpdf\n")
	t.Setenv("PDFSECTION_CONFIG", path)
	t.Setenv("PDFSECTION_ENGINE", "pdftk")

	cfg, err := Load(testLogger())
	require.NoError(t, err)
	assert.Equal(t, "pdftk", cfg.Engine)
}

func TestMalformedFile(t *testing.T) {
	path := writeConfig(t, "engine: [unclosed\n")
	t.Setenv("PDFSECTION_CONFIG", path)

	_, err := Load(testLogger())
	require.Error(t, err)
	assert.Contains(t, err.Error(), path)
}

func TestNoColorEnv(t *testing.T) {
	t.Setenv("PDFSECTION_CONFIG", filepath.Join(t.TempDir(), "missing.yaml"))
	t.Setenv("NO_COLOR", "1")

	cfg, err := Load(testLogger())
	require.NoError(t, err)
	assert.True(t, cfg.NoColor)
}
