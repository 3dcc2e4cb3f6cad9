// Package config resolves tool configuration. Precedence, lowest to
// highest: built-in defaults, ~/.config/pdfsection/config.yaml, a .env file
// in the working directory, then PDFSECTION_* environment variables.
// Command-line flags override all of it in main.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// Config holds the resolvable settings.
type Config struct {
	// Engine names the extraction engine ("pdfcpu", "pdftk", "qpdf",
	// "custom"). Empty means pick the first available.
	Engine string `yaml:"engine"`

	// EngineCommand is the template for the custom engine.
	EngineCommand string `yaml:"engine_command"`

	// EndPageMode is "less" or "exact".
	EndPageMode string `yaml:"end_page_mode"`

	// Source names the bookmark source ("pdfcpu", "pdftk"). Empty means
	// auto-detect.
	Source string `yaml:"source"`

	// OutputDir is the default directory for proposed output files.
	OutputDir string `yaml:"output_dir"`

	// NoColor disables coloured listings.
	NoColor bool `yaml:"no_color"`
}

// envVars maps environment variable names to their config fields.
var envVars = map[string]func(*Config, string){
	"PDFSECTION_ENGINE":         func(c *Config, v string) { c.Engine = v },
	"PDFSECTION_ENGINE_COMMAND": func(c *Config, v string) { c.EngineCommand = v },
	"PDFSECTION_END_PAGE_MODE":  func(c *Config, v string) { c.EndPageMode = v },
	"PDFSECTION_SOURCE":         func(c *Config, v string) { c.Source = v },
	"PDFSECTION_OUTPUT_DIR":     func(c *Config, v string) { c.OutputDir = v },
}

// Load resolves the configuration.
func Load(logger *logrus.Logger) (Config, error) {
	cfg := Config{EndPageMode: "less"}

	if err := loadFile(logger, &cfg, DefaultPath()); err != nil {
		return Config{}, err
	}

	// A .env in the working directory feeds the environment without
	// clobbering variables the user already exported.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		logger.WithError(err).Debug("Could not load .env file")
	}

	for name, apply := range envVars {
		if v := os.Getenv(name); v != "" {
			apply(&cfg, v)
		}
	}
	if os.Getenv("NO_COLOR") != "" || os.Getenv("PDFSECTION_NO_COLOR") != "" {
		cfg.NoColor = true
	}

	return cfg, nil
}

// DefaultPath returns the config file location, honouring
// PDFSECTION_CONFIG for overrides.
func DefaultPath() string {
	if custom := os.Getenv("PDFSECTION_CONFIG"); custom != "" {
		return custom
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(homeDir, ".config", "pdfsection", "config.yaml")
}

// loadFile merges the yaml config file into cfg. A missing file is fine; a
// malformed one is a hard error naming the file.
func loadFile(logger *logrus.Logger, cfg *Config, path string) error {
	if path == "" {
		return nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("malformed config file %s: %w", path, err)
	}
	logger.WithField("path", path).Debug("Config file loaded")
	return nil
}
