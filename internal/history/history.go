// Package history remembers the last used output directory between runs so
// the next output proposal lands where the previous one went. Everything
// here is best-effort: history failures are logged at debug level and never
// fail an extraction.
package history

import (
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// State is the persisted history.
type State struct {
	LastOutputDir string `yaml:"last_output_dir,omitempty"`
}

// Path returns the history file location, honouring PDFSECTION_HISTORY for
// overrides.
func Path() string {
	if custom := os.Getenv("PDFSECTION_HISTORY"); custom != "" {
		return custom
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(homeDir, ".config", "pdfsection", "history.yaml")
}

// Load reads the history, returning the zero state on any failure.
func Load(logger *logrus.Logger) State {
	path := Path()
	if path == "" {
		return State{}
	}

	lock := flock.New(path + ".lock")
	if err := lock.RLock(); err != nil {
		logger.WithError(err).Debug("Could not lock history file")
		return State{}
	}
	defer func() { _ = lock.Unlock() }()

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			logger.WithError(err).Debug("Could not read history file")
		}
		return State{}
	}

	var s State
	if err := yaml.Unmarshal(data, &s); err != nil {
		logger.WithError(err).Debug("Ignoring malformed history file")
		return State{}
	}
	return s
}

// Save writes the history. Concurrent runs serialise on a sibling lock
// file.
func Save(logger *logrus.Logger, s State) {
	path := Path()
	if path == "" {
		return
	}

	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		logger.WithError(err).Debug("Could not create history directory")
		return
	}

	lock := flock.New(path + ".lock")
	if err := lock.Lock(); err != nil {
		logger.WithError(err).Debug("Could not lock history file")
		return
	}
	defer func() { _ = lock.Unlock() }()

	data, err := yaml.Marshal(s)
	if err != nil {
		logger.WithError(err).Debug("Could not marshal history")
		return
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		logger.WithError(err).Debug("Could not write history file")
	}
}
