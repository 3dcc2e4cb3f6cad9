// Package registry tracks the available extraction engines. Engines register
// themselves in their package init; the CLI resolves the requested engine by
// name or falls back to the first available one in priority order.
package registry

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/sammcj/pdfsection/internal/extract"
	"github.com/sirupsen/logrus"
)

// priority is the fallback order when no engine is requested explicitly.
// The in-process engine comes first so a bare install works without any
// external tools.
var priority = []string{"pdfcpu", "qpdf", "pdftk"}

var (
	// engineRegistry is a map of engine names to implementations
	engineRegistry = make(map[string]extract.Engine)

	// disabledEngines is a set of engine names to disable
	disabledEngines = make(map[string]bool)

	// logger is the shared logger instance
	logger *logrus.Logger
)

// Init initialises the registry and shared resources
func Init(l *logrus.Logger) {
	logger = l

	parseDisabledEngines()
}

// parseDisabledEngines parses the DISABLED_ENGINES environment variable
func parseDisabledEngines() {
	disabledEngines = make(map[string]bool)

	disabledEnv := os.Getenv("DISABLED_ENGINES")
	if disabledEnv == "" {
		return
	}

	names := strings.SplitSeq(disabledEnv, ",")
	for name := range names {
		name = strings.TrimSpace(strings.ToLower(name))
		if name != "" {
			disabledEngines[name] = true
			if logger != nil {
				logger.WithField("engine", name).Debug("Engine disabled via environment variable")
			}
		}
	}
}

// Register adds an engine implementation to the registry unless it has been
// disabled via DISABLED_ENGINES.
func Register(e extract.Engine) {
	if engineRegistry == nil {
		engineRegistry = make(map[string]extract.Engine)
	}

	name := e.Name()
	if disabledEngines[name] {
		if logger != nil {
			logger.WithField("engine", name).Debug("Engine not registered (disabled)")
		}
		return
	}

	engineRegistry[name] = e
	if logger != nil {
		logger.WithField("engine", name).Debug("Engine registered")
	}
}

// Get retrieves an engine by name, returns false if unknown or disabled.
func Get(name string) (extract.Engine, bool) {
	if disabledEngines[name] {
		return nil, false
	}
	e, ok := engineRegistry[name]
	return e, ok
}

// Names returns a sorted list of registered engine names.
func Names() []string {
	var names []string
	for name := range engineRegistry {
		if disabledEngines[name] {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Default returns the first available engine in priority order. Engines
// outside the priority list (such as a user-templated command) are only
// selected explicitly by name.
func Default() (extract.Engine, error) {
	for _, name := range priority {
		e, ok := Get(name)
		if !ok {
			continue
		}
		if !e.Available() {
			if logger != nil {
				logger.WithField("engine", name).Debug("Engine not available on this host")
			}
			continue
		}
		return e, nil
	}
	return nil, fmt.Errorf("no extraction engine available (registered: %s)", strings.Join(Names(), ", "))
}

// Resolve returns the named engine, or the default when name is empty.
// A named engine must also be available.
func Resolve(name string) (extract.Engine, error) {
	if name == "" {
		return Default()
	}
	e, ok := Get(name)
	if !ok {
		return nil, fmt.Errorf("unknown extraction engine %q (registered: %s)", name, strings.Join(Names(), ", "))
	}
	if !e.Available() {
		return nil, fmt.Errorf("extraction engine %q is not available on this host", name)
	}
	return e, nil
}

// GetLogger returns the shared logger instance
func GetLogger() *logrus.Logger {
	return logger
}
