// Package extract defines the extraction engine interface and shared
// helpers. Engines take an input PDF and an inclusive page range and produce
// a new PDF containing exactly those pages.
package extract

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Request describes one extraction.
type Request struct {
	// InputPath is the source PDF.
	InputPath string

	// OutputPath is where the extracted PDF is written.
	OutputPath string

	// StartPage and EndPage are the 1-based inclusive page range.
	StartPage int
	EndPage   int
}

// Validate rejects requests no engine could honour.
func (r Request) Validate() error {
	if r.InputPath == "" || r.OutputPath == "" {
		return fmt.Errorf("input and output paths are required")
	}
	if r.StartPage < 1 {
		return fmt.Errorf("start page %d is not a valid page number", r.StartPage)
	}
	if r.EndPage < r.StartPage {
		return fmt.Errorf("invalid page range %d-%d: end precedes start", r.StartPage, r.EndPage)
	}
	return nil
}

// PageRange returns the range in "start-end" form, which pdfcpu, pdftk and
// qpdf all accept.
func (r Request) PageRange() string {
	return fmt.Sprintf("%d-%d", r.StartPage, r.EndPage)
}

// Engine extracts a page range from a PDF. Implementations register
// themselves with the engine registry in their package init.
type Engine interface {
	// Name identifies the engine for flags and configuration.
	Name() string

	// Available reports whether the engine can run on this host. External
	// engines check the binary is on PATH; in-process engines always can.
	Available() bool

	// Extract writes req's page range to req.OutputPath.
	Extract(ctx context.Context, logger *logrus.Logger, req Request) error
}

// TempOutputPath returns a hidden sibling of path with a unique suffix.
// Engines write there and rename into place so a failed run never leaves a
// truncated file at the requested output path.
func TempOutputPath(path string) string {
	dir := filepath.Dir(path)
	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return filepath.Join(dir, fmt.Sprintf(".%s-%s.pdf", base, uuid.NewString()))
}

// CommitOutput renames a temp file produced by an engine into place,
// cleaning up the temp file on failure.
func CommitOutput(tmp, path string) error {
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("failed to move output into place: %w", err)
	}
	return nil
}

// RunCommand executes an external extraction tool, capturing stderr so a
// failure surfaces the tool's own diagnostic to the user.
func RunCommand(ctx context.Context, logger *logrus.Logger, name string, args ...string) error {
	logger.WithFields(logrus.Fields{
		"command": name,
		"args":    args,
	}).Debug("Running external extraction command")

	cmd := exec.CommandContext(ctx, name, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		diag := strings.TrimSpace(stderr.String())
		if diag != "" {
			return fmt.Errorf("%s failed: %w: %s", name, err, diag)
		}
		return fmt.Errorf("%s failed: %w", name, err)
	}
	return nil
}
