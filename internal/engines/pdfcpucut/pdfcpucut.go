// Package pdfcpucut implements the in-process extraction engine backed by
// pdfcpu. It needs no external tools, so it is the default.
package pdfcpucut

import (
	"context"
	"fmt"
	"os"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/sammcj/pdfsection/internal/extract"
	"github.com/sammcj/pdfsection/internal/registry"
	"github.com/sirupsen/logrus"
)

// Engine extracts pages with pdfcpu's trim operation.
type Engine struct{}

// init registers the engine
func init() {
	registry.Register(&Engine{})
}

func (e *Engine) Name() string {
	return "pdfcpu"
}

// Available always returns true; pdfcpu runs in-process.
func (e *Engine) Available() bool {
	return true
}

// Extract trims the input down to the requested page range.
func (e *Engine) Extract(ctx context.Context, logger *logrus.Logger, req extract.Request) error {
	if err := req.Validate(); err != nil {
		return err
	}

	logger.WithFields(logrus.Fields{
		"engine": e.Name(),
		"input":  req.InputPath,
		"pages":  req.PageRange(),
	}).Debug("Extracting pages with pdfcpu")

	conf := model.NewDefaultConfiguration()
	// Relaxed validation: the goal is page extraction, not integrity
	// checking, and many real-world PDFs fail strict validation.
	conf.ValidationMode = model.ValidationRelaxed

	tmp := extract.TempOutputPath(req.OutputPath)
	if err := api.TrimFile(req.InputPath, tmp, []string{req.PageRange()}, conf); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("pdfcpu failed to extract pages %s: %w", req.PageRange(), err)
	}

	return extract.CommitOutput(tmp, req.OutputPath)
}
