// Package qpdf implements the extraction engine backed by the external
// qpdf binary.
package qpdf

import (
	"context"
	"os/exec"

	"github.com/sammcj/pdfsection/internal/extract"
	"github.com/sammcj/pdfsection/internal/registry"
	"github.com/sirupsen/logrus"
)

// Engine shells out to qpdf's page selection.
type Engine struct{}

// init registers the engine
func init() {
	registry.Register(&Engine{})
}

func (e *Engine) Name() string {
	return "qpdf"
}

// Available reports whether qpdf is on PATH.
func (e *Engine) Available() bool {
	_, err := exec.LookPath("qpdf")
	return err == nil
}

// Extract runs `qpdf --empty --pages <input> <start>-<end> -- <tmp>` and
// renames the result into place.
func (e *Engine) Extract(ctx context.Context, logger *logrus.Logger, req extract.Request) error {
	if err := req.Validate(); err != nil {
		return err
	}

	tmp := extract.TempOutputPath(req.OutputPath)
	err := extract.RunCommand(ctx, logger, "qpdf",
		"--empty", "--pages", req.InputPath, req.PageRange(), "--", tmp)
	if err != nil {
		return err
	}

	return extract.CommitOutput(tmp, req.OutputPath)
}
