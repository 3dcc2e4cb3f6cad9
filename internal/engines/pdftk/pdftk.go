// Package pdftk implements the extraction engine backed by the external
// pdftk binary.
package pdftk

import (
	"context"
	"os/exec"

	"github.com/sammcj/pdfsection/internal/extract"
	"github.com/sammcj/pdfsection/internal/registry"
	"github.com/sirupsen/logrus"
)

// Engine shells out to pdftk's cat operation.
type Engine struct{}

// init registers the engine
func init() {
	registry.Register(&Engine{})
}

func (e *Engine) Name() string {
	return "pdftk"
}

// Available reports whether pdftk is on PATH.
func (e *Engine) Available() bool {
	_, err := exec.LookPath("pdftk")
	return err == nil
}

// Extract runs `pdftk <input> cat <start>-<end> output <tmp>` and renames
// the result into place.
func (e *Engine) Extract(ctx context.Context, logger *logrus.Logger, req extract.Request) error {
	if err := req.Validate(); err != nil {
		return err
	}

	tmp := extract.TempOutputPath(req.OutputPath)
	err := extract.RunCommand(ctx, logger, "pdftk",
		req.InputPath, "cat", req.PageRange(), "output", tmp)
	if err != nil {
		return err
	}

	return extract.CommitOutput(tmp, req.OutputPath)
}
