// Package source reads a document's outline into the flat entry sequence
// the resolver consumes. Two sources exist: pdfcpu (in-process, default)
// and the external pdftk binary's dump_data_utf8 format.
package source

import (
	"context"
	"fmt"

	"github.com/sammcj/pdfsection/internal/outline"
	"github.com/sirupsen/logrus"
)

// Kind names a bookmark source.
type Kind string

const (
	// Auto tries pdfcpu first and falls back to pdftk when pdfcpu cannot
	// read the file and pdftk is installed.
	Auto Kind = ""

	KindPDFCPU Kind = "pdfcpu"
	KindPDFTK  Kind = "pdftk"
)

// ParseKind validates a user-supplied source name.
func ParseKind(s string) (Kind, error) {
	switch Kind(s) {
	case Auto, KindPDFCPU, KindPDFTK:
		return Kind(s), nil
	default:
		return "", fmt.Errorf("invalid bookmark source %q (want \"pdfcpu\" or \"pdftk\")", s)
	}
}

// Load reads the outline of the PDF at path using the requested source.
func Load(ctx context.Context, logger *logrus.Logger, path string, kind Kind) (outline.Outline, error) {
	switch kind {
	case KindPDFCPU:
		return loadPDFCPU(logger, path)
	case KindPDFTK:
		return loadPDFTK(ctx, logger, path)
	case Auto:
		o, err := loadPDFCPU(logger, path)
		if err == nil {
			return o, nil
		}
		if !pdftkAvailable() {
			return outline.Outline{}, err
		}
		logger.WithError(err).Debug("pdfcpu could not read the outline, falling back to pdftk")
		return loadPDFTK(ctx, logger, path)
	default:
		return outline.Outline{}, fmt.Errorf("invalid bookmark source %q", kind)
	}
}
