package source

import (
	"errors"
	"fmt"
	"os"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/sammcj/pdfsection/internal/outline"
	"github.com/sirupsen/logrus"
)

// loadPDFCPU reads the outline and page count in-process.
func loadPDFCPU(logger *logrus.Logger, path string) (outline.Outline, error) {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed

	f, err := os.Open(path)
	if err != nil {
		return outline.Outline{}, fmt.Errorf("failed to open PDF: %w", err)
	}
	defer func() { _ = f.Close() }()

	var entries []outline.Entry
	bms, err := api.Bookmarks(f, conf)
	switch {
	case err == nil:
		entries = outline.FromBookmarks(bms)
	case errors.Is(err, api.ErrNoOutlines):
		// A document without an outline is valid; the empty entry list
		// surfaces as "document has no bookmarks" at selection time.
	default:
		return outline.Outline{}, fmt.Errorf("failed to read bookmarks: %w", err)
	}

	lastPage, err := api.PageCountFile(path)
	if err != nil {
		return outline.Outline{}, fmt.Errorf("failed to get page count: %w", err)
	}

	logger.WithFields(logrus.Fields{
		"source":    KindPDFCPU,
		"bookmarks": len(entries),
		"pages":     lastPage,
	}).Debug("Outline loaded")

	return outline.Outline{Entries: entries, LastPage: lastPage}, nil
}
