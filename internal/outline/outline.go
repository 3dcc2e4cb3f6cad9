// Package outline models a PDF outline (bookmark tree) as a flat, ordered
// sequence of entries and resolves the page range each entry owns.
//
// The hierarchy is implied by each entry's Level value rather than built as a
// tree: resolution is a linear scan with a level threshold, which is all the
// sibling/ancestor reasoning requires.
package outline

import (
	"errors"

	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
)

var (
	// ErrEmptyOutline indicates the document carries no bookmarks at all.
	ErrEmptyOutline = errors.New("document has no bookmarks")

	// ErrSelectionOutOfRange indicates a selection index outside the entry
	// sequence. A well-behaved selector never produces this.
	ErrSelectionOutOfRange = errors.New("selected bookmark index out of range")
)

// Entry is a single bookmark: a named navigation target pointing at a page.
type Entry struct {
	// Title is the display string. Titles are not unique; entries are
	// always addressed by position, never by title.
	Title string `json:"title"`

	// Level is the nesting depth as reported by the source. Only relative
	// comparisons matter, so sources keep their native numbering (pdfcpu
	// counts from 0, pdftk from 1).
	Level int `json:"level"`

	// Page is the 1-based page number the bookmark points to.
	Page int `json:"page"`
}

// Outline is the ordered bookmark sequence of one document together with the
// document's final page number. Entries preserve document order, i.e. the
// pre-order traversal of the outline tree.
type Outline struct {
	Entries  []Entry
	LastPage int
}

// Range is an inclusive, 1-based page range.
type Range struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Section pairs an entry with its resolved page range and its position in
// the outline.
type Section struct {
	Entry
	Index int   `json:"index"`
	Pages Range `json:"pages"`
}

// BaseLevel returns the shallowest level present in the outline. User-facing
// level filters are expressed relative to this.
func (o Outline) BaseLevel() int {
	if len(o.Entries) == 0 {
		return 0
	}
	base := o.Entries[0].Level
	for _, e := range o.Entries[1:] {
		if e.Level < base {
			base = e.Level
		}
	}
	return base
}

// FromBookmarks flattens a pdfcpu outline tree into the ordered entry
// sequence, pre-order, deriving Level from nesting depth.
func FromBookmarks(bms []pdfcpu.Bookmark) []Entry {
	var entries []Entry
	var walk func(bms []pdfcpu.Bookmark, level int)
	walk = func(bms []pdfcpu.Bookmark, level int) {
		for _, bm := range bms {
			entries = append(entries, Entry{
				Title: bm.Title,
				Level: level,
				Page:  bm.PageFrom,
			})
			if len(bm.Kids) > 0 {
				walk(bm.Kids, level+1)
			}
		}
	}
	walk(bms, 0)
	return entries
}
