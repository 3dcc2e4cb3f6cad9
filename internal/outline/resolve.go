package outline

import "fmt"

// EndMode controls which later entry terminates a section.
type EndMode int

const (
	// EndShallower ends a section at the next entry whose level is the same
	// or shallower (the next entry that is not a descendant). This is the
	// default.
	EndShallower EndMode = iota

	// EndSameLevel ends a section only at the next entry at exactly the
	// same level. Shallower entries do not terminate the scan, so a final
	// subsection runs to the end of the document rather than to its
	// parent's boundary.
	EndSameLevel
)

// ParseEndMode maps the user-facing mode names onto EndMode values.
func ParseEndMode(s string) (EndMode, error) {
	switch s {
	case "", "less":
		return EndShallower, nil
	case "exact":
		return EndSameLevel, nil
	default:
		return 0, fmt.Errorf("invalid end-page mode %q (want \"less\" or \"exact\")", s)
	}
}

func (m EndMode) String() string {
	if m == EndSameLevel {
		return "exact"
	}
	return "less"
}

// Resolve computes the inclusive page range owned by the entry at index i.
//
// The range starts at the entry's own page. Scanning forward, the first
// entry satisfying the end mode's level condition marks the exclusive end
// boundary; its page minus one is the range end. If no such entry exists the
// range runs to LastPage.
//
// When consecutive bookmarks share a page the raw end would precede the
// start; Resolve clamps so End >= Start always holds, treating a zero-page
// section as a one-page extraction.
func (o Outline) Resolve(i int, mode EndMode) (Range, error) {
	if len(o.Entries) == 0 {
		return Range{}, ErrEmptyOutline
	}
	if i < 0 || i >= len(o.Entries) {
		return Range{}, fmt.Errorf("%w: %d (outline has %d entries)", ErrSelectionOutOfRange, i, len(o.Entries))
	}

	selected := o.Entries[i]
	r := Range{Start: selected.Page, End: o.LastPage}

	for _, e := range o.Entries[i+1:] {
		if terminates(e.Level, selected.Level, mode) {
			r.End = e.Page - 1
			break
		}
	}

	if r.End < r.Start {
		r.End = r.Start
	}
	return r, nil
}

func terminates(level, selected int, mode EndMode) bool {
	if mode == EndSameLevel {
		return level == selected
	}
	return level <= selected
}

// Sections resolves every entry, in document order.
func (o Outline) Sections(mode EndMode) ([]Section, error) {
	if len(o.Entries) == 0 {
		return nil, ErrEmptyOutline
	}
	sections := make([]Section, len(o.Entries))
	for i, e := range o.Entries {
		r, err := o.Resolve(i, mode)
		if err != nil {
			return nil, err
		}
		sections[i] = Section{Entry: e, Index: i, Pages: r}
	}
	return sections, nil
}

// FilterMaxLevel keeps sections whose depth is at most max, where depth is
// 1-based relative to the outline's base level. A max of 0 disables
// filtering. Ranges are untouched: filtering narrows the choices offered,
// never the boundaries already resolved against the full outline.
func FilterMaxLevel(sections []Section, base, max int) []Section {
	if max <= 0 {
		return sections
	}
	var out []Section
	for _, s := range sections {
		if s.Level-base+1 <= max {
			out = append(out, s)
		}
	}
	return out
}

// FilterExactLevel keeps sections exactly at the given 1-based depth
// relative to the outline's base level.
func FilterExactLevel(sections []Section, base, exact int) []Section {
	var out []Section
	for _, s := range sections {
		if s.Level-base+1 == exact {
			out = append(out, s)
		}
	}
	return out
}
