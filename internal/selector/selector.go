// Package selector turns the section list into human-readable labels and
// lets the user pick one, interactively or via --select/--query.
//
// Selection is always positional. Fuzzy queries only narrow the list that
// indices point into, so duplicate titles stay unambiguous.
package selector

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/sahilm/fuzzy"
	"github.com/sammcj/pdfsection/internal/outline"
)

// ErrAborted indicates the user cancelled the selection.
var ErrAborted = errors.New("selection aborted")

// Label renders one section: indentation reflecting depth, the title, and
// the resolved page range.
func Label(s outline.Section, base int) string {
	indent := strings.Repeat("  ", s.Level-base)
	return fmt.Sprintf("%s%s [%d-%d]", indent, s.Title, s.Pages.Start, s.Pages.End)
}

// Labels renders every section.
func Labels(sections []outline.Section, base int) []string {
	out := make([]string, len(sections))
	for i, s := range sections {
		out[i] = Label(s, base)
	}
	return out
}

// ByIndex picks a section by its position in the offered list.
func ByIndex(sections []outline.Section, i int) (outline.Section, error) {
	if len(sections) == 0 {
		return outline.Section{}, outline.ErrEmptyOutline
	}
	if i < 0 || i >= len(sections) {
		return outline.Section{}, fmt.Errorf("%w: %d (%d bookmarks offered)", outline.ErrSelectionOutOfRange, i, len(sections))
	}
	return sections[i], nil
}

// ByQuery picks the section a fuzzy query identifies uniquely. Zero or
// multiple survivors are an error so a script never extracts the wrong
// section silently.
func ByQuery(sections []outline.Section, base int, query string) (outline.Section, error) {
	if len(sections) == 0 {
		return outline.Section{}, outline.ErrEmptyOutline
	}

	matched := narrow(sections, base, query)
	switch len(matched) {
	case 0:
		return outline.Section{}, fmt.Errorf("no bookmark matches %q", query)
	case 1:
		return matched[0], nil
	default:
		titles := make([]string, 0, 3)
		for _, s := range matched[:min(3, len(matched))] {
			titles = append(titles, strconv.Quote(s.Title))
		}
		return outline.Section{}, fmt.Errorf("query %q is ambiguous: matches %d bookmarks (%s, ...)",
			query, len(matched), strings.Join(titles, ", "))
	}
}

// narrow keeps the sections whose label fuzzy-matches the query, preserving
// document order.
func narrow(sections []outline.Section, base int, query string) []outline.Section {
	matches := fuzzy.Find(query, Labels(sections, base))
	idx := make([]int, len(matches))
	for i, m := range matches {
		idx[i] = m.Index
	}
	sort.Ints(idx)

	out := make([]outline.Section, len(idx))
	for i, j := range idx {
		out[i] = sections[j]
	}
	return out
}

// Interactive prompts on the given reader/writer pair.
type Interactive struct {
	In     io.Reader
	Out    io.Writer
	Colour bool
}

// Pick runs the selection loop: the current list is printed with indices, a
// numeric reply picks by position, any other text fuzzy-narrows the list,
// and an empty reply (or EOF) aborts. When a query narrows the list to a
// single section it is picked immediately.
func (p *Interactive) Pick(sections []outline.Section, base int) (outline.Section, error) {
	if len(sections) == 0 {
		return outline.Section{}, outline.ErrEmptyOutline
	}

	title := color.New(color.FgCyan)
	dim := color.New(color.Faint)
	if !p.Colour {
		title.DisableColor()
		dim.DisableColor()
	}

	current := sections
	scanner := bufio.NewScanner(p.In)
	for {
		for i, s := range current {
			indent := strings.Repeat("  ", s.Level-base)
			fmt.Fprintf(p.Out, "%3d  %s%s %s\n", i, indent, title.Sprint(s.Title),
				dim.Sprintf("[%d-%d]", s.Pages.Start, s.Pages.End))
		}
		fmt.Fprint(p.Out, "Select (number, filter text, or empty to abort): ")

		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return outline.Section{}, fmt.Errorf("failed to read selection: %w", err)
			}
			return outline.Section{}, ErrAborted
		}

		reply := strings.TrimSpace(scanner.Text())
		if reply == "" {
			return outline.Section{}, ErrAborted
		}

		if n, err := strconv.Atoi(reply); err == nil {
			picked, err := ByIndex(current, n)
			if err != nil {
				fmt.Fprintf(p.Out, "%v\n", err)
				continue
			}
			return picked, nil
		}

		narrowed := narrow(current, base, reply)
		switch len(narrowed) {
		case 0:
			fmt.Fprintf(p.Out, "no bookmark matches %q\n", reply)
		case 1:
			return narrowed[0], nil
		default:
			current = narrowed
		}
	}
}
