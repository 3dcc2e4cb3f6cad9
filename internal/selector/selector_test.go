package selector

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/sammcj/pdfsection/internal/outline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleSections() []outline.Section {
	o := outline.Outline{
		Entries: []outline.Entry{
			{Title: "Introduction", Level: 0, Page: 1},
			{Title: "Methods", Level: 0, Page: 5},
			{Title: "Sampling", Level: 1, Page: 6},
			{Title: "Results", Level: 0, Page: 12},
		},
		LastPage: 20,
	}
	secs, err := o.Sections(outline.EndShallower)
	if err != nil {
		panic(err)
	}
	return secs
}

func TestLabels(t *testing.T) {
	labels := Labels(sampleSections(), 0)
	assert.Equal(t, []string{
		"Introduction [1-4]",
		"Methods [5-11]",
		"  Sampling [6-11]",
		"Results [12-20]",
	}, labels)
}

func TestByIndex(t *testing.T) {
	secs := sampleSections()

	s, err := ByIndex(secs, 2)
	require.NoError(t, err)
	assert.Equal(t, "Sampling", s.Title)

	_, err = ByIndex(secs, 4)
	assert.ErrorIs(t, err, outline.ErrSelectionOutOfRange)

	_, err = ByIndex(secs, -1)
	assert.ErrorIs(t, err, outline.ErrSelectionOutOfRange)

	_, err = ByIndex(nil, 0)
	assert.ErrorIs(t, err, outline.ErrEmptyOutline)
}

func TestByIndexDuplicateTitles(t *testing.T) {
	o := outline.Outline{
		Entries: []outline.Entry{
			{Title: "Exercises", Level: 0, Page: 3},
			{Title: "Exercises", Level: 0, Page: 8},
		},
		LastPage: 10,
	}
	secs, err := o.Sections(outline.EndShallower)
	require.NoError(t, err)

	second, err := ByIndex(secs, 1)
	require.NoError(t, err)
	assert.Equal(t, 8, second.Pages.Start, "positional selection distinguishes duplicate titles")
}

func TestByQuery(t *testing.T) {
	secs := sampleSections()

	t.Run("unique match", func(t *testing.T) {
		s, err := ByQuery(secs, 0, "samp")
		require.NoError(t, err)
		assert.Equal(t, "Sampling", s.Title)
	})

	t.Run("no match", func(t *testing.T) {
		_, err := ByQuery(secs, 0, "zzz")
		assert.ErrorContains(t, err, "no bookmark matches")
	})

	t.Run("ambiguous", func(t *testing.T) {
		_, err := ByQuery(secs, 0, "s")
		assert.ErrorContains(t, err, "ambiguous")
	})

	t.Run("empty outline", func(t *testing.T) {
		_, err := ByQuery(nil, 0, "x")
		assert.ErrorIs(t, err, outline.ErrEmptyOutline)
	})
}

func TestInteractivePick(t *testing.T) {
	t.Run("numeric selection", func(t *testing.T) {
		var out bytes.Buffer
		p := &Interactive{In: strings.NewReader("1\n"), Out: &out}
		s, err := p.Pick(sampleSections(), 0)
		require.NoError(t, err)
		assert.Equal(t, "Methods", s.Title)
		assert.Contains(t, out.String(), "Introduction")
	})

	t.Run("filter then pick from narrowed list", func(t *testing.T) {
		var out bytes.Buffer
		// "s" narrows to several entries, then 0 picks the first survivor.
		p := &Interactive{In: strings.NewReader("s\n0\n"), Out: &out}
		s, err := p.Pick(sampleSections(), 0)
		require.NoError(t, err)
		assert.Equal(t, "Methods", s.Title)
	})

	t.Run("unique filter picks immediately", func(t *testing.T) {
		var out bytes.Buffer
		p := &Interactive{In: strings.NewReader("intro\n"), Out: &out}
		s, err := p.Pick(sampleSections(), 0)
		require.NoError(t, err)
		assert.Equal(t, "Introduction", s.Title)
	})

	t.Run("empty reply aborts", func(t *testing.T) {
		var out bytes.Buffer
		p := &Interactive{In: strings.NewReader("\n"), Out: &out}
		_, err := p.Pick(sampleSections(), 0)
		assert.ErrorIs(t, err, ErrAborted)
	})

	t.Run("eof aborts", func(t *testing.T) {
		var out bytes.Buffer
		p := &Interactive{In: strings.NewReader(""), Out: &out}
		_, err := p.Pick(sampleSections(), 0)
		assert.ErrorIs(t, err, ErrAborted)
	})

	t.Run("out of range index reprompts", func(t *testing.T) {
		var out bytes.Buffer
		p := &Interactive{In: strings.NewReader("9\n2\n"), Out: &out}
		s, err := p.Pick(sampleSections(), 0)
		require.NoError(t, err)
		assert.Equal(t, "Sampling", s.Title)
	})

	t.Run("empty section list", func(t *testing.T) {
		p := &Interactive{In: strings.NewReader("0\n"), Out: &bytes.Buffer{}}
		_, err := p.Pick(nil, 0)
		assert.True(t, errors.Is(err, outline.ErrEmptyOutline))
	})
}
