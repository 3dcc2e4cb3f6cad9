package shellcmd

import (
	"testing"

	"github.com/sammcj/pdfsection/internal/extract"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Run("valid template", func(t *testing.T) {
		e, err := New(`pdfjam {input} {start}-{end} -o {output}`)
		require.NoError(t, err)
		assert.Equal(t, "custom", e.Name())
	})

	t.Run("quoted tokens survive", func(t *testing.T) {
		e, err := New(`mytool --label "chapter dump" {input} {output}`)
		require.NoError(t, err)
		assert.Equal(t, []string{"mytool", "--label", "chapter dump", "{input}", "{output}"}, e.tokens)
	})

	t.Run("missing output placeholder", func(t *testing.T) {
		_, err := New(`pdfjam {input} {start}-{end}`)
		assert.ErrorContains(t, err, "{output}")
	})

	t.Run("missing input placeholder", func(t *testing.T) {
		_, err := New(`pdfjam {output}`)
		assert.ErrorContains(t, err, "{input}")
	})

	t.Run("empty template", func(t *testing.T) {
		_, err := New("   ")
		assert.Error(t, err)
	})

	t.Run("unbalanced quoting", func(t *testing.T) {
		_, err := New(`pdfjam "{input} {output}`)
		assert.Error(t, err)
	})
}

func TestRender(t *testing.T) {
	e, err := New(`qpdf --empty --pages {input} {start}-{end} -- {output}`)
	require.NoError(t, err)

	req := extract.Request{
		InputPath:  "/docs/my book.pdf",
		OutputPath: "/out/ch1.pdf",
		StartPage:  3,
		EndPage:    12,
	}
	argv := e.render(req, "/out/.ch1-tmp.pdf")

	assert.Equal(t, []string{
		"qpdf", "--empty", "--pages", "/docs/my book.pdf", "3-12", "--", "/out/.ch1-tmp.pdf",
	}, argv)
}
