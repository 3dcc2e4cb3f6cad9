package registry

import (
	"context"
	"testing"

	"github.com/sammcj/pdfsection/internal/extract"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeEngine struct {
	name      string
	available bool
}

func (f *fakeEngine) Name() string    { return f.name }
func (f *fakeEngine) Available() bool { return f.available }
func (f *fakeEngine) Extract(context.Context, *logrus.Logger, extract.Request) error {
	return nil
}

func resetRegistry(t *testing.T) {
	t.Helper()
	engineRegistry = make(map[string]extract.Engine)
	disabledEngines = make(map[string]bool)
}

func TestRegisterAndResolve(t *testing.T) {
	resetRegistry(t)
	Init(logrus.New())

	Register(&fakeEngine{name: "pdftk", available: true})
	Register(&fakeEngine{name: "qpdf", available: false})

	t.Run("by name", func(t *testing.T) {
		e, err := Resolve("pdftk")
		require.NoError(t, err)
		assert.Equal(t, "pdftk", e.Name())
	})

	t.Run("named but unavailable", func(t *testing.T) {
		_, err := Resolve("qpdf")
		assert.ErrorContains(t, err, "not available")
	})

	t.Run("unknown name", func(t *testing.T) {
		_, err := Resolve("pdfjam")
		assert.ErrorContains(t, err, "unknown extraction engine")
	})

	t.Run("default skips unavailable engines", func(t *testing.T) {
		e, err := Resolve("")
		require.NoError(t, err)
		assert.Equal(t, "pdftk", e.Name())
	})
}

func TestDefaultPriority(t *testing.T) {
	resetRegistry(t)
	Init(logrus.New())

	Register(&fakeEngine{name: "pdftk", available: true})
	Register(&fakeEngine{name: "pdfcpu", available: true})

	e, err := Default()
	require.NoError(t, err)
	assert.Equal(t, "pdfcpu", e.Name(), "in-process engine wins the default")
}

func TestDefaultNoneAvailable(t *testing.T) {
	resetRegistry(t)
	Init(logrus.New())

	Register(&fakeEngine{name: "pdftk", available: false})

	_, err := Default()
	assert.ErrorContains(t, err, "no extraction engine available")
}

func TestDisabledEngines(t *testing.T) {
	resetRegistry(t)
	t.Setenv("DISABLED_ENGINES", "pdftk, QPDF")
	Init(logrus.New())

	Register(&fakeEngine{name: "pdftk", available: true})
	Register(&fakeEngine{name: "qpdf", available: true})
	Register(&fakeEngine{name: "pdfcpu", available: true})

	assert.Equal(t, []string{"pdfcpu"}, Names())

	_, ok := Get("pdftk")
	assert.False(t, ok)
}
