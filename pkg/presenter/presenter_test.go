package presenter

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func newTestPresenter() (*TerminalPresenter, *bytes.Buffer, *bytes.Buffer) {
	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	return NewWithOptions(out, errOut, ColorNever), out, errOut
}

func TestError(t *testing.T) {
	t.Run("with context", func(t *testing.T) {
		p, out, errOut := newTestPresenter()
		p.Error(errors.New("boom"), "failed to delete skill")

		assert.Empty(t, out.String())
		assert.Contains(t, errOut.String(), "[ERROR] failed to delete skill: boom")
	})

	t.Run("without context", func(t *testing.T) {
		p, _, errOut := newTestPresenter()
		p.Error(errors.New("boom"), "")

		assert.Contains(t, errOut.String(), "[ERROR] boom")
	})

	t.Run("nil error is a no-op", func(t *testing.T) {
		p, _, errOut := newTestPresenter()
		p.Error(nil, "context")

		assert.Empty(t, errOut.String())
	})
}

func TestMessages(t *testing.T) {
	p, out, _ := newTestPresenter()

	p.Success("skill deleted")
	p.Warning("port 8765 taken")
	p.Info("scanning")

	output := out.String()
	assert.Contains(t, output, "✓ skill deleted")
	assert.Contains(t, output, "⚠ port 8765 taken")
	assert.Contains(t, output, "scanning")
}

func TestQuietMode(t *testing.T) {
	p, out, errOut := newTestPresenter()
	p.SetQuiet(true)

	assert.True(t, p.IsQuiet())

	p.Success("hidden")
	p.Warning("hidden")
	p.Info("hidden")
	assert.Empty(t, out.String())

	// Errors are never suppressed
	p.Error(errors.New("boom"), "")
	assert.Contains(t, errOut.String(), "boom")
}
