package ui

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saf/completers/internal/completion"
	"github.com/saf/completers/internal/engine"
	"github.com/saf/completers/internal/scoring"
)

// staticCompleter serves one fixed batch.
type staticCompleter struct {
	name    string
	items   []completion.Completion
	fetched bool
}

func (s *staticCompleter) Name() string { return s.name }

func (s *staticCompleter) FetchingFinished() bool { return true }

func (s *staticCompleter) FetchCompletions() []completion.Completion {
	if s.fetched {
		return nil
	}
	s.fetched = true
	return s.items
}

func (s *staticCompleter) Descend(completion.Completion) completion.Completer { return nil }

func (s *staticCompleter) Ascend() completion.Completer { return nil }

func testModel(items ...string) *engine.Model {
	texts := make([]completion.Completion, 0, len(items))
	for _, item := range items {
		texts = append(texts, completion.Text(item))
	}
	model := engine.NewModel(
		[]completion.Completer{&staticCompleter{name: "fs", items: texts}},
		engine.Params{PageSize: 3, Scoring: scoring.DefaultSettings()},
	)
	model.StartFetchingCompletions()
	return model
}

func TestRenderer_Frame(t *testing.T) {
	model := testModel("alpha", "beta", "gamma", "delta")

	var buf bytes.Buffer
	renderer := NewRenderer(&buf, 3, func() int { return 60 })
	require.NoError(t, renderer.Render(model))

	out := buf.String()
	assert.Contains(t, out, "> ")
	assert.Contains(t, out, "[fs 1-3/4]")
	assert.Contains(t, out, "alpha")
	assert.Contains(t, out, "gamma")
	// The fourth entry sits below the page.
	assert.NotContains(t, out, "delta")
}

func TestRenderer_EmptyList(t *testing.T) {
	model := testModel()

	var buf bytes.Buffer
	renderer := NewRenderer(&buf, 3, func() int { return 60 })
	require.NoError(t, renderer.Render(model))

	assert.Contains(t, buf.String(), "[fs 0-0/0]")
}

func TestRenderer_StatusFollowsScrolling(t *testing.T) {
	model := testModel("a1", "a2", "a3", "a4", "a5")
	model.SelectLast()

	var buf bytes.Buffer
	renderer := NewRenderer(&buf, 3, func() int { return 60 })
	require.NoError(t, renderer.Render(model))

	out := buf.String()
	assert.Contains(t, out, "[fs 3-5/5]")
	assert.Contains(t, out, "a5")
	assert.NotContains(t, out, "a1")
}

func TestRenderer_NarrowTerminalTruncates(t *testing.T) {
	model := testModel("a-very-long-entry-name-that-cannot-fit")

	var buf bytes.Buffer
	renderer := NewRenderer(&buf, 3, func() int { return 20 })
	require.NoError(t, renderer.Render(model))

	assert.NotContains(t, buf.String(), "cannot-fit")
}

func TestRenderer_Clear(t *testing.T) {
	var buf bytes.Buffer
	renderer := NewRenderer(&buf, 3, func() int { return 60 })
	require.NoError(t, renderer.Clear())

	assert.Contains(t, buf.String(), "\x1b[K")
}
