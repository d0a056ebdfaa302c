package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saf/completers/internal/completion"
)

func testParams() Params {
	p := DefaultParams()
	p.PageSize = 3
	return p
}

func rankedResults(v *View) []string {
	var out []string
	for _, s := range v.Completions() {
		out = append(out, s.Completion.ResultString())
	}
	return out
}

func TestView_EmptyQueryKeepsArrivalOrder(t *testing.T) {
	c := &stubCompleter{name: "stub", batches: [][]completion.Completion{
		texts("bravo", "alpha"),
		texts("charlie"),
	}}
	v := NewView(c, testParams())

	v.Fetch()
	v.Fetch()

	// With no query everything matches at score 0, and the tie-break
	// preserves arrival order across batches.
	assert.Equal(t, []string{"bravo", "alpha", "charlie"}, rankedResults(v))
	for _, s := range v.Completions() {
		assert.Zero(t, s.Score)
	}
}

func TestView_SetQueryRescoresAndResets(t *testing.T) {
	c := &stubCompleter{name: "stub", batches: [][]completion.Completion{
		texts("main.go", "main_test.go", "README"),
	}}
	v := NewView(c, testParams())
	v.Fetch()
	v.SelectNext()

	v.SetQuery("main")

	assert.Equal(t, 0, v.Selection())
	assert.Equal(t, 0, v.ViewOffset())
	assert.Equal(t, []string{"main.go", "main_test.go"}, rankedResults(v))
}

func TestView_AbsorbFiltersByCurrentQuery(t *testing.T) {
	c := &stubCompleter{name: "stub", batches: [][]completion.Completion{
		texts("foo"),
		texts("bar", "foobar"),
	}}
	v := NewView(c, testParams())
	v.SetQuery("fo")

	v.Fetch()
	require.Equal(t, []string{"foo"}, rankedResults(v))

	v.Fetch()
	assert.Equal(t, []string{"foo", "foobar"}, rankedResults(v))
}

func TestView_MergeStability(t *testing.T) {
	// All candidates tie at score 0 under the empty query; after each
	// absorb, pre-existing entries must precede the new batch.
	c := &stubCompleter{name: "stub", batches: [][]completion.Completion{
		texts("x1", "x2"),
		texts("y1"),
		texts("z1", "z2"),
	}}
	v := NewView(c, testParams())

	v.Fetch()
	v.Fetch()
	v.Fetch()

	assert.Equal(t, []string{"x1", "x2", "y1", "z1", "z2"}, rankedResults(v))
}

func TestView_MergeInterleavesByScore(t *testing.T) {
	c := &stubCompleter{name: "stub", batches: [][]completion.Completion{
		texts("a_b", "noise"),
		texts("ab", "a/b"),
	}}
	v := NewView(c, testParams())
	v.SetQuery("ab")

	v.Fetch()
	v.Fetch()

	scores := v.Completions()
	require.Len(t, scores, 3) // "noise" fails the subsequence filter
	for i := 1; i < len(scores); i++ {
		assert.GreaterOrEqual(t, scores[i-1].Score, scores[i].Score)
	}
}

func TestView_SelectionClamping(t *testing.T) {
	c := &stubCompleter{name: "stub", batches: [][]completion.Completion{numbers(7)}}
	v := NewView(c, testParams()) // page size 3
	v.Fetch()

	// Moving up from the top stays at the top.
	v.SelectPrevious()
	assert.Equal(t, 0, v.Selection())
	assert.Equal(t, 0, v.ViewOffset())

	// Moving past the page scrolls the offset along.
	for i := 0; i < 10; i++ {
		v.SelectNext()
	}
	assert.Equal(t, 6, v.Selection())
	assert.Equal(t, 4, v.ViewOffset())

	v.SelectFirst()
	assert.Equal(t, 0, v.Selection())
	assert.Equal(t, 0, v.ViewOffset())

	v.SelectLast()
	assert.Equal(t, 6, v.Selection())
	assert.Equal(t, 4, v.ViewOffset())

	v.PreviousPage()
	assert.Equal(t, 3, v.Selection())
	assert.LessOrEqual(t, v.ViewOffset(), v.Selection())

	v.NextPage()
	assert.Equal(t, 6, v.Selection())
}

func TestView_EmptyListOperationsAreNoOps(t *testing.T) {
	c := &stubCompleter{name: "stub"}
	v := NewView(c, testParams())

	v.SelectNext()
	v.SelectPrevious()
	v.NextPage()
	v.PreviousPage()
	v.SelectFirst()
	v.SelectLast()

	assert.Equal(t, 0, v.Selection())
	assert.Equal(t, 0, v.ViewOffset())

	_, ok := v.Selected()
	assert.False(t, ok)
}

func TestView_FetchAfterFinishedIsNoOp(t *testing.T) {
	c := &stubCompleter{name: "stub", batches: [][]completion.Completion{numbers(2)}}
	v := NewView(c, testParams())

	v.Fetch()
	require.True(t, v.FetchingFinished())

	v.Fetch()
	assert.Equal(t, 2, v.Len())
}
