// Package engine implements the completion ranking and navigation engine:
// per-level views with incremental re-ranking, hierarchical stacks and the
// multi-tab session model.
package engine

import (
	"io"
	"slices"

	"github.com/saf/completers/internal/completion"
	"github.com/saf/completers/internal/scoring"
)

// Params carries the knobs the engine needs at construction time instead of
// reading ambient globals: the chooser page height and the scoring weights.
type Params struct {
	PageSize int
	Scoring  scoring.Settings
}

// DefaultParams returns the engine parameters used when no configuration
// overrides them.
func DefaultParams() Params {
	return Params{
		PageSize: 10,
		Scoring:  scoring.DefaultSettings(),
	}
}

// Scored pairs a completion with its relevance for the current query.
type Scored struct {
	Completion completion.Completion
	Score      scoring.Value
}

// View holds one navigation level: the completer that feeds it, every
// candidate fetched so far, and the query-filtered ranked projection of
// those candidates.
type View struct {
	completer  completion.Completer
	params     Params
	query      string
	viewOffset int
	selection  int

	// all accumulates candidates in arrival order and is never truncated
	// while the level is alive. Arrival order breaks score ties.
	all []completion.Completion

	// scored is the ranked list for the current query, sorted by
	// descending score.
	scored []Scored
}

// NewView creates a view over the given completer. No fetch is triggered;
// the caller decides when the first tick happens.
func NewView(completer completion.Completer, params Params) *View {
	if params.PageSize < 1 {
		params.PageSize = 1
	}
	return &View{
		completer: completer,
		params:    params,
	}
}

// Completer returns the completer feeding this view.
func (v *View) Completer() completion.Completer { return v.completer }

// Query returns the query this view is currently filtered by.
func (v *View) Query() string { return v.query }

// ViewOffset returns the index of the first ranked entry on screen.
func (v *View) ViewOffset() int { return v.viewOffset }

// Selection returns the index of the selected entry in the ranked list.
func (v *View) Selection() int { return v.selection }

// Len returns the number of ranked entries for the current query.
func (v *View) Len() int { return len(v.scored) }

// Completions returns the ranked list for the current query. The slice is
// owned by the view; callers read it only.
func (v *View) Completions() []Scored { return v.scored }

// Selected returns the completion under the cursor, or false when the
// ranked list is empty.
func (v *View) Selected() (completion.Completion, bool) {
	if v.selection >= len(v.scored) {
		return nil, false
	}
	return v.scored[v.selection].Completion, true
}

// SetQuery replaces the query and recomputes the ranked list from scratch
// over all accumulated candidates. Selection and offset reset to the top.
// This is linear in the accumulated set and only runs on user keystrokes.
func (v *View) SetQuery(query string) {
	v.query = query
	v.selection = 0
	v.viewOffset = 0
	v.scored = v.rank(v.all)
}

// Fetch performs one request/response round-trip with the completer and
// absorbs whatever batch it produced.
func (v *View) Fetch() {
	v.absorb(v.completer.FetchCompletions())
}

// FetchingFinished reports whether the completer will produce more batches.
func (v *View) FetchingFinished() bool {
	return v.completer.FetchingFinished()
}

// absorb appends a fresh batch to the accumulated collection and merges its
// ranked entries into the existing ranked list. Only the new batch is
// scored; the merge keeps both runs ordered and lets existing entries win
// ties, preserving the first-arrival order. Batches can arrive at sub-100ms
// cadence while a background walker works, so rescoring everything here
// would not keep up.
func (v *View) absorb(batch []completion.Completion) {
	if len(batch) == 0 {
		return
	}
	v.all = append(v.all, batch...)
	v.scored = mergeRanked(v.scored, v.rank(batch))
}

// rank filters candidates through the subsequence pre-filter, scores the
// survivors and sorts them by descending score. The sort is stable so that
// equal scores keep arrival order.
func (v *View) rank(candidates []completion.Completion) []Scored {
	scored := make([]Scored, 0, len(candidates))
	for _, c := range candidates {
		if !scoring.Match(v.query, c.SearchString()) {
			continue
		}
		scored = append(scored, Scored{
			Completion: c,
			Score:      scoring.Score(c.SearchString(), v.query, v.params.Scoring),
		})
	}
	slices.SortStableFunc(scored, func(a, b Scored) int {
		switch {
		case a.Score > b.Score:
			return -1
		case a.Score < b.Score:
			return 1
		default:
			return 0
		}
	})
	return scored
}

// mergeRanked merges two descending runs. On equal scores the existing run
// goes first, so earlier-arrived candidates keep their rank.
func mergeRanked(existing, fresh []Scored) []Scored {
	if len(fresh) == 0 {
		return existing
	}
	merged := make([]Scored, 0, len(existing)+len(fresh))
	i, j := 0, 0
	for i < len(existing) && j < len(fresh) {
		if fresh[j].Score > existing[i].Score {
			merged = append(merged, fresh[j])
			j++
		} else {
			merged = append(merged, existing[i])
			i++
		}
	}
	merged = append(merged, existing[i:]...)
	merged = append(merged, fresh[j:]...)
	return merged
}

// SelectPrevious moves the cursor up one entry.
func (v *View) SelectPrevious() {
	v.selection = max(v.selection-1, 0)
	if v.selection < v.viewOffset {
		v.viewOffset = v.selection
	}
}

// SelectNext moves the cursor down one entry.
func (v *View) SelectNext() {
	if len(v.scored) == 0 {
		return
	}
	v.selection = min(v.selection+1, len(v.scored)-1)
	if v.selection >= v.viewOffset+v.params.PageSize {
		v.viewOffset = v.selection - v.params.PageSize + 1
	}
}

// PreviousPage moves the cursor up a full page.
func (v *View) PreviousPage() {
	v.selection = max(v.selection-v.params.PageSize, 0)
	if v.selection < v.viewOffset {
		v.viewOffset = v.selection
	}
}

// NextPage moves the cursor down a full page.
func (v *View) NextPage() {
	if len(v.scored) == 0 {
		return
	}
	v.selection = min(v.selection+v.params.PageSize, len(v.scored)-1)
	if v.selection >= v.viewOffset+v.params.PageSize {
		v.viewOffset = v.selection - v.params.PageSize + 1
	}
}

// SelectFirst moves the cursor to the top of the ranked list.
func (v *View) SelectFirst() {
	v.selection = 0
	v.viewOffset = 0
}

// SelectLast moves the cursor to the bottom of the ranked list.
func (v *View) SelectLast() {
	if len(v.scored) == 0 {
		return
	}
	v.selection = len(v.scored) - 1
	v.viewOffset = max(v.selection-v.params.PageSize+1, 0)
}

// Close releases the completer's background resources, if it has any.
// Workers exit on their own once their request channel closes.
func (v *View) Close() {
	if closer, ok := v.completer.(io.Closer); ok {
		_ = closer.Close()
	}
}
