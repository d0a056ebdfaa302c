package engine

import (
	"unicode/utf8"

	"github.com/saf/completers/internal/completion"
)

// Model is the full state of one completion session: a stack of views per
// initial completer ("tabs"), the index of the active tab and the query the
// user has typed. The model is driven by a single goroutine; completers do
// their background work behind channels, so no locking happens here.
type Model struct {
	stacks []*Stack
	active int
	query  string
}

// NewModel creates a session over the given completers, one tab each.
// At least one completer is expected.
func NewModel(completers []completion.Completer, params Params) *Model {
	stacks := make([]*Stack, 0, len(completers))
	for _, c := range completers {
		stacks = append(stacks, NewStack(c, params))
	}
	return &Model{stacks: stacks}
}

func (m *Model) activeStack() *Stack { return m.stacks[m.active] }

func (m *Model) activeView() *View { return m.activeStack().Top() }

// CompleterName returns the active completer's display name.
func (m *Model) CompleterName() string {
	return m.activeView().Completer().Name()
}

// Completions returns the active view's ranked list.
func (m *Model) Completions() []Scored {
	return m.activeView().Completions()
}

// CompletionsCount returns the size of the active view's ranked list.
func (m *Model) CompletionsCount() int {
	return m.activeView().Len()
}

// ViewOffset returns the active view's scroll offset.
func (m *Model) ViewOffset() int {
	return m.activeView().ViewOffset()
}

// Selection returns the active view's selection index.
func (m *Model) Selection() int {
	return m.activeView().Selection()
}

// Query returns the session query.
func (m *Model) Query() string {
	return m.query
}

// SelectedResult returns the result string of the selected completion, or
// false when nothing is selected. Confirming on an empty ranked list is a
// no-op for the caller.
func (m *Model) SelectedResult() (string, bool) {
	selected, ok := m.activeView().Selected()
	if !ok {
		return "", false
	}
	return selected.ResultString(), true
}

// SelectPrevious moves the active selection up one entry.
func (m *Model) SelectPrevious() { m.activeView().SelectPrevious() }

// SelectNext moves the active selection down one entry.
func (m *Model) SelectNext() { m.activeView().SelectNext() }

// PreviousPage moves the active selection up one page.
func (m *Model) PreviousPage() { m.activeView().PreviousPage() }

// NextPage moves the active selection down one page.
func (m *Model) NextPage() { m.activeView().NextPage() }

// SelectFirst moves the active selection to the top.
func (m *Model) SelectFirst() { m.activeView().SelectFirst() }

// SelectLast moves the active selection to the bottom.
func (m *Model) SelectLast() { m.activeView().SelectLast() }

// applyQuery propagates the session query to the active view only. Other
// tabs keep their own filtered state until they become active again.
func (m *Model) applyQuery() {
	m.activeView().SetQuery(m.query)
}

// QueryAppend appends one rune to the session query.
func (m *Model) QueryAppend(r rune) {
	m.query += string(r)
	m.applyQuery()
}

// QueryBackspace removes the last rune of the session query.
func (m *Model) QueryBackspace() {
	if m.query != "" {
		_, size := utf8.DecodeLastRuneInString(m.query)
		m.query = m.query[:len(m.query)-size]
	}
	m.applyQuery()
}

// QuerySet replaces the session query.
func (m *Model) QuerySet(query string) {
	m.query = query
	m.applyQuery()
}

// Descend enters the selected completion when the active completer allows
// it. Entering a new level starts with an unfiltered view, so the session
// query resets on success.
func (m *Model) Descend() {
	if m.activeStack().Descend() {
		m.QuerySet("")
	}
}

// Ascend leaves the current level of the active tab.
func (m *Model) Ascend() {
	m.activeStack().Ascend()
}

// NextTab activates the next tab, round-robin. The session query carries
// over so the text typed so far applies to the freshly selected tab.
func (m *Model) NextTab() {
	m.active = (m.active + 1) % len(m.stacks)
	m.applyQuery()
}

// StartFetchingCompletions triggers one fetch tick on every tab's active
// level so all sources begin working concurrently at session start.
func (m *Model) StartFetchingCompletions() {
	for _, s := range m.stacks {
		s.Top().Fetch()
	}
}

// FetchCompletions triggers one fetch tick on the active tab only. Hidden
// tabs are not polled; they resume once selected.
func (m *Model) FetchCompletions() {
	m.activeView().Fetch()
}

// FetchingFinished reports whether the active tab's completer is done.
func (m *Model) FetchingFinished() bool {
	return m.activeView().FetchingFinished()
}

// Close releases every level of every tab.
func (m *Model) Close() {
	for _, s := range m.stacks {
		s.Close()
	}
}
