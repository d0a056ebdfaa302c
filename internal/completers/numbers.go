package completers

import (
	"strconv"

	"github.com/saf/completers/internal/completion"
)

// Numbers generates the decimal strings 0..count-1. It exists to exercise
// the completer contract in tests and demos: synchronous-finite, flat, no
// hierarchy.
type Numbers struct {
	count   int
	fetched bool
}

// NewNumbers creates a generator for count completions.
func NewNumbers(count int) *Numbers {
	return &Numbers{count: count}
}

// Name returns "num".
func (n *Numbers) Name() string { return "num" }

// FetchingFinished is always true.
func (n *Numbers) FetchingFinished() bool { return true }

// FetchCompletions returns every number on the first call.
func (n *Numbers) FetchCompletions() []completion.Completion {
	if n.fetched {
		return nil
	}
	n.fetched = true

	completions := make([]completion.Completion, 0, n.count)
	for i := 0; i < n.count; i++ {
		completions = append(completions, completion.Text(strconv.Itoa(i)))
	}
	return completions
}

// Descend returns nil; numbers have no children.
func (n *Numbers) Descend(completion.Completion) completion.Completer { return nil }

// Ascend returns nil; numbers have no parent.
func (n *Numbers) Ascend() completion.Completer { return nil }
