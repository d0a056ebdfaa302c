package engine

import (
	"strconv"

	"github.com/saf/completers/internal/completion"
)

// stubCompleter serves pre-arranged batches one per fetch and optionally
// supports hierarchy via child/parent completers.
type stubCompleter struct {
	name    string
	batches [][]completion.Completion
	next    int
	child   *stubCompleter
	parent  *stubCompleter
	closed  bool
}

func (s *stubCompleter) Name() string { return s.name }

func (s *stubCompleter) FetchCompletions() []completion.Completion {
	if s.FetchingFinished() {
		return nil
	}
	batch := s.batches[s.next]
	s.next++
	return batch
}

func (s *stubCompleter) FetchingFinished() bool {
	return s.next >= len(s.batches)
}

func (s *stubCompleter) Descend(completion.Completion) completion.Completer {
	if s.child == nil {
		return nil
	}
	return s.child
}

func (s *stubCompleter) Ascend() completion.Completer {
	if s.parent == nil {
		return nil
	}
	return s.parent
}

func (s *stubCompleter) Close() error {
	s.closed = true
	return nil
}

func texts(values ...string) []completion.Completion {
	batch := make([]completion.Completion, 0, len(values))
	for _, v := range values {
		batch = append(batch, completion.Text(v))
	}
	return batch
}

func numbers(count int) []completion.Completion {
	batch := make([]completion.Completion, 0, count)
	for i := 0; i < count; i++ {
		batch = append(batch, completion.Text(strconv.Itoa(i)))
	}
	return batch
}
