package completion

// Completer is a source of completions. Sources may be finite and
// synchronous (one fetch returns everything) or incremental with a
// background worker; the engine treats both uniformly through this
// interface.
//
// Completers that own background resources should additionally implement
// io.Closer. The engine closes a completer when its level is discarded;
// cancellation is advisory and the worker exits on its own.
type Completer interface {
	// Name returns a stable short identifier for status display.
	Name() string

	// FetchCompletions requests the next incremental batch of candidates.
	// It may block briefly but must eventually make progress observable
	// via FetchingFinished. Once FetchingFinished reports true, further
	// calls are no-ops returning an empty batch.
	FetchCompletions() []Completion

	// FetchingFinished reports whether no further batches will ever be
	// produced.
	FetchingFinished() bool

	// Descend returns a new completer scoped into the given completion,
	// or nil if descent does not apply to it.
	Descend(selected Completion) Completer

	// Ascend returns a new completer scoped to the parent context, or nil
	// at the top of the hierarchy.
	Ascend() Completer
}
