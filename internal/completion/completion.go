// Package completion defines the contracts between the ranking engine and
// the pluggable sources of completion candidates.
package completion

// Completion is a single candidate a completer can offer. Implementations
// are immutable once produced and are shared by reference between the
// accumulated collection of a view, its ranked list and the current
// selection.
type Completion interface {
	// ResultString returns the text substituted when the completion is
	// accepted.
	ResultString() string

	// DisplayString returns the text shown in the chooser. It usually
	// equals ResultString but may carry styling, e.g. a color per kind.
	DisplayString() string

	// SearchString returns the text the scorer runs against. It usually
	// equals ResultString but may differ, e.g. a commit is ranked on its
	// subject line while its hash is the result.
	SearchString() string
}

// Text is the plain-string completion: result, display and search text are
// all the same value.
type Text string

// ResultString returns the string itself.
func (t Text) ResultString() string { return string(t) }

// DisplayString returns the string itself.
func (t Text) DisplayString() string { return string(t) }

// SearchString returns the string itself.
func (t Text) SearchString() string { return string(t) }
