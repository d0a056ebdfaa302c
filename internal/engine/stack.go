package engine

import "github.com/saf/completers/internal/completion"

// Stack is the navigation path of one tab: a non-empty sequence of views,
// one per hierarchy level currently open. The last view is the active
// level.
type Stack struct {
	views  []*View
	params Params
}

// NewStack creates a stack with a single root view over the completer.
func NewStack(completer completion.Completer, params Params) *Stack {
	return &Stack{
		views:  []*View{NewView(completer, params)},
		params: params,
	}
}

// Top returns the active view.
func (s *Stack) Top() *View {
	return s.views[len(s.views)-1]
}

// Len returns the number of open levels.
func (s *Stack) Len() int {
	return len(s.views)
}

// Descend pushes a new level scoped into the selected completion. It
// reports whether a descent actually happened; when the selection is empty
// or the completer declines, the stack is unchanged.
func (s *Stack) Descend() bool {
	selected, ok := s.Top().Selected()
	if !ok {
		return false
	}
	descended := s.Top().Completer().Descend(selected)
	if descended == nil {
		return false
	}
	level := NewView(descended, s.params)
	level.Fetch()
	s.views = append(s.views, level)
	return true
}

// Ascend pops the active level, or, at the root, replaces it with a view
// over the completer's own parent context when one exists. The discarded
// view is closed; its background work is abandoned.
func (s *Stack) Ascend() {
	if len(s.views) > 1 {
		top := s.Top()
		s.views = s.views[:len(s.views)-1]
		top.Close()
		return
	}
	parent := s.Top().Completer().Ascend()
	if parent == nil {
		return
	}
	level := NewView(parent, s.params)
	level.Fetch()
	s.views[0].Close()
	s.views[0] = level
}

// Close releases every open level.
func (s *Stack) Close() {
	for _, v := range s.views {
		v.Close()
	}
}
