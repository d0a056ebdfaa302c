package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/saf/completers/internal/engine"
)

// Styles for the chooser frame.
var (
	promptStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("14")).Bold(true)
	statusStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	selectedStyle = lipgloss.NewStyle().Reverse(true)
	scoreStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

const prompt = "> "

// Renderer draws the chooser in place: one prompt line followed by a fixed
// number of completion rows. Every frame rewrites the same lines, so the
// chooser never scrolls the surrounding shell output away.
type Renderer struct {
	out      io.Writer
	pageSize int
	width    func() int
}

// NewRenderer creates a renderer writing pageSize completion rows to out.
// width is consulted on every frame so resizes take effect immediately.
func NewRenderer(out io.Writer, pageSize int, width func() int) *Renderer {
	return &Renderer{out: out, pageSize: pageSize, width: width}
}

// Render draws one frame from the model state. The terminal is in raw mode,
// so lines end with \r\n and each starts by erasing stale content.
func (r *Renderer) Render(m *engine.Model) error {
	width := r.width()

	var frame strings.Builder
	frame.WriteString("\r\x1b[K")
	frame.WriteString(r.promptLine(m, width))

	completions := m.Completions()
	offset := m.ViewOffset()
	for row := 0; row < r.pageSize; row++ {
		frame.WriteString("\r\n\x1b[K")
		i := offset + row
		if i >= len(completions) {
			continue
		}
		frame.WriteString(r.completionRow(completions[i], i == m.Selection(), width))
	}

	// Park the cursor right after the typed query on the prompt line.
	fmt.Fprintf(&frame, "\x1b[%dA\r\x1b[%dC", r.pageSize, lipgloss.Width(prompt)+lipgloss.Width(m.Query()))

	_, err := io.WriteString(r.out, frame.String())
	return err
}

// promptLine renders the query with the status segment right-aligned:
// completer name plus the visible slice of the ranked list.
func (r *Renderer) promptLine(m *engine.Model, width int) string {
	left := promptStyle.Render(prompt) + m.Query()

	total := m.CompletionsCount()
	first, last := 0, 0
	if total > 0 {
		first = m.ViewOffset() + 1
		last = min(m.ViewOffset()+r.pageSize, total)
	}
	status := statusStyle.Render(fmt.Sprintf("[%s %d-%d/%d]", m.CompleterName(), first, last, total))

	gap := width - lipgloss.Width(left) - lipgloss.Width(status)
	if gap < 1 {
		return ansi.Truncate(left, width, "")
	}
	return left + strings.Repeat(" ", gap) + status
}

// completionRow renders one ranked entry: the score in a dim column, then
// the completion's own display string.
func (r *Renderer) completionRow(s engine.Scored, selected bool, width int) string {
	line := scoreStyle.Render(fmt.Sprintf("%4d ", s.Score)) + s.Completion.DisplayString()
	line = ansi.Truncate(line, width, "…")
	if selected {
		return selectedStyle.Render(ansi.Strip(line))
	}
	return line
}

// Clear erases the chooser's lines so the shell prompt returns to a clean
// screen after the session ends.
func (r *Renderer) Clear() error {
	var frame strings.Builder
	frame.WriteString("\r\x1b[K")
	for row := 0; row < r.pageSize; row++ {
		frame.WriteString("\x1b[1B\r\x1b[K")
	}
	fmt.Fprintf(&frame, "\x1b[%dA\r", r.pageSize)
	_, err := io.WriteString(r.out, frame.String())
	return err
}
