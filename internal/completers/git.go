package completers

import (
	"fmt"
	"os/exec"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/saf/completers/internal/completion"
)

var (
	headStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	tagStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	remoteStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// gitOutput runs a git subcommand and returns its stdout. Overridable in
// tests so they never depend on a real repository.
var gitOutput = func(args ...string) ([]byte, error) {
	return exec.Command("git", args...).Output()
}

type refKind int

const (
	refHead refKind = iota
	refBranch
	refRemoteBranch
	refTag
)

// RefCompletion is a git ref: HEAD, a local or remote branch, or a tag.
type RefCompletion struct {
	kind refKind
	name string
}

// ResultString returns the ref name.
func (c *RefCompletion) ResultString() string { return c.name }

// DisplayString colors the ref by kind: HEAD red, tags yellow, remote
// branches dimmed.
func (c *RefCompletion) DisplayString() string {
	switch c.kind {
	case refHead:
		return headStyle.Render(c.name)
	case refTag:
		return tagStyle.Render(c.name)
	case refRemoteBranch:
		return remoteStyle.Render(c.name)
	default:
		return c.name
	}
}

// SearchString returns the ref name.
func (c *RefCompletion) SearchString() string { return c.name }

// GitBranch lists the refs of the repository in the working directory. One
// git invocation produces everything, so the source is synchronous-finite:
// FetchingFinished is true from the start and the single fetch does all the
// work. A failing git invocation yields zero candidates, never an error.
type GitBranch struct {
	fetched bool
}

// NewGitBranch creates the ref completer.
func NewGitBranch() *GitBranch {
	return &GitBranch{}
}

// Name returns "br".
func (g *GitBranch) Name() string { return "br" }

// FetchingFinished is always true; see the type comment.
func (g *GitBranch) FetchingFinished() bool { return true }

// FetchCompletions lists HEAD plus every ref known to the repository.
func (g *GitBranch) FetchCompletions() []completion.Completion {
	if g.fetched {
		return nil
	}
	g.fetched = true

	out, err := gitOutput("for-each-ref", "--format=%(objecttype) %(refname:strip=2)")
	if err != nil {
		return nil
	}

	completions := []completion.Completion{
		&RefCompletion{kind: refHead, name: "HEAD"},
	}
	for _, line := range strings.Split(string(out), "\n") {
		if ref := parseRefLine(line); ref != nil {
			completions = append(completions, ref)
		}
	}
	return completions
}

// Descend lists the commits reachable from the selected ref. Tags stay
// leaves.
func (g *GitBranch) Descend(selected completion.Completion) completion.Completer {
	ref, ok := selected.(*RefCompletion)
	if !ok || ref.kind == refTag {
		return nil
	}
	return NewGitCommit(ref.name)
}

// Ascend returns nil; the ref list is the top of the hierarchy.
func (g *GitBranch) Ascend() completion.Completer { return nil }

// parseRefLine turns one "objecttype refname" line into a completion, or
// nil for lines that do not parse.
func parseRefLine(line string) *RefCompletion {
	fields := strings.Fields(line)
	if len(fields) < 2 {
		return nil
	}
	objectType, refName := fields[0], fields[1]

	kind := refTag
	if objectType == "commit" {
		kind = refBranch
		if strings.Contains(refName, "/") {
			kind = refRemoteBranch
		}
	}
	return &RefCompletion{kind: kind, name: refName}
}

// CommitCompletion is one commit on a ref. It is ranked on its subject line
// while the accepted result is the abbreviated hash.
type CommitCompletion struct {
	hash    string
	date    string
	author  string
	subject string
}

// ResultString returns the abbreviated commit hash.
func (c *CommitCompletion) ResultString() string { return c.hash }

// DisplayString lines up hash, date, author and subject in columns.
func (c *CommitCompletion) DisplayString() string {
	return fmt.Sprintf("%-10s %-12s %-25s %s", c.hash, c.date, c.author, c.subject)
}

// SearchString returns the commit subject.
func (c *CommitCompletion) SearchString() string { return c.subject }

// GitCommit lists the commits reachable from one ref, synchronous-finite
// like GitBranch.
type GitCommit struct {
	ref     string
	fetched bool
}

// NewGitCommit creates a commit completer for the given ref.
func NewGitCommit(ref string) *GitCommit {
	return &GitCommit{ref: ref}
}

// Name returns "co".
func (g *GitCommit) Name() string { return "co" }

// FetchingFinished is always true.
func (g *GitCommit) FetchingFinished() bool { return true }

// FetchCompletions runs git log once for the ref.
func (g *GitCommit) FetchCompletions() []completion.Completion {
	if g.fetched {
		return nil
	}
	g.fetched = true

	out, err := gitOutput("log", "--format=%h%x09%ad%x09%an%x09%s", "--date=short", g.ref)
	if err != nil {
		return nil
	}

	var completions []completion.Completion
	for _, line := range strings.Split(string(out), "\n") {
		if c := parseLogLine(line); c != nil {
			completions = append(completions, c)
		}
	}
	return completions
}

// Descend returns nil; commits are leaves.
func (g *GitCommit) Descend(completion.Completion) completion.Completer { return nil }

// Ascend returns nil; the parent ref view stays on the stack below.
func (g *GitCommit) Ascend() completion.Completer { return nil }

// parseLogLine splits one tab-separated "hash date author subject" line.
func parseLogLine(line string) *CommitCompletion {
	fields := strings.SplitN(line, "\t", 4)
	if len(fields) < 4 {
		return nil
	}
	return &CommitCompletion{
		hash:    fields[0],
		date:    fields[1],
		author:  fields[2],
		subject: fields[3],
	}
}
