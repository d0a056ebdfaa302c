// Package completers contains the built-in completion sources: the
// background directory walker, the git branch/commit listers and a trivial
// number generator used in tests and demos.
package completers

import (
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"

	"github.com/saf/completers/internal/completion"
)

// DefaultDirDepthLimit bounds the breadth-first directory walk.
const DefaultDirDepthLimit = 4

var dirStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))

type fsEntryKind int

const (
	fsEntryFile fsEntryKind = iota
	fsEntryDir
)

// FsCompletion is one filesystem entry, carrying the path relative to the
// directory the walk started from.
type FsCompletion struct {
	path string
	kind fsEntryKind
}

// ResultString returns the entry path.
func (c *FsCompletion) ResultString() string { return c.path }

// DisplayString renders directories in blue.
func (c *FsCompletion) DisplayString() string {
	if c.kind == fsEntryDir {
		return dirStyle.Render(c.path)
	}
	return c.path
}

// SearchString returns the entry path.
func (c *FsCompletion) SearchString() string { return c.path }

// fetchBatch is one response from the walker goroutine. done means no
// further batches will ever come.
type fetchBatch struct {
	completions []completion.Completion
	done        bool
}

// dirQueueEntry is a directory waiting to be scanned, with its depth in the
// walk.
type dirQueueEntry struct {
	path  string
	depth int
}

// Dir completes file names under a root directory. Scanning happens on a
// background goroutine: breadth-first across subdirectories so a directory
// level is reported before its children, skipping dot-entries and bounded
// by a depth limit. The goroutine owns the scan state and shares nothing
// with the engine; batches transfer over a request/response channel pair.
type Dir struct {
	root       string
	depthLimit int

	requests  chan struct{}
	responses chan fetchBatch
	wg        sync.WaitGroup

	finished bool
	closed   bool
}

// NewDir starts a walker rooted at the given directory.
func NewDir(root string, depthLimit int) *Dir {
	d := &Dir{
		root:       root,
		depthLimit: depthLimit,
		requests:   make(chan struct{}),
		responses:  make(chan fetchBatch),
	}
	d.wg.Add(1)
	go d.walk()
	return d
}

// Name returns "fs".
func (d *Dir) Name() string { return "fs" }

// FetchingFinished reports whether the walker has delivered everything.
func (d *Dir) FetchingFinished() bool { return d.finished }

// FetchCompletions sends one request to the walker and blocks for its
// response: whatever entries accumulated since the last call. Once the
// walker signals completion it is joined and further calls return nothing.
func (d *Dir) FetchCompletions() []completion.Completion {
	if d.finished || d.closed {
		return nil
	}
	d.requests <- struct{}{}
	batch := <-d.responses
	if batch.done {
		d.finished = true
		close(d.requests)
		d.wg.Wait()
	}
	return batch.completions
}

// Close abandons the walk. The walker notices the closed request channel at
// its next checkpoint and exits on its own; it is not waited on.
func (d *Dir) Close() error {
	if d.finished || d.closed {
		return nil
	}
	d.closed = true
	close(d.requests)
	return nil
}

// Descend enters the selected completion when it is a directory.
func (d *Dir) Descend(selected completion.Completion) completion.Completer {
	fsc, ok := selected.(*FsCompletion)
	if !ok || fsc.kind != fsEntryDir {
		return nil
	}
	// Entry paths already carry the walk root as their prefix.
	return NewDir(fsc.path, d.depthLimit)
}

// Ascend returns a walker over the parent directory: "." becomes "..",
// a ".."-chain grows by one level (snapping to "/" when it reaches it) and
// absolute roots walk up. A walker over a named subdirectory has no parent
// of its own; popping the stack level above it is the way back.
func (d *Dir) Ascend() completion.Completer {
	switch {
	case d.root == ".":
		return NewDir("..", d.depthLimit)
	case filepath.Base(d.root) == "..":
		parent := filepath.Join(d.root, "..")
		if abs, err := filepath.Abs(parent); err == nil && abs == "/" {
			parent = "/"
		}
		return NewDir(parent, d.depthLimit)
	case filepath.IsAbs(d.root):
		parent := filepath.Dir(d.root)
		if parent == d.root {
			return nil
		}
		return NewDir(parent, d.depthLimit)
	default:
		return nil
	}
}

// walk is the background scan loop. Between directory scans it polls the
// request channel without blocking; once the queue drains it serves the
// remaining entries and then the done signal. A closed request channel
// means the level was discarded and the walk stops where it is.
func (d *Dir) walk() {
	defer d.wg.Done()

	queue := []dirQueueEntry{{path: d.root, depth: 0}}
	var pending []completion.Completion

	for len(queue) > 0 {
		entry := queue[0]
		queue = queue[1:]
		pending = append(pending, scanDir(entry, &queue, d.depthLimit)...)

		select {
		case _, ok := <-d.requests:
			if !ok {
				return
			}
			d.responses <- fetchBatch{completions: pending}
			pending = nil
		default:
		}
	}

	if _, ok := <-d.requests; !ok {
		return
	}
	d.responses <- fetchBatch{completions: pending}

	if _, ok := <-d.requests; !ok {
		return
	}
	d.responses <- fetchBatch{done: true}
}

// scanDir lists one directory, queues its subdirectories for later levels
// and returns its visible entries. Unreadable directories contribute
// nothing. os.ReadDir returns entries sorted by name.
func scanDir(entry dirQueueEntry, queue *[]dirQueueEntry, depthLimit int) []completion.Completion {
	dirEntries, err := os.ReadDir(entry.path)
	if err != nil {
		return nil
	}

	completions := make([]completion.Completion, 0, len(dirEntries))
	for _, de := range dirEntries {
		if strings.HasPrefix(de.Name(), ".") {
			continue
		}
		path := filepath.Join(entry.path, de.Name())
		kind := fsEntryFile
		if de.IsDir() {
			kind = fsEntryDir
			if entry.depth < depthLimit {
				*queue = append(*queue, dirQueueEntry{path: path, depth: entry.depth + 1})
			}
		}
		completions = append(completions, &FsCompletion{path: path, kind: kind})
	}
	return completions
}
