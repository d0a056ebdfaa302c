// Package cli implements the completers commands: the interactive complete
// flow plus config validation and schema export.
package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/saf/completers/internal/completers"
	"github.com/saf/completers/internal/completion"
	"github.com/saf/completers/internal/config"
	"github.com/saf/completers/internal/logger"
	"github.com/saf/completers/internal/timing"
	"github.com/saf/completers/internal/ui"
)

// CompleteParams contains parameters for the Complete command.
type CompleteParams struct {
	// Line is the command line being edited; Point is the byte offset of
	// the cursor within it.
	Line  string
	Point int

	ConfigPath string
	LogLevel   string
	LogFile    string
}

// Complete runs one interactive completion session over the word under the
// cursor and prints the edited line to stdout as "<new-point> <new-line>"
// for the shell integration to read back.
func Complete(p CompleteParams) error {
	timer := timing.NewTimer()

	var logOutput io.Writer = io.Discard
	if p.LogFile != "" {
		if f, err := logger.OpenFile(p.LogFile); err == nil {
			defer func() { _ = f.Close() }()
			logOutput = f
		}
	}
	log := logger.New(p.LogLevel, logOutput)

	configPath := p.ConfigPath
	if configPath == "" {
		configPath = config.Locate()
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	timer.Mark("config")

	start, end := queryRange(p.Line, p.Point, cfg.WordBoundaries)
	query := p.Line[start:end]

	log.Debug().
		Str("line", p.Line).
		Int("point", p.Point).
		Str("query", query).
		Msg("starting session")

	result, err := ui.Run(query, ui.SessionParams{
		Completers:   buildCompleters(query, cfg),
		Engine:       cfg.EngineParams(),
		PollInterval: cfg.PollInterval(),
		Log:          log,
	})
	if err != nil {
		return err
	}
	timer.Mark("session")
	log.Debug().Str("timing", timer.Summary()).Str("result", result).Msg("session done")

	// The shell integration reads the new cursor position and the rewritten
	// line from stderr. The chooser itself only ever drew on /dev/tty.
	fmt.Fprintf(os.Stderr, "%d %s\n", start+len(result), p.Line[:start]+result+p.Line[end:])
	return nil
}

// queryRange locates the word under the cursor: the span between the
// closest boundary characters on each side of point. Point is clamped to
// the line.
func queryRange(line string, point int, boundaries string) (start, end int) {
	point = max(min(point, len(line)), 0)

	start = point
	for start > 0 && !strings.ContainsRune(boundaries, rune(line[start-1])) {
		start--
	}
	end = point
	for end < len(line) && !strings.ContainsRune(boundaries, rune(line[end])) {
		end++
	}
	return start, end
}

// buildCompleters instantiates the configured completion sources. An
// absolute query seeds the directory walker so completing deep paths does
// not depend on the working directory.
func buildCompleters(query string, cfg *config.Config) []completion.Completer {
	sources := make([]completion.Completer, 0, len(cfg.Completers))
	for _, name := range cfg.Completers {
		switch name {
		case "fs":
			root := "."
			if filepath.IsAbs(query) {
				root = query
			}
			sources = append(sources, completers.NewDir(root, cfg.Fs.DepthLimit))
		case "git":
			sources = append(sources, completers.NewGitBranch())
		case "num":
			sources = append(sources, completers.NewNumbers(100))
		}
	}
	return sources
}
