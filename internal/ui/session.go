package ui

import (
	"time"

	"github.com/saf/completers/internal/completion"
	"github.com/saf/completers/internal/engine"
	"github.com/saf/completers/internal/logger"
	"github.com/saf/completers/internal/timing"
)

// SessionParams configures one interactive chooser run.
type SessionParams struct {
	Completers   []completion.Completer
	Engine       engine.Params
	PollInterval time.Duration
	Log          *logger.Logger
}

// Run drives one chooser session and returns the text the user settled on:
// the selected completion's result on confirm, the initial query unchanged
// on cancel.
//
// Keyboard input is read by a dedicated goroutine so the main loop can keep
// polling background completers while the user thinks. The reader holds at
// most one outstanding read: the loop hands it a token, the reader answers
// with exactly one key. Reads from the tty cannot be interrupted, so the
// loop never asks for a key it is not prepared to wait for.
func Run(initialQuery string, p SessionParams) (string, error) {
	terminal, err := OpenTerminal()
	if err != nil {
		return "", err
	}
	defer func() { _ = terminal.Close() }()

	model := engine.NewModel(p.Completers, p.Engine)
	defer model.Close()
	model.QuerySet(initialQuery)
	model.StartFetchingCompletions()

	if err := terminal.MakeRaw(); err != nil {
		return "", err
	}
	defer func() { _ = terminal.Restore() }()

	requests := make(chan struct{})
	keys := make(chan Key)
	go readKeys(terminal.File(), requests, keys)
	defer close(requests)

	renderer := NewRenderer(terminal.File(), p.Engine.PageSize, terminal.Width)
	defer func() { _ = renderer.Clear() }()

	var meter timing.TickMeter
	defer func() {
		if p.Log != nil {
			p.Log.Debug().Str("fetch", meter.Summary()).Msg("session finished")
		}
	}()

	result := initialQuery
	requests <- struct{}{}

	for {
		if err := renderer.Render(model); err != nil {
			return "", err
		}

		var key Key
		var ok bool
		if model.FetchingFinished() {
			// Nothing left to poll, block on the keyboard.
			key, ok = <-keys
		} else {
			select {
			case key, ok = <-keys:
			case <-time.After(p.PollInterval):
				started := time.Now()
				model.FetchCompletions()
				meter.Observe(time.Since(started))
				continue
			}
		}
		if !ok {
			// The tty reached EOF under us.
			return result, nil
		}

		switch key.Kind {
		case KeyEnter:
			if selected, ok := model.SelectedResult(); ok {
				return selected, nil
			}
		case KeyCtrlC, KeyEscape:
			return result, nil
		case KeyUp:
			model.SelectPrevious()
		case KeyDown:
			model.SelectNext()
		case KeyPageUp:
			model.PreviousPage()
		case KeyPageDown:
			model.NextPage()
		case KeyHome:
			model.SelectFirst()
		case KeyEnd:
			model.SelectLast()
		case KeyLeft:
			model.Ascend()
		case KeyRight:
			model.Descend()
		case KeyTab:
			model.NextTab()
		case KeyBackspace:
			model.QueryBackspace()
		case KeyRune:
			model.QueryAppend(key.Rune)
		}

		requests <- struct{}{}
	}
}
