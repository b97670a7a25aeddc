package app

import (
	"github.com/dshills/richline/internal/renderer/backend"
)

// eventLoop runs backend events on the calling goroutine until the user
// quits or Shutdown is called.
func (app *Application) eventLoop() error {
	events := app.startInputPolling()

	for {
		select {
		case <-app.done:
			return nil

		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if err := app.handleBackendEvent(ev); err != nil {
				return err
			}
		}
	}
}

// handleBackendEvent processes a backend event and routes it appropriately.
// Returns ErrQuit if the application should exit.
func (app *Application) handleBackendEvent(ev backend.Event) error {
	switch ev.Type {
	case backend.EventInterrupt:
		if ev.Callback != nil {
			ev.Callback()
		}
		app.draw()
		return nil

	case backend.EventKey:
		switch ev.Key {
		case backend.KeyCtrlQ, backend.KeyCtrlC:
			return ErrQuit
		case backend.KeyCtrlL:
			app.draw()
			return nil
		}
	}

	timer := StartTimer()
	handled, err := app.terminal.HandleEvent(ev)
	app.metrics.RecordInput(timer.Elapsed())
	if err != nil {
		app.log.Warn("input: %v", err)
	}
	if handled {
		app.draw()
	}
	return nil
}

// startInputPolling starts a goroutine that polls for input events.
// Events are sent to the returned channel.
//
// PollEvent is blocking, so the goroutine only exits once the backend has
// been shut down and the application has stopped running.
func (app *Application) startInputPolling() <-chan backend.Event {
	events := make(chan backend.Event, 100)
	b := app.backend

	go func() {
		defer close(events)

		for {
			ev := b.PollEvent()
			if ev.Type == backend.EventNone {
				if !app.IsRunning() {
					return
				}
				continue
			}

			select {
			case events <- ev:
			case <-app.done:
				return
			default:
				// Buffer full, drop event to prevent blocking.
				app.metrics.RecordInputDropped()
			}
		}
	}()

	return events
}
