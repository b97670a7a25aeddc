package watcher

import (
	"sync"
	"time"
)

// debouncer coalesces events per path and fires each path once it has been
// quiet for the delay.
type debouncer struct {
	mu      sync.Mutex
	delay   time.Duration
	fire    func(Event)
	pending map[string]*pendingEvent
	stopped bool
}

type pendingEvent struct {
	event Event
	timer *time.Timer
}

func newDebouncer(delay time.Duration, fire func(Event)) *debouncer {
	return &debouncer{
		delay:   delay,
		fire:    fire,
		pending: make(map[string]*pendingEvent),
	}
}

// add records event, merging it with a pending event for the same path and
// restarting that path's timer.
func (d *debouncer) add(event Event) {
	if d.delay == 0 {
		d.fire(event)
		return
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopped {
		return
	}

	if p, exists := d.pending[event.Path]; exists {
		p.event.Op |= event.Op
		p.event.Timestamp = event.Timestamp
		p.timer.Reset(d.delay)
		return
	}

	path := event.Path
	d.pending[path] = &pendingEvent{
		event: event,
		timer: time.AfterFunc(d.delay, func() { d.flush(path) }),
	}
}

func (d *debouncer) flush(path string) {
	d.mu.Lock()
	p, exists := d.pending[path]
	if !exists || d.stopped {
		d.mu.Unlock()
		return
	}
	delete(d.pending, path)
	d.mu.Unlock()

	d.fire(p.event)
}

// stop cancels all pending events.
func (d *debouncer) stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stopped = true
	for path, p := range d.pending {
		p.timer.Stop()
		delete(d.pending, path)
	}
}

// pendingCount returns the number of paths waiting to fire.
func (d *debouncer) pendingCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.pending)
}
