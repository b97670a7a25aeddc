package app

import (
	"sync/atomic"
	"time"
)

// Metrics tracks event loop timings.
type Metrics struct {
	// Input handling
	inputCount   atomic.Uint64
	inputTotalNs atomic.Int64
	inputMaxNs   atomic.Int64
	inputDropped atomic.Uint64

	// Drawing
	drawCount   atomic.Uint64
	drawTotalNs atomic.Int64

	// Hot reloads
	reloadCount    atomic.Uint64
	reloadFailures atomic.Uint64

	// Start time for uptime calculation
	startTime time.Time
}

// NewMetrics creates a new metrics tracker.
func NewMetrics() *Metrics {
	return &Metrics{startTime: time.Now()}
}

// RecordInput records the time spent handling one input event.
func (m *Metrics) RecordInput(duration time.Duration) {
	ns := duration.Nanoseconds()
	m.inputCount.Add(1)
	m.inputTotalNs.Add(ns)

	for {
		old := m.inputMaxNs.Load()
		if ns <= old {
			break
		}
		if m.inputMaxNs.CompareAndSwap(old, ns) {
			break
		}
	}
}

// RecordInputDropped records an input event lost to a full queue.
func (m *Metrics) RecordInputDropped() {
	m.inputDropped.Add(1)
}

// RecordDraw records the time spent drawing the surface.
func (m *Metrics) RecordDraw(duration time.Duration) {
	m.drawCount.Add(1)
	m.drawTotalNs.Add(duration.Nanoseconds())
}

// RecordReload records a hot reload and whether it succeeded.
func (m *Metrics) RecordReload(ok bool) {
	m.reloadCount.Add(1)
	if !ok {
		m.reloadFailures.Add(1)
	}
}

// Snapshot returns a snapshot of current metrics.
func (m *Metrics) Snapshot() MetricsSnapshot {
	inputCount := m.inputCount.Load()
	drawCount := m.drawCount.Load()

	var avgInputNs int64
	if inputCount > 0 {
		avgInputNs = m.inputTotalNs.Load() / int64(inputCount)
	}

	var avgDrawNs int64
	if drawCount > 0 {
		avgDrawNs = m.drawTotalNs.Load() / int64(drawCount)
	}

	return MetricsSnapshot{
		Uptime:         time.Since(m.startTime),
		InputCount:     inputCount,
		AvgInputTimeNs: avgInputNs,
		MaxInputTimeNs: m.inputMaxNs.Load(),
		InputDropped:   m.inputDropped.Load(),
		DrawCount:      drawCount,
		AvgDrawNs:      avgDrawNs,
		ReloadCount:    m.reloadCount.Load(),
		ReloadFailures: m.reloadFailures.Load(),
	}
}

// Reset clears all metrics.
func (m *Metrics) Reset() {
	m.inputCount.Store(0)
	m.inputTotalNs.Store(0)
	m.inputMaxNs.Store(0)
	m.inputDropped.Store(0)
	m.drawCount.Store(0)
	m.drawTotalNs.Store(0)
	m.reloadCount.Store(0)
	m.reloadFailures.Store(0)
	m.startTime = time.Now()
}

// MetricsSnapshot is a point-in-time view of metrics.
type MetricsSnapshot struct {
	Uptime         time.Duration
	InputCount     uint64
	AvgInputTimeNs int64
	MaxInputTimeNs int64
	InputDropped   uint64
	DrawCount      uint64
	AvgDrawNs      int64
	ReloadCount    uint64
	ReloadFailures uint64
}

// Timer provides a simple way to measure elapsed time.
type Timer struct {
	start time.Time
}

// StartTimer creates a new timer.
func StartTimer() *Timer {
	return &Timer{start: time.Now()}
}

// Elapsed returns the elapsed time since the timer started.
func (t *Timer) Elapsed() time.Duration {
	return time.Since(t.start)
}

// Stop returns the elapsed time and resets the timer.
func (t *Timer) Stop() time.Duration {
	elapsed := t.Elapsed()
	t.start = time.Now()
	return elapsed
}
