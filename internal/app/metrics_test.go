package app

import (
	"testing"
	"time"
)

func TestNewMetrics(t *testing.T) {
	m := NewMetrics()
	if m == nil {
		t.Fatal("NewMetrics() returned nil")
	}

	snapshot := m.Snapshot()
	if snapshot.InputCount != 0 || snapshot.DrawCount != 0 {
		t.Errorf("expected empty snapshot, got %+v", snapshot)
	}
}

func TestMetrics_RecordInput(t *testing.T) {
	m := NewMetrics()

	m.RecordInput(1 * time.Millisecond)
	m.RecordInput(3 * time.Millisecond)
	m.RecordInputDropped()

	snapshot := m.Snapshot()
	if snapshot.InputCount != 2 {
		t.Errorf("expected 2 inputs, got %d", snapshot.InputCount)
	}
	if snapshot.AvgInputTimeNs != int64(2*time.Millisecond) {
		t.Errorf("expected avg 2ms, got %d ns", snapshot.AvgInputTimeNs)
	}
	if snapshot.MaxInputTimeNs != int64(3*time.Millisecond) {
		t.Errorf("expected max 3ms, got %d ns", snapshot.MaxInputTimeNs)
	}
	if snapshot.InputDropped != 1 {
		t.Errorf("expected 1 dropped input, got %d", snapshot.InputDropped)
	}
}

func TestMetrics_RecordDraw(t *testing.T) {
	m := NewMetrics()

	m.RecordDraw(4 * time.Millisecond)
	m.RecordDraw(6 * time.Millisecond)

	snapshot := m.Snapshot()
	if snapshot.DrawCount != 2 {
		t.Errorf("expected 2 draws, got %d", snapshot.DrawCount)
	}
	if snapshot.AvgDrawNs != int64(5*time.Millisecond) {
		t.Errorf("expected avg 5ms, got %d ns", snapshot.AvgDrawNs)
	}
}

func TestMetrics_RecordReload(t *testing.T) {
	m := NewMetrics()

	m.RecordReload(true)
	m.RecordReload(false)

	snapshot := m.Snapshot()
	if snapshot.ReloadCount != 2 || snapshot.ReloadFailures != 1 {
		t.Errorf("reloads = %d/%d failures, want 2/1", snapshot.ReloadCount, snapshot.ReloadFailures)
	}
}

func TestMetrics_Reset(t *testing.T) {
	m := NewMetrics()

	m.RecordInput(time.Millisecond)
	m.RecordDraw(time.Millisecond)
	m.RecordReload(false)
	m.Reset()

	snapshot := m.Snapshot()
	if snapshot.InputCount != 0 || snapshot.DrawCount != 0 || snapshot.ReloadCount != 0 || snapshot.MaxInputTimeNs != 0 {
		t.Errorf("expected cleared metrics, got %+v", snapshot)
	}
}

func TestTimer(t *testing.T) {
	timer := StartTimer()
	time.Sleep(2 * time.Millisecond)

	elapsed := timer.Stop()
	if elapsed < 2*time.Millisecond {
		t.Errorf("expected at least 2ms, got %v", elapsed)
	}
	if timer.Elapsed() >= elapsed {
		t.Error("expected Stop() to reset the timer")
	}
}
