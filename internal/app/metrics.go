package app

import (
	"sync/atomic"
	"time"
)

// Metrics times the event loop: how long events take to handle and
// frames take to draw.
type Metrics struct {
	eventCount   atomic.Uint64
	eventTotalNs atomic.Int64
	eventMaxNs   atomic.Int64

	renderCount   atomic.Uint64
	renderTotalNs atomic.Int64
	renderMaxNs   atomic.Int64

	reloads atomic.Uint64

	startTime time.Time
}

// NewMetrics creates a new metrics tracker.
func NewMetrics() *Metrics {
	return &Metrics{startTime: time.Now()}
}

// RecordEvent records the time spent handling one event.
func (m *Metrics) RecordEvent(d time.Duration) {
	m.eventCount.Add(1)
	m.eventTotalNs.Add(d.Nanoseconds())
	storeMax(&m.eventMaxNs, d.Nanoseconds())
}

// RecordRender records the time spent drawing one frame.
func (m *Metrics) RecordRender(d time.Duration) {
	m.renderCount.Add(1)
	m.renderTotalNs.Add(d.Nanoseconds())
	storeMax(&m.renderMaxNs, d.Nanoseconds())
}

// RecordReload counts an applied settings reload.
func (m *Metrics) RecordReload() {
	m.reloads.Add(1)
}

func storeMax(v *atomic.Int64, ns int64) {
	for {
		old := v.Load()
		if ns <= old || v.CompareAndSwap(old, ns) {
			return
		}
	}
}

// Snapshot returns a snapshot of current metrics.
func (m *Metrics) Snapshot() MetricsSnapshot {
	s := MetricsSnapshot{
		Uptime:      time.Since(m.startTime),
		EventCount:  m.eventCount.Load(),
		MaxEvent:    time.Duration(m.eventMaxNs.Load()),
		RenderCount: m.renderCount.Load(),
		MaxRender:   time.Duration(m.renderMaxNs.Load()),
		Reloads:     m.reloads.Load(),
	}
	if s.EventCount > 0 {
		s.AvgEvent = time.Duration(m.eventTotalNs.Load() / int64(s.EventCount))
	}
	if s.RenderCount > 0 {
		s.AvgRender = time.Duration(m.renderTotalNs.Load() / int64(s.RenderCount))
	}
	return s
}

// MetricsSnapshot is a point-in-time view of metrics.
type MetricsSnapshot struct {
	Uptime      time.Duration
	EventCount  uint64
	AvgEvent    time.Duration
	MaxEvent    time.Duration
	RenderCount uint64
	AvgRender   time.Duration
	MaxRender   time.Duration
	Reloads     uint64
}
