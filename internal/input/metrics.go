package input

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/dshills/modalkit/internal/dispatcher/handler"
	"github.com/dshills/modalkit/internal/input/vim"
)

// Metrics tracks input processing counts and latency.
type Metrics struct {
	// Event counters
	keyEventsTotal   atomic.Uint64
	commandsTotal    atomic.Uint64
	invalidTotal     atomic.Uint64
	failedTotal      atomic.Uint64
	sequenceTimeouts atomic.Uint64
	hookConsumptions atomic.Uint64

	// Latency tracking
	mu                sync.Mutex
	keyLatencies      []time.Duration
	maxLatencySamples int
	latencyIdx        int
	samples           int

	// Peak latency (all time)
	peakKeyLatency atomic.Int64

	// Start time for uptime calculation
	startTime time.Time
}

// NewMetrics creates a new metrics tracker.
func NewMetrics() *Metrics {
	return &Metrics{
		keyLatencies:      make([]time.Duration, 1000),
		maxLatencySamples: 1000,
		startTime:         time.Now(),
	}
}

// RecordKeyEvent records a handled key with its processing time.
func (m *Metrics) RecordKeyEvent(latency time.Duration, out Outcome) {
	m.keyEventsTotal.Add(1)
	if out.Command != nil {
		m.commandsTotal.Add(1)
	}
	if out.Status == vim.ParseInvalid && !out.Cancelled && out.Result == nil {
		m.invalidTotal.Add(1)
	}
	if out.Result != nil && (out.Result.Status == handler.StatusFailed || out.Result.Status == handler.StatusError) {
		m.failedTotal.Add(1)
	}

	// Update peak latency
	latencyNs := latency.Nanoseconds()
	for {
		current := m.peakKeyLatency.Load()
		if latencyNs <= current {
			break
		}
		if m.peakKeyLatency.CompareAndSwap(current, latencyNs) {
			break
		}
	}

	// Store in circular buffer
	m.mu.Lock()
	m.keyLatencies[m.latencyIdx] = latency
	m.latencyIdx = (m.latencyIdx + 1) % m.maxLatencySamples
	m.samples = min(m.samples+1, m.maxLatencySamples)
	m.mu.Unlock()
}

// RecordSequenceTimeout records a key buffer expiry.
func (m *Metrics) RecordSequenceTimeout() {
	m.sequenceTimeouts.Add(1)
}

// RecordHookConsumption records a key swallowed by a hook.
func (m *Metrics) RecordHookConsumption() {
	m.hookConsumptions.Add(1)
}

// MetricsSnapshot is a point-in-time copy of the metrics.
type MetricsSnapshot struct {
	KeyEventsTotal   uint64
	CommandsTotal    uint64
	InvalidTotal     uint64
	FailedTotal      uint64
	SequenceTimeouts uint64
	HookConsumptions uint64

	AvgKeyLatency  time.Duration
	PeakKeyLatency time.Duration

	Uptime time.Duration
}

// Snapshot returns the current metrics.
func (m *Metrics) Snapshot() MetricsSnapshot {
	s := MetricsSnapshot{
		KeyEventsTotal:   m.keyEventsTotal.Load(),
		CommandsTotal:    m.commandsTotal.Load(),
		InvalidTotal:     m.invalidTotal.Load(),
		FailedTotal:      m.failedTotal.Load(),
		SequenceTimeouts: m.sequenceTimeouts.Load(),
		HookConsumptions: m.hookConsumptions.Load(),
		PeakKeyLatency:   time.Duration(m.peakKeyLatency.Load()),
		Uptime:           time.Since(m.startTime),
	}

	m.mu.Lock()
	var total time.Duration
	for i := 0; i < m.samples; i++ {
		total += m.keyLatencies[i]
	}
	if m.samples > 0 {
		s.AvgKeyLatency = total / time.Duration(m.samples)
	}
	m.mu.Unlock()
	return s
}

// Reset clears all metrics.
func (m *Metrics) Reset() {
	m.keyEventsTotal.Store(0)
	m.commandsTotal.Store(0)
	m.invalidTotal.Store(0)
	m.failedTotal.Store(0)
	m.sequenceTimeouts.Store(0)
	m.hookConsumptions.Store(0)
	m.peakKeyLatency.Store(0)

	m.mu.Lock()
	m.latencyIdx = 0
	m.samples = 0
	m.startTime = time.Now()
	m.mu.Unlock()
}
