package dispatcher

import (
	"sort"
	"sync"
	"time"

	"github.com/dshills/modalkit/internal/dispatcher/handler"
)

// Metrics collects execution statistics per command name.
type Metrics struct {
	mu sync.RWMutex

	commands map[string]*CommandMetrics

	totalExecutions uint64
	totalFailures   uint64
	totalErrors     uint64
	totalPanics     uint64
	totalDuration   time.Duration
}

// CommandMetrics holds metrics for one command name.
type CommandMetrics struct {
	Name          string
	Executions    uint64
	Failures      uint64
	Errors        uint64
	TotalDuration time.Duration
	MinDuration   time.Duration
	MaxDuration   time.Duration
	LastStatus    handler.ResultStatus
	LastExecuted  time.Time
}

// NewMetrics creates a new metrics collector.
func NewMetrics() *Metrics {
	return &Metrics{commands: make(map[string]*CommandMetrics)}
}

// RecordExecute records one command execution.
func (m *Metrics) RecordExecute(name string, duration time.Duration, status handler.ResultStatus) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.totalExecutions++
	m.totalDuration += duration

	cm := m.commands[name]
	if cm == nil {
		cm = &CommandMetrics{Name: name, MinDuration: duration, MaxDuration: duration}
		m.commands[name] = cm
	}
	cm.Executions++
	cm.TotalDuration += duration
	cm.LastStatus = status
	cm.LastExecuted = time.Now()
	cm.MinDuration = min(cm.MinDuration, duration)
	cm.MaxDuration = max(cm.MaxDuration, duration)

	switch status {
	case handler.StatusFailed:
		m.totalFailures++
		cm.Failures++
	case handler.StatusError:
		m.totalErrors++
		cm.Errors++
	}
}

// RecordPanic records a recovered handler panic.
func (m *Metrics) RecordPanic(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.totalPanics++
}

// TotalExecutions returns the number of recorded executions.
func (m *Metrics) TotalExecutions() uint64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.totalExecutions
}

// TotalFailures returns the number of failed target resolutions.
func (m *Metrics) TotalFailures() uint64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.totalFailures
}

// TotalErrors returns the number of executions that ended in an error.
func (m *Metrics) TotalErrors() uint64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.totalErrors
}

// TotalPanics returns the number of recovered panics.
func (m *Metrics) TotalPanics() uint64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.totalPanics
}

// AverageDuration returns the mean execution time.
func (m *Metrics) AverageDuration() time.Duration {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.totalExecutions == 0 {
		return 0
	}
	return m.totalDuration / time.Duration(m.totalExecutions)
}

// CommandStats returns a copy of the metrics for one command, or nil.
func (m *Metrics) CommandStats(name string) *CommandMetrics {
	m.mu.RLock()
	defer m.mu.RUnlock()
	cm := m.commands[name]
	if cm == nil {
		return nil
	}
	c := *cm
	return &c
}

// TopCommands returns the n most executed commands.
func (m *Metrics) TopCommands(n int) []*CommandMetrics {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*CommandMetrics, 0, len(m.commands))
	for _, cm := range m.commands {
		c := *cm
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Executions != out[j].Executions {
			return out[i].Executions > out[j].Executions
		}
		return out[i].Name < out[j].Name
	})
	if n > len(out) {
		n = len(out)
	}
	return out[:n]
}

// Reset clears all metrics.
func (m *Metrics) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.commands = make(map[string]*CommandMetrics)
	m.totalExecutions = 0
	m.totalFailures = 0
	m.totalErrors = 0
	m.totalPanics = 0
	m.totalDuration = 0
}

// MetricsSnapshot is a point-in-time copy of the totals.
type MetricsSnapshot struct {
	TotalExecutions uint64
	TotalFailures   uint64
	TotalErrors     uint64
	TotalPanics     uint64
	AverageDuration time.Duration
	CommandCount    int
	Timestamp       time.Time
}

// Snapshot returns the current totals.
func (m *Metrics) Snapshot() MetricsSnapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s := MetricsSnapshot{
		TotalExecutions: m.totalExecutions,
		TotalFailures:   m.totalFailures,
		TotalErrors:     m.totalErrors,
		TotalPanics:     m.totalPanics,
		CommandCount:    len(m.commands),
		Timestamp:       time.Now(),
	}
	if m.totalExecutions > 0 {
		s.AverageDuration = m.totalDuration / time.Duration(m.totalExecutions)
	}
	return s
}

// AverageDuration returns the mean execution time of the command.
func (cm *CommandMetrics) AverageDuration() time.Duration {
	if cm.Executions == 0 {
		return 0
	}
	return cm.TotalDuration / time.Duration(cm.Executions)
}

// FailureRate returns the percentage of executions that failed or errored.
func (cm *CommandMetrics) FailureRate() float64 {
	if cm.Executions == 0 {
		return 0
	}
	return float64(cm.Failures+cm.Errors) / float64(cm.Executions) * 100
}
