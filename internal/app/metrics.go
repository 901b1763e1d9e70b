package app

import (
	"github.com/dshills/modalkit/internal/dispatcher"
	"github.com/dshills/modalkit/internal/input"
)

// Stats combines key handling and command execution metrics.
type Stats struct {
	Input    input.MetricsSnapshot
	Commands dispatcher.MetricsSnapshot
}

// Stats returns the session's metrics.
func (a *App) Stats() Stats {
	var s Stats
	if m := a.input.Metrics(); m != nil {
		s.Input = m.Snapshot()
	}
	if m := a.exec.Metrics(); m != nil {
		s.Commands = m.Snapshot()
	}
	return s
}
