package dispatcher

import (
	"context"
	"log/slog"

	"github.com/dshills/modalkit/internal/dispatcher/handler"
	"github.com/dshills/modalkit/internal/input/vim"
)

// PreExecuteHook is called before a command runs. It may rewrite the
// command; returning false cancels it.
type PreExecuteHook interface {
	PreExecute(cmd *vim.Normalized) bool
}

// PostExecuteHook is called after a command finishes. It may inspect or
// modify the result.
type PostExecuteHook interface {
	PostExecute(cmd vim.Normalized, result *handler.Result)
}

// PreExecuteFunc is a function adapter for PreExecuteHook.
type PreExecuteFunc func(cmd *vim.Normalized) bool

// PreExecute implements PreExecuteHook.
func (f PreExecuteFunc) PreExecute(cmd *vim.Normalized) bool {
	return f(cmd)
}

// PostExecuteFunc is a function adapter for PostExecuteHook.
type PostExecuteFunc func(cmd vim.Normalized, result *handler.Result)

// PostExecute implements PostExecuteHook.
func (f PostExecuteFunc) PostExecute(cmd vim.Normalized, result *handler.Result) {
	f(cmd, result)
}

// LoggingHook logs every command and its outcome at debug level, and
// failures at info.
type LoggingHook struct {
	Logger *slog.Logger
}

// NewLoggingHook creates a logging hook.
func NewLoggingHook(logger *slog.Logger) *LoggingHook {
	return &LoggingHook{Logger: logger}
}

// PreExecute logs the command.
func (h *LoggingHook) PreExecute(cmd *vim.Normalized) bool {
	h.Logger.Debug("executing command", "command", cmd.Command.String(), "count", cmd.Count, "register", string(cmd.Register))
	return true
}

// PostExecute logs the result.
func (h *LoggingHook) PostExecute(cmd vim.Normalized, result *handler.Result) {
	level := slog.LevelDebug
	if result.Status == handler.StatusFailed || result.Status == handler.StatusError {
		level = slog.LevelInfo
	}
	attrs := []any{"command", cmd.Command.String(), "status", result.Status.String()}
	if result.Error != nil {
		attrs = append(attrs, "error", result.Error)
	}
	h.Logger.Log(context.Background(), level, "command finished", attrs...)
}

// CountLimitHook caps the effective count of every command.
type CountLimitHook struct {
	MaxCount int
}

// PreExecute clamps the count.
func (h CountLimitHook) PreExecute(cmd *vim.Normalized) bool {
	if h.MaxCount > 0 && cmd.Count > h.MaxCount {
		cmd.Count = h.MaxCount
	}
	return true
}
