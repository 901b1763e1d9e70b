package handler

import (
	"fmt"

	"github.com/dshills/modalkit/internal/dispatcher/execctx"
	"github.com/dshills/modalkit/internal/engine/buffer"
)

// ResultStatus indicates the outcome of a command.
type ResultStatus uint8

const (
	// StatusOK indicates the command ran and was committed.
	StatusOK ResultStatus = iota
	// StatusNoOp indicates the command had nothing to do.
	StatusNoOp
	// StatusFailed indicates the target could not be resolved or the
	// command declined to run. Nothing was changed.
	StatusFailed
	// StatusError indicates the command broke. Nothing was changed.
	StatusError
)

// String returns a string representation of the status.
func (s ResultStatus) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusNoOp:
		return "no-op"
	case StatusFailed:
		return "failed"
	case StatusError:
		return "error"
	default:
		return "unknown"
	}
}

// Result represents the outcome of executing a command.
type Result struct {
	// Status indicates the result status.
	Status ResultStatus

	// Error contains any error that occurred.
	Error error

	// Message is an optional status message for display.
	Message string

	// Edited is true when the document text changed.
	Edited bool

	// Cursor is the cursor after the command.
	Cursor buffer.Position

	// ModeChange indicates a mode transition (empty if no change).
	ModeChange string

	// Scroll asks the view to reposition.
	Scroll execctx.ScrollHint
}

// IsOK returns true if the result indicates success.
func (r Result) IsOK() bool {
	return r.Status == StatusOK
}

// Success creates a successful result.
func Success() Result {
	return Result{Status: StatusOK}
}

// NoOp creates a no-operation result.
func NoOp() Result {
	return Result{Status: StatusNoOp}
}

// NoOpWithMessage creates a no-operation result with a message.
func NoOpWithMessage(msg string) Result {
	return Result{Status: StatusNoOp, Message: msg}
}

// Failed creates a failed result.
func Failed(err error) Result {
	return Result{Status: StatusFailed, Error: err}
}

// Error creates an error result.
func Error(err error) Result {
	return Result{Status: StatusError, Error: err}
}

// Errorf creates an error result with a formatted message.
func Errorf(format string, args ...interface{}) Result {
	return Result{
		Status: StatusError,
		Error:  fmt.Errorf(format, args...),
	}
}

// WithMessage returns a copy of the result with the specified message.
func (r Result) WithMessage(msg string) Result {
	r.Message = msg
	return r
}

// WithModeChange returns a copy of the result with a mode change.
func (r Result) WithModeChange(mode string) Result {
	r.ModeChange = mode
	return r
}

// WithCursor returns a copy of the result with the final cursor.
func (r Result) WithCursor(pos buffer.Position) Result {
	r.Cursor = pos
	return r
}
