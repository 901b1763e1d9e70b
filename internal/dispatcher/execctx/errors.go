package execctx

import "errors"

// Execution context errors. Handlers return these to fail a command
// without touching the document.
var (
	// ErrNotFound indicates a search, character or pair was not found.
	ErrNotFound = errors.New("execution context: not found")

	// ErrOutOfRange indicates a position outside the document.
	ErrOutOfRange = errors.New("execution context: position out of range")

	// ErrEmptyRegister indicates a paste from an empty register.
	ErrEmptyRegister = errors.New("execution context: register is empty")

	// ErrMissingHistory indicates undo or redo without a history.
	ErrMissingHistory = errors.New("execution context: history is required")

	// ErrMissingRegisters indicates a register access without a store.
	ErrMissingRegisters = errors.New("execution context: registers are required")

	// ErrInvalidMark indicates an unknown or unset mark.
	ErrInvalidMark = errors.New("execution context: invalid mark")
)
