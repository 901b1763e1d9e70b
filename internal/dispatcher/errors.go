package dispatcher

import "errors"

// Executor errors.
var (
	// ErrNoHandler indicates a command has no registered implementation.
	ErrNoHandler = errors.New("dispatcher: no handler for command")

	// ErrNoTarget indicates a motion or text object found no range.
	ErrNoTarget = errors.New("dispatcher: no target")

	// ErrExecution indicates a handler panicked. The document is unchanged.
	ErrExecution = errors.New("dispatcher: execution error")

	// ErrReentrant indicates Execute was called while a command was running.
	ErrReentrant = errors.New("dispatcher: executor is busy")

	// ErrEditorNotSet indicates Execute was called before SetEditor.
	ErrEditorNotSet = errors.New("dispatcher: editor not set")

	// ErrNotInserting indicates an insert call outside insert mode.
	ErrNotInserting = errors.New("dispatcher: not in insert mode")

	// ErrCancelled indicates a pre-execute hook cancelled the command.
	ErrCancelled = errors.New("dispatcher: command cancelled by hook")
)
