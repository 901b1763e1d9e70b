package plugin

import "errors"

// Plugin system errors.
var (
	// ErrHostClosed is returned after Close.
	ErrHostClosed = errors.New("plugin host is closed")

	// ErrInvalidSpec is returned when modal.motion or modal.action gets a
	// malformed spec table.
	ErrInvalidSpec = errors.New("invalid plugin spec")

	// ErrBadReturn is returned when a callback returns a value of the
	// wrong shape.
	ErrBadReturn = errors.New("plugin callback returned an invalid value")
)
