package engine

// Default configuration values.
const (
	DefaultTabWidth       = 8
	DefaultShiftWidth     = 4
	DefaultMaxUndoEntries = 1000
)

// Option configures an Engine during creation.
type Option func(*Engine)

// WithContent sets the initial content of the engine.
func WithContent(content string) Option {
	return func(e *Engine) {
		e.initContent = content
	}
}

// WithTabWidth sets the display width of a tab.
func WithTabWidth(width int) Option {
	return func(e *Engine) {
		if width > 0 {
			e.tabWidth = width
		}
	}
}

// WithShiftWidth sets the indent step of > and <.
func WithShiftWidth(width int) Option {
	return func(e *Engine) {
		if width > 0 {
			e.shiftWidth = width
		}
	}
}

// WithExpandTab selects spaces (true) or tabs (false) for indentation.
func WithExpandTab(expand bool) Option {
	return func(e *Engine) {
		e.expandTab = expand
	}
}

// WithMaxUndoEntries sets the maximum number of undo history entries.
func WithMaxUndoEntries(max int) Option {
	return func(e *Engine) {
		if max > 0 {
			e.maxUndoEntries = max
		}
	}
}

// WithReadOnly creates a read-only engine.
// Write operations will return ErrReadOnly.
func WithReadOnly() Option {
	return func(e *Engine) {
		e.readOnly = true
	}
}
