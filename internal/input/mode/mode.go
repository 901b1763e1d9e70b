package mode

// Mode defines the interface for editor modes.
type Mode interface {
	// Name returns the unique mode identifier (e.g., "normal", "insert").
	Name() string

	// DisplayName returns a human-readable name for the status line.
	DisplayName() string

	// CursorStyle returns the cursor style for this mode.
	CursorStyle() CursorStyle

	// Enter is called when entering this mode.
	Enter(ctx *Context) error

	// Exit is called when leaving this mode.
	Exit(ctx *Context) error
}

// Context describes a mode transition.
type Context struct {
	// PreviousMode is the mode being transitioned from (for Enter).
	PreviousMode string

	// NextMode is the mode being transitioned to (for Exit).
	NextMode string
}

// CursorStyle defines the visual appearance of the cursor.
type CursorStyle uint8

const (
	// CursorBlock is a full-cell block cursor (normal mode).
	CursorBlock CursorStyle = iota

	// CursorBar is a thin vertical bar cursor (insert mode).
	CursorBar

	// CursorUnderline is an underline cursor.
	CursorUnderline

	// CursorHidden hides the cursor.
	CursorHidden
)

// String returns a human-readable cursor style name.
func (c CursorStyle) String() string {
	switch c {
	case CursorBlock:
		return "block"
	case CursorBar:
		return "bar"
	case CursorUnderline:
		return "underline"
	case CursorHidden:
		return "hidden"
	default:
		return "unknown"
	}
}

// Standard mode names. They match the names the executor requests.
const (
	ModeNormal  = "normal"
	ModeInsert  = "insert"
	ModeVisual  = "visual"
	ModeCommand = "command"
)

// basicMode is a mode with no enter or exit behavior.
type basicMode struct {
	name    string
	display string
	cursor  CursorStyle
}

// NewMode creates a mode with no enter or exit behavior.
func NewMode(name, display string, cursor CursorStyle) Mode {
	return &basicMode{name: name, display: display, cursor: cursor}
}

func (m *basicMode) Name() string             { return m.name }
func (m *basicMode) DisplayName() string      { return m.display }
func (m *basicMode) CursorStyle() CursorStyle { return m.cursor }
func (m *basicMode) Enter(*Context) error     { return nil }
func (m *basicMode) Exit(*Context) error      { return nil }

// NewNormalMode creates the normal mode.
func NewNormalMode() Mode { return NewMode(ModeNormal, "NORMAL", CursorBlock) }

// NewInsertMode creates the insert mode.
func NewInsertMode() Mode { return NewMode(ModeInsert, "INSERT", CursorBar) }

// NewVisualMode creates the visual mode.
func NewVisualMode() Mode { return NewMode(ModeVisual, "VISUAL", CursorBlock) }

// NewCommandMode creates the command mode.
func NewCommandMode() Mode { return NewMode(ModeCommand, "COMMAND", CursorBar) }
