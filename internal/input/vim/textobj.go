package vim

// TextObjectID identifies a text object.
type TextObjectID uint16

// Built-in text objects.
const (
	ObjectNone TextObjectID = iota
	ObjectWord
	ObjectBigWord
	ObjectDoubleQuote
	ObjectSingleQuote
	ObjectBacktick
	ObjectParen
	ObjectBrace
	ObjectBracket
	ObjectAngle
	ObjectTag
	ObjectParagraph
)

// ObjectMode selects the inner or around variant of a text object.
type ObjectMode uint8

const (
	// ObjectModeNone means the target is not a text object.
	ObjectModeNone ObjectMode = iota
	// ObjectInner excludes delimiters and surrounding whitespace.
	ObjectInner
	// ObjectAround includes them.
	ObjectAround
)

// String returns "i" or "a".
func (m ObjectMode) String() string {
	switch m {
	case ObjectInner:
		return "i"
	case ObjectAround:
		return "a"
	}
	return ""
}

// TextObjectSpec maps an object key to a text object.
type TextObjectSpec struct {
	ID   TextObjectID
	Name string
	Key  string
}

var builtinTextObjects = []TextObjectSpec{
	{ObjectWord, "word", "w"},
	{ObjectBigWord, "bigword", "W"},
	{ObjectDoubleQuote, "double_quote", "\""},
	{ObjectSingleQuote, "single_quote", "'"},
	{ObjectBacktick, "backtick", "`"},
	{ObjectParen, "paren", "("},
	{ObjectParen, "paren", ")"},
	{ObjectParen, "paren", "b"},
	{ObjectBrace, "brace", "{"},
	{ObjectBrace, "brace", "}"},
	{ObjectBrace, "brace", "B"},
	{ObjectBracket, "bracket", "["},
	{ObjectBracket, "bracket", "]"},
	{ObjectAngle, "angle", "<"},
	{ObjectAngle, "angle", ">"},
	{ObjectTag, "tag", "t"},
	{ObjectParagraph, "paragraph", "p"},
}

// BuiltinTextObjects returns the built-in text object table.
func BuiltinTextObjects() []TextObjectSpec {
	out := make([]TextObjectSpec, len(builtinTextObjects))
	copy(out, builtinTextObjects)
	return out
}

// Delimiters returns the open and close runes of a delimited object.
func (id TextObjectID) Delimiters() (open, close rune, ok bool) {
	switch id {
	case ObjectDoubleQuote:
		return '"', '"', true
	case ObjectSingleQuote:
		return '\'', '\'', true
	case ObjectBacktick:
		return '`', '`', true
	case ObjectParen:
		return '(', ')', true
	case ObjectBrace:
		return '{', '}', true
	case ObjectBracket:
		return '[', ']', true
	case ObjectAngle:
		return '<', '>', true
	}
	return 0, 0, false
}

// IsQuote reports whether the object is delimited by a single repeated rune.
func (id TextObjectID) IsQuote() bool {
	return id == ObjectDoubleQuote || id == ObjectSingleQuote || id == ObjectBacktick
}
