package vim

// OperatorID identifies an operator.
type OperatorID uint16

// Built-in operators.
const (
	OpNone OperatorID = iota
	OpDelete
	OpChange
	OpYank
	OpIndent
	OpOutdent
	OpLower
	OpUpper
	OpToggleCase
)

// OperatorSpec describes an operator's keys and effects.
type OperatorSpec struct {
	ID   OperatorID
	Name string
	Keys string

	// ChangesText is false only for operators that leave the text alone.
	ChangesText bool

	// EntersInsert switches to insert mode after the operator runs.
	EntersInsert bool
}

var builtinOperators = []OperatorSpec{
	{ID: OpDelete, Name: "delete", Keys: "d", ChangesText: true},
	{ID: OpChange, Name: "change", Keys: "c", ChangesText: true, EntersInsert: true},
	{ID: OpYank, Name: "yank", Keys: "y"},
	{ID: OpIndent, Name: "indent", Keys: ">", ChangesText: true},
	{ID: OpOutdent, Name: "outdent", Keys: "<", ChangesText: true},
	{ID: OpLower, Name: "lowercase", Keys: "gu", ChangesText: true},
	{ID: OpUpper, Name: "uppercase", Keys: "gU", ChangesText: true},
	{ID: OpToggleCase, Name: "toggle_case", Keys: "g~", ChangesText: true},
}

// BuiltinOperators returns the built-in operator table.
func BuiltinOperators() []OperatorSpec {
	out := make([]OperatorSpec, len(builtinOperators))
	copy(out, builtinOperators)
	return out
}

// ForcedKind overrides the kind of an operator's target range.
type ForcedKind uint8

const (
	// ForceNone keeps the kind the motion or object produced.
	ForceNone ForcedKind = iota
	// ForceCharwise is "v": linewise becomes exclusive charwise, charwise
	// toggles inclusive.
	ForceCharwise
	// ForceLinewise is "V".
	ForceLinewise
)
