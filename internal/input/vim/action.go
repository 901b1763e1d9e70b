package vim

// ActionID identifies an action.
type ActionID uint16

// Built-in actions. IDs at or above actionCustom are allocated by
// Grammar.RegisterAction.
const (
	ActNone ActionID = iota
	ActPasteAfter
	ActPasteBefore
	ActReplaceChar
	ActInsert
	ActAppend
	ActAppendEnd
	ActInsertStart
	ActOpenBelow
	ActOpenAbove
	ActSubstitute
	ActDeleteChar
	ActDeleteCharBefore
	ActUndo
	ActRedo
	ActRepeat
	ActJoin
	ActToggleCaseChar
	ActSetMark
	ActDeleteToEnd
	ActChangeToEnd
	ActSubstituteLine
	ActYankLine

	actionCustom
)

// Alias rewrites an action into an operator command.
type Alias struct {
	Operator OperatorID

	// Motion is the target motion, unless Doubled.
	Motion MotionID

	// Doubled makes the alias behave like the doubled operator.
	Doubled bool
}

// ActionSpec describes an action's keys and classification.
type ActionSpec struct {
	ID   ActionID
	Name string
	Keys string
	Arg  ArgKind

	// Repeatable actions are stored for ".".
	Repeatable bool

	// EntersInsert actions leave the editor in insert mode.
	EntersInsert bool

	// Alias, when set, makes the normalizer expand the action.
	Alias *Alias
}

var builtinActions = []ActionSpec{
	{ID: ActPasteAfter, Name: "paste_after", Keys: "p", Repeatable: true},
	{ID: ActPasteBefore, Name: "paste_before", Keys: "P", Repeatable: true},
	{ID: ActReplaceChar, Name: "replace_char", Keys: "r", Arg: ArgChar, Repeatable: true},
	{ID: ActInsert, Name: "insert", Keys: "i", Repeatable: true, EntersInsert: true},
	{ID: ActAppend, Name: "append", Keys: "a", Repeatable: true, EntersInsert: true},
	{ID: ActAppendEnd, Name: "append_end", Keys: "A", Repeatable: true, EntersInsert: true},
	{ID: ActInsertStart, Name: "insert_start", Keys: "I", Repeatable: true, EntersInsert: true},
	{ID: ActOpenBelow, Name: "open_below", Keys: "o", Repeatable: true, EntersInsert: true},
	{ID: ActOpenAbove, Name: "open_above", Keys: "O", Repeatable: true, EntersInsert: true},
	{ID: ActSubstitute, Name: "substitute", Keys: "s", Repeatable: true, EntersInsert: true},
	{ID: ActDeleteChar, Name: "delete_char", Keys: "x", Repeatable: true},
	{ID: ActDeleteCharBefore, Name: "delete_char_before", Keys: "X", Repeatable: true},
	{ID: ActUndo, Name: "undo", Keys: "u"},
	{ID: ActRedo, Name: "redo", Keys: "<C-r>"},
	{ID: ActRepeat, Name: "repeat", Keys: "."},
	{ID: ActJoin, Name: "join", Keys: "J", Repeatable: true},
	{ID: ActToggleCaseChar, Name: "toggle_case_char", Keys: "~", Repeatable: true},
	{ID: ActSetMark, Name: "set_mark", Keys: "m", Arg: ArgChar},
	{ID: ActDeleteToEnd, Name: "delete_to_end", Keys: "D", Alias: &Alias{Operator: OpDelete, Motion: MotionLineEnd}},
	{ID: ActChangeToEnd, Name: "change_to_end", Keys: "C", Alias: &Alias{Operator: OpChange, Motion: MotionLineEnd}},
	{ID: ActSubstituteLine, Name: "substitute_line", Keys: "S", Alias: &Alias{Operator: OpChange, Doubled: true}},
	{ID: ActYankLine, Name: "yank_line", Keys: "Y", Alias: &Alias{Operator: OpYank, Doubled: true}},
}

// BuiltinActions returns the built-in action table.
func BuiltinActions() []ActionSpec {
	out := make([]ActionSpec, len(builtinActions))
	copy(out, builtinActions)
	return out
}
