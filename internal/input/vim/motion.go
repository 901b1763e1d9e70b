package vim

// MotionID identifies a motion.
type MotionID uint16

// Built-in motions. IDs at or above motionCustom are allocated by
// Grammar.RegisterMotion.
const (
	MotionNone MotionID = iota
	MotionLeft
	MotionRight
	MotionDown
	MotionUp
	MotionWordForward
	MotionWordBackward
	MotionWordEnd
	MotionBigWordForward
	MotionBigWordBackward
	MotionBigWordEnd
	MotionLineStart
	MotionFirstNonBlank
	MotionLineEnd
	MotionCountLine
	MotionLastNonBlank
	MotionFileStart
	MotionFileEnd
	MotionFindForward
	MotionFindBackward
	MotionTillForward
	MotionTillBackward
	MotionRepeatFind
	MotionRepeatFindReverse
	MotionMatchPair
	MotionUnmatchedParenBack
	MotionUnmatchedBraceBack
	MotionUnmatchedParenForward
	MotionUnmatchedBraceForward
	MotionParagraphForward
	MotionParagraphBackward
	MotionScrollCenter
	MotionScrollTop
	MotionScrollBottom
	MotionSearchForward
	MotionSearchBackward
	MotionSearchNext
	MotionSearchPrev
	MotionMarkLine
	MotionMarkExact

	motionCustom
)

// ArgKind describes the raw input a command owes after its keys.
type ArgKind uint8

const (
	// ArgNone takes nothing.
	ArgNone ArgKind = iota
	// ArgChar takes exactly one raw character (f{c}, r{c}, m{c}).
	ArgChar
	// ArgPattern takes raw characters up to <CR> (/pattern<CR>).
	ArgPattern
)

// MotionSpec describes a motion's keys.
type MotionSpec struct {
	ID   MotionID
	Name string
	Keys string
	Arg  ArgKind
}

// MotionArg carries the raw input a motion consumed.
type MotionArg struct {
	Char    rune
	Pattern string
}

var builtinMotions = []MotionSpec{
	{ID: MotionLeft, Name: "left", Keys: "h"},
	{ID: MotionRight, Name: "right", Keys: "l"},
	{ID: MotionDown, Name: "down", Keys: "j"},
	{ID: MotionUp, Name: "up", Keys: "k"},
	{ID: MotionWordForward, Name: "word_forward", Keys: "w"},
	{ID: MotionWordBackward, Name: "word_backward", Keys: "b"},
	{ID: MotionWordEnd, Name: "word_end", Keys: "e"},
	{ID: MotionBigWordForward, Name: "bigword_forward", Keys: "W"},
	{ID: MotionBigWordBackward, Name: "bigword_backward", Keys: "B"},
	{ID: MotionBigWordEnd, Name: "bigword_end", Keys: "E"},
	{ID: MotionLineStart, Name: "line_start", Keys: "0"},
	{ID: MotionFirstNonBlank, Name: "first_non_blank", Keys: "^"},
	{ID: MotionLineEnd, Name: "line_end", Keys: "$"},
	{ID: MotionCountLine, Name: "count_line", Keys: "_"},
	{ID: MotionLastNonBlank, Name: "last_non_blank", Keys: "g_"},
	{ID: MotionFileStart, Name: "file_start", Keys: "gg"},
	{ID: MotionFileEnd, Name: "file_end", Keys: "G"},
	{ID: MotionFindForward, Name: "find_forward", Keys: "f", Arg: ArgChar},
	{ID: MotionFindBackward, Name: "find_backward", Keys: "F", Arg: ArgChar},
	{ID: MotionTillForward, Name: "till_forward", Keys: "t", Arg: ArgChar},
	{ID: MotionTillBackward, Name: "till_backward", Keys: "T", Arg: ArgChar},
	{ID: MotionRepeatFind, Name: "repeat_find", Keys: ";"},
	{ID: MotionRepeatFindReverse, Name: "repeat_find_reverse", Keys: ","},
	{ID: MotionMatchPair, Name: "match_pair", Keys: "%"},
	{ID: MotionUnmatchedParenBack, Name: "unmatched_paren_back", Keys: "[("},
	{ID: MotionUnmatchedBraceBack, Name: "unmatched_brace_back", Keys: "[{"},
	{ID: MotionUnmatchedParenForward, Name: "unmatched_paren_forward", Keys: "])"},
	{ID: MotionUnmatchedBraceForward, Name: "unmatched_brace_forward", Keys: "]}"},
	{ID: MotionParagraphForward, Name: "paragraph_forward", Keys: "}"},
	{ID: MotionParagraphBackward, Name: "paragraph_backward", Keys: "{"},
	{ID: MotionScrollCenter, Name: "scroll_center", Keys: "zz"},
	{ID: MotionScrollTop, Name: "scroll_top", Keys: "zt"},
	{ID: MotionScrollBottom, Name: "scroll_bottom", Keys: "zb"},
	{ID: MotionSearchForward, Name: "search_forward", Keys: "/", Arg: ArgPattern},
	{ID: MotionSearchBackward, Name: "search_backward", Keys: "?", Arg: ArgPattern},
	{ID: MotionSearchNext, Name: "search_next", Keys: "n"},
	{ID: MotionSearchPrev, Name: "search_prev", Keys: "N"},
	{ID: MotionMarkLine, Name: "mark_line", Keys: "'", Arg: ArgChar},
	{ID: MotionMarkExact, Name: "mark_exact", Keys: "`", Arg: ArgChar},
}

// BuiltinMotions returns the built-in motion table.
func BuiltinMotions() []MotionSpec {
	out := make([]MotionSpec, len(builtinMotions))
	copy(out, builtinMotions)
	return out
}

// IsCharSearch reports whether the motion is one of f, F, t, T.
func (id MotionID) IsCharSearch() bool {
	switch id {
	case MotionFindForward, MotionFindBackward, MotionTillForward, MotionTillBackward:
		return true
	}
	return false
}

// IsSearch reports whether the motion is one of /, ?.
func (id MotionID) IsSearch() bool {
	return id == MotionSearchForward || id == MotionSearchBackward
}
