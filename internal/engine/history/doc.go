// Package history provides undo/redo for the document engine.
//
// Every committed change is recorded as an Entry holding the document
// state before and after it. Undo restores the Before snapshot and Redo
// the After one, so a command that rewrote many lines still undoes in a
// single step.
//
// # History Stack
//
//	h := NewHistory(1000) // Max 1000 undo entries
//
//	h.Push(before, after)
//
//	snap, err := h.Undo()
//	snap, err = h.Redo()
//
// # Grouping
//
// Several pushes can be merged into one undo unit:
//
//	h.BeginGroup("change word")
//	h.Push(a, b) // the change
//	h.Push(b, c) // text typed afterwards
//	h.EndGroup()
//
// The group undoes straight from c back to a. Groups nest; only the
// outermost EndGroup pushes the merged entry.
package history
