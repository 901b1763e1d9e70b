// Package engine provides the document the command executor edits.
//
// An Engine holds the text as a slice of lines plus a single cursor, and
// records every committed change in a snapshot history so that one undo
// reverts one command, however many lines it touched.
//
// # Thread Safety
//
// All Engine operations are thread-safe. Reads take a read lock and
// writes are serialized.
//
// # Basic Usage
//
//	e := engine.New(engine.WithContent("hello world"))
//
//	// Replace everything and move the cursor in one step
//	e.Apply(" world", 0, 0)
//
//	// Undo restores text and cursor
//	e.Undo() // "hello world"
//
// # Undo Groups
//
// BeginGroup and EndGroup merge several commits into one undo step. The
// executor uses this to undo a change together with the text typed
// after it:
//
//	e.BeginGroup()
//	e.Apply("foo ", 0, 4)    // ciw
//	e.Apply("foo baz", 0, 7) // typed "baz"
//	e.EndGroup()
//	e.Undo() // back to the text before ciw
//
// # Host Interfaces
//
// Engine implements the executor's Editor, AtomicEditor, Grouper,
// IndentStyler and History interfaces.
package engine
