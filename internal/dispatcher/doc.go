// Package dispatcher executes normalized commands against a host editor.
//
// The Executor is the hub between the parsed command stream and the
// document. It receives vim.Normalized commands and routes them through
// the motion, text object, operator and action registries.
//
// # Execution
//
// Each command moves through the states Idle, Resolving, Applying and
// back to Idle, or from Resolving to Failed and then Idle. In order:
//
//  1. Pre-execute hooks run and may cancel the command.
//  2. A scratch ExecutionContext is built from the host's lines.
//  3. The target range is resolved, with o_v, o_V and the exclusive rule.
//  4. The operator or action changes the scratch context.
//  5. On success the scratch and staged registers are committed.
//  6. Repeatable commands are stored for ".".
//  7. Post-execute hooks run and metrics are recorded.
//
// A failed resolution, a handler error or a rejected write leaves the
// host and the registers untouched. A panicking handler is recovered
// into an ErrExecution result.
//
// Execute is single-flight. A handler that calls back into the executor
// gets ErrReentrant.
//
// # Insert sessions
//
// Commands that enter insert mode open a session. InsertText, Newline
// and Backspace edit the host directly and track what was typed;
// ExitInsert repeats the text for the entering command's count and hands
// it to the RepeatController so "." replays the change and its text as
// one commit.
//
// # Subpackages
//
//   - execctx: the scratch context and the host interfaces
//   - handler: registry function shapes and Result
//   - handlers/cursor: motions
//   - handlers/textobject: text objects
//   - handlers/operator: d c y > < g~ gu gU
//   - handlers/editor: paste, replace, join, undo, marks
//   - handlers/mode: insert mode entry
package dispatcher
