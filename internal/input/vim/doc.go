// Package vim implements the modal command language.
//
// A command is written as
//
//	[count]["x][count] ( action | operator [count] target | motion )
//	target := [v|V] ( (i|a) object | motion )
//
// The Grammar holds the key tables for actions, operators, motions and
// text objects. The Parser runs over the buffered key events and reports
// one of four statuses: Complete with a Command, Incomplete when more keys
// could still form a command, NeedsChar when a raw character is owed (r, f,
// t, a register name, a search pattern) and Invalid when no extension of
// the keys can succeed.
//
// The Normalizer rewrites a parsed Command into canonical form: aliases
// (D, C, S, Y) become operator commands, doubled operators (dd, >>, gUU)
// get a linewise target, counts are multiplied into one effective count
// and the register and repeatability are resolved.
//
// RegisterStore holds the named, numbered and special registers.
//
// Nothing in this package touches text. Motions, text objects, operators
// and actions are identified by enum IDs here and implemented by the
// dispatcher handlers.
package vim
