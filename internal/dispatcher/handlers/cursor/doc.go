// Package cursor implements the motion registry.
//
// Every built-in vim.MotionID maps to a handler.MotionFunc. Motions are
// pure: they read the lines and return a range from the cursor to the
// target together with its kind (exclusive, inclusive or linewise). The
// executor decides whether the range moves the cursor or feeds an
// operator.
package cursor
