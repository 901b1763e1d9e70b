// Package key defines the symbols fed to the modal interpreter.
//
// An Event is one key press: a printable rune, or a special key such as
// <Esc>, <CR>, <BS> or <Tab>, possibly carrying modifiers (<C-r>).
//
// Every event has a Token, the Vim-style string the grammar matches on:
// "d", "G", "<Esc>", "<C-r>". Command tables are written in the same
// notation and parsed with ParseSequence, so "gU", "<C-r>" and "[(" are
// all valid table keys.
package key
