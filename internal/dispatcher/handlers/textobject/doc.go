// Package textobject implements the text objects an operator can target
// with i{key} or a{key}: words, quoted strings, bracketed blocks, markup
// tags and paragraphs.
//
// Every object returns the range it covers around the cursor, or false
// when there is no enclosing object. Word and quote objects are bounded
// by the cursor line; brackets and tags may span lines; paragraphs are
// linewise.
package textobject
