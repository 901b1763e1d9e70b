// Package buffer provides the text model the modal interpreter works on.
//
// Text is a slice of lines without terminators. Positions carry a line, a
// column and an absolute offset; columns and offsets count runes, and the
// offset of a position always equals the sum of (len(line)+1) over the
// preceding lines plus the column.
//
// Ranges come out of motions and text objects. They may point backwards
// and carry the two flags operators care about: whether the end is
// inclusive and whether the range is linewise.
package buffer
