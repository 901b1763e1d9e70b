// Package operator implements the operators: d, c, y, >, <, gu, gU and g~.
//
// An operator receives a normalized range from the executor, which has
// already resolved the motion or text object, applied any forced kind and
// folded the count into the range. Operators therefore run once and only
// decide what to do with the text the range covers:
//
//   - Linewise ranges act on whole lines from the start line to the end line.
//   - Charwise ranges act on the rune span [start, end), with inclusive
//     ranges extended by one character.
//
// Deleting and yanking operators record the removed text in the register
// named by the context, and the register store rotates the numbered and
// small delete registers.
package operator
