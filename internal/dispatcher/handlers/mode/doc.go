// Package mode implements the actions that enter insert mode: i, a, A,
// I, o, O and s. Each positions the cursor (opening a line or deleting
// characters first where needed) and requests the insert mode change.
package mode
