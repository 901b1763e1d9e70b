// Package editor implements the self-contained editing actions: p, P, r,
// x, X, J, ~, u, <C-r> and m.
//
// Actions receive the effective count in ctx.Count and repeat themselves;
// the executor invokes them once. An action that cannot apply returns an
// error, and the executor discards the scratch text so the document is
// never left half edited.
package editor
