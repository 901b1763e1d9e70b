// Package input turns key events into executed commands.
//
// A Handler is one editing session. In normal mode it appends every key
// to a KeyBuffer and parses the buffer with the grammar parser:
//
//   - incomplete or needsChar: wait for more keys
//   - invalid: clear the buffer, nothing changes
//   - complete: clear the buffer, normalize and execute
//
// The buffer clears itself after one second without a key, so a lone
// "d" or "g" is discarded. <Esc> clears it at once.
//
// In insert mode keys are typed into the document through the executor
// until <Esc> closes the insert session.
//
// # Usage
//
//	exec := dispatcher.NewWithDefaults()
//	exec.SetEditor(doc)
//	h := input.NewHandler(exec, mode.NewDefaultManager(), input.DefaultConfig())
//	defer h.Close()
//
//	for ev := range keyEvents {
//	    h.HandleKey(ev)
//	}
//
// # Hooks
//
// Hooks see every key before and after it is handled and may rewrite or
// swallow it. Hooks run in priority order.
package input
