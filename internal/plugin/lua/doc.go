// Package lua wraps gopher-lua for the plugin host.
//
// A State is a sandboxed interpreter: only the base, table, string and
// math libraries are open, code loading globals are removed and require
// resolves only those libraries and modules the host preloads. Every run
// is bounded by an execution timeout.
//
//	state := lua.NewState(lua.WithExecutionTimeout(time.Second))
//	defer state.Close()
//
//	if err := state.DoFile("motions.lua"); err != nil {
//	    return err
//	}
//
// The Bridge converts values between Go and Lua.
package lua
