package lua

import (
	lua "github.com/yuin/gopher-lua"
)

// safeModules are the only modules require may return.
var safeModules = map[string]bool{
	"string": true,
	"table":  true,
	"math":   true,
}

// Sandbox removes the globals that reach the file system or load code,
// and replaces require with one limited to safe modules and modules
// preloaded by the host.
func Sandbox(L *lua.LState) {
	for _, name := range []string{"dofile", "loadfile", "load", "loadstring"} {
		L.SetGlobal(name, lua.LNil)
	}

	preloaded := L.NewTable()
	L.SetGlobal("require", L.NewFunction(func(L *lua.LState) int {
		name := L.CheckString(1)
		if safeModules[name] {
			L.Push(L.GetGlobal(name))
			return 1
		}
		if mod := preloaded.RawGetString(name); mod != lua.LNil {
			L.Push(mod)
			return 1
		}
		L.RaiseError("module %q is not available", name)
		return 0
	}))
	L.SetGlobal("_preloaded", preloaded)
}

// Preload makes a global table available through require(name).
func Preload(L *lua.LState, name string, mod lua.LValue) {
	if tbl, ok := L.GetGlobal("_preloaded").(*lua.LTable); ok {
		tbl.RawSetString(name, mod)
	}
}
