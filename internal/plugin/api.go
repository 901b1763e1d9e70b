package plugin

import (
	"fmt"
	"strings"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/modalkit/internal/dispatcher/execctx"
	"github.com/dshills/modalkit/internal/dispatcher/handler"
	"github.com/dshills/modalkit/internal/engine/buffer"
	"github.com/dshills/modalkit/internal/input/vim"
)

// modalModule implements the modal Lua module.
type modalModule struct {
	host *Host
}

func newModalModule(h *Host) *modalModule {
	return &modalModule{host: h}
}

func (m *modalModule) register(L *lua.LState) *lua.LTable {
	mod := L.NewTable()
	L.SetFuncs(mod, map[string]lua.LGFunction{
		"motion": m.motion,
		"action": m.action,
		"log":    m.log,
	})
	return mod
}

// commandSpec is the common part of motion and action spec tables.
type commandSpec struct {
	keys string
	name string
	arg  vim.ArgKind
}

func (m *modalModule) readSpec(t *lua.LTable) (commandSpec, error) {
	b := m.host.bridge
	var spec commandSpec
	keys, ok := b.GetTableString(t, "keys")
	if !ok || keys == "" {
		return spec, fmt.Errorf("%w: keys is required", ErrInvalidSpec)
	}
	spec.keys = keys
	spec.name, _ = b.GetTableString(t, "name")
	if spec.name == "" {
		spec.name = "plugin_" + keys
	}
	if char, _ := b.GetTableBool(t, "char"); char {
		spec.arg = vim.ArgChar
	}
	return spec, nil
}

// motion is modal.motion(spec, fn).
func (m *modalModule) motion(L *lua.LState) int {
	t := L.CheckTable(1)
	fn := L.CheckFunction(2)

	spec, err := m.readSpec(t)
	if err != nil {
		L.RaiseError("%s", err.Error())
		return 0
	}
	kind, _ := m.host.bridge.GetTableString(t, "kind")
	shape, err := motionShape(kind)
	if err != nil {
		L.RaiseError("%s", err.Error())
		return 0
	}

	id, err := m.host.exec.Grammar().RegisterMotion(vim.MotionSpec{
		Name: spec.name,
		Keys: spec.keys,
		Arg:  spec.arg,
	})
	if err != nil {
		L.RaiseError("registering motion %q: %s", spec.keys, err.Error())
		return 0
	}
	m.host.exec.Motions().Register(id, m.host.motionFunc(spec.name, fn, shape))
	m.host.record("motion", spec.name, spec.keys)
	return 0
}

// action is modal.action(spec, fn).
func (m *modalModule) action(L *lua.LState) int {
	t := L.CheckTable(1)
	fn := L.CheckFunction(2)

	spec, err := m.readSpec(t)
	if err != nil {
		L.RaiseError("%s", err.Error())
		return 0
	}
	repeatable, _ := m.host.bridge.GetTableBool(t, "repeatable")

	id, err := m.host.exec.Grammar().RegisterAction(vim.ActionSpec{
		Name:       spec.name,
		Keys:       spec.keys,
		Arg:        spec.arg,
		Repeatable: repeatable,
	})
	if err != nil {
		L.RaiseError("registering action %q: %s", spec.keys, err.Error())
		return 0
	}
	m.host.exec.Actions().Register(id, m.host.actionFunc(spec.name, fn))
	m.host.record("action", spec.name, spec.keys)
	return 0
}

// log is modal.log(msg).
func (m *modalModule) log(L *lua.LState) int {
	msg := L.CheckString(1)
	m.host.logger.Info(msg, "source", "plugin")
	return 0
}

func motionShape(kind string) (func(cur, end buffer.Position) buffer.Range, error) {
	switch strings.ToLower(kind) {
	case "", "exclusive":
		return func(cur, end buffer.Position) buffer.Range {
			return buffer.Range{Start: cur, End: end}
		}, nil
	case "inclusive":
		return func(cur, end buffer.Position) buffer.Range {
			return buffer.Range{Start: cur, End: end, Inclusive: true}
		}, nil
	case "linewise":
		return func(cur, end buffer.Position) buffer.Range {
			return buffer.Range{Start: cur, End: end, Linewise: true}
		}, nil
	default:
		return nil, fmt.Errorf("%w: unknown motion kind %q", ErrInvalidSpec, kind)
	}
}

// cursorTable builds the ctx argument passed to callbacks.
func (h *Host) cursorTable(L *lua.LState, cur buffer.Position, lines buffer.Lines, count int, char rune) *lua.LTable {
	t := L.NewTable()
	t.RawSetString("line", lua.LNumber(cur.Line))
	t.RawSetString("col", lua.LNumber(cur.Column))
	t.RawSetString("count", lua.LNumber(count))
	t.RawSetString("line_len", lua.LNumber(lines.RuneLen(cur.Line)))
	t.RawSetString("lines", h.bridge.StringsToTable(lines))
	if char != 0 {
		t.RawSetString("char", lua.LString(string(char)))
	}
	return t
}

// callbackArg builds the ctx table under the state lock.
func (h *Host) callbackArg(cur buffer.Position, lines buffer.Lines, count int, char rune, operator bool) (*lua.LTable, error) {
	var arg *lua.LTable
	err := h.state.With(func(L *lua.LState) {
		arg = h.cursorTable(L, cur, lines, count, char)
		arg.RawSetString("operator", lua.LBool(operator))
	})
	return arg, err
}

func (h *Host) motionFunc(name string, fn *lua.LFunction, shape func(cur, end buffer.Position) buffer.Range) handler.MotionFunc {
	return func(cur buffer.Position, lines buffer.Lines, count int, meta handler.MotionMeta) (buffer.Range, bool) {
		arg, err := h.callbackArg(cur, lines, count, meta.Char, meta.Operator)
		if err != nil {
			h.logger.Warn("plugin motion failed", "name", name, "error", err)
			return buffer.Range{}, false
		}
		ret, err := h.state.Call(fn, 2, arg)
		if err != nil {
			h.logger.Warn("plugin motion failed", "name", name, "error", err)
			return buffer.Range{}, false
		}
		ln, lok := ret[0].(lua.LNumber)
		cn, cok := ret[1].(lua.LNumber)
		if !lok || !cok {
			return buffer.Range{}, false
		}
		return shape(cur, lines.Position(int(ln), int(cn))), true
	}
}

func (h *Host) actionFunc(name string, fn *lua.LFunction) handler.ActionFunc {
	return func(ctx *execctx.ExecutionContext) error {
		arg, err := h.callbackArg(ctx.Cursor(), ctx.Lines(), ctx.GetCount(), ctx.Char, false)
		if err != nil {
			return fmt.Errorf("plugin action %s: %w", name, err)
		}
		ret, err := h.state.Call(fn, 1, arg)
		if err != nil {
			return fmt.Errorf("plugin action %s: %w", name, err)
		}
		var applyErr error
		err = h.state.With(func(*lua.LState) {
			applyErr = h.applyActionResult(ctx, ret[0])
		})
		if err == nil {
			err = applyErr
		}
		if err != nil {
			return fmt.Errorf("plugin action %s: %w", name, err)
		}
		return nil
	}
}

// applyActionResult writes an action's returned table into the scratch.
func (h *Host) applyActionResult(ctx *execctx.ExecutionContext, ret lua.LValue) error {
	if ret == lua.LNil {
		return nil
	}
	t, ok := ret.(*lua.LTable)
	if !ok {
		return fmt.Errorf("%w: expected table or nil, got %s", ErrBadReturn, ret.Type())
	}

	if lt, ok := h.bridge.GetTableTable(t, "lines"); ok {
		repl, err := h.bridge.TableToStrings(lt)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrBadReturn, err)
		}
		ctx.ReplaceLines(0, ctx.Lines().LastLine(), repl)
	}

	cur := ctx.Cursor()
	line, hasLine := h.bridge.GetTableInt(t, "line")
	col, hasCol := h.bridge.GetTableInt(t, "col")
	if !hasLine {
		line = cur.Line
	}
	if !hasCol {
		col = cur.Column
	}
	ctx.SetCursor(line, col)
	return nil
}
