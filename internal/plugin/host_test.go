package plugin

import (
	"bytes"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/modalkit/internal/dispatcher"
	"github.com/dshills/modalkit/internal/dispatcher/handler"
	"github.com/dshills/modalkit/internal/engine"
	"github.com/dshills/modalkit/internal/input"
	"github.com/dshills/modalkit/internal/input/mode"
	"github.com/dshills/modalkit/internal/input/vim"
	plua "github.com/dshills/modalkit/internal/plugin/lua"
)

type fixture struct {
	host *Host
	in   *input.Handler
	doc  *engine.Engine
}

func newFixture(t *testing.T, content string, opts ...HostOption) *fixture {
	t.Helper()
	doc := engine.New(engine.WithContent(content))
	exec := dispatcher.NewWithDefaults()
	exec.SetEditor(doc)
	exec.SetHistory(doc)
	exec.SetRegisters(vim.NewRegisterStore())

	host := NewHost(exec, opts...)
	t.Cleanup(func() { _ = host.Close() })

	in := input.NewHandler(exec, mode.NewDefaultManager(), input.DefaultConfig())
	t.Cleanup(in.Close)
	return &fixture{host: host, in: in, doc: doc}
}

func (f *fixture) feed(t *testing.T, keys string) []input.Outcome {
	t.Helper()
	out, err := f.in.Feed(keys)
	require.NoError(t, err)
	return out
}

const lineLast = `
modal.motion({ keys = "gl", name = "line_last", kind = "inclusive" }, function(ctx)
  return ctx.line, ctx.line_len - 1
end)
`

func TestHostMotion(t *testing.T) {
	f := newFixture(t, "hello world")
	require.NoError(t, f.host.LoadString("line_last.lua", lineLast))

	f.feed(t, "gl")
	assert.Equal(t, 10, f.doc.Cursor().Column)

	f.feed(t, "0dgl")
	assert.Equal(t, "", f.doc.Content())
}

func TestHostMotionNoTarget(t *testing.T) {
	f := newFixture(t, "abc")
	require.NoError(t, f.host.LoadString("none.lua", `
modal.motion({ keys = "gn" }, function(ctx) return nil end)
`))

	out := f.feed(t, "dgn")
	last := out[len(out)-1]
	require.NotNil(t, last.Result)
	assert.Equal(t, handler.StatusFailed, last.Result.Status)
	assert.Equal(t, "abc", f.doc.Content())
}

func TestHostLinewiseMotion(t *testing.T) {
	f := newFixture(t, "one\ntwo\nthree")
	require.NoError(t, f.host.LoadString("last_line.lua", `
modal.motion({ keys = "gL", kind = "linewise" }, function(ctx)
  return #ctx.lines - 1, 0
end)
`))

	f.feed(t, "jdgL")
	assert.Equal(t, "one", f.doc.Content())
}

func TestHostAction(t *testing.T) {
	f := newFixture(t, "a\nb\nc")
	require.NoError(t, f.host.LoadString("swap.lua", `
modal.action({ keys = "gs", name = "swap_lines", repeatable = true }, function(ctx)
  local lines = ctx.lines
  local i = ctx.line + 1
  if i >= #lines then return nil end
  lines[i], lines[i + 1] = lines[i + 1], lines[i]
  return { lines = lines, line = ctx.line + 1, col = ctx.col }
end)
`))

	f.feed(t, "gs")
	assert.Equal(t, "b\na\nc", f.doc.Content())
	assert.Equal(t, 1, f.doc.Cursor().Line)

	f.feed(t, ".")
	assert.Equal(t, "b\nc\na", f.doc.Content())

	f.feed(t, "u")
	assert.Equal(t, "b\na\nc", f.doc.Content())
}

func TestHostCharAction(t *testing.T) {
	f := newFixture(t, "abc")
	require.NoError(t, f.host.LoadString("fill.lua", `
modal.action({ keys = "gr", char = true }, function(ctx)
  return { lines = { string.rep(ctx.char, ctx.count) }, col = 0 }
end)
`))

	out := f.feed(t, "3gr")
	assert.Equal(t, vim.ParseNeedsChar, out[len(out)-1].Status)

	f.feed(t, "x")
	assert.Equal(t, "xxx", f.doc.Content())
}

func TestHostActionBadReturn(t *testing.T) {
	f := newFixture(t, "abc")
	require.NoError(t, f.host.LoadString("bad.lua", `
modal.action({ keys = "gb" }, function(ctx) return 42 end)
`))

	out := f.feed(t, "gb")
	last := out[len(out)-1]
	require.NotNil(t, last.Result)
	assert.False(t, last.Result.IsOK())
	assert.ErrorIs(t, last.Result.Error, ErrBadReturn)
	assert.Equal(t, "abc", f.doc.Content())
}

func TestHostActionTimeout(t *testing.T) {
	f := newFixture(t, "abc", WithExecutionTimeout(50*time.Millisecond))
	require.NoError(t, f.host.LoadString("spin.lua", `
modal.action({ keys = "gz" }, function(ctx) while true do end end)
`))

	out := f.feed(t, "gz")
	last := out[len(out)-1]
	require.NotNil(t, last.Result)
	assert.ErrorIs(t, last.Result.Error, plua.ErrExecutionTimeout)
	assert.Equal(t, "abc", f.doc.Content())
}

func TestHostInvalidSpecs(t *testing.T) {
	tests := []struct {
		name string
		code string
		want string
	}{
		{"missing keys", `modal.motion({}, function() end)`, "keys is required"},
		{"bad kind", `modal.motion({ keys = "gq", kind = "sideways" }, function() end)`, "unknown motion kind"},
		{"conflict", `modal.action({ keys = "x" }, function() end)`, "already bound"},
		{"no function", `modal.action({ keys = "gx" })`, "function expected"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, "")
			err := f.host.LoadString("bad.lua", tt.code)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
			assert.Empty(t, f.host.Registrations())
		})
	}
}

func TestHostRegistrations(t *testing.T) {
	f := newFixture(t, "")
	dir := t.TempDir()
	path := filepath.Join(dir, "line_last.lua")
	require.NoError(t, os.WriteFile(path, []byte(lineLast), 0o644))

	require.NoError(t, f.host.Load(path))
	require.NoError(t, f.host.LoadString("noop.lua", `
local m = require("modal")
m.action({ keys = "g." }, function() end)
`))

	regs := f.host.Registrations()
	require.Len(t, regs, 2)
	assert.Equal(t, Registration{Kind: "motion", Name: "line_last", Keys: "gl", Script: "line_last.lua"}, regs[0])
	assert.Equal(t, Registration{Kind: "action", Name: "plugin_g.", Keys: "g.", Script: "noop.lua"}, regs[1])
}

func TestHostLoadMissingFile(t *testing.T) {
	f := newFixture(t, "")
	err := f.host.Load(filepath.Join(t.TempDir(), "missing.lua"))
	assert.Error(t, err)
}

func TestHostLog(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	f := newFixture(t, "", WithLogger(logger))

	require.NoError(t, f.host.LoadString("hello.lua", `modal.log("hello from lua")`))
	assert.Contains(t, buf.String(), "hello from lua")
	assert.Contains(t, buf.String(), "source=plugin")
}

func TestHostSandbox(t *testing.T) {
	f := newFixture(t, "")
	err := f.host.LoadString("escape.lua", `dofile("/etc/passwd")`)
	assert.Error(t, err)
	err = f.host.LoadString("escape.lua", `require("os")`)
	assert.Error(t, err)
}

func TestHostClose(t *testing.T) {
	f := newFixture(t, "hello world")
	require.NoError(t, f.host.LoadString("line_last.lua", lineLast))
	require.NoError(t, f.host.Close())
	require.NoError(t, f.host.Close())

	err := f.host.LoadString("late.lua", `x = 1`)
	assert.True(t, errors.Is(err, ErrHostClosed))

	out := f.feed(t, "gl")
	last := out[len(out)-1]
	require.NotNil(t, last.Result)
	assert.Equal(t, handler.StatusFailed, last.Result.Status)
	assert.Equal(t, 0, f.doc.Cursor().Column)
}
