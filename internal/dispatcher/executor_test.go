package dispatcher

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/modalkit/internal/dispatcher/execctx"
	"github.com/dshills/modalkit/internal/dispatcher/handler"
	"github.com/dshills/modalkit/internal/engine/buffer"
	"github.com/dshills/modalkit/internal/input/key"
	"github.com/dshills/modalkit/internal/input/vim"
)

// fakeEditor is an in-memory host that counts writes and undo groups.
type fakeEditor struct {
	lines  buffer.Lines
	cursor buffer.Position
	mode   string
	writes int
	groups []string

	// rejectWrites, when set, fails every write.
	rejectWrites error
}

func newFakeEditor(content string) *fakeEditor {
	return &fakeEditor{lines: buffer.Split(content), mode: execctx.ModeNormal}
}

func (f *fakeEditor) Lines() buffer.Lines     { return f.lines.Clone() }
func (f *fakeEditor) Content() string         { return f.lines.Content() }
func (f *fakeEditor) Cursor() buffer.Position { return f.cursor }
func (f *fakeEditor) TabWidth() int           { return 8 }
func (f *fakeEditor) ShiftWidth() int         { return 4 }
func (f *fakeEditor) Mode() string            { return f.mode }
func (f *fakeEditor) BeginGroup()             { f.groups = append(f.groups, "begin") }
func (f *fakeEditor) EndGroup()               { f.groups = append(f.groups, "end") }

func (f *fakeEditor) ReplaceContent(content string) error {
	return f.Apply(content, f.cursor.Line, f.cursor.Column)
}

func (f *fakeEditor) SetCursor(line, col int) {
	f.cursor = f.lines.Position(line, col)
}

func (f *fakeEditor) Apply(content string, line, col int) error {
	if f.rejectWrites != nil {
		return f.rejectWrites
	}
	f.lines = buffer.Split(content)
	f.cursor = f.lines.Position(line, col)
	f.writes++
	return nil
}

func (f *fakeEditor) SetMode(mode string) error {
	f.mode = mode
	return nil
}

type fakeHistory struct {
	undos, redos int
}

func (h *fakeHistory) Undo() error { h.undos++; return nil }
func (h *fakeHistory) Redo() error { h.redos++; return nil }

type harness struct {
	t      *testing.T
	exec   *Executor
	ed     *fakeEditor
	regs   *vim.RegisterStore
	parser *vim.Parser
	norm   *vim.Normalizer
}

func newHarness(t *testing.T, content string) *harness {
	return newHarnessWith(t, content, DefaultConfig())
}

func newHarnessWith(t *testing.T, content string, config Config) *harness {
	t.Helper()
	ed := newFakeEditor(content)
	regs := vim.NewRegisterStore()
	exec := New(config)
	exec.SetEditor(ed)
	exec.SetModeStore(ed)
	exec.SetRegisters(regs)
	return &harness{
		t:      t,
		exec:   exec,
		ed:     ed,
		regs:   regs,
		parser: vim.NewParser(exec.Grammar()),
		norm:   vim.NewNormalizer(exec.Grammar()),
	}
}

// normalized parses keys as exactly one command.
func (h *harness) normalized(keys string) vim.Normalized {
	h.t.Helper()
	seq, err := key.ParseSequence(keys)
	require.NoError(h.t, err)
	pr := h.parser.Parse(seq.Events)
	require.Equal(h.t, vim.ParseComplete, pr.Status, "keys %q", keys)
	n, err := h.norm.Normalize(pr.Command)
	require.NoError(h.t, err)
	return n
}

func (h *harness) run(keys string) handler.Result {
	h.t.Helper()
	return h.exec.Execute(h.normalized(keys))
}

func (h *harness) mustRun(keys string) {
	h.t.Helper()
	res := h.run(keys)
	require.True(h.t, res.IsOK(), "keys %q: %v %v", keys, res.Status, res.Error)
}

func (h *harness) typeText(text string) {
	h.t.Helper()
	require.True(h.t, h.exec.InsertText(text).IsOK())
	require.True(h.t, h.exec.ExitInsert().IsOK())
}

func TestExecuteDeleteWord(t *testing.T) {
	h := newHarness(t, "hello world")
	h.mustRun("dw")
	assert.Equal(t, " world", h.ed.Content())
	assert.Equal(t, 0, h.ed.cursor.Column)

	reg, ok := h.regs.Get('"')
	require.True(t, ok)
	assert.Equal(t, vim.Register{Content: "hello"}, reg)
}

// The counted word motion is exclusive like dw, so the space before the
// fourth word stays.
func TestExecuteCountedDeleteWordKeepsSeparator(t *testing.T) {
	h := newHarness(t, "one two three four")
	h.mustRun("3dw")
	assert.Equal(t, " four", h.ed.Content())
}

func TestExecuteDeleteLines(t *testing.T) {
	tests := []struct {
		keys    string
		content string
		line    int
		want    string
	}{
		{"dd", "a\nb\nc", 1, "a\nc"},
		{"3dd", "1\n2\n3\n4", 0, "4"},
		{"d3d", "1\n2\n3\n4", 0, "4"},
		{"2d2d", "1\n2\n3\n4\n5", 0, "5"},
	}
	for _, tt := range tests {
		t.Run(tt.keys, func(t *testing.T) {
			h := newHarness(t, tt.content)
			h.ed.SetCursor(tt.line, 0)
			h.mustRun(tt.keys)
			assert.Equal(t, tt.want, h.ed.Content())
			assert.Equal(t, 1, h.ed.writes, "one commit per command")
		})
	}
}

func TestExecuteDeleteLineRegister(t *testing.T) {
	h := newHarness(t, "a\nb\nc")
	h.ed.SetCursor(1, 0)
	h.mustRun("dd")
	assert.Equal(t, buffer.Position{Line: 1, Column: 0, Offset: 2}, h.ed.cursor)

	reg, ok := h.regs.Get('"')
	require.True(t, ok)
	assert.Equal(t, vim.Register{Content: "b", Linewise: true}, reg)
	reg, ok = h.regs.Get('1')
	require.True(t, ok)
	assert.Equal(t, "b", reg.Content)
}

func TestExecuteYankPut(t *testing.T) {
	h := newHarness(t, "a\nb")
	h.mustRun("yy")
	assert.Equal(t, 0, h.ed.writes, "yank does not write")
	h.mustRun("p")
	assert.Equal(t, "a\na\nb", h.ed.Content())
	assert.Equal(t, 1, h.ed.cursor.Line)
}

func TestExecuteChangeInnerWord(t *testing.T) {
	h := newHarness(t, "foo bar")
	h.ed.SetCursor(0, 5)
	h.mustRun("ciw")
	assert.Equal(t, "foo ", h.ed.Content())
	assert.Equal(t, execctx.ModeInsert, h.ed.mode)
	assert.True(t, h.exec.Inserting())

	h.typeText("baz")
	assert.Equal(t, "foo baz", h.ed.Content())
	assert.Equal(t, execctx.ModeNormal, h.ed.mode)
	assert.Equal(t, 6, h.ed.cursor.Column)
	assert.False(t, h.exec.Inserting())
	assert.Equal(t, []string{"begin", "end"}, h.ed.groups)
}

func TestExecuteFailureLeavesDocument(t *testing.T) {
	tests := []string{"fz", "dfz", "di(", "k"}
	for _, keys := range tests {
		t.Run(keys, func(t *testing.T) {
			h := newHarness(t, "abc")
			res := h.run(keys)
			assert.Equal(t, handler.StatusFailed, res.Status)
			assert.True(t, errors.Is(res.Error, ErrNoTarget))
			assert.Equal(t, "abc", h.ed.Content())
			assert.Zero(t, h.ed.writes)
			assert.Equal(t, StateIdle, h.exec.State())
		})
	}
}

func TestExecuteFailedCommandIsNotRecorded(t *testing.T) {
	h := newHarness(t, "abc")
	h.mustRun("x")
	require.Equal(t, handler.StatusFailed, h.run("dfz").Status)

	entry, ok := h.exec.Repeat().Last()
	require.True(t, ok)
	a, isAction := entry.Command.Command.(vim.ActionCommand)
	require.True(t, isAction)
	assert.Equal(t, vim.ActDeleteChar, a.Action)
}

func TestExecutePanicIsContained(t *testing.T) {
	h := newHarness(t, "abc")
	h.exec.Actions().Register(vim.ActDeleteChar, handler.ActionFunc(func(ctx *execctx.ExecutionContext) error {
		ctx.Replace(0, 1, "")
		panic("boom")
	}))

	res := h.run("x")
	assert.Equal(t, handler.StatusError, res.Status)
	assert.True(t, errors.Is(res.Error, ErrExecution))
	assert.Equal(t, "abc", h.ed.Content())
	assert.Zero(t, h.ed.writes)
	assert.Equal(t, StateIdle, h.exec.State())

	_, ok := h.exec.Repeat().Last()
	assert.False(t, ok)
}

func TestExecuteReentrant(t *testing.T) {
	h := newHarness(t, "abc")
	inner := h.normalized("l")
	var nested handler.Result
	var during State
	h.exec.Actions().Register(vim.ActDeleteChar, handler.ActionFunc(func(ctx *execctx.ExecutionContext) error {
		during = h.exec.State()
		nested = h.exec.Execute(inner)
		return nil
	}))

	h.mustRun("x")
	assert.Equal(t, StateApplying, during)
	assert.Equal(t, handler.StatusError, nested.Status)
	assert.True(t, errors.Is(nested.Error, ErrReentrant))
}

func TestExecuteWithoutEditor(t *testing.T) {
	exec := NewWithDefaults()
	res := exec.Execute(vim.Normalized{Command: vim.MotionCommand{Motion: vim.MotionRight}, Count: 1})
	assert.True(t, errors.Is(res.Error, ErrEditorNotSet))
}

func TestRepeatDeleteChar(t *testing.T) {
	h := newHarness(t, "abcdef")
	h.mustRun("x")
	assert.Equal(t, "bcdef", h.ed.Content())
	h.mustRun("3.")
	assert.Equal(t, "ef", h.ed.Content())

	entry, ok := h.exec.Repeat().Last()
	require.True(t, ok)
	assert.Equal(t, 3, entry.Command.Count, "a count given to . replaces the stored one")
}

func TestRepeatWithNothingStored(t *testing.T) {
	h := newHarness(t, "abc")
	res := h.run(".")
	assert.Equal(t, handler.StatusNoOp, res.Status)
	assert.Equal(t, "abc", h.ed.Content())
}

func TestRepeatChangeReplaysInsertedText(t *testing.T) {
	h := newHarness(t, "foo bar")
	h.mustRun("ciw")
	h.typeText("x")
	require.Equal(t, "x bar", h.ed.Content())

	h.mustRun("w")
	require.Equal(t, 2, h.ed.cursor.Column)
	writes := h.ed.writes
	h.mustRun(".")
	assert.Equal(t, "x x", h.ed.Content())
	assert.Equal(t, 2, h.ed.cursor.Column)
	assert.Equal(t, execctx.ModeNormal, h.ed.mode)
	assert.Equal(t, writes+1, h.ed.writes, "replay commits once")
	assert.False(t, h.exec.Inserting())
}

func TestRepeatMotionsAreNotRecorded(t *testing.T) {
	h := newHarness(t, "abc def")
	h.mustRun("w")
	h.mustRun("b")
	_, ok := h.exec.Repeat().Last()
	assert.False(t, ok)

	h.mustRun("yiw")
	entry, ok := h.exec.Repeat().Last()
	require.True(t, ok, "operators are always repeatable")
	assert.IsType(t, vim.OperatorCommand{}, entry.Command.Command)
}

func TestInsertCount(t *testing.T) {
	h := newHarness(t, "abc")
	h.mustRun("3i")
	h.typeText("hi")
	assert.Equal(t, "hihihiabc", h.ed.Content())
	assert.Equal(t, 5, h.ed.cursor.Column)
}

func TestOpenBelowCount(t *testing.T) {
	h := newHarness(t, "a")
	h.mustRun("3o")
	h.typeText("x")
	assert.Equal(t, "a\nx\nx\nx", h.ed.Content())
	assert.Equal(t, buffer.Position{Line: 3, Column: 0, Offset: 6}, h.ed.cursor)
}

func TestInsertBackspace(t *testing.T) {
	h := newHarness(t, "ab")
	h.ed.SetCursor(0, 1)
	h.mustRun("a")
	require.True(t, h.exec.InsertText("xy").IsOK())
	require.True(t, h.exec.Backspace().IsOK())
	assert.Equal(t, "abx", h.ed.Content())
	require.True(t, h.exec.ExitInsert().IsOK())

	entry, ok := h.exec.Repeat().Last()
	require.True(t, ok)
	assert.Equal(t, "x", entry.Inserted)
}

func TestBackspaceJoinsLines(t *testing.T) {
	h := newHarness(t, "ab\ncd")
	h.ed.SetCursor(1, 0)
	h.mustRun("i")
	require.True(t, h.exec.Backspace().IsOK())
	assert.Equal(t, "abcd", h.ed.Content())
	assert.Equal(t, 2, h.ed.cursor.Column)
}

func TestBackspaceOutsideInsert(t *testing.T) {
	h := newHarness(t, "ab")
	res := h.exec.Backspace()
	assert.True(t, errors.Is(res.Error, ErrNotInserting))
}

func TestExecuteForcedCharwise(t *testing.T) {
	h := newHarness(t, "abc\ndef")
	h.ed.SetCursor(0, 1)
	h.mustRun("dvj")
	assert.Equal(t, "aef", h.ed.Content())
}

func TestExecuteExclusiveBecomesLinewise(t *testing.T) {
	h := newHarness(t, "a\nb\n\nc")
	h.mustRun("d}")
	assert.Equal(t, "\nc", h.ed.Content())
}

func TestExecuteMotionsAndScroll(t *testing.T) {
	h := newHarness(t, "one\ntwo\nthree")
	h.mustRun("G")
	assert.Equal(t, 2, h.ed.cursor.Line)

	res := h.run("zz")
	require.True(t, res.IsOK())
	assert.Equal(t, execctx.ScrollCenter, res.Scroll)

	h.mustRun("$")
	assert.Equal(t, 4, h.ed.cursor.Column, "normal mode cursor stays on a character")
}

func TestExecuteSearchRemembersPattern(t *testing.T) {
	h := newHarness(t, "foo bar foo bar")
	h.mustRun("/bar<CR>")
	assert.Equal(t, 4, h.ed.cursor.Column)
	h.mustRun("n")
	assert.Equal(t, 12, h.ed.cursor.Column)

	reg, ok := h.regs.Get('/')
	require.True(t, ok)
	assert.Equal(t, "bar", reg.Content)
}

func TestExecuteUndoUsesHistory(t *testing.T) {
	h := newHarness(t, "abc")
	hist := &fakeHistory{}
	h.exec.SetHistory(hist)
	res := h.run("2u")
	require.True(t, res.IsOK())
	assert.Equal(t, 2, hist.undos)
	assert.True(t, res.Edited)
}

func TestExecuteMaxCount(t *testing.T) {
	h := newHarnessWith(t, "abcdef", DefaultConfig().WithMaxCount(2))
	h.mustRun("5x")
	assert.Equal(t, "cdef", h.ed.Content())
}

func TestExecuteRepeatCountClamped(t *testing.T) {
	h := newHarnessWith(t, "a", DefaultConfig().WithMaxCount(3))
	h.mustRun("yl")
	h.mustRun("p")
	assert.Equal(t, "aa", h.ed.Content())

	h.mustRun("50000.")
	assert.Equal(t, "aaaaa", h.ed.Content())

	// The clamped count is what gets stored for the next ".".
	h.mustRun(".")
	assert.Equal(t, "aaaaaaaa", h.ed.Content())
}

func TestExecuteFailedWriteKeepsRegisters(t *testing.T) {
	h := newHarness(t, "first\nsecond")
	h.regs.Yank('"', vim.Register{Content: "keep"})
	h.ed.rejectWrites = errors.New("read-only")

	res := h.run("dd")
	assert.Equal(t, handler.StatusError, res.Status)
	assert.Equal(t, "first\nsecond", h.ed.Content())

	reg, ok := h.regs.Get('"')
	require.True(t, ok)
	assert.Equal(t, "keep", reg.Content)
	reg, _ = h.regs.Get('1')
	assert.Empty(t, reg.Content)

	h.ed.rejectWrites = nil
	h.mustRun("dd")
	reg, ok = h.regs.Get('1')
	require.True(t, ok)
	assert.Equal(t, vim.Register{Content: "first", Linewise: true}, reg)
}

func TestExecuteHooks(t *testing.T) {
	h := newHarness(t, "abc")
	var seen []string
	h.exec.RegisterPostHook(PostExecuteFunc(func(cmd vim.Normalized, result *handler.Result) {
		seen = append(seen, result.Status.String())
	}))
	h.exec.RegisterPreHook(PreExecuteFunc(func(cmd *vim.Normalized) bool {
		_, isMotion := cmd.Command.(vim.MotionCommand)
		return !isMotion
	}))

	res := h.run("l")
	assert.Equal(t, handler.StatusFailed, res.Status)
	assert.True(t, errors.Is(res.Error, ErrCancelled))
	h.mustRun("x")
	assert.Equal(t, []string{"ok"}, seen)
}

func TestExecuteMetrics(t *testing.T) {
	h := newHarnessWith(t, "abc", DefaultConfig().WithMetrics())
	h.mustRun("x")
	h.run("fz")
	m := h.exec.Metrics()
	require.NotNil(t, m)
	assert.Equal(t, uint64(2), m.TotalExecutions())
	assert.Equal(t, uint64(1), m.TotalFailures())
	assert.Equal(t, uint64(1), m.CommandStats("delete_char").Executions)
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "idle", StateIdle.String())
	assert.Equal(t, "resolving", StateResolving.String())
	assert.Equal(t, "applying", StateApplying.String())
	assert.Equal(t, "failed", StateFailed.String())
}
