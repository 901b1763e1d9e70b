package dispatcher

import (
	"fmt"
	"io"
	"log/slog"
	"runtime"
	"sync"
	"time"

	"github.com/dshills/modalkit/internal/dispatcher/execctx"
	"github.com/dshills/modalkit/internal/dispatcher/handler"
	"github.com/dshills/modalkit/internal/dispatcher/handlers/cursor"
	"github.com/dshills/modalkit/internal/dispatcher/handlers/operator"
	"github.com/dshills/modalkit/internal/dispatcher/handlers/textobject"
	"github.com/dshills/modalkit/internal/engine/buffer"
	"github.com/dshills/modalkit/internal/input/vim"
)

// State is the executor's position in its command cycle.
type State uint8

const (
	// StateIdle means no command is running.
	StateIdle State = iota
	// StateResolving means the target range is being computed.
	StateResolving
	// StateApplying means an operator or action is changing the scratch.
	StateApplying
	// StateFailed means the running command failed and is being discarded.
	StateFailed
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateResolving:
		return "resolving"
	case StateApplying:
		return "applying"
	case StateFailed:
		return "failed"
	}
	return "unknown"
}

// Executor runs normalized commands against a host editor.
//
// Every command works on a scratch copy of the document. Only a command
// that succeeds is committed, in a single write, so a failed target or a
// panicking handler leaves the host untouched.
type Executor struct {
	mu    sync.RWMutex
	state State

	grammar   *vim.Grammar
	motions   *cursor.Registry
	objects   *textobject.Registry
	operators *operator.Registry
	actions   *ActionRegistry
	repeat    *RepeatController

	editor    execctx.Editor
	modes     execctx.ModeStore
	registers execctx.Registers
	history   execctx.History
	marks     *execctx.Marks

	config  Config
	metrics *Metrics
	logger  *slog.Logger

	preHooks  []PreExecuteHook
	postHooks []PostExecuteHook

	// Remembered arguments for ; , n and N.
	lastFind     vim.MotionID
	lastFindChar rune
	lastSearch   vim.MotionID
	lastPattern  string

	insert    *insertSession
	replaying bool
}

// New creates an executor with the built-in grammar and registries.
func New(config Config) *Executor {
	e := &Executor{
		grammar:   vim.DefaultGrammar(),
		motions:   cursor.DefaultRegistry(),
		objects:   textobject.DefaultRegistry(),
		operators: operator.DefaultRegistry(),
		actions:   DefaultActionRegistry(),
		repeat:    NewRepeatController(),
		marks:     execctx.NewMarks(),
		config:    config,
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	if config.EnableMetrics {
		e.metrics = NewMetrics()
	}
	return e
}

// NewWithDefaults creates an executor with the default configuration.
func NewWithDefaults() *Executor {
	return New(DefaultConfig())
}

// SetEditor sets the host document.
func (e *Executor) SetEditor(editor execctx.Editor) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.editor = editor
}

// SetModeStore sets where mode changes are recorded.
func (e *Executor) SetModeStore(modes execctx.ModeStore) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.modes = modes
}

// SetRegisters sets the register store.
func (e *Executor) SetRegisters(registers execctx.Registers) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.registers = registers
}

// SetHistory sets the undo history used by u and <C-r>.
func (e *Executor) SetHistory(history execctx.History) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.history = history
}

// SetGrammar replaces the grammar used to name commands. It must be the
// grammar the parser and normalizer use.
func (e *Executor) SetGrammar(g *vim.Grammar) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.grammar = g
}

// SetLogger sets the logger.
func (e *Executor) SetLogger(logger *slog.Logger) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.logger = logger
}

// RegisterPreHook adds a hook run before every command.
func (e *Executor) RegisterPreHook(h PreExecuteHook) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.preHooks = append(e.preHooks, h)
}

// RegisterPostHook adds a hook run after every command.
func (e *Executor) RegisterPostHook(h PostExecuteHook) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.postHooks = append(e.postHooks, h)
}

// Grammar returns the grammar.
func (e *Executor) Grammar() *vim.Grammar { return e.grammar }

// Motions returns the motion registry.
func (e *Executor) Motions() *cursor.Registry { return e.motions }

// TextObjects returns the text object registry.
func (e *Executor) TextObjects() *textobject.Registry { return e.objects }

// Operators returns the operator registry.
func (e *Executor) Operators() *operator.Registry { return e.operators }

// Actions returns the action registry.
func (e *Executor) Actions() *ActionRegistry { return e.actions }

// Repeat returns the repeat controller.
func (e *Executor) Repeat() *RepeatController { return e.repeat }

// Marks returns the session marks.
func (e *Executor) Marks() *execctx.Marks { return e.marks }

// Metrics returns the metrics collector (nil if disabled).
func (e *Executor) Metrics() *Metrics { return e.metrics }

// Config returns the executor configuration.
func (e *Executor) Config() Config { return e.config }

// State returns the current state.
func (e *Executor) State() State {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.state
}

// enter moves Idle to Resolving. It fails while a command is running,
// which is how a handler calling back into the executor is refused.
func (e *Executor) enter() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.state != StateIdle {
		return false
	}
	e.state = StateResolving
	return true
}

func (e *Executor) setState(s State) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.state = s
}

// Execute runs one normalized command and commits its effect.
func (e *Executor) Execute(cmd vim.Normalized) handler.Result {
	if !e.enter() {
		return handler.Error(ErrReentrant)
	}
	defer e.setState(StateIdle)
	start := time.Now()

	e.mu.RLock()
	pre := append([]PreExecuteHook(nil), e.preHooks...)
	post := append([]PostExecuteHook(nil), e.postHooks...)
	e.mu.RUnlock()

	for _, h := range pre {
		if !h.PreExecute(&cmd) {
			return handler.Failed(ErrCancelled)
		}
	}
	if e.config.MaxCount > 0 && cmd.Count > e.config.MaxCount {
		cmd.Count = e.config.MaxCount
	}

	var result handler.Result
	if e.editor == nil {
		result = handler.Error(ErrEditorNotSet)
	} else {
		result = e.run(cmd)
	}

	for _, h := range post {
		h.PostExecute(cmd, &result)
	}
	if e.metrics != nil {
		e.metrics.RecordExecute(e.commandName(cmd), time.Since(start), result.Status)
	}
	return result
}

func (e *Executor) run(cmd vim.Normalized) handler.Result {
	if a, ok := cmd.Command.(vim.ActionCommand); ok && a.Action == vim.ActRepeat {
		count := 0
		if a.Count > 0 {
			count = cmd.Count
		}
		return e.replay(count)
	}

	ctx := e.newContext(cmd)
	if res := e.apply(ctx, cmd); !res.IsOK() {
		return res
	}
	res := e.commit(ctx, cmd)
	if res.IsOK() && cmd.Repeatable {
		e.repeat.Record(cmd)
	}
	return res
}

// replay runs the stored repeatable command, with count replacing its
// count when given. Text typed after the original command is replayed in
// the same commit, so one undo reverts the whole repeat.
func (e *Executor) replay(count int) handler.Result {
	entry, ok := e.repeat.Last()
	if !ok {
		return handler.NoOp()
	}
	if e.replaying {
		return handler.Error(ErrReentrant)
	}
	e.replaying = true
	defer func() { e.replaying = false }()

	if e.config.MaxCount > 0 && count > e.config.MaxCount {
		count = e.config.MaxCount
	}
	cmd := entry.Command
	if count > 0 {
		cmd = cmd.WithCount(count)
	}
	ctx := e.newContext(cmd)
	if res := e.apply(ctx, cmd); !res.IsOK() {
		return res
	}
	if ctx.ModeChange == execctx.ModeInsert {
		times, openLine := insertShape(cmd)
		typeInto(ctx, entry.Inserted, times, openLine)
		ctx.ModeChange = ""
	}

	res := e.commit(ctx, cmd)
	if res.IsOK() && count > 0 {
		e.repeat.Record(cmd)
		e.repeat.AttachInserted(entry.Inserted)
	}
	return res
}

// newContext builds the scratch context for cmd.
func (e *Executor) newContext(cmd vim.Normalized) *execctx.ExecutionContext {
	ctx := execctx.New(e.editor.Lines(), e.editor.Cursor())
	ctx.Count = cmd.Count
	ctx.Register = cmd.Register
	if e.registers != nil {
		ctx.Registers = execctx.NewStagedRegisters(e.registers)
	}
	ctx.Marks = e.marks
	ctx.History = e.history
	ctx.TabWidth = e.editor.TabWidth()
	ctx.ShiftWidth = e.editor.ShiftWidth()
	if s, ok := e.editor.(execctx.IndentStyler); ok {
		ctx.ExpandTab = s.ExpandTab()
	}
	return ctx
}

// apply resolves and applies cmd on the scratch context.
func (e *Executor) apply(ctx *execctx.ExecutionContext, cmd vim.Normalized) (result handler.Result) {
	e.setState(StateResolving)
	if e.config.RecoverFromPanic {
		defer func() {
			if r := recover(); r != nil {
				stack := make([]byte, 4096)
				n := runtime.Stack(stack, false)
				e.logger.Error("handler panic", "command", cmd.Command.String(), "panic", r, "stack", string(stack[:n]))
				if e.metrics != nil {
					e.metrics.RecordPanic(e.commandName(cmd))
				}
				e.setState(StateFailed)
				result = handler.Error(fmt.Errorf("%w: %v", ErrExecution, r))
			}
		}()
	}

	switch c := cmd.Command.(type) {
	case vim.MotionCommand:
		result = e.applyMotion(ctx, c, cmd.Count)
	case vim.OperatorCommand:
		result = e.applyOperator(ctx, c, cmd.Count)
	case vim.ActionCommand:
		result = e.applyAction(ctx, c)
	default:
		result = handler.Errorf("%w: %T", ErrNoHandler, cmd.Command)
	}
	if !result.IsOK() {
		e.setState(StateFailed)
	}
	return result
}

func (e *Executor) applyMotion(ctx *execctx.ExecutionContext, c vim.MotionCommand, count int) handler.Result {
	r, ok := e.resolveMotion(ctx, c.Motion, c.Arg, count, c.Count > 0, false)
	if !ok {
		return handler.Failed(ErrNoTarget)
	}
	e.setState(StateApplying)
	ctx.SetCursor(r.End.Line, r.End.Column)
	switch c.Motion {
	case vim.MotionScrollCenter:
		ctx.Scroll = execctx.ScrollCenter
	case vim.MotionScrollTop:
		ctx.Scroll = execctx.ScrollTop
	case vim.MotionScrollBottom:
		ctx.Scroll = execctx.ScrollBottom
	}
	return handler.Success()
}

func (e *Executor) applyOperator(ctx *execctx.ExecutionContext, c vim.OperatorCommand, count int) handler.Result {
	if c.Target == nil {
		return handler.Failed(vim.ErrMissingTarget)
	}
	op, ok := e.operators.Lookup(c.Operator)
	if !ok {
		return handler.Errorf("%w: operator %d", ErrNoHandler, c.Operator)
	}
	r, ok := e.resolveTarget(ctx, *c.Target, count, c.CountBefore > 0 || c.CountAfter > 0)
	if !ok {
		return handler.Failed(ErrNoTarget)
	}
	e.setState(StateApplying)
	if err := op.Apply(ctx, r); err != nil {
		return handler.Failed(err)
	}
	return handler.Success()
}

func (e *Executor) applyAction(ctx *execctx.ExecutionContext, c vim.ActionCommand) handler.Result {
	act := e.actions.Get(c.Action)
	if act == nil {
		return handler.Errorf("%w: action %d", ErrNoHandler, c.Action)
	}
	ctx.Char = c.Char
	e.setState(StateApplying)
	if err := act.Apply(ctx); err != nil {
		return handler.Failed(err)
	}
	return handler.Success()
}

// resolveTarget computes the normalized range an operator acts on.
func (e *Executor) resolveTarget(ctx *execctx.ExecutionContext, t vim.Target, count int, countGiven bool) (buffer.Range, bool) {
	lines := ctx.Lines()
	if t.IsTextObject() {
		fn, ok := e.objects.Lookup(t.Object)
		if !ok {
			return buffer.Range{}, false
		}
		r, ok := fn(ctx.Cursor(), lines, t.Mode, count)
		if !ok {
			return buffer.Range{}, false
		}
		return forceKind(r.Normalize(), t.Forced), true
	}

	r, ok := e.resolveMotion(ctx, t.Motion, t.Arg, count, countGiven, true)
	if !ok {
		return buffer.Range{}, false
	}
	r = r.Normalize()
	if t.Forced == vim.ForceNone {
		r = adjustExclusive(r, lines)
	}
	return forceKind(r, t.Forced), true
}

// resolveMotion runs a motion, supplying and remembering the arguments
// of the repeatable searches.
func (e *Executor) resolveMotion(ctx *execctx.ExecutionContext, id vim.MotionID, arg vim.MotionArg, count int, countGiven, op bool) (buffer.Range, bool) {
	meta := handler.MotionMeta{
		Char:       arg.Char,
		Pattern:    arg.Pattern,
		Operator:   op,
		CountGiven: countGiven,
		Marks:      e.marks,
	}
	switch {
	case id.IsCharSearch():
		e.lastFind, e.lastFindChar = id, arg.Char
	case id == vim.MotionRepeatFind || id == vim.MotionRepeatFindReverse:
		meta.Char = e.lastFindChar
		meta.LastFind = e.lastFind
	case id.IsSearch():
		if meta.Pattern == "" {
			meta.Pattern = e.lastPattern
		}
		if meta.Pattern != "" {
			e.lastSearch, e.lastPattern = id, meta.Pattern
			if e.registers != nil {
				e.registers.SetLastSearch(meta.Pattern)
			}
		}
	case id == vim.MotionSearchNext || id == vim.MotionSearchPrev:
		meta.Pattern = e.lastPattern
		meta.LastSearch = e.lastSearch
	}

	fn, ok := e.motions.Lookup(id)
	if !ok {
		return buffer.Range{}, false
	}
	return fn(ctx.Cursor(), ctx.Lines(), count, meta)
}

// adjustExclusive applies the exclusive motion rule: a charwise
// exclusive range ending in column 0 of a later line stops at the end of
// the line before, and becomes linewise if it started at or before the
// first non-blank.
func adjustExclusive(r buffer.Range, lines buffer.Lines) buffer.Range {
	if r.Inclusive || r.Linewise || r.End.Line <= r.Start.Line || r.End.Column != 0 {
		return r
	}
	prev := r.End.Line - 1
	if r.Start.Column <= lines.FirstNonBlank(r.Start.Line) {
		r.Linewise = true
		r.End = lines.Position(prev, 0)
		return r
	}
	r.End = lines.Position(prev, lines.RuneLen(prev))
	return r
}

// forceKind applies o_v and o_V. v makes a linewise range charwise
// exclusive and toggles a charwise range between inclusive and
// exclusive; V makes any range linewise.
func forceKind(r buffer.Range, forced vim.ForcedKind) buffer.Range {
	switch forced {
	case vim.ForceCharwise:
		if r.Linewise {
			r.Linewise = false
			r.Inclusive = false
		} else {
			r.Inclusive = !r.Inclusive
		}
	case vim.ForceLinewise:
		r.Linewise = true
		r.Inclusive = false
	}
	return r
}

// commit writes the scratch context to the host in one step.
func (e *Executor) commit(ctx *execctx.ExecutionContext, cmd vim.Normalized) handler.Result {
	ed := e.editor
	if ctx.External() {
		cur := clampNormal(ed.Lines(), ed.Cursor())
		ed.SetCursor(cur.Line, cur.Column)
		ctx.FlushRegisters()
		res := handler.Success().WithCursor(cur)
		res.Edited = true
		return res
	}

	inserting := ctx.ModeChange == execctx.ModeInsert
	cur := ctx.Cursor()
	if !inserting {
		cur = clampNormal(ctx.Lines(), cur)
	}
	if inserting {
		e.beginInsert(cmd)
	}

	if ctx.Dirty() {
		if err := e.write(ctx.Content(), cur); err != nil {
			if inserting {
				e.endInsert()
			}
			return handler.Error(err)
		}
	} else {
		ed.SetCursor(cur.Line, cur.Column)
	}
	ctx.FlushRegisters()

	if ctx.ModeChange != "" && e.modes != nil {
		if err := e.modes.SetMode(ctx.ModeChange); err != nil {
			e.logger.Warn("mode change failed", "mode", ctx.ModeChange, "error", err)
		}
	}

	res := handler.Success().WithCursor(cur).WithModeChange(ctx.ModeChange)
	res.Edited = ctx.Dirty()
	res.Scroll = ctx.Scroll
	return res
}

// write replaces the host content and cursor, atomically when the host
// supports it.
func (e *Executor) write(content string, cur buffer.Position) error {
	if a, ok := e.editor.(execctx.AtomicEditor); ok {
		return a.Apply(content, cur.Line, cur.Column)
	}
	if err := e.editor.ReplaceContent(content); err != nil {
		return err
	}
	e.editor.SetCursor(cur.Line, cur.Column)
	return nil
}

// clampNormal keeps a normal mode cursor on a character.
func clampNormal(lines buffer.Lines, pos buffer.Position) buffer.Position {
	line := lines.ClampLine(pos.Line)
	return lines.Position(line, min(pos.Column, lines.LastCol(line)))
}

// commandName names a command for metrics.
func (e *Executor) commandName(cmd vim.Normalized) string {
	switch c := cmd.Command.(type) {
	case vim.ActionCommand:
		if spec, ok := e.grammar.Action(c.Action); ok {
			return spec.Name
		}
	case vim.OperatorCommand:
		if spec, ok := e.grammar.Operator(c.Operator); ok {
			return spec.Name
		}
	case vim.MotionCommand:
		if spec, ok := e.grammar.Motion(c.Motion); ok {
			return spec.Name
		}
	}
	if cmd.Command == nil {
		return "none"
	}
	return cmd.Command.String()
}
