package input

import (
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/dshills/modalkit/internal/dispatcher"
	"github.com/dshills/modalkit/internal/dispatcher/handler"
	"github.com/dshills/modalkit/internal/input/key"
	"github.com/dshills/modalkit/internal/input/mode"
	"github.com/dshills/modalkit/internal/input/vim"
)

// Config configures the input handler.
type Config struct {
	// SequenceTimeout is how long to wait for the next key of a
	// multi-key command. Default: 1000ms
	SequenceTimeout time.Duration

	// EnableMetrics turns on key and command counters.
	EnableMetrics bool
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() Config {
	return Config{
		SequenceTimeout: DefaultSequenceTimeout,
		EnableMetrics:   true,
	}
}

// Outcome describes what one key did.
type Outcome struct {
	// Status is the parse status of the buffered keys in normal mode.
	Status vim.ParseStatus

	// Awaiting says what an incomplete parse waits for.
	Awaiting vim.Awaiting

	// Pending is the buffered keys in notation while a command is
	// incomplete.
	Pending string

	// Command is the executed command, if the keys completed one.
	Command *vim.Normalized

	// Result is the execution result of Command or of an insert mode key.
	Result *handler.Result

	// Cancelled is set when <Esc> discarded buffered keys.
	Cancelled bool

	// Consumed is set when a hook swallowed the key.
	Consumed bool
}

// Handler is one editing session's input pipeline: it buffers keys,
// parses and normalizes complete commands and hands them to the
// executor. In insert mode keys are typed into the document instead.
type Handler struct {
	mu sync.Mutex

	config     Config
	keys       *KeyBuffer
	parser     *vim.Parser
	normalizer *vim.Normalizer
	exec       *dispatcher.Executor
	modes      *mode.Manager
	hooks      *HookManager
	metrics    *Metrics
	logger     *slog.Logger

	closed bool
}

// NewHandler creates a session over exec. The executor's grammar is used
// for parsing and modes becomes its mode store.
func NewHandler(exec *dispatcher.Executor, modes *mode.Manager, config Config) *Handler {
	h := &Handler{
		config:     config,
		parser:     vim.NewParser(exec.Grammar()),
		normalizer: vim.NewNormalizer(exec.Grammar()),
		exec:       exec,
		modes:      modes,
		hooks:      NewHookManager(),
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	if config.EnableMetrics {
		h.metrics = NewMetrics()
	}
	exec.SetModeStore(modes)

	h.keys = NewKeyBuffer(config.SequenceTimeout, &h.mu)
	h.keys.OnExpire(func(discarded []key.Event) {
		if h.metrics != nil {
			h.metrics.RecordSequenceTimeout()
		}
		h.logger.Debug("key sequence timed out", "keys", key.NewSequenceFrom(discarded...).String())
	})
	return h
}

// SetLogger sets the logger.
func (h *Handler) SetLogger(logger *slog.Logger) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.logger = logger
}

// HandleKey processes one key event.
func (h *Handler) HandleKey(ev key.Event) Outcome {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return Outcome{}
	}
	start := time.Now()

	if h.hooks.RunPreKeyEvent(&ev) {
		if h.metrics != nil {
			h.metrics.RecordHookConsumption()
		}
		return Outcome{Consumed: true}
	}

	var out Outcome
	if h.modes.IsMode(mode.ModeInsert) {
		out = h.handleInsert(ev)
	} else {
		out = h.handleNormal(ev)
	}

	h.hooks.RunPostKeyEvent(ev, out)
	if h.metrics != nil {
		h.metrics.RecordKeyEvent(time.Since(start), out)
	}
	return out
}

func (h *Handler) handleNormal(ev key.Event) Outcome {
	if ev.IsEscape() {
		cancelled := h.keys.Len() > 0
		h.keys.Clear()
		if !cancelled && !h.modes.IsMode(mode.ModeNormal) {
			_ = h.modes.SetMode(mode.ModeNormal)
		}
		return Outcome{Status: vim.ParseInvalid, Cancelled: cancelled}
	}

	events := h.keys.Add(ev)
	pr := h.parser.Parse(events)
	out := Outcome{Status: pr.Status, Awaiting: pr.Awaiting}

	switch pr.Status {
	case vim.ParseIncomplete, vim.ParseNeedsChar:
		out.Pending = vim.Describe(events)
		return out

	case vim.ParseInvalid:
		h.keys.Clear()
		h.logger.Debug("invalid key sequence", "keys", vim.Describe(events))
		return out
	}

	h.keys.Clear()
	n, err := h.normalizer.Normalize(pr.Command)
	if err != nil {
		h.logger.Debug("normalize failed", "keys", vim.Describe(events), "error", err)
		out.Status = vim.ParseInvalid
		return out
	}
	res := h.exec.Execute(n)
	switch res.Status {
	case handler.StatusError:
		h.logger.Error("command failed", "keys", vim.Describe(events), "error", res.Error)
	case handler.StatusFailed:
		h.logger.Debug("command found no target", "keys", vim.Describe(events), "error", res.Error)
	}
	out.Command = &n
	out.Result = &res
	return out
}

func (h *Handler) handleInsert(ev key.Event) Outcome {
	var res handler.Result
	switch {
	case ev.IsEscape():
		res = h.exec.ExitInsert()
		if res.Status == handler.StatusNoOp {
			// Insert mode entered without a session.
			_ = h.modes.SetMode(mode.ModeNormal)
		}
	case ev.IsEnter():
		res = h.exec.Newline()
	case ev.IsBackspace():
		res = h.exec.Backspace()
	case ev.Key == key.KeyTab && ev.Modifiers == key.ModNone:
		res = h.exec.InsertText("\t")
	case ev.IsChar():
		res = h.exec.InsertText(string(ev.Rune))
	default:
		return Outcome{}
	}
	return Outcome{Status: vim.ParseComplete, Result: &res}
}

// Feed parses keys in notation ("ciwfoo<Esc>") and handles each event.
// It returns the outcome of every key.
func (h *Handler) Feed(keys string) ([]Outcome, error) {
	seq, err := key.ParseSequence(keys)
	if err != nil {
		return nil, err
	}
	outcomes := make([]Outcome, 0, seq.Len())
	for _, ev := range seq.Events {
		outcomes = append(outcomes, h.HandleKey(ev))
	}
	return outcomes, nil
}

// Pending returns the buffered keys in notation.
func (h *Handler) Pending() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.keys.String()
}

// KeyBuffer returns the session's key buffer.
func (h *Handler) KeyBuffer() *KeyBuffer { return h.keys }

// Hooks returns the hook manager.
func (h *Handler) Hooks() *HookManager { return h.hooks }

// Metrics returns the metrics tracker (nil if disabled).
func (h *Handler) Metrics() *Metrics { return h.metrics }

// Executor returns the executor commands are sent to.
func (h *Handler) Executor() *dispatcher.Executor { return h.exec }

// Modes returns the mode manager.
func (h *Handler) Modes() *mode.Manager { return h.modes }

// CurrentMode returns the name of the current mode.
func (h *Handler) CurrentMode() string { return h.modes.Mode() }

// Close stops the sequence timer. Later keys are ignored.
func (h *Handler) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}
	h.closed = true
	h.keys.Clear()
}

// IsClosed returns true if the handler has been closed.
func (h *Handler) IsClosed() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.closed
}
