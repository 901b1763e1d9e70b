package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/dshills/modalkit/internal/input/key"
)

// Config holds all modalkit settings.
type Config struct {
	Input     InputConfig       `toml:"input" yaml:"input"`
	Editor    EditorConfig      `toml:"editor" yaml:"editor"`
	Clipboard ClipboardConfig   `toml:"clipboard" yaml:"clipboard"`
	Plugins   PluginConfig      `toml:"plugins" yaml:"plugins"`
	Logging   LoggingConfig     `toml:"logging" yaml:"logging"`
	Remap     map[string]string `toml:"remap" yaml:"remap"`
}

// InputConfig configures key handling.
type InputConfig struct {
	// SequenceTimeoutMS is how long a partial command waits for its next
	// key, in milliseconds.
	SequenceTimeoutMS int `toml:"sequence_timeout_ms" yaml:"sequence_timeout_ms"`

	// MaxCount caps command counts.
	MaxCount int `toml:"max_count" yaml:"max_count"`
}

// SequenceTimeout returns the timeout as a duration.
func (c InputConfig) SequenceTimeout() time.Duration {
	return time.Duration(c.SequenceTimeoutMS) * time.Millisecond
}

// EditorConfig configures the document.
type EditorConfig struct {
	TabWidth   int  `toml:"tab_width" yaml:"tab_width"`
	ShiftWidth int  `toml:"shift_width" yaml:"shift_width"`
	ExpandTab  bool `toml:"expand_tab" yaml:"expand_tab"`
	UndoLevels int  `toml:"undo_levels" yaml:"undo_levels"`
}

// ClipboardConfig configures the + and * registers.
type ClipboardConfig struct {
	Enabled bool `toml:"enabled" yaml:"enabled"`
}

// PluginConfig lists Lua scripts loaded at startup.
type PluginConfig struct {
	Scripts []string `toml:"scripts" yaml:"scripts"`
}

// LoggingConfig configures the session log.
type LoggingConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `toml:"level" yaml:"level"`
	// File is the log destination. Empty means the session's own writer.
	File string `toml:"file" yaml:"file"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Input: InputConfig{
			SequenceTimeoutMS: 1000,
			MaxCount:          10000,
		},
		Editor: EditorConfig{
			TabWidth:   8,
			ShiftWidth: 4,
			UndoLevels: 1000,
		},
		Clipboard: ClipboardConfig{Enabled: true},
		Logging:   LoggingConfig{Level: "info"},
		Remap:     map[string]string{},
	}
}

// Validate checks every setting and returns all failures joined.
func (c *Config) Validate() error {
	var errs []error
	check := func(ok bool, path, msg string, value any) {
		if !ok {
			errs = append(errs, &ValidationError{Path: path, Message: msg, Value: value})
		}
	}

	check(c.Input.SequenceTimeoutMS >= 0, "input.sequence_timeout_ms", "must not be negative", c.Input.SequenceTimeoutMS)
	check(c.Input.MaxCount > 0, "input.max_count", "must be positive", c.Input.MaxCount)
	check(c.Editor.TabWidth >= 1 && c.Editor.TabWidth <= 16, "editor.tab_width", "must be between 1 and 16", c.Editor.TabWidth)
	check(c.Editor.ShiftWidth >= 1 && c.Editor.ShiftWidth <= 16, "editor.shift_width", "must be between 1 and 16", c.Editor.ShiftWidth)
	check(c.Editor.UndoLevels >= 0, "editor.undo_levels", "must not be negative", c.Editor.UndoLevels)
	_, err := ParseLogLevel(c.Logging.Level)
	check(err == nil, "logging.level", "must be debug, info, warn or error", c.Logging.Level)

	for from, to := range c.Remap {
		if _, err := key.Parse(from); err != nil {
			errs = append(errs, &ValidationError{Path: "remap", Message: "bad key " + from, Value: from})
		}
		if _, err := key.Parse(to); err != nil {
			errs = append(errs, &ValidationError{Path: "remap." + from, Message: "bad key " + to, Value: to})
		}
	}

	return errors.Join(errs...)
}

// ParseLogLevel converts a level name to a slog.Level.
func ParseLogLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level %q", s)
	}
}

// Remaps returns the parsed remap table. Invalid entries are skipped;
// Validate reports them.
func (c *Config) Remaps() map[key.Event]key.Event {
	out := make(map[key.Event]key.Event, len(c.Remap))
	for from, to := range c.Remap {
		f, err1 := key.Parse(from)
		t, err2 := key.Parse(to)
		if err1 == nil && err2 == nil {
			f.Timestamp, t.Timestamp = time.Time{}, time.Time{}
			out[f] = t
		}
	}
	return out
}
