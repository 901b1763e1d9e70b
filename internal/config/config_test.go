package config

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/dshills/modalkit/internal/config/loader"
	"github.com/dshills/modalkit/internal/config/watcher"
)

// staticLoader is a fixed settings layer.
type staticLoader map[string]any

func (s staticLoader) Load() (map[string]any, error) { return s, nil }

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Default().Validate() = %v", err)
	}
	if cfg.Input.SequenceTimeout() != time.Second {
		t.Errorf("SequenceTimeout = %v, want 1s", cfg.Input.SequenceTimeout())
	}
	if cfg.Editor.TabWidth != 8 || cfg.Editor.ShiftWidth != 4 {
		t.Errorf("Editor = %+v", cfg.Editor)
	}
}

func TestLoadTOML(t *testing.T) {
	path := writeFile(t, "config.toml", `
[input]
sequence_timeout_ms = 250

[editor]
tab_width = 4
expand_tab = true

[remap]
"<C-c>" = "<Esc>"
`)

	cfg, err := LoadWith(path)
	if err != nil {
		t.Fatalf("LoadWith() error = %v", err)
	}
	if cfg.Input.SequenceTimeout() != 250*time.Millisecond {
		t.Errorf("SequenceTimeout = %v", cfg.Input.SequenceTimeout())
	}
	if cfg.Editor.TabWidth != 4 || !cfg.Editor.ExpandTab {
		t.Errorf("Editor = %+v", cfg.Editor)
	}
	// Unset values keep their defaults.
	if cfg.Editor.ShiftWidth != 4 || cfg.Input.MaxCount != 10000 {
		t.Errorf("defaults lost: %+v %+v", cfg.Editor, cfg.Input)
	}

	remaps := cfg.Remaps()
	if len(remaps) != 1 {
		t.Fatalf("Remaps() = %v", remaps)
	}
	for from, to := range remaps {
		if from.String() != "<C-c>" || !to.IsEscape() {
			t.Errorf("remap %s -> %s", from, to)
		}
	}
}

func TestLoadYAML(t *testing.T) {
	path := writeFile(t, "config.yaml", "plugins:\n  scripts:\n    - a.lua\nlogging:\n  level: debug\n")

	cfg, err := LoadWith(path)
	if err != nil {
		t.Fatalf("LoadWith() error = %v", err)
	}
	if len(cfg.Plugins.Scripts) != 1 || cfg.Plugins.Scripts[0] != "a.lua" {
		t.Errorf("Scripts = %v", cfg.Plugins.Scripts)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Level = %q", cfg.Logging.Level)
	}
}

func TestLoadLayers(t *testing.T) {
	path := writeFile(t, "config.toml", "[editor]\ntab_width = 4\nshift_width = 2\n")
	env := staticLoader{"editor": map[string]any{"tab_width": int64(2)}}

	cfg, err := LoadWith(path, env)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Editor.TabWidth != 2 {
		t.Errorf("TabWidth = %d, want the later layer's 2", cfg.Editor.TabWidth)
	}
	if cfg.Editor.ShiftWidth != 2 {
		t.Errorf("ShiftWidth = %d, want 2", cfg.Editor.ShiftWidth)
	}
}

func TestLoadErrors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := LoadWith(filepath.Join(t.TempDir(), "nope.toml"))
		if !errors.Is(err, ErrFileNotFound) {
			t.Errorf("error = %v, want ErrFileNotFound", err)
		}
	})

	t.Run("unknown setting", func(t *testing.T) {
		path := writeFile(t, "config.toml", "[editor]\ntabsize = 4\n")
		_, err := LoadWith(path)
		if !errors.Is(err, ErrValidationFailed) {
			t.Errorf("error = %v, want ErrValidationFailed", err)
		}
	})

	t.Run("out of range", func(t *testing.T) {
		path := writeFile(t, "config.toml", "[editor]\ntab_width = 0\n[input]\nmax_count = -1\n")
		_, err := LoadWith(path)
		if err == nil {
			t.Fatal("expected validation error")
		}
		for _, want := range []string{"editor.tab_width", "input.max_count"} {
			if !strings.Contains(err.Error(), want) {
				t.Errorf("error %q does not mention %s", err, want)
			}
		}
	})

	t.Run("parse error", func(t *testing.T) {
		path := writeFile(t, "config.toml", "[editor\n")
		_, err := LoadWith(path)
		var perr *loader.ParseError
		if !errors.As(err, &perr) {
			t.Errorf("error = %v, want *loader.ParseError", err)
		}
	})

	t.Run("bad remap", func(t *testing.T) {
		path := writeFile(t, "config.toml", "[remap]\n\"<C-c>\" = \"<Nope>\"\n")
		_, err := LoadWith(path)
		if !errors.Is(err, ErrValidationFailed) {
			t.Errorf("error = %v, want ErrValidationFailed", err)
		}
	})
}

func TestLoadOptional(t *testing.T) {
	cfg, err := LoadOptional(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("LoadOptional() error = %v", err)
	}
	if cfg.Editor.TabWidth != 8 {
		t.Errorf("TabWidth = %d, want default", cfg.Editor.TabWidth)
	}
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    slog.Level
		wantErr bool
	}{
		{"debug", slog.LevelDebug, false},
		{"INFO", slog.LevelInfo, false},
		{"", slog.LevelInfo, false},
		{"warning", slog.LevelWarn, false},
		{"error", slog.LevelError, false},
		{"loud", slog.LevelInfo, true},
	}

	for _, tt := range tests {
		got, err := ParseLogLevel(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseLogLevel(%q) error = %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("ParseLogLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestWatch(t *testing.T) {
	path := writeFile(t, "config.toml", "[editor]\ntab_width = 4\n")

	reloaded := make(chan *Config, 4)
	w, err := Watch(path, func(cfg *Config, err error) {
		if err == nil {
			reloaded <- cfg
		}
	}, watcher.WithDebounce(20*time.Millisecond))
	if err != nil {
		t.Fatalf("Watch() error = %v", err)
	}
	defer w.Close()

	if err := os.WriteFile(path, []byte("[editor]\ntab_width = 2\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	// A save may be seen half written; wait for the final content.
	timeout := time.After(2 * time.Second)
	for {
		select {
		case cfg := <-reloaded:
			if cfg.Editor.TabWidth == 2 {
				return
			}
		case <-timeout:
			t.Fatal("config was not reloaded")
		}
	}
}
