package loader

import (
	"errors"
	"io/fs"
	"strings"
	"testing"
	"testing/fstest"
)

// mapFS adapts fstest.MapFS to FileSystem.
type mapFS struct{ fstest.MapFS }

func (m mapFS) ReadFile(path string) ([]byte, error) { return m.MapFS.ReadFile(path) }

func TestForPath(t *testing.T) {
	tests := []struct {
		path    string
		want    string
		wantErr bool
	}{
		{"config.toml", "*loader.TOMLLoader", false},
		{"config.YAML", "*loader.YAMLLoader", false},
		{"config.yml", "*loader.YAMLLoader", false},
		{"config.json", "", true},
	}

	for _, tt := range tests {
		l, err := ForPath(tt.path)
		if tt.wantErr {
			if !errors.Is(err, ErrUnsupportedFormat) {
				t.Errorf("ForPath(%q) error = %v, want ErrUnsupportedFormat", tt.path, err)
			}
			continue
		}
		if err != nil {
			t.Fatalf("ForPath(%q) error = %v", tt.path, err)
		}
		if got := typeName(l); got != tt.want {
			t.Errorf("ForPath(%q) = %s, want %s", tt.path, got, tt.want)
		}
	}
}

func typeName(l FileLoader) string {
	switch l.(type) {
	case *TOMLLoader:
		return "*loader.TOMLLoader"
	case *YAMLLoader:
		return "*loader.YAMLLoader"
	}
	return "?"
}

func TestTOMLLoader_Load(t *testing.T) {
	fsys := mapFS{fstest.MapFS{
		"config.toml": {Data: []byte("[editor]\ntab_width = 4\n\n[remap]\n\"<C-c>\" = \"<Esc>\"\n")},
	}}

	cfg, err := NewTOMLLoaderWithFS(fsys, "config.toml").Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	editor := cfg["editor"].(map[string]any)
	if editor["tab_width"] != int64(4) {
		t.Errorf("tab_width = %v (%T), want 4", editor["tab_width"], editor["tab_width"])
	}
	remap := cfg["remap"].(map[string]any)
	if remap["<C-c>"] != "<Esc>" {
		t.Errorf("remap = %v", remap)
	}
}

func TestTOMLLoader_Missing(t *testing.T) {
	cfg, err := NewTOMLLoaderWithFS(mapFS{fstest.MapFS{}}, "nope.toml").Load()
	if err != nil || cfg != nil {
		t.Errorf("Load() = %v, %v; want nil, nil", cfg, err)
	}
}

func TestTOMLLoader_ParseError(t *testing.T) {
	_, err := NewTOMLLoader("").LoadFromReader(strings.NewReader("[editor\ntab_width = 4\n"))
	var perr *ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("error = %v, want *ParseError", err)
	}
	if perr.Line == 0 {
		t.Error("Line should be set")
	}
}

func TestYAMLLoader_Load(t *testing.T) {
	fsys := mapFS{fstest.MapFS{
		"config.yaml": {Data: []byte("input:\n  sequence_timeout_ms: 500\nplugins:\n  scripts: [a.lua, b.lua]\n")},
	}}

	cfg, err := NewYAMLLoaderWithFS(fsys, "config.yaml").Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	input := cfg["input"].(map[string]any)
	if input["sequence_timeout_ms"] != 500 {
		t.Errorf("sequence_timeout_ms = %v (%T), want 500", input["sequence_timeout_ms"], input["sequence_timeout_ms"])
	}
	scripts := cfg["plugins"].(map[string]any)["scripts"].([]any)
	if len(scripts) != 2 {
		t.Errorf("scripts = %v", scripts)
	}
}

func TestYAMLLoader_NotMapping(t *testing.T) {
	_, err := NewYAMLLoader("").LoadFromReader(strings.NewReader("- a\n- b\n"))
	var perr *ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("error = %v, want *ParseError", err)
	}
	if perr.Line != 1 {
		t.Errorf("Line = %d, want 1", perr.Line)
	}
}

func TestYAMLLoader_Empty(t *testing.T) {
	cfg, err := NewYAMLLoader("").LoadFromReader(strings.NewReader(""))
	if err != nil {
		t.Fatalf("error = %v", err)
	}
	if len(cfg) != 0 {
		t.Errorf("cfg = %v, want empty", cfg)
	}
}

func TestEnvLoader(t *testing.T) {
	l := NewEnvLoader(DefaultEnvPrefix)
	l.environ = func() []string {
		return []string{
			"HOME=/root",
			"MODALKIT_EDITOR_TAB_WIDTH=4",
			"MODALKIT_EDITOR_EXPAND_TAB=yes",
			"MODALKIT_LOG_LEVEL=debug",
			"MODALKIT_PLUGINS_SCRIPTS=a.lua, b.lua",
			"MODALKIT_BOGUS=1",
		}
	}

	cfg, err := l.Load()
	if err != nil {
		t.Fatal(err)
	}
	editor := cfg["editor"].(map[string]any)
	if editor["tab_width"] != int64(4) {
		t.Errorf("tab_width = %v", editor["tab_width"])
	}
	if editor["expand_tab"] != true {
		t.Errorf("expand_tab = %v", editor["expand_tab"])
	}
	if cfg["logging"].(map[string]any)["level"] != "debug" {
		t.Errorf("logging = %v", cfg["logging"])
	}
	if got := cfg["plugins"].(map[string]any)["scripts"].([]any); len(got) != 2 || got[1] != "b.lua" {
		t.Errorf("scripts = %v", got)
	}
	if _, ok := cfg["bogus"]; ok {
		t.Error("a variable without a setting part should be skipped")
	}
}

func TestDeepMerge(t *testing.T) {
	dst := map[string]any{
		"editor":  map[string]any{"tab_width": 8, "expand_tab": false},
		"logging": map[string]any{"level": "info"},
	}
	src := map[string]any{
		"editor": map[string]any{"tab_width": 4},
		"remap":  map[string]any{"<C-c>": "<Esc>"},
	}

	got := DeepMerge(dst, src)
	editor := got["editor"].(map[string]any)
	if editor["tab_width"] != 4 || editor["expand_tab"] != false {
		t.Errorf("editor = %v", editor)
	}
	if _, ok := got["remap"]; !ok {
		t.Error("remap section missing")
	}
	if _, ok := got["logging"]; !ok {
		t.Error("logging section lost")
	}
}

var _ fs.FS = mapFS{}
