package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"github.com/dshills/modalkit/internal/config/loader"
	"github.com/dshills/modalkit/internal/config/watcher"
)

// DefaultPath returns the user config file location,
// $XDG_CONFIG_HOME/modalkit/config.toml.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "modalkit", "config.toml")
}

// Load builds the configuration from defaults, the file at path (may be
// empty) and the environment, then validates it.
func Load(path string) (*Config, error) {
	return LoadWith(path, loader.NewEnvLoader(loader.DefaultEnvPrefix))
}

// LoadWith is Load with explicit extra layers applied after the file.
func LoadWith(path string, layers ...loader.Loader) (*Config, error) {
	merged := map[string]any{}

	if path != "" {
		fl, err := loader.ForPath(path)
		if err != nil {
			return nil, err
		}
		data, err := fl.LoadFrom(path)
		if err != nil {
			return nil, err
		}
		if data == nil {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		merged = loader.DeepMerge(merged, data)
	}

	for _, l := range layers {
		data, err := l.Load()
		if err != nil {
			return nil, err
		}
		merged = loader.DeepMerge(merged, data)
	}

	cfg, err := Decode(merged)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadOptional is Load that treats a missing file as defaults.
func LoadOptional(path string) (*Config, error) {
	if path != "" {
		if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
			path = ""
		}
	}
	return Load(path)
}

// Decode converts a merged settings map into a Config over the
// defaults. Unknown settings are rejected.
func Decode(settings map[string]any) (*Config, error) {
	cfg := Default()
	if len(settings) == 0 {
		return cfg, nil
	}

	// Round-trip through TOML so both file formats and the environment
	// share one set of field tags and type checks.
	data, err := toml.Marshal(settings)
	if err != nil {
		return nil, fmt.Errorf("encoding settings: %w", err)
	}
	dec := toml.NewDecoder(bytes.NewReader(data)).DisallowUnknownFields()
	if err := dec.Decode(cfg); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return nil, &ValidationError{Path: "config", Message: "unknown setting", Value: strict.String()}
		}
		return nil, &ValidationError{Path: "config", Message: err.Error(), Value: nil}
	}
	return cfg, nil
}

// Watch reloads the file at path whenever it changes and passes the
// result to onReload. A failed reload passes the error and keeps the
// previous configuration in the caller's hands.
func Watch(path string, onReload func(*Config, error), opts ...watcher.Option) (*watcher.Watcher, error) {
	w, err := watcher.New(opts...)
	if err != nil {
		return nil, err
	}
	if err := w.Watch(path); err != nil {
		_ = w.Close()
		return nil, err
	}
	w.OnChange(func(ev watcher.Event) {
		if ev.Op == watcher.OpRemove {
			return
		}
		onReload(Load(path))
	})
	w.Start()
	return w, nil
}
