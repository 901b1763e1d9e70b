package app

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/dshills/modalkit/internal/config"
)

// newLogger builds the session logger from cfg. Output goes to cfg.File
// when set and to fallback otherwise. The returned closer closes the log
// file and may be nil.
func newLogger(cfg config.LoggingConfig, fallback io.Writer, level *slog.LevelVar) (*slog.Logger, io.Closer, error) {
	lvl, err := config.ParseLogLevel(cfg.Level)
	if err != nil {
		return nil, nil, err
	}
	level.Set(lvl)

	out := fallback
	var closer io.Closer
	if cfg.File != "" {
		f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("opening log file: %w", err)
		}
		out, closer = f, f
	}
	if out == nil {
		out = io.Discard
	}
	return slog.New(slog.NewTextHandler(out, &slog.HandlerOptions{Level: level})), closer, nil
}
