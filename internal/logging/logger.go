// Package logging configures the JSONL log file shared by every caltwo
// invocation.
package logging

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// maxLogBytes bounds the log file; a larger file is truncated on open.
const maxLogBytes = 4 << 20

type Runtime struct {
	Logger *slog.Logger
	Path   string
	// Level starts at Info and is raised or lowered once config is loaded.
	Level *slog.LevelVar
	file  *os.File
}

func (r Runtime) Close() error {
	if r.file == nil {
		return nil
	}
	return r.file.Close()
}

// New opens the state-directory log file and returns a logger tagged with
// the current pid.
func New() (Runtime, error) {
	path, err := resolveLogPath()
	if err != nil {
		return Runtime{}, fmt.Errorf("resolve log path: %w", err)
	}
	f, err := openLogFile(path)
	if err != nil {
		return Runtime{}, err
	}

	level := new(slog.LevelVar)
	handler := slog.NewJSONHandler(f, &slog.HandlerOptions{Level: level})
	return Runtime{
		Logger: slog.New(handler).With("pid", os.Getpid()),
		Path:   path,
		Level:  level,
		file:   f,
	}, nil
}

func openLogFile(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}

	flags := os.O_APPEND | os.O_CREATE | os.O_WRONLY
	if info, err := os.Stat(path); err == nil && info.Size() > maxLogBytes {
		flags |= os.O_TRUNC
	}
	f, err := os.OpenFile(path, flags, 0o600)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	return f, nil
}

func resolveLogPath() (string, error) {
	stateDir := strings.TrimSpace(os.Getenv("XDG_STATE_HOME"))
	if stateDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		stateDir = filepath.Join(home, ".local", "state")
	}
	return filepath.Join(stateDir, "caltwo", "log.jsonl"), nil
}
