// Package logging configures structured logging for the CLI.
// Records go to a rotating JSON log file; --debug also prints them to stderr.
package logging

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/lmittmann/tint"
	"github.com/mattn/go-isatty"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/topmolt/cli/src/client/paths"
)

// Config holds logging configuration
type Config struct {
	Level    string // debug, info, warn, error (default: warn)
	File     string // empty means paths.LogFile()
	MaxSize  int    // MB per file (default: 10)
	MaxFiles int    // rotated files kept (default: 5)

	// Debug tees debug-level records to Stderr
	Debug  bool
	Stderr io.Writer
}

var (
	mu      sync.Mutex
	logger  *slog.Logger
	rotator *lumberjack.Logger
)

// ParseLevel maps a level name to slog; unknown names mean warn
func ParseLevel(name string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "error":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}

// Init builds the logger described by cfg and installs it as slog's default.
// Calling Init again replaces the previous logger and closes its file.
func Init(cfg Config) (*slog.Logger, error) {
	mu.Lock()
	defer mu.Unlock()

	logPath := cfg.File
	if logPath == "" {
		logPath = paths.LogFile()
	}
	logPath = paths.ExpandHome(logPath)
	if err := paths.EnsureFile(logPath); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}

	maxSize := cfg.MaxSize
	if maxSize <= 0 {
		maxSize = 10
	}
	maxFiles := cfg.MaxFiles
	if maxFiles <= 0 {
		maxFiles = 5
	}

	if rotator != nil {
		_ = rotator.Close()
	}
	rotator = &lumberjack.Logger{
		Filename:   logPath,
		MaxSize:    maxSize,
		MaxBackups: maxFiles,
		MaxAge:     30,
		Compress:   true,
	}

	var handler slog.Handler = slog.NewJSONHandler(rotator, &slog.HandlerOptions{
		Level: ParseLevel(cfg.Level),
	})

	if cfg.Debug {
		stderr := cfg.Stderr
		if stderr == nil {
			stderr = os.Stderr
		}
		handler = teeHandler{handler, tint.NewHandler(stderr, &tint.Options{
			Level:      slog.LevelDebug,
			TimeFormat: time.Kitchen,
			NoColor:    !isTerminal(stderr),
		})}
	}

	logger = slog.New(handler)
	slog.SetDefault(logger)
	return logger, nil
}

// Logger returns the logger installed by Init, or a stderr text logger before Init
func Logger() *slog.Logger {
	mu.Lock()
	defer mu.Unlock()
	if logger == nil {
		return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	}
	return logger
}

// Close flushes and closes the log file
func Close() error {
	mu.Lock()
	defer mu.Unlock()
	if rotator == nil {
		return nil
	}
	err := rotator.Close()
	rotator = nil
	return err
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()))
}

// teeHandler sends each record to every handler that accepts its level
type teeHandler []slog.Handler

func (t teeHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, h := range t {
		if h.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (t teeHandler) Handle(ctx context.Context, r slog.Record) error {
	var errs []error
	for _, h := range t {
		if h.Enabled(ctx, r.Level) {
			if err := h.Handle(ctx, r.Clone()); err != nil {
				errs = append(errs, err)
			}
		}
	}
	return errors.Join(errs...)
}

func (t teeHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	out := make(teeHandler, len(t))
	for i, h := range t {
		out[i] = h.WithAttrs(attrs)
	}
	return out
}

func (t teeHandler) WithGroup(name string) slog.Handler {
	out := make(teeHandler, len(t))
	for i, h := range t {
		out[i] = h.WithGroup(name)
	}
	return out
}
