// Package logging sets up slog for the process: text output to stderr, or to
// a rotating log file when file output is enabled.
package logging

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/natefinch/lumberjack.v2"
)

type Config struct {
	// Level is the minimum log level to emit.
	Level slog.Level
	// File switches output from stderr to a rotating file under Dir.
	File bool
	// Dir defaults to os.UserCacheDir()/natbrowser/logs.
	Dir        string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
	AddSource  bool
}

func DefaultConfig() *Config {
	return &Config{
		Level:      slog.LevelInfo,
		MaxSizeMB:  20,
		MaxBackups: 5,
		MaxAgeDays: 14,
		Compress:   true,
	}
}

// DefaultLogDir tries os.UserCacheDir and falls back to os.TempDir.
func DefaultLogDir() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		dir = os.TempDir()
	}
	return filepath.Join(dir, "natbrowser", "logs")
}

// Setup installs the configured logger as the global and slog default logger.
// The returned function closes the log file, if any.
func Setup(cfg *Config) (*slog.Logger, func() error, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	var out io.Writer = os.Stderr
	closeFn := func() error { return nil }
	if cfg.File {
		dir := cfg.Dir
		if dir == "" {
			dir = DefaultLogDir()
		}
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, nil, err
		}
		lj := &lumberjack.Logger{
			Filename:   filepath.Join(dir, "natbrowser.log"),
			MaxSize:    cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAgeDays,
			Compress:   cfg.Compress,
			LocalTime:  true,
		}
		out = lj
		closeFn = lj.Close
	}

	logger := slog.New(slog.NewTextHandler(out, &slog.HandlerOptions{
		Level:     cfg.Level,
		AddSource: cfg.AddSource,
	}))
	setGlobal(logger)
	return logger, closeFn, nil
}

var globalLogger *slog.Logger

// L returns the global logger, or slog.Default() before Setup.
func L() *slog.Logger {
	if globalLogger != nil {
		return globalLogger
	}
	return slog.Default()
}

func setGlobal(logger *slog.Logger) {
	globalLogger = logger
	slog.SetDefault(logger)
}

type ctxKey struct{}

func With(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, logger)
}

// From extracts the logger from ctx, falling back to L().
func From(ctx context.Context) *slog.Logger {
	if ctx == nil {
		return L()
	}
	if logger, ok := ctx.Value(ctxKey{}).(*slog.Logger); ok && logger != nil {
		return logger
	}
	return L()
}

func WithAttrs(ctx context.Context, args ...any) context.Context {
	return With(ctx, From(ctx).With(args...))
}
