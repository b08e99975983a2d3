// Package logging builds the zap logger. Logs go to a file so standard
// output stays free for the interactive shell.
package logging

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ErrLevel marks an unknown level name. Other New errors come from the
// log file.
var ErrLevel = errors.New("unknown log level")

type Options struct {
	// Level is a zap level name: debug, info, warn, error.
	Level string
	// Path is the log file. Empty means stderr.
	Path string
}

func New(opts Options) (*zap.Logger, error) {
	config := zap.NewProductionConfig()
	level := zapcore.InfoLevel
	if opts.Level != "" {
		l, err := zapcore.ParseLevel(opts.Level)
		if err != nil {
			return nil, fmt.Errorf("%w %q", ErrLevel, opts.Level)
		}
		level = l
	}
	config.Level = zap.NewAtomicLevelAt(level)
	config.EncoderConfig.TimeKey = "ts"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	if opts.Path != "" {
		if err := os.MkdirAll(filepath.Dir(opts.Path), 0o755); err != nil {
			return nil, fmt.Errorf("log dir: %w", err)
		}
		config.OutputPaths = []string{opts.Path}
		config.ErrorOutputPaths = []string{opts.Path}
	}
	logger, err := config.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return logger, nil
}

func Nop() *zap.Logger {
	return zap.NewNop()
}
