// Package logging configures the logrus logger shared by the application.
package logging

import (
	"io"
	"os"
	"strings"
	"sync"

	"project-tracker/internal/errors"

	"github.com/sirupsen/logrus"
)

// Options configure New. Zero values select info level, text format and stderr.
type Options struct {
	Level  string
	Format string // "text" or "json"
	Output io.Writer
}

var (
	std     *logrus.Logger
	stdOnce sync.Once
)

// Std returns the process-wide logger. Debug tracing raises it to debug level.
func Std() *logrus.Logger {
	stdOnce.Do(func() {
		std = logrus.New()
		std.SetOutput(os.Stderr)
		if DebugEnabled() {
			std.SetLevel(logrus.DebugLevel)
		}
	})
	return std
}

// New builds a logger from options
func New(opts Options) (*logrus.Logger, error) {
	logger := logrus.New()
	if err := Configure(logger, opts); err != nil {
		return nil, err
	}
	return logger, nil
}

// Configure applies options to an existing logger
func Configure(logger *logrus.Logger, opts Options) error {
	level := logrus.InfoLevel
	if opts.Level != "" {
		parsed, err := logrus.ParseLevel(opts.Level)
		if err != nil {
			return errors.NewInvalidInputError("logging.level", opts.Level, "unknown log level")
		}
		level = parsed
	}
	if DebugEnabled() {
		level = logrus.DebugLevel
	}
	logger.SetLevel(level)

	switch strings.ToLower(opts.Format) {
	case "", "text":
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	case "json":
		logger.SetFormatter(&logrus.JSONFormatter{})
	default:
		return errors.NewInvalidInputError("logging.format", opts.Format, "must be text or json")
	}

	if opts.Output != nil {
		logger.SetOutput(opts.Output)
	} else {
		logger.SetOutput(os.Stderr)
	}
	return nil
}

// ConfigureStd applies options to the process-wide logger
func ConfigureStd(opts Options) error {
	return Configure(Std(), opts)
}
