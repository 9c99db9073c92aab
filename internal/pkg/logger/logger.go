// Package logger owns the process-wide zerolog logger.
package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// LogLevel represents the log level
type LogLevel string

const (
	DebugLevel LogLevel = "debug"
	InfoLevel  LogLevel = "info"
	WarnLevel  LogLevel = "warn"
	ErrorLevel LogLevel = "error"
)

// DefaultService is attached to every line unless Config.Service overrides it
const DefaultService = "enlistment-api"

// Config represents logger configuration
type Config struct {
	Level LogLevel
	// Pretty switches to the human-readable console writer
	Pretty bool
	// Output defaults to os.Stdout
	Output  io.Writer
	Service string
}

var defaultLogger zerolog.Logger

// Configure replaces the package and global zerolog loggers. Unknown levels fall back to info.
func Configure(config Config) zerolog.Logger {
	out := config.Output
	if out == nil {
		out = os.Stdout
	}
	if config.Pretty {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}

	service := config.Service
	if service == "" {
		service = DefaultService
	}

	zerolog.TimeFieldFormat = time.RFC3339
	zerolog.SetGlobalLevel(parseLevel(config.Level))

	defaultLogger = zerolog.New(out).With().Timestamp().Str("service", service).Logger()
	log.Logger = defaultLogger
	return defaultLogger
}

func parseLevel(level LogLevel) zerolog.Level {
	parsed, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(string(level))))
	if err != nil || parsed == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return parsed
}

// Debug starts a debug event on the configured logger
func Debug() *zerolog.Event { return defaultLogger.Debug() }

// Info starts an info event on the configured logger
func Info() *zerolog.Event { return defaultLogger.Info() }

// Warn starts a warning event on the configured logger
func Warn() *zerolog.Event { return defaultLogger.Warn() }

// Error starts an error event on the configured logger
func Error() *zerolog.Event { return defaultLogger.Error() }

func init() {
	Configure(Config{Level: InfoLevel, Pretty: true})
}
