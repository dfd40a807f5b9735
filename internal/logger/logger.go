// Package logger provides the process-wide leveled logger.
//
// The package exposes printf-style helpers backed by zerolog so callers do
// not depend on the logging library directly.
package logger

import (
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

var log = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: "2006-01-02 15:04:05"}).
	With().Timestamp().Logger().Level(zerolog.InfoLevel)

// SetLevel sets the minimum level that will be emitted.
// Accepts DEBUG, INFO, WARN and ERROR (case-insensitive); unknown values
// leave the level unchanged.
func SetLevel(level string) {
	switch strings.ToUpper(level) {
	case "DEBUG":
		log = log.Level(zerolog.DebugLevel)
	case "INFO":
		log = log.Level(zerolog.InfoLevel)
	case "WARN":
		log = log.Level(zerolog.WarnLevel)
	case "ERROR":
		log = log.Level(zerolog.ErrorLevel)
	}
}

// Configure reconfigures the logger output.
//
// format is "text" (zerolog console writer) or "json" (raw zerolog JSON).
// output is "stdout", "stderr", or a file path; files are opened in append
// mode and created when missing.
func Configure(level, format, output string) error {
	var w io.Writer
	switch output {
	case "", "stdout":
		w = os.Stdout
	case "stderr":
		w = os.Stderr
	default:
		f, err := os.OpenFile(output, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return err
		}
		w = f
	}

	if format != "json" {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: "2006-01-02 15:04:05"}
	}

	log = zerolog.New(w).With().Timestamp().Logger().Level(log.GetLevel())
	SetLevel(level)
	return nil
}

func Debug(format string, v ...any) {
	log.Debug().Msgf(format, v...)
}

func Info(format string, v ...any) {
	log.Info().Msgf(format, v...)
}

func Warn(format string, v ...any) {
	log.Warn().Msgf(format, v...)
}

func Error(format string, v ...any) {
	log.Error().Msgf(format, v...)
}
