// Package logging configures the process-wide zerolog logger.
//
// Values can be provided directly or via environment variables:
//   - PLAY2HTML_LOG_LEVEL=trace|debug|info|warn|error
//   - PLAY2HTML_LOG_FORMAT=console|json
//   - PLAY2HTML_LOG_FILE=<path> (adds a rotated JSON log file)
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Options controls logger initialization.
type Options struct {
	Level  string
	Format string // "console" or "json"
	File   string // optional path for a rotated log file
}

// FromEnv builds Options from environment variables.
func FromEnv() Options {
	return Options{
		Level:  getenv("PLAY2HTML_LOG_LEVEL", "info"),
		Format: getenv("PLAY2HTML_LOG_FORMAT", "console"),
		File:   os.Getenv("PLAY2HTML_LOG_FILE"),
	}
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// ParseLevel converts a level name to a zerolog level. Empty means info.
func ParseLevel(s string) (zerolog.Level, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch s {
	case "":
		return zerolog.InfoLevel, nil
	case "warning":
		return zerolog.WarnLevel, nil
	}
	lvl, err := zerolog.ParseLevel(s)
	if err != nil {
		return zerolog.NoLevel, fmt.Errorf("invalid log level: %s", s)
	}
	return lvl, nil
}

// New builds a logger writing to w, plus the rotated file when opts.File is
// set. The returned closer releases the file and must be called on exit.
func New(opts Options, w io.Writer) (zerolog.Logger, io.Closer, error) {
	lvl, err := ParseLevel(opts.Level)
	if err != nil {
		return zerolog.Nop(), nil, err
	}

	var out io.Writer
	switch strings.ToLower(strings.TrimSpace(opts.Format)) {
	case "", "console":
		out = zerolog.ConsoleWriter{Out: w, TimeFormat: "15:04:05"}
	case "json":
		out = w
	default:
		return zerolog.Nop(), nil, fmt.Errorf("invalid log format: %s", opts.Format)
	}

	var closer io.Closer = nopCloser{}
	if file := strings.TrimSpace(opts.File); file != "" {
		lj := &lumberjack.Logger{
			Filename:   file,
			MaxSize:    10, // megabytes
			MaxBackups: 3,
			MaxAge:     28, // days
			Compress:   true,
		}
		out = zerolog.MultiLevelWriter(out, lj)
		closer = lj
	}

	logger := zerolog.New(out).Level(lvl).With().Timestamp().Logger()
	return logger, closer, nil
}

// Init configures log.Logger from opts, writing to stderr.
func Init(opts Options) (io.Closer, error) {
	logger, closer, err := New(opts, os.Stderr)
	if err != nil {
		return nil, err
	}
	log.Logger = logger
	return closer, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
