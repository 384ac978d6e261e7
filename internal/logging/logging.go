// Package logging configures the global zerolog logger.
package logging

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Options selects level, format and an optional rotating file sink
type Options struct {
	Level  string
	Format string // console or json
	File   string
	Out    io.Writer
}

// Setup configures the logger. The file sink always writes JSON lines.
func Setup(opts Options) error {
	out := opts.Out
	if out == nil {
		out = os.Stderr
	}

	var console io.Writer
	switch opts.Format {
	case "", "console":
		console = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	case "json":
		console = out
	default:
		return fmt.Errorf("invalid log format '%s'", opts.Format)
	}

	writer := console
	if opts.File != "" {
		writer = zerolog.MultiLevelWriter(console, &lumberjack.Logger{
			Filename: opts.File,
			MaxSize:  100,
			MaxAge:   7,
			Compress: true,
		})
	}
	log.Logger = zerolog.New(writer).With().Timestamp().Logger()

	// Set log level from config
	level, err := zerolog.ParseLevel(opts.Level)
	if err != nil || opts.Level == "" {
		level = zerolog.InfoLevel
	}
	log.Logger = log.Logger.Level(level)
	return nil
}
