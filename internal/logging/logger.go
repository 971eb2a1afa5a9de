// Package logging configures the global zerolog logger.
package logging

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Setup sets the global level and output format. An empty level means
// info; format "json" writes structured lines, anything else a console
// writer.
func Setup(level, format string) error {
	return setup(os.Stderr, level, format)
}

func setup(out io.Writer, level, format string) error {
	lvl := zerolog.InfoLevel
	if level != "" {
		var err error
		if lvl, err = zerolog.ParseLevel(level); err != nil {
			return fmt.Errorf("parse log level: %w", err)
		}
	}

	zerolog.TimeFieldFormat = time.RFC3339

	if format == "json" {
		log.Logger = zerolog.New(out).With().Timestamp().Logger()
	} else {
		log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: out, TimeFormat: time.Kitchen}).With().Timestamp().Logger()
	}

	zerolog.SetGlobalLevel(lvl)
	return nil
}
