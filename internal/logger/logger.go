package logger

import (
	"io"
	"time"

	"github.com/rs/zerolog"
)

// New creates a logger that writes colored text to out. An empty level
// means info.
func New(out io.Writer, level string, color bool) (zerolog.Logger, error) {
	lvl := zerolog.InfoLevel
	if level != "" {
		var err error
		lvl, err = zerolog.ParseLevel(level)
		if err != nil {
			return zerolog.Nop(), err
		}
	}

	return zerolog.New(zerolog.ConsoleWriter{
		Out:        out,
		NoColor:    !color,
		TimeFormat: time.RFC3339,
	}).Level(lvl).With().Timestamp().Logger(), nil
}
