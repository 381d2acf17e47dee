package commons

import (
	"os"

	"github.com/rs/zerolog"
)

// NewLogger builds the root console logger at the requested level. An
// unknown level falls back to info.
func NewLogger(level string) zerolog.Logger {
	parsed := zerolog.InfoLevel
	if level != "" {
		if p, err := zerolog.ParseLevel(level); err == nil {
			parsed = p
		}
	}

	logger := zerolog.New(zerolog.ConsoleWriter{
		Out:     os.Stderr,
		NoColor: false,
	}).Level(parsed).With().Timestamp().Logger()

	return logger
}
