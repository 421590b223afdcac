package logging

import (
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Setup configures zerolog for the process. Console output goes to stderr so
// command output on stdout stays machine-readable.
func Setup(environment string) zerolog.Logger {
	return SetupWithWriter(environment, zerolog.ConsoleWriter{Out: os.Stderr})
}

// SetupWithWriter is Setup with an explicit sink (tests, JSON logs).
func SetupWithWriter(environment string, w io.Writer) zerolog.Logger {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	level := zerolog.InfoLevel
	switch environment {
	case "development":
		level = zerolog.DebugLevel
	case "quiet":
		level = zerolog.WarnLevel
	}

	logger := zerolog.New(w).With().Timestamp().Logger().Level(level)
	log.Logger = logger
	return logger
}
