package logger

import (
	"os"

	"github.com/rs/zerolog"
)

// New builds the service logger. Development gets human-readable console
// output, everything else JSON.
func New(environment string) zerolog.Logger {
	if environment == "development" {
		return zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()
	}
	return zerolog.New(os.Stdout).With().Timestamp().Logger()
}
