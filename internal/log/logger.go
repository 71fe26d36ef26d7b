package log

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// New builds the process logger. Production emits JSON for log shippers;
// everything else gets the human-readable console writer at debug level.
func New(environment string) zerolog.Logger {
	var out io.Writer = os.Stdout
	level := zerolog.InfoLevel

	if environment != "production" {
		out = zerolog.ConsoleWriter{
			Out:        os.Stdout,
			TimeFormat: time.RFC3339,
		}
		level = zerolog.DebugLevel
	}

	zerolog.SetGlobalLevel(level)

	return zerolog.New(out).With().
		Timestamp().
		Str("service", "epsilon-api").
		Str("env", environment).
		Logger()
}
