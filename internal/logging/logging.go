// Package logging wires up structured, leveled logging for the CLI (spec
// §10): console-formatted output with color when attached to a TTY,
// translating the reference codebase's bracket-tagged log.Printf idiom
// ("[INFO] ...", "[ERROR] ...") into zerolog's level-tagged fields.
package logging

import (
	"os"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Init configures the global zerolog logger. verbose lowers the minimum
// level from Info to Debug.
func Init(verbose bool) {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)

	writer := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: "15:04:05",
		NoColor:    !isatty.IsTerminal(os.Stderr.Fd()),
	}
	log.Logger = zerolog.New(writer).With().Timestamp().Logger()
}
