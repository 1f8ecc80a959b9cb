package replay

import (
	"os"

	"github.com/charmbracelet/log"
)

var logger = log.NewWithOptions(os.Stderr, log.Options{
	Prefix: "replay",
})

// SetLogLevel sets the logging level for the replay package.
func SetLogLevel(level log.Level) {
	logger.SetLevel(level)
}

// SetLogger replaces the package logger.
func SetLogger(l *log.Logger) {
	if l != nil {
		logger = l
	}
}
