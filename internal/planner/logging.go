package planner

import (
	"io"

	"github.com/html2exe/html2exe-cli/internal/logging"
	"github.com/html2exe/html2exe-cli/internal/ui"
)

var logger = &logging.Logger{PrefixText: "Plan:", PrefixColor: ui.FgGreen}

// SetLogger sets an optional destination for planner logs.
func SetLogger(w io.Writer) { logger.SetWriter(w) }

func logf(location string, format string, args ...any) {
	logger.Logf(location, format, args...)
}
