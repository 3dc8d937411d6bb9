package analyzer

import (
	"io"

	"github.com/html2exe/html2exe-cli/internal/logging"
	"github.com/html2exe/html2exe-cli/internal/ui"
)

var logger = &logging.Logger{PrefixText: "Analyze:", PrefixColor: ui.FgCyan}

// SetLogger sets an optional destination for analysis logs.
func SetLogger(w io.Writer) { logger.SetWriter(w) }

func logf(location string, format string, args ...any) {
	logger.Logf(location, format, args...)
}
