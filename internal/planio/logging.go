package planio

import (
	"io"

	"github.com/html2exe/html2exe-cli/internal/logging"
	"github.com/html2exe/html2exe-cli/internal/ui"
)

var logger = &logging.Logger{PrefixText: "Write:", PrefixColor: ui.FgMagenta}

// SetLogger sets an optional destination for output-file logs.
func SetLogger(w io.Writer) { logger.SetWriter(w) }

func logf(path string, format string, args ...any) {
	logger.Logf(path, format, args...)
}
