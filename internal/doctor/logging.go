package doctor

import (
	"io"

	"github.com/html2exe/html2exe-cli/internal/logging"
	"github.com/html2exe/html2exe-cli/internal/ui"
)

var logger = &logging.Logger{PrefixText: "Doctor:", PrefixColor: ui.FgYellow}

// SetLogger sets an optional destination for tool-check logs.
func SetLogger(w io.Writer) { logger.SetWriter(w) }

func logf(tool string, format string, args ...any) {
	logger.Logf(tool, format, args...)
}
