// internal/cmdutil/log.go
package cmdutil

import (
	"fmt"
	"io"
)

// Warnf prints a one-line warning to dst unless the run is quiet. Meant for
// user-facing notices that don't warrant a structured log entry.
func Warnf(dst io.Writer, quiet bool, format string, a ...any) {
	if quiet {
		return
	}
	_, _ = fmt.Fprintf(dst, "warning: "+format+"\n", a...)
}
