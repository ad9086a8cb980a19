// internal/writers/brokenpipe.go
package writers

import (
	"errors"
	"io"
	"syscall"
)

// IsBrokenPipe reports whether err means the consumer went away: EPIPE from a
// closed stdout (e.g. piping into head), or a closed io.Pipe. Writers treat
// this as a normal shutdown, not a failure.
func IsBrokenPipe(err error) bool {
	if err == nil {
		return false
	}
	return errors.Is(err, syscall.EPIPE) || errors.Is(err, io.ErrClosedPipe)
}
