// internal/runutil/window_key.go
package runutil

import "realign-core/realign"

// WindowKey identifies an emitted window across region boundaries.
type WindowKey struct {
	Contig     string
	Start, End int
}

// KeyOf derives the dedupe key for a processed window.
func KeyOf(res realign.WindowResult) WindowKey {
	return WindowKey{Contig: res.Span.Contig, Start: res.Span.Start, End: res.Span.End}
}
