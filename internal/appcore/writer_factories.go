// internal/appcore/writer_factories.go
package appcore

import (
	"io"

	"realign-core/realign"

	"realign/internal/writers"
)

// WindowWriterFactory builds the standard window output stream.
type WindowWriterFactory struct {
	Format   string
	Sort     bool
	Header   bool
	Pretty   bool
	WithSeqs bool
}

func NewWindowWriterFactory(format string, sort, header, pretty, withSeqs bool) WindowWriterFactory {
	return WindowWriterFactory{Format: format, Sort: sort, Header: header, Pretty: pretty, WithSeqs: withSeqs}
}

func (f WindowWriterFactory) Start(out io.Writer, bufSize int) (chan<- realign.WindowResult, <-chan error) {
	return writers.StartWindowWriter(out, f.Format, f.Sort, f.Header, f.Pretty, f.WithSeqs, bufSize)
}
