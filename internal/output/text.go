// internal/output/text.go
package output

import (
	"fmt"
	"io"

	"realign/pkg/api"
)

const WindowHeader = "contig\tstart\tend\tstatus\tk\thaplotypes\treads\trealigned"

// WriteWindowRow prints one window per line.
func WriteWindowRow(w io.Writer, v api.WindowV1) error {
	_, err := fmt.Fprintf(w,
		"%s\t%d\t%d\t%s\t%d\t%d\t%d\t%d\n",
		v.Contig, v.Start, v.End, v.Status,
		v.K, v.HaplotypeCount, v.ReadCount, v.Realigned,
	)
	return err
}

const ReadHeader = "name\tcontig\tpos\tmapq\tcigar\trealigned"

// WriteReadRow prints one read alignment per line.
func WriteReadRow(w io.Writer, v api.ReadV1) error {
	realigned := 0
	if v.Realigned {
		realigned = 1
	}
	_, err := fmt.Fprintf(w,
		"%s\t%s\t%d\t%d\t%s\t%d\n",
		v.Name, v.Contig, v.Pos, v.MapQ, v.Cigar, realigned,
	)
	return err
}
