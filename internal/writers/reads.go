// internal/writers/reads.go
package writers

import (
	"fmt"
	"io"

	"realign/internal/common"
	"realign/internal/output"
	"realign/pkg/api"
)

// WriteReadsTSV writes the realigned read table, sorted by coordinate.
func WriteReadsTSV(out io.Writer, rows []api.ReadV1, header bool) error {
	common.SortAPIReads(rows)
	if header {
		if _, err := fmt.Fprintln(out, output.ReadHeader); err != nil {
			return err
		}
	}
	for _, v := range rows {
		if err := output.WriteReadRow(out, v); err != nil {
			return err
		}
	}
	return nil
}
