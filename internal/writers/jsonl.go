// internal/writers/jsonl.go
package writers

import (
	"encoding/json"
	"io"

	"realign-core/realign"

	"realign/internal/jsonlutil"
	"realign/internal/output"
	"realign/pkg/api"
)

// StartWindowJSONLWriter streams each window result as one JSON line (v1).
func StartWindowJSONLWriter(out io.Writer, withSeqs bool, bufSize int) (chan<- realign.WindowResult, <-chan error) {
	return jsonlutil.Start[realign.WindowResult](out, bufSize,
		func(enc *json.Encoder, res realign.WindowResult) error {
			return enc.Encode(output.ToAPIWindow(res, withSeqs))
		},
		IsBrokenPipe,
	)
}

// StartReadJSONLWriter streams read alignments as JSON lines (v1).
func StartReadJSONLWriter(out io.Writer, bufSize int) (chan<- api.ReadV1, <-chan error) {
	return jsonlutil.Start[api.ReadV1](out, bufSize,
		func(enc *json.Encoder, v api.ReadV1) error {
			return enc.Encode(v)
		},
		IsBrokenPipe,
	)
}
