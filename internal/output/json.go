// internal/output/json.go
package output

import (
	"io"

	"realign/internal/jsonutil"
	"realign/pkg/api"
)

// WriteJSON emits the whole window list as one indented JSON array.
func WriteJSON(w io.Writer, list []api.WindowV1) error {
	if list == nil {
		list = []api.WindowV1{}
	}
	return jsonutil.EncodePretty(w, list)
}
