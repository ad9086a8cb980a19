// internal/writers/window.go
package writers

import (
	"fmt"
	"io"

	"realign-core/realign"

	"realign/internal/common"
	"realign/internal/output"
	"realign/internal/pretty"
	"realign/pkg/api"
)

// StartWindowWriter spins up a writer goroutine for window results.
// Formats: text (TSV, optional pretty blocks), jsonl, json.
func StartWindowWriter(out io.Writer, format string, sortOut, header, prettyMode, withSeqs bool, bufSize int) (chan<- realign.WindowResult, <-chan error) {
	if format == "jsonl" && !prettyMode && !sortOut {
		return StartWindowJSONLWriter(out, withSeqs, bufSize)
	}

	if bufSize <= 0 {
		bufSize = 64
	}
	in := make(chan realign.WindowResult, bufSize)
	errCh := make(chan error, 1)

	go func() {
		var err error
		switch format {
		case "json":
			var rows []api.WindowV1
			for res := range in {
				rows = append(rows, output.ToAPIWindow(res, withSeqs))
			}
			if sortOut {
				common.SortAPIWindows(rows)
			}
			err = output.WriteJSON(out, rows)

		case "jsonl":
			var buf []realign.WindowResult
			for res := range in {
				buf = append(buf, res)
			}
			common.SortWindows(buf)
			ch, done := StartWindowJSONLWriter(out, withSeqs, bufSize)
			for _, res := range buf {
				ch <- res
			}
			close(ch)
			err = <-done

		case "text":
			if sortOut {
				var buf []realign.WindowResult
				for res := range in {
					buf = append(buf, res)
				}
				common.SortWindows(buf)
				err = writeText(out, sliceSource(buf), header, prettyMode, withSeqs)
			} else {
				err = writeText(out, chanSource(in), header, prettyMode, withSeqs)
			}

		default:
			// Drain so producers are never blocked on a dead format.
			for range in {
			}
			err = fmt.Errorf("unsupported output %q", format)
		}
		errCh <- err
	}()

	return in, errCh
}

type resultSource func(func(realign.WindowResult) error) error

func sliceSource(buf []realign.WindowResult) resultSource {
	return func(emit func(realign.WindowResult) error) error {
		for _, res := range buf {
			if err := emit(res); err != nil {
				return err
			}
		}
		return nil
	}
}

func chanSource(in <-chan realign.WindowResult) resultSource {
	return func(emit func(realign.WindowResult) error) error {
		var err error
		for res := range in {
			if err != nil {
				continue // keep draining
			}
			err = emit(res)
		}
		return err
	}
}

func writeText(out io.Writer, src resultSource, header, prettyMode, withSeqs bool) error {
	if header {
		if _, err := fmt.Fprintln(out, output.WindowHeader); err != nil {
			return err
		}
	}
	return src(func(res realign.WindowResult) error {
		if err := output.WriteWindowRow(out, output.ToAPIWindow(res, withSeqs)); err != nil {
			return err
		}
		if prettyMode {
			if _, err := io.WriteString(out, pretty.RenderWindow(res, pretty.DefaultOptions)); err != nil {
				return err
			}
		}
		return nil
	})
}
