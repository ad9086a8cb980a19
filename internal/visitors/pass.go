// internal/visitors/pass.go
package visitors

import "realign-core/realign"

// PassThrough keeps every window unchanged.
type PassThrough struct{}

func (PassThrough) Visit(res realign.WindowResult) (keep bool, out realign.WindowResult, err error) {
	return true, res, nil
}
