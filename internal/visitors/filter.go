// internal/visitors/filter.go
package visitors

import "realign-core/realign"

// OnlyRealigned drops windows where no read alignment changed.
type OnlyRealigned struct{}

func (OnlyRealigned) Visit(res realign.WindowResult) (bool, realign.WindowResult, error) {
	return res.Realigned > 0, res, nil
}
