// internal/common/sort.go
package common

import (
	"sort"

	"realign-core/realign"

	"realign/pkg/api"
)

// SortWindows orders window results by (Contig, Start, End) so buffered
// output is deterministic regardless of worker scheduling.
func SortWindows(list []realign.WindowResult) {
	sort.SliceStable(list, func(i, j int) bool {
		a, b := list[i].Span, list[j].Span
		if a.Contig != b.Contig {
			return a.Contig < b.Contig
		}
		if a.Start != b.Start {
			return a.Start < b.Start
		}
		return a.End < b.End
	})
}

// SortAPIWindows is SortWindows over the wire form.
func SortAPIWindows(list []api.WindowV1) {
	sort.SliceStable(list, func(i, j int) bool {
		if list[i].Contig != list[j].Contig {
			return list[i].Contig < list[j].Contig
		}
		if list[i].Start != list[j].Start {
			return list[i].Start < list[j].Start
		}
		return list[i].End < list[j].End
	})
}

// SortAPIReads orders read rows by (Contig, Pos, Name).
func SortAPIReads(list []api.ReadV1) {
	sort.SliceStable(list, func(i, j int) bool {
		if list[i].Contig != list[j].Contig {
			return list[i].Contig < list[j].Contig
		}
		if list[i].Pos != list[j].Pos {
			return list[i].Pos < list[j].Pos
		}
		return list[i].Name < list[j].Name
	})
}
