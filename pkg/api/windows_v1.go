// pkg/api/windows_v1.go
package api

// WindowV1 is the stable JSON/JSONL schema for processed realignment windows.
// Keep fields, names, and types stable. Add new fields only with ",omitempty".
type WindowV1 struct {
	Contig string `json:"contig"`
	Start  int    `json:"start"`
	End    int    `json:"end"`

	// Status is "aligned", "unresolved", or "selected".
	Status string `json:"status"`

	// Assembly outcome; haplotype sequences ride along only when requested.
	K              int      `json:"k,omitempty"`
	HaplotypeCount int      `json:"haplotype_count"`
	Haplotypes     []string `json:"haplotypes,omitempty"`

	ReadCount int `json:"read_count"`
	Realigned int `json:"realigned"`

	// ScoreGains maps each realigned read to the margin its haplotype
	// alignment won by; populated only on diagnostics runs.
	ScoreGains map[string]float64 `json:"score_gains,omitempty"`
}

// ReadV1 is the stable schema for emitted read alignments.
type ReadV1 struct {
	Name      string `json:"name"`
	Contig    string `json:"contig"`
	Pos       int    `json:"pos"`
	MapQ      int    `json:"mapq"`
	Cigar     string `json:"cigar"`
	Seq       string `json:"seq,omitempty"`
	Realigned bool   `json:"realigned,omitempty"`
}
