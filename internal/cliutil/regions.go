// internal/cliutil/regions.go
package cliutil

import (
	"fmt"
	"strconv"
	"strings"

	"realign-core/genome"
)

// ParseRegion parses "contig" or "contig:start-end" (0-based, half-open).
// A bare contig yields End == -1, meaning the whole contig; callers clamp it
// once the contig length is known.
func ParseRegion(s string) (genome.Range, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return genome.Range{}, fmt.Errorf("empty region")
	}
	colon := strings.LastIndex(s, ":")
	if colon == -1 {
		return genome.MakeRange(s, 0, -1), nil
	}
	contig, span := s[:colon], s[colon+1:]
	if contig == "" {
		return genome.Range{}, fmt.Errorf("region %q: empty contig", s)
	}
	dash := strings.IndexByte(span, '-')
	if dash == -1 {
		return genome.Range{}, fmt.Errorf("region %q: want contig:start-end", s)
	}
	start, err := strconv.Atoi(span[:dash])
	if err != nil {
		return genome.Range{}, fmt.Errorf("region %q: bad start: %v", s, err)
	}
	end, err := strconv.Atoi(span[dash+1:])
	if err != nil {
		return genome.Range{}, fmt.Errorf("region %q: bad end: %v", s, err)
	}
	if start < 0 || end <= start {
		return genome.Range{}, fmt.Errorf("region %q: need 0 <= start < end", s)
	}
	return genome.MakeRange(contig, start, end), nil
}

// ExpandPositionals treats leftover arguments as region strings; stray flags
// after positionals are rejected instead of being swallowed silently.
func ExpandPositionals(args []string) ([]string, error) {
	var out []string
	for _, a := range args {
		if strings.HasPrefix(a, "-") {
			return nil, fmt.Errorf("flag %q after positional arguments", a)
		}
		out = append(out, a)
	}
	return out, nil
}
