// internal/pipeline/pipeline_test.go
package pipeline

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"go.uber.org/goleak"

	"realign-core/genome"
	"realign-core/realign"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// block returns a 6-base sequence unique to i: a "TT" phase mark followed by
// four base-3 digits over ACG, so assembly k-mers never repeat by accident.
func block(i int) string {
	const digits = "ACG"
	b := []byte{'T', 'T', 0, 0, 0, 0}
	for d := 3; d >= 0; d-- {
		b[2+d] = digits[i%3]
		i /= 3
	}
	return string(b)
}

func uniqueSeq(from, to int) string {
	var sb strings.Builder
	for i := from; i < to; i++ {
		sb.WriteString(block(i))
	}
	return sb.String()
}

func mkRead(name string, pos int, seq string) genome.Read {
	return genome.Read{
		Name:   name,
		Contig: "chr1",
		Pos:    pos,
		MapQ:   50,
		Cigar:  genome.Cigar{{Len: len(seq), Op: 'M'}},
		Seq:    []byte(seq),
	}
}

func testOptions() realign.Options {
	opt := realign.DefaultOptions()
	opt.Window.MinWindowDistance = 30
	opt.Window.MaxWindowSize = 200
	opt.Graph.MinK = 11
	opt.Graph.MaxK = 31
	opt.Graph.StepK = 2
	opt.Align.ErrorRate = 0.15
	opt.Pad = 10
	return opt
}

// twoDeletionFixture builds a reference with two well-separated 4-base
// deletions and read clusters supporting each.
func twoDeletionFixture() (string, genome.Range, []genome.Read) {
	ref := uniqueSeq(0, 28) // 168 bases
	altA := ref[:40] + ref[44:]
	altB := ref[:124] + ref[128:]

	var reads []genome.Read
	for i, s := 0, 12; s <= 38; i, s = i+1, s+2 {
		reads = append(reads, mkRead(fmt.Sprintf("a%02d", i), s, altA[s:s+30]))
	}
	for i, s := 0, 96; s <= 122; i, s = i+1, s+2 {
		reads = append(reads, mkRead(fmt.Sprintf("b%02d", i), s, altB[s:s+30]))
	}
	return ref, genome.MakeRange("chr1", 0, len(ref)), reads
}

func TestForEachWindowOrderAndMerge(t *testing.T) {
	ref, region, reads := twoDeletionFixture()
	r, err := realign.New(testOptions(), nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	var visited []realign.WindowResult
	out, err := ForEachWindow(context.Background(), Config{Threads: 4}, r,
		region, []byte(ref), reads,
		func(res realign.WindowResult) error {
			visited = append(visited, res)
			return nil
		})
	if err != nil {
		t.Fatalf("ForEachWindow: %v", err)
	}
	if len(visited) != 2 {
		t.Fatalf("visited %d windows, want 2", len(visited))
	}
	if visited[0].Span.Start >= visited[1].Span.Start {
		t.Errorf("windows out of order: %v then %v", visited[0].Span, visited[1].Span)
	}
	for i, res := range visited {
		if res.Disposition != realign.StatusAligned {
			t.Errorf("window %d disposition %s", i, res.Disposition)
		}
		if res.Realigned == 0 {
			t.Errorf("window %d realigned no reads", i)
		}
	}

	// Replacement alignments from both windows are merged into one read set.
	sawDeletion := map[byte]bool{}
	for _, rd := range out {
		for _, op := range rd.Cigar {
			if op.Op == 'D' && op.Len == 4 {
				sawDeletion[rd.Name[0]] = true
			}
		}
	}
	if !sawDeletion['a'] || !sawDeletion['b'] {
		t.Errorf("deletion calls merged: %v, want both clusters", sawDeletion)
	}
}

func TestForEachWindowDeterministic(t *testing.T) {
	ref, region, reads := twoDeletionFixture()
	r, err := realign.New(testOptions(), nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	collect := func(threads int) []genome.Range {
		var spans []genome.Range
		_, err := ForEachWindow(context.Background(), Config{Threads: threads}, r,
			region, []byte(ref), reads,
			func(res realign.WindowResult) error {
				spans = append(spans, res.Span)
				return nil
			})
		if err != nil {
			t.Fatalf("ForEachWindow(threads=%d): %v", threads, err)
		}
		return spans
	}
	one, many := collect(1), collect(8)
	if len(one) != len(many) {
		t.Fatalf("window count differs: %d vs %d", len(one), len(many))
	}
	for i := range one {
		if one[i] != many[i] {
			t.Errorf("window %d differs: %v vs %v", i, one[i], many[i])
		}
	}
}

func TestForEachWindowCancel(t *testing.T) {
	ref, region, reads := twoDeletionFixture()
	r, err := realign.New(testOptions(), nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = ForEachWindow(ctx, Config{Threads: 2}, r, region, []byte(ref), reads,
		func(realign.WindowResult) error { return nil })
	if err == nil {
		t.Error("canceled context must surface an error")
	}
}
