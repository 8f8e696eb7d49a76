package agg

import (
	"bytes"
	"fmt"
	"math/rand/v2"
	"slices"
	"testing"
	"time"

	"github.com/huangsam/quickstats/schema"
)

// syntheticLog renders n numstat commits spread over a year.
func syntheticLog(n int) []byte {
	rng := rand.New(rand.NewPCG(7, 11))
	authors := []string{"Ada", "Grace", "Linus", "Margaret", "Ken"}
	start := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)

	var b bytes.Buffer
	for i := range n {
		who := authors[rng.IntN(len(authors))]
		when := start.Add(time.Duration(rng.IntN(365*24)) * time.Hour)
		fmt.Fprintf(&b, "\x1e%040x\x1f%s\x1f%s@example.com\x1f%s\x1f%s\x1fchange %d\n\n",
			i, who, who, when.Format(time.RFC3339), when.Format(time.DateOnly), i)
		for f := range rng.IntN(5) {
			fmt.Fprintf(&b, "%d\t%d\tpkg/file%d.go\n", rng.IntN(200), rng.IntN(200), f)
		}
	}
	return b.Bytes()
}

// BenchmarkParseCommits measures decoding a large numstat log.
func BenchmarkParseCommits(b *testing.B) {
	out := syntheticLog(5000)
	b.SetBytes(int64(len(out)))

	for b.Loop() {
		for range ParseCommits(out) {
		}
	}
}

// BenchmarkAggregateDetailed measures the per-author fold with every metric.
func BenchmarkAggregateDetailed(b *testing.B) {
	commits := slices.Collect(ParseCommits(syntheticLog(5000)))

	for b.Loop() {
		AggregateAt(slices.Values(commits), ByIdentity, CommitTime,
			Insertions, Deletions, FilesTouched, LinesChanged)
	}
}

// BenchmarkAggregateByHour measures a calendar chart fold.
func BenchmarkAggregateByHour(b *testing.B) {
	commits := slices.Collect(ParseCommits(syntheticLog(5000)))
	cal := EnglishCalendar{}

	for b.Loop() {
		Seed(Aggregate(slices.Values(commits), ByHour(cal)), schema.HourKeys)
	}
}
