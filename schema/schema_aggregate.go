package schema

import (
	"maps"
	"slices"
	"time"
)

// Bucket accumulates the records that share one key.
type Bucket struct {
	Key   string            `json:"key"`
	Count int               `json:"count"`
	Sums  map[MetricKey]int `json:"sums,omitempty"`
	First time.Time         `json:"first,omitzero"` // Earliest record time folded in
	Last  time.Time         `json:"last,omitzero"`  // Latest record time folded in
}

// Value returns the accumulated value of a metric. MetricCommits is the count.
func (b Bucket) Value(metric MetricKey) int {
	if metric == MetricCommits {
		return b.Count
	}
	return b.Sums[metric]
}

func (b *Bucket) fold(sums map[MetricKey]int, at time.Time) {
	b.Count++
	for k, v := range sums {
		if b.Sums == nil {
			b.Sums = make(map[MetricKey]int)
		}
		b.Sums[k] += v
	}
	if at.IsZero() {
		return
	}
	if b.First.IsZero() || at.Before(b.First) {
		b.First = at
	}
	if b.Last.IsZero() || at.After(b.Last) {
		b.Last = at
	}
}

// AggregateResult holds keyed buckets plus the total across all of them.
// The total lives outside the map, so no real key can collide with it.
type AggregateResult struct {
	Buckets map[string]*Bucket `json:"buckets"`
	Total   Bucket             `json:"total"`
}

// NewAggregateResult returns an empty result with a labeled total.
func NewAggregateResult() *AggregateResult {
	return &AggregateResult{
		Buckets: make(map[string]*Bucket),
		Total:   Bucket{Key: TotalKey},
	}
}

// Add folds one record into its bucket and into the total.
func (a *AggregateResult) Add(key string, sums map[MetricKey]int, at time.Time) {
	b, ok := a.Buckets[key]
	if !ok {
		b = &Bucket{Key: key}
		a.Buckets[key] = b
	}
	b.fold(sums, at)
	a.Total.fold(sums, at)
}

// Seed creates empty buckets for keys that must appear even without records.
func (a *AggregateResult) Seed(keys ...string) {
	for _, k := range keys {
		if _, ok := a.Buckets[k]; !ok {
			a.Buckets[k] = &Bucket{Key: k}
		}
	}
}

// Get returns the bucket for key, or a zero bucket when absent.
func (a *AggregateResult) Get(key string) Bucket {
	if b, ok := a.Buckets[key]; ok {
		return *b
	}
	return Bucket{Key: key}
}

// Keys returns the bucket keys in lexical order.
func (a *AggregateResult) Keys() []string {
	return slices.Sorted(maps.Keys(a.Buckets))
}

// Len returns the number of buckets, excluding the total.
func (a *AggregateResult) Len() int {
	return len(a.Buckets)
}

// Percent returns the share of a bucket for a metric, in the range 0-100.
// An empty total yields 0 rather than a division fault.
func (a *AggregateResult) Percent(key string, metric MetricKey) float64 {
	total := a.Total.Value(metric)
	if total == 0 {
		return 0
	}
	return float64(a.Get(key).Value(metric)) / float64(total) * 100
}
