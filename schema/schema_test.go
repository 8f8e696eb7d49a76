package schema

import (
	"math/rand/v2"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAggregateResultAdd(t *testing.T) {
	a := NewAggregateResult()
	early := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	late := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

	a.Add("alice", map[MetricKey]int{MetricInsertions: 10, MetricDeletions: 2}, late)
	a.Add("alice", map[MetricKey]int{MetricInsertions: 5}, early)
	a.Add("bob", nil, time.Time{})

	alice := a.Get("alice")
	assert.Equal(t, 2, alice.Count)
	assert.Equal(t, 15, alice.Value(MetricInsertions))
	assert.Equal(t, 2, alice.Value(MetricDeletions))
	assert.Equal(t, early, alice.First)
	assert.Equal(t, late, alice.Last)

	assert.Equal(t, 3, a.Total.Count)
	assert.Equal(t, 15, a.Total.Value(MetricInsertions))
	assert.Equal(t, TotalKey, a.Total.Key)
	assert.Equal(t, []string{"alice", "bob"}, a.Keys())
}

func TestAggregateResultTotalKeyIsNotReserved(t *testing.T) {
	a := NewAggregateResult()
	a.Add(TotalKey, nil, time.Time{})
	a.Add("other", nil, time.Time{})

	assert.Equal(t, 1, a.Get(TotalKey).Count)
	assert.Equal(t, 2, a.Total.Count)
}

func TestAggregateResultTotalInvariant(t *testing.T) {
	r := rand.New(rand.NewPCG(7, 11))
	keys := []string{"a", "b", "c", "d", "e"}
	a := NewAggregateResult()

	for range 500 {
		key := keys[r.IntN(len(keys))]
		a.Add(key, map[MetricKey]int{MetricInsertions: r.IntN(50), MetricDeletions: r.IntN(50)}, time.Time{})

		count, ins, del := 0, 0, 0
		for _, b := range a.Buckets {
			count += b.Count
			ins += b.Value(MetricInsertions)
			del += b.Value(MetricDeletions)
		}
		require.Equal(t, a.Total.Count, count)
		require.Equal(t, a.Total.Value(MetricInsertions), ins)
		require.Equal(t, a.Total.Value(MetricDeletions), del)
	}
}

func TestPercent(t *testing.T) {
	t.Run("empty total", func(t *testing.T) {
		a := NewAggregateResult()
		a.Seed(MonthKeys...)
		for _, k := range MonthKeys {
			assert.Zero(t, a.Percent(k, MetricCommits))
			assert.Zero(t, a.Percent(k, MetricInsertions))
		}
	})

	t.Run("sums to one hundred", func(t *testing.T) {
		a := NewAggregateResult()
		for i, k := range []string{"x", "y", "z"} {
			for range i + 1 {
				a.Add(k, nil, time.Time{})
			}
		}
		sum := 0.0
		for _, k := range a.Keys() {
			sum += a.Percent(k, MetricCommits)
		}
		assert.InDelta(t, 100.0, sum, 0.0001)
		assert.InDelta(t, 50.0, a.Percent("z", MetricCommits), 0.0001)
	})
}

func TestSortedBuckets(t *testing.T) {
	a := NewAggregateResult()
	a.Seed(WeekdayKeys...)
	a.Add("Sun", nil, time.Time{})
	a.Add("Wed", nil, time.Time{})
	a.Add("Wed", nil, time.Time{})

	tests := []struct {
		name  string
		order SortOrder
		want  []string
	}{
		{"chronological weekdays", ByKeyChronological, WeekdayKeys},
		{"count descending", ByCountDescending, []string{"Wed", "Sun", "Fri", "Mon", "Sat", "Thu", "Tue"}},
		{"alphabetical", ByKeyAlphabetical, []string{"Fri", "Mon", "Sat", "Sun", "Thu", "Tue", "Wed"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got []string
			for _, b := range SortedBuckets(a, tt.order) {
				got = append(got, b.Key)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSortedBucketsMonthsAndHours(t *testing.T) {
	months := NewAggregateResult()
	months.Seed("Dec", "Jan", "Jul")
	var got []string
	for _, b := range SortedBuckets(months, ByKeyChronological) {
		got = append(got, b.Key)
	}
	assert.Equal(t, []string{"Jan", "Jul", "Dec"}, got)

	hours := NewAggregateResult()
	hours.Seed(HourKeys...)
	got = nil
	for _, b := range SortedBuckets(hours, ByKeyChronological) {
		got = append(got, b.Key)
	}
	assert.Equal(t, HourKeys, got)
}

func TestCommitIdentityAndSums(t *testing.T) {
	c := Commit{
		Author: "Ada",
		Email:  "ada@example.com",
		Files: []FileStat{
			{Path: "a.go", Added: 3, Deleted: 1},
			{Path: "logo.png", Binary: true},
		},
	}
	assert.Equal(t, "Ada <ada@example.com>", c.Identity())
	assert.Equal(t, 3, c.Insertions())
	assert.Equal(t, 1, c.Deletions())
	assert.Equal(t, "Ada", Commit{Author: "Ada"}.Identity())
}
