// Package agg has parsing and aggregation logic for git history data.
package agg

import (
	"iter"
	"time"

	"github.com/huangsam/quickstats/schema"
)

// KeyFunc derives the bucket key of a record. Records reporting ok == false
// are skipped without affecting any bucket or the total.
type KeyFunc[R any] func(R) (key string, ok bool)

// ValueFunc accumulates one numeric metric per record.
type ValueFunc[R any] struct {
	Metric schema.MetricKey
	Of     func(R) int
}

// TimeFunc yields the moment a record happened, used for first/last tracking.
type TimeFunc[R any] func(R) time.Time

// Aggregate folds every record into its keyed bucket and into the total.
func Aggregate[R any](records iter.Seq[R], key KeyFunc[R], values ...ValueFunc[R]) *schema.AggregateResult {
	return AggregateAt(records, key, nil, values...)
}

// AggregateAt is Aggregate with first/last timestamps recorded per bucket.
func AggregateAt[R any](records iter.Seq[R], key KeyFunc[R], at TimeFunc[R], values ...ValueFunc[R]) *schema.AggregateResult {
	result := schema.NewAggregateResult()
	for r := range records {
		k, ok := key(r)
		if !ok {
			continue
		}
		var sums map[schema.MetricKey]int
		if len(values) > 0 {
			sums = make(map[schema.MetricKey]int, len(values))
			for _, v := range values {
				sums[v.Metric] += v.Of(r)
			}
		}
		var when time.Time
		if at != nil {
			when = at(r)
		}
		result.Add(k, sums, when)
	}
	return result
}

// Seed pre-creates zero buckets for fixed enumerations such as months.
func Seed(result *schema.AggregateResult, keys []string) *schema.AggregateResult {
	result.Seed(keys...)
	return result
}

// --- Commit key functions ---

// ByIdentity keys commits by "Name <email>".
func ByIdentity(c schema.Commit) (string, bool) {
	return c.Identity(), c.Author != ""
}

// ByAuthor keys commits by the author name alone.
func ByAuthor(c schema.Commit) (string, bool) {
	return c.Author, c.Author != ""
}

// ByDay keys commits by the calendar date of the author timestamp.
func ByDay(cal Calendar) KeyFunc[schema.Commit] {
	return byTime(cal.Day)
}

// ByMonth keys commits by month abbreviation.
func ByMonth(cal Calendar) KeyFunc[schema.Commit] {
	return byTime(cal.Month)
}

// ByWeekday keys commits by weekday abbreviation.
func ByWeekday(cal Calendar) KeyFunc[schema.Commit] {
	return byTime(cal.Weekday)
}

// ByHour keys commits by two-digit hour.
func ByHour(cal Calendar) KeyFunc[schema.Commit] {
	return byTime(cal.Hour)
}

func byTime(format func(time.Time) string) KeyFunc[schema.Commit] {
	return func(c schema.Commit) (string, bool) {
		if c.When.IsZero() {
			return "", false
		}
		return format(c.When), true
	}
}

// CommitTime returns the author timestamp of a commit.
func CommitTime(c schema.Commit) time.Time {
	return c.When
}

// --- Commit value functions ---

// Insertions sums added lines.
var Insertions = ValueFunc[schema.Commit]{Metric: schema.MetricInsertions, Of: schema.Commit.Insertions}

// Deletions sums deleted lines.
var Deletions = ValueFunc[schema.Commit]{Metric: schema.MetricDeletions, Of: schema.Commit.Deletions}

// FilesTouched sums the numstat entries of each commit.
var FilesTouched = ValueFunc[schema.Commit]{
	Metric: schema.MetricFiles,
	Of:     func(c schema.Commit) int { return len(c.Files) },
}

// LinesChanged sums insertions and deletions together.
var LinesChanged = ValueFunc[schema.Commit]{
	Metric: schema.MetricLines,
	Of:     func(c schema.Commit) int { return c.Insertions() + c.Deletions() },
}
