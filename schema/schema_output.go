package schema

import (
	"slices"
	"sort"
	"strings"
)

// RenderSpec describes how an aggregate is turned into text.
type RenderSpec struct {
	Mode      RenderMode  // Table or bar chart
	Columns   []string    // Header labels, first column is the bucket key
	Sort      SortOrder   // Row ordering
	Metrics   []MetricKey // One value column per metric, after the key
	Percent   bool        // Append each value's share of the total
	ShowTotal bool        // Emit a final total row
	Numbered  bool        // Prefix each row with its 1-based position
	ShowSpan  bool        // Add first and last commit date columns
	Limit     int         // Keep only the first N rows after sorting (0 = all)
}

// calendarOrders are the fixed enumerations with a non-lexical order.
var calendarOrders = [][]string{MonthKeys, WeekdayKeys}

// calendarRank returns the position of key within its fixed enumeration.
func calendarRank(key string) (int, bool) {
	for _, order := range calendarOrders {
		if i := slices.Index(order, key); i >= 0 {
			return i, true
		}
	}
	return 0, false
}

// SortedBuckets returns the buckets of an aggregate in the given order.
// Chronological order follows the calendar for month and weekday keys;
// hours and ISO dates are already chronological when compared lexically.
func SortedBuckets(a *AggregateResult, order SortOrder) []Bucket {
	out := make([]Bucket, 0, a.Len())
	for _, b := range a.Buckets {
		out = append(out, *b)
	}
	switch order {
	case ByKeyChronological:
		sort.Slice(out, func(i, j int) bool {
			ri, iok := calendarRank(out[i].Key)
			rj, jok := calendarRank(out[j].Key)
			if iok && jok {
				return ri < rj
			}
			return out[i].Key < out[j].Key
		})
	case ByCountDescending:
		sort.Slice(out, func(i, j int) bool {
			if out[i].Count != out[j].Count {
				return out[i].Count > out[j].Count
			}
			return out[i].Key < out[j].Key
		})
	default:
		sort.Slice(out, func(i, j int) bool {
			li, lj := strings.ToLower(out[i].Key), strings.ToLower(out[j].Key)
			if li != lj {
				return li < lj
			}
			return out[i].Key < out[j].Key
		})
	}
	return out
}

// AggregateRow is the flat, machine-readable form of one bucket.
type AggregateRow struct {
	Rank    int               `json:"rank"`
	Key     string            `json:"key"`
	Count   int               `json:"count"`
	Percent float64           `json:"percent"`
	Sums    map[MetricKey]int `json:"sums,omitempty"`
	First   string            `json:"first,omitempty"` // RFC 3339
	Last    string            `json:"last,omitempty"`  // RFC 3339
}

// ReportOutput is the JSON envelope of an aggregate report.
type ReportOutput struct {
	Report ReportName     `json:"report"`
	Title  string         `json:"title"`
	Rows   []AggregateRow `json:"rows"`
	Total  AggregateRow   `json:"total"`
}
