// Package outwriter has output and writer logic.
package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/huangsam/quickstats/internal/contract"
	"github.com/huangsam/quickstats/internal/parquet"
	"github.com/huangsam/quickstats/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// Bar glyphs used by bar charts.
const (
	barCell  = "█"
	emptyBar = "|"
)

// writeTitle prints the bold report title that precedes every text report.
func writeTitle(w io.Writer, title string, cfg *contract.Config) error {
	bold := color.New(color.Bold)
	if !cfg.UseColors {
		bold.DisableColor()
	}
	_, err := fmt.Fprintf(w, "\n%s\n\n", bold.Sprint(title))
	return err
}

// newTable returns a left-aligned table writer.
func newTable(w io.Writer) *tablewriter.Table {
	table := tablewriter.NewWriter(w)
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Header.Alignment.Global = tw.AlignLeft
		cfg.Row.Alignment.Global = tw.AlignLeft
	})
	return table
}

// BarLength returns floor(count / total * 100 / divisor), or 0 for an empty total.
func BarLength(count, total int, divisor float64) int {
	if total <= 0 || count <= 0 {
		return 0
	}
	if divisor <= 0 {
		divisor = contract.DefaultBarDivisor
	}
	return int(math.Floor(float64(count) / float64(total) * 100 / divisor))
}

// Bar draws a bar of n cells, or the zero placeholder.
func Bar(n int) string {
	if n <= 0 {
		return emptyBar
	}
	return strings.Repeat(barCell, n)
}

// BuildReportOutput flattens an aggregate into sorted, limited rows.
func BuildReportOutput(report schema.ReportName, title string, result *schema.AggregateResult, spec schema.RenderSpec) schema.ReportOutput {
	buckets := schema.SortedBuckets(result, spec.Sort)
	if spec.Limit > 0 && len(buckets) > spec.Limit {
		buckets = buckets[:spec.Limit]
	}
	out := schema.ReportOutput{
		Report: report,
		Title:  title,
		Rows:   make([]schema.AggregateRow, 0, len(buckets)),
		Total:  toAggregateRow(0, result.Total, totalPercent(result)),
	}
	for i, b := range buckets {
		out.Rows = append(out.Rows, toAggregateRow(i+1, b, result.Percent(b.Key, schema.MetricCommits)))
	}
	return out
}

func toAggregateRow(rank int, b schema.Bucket, percent float64) schema.AggregateRow {
	row := schema.AggregateRow{
		Rank:    rank,
		Key:     b.Key,
		Count:   b.Count,
		Percent: percent,
		Sums:    b.Sums,
	}
	if !b.First.IsZero() {
		row.First = b.First.Format(time.RFC3339)
		row.Last = b.Last.Format(time.RFC3339)
	}
	return row
}

// totalPercent is 100 for a non-empty aggregate and 0 otherwise.
func totalPercent(result *schema.AggregateResult) float64 {
	if result.Total.Count == 0 {
		return 0
	}
	return 100
}

// WriteAggregate renders an aggregate report in the configured output format.
func WriteAggregate(w io.Writer, report schema.ReportName, title string, result *schema.AggregateResult, spec schema.RenderSpec, cfg *contract.Config) error {
	out := BuildReportOutput(report, title, result, spec)
	fmtFloat, intFmt := createFormatters(2)

	return formats{
		text: func(w io.Writer) error {
			if err := writeTitle(w, title, cfg); err != nil {
				return err
			}
			if spec.Mode == schema.BarRender {
				return writeBarChart(w, out, spec, cfg)
			}
			return writeAggregateTable(w, out, result, spec, cfg)
		},
		csvHeader: aggregateCSVHeader(spec),
		csvRows: func(cw *csv.Writer) error {
			for _, r := range append(out.Rows, out.Total) {
				rec := []string{strconv.Itoa(r.Rank), r.Key, fmt.Sprintf(intFmt, r.Count), fmtFloat(r.Percent)}
				for _, m := range spec.Metrics {
					rec = append(rec, fmt.Sprintf(intFmt, rowValue(r, m)))
				}
				rec = append(rec, r.First, r.Last)
				if err := cw.Write(rec); err != nil {
					return err
				}
			}
			return nil
		},
		json: out,
		parquet: func(w io.Writer) error {
			return parquet.WriteAggregateRows(w, parquet.FromReportOutput(out))
		},
	}.write(w, cfg)
}

func aggregateCSVHeader(spec schema.RenderSpec) []string {
	header := []string{"rank", "key", "count", "percent"}
	for _, m := range spec.Metrics {
		header = append(header, string(m))
	}
	return append(header, "first_commit", "last_commit")
}

func rowValue(r schema.AggregateRow, metric schema.MetricKey) int {
	if metric == schema.MetricCommits {
		return r.Count
	}
	return r.Sums[metric]
}

// writeAggregateTable renders one row per bucket plus an optional total row.
func writeAggregateTable(w io.Writer, out schema.ReportOutput, result *schema.AggregateResult, spec schema.RenderSpec, cfg *contract.Config) error {
	table := newTable(w)

	var headers []string
	if spec.Numbered {
		headers = append(headers, "#")
	}
	headers = append(headers, spec.Columns...)
	if spec.ShowSpan {
		headers = append(headers, "First", "Last")
	}
	table.Header(headers)

	keyWidth := GetMaxTableKeyWidth(cfg, len(spec.Metrics))
	cell := func(r schema.AggregateRow, m schema.MetricKey, pct float64) string {
		v := rowValue(r, m)
		if !spec.Percent {
			return strconv.Itoa(v)
		}
		return fmt.Sprintf("%d (%.1f%%)", v, pct)
	}
	build := func(r schema.AggregateRow, percent func(schema.MetricKey) float64) []string {
		var row []string
		if spec.Numbered {
			if r.Rank > 0 {
				row = append(row, strconv.Itoa(r.Rank))
			} else {
				row = append(row, "")
			}
		}
		row = append(row, contract.Truncate(r.Key, keyWidth))
		for _, m := range spec.Metrics {
			row = append(row, cell(r, m, percent(m)))
		}
		if spec.ShowSpan {
			row = append(row, shortDate(r.First), shortDate(r.Last))
		}
		return row
	}

	data := make([][]string, 0, len(out.Rows)+1)
	for _, r := range out.Rows {
		data = append(data, build(r, func(m schema.MetricKey) float64 {
			return result.Percent(r.Key, m)
		}))
	}
	if spec.ShowTotal {
		data = append(data, build(out.Total, func(m schema.MetricKey) float64 {
			if result.Total.Value(m) == 0 {
				return 0
			}
			return 100
		}))
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}

// shortDate turns an RFC 3339 row timestamp into YYYY-MM-DD.
func shortDate(s string) string {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.Format(time.DateOnly)
	}
	return s
}

// writeBarChart renders "key count bar" lines in bucket order.
func writeBarChart(w io.Writer, out schema.ReportOutput, spec schema.RenderSpec, cfg *contract.Config) error {
	keyWidth := 0
	for _, r := range out.Rows {
		keyWidth = max(keyWidth, len(r.Key))
	}
	if len(spec.Columns) >= 2 {
		keyWidth = max(keyWidth, len(spec.Columns[0]))
		if _, err := fmt.Fprintf(w, "\t%-*s %6s\n", keyWidth, spec.Columns[0], spec.Columns[1]); err != nil {
			return err
		}
	}
	for _, r := range out.Rows {
		bar := Bar(BarLength(r.Count, out.Total.Count, cfg.BarDivisor))
		if _, err := fmt.Fprintf(w, "\t%-*s %6d %s\n", keyWidth, r.Key, r.Count, bar); err != nil {
			return err
		}
	}
	return nil
}
