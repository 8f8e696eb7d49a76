// Package parquet exports quickstats aggregate reports to Parquet files
// using github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"io"
	"time"

	"github.com/huangsam/quickstats/schema"
	"github.com/parquet-go/parquet-go"
)

// AggregateRow is one bucket of an aggregate report in columnar form.
type AggregateRow struct {
	// Report is the report name, e.g. commits-per-author
	Report string `parquet:"report,snappy,dict"`

	// Rank is the 1-based position after sorting; 0 marks the total row
	Rank int32 `parquet:"rank,snappy"`

	// Key is the bucket label (author, date, month, weekday or hour)
	Key string `parquet:"key,snappy"`

	Count      int64   `parquet:"count,snappy"`
	Percent    float64 `parquet:"percent,snappy"`
	Insertions int64   `parquet:"insertions,snappy"`
	Deletions  int64   `parquet:"deletions,snappy"`
	Files      int64   `parquet:"files,snappy"`
	Lines      int64   `parquet:"lines,snappy"`

	// First and Last bound the bucket's commits (nullable when not tracked)
	First *time.Time `parquet:"first_commit,optional,snappy"`
	Last  *time.Time `parquet:"last_commit,optional,snappy"`
}

// FromReportOutput flattens a report into Parquet rows, total row last.
func FromReportOutput(out schema.ReportOutput) []AggregateRow {
	rows := make([]AggregateRow, 0, len(out.Rows)+1)
	for _, r := range out.Rows {
		rows = append(rows, toRow(out.Report, r))
	}
	total := toRow(out.Report, out.Total)
	total.Rank = 0
	return append(rows, total)
}

func toRow(report schema.ReportName, r schema.AggregateRow) AggregateRow {
	return AggregateRow{
		Report:     string(report),
		Rank:       int32(r.Rank),
		Key:        r.Key,
		Count:      int64(r.Count),
		Percent:    r.Percent,
		Insertions: int64(r.Sums[schema.MetricInsertions]),
		Deletions:  int64(r.Sums[schema.MetricDeletions]),
		Files:      int64(r.Sums[schema.MetricFiles]),
		Lines:      int64(r.Sums[schema.MetricLines]),
		First:      parseRowTime(r.First),
		Last:       parseRowTime(r.Last),
	}
}

// parseRowTime reads the RFC 3339 timestamps carried by schema.AggregateRow.
func parseRowTime(s string) *time.Time {
	if s == "" {
		return nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return nil
	}
	return &t
}

// WriteAggregateRows writes rows to w as a single Parquet file.
func WriteAggregateRows(w io.Writer, rows []AggregateRow) error {
	// The schema is derived from the AggregateRow struct tags
	writer := parquet.NewGenericWriter[AggregateRow](w)
	if _, err := writer.Write(rows); err != nil {
		_ = writer.Close()
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize parquet file: %w", err)
	}
	return nil
}
