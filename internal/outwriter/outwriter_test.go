package outwriter

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"math/rand/v2"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/huangsam/quickstats/internal/contract"
	"github.com/huangsam/quickstats/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func textConfig() *contract.Config {
	return &contract.Config{
		Output:     schema.TextOut,
		BarDivisor: contract.DefaultBarDivisor,
		Width:      120,
	}
}

func TestBarLength(t *testing.T) {
	tests := []struct {
		name    string
		count   int
		total   int
		divisor float64
		want    int
	}{
		{"all commits", 100, 100, 1.25, 80},
		{"forty percent", 40, 100, 1.25, 32},
		{"floor", 1, 3, 1.25, 26},
		{"zero count", 0, 100, 1.25, 0},
		{"zero total", 5, 0, 1.25, 0},
		{"default divisor", 50, 100, 0, 40},
		{"unit divisor", 50, 100, 1, 50},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, BarLength(tt.count, tt.total, tt.divisor))
		})
	}
}

func TestBar(t *testing.T) {
	assert.Equal(t, "|", Bar(0))
	assert.Equal(t, "███", Bar(3))
}

func TestBarLength_Monotonic(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 5))
	for range 1000 {
		total := rng.IntN(5000) + 1
		a, b := rng.IntN(total+1), rng.IntN(total+1)
		if a < b {
			a, b = b, a
		}
		assert.GreaterOrEqual(t, BarLength(a, total, 1.25), BarLength(b, total, 1.25),
			"count %d vs %d of %d", a, b, total)
	}
}

// chartRows returns the chart lines whose first field is one of keys.
func chartRows(out string, keys []string) []string {
	var rows []string
	for line := range strings.Lines(out) {
		fields := strings.Fields(line)
		if len(fields) > 0 && slices.Contains(keys, fields[0]) {
			rows = append(rows, line)
		}
	}
	return rows
}

func TestWriteAggregate_FixedBarCharts(t *testing.T) {
	tests := []struct {
		name string
		keys []string
		hits []string
	}{
		{"months", schema.MonthKeys, []string{"Mar", "Mar", "Nov"}},
		{"weekdays", schema.WeekdayKeys, []string{"Sun"}},
		{"hours", schema.HourKeys, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := schema.NewAggregateResult()
			for _, k := range tt.hits {
				result.Add(k, nil, time.Time{})
			}
			result.Seed(tt.keys...)

			var buf bytes.Buffer
			spec := schema.RenderSpec{Mode: schema.BarRender, Columns: []string{"Key", "Commits"}, Sort: schema.ByKeyChronological}
			require.NoError(t, WriteAggregate(&buf, schema.CommitsByMonthReport, "Chart", result, spec, textConfig()))

			rows := chartRows(buf.String(), tt.keys)
			require.Len(t, rows, len(tt.keys))
			for i, row := range rows {
				assert.Equal(t, tt.keys[i], strings.Fields(row)[0], "calendar order")
			}
		})
	}
}

func TestWriteAggregate_BarChartContent(t *testing.T) {
	result := schema.NewAggregateResult()
	for range 3 {
		result.Add("Mon", nil, time.Time{})
	}
	result.Add("Tue", nil, time.Time{})
	result.Seed(schema.WeekdayKeys...)

	var buf bytes.Buffer
	spec := schema.RenderSpec{Mode: schema.BarRender, Columns: []string{"Day", "Commits"}, Sort: schema.ByKeyChronological}
	require.NoError(t, WriteAggregate(&buf, schema.CommitsByWeekdayReport, "Commits by weekday", result, spec, textConfig()))

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "\nCommits by weekday\n\n"))
	rows := chartRows(out, schema.WeekdayKeys)
	assert.Contains(t, rows[0], strings.Repeat("█", 60))
	assert.NotContains(t, rows[0], strings.Repeat("█", 61))
	assert.Contains(t, rows[1], strings.Repeat("█", 20))
	assert.True(t, strings.HasSuffix(strings.TrimSpace(rows[2]), "|"), "zero rows get the placeholder")
}

func authorResult() *schema.AggregateResult {
	result := schema.NewAggregateResult()
	day := time.Date(2024, 1, 5, 9, 0, 0, 0, time.UTC)
	result.Add("Ada <ada@example.com>", map[schema.MetricKey]int{schema.MetricInsertions: 10}, day)
	result.Add("Ada <ada@example.com>", map[schema.MetricKey]int{schema.MetricInsertions: 20}, day.AddDate(0, 1, 0))
	result.Add("Ada <ada@example.com>", nil, day)
	result.Add("Grace <grace@example.com>", map[schema.MetricKey]int{schema.MetricInsertions: 10}, day)
	return result
}

var authorSpec = schema.RenderSpec{
	Mode:      schema.TableRender,
	Columns:   []string{"Author", "Commits"},
	Sort:      schema.ByCountDescending,
	Metrics:   []schema.MetricKey{schema.MetricCommits},
	Percent:   true,
	ShowTotal: true,
	Numbered:  true,
}

func TestWriteAggregate_Table(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteAggregate(&buf, schema.CommitsPerAuthorReport, "Commits per author", authorResult(), authorSpec, textConfig()))

	out := buf.String()
	assert.Contains(t, out, "Ada <ada@example.com>")
	assert.Contains(t, out, "3 (75.0%)")
	assert.Contains(t, out, "1 (25.0%)")
	assert.Contains(t, out, "4 (100.0%)")
	assert.Less(t, strings.Index(out, "Ada"), strings.Index(out, "Grace"), "count descending")
}

func TestWriteAggregate_TableWithSpan(t *testing.T) {
	spec := authorSpec
	spec.Columns = []string{"Author", "Insertions"}
	spec.Metrics = []schema.MetricKey{schema.MetricInsertions}
	spec.ShowSpan = true

	var buf bytes.Buffer
	require.NoError(t, WriteAggregate(&buf, schema.DetailedStatsReport, "Detailed", authorResult(), spec, textConfig()))
	assert.Contains(t, buf.String(), "2024-01-05")
	assert.Contains(t, buf.String(), "2024-02-05")
	assert.Contains(t, buf.String(), "30 (75.0%)")
}

func TestWriteAggregate_EmptyTable(t *testing.T) {
	var buf bytes.Buffer
	err := WriteAggregate(&buf, schema.CommitsPerAuthorReport, "Commits per author", schema.NewAggregateResult(), authorSpec, textConfig())
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "0 (0.0%)", "the total row shows zero without faulting")
	assert.NotContains(t, out, "NaN")
}

func TestWriteAggregate_Limit(t *testing.T) {
	spec := authorSpec
	spec.Limit = 1

	cfg := textConfig()
	cfg.Output = schema.JSONOut
	var buf bytes.Buffer
	require.NoError(t, WriteAggregate(&buf, schema.SuggestReviewersReport, "Reviewers", authorResult(), spec, cfg))

	var decoded schema.ReportOutput
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded.Rows, 1)
	assert.Equal(t, "Ada <ada@example.com>", decoded.Rows[0].Key)
	assert.Equal(t, 4, decoded.Total.Count, "the total covers every bucket")
	assert.Equal(t, schema.SuggestReviewersReport, decoded.Report)
}

func TestWriteAggregate_CSV(t *testing.T) {
	cfg := textConfig()
	cfg.Output = schema.CSVOut
	var buf bytes.Buffer
	require.NoError(t, WriteAggregate(&buf, schema.CommitsPerAuthorReport, "Commits per author", authorResult(), authorSpec, cfg))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 4, "header, two authors, total")
	assert.Equal(t, []string{"rank", "key", "count", "percent", "commits", "first_commit", "last_commit"}, records[0])
	assert.Equal(t, "75.00", records[1][3])
	assert.Equal(t, schema.TotalKey, records[3][1])
}

func TestWriteAggregate_ParquetToFile(t *testing.T) {
	cfg := textConfig()
	cfg.Output = schema.ParquetOut
	cfg.OutputFile = filepath.Join(t.TempDir(), "authors.parquet")

	require.NoError(t, WriteAggregate(&bytes.Buffer{}, schema.CommitsPerAuthorReport, "Commits per author", authorResult(), authorSpec, cfg))
	info, err := os.Stat(cfg.OutputFile)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}

func TestWriteAggregate_TextToFile(t *testing.T) {
	cfg := textConfig()
	cfg.OutputFile = filepath.Join(t.TempDir(), "authors.txt")

	var buf bytes.Buffer
	require.NoError(t, WriteAggregate(&buf, schema.CommitsPerAuthorReport, "Commits per author", authorResult(), authorSpec, cfg))
	assert.Zero(t, buf.Len(), "output goes to the file instead")
	content, err := os.ReadFile(cfg.OutputFile)
	require.NoError(t, err)
	assert.Contains(t, string(content), "Grace")
}

func TestWriteChangelog(t *testing.T) {
	days := []schema.ChangelogDay{
		{Date: "2024-01-05", Entries: []schema.ChangelogEntry{{Subject: "Add parser", Author: "Ada"}}},
		{Date: "2024-01-03", Entries: []schema.ChangelogEntry{{Subject: "Fix bug", Author: "Grace"}, {Subject: "Docs", Author: "Ada"}}},
	}
	var buf bytes.Buffer
	require.NoError(t, WriteChangelog(&buf, schema.ChangelogsReport, "Changelogs", days, textConfig()))
	assert.Contains(t, buf.String(), "2024-01-05\n\t* Add parser (Ada)\n\n2024-01-03\n\t* Fix bug (Grace)\n\t* Docs (Ada)\n")

	cfg := textConfig()
	cfg.Output = schema.CSVOut
	buf.Reset()
	require.NoError(t, WriteChangelog(&buf, schema.ChangelogsReport, "Changelogs", days, cfg))
	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	assert.Len(t, records, 4)
}

func TestWriteBranches(t *testing.T) {
	branches := []schema.Branch{
		{Name: "main", Author: "Ada", Age: "2 hours ago"},
		{Name: "feature/search", Author: "Grace", Age: "3 days ago"},
	}
	var buf bytes.Buffer
	require.NoError(t, WriteBranches(&buf, schema.BranchesByDateReport, "Branches", branches, textConfig()))
	out := buf.String()
	assert.Contains(t, out, "feature/search")
	assert.Contains(t, out, "3 days ago")
	assert.Less(t, strings.Index(out, "main"), strings.Index(out, "feature/search"))

	cfg := textConfig()
	cfg.Output = schema.JSONOut
	buf.Reset()
	require.NoError(t, WriteBranches(&buf, schema.BranchesByDateReport, "Branches", branches, cfg))
	var decoded struct {
		Items []schema.Branch `json:"items"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, branches, decoded.Items)
}

func TestWriteLinesAndDailyStats(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteLines(&buf, schema.BranchTreeReport, "Branch tree", []string{"* abc First", "|"}, textConfig()))
	assert.Equal(t, "\nBranch tree\n\n* abc First\n|\n", buf.String())

	buf.Reset()
	stats := schema.DailyStats{Author: "Ada", Day: "2024-05-06", Commits: 2, Diff: schema.ShortStat{Files: 3, Insertions: 42, Deletions: 7}}
	require.NoError(t, WriteDailyStats(&buf, schema.MyDailyStatsReport, "My daily stats", stats, textConfig()))
	assert.Contains(t, buf.String(), "3 files changed, 42 insertions(+), 7 deletions(-)")
	assert.Contains(t, buf.String(), "2 commits")
}

func TestListingsRejectParquet(t *testing.T) {
	cfg := textConfig()
	cfg.Output = schema.ParquetOut
	cfg.OutputFile = filepath.Join(t.TempDir(), "x.parquet")

	err := WriteLines(&bytes.Buffer{}, schema.BranchTreeReport, "Branch tree", nil, cfg)
	var argErr *contract.InvalidArgumentError
	assert.True(t, errors.As(err, &argErr))
	assert.NoFileExists(t, cfg.OutputFile)
}

func TestGetMaxTableKeyWidth(t *testing.T) {
	assert.Equal(t, 15, GetMaxTableKeyWidth(&contract.Config{Width: 40}, 1))
	assert.Equal(t, 70, GetMaxTableKeyWidth(&contract.Config{Width: 400}, 1))
	assert.Equal(t, 120-28-32, GetMaxTableKeyWidth(&contract.Config{Width: 120}, 2))
}
