package schema

// Custom string types for type safety.
type (
	// ReportName identifies one report of the catalog.
	ReportName string

	// OutputMode represents the format of the output.
	OutputMode string

	// RenderMode represents how an aggregate is drawn in text output.
	RenderMode string

	// SortOrder represents the row ordering of a rendered aggregate.
	SortOrder string

	// MetricKey names a numeric sum accumulated per bucket.
	MetricKey string

	// MergeView controls how merge commits are treated by log queries.
	MergeView string

	// Theme represents the color scheme of the interactive menu.
	Theme string
)

// All reports supported, in menu order.
const (
	DetailedStatsReport       ReportName = "detailed-git-stats"
	ChangelogsReport          ReportName = "changelogs"
	ChangelogsByAuthorReport  ReportName = "changelogs-by-author"
	MyDailyStatsReport        ReportName = "my-daily-stats"
	BranchTreeReport          ReportName = "branch-tree"
	BranchesByDateReport      ReportName = "branches-by-date"
	ContributorsReport        ReportName = "contributors"
	CommitsPerAuthorReport    ReportName = "commits-per-author"
	CommitsPerDayReport       ReportName = "commits-per-day"
	CommitsByMonthReport      ReportName = "commits-by-month"
	CommitsByWeekdayReport    ReportName = "commits-by-weekday"
	CommitsByHourReport       ReportName = "commits-by-hour"
	CommitsByAuthorHourReport ReportName = "commits-by-author-by-hour"
	SuggestReviewersReport    ReportName = "suggest-reviewers"
)

// All output modes supported.
const (
	TextOut    OutputMode = "text" // default
	CSVOut     OutputMode = "csv"
	JSONOut    OutputMode = "json"
	ParquetOut OutputMode = "parquet"
)

// All render modes supported.
const (
	TableRender RenderMode = "table"
	BarRender   RenderMode = "bar"
)

// All sort orders supported.
const (
	ByKeyChronological SortOrder = "chronological"
	ByCountDescending  SortOrder = "count"
	ByKeyAlphabetical  SortOrder = "alphabetical"
)

// Metric keys accumulated by the aggregator.
const (
	MetricCommits    MetricKey = "commits" // the bucket count itself
	MetricInsertions MetricKey = "insertions"
	MetricDeletions  MetricKey = "deletions"
	MetricFiles      MetricKey = "files"
	MetricLines      MetricKey = "lines"
)

// All merge views supported.
const (
	ExcludeMerges   MergeView = "exclude" // default
	EnableMerges    MergeView = "enable"
	ExclusiveMerges MergeView = "exclusive"
)

// All menu themes supported.
const (
	DefaultTheme Theme = "default"
	LegacyTheme  Theme = "legacy"
	NoneTheme    Theme = "none"
)

// TotalKey is the label of the row that aggregates across all buckets.
// It is never stored in AggregateResult.Buckets.
const TotalKey = "total"

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	TextOut:    {},
	CSVOut:     {},
	JSONOut:    {},
	ParquetOut: {},
}

// ValidMergeViews lists all valid merge views.
var ValidMergeViews = map[MergeView]struct{}{
	ExcludeMerges:   {},
	EnableMerges:    {},
	ExclusiveMerges: {},
}

// ValidThemes lists all valid menu themes.
var ValidThemes = map[Theme]struct{}{
	DefaultTheme: {},
	LegacyTheme:  {},
	NoneTheme:    {},
}

// MonthKeys are the month bucket keys in calendar order.
var MonthKeys = []string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}

// WeekdayKeys are the weekday bucket keys, Monday first.
var WeekdayKeys = []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

// HourKeys are the zero-padded hour bucket keys.
var HourKeys = []string{
	"00", "01", "02", "03", "04", "05", "06", "07", "08", "09", "10", "11",
	"12", "13", "14", "15", "16", "17", "18", "19", "20", "21", "22", "23",
}
