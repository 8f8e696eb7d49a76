package schema

// ChangelogEntry is one commit line of a changelog day.
type ChangelogEntry struct {
	Subject string `json:"subject"`
	Author  string `json:"author"`
}

// ChangelogDay groups the commits of one calendar date.
type ChangelogDay struct {
	Date    string           `json:"date"` // YYYY-MM-DD
	Entries []ChangelogEntry `json:"entries"`
}

// DailyStats summarizes today's work of the configured identity.
type DailyStats struct {
	Author  string    `json:"author"`
	Day     string    `json:"day"` // Local calendar date, YYYY-MM-DD
	Commits int       `json:"commits"`
	Diff    ShortStat `json:"diff"`
}
