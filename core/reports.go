package core

import (
	"context"
	"slices"
	"strings"
	"time"

	"github.com/huangsam/quickstats/core/agg"
	"github.com/huangsam/quickstats/internal/contract"
	"github.com/huangsam/quickstats/internal/outwriter"
	"github.com/huangsam/quickstats/schema"
)

// generateDetailedStats tallies insertions, deletions, files, commits and
// lines per author, with first and last commit dates.
func generateDetailedStats(ctx context.Context, rc *runContext) error {
	q := rc.logQuery(agg.CommitFormat)
	q.NumStat = true
	commits, err := rc.commits(ctx, q)
	if err != nil {
		return err
	}
	result := agg.AggregateAt(slices.Values(commits), agg.ByIdentity, agg.CommitTime,
		agg.Insertions, agg.Deletions, agg.FilesTouched, agg.LinesChanged)
	return rc.writeAggregate(result, schema.RenderSpec{
		Mode:    schema.TableRender,
		Columns: []string{"Author", "Insertions", "Deletions", "Files", "Commits", "Lines changed"},
		Sort:    schema.ByCountDescending,
		Metrics: []schema.MetricKey{
			schema.MetricInsertions, schema.MetricDeletions, schema.MetricFiles,
			schema.MetricCommits, schema.MetricLines,
		},
		Percent:   true,
		ShowTotal: true,
		ShowSpan:  true,
	})
}

// generateChangelogs groups commit subjects by the newest commit dates.
func generateChangelogs(ctx context.Context, rc *runContext) error {
	commits, err := rc.commits(ctx, rc.logQuery(agg.CommitFormat))
	if err != nil {
		return err
	}
	days := PartitionChangelog(commits, rc.cfg.Limit, rc.cfg.Clock())
	return outwriter.WriteChangelog(rc.w, rc.report.Name, rc.title(), days, rc.cfg)
}

// generateMyDailyStats reports the working-tree diff and commit count of the
// configured identity since local midnight.
func generateMyDailyStats(ctx context.Context, rc *runContext) error {
	name, err := rc.client.GetConfigValue(ctx, rc.cfg.RepoPath, "user.name")
	if err != nil {
		return err
	}
	if name == "" {
		return &contract.MissingRequiredInputError{Input: "git config user.name"}
	}

	midnight := LocalMidnight(rc.cfg.Clock())
	diff, err := rc.client.GetShortStat(ctx, rc.cfg.RepoPath, midnight)
	if err != nil {
		return err
	}

	today := rc.cfg.Clone()
	today.Since = midnight.Format(contract.ReflogTimeFormat)
	today.Until = ""
	out, err := rc.client.GetLog(ctx, rc.cfg.RepoPath, contract.LogQuery{
		Format:   "%H",
		Filters:  today.LogFilterArgs(),
		Authors:  []string{name},
		Pathspec: rc.cfg.Pathspec,
	})
	if err != nil {
		return err
	}

	stats := schema.DailyStats{
		Author:  name,
		Day:     midnight.Format(contract.DateFormat),
		Commits: countLines(out),
		Diff:    agg.ParseShortStat(diff),
	}
	return outwriter.WriteDailyStats(rc.w, rc.report.Name, rc.title(), stats, rc.cfg)
}

// LocalMidnight returns the start of the local calendar day containing now.
func LocalMidnight(now time.Time) time.Time {
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
}

func countLines(out []byte) int {
	n := 0
	for range agg.ParseLines(out) {
		n++
	}
	return n
}

// generateBranchTree prints the decorated commit graph across all refs.
func generateBranchTree(ctx context.Context, rc *runContext) error {
	out, err := rc.client.GetLog(ctx, rc.cfg.RepoPath, contract.LogQuery{
		Format:   "%h -%d %s (%cr) <%an>",
		Filters:  append(rc.cfg.WindowArgs(), rc.cfg.LogOptions...),
		Graph:    true,
		Pathspec: rc.cfg.Pathspec,
	})
	if err != nil {
		return err
	}
	lines := slices.Collect(agg.Take(agg.ParseLines(out), rc.cfg.Limit*BranchTreeLineMultiplier))
	return outwriter.WriteLines(rc.w, rc.report.Name, rc.title(), lines, rc.cfg)
}

// generateBranchesByDate lists local branches, most recently committed first.
func generateBranchesByDate(ctx context.Context, rc *runContext) error {
	out, err := rc.client.GetBranches(ctx, rc.cfg.RepoPath)
	if err != nil {
		return err
	}
	branches := slices.Collect(agg.ParseBranches(out))
	return outwriter.WriteBranches(rc.w, rc.report.Name, rc.title(), branches, rc.cfg)
}

// generateContributors lists unique author names alphabetically.
func generateContributors(ctx context.Context, rc *runContext) error {
	commits, err := rc.commits(ctx, rc.logQuery(agg.CommitFormat))
	if err != nil {
		return err
	}
	result := agg.Aggregate(slices.Values(commits), agg.ByAuthor)
	return rc.writeAggregate(result, schema.RenderSpec{
		Mode:     schema.TableRender,
		Columns:  []string{"Author"},
		Sort:     schema.ByKeyAlphabetical,
		Numbered: true,
	})
}

// generateCommitsPerAuthor counts commits per author identity.
func generateCommitsPerAuthor(ctx context.Context, rc *runContext) error {
	commits, err := rc.commits(ctx, rc.logQuery(agg.CommitFormat))
	if err != nil {
		return err
	}
	result := agg.Aggregate(slices.Values(commits), agg.ByIdentity)
	return rc.writeAggregate(result, countSpec("Author"))
}

// generateCommitsPerDay counts commits per author date.
func generateCommitsPerDay(ctx context.Context, rc *runContext) error {
	commits, err := rc.commits(ctx, rc.logQuery(agg.CommitFormat))
	if err != nil {
		return err
	}
	result := agg.Aggregate(slices.Values(commits), agg.ByDay(rc.cal))
	return rc.writeAggregate(result, countSpec("Date"))
}

// countSpec is the table layout of flat commit counts.
func countSpec(keyLabel string) schema.RenderSpec {
	return schema.RenderSpec{
		Mode:      schema.TableRender,
		Columns:   []string{keyLabel, "Commits"},
		Sort:      schema.ByCountDescending,
		Metrics:   []schema.MetricKey{schema.MetricCommits},
		Percent:   true,
		ShowTotal: true,
	}
}

// generateCommitsByMonth charts commits over the twelve months.
func generateCommitsByMonth(ctx context.Context, rc *runContext) error {
	return rc.calendarChart(ctx, "Month", agg.ByMonth(rc.cal), schema.MonthKeys)
}

// generateCommitsByWeekday charts commits over the seven weekdays.
func generateCommitsByWeekday(ctx context.Context, rc *runContext) error {
	return rc.calendarChart(ctx, "Day", agg.ByWeekday(rc.cal), schema.WeekdayKeys)
}

// generateCommitsByHour charts commits over the 24 hours, optionally for one author.
func generateCommitsByHour(ctx context.Context, rc *runContext) error {
	return rc.calendarChart(ctx, "Hour", agg.ByHour(rc.cal), schema.HourKeys)
}

// calendarChart draws a bar chart with every key of a fixed enumeration.
func (rc *runContext) calendarChart(ctx context.Context, label string, key agg.KeyFunc[schema.Commit], keys []string) error {
	commits, err := rc.commits(ctx, rc.logQuery(agg.CommitFormat))
	if err != nil {
		return err
	}
	result := agg.Seed(agg.Aggregate(slices.Values(commits), key), keys)
	return rc.writeAggregate(result, schema.RenderSpec{
		Mode:    schema.BarRender,
		Columns: []string{label, "Commits"},
		Sort:    schema.ByKeyChronological,
	})
}

// generateSuggestReviewers ranks the authors of the most recent commits.
func generateSuggestReviewers(ctx context.Context, rc *runContext) error {
	q := rc.logQuery(agg.CommitFormat)
	q.MaxCount = rc.cfg.ReviewerCap
	commits, err := rc.commits(ctx, q)
	if err != nil {
		return err
	}
	result := agg.Aggregate(slices.Values(commits), agg.ByAuthor)
	return rc.writeAggregate(result, schema.RenderSpec{
		Mode:     schema.TableRender,
		Columns:  []string{"Reviewer", "Commits"},
		Sort:     schema.ByCountDescending,
		Metrics:  []schema.MetricKey{schema.MetricCommits},
		Numbered: true,
		Limit:    rc.cfg.Limit,
	})
}

// PartitionChangelog groups commits into the newest limit distinct commit
// dates. Bucket i holds the commits dated in [date_i, upper_i), where the
// newest bucket ends the day after today and every other bucket ends where
// the previous one began.
func PartitionChangelog(commits []schema.Commit, limit int, today time.Time) []schema.ChangelogDay {
	seen := make(map[string]struct{})
	var dates []string
	for _, c := range commits {
		if c.CommitDate == "" {
			continue
		}
		if _, ok := seen[c.CommitDate]; !ok {
			seen[c.CommitDate] = struct{}{}
			dates = append(dates, c.CommitDate)
		}
	}
	slices.SortFunc(dates, func(a, b string) int { return strings.Compare(b, a) })
	if limit > 0 && len(dates) > limit {
		dates = dates[:limit]
	}

	upper := today.AddDate(0, 0, 1).Format(time.DateOnly)
	days := make([]schema.ChangelogDay, 0, len(dates))
	for _, lower := range dates {
		day := schema.ChangelogDay{Date: lower}
		for _, c := range commits {
			// ISO dates compare chronologically as strings
			if c.CommitDate >= lower && c.CommitDate < upper {
				day.Entries = append(day.Entries, schema.ChangelogEntry{Subject: c.Subject, Author: c.Author})
			}
		}
		days = append(days, day)
		upper = lower
	}
	return days
}
