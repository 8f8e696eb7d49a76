package core

import "github.com/huangsam/quickstats/schema"

// catalog lists every report in menu order.
var catalog = []Report{
	{
		Name:      schema.DetailedStatsReport,
		Short:     "T",
		Title:     "Contribution stats (by author)",
		MenuLabel: "Contribution stats (by author)",
		Section:   SectionGenerate,
		generate:  generateDetailedStats,
	},
	{
		Name:      schema.ChangelogsReport,
		Short:     "c",
		Title:     "Git changelogs",
		MenuLabel: "Git changelogs",
		Section:   SectionGenerate,
		generate:  generateChangelogs,
	},
	{
		Name:        schema.ChangelogsByAuthorReport,
		Short:       "L",
		Title:       "Git changelogs by author",
		MenuLabel:   "Git changelogs by author",
		Section:     SectionGenerate,
		NeedsAuthor: true,
		generate:    generateChangelogs,
	},
	{
		Name:      schema.MyDailyStatsReport,
		Short:     "S",
		Title:     "My daily status",
		MenuLabel: "My daily status",
		Section:   SectionGenerate,
		generate:  generateMyDailyStats,
	},
	{
		Name:      schema.BranchTreeReport,
		Short:     "b",
		Title:     "Branch tree view",
		MenuLabel: "Branch tree view",
		Section:   SectionList,
		generate:  generateBranchTree,
	},
	{
		Name:      schema.BranchesByDateReport,
		Short:     "D",
		Title:     "All branches (sorted by most recent commit)",
		MenuLabel: "All branches (sorted by most recent commit)",
		Section:   SectionList,
		generate:  generateBranchesByDate,
	},
	{
		Name:      schema.ContributorsReport,
		Short:     "C",
		Title:     "All contributors (sorted by name)",
		MenuLabel: "All contributors (sorted by name)",
		Section:   SectionList,
		generate:  generateContributors,
	},
	{
		Name:      schema.CommitsPerAuthorReport,
		Short:     "a",
		Title:     "Git commits per author",
		MenuLabel: "Git commits per author",
		Section:   SectionList,
		generate:  generateCommitsPerAuthor,
	},
	{
		Name:      schema.CommitsPerDayReport,
		Short:     "d",
		Title:     "Git commits per date",
		MenuLabel: "Git commits per date",
		Section:   SectionList,
		generate:  generateCommitsPerDay,
	},
	{
		Name:      schema.CommitsByMonthReport,
		Short:     "m",
		Title:     "Git commits by month",
		MenuLabel: "Git commits by month",
		Section:   SectionList,
		generate:  generateCommitsByMonth,
	},
	{
		Name:      schema.CommitsByWeekdayReport,
		Short:     "w",
		Title:     "Git commits by weekday",
		MenuLabel: "Git commits by weekday",
		Section:   SectionList,
		generate:  generateCommitsByWeekday,
	},
	{
		Name:      schema.CommitsByHourReport,
		Short:     "o",
		Title:     "Git commits by hour",
		MenuLabel: "Git commits by hour",
		Section:   SectionList,
		generate:  generateCommitsByHour,
	},
	{
		Name:        schema.CommitsByAuthorHourReport,
		Short:       "A",
		Title:       "Git commits by hour for author",
		MenuLabel:   "Git commits by hour for author",
		Section:     SectionList,
		NeedsAuthor: true,
		generate:    generateCommitsByHour,
	},
	{
		Name:      schema.SuggestReviewersReport,
		Short:     "r",
		Title:     "Suggested code reviewers (based on git history)",
		MenuLabel: "Code reviewers (based on git history)",
		Section:   SectionSuggest,
		generate:  generateSuggestReviewers,
	},
}
