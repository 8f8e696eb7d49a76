// Package core has the report catalog and the logic shared by every report.
package core

import (
	"context"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/huangsam/quickstats/core/agg"
	"github.com/huangsam/quickstats/internal/contract"
	"github.com/huangsam/quickstats/internal/outwriter"
	"github.com/huangsam/quickstats/schema"
)

// Menu sections, in display order.
const (
	SectionGenerate = "Generate:"
	SectionList     = "List:"
	SectionSuggest  = "Suggest:"
)

// BranchTreeLineMultiplier scales the result limit into graph lines,
// since each commit renders as several lines.
const BranchTreeLineMultiplier = 5

// generateFunc produces one report.
type generateFunc func(ctx context.Context, rc *runContext) error

// Report is one entry of the catalog.
type Report struct {
	Name        schema.ReportName // Long flag name
	Short       string            // One-letter flag
	Title       string            // Bold title line printed before the report
	MenuLabel   string            // Interactive menu text
	Section     string            // Interactive menu section
	NeedsAuthor bool              // Scoped to one author
	generate    generateFunc
}

// runContext carries everything a report needs for one invocation.
type runContext struct {
	report Report
	cfg    *contract.Config
	client contract.GitClient
	author string
	cal    agg.Calendar
	w      io.Writer
}

// Catalog returns the reports in menu order.
func Catalog() []Report {
	return slices.Clone(catalog)
}

// Lookup finds a report by name.
func Lookup(name schema.ReportName) (Report, bool) {
	i := slices.IndexFunc(catalog, func(r Report) bool { return r.Name == name })
	if i < 0 {
		return Report{}, false
	}
	return catalog[i], true
}

// ByMenuNumber finds a report by its 1-based menu position.
func ByMenuNumber(n int) (Report, bool) {
	if n < 1 || n > len(catalog) {
		return Report{}, false
	}
	return catalog[n-1], true
}

// Execute runs one report against the repository in cfg and writes it to w.
// Author-scoped reports use author, falling back to cfg.Author.
func Execute(ctx context.Context, cfg *contract.Config, client contract.GitClient, name schema.ReportName, author string, w io.Writer) error {
	report, ok := Lookup(name)
	if !ok {
		return &contract.InvalidArgumentError{Reason: fmt.Sprintf("unknown report %q", name)}
	}
	rc := &runContext{
		report: report,
		cfg:    cfg,
		client: client,
		cal:    agg.EnglishCalendar{},
		w:      w,
	}
	if report.NeedsAuthor {
		rc.author = strings.TrimSpace(author)
		if rc.author == "" {
			rc.author = cfg.Author
		}
		if rc.author == "" {
			return &contract.MissingRequiredInputError{Input: "author"}
		}
	}
	if err := report.generate(ctx, rc); err != nil {
		return fmt.Errorf("%s: %w", report.Name, err)
	}
	return nil
}

// title returns the report title, naming the author when scoped.
func (rc *runContext) title() string {
	if rc.author == "" {
		return rc.report.Title
	}
	return fmt.Sprintf("%s: %s", rc.report.Title, rc.author)
}

// logQuery returns a query carrying the shared filters and the report's author.
func (rc *runContext) logQuery(format string) contract.LogQuery {
	q := contract.LogQuery{
		Format:   format,
		Filters:  rc.cfg.LogFilterArgs(),
		Pathspec: rc.cfg.Pathspec,
	}
	if rc.author != "" {
		q.Authors = []string{rc.author}
	}
	return q
}

// commits runs a log query and parses its output into commits.
func (rc *runContext) commits(ctx context.Context, q contract.LogQuery) ([]schema.Commit, error) {
	out, err := rc.client.GetLog(ctx, rc.cfg.RepoPath, q)
	if err != nil {
		return nil, err
	}
	return slices.Collect(agg.ParseCommits(out)), nil
}

// writeAggregate renders an aggregate under the report title.
func (rc *runContext) writeAggregate(result *schema.AggregateResult, spec schema.RenderSpec) error {
	return outwriter.WriteAggregate(rc.w, rc.report.Name, rc.title(), result, spec, rc.cfg)
}
