package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/huangsam/quickstats/internal/contract"
	"github.com/huangsam/quickstats/schema"
)

// listingOutput is the JSON envelope of a non-aggregate report.
type listingOutput[T any] struct {
	Report schema.ReportName `json:"report"`
	Title  string            `json:"title"`
	Items  T                 `json:"items"`
}

// WriteLines prints raw lines, such as a commit graph, under a title.
func WriteLines(w io.Writer, report schema.ReportName, title string, lines []string, cfg *contract.Config) error {
	return formats{
		text: func(w io.Writer) error {
			if err := writeTitle(w, title, cfg); err != nil {
				return err
			}
			for _, l := range lines {
				if _, err := fmt.Fprintln(w, l); err != nil {
					return err
				}
			}
			return nil
		},
		csvHeader: []string{"line"},
		csvRows: func(cw *csv.Writer) error {
			for _, l := range lines {
				if err := cw.Write([]string{l}); err != nil {
					return err
				}
			}
			return nil
		},
		json: listingOutput[[]string]{Report: report, Title: title, Items: lines},
	}.write(w, cfg)
}

// WriteChangelog prints each day followed by its commit subjects and authors.
func WriteChangelog(w io.Writer, report schema.ReportName, title string, days []schema.ChangelogDay, cfg *contract.Config) error {
	return formats{
		text: func(w io.Writer) error {
			if err := writeTitle(w, title, cfg); err != nil {
				return err
			}
			for _, d := range days {
				if _, err := fmt.Fprintf(w, "%s\n", d.Date); err != nil {
					return err
				}
				for _, e := range d.Entries {
					if _, err := fmt.Fprintf(w, "\t* %s (%s)\n", e.Subject, e.Author); err != nil {
						return err
					}
				}
				if _, err := fmt.Fprintln(w); err != nil {
					return err
				}
			}
			return nil
		},
		csvHeader: []string{"date", "subject", "author"},
		csvRows: func(cw *csv.Writer) error {
			for _, d := range days {
				for _, e := range d.Entries {
					if err := cw.Write([]string{d.Date, e.Subject, e.Author}); err != nil {
						return err
					}
				}
			}
			return nil
		},
		json: listingOutput[[]schema.ChangelogDay]{Report: report, Title: title, Items: days},
	}.write(w, cfg)
}

// WriteBranches prints a numbered table of branches with their last commit age.
func WriteBranches(w io.Writer, report schema.ReportName, title string, branches []schema.Branch, cfg *contract.Config) error {
	return formats{
		text: func(w io.Writer) error {
			if err := writeTitle(w, title, cfg); err != nil {
				return err
			}
			table := newTable(w)
			table.Header([]string{"#", "Branch", "Last commit", "Author"})
			nameWidth := GetMaxTableKeyWidth(cfg, 2)
			data := make([][]string, 0, len(branches))
			for i, b := range branches {
				data = append(data, []string{
					strconv.Itoa(i + 1),
					contract.Truncate(b.Name, nameWidth),
					b.Age,
					b.Author,
				})
			}
			if err := table.Bulk(data); err != nil {
				return err
			}
			return table.Render()
		},
		csvHeader: []string{"rank", "branch", "age", "author"},
		csvRows: func(cw *csv.Writer) error {
			for i, b := range branches {
				if err := cw.Write([]string{strconv.Itoa(i + 1), b.Name, b.Age, b.Author}); err != nil {
					return err
				}
			}
			return nil
		},
		json: listingOutput[[]schema.Branch]{Report: report, Title: title, Items: branches},
	}.write(w, cfg)
}

// WriteDailyStats prints today's diff summary and commit count for one identity.
func WriteDailyStats(w io.Writer, report schema.ReportName, title string, stats schema.DailyStats, cfg *contract.Config) error {
	return formats{
		text: func(w io.Writer) error {
			if err := writeTitle(w, title, cfg); err != nil {
				return err
			}
			d := stats.Diff
			_, err := fmt.Fprintf(w,
				"%s, since %s 00:00\n\t%d files changed, %d insertions(+), %d deletions(-)\n\t%d commits\n",
				stats.Author, stats.Day, d.Files, d.Insertions, d.Deletions, stats.Commits)
			return err
		},
		csvHeader: []string{"author", "day", "commits", "files", "insertions", "deletions"},
		csvRows: func(cw *csv.Writer) error {
			return cw.Write([]string{
				stats.Author, stats.Day, strconv.Itoa(stats.Commits),
				strconv.Itoa(stats.Diff.Files), strconv.Itoa(stats.Diff.Insertions), strconv.Itoa(stats.Diff.Deletions),
			})
		},
		json: listingOutput[schema.DailyStats]{Report: report, Title: title, Items: stats},
	}.write(w, cfg)
}
