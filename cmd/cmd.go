// Package cmd defines the command-line interface for quickstats.
package cmd

import (
	"fmt"
	"strings"

	"github.com/huangsam/quickstats/core"
	"github.com/huangsam/quickstats/internal/contract"
	"github.com/huangsam/quickstats/schema"
	"github.com/spf13/cobra"
)

// legacyEnv maps config keys onto the environment variables older releases read.
var legacyEnv = map[string]string{
	"since":       "_GIT_SINCE",
	"until":       "_GIT_UNTIL",
	"limit":       "_GIT_LIMIT",
	"pathspec":    "_GIT_PATHSPEC",
	"merge-view":  "_GIT_MERGE_VIEW",
	"log-options": "_GIT_LOG_OPTIONS",
	"theme":       "_MENU_THEME",
}

// newRootCmd builds the command tree around one app.
func newRootCmd(a *app) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "quickstats [report flag]",
		Short: "Quick statistics about a git repository.",
		Long: `Quickstats summarizes the history of the git repository in the current directory.

Pass one report flag to print that report and exit, or none to pick reports
from an interactive menu. Filters apply to every report.`,
		Version:            version,
		Args:               cobra.ArbitraryArgs,
		SilenceErrors:      true,
		SilenceUsage:       true,
		DisableSuggestions: true,
		CompletionOptions:  cobra.CompletionOptions{DisableDefaultCmd: true},
		PreRunE: func(cmd *cobra.Command, args []string) error {
			if _, err := selectReport(cmd, args); err != nil {
				return err
			}
			return a.setup(cmd.Context())
		},
		RunE: a.runRoot,
	}

	rootCmd.Flags().SortFlags = false
	for _, r := range core.Catalog() {
		rootCmd.Flags().BoolP(string(r.Name), r.Short, false, r.Title)
	}

	pf := rootCmd.PersistentFlags()
	pf.String("since", "", "Only count commits more recent than this date (any git log --since value)")
	pf.String("until", "", "Only count commits older than this date")
	pf.String("pathspec", "", "Space-separated paths to restrict the history to")
	pf.Int("limit", contract.DefaultResultLimit, "Number of results to display")
	pf.String("author", "", "Author for author-scoped reports (skips the prompt)")
	pf.String("merge-view", string(schema.ExcludeMerges), "Merge commits: exclude or enable or exclusive")
	pf.String("log-options", "", "Extra arguments passed to every git log call")
	pf.String("output", string(schema.TextOut), "Output format: text or csv or json or parquet")
	pf.String("output-file", "", "Optional path to write output to")
	pf.String("color", "yes", "Enable colored output (yes/no/true/false/1/0)")
	pf.String("theme", string(schema.DefaultTheme), "Menu theme: default or legacy or none")
	pf.Int("width", 0, "Terminal width override (0 = auto-detect)")
	pf.Float64("bar-divisor", contract.DefaultBarDivisor, "Percent of the total represented by one bar cell")
	pf.Int("reviewer-cap", contract.DefaultReviewerCap, "Recent commits considered when suggesting reviewers")
	pf.String("config", "", "Path to config file")
	if err := a.v.BindPFlags(pf); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &contract.InvalidArgumentError{Reason: err.Error()}
	})

	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newMCPCmd(a))
	return rootCmd
}

// selectReport returns the single report flag on the command line, or an
// empty name when none is set.
func selectReport(cmd *cobra.Command, args []string) (schema.ReportName, error) {
	if len(args) > 0 {
		return "", &contract.InvalidArgumentError{Reason: fmt.Sprintf("unexpected argument %q", args[0])}
	}
	var selected []string
	for _, r := range core.Catalog() {
		if on, _ := cmd.Flags().GetBool(string(r.Name)); on {
			selected = append(selected, "--"+string(r.Name))
		}
	}
	switch len(selected) {
	case 0:
		return "", nil
	case 1:
		return schema.ReportName(strings.TrimPrefix(selected[0], "--")), nil
	default:
		return "", &contract.InvalidArgumentError{
			Reason: fmt.Sprintf("only one report may be selected (got %s)", strings.Join(selected, ", ")),
		}
	}
}

// normalizeArgs accepts -? as an alias of --help.
func normalizeArgs(args []string) []string {
	out := make([]string, len(args))
	for i, arg := range args {
		if arg == "-?" {
			arg = "--help"
		}
		out[i] = arg
	}
	return out
}
