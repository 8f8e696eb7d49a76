// Package contract provides interfaces and shared utilities for the quickstats internal architecture.
package contract

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// GitClient defines the git queries every report is built from.
// This allows the report logic to be tested without needing a real git executable.
type GitClient interface {
	// --- Generic / Low-Level ---

	// Run executes a git command and returns its standard output.
	// Its use should be minimized in favor of the explicit methods below.
	Run(ctx context.Context, repoPath string, args ...string) ([]byte, error)

	// --- Repository / Identity ---

	// GetRepoRoot returns the absolute path to the root of the Git repository
	// containing the given context path.
	GetRepoRoot(ctx context.Context, contextPath string) (string, error)

	// GetConfigValue returns a git config value such as user.name.
	GetConfigValue(ctx context.Context, repoPath string, key string) (string, error)

	// --- History Queries ---

	// GetLog returns the raw output of git log for the given query.
	GetLog(ctx context.Context, repoPath string, query LogQuery) ([]byte, error)

	// GetShortStat returns the raw output of git diff --shortstat against the
	// state of the current branch at the given moment.
	GetShortStat(ctx context.Context, repoPath string, since time.Time) ([]byte, error)

	// GetBranches returns local branches, most recently committed first.
	GetBranches(ctx context.Context, repoPath string) ([]byte, error)
}

// LogQuery describes one git log invocation.
type LogQuery struct {
	Format   string   // Value of --format
	Date     string   // Value of --date (empty = git default)
	Filters  []string // Window, merge and extra arguments from Config.LogFilterArgs
	Authors  []string // Each becomes --author=<value>
	MaxCount int      // Caps the number of commits when > 0
	NumStat  bool     // Adds --numstat
	Graph    bool     // Adds --graph --all --decorate
	Pathspec []string // Appended after "--" when non-empty
}

// Args turns the query into git log arguments.
func (q LogQuery) Args() []string {
	args := []string{"log", "--use-mailmap"}
	if q.Graph {
		args = append(args, "--graph", "--all", "--decorate", "--abbrev-commit")
	}
	if q.NumStat {
		args = append(args, "--numstat")
	}
	if q.MaxCount > 0 {
		args = append(args, fmt.Sprintf("--max-count=%d", q.MaxCount))
	}
	if q.Format != "" {
		args = append(args, "--format="+q.Format)
	}
	if q.Date != "" {
		args = append(args, "--date="+q.Date)
	}
	for _, a := range q.Authors {
		if a = strings.TrimSpace(a); a != "" {
			args = append(args, "--author="+a)
		}
	}
	args = append(args, q.Filters...)
	if len(q.Pathspec) > 0 {
		args = append(args, "--")
		args = append(args, q.Pathspec...)
	}
	return args
}
