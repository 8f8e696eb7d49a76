package agg

import (
	"bytes"
	"iter"
	"strconv"
	"strings"
	"time"

	"github.com/huangsam/quickstats/schema"
)

// Record and field separators used in CommitFormat.
const (
	recordSep = "\x1e"
	fieldSep  = "\x1f"
)

// CommitFormat is the git log --format value understood by ParseCommits:
// hash, author name, author email, strict ISO author date, committer date, subject.
const CommitFormat = "%x1e%H%x1f%aN%x1f%aE%x1f%aI%x1f%cs%x1f%s"

// commitFields is the number of header fields in CommitFormat.
const commitFields = 6

// ParseCommits turns git log output produced with CommitFormat (and optionally
// --numstat) into commits. Records without a hash are skipped.
func ParseCommits(out []byte) iter.Seq[schema.Commit] {
	return func(yield func(schema.Commit) bool) {
		for chunk := range strings.SplitSeq(string(out), recordSep) {
			if strings.TrimSpace(chunk) == "" {
				continue
			}
			c, ok := parseCommitRecord(chunk)
			if !ok {
				continue
			}
			if !yield(c) {
				return
			}
		}
	}
}

// parseCommitRecord parses a header line followed by numstat lines.
func parseCommitRecord(chunk string) (schema.Commit, bool) {
	header, rest, _ := strings.Cut(chunk, "\n")
	c, ok := parseCommitHeader(header)
	if !ok {
		return c, false
	}
	for line := range strings.Lines(rest) {
		if f, ok := parseFileStatsLine(strings.TrimRight(line, "\r\n")); ok {
			c.Files = append(c.Files, f)
		}
	}
	return c, true
}

// parseCommitHeader extracts commit metadata from a header line.
// An unparseable date leaves When zero so time-keyed reports skip the commit.
func parseCommitHeader(line string) (schema.Commit, bool) {
	parts := strings.SplitN(strings.TrimRight(line, "\r"), fieldSep, commitFields)
	if len(parts) < commitFields || parts[0] == "" {
		return schema.Commit{}, false
	}
	c := schema.Commit{
		Hash:       parts[0],
		Author:     strings.TrimSpace(parts[1]),
		Email:      strings.TrimSpace(parts[2]),
		CommitDate: strings.TrimSpace(parts[4]),
		Subject:    parts[5],
	}
	if when, err := time.Parse(time.RFC3339, strings.TrimSpace(parts[3])); err == nil {
		c.When = when
	}
	return c, true
}

// parseFileStatsLine parses one "added<TAB>deleted<TAB>path" numstat line.
func parseFileStatsLine(line string) (schema.FileStat, bool) {
	parts := strings.SplitN(line, "\t", 3)
	if len(parts) < 3 || parts[2] == "" {
		return schema.FileStat{}, false
	}
	addStr, delStr, path := parts[0], parts[1], parts[2]
	return schema.FileStat{
		Path:    renamedPath(path),
		Added:   parseChurnValue(addStr),
		Deleted: parseChurnValue(delStr),
		Binary:  addStr == "-" && delStr == "-",
	}, true
}

// parseChurnValue converts a churn string to int, handling "-" as 0.
func parseChurnValue(s string) int {
	if s == "-" {
		return 0
	}
	if val, err := strconv.Atoi(s); err == nil && val >= 0 {
		return val
	}
	return 0
}

// renamedPath returns the destination of a numstat rename path.
// Both "old => new" and "prefix{old => new}suffix" forms are handled.
func renamedPath(path string) string {
	if !strings.Contains(path, " => ") {
		return path
	}
	start, end := strings.Index(path, "{"), strings.Index(path, "}")
	if start == -1 || end == -1 || start >= end {
		_, newPath, _ := strings.Cut(path, " => ")
		return newPath
	}
	_, newPart, ok := strings.Cut(path[start+1:end], " => ")
	if !ok {
		return path
	}
	joined := path[:start] + newPart + path[end+1:]
	// An empty side leaves a doubled separator, as in "a/{ => b}/c.go"
	return strings.ReplaceAll(joined, "//", "/")
}

// ParseShortStat parses the summary line of git diff --shortstat.
// Empty output means no changes.
func ParseShortStat(out []byte) schema.ShortStat {
	var stat schema.ShortStat
	for part := range strings.SplitSeq(strings.TrimSpace(string(out)), ",") {
		fields := strings.Fields(part)
		if len(fields) < 2 {
			continue
		}
		n, err := strconv.Atoi(fields[0])
		if err != nil {
			continue
		}
		switch {
		case strings.HasPrefix(fields[1], "file"):
			stat.Files = n
		case strings.HasPrefix(fields[1], "insertion"):
			stat.Insertions = n
		case strings.HasPrefix(fields[1], "deletion"):
			stat.Deletions = n
		}
	}
	return stat
}

// ParseBranches parses "age<TAB>author<TAB>name" lines from git for-each-ref.
func ParseBranches(out []byte) iter.Seq[schema.Branch] {
	return func(yield func(schema.Branch) bool) {
		for line := range ParseLines(out) {
			parts := strings.SplitN(line, "\t", 3)
			if len(parts) < 3 || parts[2] == "" {
				continue
			}
			if !yield(schema.Branch{Age: parts[0], Author: parts[1], Name: parts[2]}) {
				return
			}
		}
	}
}

// ParseLines yields the non-blank lines of out with line endings removed.
// Leading whitespace is kept so graph output stays aligned.
func ParseLines(out []byte) iter.Seq[string] {
	return func(yield func(string) bool) {
		for line := range bytes.Lines(out) {
			s := strings.TrimRight(string(line), "\r\n")
			if strings.TrimSpace(s) == "" {
				continue
			}
			if !yield(s) {
				return
			}
		}
	}
}

// Take yields at most n values from seq. A non-positive n yields nothing.
func Take[T any](seq iter.Seq[T], n int) iter.Seq[T] {
	return func(yield func(T) bool) {
		if n <= 0 {
			return
		}
		i := 0
		for v := range seq {
			if !yield(v) {
				return
			}
			if i++; i >= n {
				return
			}
		}
	}
}
