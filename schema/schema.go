// Package schema has the records, aggregates and enums shared by all parts of quickstats.
package schema

import "time"

// Commit is one entry of a git log query, parsed from the machine-readable format.
type Commit struct {
	Hash       string     `json:"hash"`
	Author     string     `json:"author"`      // Mailmap-resolved author name
	Email      string     `json:"email"`       // Mailmap-resolved author email
	When       time.Time  `json:"when"`        // Author date with its original offset
	CommitDate string     `json:"commit_date"` // Committer date as YYYY-MM-DD
	Subject    string     `json:"subject"`
	Files      []FileStat `json:"files,omitempty"`
}

// Identity returns the author rendered as "Name <email>".
func (c Commit) Identity() string {
	if c.Email == "" {
		return c.Author
	}
	return c.Author + " <" + c.Email + ">"
}

// Insertions sums the added lines over all files of the commit.
func (c Commit) Insertions() int {
	n := 0
	for _, f := range c.Files {
		n += f.Added
	}
	return n
}

// Deletions sums the deleted lines over all files of the commit.
func (c Commit) Deletions() int {
	n := 0
	for _, f := range c.Files {
		n += f.Deleted
	}
	return n
}

// FileStat is a single --numstat line.
type FileStat struct {
	Path    string `json:"path"`
	Added   int    `json:"added"`
	Deleted int    `json:"deleted"`
	Binary  bool   `json:"binary"` // git prints "-" counts for binary files
}

// Branch is a local branch with its most recent commit metadata.
type Branch struct {
	Name   string `json:"name"`
	Author string `json:"author"`
	Age    string `json:"age"` // Relative age as rendered by git, e.g. "3 days ago"
}

// ShortStat is the summary line of git diff --shortstat.
type ShortStat struct {
	Files      int `json:"files"`
	Insertions int `json:"insertions"`
	Deletions  int `json:"deletions"`
}
