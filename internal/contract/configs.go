package contract

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/huangsam/quickstats/schema"
)

// Default values for configuration.
const (
	DefaultResultLimit = 10
	MaxResultLimit     = 10000
	DefaultBarDivisor  = 1.25 // 80 bar cells represent 100%
	DefaultReviewerCap = 100  // Newest commits considered when suggesting reviewers
)

// Time layouts shared by queries and renderers.
const (
	DateFormat       = "2006-01-02"
	ReflogTimeFormat = "2006-01-02 15:04:05"
)

// Config is the validated, read-only filter context every report receives.
type Config struct {
	RepoPath string

	// --- Filter window ---
	Since      string   // Passed verbatim to --since (empty = unbounded)
	Until      string   // Passed verbatim to --until (empty = unbounded)
	Pathspec   []string // Appended after "--" (empty = whole tree)
	Limit      int
	MergeView  schema.MergeView
	LogOptions []string // Extra git log arguments

	// --- Report parameters ---
	Author      string  // Author for author-scoped reports when not prompted
	BarDivisor  float64 // Percent per bar cell
	ReviewerCap int     // Recency cap for reviewer suggestions

	// --- Presentation ---
	Output     schema.OutputMode
	OutputFile string
	Width      int // Terminal width override (0 = auto-detect)
	Theme      schema.Theme
	UseColors  bool

	// Now is the wall clock used by day-relative reports. Nil means time.Now.
	Now func() time.Time
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	// This is set manually, so no tag
	RepoPathStr string

	Since       string  `mapstructure:"since"`
	Until       string  `mapstructure:"until"`
	Pathspec    string  `mapstructure:"pathspec"`
	Limit       int     `mapstructure:"limit"`
	MergeView   string  `mapstructure:"merge-view"`
	LogOptions  string  `mapstructure:"log-options"`
	Author      string  `mapstructure:"author"`
	BarDivisor  float64 `mapstructure:"bar-divisor"`
	ReviewerCap int     `mapstructure:"reviewer-cap"`
	Output      string  `mapstructure:"output"`
	OutputFile  string  `mapstructure:"output-file"`
	Width       int     `mapstructure:"width"`
	Theme       string  `mapstructure:"theme"`
	Color       string  `mapstructure:"color"`
}

// Clone returns a deep copy of the Config struct.
func (c *Config) Clone() *Config {
	clone := *c
	clone.Pathspec = slices.Clone(c.Pathspec)
	clone.LogOptions = slices.Clone(c.LogOptions)
	return &clone
}

// Clock returns the current wall-clock time in the local zone.
func (c *Config) Clock() time.Time {
	if c.Now != nil {
		return c.Now().Local()
	}
	return time.Now()
}

// WindowArgs returns --since and --until for the bounds that are set.
func (c *Config) WindowArgs() []string {
	var args []string
	if c.Since != "" {
		args = append(args, "--since="+c.Since)
	}
	if c.Until != "" {
		args = append(args, "--until="+c.Until)
	}
	return args
}

// LogFilterArgs returns the git log arguments shared by every history query.
// Unset bounds contribute no argument at all.
func (c *Config) LogFilterArgs() []string {
	args := c.WindowArgs()
	switch c.MergeView {
	case schema.EnableMerges:
	case schema.ExclusiveMerges:
		args = append(args, "--merges")
	default:
		args = append(args, "--no-merges")
	}
	return append(args, c.LogOptions...)
}

// ProcessAndValidate performs all parsing and validation on the raw inputs
// and updates the final Config struct.
func ProcessAndValidate(ctx context.Context, cfg *Config, client GitClient, input *ConfigRawInput) error {
	if err := validateSimpleInputs(cfg, input); err != nil {
		return err
	}
	if err := validatePresentation(cfg, input); err != nil {
		return err
	}
	return resolveGitPath(ctx, cfg, client, input)
}

// validateSimpleInputs processes and validates the filter window and report parameters.
func validateSimpleInputs(cfg *Config, input *ConfigRawInput) error {
	cfg.Since = strings.TrimSpace(input.Since)
	cfg.Until = strings.TrimSpace(input.Until)
	cfg.Pathspec = strings.Fields(input.Pathspec)
	cfg.LogOptions = strings.Fields(input.LogOptions)
	cfg.Author = strings.TrimSpace(input.Author)

	if input.Limit <= 0 || input.Limit > MaxResultLimit {
		return fmt.Errorf("limit must be greater than 0 and cannot exceed %d (received %d)", MaxResultLimit, input.Limit)
	}
	cfg.Limit = input.Limit

	cfg.MergeView = schema.MergeView(strings.ToLower(strings.TrimSpace(input.MergeView)))
	if cfg.MergeView == "" {
		cfg.MergeView = schema.ExcludeMerges
	}
	if _, ok := schema.ValidMergeViews[cfg.MergeView]; !ok {
		return fmt.Errorf("invalid merge view '%s'. must be exclude, enable, exclusive", input.MergeView)
	}

	cfg.BarDivisor = input.BarDivisor
	if cfg.BarDivisor == 0 {
		cfg.BarDivisor = DefaultBarDivisor
	}
	if cfg.BarDivisor < 0 {
		return fmt.Errorf("bar divisor must be positive (received %.2f)", input.BarDivisor)
	}

	cfg.ReviewerCap = input.ReviewerCap
	if cfg.ReviewerCap == 0 {
		cfg.ReviewerCap = DefaultReviewerCap
	}
	if cfg.ReviewerCap < 0 {
		return fmt.Errorf("reviewer cap must be positive (received %d)", input.ReviewerCap)
	}
	return nil
}

// validatePresentation processes output, theme and color settings.
func validatePresentation(cfg *Config, input *ConfigRawInput) error {
	cfg.OutputFile = input.OutputFile

	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	if cfg.Output == "" {
		cfg.Output = schema.TextOut
	}
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output format '%s'. must be text, csv, json, parquet", input.Output)
	}
	if cfg.Output == schema.ParquetOut && cfg.OutputFile == "" {
		return fmt.Errorf("parquet output requires --output-file")
	}

	if input.Width < 0 {
		return fmt.Errorf("width cannot be negative (received %d)", input.Width)
	}
	cfg.Width = input.Width

	cfg.Theme = schema.Theme(strings.ToLower(input.Theme))
	if cfg.Theme == "" {
		cfg.Theme = schema.DefaultTheme
	}
	if _, ok := schema.ValidThemes[cfg.Theme]; !ok {
		return fmt.Errorf("invalid theme '%s'. must be default, legacy, none", input.Theme)
	}

	colorStr := input.Color
	if colorStr == "" {
		colorStr = "yes"
	}
	colors, err := ParseBoolString(colorStr)
	if err != nil {
		return fmt.Errorf("invalid --color value: %w", err)
	}
	cfg.UseColors = colors && cfg.Theme != schema.NoneTheme
	return nil
}

// resolveGitPath resolves the repository root that every query runs in.
func resolveGitPath(ctx context.Context, cfg *Config, client GitClient, input *ConfigRawInput) error {
	searchPath := input.RepoPathStr
	if searchPath == "" {
		searchPath = "."
	}
	absSearchPath, err := filepath.Abs(searchPath)
	if err != nil {
		return err
	}
	absSearchPath = filepath.Clean(absSearchPath)

	if info, statErr := os.Stat(absSearchPath); statErr == nil && !info.IsDir() {
		absSearchPath = filepath.Dir(absSearchPath)
	}

	gitRoot, err := client.GetRepoRoot(ctx, absSearchPath)
	if err != nil {
		return err
	}
	cfg.RepoPath = gitRoot
	return nil
}
