package contract

import (
	"context"
	"errors"
	"os/exec"
	"strings"
	"time"
)

// gitBinary is the executable every query runs.
const gitBinary = "git"

// baseArgs keep git output deterministic: no pager, no signature checks, no color.
var baseArgs = []string{
	"--no-pager",
	"-c", "log.showSignature=false",
	"-c", "color.ui=never",
}

// LocalGitClient implements the GitClient interface by executing the
// local 'git' binary installed on the machine.
type LocalGitClient struct{}

var _ GitClient = &LocalGitClient{} // Compile-time check

// NewLocalGitClient creates a new instance of the local Git client.
func NewLocalGitClient() *LocalGitClient {
	return &LocalGitClient{}
}

// Run executes a git command and returns its stdout.
func (c *LocalGitClient) Run(ctx context.Context, repoPath string, args ...string) ([]byte, error) {
	fullArgs := append([]string{}, baseArgs...)
	if repoPath != "" {
		fullArgs = append(fullArgs, "-C", repoPath)
	}
	fullArgs = append(fullArgs, args...)

	cmd := exec.CommandContext(ctx, gitBinary, fullArgs...)
	cmd.Env = append(cmd.Environ(), "GIT_PAGER=cat", "GIT_TERMINAL_PROMPT=0")
	out, err := cmd.Output()

	var exitErr *exec.ExitError
	switch {
	case err == nil:
		return out, nil
	case errors.Is(err, exec.ErrNotFound):
		return nil, &MissingDependencyError{Tool: gitBinary}
	case errors.As(err, &exitErr):
		return nil, &ExternalToolError{
			Args:     args,
			ExitCode: exitErr.ExitCode(),
			Stderr:   strings.TrimSpace(string(exitErr.Stderr)),
		}
	default:
		return nil, &ExternalToolError{Args: args, ExitCode: -1, Err: err}
	}
}

// GetRepoRoot implements the GitClient interface.
func (c *LocalGitClient) GetRepoRoot(ctx context.Context, contextPath string) (string, error) {
	out, err := c.Run(ctx, contextPath, "rev-parse", "--show-toplevel")
	if err != nil {
		var toolErr *ExternalToolError
		if errors.As(err, &toolErr) {
			return "", &NotARepositoryError{Path: contextPath}
		}
		return "", err
	}
	return strings.TrimSpace(string(out)), nil
}

// GetConfigValue implements the GitClient interface.
// An unset key yields an empty string rather than an error.
func (c *LocalGitClient) GetConfigValue(ctx context.Context, repoPath string, key string) (string, error) {
	out, err := c.Run(ctx, repoPath, "config", "--get", key)
	if err != nil {
		var toolErr *ExternalToolError
		if errors.As(err, &toolErr) && toolErr.ExitCode == 1 {
			return "", nil
		}
		return "", err
	}
	return strings.TrimSpace(string(out)), nil
}

// GetLog implements the GitClient interface.
func (c *LocalGitClient) GetLog(ctx context.Context, repoPath string, query LogQuery) ([]byte, error) {
	return c.Run(ctx, repoPath, query.Args()...)
}

// GetShortStat implements the GitClient interface.
func (c *LocalGitClient) GetShortStat(ctx context.Context, repoPath string, since time.Time) ([]byte, error) {
	rev := "@{" + since.Format(ReflogTimeFormat) + "}"
	return c.Run(ctx, repoPath, "diff", "--shortstat", rev)
}

// GetBranches implements the GitClient interface.
func (c *LocalGitClient) GetBranches(ctx context.Context, repoPath string) ([]byte, error) {
	return c.Run(ctx, repoPath,
		"for-each-ref",
		"--sort=-committerdate",
		"--format=%(committerdate:relative)%09%(authorname)%09%(refname:short)",
		"refs/heads/",
	)
}
