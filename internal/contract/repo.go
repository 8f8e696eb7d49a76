package contract

import (
	"errors"
	"os/exec"
	"path/filepath"

	"github.com/go-git/go-git/v5"
)

// RequiredTools lists the external utilities quickstats shells out to.
var RequiredTools = []string{gitBinary}

// lookPath is swapped in tests.
var lookPath = exec.LookPath

// CheckDependencies reports every required utility that is not on PATH.
func CheckDependencies() error {
	var errs []error
	for _, tool := range RequiredTools {
		if _, err := lookPath(tool); err != nil {
			errs = append(errs, &MissingDependencyError{Tool: tool})
		}
	}
	return errors.Join(errs...)
}

// DetectRepository verifies that dir lies inside a git repository, searching
// parent directories the way git does. Repositories go-git cannot read for
// other reasons are left for the git binary to judge.
func DetectRepository(dir string) error {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return err
	}
	_, err = git.PlainOpenWithOptions(abs, &git.PlainOpenOptions{
		DetectDotGit:          true,
		EnableDotGitCommonDir: true,
	})
	if errors.Is(err, git.ErrRepositoryNotExists) {
		return &NotARepositoryError{Path: abs}
	}
	return nil
}

// CheckPreconditions fails fast when quickstats cannot run in dir.
func CheckPreconditions(dir string) error {
	if err := CheckDependencies(); err != nil {
		return err
	}
	return DetectRepository(dir)
}
