package contract

import (
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckDependencies(t *testing.T) {
	original := lookPath
	t.Cleanup(func() { lookPath = original })

	lookPath = func(string) (string, error) { return "/usr/bin/git", nil }
	assert.NoError(t, CheckDependencies())

	lookPath = func(string) (string, error) { return "", exec.ErrNotFound }
	err := CheckDependencies()
	var depErr *MissingDependencyError
	require.True(t, errors.As(err, &depErr))
	assert.Equal(t, "git", depErr.Tool)
}

func TestDetectRepository(t *testing.T) {
	t.Run("plain directory", func(t *testing.T) {
		err := DetectRepository(t.TempDir())
		var repoErr *NotARepositoryError
		assert.True(t, errors.As(err, &repoErr))
	})

	t.Run("nested inside a repository", func(t *testing.T) {
		skipIfGitNotAvailable(t)
		repo := initRepo(t)
		nested := filepath.Join(repo, "a", "b")
		require.NoError(t, os.MkdirAll(nested, 0o755))
		assert.NoError(t, DetectRepository(nested))
	})
}
