package contract

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
)

// MockGitClient is a testify mock of GitClient for tests in any package.
type MockGitClient struct {
	mock.Mock
}

var _ GitClient = &MockGitClient{} // Compile-time check

// Run implements the GitClient interface.
func (m *MockGitClient) Run(ctx context.Context, repoPath string, args ...string) ([]byte, error) {
	mockArgs := []any{ctx, repoPath}
	for _, arg := range args {
		mockArgs = append(mockArgs, arg)
	}
	ret := m.Called(mockArgs...)
	output, _ := ret.Get(0).([]byte)
	return output, ret.Error(1)
}

// GetRepoRoot implements the GitClient interface.
func (m *MockGitClient) GetRepoRoot(ctx context.Context, contextPath string) (string, error) {
	ret := m.Called(ctx, contextPath)
	return ret.String(0), ret.Error(1)
}

// GetConfigValue implements the GitClient interface.
func (m *MockGitClient) GetConfigValue(ctx context.Context, repoPath string, key string) (string, error) {
	ret := m.Called(ctx, repoPath, key)
	return ret.String(0), ret.Error(1)
}

// GetLog implements the GitClient interface.
func (m *MockGitClient) GetLog(ctx context.Context, repoPath string, query LogQuery) ([]byte, error) {
	ret := m.Called(ctx, repoPath, query)
	output, _ := ret.Get(0).([]byte)
	return output, ret.Error(1)
}

// GetShortStat implements the GitClient interface.
func (m *MockGitClient) GetShortStat(ctx context.Context, repoPath string, since time.Time) ([]byte, error) {
	ret := m.Called(ctx, repoPath, since)
	output, _ := ret.Get(0).([]byte)
	return output, ret.Error(1)
}

// GetBranches implements the GitClient interface.
func (m *MockGitClient) GetBranches(ctx context.Context, repoPath string) ([]byte, error) {
	ret := m.Called(ctx, repoPath)
	output, _ := ret.Get(0).([]byte)
	return output, ret.Error(1)
}
