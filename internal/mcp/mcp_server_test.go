package mcp_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/huangsam/quickstats/core"
	"github.com/huangsam/quickstats/internal/contract"
	mcp_internal "github.com/huangsam/quickstats/internal/mcp"
	"github.com/huangsam/quickstats/schema"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const sampleLog = "\x1ea1\x1fAda\x1fada@example.com\x1f2024-01-05T09:15:00+00:00\x1f2024-01-05\x1fAdd parser\n" +
	"\x1ea2\x1fGrace\x1fgrace@example.com\x1f2024-01-03T23:30:00+00:00\x1f2024-01-03\x1fFix bug\n"

func baseConfig() *contract.Config {
	return &contract.Config{
		RepoPath:    "/repo",
		Limit:       contract.DefaultResultLimit,
		MergeView:   schema.ExcludeMerges,
		Output:      schema.TextOut,
		OutputFile:  "should-not-be-written.txt",
		BarDivisor:  contract.DefaultBarDivisor,
		ReviewerCap: contract.DefaultReviewerCap,
		Width:       120,
		UseColors:   true,
		Now:         func() time.Time { return time.Date(2024, 1, 6, 12, 0, 0, 0, time.Local) },
	}
}

func callTool(t *testing.T, client *contract.MockGitClient, cfg *contract.Config, name string, args map[string]any) *mcp.CallToolResult {
	t.Helper()
	s := mcp_internal.NewMCPServer(cfg, client, "test")
	tool := s.GetTool(name)
	require.NotNil(t, tool, "tool %s should exist", name)

	res, err := tool.Handler(context.Background(), mcp.CallToolRequest{
		Params: mcp.CallToolParams{Name: name, Arguments: args},
	})
	require.NoError(t, err, "tool failures are reported in the result, not as raw errors")
	return res
}

func resultText(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	require.NotEmpty(t, res.Content)
	text, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok)
	return text.Text
}

func TestMCPServer_RegistersEveryReport(t *testing.T) {
	s := mcp_internal.NewMCPServer(baseConfig(), &contract.MockGitClient{}, "test")
	for _, report := range core.Catalog() {
		assert.NotNil(t, s.GetTool(mcp_internal.ToolName(report.Name)), "missing tool for %s", report.Name)
	}
	assert.Equal(t, "commits_by_author_by_hour", mcp_internal.ToolName(schema.CommitsByAuthorHourReport))
}

func TestMCPServer_CommitsPerAuthorAsJSON(t *testing.T) {
	client := &contract.MockGitClient{}
	client.On("GetLog", mock.Anything, "/repo", mock.MatchedBy(func(q contract.LogQuery) bool {
		return len(q.Filters) > 0 && q.Filters[0] == "--since=2024-01-01"
	})).Return([]byte(sampleLog), nil)

	cfg := baseConfig()
	res := callTool(t, client, cfg, "commits_per_author", map[string]any{"since": "2024-01-01", "limit": 5.0})
	assert.False(t, res.IsError)

	var out schema.ReportOutput
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &out))
	assert.Equal(t, schema.CommitsPerAuthorReport, out.Report)
	assert.Equal(t, 2, out.Total.Count)

	assert.Empty(t, cfg.Since, "the base config is never mutated")
	assert.Equal(t, schema.TextOut, cfg.Output)
	client.AssertExpectations(t)
}

func TestMCPServer_TextHasNoColor(t *testing.T) {
	client := &contract.MockGitClient{}
	client.On("GetLog", mock.Anything, "/repo", mock.Anything).Return([]byte(sampleLog), nil)

	res := callTool(t, client, baseConfig(), "commits_by_weekday", map[string]any{"format": "text"})
	text := resultText(t, res)
	assert.Contains(t, text, "Git commits by weekday")
	assert.NotContains(t, text, "\x1b[")
}

func TestMCPServer_ValidationErrors(t *testing.T) {
	tests := []struct {
		name string
		tool string
		args map[string]any
		want string
	}{
		{"limit too large", "contributors", map[string]any{"limit": 20000.0}, "limit must be greater than 0"},
		{"negative limit", "contributors", map[string]any{"limit": -1.0}, "limit must be greater than 0"},
		{"parquet format", "contributors", map[string]any{"format": "parquet"}, "invalid format"},
		{"missing author", "changelogs_by_author", map[string]any{}, "missing required input: author"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := &contract.MockGitClient{}
			res := callTool(t, client, baseConfig(), tt.tool, tt.args)
			assert.True(t, res.IsError)
			assert.Contains(t, resultText(t, res), tt.want)
			client.AssertNotCalled(t, "GetLog", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestMCPServer_GitFailure(t *testing.T) {
	client := &contract.MockGitClient{}
	client.On("GetLog", mock.Anything, "/repo", mock.Anything).
		Return(nil, &contract.ExternalToolError{Args: []string{"log"}, ExitCode: 128, Stderr: "fatal: bad default revision 'HEAD'"})

	res := callTool(t, client, baseConfig(), "suggest_reviewers", nil)
	assert.True(t, res.IsError)
	assert.Contains(t, resultText(t, res), "bad default revision")
}
