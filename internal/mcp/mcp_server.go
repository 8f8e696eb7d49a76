// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/huangsam/quickstats/core"
	"github.com/huangsam/quickstats/internal/contract"
	"github.com/huangsam/quickstats/schema"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// ToolName maps a report name onto its MCP tool name.
func ToolName(name schema.ReportName) string {
	return strings.ReplaceAll(string(name), "-", "_")
}

// NewMCPServer registers one tool per report without starting the server.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, client contract.GitClient, version string) *server.MCPServer {
	s := server.NewMCPServer(
		"Git Quick Stats Server",
		version,
		server.WithLogging(),
	)

	for _, report := range core.Catalog() {
		h := &toolHandler{baseCfg: baseCfg, client: client, report: report}
		s.AddTool(newReportTool(report), h.handle)
	}
	return s
}

// newReportTool describes the arguments a report accepts.
func newReportTool(report core.Report) mcp.Tool {
	opts := []mcp.ToolOption{
		mcp.WithDescription(fmt.Sprintf("%s. Runs the %s report against the repository history.", report.Title, report.Name)),
		mcp.WithString("since", mcp.Description("Only count commits more recent than this date (any format git log --since accepts).")),
		mcp.WithString("until", mcp.Description("Only count commits older than this date.")),
		mcp.WithString("pathspec", mcp.Description("Space-separated paths to restrict the history to.")),
		mcp.WithNumber("limit", mcp.Description("Limit the number of results returned.")),
		mcp.WithString("format", mcp.Description("Result format. Defaults to 'json'."), mcp.Enum("json", "csv", "text")),
	}
	if report.NeedsAuthor {
		opts = append(opts, mcp.WithString("author", mcp.Description("Author name or email to scope the report to."), mcp.Required()))
	}
	return mcp.NewTool(ToolName(report.Name), opts...)
}

// StartMCPServer serves the report tools over stdio.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, client contract.GitClient, version string) error {
	s := NewMCPServer(baseCfg, client, version)
	return server.ServeStdio(s)
}
