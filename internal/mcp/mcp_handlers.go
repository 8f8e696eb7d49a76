package mcp

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/huangsam/quickstats/core"
	"github.com/huangsam/quickstats/internal/contract"
	"github.com/huangsam/quickstats/schema"
	"github.com/mark3labs/mcp-go/mcp"
)

// toolHandler runs one report for every call of its tool.
type toolHandler struct {
	baseCfg *contract.Config
	client  contract.GitClient
	report  core.Report
}

func (h *toolHandler) handle(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg, err := h.configFor(request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid parameters: %v", err)), nil
	}

	var buf bytes.Buffer
	author := request.GetString("author", "")
	if err := core.Execute(ctx, cfg, h.client, h.report.Name, author, &buf); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("report failed: %v", err)), nil
	}
	return mcp.NewToolResultText(strings.TrimSpace(buf.String())), nil
}

// configFor overrides the shared filters on a private copy of the base config.
func (h *toolHandler) configFor(request mcp.CallToolRequest) (*contract.Config, error) {
	cfg := h.baseCfg.Clone()
	cfg.OutputFile = ""
	cfg.UseColors = false

	if s := request.GetString("since", ""); s != "" {
		cfg.Since = s
	}
	if u := request.GetString("until", ""); u != "" {
		cfg.Until = u
	}
	if p := request.GetString("pathspec", ""); p != "" {
		cfg.Pathspec = strings.Fields(p)
	}
	if l := request.GetInt("limit", 0); l != 0 {
		if l < 0 || l > contract.MaxResultLimit {
			return nil, &contract.InvalidArgumentError{
				Reason: fmt.Sprintf("limit must be greater than 0 and cannot exceed %d (received %d)", contract.MaxResultLimit, l),
			}
		}
		cfg.Limit = l
	}

	format := schema.OutputMode(strings.ToLower(request.GetString("format", string(schema.JSONOut))))
	switch format {
	case schema.JSONOut, schema.CSVOut, schema.TextOut:
		cfg.Output = format
	default:
		return nil, &contract.InvalidArgumentError{Reason: fmt.Sprintf("invalid format '%s'. must be json, csv, text", format)}
	}
	return cfg, nil
}
