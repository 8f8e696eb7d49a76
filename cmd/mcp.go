package cmd

import (
	"github.com/huangsam/quickstats/internal/mcp"
	"github.com/spf13/cobra"
)

// newMCPCmd serves every report as an MCP tool over stdio.
func newMCPCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Start the quickstats MCP server",
		Long:  `Launch an MCP server that lets AI agents run quickstats reports via standard tools.`,
		Args:  cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, _ []string) error {
			// Nothing but the protocol may reach stdout
			return a.setup(cmd.Context())
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return mcp.StartMCPServer(cmd.Context(), a.cfg, a.client, version)
		},
	}
}
