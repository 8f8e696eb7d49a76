package cmd

import (
	"runtime"

	"github.com/spf13/cobra"
)

// newVersionCmd shows the verbose version for diagnostic purposes.
func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number of quickstats.",
		Long: `Display version information including build details.

Shows the release version, the commit it was built from, the build
timestamp and the Go runtime version.`,
		Args: cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			cmd.Printf("quickstats CLI\n")
			cmd.Printf("  Version: %s\n", version)
			cmd.Printf("  Commit:  %s\n", commit)
			cmd.Printf("  Built:   %s\n", date)
			cmd.Printf("  Runtime: %s\n", runtime.Version())
		},
	}
}
