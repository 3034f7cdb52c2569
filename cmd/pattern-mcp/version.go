package main

import (
	"fmt"

	cli "github.com/spf13/cobra"
)

var versionCmd = &cli.Command{
	Use:   "version",
	Short: "Print version information",
	Run:   PrintVersion,
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

// PrintVersion prints the version and the build metadata set through -ldflags.
func PrintVersion(cmd *cli.Command, args []string) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "pattern-mcp %s\n", Version)
	fmt.Fprintf(out, "  Build time: %s\n", BuildTime)
	fmt.Fprintf(out, "  Git commit: %s\n", GitCommit)
}
