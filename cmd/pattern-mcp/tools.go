package main

import (
	"fmt"

	cli "github.com/spf13/cobra"

	"github.com/ironsheep/pattern-tools-mcp/internal/server"
)

var toolsCmd = &cli.Command{
	Use:   "tools",
	Short: "List the MCP tools the server registers",
	Run:   ListTools,
}

func init() {
	rootCmd.AddCommand(toolsCmd)
}

// ListTools prints the name and description of every MCP tool the server offers.
func ListTools(cmd *cli.Command, args []string) {
	out := cmd.OutOrStdout()
	for _, tool := range server.GetToolDefinitions() {
		fmt.Fprintf(out, "%-24s %s\n", tool.Name, tool.Description)
	}
}
