package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/ghmcp/internal/adapters/driving/mcp"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server",
	Long: `Start the Model Context Protocol server for AI assistant integration.

By default, the server communicates over stdio using JSON-RPC and can be
used with Claude Desktop and other MCP-compatible AI assistants.

Use --port to start an HTTP server instead, which enables:
  - Testing with MCP Inspector web UI
  - Remote access via HTTP

Examples:
  # Stdio mode (default, for Claude Desktop)
  ghmcp serve

  # HTTP mode (for MCP Inspector, remote access)
  ghmcp serve --port 8080

Claude Desktop configuration (claude_desktop_config.json):
  {
    "mcpServers": {
      "github": {
        "command": "/path/to/ghmcp",
        "args": ["serve"],
        "env": {"GITHUB_TOKEN": "<token>"}
      }
    }
  }`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 0, "HTTP port (0 = use stdio)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	if err := loadServices(); err != nil {
		return err
	}

	mcp.Version = version
	server, err := mcp.NewServer(&mcp.Ports{
		GitHub:   githubService,
		Articles: articleService,
	})
	if err != nil {
		return err
	}

	if servePort > 0 {
		return server.RunHTTP(cmd.Context(), fmt.Sprintf(":%d", servePort))
	}

	return server.Run(cmd.Context())
}
