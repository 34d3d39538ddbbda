// figma-mcp exposes Figma REST API operations as MCP tools.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

const (
	serverName    = "figma-mcp"
	serverVersion = "0.1.0"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	serve := newServeCmd()

	root := &cobra.Command{
		Use:   serverName,
		Short: "MCP server for the Figma REST API",
		Long: `figma-mcp exposes Figma user, file, component, comment, style and version
history operations as Model Context Protocol tools.

Environment Variables:
  FIGMA_ACCESS_TOKEN          Figma personal access token (required)
  FIGMA_CONFIG_FILE           Optional YAML file (api_base_url, tool_aliases, method_aliases)
  FIGMA_LOG_LEVEL             debug, info, warn or error (default: info)
  FIGMA_LOG_FILE              Write logs to this file instead of stderr
  FIGMA_HTTP_CLIENT_TIMEOUT   Timeout for Figma API calls (default: none)
  FIGMA_LISTEN_ADDR           SSE listen address (default: :8080)
  FIGMA_ADMIN_ADDR            Admin HTTP address in SSE mode (default: :8081)
  FIGMA_OTEL_EXPORTER_OTLP_ENDPOINT  OTLP gRPC endpoint for traces`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          serve.RunE,
	}
	root.Flags().AddFlagSet(serve.Flags())

	root.AddCommand(serve, newToolsCmd(), newVersionCmd())
	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s v%s\n", serverName, serverVersion)
		},
	}
}
