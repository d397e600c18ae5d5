package main

import (
	"github.com/MakeNowJust/heredoc"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	snippetsmcp "github.com/gorewood/nodejs-snippets/internal/mcp"
	"github.com/gorewood/nodejs-snippets/internal/scaffold"
)

// newServeCmd creates the serve command for running as an MCP server.
func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run as MCP server (stdio transport)",
		Long: heredoc.Doc(`
			Run nodejs-snippets as a Model Context Protocol (MCP) server over stdio.

			The scaffold tool works in the first root the client reports through
			roots/list unless the call passes an explicit root. Snippet overrides
			are read from the working directory the server starts in.

			Configure in your agent's MCP settings:
			  {
			    "mcpServers": {
			      "nodejs-snippets": {
			        "command": "nodejs-snippets",
			        "args": ["serve"]
			      }
			    }
			  }

			Available tools: create_api_structure, plan_api_structure,
			list_snippets, get_snippet
		`),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			printer := newPrinter(cmd)
			catalog, err := loadCatalog(cmd, printer)
			if err != nil {
				printer.Error(err)
				return err
			}
			server := snippetsmcp.NewServer(buildVersion(), scaffold.New(afero.NewOsFs()), catalog)
			return server.Run(cmd.Context(), &mcp.StdioTransport{})
		},
	}
}
