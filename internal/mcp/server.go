// Package mcp exposes the scaffolder and the snippet catalog as Model Context
// Protocol tools, so an agent working in an editor can lay out an Express
// project and look up snippet bodies the same way the CLI does.
package mcp

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/gorewood/nodejs-snippets/internal/scaffold"
	"github.com/gorewood/nodejs-snippets/internal/snippets"
)

// NewServer creates an MCP server with every nodejs-snippets tool registered.
func NewServer(version string, scaffolder *scaffold.Scaffolder, catalog *snippets.Catalog) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    "nodejs-snippets",
		Version: version,
	}, nil)
	registerTools(server, scaffolder, catalog, clientRoots)
	return server
}

// boolPtr returns a pointer to a bool value.
func boolPtr(b bool) *bool {
	return &b
}

// readOnlyAnnotations returns annotations for read-only tools.
func readOnlyAnnotations() *mcp.ToolAnnotations {
	return &mcp.ToolAnnotations{
		ReadOnlyHint:   true,
		IdempotentHint: true,
		OpenWorldHint:  boolPtr(false),
	}
}

// overwriteAnnotations returns annotations for tools that replace existing
// files. Running them twice leaves the same tree.
func overwriteAnnotations() *mcp.ToolAnnotations {
	return &mcp.ToolAnnotations{
		DestructiveHint: boolPtr(true),
		IdempotentHint:  true,
		OpenWorldHint:   boolPtr(false),
	}
}

// registerTools adds all tools to the server.
func registerTools(server *mcp.Server, scaffolder *scaffold.Scaffolder, catalog *snippets.Catalog, roots rootsFunc) {
	mcp.AddTool(server, &mcp.Tool{
		Name: "create_api_structure",
		Description: "Create the Node.js Express API layout (command " + scaffold.CommandID + ") in the first workspace root: " +
			"src/controllers, src/routes, src/services, src/models, src/middlewares, src/utils, src/package.json and src/app.js. " +
			"Existing src/package.json and src/app.js are overwritten without confirmation. " +
			"Uses the root argument when given, otherwise the roots the client has open.",
		Annotations: overwriteAnnotations(),
	}, handleCreate(scaffolder, roots))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "plan_api_structure",
		Description: "Dry run of create_api_structure: lists which folders and files would be created, kept or overwritten, with a unified diff for each overwritten file. Writes nothing.",
		Annotations: readOnlyAnnotations(),
	}, handlePlan(scaffolder, roots))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_snippets",
		Description: "List Express/Node.js snippets by prefix. An optional query filters by prefix, name or description.",
		Annotations: readOnlyAnnotations(),
	}, handleListSnippets(catalog))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_snippet",
		Description: "Get a snippet body by prefix. With expand=true, also returns the text as inserted on first expansion and its tab stops.",
		Annotations: readOnlyAnnotations(),
	}, handleGetSnippet(catalog))
}
