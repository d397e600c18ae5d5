package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/gorewood/nodejs-snippets/internal/workspace"
)

// rootsFunc returns the workspace roots open in the calling client.
type rootsFunc func(ctx context.Context, req *mcp.CallToolRequest) []string

// clientRoots asks the client for its roots. A client that does not support
// roots/list, or a call made outside a session, has no roots open.
func clientRoots(ctx context.Context, req *mcp.CallToolRequest) []string {
	if req == nil || req.Session == nil {
		return nil
	}

	res, err := req.Session.ListRoots(ctx, nil)
	if err != nil || res == nil {
		return nil
	}

	uris := make([]string, 0, len(res.Roots))
	for _, root := range res.Roots {
		uris = append(uris, root.URI)
	}
	return workspace.FromURIs(uris)
}

// resolveRoots applies the tool's root argument, a path or file:// URI,
// before asking the client.
func resolveRoots(ctx context.Context, req *mcp.CallToolRequest, explicit string, roots rootsFunc) ([]string, error) {
	if explicit != "" {
		if path, ok := workspace.PathFromURI(explicit); ok {
			explicit = path
		}
		return workspace.Resolve(workspace.Sources{Roots: []string{explicit}})
	}
	return roots(ctx, req), nil
}
