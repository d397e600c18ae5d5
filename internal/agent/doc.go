// Package agent registers the nodejs-snippets MCP server with agent clients.
//
// Each client keeps its MCP servers in a JSON (or JSON with comments) file,
// either inside the workspace or in the user's home directory:
//
//	client := agent.Get("vscode")
//	path, err := client.Install(env, agent.ScopeProject)
//	installed, err := client.Check(env, agent.ScopeProject)
//	err := client.Remove(env, agent.ScopeProject)
//
// Edits are applied as JSON patches, so comments and unrelated entries in the
// client's file survive an install or a removal.
package agent
