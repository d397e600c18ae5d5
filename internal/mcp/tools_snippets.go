package mcp

import (
	"context"
	"errors"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/gorewood/nodejs-snippets/internal/snippets"
)

// SnippetSummary is a snippet without its body.
type SnippetSummary struct {
	Prefix      string `json:"prefix"                jsonschema:"trigger prefix typed in the editor"`
	Name        string `json:"name"                  jsonschema:"display name"`
	Description string `json:"description,omitempty" jsonschema:"what the snippet inserts"`
	Source      string `json:"source"                jsonschema:"project, global or built-in"`
}

func summarize(s snippets.Snippet) SnippetSummary {
	return SnippetSummary{
		Prefix:      s.Prefix,
		Name:        s.Name,
		Description: s.Description,
		Source:      s.Source,
	}
}

// --- List tool ---

// ListSnippetsInput is the input for the list_snippets tool.
type ListSnippetsInput struct {
	Query string `json:"query,omitempty" jsonschema:"case-insensitive filter on prefix, name and description"`
}

// ListSnippetsOutput is the output for the list_snippets tool.
type ListSnippetsOutput struct {
	Count    int              `json:"count"    jsonschema:"number of matching snippets"`
	Snippets []SnippetSummary `json:"snippets" jsonschema:"matching snippets, best match first"`
}

func handleListSnippets(catalog *snippets.Catalog) mcp.ToolHandlerFor[ListSnippetsInput, ListSnippetsOutput] {
	return func(_ context.Context, _ *mcp.CallToolRequest, input ListSnippetsInput) (*mcp.CallToolResult, ListSnippetsOutput, error) {
		matches := catalog.Search(input.Query)
		out := ListSnippetsOutput{
			Count:    len(matches),
			Snippets: make([]SnippetSummary, 0, len(matches)),
		}
		for _, s := range matches {
			out.Snippets = append(out.Snippets, summarize(s))
		}
		return nil, out, nil
	}
}

// --- Get tool ---

// GetSnippetInput is the input for the get_snippet tool.
type GetSnippetInput struct {
	Prefix string `json:"prefix"           jsonschema:"snippet prefix, e.g. express-server"`
	Expand bool   `json:"expand,omitempty" jsonschema:"also render the body as first inserted"`
}

// GetSnippetOutput is the output for the get_snippet tool.
type GetSnippetOutput struct {
	Snippet   SnippetSummary      `json:"snippet"             jsonschema:"the matching snippet"`
	Body      string              `json:"body"                jsonschema:"snippet body in editor snippet syntax"`
	Overrides string              `json:"overrides,omitempty" jsonschema:"source this snippet replaces"`
	Expansion *snippets.Expansion `json:"expansion,omitempty" jsonschema:"rendered text and tab stops (expand only)"`
}

func handleGetSnippet(catalog *snippets.Catalog) mcp.ToolHandlerFor[GetSnippetInput, GetSnippetOutput] {
	return func(_ context.Context, _ *mcp.CallToolRequest, input GetSnippetInput) (*mcp.CallToolResult, GetSnippetOutput, error) {
		if input.Prefix == "" {
			return nil, GetSnippetOutput{}, errors.New("prefix is required")
		}

		s, err := catalog.Lookup(input.Prefix)
		if err != nil {
			return nil, GetSnippetOutput{}, fmt.Errorf("no snippet with prefix %q", input.Prefix)
		}

		out := GetSnippetOutput{
			Snippet:   summarize(s),
			Body:      s.Body,
			Overrides: s.Overrides,
		}
		if input.Expand {
			expansion := snippets.Expand(s.Body, nil)
			out.Expansion = &expansion
		}
		return nil, out, nil
	}
}
