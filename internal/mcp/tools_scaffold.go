package mcp

import (
	"context"
	"errors"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/gorewood/nodejs-snippets/internal/scaffold"
)

// --- Create tool ---

// CreateInput is the input for the create_api_structure tool.
type CreateInput struct {
	Root string `json:"root,omitempty" jsonschema:"workspace root path or file:// URI; defaults to the first root the client has open"`
}

// CreateOutput is the output for the create_api_structure tool.
type CreateOutput struct {
	Status  string          `json:"status"          jsonschema:"success, no_workspace_open or file_system_failed"`
	Root    string          `json:"root,omitempty"  jsonschema:"root the layout was created in"`
	Message string          `json:"message"         jsonschema:"notification shown to the user"`
	Steps   []scaffold.Step `json:"steps,omitempty" jsonschema:"folders and files completed, in order"`
}

func handleCreate(scaffolder *scaffold.Scaffolder, roots rootsFunc) mcp.ToolHandlerFor[CreateInput, CreateOutput] {
	return func(ctx context.Context, req *mcp.CallToolRequest, input CreateInput) (*mcp.CallToolResult, CreateOutput, error) {
		resolved, err := resolveRoots(ctx, req, input.Root, roots)
		if err != nil {
			return nil, CreateOutput{}, err
		}

		result, err := scaffolder.Create(ctx, resolved)
		out := CreateOutput{Status: string(scaffold.Classify(err))}
		if result != nil {
			out.Root = result.Root
			out.Steps = result.Steps
		}

		var fsErr *scaffold.FSError
		switch {
		case err == nil:
			out.Message = scaffold.SuccessMessage
			return nil, out, nil
		case errors.Is(err, scaffold.ErrNoWorkspaceOpen):
			out.Message = scaffold.NoWorkspaceMessage
		case errors.As(err, &fsErr):
			out.Message = fmt.Sprintf("Failed to create API structure: %v", fsErr)
		default:
			out.Message = fmt.Sprintf("Failed to create API structure: %v", err)
		}
		return &mcp.CallToolResult{IsError: true}, out, nil
	}
}

// --- Plan tool ---

// PlanInput is the input for the plan_api_structure tool.
type PlanInput struct {
	Root string `json:"root,omitempty" jsonschema:"workspace root path or file:// URI; defaults to the first root the client has open"`
}

// PlanOutput is the output for the plan_api_structure tool.
type PlanOutput struct {
	Root       string            `json:"root"       jsonschema:"root the plan applies to"`
	Changes    []scaffold.Change `json:"changes"    jsonschema:"planned action for each folder and file"`
	Overwrites int               `json:"overwrites" jsonschema:"number of files whose content would be replaced"`
}

func handlePlan(scaffolder *scaffold.Scaffolder, roots rootsFunc) mcp.ToolHandlerFor[PlanInput, PlanOutput] {
	return func(ctx context.Context, req *mcp.CallToolRequest, input PlanInput) (*mcp.CallToolResult, PlanOutput, error) {
		resolved, err := resolveRoots(ctx, req, input.Root, roots)
		if err != nil {
			return nil, PlanOutput{}, err
		}

		plan, err := scaffolder.Plan(resolved)
		if errors.Is(err, scaffold.ErrNoWorkspaceOpen) {
			return nil, PlanOutput{}, errors.New(scaffold.NoWorkspaceMessage)
		}
		if err != nil {
			return nil, PlanOutput{}, fmt.Errorf("planning API structure: %w", err)
		}

		return nil, PlanOutput{
			Root:       plan.Root,
			Changes:    plan.Changes,
			Overwrites: plan.Overwrites(),
		}, nil
	}
}
