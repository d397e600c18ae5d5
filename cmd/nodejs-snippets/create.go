package main

import (
	"errors"
	"fmt"

	"github.com/MakeNowJust/heredoc"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/gorewood/nodejs-snippets/internal/output"
	"github.com/gorewood/nodejs-snippets/internal/scaffold"
)

// createOptions holds the flags of the create-api-structure command.
type createOptions struct {
	rootFlags
	dryRun  bool
	verbose bool
}

// newCreateCmd creates the create-api-structure command.
func newCreateCmd() *cobra.Command {
	var opts createOptions
	cmd := &cobra.Command{
		Use:     "create-api-structure",
		Aliases: []string{"scaffold"},
		Short:   "Create the Express API layout in the workspace folder",
		Long: heredoc.Docf(`
			Create the Node.js Express API layout in the first open workspace folder.

			Folders (left alone when they already exist):
			  src/controllers  src/routes       src/services
			  src/models       src/middlewares  src/utils

			Files (written after the folders, in this order):
			  src/package.json
			  src/app.js

			WARNING: existing src/package.json and src/app.js are overwritten
			without confirmation. Use --dry-run to see what would change.

			The workspace folder comes from --root, then --workspace-file, then
			$%s. Only the first folder is used; when none is
			open the command fails with "%s".

			Examples:
			  nodejs-snippets create-api-structure --root .
			  nodejs-snippets scaffold --workspace-file app.code-workspace
			  nodejs-snippets create-api-structure --root . --dry-run
			  nodejs-snippets create-api-structure --root . --json
		`, "NODEJS_SNIPPETS_WORKSPACE_FOLDERS", scaffold.NoWorkspaceMessage),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCreate(cmd, afero.NewOsFs(), opts)
		},
	}

	opts.register(cmd)
	cmd.Flags().BoolVar(&opts.dryRun, "dry-run", false, "Show what would be created or overwritten without writing")
	cmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "List every folder and file as it is created")
	return cmd
}

// runCreate executes the create-api-structure command against fsys.
func runCreate(cmd *cobra.Command, fsys afero.Fs, opts createOptions) error {
	printer := newPrinter(cmd)

	roots, err := opts.resolve()
	if err != nil {
		printer.Error(err)
		return err
	}

	scaffolder := scaffold.New(fsys)
	if opts.dryRun {
		return runCreateDryRun(printer, scaffolder, roots)
	}

	result, err := scaffolder.Create(cmd.Context(), roots)
	if err != nil {
		return reportCreateFailure(printer, result, err, opts.verbose)
	}

	if printer.IsJSON() {
		return printer.Success(map[string]any{
			"status":  "ok",
			"message": scaffold.SuccessMessage,
			"root":    result.Root,
			"steps":   result.Steps,
		})
	}

	if opts.verbose {
		printCreateSteps(printer, result)
	}
	return printer.Success(map[string]any{"message": scaffold.SuccessMessage})
}

// reportCreateFailure prints one notification for a failed Create. A partial
// result carries the steps completed before the failure.
func reportCreateFailure(printer *output.Printer, result *scaffold.Result, err error, verbose bool) error {
	exitErr := createError(err)
	if !printer.IsJSON() {
		if result != nil && verbose {
			printCreateSteps(printer, result)
		}
		printer.Error(exitErr)
		return exitErr
	}

	data := map[string]any{
		"error":  exitErr.Message,
		"code":   exitErr.Code,
		"status": string(scaffold.Classify(err)),
	}
	if result != nil {
		data["root"] = result.Root
		steps := result.Steps
		if steps == nil {
			steps = []scaffold.Step{}
		}
		data["steps"] = steps
	}
	if werr := printer.WriteJSON(data); werr != nil {
		return werr
	}
	return exitErr
}

// runCreateDryRun prints the plan. Paths blocked by an entry of the wrong
// kind make the run fail with a conflict.
func runCreateDryRun(printer *output.Printer, scaffolder *scaffold.Scaffolder, roots []string) error {
	plan, err := scaffolder.Plan(roots)
	if err != nil {
		exitErr := createError(err)
		printer.Error(exitErr)
		return exitErr
	}

	blocked := blockedPaths(plan)
	if printer.IsJSON() {
		if err := printer.WriteJSON(map[string]any{
			"status":     "dry_run",
			"root":       plan.Root,
			"changes":    plan.Changes,
			"overwrites": plan.Overwrites(),
			"blocked":    blocked,
		}); err != nil {
			return err
		}
	} else {
		printPlan(printer, plan)
	}

	if len(blocked) > 0 {
		conflict := output.NewConflictError(fmt.Sprintf("%d path(s) in the layout are blocked: %v", len(blocked), blocked))
		if !printer.IsJSON() {
			printer.Error(conflict)
		}
		return conflict
	}
	return nil
}

// createError maps a scaffold error to the notification and exit code.
func createError(err error) *output.ExitError {
	var fsErr *scaffold.FSError
	switch {
	case errors.Is(err, scaffold.ErrNoWorkspaceOpen):
		return output.NewUserErrorWithCause(scaffold.NoWorkspaceMessage, err)
	case errors.As(err, &fsErr):
		return output.NewSystemErrorWithCause("Failed to create API structure: "+fsErr.Error(), err)
	default:
		return output.NewSystemErrorWithCause("Failed to create API structure: "+err.Error(), err)
	}
}

// blockedPaths lists the planned changes that cannot be applied.
func blockedPaths(plan *scaffold.Plan) []string {
	blocked := []string{}
	for _, change := range plan.Changes {
		if change.Action == scaffold.ActionBlocked {
			blocked = append(blocked, change.Path)
		}
	}
	return blocked
}
