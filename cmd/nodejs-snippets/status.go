package main

import (
	"github.com/MakeNowJust/heredoc"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/gorewood/nodejs-snippets/internal/output"
	"github.com/gorewood/nodejs-snippets/internal/scaffold"
)

// newStatusCmd creates the status command.
func newStatusCmd() *cobra.Command {
	var flags rootFlags
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show which parts of the API layout exist in the workspace folder",
		Long: heredoc.Doc(`
			Show the state of every folder and file of the API layout in the first
			open workspace folder:

			  present   exists as created by create-api-structure
			  missing   does not exist yet
			  modified  file exists with different content (would be overwritten)
			  conflict  a file where a folder belongs, or the reverse

			Examples:
			  nodejs-snippets status --root .
			  nodejs-snippets status --root . --json
		`),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runStatus(cmd, afero.NewOsFs(), flags)
		},
	}
	flags.register(cmd)
	return cmd
}

// runStatus executes the status command.
func runStatus(cmd *cobra.Command, fsys afero.Fs, flags rootFlags) error {
	printer := newPrinter(cmd)

	roots, err := flags.resolve()
	if err != nil {
		printer.Error(err)
		return err
	}
	if len(roots) == 0 {
		err := output.NewUserErrorWithCause(scaffold.NoWorkspaceMessage, scaffold.ErrNoWorkspaceOpen)
		printer.Error(err)
		return err
	}

	artifacts, err := scaffold.New(fsys).Inspect(roots[0])
	if err != nil {
		exitErr := output.NewSystemErrorWithCause("inspecting workspace: "+err.Error(), err)
		printer.Error(exitErr)
		return exitErr
	}

	counts := countStates(artifacts)
	complete := counts[scaffold.StatePresent] == len(artifacts)

	if printer.IsJSON() {
		return printer.Success(map[string]any{
			"root":      roots[0],
			"complete":  complete,
			"artifacts": artifacts,
			"counts":    counts,
		})
	}

	printer.KeyValue("Workspace root", roots[0])
	printer.Println()
	rows := make([][]string, 0, len(artifacts))
	for _, a := range artifacts {
		rows = append(rows, []string{a.Path, string(a.Kind), string(a.State)})
	}
	printer.Table([]string{"PATH", "KIND", "STATE"}, rows)
	printer.Println()

	if complete {
		printer.Println("API structure is complete.")
		return nil
	}
	printer.Print("%d missing, %d modified, %d conflict. Run 'nodejs-snippets create-api-structure' to create the layout.\n",
		counts[scaffold.StateMissing], counts[scaffold.StateModified], counts[scaffold.StateConflict])
	return nil
}

// countStates tallies artifacts by state.
func countStates(artifacts []scaffold.Artifact) map[scaffold.State]int {
	counts := map[scaffold.State]int{
		scaffold.StatePresent:  0,
		scaffold.StateMissing:  0,
		scaffold.StateModified: 0,
		scaffold.StateConflict: 0,
	}
	for _, a := range artifacts {
		counts[a.State]++
	}
	return counts
}
