package main

import (
	"github.com/spf13/cobra"

	"github.com/gorewood/nodejs-snippets/internal/output"
	"github.com/gorewood/nodejs-snippets/internal/workspace"
)

// rootFlags are the workspace flags shared by the scaffold commands.
type rootFlags struct {
	roots         []string
	workspaceFile string
}

// register adds --root and --workspace-file to cmd.
func (f *rootFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringArrayVar(&f.roots, "root", nil,
		"Open workspace folder (repeatable; only the first is used)")
	cmd.Flags().StringVar(&f.workspaceFile, "workspace-file", "",
		"Read workspace folders from a .code-workspace file")
}

// resolve returns the open workspace roots: --root, then --workspace-file,
// then $NODEJS_SNIPPETS_WORKSPACE_FOLDERS. There is no fallback to the
// working directory.
func (f *rootFlags) resolve() ([]string, error) {
	src := workspace.FromEnv()
	src.Roots = f.roots
	src.WorkspaceFile = f.workspaceFile

	roots, err := workspace.Resolve(src)
	if err != nil {
		return nil, output.NewUserErrorWithCause(err.Error(), err)
	}
	return roots, nil
}
