package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/MakeNowJust/heredoc"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/gorewood/nodejs-snippets/internal/config"
	"github.com/gorewood/nodejs-snippets/internal/output"
	"github.com/gorewood/nodejs-snippets/internal/snippets"
	"github.com/gorewood/nodejs-snippets/internal/workspace"
)

// newSnippetsCmd creates the snippets command and its subcommands.
func newSnippetsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "snippets",
		Short: "List, show and export Express/Node.js snippets",
		Long: heredoc.Docf(`
			Work with the snippet catalog.

			Snippets are looked up by prefix in three places, first match wins:

			  1. <workspace>/.nodejs-snippets/%[1]s   (project)
			  2. <config dir>/%[1]s                  (global)
			  3. the built-in catalog

			Override files are validated before use; an invalid file is an error.
			A warning names every prefix an override replaces. --builtin skips
			the override files.
		`, snippets.CatalogFile),
	}
	cmd.PersistentFlags().String("root", "", "Workspace folder holding project overrides (default: first open folder, then the working directory)")
	cmd.PersistentFlags().Bool("builtin", false, "Ignore project and global overrides")

	cmd.AddCommand(newSnippetsListCmd())
	cmd.AddCommand(newSnippetsShowCmd())
	cmd.AddCommand(newSnippetsExportCmd())
	return cmd
}

// projectRoot picks the folder whose .nodejs-snippets directory is read.
func projectRoot(cmd *cobra.Command) string {
	if root := persistentFlag(cmd, "root"); root != "" {
		return root
	}
	if roots, err := workspace.Resolve(workspace.FromEnv()); err == nil && len(roots) > 0 {
		return roots[0]
	}
	if wd, err := os.Getwd(); err == nil {
		return wd
	}
	return ""
}

// loadCatalog loads the merged catalog for cmd, or only the built-in set
// when --builtin is given.
func loadCatalog(cmd *cobra.Command, printer *output.Printer) (*snippets.Catalog, error) {
	if persistentFlag(cmd, "builtin") == "true" {
		catalog, err := snippets.Builtin()
		if err != nil {
			return nil, output.NewSystemErrorWithCause(err.Error(), err)
		}
		return catalog, nil
	}

	opts := snippets.LoadOptions{GlobalDir: config.Dir()}
	if root := projectRoot(cmd); root != "" {
		opts.ProjectDir = config.ProjectDir(root)
	}

	catalog, err := snippets.Load(opts)
	if err != nil {
		return nil, output.NewSystemErrorWithCause(err.Error(), err)
	}
	warnOverrides(printer, catalog)
	return catalog, nil
}

// warnOverrides reports every snippet that shadows a prefix from a lower
// source. JSON output carries this in the overrides field instead.
func warnOverrides(printer *output.Printer, catalog *snippets.Catalog) {
	if printer.IsJSON() {
		return
	}
	for _, s := range catalog.All() {
		if s.Overrides != "" {
			printer.Warn("%s snippet %q overrides the %s one", s.Source, s.Prefix, s.Overrides)
		}
	}
}

func newSnippetsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list [query]",
		Short: "List snippets, optionally filtered by prefix, name or description",
		Example: heredoc.Doc(`
			nodejs-snippets snippets list
			nodejs-snippets snippets list route
			nodejs-snippets snippets list jwt --json
		`),
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := ""
			if len(args) == 1 {
				query = args[0]
			}
			return runSnippetsList(cmd, query)
		},
	}
}

func runSnippetsList(cmd *cobra.Command, query string) error {
	printer := newPrinter(cmd)

	catalog, err := loadCatalog(cmd, printer)
	if err != nil {
		printer.Error(err)
		return err
	}

	matches := catalog.Search(query)
	if printer.IsJSON() {
		return printer.WriteJSON(map[string]any{
			"count":    len(matches),
			"snippets": matches,
		})
	}

	if len(matches) == 0 {
		printer.Stderr("No snippets match %q\n", query)
		return nil
	}
	printSnippetTable(printer, matches)
	return nil
}

func newSnippetsShowCmd() *cobra.Command {
	var expand bool
	cmd := &cobra.Command{
		Use:   "show <prefix>",
		Short: "Show a snippet body",
		Example: heredoc.Doc(`
			nodejs-snippets snippets show express-server
			nodejs-snippets snippets show route-get --expand
		`),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSnippetsShow(cmd, args[0], expand)
		},
	}
	cmd.Flags().BoolVarP(&expand, "expand", "e", false, "Render the body as inserted, with placeholders filled in")
	return cmd
}

func runSnippetsShow(cmd *cobra.Command, prefix string, expand bool) error {
	printer := newPrinter(cmd)

	catalog, err := loadCatalog(cmd, printer)
	if err != nil {
		printer.Error(err)
		return err
	}

	snippet, err := catalog.Lookup(prefix)
	if err != nil {
		exitErr := output.NewUserErrorWithCause(fmt.Sprintf("no snippet with prefix %q. Run 'nodejs-snippets snippets list' to see all prefixes", prefix), err)
		if !errors.Is(err, snippets.ErrNotFound) {
			exitErr = output.NewSystemErrorWithCause(err.Error(), err)
		}
		printer.Error(exitErr)
		return exitErr
	}

	var expansion *snippets.Expansion
	if expand {
		e := snippets.Expand(snippet.Body, nil)
		expansion = &e
	}

	if printer.IsJSON() {
		data := map[string]any{"snippet": snippet}
		if expansion != nil {
			data["expansion"] = expansion
		}
		return printer.WriteJSON(data)
	}

	printSnippet(printer, snippet, expansion)
	return nil
}

// Export formats.
const (
	formatVSCode   = "vscode"
	formatMarkdown = "markdown"
)

func newSnippetsExportCmd() *cobra.Command {
	var outputPath, format string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the catalog as an editor snippet file or a cheat sheet",
		Long: heredoc.Doc(`
			Export the merged catalog.

			  vscode    the editor's JSON snippet format: an object keyed by snippet
			            name with prefix, body lines and description (default)
			  markdown  a cheat sheet with one section per snippet

			Without --output the result is written to stdout.
		`),
		Example: heredoc.Doc(`
			nodejs-snippets snippets export > .vscode/express.code-snippets
			nodejs-snippets snippets export --output .vscode/express.code-snippets
			nodejs-snippets snippets export --format markdown -o SNIPPETS.md
		`),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSnippetsExport(cmd, afero.NewOsFs(), format, outputPath)
		},
	}
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Write to this file instead of stdout")
	cmd.Flags().StringVarP(&format, "format", "f", formatVSCode, "Export format: vscode or markdown")
	return cmd
}

func runSnippetsExport(cmd *cobra.Command, fsys afero.Fs, format, outputPath string) error {
	printer := newPrinter(cmd)

	var export func(*snippets.Catalog, io.Writer) error
	switch format {
	case formatVSCode:
		export = (*snippets.Catalog).ExportVSCode
	case formatMarkdown:
		export = (*snippets.Catalog).ExportMarkdown
	default:
		err := output.NewUserError(fmt.Sprintf("unknown format %q: use vscode or markdown", format))
		printer.Error(err)
		return err
	}

	catalog, err := loadCatalog(cmd, printer)
	if err != nil {
		printer.Error(err)
		return err
	}

	if outputPath == "" {
		if err := export(catalog, cmd.OutOrStdout()); err != nil {
			exitErr := output.NewSystemErrorWithCause(err.Error(), err)
			printer.Error(exitErr)
			return exitErr
		}
		return nil
	}

	var buf bytes.Buffer
	if err := export(catalog, &buf); err != nil {
		exitErr := output.NewSystemErrorWithCause(err.Error(), err)
		printer.Error(exitErr)
		return exitErr
	}
	// #nosec G306 -- snippet files are meant to be shared
	if err := afero.WriteFile(fsys, outputPath, buf.Bytes(), 0o644); err != nil {
		exitErr := output.NewSystemErrorWithCause(fmt.Sprintf("writing %s: %v", outputPath, err), err)
		printer.Error(exitErr)
		return exitErr
	}

	return printer.Success(map[string]any{
		"message": fmt.Sprintf("Exported %d snippets to %s", catalog.Len(), outputPath),
		"path":    outputPath,
		"count":   catalog.Len(),
	})
}
