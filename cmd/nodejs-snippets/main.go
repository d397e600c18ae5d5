// Package main provides the entry point for the nodejs-snippets CLI.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/MakeNowJust/heredoc"
	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/gorewood/nodejs-snippets/internal/config"
	"github.com/gorewood/nodejs-snippets/internal/output"
)

// Set with -ldflags at release time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// persistentFlag finds a flag on cmd or, failing that, on the root.
func persistentFlag(cmd *cobra.Command, name string) string {
	flag := cmd.Flags().Lookup(name)
	if flag == nil {
		flag = cmd.Root().PersistentFlags().Lookup(name)
	}
	if flag == nil {
		return ""
	}
	return flag.Value.String()
}

// isJSONMode reports whether --json was given anywhere on the command line.
func isJSONMode(cmd *cobra.Command) bool {
	return persistentFlag(cmd, "json") == "true"
}

// useColor resolves the --color persistent flag against the output writer.
func useColor(cmd *cobra.Command) bool {
	return output.ResolveColorMode(persistentFlag(cmd, "color"), output.IsTTY(cmd.OutOrStdout()))
}

// newPrinter returns a printer for cmd with errors and warnings on stderr.
func newPrinter(cmd *cobra.Command) *output.Printer {
	return output.NewPrinter(cmd.OutOrStdout(), isJSONMode(cmd), useColor(cmd)).WithStderr(cmd.ErrOrStderr())
}

// buildVersion formats the version, adding the short commit and date for release builds.
func buildVersion() string {
	if commit == "none" && date == "unknown" {
		return version
	}
	shortCommit := commit
	if len(commit) > 7 {
		shortCommit = commit[:7]
	}
	return fmt.Sprintf("%s (%s, %s)", version, shortCommit, date)
}

func main() {
	os.Exit(run())
}

func run() int {
	return output.GetExitCode(executeRoot(context.Background(), newRootCmd()))
}

// executeRoot runs cmd through fang.
func executeRoot(ctx context.Context, cmd *cobra.Command) error {
	return fang.Execute(ctx, cmd,
		fang.WithVersion(buildVersion()),
		fang.WithErrorHandler(reportUnhandled),
	)
}

// reportUnhandled prints errors no command has reported yet. Commands report
// their own *output.ExitError through a Printer, so those are skipped.
func reportUnhandled(w io.Writer, styles fang.Styles, err error) {
	var exitErr *output.ExitError
	if errors.As(err, &exitErr) {
		return
	}
	fang.DefaultErrorHandler(w, styles, err)
}

// newRootCmd creates the root command for the nodejs-snippets CLI.
func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "nodejs-snippets",
		Short: "Express API scaffolding and snippets for Node.js backends",
		Long: heredoc.Doc(`
			nodejs-snippets - scaffolding and snippets for Node.js Express backends.

			Lays out a conventional Express API in the open workspace folder
			(src/controllers, src/routes, src/services, src/models, src/middlewares,
			src/utils, src/package.json and src/app.js) and serves a catalog of
			Express, JWT and Mongoose snippets that can be listed, expanded, or
			exported as an editor snippet file.

			All commands support --json for structured output.
		`),
		Version:       buildVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if isJSONMode(cmd) {
				printer := output.NewPrinter(cmd.OutOrStdout(), true, false)
				err := output.NewUserError("no command specified. Run 'nodejs-snippets --help' for usage")
				printer.Error(err)
				return err
			}
			return cmd.Help()
		},
	}

	// Environment variables already set always take precedence over file values.
	cmd.PersistentPreRunE = func(_ *cobra.Command, _ []string) error {
		loadEnvFiles()
		return nil
	}

	cmd.PersistentFlags().Bool("json", false, "Output in JSON format")
	cmd.PersistentFlags().String("color", output.ColorAuto, "Color output: auto, always, never")

	lipgloss.SetHasDarkBackground(true)

	addCommands(cmd)

	return cmd
}

// loadEnvFiles loads .env.local, .env and the global env file, in that
// order. The first file to set a variable wins; missing files are skipped.
func loadEnvFiles() {
	for _, path := range config.EnvFiles() {
		_ = godotenv.Load(path)
	}
}

// commandGroup is a help section and the commands listed in it.
type commandGroup struct {
	id, title string
	commands  []*cobra.Command
}

// addCommands registers every subcommand under its help group.
func addCommands(root *cobra.Command) {
	groups := []commandGroup{
		{id: "scaffold", title: "Scaffold Commands:", commands: []*cobra.Command{newCreateCmd(), newStatusCmd()}},
		{id: "snippets", title: "Snippet Commands:", commands: []*cobra.Command{newSnippetsCmd()}},
		{id: "agent", title: "Agent Commands:", commands: []*cobra.Command{newServeCmd(), newSetupCmd()}},
	}

	for _, g := range groups {
		root.AddGroup(&cobra.Group{ID: g.id, Title: g.title})
		for _, child := range g.commands {
			child.GroupID = g.id
			root.AddCommand(child)
		}
	}
}
