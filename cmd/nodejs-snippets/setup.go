package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/MakeNowJust/heredoc"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/gorewood/nodejs-snippets/internal/agent"
	"github.com/gorewood/nodejs-snippets/internal/output"
)

// setupOptions holds the flags of the setup command.
type setupOptions struct {
	global bool
	check  bool
	remove bool
	dryRun bool
}

// integrationInfo describes one client and where the server is registered.
type integrationInfo struct {
	Name     string   `json:"name"`
	Display  string   `json:"display_name"`
	Scopes   []string `json:"installed_scopes"`
	Location string   `json:"location,omitempty"`
}

// newSetupCmd creates the setup command.
func newSetupCmd() *cobra.Command {
	var opts setupOptions

	cmd := &cobra.Command{
		Use:   "setup [client]",
		Short: "Register the MCP server with an agent client",
		Long: heredoc.Docf(`
			Register 'nodejs-snippets serve' as an MCP server in an agent client's
			configuration, so the client can scaffold APIs and look up snippets.

			Clients: %s

			By default the server is registered for the workspace folder (project
			scope). Use --global to register it in the user's home directory.
			Existing servers and comments in the client's file are kept.

			Without a client, lists every client and where the server is registered.
		`, strings.Join(agent.Names(), ", ")),
		Example: heredoc.Doc(`
			nodejs-snippets setup                  # List clients
			nodejs-snippets setup vscode           # Write .vscode/mcp.json
			nodejs-snippets setup claude --global  # Write ~/.claude.json
			nodejs-snippets setup cursor --check   # Check registration
			nodejs-snippets setup claude --remove  # Remove registration
		`),
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: agent.Names(),
		RunE: func(cmd *cobra.Command, args []string) error {
			env := setupEnv(cmd)
			if len(args) == 0 {
				return runSetupList(cmd, env)
			}
			return runSetup(cmd, env, args[0], opts)
		},
	}

	cmd.Flags().String("root", "", "Workspace folder for project scope (default: first open folder, then the working directory)")
	cmd.Flags().BoolVar(&opts.global, "global", false, "Register in the home directory instead of the workspace")
	cmd.Flags().BoolVar(&opts.check, "check", false, "Check registration without changes")
	cmd.Flags().BoolVar(&opts.remove, "remove", false, "Remove the registration")
	cmd.Flags().BoolVar(&opts.dryRun, "dry-run", false, "Show what would be done without doing it")
	cmd.MarkFlagsMutuallyExclusive("check", "remove")

	return cmd
}

// setupEnv builds the client environment for cmd.
func setupEnv(cmd *cobra.Command) agent.Env {
	env := agent.Env{
		Fs:      afero.NewOsFs(),
		Root:    projectRoot(cmd),
		Command: "nodejs-snippets",
		Args:    []string{"serve"},
	}
	if home, err := os.UserHomeDir(); err == nil {
		env.Home = home
	}
	if exe, err := os.Executable(); err == nil {
		env.Command = exe
	}
	return env
}

func runSetup(cmd *cobra.Command, env agent.Env, name string, opts setupOptions) error {
	printer := newPrinter(cmd)

	client := agent.Get(name)
	if client == nil {
		err := output.NewUserError(fmt.Sprintf("unknown client %q: use one of %s", name, strings.Join(agent.Names(), ", ")))
		printer.Error(err)
		return err
	}

	scope := agent.ScopeProject
	if opts.global {
		scope = agent.ScopeGlobal
	}
	path, err := client.ConfigPath(env, scope)
	if err != nil {
		exitErr := output.NewUserErrorWithCause(err.Error(), err)
		printer.Error(exitErr)
		return exitErr
	}

	installed, err := client.Check(env, scope)
	if err != nil {
		exitErr := output.NewSystemErrorWithCause(err.Error(), err)
		printer.Error(exitErr)
		return exitErr
	}

	switch {
	case opts.check:
		return printSetupCheck(printer, client, scope, path, installed)
	case opts.dryRun:
		return printSetupDryRun(printer, client, scope, path, installed, opts.remove)
	case opts.remove:
		return runSetupRemove(printer, client, env, scope, installed)
	default:
		return runSetupInstall(printer, client, env, scope)
	}
}

func runSetupInstall(printer *output.Printer, client agent.Client, env agent.Env, scope agent.Scope) error {
	path, err := client.Install(env, scope)
	if err != nil {
		exitErr := setupError(err)
		printer.Error(exitErr)
		return exitErr
	}

	return printer.Success(map[string]any{
		"status":  "installed",
		"client":  client.Name(),
		"scope":   scope,
		"path":    path,
		"message": fmt.Sprintf("Registered nodejs-snippets with %s in %s", client.DisplayName(), path),
	})
}

func runSetupRemove(printer *output.Printer, client agent.Client, env agent.Env, scope agent.Scope, installed bool) error {
	if !installed {
		return printer.Success(map[string]any{
			"status":  "not_installed",
			"client":  client.Name(),
			"scope":   scope,
			"message": fmt.Sprintf("nodejs-snippets is not registered with %s (%s)", client.DisplayName(), scope),
		})
	}

	path, err := client.Remove(env, scope)
	if err != nil {
		exitErr := setupError(err)
		printer.Error(exitErr)
		return exitErr
	}

	return printer.Success(map[string]any{
		"status":  "removed",
		"client":  client.Name(),
		"scope":   scope,
		"path":    path,
		"message": fmt.Sprintf("Removed nodejs-snippets from %s", path),
	})
}

// setupError maps client errors to exit codes.
func setupError(err error) *output.ExitError {
	if errors.Is(err, agent.ErrScopeUnsupported) {
		return output.NewUserErrorWithCause(err.Error(), err)
	}
	return output.NewSystemErrorWithCause(err.Error(), err)
}

func runSetupList(cmd *cobra.Command, env agent.Env) error {
	printer := newPrinter(cmd)

	clients := agent.All()
	integrations := make([]integrationInfo, 0, len(clients))
	for _, client := range clients {
		info := integrationInfo{Name: client.Name(), Display: client.DisplayName(), Scopes: []string{}}
		for _, scope := range []agent.Scope{agent.ScopeProject, agent.ScopeGlobal} {
			if installed, err := client.Check(env, scope); err == nil && installed {
				info.Scopes = append(info.Scopes, string(scope))
				if info.Location == "" {
					info.Location, _ = client.ConfigPath(env, scope)
				}
			}
		}
		integrations = append(integrations, info)
	}

	if printer.IsJSON() {
		return printer.WriteJSON(map[string]any{"clients": integrations})
	}

	printIntegrations(printer, integrations)
	return nil
}
