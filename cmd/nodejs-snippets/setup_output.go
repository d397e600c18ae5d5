package main

import (
	"strings"

	"github.com/gorewood/nodejs-snippets/internal/agent"
	"github.com/gorewood/nodejs-snippets/internal/output"
)

func printSetupCheck(printer *output.Printer, client agent.Client, scope agent.Scope, path string, installed bool) error {
	if printer.IsJSON() {
		return printer.WriteJSON(map[string]any{
			"client":    client.Name(),
			"scope":     scope,
			"path":      path,
			"installed": installed,
		})
	}

	printer.Section(client.DisplayName() + " Integration")
	printer.KeyValue("Scope", string(scope))
	printer.KeyValue("Location", path)
	printer.KeyValue("Status", installedLabel(installed))
	return nil
}

func printSetupDryRun(printer *output.Printer, client agent.Client, scope agent.Scope, path string, installed, remove bool) error {
	action := "would install"
	switch {
	case remove && installed:
		action = "would remove"
	case remove:
		action = "nothing to remove"
	case installed:
		action = "would update (already installed)"
	}

	if printer.IsJSON() {
		return printer.WriteJSON(map[string]any{
			"status": "dry_run",
			"client": client.Name(),
			"scope":  scope,
			"path":   path,
			"action": action,
		})
	}

	printer.Section("Dry Run")
	printer.KeyValue("Client", client.DisplayName())
	printer.KeyValue("Action", action)
	printer.KeyValue("Location", path)
	return nil
}

func printIntegrations(printer *output.Printer, integrations []integrationInfo) {
	rows := make([][]string, 0, len(integrations))
	for _, info := range integrations {
		scopes := "-"
		if len(info.Scopes) > 0 {
			scopes = strings.Join(info.Scopes, ", ")
		}
		rows = append(rows, []string{info.Name, info.Display, installedLabel(len(info.Scopes) > 0), scopes})
	}
	printer.Table([]string{"CLIENT", "NAME", "STATUS", "SCOPE"}, rows)
}

func installedLabel(installed bool) string {
	if installed {
		return "installed"
	}
	return "not installed"
}
