package main

import (
	"fmt"
	"strings"

	"github.com/gorewood/nodejs-snippets/internal/output"
	"github.com/gorewood/nodejs-snippets/internal/snippets"
)

// printSnippetTable lists snippets as PREFIX / SOURCE / DESCRIPTION rows.
func printSnippetTable(printer *output.Printer, list []snippets.Snippet) {
	rows := make([][]string, 0, len(list))
	for _, s := range list {
		desc := s.Description
		if desc == "" {
			desc = s.Name
		}
		rows = append(rows, []string{s.Prefix, s.Source, desc})
	}
	printer.Table([]string{"PREFIX", "SOURCE", "DESCRIPTION"}, rows)
}

// printSnippet shows one snippet, its raw body and, if given, its expansion.
func printSnippet(printer *output.Printer, s snippets.Snippet, expansion *snippets.Expansion) {
	printer.KeyValue("Name", s.Name)
	printer.KeyValue("Prefix", s.Prefix)
	if s.Description != "" {
		printer.KeyValue("Description", s.Description)
	}
	source := s.Source
	if s.Overrides != "" {
		source += " (overrides " + s.Overrides + ")"
	}
	printer.KeyValue("Source", source)
	printer.Println()

	if expansion == nil {
		printer.Box("Body", strings.TrimSuffix(s.Body, "\n"))
		return
	}

	printer.Box("Expanded", strings.TrimSuffix(expansion.Text, "\n"))
	if len(expansion.TabStops) == 0 {
		return
	}
	printer.Section("Tab stops")
	for _, stop := range expansion.TabStops {
		label := fmt.Sprintf("$%d", stop.Index)
		switch {
		case stop.Index == 0:
			printer.KeyValue(label, "final cursor")
		case len(stop.Choices) > 0:
			printer.KeyValue(label, strings.Join(stop.Choices, " | "))
		default:
			printer.KeyValue(label, stop.Default)
		}
	}
}
