package main

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/gorewood/nodejs-snippets/internal/output"
	"github.com/gorewood/nodejs-snippets/internal/scaffold"
)

// scaffoldStyleSet holds the styles used by scaffold command output.
type scaffoldStyleSet struct {
	heading lipgloss.Style
	create  lipgloss.Style
	keep    lipgloss.Style
	change  lipgloss.Style
	block   lipgloss.Style
	dim     lipgloss.Style
}

func newScaffoldStyles(color bool) scaffoldStyleSet {
	if !color {
		plain := lipgloss.NewStyle()
		return scaffoldStyleSet{plain, plain, plain, plain, plain, plain}
	}
	return scaffoldStyleSet{
		heading: lipgloss.NewStyle().Bold(true),
		create:  lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		keep:    lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		change:  lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
		block:   lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		dim:     lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
	}
}

// printCreateSteps lists the completed steps of a Create call.
func printCreateSteps(printer *output.Printer, result *scaffold.Result) {
	styles := newScaffoldStyles(printer.IsTTY())
	printer.Print("%s %s\n", styles.heading.Render("Workspace root:"), result.Root)
	for _, step := range result.Steps {
		printer.Print("  %s %s %s\n",
			stepIcon(styles, step.Status), step.Path, styles.dim.Render("("+step.Status+")"))
	}
}

// stepIcon returns a styled marker for a Create step status.
func stepIcon(styles scaffoldStyleSet, status string) string {
	switch status {
	case scaffold.StatusCreated, scaffold.StatusWritten:
		return styles.create.Render("+")
	case scaffold.StatusExists:
		return styles.keep.Render("=")
	case scaffold.StatusOverwritten:
		return styles.change.Render("~")
	default:
		return "?"
	}
}

// printPlan renders a dry run, followed by the diff of every overwritten file.
func printPlan(printer *output.Printer, plan *scaffold.Plan) {
	styles := newScaffoldStyles(printer.IsTTY())

	printer.Print("%s %s\n", styles.heading.Render("Dry run: create-api-structure in"), plan.Root)
	printer.Println()
	for _, change := range plan.Changes {
		printer.Print("  %s %-18s %s\n", actionIcon(styles, change.Action), change.Path, styles.dim.Render(change.Action))
	}

	for _, change := range plan.Changes {
		if change.Diff == "" {
			continue
		}
		printer.Section(change.Path + " will be overwritten")
		printer.Diff(change.Diff)
	}
}

// actionIcon returns a styled marker for a planned action.
func actionIcon(styles scaffoldStyleSet, action string) string {
	switch action {
	case scaffold.ActionCreate:
		return styles.create.Render("+")
	case scaffold.ActionKeep:
		return styles.keep.Render("=")
	case scaffold.ActionOverwrite:
		return styles.change.Render("~")
	case scaffold.ActionBlocked:
		return styles.block.Render("!")
	default:
		return "?"
	}
}
