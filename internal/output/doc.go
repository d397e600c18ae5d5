// Package output renders command results for people and for programs.
//
// Every nodejs-snippets command writes through a Printer so that the same
// code path serves an interactive terminal and a script reading --json.
//
// # Printer
//
//	printer := output.NewPrinter(cmd.OutOrStdout(), jsonMode, isTTY).WithStderr(cmd.ErrOrStderr())
//
//	printer.Success(map[string]any{"message": scaffold.SuccessMessage, "root": root})
//	printer.Error(output.NewUserError(scaffold.NoWorkspaceMessage))
//	printer.Warn("%s snippet %q overrides the %s one", s.Source, s.Prefix, s.Overrides)
//
// Success shows the "message" key in human mode and the whole map in JSON
// mode. Error and Warn go to stderr in human mode and stay on stdout as
// JSON objects in JSON mode:
//
//	{"error": "Please open a folder first", "code": 1}
//	{"warning": "..."}
//
// # Styling
//
// lipgloss styles are applied only when the writer is a terminal or
// --color always is given. Diff colors unified diffs from a dry run the
// same way.
//
// # Exit codes
//
//	output.ExitSuccess     // 0
//	output.ExitUserError   // 1: no folder open, unknown snippet, bad flags
//	output.ExitSystemError // 2: a folder or file could not be written
//	output.ExitConflict    // 3: the layout is blocked by a file or folder in the way
package output
