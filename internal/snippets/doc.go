// Package snippets holds the static snippet table for Express backends.
//
// Snippets map a short trigger prefix to a body written in the editor
// snippet grammar (tab stops, placeholders, choices). The built-in table is
// embedded from snippets.yaml. Users may add or replace entries with a
// project-local .nodejs-snippets/snippets.yaml or a global one in the
// configuration directory; both are validated against an embedded JSON
// Schema before use.
//
// # Resolution
//
// Load merges catalogs by prefix, first definition wins:
//
//	project -> global -> built-in
//
// # Output
//
// Expand renders a body the way the editor inserts it, and ExportVSCode
// writes the JSON snippet file the editor's own expansion engine reads.
package snippets
