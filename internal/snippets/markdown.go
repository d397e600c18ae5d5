package snippets

import (
	"fmt"
	"io"
	"strings"
)

// FormatMarkdown renders the catalog as a markdown cheat sheet.
func (c *Catalog) FormatMarkdown() string {
	var builder strings.Builder

	writeFrontmatter(&builder, c)
	builder.WriteString("# Express/Node.js snippets\n\n")
	for _, s := range c.snippets {
		writeSnippetSection(&builder, s)
	}

	return builder.String()
}

// ExportMarkdown writes the cheat sheet to w.
func (c *Catalog) ExportMarkdown(w io.Writer) error {
	if _, err := io.WriteString(w, c.FormatMarkdown()); err != nil {
		return fmt.Errorf("writing markdown: %w", err)
	}
	return nil
}

// writeFrontmatter writes the YAML frontmatter section.
func writeFrontmatter(builder *strings.Builder, c *Catalog) {
	builder.WriteString("---\n")
	builder.WriteString("schema: nodejs-snippets.cheatsheet/v1\n")
	fmt.Fprintf(builder, "snippet_count: %d\n", len(c.snippets))

	counts := make(map[string]int)
	for _, s := range c.snippets {
		counts[s.Source]++
	}
	var sources []string
	for _, source := range []string{SourceProject, SourceGlobal, SourceBuiltin} {
		if counts[source] > 0 {
			sources = append(sources, fmt.Sprintf("%s=%d", source, counts[source]))
		}
	}
	fmt.Fprintf(builder, "sources: [%s]\n", strings.Join(sources, ", "))

	builder.WriteString("---\n\n")
}

// writeSnippetSection writes one snippet as a heading, metadata and fenced body.
func writeSnippetSection(builder *strings.Builder, s Snippet) {
	fmt.Fprintf(builder, "## %s\n\n", s.Name)
	fmt.Fprintf(builder, "**Prefix:** `%s`\n\n", s.Prefix)
	if s.Description != "" {
		fmt.Fprintf(builder, "%s\n\n", s.Description)
	}
	if s.Source != SourceBuiltin {
		fmt.Fprintf(builder, "_Source: %s_\n\n", s.Source)
	}

	// Fence with one more backtick than the longest run inside the body.
	fence := strings.Repeat("`", max(3, longestBacktickRun(s.Body)+1))
	fmt.Fprintf(builder, "%sjavascript\n", fence)
	builder.WriteString(strings.Join(BodyLines(s.Body), "\n"))
	fmt.Fprintf(builder, "\n%s\n\n", fence)
}

func longestBacktickRun(s string) int {
	longest, run := 0, 0
	for _, r := range s {
		if r != '`' {
			run = 0
			continue
		}
		run++
		longest = max(longest, run)
	}
	return longest
}
