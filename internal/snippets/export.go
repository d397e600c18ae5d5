package snippets

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// editorSnippet is one entry of an editor snippet file.
type editorSnippet struct {
	Prefix      string   `json:"prefix"`
	Body        []string `json:"body"`
	Description string   `json:"description,omitempty"`
}

// ExportVSCode writes the catalog as an editor snippet file: a JSON object
// keyed by snippet name, each with prefix, body lines, and description.
func (c *Catalog) ExportVSCode(w io.Writer) error {
	out := make(map[string]editorSnippet, len(c.snippets))
	for _, s := range c.snippets {
		name := s.Name
		if _, dup := out[name]; dup {
			name = s.Name + " (" + s.Prefix + ")"
		}
		out[name] = editorSnippet{
			Prefix:      s.Prefix,
			Body:        BodyLines(s.Body),
			Description: s.Description,
		}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encoding snippets: %w", err)
	}
	return nil
}

// BodyLines splits a body into lines without the trailing newline YAML block
// scalars leave behind.
func BodyLines(body string) []string {
	body = strings.ReplaceAll(body, "\r\n", "\n")
	return strings.Split(strings.TrimSuffix(body, "\n"), "\n")
}
