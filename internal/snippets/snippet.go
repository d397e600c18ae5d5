package snippets

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed snippets.yaml
var builtinYAML []byte

// CatalogFile is the file name looked up in project and global override directories.
const CatalogFile = "snippets.yaml"

// Snippet sources, in precedence order.
const (
	SourceProject = "project"
	SourceGlobal  = "global"
	SourceBuiltin = "built-in"
)

// Snippet is a named template expanded by the editor when its prefix is typed.
type Snippet struct {
	Name        string `yaml:"name"                  json:"name"`
	Prefix      string `yaml:"prefix"                json:"prefix"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
	Body        string `yaml:"body"                  json:"body"`

	// Source is where the snippet was loaded from.
	Source string `yaml:"-" json:"source"`
	// Overrides names the source this snippet shadows, if any.
	Overrides string `yaml:"-" json:"overrides,omitempty"`
}

// catalogFile is the on-disk layout of snippets.yaml.
type catalogFile struct {
	Snippets []Snippet `yaml:"snippets"`
}

// ErrNotFound is returned when no snippet has the requested prefix.
var ErrNotFound = errors.New("snippet not found")

// Catalog is an ordered set of snippets keyed by prefix.
type Catalog struct {
	snippets []Snippet
	byPrefix map[string]int
}

// LoadOptions locates override catalogs. Empty directories are skipped.
type LoadOptions struct {
	ProjectDir string // e.g. <root>/.nodejs-snippets
	GlobalDir  string // e.g. ~/.config/nodejs-snippets
}

// Builtin returns the catalog shipped with the binary.
func Builtin() (*Catalog, error) {
	c := newCatalog()
	if err := c.addFile(SourceBuiltin, builtinYAML); err != nil {
		return nil, err
	}
	return c, nil
}

// Load builds the catalog from project overrides, then global overrides, then
// the built-in set. The first definition of a prefix wins. Missing override
// files are ignored; invalid ones are errors.
func Load(opts LoadOptions) (*Catalog, error) {
	c := newCatalog()

	sources := []struct {
		name string
		dir  string
	}{
		{SourceProject, opts.ProjectDir},
		{SourceGlobal, opts.GlobalDir},
	}

	for _, src := range sources {
		if src.dir == "" {
			continue
		}
		path := filepath.Join(src.dir, CatalogFile)
		data, err := os.ReadFile(path)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return nil, fmt.Errorf("reading snippet catalog %s: %w", path, err)
		}
		if err := Validate(path, data); err != nil {
			return nil, err
		}
		if err := c.addFile(src.name, data); err != nil {
			return nil, err
		}
	}

	if err := c.addFile(SourceBuiltin, builtinYAML); err != nil {
		return nil, err
	}
	return c, nil
}

func newCatalog() *Catalog {
	return &Catalog{byPrefix: make(map[string]int)}
}

// addFile merges a catalog file; prefixes already present are kept and the
// earlier snippet is marked as overriding this source.
func (c *Catalog) addFile(source string, data []byte) error {
	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("parsing %s snippets: %w", source, err)
	}

	for _, s := range file.Snippets {
		if idx, exists := c.byPrefix[s.Prefix]; exists {
			if c.snippets[idx].Source != source && c.snippets[idx].Overrides == "" {
				c.snippets[idx].Overrides = source
			}
			continue
		}
		s.Source = source
		c.byPrefix[s.Prefix] = len(c.snippets)
		c.snippets = append(c.snippets, s)
	}
	return nil
}

// Len returns the number of snippets.
func (c *Catalog) Len() int {
	return len(c.snippets)
}

// All returns every snippet in catalog order.
func (c *Catalog) All() []Snippet {
	return append([]Snippet(nil), c.snippets...)
}

// Lookup returns the snippet registered under prefix.
func (c *Catalog) Lookup(prefix string) (Snippet, error) {
	idx, ok := c.byPrefix[prefix]
	if !ok {
		return Snippet{}, fmt.Errorf("%w: %s", ErrNotFound, prefix)
	}
	return c.snippets[idx], nil
}

// Search returns snippets whose prefix, name, or description contains query
// (case-insensitive), prefix matches first. An empty query returns everything.
func (c *Catalog) Search(query string) []Snippet {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return c.All()
	}

	type scored struct {
		snippet Snippet
		rank    int
	}
	var hits []scored
	for _, s := range c.snippets {
		switch {
		case strings.HasPrefix(strings.ToLower(s.Prefix), query):
			hits = append(hits, scored{s, 0})
		case strings.Contains(strings.ToLower(s.Prefix), query),
			strings.Contains(strings.ToLower(s.Name), query):
			hits = append(hits, scored{s, 1})
		case strings.Contains(strings.ToLower(s.Description), query):
			hits = append(hits, scored{s, 2})
		}
	}

	sort.SliceStable(hits, func(i, j int) bool { return hits[i].rank < hits[j].rank })
	out := make([]Snippet, 0, len(hits))
	for _, h := range hits {
		out = append(out, h.snippet)
	}
	return out
}
