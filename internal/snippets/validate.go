package snippets

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"gopkg.in/yaml.v3"
)

//go:embed snippets.schema.json
var schemaBytes []byte

var (
	compiledSchema *jsonschema.Schema
	compileOnce    sync.Once
	compileErr     error
	printer        = message.NewPrinter(language.English)
)

// Issue is a single schema violation in a catalog file.
type Issue struct {
	Path    string // instance location, e.g. "/snippets/2/prefix"
	Message string
}

func (i Issue) String() string {
	if i.Path == "" {
		return i.Message
	}
	return i.Path + ": " + i.Message
}

// ValidationError lists every issue found in a catalog file.
type ValidationError struct {
	Source string
	Issues []Issue
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Issues))
	for _, issue := range e.Issues {
		parts = append(parts, issue.String())
	}
	return fmt.Sprintf("invalid snippet catalog %s: %s", e.Source, strings.Join(parts, "; "))
}

// getSchema compiles the embedded catalog schema once.
func getSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(schemaBytes))
		if err != nil {
			compileErr = fmt.Errorf("unmarshaling schema JSON: %w", err)
			return
		}

		c := jsonschema.NewCompiler()
		if err := c.AddResource("snippets.schema.json", doc); err != nil {
			compileErr = fmt.Errorf("adding schema resource: %w", err)
			return
		}
		compiledSchema, compileErr = c.Compile("snippets.schema.json")
		if compileErr != nil {
			compileErr = fmt.Errorf("compiling schema: %w", compileErr)
		}
	})
	return compiledSchema, compileErr
}

// Validate checks raw catalog YAML against the schema and rejects duplicate
// prefixes. It returns a *ValidationError for content problems and a plain
// error for YAML syntax or schema compilation failures.
func Validate(source string, data []byte) error {
	schema, err := getSchema()
	if err != nil {
		return fmt.Errorf("loading schema: %w", err)
	}

	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("parsing %s: %w", source, err)
	}

	jsonData, err := json.Marshal(normalizeYAML(raw))
	if err != nil {
		return fmt.Errorf("converting %s to JSON: %w", source, err)
	}
	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(jsonData))
	if err != nil {
		return fmt.Errorf("preparing %s for validation: %w", source, err)
	}

	if err := schema.Validate(inst); err != nil {
		var ve *jsonschema.ValidationError
		if !errors.As(err, &ve) {
			return fmt.Errorf("validating %s: %w", source, err)
		}
		return &ValidationError{Source: source, Issues: leafIssues(ve)}
	}

	return checkDuplicatePrefixes(source, data)
}

// checkDuplicatePrefixes rejects a file that defines the same prefix twice.
func checkDuplicatePrefixes(source string, data []byte) error {
	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("parsing %s: %w", source, err)
	}

	seen := make(map[string]int, len(file.Snippets))
	var issues []Issue
	for i, s := range file.Snippets {
		if first, dup := seen[s.Prefix]; dup {
			issues = append(issues, Issue{
				Path:    fmt.Sprintf("/snippets/%d/prefix", i),
				Message: fmt.Sprintf("duplicate prefix %q (first defined at /snippets/%d)", s.Prefix, first),
			})
			continue
		}
		seen[s.Prefix] = i
	}
	if len(issues) > 0 {
		return &ValidationError{Source: source, Issues: issues}
	}
	return nil
}

// leafIssues flattens the validation error tree to its leaves.
func leafIssues(ve *jsonschema.ValidationError) []Issue {
	var issues []Issue
	var walk func(*jsonschema.ValidationError)
	walk = func(e *jsonschema.ValidationError) {
		if len(e.Causes) == 0 {
			path := ""
			if len(e.InstanceLocation) > 0 {
				path = "/" + strings.Join(e.InstanceLocation, "/")
			}
			issues = append(issues, Issue{Path: path, Message: leafMessage(e)})
			return
		}
		for _, cause := range e.Causes {
			walk(cause)
		}
	}
	walk(ve)

	sort.SliceStable(issues, func(i, j int) bool { return issues[i].Path < issues[j].Path })
	return issues
}

// leafMessage renders the failing keyword in English.
func leafMessage(e *jsonschema.ValidationError) string {
	if e.ErrorKind == nil {
		return "invalid value"
	}
	return e.ErrorKind.LocalizedString(printer)
}

// normalizeYAML converts map[any]any values into JSON-compatible maps.
func normalizeYAML(v any) any {
	switch val := v.(type) {
	case map[string]any:
		for k, item := range val {
			val[k] = normalizeYAML(item)
		}
		return val
	case map[any]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			out[fmt.Sprint(k)] = normalizeYAML(item)
		}
		return out
	case []any:
		for i, item := range val {
			val[i] = normalizeYAML(item)
		}
		return val
	default:
		return v
	}
}
