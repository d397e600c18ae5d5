package agent

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
	"github.com/tailscale/hujson"
)

// jsonClient keeps its servers in an object under serversKey.
type jsonClient struct {
	name        string
	displayName string
	projectFile string // relative to the workspace root; empty if unsupported
	globalFile  string // relative to the home directory; empty if unsupported
	serversKey  string
	typed       bool // entries carry "type": "stdio"
}

func init() {
	Register(&jsonClient{
		name:        "claude",
		displayName: "Claude Code",
		projectFile: ".mcp.json",
		globalFile:  ".claude.json",
		serversKey:  "mcpServers",
	})
	Register(&jsonClient{
		name:        "cursor",
		displayName: "Cursor",
		projectFile: filepath.Join(".cursor", "mcp.json"),
		globalFile:  filepath.Join(".cursor", "mcp.json"),
		serversKey:  "mcpServers",
	})
	Register(&jsonClient{
		name:        "vscode",
		displayName: "VS Code",
		projectFile: filepath.Join(".vscode", "mcp.json"),
		serversKey:  "servers",
		typed:       true,
	})
}

func (c *jsonClient) Name() string        { return c.name }
func (c *jsonClient) DisplayName() string { return c.displayName }

func (c *jsonClient) ConfigPath(env Env, scope Scope) (string, error) {
	switch {
	case scope == ScopeProject && c.projectFile != "":
		if env.Root == "" {
			return "", errors.New("no workspace folder for project scope")
		}
		return filepath.Join(env.Root, c.projectFile), nil
	case scope == ScopeGlobal && c.globalFile != "":
		if env.Home == "" {
			return "", errors.New("no home directory for global scope")
		}
		return filepath.Join(env.Home, c.globalFile), nil
	default:
		return "", fmt.Errorf("%s: %w: %s", c.displayName, ErrScopeUnsupported, scope)
	}
}

func (c *jsonClient) Check(env Env, scope Scope) (bool, error) {
	path, err := c.ConfigPath(env, scope)
	if err != nil {
		return false, err
	}
	value, exists, err := readConfig(env.Fs, path)
	if err != nil || !exists {
		return false, err
	}
	return value.Find(c.entryPointer()) != nil, nil
}

func (c *jsonClient) Install(env Env, scope Scope) (string, error) {
	path, err := c.ConfigPath(env, scope)
	if err != nil {
		return "", err
	}
	value, exists, err := readConfig(env.Fs, path)
	if err != nil {
		return "", err
	}
	// Only a file with content has a layout to keep.
	fresh := !exists || isEmptyObject(value)

	entry := c.entry(env)
	var ops []patchOp
	if value.Find("/"+c.serversKey) == nil {
		ops = append(ops, patchOp{Op: "add", Path: "/" + c.serversKey, Value: map[string]any{}})
	}
	ops = append(ops, patchOp{Op: "add", Path: c.entryPointer(), Value: entry})
	if err := applyPatch(&value, ops); err != nil {
		return "", fmt.Errorf("updating %s: %w", path, err)
	}

	if fresh {
		value.Format()
	} else if err := c.layoutEntry(&value, entry); err != nil {
		return "", fmt.Errorf("updating %s: %w", path, err)
	}

	if err := env.Fs.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("creating %s: %w", filepath.Dir(path), err)
	}
	if err := writeConfig(env.Fs, path, value); err != nil {
		return "", err
	}
	return path, nil
}

func (c *jsonClient) Remove(env Env, scope Scope) (string, error) {
	path, err := c.ConfigPath(env, scope)
	if err != nil {
		return "", err
	}
	value, exists, err := readConfig(env.Fs, path)
	if err != nil || !exists {
		return path, err
	}
	if value.Find(c.entryPointer()) == nil {
		return path, nil
	}

	if err := applyPatch(&value, []patchOp{{Op: "remove", Path: c.entryPointer()}}); err != nil {
		return "", fmt.Errorf("updating %s: %w", path, err)
	}
	return path, writeConfig(env.Fs, path, value)
}

func (c *jsonClient) entryPointer() string {
	return "/" + c.serversKey + "/" + ServerName
}

// layoutEntry indents the patched entry like the members around it. The
// rest of the file is left byte for byte as it was read. Files laid out on
// a single line keep the compact patched text.
func (c *jsonClient) layoutEntry(value *hujson.Value, entry map[string]any) error {
	root, ok := value.Value.(*hujson.Object)
	if !ok {
		return nil
	}
	servers := value.Find("/" + c.serversKey)
	if servers == nil {
		return nil
	}
	obj, ok := servers.Value.(*hujson.Object)
	if !ok {
		return nil
	}

	if ind, ok := indentOf(obj); ok {
		return placeMember(obj, ServerName, entry, ind)
	}
	if len(obj.Members) != 1 {
		return nil
	}
	// The entry is alone in its object: lay out the whole servers member.
	if ind, ok := indentOf(root); ok {
		return placeMember(root, c.serversKey, map[string]any{ServerName: entry}, ind)
	}
	return nil
}

func (c *jsonClient) entry(env Env) map[string]any {
	entry := map[string]any{
		"command": env.Command,
		"args":    env.Args,
	}
	if env.Args == nil {
		entry["args"] = []string{}
	}
	if c.typed {
		entry["type"] = "stdio"
	}
	return entry
}

// patchOp is one RFC 6902 operation.
type patchOp struct {
	Op    string `json:"op"`
	Path  string `json:"path"`
	Value any    `json:"value,omitempty"`
}

// indentation is the whitespace layout of an object's members.
type indentation struct {
	member string // before each member name
	unit   string // one nesting level
}

// indentOf reads the layout from the first member of obj that starts on its
// own line.
func indentOf(obj *hujson.Object) (indentation, bool) {
	closing, ok := lastLine(obj.AfterExtra)
	if !ok {
		return indentation{}, false
	}
	for _, m := range obj.Members {
		member, ok := lastLine(m.Name.BeforeExtra)
		if !ok {
			continue
		}
		unit, found := strings.CutPrefix(member, closing)
		if !found || unit == "" {
			return indentation{}, false
		}
		return indentation{member: member, unit: unit}, true
	}
	return indentation{}, false
}

// lastLine returns the whitespace after the final newline of extra.
func lastLine(extra hujson.Extra) (string, bool) {
	i := bytes.LastIndexByte(extra, '\n')
	if i < 0 {
		return "", false
	}
	tail := string(extra[i+1:])
	if strings.TrimSpace(tail) != "" {
		return "", false
	}
	return tail, true
}

// placeMember puts the member called name on its own line at ind and
// replaces its value with v, indented one level deeper.
func placeMember(obj *hujson.Object, name string, v any, ind indentation) error {
	for i := range obj.Members {
		m := &obj.Members[i]
		if lit, ok := m.Name.Value.(hujson.Literal); !ok || lit.String() != name {
			continue
		}

		data, err := json.MarshalIndent(v, ind.member, ind.unit)
		if err != nil {
			return err
		}
		laidOut, err := hujson.Parse(data)
		if err != nil {
			return err
		}

		switch tail, ok := lastLine(m.Name.BeforeExtra); {
		case !ok:
			m.Name.BeforeExtra = append(m.Name.BeforeExtra, "\n"+ind.member...)
		case tail == "":
			m.Name.BeforeExtra = append(m.Name.BeforeExtra, ind.member...)
		}
		m.Value.BeforeExtra = hujson.Extra(" ")
		m.Value.Value = laidOut.Value
		return nil
	}
	return nil
}

func isEmptyObject(value hujson.Value) bool {
	obj, ok := value.Value.(*hujson.Object)
	return ok && len(obj.Members) == 0
}

func applyPatch(value *hujson.Value, ops []patchOp) error {
	patch, err := json.Marshal(ops)
	if err != nil {
		return err
	}
	return value.Patch(patch)
}

// readConfig parses the file at path. A missing or blank file reads as an empty object.
func readConfig(fsys afero.Fs, path string) (hujson.Value, bool, error) {
	data, err := afero.ReadFile(fsys, path)
	if errors.Is(err, fs.ErrNotExist) {
		value, _ := hujson.Parse([]byte("{}"))
		return value, false, nil
	}
	if err != nil {
		return hujson.Value{}, false, fmt.Errorf("reading %s: %w", path, err)
	}
	if strings.TrimSpace(string(data)) == "" {
		data = []byte("{}")
	}

	value, err := hujson.Parse(data)
	if err != nil {
		return hujson.Value{}, true, fmt.Errorf("parsing %s: %w", path, err)
	}
	if _, ok := value.Value.(*hujson.Object); !ok {
		return hujson.Value{}, true, fmt.Errorf("parsing %s: top-level value is not an object", path)
	}
	return value, true, nil
}

func writeConfig(fsys afero.Fs, path string, value hujson.Value) error {
	// #nosec G306 -- client config, not a secret
	if err := afero.WriteFile(fsys, path, value.Pack(), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
