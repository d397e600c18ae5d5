// Package workspace resolves the list of open workspace roots.
//
// The scaffolder never looks roots up on its own; the host boundary builds the
// list here from command-line flags, a .code-workspace file, the environment,
// or the file:// roots an MCP client advertises.
package workspace

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/tailscale/hujson"
)

// EnvFolders names the environment variable holding open workspace folders,
// separated by the OS path-list separator.
const EnvFolders = "NODEJS_SNIPPETS_WORKSPACE_FOLDERS"

// Sources holds every place roots may come from. The first non-empty source wins.
type Sources struct {
	Roots         []string // explicit --root values
	WorkspaceFile string   // path to a .code-workspace file
	Env           string   // value of EnvFolders
}

// Resolve returns the open workspace roots in order, made absolute and
// de-duplicated. An empty result means no folder is open.
func Resolve(src Sources) ([]string, error) {
	if len(src.Roots) > 0 {
		return normalize(src.Roots, "")
	}

	if src.WorkspaceFile != "" {
		folders, err := ReadWorkspaceFile(src.WorkspaceFile)
		if err != nil {
			return nil, err
		}
		return normalize(folders, filepath.Dir(src.WorkspaceFile))
	}

	if src.Env != "" {
		return normalize(filepath.SplitList(src.Env), "")
	}

	return nil, nil
}

// FromEnv returns Sources populated from the process environment only.
func FromEnv() Sources {
	return Sources{Env: os.Getenv(EnvFolders)}
}

// workspaceFile is the subset of a .code-workspace file this package reads.
type workspaceFile struct {
	Folders []struct {
		Path string `json:"path"`
		URI  string `json:"uri"`
		Name string `json:"name"`
	} `json:"folders"`
}

// ReadWorkspaceFile returns the folder paths listed in a .code-workspace file,
// in file order. Comments and trailing commas are accepted. Relative paths
// are returned as written; Resolve anchors them to the file's directory.
func ReadWorkspaceFile(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading workspace file %s: %w", path, err)
	}

	standard, err := hujson.Standardize(data)
	if err != nil {
		return nil, fmt.Errorf("parsing workspace file %s: %w", path, err)
	}

	var ws workspaceFile
	if err := json.Unmarshal(standard, &ws); err != nil {
		return nil, fmt.Errorf("decoding workspace file %s: %w", path, err)
	}

	folders := make([]string, 0, len(ws.Folders))
	for _, f := range ws.Folders {
		switch {
		case f.Path != "":
			folders = append(folders, f.Path)
		case f.URI != "":
			if p, ok := PathFromURI(f.URI); ok {
				folders = append(folders, p)
			}
		}
	}
	return folders, nil
}

// FromURIs converts client root URIs to paths, skipping anything that is
// not a file:// URI. Order is preserved.
func FromURIs(uris []string) []string {
	paths := make([]string, 0, len(uris))
	for _, uri := range uris {
		if p, ok := PathFromURI(uri); ok {
			paths = append(paths, p)
		}
	}
	roots, _ := normalize(paths, "")
	return roots
}

// PathFromURI converts a file:// URI to a local path.
func PathFromURI(raw string) (string, bool) {
	u, err := url.Parse(raw)
	if err != nil || u.Scheme != "file" {
		return "", false
	}

	p := u.Path
	if runtime.GOOS == "windows" {
		// file:///C:/dir parses to /C:/dir
		p = strings.TrimPrefix(p, "/")
		if u.Host != "" && u.Host != "localhost" {
			p = `\\` + u.Host + filepath.FromSlash("/"+p)
		}
	}
	if p == "" {
		return "", false
	}
	return filepath.FromSlash(p), true
}

// normalize makes roots absolute against base (or the working directory),
// drops blanks, and removes duplicates keeping the first occurrence.
func normalize(roots []string, base string) ([]string, error) {
	seen := make(map[string]bool, len(roots))
	out := make([]string, 0, len(roots))

	for _, root := range roots {
		root = strings.TrimSpace(root)
		if root == "" {
			continue
		}
		if !filepath.IsAbs(root) && base != "" {
			root = filepath.Join(base, root)
		}
		abs, err := filepath.Abs(root)
		if err != nil {
			return nil, fmt.Errorf("resolving workspace root %s: %w", root, err)
		}
		if seen[abs] {
			continue
		}
		seen[abs] = true
		out = append(out, abs)
	}
	return out, nil
}
