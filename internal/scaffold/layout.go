package scaffold

import (
	"embed"
	"path"
	"path/filepath"
)

//go:embed templates/app.js templates/package.json
var templateFS embed.FS

// Folders lists the directories created under the workspace root, in creation order.
var Folders = []string{
	"src/controllers",
	"src/routes",
	"src/services",
	"src/models",
	"src/middlewares",
	"src/utils",
}

// File is a boilerplate file written under the workspace root.
type File struct {
	Path    string // slash-separated, relative to the root
	Content []byte
}

// fileTemplates maps each output path to its embedded template, in write order.
var fileTemplates = []struct {
	path     string
	template string
}{
	{path: "src/package.json", template: "templates/package.json"},
	{path: "src/app.js", template: "templates/app.js"},
}

// Files returns the boilerplate files in write order: package.json, then app.js.
func Files() []File {
	files := make([]File, 0, len(fileTemplates))
	for _, ft := range fileTemplates {
		data, err := templateFS.ReadFile(ft.template)
		if err != nil {
			// The embed directive guarantees presence.
			panic("scaffold: missing embedded template " + ft.template)
		}
		files = append(files, File{Path: ft.path, Content: data})
	}
	return files
}

// FileContent returns the template content for a relative output path.
func FileContent(rel string) ([]byte, bool) {
	rel = path.Clean(filepath.ToSlash(rel))
	for _, f := range Files() {
		if f.Path == rel {
			return f.Content, true
		}
	}
	return nil, false
}

// resolve joins a slash-separated relative path onto root.
func resolve(root, rel string) string {
	return filepath.Join(root, filepath.FromSlash(rel))
}
