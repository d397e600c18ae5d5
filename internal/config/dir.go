// Package config locates the per-user configuration directory for nodejs-snippets.
package config

import (
	"os"
	"path/filepath"
	"runtime"
)

// AppName is the directory name used under the platform config root.
const AppName = "nodejs-snippets"

// EnvConfigHome overrides the configuration directory when set.
const EnvConfigHome = "NODEJS_SNIPPETS_CONFIG_HOME"

// Dir returns the configuration directory. It holds the global env file and
// the global snippets.yaml override.
//
// Resolution:
//   - $NODEJS_SNIPPETS_CONFIG_HOME if set
//   - $XDG_CONFIG_HOME/nodejs-snippets if set
//   - %AppData%/nodejs-snippets on Windows
//   - ~/.config/nodejs-snippets elsewhere
//
// Returns "" when no home directory can be determined.
func Dir() string {
	if dir := os.Getenv(EnvConfigHome); dir != "" {
		return dir
	}

	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}

	if runtime.GOOS == "windows" {
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, AppName)
		}
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", AppName)
}

// ProjectDir returns the project-local override directory under root.
func ProjectDir(root string) string {
	return filepath.Join(root, ".nodejs-snippets")
}

// EnvFiles lists the env files loaded at startup, highest priority first.
// Variables already present in the environment always win.
func EnvFiles() []string {
	files := []string{".env.local", ".env"}
	if dir := Dir(); dir != "" {
		files = append(files, filepath.Join(dir, "env"))
	}
	return files
}
