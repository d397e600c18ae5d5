package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"strings"
	"testing"

	"github.com/gorewood/nodejs-snippets/internal/config"
	"github.com/gorewood/nodejs-snippets/internal/output"
	"github.com/gorewood/nodejs-snippets/internal/workspace"
)

// isolateEnv keeps the developer's workspace folders and global config out of a test.
func isolateEnv(t *testing.T) {
	t.Helper()
	t.Setenv(workspace.EnvFolders, "")
	t.Setenv(config.EnvConfigHome, t.TempDir())
}

// execute runs the root command with args and returns stdout and stderr.
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer

	cmd := newRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

// executeWithFang runs args through fang the way main does.
func executeWithFang(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer

	cmd := newRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)

	err := executeRoot(context.Background(), cmd)
	return stdout.String(), stderr.String(), err
}

// decodeJSON parses command output into a map.
func decodeJSON(t *testing.T, out string) map[string]any {
	t.Helper()
	var result map[string]any
	if err := json.Unmarshal([]byte(out), &result); err != nil {
		t.Fatalf("failed to parse JSON output: %v\nOutput: %s", err, out)
	}
	return result
}

// runInDir runs testFunc with the working directory set to dir.
func runInDir(t *testing.T, dir string, testFunc func()) {
	t.Helper()
	oldDir, err := os.Getwd()
	if err != nil {
		t.Fatalf("failed to get working dir: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("failed to chdir to %s: %v", dir, err)
	}
	defer func() {
		if err := os.Chdir(oldDir); err != nil {
			t.Errorf("failed to restore dir: %v", err)
		}
	}()
	testFunc()
}

func TestRootCommand_Version(t *testing.T) {
	isolateEnv(t)
	version = "1.2.3"

	stdout, _, err := execute(t, "--version")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if !strings.Contains(stdout, "1.2.3") {
		t.Errorf("--version output should contain version: %q", stdout)
	}
	if !strings.Contains(stdout, "nodejs-snippets") {
		t.Errorf("--version output should contain 'nodejs-snippets': %q", stdout)
	}
}

func TestRootCommand_Help(t *testing.T) {
	isolateEnv(t)

	stdout, _, err := execute(t, "--help")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	for _, expected := range []string{
		"nodejs-snippets",
		"Usage:",
		"create-api-structure",
		"snippets",
		"serve",
		"setup",
		"--json",
		"--color",
	} {
		if !strings.Contains(stdout, expected) {
			t.Errorf("--help output should contain %q: %q", expected, stdout)
		}
	}
}

func TestRootCommand_JSONWithoutSubcommand(t *testing.T) {
	isolateEnv(t)

	stdout, _, err := execute(t, "--json")
	if err == nil {
		t.Fatal("expected error when no subcommand is given with --json")
	}
	if code := output.GetExitCode(err); code != output.ExitUserError {
		t.Errorf("exit code = %d, want %d", code, output.ExitUserError)
	}

	result := decodeJSON(t, stdout)
	if _, ok := result["error"]; !ok {
		t.Errorf("missing error field: %v", result)
	}
}

func TestRootCommand_LoadsEnvFile(t *testing.T) {
	isolateEnv(t)
	root := t.TempDir()

	envDir := t.TempDir()
	t.Setenv(config.EnvConfigHome, envDir)
	if err := os.WriteFile(envDir+"/env", []byte(workspace.EnvFolders+"="+root+"\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	// godotenv only fills variables that are not set at all.
	if err := os.Unsetenv(workspace.EnvFolders); err != nil {
		t.Fatal(err)
	}

	stdout, _, err := execute(t, "create-api-structure", "--json")
	if err != nil {
		t.Fatalf("Execute() error = %v\n%s", err, stdout)
	}
	if got := decodeJSON(t, stdout)["root"]; got != root {
		t.Errorf("root = %v, want %s from the global env file", got, root)
	}
	_ = os.Unsetenv(workspace.EnvFolders)
}

func TestBuildVersion(t *testing.T) {
	oldVersion, oldCommit, oldDate := version, commit, date
	t.Cleanup(func() { version, commit, date = oldVersion, oldCommit, oldDate })

	version, commit, date = "0.3.0", "none", "unknown"
	if got := buildVersion(); got != "0.3.0" {
		t.Errorf("buildVersion() = %q", got)
	}

	commit, date = "abcdef0123456", "2026-01-02"
	if got := buildVersion(); got != "0.3.0 (abcdef0, 2026-01-02)" {
		t.Errorf("buildVersion() = %q", got)
	}
}

func TestExecuteRoot_SingleNotification(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{name: "human", args: []string{"create-api-structure"}},
		{name: "json", args: []string{"create-api-structure", "--json"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolateEnv(t)

			stdout, stderr, err := executeWithFang(t, tt.args...)
			if code := output.GetExitCode(err); code != output.ExitUserError {
				t.Fatalf("exit code = %d, want %d", code, output.ExitUserError)
			}
			if n := strings.Count(stdout+stderr, "Please open a folder first"); n != 1 {
				t.Errorf("notifications = %d, want 1\nstdout: %q\nstderr: %q", n, stdout, stderr)
			}
		})
	}
}

func TestExecuteRoot_JSONErrorKeepsStderrClean(t *testing.T) {
	isolateEnv(t)

	stdout, stderr, err := executeWithFang(t, "snippets", "show", "nope", "--root", t.TempDir(), "--json")
	if err == nil {
		t.Fatal("expected error")
	}
	if stderr != "" {
		t.Errorf("stderr = %q, want empty", stderr)
	}
	if _, ok := decodeJSON(t, stdout)["error"]; !ok {
		t.Errorf("missing error field: %s", stdout)
	}
}

func TestExecuteRoot_ReportsCobraErrors(t *testing.T) {
	isolateEnv(t)

	_, stderr, err := executeWithFang(t, "status", "--bogus")
	if err == nil {
		t.Fatal("expected error for an unknown flag")
	}
	if !strings.Contains(stderr, "--bogus") {
		t.Errorf("unknown flag should still be reported, stderr = %q", stderr)
	}
}
