package scaffold

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/spf13/afero"
)

func TestPlan_EmptyRoot(t *testing.T) {
	fsys := &recordingFs{Fs: afero.NewMemMapFs()}

	plan, err := New(fsys).Plan([]string{"/ws"})
	if err != nil {
		t.Fatalf("Plan() error: %v", err)
	}
	if writes := fsys.Writes(); len(writes) != 0 {
		t.Errorf("Plan() wrote to disk: %v", writes)
	}
	if len(plan.Changes) != len(Folders)+2 {
		t.Fatalf("len(Changes) = %d, want %d", len(plan.Changes), len(Folders)+2)
	}
	for _, c := range plan.Changes {
		if c.Action != ActionCreate {
			t.Errorf("%s action = %q, want %q", c.Path, c.Action, ActionCreate)
		}
	}
	if plan.Overwrites() != 0 {
		t.Errorf("Overwrites() = %d, want 0", plan.Overwrites())
	}
}

func TestPlan_NoWorkspace(t *testing.T) {
	_, err := New(afero.NewMemMapFs()).Plan(nil)
	if !errors.Is(err, ErrNoWorkspaceOpen) {
		t.Fatalf("Plan() error = %v, want ErrNoWorkspaceOpen", err)
	}
}

func TestPlan_ShowsOverwriteDiff(t *testing.T) {
	fsys := afero.NewMemMapFs()
	if err := afero.WriteFile(fsys, "/ws/src/app.js", []byte("console.log('mine');\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	plan, err := New(fsys).Plan([]string{"/ws"})
	if err != nil {
		t.Fatalf("Plan() error: %v", err)
	}

	var app *Change
	for i := range plan.Changes {
		if plan.Changes[i].Path == "src/app.js" {
			app = &plan.Changes[i]
		}
	}
	if app == nil {
		t.Fatal("no change for src/app.js")
	}
	if app.Action != ActionOverwrite {
		t.Errorf("action = %q, want %q", app.Action, ActionOverwrite)
	}
	for _, want := range []string{"--- a/src/app.js", "+++ b/src/app.js", "-console.log('mine');", "+import express from 'express';"} {
		if !strings.Contains(app.Diff, want) {
			t.Errorf("diff missing %q:\n%s", want, app.Diff)
		}
	}
	if plan.Overwrites() != 1 {
		t.Errorf("Overwrites() = %d, want 1", plan.Overwrites())
	}
}

func TestPlan_AfterCreateKeepsEverything(t *testing.T) {
	fsys := afero.NewMemMapFs()
	s := New(fsys)
	if _, err := s.Create(context.Background(), []string{"/ws"}); err != nil {
		t.Fatalf("Create() error: %v", err)
	}

	plan, err := s.Plan([]string{"/ws"})
	if err != nil {
		t.Fatalf("Plan() error: %v", err)
	}
	for _, c := range plan.Changes {
		if c.Action != ActionKeep {
			t.Errorf("%s action = %q, want %q", c.Path, c.Action, ActionKeep)
		}
		if c.Diff != "" {
			t.Errorf("%s has unexpected diff", c.Path)
		}
	}
}

func TestInspect(t *testing.T) {
	fsys := afero.NewMemMapFs()
	s := New(fsys)
	if _, err := s.Create(context.Background(), []string{"/ws"}); err != nil {
		t.Fatalf("Create() error: %v", err)
	}
	if err := fsys.RemoveAll("/ws/src/utils"); err != nil {
		t.Fatal(err)
	}
	if err := afero.WriteFile(fsys, "/ws/src/package.json", []byte("{}\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := fsys.Remove("/ws/src/models"); err != nil {
		t.Fatal(err)
	}
	if err := afero.WriteFile(fsys, "/ws/src/models", []byte("not a folder"), 0o644); err != nil {
		t.Fatal(err)
	}

	artifacts, err := s.Inspect("/ws")
	if err != nil {
		t.Fatalf("Inspect() error: %v", err)
	}

	want := map[string]State{
		"src/controllers":  StatePresent,
		"src/routes":       StatePresent,
		"src/services":     StatePresent,
		"src/models":       StateConflict,
		"src/middlewares":  StatePresent,
		"src/utils":        StateMissing,
		"src/package.json": StateModified,
		"src/app.js":       StatePresent,
	}
	if len(artifacts) != len(want) {
		t.Fatalf("len(artifacts) = %d, want %d", len(artifacts), len(want))
	}
	for _, a := range artifacts {
		if a.State != want[a.Path] {
			t.Errorf("%s state = %q, want %q", a.Path, a.State, want[a.Path])
		}
	}
}

func TestFiles(t *testing.T) {
	files := Files()
	if len(files) != 2 {
		t.Fatalf("len(Files()) = %d, want 2", len(files))
	}
	if files[0].Path != "src/package.json" || files[1].Path != "src/app.js" {
		t.Errorf("file order = %s, %s", files[0].Path, files[1].Path)
	}
	if string(files[1].Content) != wantAppJS {
		t.Errorf("app.js template = %q", files[1].Content)
	}
	if _, ok := FileContent("src/missing.js"); ok {
		t.Error("FileContent() found a file outside the layout")
	}
}
