package scaffold

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/spf13/afero"
)

const wantAppJS = "import express from 'express';\nconst app = express();\n\napp.use(express.json());\n\n\n"

// recordingFs records every mutating call made through it.
type recordingFs struct {
	afero.Fs

	mu     sync.Mutex
	writes []string
}

func (r *recordingFs) record(op, name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.writes = append(r.writes, op+" "+filepath.ToSlash(name))
}

func (r *recordingFs) Mkdir(name string, perm os.FileMode) error {
	r.record("mkdir", name)
	return r.Fs.Mkdir(name, perm)
}

func (r *recordingFs) MkdirAll(name string, perm os.FileMode) error {
	r.record("mkdir", name)
	return r.Fs.MkdirAll(name, perm)
}

func (r *recordingFs) Create(name string) (afero.File, error) {
	r.record("write", name)
	return r.Fs.Create(name)
}

func (r *recordingFs) OpenFile(name string, flag int, perm os.FileMode) (afero.File, error) {
	if flag&(os.O_WRONLY|os.O_RDWR|os.O_CREATE) != 0 {
		r.record("write", name)
	}
	return r.Fs.OpenFile(name, flag, perm)
}

func (r *recordingFs) Writes() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.writes...)
}

// failingWriteFs fails writes to a single path.
type failingWriteFs struct {
	afero.Fs
	failPath string
}

func (f *failingWriteFs) OpenFile(name string, flag int, perm os.FileMode) (afero.File, error) {
	if filepath.ToSlash(name) == f.failPath && flag&os.O_CREATE != 0 {
		return nil, &os.PathError{Op: "open", Path: name, Err: errors.New("no space left on device")}
	}
	return f.Fs.OpenFile(name, flag, perm)
}

func TestCreate_NoWorkspace(t *testing.T) {
	tests := []struct {
		name  string
		roots []string
	}{
		{name: "nil roots", roots: nil},
		{name: "empty roots", roots: []string{}},
		{name: "blank first root", roots: []string{""}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fsys := &recordingFs{Fs: afero.NewMemMapFs()}
			result, err := New(fsys).Create(context.Background(), tt.roots)

			if !errors.Is(err, ErrNoWorkspaceOpen) {
				t.Fatalf("Create() error = %v, want ErrNoWorkspaceOpen", err)
			}
			if result != nil {
				t.Errorf("Create() result = %+v, want nil", result)
			}
			if writes := fsys.Writes(); len(writes) != 0 {
				t.Errorf("expected no writes, got %v", writes)
			}
			if got := Classify(err); got != OutcomeNoWorkspaceOpen {
				t.Errorf("Classify() = %q, want %q", got, OutcomeNoWorkspaceOpen)
			}
		})
	}
}

func TestCreate_HappyPath(t *testing.T) {
	fsys := afero.NewMemMapFs()
	root := "/tmp/proj"
	if err := fsys.MkdirAll(root, 0o755); err != nil {
		t.Fatal(err)
	}

	result, err := New(fsys).Create(context.Background(), []string{root})
	if err != nil {
		t.Fatalf("Create() error: %v", err)
	}
	if result.Root != root {
		t.Errorf("Root = %q, want %q", result.Root, root)
	}

	for _, rel := range Folders {
		info, err := fsys.Stat(filepath.Join(root, rel))
		if err != nil || !info.IsDir() {
			t.Errorf("folder %s missing: %v", rel, err)
		}
	}

	app, err := afero.ReadFile(fsys, filepath.Join(root, "src", "app.js"))
	if err != nil {
		t.Fatalf("reading app.js: %v", err)
	}
	if string(app) != wantAppJS {
		t.Errorf("app.js = %q, want %q", app, wantAppJS)
	}

	pkg, err := afero.ReadFile(fsys, filepath.Join(root, "src", "package.json"))
	if err != nil {
		t.Fatalf("reading package.json: %v", err)
	}
	want, _ := FileContent("src/package.json")
	if string(pkg) != string(want) {
		t.Errorf("package.json content mismatch:\n%s", pkg)
	}

	if len(result.Steps) != len(Folders)+2 {
		t.Fatalf("len(Steps) = %d, want %d", len(result.Steps), len(Folders)+2)
	}
	for i, rel := range Folders {
		step := result.Steps[i]
		if step.Path != rel || step.Kind != KindDir || step.Status != StatusCreated {
			t.Errorf("Steps[%d] = %+v, want created dir %s", i, step, rel)
		}
	}
	if got := result.Steps[len(Folders)]; got.Path != "src/package.json" || got.Status != StatusWritten {
		t.Errorf("first file step = %+v, want written src/package.json", got)
	}
	if got := result.Steps[len(Folders)+1]; got.Path != "src/app.js" || got.Status != StatusWritten {
		t.Errorf("second file step = %+v, want written src/app.js", got)
	}
}

func TestCreate_WriteOrder(t *testing.T) {
	fsys := &recordingFs{Fs: afero.NewMemMapFs()}
	if _, err := New(fsys).Create(context.Background(), []string{"/ws"}); err != nil {
		t.Fatalf("Create() error: %v", err)
	}

	writes := fsys.Writes()
	lastMkdir, firstWrite := -1, -1
	pkgIdx, appIdx := -1, -1
	for i, w := range writes {
		switch {
		case strings.HasPrefix(w, "mkdir "):
			lastMkdir = i
		case strings.HasPrefix(w, "write "):
			if firstWrite == -1 {
				firstWrite = i
			}
			if strings.HasSuffix(w, "/src/package.json") {
				pkgIdx = i
			}
			if strings.HasSuffix(w, "/src/app.js") {
				appIdx = i
			}
		}
	}

	if lastMkdir > firstWrite {
		t.Errorf("folders must be created before files: %v", writes)
	}
	if pkgIdx == -1 || appIdx == -1 || pkgIdx > appIdx {
		t.Errorf("package.json must be written before app.js: %v", writes)
	}
	for _, w := range writes {
		path := strings.TrimPrefix(strings.TrimPrefix(w, "mkdir "), "write ")
		if !strings.HasPrefix(path, "/ws/") {
			t.Errorf("write outside root: %s", w)
		}
	}
}

func TestCreate_Idempotent(t *testing.T) {
	root := t.TempDir()
	s := New(nil)

	if _, err := s.Create(context.Background(), []string{root}); err != nil {
		t.Fatalf("first Create() error: %v", err)
	}
	first := snapshotTree(t, root)

	result, err := s.Create(context.Background(), []string{root})
	if err != nil {
		t.Fatalf("second Create() error: %v", err)
	}
	second := snapshotTree(t, root)

	if len(first) != len(second) {
		t.Fatalf("tree changed: %v vs %v", first, second)
	}
	for path, content := range first {
		if second[path] != content {
			t.Errorf("%s changed between runs", path)
		}
	}

	for _, step := range result.Steps {
		switch step.Kind {
		case KindDir:
			if step.Status != StatusExists {
				t.Errorf("dir %s status = %q, want %q", step.Path, step.Status, StatusExists)
			}
		case KindFile:
			if step.Status != StatusOverwritten {
				t.Errorf("file %s status = %q, want %q", step.Path, step.Status, StatusOverwritten)
			}
		}
	}
}

func TestCreate_OverwritesExistingFile(t *testing.T) {
	root := t.TempDir()
	appPath := filepath.Join(root, "src", "app.js")
	if err := os.MkdirAll(filepath.Dir(appPath), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(appPath, []byte("console.log('mine');\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	if _, err := New(nil).Create(context.Background(), []string{root}); err != nil {
		t.Fatalf("Create() error: %v", err)
	}

	got, err := os.ReadFile(appPath)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != wantAppJS {
		t.Errorf("app.js = %q, want template content", got)
	}
}

func TestCreate_MultiRootUsesFirst(t *testing.T) {
	first := t.TempDir()
	second := t.TempDir()

	result, err := New(nil).Create(context.Background(), []string{first, second})
	if err != nil {
		t.Fatalf("Create() error: %v", err)
	}
	if result.Root != first {
		t.Errorf("Root = %q, want %q", result.Root, first)
	}

	if _, err := os.Stat(filepath.Join(first, "src", "app.js")); err != nil {
		t.Errorf("first root not scaffolded: %v", err)
	}
	entries, err := os.ReadDir(second)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("second root touched: %d entries", len(entries))
	}
}

func TestCreate_ConcreteScenario(t *testing.T) {
	fsys := afero.NewMemMapFs()
	if err := fsys.MkdirAll("/tmp/proj", 0o755); err != nil {
		t.Fatal(err)
	}

	if _, err := New(fsys).Create(context.Background(), []string{"/tmp/proj"}); err != nil {
		t.Fatalf("Create() error: %v", err)
	}

	for _, dir := range []string{
		"/tmp/proj/src/controllers",
		"/tmp/proj/src/routes",
		"/tmp/proj/src/services",
		"/tmp/proj/src/models",
		"/tmp/proj/src/middlewares",
		"/tmp/proj/src/utils",
	} {
		if ok, _ := afero.DirExists(fsys, dir); !ok {
			t.Errorf("%s does not exist", dir)
		}
	}
	if ok, _ := afero.Exists(fsys, "/tmp/proj/src/package.json"); !ok {
		t.Error("/tmp/proj/src/package.json does not exist")
	}
	app, _ := afero.ReadFile(fsys, "/tmp/proj/src/app.js")
	if string(app) != wantAppJS {
		t.Errorf("app.js = %q", app)
	}
}

func TestCreate_MkdirFailure(t *testing.T) {
	fsys := afero.NewReadOnlyFs(afero.NewMemMapFs())

	result, err := New(fsys).Create(context.Background(), []string{"/ro"})
	var fsErr *FSError
	if !errors.As(err, &fsErr) {
		t.Fatalf("Create() error = %v, want *FSError", err)
	}
	if fsErr.Op != OpMkdir {
		t.Errorf("Op = %q, want %q", fsErr.Op, OpMkdir)
	}
	if got := Classify(err); got != OutcomeFileSystemFailed {
		t.Errorf("Classify() = %q, want %q", got, OutcomeFileSystemFailed)
	}
	if result == nil || result.Root != "/ro" {
		t.Errorf("result = %+v, want partial result for /ro", result)
	}
}

func TestCreate_PartialWriteIsNotRolledBack(t *testing.T) {
	base := afero.NewMemMapFs()
	fsys := &failingWriteFs{Fs: base, failPath: "/ws/src/app.js"}

	result, err := New(fsys).Create(context.Background(), []string{"/ws"})
	var fsErr *FSError
	if !errors.As(err, &fsErr) {
		t.Fatalf("Create() error = %v, want *FSError", err)
	}
	if fsErr.Op != OpWrite || filepath.ToSlash(fsErr.Path) != "/ws/src/app.js" {
		t.Errorf("FSError = %+v, want write of /ws/src/app.js", fsErr)
	}

	for _, rel := range Folders {
		if ok, _ := afero.DirExists(base, filepath.Join("/ws", rel)); !ok {
			t.Errorf("folder %s was rolled back", rel)
		}
	}
	if ok, _ := afero.Exists(base, "/ws/src/package.json"); !ok {
		t.Error("package.json was rolled back")
	}
	if len(result.Steps) != len(Folders)+1 {
		t.Errorf("len(Steps) = %d, want %d", len(result.Steps), len(Folders)+1)
	}
}

func TestCreate_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	fsys := afero.NewMemMapFs()
	_, err := New(fsys).Create(ctx, []string{"/ws"})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Create() error = %v, want context.Canceled", err)
	}
	if ok, _ := afero.Exists(fsys, "/ws/src/app.js"); ok {
		t.Error("app.js written after cancellation")
	}
}

func TestCreate_ConcurrentInvocations(t *testing.T) {
	fsys := afero.NewMemMapFs()
	s := New(fsys)

	var wg sync.WaitGroup
	errs := make(chan error, 4)
	for range 4 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.Create(context.Background(), []string{"/ws"})
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		if err != nil {
			t.Errorf("Create() error: %v", err)
		}
	}
	app, _ := afero.ReadFile(fsys, "/ws/src/app.js")
	if string(app) != wantAppJS {
		t.Errorf("app.js = %q", app)
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Outcome
	}{
		{"nil", nil, OutcomeSuccess},
		{"no workspace", ErrNoWorkspaceOpen, OutcomeNoWorkspaceOpen},
		{"wrapped no workspace", errors.Join(errors.New("ctx"), ErrNoWorkspaceOpen), OutcomeNoWorkspaceOpen},
		{"fs error", &FSError{Op: OpWrite, Path: "x", Err: os.ErrPermission}, OutcomeFileSystemFailed},
		{"other", errors.New("boom"), OutcomeFileSystemFailed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.err); got != tt.want {
				t.Errorf("Classify() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFSError(t *testing.T) {
	err := &FSError{Op: OpWrite, Path: "/ws/src/app.js", Err: os.ErrPermission}
	if !errors.Is(err, os.ErrPermission) {
		t.Error("FSError should unwrap to its cause")
	}
	if !strings.Contains(err.Error(), "/ws/src/app.js") {
		t.Errorf("Error() = %q, want path", err.Error())
	}
}

// snapshotTree maps every path under root to its content ("<dir>" for folders).
func snapshotTree(t *testing.T, root string) map[string]string {
	t.Helper()
	tree := map[string]string{}
	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, _ := filepath.Rel(root, path)
		if d.IsDir() {
			tree[rel] = "<dir>"
			return nil
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		tree[rel] = string(data)
		return nil
	})
	if err != nil {
		t.Fatalf("walking %s: %v", root, err)
	}
	return tree
}
