package scaffold

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"sync"

	"github.com/spf13/afero"
	"golang.org/x/sync/errgroup"
)

// CommandID is the identifier the scaffold command is registered under.
const CommandID = "nodejsSnippets.createApiStructure"

// User-visible notifications. Exactly one is shown per invocation.
const (
	NoWorkspaceMessage = "Please open a folder first"
	SuccessMessage     = "Node.js API structure created successfully"
)

// ErrNoWorkspaceOpen is returned when no workspace root is available.
// Nothing is written in that case.
var ErrNoWorkspaceOpen = errors.New("no workspace folder is open")

// Operations reported in FSError.Op.
const (
	OpMkdir = "mkdir"
	OpWrite = "write"
	OpStat  = "stat"
	OpRead  = "read"
)

// FSError reports a failed directory creation or file write.
// Artifacts created before the failure are left in place.
type FSError struct {
	Op   string
	Path string
	Err  error
}

// Error implements the error interface.
func (e *FSError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

// Unwrap returns the underlying cause.
func (e *FSError) Unwrap() error {
	return e.Err
}

// Outcome classifies the result of a Create call.
type Outcome string

// Outcomes of a scaffold invocation.
const (
	OutcomeSuccess          Outcome = "success"
	OutcomeNoWorkspaceOpen  Outcome = "no_workspace_open"
	OutcomeFileSystemFailed Outcome = "file_system_failed"
)

// Classify maps an error returned by Create to its Outcome.
// Any error other than ErrNoWorkspaceOpen counts as a file-system failure.
func Classify(err error) Outcome {
	switch {
	case err == nil:
		return OutcomeSuccess
	case errors.Is(err, ErrNoWorkspaceOpen):
		return OutcomeNoWorkspaceOpen
	default:
		return OutcomeFileSystemFailed
	}
}

// Kind distinguishes folders from files.
type Kind string

// Artifact kinds.
const (
	KindDir  Kind = "dir"
	KindFile Kind = "file"
)

// Step statuses reported by Create.
const (
	StatusCreated     = "created"
	StatusExists      = "exists"
	StatusWritten     = "written"
	StatusOverwritten = "overwritten"
)

// Step records one completed artifact of a Create call.
type Step struct {
	Path   string `json:"path"`
	Kind   Kind   `json:"kind"`
	Status string `json:"status"`
}

// Result describes a Create call. On failure it lists only the steps that
// completed before the error.
type Result struct {
	Root  string `json:"root"`
	Steps []Step `json:"steps"`
}

// Scaffolder writes the fixed layout. Calls on the same Scaffolder are
// serialized; separate processes are not coordinated.
type Scaffolder struct {
	mu sync.Mutex
	fs afero.Fs
}

// New creates a Scaffolder backed by fsys.
// If fsys is nil, the OS file system is used.
func New(fsys afero.Fs) *Scaffolder {
	if fsys == nil {
		fsys = afero.NewOsFs()
	}
	return &Scaffolder{fs: fsys}
}

// selectRoot applies the root selection policy: the first root wins.
func selectRoot(roots []string) (string, error) {
	if len(roots) == 0 || roots[0] == "" {
		return "", ErrNoWorkspaceOpen
	}
	return roots[0], nil
}

// Create builds the folder layout and writes the boilerplate files under the
// first of roots. Folders are created before files, and package.json is
// written before app.js. Existing files are overwritten.
func (s *Scaffolder) Create(ctx context.Context, roots []string) (*Result, error) {
	root, err := selectRoot(roots)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	result := &Result{Root: root}

	steps, err := s.createFolders(ctx, root)
	result.Steps = append(result.Steps, steps...)
	if err != nil {
		return result, err
	}

	for _, file := range Files() {
		step, err := s.writeFile(ctx, root, file)
		if err != nil {
			return result, err
		}
		result.Steps = append(result.Steps, step)
	}

	return result, nil
}

// createFolders creates every folder concurrently and reports them in listed order.
func (s *Scaffolder) createFolders(ctx context.Context, root string) ([]Step, error) {
	steps := make([]Step, len(Folders))
	group, gctx := errgroup.WithContext(ctx)

	for i, rel := range Folders {
		group.Go(func() error {
			target := resolve(root, rel)
			if err := gctx.Err(); err != nil {
				return &FSError{Op: OpMkdir, Path: target, Err: err}
			}

			status := StatusCreated
			if info, err := s.fs.Stat(target); err == nil && info.IsDir() {
				status = StatusExists
			}

			if err := s.fs.MkdirAll(target, 0o755); err != nil {
				return &FSError{Op: OpMkdir, Path: target, Err: err}
			}
			steps[i] = Step{Path: rel, Kind: KindDir, Status: status}
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return completedSteps(steps), err
	}
	return steps, nil
}

// writeFile writes one boilerplate file, replacing any existing content.
func (s *Scaffolder) writeFile(ctx context.Context, root string, file File) (Step, error) {
	target := resolve(root, file.Path)
	if err := ctx.Err(); err != nil {
		return Step{}, &FSError{Op: OpWrite, Path: target, Err: err}
	}

	status := StatusWritten
	if info, err := s.fs.Stat(target); err == nil && !info.IsDir() {
		status = StatusOverwritten
	}

	// #nosec G306 -- project sources are meant to be world-readable
	if err := afero.WriteFile(s.fs, target, file.Content, 0o644); err != nil {
		return Step{}, &FSError{Op: OpWrite, Path: target, Err: err}
	}
	return Step{Path: file.Path, Kind: KindFile, Status: status}, nil
}

// completedSteps drops the zero entries left by folders that never finished.
func completedSteps(steps []Step) []Step {
	done := make([]Step, 0, len(steps))
	for _, step := range steps {
		if step.Path != "" {
			done = append(done, step)
		}
	}
	return done
}

// isNotExist reports whether err means the path is absent.
func isNotExist(err error) bool {
	return errors.Is(err, fs.ErrNotExist)
}
