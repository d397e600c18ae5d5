package scaffold

import (
	"bytes"

	udiff "github.com/aymanbagabas/go-udiff"
	"github.com/spf13/afero"
)

// State is the on-disk state of one artifact.
type State string

// Artifact states reported by Inspect.
const (
	StatePresent  State = "present"
	StateMissing  State = "missing"
	StateModified State = "modified" // file exists with content other than the template
	StateConflict State = "conflict" // a file where a folder belongs, or the reverse
)

// Artifact describes the state of one scaffold artifact under a root.
type Artifact struct {
	Path  string `json:"path"`
	Kind  Kind   `json:"kind"`
	State State  `json:"state"`
}

// Actions reported by Plan.
const (
	ActionCreate    = "create"
	ActionKeep      = "keep"
	ActionOverwrite = "overwrite"
	ActionBlocked   = "blocked"
)

// Change is one planned action of a dry run.
type Change struct {
	Path   string `json:"path"`
	Kind   Kind   `json:"kind"`
	Action string `json:"action"`
	Diff   string `json:"diff,omitempty"`
}

// Plan is the dry-run counterpart of Result.
type Plan struct {
	Root    string   `json:"root"`
	Changes []Change `json:"changes"`
}

// Overwrites returns the number of files that would lose their current content.
func (p *Plan) Overwrites() int {
	n := 0
	for _, c := range p.Changes {
		if c.Action == ActionOverwrite {
			n++
		}
	}
	return n
}

// Inspect reports the state of every folder and file of the layout under root.
func (s *Scaffolder) Inspect(root string) ([]Artifact, error) {
	if root == "" {
		return nil, ErrNoWorkspaceOpen
	}

	artifacts := make([]Artifact, 0, len(Folders)+len(fileTemplates))
	for _, rel := range Folders {
		state, err := s.folderState(resolve(root, rel))
		if err != nil {
			return nil, err
		}
		artifacts = append(artifacts, Artifact{Path: rel, Kind: KindDir, State: state})
	}

	for _, file := range Files() {
		state, _, err := s.fileState(resolve(root, file.Path), file.Content)
		if err != nil {
			return nil, err
		}
		artifacts = append(artifacts, Artifact{Path: file.Path, Kind: KindFile, State: state})
	}
	return artifacts, nil
}

// Plan reports what Create would do for roots without writing anything.
func (s *Scaffolder) Plan(roots []string) (*Plan, error) {
	root, err := selectRoot(roots)
	if err != nil {
		return nil, err
	}

	plan := &Plan{Root: root}
	for _, rel := range Folders {
		state, err := s.folderState(resolve(root, rel))
		if err != nil {
			return nil, err
		}
		plan.Changes = append(plan.Changes, Change{Path: rel, Kind: KindDir, Action: folderAction(state)})
	}

	for _, file := range Files() {
		state, current, err := s.fileState(resolve(root, file.Path), file.Content)
		if err != nil {
			return nil, err
		}
		change := Change{Path: file.Path, Kind: KindFile, Action: fileAction(state)}
		if state == StateModified {
			change.Diff = udiff.Unified("a/"+file.Path, "b/"+file.Path, string(current), string(file.Content))
		}
		plan.Changes = append(plan.Changes, change)
	}
	return plan, nil
}

func folderAction(state State) string {
	switch state {
	case StatePresent:
		return ActionKeep
	case StateConflict:
		return ActionBlocked
	default:
		return ActionCreate
	}
}

func fileAction(state State) string {
	switch state {
	case StatePresent:
		return ActionKeep
	case StateModified:
		return ActionOverwrite
	case StateConflict:
		return ActionBlocked
	default:
		return ActionCreate
	}
}

// folderState stats a folder path.
func (s *Scaffolder) folderState(target string) (State, error) {
	info, err := s.fs.Stat(target)
	switch {
	case err == nil && info.IsDir():
		return StatePresent, nil
	case err == nil:
		return StateConflict, nil
	case isNotExist(err):
		return StateMissing, nil
	default:
		return "", &FSError{Op: OpStat, Path: target, Err: err}
	}
}

// fileState compares a file path against the expected content and returns
// the current content when the file exists.
func (s *Scaffolder) fileState(target string, want []byte) (State, []byte, error) {
	info, err := s.fs.Stat(target)
	if err != nil {
		if isNotExist(err) {
			return StateMissing, nil, nil
		}
		return "", nil, &FSError{Op: OpStat, Path: target, Err: err}
	}
	if info.IsDir() {
		return StateConflict, nil, nil
	}

	current, err := afero.ReadFile(s.fs, target)
	if err != nil {
		return "", nil, &FSError{Op: OpRead, Path: target, Err: err}
	}
	if bytes.Equal(current, want) {
		return StatePresent, current, nil
	}
	return StateModified, current, nil
}
