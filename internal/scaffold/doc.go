// Package scaffold materializes the Node.js API skeleton under a workspace root.
//
// The layout is fixed: six folders under src/ and two boilerplate files,
// src/package.json and src/app.js. The file contents are embedded at build
// time and are never parameterized by user input.
//
// # Roots
//
// The caller passes the list of open workspace roots explicitly:
//
//	s := scaffold.New(nil)
//	result, err := s.Create(ctx, []string{"/tmp/proj"})
//
// An empty list yields [ErrNoWorkspaceOpen] and no writes. Otherwise only the
// first root is used; remaining roots are never touched.
//
// # Overwrite semantics
//
// Folder creation is idempotent. File writes overwrite whatever is already at
// the target path, without confirmation. Creation is not transactional: if a
// write fails, artifacts created before the failure stay on disk and the
// error is returned as an [*FSError].
//
// # Dry runs
//
// [Scaffolder.Plan] reports what Create would do, including a unified diff
// for each file that would be overwritten. [Scaffolder.Inspect] reports the
// current state of every artifact under a root.
package scaffold
