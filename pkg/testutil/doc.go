// Package testutil provides utilities for testing vendorsync components.
//
// Key components:
//   - TestEnvironment: project root with a filesystem, in memory or on disk
//   - MockRunner: records subprocess invocations and returns scripted results
//   - InitGitRepo: a real upstream repository for mirror tests
//
// Usage guidelines:
//   - Prefer EnvMemoryOnly; use EnvIsolated only when a subprocess or a
//     VCS library has to see the files
//   - Define test data inline, not in external fixture files
package testutil
