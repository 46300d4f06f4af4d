// Package testutil provides utilities for testing greatness components.
//
// Key components:
//   - TestEnvironment: a home directory, a state directory and a loaded
//     LocalState, either in memory or in a temporary directory
//   - FakeGit: a git.Client that "clones" by copying directories registered
//     as remotes, so pull tests need neither git nor a network
//   - RemoteBuilder: declarative setup of a remote manifest with files and
//     requirements
//
// Usage guidelines:
//   - Prefer EnvMemoryOnly; use EnvIsolated only for symlinks and anything
//     that shells out
//   - All test data should be defined inline, not in external files
package testutil
