// Package testutil provides utilities for testing dotlink components.
//
// Key components:
//   - TestEnvironment: an isolated home, XDG config and source directory
//     under t.TempDir, with HOME, XDG_CONFIG_HOME and DOTFILES_ROOT pointed
//     at it for the duration of the test
//   - File helpers: create files, directories and symlinks, and assert on
//     what ended up on disk
//
// Symlink behaviour is always tested on the real filesystem; afero's
// in-memory filesystem has no symlinks.
package testutil
