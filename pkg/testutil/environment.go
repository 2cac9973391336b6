// pkg/testutil/environment.go
// DEPENDENCIES: None (base test utilities)
// PURPOSE: Isolated home / XDG / source directories for tests

package testutil

import (
	"path/filepath"
	"testing"
)

// TestEnvironment is an isolated directory layout on the real filesystem
type TestEnvironment struct {
	Root      string
	HomeDir   string
	XDGConfig string
	SourceDir string

	t *testing.T
}

// NewTestEnvironment creates home, XDG config and source directories under
// a temp dir and points HOME, XDG_CONFIG_HOME and DOTFILES_ROOT at them.
func NewTestEnvironment(t *testing.T) *TestEnvironment {
	t.Helper()

	root := t.TempDir()
	// t.TempDir may itself sit behind a symlink (macOS /var)
	if resolved, err := filepath.EvalSymlinks(root); err == nil {
		root = resolved
	}

	env := &TestEnvironment{
		Root:      root,
		HomeDir:   filepath.Join(root, "home"),
		XDGConfig: filepath.Join(root, "home", ".config"),
		SourceDir: filepath.Join(root, "dotfiles"),
		t:         t,
	}

	CreateDir(t, root, "home")
	CreateDir(t, root, "dotfiles")

	t.Setenv("HOME", env.HomeDir)
	t.Setenv("XDG_CONFIG_HOME", env.XDGConfig)
	t.Setenv("DOTFILES_ROOT", env.SourceDir)
	t.Setenv("NO_COLOR", "1")

	return env
}

// SourceFile creates a file in the source directory and returns its path
func (env *TestEnvironment) SourceFile(name, content string) string {
	env.t.Helper()
	return CreateFile(env.t, env.SourceDir, name, content)
}

// HomeFile creates a file under the home directory and returns its path
func (env *TestEnvironment) HomeFile(name, content string) string {
	env.t.Helper()
	return CreateFile(env.t, env.HomeDir, name, content)
}

// HomePath returns the absolute path of name under the home directory
func (env *TestEnvironment) HomePath(name string) string {
	return filepath.Join(env.HomeDir, name)
}

// ConfigPath returns the absolute path of name under the XDG config home
func (env *TestEnvironment) ConfigPath(name string) string {
	return filepath.Join(env.XDGConfig, name)
}
