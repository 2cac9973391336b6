package paths

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/arthur-debert/dotlink/pkg/errors"
)

// Environment variable names
const (
	// EnvDotfilesRoot is the environment variable for the source directory
	EnvDotfilesRoot = "DOTFILES_ROOT"

	// EnvHome is the standard home directory variable
	EnvHome = "HOME"

	// EnvXDGConfigHome is the XDG config base directory variable
	EnvXDGConfigHome = "XDG_CONFIG_HOME"
)

// DotlinkDirName is the directory name used under the XDG config home
const DotlinkDirName = "dotlink"

// Paths holds the directories dotlink resolves link sources and
// destinations against. It is computed once per run.
type Paths struct {
	home      string
	xdgConfig string
	sourceDir string

	// usedFallback indicates if we fell back to cwd (for warning display)
	usedFallback bool
}

// New creates a new Paths instance with the given source directory.
// If sourceDir is empty, it is determined from DOTFILES_ROOT, the git
// top-level of the working directory, or the working directory itself.
func New(sourceDir string) (*Paths, error) {
	// Environment may have changed since the xdg package was initialized
	xdg.Reload()

	p := &Paths{home: xdg.Home}
	if p.home == "" {
		return nil, errors.New(errors.ErrNotFound, "cannot determine home directory")
	}
	p.xdgConfig = configHome(p.home)

	if sourceDir == "" {
		root, usedFallback, err := findSourceDir()
		if err != nil {
			return nil, err
		}
		p.sourceDir = root
		p.usedFallback = usedFallback
	} else {
		p.sourceDir = p.expandHome(sourceDir)
	}

	absRoot, err := filepath.Abs(p.sourceDir)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "failed to get absolute path for source directory")
	}
	p.sourceDir = absRoot

	return p, nil
}

// Home returns the user's home directory
func (p *Paths) Home() string {
	return p.home
}

// XDGConfigHome returns $XDG_CONFIG_HOME, or <home>/.config when unset
func (p *Paths) XDGConfigHome() string {
	return p.xdgConfig
}

// SourceDir returns the directory relative sources are resolved against
func (p *Paths) SourceDir() string {
	return p.sourceDir
}

// UsedFallback returns true if the current working directory was used as fallback
func (p *Paths) UsedFallback() bool {
	return p.usedFallback
}

// ConfigDir returns dotlink's own directory under the XDG config home
func (p *Paths) ConfigDir() string {
	return filepath.Join(p.xdgConfig, DotlinkDirName)
}

// configHome returns $XDG_CONFIG_HOME, or home/.config when it is unset or
// relative. Unlike xdg.ConfigHome the default is the same on every platform.
func configHome(home string) string {
	if dir := os.Getenv(EnvXDGConfigHome); filepath.IsAbs(dir) {
		return dir
	}
	return filepath.Join(home, ".config")
}

// findSourceDir determines the source directory using the following priority:
// 1. DOTFILES_ROOT environment variable (if set)
// 2. Git repository root (found via 'git rev-parse --show-toplevel')
// 3. Current working directory (fallback)
func findSourceDir() (string, bool, error) {
	if root := os.Getenv(EnvDotfilesRoot); root != "" {
		return expandHomeWith(xdg.Home, root), false, nil
	}

	if gitRoot, err := findGitRoot(); err == nil && gitRoot != "" {
		return gitRoot, false, nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", false, errors.Wrapf(err, errors.ErrFileAccess, "failed to get current directory")
	}

	return cwd, true, nil
}

// findGitRoot attempts to find the root of the current git repository
func findGitRoot() (string, error) {
	output, err := exec.Command("git", "rev-parse", "--show-toplevel").Output()
	if err != nil {
		// Not in a git repo or git not installed
		return "", err
	}

	gitRoot := strings.TrimSpace(string(output))
	if gitRoot == "" {
		return "", errors.New(errors.ErrNotFound, "git root is empty")
	}

	return gitRoot, nil
}

func (p *Paths) expandHome(path string) string {
	return expandHomeWith(p.home, path)
}

// expandHomeWith expands a leading ~ to home. ~user forms are left alone.
func expandHomeWith(home, path string) string {
	if path == "" || path[0] != '~' {
		return path
	}
	if len(path) == 1 {
		return home
	}
	if path[1] == '/' || path[1] == filepath.Separator {
		return filepath.Join(home, path[2:])
	}
	return path
}
