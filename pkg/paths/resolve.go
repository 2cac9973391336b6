package paths

import (
	stderrors "errors"
	"io/fs"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/arthur-debert/dotlink/pkg/errors"
	"github.com/arthur-debert/dotlink/pkg/types"
)

// MaxSymlinkHops bounds symlink expansion while resolving a single path
const MaxSymlinkHops = 255

// Resolve returns the real path of path by following every symlink in it,
// including chains. Resolution is non-strict: at the first component that
// does not exist (a broken link target, for instance) the remaining
// components are appended as they are. Errors other than "does not exist"
// are returned.
func Resolve(fsys types.FS, path string) (string, error) {
	if !filepath.IsAbs(path) {
		return "", errors.Newf(errors.ErrInvalidInput, "cannot resolve relative path %q", path)
	}

	pending := splitPath(path)
	resolved := string(filepath.Separator)
	hops := 0

	for len(pending) > 0 {
		comp := pending[0]
		pending = pending[1:]

		switch comp {
		case "", ".":
			continue
		case "..":
			resolved = filepath.Dir(resolved)
			continue
		}

		candidate := filepath.Join(resolved, comp)
		info, err := fsys.Lstat(candidate)
		if err != nil {
			if IsNotExist(err) {
				return filepath.Join(append([]string{candidate}, pending...)...), nil
			}
			return "", errors.Wrapf(err, errors.ErrFileAccess, "failed to inspect %s", candidate).
				WithDetail("path", path)
		}

		if info.Mode()&fs.ModeSymlink == 0 {
			resolved = candidate
			continue
		}

		hops++
		if hops > MaxSymlinkHops {
			return "", errors.Newf(errors.ErrSymlinkLoop, "too many levels of symbolic links resolving %s", path).
				WithDetail("path", path)
		}

		target, err := fsys.Readlink(candidate)
		if err != nil {
			return "", errors.Wrapf(err, errors.ErrFileAccess, "failed to read link %s", candidate).
				WithDetail("path", path)
		}
		if filepath.IsAbs(target) {
			resolved = string(filepath.Separator)
		}
		pending = append(splitPath(target), pending...)
	}

	return resolved, nil
}

// Ancestors returns the directories above path, outermost first and
// excluding path itself. For /a/b/c it returns /, /a, /a/b.
func Ancestors(path string) []string {
	var out []string
	for dir := filepath.Dir(filepath.Clean(path)); ; dir = filepath.Dir(dir) {
		out = append(out, dir)
		if dir == filepath.Dir(dir) {
			break
		}
	}
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out
}

// IsNotExist reports whether err means the path is absent. A path below a
// regular file counts as absent.
func IsNotExist(err error) bool {
	return stderrors.Is(err, fs.ErrNotExist) || stderrors.Is(err, syscall.ENOTDIR)
}

func splitPath(path string) []string {
	return strings.Split(path, string(filepath.Separator))
}
