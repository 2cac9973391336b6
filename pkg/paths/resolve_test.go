package paths_test

import (
	stderrors "errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/dotlink/pkg/errors"
	"github.com/arthur-debert/dotlink/pkg/filesystem"
	"github.com/arthur-debert/dotlink/pkg/paths"
	"github.com/arthur-debert/dotlink/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tempRoot(t *testing.T) string {
	t.Helper()
	root, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)
	return root
}

func TestResolve(t *testing.T) {
	fsys := filesystem.NewOS()
	root := tempRoot(t)

	source := testutil.CreateFile(t, root, "dotfiles/.bashrc", "")
	testutil.CreateDir(t, root, "home")

	direct := filepath.Join(root, "home", "direct")
	testutil.CreateSymlink(t, source, direct)

	relative := filepath.Join(root, "home", "relative")
	testutil.CreateSymlink(t, "../dotfiles/.bashrc", relative)

	chained := filepath.Join(root, "home", "chained")
	testutil.CreateSymlink(t, direct, chained)

	linkedDir := filepath.Join(root, "linked")
	testutil.CreateSymlink(t, filepath.Join(root, "dotfiles"), linkedDir)

	broken := filepath.Join(root, "home", "broken")
	testutil.CreateSymlink(t, filepath.Join(root, "gone", "file"), broken)

	tests := []struct {
		name string
		path string
		want string
	}{
		{"regular_file", source, source},
		{"absolute_link", direct, source},
		{"relative_link", relative, source},
		{"link_chain", chained, source},
		{"link_in_middle", filepath.Join(linkedDir, ".bashrc"), source},
		{"broken_link", broken, filepath.Join(root, "gone", "file")},
		{"missing_path", filepath.Join(root, "home", "nope", "x"), filepath.Join(root, "home", "nope", "x")},
		{"dot_dot", filepath.Join(root, "home", "..", "dotfiles", ".bashrc"), source},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := paths.Resolve(fsys, tt.path)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolve_Loop(t *testing.T) {
	fsys := filesystem.NewOS()
	root := tempRoot(t)

	a := filepath.Join(root, "a")
	b := filepath.Join(root, "b")
	testutil.CreateSymlink(t, b, a)
	testutil.CreateSymlink(t, a, b)

	_, err := paths.Resolve(fsys, a)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrSymlinkLoop))
}

func TestResolve_PermissionDenied(t *testing.T) {
	testutil.SkipIfRoot(t)
	fsys := filesystem.NewOS()
	root := tempRoot(t)

	locked := testutil.CreateDir(t, root, "locked")
	testutil.CreateFile(t, locked, "file", "")
	testutil.Chmod(t, locked, 0000)

	_, err := paths.Resolve(fsys, filepath.Join(locked, "file"))
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrFileAccess))
	assert.True(t, stderrors.Is(err, fs.ErrPermission))
}

func TestResolve_RelativeRejected(t *testing.T) {
	_, err := paths.Resolve(filesystem.NewOS(), "relative/path")
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
}

func TestAncestors(t *testing.T) {
	assert.Equal(t, []string{"/", "/home", "/home/u", "/home/u/.config"},
		paths.Ancestors("/home/u/.config/starship.toml"))
	assert.Equal(t, []string{"/"}, paths.Ancestors("/etc"))
	assert.Equal(t, []string{"/", "/a"}, paths.Ancestors("/a/b/"))
}

func TestIsNotExist(t *testing.T) {
	root := tempRoot(t)
	file := testutil.CreateFile(t, root, "file", "")

	_, err := os.Lstat(filepath.Join(root, "missing"))
	assert.True(t, paths.IsNotExist(err))

	_, err = os.Lstat(filepath.Join(file, "below"))
	assert.True(t, paths.IsNotExist(err))

	assert.False(t, paths.IsNotExist(nil))
}
