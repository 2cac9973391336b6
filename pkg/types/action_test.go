package types_test

import (
	"bytes"
	stderrors "errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/dotlink/pkg/errors"
	"github.com/arthur-debert/dotlink/pkg/filesystem"
	"github.com/arthur-debert/dotlink/pkg/testutil"
	"github.com/arthur-debert/dotlink/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAction_Display(t *testing.T) {
	tests := []struct {
		action types.Action
		want   string
		kind   types.ActionKind
		target string
	}{
		{
			action: types.CreateDirectory{Path: "/home/u/.sdkman"},
			want:   "create directory /home/u/.sdkman\n",
			kind:   types.KindCreateDirectory,
			target: "/home/u/.sdkman",
		},
		{
			action: types.CreateLink{Source: "/dots/.bashrc", Destination: "/home/u/.bashrc"},
			want:   "symlink /dots/.bashrc to /home/u/.bashrc\n",
			kind:   types.KindCreateLink,
			target: "/home/u/.bashrc",
		},
		{
			action: types.RemoveFile{Path: "/home/u/.gitconfig"},
			want:   "remove existing file /home/u/.gitconfig\n",
			kind:   types.KindRemoveFile,
			target: "/home/u/.gitconfig",
		},
	}

	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			var buf bytes.Buffer
			tt.action.Display(&buf)
			assert.Equal(t, tt.want, buf.String())
			assert.Equal(t, tt.kind, tt.action.Kind())
			assert.Equal(t, tt.target, tt.action.Target())
		})
	}
}

func TestPlan_Destructive(t *testing.T) {
	plan := types.Plan{
		types.CreateDirectory{Path: "/a"},
		types.RemoveFile{Path: "/a/b"},
		types.CreateLink{Source: "/s", Destination: "/a/b"},
		types.RemoveFile{Path: "/c"},
	}

	assert.Equal(t, types.Plan{
		types.RemoveFile{Path: "/a/b"},
		types.RemoveFile{Path: "/c"},
	}, plan.Destructive())
	assert.Empty(t, types.Plan{types.CreateDirectory{Path: "/a"}}.Destructive())
}

func TestAction_Do(t *testing.T) {
	env := testutil.NewTestEnvironment(t)
	fsys := filesystem.NewOS()
	source := env.SourceFile(".gitconfig", "[user]\n")
	dir := env.HomePath(".config")
	dest := env.HomePath(".gitconfig")
	env.HomeFile(".gitconfig", "old")

	var out bytes.Buffer
	require.NoError(t, types.CreateDirectory{Path: dir}.Do(fsys, &out))
	require.NoError(t, types.RemoveFile{Path: dest}.Do(fsys, &out))
	require.NoError(t, types.CreateLink{Source: source, Destination: dest}.Do(fsys, &out))

	assert.Equal(t,
		"created directory "+dir+"\n"+
			"removed existing file "+dest+"\n"+
			"symlinked "+source+" to "+dest+"\n",
		out.String())

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
	testutil.AssertSymlink(t, dest, source)
}

func TestAction_DoErrors(t *testing.T) {
	env := testutil.NewTestEnvironment(t)
	fsys := filesystem.NewOS()
	source := env.SourceFile(".bashrc", "")
	taken := env.HomeFile(".bashrc", "")

	t.Run("symlink_over_existing", func(t *testing.T) {
		var out bytes.Buffer
		err := types.CreateLink{Source: source, Destination: taken}.Do(fsys, &out)
		require.Error(t, err)
		assert.Empty(t, out.String(), "no confirmation on failure")
		assert.True(t, errors.IsErrorCode(err, errors.ErrSymlinkCreate))

		var linkErr *os.LinkError
		assert.True(t, stderrors.As(err, &linkErr), "OS error stays reachable")
		assert.True(t, stderrors.Is(err, os.ErrExist))
	})

	t.Run("directory_without_parent", func(t *testing.T) {
		var out bytes.Buffer
		err := types.CreateDirectory{Path: filepath.Join(env.HomeDir, "a", "b")}.Do(fsys, &out)
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrDirCreate))
		assert.True(t, stderrors.Is(err, os.ErrNotExist))
	})

	t.Run("remove_missing", func(t *testing.T) {
		var out bytes.Buffer
		err := types.RemoveFile{Path: env.HomePath("nothing")}.Do(fsys, &out)
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrFileRemove))
		assert.Equal(t, env.HomePath("nothing"), errors.GetErrorDetails(err)["path"])
	})
}
