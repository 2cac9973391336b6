package linker_test

import (
	"bytes"
	"testing"

	"github.com/arthur-debert/dotlink/pkg/errors"
	"github.com/arthur-debert/dotlink/pkg/filesystem"
	"github.com/arthur-debert/dotlink/pkg/linker"
	"github.com/arthur-debert/dotlink/pkg/testutil"
	"github.com/arthur-debert/dotlink/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	env   *testutil.TestEnvironment
	links []types.DesiredLink

	bashrc    string
	gitconfig string
}

// newFixture links .bashrc into a fresh home and .gitconfig over an
// existing regular file.
func newFixture(t *testing.T) *fixture {
	t.Helper()
	env := testutil.NewTestEnvironment(t)
	f := &fixture{
		env:       env,
		bashrc:    env.SourceFile(".bashrc", "export A=1\n"),
		gitconfig: env.SourceFile(".gitconfig", "[user]\n"),
	}
	env.HomeFile(".gitconfig", "local")
	f.links = []types.DesiredLink{
		{Source: f.bashrc, Destinations: []string{env.HomePath(".bashrc")}},
		{Source: f.gitconfig, Destinations: []string{env.HomePath(".gitconfig")}},
	}
	return f
}

func TestRun_DryRun(t *testing.T) {
	f := newFixture(t)

	var out bytes.Buffer
	result, err := linker.Run(linker.Options{
		FS:     filesystem.NewOS(),
		Links:  f.links,
		DryRun: true,
		Out:    &out,
	})
	require.NoError(t, err)

	assert.Equal(t,
		"symlink "+f.bashrc+" to "+f.env.HomePath(".bashrc")+"\n"+
			"remove existing file "+f.env.HomePath(".gitconfig")+"\n"+
			"symlink "+f.gitconfig+" to "+f.env.HomePath(".gitconfig")+"\n",
		out.String())
	assert.Len(t, result.Plan, 3)
	assert.Zero(t, result.Executed)

	testutil.AssertNoFile(t, f.env.HomePath(".bashrc"))
	testutil.AssertFileContent(t, f.env.HomePath(".gitconfig"), "local")
}

func TestRun_DryRunIgnoresForce(t *testing.T) {
	f := newFixture(t)

	var out bytes.Buffer
	_, err := linker.Run(linker.Options{Links: f.links, DryRun: true, Force: true, Out: &out})
	require.NoError(t, err)

	testutil.AssertFileContent(t, f.env.HomePath(".gitconfig"), "local")
	assert.NotContains(t, out.String(), "symlinked")
}

func TestRun_ForceGate(t *testing.T) {
	f := newFixture(t)

	var out bytes.Buffer
	result, err := linker.Run(linker.Options{Links: f.links, Out: &out})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrForceRequired))

	assert.Equal(t,
		linker.ForceHeader+"\n"+
			"remove existing file "+f.env.HomePath(".gitconfig")+"\n",
		out.String())
	assert.Zero(t, result.Executed)

	// Nothing ran, not even the non-destructive link
	testutil.AssertNoFile(t, f.env.HomePath(".bashrc"))
	testutil.AssertFileContent(t, f.env.HomePath(".gitconfig"), "local")
}

func TestRun_Force(t *testing.T) {
	f := newFixture(t)

	var out bytes.Buffer
	result, err := linker.Run(linker.Options{Links: f.links, Force: true, Out: &out})
	require.NoError(t, err)

	assert.Equal(t,
		"symlinked "+f.bashrc+" to "+f.env.HomePath(".bashrc")+"\n"+
			"removed existing file "+f.env.HomePath(".gitconfig")+"\n"+
			"symlinked "+f.gitconfig+" to "+f.env.HomePath(".gitconfig")+"\n",
		out.String())
	assert.Equal(t, 3, result.Executed)

	testutil.AssertSymlink(t, f.env.HomePath(".bashrc"), f.bashrc)
	testutil.AssertSymlink(t, f.env.HomePath(".gitconfig"), f.gitconfig)

	// A second run has nothing to do
	out.Reset()
	again, err := linker.Run(linker.Options{Links: f.links, Out: &out})
	require.NoError(t, err)
	assert.Empty(t, again.Plan)
	assert.Empty(t, out.String())
}

func TestRun_NoDestructiveNeedsNoForce(t *testing.T) {
	env := testutil.NewTestEnvironment(t)
	source := env.SourceFile("sdkman.conf", "")
	dest := env.HomePath(".sdkman/etc/config")

	var out bytes.Buffer
	result, err := linker.Run(linker.Options{
		Links: []types.DesiredLink{{Source: source, Destinations: []string{dest}}},
		Out:   &out,
	})
	require.NoError(t, err)
	assert.Equal(t, 3, result.Executed)
	assert.Equal(t,
		"created directory "+env.HomePath(".sdkman")+"\n"+
			"created directory "+env.HomePath(".sdkman/etc")+"\n"+
			"symlinked "+source+" to "+dest+"\n",
		out.String())
	testutil.AssertSymlink(t, dest, source)
}

func TestRun_StopsAtFirstFailure(t *testing.T) {
	testutil.SkipIfRoot(t)
	env := testutil.NewTestEnvironment(t)
	source := env.SourceFile(".profile", "")
	readOnly := testutil.CreateDir(t, env.HomeDir, "ro")

	links := []types.DesiredLink{
		{Source: source, Destinations: []string{
			env.HomePath(".profile"),
			env.HomePath("ro/sub/.profile"),
			env.HomePath(".profile-copy"),
		}},
	}

	// ro stays searchable, so planning succeeds and only mkdir fails
	testutil.Chmod(t, readOnly, 0555)

	var out bytes.Buffer
	result, err := linker.Run(linker.Options{Links: links, Out: &out})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrDirCreate))
	assert.Equal(t, 1, result.Executed)

	testutil.AssertSymlink(t, env.HomePath(".profile"), source)
	testutil.AssertNoFile(t, env.HomePath(".profile-copy"))
	assert.Equal(t, "symlinked "+source+" to "+env.HomePath(".profile")+"\n", out.String())
}

func TestRun_PlanningErrorPrintsNothing(t *testing.T) {
	testutil.SkipIfRoot(t)
	env := testutil.NewTestEnvironment(t)
	source := env.SourceFile(".profile", "")
	locked := testutil.CreateDir(t, env.HomeDir, "locked")
	testutil.Chmod(t, locked, 0000)

	var out bytes.Buffer
	result, err := linker.Run(linker.Options{
		Links: []types.DesiredLink{{Source: source, Destinations: []string{
			env.HomePath(".profile"),
			env.HomePath("locked/x/.profile"),
		}}},
		Out: &out,
	})
	require.Error(t, err)
	assert.Nil(t, result)
	assert.Empty(t, out.String())
	testutil.AssertNoFile(t, env.HomePath(".profile"))
}
