package output_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/dotlink/pkg/errors"
	"github.com/arthur-debert/dotlink/pkg/output"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestColorEnabled(t *testing.T) {
	t.Run("buffer", func(t *testing.T) {
		t.Setenv("NO_COLOR", "")
		assert.False(t, output.ColorEnabled(&bytes.Buffer{}))
	})

	t.Run("regular_file", func(t *testing.T) {
		t.Setenv("NO_COLOR", "")
		f, err := os.Create(filepath.Join(t.TempDir(), "out"))
		require.NoError(t, err)
		defer f.Close()
		assert.False(t, output.ColorEnabled(f))
	})

	t.Run("no_color_wins", func(t *testing.T) {
		t.Setenv("NO_COLOR", "1")
		assert.False(t, output.ColorEnabled(os.Stdout))
	})
}

func TestPrinter_Error(t *testing.T) {
	var buf bytes.Buffer
	p := output.New(&buf)
	require.False(t, p.Color())

	p.Error(errors.New(errors.ErrUnknownGroup, `unknown config "vim"`))
	assert.Equal(t, "Error: [UNKNOWN_GROUP] unknown config \"vim\"\n", buf.String())
}

func TestPrinter_Hint(t *testing.T) {
	var buf bytes.Buffer
	output.New(&buf).Hint("Run '%s --help' for usage.", "dotlink")
	assert.Equal(t, "Run 'dotlink --help' for usage.\n", buf.String())
}

func TestPrinter_Markdown(t *testing.T) {
	var buf bytes.Buffer
	p := output.New(&buf)

	md := "# Link groups\n\n## git\n\n- `~/.gitconfig` → `.gitconfig`\n"
	require.NoError(t, p.Markdown(md))

	out := buf.String()
	assert.Contains(t, out, "Link groups")
	assert.Contains(t, out, "git")
	assert.Contains(t, out, "~/.gitconfig")
}

func TestPrinter_LogsUnderOutputComponent(t *testing.T) {
	var logs bytes.Buffer
	saved := log.Logger
	log.Logger = zerolog.New(&logs).Level(zerolog.TraceLevel)
	t.Cleanup(func() { log.Logger = saved })

	var buf bytes.Buffer
	p := output.New(&buf)
	assert.NotEmpty(t, p.RenderMarkdown("# Link groups\n"))

	assert.Contains(t, logs.String(), `"component":"output"`)
	assert.Contains(t, logs.String(), "Printer created")
}
