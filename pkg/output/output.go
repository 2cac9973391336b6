// Package output styles what dotlink prints for humans: error lines, usage
// hints and the markdown registry listing. Action lines are plain text and
// never go through here.
package output

import (
	"fmt"
	"io"
	"os"

	"github.com/arthur-debert/dotlink/pkg/logging"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
)

// Adaptive colors for light and dark terminals
var (
	errorColor = lipgloss.AdaptiveColor{Light: "#CC0000", Dark: "#FF5F5F"}
	mutedColor = lipgloss.AdaptiveColor{Light: "#6C6C6C", Dark: "#8A8A8A"}
)

// listingWidth is the word wrap used for the markdown listing
const listingWidth = 100

// Printer writes styled output to a single writer
type Printer struct {
	w     io.Writer
	color bool

	errorStyle lipgloss.Style
	mutedStyle lipgloss.Style
}

// New creates a Printer for w. Colour is used only when w is a terminal
// and NO_COLOR is not set.
func New(w io.Writer) *Printer {
	color := ColorEnabled(w)

	renderer := lipgloss.NewRenderer(w)
	if !color {
		renderer.SetColorProfile(termenv.Ascii)
	}

	logger := logging.GetLogger("output")
	logger.Trace().
		Bool("color", color).
		Str("profile", fmt.Sprintf("%v", renderer.ColorProfile())).
		Msg("Printer created")

	return &Printer{
		w:          w,
		color:      color,
		errorStyle: renderer.NewStyle().Foreground(errorColor).Bold(true),
		mutedStyle: renderer.NewStyle().Foreground(mutedColor),
	}
}

// ColorEnabled reports whether styled output should be written to w
func ColorEnabled(w io.Writer) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	f, ok := w.(interface{ Fd() uintptr })
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Color reports whether the printer writes ANSI styling
func (p *Printer) Color() bool {
	return p.color
}

// Error writes err as a single "Error: ..." line
func (p *Printer) Error(err error) {
	fmt.Fprintf(p.w, "%s %s\n", p.errorStyle.Render("Error:"), err.Error())
}

// Hint writes a muted line, used for usage hints
func (p *Printer) Hint(format string, args ...interface{}) {
	fmt.Fprintln(p.w, p.mutedStyle.Render(fmt.Sprintf(format, args...)))
}

// Markdown renders md for the terminal and writes it. Off a terminal the
// notty style is used, so the result stays plain text. If rendering fails
// the raw markdown is written instead.
func (p *Printer) Markdown(md string) error {
	_, err := io.WriteString(p.w, p.RenderMarkdown(md))
	return err
}

// RenderMarkdown renders md the way Markdown would write it
func (p *Printer) RenderMarkdown(md string) string {
	opts := []glamour.TermRendererOption{glamour.WithWordWrap(listingWidth)}
	if p.color {
		opts = append(opts, glamour.WithAutoStyle())
	} else {
		opts = append(opts, glamour.WithStandardStyle("notty"))
	}

	logger := logging.GetLogger("output")
	r, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		logger.Debug().Err(err).Msg("Markdown renderer unavailable")
		return md
	}

	rendered, err := r.Render(md)
	if err != nil {
		logger.Debug().Err(err).Msg("Markdown rendering failed")
		return md
	}
	return rendered
}
