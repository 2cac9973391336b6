package registry

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/arthur-debert/dotlink/pkg/errors"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Format is an output format for listing the registry
type Format string

const (
	FormatText Format = "text"
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// Formats lists the accepted formats, for flag help and completion
var Formats = []Format{FormatText, FormatTOML, FormatYAML, FormatJSON}

// ParseFormat parses a --format value
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case "":
		return FormatText, nil
	case FormatText, FormatTOML, FormatYAML, FormatJSON:
		return f, nil
	default:
		return "", errors.Newf(errors.ErrInvalidInput, "unknown format %q", s)
	}
}

// Listing is the serializable view of a registry. Paths are fully resolved.
type Listing struct {
	SourceDir string                  `toml:"source_dir" yaml:"source_dir" json:"source_dir"`
	Groups    map[string]GroupListing `toml:"groups" yaml:"groups" json:"groups"`
}

// GroupListing is one group of a Listing
type GroupListing struct {
	Description string        `toml:"description,omitempty" yaml:"description,omitempty" json:"description,omitempty"`
	Links       []LinkListing `toml:"links" yaml:"links" json:"links"`
}

// LinkListing is one desired link of a Listing
type LinkListing struct {
	Source       string   `toml:"source" yaml:"source" json:"source"`
	Destinations []string `toml:"destinations" yaml:"destinations" json:"destinations"`
}

// Listing returns the serializable view of the registry
func (r *Registry) Listing() Listing {
	l := Listing{SourceDir: r.sourceDir, Groups: make(map[string]GroupListing, len(r.groups))}
	for name, group := range r.groups {
		gl := GroupListing{Description: r.descriptions[name]}
		for _, link := range group.Links {
			gl.Links = append(gl.Links, LinkListing{
				Source:       link.Source,
				Destinations: append([]string(nil), link.Destinations...),
			})
		}
		l.Groups[name] = gl
	}
	return l
}

// Encode writes the registry in the given machine-readable format, or as
// markdown for FormatText.
func (r *Registry) Encode(w io.Writer, format Format) error {
	switch format {
	case FormatText:
		_, err := io.WriteString(w, r.Markdown())
		return err
	case FormatTOML:
		return toml.NewEncoder(w).Encode(r.Listing())
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(r.Listing()); err != nil {
			return err
		}
		return enc.Close()
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(r.Listing())
	default:
		return errors.Newf(errors.ErrInvalidInput, "unknown format %q", format)
	}
}

// Markdown describes the registry as a markdown document
func (r *Registry) Markdown() string {
	var b strings.Builder

	b.WriteString("# Link groups\n\n")
	fmt.Fprintf(&b, "Sources are read from `%s`.\n", r.sourceDir)

	for _, name := range r.Names() {
		fmt.Fprintf(&b, "\n## %s\n\n", name)
		if desc := r.descriptions[name]; desc != "" {
			fmt.Fprintf(&b, "%s\n\n", desc)
		}
		for _, link := range r.groups[name].Links {
			for _, dest := range link.Destinations {
				fmt.Fprintf(&b, "- `%s` → `%s`\n", dest, link.Source)
			}
		}
	}

	return b.String()
}
