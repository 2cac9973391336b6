package paths

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/arthur-debert/dotlink/pkg/errors"
)

// Placeholders accepted in registry paths
const (
	VarHome      = "home"
	VarXDGConfig = "xdg_config"
	VarSource    = "source"
)

// Expand replaces a leading ~ and the ${home}, ${xdg_config} and ${source}
// placeholders in path. Unknown placeholders are a configuration error.
func (p *Paths) Expand(path string) (string, error) {
	vars := map[string]string{
		VarHome:      p.home,
		VarXDGConfig: p.xdgConfig,
		VarSource:    p.sourceDir,
	}

	var unknown []string
	expanded := os.Expand(p.expandHome(path), func(name string) string {
		if v, ok := vars[name]; ok {
			return v
		}
		unknown = append(unknown, name)
		return ""
	})

	if len(unknown) > 0 {
		sort.Strings(unknown)
		return "", errors.Newf(errors.ErrConfigValid, "unknown placeholder %s in %q",
			"${"+strings.Join(unknown, "}, ${")+"}", path).
			WithDetail("path", path)
	}

	return expanded, nil
}

// SourcePath expands path and makes it absolute relative to the source directory
func (p *Paths) SourcePath(path string) (string, error) {
	expanded, err := p.Expand(path)
	if err != nil {
		return "", err
	}
	if expanded == "" {
		return "", errors.New(errors.ErrConfigValid, "empty source path")
	}
	if !filepath.IsAbs(expanded) {
		expanded = filepath.Join(p.sourceDir, expanded)
	}
	return filepath.Clean(expanded), nil
}

// DestinationPath expands path, which must then be absolute
func (p *Paths) DestinationPath(path string) (string, error) {
	expanded, err := p.Expand(path)
	if err != nil {
		return "", err
	}
	if !filepath.IsAbs(expanded) {
		return "", errors.Newf(errors.ErrConfigValid, "destination %q is not absolute", path).
			WithDetail("path", path)
	}
	return filepath.Clean(expanded), nil
}
