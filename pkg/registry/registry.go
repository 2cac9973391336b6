package registry

import (
	"sort"
	"strings"
	"unicode"

	"github.com/arthur-debert/dotlink/pkg/config"
	"github.com/arthur-debert/dotlink/pkg/errors"
	"github.com/arthur-debert/dotlink/pkg/paths"
	"github.com/arthur-debert/dotlink/pkg/types"
)

// Registry is an immutable set of link groups keyed by name
type Registry struct {
	sourceDir    string
	groups       map[string]types.Group
	descriptions map[string]string
}

// New builds a registry from the effective configuration
func New(cfg *config.Config) (*Registry, error) {
	r := &Registry{
		sourceDir:    cfg.SourceDir,
		groups:       make(map[string]types.Group, len(cfg.Groups)),
		descriptions: make(map[string]string, len(cfg.Groups)),
	}

	for name, gc := range cfg.Groups {
		group, err := buildGroup(cfg.Paths, name, gc)
		if err != nil {
			return nil, err
		}
		r.groups[name] = group
		r.descriptions[name] = gc.Description
	}

	return r, nil
}

func buildGroup(p *paths.Paths, name string, gc config.GroupConfig) (types.Group, error) {
	if err := validateName(name); err != nil {
		return types.Group{}, err
	}
	if len(gc.Links) == 0 {
		return types.Group{}, errors.Newf(errors.ErrConfigValid, "group %q has no links", name).
			WithDetail("group", name)
	}

	group := types.Group{Name: name, Links: make([]types.DesiredLink, 0, len(gc.Links))}
	for i, lc := range gc.Links {
		if len(lc.Destinations) == 0 {
			return types.Group{}, errors.Newf(errors.ErrConfigValid, "group %q: link %d has no destinations", name, i).
				WithDetail("group", name)
		}

		source, err := p.SourcePath(lc.Source)
		if err != nil {
			return types.Group{}, errors.Wrapf(err, errors.ErrConfigValid, "group %q: link %d", name, i).
				WithDetail("group", name)
		}

		link := types.DesiredLink{Source: source, Destinations: make([]string, 0, len(lc.Destinations))}
		for _, d := range lc.Destinations {
			dest, err := p.DestinationPath(d)
			if err != nil {
				return types.Group{}, errors.Wrapf(err, errors.ErrConfigValid, "group %q: link %d", name, i).
					WithDetail("group", name)
			}
			link.Destinations = append(link.Destinations, dest)
		}
		group.Links = append(group.Links, link)
	}

	return group, nil
}

func validateName(name string) error {
	if name == "" {
		return errors.New(errors.ErrConfigValid, "group name cannot be empty")
	}
	if strings.HasPrefix(name, "-") || strings.IndexFunc(name, unicode.IsSpace) >= 0 {
		return errors.Newf(errors.ErrConfigValid, "invalid group name %q", name).
			WithDetail("group", name)
	}
	return nil
}

// SourceDir returns the directory relative sources were resolved against
func (r *Registry) SourceDir() string {
	return r.sourceDir
}

// Names returns all group names in sorted order
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.groups))
	for name := range r.groups {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Has checks if a group is registered
func (r *Registry) Has(name string) bool {
	_, ok := r.groups[name]
	return ok
}

// Get retrieves a group by name
func (r *Registry) Get(name string) (types.Group, error) {
	group, ok := r.groups[name]
	if !ok {
		return types.Group{}, errors.Newf(errors.ErrUnknownGroup, "unknown config %q (choose from %s)",
			name, strings.Join(r.Names(), ", ")).
			WithDetail("group", name)
	}
	return group, nil
}

// Description returns the description of a group, empty if none
func (r *Registry) Description(name string) string {
	return r.descriptions[name]
}

// Select flattens the named groups into desired links. Groups keep the
// order they are named in, links keep registry order within a group. A name
// given more than once is only taken at its first position. Every name is
// checked before anything is returned.
func (r *Registry) Select(names []string) ([]types.DesiredLink, error) {
	if len(names) == 0 {
		return nil, errors.New(errors.ErrInvalidInput, "no config selected")
	}

	seen := make(map[string]bool, len(names))
	var groups []types.Group
	for _, name := range names {
		if seen[name] {
			continue
		}
		seen[name] = true

		group, err := r.Get(name)
		if err != nil {
			return nil, err
		}
		groups = append(groups, group)
	}

	// Conflicting destinations are reported, never resolved
	owners := make(map[string]string)
	var links []types.DesiredLink
	for _, group := range groups {
		for _, link := range group.Links {
			for _, dest := range link.Destinations {
				if owner, ok := owners[dest]; ok {
					return nil, errors.Newf(errors.ErrConfigValid, "destination %s is claimed by both %q and %q",
						dest, owner, group.Name).
						WithDetail("destination", dest)
				}
				owners[dest] = group.Name
			}
			links = append(links, link)
		}
	}

	return links, nil
}
