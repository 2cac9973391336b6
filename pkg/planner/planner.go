// Package planner turns desired links into an ordered plan of filesystem
// actions. It only inspects the filesystem; nothing is mutated here, which
// is what lets a dry run show the exact plan a real run would execute.
package planner

import (
	"github.com/arthur-debert/dotlink/pkg/errors"
	"github.com/arthur-debert/dotlink/pkg/logging"
	"github.com/arthur-debert/dotlink/pkg/paths"
	"github.com/arthur-debert/dotlink/pkg/types"
)

// GenerateActions computes the plan for links against the current state of
// fsys. For each destination, in order:
//
//   - if it exists in any form (a broken symlink included) and resolves to
//     the resolved source, nothing is planned;
//   - if it exists and resolves elsewhere, RemoveFile then CreateLink;
//   - otherwise CreateDirectory for every missing ancestor, outermost
//     first, then CreateLink.
//
// Any inspection error other than "does not exist" aborts planning and no
// plan is returned.
func GenerateActions(fsys types.FS, links []types.DesiredLink) (types.Plan, error) {
	logger := logging.GetLogger("planner")
	defer logging.LogOperationStart(logger, "generate actions")()

	var plan types.Plan
	plannedDirs := make(map[string]bool)

	for _, link := range links {
		source, err := paths.Resolve(fsys, link.Source)
		if err != nil {
			return nil, err
		}

		for _, dest := range link.Destinations {
			present, err := lexists(fsys, dest)
			if err != nil {
				return nil, err
			}

			if present {
				resolved, err := paths.Resolve(fsys, dest)
				if err != nil {
					return nil, err
				}
				if resolved == source {
					logger.Debug().Str("destination", dest).Str("source", link.Source).Msg("Already linked")
					continue
				}

				logger.Debug().
					Str("destination", dest).
					Str("resolved", resolved).
					Str("source", link.Source).
					Msg("Destination exists and points elsewhere")
				plan = append(plan,
					types.RemoveFile{Path: dest},
					types.CreateLink{Source: link.Source, Destination: dest},
				)
				continue
			}

			for _, dir := range paths.Ancestors(dest) {
				if plannedDirs[dir] {
					continue
				}
				dirExists, err := exists(fsys, dir)
				if err != nil {
					return nil, err
				}
				if !dirExists {
					plannedDirs[dir] = true
					plan = append(plan, types.CreateDirectory{Path: dir})
				}
			}
			plan = append(plan, types.CreateLink{Source: link.Source, Destination: dest})
		}
	}

	logger.Info().Int("links", len(links)).Int("actions", len(plan)).Msg("Plan generated")
	return plan, nil
}

// lexists reports whether path exists without following a final symlink
func lexists(fsys types.FS, path string) (bool, error) {
	if _, err := fsys.Lstat(path); err != nil {
		if paths.IsNotExist(err) {
			return false, nil
		}
		return false, errors.Wrapf(err, errors.ErrFileAccess, "failed to inspect %s", path).
			WithDetail("path", path)
	}
	return true, nil
}

// exists reports whether path exists, following symlinks
func exists(fsys types.FS, path string) (bool, error) {
	if _, err := fsys.Stat(path); err != nil {
		if paths.IsNotExist(err) {
			return false, nil
		}
		return false, errors.Wrapf(err, errors.ErrFileAccess, "failed to inspect %s", path).
			WithDetail("path", path)
	}
	return true, nil
}
