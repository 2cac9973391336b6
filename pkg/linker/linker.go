// Package linker drives a run: it plans the desired links, then either
// previews the plan, stops at the force gate, or applies it in order.
package linker

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/arthur-debert/dotlink/pkg/errors"
	"github.com/arthur-debert/dotlink/pkg/filesystem"
	"github.com/arthur-debert/dotlink/pkg/logging"
	"github.com/arthur-debert/dotlink/pkg/planner"
	"github.com/arthur-debert/dotlink/pkg/types"
)

// ForceHeader introduces the destructive actions listed by the force gate
const ForceHeader = "Aborting, require -f/--force flag for following actions:"

// Options contains configuration for a run
type Options struct {
	// FS is the filesystem to plan against and mutate. Defaults to the OS.
	FS    types.FS
	Links []types.DesiredLink

	DryRun bool
	Force  bool

	// Out receives preview and confirmation lines. Defaults to stdout.
	Out io.Writer
}

// Result describes what a run did
type Result struct {
	Plan     types.Plan
	Executed int
	DryRun   bool
}

// Run plans opts.Links once and then:
//   - on a dry run, displays every action and returns;
//   - if the plan holds destructive actions and Force is not set, lists them
//     under ForceHeader and returns an ErrForceRequired error;
//   - otherwise performs the actions in order, stopping at the first failure.
//
// Actions already performed are not rolled back.
func Run(opts Options) (*Result, error) {
	logger := logging.GetLogger("linker").With().
		Bool("dryRun", opts.DryRun).
		Bool("force", opts.Force).
		Logger()

	fsys := opts.FS
	if fsys == nil {
		fsys = filesystem.NewOS()
	}

	out := opts.Out
	if out == nil {
		out = os.Stdout
	}

	plan, err := planner.GenerateActions(fsys, opts.Links)
	if err != nil {
		logger.Error().Err(err).Msg("Planning failed")
		return nil, err
	}

	result := &Result{Plan: plan, DryRun: opts.DryRun}

	if opts.DryRun {
		logger.Debug().Int("actions", len(plan)).Msg("Dry run, displaying plan")
		for _, action := range plan {
			action.Display(out)
		}
		return result, nil
	}

	if destructive := plan.Destructive(); len(destructive) > 0 && !opts.Force {
		logger.Info().Int("destructive", len(destructive)).Msg("Force required")
		fmt.Fprintln(out, ForceHeader)
		for _, action := range destructive {
			action.Display(out)
		}
		return result, errors.Newf(errors.ErrForceRequired,
			"%d destructive action(s) require --force", len(destructive)).
			WithDetail("count", len(destructive))
	}

	for _, action := range plan {
		start := time.Now()
		if err := action.Do(fsys, out); err != nil {
			logger.Error().
				Err(err).
				Str("kind", action.Kind().String()).
				Str("target", action.Target()).
				Int("executed", result.Executed).
				Msg("Action failed, stopping")
			return result, err
		}
		result.Executed++

		logger.Debug().
			Str("kind", action.Kind().String()).
			Str("target", action.Target()).
			Dur("duration", time.Since(start)).
			Msg("Action executed")
	}

	logger.Info().Int("executed", result.Executed).Msg("Plan applied")
	return result, nil
}
