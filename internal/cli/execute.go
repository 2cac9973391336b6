package cli

import (
	"io"

	"github.com/arthur-debert/dotlink/pkg/errors"
	"github.com/arthur-debert/dotlink/pkg/output"
	"github.com/rs/zerolog/log"
)

// Exit codes
const (
	ExitOK      = 0
	ExitFailure = 1
	ExitUsage   = 2
)

// Execute runs dotlink with args and returns the process exit code.
// Errors are reported on stderr; stdout only carries action lines and
// listings.
func Execute(args []string, stdout, stderr io.Writer) int {
	opts := &rootOptions{}
	defer opts.close()

	cmd := newRootCmd(opts)
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	err := cmd.Execute()
	if err == nil {
		return ExitOK
	}

	log.Debug().Err(err).Str("code", string(errors.GetErrorCode(err))).Msg("Command failed")

	// The destructive actions were already listed
	if errors.IsErrorCode(err, errors.ErrForceRequired) {
		return ExitFailure
	}

	printer := output.New(stderr)
	printer.Error(err)

	if isUsageError(err) {
		printer.Hint(MsgUsageHint)
		return ExitUsage
	}
	return ExitFailure
}

func (o *rootOptions) close() {
	if o.closeLog == nil {
		return
	}
	if err := o.closeLog(); err != nil {
		log.Warn().Err(err).Msg("Failed to close log file")
	}
}

func isUsageError(err error) bool {
	return errors.IsErrorCode(err, errors.ErrInvalidInput) ||
		errors.IsErrorCode(err, errors.ErrUnknownGroup)
}
