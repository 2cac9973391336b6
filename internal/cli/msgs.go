package cli

import (
	_ "embed"
	"strings"
)

// Short messages (one-liners)
const (
	MsgRootUse   = "dotlink [flags] <config>..."
	MsgRootShort = "Symlink dotfiles into place, one config group at a time"

	MsgVersionTemplate = "dotlink version {{.Version}}\n"

	MsgUsageHint = "Run 'dotlink --help' for usage."

	// Errors
	MsgErrNoConfigs    = "requires at least one config (choose from %s)"
	MsgErrListWithArgs = "--list takes no configs"
	MsgErrInvalidFlag  = "invalid flag"
	MsgErrListRegistry = "failed to list configs"

	// Flag descriptions
	MsgFlagDryRun  = "Print the actions without performing them"
	MsgFlagForce   = "Allow replacing existing files"
	MsgFlagVerbose = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagSource  = "Dotfiles source directory (default $DOTFILES_ROOT, the git root, or the current directory)"
	MsgFlagConfig  = "Extra config file (TOML or YAML)"
	MsgFlagList    = "List the available configs and exit"
	MsgFlagFormat  = "Format for --list: text, toml, yaml or json"
	MsgFlagLogFile = "Also write JSON logs to this file"
)

// Long messages from embedded files
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/root-example.txt
	msgRootExampleRaw string
	MsgRootExample    = strings.TrimRight(msgRootExampleRaw, "\n")

	//go:embed msgs/fallback-warning.txt
	msgFallbackWarningRaw string
	MsgFallbackWarning    = strings.TrimSpace(msgFallbackWarningRaw)

	//go:embed msgs/usage.tmpl
	usageTemplate string
)
