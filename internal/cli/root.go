package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/arthur-debert/dotlink/internal/version"
	"github.com/arthur-debert/dotlink/pkg/config"
	"github.com/arthur-debert/dotlink/pkg/errors"
	"github.com/arthur-debert/dotlink/pkg/filesystem"
	"github.com/arthur-debert/dotlink/pkg/linker"
	"github.com/arthur-debert/dotlink/pkg/logging"
	"github.com/arthur-debert/dotlink/pkg/output"
	"github.com/arthur-debert/dotlink/pkg/registry"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

type rootOptions struct {
	verbosity  int
	dryRun     bool
	force      bool
	source     string
	configFile string
	list       bool
	format     string
	logFile    string

	// closeLog is set once the logger is configured
	closeLog func() error
}

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	return newRootCmd(&rootOptions{})
}

func newRootCmd(opts *rootOptions) *cobra.Command {
	initTemplateFormatting()

	rootCmd := &cobra.Command{
		Use:     MsgRootUse,
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Example: MsgRootExample,
		Version: version.String(),
		Args:    cobra.ArbitraryArgs,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			opts.closeLog = logging.SetupLogger(opts.verbosity, opts.logFile)
			log.Debug().Str("command", cmd.Name()).Strs("args", args).Msg("Command started")
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts, args)
		},
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			return completeConfigs(opts, args)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		DisableAutoGenTag: true,
	}

	rootCmd.SetVersionTemplate(MsgVersionTemplate)
	rootCmd.SetUsageTemplate(usageTemplate)
	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return errors.Wrap(err, errors.ErrInvalidInput, MsgErrInvalidFlag)
	})

	flags := rootCmd.Flags()
	flags.BoolVarP(&opts.dryRun, "dry-run", "d", false, MsgFlagDryRun)
	flags.BoolVarP(&opts.force, "force", "f", false, MsgFlagForce)
	flags.CountVarP(&opts.verbosity, "verbose", "v", MsgFlagVerbose)
	flags.StringVarP(&opts.source, "source", "s", "", MsgFlagSource)
	flags.StringVarP(&opts.configFile, "config", "c", "", MsgFlagConfig)
	flags.BoolVarP(&opts.list, "list", "l", false, MsgFlagList)
	flags.StringVar(&opts.format, "format", string(registry.FormatText), MsgFlagFormat)
	flags.StringVar(&opts.logFile, "log-file", "", MsgFlagLogFile)

	_ = rootCmd.MarkFlagDirname("source")
	_ = rootCmd.MarkFlagFilename("config", "toml", "yaml", "yml")
	_ = rootCmd.RegisterFlagCompletionFunc("format", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		names := make([]string, 0, len(registry.Formats))
		for _, f := range registry.Formats {
			names = append(names, string(f))
		}
		return names, cobra.ShellCompDirectiveNoFileComp
	})

	return rootCmd
}

func run(cmd *cobra.Command, opts *rootOptions, args []string) error {
	logger := logging.GetLogger("cli")
	stdout := cmd.OutOrStdout()

	format, err := registry.ParseFormat(opts.format)
	if err != nil {
		return err
	}
	if opts.list && len(args) > 0 {
		return errors.New(errors.ErrInvalidInput, MsgErrListWithArgs)
	}

	reg, err := loadRegistry(opts, cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	if opts.list {
		return list(stdout, reg, format)
	}

	if len(args) == 0 {
		return errors.Newf(errors.ErrInvalidInput, MsgErrNoConfigs, strings.Join(reg.Names(), ", "))
	}

	links, err := reg.Select(args)
	if err != nil {
		return err
	}

	result, err := linker.Run(linker.Options{
		FS:     filesystem.NewOS(),
		Links:  links,
		DryRun: opts.dryRun,
		Force:  opts.force,
		Out:    stdout,
	})
	if err != nil {
		return err
	}

	logger.Info().
		Strs("configs", args).
		Int("planned", len(result.Plan)).
		Int("executed", result.Executed).
		Bool("dryRun", result.DryRun).
		Msg("Run finished")
	return nil
}

// loadRegistry loads the configuration layers and builds the registry.
// The source directory fallback warning goes to warnings.
func loadRegistry(opts *rootOptions, warnings io.Writer) (*registry.Registry, error) {
	cfg, err := config.Load(config.LoadOptions{
		SourceDir:  opts.source,
		ConfigFile: opts.configFile,
	})
	if err != nil {
		return nil, err
	}

	if cfg.Paths.UsedFallback() {
		fmt.Fprintf(warnings, MsgFallbackWarning+"\n\n", cfg.SourceDir)
	}

	return registry.New(cfg)
}

func list(w io.Writer, reg *registry.Registry, format registry.Format) error {
	if format == registry.FormatText {
		return output.New(w).Markdown(reg.Markdown())
	}
	if err := reg.Encode(w, format); err != nil {
		return errors.Wrap(err, errors.ErrInternal, MsgErrListRegistry)
	}
	return nil
}

// completeConfigs offers the config names not already on the command line
func completeConfigs(opts *rootOptions, args []string) ([]string, cobra.ShellCompDirective) {
	if opts.list {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	reg, err := loadRegistry(opts, io.Discard)
	if err != nil {
		cobra.CompDebugln(err.Error(), false)
		return nil, cobra.ShellCompDirectiveError
	}

	taken := make(map[string]bool, len(args))
	for _, a := range args {
		taken[a] = true
	}

	var out []string
	for _, name := range reg.Names() {
		if taken[name] {
			continue
		}
		if desc := reg.Description(name); desc != "" {
			name += "\t" + desc
		}
		out = append(out, name)
	}
	return out, cobra.ShellCompDirectiveNoFileComp
}
