package cli

import (
	"fmt"
	"log/slog"
	"slices"

	"github.com/spf13/cobra"

	"github.com/roach88/occfilter/internal/config"
	"github.com/roach88/occfilter/internal/predicate"
)

// RootOptions holds global flags for all commands. After the root
// pre-run these hold the merged configuration, not just the flags.
type RootOptions struct {
	ConfigFile string
	Verbose    bool
	Format     string // "json" | "text"
	MaxDepth   int
	LogLevel   string

	Database       string
	DownloadFormat string
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the occfilter CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "occfilter",
		Short: "occfilter - occurrence search predicates",
		Long: `Validate, inspect and store occurrence search predicates and
download requests.

Configuration is read from occfilter.yaml (or --config), OCCFILTER_*
environment variables and flags, later sources winning.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.load(cmd)
		},
	}

	// Global flags
	cmd.PersistentFlags().StringVar(&opts.ConfigFile, "config", "", "config file (default ./occfilter.yaml)")
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", config.DefaultFormat, "output format (json|text)")
	cmd.PersistentFlags().IntVar(&opts.MaxDepth, "max-depth", config.DefaultMaxDepth, "maximum predicate nesting depth (0 disables)")
	cmd.PersistentFlags().StringVar(&opts.LogLevel, "log-level", config.DefaultLogLevel, "log level (debug|info|warn|error)")

	// Add subcommands
	cmd.AddCommand(NewValidateCommand(opts))
	cmd.AddCommand(NewParamsCommand(opts))
	cmd.AddCommand(NewParseCommand(opts))
	cmd.AddCommand(NewRequestCommand(opts))
	cmd.AddCommand(NewTestCommand(opts))

	return cmd
}

// load merges the config file, environment and flags into opts and
// installs the process logger.
func (opts *RootOptions) load(cmd *cobra.Command) error {
	cfg, used, err := config.Load(opts.ConfigFile, cmd.Root().PersistentFlags())
	if err != nil {
		return NewExitError(ExitCommandError, err.Error())
	}

	opts.Verbose = cfg.Verbose
	opts.Format = cfg.Format
	opts.MaxDepth = cfg.MaxDepth
	opts.LogLevel = cfg.LogLevel
	opts.Database = cfg.Database
	opts.DownloadFormat = cfg.DownloadFormat

	logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: cfg.Level()}))
	slog.SetDefault(logger)
	predicate.SetLogger(logger)

	if used != "" {
		slog.Debug("loaded config", "path", used)
	}
	return nil
}

// formatter builds the output formatter for cmd.
func (opts *RootOptions) formatter(cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}
}

// decodeOptions returns the predicate decode options implied by the
// configuration.
func (opts *RootOptions) decodeOptions() []predicate.DecodeOption {
	if opts.MaxDepth <= 0 {
		return nil
	}
	return []predicate.DecodeOption{predicate.WithMaxDepth(opts.MaxDepth)}
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	return slices.Contains(ValidFormats, format)
}

// checkFormat guards commands built without the root pre-run.
func (opts *RootOptions) checkFormat() error {
	if opts.Format == "" {
		opts.Format = config.DefaultFormat
	}
	if !isValidFormat(opts.Format) {
		return NewExitError(ExitCommandError, fmt.Sprintf("invalid format %q: must be one of %v", opts.Format, ValidFormats))
	}
	return nil
}
