package cli

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/roach88/lagplot/internal/config"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose    bool
	Format     string // "json" | "text"
	ConfigFile string
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command. Run without a subcommand it
// renders the comparison figure exactly like "lagplot render".
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}
	defaultRender := &RenderOptions{RootOptions: opts}

	cmd := &cobra.Command{
		Use:   "lagplot",
		Short: "lagplot - lag-1 plots of a bad and a good RNG",
		Long: `Plot consecutive value pairs (U_i, U_{i+1}) from a small-modulus linear
congruential generator next to a high-quality generator. The LCG's plot shows
a lattice of lines; the good generator's plot is an unstructured cloud.

With no arguments lagplot draws 500 points from each generator and writes
rng_comparison.png to the working directory.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return NewExitError(ExitCommandError, fmt.Sprintf("invalid format %q: must be one of %v", opts.Format, ValidFormats))
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(defaultRender, cmd)
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVarP(&opts.ConfigFile, "config", "c", "", "config file (.yaml, .yml or .cue)")

	cmd.AddCommand(NewRenderCommand(opts))
	cmd.AddCommand(NewSequenceCommand(opts))
	cmd.AddCommand(NewHistoryCommand(opts))

	return cmd
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}

// newLogger builds the command logger: text records on stderr, debug level
// when verbose.
func newLogger(cmd *cobra.Command, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
}

func newFormatter(cmd *cobra.Command, opts *RootOptions) *OutputFormatter {
	return &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}
}

// printer formats counts with thousands separators in text output.
var printer = message.NewPrinter(language.English)

// loadConfig builds the effective config from defaults, the --config file
// and LAGPLOT_* variables. Command flags are applied by the caller.
func loadConfig(opts *RootOptions) (config.Config, error) {
	cfg := config.Default()
	if opts.ConfigFile != "" {
		if err := config.LoadFile(opts.ConfigFile, &cfg); err != nil {
			return cfg, WrapExitError(ExitCommandError, "failed to load config", err)
		}
	}
	if err := config.ApplyEnv(&cfg); err != nil {
		return cfg, WrapExitError(ExitCommandError, "failed to read environment", err)
	}
	return cfg, nil
}
