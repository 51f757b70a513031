package cli

import (
	"io"
	"os"

	"github.com/heathj/gozebra/zebra"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	File    string // "-" reads stdin
	Format  string // "text" | "json" | "yaml"
	Verbose bool

	log *logrus.Logger
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json", "yaml"}

// NewRootCommand creates the root command for the gozebra CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "gozebra",
		Short: "Query HTML documents with CSS selectors",
		Long: `gozebra parses an HTML document and runs jQuery style traversals over it.

A query starts from a selector and applies traversal steps in order:

  gozebra query -f page.html 'ul.menu' 'children(li)' 'filter(.active)'`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return usageError(cmd, errors.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats))
			}
			opts.log = newLogger(cmd.ErrOrStderr(), opts.Verbose)
			return nil
		},
	}

	cmd.PersistentFlags().StringVarP(&opts.File, "file", "f", "-", "HTML input file (- for stdin)")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (text|json|yaml)")
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "log traversals to stderr")

	cmd.SetFlagErrorFunc(usageError)

	cmd.AddCommand(NewQueryCommand(opts))
	cmd.AddCommand(NewTreeCommand(opts))

	return cmd
}

func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}

// usageError reports flag and argument errors as text, since they happen
// before --format is known to be valid.
func usageError(cmd *cobra.Command, err error) error {
	f := &OutputFormatter{Format: "text", Writer: cmd.OutOrStdout(), ErrWriter: cmd.ErrOrStderr()}
	return f.Fail(ExitCommandError, ErrCodeUsage, err, nil)
}

// checkArgs reports argument errors like any other usage error.
func checkArgs(check cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := check(cmd, args); err != nil {
			return usageError(cmd, err)
		}
		return nil
	}
}

func newLogger(w io.Writer, verbose bool) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(w)
	log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	log.SetLevel(logrus.WarnLevel)
	if verbose {
		log.SetLevel(logrus.DebugLevel)
	}
	return log
}

func newFormatter(opts *RootOptions, cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}
}

// loadDocument parses the input named by --file.
func loadDocument(opts *RootOptions, cmd *cobra.Command) (*zebra.Document, error) {
	var r io.Reader = cmd.InOrStdin()
	if opts.File != "-" && opts.File != "" {
		f, err := os.Open(opts.File)
		if err != nil {
			return nil, errors.Wrap(err, "open input")
		}
		defer f.Close()
		r = f
	}
	log := opts.log
	if log == nil {
		log = newLogger(cmd.ErrOrStderr(), opts.Verbose)
	}
	return zebra.Load(r, zebra.WithLogger(log))
}
