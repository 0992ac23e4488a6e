// Package cmd implements the pdf_toolkit command line using Cobra.
package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"pdf_toolkit/config"
	"pdf_toolkit/internal/logging"
	"pdf_toolkit/session"
)

// globalOptions are the persistent flags shared by every command.
type globalOptions struct {
	configPath string
	logLevel   string
	logFormat  string
}

// load reads the configuration and builds a logger writing to w.
func (o *globalOptions) load(w io.Writer) (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return nil, nil, err
	}
	if o.logLevel != "" {
		cfg.LogLevel = o.logLevel
	}
	if o.logFormat != "" {
		cfg.LogFormat = o.logFormat
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	return cfg, logging.New(cfg.LogLevel, cfg.LogFormat, w), nil
}

// NewRootCmd builds the command tree. Without a subcommand the interactive
// menu is started on the command's stdin and stdout.
func NewRootCmd() *cobra.Command {
	opts := &globalOptions{}

	root := &cobra.Command{
		Use:   "pdf_toolkit",
		Short: "Merge PDFs, delete pages and extract pages",
		Long: `pdf_toolkit is an interactive PDF editing tool.

Run it without arguments for the menu:
  1. merge every PDF in a folder in natural filename order
  2. delete pages (1,3-5 / odd / even / "5 odd")
  3. extract pages (1,3-5 / all)

Run "pdf_toolkit serve" to expose the same operations over HTTP.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger, err := opts.load(cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			s := session.New(cmd.InOrStdin(), cmd.OutOrStdout(), session.Options{
				Color:           isTerminal(cmd.OutOrStdout()),
				Parity:          cfg.ParityTable(),
				MergeOutputName: cfg.MergeOutputName,
				Logger:          logger,
			})
			return s.Run(cmd.Context())
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", "path to a YAML configuration file")
	flags.StringVar(&opts.logLevel, "log-level", "", "log level: debug, info, warn or error")
	flags.StringVar(&opts.logFormat, "log-format", "", "log format: text or json")

	root.AddCommand(newServeCmd(opts))
	return root
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := NewRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
