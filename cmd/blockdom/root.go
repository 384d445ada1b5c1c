package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/npillmayer/blockdom/config"
	"github.com/npillmayer/blockdom/syntax"
	"github.com/npillmayer/schuko/tracing"
	"github.com/spf13/cobra"
)

// options are the flags shared by all sub-commands.
type options struct {
	configFile string
	from       string
	to         string
	trace      string
	verbose    bool
}

// traceKeys are the tracing keys of the library packages.
var traceKeys = []string{"blockdom.block", "blockdom.syntax", "blockdom.transform", "blockdom.engine"}

func newRootCmd() *cobra.Command {
	opts := &options{}
	root := &cobra.Command{
		Use:   "blockdom",
		Short: "Convert documents between markup syntaxes",
		Long: `blockdom parses documents into a tree of blocks, executes macros like
tables of contents and footnotes, checks links and renders the tree as
Markdown, XHTML, XML or plain text.`,
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVarP(&opts.configFile, "config", "c", "", "YAML configuration file")
	root.PersistentFlags().StringVarP(&opts.from, "from", "f", "", "input syntax (markdown, xhtml, xml)")
	root.PersistentFlags().StringVarP(&opts.to, "to", "t", "", "output syntax (markdown, xhtml, xml, plain)")
	root.PersistentFlags().StringVar(&opts.trace, "trace", "", "trace level of library packages (debug, info, error)")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "verbose logging")
	root.AddCommand(newRenderCmd(opts), newTreeCmd(opts), newLinksCmd(opts), newServeCmd(opts))
	return root
}

// load reads the configuration file, if any, and applies command line flags
// on top of it.
func (opts *options) load(input string) (*config.Config, error) {
	cfg := config.Default()
	if opts.configFile != "" {
		var err error
		if cfg, err = config.Load(opts.configFile); err != nil {
			return nil, err
		}
	}
	if opts.from != "" {
		cfg.Input = opts.from
	} else if guess := syntax.Normalize(filepath.Ext(input)); input != "" && guess != filepath.Ext(input) {
		cfg.Input = guess
	}
	if opts.to != "" {
		cfg.Output = opts.to
	}
	if opts.trace != "" {
		cfg.Trace = opts.trace
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	setTraceLevel(cfg.Trace)
	return cfg, nil
}

func setTraceLevel(level string) {
	l := tracing.LevelError
	switch level {
	case "debug":
		l = tracing.LevelDebug
	case "info":
		l = tracing.LevelInfo
	}
	for _, key := range traceKeys {
		tracing.Select(key).SetTraceLevel(l)
	}
}

// logger creates the command line logger, writing to stderr.
func (opts *options) logger(cmd *cobra.Command) *log.Logger {
	level := log.InfoLevel
	if opts.verbose {
		level = log.DebugLevel
	}
	return log.NewWithOptions(cmd.ErrOrStderr(), log.Options{
		ReportTimestamp: false,
		Level:           level,
		Prefix:          "blockdom",
	})
}

// openInput opens the file named by the first argument, or stdin.
func openInput(cmd *cobra.Command, args []string) (io.ReadCloser, string, error) {
	if len(args) == 0 || args[0] == "-" {
		return io.NopCloser(cmd.InOrStdin()), "", nil
	}
	f, err := os.Open(args[0])
	if err != nil {
		return nil, "", fmt.Errorf("opening input: %w", err)
	}
	return f, args[0], nil
}

func inputName(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}
