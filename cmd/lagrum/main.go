/*
lagrum is a console utility segmenting Swedish statute text.
Usage is

	lagrum segment [flags] [<file>...]
	lagrum extract --rule <name> [flags] [<file>...]
	lagrum grammar [--json] [<file>]
	lagrum classes [<text>...]

Documents are read from standard input if no files are given.
Output is a table on terminal and JSON lines otherwise, --json or --table forces the format (--json wins).
Settings are taken from configuration file (--config or LAGRUM_CONFIG) and LAGRUM_* environment variables,
see "lagrum env".
*/
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/ava12/lagrum/internal/config"
	"github.com/ava12/lagrum/internal/logutil"
)

// app holds settings shared by commands.
type app struct {
	configName string
	flags      config.Config
	json       bool
	table      bool
	trace      bool

	cfg    *config.Config
	logger *slog.Logger
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if e := newRootCmd(os.Stderr).ExecuteContext(ctx); e != nil {
		fmt.Fprintln(os.Stderr, e.Error())
		stop()
		os.Exit(1)
	}
}

func newRootCmd(logOutput io.Writer) *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:           "lagrum",
		Short:         "Grammar-driven segmentation of Swedish statute text",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd, logOutput)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.configName, "config", "", "configuration file name (default $LAGRUM_CONFIG)")
	pf.StringVar(&a.flags.Grammar, "grammar", "", "grammar description file (default built-in grammar)")
	pf.StringVar(&a.flags.Rule, "rule", "", "start rule for segment, entity rule for extract")
	pf.StringVar(&a.flags.Encoding, "encoding", config.DefaultEncoding, "document encoding")
	pf.BoolVar(&a.flags.NFC, "nfc", false, "apply Unicode NFC normalization to documents")
	pf.IntVar(&a.flags.Workers, "workers", 0, "number of documents processed in parallel, 0 means the number of CPUs")
	pf.Float64Var(&a.flags.OtherThreshold, "other-threshold", config.DefaultOtherThreshold, "share of unclassified spans reported as a warning")
	pf.BoolVar(&a.flags.Debug, "debug", false, "log debug messages")
	pf.BoolVar(&a.trace, "trace", false, "log trace messages")
	pf.BoolVar(&a.json, "json", false, "output JSON")
	pf.BoolVar(&a.table, "table", false, "output table")
	_ = pf.MarkHidden("trace")

	root.AddCommand(
		segmentCmd(a),
		extractCmd(a),
		grammarCmd(a),
		classesCmd(a),
		envCmd(a),
	)
	return root
}

// setup loads configuration with flag overrides and creates logger.
func (a *app) setup(cmd *cobra.Command, logOutput io.Writer) error {
	cfg, e := config.Load(a.configName)
	if e != nil {
		return e
	}

	flags := cmd.Flags()
	if flags.Changed("grammar") {
		cfg.Grammar = a.flags.Grammar
	}
	if flags.Changed("rule") {
		cfg.Rule = a.flags.Rule
	}
	if flags.Changed("encoding") {
		cfg.Encoding = a.flags.Encoding
	}
	if flags.Changed("nfc") {
		cfg.NFC = a.flags.NFC
	}
	if flags.Changed("workers") {
		cfg.Workers = a.flags.Workers
	}
	if flags.Changed("other-threshold") {
		cfg.OtherThreshold = a.flags.OtherThreshold
	}
	if flags.Changed("debug") {
		cfg.Debug = a.flags.Debug
	}
	if e = cfg.Validate(); e != nil {
		return e
	}

	a.cfg = cfg
	a.logger = logutil.NewLogger(logOutput, logutil.Level(cfg.Debug, a.trace))
	a.logger.Debug("configuration", "config", cfg.String())
	return nil
}

// useJSON reports whether output to w must be JSON lines.
func (a *app) useJSON(w io.Writer) bool {
	if a.json || a.table {
		return a.json
	}

	f, ok := w.(*os.File)
	return !ok || !term.IsTerminal(int(f.Fd()))
}
