package cli

import (
	"io"

	"github.com/spf13/cobra"

	"objcunused/internal/shared/version"
)

const programName = "objc-unused-imports"

type cliOptions struct {
	configPath string
	envFiles   []string
	trace      string
	saveTrace  string
	frontend   string
	format     string
	output     string
	exclude    []string
	debugPrint bool
	verbose    bool
	workers    int

	historyLimit  int
	historyFormat string
}

// session carries the streams and parsed options shared by every command.
type session struct {
	opts   cliOptions
	stdout io.Writer
	stderr io.Writer
}

func newRootCommand(rt *session) *cobra.Command {
	root := &cobra.Command{
		Use:   programName + " [main-file]",
		Short: "Report Objective-C imports whose declarations are never used",
		Long: `Analyze one Objective-C translation unit and report every header or module
import whose declarations are not referenced by the main file.

Events come from a front-end command (frontend.command, --frontend) that
prints JSON lines, or from a recorded trace (frontend.trace, --trace).

Examples:
  ` + programName + ` --trace build/main.events.jsonl App/main.m
  ` + programName + ` --frontend objc-events --format sarif -o unused.sarif App/main.m`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       version.Version,
		RunE: func(cmd *cobra.Command, args []string) error {
			return rt.runAnalyze(cmd, args)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&rt.opts.configPath, "config", "c", "", "Path to config file (default ./objcunused.toml)")
	pf.StringSliceVar(&rt.opts.envFiles, "env-file", nil, "Load environment overrides from these files (default .env)")
	pf.StringVar(&rt.opts.trace, "trace", "", "Replay a recorded event trace instead of running a front-end")
	pf.StringVar(&rt.opts.saveTrace, "save-trace", "", "Record the front-end's events to this file for later --trace replays")
	pf.StringVar(&rt.opts.frontend, "frontend", "", "Front-end command that prints events as JSON lines")
	pf.StringVarP(&rt.opts.format, "format", "f", "", "Output format: text, json, sarif, markdown")
	pf.StringVarP(&rt.opts.output, "output", "o", "", "Write the report to this file instead of stdout")
	pf.StringSliceVar(&rt.opts.exclude, "exclude", nil, "Glob of import scopes never reported (repeatable)")
	pf.BoolVar(&rt.opts.debugPrint, "debug-print", false, "Dump every scope and its symbols before the warnings")
	pf.BoolVarP(&rt.opts.verbose, "verbose", "v", false, "Enable verbose logging")
	pf.IntVar(&rt.opts.workers, "workers", 0, "Concurrent candidate evaluations (default NumCPU)")

	root.AddCommand(newWatchCommand(rt), newHistoryCommand(rt), newVersionCommand(rt))
	return root
}

func newWatchCommand(rt *session) *cobra.Command {
	return &cobra.Command{
		Use:   "watch [main-file]",
		Short: "Re-run the analysis whenever the trace or sources change",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return rt.runWatch(cmd, args)
		},
	}
}

func newHistoryCommand(rt *session) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history [main-file]",
		Short: "List recorded runs, newest first (requires db.enabled)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return rt.runHistory(cmd, args)
		},
	}
	cmd.Flags().IntVarP(&rt.opts.historyLimit, "limit", "n", 20, "Maximum runs to list; 0 lists all")
	cmd.Flags().StringVar(&rt.opts.historyFormat, "history-format", "tsv", "History output: tsv or json")
	return cmd
}

func newVersionCommand(rt *session) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version and exit",
		Args:  cobra.NoArgs,
		Run: func(_ *cobra.Command, _ []string) {
			io.WriteString(rt.stdout, programName+" "+version.Version+"\n")
		},
	}
}
