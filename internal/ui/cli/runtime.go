package cli

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	coreapp "objcunused/internal/core/app"
	"objcunused/internal/core/config"
	"objcunused/internal/core/errors"
	"objcunused/internal/shared/observability"
	"objcunused/internal/ui/report"
)

// Run executes the command line and returns the process exit code. A
// front-end failure exits with the front-end's own code.
func Run(args []string) int {
	return Execute(context.Background(), args, os.Stdout, os.Stderr)
}

func Execute(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	rt := &session{stdout: stdout, stderr: stderr}
	root := newRootCommand(rt)
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.ExecuteContext(ctx)
	if err == nil {
		return 0
	}
	fmt.Fprintf(stderr, "%s: %v\n", programName, err)
	return exitCodeFor(err)
}

func exitCodeFor(err error) int {
	if err == nil {
		return 0
	}
	if v, ok := errors.ContextValue(err, errors.CtxExitCode); ok {
		if code, ok := v.(int); ok && code > 0 {
			return code
		}
	}
	return 1
}

// setup configures logging and loads the effective configuration: config
// file, then environment, then command-line flags.
func (rt *session) setup() (*config.Config, error) {
	configureLogging(rt.stderr, rt.opts.verbose)
	config.LoadDotEnv(rt.opts.envFiles...)

	cfg, err := config.LoadOrDefault(rt.opts.configPath)
	if err != nil {
		return nil, err
	}
	applyFlagOverrides(rt.opts, cfg)
	if errs := config.Validate(cfg); len(errs) > 0 {
		return nil, errors.Wrap(stderrors.Join(errs...), errors.CodeValidationError, "invalid configuration")
	}
	return cfg, nil
}

func applyFlagOverrides(opts cliOptions, cfg *config.Config) {
	if opts.trace != "" {
		cfg.Frontend.Trace = opts.trace
		cfg.Frontend.Command = ""
	}
	if opts.frontend != "" {
		cfg.Frontend.Command = opts.frontend
		cfg.Frontend.Trace = ""
	}
	if opts.saveTrace != "" {
		cfg.Frontend.SaveTrace = opts.saveTrace
	}
	if opts.format != "" {
		cfg.Output.Format = strings.ToLower(strings.TrimSpace(opts.format))
	}
	if opts.output != "" {
		cfg.Output.Path = opts.output
	}
	if len(opts.exclude) > 0 {
		cfg.Exclude.Imports = append(cfg.Exclude.Imports, opts.exclude...)
	}
	if opts.debugPrint {
		cfg.Analysis.DebugPrint = true
	}
	if opts.workers > 0 {
		cfg.Analysis.Workers = opts.workers
	}
}

func mainFileArg(args []string, cfg *config.Config) string {
	if len(args) > 0 {
		return args[0]
	}
	return cfg.Analysis.MainFile
}

func (rt *session) newApp(cfg *config.Config) (*coreapp.App, error) {
	a, err := coreapp.New(cfg)
	if err != nil {
		return nil, err
	}
	a.SetDebugOutput(rt.stdout)
	return a, nil
}

func startTracing(ctx context.Context, cfg *config.Config) func() {
	if !cfg.Observability.EnableTracing {
		return func() {}
	}
	shutdown, err := observability.SetupTracing(ctx, cfg.Observability.OTLPEndpoint, cfg.Observability.OTLPInsecure)
	if err != nil {
		slog.Warn("tracing disabled", "error", err)
		return func() {}
	}
	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(ctx); err != nil {
			slog.Warn("failed to flush traces", "error", err)
		}
	}
}

func closeApp(a *coreapp.App) {
	if err := a.Close(context.Background()); err != nil {
		slog.Warn("failed to close app", "error", err)
	}
}

func (rt *session) runAnalyze(cmd *cobra.Command, args []string) error {
	cfg, err := rt.setup()
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	defer startTracing(ctx, cfg)()

	a, err := rt.newApp(cfg)
	if err != nil {
		return err
	}
	defer closeApp(a)

	res, err := a.Analyze(ctx, mainFileArg(args, cfg))
	if err != nil {
		return err
	}
	if err := a.WriteReport(rt.stdout, res); err != nil {
		return err
	}
	rt.printSummary(res, cfg)

	if path := cfg.Observability.MetricsFile; path != "" {
		if err := observability.WriteMetricsFile(path); err != nil {
			slog.Warn("failed to write metrics file", "path", path, "error", err)
		}
	}
	return nil
}

func (rt *session) runWatch(cmd *cobra.Command, args []string) error {
	cfg, err := rt.setup()
	if err != nil {
		return err
	}
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	defer startTracing(ctx, cfg)()

	a, err := rt.newApp(cfg)
	if err != nil {
		return err
	}
	defer closeApp(a)

	if cfg.Observability.EnableMetrics {
		srv := NewObservabilityServer(fmt.Sprintf(":%d", cfg.Observability.MetricsPort), coreapp.NewHealthService(a))
		if err := srv.Start(ctx); err != nil {
			return errors.Wrap(err, errors.CodeInternal, "start observability server")
		}
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = srv.Stop(shutdownCtx)
		}()
	}

	return a.Watch(ctx, mainFileArg(args, cfg), cfg.Watch.Paths, func(res coreapp.Result, err error) {
		if err != nil {
			slog.Error("analysis failed", "main_file", res.MainFile, "exit_code", res.ExitCode, "error", err)
			return
		}
		if err := a.WriteReport(rt.stdout, res); err != nil {
			slog.Error("failed to write report", "error", err)
			return
		}
		rt.printSummary(res, cfg)
	})
}

func (rt *session) runHistory(_ *cobra.Command, args []string) error {
	cfg, err := rt.setup()
	if err != nil {
		return err
	}
	a, err := rt.newApp(cfg)
	if err != nil {
		return err
	}
	defer closeApp(a)

	runs, err := a.History(mainFileArg(args, cfg), rt.opts.historyLimit)
	if err != nil {
		return err
	}
	var out []byte
	switch strings.ToLower(rt.opts.historyFormat) {
	case "", "tsv":
		out, err = report.RenderHistoryTSV(runs)
	case "json":
		out, err = report.RenderHistoryJSON(runs)
	default:
		return errors.New(errors.CodeNotSupported, fmt.Sprintf("unsupported history format %q", rt.opts.historyFormat))
	}
	if err != nil {
		return err
	}
	_, err = rt.stdout.Write(out)
	return err
}

// printSummary writes a one-line styled status to stderr so it never mixes
// with a report on stdout.
func (rt *session) printSummary(res coreapp.Result, cfg *config.Config) {
	r := lipgloss.NewRenderer(rt.stderr)
	ok := r.NewStyle().Foreground(lipgloss.Color("#10B981")).Bold(true)
	warn := r.NewStyle().Foreground(lipgloss.Color("#FBBF24")).Bold(true)
	muted := r.NewStyle().Foreground(lipgloss.Color("#64748B")).Italic(true)

	name := filepath.Base(res.MainFile)
	var headline string
	if n := len(res.Diagnostics); n == 0 {
		headline = ok.Render("no unused imports in " + name)
	} else {
		headline = warn.Render(fmt.Sprintf("%d unused import(s) in %s", n, name))
	}
	details := fmt.Sprintf("%d candidates, %d events, %d dropped, %s",
		res.Candidates, res.Stats.Events, res.Stats.DroppedTotal(), res.Duration.Round(time.Millisecond))
	if cfg.Output.Path != "" {
		details += ", report " + cfg.Output.Path
	}
	fmt.Fprintf(rt.stderr, "%s %s\n", headline, muted.Render("("+details+")"))
}

func configureLogging(w io.Writer, verbose bool) {
	logLevel := slog.LevelInfo
	if verbose {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: logLevel}))
	slog.SetDefault(logger)
}
