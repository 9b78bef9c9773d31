package app

import (
	"context"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"objcunused/internal/core/errors"
	"objcunused/internal/engine/analysis"
	"objcunused/internal/engine/events"
	"objcunused/internal/engine/report"
	"objcunused/internal/shared/observability"
)

// Result is the outcome of one analysis run.
type Result struct {
	RunID       string
	MainFile    string
	ExitCode    int
	Diagnostics []report.Diagnostic
	Candidates  int
	Stats       analysis.Stats
	Duration    time.Duration
	FinishedAt  time.Time
}

// Analyze runs the front-end for mainFile, then reports unused imports from
// the frozen registries. A front-end failure yields an error carrying the
// front-end's exit code and no diagnostics.
func (a *App) Analyze(ctx context.Context, mainFile string) (Result, error) {
	ctx, span := observability.Tracer.Start(ctx, "App.Analyze", trace.WithAttributes(
		attribute.String("main_file", mainFile),
	))
	defer span.End()

	started := time.Now()
	mainFile = strings.TrimSpace(mainFile)
	if mainFile == "" {
		mainFile = a.Config.Analysis.MainFile
	}
	if mainFile == "" {
		return Result{ExitCode: 1}, errors.New(errors.CodeValidationError, "main file is required")
	}

	actx := analysis.New(mainFile, analysis.Options{
		HeaderSuffixes: a.Config.Analysis.HeaderSuffixes,
		Logger:         a.logger,
	})

	var sink events.Sink = actx
	var recorder *traceRecorder
	if path := a.Config.Frontend.SaveTrace; path != "" {
		recorder = newTraceRecorder(path, actx)
		sink = recorder
	}

	populateStart := time.Now()
	code, err := a.frontend.Run(ctx, mainFile, sink)
	observability.PhaseDuration.WithLabelValues("populate").Observe(time.Since(populateStart).Seconds())
	if recorder != nil {
		if ferr := recorder.flush(); ferr != nil {
			a.logger.Warn("failed to save event trace", "path", recorder.path, "error", ferr)
		}
	}
	if err != nil || code != 0 {
		observability.RunsTotal.WithLabelValues("frontend_failure").Inc()
		if code == 0 {
			code = 1
		}
		if err == nil {
			err = errors.New(errors.CodeFrontendFailure, "front-end exited with non-zero status")
		}
		err = errors.AddContext(err, errors.CtxExitCode, code)
		span.RecordError(err)
		span.SetStatus(codes.Error, "front-end failed")
		a.logger.Error("front-end failed", "main_file", mainFile, "exit_code", code, "error", err)
		return Result{MainFile: mainFile, ExitCode: code, Stats: actx.Stats(), Duration: time.Since(started)}, err
	}

	actx.Freeze()
	stats := actx.Stats()
	a.logger.Debug("registries populated",
		"main_file", mainFile,
		"events", stats.Events,
		"declarations", stats.Declarations,
		"usages", stats.Usages,
		"dropped", stats.DroppedTotal(),
	)
	if a.Config.Analysis.DebugPrint && a.debugOut != nil {
		if err := actx.Dump(a.debugOut); err != nil {
			a.logger.Warn("debug dump failed", "error", err)
		}
	}

	candidates := a.reporter.Candidates(actx)
	diags, err := a.reporter.Report(ctx, actx)
	if err != nil {
		observability.RunsTotal.WithLabelValues("error").Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, "report failed")
		return Result{MainFile: mainFile, ExitCode: 1, Stats: stats}, err
	}

	res := Result{
		MainFile:    mainFile,
		Diagnostics: diags,
		Candidates:  len(candidates),
		Stats:       stats,
		Duration:    time.Since(started),
		FinishedAt:  time.Now().UTC(),
	}
	res.RunID = a.recordRun(res)
	a.setLastRun(res)

	span.SetAttributes(attribute.Int("diagnostics", len(diags)))
	observability.RunsTotal.WithLabelValues("ok").Inc()
	return res, nil
}
