package app

import (
	"context"
	stderrors "errors"
	"io"
	"strings"
	"time"

	"objcunused/internal/core/errors"
	"objcunused/internal/core/ports"
	"objcunused/internal/data/history"
	"objcunused/internal/shared/observability"
)

const (
	historyBatchSize = 16
	flushInterval    = 100 * time.Millisecond
)

// History returns up to limit stored runs for mainFile, newest first. An empty
// mainFile lists every file in the project.
func (a *App) History(mainFile string, limit int) ([]history.Run, error) {
	if a.store == nil {
		return nil, errors.New(errors.CodeNotSupported, "run history is disabled; set db.enabled")
	}
	runs, err := a.store.LoadRuns(a.projectKey(), mainFile, limit)
	if err != nil {
		return nil, errors.AddContext(err, errors.CtxOperation, "load_runs")
	}
	return runs, nil
}

func (a *App) projectKey() string {
	return strings.TrimSpace(a.Config.DB.ProjectKey)
}

func toHistoryRun(projectKey string, res Result) history.Run {
	run := history.Run{
		ProjectKey:     projectKey,
		MainFile:       res.MainFile,
		Timestamp:      res.FinishedAt,
		ExitCode:       res.ExitCode,
		EventCount:     res.Stats.Events,
		DroppedCount:   res.Stats.DroppedTotal(),
		CandidateCount: res.Candidates,
		UnusedCount:    len(res.Diagnostics),
		DurationMillis: res.Duration.Milliseconds(),
		Diagnostics:    make([]history.Diagnostic, 0, len(res.Diagnostics)),
	}
	for _, d := range res.Diagnostics {
		run.Diagnostics = append(run.Diagnostics, history.Diagnostic{
			Line:        d.Line,
			Scope:       string(d.Scope),
			Origin:      d.Origin,
			SymbolCount: d.SymbolCount,
		})
	}
	return run
}

// recordRun stores res and returns its run id. History failures never fail
// the analysis; they are logged and counted. Queued runs return an empty id.
func (a *App) recordRun(res Result) string {
	if a.store == nil {
		return ""
	}
	run := toHistoryRun(a.projectKey(), res)
	if a.runQueue != nil && a.workerCancel != nil {
		switch a.runQueue.Enqueue(run) {
		case ports.EnqueueAccepted:
			a.updateQueueMetrics()
			return ""
		default:
			observability.HistoryQueueDroppedTotal.Inc()
		}
	}
	id, err := a.saveRuns([]history.Run{run})
	if err != nil {
		return ""
	}
	return id
}

// saveRuns writes runs in order, prunes once, and returns the last run id.
func (a *App) saveRuns(runs []history.Run) (string, error) {
	var (
		lastID   string
		firstErr error
	)
	for _, run := range runs {
		id, err := a.store.SaveRun(run)
		if err != nil {
			observability.HistoryWriteErrorsTotal.Inc()
			a.logger.Warn("failed to record run history", "main_file", run.MainFile, "error", err)
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		lastID = id
	}
	if lastID != "" {
		if deleted, err := a.store.Prune(a.projectKey(), a.Config.DB.KeepRuns); err != nil {
			a.logger.Warn("failed to prune run history", "error", err)
		} else if deleted > 0 {
			a.logger.Debug("pruned run history", "deleted", deleted)
		}
	}
	return lastID, firstErr
}

func (a *App) runHistoryWriter(ctx context.Context) {
	defer close(a.workerDone)
	for {
		batch, err := a.runQueue.DequeueBatch(ctx, historyBatchSize, flushInterval)
		if len(batch) > 0 {
			_, _ = a.saveRuns(batch)
			a.updateQueueMetrics()
		}
		switch {
		case err == nil:
		case stderrors.Is(err, io.EOF), stderrors.Is(err, context.Canceled):
			return
		default:
			a.logger.Warn("history queue dequeue failed", "error", err)
		}
	}
}

func (a *App) stopHistoryWriter(ctx context.Context) error {
	if a.workerCancel == nil {
		return nil
	}
	a.workerCancel()
	a.workerCancel = nil
	select {
	case <-a.workerDone:
	case <-ctx.Done():
		return ctx.Err()
	}
	a.workerDone = nil

	if err := a.runQueue.Close(); err != nil {
		return err
	}
	// Drain whatever the writer had not picked up before it stopped.
	for {
		batch, err := a.runQueue.DequeueBatch(ctx, historyBatchSize, 0)
		if len(batch) > 0 {
			_, _ = a.saveRuns(batch)
		}
		if err != nil || len(batch) == 0 {
			break
		}
	}
	a.runQueue = nil
	a.updateQueueMetrics()
	return nil
}

func (a *App) updateQueueMetrics() {
	type lengther interface{ Len() int }
	depth := 0
	if q, ok := a.runQueue.(lengther); ok {
		depth = q.Len()
	}
	observability.HistoryQueueDepth.Set(float64(depth))
}
