package app

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"time"

	"objcunused/internal/core/config"
	"objcunused/internal/core/errors"
	"objcunused/internal/core/ports"
	"objcunused/internal/data/history"
	"objcunused/internal/data/queue"
	"objcunused/internal/engine/report"
)

type App struct {
	Config *config.Config

	logger   *slog.Logger
	frontend ports.Frontend
	store    ports.RunStore
	reporter *report.Reporter
	debugOut io.Writer

	// Set only while a background history writer is running.
	runQueue     ports.RunQueue
	workerCancel context.CancelFunc
	workerDone   chan struct{}

	lastMu  sync.RWMutex
	lastRun *Result
}

// Dependencies lets callers replace the front-end and history store, mostly
// for tests. Nil Store leaves history disabled regardless of config.
type Dependencies struct {
	Frontend ports.Frontend
	Store    ports.RunStore
	Queue    ports.RunQueue
	Logger   *slog.Logger
	DebugOut io.Writer
}

// New builds an App from cfg, constructing the configured front-end and
// opening the history store when db.enabled is set.
func New(cfg *config.Config) (*App, error) {
	if cfg == nil {
		return nil, errors.New(errors.CodeValidationError, "config is required")
	}
	var frontend ports.Frontend = unconfiguredFrontend{}
	if cfg.Frontend.Command != "" || cfg.Frontend.Trace != "" {
		fe, err := NewFrontend(cfg.Frontend)
		if err != nil {
			return nil, err
		}
		frontend = fe
	}

	deps := Dependencies{Frontend: frontend}
	if cfg.DB.Enabled {
		store, err := history.Open(cfg.DB.Path, cfg.DB.BusyTimeout)
		if err != nil {
			return nil, errors.AddContext(
				errors.Wrap(err, errors.CodeInternal, "open history store"),
				errors.CtxPath, cfg.DB.Path,
			)
		}
		deps.Store = store
	}
	a, err := NewWithDependencies(cfg, deps)
	if err != nil && deps.Store != nil {
		_ = deps.Store.Close()
	}
	return a, err
}

func NewWithDependencies(cfg *config.Config, deps Dependencies) (*App, error) {
	if cfg == nil {
		return nil, errors.New(errors.CodeValidationError, "config is required")
	}
	if deps.Frontend == nil {
		return nil, errors.New(errors.CodeValidationError, "front-end dependency is required")
	}
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	reporter, err := report.New(report.Options{
		Exclude:         cfg.Exclude.Imports,
		Root:            cfg.Analysis.ProjectRoot,
		Workers:         cfg.Analysis.Workers,
		DynamicReceiver: cfg.Analysis.DynamicReceiver,
		Logger:          logger,
	})
	if err != nil {
		return nil, err
	}

	return &App{
		Config:   cfg,
		logger:   logger,
		frontend: deps.Frontend,
		store:    deps.Store,
		runQueue: deps.Queue,
		reporter: reporter,
		debugOut: deps.DebugOut,
	}, nil
}

// SetDebugOutput sets where analysis.debug_print dumps go.
func (a *App) SetDebugOutput(w io.Writer) {
	a.debugOut = w
}

// LastRun returns the most recent completed result, if any.
func (a *App) LastRun() (Result, bool) {
	a.lastMu.RLock()
	defer a.lastMu.RUnlock()
	if a.lastRun == nil {
		return Result{}, false
	}
	return *a.lastRun, true
}

func (a *App) setLastRun(res Result) {
	a.lastMu.Lock()
	defer a.lastMu.Unlock()
	a.lastRun = &res
}

// StartHistoryWriter moves history writes off the analysis path. It is a
// no-op when history is disabled or db.write_queue is zero.
func (a *App) StartHistoryWriter() {
	if a == nil || a.store == nil || a.workerCancel != nil {
		return
	}
	if a.runQueue == nil {
		if a.Config.DB.WriteQueue <= 0 {
			return
		}
		a.runQueue = queue.NewMemoryQueue(a.Config.DB.WriteQueue)
	}
	ctx, cancel := context.WithCancel(context.Background())
	a.workerCancel = cancel
	a.workerDone = make(chan struct{})
	go a.runHistoryWriter(ctx)
}

// Close stops the history writer, flushing queued runs, and closes the store.
func (a *App) Close(ctx context.Context) error {
	if a == nil {
		return nil
	}
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, 10*time.Second)
		defer cancel()
	}
	if err := a.stopHistoryWriter(ctx); err != nil {
		return err
	}
	if a.store != nil {
		if err := a.store.Close(); err != nil {
			return err
		}
		a.store = nil
	}
	return nil
}
