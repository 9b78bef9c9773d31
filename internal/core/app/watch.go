package app

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/gobwas/glob"

	"objcunused/internal/core/watcher"
	"objcunused/internal/shared/util"
)

// Watch analyzes mainFile once, then again whenever a watched file changes,
// until ctx is done. Changes arriving while a run is in progress collapse
// into a single follow-up run. onResult sees every run, failed ones included.
func (a *App) Watch(ctx context.Context, mainFile string, paths []string, onResult func(Result, error)) error {
	if onResult == nil {
		onResult = func(Result, error) {}
	}
	if len(paths) == 0 {
		paths = a.defaultWatchPaths(mainFile)
	}

	trigger := make(chan struct{}, 1)
	notify := func() {
		select {
		case trigger <- struct{}{}:
		default:
		}
	}

	w, err := watcher.New(watcher.Options{
		Debounce:     a.Config.Watch.Debounce,
		ExcludeDirs:  watcher.DefaultExcludeDirs,
		ExcludeFiles: a.watchExcludeFiles(),
		Extensions:   watcher.DefaultExtensions,
	}, func(changed []string) {
		a.logger.Debug("watched files changed", "count", len(changed), "files", changed)
		notify()
	})
	if err != nil {
		return err
	}
	defer w.Close()
	if err := w.Watch(paths); err != nil {
		return err
	}
	a.logger.Info("watching for changes", "paths", paths)

	a.StartHistoryWriter()
	limiter := util.NewRerunLimiter(a.Config.Watch.RerunInterval(), 1)

	notify()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-trigger:
		}
		if err := limiter.Wait(ctx); err != nil {
			return nil
		}
		res, err := a.Analyze(ctx, mainFile)
		if ctx.Err() != nil {
			return nil
		}
		onResult(res, err)
	}
}

// watchExcludeFiles ignores the recorded trace, which every run rewrites, and
// headers whose base name matches an exclude.imports pattern.
func (a *App) watchExcludeFiles() []string {
	var patterns []string
	if path := a.Config.Frontend.SaveTrace; path != "" {
		patterns = append(patterns, glob.QuoteMeta(strings.ToLower(filepath.Base(path))))
	}
	for _, pattern := range a.Config.Exclude.Imports {
		if strings.Contains(pattern, "/") {
			continue
		}
		patterns = append(patterns, strings.ToLower(pattern))
	}
	return patterns
}

func (a *App) defaultWatchPaths(mainFile string) []string {
	if len(a.Config.Watch.Paths) > 0 {
		return a.Config.Watch.Paths
	}
	var paths []string
	if trace := strings.TrimSpace(a.Config.Frontend.Trace); trace != "" {
		paths = append(paths, trace)
	}
	if mainFile == "" {
		mainFile = a.Config.Analysis.MainFile
	}
	if mainFile != "" {
		paths = append(paths, filepath.Dir(mainFile))
	}
	return paths
}
