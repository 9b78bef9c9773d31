// Package report runs the read-only pass that turns the frozen registries into
// unused-import diagnostics.
package report

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/gobwas/glob"
	"golang.org/x/sync/errgroup"

	"objcunused/internal/core/errors"
	"objcunused/internal/engine/analysis"
	"objcunused/internal/engine/matcher"
	"objcunused/internal/engine/symbols"
	"objcunused/internal/shared/observability"
	"objcunused/internal/shared/util"
)

// Diagnostic is one unused import, located at the main file's import line.
type Diagnostic struct {
	File        string            `json:"file"`
	Line        int               `json:"line"`
	Scope       symbols.FileScope `json:"scope"`
	Origin      string            `json:"origin"`
	SymbolCount int               `json:"symbol_count"`
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s:%d: warning: Unused import %s", d.File, d.Line, d.Scope)
}

type Options struct {
	// Exclude holds glob patterns for scopes that are never reported. Scopes
	// under Root are matched by their Root-relative path.
	Exclude []string
	Root    string

	// Workers bounds concurrent candidate evaluation; <= 0 means one.
	Workers         int
	DynamicReceiver string
	Logger          *slog.Logger
}

type Reporter struct {
	exclude         []glob.Glob
	root            string
	workers         int
	dynamicReceiver string
	logger          *slog.Logger
}

func New(opts Options) (*Reporter, error) {
	compiled := make([]glob.Glob, 0, len(opts.Exclude))
	for _, pattern := range opts.Exclude {
		g, err := glob.Compile(pattern, '/')
		if err != nil {
			return nil, errors.AddContext(
				errors.Wrap(err, errors.CodeValidationError, "invalid exclude pattern"),
				errors.CtxScope, pattern,
			)
		}
		compiled = append(compiled, g)
	}
	workers := opts.Workers
	if workers <= 0 {
		workers = 1
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Reporter{
		exclude:         compiled,
		root:            opts.Root,
		workers:         workers,
		dynamicReceiver: opts.DynamicReceiver,
		logger:          logger,
	}, nil
}

// Candidates lists the scopes eligible for a diagnostic: textual headers and
// imported modules, minus the main file, minus anything the main file never
// imported, minus excluded scopes.
func (r *Reporter) Candidates(actx *analysis.Context) []symbols.FileScope {
	seen := make(map[symbols.FileScope]bool)
	out := make([]symbols.FileScope, 0)
	add := func(scope symbols.FileScope) {
		if seen[scope] {
			return
		}
		seen[scope] = true
		if scope == actx.MainScope() {
			return
		}
		idx := actx.Imports()
		if !symbols.IsHeader(scope, actx.HeaderSuffixes()) && !idx.IsModule(scope) {
			return
		}
		if !idx.IsImported(scope) {
			return
		}
		if r.excluded(scope) {
			return
		}
		out = append(out, scope)
	}

	for _, scope := range actx.Table().Scopes() {
		add(scope)
	}
	for _, rec := range actx.Imports().Records() {
		add(rec.Scope)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Report evaluates every candidate against the main file's usages. The
// context must be frozen.
func (r *Reporter) Report(ctx context.Context, actx *analysis.Context) ([]Diagnostic, error) {
	if !actx.Frozen() {
		return nil, errors.New(errors.CodeConflict, "analysis context must be frozen before reporting")
	}

	ctx, span := observability.Tracer.Start(ctx, "report.Report")
	defer span.End()
	start := time.Now()
	defer func() {
		observability.PhaseDuration.WithLabelValues("report").Observe(time.Since(start).Seconds())
	}()

	m := matcher.New(actx.Hierarchy()).WithDynamicReceiver(r.dynamicReceiver)
	mainSet := actx.Table().Get(actx.MainScope())
	candidates := r.Candidates(actx)

	var (
		mu          sync.Mutex
		diagnostics = make([]Diagnostic, 0)
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.workers)
	for _, scope := range candidates {
		scope := scope
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			scopeSet := actx.Table().Get(scope)
			if decl, rule, used := m.Explain(scopeSet, mainSet); used {
				r.logger.Debug("import used", "scope", string(scope), "symbol", decl.String(), "rule", rule)
				return nil
			}
			rec, _ := actx.Imports().Lookup(scope)
			d := Diagnostic{
				File:        actx.MainPath(),
				Line:        rec.Line,
				Scope:       scope,
				Origin:      rec.Origin.String(),
				SymbolCount: scopeSet.Len(),
			}
			mu.Lock()
			diagnostics = append(diagnostics, d)
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.Slice(diagnostics, func(i, j int) bool {
		if diagnostics[i].Line != diagnostics[j].Line {
			return diagnostics[i].Line < diagnostics[j].Line
		}
		return diagnostics[i].Scope < diagnostics[j].Scope
	})
	observability.DiagnosticsTotal.Add(float64(len(diagnostics)))
	return diagnostics, nil
}

func (r *Reporter) excluded(scope symbols.FileScope) bool {
	if len(r.exclude) == 0 {
		return false
	}
	rel := util.RelativeTo(r.root, string(scope))
	for _, g := range r.exclude {
		if g.Match(rel) {
			return true
		}
	}
	return false
}
