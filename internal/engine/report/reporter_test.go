package report

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"objcunused/internal/core/errors"
	"objcunused/internal/engine/analysis"
	"objcunused/internal/engine/events"
	"objcunused/internal/engine/symbols"
)

const mainFile = "App/main.m"

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func build(t *testing.T, evs ...events.Event) *analysis.Context {
	t.Helper()
	actx := analysis.New(mainFile, analysis.Options{Logger: quietLogger()})
	for _, ev := range evs {
		require.NoError(t, actx.Emit(ev))
	}
	actx.Freeze()
	return actx
}

func run(t *testing.T, actx *analysis.Context, opts Options) []Diagnostic {
	t.Helper()
	opts.Logger = quietLogger()
	r, err := New(opts)
	require.NoError(t, err)
	diags, err := r.Report(context.Background(), actx)
	require.NoError(t, err)
	return diags
}

func header(file string, line int) *events.Origin {
	return &events.Origin{File: file, IncludedFrom: mainFile, IncludeLine: line}
}

func scopes(diags []Diagnostic) []symbols.FileScope {
	out := make([]symbols.FileScope, 0, len(diags))
	for _, d := range diags {
		out = append(out, d.Scope)
	}
	return out
}

func TestReport_UsedAndUnusedHeaders(t *testing.T) {
	actx := build(t,
		events.DeclEvent{Origin: header("Used.h", 2), Kind: symbols.KindClassDeclaration, Name: "Used"},
		events.DeclEvent{Origin: header("Unused.h", 3), Kind: symbols.KindClassDeclaration, Name: "Unused"},
		events.UsageEvent{Kind: symbols.KindType, Name: "Used"},
	)

	diags := run(t, actx, Options{})
	require.Len(t, diags, 1)
	assert.Equal(t, "App/main.m:3: warning: Unused import Unused.h", diags[0].String())
	assert.Equal(t, "header", diags[0].Origin)
	assert.Equal(t, 1, diags[0].SymbolCount)
}

func TestReport_EmptyImportedHeaderIsUnused(t *testing.T) {
	actx := build(t, events.ImportEvent{Scope: "Empty.h", Line: 7})

	diags := run(t, actx, Options{})
	require.Len(t, diags, 1)
	assert.Equal(t, symbols.FileScope("Empty.h"), diags[0].Scope)
	assert.Equal(t, 7, diags[0].Line)
	assert.Equal(t, 0, diags[0].SymbolCount)
}

func TestReport_ModuleMacroOwnership(t *testing.T) {
	actx := build(t,
		events.ImportEvent{Scope: "MyKit", Line: 1, Module: true},
		events.MacroExpandedEvent{Origin: &events.Origin{File: mainFile}, Name: "FOO", OwningModules: []string{"MyKit"}},
	)
	assert.Empty(t, run(t, actx, Options{}))
}

func TestReport_ModuleWithoutMacroOwnershipIsUnused(t *testing.T) {
	actx := build(t,
		events.ImportEvent{Scope: "MyKit", Line: 1, Module: true},
		events.MacroExpandedEvent{Origin: &events.Origin{File: mainFile}, Name: "FOO"},
	)
	diags := run(t, actx, Options{})
	require.Len(t, diags, 1)
	assert.Equal(t, "module", diags[0].Origin)
}

func TestReport_LineComesFromFirstRecordedImport(t *testing.T) {
	actx := build(t,
		events.DeclEvent{Origin: header("A.h", 5), Kind: symbols.KindStructDeclaration, Name: "S"},
		events.DeclEvent{Origin: header("A.h", 12), Kind: symbols.KindStructDeclaration, Name: "T"},
	)
	diags := run(t, actx, Options{})
	require.Len(t, diags, 1)
	assert.Equal(t, 5, diags[0].Line)
}

func TestReport_NonImportedScopesNeverReported(t *testing.T) {
	actx := build(t,
		events.DeclEvent{Scope: "Stray.h", Kind: symbols.KindFunctionDeclaration, Name: "stray"},
		events.DeclEvent{Scope: "SomeModule", Kind: symbols.KindFunctionDeclaration, Name: "f"},
	)
	assert.Empty(t, run(t, actx, Options{}))
}

func TestReport_ClassAwareMethodUsage(t *testing.T) {
	base := []events.Event{
		events.DeclEvent{Origin: header("Base.h", 1), Kind: symbols.KindMethodDeclaration, Name: "foo", Owner: "Base", Container: events.ContainerInterface},
		events.SuperclassEvent{Subclass: "Derived", Superclass: "Base"},
	}

	tests := []struct {
		name   string
		owner  string
		unused bool
	}{
		{"id receiver", "id", false},
		{"subclass receiver", "Derived", false},
		{"unrelated receiver", "Unrelated", true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			evs := append([]events.Event{}, base...)
			evs = append(evs, events.UsageEvent{Kind: symbols.KindMethod, Name: "foo", Owner: tc.owner})
			diags := run(t, build(t, evs...), Options{})
			if tc.unused {
				assert.Equal(t, []symbols.FileScope{"Base.h"}, scopes(diags))
			} else {
				assert.Empty(t, diags)
			}
		})
	}
}

func TestReport_ExcludeGlobs(t *testing.T) {
	actx := build(t,
		events.ImportEvent{Scope: "Pods/Vendor/Thing.h", Line: 1},
		events.ImportEvent{Scope: "Local.h", Line: 2},
	)
	diags := run(t, actx, Options{Exclude: []string{"Pods/**"}})
	assert.Equal(t, []symbols.FileScope{"Local.h"}, scopes(diags))
}

func TestReport_ParallelWorkersAreDeterministic(t *testing.T) {
	evs := make([]events.Event, 0)
	for i, name := range []string{"D.h", "B.h", "C.h", "A.h"} {
		evs = append(evs, events.ImportEvent{Scope: symbols.FileScope(name), Line: 10 - i})
	}
	diags := run(t, build(t, evs...), Options{Workers: 4})
	assert.Equal(t, []symbols.FileScope{"A.h", "C.h", "B.h", "D.h"}, scopes(diags))
}

func TestReport_RequiresFrozenContext(t *testing.T) {
	actx := analysis.New(mainFile, analysis.Options{Logger: quietLogger()})
	r, err := New(Options{})
	require.NoError(t, err)
	_, err = r.Report(context.Background(), actx)
	assert.True(t, errors.IsCode(err, errors.CodeConflict))
}

func TestNew_InvalidExcludePattern(t *testing.T) {
	_, err := New(Options{Exclude: []string{"[unclosed"}})
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.CodeValidationError))
}

func TestCandidatesSkipMain(t *testing.T) {
	actx := build(t,
		events.ImportEvent{Scope: mainFile, Line: 1},
		events.UsageEvent{Kind: symbols.KindType, Name: "X"},
	)
	r, err := New(Options{})
	require.NoError(t, err)
	assert.Empty(t, r.Candidates(actx))
}

func TestReport_ExcludeRelativeToRoot(t *testing.T) {
	actx := build(t,
		events.ImportEvent{Scope: "/work/app/Pods/Kit/Kit.h", Line: 1},
		events.ImportEvent{Scope: "/work/app/Sources/Own.h", Line: 2},
	)
	diags := run(t, actx, Options{Exclude: []string{"Pods/**"}, Root: "/work/app"})
	assert.Equal(t, []symbols.FileScope{"/work/app/Sources/Own.h"}, scopes(diags))
}

func TestReport_HeaderSpellingsShareOneScope(t *testing.T) {
	actx := build(t,
		events.ImportEvent{Scope: "./Foo.h", Line: 3},
		events.DeclEvent{Origin: header("./Foo.h", 3), Kind: symbols.KindClassDeclaration, Name: "Foo"},
		events.DeclEvent{Scope: "Lib/../Bar.h", Kind: symbols.KindFunctionDeclaration, Name: "bar"},
		events.ImportEvent{Scope: "Bar.h", Line: 4},
		events.UsageEvent{Kind: symbols.KindClass, Name: "Foo"},
		events.UsageEvent{Kind: symbols.KindFunction, Name: "bar"},
	)

	assert.Empty(t, run(t, actx, Options{}))
}

func TestReport_MainDefinitionsUseHeaderPrototypes(t *testing.T) {
	inMain := &events.Origin{File: mainFile}
	actx := build(t,
		events.DeclEvent{Origin: header("Util.h", 2), Kind: symbols.KindFunctionDeclaration, Name: "helper"},
		events.DeclEvent{Origin: header("Vars.h", 3), Kind: symbols.KindVariableDeclaration, Name: "gCount"},
		events.DeclEvent{Origin: header("Other.h", 4), Kind: symbols.KindFunctionDeclaration, Name: "other"},
		events.DeclEvent{Origin: inMain, Kind: symbols.KindFunctionDeclaration, Name: "helper"},
		events.DeclEvent{Origin: inMain, Kind: symbols.KindVariableDeclaration, Name: "gCount"},
	)

	diags := run(t, actx, Options{})
	assert.Equal(t, []symbols.FileScope{"Other.h"}, scopes(diags))
}

func TestReport_DiagnosticKeepsMainPathAsGiven(t *testing.T) {
	actx := analysis.New("./App/main.m", analysis.Options{Logger: quietLogger()})
	require.NoError(t, actx.Emit(events.DeclEvent{
		Origin: &events.Origin{File: "Unused.h", IncludedFrom: "App/main.m", IncludeLine: 5},
		Kind:   symbols.KindClassDeclaration,
		Name:   "Unused",
	}))
	actx.Freeze()

	diags := run(t, actx, Options{})
	require.Len(t, diags, 1)
	assert.Equal(t, "./App/main.m:5: warning: Unused import Unused.h", diags[0].String())
}
