// Package analysis owns the per-run registries and applies front-end events to
// them.
package analysis

import (
	"log/slog"
	"path/filepath"

	"objcunused/internal/core/errors"
	"objcunused/internal/engine/events"
	"objcunused/internal/engine/hierarchy"
	"objcunused/internal/engine/imports"
	"objcunused/internal/engine/macros"
	"objcunused/internal/engine/symbols"
	"objcunused/internal/shared/observability"
)

type Options struct {
	HeaderSuffixes []string
	Logger         *slog.Logger
}

// Context is the state of one analysis run. It is written only while events
// are applied and read-only once frozen.
type Context struct {
	mainPath  string
	mainFile  symbols.FileScope
	suffixes  []string
	logger    *slog.Logger
	frozen    bool
	table     *symbols.Table
	hierarchy *hierarchy.Index
	imports   *imports.Index
	macros    *macros.Index
	stats     Stats
}

func New(mainFile string, opts Options) *Context {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	suffixes := opts.HeaderSuffixes
	if len(suffixes) == 0 {
		suffixes = symbols.DefaultHeaderSuffixes
	}
	table := symbols.NewTable()
	return &Context{
		mainPath:  mainFile,
		mainFile:  symbols.FileScope(filepath.Clean(mainFile)),
		suffixes:  suffixes,
		logger:    logger,
		table:     table,
		hierarchy: hierarchy.New(),
		imports:   imports.New(),
		macros:    macros.New(table),
		stats:     Stats{Dropped: make(map[DropReason]int)},
	}
}

func (c *Context) MainScope() symbols.FileScope { return c.mainFile }
func (c *Context) MainPath() string              { return c.mainPath }
func (c *Context) HeaderSuffixes() []string     { return c.suffixes }
func (c *Context) Table() *symbols.Table         { return c.table }
func (c *Context) Hierarchy() *hierarchy.Index   { return c.hierarchy }
func (c *Context) Imports() *imports.Index       { return c.imports }
func (c *Context) Stats() Stats                  { return c.stats.clone() }
func (c *Context) Frozen() bool                  { return c.frozen }

// Freeze ends the population phase.
func (c *Context) Freeze() {
	c.frozen = true
}

// Emit applies one event. Skippable conditions narrow the recorded facts and
// never fail the run; only emitting into a frozen context is an error.
func (c *Context) Emit(e events.Event) error {
	if c.frozen {
		return errors.New(errors.CodeConflict, "analysis context is frozen")
	}
	c.stats.Events++
	switch ev := e.(type) {
	case events.DeclEvent:
		observability.EventsTotal.WithLabelValues("decl").Inc()
		c.applyDecl(ev)
	case events.UsageEvent:
		observability.EventsTotal.WithLabelValues("usage").Inc()
		c.applyUsage(ev)
	case events.ImportEvent:
		observability.EventsTotal.WithLabelValues("import").Inc()
		c.applyImport(ev)
	case events.SuperclassEvent:
		observability.EventsTotal.WithLabelValues("superclass").Inc()
		c.hierarchy.Record(ev.Subclass, ev.Superclass)
	case events.MacroDefinedEvent:
		observability.EventsTotal.WithLabelValues("macro_defined").Inc()
		c.applyMacroDefined(ev)
	case events.MacroExpandedEvent:
		observability.EventsTotal.WithLabelValues("macro_expanded").Inc()
		c.applyMacroExpanded(ev)
	default:
		return errors.New(errors.CodeInvalidEvent, "unsupported event type")
	}
	return nil
}

func (c *Context) applyDecl(ev events.DeclEvent) {
	if ev.Name == "" {
		c.drop(DropAnonymous, ev)
		return
	}
	if !ev.Kind.IsDeclaration() {
		c.drop(DropInvalidKind, ev)
		return
	}
	if ev.Forward && ev.Kind.RequiresDefinition() {
		c.drop(DropForward, ev)
		return
	}
	if ev.Kind.IsMember() {
		if ev.Container == events.ContainerUnsupported {
			c.logger.Warn("member declaration with unsupported container skipped", "kind", ev.Kind.String(), "name", ev.Name)
			c.drop(DropUnsupportedContainer, ev)
			return
		}
		if ev.Owner == "" {
			c.logger.Warn("member declaration without owning class skipped", "kind", ev.Kind.String(), "name", ev.Name)
			c.drop(DropUnsupportedContainer, ev)
			return
		}
	}

	placement := c.placeDecl(ev)
	switch placement.Where {
	case PlacementModule, PlacementHeader:
		c.table.Insert(placement.Scope, ev.Kind, ev.Name, ownerFor(ev.Kind, ev.Owner))
		c.stats.Declarations++
	case PlacementMain:
		c.applyMainDefinition(ev)
	default:
		c.drop(DropUnresolvedLocation, ev)
	}
}

// applyMainDefinition handles declarations located in the main file itself.
// Method definitions inside an @implementation use the interface's
// declaration, and function or variable definitions use a header's
// prototype. Main-file declarations are never import candidates.
func (c *Context) applyMainDefinition(ev events.DeclEvent) {
	c.stats.MainDeclarations++
	switch {
	case ev.Kind == symbols.KindMethodDeclaration && ev.Container == events.ContainerImplementation:
		c.table.Insert(c.mainFile, symbols.KindMethod, ev.Name, ev.Owner)
	case ev.Kind == symbols.KindFunctionDeclaration:
		c.table.Insert(c.mainFile, symbols.KindFunction, ev.Name, "")
	case ev.Kind == symbols.KindVariableDeclaration:
		c.table.Insert(c.mainFile, symbols.KindVariable, ev.Name, "")
	default:
		return
	}
	c.stats.Usages++
}

func (c *Context) placeDecl(ev events.DeclEvent) Placement {
	if ev.Scope != "" {
		scope := c.normalizeScope(string(ev.Scope))
		if scope == c.mainFile {
			return Placement{Where: PlacementMain, Scope: scope}
		}
		if c.imports.IsModule(scope) || !symbols.IsHeader(scope, c.suffixes) {
			return Placement{Where: PlacementModule, Scope: scope}
		}
		return Placement{Where: PlacementHeader, Scope: scope}
	}
	return c.Classify(ev.Origin)
}

func (c *Context) applyUsage(ev events.UsageEvent) {
	if ev.Name == "" {
		c.drop(DropAnonymous, ev)
		return
	}
	if ev.Kind.IsDeclaration() || !ev.Kind.Valid() {
		c.drop(DropInvalidKind, ev)
		return
	}
	c.table.Insert(c.mainFile, ev.Kind, ev.Name, ownerFor(ev.Kind, ev.Owner))
	c.stats.Usages++
}

func (c *Context) applyImport(ev events.ImportEvent) {
	if ev.Scope == "" {
		c.drop(DropUnresolvedLocation, ev)
		return
	}
	scope := c.normalizeScope(string(ev.Scope))
	origin := imports.OriginHeader
	if ev.Module || !symbols.IsHeader(scope, c.suffixes) {
		origin = imports.OriginModule
	}
	c.imports.Record(scope, ev.Line, origin)
}

func (c *Context) applyMacroDefined(ev events.MacroDefinedEvent) {
	if ev.Name == "" {
		c.drop(DropAnonymous, ev)
		return
	}
	placement := c.Classify(ev.Origin)
	if placement.Where != PlacementHeader {
		// Only textual headers included by the main file own lexed #defines.
		c.drop(DropUnresolvedLocation, ev)
		return
	}
	c.macros.Define(placement.Scope, ev.Name)
	c.stats.Declarations++
}

func (c *Context) applyMacroExpanded(ev events.MacroExpandedEvent) {
	if ev.Name == "" {
		c.drop(DropAnonymous, ev)
		return
	}
	if !ev.Origin.Valid() && len(ev.OwningModules) == 0 {
		c.drop(DropUnresolvedLocation, ev)
		return
	}
	inMain := ev.Origin.Valid() && c.isMain(ev.Origin.File)
	c.macros.Expand(c.mainFile, ev.Name, inMain, ev.OwningModules)
	if inMain {
		c.stats.Usages++
	}
}

func (c *Context) drop(reason DropReason, ev events.Event) {
	c.stats.Dropped[reason]++
	observability.EventsDroppedTotal.WithLabelValues(string(reason)).Inc()
	c.logger.Debug("event dropped", "reason", string(reason), "event", ev)
}

// ownerFor strips owners from kinds where they carry no meaning.
func ownerFor(kind symbols.Kind, owner string) string {
	if !kind.IsMember() {
		return ""
	}
	return owner
}
