package analysis

import (
	"path/filepath"
	"strings"

	"objcunused/internal/engine/events"
	"objcunused/internal/engine/imports"
	"objcunused/internal/engine/symbols"
)

type PlacementKind int

const (
	PlacementDropped PlacementKind = iota
	PlacementModule
	PlacementHeader
	PlacementMain
)

func (p PlacementKind) String() string {
	switch p {
	case PlacementModule:
		return "module"
	case PlacementHeader:
		return "header"
	case PlacementMain:
		return "main"
	default:
		return "dropped"
	}
}

// Placement is the scope an event was attributed to.
type Placement struct {
	Where PlacementKind
	Scope symbols.FileScope
}

// Classify attributes a source location to a scope, checked in order:
// precompiled module, file directly included by the main file, the main file
// itself. Anything else (transitive includes, invalid locations) is dropped.
// A header classification records the include line as the header's import;
// the first one recorded wins.
func (c *Context) Classify(origin *events.Origin) Placement {
	if !origin.Valid() {
		return Placement{Where: PlacementDropped}
	}
	if origin.Module != "" {
		return Placement{Where: PlacementModule, Scope: symbols.FileScope(origin.Module)}
	}
	if origin.IncludedFrom != "" && c.isMain(origin.IncludedFrom) {
		scope := c.normalizeScope(origin.File)
		c.imports.Record(scope, origin.IncludeLine, imports.OriginHeader)
		return Placement{Where: PlacementHeader, Scope: scope}
	}
	if c.isMain(origin.File) {
		return Placement{Where: PlacementMain, Scope: c.mainFile}
	}
	return Placement{Where: PlacementDropped}
}

func (c *Context) isMain(path string) bool {
	if path == "" {
		return false
	}
	return symbols.FileScope(filepath.Clean(path)) == c.mainFile
}

// normalizeScope gives every spelling of a file path one scope key. Module
// names pass through unchanged.
func (c *Context) normalizeScope(name string) symbols.FileScope {
	if symbols.IsHeader(symbols.FileScope(name), c.suffixes) || strings.ContainsAny(name, `/\`) {
		return symbols.FileScope(filepath.Clean(name))
	}
	return symbols.FileScope(name)
}
