// Package macros records preprocessor macro definitions and expansions on top
// of the symbol table.
package macros

import (
	"strings"

	"objcunused/internal/engine/symbols"
)

type Index struct {
	table *symbols.Table
}

func New(table *symbols.Table) *Index {
	return &Index{table: table}
}

// Define records a macro defined in a header reachable from the main file.
func (x *Index) Define(scope symbols.FileScope, name string) {
	if scope == "" || name == "" {
		return
	}
	x.table.Insert(scope, symbols.KindMacroDefinition, name, "")
}

// Expand records an expansion. inMain adds the usage to mainScope; every
// owning precompiled module additionally gets the definition, because module
// headers are never re-lexed and their #defines are not observed otherwise.
func (x *Index) Expand(mainScope symbols.FileScope, name string, inMain bool, owningModules []string) {
	if name == "" {
		return
	}
	if inMain && mainScope != "" {
		x.table.Insert(mainScope, symbols.KindMacro, name, "")
	}
	for _, module := range owningModules {
		top := TopLevelModule(module)
		if top == "" {
			continue
		}
		x.table.Insert(symbols.FileScope(top), symbols.KindMacroDefinition, name, "")
	}
}

// TopLevelModule strips submodule components: "UIKit.UIView" -> "UIKit".
func TopLevelModule(name string) string {
	name = strings.TrimSpace(name)
	if idx := strings.IndexByte(name, '.'); idx >= 0 {
		return name[:idx]
	}
	return name
}
