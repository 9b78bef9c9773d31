package imports

import (
	"sort"

	"objcunused/internal/engine/symbols"
)

// Origin tells how the main file pulled a scope in.
type Origin int

const (
	OriginHeader Origin = iota
	OriginModule
)

func (o Origin) String() string {
	switch o {
	case OriginModule:
		return "module"
	default:
		return "header"
	}
}

// Record is the first import of a scope seen in the main file.
type Record struct {
	Scope  symbols.FileScope
	Line   int
	Origin Origin
}

// Index keeps one Record per scope; the first occurrence wins.
type Index struct {
	records map[symbols.FileScope]Record
}

func New() *Index {
	return &Index{records: make(map[symbols.FileScope]Record)}
}

// Record stores the import unless the scope was already recorded. It reports
// whether the record was new.
func (x *Index) Record(scope symbols.FileScope, line int, origin Origin) bool {
	if scope == "" {
		return false
	}
	if _, ok := x.records[scope]; ok {
		return false
	}
	x.records[scope] = Record{Scope: scope, Line: line, Origin: origin}
	return true
}

func (x *Index) Lookup(scope symbols.FileScope) (Record, bool) {
	rec, ok := x.records[scope]
	return rec, ok
}

func (x *Index) Line(scope symbols.FileScope) int {
	return x.records[scope].Line
}

func (x *Index) IsImported(scope symbols.FileScope) bool {
	_, ok := x.records[scope]
	return ok
}

func (x *Index) IsModule(scope symbols.FileScope) bool {
	rec, ok := x.records[scope]
	return ok && rec.Origin == OriginModule
}

func (x *Index) Len() int {
	return len(x.records)
}

// Records returns every record sorted by scope.
func (x *Index) Records() []Record {
	out := make([]Record, 0, len(x.records))
	for _, rec := range x.records {
		out = append(out, rec)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Scope < out[j].Scope })
	return out
}

// Modules returns the imported module names in sorted order.
func (x *Index) Modules() []symbols.FileScope {
	out := make([]symbols.FileScope, 0)
	for _, rec := range x.Records() {
		if rec.Origin == OriginModule {
			out = append(out, rec.Scope)
		}
	}
	return out
}
