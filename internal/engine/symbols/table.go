package symbols

import "sort"

// Set holds at most one Symbol per (kind, name).
type Set struct {
	entries map[Key]*Symbol
}

func NewSet() *Set {
	return &Set{entries: make(map[Key]*Symbol)}
}

// Insert records a symbol fact. An empty owner is a presence-only insert and
// never touches the owners of an existing entry; a non-empty owner is unioned
// into the entry's owner set.
func (s *Set) Insert(kind Kind, name, owner string) {
	key := Key{Kind: kind, Name: name}
	existing, ok := s.entries[key]
	if !ok {
		existing = &Symbol{Kind: kind, Name: name, Owners: NewOwnerSet()}
		s.entries[key] = existing
	}
	existing.Owners.Add(owner)
}

func (s *Set) Lookup(key Key) (*Symbol, bool) {
	if s == nil {
		return nil, false
	}
	sym, ok := s.entries[key]
	return sym, ok
}

func (s *Set) Has(kind Kind, name string) bool {
	_, ok := s.Lookup(Key{Kind: kind, Name: name})
	return ok
}

func (s *Set) Len() int {
	if s == nil {
		return 0
	}
	return len(s.entries)
}

// Symbols returns the entries ordered by kind, then name.
func (s *Set) Symbols() []*Symbol {
	if s == nil {
		return nil
	}
	out := make([]*Symbol, 0, len(s.entries))
	for _, sym := range s.entries {
		out = append(out, sym)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Kind != out[j].Kind {
			return out[i].Kind < out[j].Kind
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// Table maps each FileScope to its symbol set.
type Table struct {
	scopes map[FileScope]*Set
}

func NewTable() *Table {
	return &Table{scopes: make(map[FileScope]*Set)}
}

func (t *Table) Insert(scope FileScope, kind Kind, name, owner string) {
	set, ok := t.scopes[scope]
	if !ok {
		set = NewSet()
		t.scopes[scope] = set
	}
	set.Insert(kind, name, owner)
}

// Get returns the scope's set, or an empty set when nothing was recorded.
func (t *Table) Get(scope FileScope) *Set {
	if set, ok := t.scopes[scope]; ok {
		return set
	}
	return NewSet()
}

func (t *Table) Contains(scope FileScope) bool {
	_, ok := t.scopes[scope]
	return ok
}

func (t *Table) Scopes() []FileScope {
	out := make([]FileScope, 0, len(t.scopes))
	for scope := range t.scopes {
		out = append(out, scope)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func (t *Table) Len() int {
	return len(t.scopes)
}

func (t *Table) SymbolCount() int {
	total := 0
	for _, set := range t.scopes {
		total += set.Len()
	}
	return total
}
