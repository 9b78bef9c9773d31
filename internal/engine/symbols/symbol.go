package symbols

import (
	"sort"
	"strings"
)

// FileScope names the unit a symbol fact is attributed to: a header path, a
// precompiled module name, or the main file itself.
type FileScope string

// DefaultHeaderSuffixes are the suffixes recognised as textual headers.
var DefaultHeaderSuffixes = []string{".h"}

// IsHeader reports whether scope ends with one of suffixes. With no suffixes
// the defaults apply.
func IsHeader(scope FileScope, suffixes []string) bool {
	if len(suffixes) == 0 {
		suffixes = DefaultHeaderSuffixes
	}
	for _, suffix := range suffixes {
		if suffix != "" && strings.HasSuffix(string(scope), suffix) {
			return true
		}
	}
	return false
}

// Key is the identity of a symbol within one scope.
type Key struct {
	Kind Kind
	Name string
}

// OwnerSet holds the interface or receiver class names attached to a member
// symbol.
type OwnerSet map[string]struct{}

func NewOwnerSet(owners ...string) OwnerSet {
	set := make(OwnerSet, len(owners))
	for _, owner := range owners {
		set.Add(owner)
	}
	return set
}

func (s OwnerSet) Add(owner string) {
	if owner == "" {
		return
	}
	s[owner] = struct{}{}
}

func (s OwnerSet) Has(owner string) bool {
	_, ok := s[owner]
	return ok
}

func (s OwnerSet) Union(other OwnerSet) {
	for owner := range other {
		s[owner] = struct{}{}
	}
}

// Sorted returns the owners in lexical order.
func (s OwnerSet) Sorted() []string {
	out := make([]string, 0, len(s))
	for owner := range s {
		out = append(out, owner)
	}
	sort.Strings(out)
	return out
}

// Symbol is a kinded, named fact about a declaration or a use of one.
type Symbol struct {
	Kind   Kind
	Name   string
	Owners OwnerSet
}

func (s *Symbol) Key() Key {
	return Key{Kind: s.Kind, Name: s.Name}
}

func (s *Symbol) String() string {
	if len(s.Owners) == 0 {
		return s.Kind.String() + ": " + s.Name
	}
	return s.Kind.String() + ": [" + strings.Join(s.Owners.Sorted(), ",") + "] " + s.Name
}
