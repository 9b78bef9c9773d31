// Package hierarchy tracks single-inheritance superclass links between
// Objective-C interfaces.
package hierarchy

import (
	lru "github.com/hashicorp/golang-lru/v2"
)

const defaultChainCacheSize = 4096

// Index maps a class name to its superclass name. Absence means the class is
// a root or unknown.
type Index struct {
	superclass map[string]string
	chains     *lru.Cache[string, []string]
}

func New() *Index {
	return NewWithCacheSize(defaultChainCacheSize)
}

func NewWithCacheSize(size int) *Index {
	if size <= 0 {
		size = defaultChainCacheSize
	}
	// lru.New only fails for non-positive sizes.
	cache, _ := lru.New[string, []string](size)
	return &Index{
		superclass: make(map[string]string),
		chains:     cache,
	}
}

// Record stores sub -> super. Re-recording overwrites.
func (x *Index) Record(sub, super string) {
	if sub == "" || super == "" {
		return
	}
	if current, ok := x.superclass[sub]; ok && current == super {
		return
	}
	x.superclass[sub] = super
	x.chains.Purge()
}

func (x *Index) Superclass(name string) (string, bool) {
	super, ok := x.superclass[name]
	return super, ok
}

func (x *Index) Len() int {
	return len(x.superclass)
}

// IsSameOrSubclass reports whether candidate is reference itself or one of its
// descendants. Cyclic superclass data terminates the walk with false.
func (x *Index) IsSameOrSubclass(reference, candidate string) bool {
	if reference == candidate {
		return true
	}
	for _, ancestor := range x.Ancestors(candidate) {
		if ancestor == reference {
			return true
		}
	}
	return false
}

// Ancestors returns candidate's superclass chain, nearest first, excluding
// candidate itself.
func (x *Index) Ancestors(candidate string) []string {
	if chain, ok := x.chains.Get(candidate); ok {
		return chain
	}

	chain := make([]string, 0, 4)
	visited := map[string]bool{candidate: true}
	current := candidate
	for {
		super, ok := x.superclass[current]
		if !ok || visited[super] {
			break
		}
		visited[super] = true
		chain = append(chain, super)
		current = super
	}

	x.chains.Add(candidate, chain)
	return chain
}
