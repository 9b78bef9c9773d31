// Package matcher decides whether a scope's declarations are used by the main
// file's usage facts.
package matcher

import "objcunused/internal/engine/symbols"

// Ancestry answers subclass questions for class-aware matching.
type Ancestry interface {
	IsSameOrSubclass(reference, candidate string) bool
}

type Matcher struct {
	ancestry        Ancestry
	dynamicReceiver string
}

func New(ancestry Ancestry) *Matcher {
	return &Matcher{ancestry: ancestry, dynamicReceiver: DynamicReceiver}
}

// WithDynamicReceiver overrides the untyped receiver token. An empty token
// keeps the default.
func (m *Matcher) WithDynamicReceiver(token string) *Matcher {
	if token != "" {
		m.dynamicReceiver = token
	}
	return m
}

// SymbolUsed applies decl's policy rule to the main file's usages. Usage kinds
// are never considered used.
func (m *Matcher) SymbolUsed(decl *symbols.Symbol, main *symbols.Set) bool {
	_, ok := m.match(decl, main)
	return ok
}

// AnySymbolUsed reports whether a single symbol of scope passes its rule.
func (m *Matcher) AnySymbolUsed(scope, main *symbols.Set) bool {
	_, _, ok := m.Explain(scope, main)
	return ok
}

// Explain returns the first used symbol of scope and the rule that matched it.
func (m *Matcher) Explain(scope, main *symbols.Set) (*symbols.Symbol, string, bool) {
	for _, decl := range scope.Symbols() {
		if rule, ok := m.match(decl, main); ok {
			return decl, rule, true
		}
	}
	return nil, "", false
}

func (m *Matcher) match(decl *symbols.Symbol, main *symbols.Set) (string, bool) {
	rule, ok := Policy[decl.Kind]
	if !ok {
		return "", false
	}
	for _, kind := range rule.Plain {
		if main.Has(kind, decl.Name) {
			return rule.Name, true
		}
	}
	for _, kind := range rule.ClassAware {
		if name, ok := m.matchWithClass(decl, kind, main); ok {
			if rule.Name == PropertyAccessorPolicy && kind == symbols.KindMethod {
				return PropertyAccessorPolicy, true
			}
			return name, true
		}
	}
	return "", false
}

// matchWithClass is existential over declaring owners and usage owners.
func (m *Matcher) matchWithClass(decl *symbols.Symbol, usageKind symbols.Kind, main *symbols.Set) (string, bool) {
	usage, ok := main.Lookup(symbols.Key{Kind: usageKind, Name: decl.Name})
	if !ok {
		return "", false
	}
	if len(decl.Owners) == 0 || len(usage.Owners) == 0 {
		return "", false
	}

	for declaring := range decl.Owners {
		for receiver := range usage.Owners {
			if receiver == m.dynamicReceiver {
				return DynamicReceiverPolicy, true
			}
			if m.isSameOrSubclass(declaring, receiver) {
				return SubclassPolicy, true
			}
		}
	}
	return "", false
}

func (m *Matcher) isSameOrSubclass(reference, candidate string) bool {
	if m.ancestry == nil {
		return reference == candidate
	}
	return m.ancestry.IsSameOrSubclass(reference, candidate)
}
