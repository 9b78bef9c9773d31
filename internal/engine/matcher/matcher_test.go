package matcher

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"objcunused/internal/engine/hierarchy"
	"objcunused/internal/engine/symbols"
)

func TestPolicyCoversEveryDeclarationKind(t *testing.T) {
	for _, kind := range symbols.DeclarationKinds() {
		rule, ok := Policy[kind]
		require.True(t, ok, "no rule for %s", kind)
		assert.NotEmpty(t, rule.Name)
		assert.NotEmpty(t, append(append([]symbols.Kind{}, rule.Plain...), rule.ClassAware...), kind.String())
	}
	for kind := range Policy {
		assert.True(t, kind.IsDeclaration(), "rule keyed by usage kind %s", kind)
	}
}

func TestPlainPairsMarkScopeUsed(t *testing.T) {
	pairs := []struct {
		decl  symbols.Kind
		usage symbols.Kind
	}{
		{symbols.KindClassDeclaration, symbols.KindClass},
		{symbols.KindClassDeclaration, symbols.KindType},
		{symbols.KindTypedefDeclaration, symbols.KindType},
		{symbols.KindStructDeclaration, symbols.KindStruct},
		{symbols.KindVariableDeclaration, symbols.KindVariable},
		{symbols.KindFunctionDeclaration, symbols.KindFunction},
		{symbols.KindEnumDeclaration, symbols.KindEnum},
		{symbols.KindEnumConstantDeclaration, symbols.KindEnumConstant},
		{symbols.KindProtocolDeclaration, symbols.KindProtocol},
		{symbols.KindProtocolDeclaration, symbols.KindType},
		{symbols.KindMacroDefinition, symbols.KindMacro},
		{symbols.KindCategoryDeclaration, symbols.KindCategory},
	}

	m := New(hierarchy.New())
	for _, p := range pairs {
		header := symbols.NewSet()
		header.Insert(p.decl, "x", "")
		main := symbols.NewSet()
		main.Insert(p.usage, "x", "")

		if !m.AnySymbolUsed(header, main) {
			t.Errorf("%s should be used by %s", p.decl, p.usage)
		}
	}
}

func TestClassAwarePairsMarkScopeUsed(t *testing.T) {
	pairs := []struct {
		decl  symbols.Kind
		usage symbols.Kind
	}{
		{symbols.KindMethodDeclaration, symbols.KindMethod},
		{symbols.KindPropertyDeclaration, symbols.KindProperty},
		{symbols.KindPropertyDeclaration, symbols.KindMethod},
		{symbols.KindProtocolConformanceDeclaration, symbols.KindProtocolConformance},
	}

	m := New(hierarchy.New())
	for _, p := range pairs {
		header := symbols.NewSet()
		header.Insert(p.decl, "x", "Foo")
		main := symbols.NewSet()
		main.Insert(p.usage, "x", "Foo")

		assert.True(t, m.AnySymbolUsed(header, main), "%s by %s", p.decl, p.usage)
	}
}

func TestPlainMatchIgnoresOtherNamesAndKinds(t *testing.T) {
	m := New(nil)
	header := symbols.NewSet()
	header.Insert(symbols.KindStructDeclaration, "Point", "")
	main := symbols.NewSet()
	main.Insert(symbols.KindStruct, "Rect", "")
	main.Insert(symbols.KindType, "Point", "")

	assert.False(t, m.AnySymbolUsed(header, main))
}

func TestMethodMatching(t *testing.T) {
	idx := hierarchy.New()
	idx.Record("Derived", "Base")

	header := symbols.NewSet()
	header.Insert(symbols.KindMethodDeclaration, "foo", "Base")
	m := New(idx)

	t.Run("id receiver", func(t *testing.T) {
		main := symbols.NewSet()
		main.Insert(symbols.KindMethod, "foo", "id")
		decl, rule, ok := m.Explain(header, main)
		require.True(t, ok)
		assert.Equal(t, "foo", decl.Name)
		assert.Equal(t, DynamicReceiverPolicy, rule)
	})

	t.Run("subclass receiver", func(t *testing.T) {
		main := symbols.NewSet()
		main.Insert(symbols.KindMethod, "foo", "Derived")
		_, rule, ok := m.Explain(header, main)
		require.True(t, ok)
		assert.Equal(t, SubclassPolicy, rule)
	})

	t.Run("unrelated receiver", func(t *testing.T) {
		main := symbols.NewSet()
		main.Insert(symbols.KindMethod, "foo", "Unrelated")
		assert.False(t, m.AnySymbolUsed(header, main))
	})

	t.Run("superclass receiver does not reach subclass declaration", func(t *testing.T) {
		sub := symbols.NewSet()
		sub.Insert(symbols.KindMethodDeclaration, "bar", "Derived")
		main := symbols.NewSet()
		main.Insert(symbols.KindMethod, "bar", "Base")
		assert.False(t, m.AnySymbolUsed(sub, main))
	})

	t.Run("ownerless usage never matches", func(t *testing.T) {
		main := symbols.NewSet()
		main.Insert(symbols.KindMethod, "foo", "")
		assert.False(t, m.AnySymbolUsed(header, main))
	})
}

func TestClassAwareMatchIsExistentialOverOwners(t *testing.T) {
	idx := hierarchy.New()
	idx.Record("Cat", "Animal")

	header := symbols.NewSet()
	header.Insert(symbols.KindMethodDeclaration, "speak", "Robot")
	header.Insert(symbols.KindMethodDeclaration, "speak", "Animal")

	main := symbols.NewSet()
	main.Insert(symbols.KindMethod, "speak", "Toaster")
	main.Insert(symbols.KindMethod, "speak", "Cat")

	assert.True(t, New(idx).AnySymbolUsed(header, main))
}

func TestPropertyAccessorPolicy(t *testing.T) {
	header := symbols.NewSet()
	header.Insert(symbols.KindPropertyDeclaration, "title", "View")

	main := symbols.NewSet()
	main.Insert(symbols.KindMethod, "title", "View")

	_, rule, ok := New(hierarchy.New()).Explain(header, main)
	require.True(t, ok)
	assert.Equal(t, PropertyAccessorPolicy, rule)
}

func TestUsageKindsAreNeverUsed(t *testing.T) {
	scope := symbols.NewSet()
	scope.Insert(symbols.KindClass, "X", "")
	scope.Insert(symbols.KindType, "X", "")

	main := symbols.NewSet()
	main.Insert(symbols.KindClass, "X", "")
	main.Insert(symbols.KindType, "X", "")

	assert.False(t, New(nil).AnySymbolUsed(scope, main))
}

func TestEmptyScopeIsUnused(t *testing.T) {
	main := symbols.NewSet()
	main.Insert(symbols.KindClass, "X", "")
	assert.False(t, New(nil).AnySymbolUsed(symbols.NewSet(), main))
}

func TestWithDynamicReceiver(t *testing.T) {
	header := symbols.NewSet()
	header.Insert(symbols.KindMethodDeclaration, "foo", "Base")
	main := symbols.NewSet()
	main.Insert(symbols.KindMethod, "foo", "AnyObject")

	assert.False(t, New(nil).AnySymbolUsed(header, main))
	assert.True(t, New(nil).WithDynamicReceiver("AnyObject").AnySymbolUsed(header, main))
}
