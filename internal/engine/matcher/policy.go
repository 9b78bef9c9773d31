package matcher

import "objcunused/internal/engine/symbols"

// DynamicReceiver is the owner token the front-end attaches to usages whose
// receiver is `id` or otherwise statically unknown.
const DynamicReceiver = "id"

const (
	// DynamicReceiverPolicy treats any member usage through an untyped
	// receiver as a use of every same-named declaration.
	DynamicReceiverPolicy = "dynamic-receiver"
	// PropertyAccessorPolicy treats a message send of a property's accessor
	// selector as a use of the property.
	PropertyAccessorPolicy = "property-accessor"
	// SubclassPolicy accepts usages whose receiver is the declaring class or
	// one of its descendants.
	SubclassPolicy = "subclass"

	ExactNamePolicy = "exact-name"
)

// Rule is the usage test for one declaration kind. Plain kinds are matched by
// (kind, name) membership; ClassAware kinds additionally compare owners.
type Rule struct {
	Name       string
	Plain      []symbols.Kind
	ClassAware []symbols.Kind
}

// Policy maps every declaration kind to its rule.
var Policy = map[symbols.Kind]Rule{
	symbols.KindClassDeclaration:        {Name: ExactNamePolicy, Plain: []symbols.Kind{symbols.KindClass, symbols.KindType}},
	symbols.KindTypedefDeclaration:      {Name: ExactNamePolicy, Plain: []symbols.Kind{symbols.KindType}},
	symbols.KindStructDeclaration:       {Name: ExactNamePolicy, Plain: []symbols.Kind{symbols.KindStruct}},
	symbols.KindVariableDeclaration:     {Name: ExactNamePolicy, Plain: []symbols.Kind{symbols.KindVariable}},
	symbols.KindFunctionDeclaration:     {Name: ExactNamePolicy, Plain: []symbols.Kind{symbols.KindFunction}},
	symbols.KindEnumDeclaration:         {Name: ExactNamePolicy, Plain: []symbols.Kind{symbols.KindEnum}},
	symbols.KindEnumConstantDeclaration: {Name: ExactNamePolicy, Plain: []symbols.Kind{symbols.KindEnumConstant}},
	symbols.KindProtocolDeclaration:     {Name: ExactNamePolicy, Plain: []symbols.Kind{symbols.KindProtocol, symbols.KindType}},
	symbols.KindMacroDefinition:         {Name: ExactNamePolicy, Plain: []symbols.Kind{symbols.KindMacro}},
	symbols.KindCategoryDeclaration:     {Name: ExactNamePolicy, Plain: []symbols.Kind{symbols.KindCategory}},
	symbols.KindMethodDeclaration:       {Name: SubclassPolicy, ClassAware: []symbols.Kind{symbols.KindMethod}},
	symbols.KindPropertyDeclaration: {
		Name:       PropertyAccessorPolicy,
		ClassAware: []symbols.Kind{symbols.KindProperty, symbols.KindMethod},
	},
	symbols.KindProtocolConformanceDeclaration: {Name: SubclassPolicy, ClassAware: []symbols.Kind{symbols.KindProtocolConformance}},
}

func init() {
	for _, kind := range symbols.DeclarationKinds() {
		if _, ok := Policy[kind]; !ok {
			panic("matcher: no usage rule for " + kind.String())
		}
	}
}
