package symbols

import "fmt"

// Kind classifies a symbol fact. Declaration kinds and usage kinds come in
// pairs; Type is a bare usage kind for generic type references.
type Kind int

const (
	KindClassDeclaration Kind = iota
	KindClass
	KindTypedefDeclaration
	KindType
	KindStructDeclaration
	KindStruct
	KindVariableDeclaration
	KindVariable
	KindFunctionDeclaration
	KindFunction
	KindEnumDeclaration
	KindEnum
	KindProtocolDeclaration
	KindProtocol
	KindMethodDeclaration
	KindMethod
	KindEnumConstantDeclaration
	KindEnumConstant
	KindPropertyDeclaration
	KindProperty
	KindMacroDefinition
	KindMacro
	KindProtocolConformanceDeclaration
	KindProtocolConformance
	KindCategoryDeclaration
	KindCategory

	kindCount
)

var kindNames = [kindCount]string{
	KindClassDeclaration:               "ClassDeclaration",
	KindClass:                          "Class",
	KindTypedefDeclaration:             "TypedefDeclaration",
	KindType:                           "Type",
	KindStructDeclaration:              "StructDeclaration",
	KindStruct:                         "Struct",
	KindVariableDeclaration:            "VariableDeclaration",
	KindVariable:                       "Variable",
	KindFunctionDeclaration:            "FunctionDeclaration",
	KindFunction:                       "Function",
	KindEnumDeclaration:                "EnumDeclaration",
	KindEnum:                           "Enum",
	KindProtocolDeclaration:            "ProtocolDeclaration",
	KindProtocol:                       "Protocol",
	KindMethodDeclaration:              "MethodDeclaration",
	KindMethod:                         "Method",
	KindEnumConstantDeclaration:        "EnumConstantDeclaration",
	KindEnumConstant:                   "EnumConstant",
	KindPropertyDeclaration:            "PropertyDeclaration",
	KindProperty:                       "Property",
	KindMacroDefinition:                "MacroDefinition",
	KindMacro:                          "Macro",
	KindProtocolConformanceDeclaration: "ProtocolConformanceDeclaration",
	KindProtocolConformance:            "ProtocolConformance",
	KindCategoryDeclaration:            "CategoryDeclaration",
	KindCategory:                       "Category",
}

var nameToKind map[string]Kind

func init() {
	nameToKind = make(map[string]Kind, len(kindNames))
	for k, name := range kindNames {
		nameToKind[name] = Kind(k)
	}
}

func (k Kind) String() string {
	if k.Valid() {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

func (k Kind) Valid() bool {
	return k >= 0 && k < kindCount
}

// IsDeclaration reports whether k is a declaration-side variant. Type is the
// only unpaired kind and counts as a usage.
func (k Kind) IsDeclaration() bool {
	if !k.Valid() || k == KindType {
		return false
	}
	return k%2 == 0
}

// RequiresDefinition reports whether only the defining occurrence of a
// redeclaration chain is recorded for k.
func (k Kind) RequiresDefinition() bool {
	switch k {
	case KindClassDeclaration, KindStructDeclaration, KindEnumDeclaration,
		KindProtocolDeclaration, KindTypedefDeclaration:
		return true
	default:
		return false
	}
}

// IsMember reports whether owners are meaningful for k.
func (k Kind) IsMember() bool {
	switch k {
	case KindMethodDeclaration, KindMethod,
		KindPropertyDeclaration, KindProperty,
		KindProtocolConformanceDeclaration, KindProtocolConformance:
		return true
	default:
		return false
	}
}

// ParseKind converts a kind name back into a Kind.
func ParseKind(name string) (Kind, bool) {
	k, ok := nameToKind[name]
	return k, ok
}

// Kinds returns every kind in declaration order.
func Kinds() []Kind {
	out := make([]Kind, 0, kindCount)
	for k := Kind(0); k < kindCount; k++ {
		out = append(out, k)
	}
	return out
}

// DeclarationKinds returns the declaration-side kinds.
func DeclarationKinds() []Kind {
	out := make([]Kind, 0, kindCount/2)
	for _, k := range Kinds() {
		if k.IsDeclaration() {
			out = append(out, k)
		}
	}
	return out
}

func (k Kind) MarshalText() ([]byte, error) {
	if !k.Valid() {
		return nil, fmt.Errorf("invalid symbol kind %d", int(k))
	}
	return []byte(kindNames[k]), nil
}

func (k *Kind) UnmarshalText(text []byte) error {
	parsed, ok := ParseKind(string(text))
	if !ok {
		return fmt.Errorf("unknown symbol kind %q", string(text))
	}
	*k = parsed
	return nil
}
