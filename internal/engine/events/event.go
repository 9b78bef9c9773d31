// Package events defines the facts a semantic front-end reports while it
// walks the main file's translation unit.
package events

import "objcunused/internal/engine/symbols"

// Event is a closed sum type; only the variants in this package implement it.
type Event interface {
	isEvent()
}

// Sink consumes events in emission order.
type Sink interface {
	Emit(Event) error
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(Event) error

func (f SinkFunc) Emit(e Event) error { return f(e) }

// Origin is the source-location provenance of a declaration, used to decide
// which scope absorbs it.
type Origin struct {
	// File containing the declaration.
	File string `json:"file,omitempty" yaml:"file,omitempty"`
	// IncludedFrom is the file whose #include/#import pulled File in.
	IncludedFrom string `json:"included_from,omitempty" yaml:"included_from,omitempty"`
	// IncludeLine is the line of that directive in IncludedFrom.
	IncludeLine int `json:"include_line,omitempty" yaml:"include_line,omitempty"`
	// Module is the precompiled module the declaration was imported from.
	Module string `json:"module,omitempty" yaml:"module,omitempty"`
}

func (o *Origin) Valid() bool {
	return o != nil && (o.File != "" || o.Module != "")
}

// Container is the declaration context of a member (method or property).
type Container int

const (
	ContainerNone Container = iota
	ContainerInterface
	ContainerProtocol
	ContainerCategory
	ContainerImplementation
	ContainerUnsupported
)

var containerNames = map[Container]string{
	ContainerNone:           "",
	ContainerInterface:      "interface",
	ContainerProtocol:       "protocol",
	ContainerCategory:       "category",
	ContainerImplementation: "implementation",
	ContainerUnsupported:    "unsupported",
}

func (c Container) String() string {
	if name, ok := containerNames[c]; ok {
		return name
	}
	return "unsupported"
}

// ParseContainer maps a container name; unknown names are unsupported.
func ParseContainer(name string) Container {
	for c, n := range containerNames {
		if n == name {
			return c
		}
	}
	return ContainerUnsupported
}

// DeclEvent reports a declaration. Either Scope is set by a front-end that
// classified the location itself, or Origin is set for boundary
// classification.
type DeclEvent struct {
	Scope     symbols.FileScope
	Origin    *Origin
	Kind      symbols.Kind
	Name      string
	Owner     string
	Forward   bool
	Container Container
}

// UsageEvent reports a use in the main file. Owner is the receiver's static
// class name or "id".
type UsageEvent struct {
	Kind  symbols.Kind
	Name  string
	Owner string
}

// ImportEvent reports an import directive in the main file.
type ImportEvent struct {
	Scope  symbols.FileScope
	Line   int
	Module bool
}

type SuperclassEvent struct {
	Subclass   string
	Superclass string
}

type MacroDefinedEvent struct {
	Origin *Origin
	Name   string
}

// MacroExpandedEvent reports an expansion at Origin.File. OwningModules lists
// the precompiled modules that own the macro's current definition.
type MacroExpandedEvent struct {
	Origin        *Origin
	Name          string
	OwningModules []string
}

func (DeclEvent) isEvent()          {}
func (UsageEvent) isEvent()         {}
func (ImportEvent) isEvent()        {}
func (SuperclassEvent) isEvent()    {}
func (MacroDefinedEvent) isEvent()  {}
func (MacroExpandedEvent) isEvent() {}
