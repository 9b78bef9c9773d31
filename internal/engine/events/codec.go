package events

import (
	"bufio"
	"bytes"
	"encoding/json"
	"io"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"objcunused/internal/core/errors"
	"objcunused/internal/engine/symbols"
)

// Format is the serialisation of a recorded event trace.
type Format string

const (
	FormatJSONLines Format = "jsonl"
	FormatYAML      Format = "yaml"
)

const (
	typeDecl          = "decl"
	typeUsage         = "usage"
	typeImport        = "import"
	typeSuperclass    = "superclass"
	typeMacroDefined  = "macro_defined"
	typeMacroExpanded = "macro_expanded"
)

const maxLineSize = 4 * 1024 * 1024

// ParseFormat accepts "jsonl", "json", "yaml" and "yml".
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "jsonl", "json", "ndjson":
		return FormatJSONLines, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return "", errors.New(errors.CodeValidationError, "unsupported trace format "+name)
	}
}

// FormatFromPath picks a format from a trace file extension.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSONLines
	}
}

// record is the flat wire form shared by every event type.
type record struct {
	Type       string   `json:"type" yaml:"type"`
	Scope      string   `json:"scope,omitempty" yaml:"scope,omitempty"`
	Origin     *Origin  `json:"origin,omitempty" yaml:"origin,omitempty"`
	Kind       string   `json:"kind,omitempty" yaml:"kind,omitempty"`
	Name       string   `json:"name,omitempty" yaml:"name,omitempty"`
	Owner      string   `json:"owner,omitempty" yaml:"owner,omitempty"`
	OwnerType  string   `json:"owner_type,omitempty" yaml:"owner_type,omitempty"`
	Forward    bool     `json:"forward,omitempty" yaml:"forward,omitempty"`
	Container  string   `json:"container,omitempty" yaml:"container,omitempty"`
	Line       int      `json:"line,omitempty" yaml:"line,omitempty"`
	Module     bool     `json:"module,omitempty" yaml:"module,omitempty"`
	Subclass   string   `json:"subclass,omitempty" yaml:"subclass,omitempty"`
	Superclass string   `json:"superclass,omitempty" yaml:"superclass,omitempty"`
	Modules    []string `json:"modules,omitempty" yaml:"modules,omitempty"`
}

func (r *record) owner() string {
	if r.Owner != "" {
		return r.Owner
	}
	if r.OwnerType != "" {
		return SimplifyTypeName(r.OwnerType)
	}
	return ""
}

// owners splits a protocol-qualified owner_type such as "id<A,B>" into one
// owner per protocol.
func (r *record) owners() []string {
	if r.Owner == "" && strings.Contains(r.OwnerType, "<") {
		if names := SplitProtocolList(SimplifyTypeName(r.OwnerType)); len(names) > 0 {
			return names
		}
	}
	return []string{r.owner()}
}

// typeNames splits a protocol-qualified Type usage into one name per
// protocol.
func (r *record) typeNames(k symbols.Kind) []string {
	if k == symbols.KindType && strings.ContainsAny(r.Name, "<,") {
		if names := SplitProtocolList(SimplifyTypeName(r.Name)); len(names) > 0 {
			return names
		}
	}
	return []string{r.Name}
}

func (r *record) kind(wantDeclaration bool) (symbols.Kind, error) {
	k, ok := symbols.ParseKind(r.Kind)
	if !ok {
		return 0, errors.New(errors.CodeInvalidEvent, "unknown symbol kind "+r.Kind)
	}
	if k.IsDeclaration() != wantDeclaration {
		return 0, errors.New(errors.CodeInvalidEvent, "kind "+r.Kind+" not allowed in "+r.Type+" event")
	}
	return k, nil
}

// events converts one record into its events. Protocol lists in a Type
// usage or an owner_type fan out into one event per protocol.
func (r *record) events() ([]Event, error) {
	switch r.Type {
	case typeDecl:
		k, err := r.kind(true)
		if err != nil {
			return nil, err
		}
		owners := r.owners()
		out := make([]Event, 0, len(owners))
		for _, owner := range owners {
			out = append(out, DeclEvent{
				Scope:     symbols.FileScope(r.Scope),
				Origin:    r.Origin,
				Kind:      k,
				Name:      r.Name,
				Owner:     owner,
				Forward:   r.Forward,
				Container: ParseContainer(r.Container),
			})
		}
		return out, nil
	case typeUsage:
		k, err := r.kind(false)
		if err != nil {
			return nil, err
		}
		owners := r.owners()
		out := make([]Event, 0, len(owners))
		for _, name := range r.typeNames(k) {
			for _, owner := range owners {
				out = append(out, UsageEvent{Kind: k, Name: name, Owner: owner})
			}
		}
		return out, nil
	case typeImport:
		return []Event{ImportEvent{Scope: symbols.FileScope(r.Scope), Line: r.Line, Module: r.Module}}, nil
	case typeSuperclass:
		return []Event{SuperclassEvent{Subclass: r.Subclass, Superclass: r.Superclass}}, nil
	case typeMacroDefined:
		return []Event{MacroDefinedEvent{Origin: r.Origin, Name: r.Name}}, nil
	case typeMacroExpanded:
		return []Event{MacroExpandedEvent{Origin: r.Origin, Name: r.Name, OwningModules: r.Modules}}, nil
	default:
		return nil, errors.New(errors.CodeInvalidEvent, "unknown event type "+r.Type)
	}
}

func toRecord(e Event) (record, error) {
	switch ev := e.(type) {
	case DeclEvent:
		return record{
			Type:      typeDecl,
			Scope:     string(ev.Scope),
			Origin:    ev.Origin,
			Kind:      ev.Kind.String(),
			Name:      ev.Name,
			Owner:     ev.Owner,
			Forward:   ev.Forward,
			Container: ev.Container.String(),
		}, nil
	case UsageEvent:
		return record{Type: typeUsage, Kind: ev.Kind.String(), Name: ev.Name, Owner: ev.Owner}, nil
	case ImportEvent:
		return record{Type: typeImport, Scope: string(ev.Scope), Line: ev.Line, Module: ev.Module}, nil
	case SuperclassEvent:
		return record{Type: typeSuperclass, Subclass: ev.Subclass, Superclass: ev.Superclass}, nil
	case MacroDefinedEvent:
		return record{Type: typeMacroDefined, Origin: ev.Origin, Name: ev.Name}, nil
	case MacroExpandedEvent:
		return record{Type: typeMacroExpanded, Origin: ev.Origin, Name: ev.Name, Modules: ev.OwningModules}, nil
	default:
		return record{}, errors.New(errors.CodeInvalidEvent, "unsupported event value")
	}
}

// Decoder reads events from a trace stream.
type Decoder struct {
	format  Format
	scanner *bufio.Scanner
	yaml    *yaml.Decoder
	line    int
	pending []Event
}

func NewDecoder(r io.Reader, format Format) *Decoder {
	d := &Decoder{format: format}
	if format == FormatYAML {
		d.yaml = yaml.NewDecoder(r)
		return d
	}
	d.scanner = bufio.NewScanner(r)
	d.scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	return d
}

// Next returns the next event, or io.EOF at the end of the stream.
func (d *Decoder) Next() (Event, error) {
	if len(d.pending) > 0 {
		ev := d.pending[0]
		d.pending = d.pending[1:]
		return ev, nil
	}
	var rec record
	if d.format == FormatYAML {
		for {
			d.line++
			rec = record{}
			if err := d.yaml.Decode(&rec); err != nil {
				if err == io.EOF {
					return nil, io.EOF
				}
				return nil, errors.AddContext(errors.Wrap(err, errors.CodeInvalidEvent, "decode yaml event"), errors.CtxLine, d.line)
			}
			if rec.Type != "" {
				break
			}
		}
	} else {
		for {
			if !d.scanner.Scan() {
				if err := d.scanner.Err(); err != nil {
					return nil, errors.Wrap(err, errors.CodeInvalidEvent, "read event trace")
				}
				return nil, io.EOF
			}
			d.line++
			raw := bytes.TrimSpace(d.scanner.Bytes())
			if len(raw) == 0 || raw[0] == '#' {
				continue
			}
			if err := json.Unmarshal(raw, &rec); err != nil {
				return nil, errors.AddContext(errors.Wrap(err, errors.CodeInvalidEvent, "decode json event"), errors.CtxLine, d.line)
			}
			break
		}
	}

	evs, err := rec.events()
	if err != nil {
		return nil, errors.AddContext(err, errors.CtxLine, d.line)
	}
	d.pending = evs[1:]
	return evs[0], nil
}

// Replay decodes every event in r and emits it to sink, stopping at the first
// error. It returns the number of events emitted.
func Replay(r io.Reader, format Format, sink Sink) (int, error) {
	dec := NewDecoder(r, format)
	n := 0
	for {
		ev, err := dec.Next()
		if err == io.EOF {
			return n, nil
		}
		if err != nil {
			return n, err
		}
		if err := sink.Emit(ev); err != nil {
			return n, err
		}
		n++
	}
}

// Encoder writes events as JSON lines.
type Encoder struct {
	enc *json.Encoder
}

func NewEncoder(w io.Writer) *Encoder {
	return &Encoder{enc: json.NewEncoder(w)}
}

func (e *Encoder) Emit(ev Event) error {
	rec, err := toRecord(ev)
	if err != nil {
		return err
	}
	return e.enc.Encode(rec)
}
