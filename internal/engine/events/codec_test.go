package events

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"objcunused/internal/core/errors"
	"objcunused/internal/engine/symbols"
)

func collect(t *testing.T, input string, format Format) []Event {
	t.Helper()
	var got []Event
	_, err := Replay(strings.NewReader(input), format, SinkFunc(func(e Event) error {
		got = append(got, e)
		return nil
	}))
	require.NoError(t, err)
	return got
}

func TestDecodeJSONLines(t *testing.T) {
	input := `
# front-end trace for main.m
{"type":"import","scope":"UIKit","line":2,"module":true}
{"type":"decl","origin":{"file":"Foo.h","included_from":"main.m","include_line":3},"kind":"MethodDeclaration","name":"foo","owner":"Base","container":"interface"}
{"type":"usage","kind":"Method","name":"foo","owner_type":"Derived *"}
{"type":"superclass","subclass":"Derived","superclass":"Base"}
{"type":"macro_expanded","origin":{"file":"main.m"},"name":"FOO","modules":["MyKit"]}
`
	got := collect(t, input, FormatJSONLines)
	require.Len(t, got, 5)

	assert.Equal(t, ImportEvent{Scope: "UIKit", Line: 2, Module: true}, got[0])

	decl, ok := got[1].(DeclEvent)
	require.True(t, ok)
	assert.Equal(t, symbols.KindMethodDeclaration, decl.Kind)
	assert.Equal(t, "Base", decl.Owner)
	assert.Equal(t, ContainerInterface, decl.Container)
	require.NotNil(t, decl.Origin)
	assert.Equal(t, 3, decl.Origin.IncludeLine)

	assert.Equal(t, UsageEvent{Kind: symbols.KindMethod, Name: "foo", Owner: "Derived"}, got[2])
	assert.Equal(t, SuperclassEvent{Subclass: "Derived", Superclass: "Base"}, got[3])

	exp, ok := got[4].(MacroExpandedEvent)
	require.True(t, ok)
	assert.Equal(t, []string{"MyKit"}, exp.OwningModules)
}

func TestDecodeSplitsProtocolLists(t *testing.T) {
	input := `
{"type":"usage","kind":"Type","name":"id<NSCopying, NSCoding> _Nonnull"}
{"type":"usage","kind":"ProtocolConformance","name":"describe","owner_type":"id<A,B>"}
{"type":"usage","kind":"Type","name":"CGRect"}
{"type":"decl","scope":"Shapes.h","kind":"MethodDeclaration","name":"area","owner_type":"id<Circle,Square>","container":"protocol"}
`
	got := collect(t, input, FormatJSONLines)
	assert.Equal(t, []Event{
		UsageEvent{Kind: symbols.KindType, Name: "NSCopying"},
		UsageEvent{Kind: symbols.KindType, Name: "NSCoding"},
		UsageEvent{Kind: symbols.KindProtocolConformance, Name: "describe", Owner: "A"},
		UsageEvent{Kind: symbols.KindProtocolConformance, Name: "describe", Owner: "B"},
		UsageEvent{Kind: symbols.KindType, Name: "CGRect"},
		DeclEvent{Scope: "Shapes.h", Kind: symbols.KindMethodDeclaration, Name: "area", Owner: "Circle", Container: ContainerProtocol},
		DeclEvent{Scope: "Shapes.h", Kind: symbols.KindMethodDeclaration, Name: "area", Owner: "Square", Container: ContainerProtocol},
	}, got)
}

func TestDecodeYAML(t *testing.T) {
	input := `type: import
scope: Foo.h
line: 4
---
type: decl
scope: Foo.h
kind: ClassDeclaration
name: Foo
---
type: usage
kind: Type
name: Foo
`
	got := collect(t, input, FormatYAML)
	require.Len(t, got, 3)
	assert.Equal(t, DeclEvent{Scope: "Foo.h", Kind: symbols.KindClassDeclaration, Name: "Foo"}, got[1])
	assert.Equal(t, UsageEvent{Kind: symbols.KindType, Name: "Foo"}, got[2])
}

func TestDecodeRejectsBadInput(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"unknown type", `{"type":"teleport"}`},
		{"unknown kind", `{"type":"usage","kind":"Selector","name":"x"}`},
		{"usage kind in decl", `{"type":"decl","scope":"a.h","kind":"Class","name":"x"}`},
		{"declaration kind in usage", `{"type":"usage","kind":"ClassDeclaration","name":"x"}`},
		{"malformed json", `{"type":`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Replay(strings.NewReader("\n"+tc.input), FormatJSONLines, SinkFunc(func(Event) error { return nil }))
			require.Error(t, err)
			assert.True(t, errors.IsCode(err, errors.CodeInvalidEvent), err.Error())
			line, ok := errors.ContextValue(err, errors.CtxLine)
			assert.True(t, ok)
			assert.Equal(t, 2, line)
		})
	}
}

func TestReplayStopsOnSinkError(t *testing.T) {
	input := "{\"type\":\"superclass\",\"subclass\":\"A\",\"superclass\":\"B\"}\n{\"type\":\"superclass\",\"subclass\":\"C\",\"superclass\":\"D\"}\n"
	n, err := Replay(strings.NewReader(input), FormatJSONLines, SinkFunc(func(Event) error {
		return errors.New(errors.CodeConflict, "frozen")
	}))
	require.Error(t, err)
	assert.Equal(t, 0, n)
}

func TestEncoderOutputIsReplayable(t *testing.T) {
	in := []Event{
		DeclEvent{Origin: &Origin{Module: "UIKit"}, Kind: symbols.KindPropertyDeclaration, Name: "frame", Owner: "UIView", Container: ContainerInterface},
		MacroDefinedEvent{Origin: &Origin{File: "Config.h", IncludedFrom: "main.m", IncludeLine: 1}, Name: "kLimit"},
	}

	var buf bytes.Buffer
	enc := NewEncoder(&buf)
	for _, ev := range in {
		require.NoError(t, enc.Emit(ev))
	}

	assert.Equal(t, in, collect(t, buf.String(), FormatJSONLines))
}

func TestFormatSelection(t *testing.T) {
	assert.Equal(t, FormatYAML, FormatFromPath("trace.YML"))
	assert.Equal(t, FormatJSONLines, FormatFromPath("trace.jsonl"))

	f, err := ParseFormat("yaml")
	require.NoError(t, err)
	assert.Equal(t, FormatYAML, f)
	_, err = ParseFormat("xml")
	assert.True(t, errors.IsCode(err, errors.CodeValidationError))
}
