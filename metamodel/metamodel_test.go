package metamodel

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/teranos/peergen/errors"
)

func TestTypeUnmarshal_Kinds(t *testing.T) {
	tests := []struct {
		name  string
		input string
		check func(t *testing.T, tp *Type)
	}{
		{
			name:  "base scalar",
			input: `{"kind": "base", "name": "string"}`,
			check: func(t *testing.T, tp *Type) {
				if tp.Kind != KindBase || tp.Name != "string" {
					t.Errorf("got kind=%q name=%q", tp.Kind, tp.Name)
				}
			},
		},
		{
			name:  "reference",
			input: `{"kind": "reference", "name": "Position"}`,
			check: func(t *testing.T, tp *Type) {
				if tp.Kind != KindReference || tp.Name != "Position" {
					t.Errorf("got kind=%q name=%q", tp.Kind, tp.Name)
				}
			},
		},
		{
			name:  "array",
			input: `{"kind": "array", "element": {"kind": "reference", "name": "Diagnostic"}}`,
			check: func(t *testing.T, tp *Type) {
				if tp.Kind != KindArray {
					t.Fatalf("got kind=%q", tp.Kind)
				}
				if tp.Element == nil || tp.Element.Name != "Diagnostic" {
					t.Errorf("element = %+v", tp.Element)
				}
			},
		},
		{
			name: "map",
			input: `{"kind": "map",
				"key": {"kind": "base", "name": "string"},
				"value": {"kind": "reference", "name": "LSPAny"}}`,
			check: func(t *testing.T, tp *Type) {
				if tp.Kind != KindMap {
					t.Fatalf("got kind=%q", tp.Kind)
				}
				if tp.Key == nil || tp.Key.Name != "string" {
					t.Errorf("key = %+v", tp.Key)
				}
				if tp.Value == nil || tp.Value.Name != "LSPAny" {
					t.Errorf("value = %+v", tp.Value)
				}
			},
		},
		{
			name: "or union",
			input: `{"kind": "or", "items": [
				{"kind": "reference", "name": "Hover"},
				{"kind": "base", "name": "null"}]}`,
			check: func(t *testing.T, tp *Type) {
				if tp.Kind != KindOr || len(tp.Items) != 2 {
					t.Fatalf("got kind=%q items=%d", tp.Kind, len(tp.Items))
				}
				if tp.Items[0].Name != "Hover" || tp.Items[1].Name != "null" {
					t.Errorf("items = %q, %q", tp.Items[0].Name, tp.Items[1].Name)
				}
			},
		},
		{
			name: "and intersection",
			input: `{"kind": "and", "items": [
				{"kind": "reference", "name": "A"},
				{"kind": "reference", "name": "B"}]}`,
			check: func(t *testing.T, tp *Type) {
				if tp.Kind != KindAnd || len(tp.Items) != 2 {
					t.Errorf("got kind=%q items=%d", tp.Kind, len(tp.Items))
				}
			},
		},
		{
			name: "tuple",
			input: `{"kind": "tuple", "items": [
				{"kind": "base", "name": "integer"},
				{"kind": "base", "name": "integer"}]}`,
			check: func(t *testing.T, tp *Type) {
				if tp.Kind != KindTuple || len(tp.Items) != 2 {
					t.Errorf("got kind=%q items=%d", tp.Kind, len(tp.Items))
				}
			},
		},
		{
			name: "inline literal",
			input: `{"kind": "literal", "value": {"properties": [
				{"name": "language", "type": {"kind": "base", "name": "string"}},
				{"name": "value", "type": {"kind": "base", "name": "string"}, "optional": true}]}}`,
			check: func(t *testing.T, tp *Type) {
				if tp.Kind != KindLiteral {
					t.Fatalf("got kind=%q", tp.Kind)
				}
				if tp.Literal == nil || len(tp.Literal.Properties) != 2 {
					t.Fatalf("literal = %+v", tp.Literal)
				}
				if tp.Literal.Properties[0].Name != "language" {
					t.Errorf("first property = %q", tp.Literal.Properties[0].Name)
				}
				if !tp.Literal.Properties[1].Optional {
					t.Error("second property should be optional")
				}
			},
		},
		{
			name:  "string literal",
			input: `{"kind": "stringLiteral", "value": "full"}`,
			check: func(t *testing.T, tp *Type) {
				if tp.Kind != KindStringLiteral || tp.StringValue != "full" {
					t.Errorf("got kind=%q value=%q", tp.Kind, tp.StringValue)
				}
			},
		},
		{
			name:  "integer literal",
			input: `{"kind": "integerLiteral", "value": 2}`,
			check: func(t *testing.T, tp *Type) {
				if tp.Kind != KindIntegerLiteral || tp.IntValue != 2 {
					t.Errorf("got kind=%q value=%d", tp.Kind, tp.IntValue)
				}
			},
		},
		{
			name:  "boolean literal",
			input: `{"kind": "booleanLiteral", "value": true}`,
			check: func(t *testing.T, tp *Type) {
				if tp.Kind != KindBooleanLiteral || !tp.BoolValue {
					t.Errorf("got kind=%q value=%v", tp.Kind, tp.BoolValue)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var tp Type
			if err := json.Unmarshal([]byte(tt.input), &tp); err != nil {
				t.Fatalf("unmarshal failed: %v", err)
			}
			tt.check(t, &tp)
		})
	}
}

func TestTypeUnmarshal_UnknownKind(t *testing.T) {
	var tp Type
	err := json.Unmarshal([]byte(`{"kind": "intersection", "name": "X"}`), &tp)
	if err == nil {
		t.Fatal("expected error for unknown kind")
	}
	if !errors.IsUnsupportedKind(err) {
		t.Errorf("expected unsupported-kind error, got %v", err)
	}
	if !strings.Contains(err.Error(), "intersection") {
		t.Errorf("error should name the offending kind: %v", err)
	}
}

func TestTypeUnmarshal_NestedComposite(t *testing.T) {
	input := `{"kind": "array", "element": {"kind": "or", "items": [
		{"kind": "reference", "name": "TextEdit"},
		{"kind": "array", "element": {"kind": "base", "name": "string"}}]}}`

	var tp Type
	if err := json.Unmarshal([]byte(input), &tp); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if tp.Element.Kind != KindOr {
		t.Fatalf("element kind = %q", tp.Element.Kind)
	}
	inner := tp.Element.Items[1]
	if inner.Kind != KindArray || inner.Element.Name != "string" {
		t.Errorf("inner array = %+v", inner)
	}
}

func TestEnumValue_String(t *testing.T) {
	var v EnumValue
	if err := json.Unmarshal([]byte(`"messages"`), &v); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if !v.IsString || v.StringValue != "messages" {
		t.Errorf("got %+v", v)
	}
}

func TestEnumValue_Integer(t *testing.T) {
	var v EnumValue
	if err := json.Unmarshal([]byte(`2`), &v); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if v.IsString || v.IntValue != 2 {
		t.Errorf("got %+v", v)
	}
}

func TestEnumValue_EscapedControlCharacter(t *testing.T) {
	// A value like SemanticTokenTypes' "" must survive as the raw
	// escape byte, not the six-character source text.
	var v EnumValue
	if err := json.Unmarshal([]byte(`""`), &v); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if v.StringValue != "\x1b" {
		t.Errorf("got %q, want the single 0x1b byte", v.StringValue)
	}
}

func TestEnumValue_MarshalRoundTrip(t *testing.T) {
	tests := []string{`"off"`, `1`, `"with \"quotes\""`}
	for _, input := range tests {
		var v EnumValue
		if err := json.Unmarshal([]byte(input), &v); err != nil {
			t.Fatalf("unmarshal %s failed: %v", input, err)
		}
		out, err := json.Marshal(v)
		if err != nil {
			t.Fatalf("marshal failed: %v", err)
		}
		if string(out) != input {
			t.Errorf("round trip of %s produced %s", input, out)
		}
	}
}

func TestMessageDirection_Helpers(t *testing.T) {
	tests := []struct {
		direction       MessageDirection
		sentByInitiator bool
		sentByResponder bool
	}{
		{DirectionInitiatorToResponder, true, false},
		{DirectionResponderToInitiator, false, true},
		{DirectionBoth, true, true},
	}

	for _, tt := range tests {
		if got := tt.direction.SentByInitiator(); got != tt.sentByInitiator {
			t.Errorf("%q SentByInitiator() = %v, want %v", tt.direction, got, tt.sentByInitiator)
		}
		if got := tt.direction.SentByResponder(); got != tt.sentByResponder {
			t.Errorf("%q SentByResponder() = %v, want %v", tt.direction, got, tt.sentByResponder)
		}
	}
}
