package compiler

import (
	"strings"
	"testing"

	"github.com/teranos/peergen/errors"
)

func defaultFixtureDefs() []*Definition {
	return []*Definition{
		{
			Kind:    DefEnum,
			Name:    "TraceValue",
			Parents: []Expr{NameExpr("str"), NameExpr("Enum")},
			Entries: []EnumEntry{
				{Name: "Off", Value: Literal{Kind: LitString, Str: "off"}},
				{Name: "Messages", Value: Literal{Kind: LitString, Str: "messages"}},
				{Name: "Verbose", Value: Literal{Kind: LitString, Str: "verbose"}},
			},
		},
		{
			Kind:    DefEnum,
			Name:    "Hollow",
			Parents: []Expr{NameExpr("str"), NameExpr("Enum")},
		},
		{
			Kind:    DefEnum,
			Name:    "Reserved",
			Parents: []Expr{NameExpr("str"), NameExpr("Enum")},
			Entries: []EnumEntry{
				{Name: "import", Value: Literal{Kind: LitString, Str: "import"}},
			},
		},
		{
			Kind: DefClass,
			Name: "Position",
			Fields: []Field{
				{Name: "line", Type: NameExpr("int")},
				{Name: "character", Type: NameExpr("int")},
			},
		},
		{
			Kind: DefClass,
			Name: "Range",
			Fields: []Field{
				{Name: "start", Type: NameExpr("Position")},
				{Name: "end", Type: NameExpr("Position")},
			},
		},
		{
			Kind: DefClass,
			Name: "VersionedTextDocument",
			Fields: []Field{
				{Name: "uri", Type: NameExpr("str")},
				{Name: "version", Type: NameExpr("int"), Optional: true},
			},
		},
		{
			Kind: DefClass,
			Name: "SelectionRange",
			Fields: []Field{
				{Name: "range", Type: NameExpr("Range")},
				{Name: "parent", Type: NameExpr("SelectionRange"), Optional: true},
			},
		},
		{
			Kind:  DefAlias,
			Name:  "Trace",
			Alias: NameExpr("TraceValue"),
		},
		{
			Kind: DefAlias,
			Name: "ProgressToken",
			Alias: Expr{
				Kind:  ExprUnion,
				Elems: []Expr{NameExpr("int"), NameExpr("str")},
			},
		},
	}
}

func TestDefault_Shapes(t *testing.T) {
	d := NewDefaulter(defaultFixtureDefs())

	tests := []struct {
		name string
		expr Expr
		opts DefaultOptions
		want string
	}{
		{"int", NameExpr("int"), DefaultOptions{}, "0"},
		{"float", NameExpr("float"), DefaultOptions{}, "0.0"},
		{"str", NameExpr("str"), DefaultOptions{}, "''"},
		{"bool", NameExpr("bool"), DefaultOptions{}, "False"},
		{"None", NameExpr("None"), DefaultOptions{}, "None"},
		{"list", Expr{Kind: ExprList, Elems: []Expr{NameExpr("str")}}, DefaultOptions{}, "[]"},
		{"dict", Expr{Kind: ExprDict, Elems: []Expr{NameExpr("str"), NameExpr("int")}}, DefaultOptions{}, "{}"},
		{
			"union takes first branch",
			Expr{Kind: ExprUnion, Elems: []Expr{NameExpr("str"), NameExpr("int")}},
			DefaultOptions{},
			"''",
		},
		{
			"string literal",
			Expr{Kind: ExprLiteral, Lit: Literal{Kind: LitString, Str: "full"}},
			DefaultOptions{},
			"'full'",
		},
		{
			"integer literal",
			Expr{Kind: ExprLiteral, Lit: Literal{Kind: LitInt, Int: 2}},
			DefaultOptions{},
			"2",
		},
		{
			"pair tuple",
			Expr{Kind: ExprTuple, Elems: []Expr{NameExpr("int"), NameExpr("str")}},
			DefaultOptions{},
			"(0, '')",
		},
		{
			"single tuple keeps trailing comma",
			Expr{Kind: ExprTuple, Elems: []Expr{NameExpr("int")}},
			DefaultOptions{},
			"(0,)",
		},
		{
			"empty tuple",
			Expr{Kind: ExprTuple},
			DefaultOptions{},
			"()",
		},
		{"enum first member", NameExpr("TraceValue"), DefaultOptions{}, "TraceValue.Off"},
		{
			"enum all members",
			NameExpr("TraceValue"),
			DefaultOptions{AllMembers: true},
			"[TraceValue.Off, TraceValue.Messages, TraceValue.Verbose]",
		},
		{
			"enum member name escapes keywords",
			NameExpr("Reserved"),
			DefaultOptions{},
			"Reserved.import_",
		},
		{
			"list of enum stays empty by default",
			Expr{Kind: ExprList, Elems: []Expr{NameExpr("TraceValue")}},
			DefaultOptions{},
			"[]",
		},
		{
			"list of enum expands under all members",
			Expr{Kind: ExprList, Elems: []Expr{NameExpr("TraceValue")}},
			DefaultOptions{AllMembers: true},
			"[TraceValue.Off, TraceValue.Messages, TraceValue.Verbose]",
		},
		{"alias dereferences", NameExpr("Trace"), DefaultOptions{}, "TraceValue.Off"},
		{"alias to union", NameExpr("ProgressToken"), DefaultOptions{}, "0"},
		{"class placeholder", NameExpr("Position"), DefaultOptions{}, "..."},
		{
			"class recursive skeleton",
			NameExpr("Position"),
			DefaultOptions{Recursive: true},
			"{'line': 0, 'character': 0}",
		},
		{
			"nested recursive skeleton",
			NameExpr("Range"),
			DefaultOptions{Recursive: true},
			"{'start': {'line': 0, 'character': 0}, 'end': {'line': 0, 'character': 0}}",
		},
		{
			"only required skips optional fields",
			NameExpr("VersionedTextDocument"),
			DefaultOptions{Recursive: true, OnlyRequired: true},
			"{'uri': ''}",
		},
		{
			"optional fields kept without the flag",
			NameExpr("VersionedTextDocument"),
			DefaultOptions{Recursive: true},
			"{'uri': '', 'version': 0}",
		},
		{
			"self reference stops at placeholder",
			NameExpr("SelectionRange"),
			DefaultOptions{Recursive: true},
			"{'range': {'start': {'line': 0, 'character': 0}, 'end': {'line': 0, 'character': 0}}, 'parent': ...}",
		},
		{
			"inline record",
			Expr{Kind: ExprStructLit, Fields: []Field{
				{Name: "language", Type: NameExpr("str")},
				{Name: "value", Type: NameExpr("str")},
			}},
			DefaultOptions{},
			"{'language': '', 'value': ''}",
		},
		{
			"empty inline record",
			Expr{Kind: ExprStructLit},
			DefaultOptions{},
			"{}",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := d.Default(tt.expr, tt.opts)
			if err != nil {
				t.Fatalf("Default failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %s, want %s", got, tt.want)
			}
		})
	}
}

func TestDefault_Errors(t *testing.T) {
	d := NewDefaulter(defaultFixtureDefs())

	tests := []struct {
		name string
		expr Expr
	}{
		{"unknown reference", NameExpr("Nonexistent")},
		{"empty union", Expr{Kind: ExprUnion}},
		{"memberless enumeration", NameExpr("Hollow")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := d.Default(tt.expr, DefaultOptions{})
			if err == nil {
				t.Fatal("expected error")
			}
			if !errors.IsUnsupportedDefault(err) {
				t.Errorf("expected unsupported-default sentinel, got %v", err)
			}
		})
	}
}

func TestDefault_ErrorNamesField(t *testing.T) {
	d := NewDefaulter(defaultFixtureDefs())

	_, err := d.Default(Expr{Kind: ExprStructLit, Fields: []Field{
		{Name: "broken", Type: NameExpr("Nonexistent")},
	}}, DefaultOptions{})
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "broken") {
		t.Errorf("error should name the field: %v", err)
	}
}
