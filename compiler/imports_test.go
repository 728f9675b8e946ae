package compiler

import (
	"testing"
)

func importFixtureDefs() []*Definition {
	return []*Definition{
		{Kind: DefClass, Name: "HoverParams"},
		{Kind: DefClass, Name: "Hover"},
		{Kind: DefClass, Name: "Position"},
		{Kind: DefAlias, Name: "LSPAny"},
	}
}

func TestResolveImports_FirstSeenOrder(t *testing.T) {
	artifact := &Artifact{
		Methods: []Method{
			{
				Name:    "hover",
				Params:  []Param{{Name: "params", Type: NameExpr("HoverParams")}},
				Returns: NoneExpr(),
			},
			{
				Name: "handle_hover",
				Params: []Param{
					{Name: "context", Type: NameExpr("dict")},
					{Name: "result", Type: Expr{Kind: ExprUnion, Elems: []Expr{NameExpr("Hover"), NameExpr("None")}}},
				},
				Returns: NoneExpr(),
			},
			{
				Name: "handle",
				Params: []Param{
					{Name: "method", Type: NameExpr("str")},
					{Name: "params_or_result", Type: NameExpr("LSPAny")},
				},
				Returns: NoneExpr(),
			},
		},
	}

	got := ResolveImports(importFixtureDefs(), artifact)
	want := []string{"HoverParams", "Hover", "LSPAny"}
	if len(got) != len(want) {
		t.Fatalf("imports = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("imports[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestResolveImports_DeduplicatesAcrossMethods(t *testing.T) {
	artifact := &Artifact{
		Methods: []Method{
			{Params: []Param{{Name: "params", Type: NameExpr("Hover")}}, Returns: NoneExpr()},
			{Params: []Param{{Name: "params", Type: NameExpr("Hover")}}, Returns: NameExpr("Hover")},
		},
	}

	got := ResolveImports(importFixtureDefs(), artifact)
	if len(got) != 1 || got[0] != "Hover" {
		t.Errorf("imports = %v, want [Hover]", got)
	}
}

func TestResolveImports_ScansInsideComposites(t *testing.T) {
	artifact := &Artifact{
		Methods: []Method{
			{
				Params: []Param{{Name: "params", Type: Expr{
					Kind: ExprDict,
					Elems: []Expr{
						NameExpr("str"),
						{Kind: ExprList, Elems: []Expr{NameExpr("Position")}},
					},
				}}},
				Returns: NoneExpr(),
			},
		},
	}

	got := ResolveImports(importFixtureDefs(), artifact)
	if len(got) != 1 || got[0] != "Position" {
		t.Errorf("imports = %v, want [Position]", got)
	}
}

func TestResolveImports_UndefinedNamesSkipped(t *testing.T) {
	artifact := &Artifact{
		Methods: []Method{
			{
				Params:  []Param{{Name: "params", Type: NameExpr("SomethingElse")}},
				Returns: NameExpr("dict"),
			},
		},
	}

	got := ResolveImports(importFixtureDefs(), artifact)
	if len(got) != 0 {
		t.Errorf("imports = %v, want none", got)
	}
}

func TestResolveImports_ParamsScannedBeforeReturn(t *testing.T) {
	artifact := &Artifact{
		Methods: []Method{
			{
				Params:  []Param{{Name: "params", Type: NameExpr("HoverParams")}},
				Returns: NameExpr("Hover"),
			},
		},
	}

	got := ResolveImports(importFixtureDefs(), artifact)
	if len(got) != 2 || got[0] != "HoverParams" || got[1] != "Hover" {
		t.Errorf("imports = %v, want [HoverParams Hover]", got)
	}
}
