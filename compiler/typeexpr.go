// Package compiler turns a protocol metamodel into ordered type definitions
// and two symmetric dispatcher artifacts (Initiator and Responder). The whole
// pipeline is a pure function over the model: identical input yields
// byte-identical output, and nothing here performs I/O.
package compiler

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/teranos/peergen/errors"
	"github.com/teranos/peergen/metamodel"
)

// ExprKind tags the shapes a compiled type expression can take.
type ExprKind int

const (
	// ExprName is a bare identifier: a target primitive (int, str, None),
	// an opaque base name passed through (URI, uinteger), or a reference
	// to a definition. Resolution is deferred to consumers.
	ExprName ExprKind = iota
	// ExprList is a sequence of one element type.
	ExprList
	// ExprDict is an associative type; Elems holds key then value.
	ExprDict
	// ExprTuple is a fixed-arity ordered product.
	ExprTuple
	// ExprUnion covers both "or" and "and" source types; the target model
	// has no structural-intersection primitive, so the two compile
	// identically. Documented limitation, not a defect.
	ExprUnion
	// ExprLiteral is a type restricted to exactly one literal value.
	ExprLiteral
	// ExprStructLit is an inline anonymous record. It renders as a literal
	// singleton of its field lines; its field types still count as
	// references.
	ExprStructLit
)

// LitKind tags literal singleton values.
type LitKind int

const (
	LitString LitKind = iota
	LitInt
	LitBool
)

// Literal is a single literal value carried by an ExprLiteral node.
type Literal struct {
	Kind LitKind
	Str  string
	Int  int
	Bool bool
}

// Repr renders the literal value with Python-repr semantics.
func (l Literal) Repr() string {
	switch l.Kind {
	case LitInt:
		return strconv.Itoa(l.Int)
	case LitBool:
		if l.Bool {
			return "True"
		}
		return "False"
	default:
		return Repr(l.Str)
	}
}

// Expr is a compiled type expression: a structural tree rather than rendered
// text, so forward references can be decided per render site instead of by
// regex rewrites over strings.
type Expr struct {
	Kind   ExprKind
	Name   string  // ExprName
	Elems  []Expr  // ExprList (1), ExprDict (2: key, value), ExprTuple, ExprUnion
	Fields []Field // ExprStructLit
	Lit    Literal // ExprLiteral
}

// baseTypes maps protocol base scalars to target primitives. Anything not
// listed passes through unchanged as an opaque name (URI, DocumentUri,
// RegExp, uinteger, ...), which the base alias definitions later resolve.
var baseTypes = map[string]string{
	"integer": "int",
	"decimal": "float",
	"string":  "str",
	"boolean": "bool",
	"null":    "None",
}

// NameExpr wraps a bare identifier as an expression.
func NameExpr(name string) Expr {
	return Expr{Kind: ExprName, Name: name}
}

// NoneExpr is the compiled form of an absent type (no params, no result).
func NoneExpr() Expr {
	return NameExpr("None")
}

// CompileType compiles one type expression. Total over the closed tagged
// union; only a kind outside the union fails. Reference names are taken
// verbatim; whether they resolve is a consumer's concern, not checked here.
func CompileType(t *metamodel.Type) (Expr, error) {
	if t == nil {
		return NoneExpr(), nil
	}

	switch t.Kind {
	case metamodel.KindBase:
		if mapped, ok := baseTypes[t.Name]; ok {
			return NameExpr(mapped), nil
		}
		return NameExpr(t.Name), nil

	case metamodel.KindReference:
		return NameExpr(t.Name), nil

	case metamodel.KindArray:
		elem, err := CompileType(t.Element)
		if err != nil {
			return Expr{}, err
		}
		return Expr{Kind: ExprList, Elems: []Expr{elem}}, nil

	case metamodel.KindMap:
		key, err := CompileType(t.Key)
		if err != nil {
			return Expr{}, err
		}
		value, err := CompileType(t.Value)
		if err != nil {
			return Expr{}, err
		}
		return Expr{Kind: ExprDict, Elems: []Expr{key, value}}, nil

	case metamodel.KindAnd, metamodel.KindOr:
		elems, err := compileItems(t.Items)
		if err != nil {
			return Expr{}, err
		}
		return Expr{Kind: ExprUnion, Elems: elems}, nil

	case metamodel.KindTuple:
		elems, err := compileItems(t.Items)
		if err != nil {
			return Expr{}, err
		}
		return Expr{Kind: ExprTuple, Elems: elems}, nil

	case metamodel.KindLiteral:
		fields, err := compileProperties(t.Literal.Properties)
		if err != nil {
			return Expr{}, err
		}
		return Expr{Kind: ExprStructLit, Fields: fields}, nil

	case metamodel.KindStringLiteral:
		return Expr{Kind: ExprLiteral, Lit: Literal{Kind: LitString, Str: t.StringValue}}, nil

	case metamodel.KindIntegerLiteral:
		return Expr{Kind: ExprLiteral, Lit: Literal{Kind: LitInt, Int: t.IntValue}}, nil

	case metamodel.KindBooleanLiteral:
		return Expr{Kind: ExprLiteral, Lit: Literal{Kind: LitBool, Bool: t.BoolValue}}, nil

	default:
		return Expr{}, errors.NewUnsupportedKind(string(t.Kind))
	}
}

func compileItems(items []*metamodel.Type) ([]Expr, error) {
	elems := make([]Expr, 0, len(items))
	for _, item := range items {
		e, err := CompileType(item)
		if err != nil {
			return nil, err
		}
		elems = append(elems, e)
	}
	return elems, nil
}

func compileProperties(props []metamodel.Property) ([]Field, error) {
	fields := make([]Field, 0, len(props))
	for _, p := range props {
		t, err := CompileType(p.Type)
		if err != nil {
			return nil, err
		}
		fields = append(fields, Field{
			Name:     p.Name,
			Type:     t,
			Optional: p.Optional,
			Doc:      p.Documentation,
		})
	}
	return fields, nil
}

// String renders the expression with no forward-reference quoting.
func (e Expr) String() string {
	return e.Render(nil)
}

// Render renders the expression, double-quoting any bare name present in
// quoted (the forward references the orderer recorded for the surrounding
// definition). Inside a struct-literal fallback no quoting applies: the whole
// rendering collapses into a string anyway.
func (e Expr) Render(quoted map[string]bool) string {
	switch e.Kind {
	case ExprName:
		if quoted[e.Name] {
			return `"` + e.Name + `"`
		}
		return e.Name

	case ExprList:
		return "List[" + e.Elems[0].Render(quoted) + "]"

	case ExprDict:
		return "Dict[" + e.Elems[0].Render(quoted) + ", " + e.Elems[1].Render(quoted) + "]"

	case ExprTuple:
		return "Tuple[" + renderElems(e.Elems, quoted) + "]"

	case ExprUnion:
		return "Union[" + renderElems(e.Elems, quoted) + "]"

	case ExprLiteral:
		return "Literal[" + e.Lit.Repr() + "]"

	case ExprStructLit:
		lines := make([]string, 0, len(e.Fields))
		for _, f := range e.Fields {
			annotation := f.Type.Render(nil)
			if f.Optional {
				annotation = "NotRequired[" + annotation + "]"
			}
			lines = append(lines, f.Name+": "+annotation)
		}
		return "Literal[" + Repr(strings.Join(lines, "\n")) + "]"

	default:
		return ""
	}
}

func renderElems(elems []Expr, quoted map[string]bool) string {
	parts := make([]string, 0, len(elems))
	for _, e := range elems {
		parts = append(parts, e.Render(quoted))
	}
	return strings.Join(parts, ", ")
}

// refs appends every bare name mentioned by the expression, in rendered
// (left-to-right) order, to out. Names include target primitives and opaque
// pass-throughs; consumers filter against the defined-names namespace, so
// over-collection is harmless and matches what a lexical scan of the
// rendered text would see.
func (e Expr) refs(out []string) []string {
	switch e.Kind {
	case ExprName:
		return append(out, e.Name)
	case ExprList, ExprDict, ExprTuple, ExprUnion:
		for _, elem := range e.Elems {
			out = elem.refs(out)
		}
		return out
	case ExprStructLit:
		for _, f := range e.Fields {
			out = f.Type.refs(out)
		}
		return out
	default:
		return out
	}
}

// pythonKeywords are reserved words in Python that need special handling
var pythonKeywords = map[string]bool{
	"False": true, "None": true, "True": true, "and": true, "as": true,
	"assert": true, "async": true, "await": true, "break": true, "class": true,
	"continue": true, "def": true, "del": true, "elif": true, "else": true,
	"except": true, "finally": true, "for": true, "from": true, "global": true,
	"if": true, "import": true, "in": true, "is": true, "lambda": true,
	"nonlocal": true, "not": true, "or": true, "pass": true, "raise": true,
	"return": true, "try": true, "while": true, "with": true, "yield": true,
	// Soft keywords (Python 3.10+)
	"match": true, "case": true, "type": true,
}

// EscapeKeyword converts an identifier to a valid Python identifier.
// Adds underscore suffix for Python keywords.
func EscapeKeyword(s string) string {
	if pythonKeywords[s] {
		return s + "_"
	}
	return s
}

// Repr renders s as a Python string literal: single-quoted unless the value
// contains a single quote and no double quote, with standard escapes and
// \xNN for control characters. An enum value like "\x1b" survives
// byte-for-byte as '\x1b'.
func Repr(s string) string {
	quote := byte('\'')
	if strings.ContainsRune(s, '\'') && !strings.ContainsRune(s, '"') {
		quote = '"'
	}

	var b strings.Builder
	b.WriteByte(quote)
	for _, r := range s {
		switch {
		case r == '\\':
			b.WriteString(`\\`)
		case r == rune(quote):
			b.WriteByte('\\')
			b.WriteByte(quote)
		case r == '\n':
			b.WriteString(`\n`)
		case r == '\r':
			b.WriteString(`\r`)
		case r == '\t':
			b.WriteString(`\t`)
		case r < 0x20 || r == 0x7f:
			fmt.Fprintf(&b, `\x%02x`, r)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte(quote)
	return b.String()
}
