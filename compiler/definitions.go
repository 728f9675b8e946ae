package compiler

import (
	"github.com/teranos/peergen/errors"
	"github.com/teranos/peergen/metamodel"
)

// DefKind tags the three shapes a Definition can take in the types artifact.
type DefKind int

const (
	DefClass DefKind = iota
	DefEnum
	DefAlias
)

// Field is one attribute of a class definition (or of an inline record).
type Field struct {
	Name     string
	Type     Expr
	Optional bool
	Doc      string
}

// EnumEntry is one member of an enumeration. The value is carried as a
// literal so string values survive byte-for-byte through rendering.
type EnumEntry struct {
	Name  string
	Value Literal
}

// Definition is one named entry of the types artifact. Definitions are
// immutable once built; the orderer rearranges and annotates, never mutates.
type Definition struct {
	Kind DefKind
	Name string
	Doc  string

	// Parents are base-class expressions for DefClass (compiled extends,
	// possibly empty) and the backing-scalar/Enum pair for DefEnum.
	Parents []Expr

	// Fields for DefClass: own properties in declared order, then each
	// mixin's own properties in mixin order.
	Fields []Field

	// Entries for DefEnum, declared order.
	Entries []EnumEntry

	// Alias is the bound expression for DefAlias.
	Alias Expr
}

// References lists every name the definition mentions: parents first, then
// fields or the aliased expression, in order. Over-collection (primitives,
// typing helpers) is fine; consumers filter against the known-definition
// namespace.
func (d *Definition) References() []string {
	var out []string
	for _, p := range d.Parents {
		out = p.refs(out)
	}
	switch d.Kind {
	case DefClass:
		for _, f := range d.Fields {
			out = f.Type.refs(out)
		}
	case DefAlias:
		out = d.Alias.refs(out)
	}
	return out
}

// baseAliases bind the opaque base scalar names the compiler passes through.
// Prepended before model definitions so they always precede first use.
var baseAliases = []struct {
	name  string
	value string
}{
	{"uinteger", "int"},
	{"URI", "str"},
	{"DocumentUri", "str"},
	{"RegExp", "str"},
}

// BuildDefinitions compiles the model's enumerations, structures, and type
// aliases into Definitions, in that declared order, with the base scalar
// aliases prepended.
func BuildDefinitions(model *metamodel.MetaModel) ([]*Definition, error) {
	defs := make([]*Definition, 0,
		len(baseAliases)+len(model.Enumerations)+len(model.Structures)+len(model.TypeAliases))

	for _, ba := range baseAliases {
		defs = append(defs, &Definition{
			Kind:  DefAlias,
			Name:  ba.name,
			Alias: NameExpr(ba.value),
		})
	}

	structsByName := make(map[string]*metamodel.Structure, len(model.Structures))
	for i := range model.Structures {
		structsByName[model.Structures[i].Name] = &model.Structures[i]
	}

	for i := range model.Enumerations {
		defs = append(defs, buildEnumeration(&model.Enumerations[i]))
	}

	for i := range model.Structures {
		def, err := buildStructure(&model.Structures[i], structsByName)
		if err != nil {
			return nil, err
		}
		defs = append(defs, def)
	}

	for i := range model.TypeAliases {
		alias := &model.TypeAliases[i]
		expr, err := CompileType(alias.Type)
		if err != nil {
			return nil, errors.Wrapf(err, "type alias %q", alias.Name)
		}
		defs = append(defs, &Definition{
			Kind:  DefAlias,
			Name:  alias.Name,
			Doc:   alias.Documentation,
			Alias: expr,
		})
	}

	return defs, nil
}

func buildEnumeration(enum *metamodel.Enumeration) *Definition {
	backing := NameExpr(enum.Type.Name)
	if mapped, ok := baseTypes[enum.Type.Name]; ok {
		backing = NameExpr(mapped)
	}

	entries := make([]EnumEntry, 0, len(enum.Values))
	for _, v := range enum.Values {
		lit := Literal{Kind: LitString, Str: v.Value.StringValue}
		if !v.Value.IsString {
			lit = Literal{Kind: LitInt, Int: v.Value.IntValue}
		}
		entries = append(entries, EnumEntry{Name: v.Name, Value: lit})
	}

	return &Definition{
		Kind:    DefEnum,
		Name:    enum.Name,
		Parents: []Expr{backing, NameExpr("Enum")},
		Entries: entries,
	}
}

// buildStructure compiles one structure. Extends compile verbatim without an
// existence check; mixins are the single dereference the builder performs,
// flattening each referenced structure's own properties (one level, no
// recursion, no de-duplication) after the structure's own.
func buildStructure(s *metamodel.Structure, structsByName map[string]*metamodel.Structure) (*Definition, error) {
	parents := make([]Expr, 0, len(s.Extends))
	for _, ext := range s.Extends {
		p, err := CompileType(ext)
		if err != nil {
			return nil, errors.Wrapf(err, "structure %q extends", s.Name)
		}
		parents = append(parents, p)
	}

	props := make([]metamodel.Property, 0, len(s.Properties))
	props = append(props, s.Properties...)
	for _, mixin := range s.Mixins {
		ref, ok := structsByName[mixin.Name]
		if !ok {
			return nil, errors.NewUnresolvedReference(
				"mixin %q of structure %q names no defined structure", mixin.Name, s.Name)
		}
		props = append(props, ref.Properties...)
	}

	fields, err := compileProperties(props)
	if err != nil {
		return nil, errors.Wrapf(err, "structure %q", s.Name)
	}

	return &Definition{
		Kind:    DefClass,
		Name:    s.Name,
		Doc:     s.Documentation,
		Parents: parents,
		Fields:  fields,
	}, nil
}
