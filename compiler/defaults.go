package compiler

import (
	"strings"

	"github.com/teranos/peergen/errors"
)

// DefaultOptions controls default-value synthesis.
type DefaultOptions struct {
	// OnlyRequired skips optional fields in record skeletons.
	OnlyRequired bool
	// Recursive expands structure references into nested skeletons instead
	// of the ... placeholder.
	Recursive bool
	// AllMembers renders an enumeration default as the full member list
	// instead of the first member.
	AllMembers bool
}

// Defaulter synthesizes target-language default values for compiled type
// expressions, resolving names against the built definitions. Used by the
// skeleton output; the generated artifacts themselves never embed defaults.
type Defaulter struct {
	defs map[string]*Definition
}

// NewDefaulter indexes definitions for name resolution.
func NewDefaulter(defs []*Definition) *Defaulter {
	byName := make(map[string]*Definition, len(defs))
	for _, d := range defs {
		byName[d.Name] = d
	}
	return &Defaulter{defs: byName}
}

// Default renders a default value for the expression. A shape with no
// sensible default fails with ErrUnsupportedDefault.
func (d *Defaulter) Default(e Expr, opts DefaultOptions) (string, error) {
	return d.value(e, opts, make(map[string]bool))
}

func (d *Defaulter) value(e Expr, opts DefaultOptions, visiting map[string]bool) (string, error) {
	switch e.Kind {
	case ExprName:
		return d.named(e.Name, opts, visiting)

	case ExprList:
		// A list over an enumeration expands to the full member list under
		// AllMembers (capability-style fields enumerate what is supported).
		if opts.AllMembers && len(e.Elems) == 1 && e.Elems[0].Kind == ExprName {
			if def, ok := d.defs[e.Elems[0].Name]; ok && def.Kind == DefEnum && len(def.Entries) > 0 {
				return d.memberList(def), nil
			}
		}
		return "[]", nil

	case ExprDict:
		return "{}", nil

	case ExprUnion:
		if len(e.Elems) == 0 {
			return "", errors.Wrap(errors.ErrUnsupportedDefault, "empty union")
		}
		return d.value(e.Elems[0], opts, visiting)

	case ExprTuple:
		return d.tuple(e.Elems, opts, visiting)

	case ExprLiteral:
		return e.Lit.Repr(), nil

	case ExprStructLit:
		return d.skeleton(e.Fields, opts, visiting)

	default:
		return "", errors.Wrapf(errors.ErrUnsupportedDefault, "expression kind %d", e.Kind)
	}
}

var scalarDefaults = map[string]string{
	"int":   "0",
	"float": "0.0",
	"str":   "''",
	"bool":  "False",
	"None":  "None",
}

func (d *Defaulter) named(name string, opts DefaultOptions, visiting map[string]bool) (string, error) {
	if v, ok := scalarDefaults[name]; ok {
		return v, nil
	}

	def, ok := d.defs[name]
	if !ok {
		return "", errors.Wrapf(errors.ErrUnsupportedDefault, "reference %q names no definition", name)
	}
	if visiting[name] {
		// Recursive shape; the placeholder marks where the nesting stopped.
		return "...", nil
	}

	switch def.Kind {
	case DefAlias:
		visiting[name] = true
		v, err := d.value(def.Alias, opts, visiting)
		delete(visiting, name)
		return v, err

	case DefEnum:
		if len(def.Entries) == 0 {
			return "", errors.Wrapf(errors.ErrUnsupportedDefault, "enumeration %q has no members", name)
		}
		if opts.AllMembers {
			return d.memberList(def), nil
		}
		return name + "." + EscapeKeyword(def.Entries[0].Name), nil

	default: // DefClass
		if !opts.Recursive {
			return "...", nil
		}
		visiting[name] = true
		v, err := d.skeleton(def.Fields, opts, visiting)
		delete(visiting, name)
		return v, err
	}
}

func (d *Defaulter) memberList(def *Definition) string {
	members := make([]string, 0, len(def.Entries))
	for _, entry := range def.Entries {
		members = append(members, def.Name+"."+EscapeKeyword(entry.Name))
	}
	return "[" + strings.Join(members, ", ") + "]"
}

func (d *Defaulter) skeleton(fields []Field, opts DefaultOptions, visiting map[string]bool) (string, error) {
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		if opts.OnlyRequired && f.Optional {
			continue
		}
		v, err := d.value(f.Type, opts, visiting)
		if err != nil {
			return "", errors.Wrapf(err, "field %q", f.Name)
		}
		parts = append(parts, Repr(f.Name)+": "+v)
	}
	if len(parts) == 0 {
		return "{}", nil
	}
	return "{" + strings.Join(parts, ", ") + "}", nil
}

func (d *Defaulter) tuple(elems []Expr, opts DefaultOptions, visiting map[string]bool) (string, error) {
	parts := make([]string, 0, len(elems))
	for _, e := range elems {
		v, err := d.value(e, opts, visiting)
		if err != nil {
			return "", err
		}
		parts = append(parts, v)
	}
	switch len(parts) {
	case 0:
		return "()", nil
	case 1:
		return "(" + parts[0] + ",)", nil
	default:
		return "(" + strings.Join(parts, ", ") + ")", nil
	}
}
