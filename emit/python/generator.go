// Package python renders compiled protocol artifacts as Python source.
//
// Rendering is deterministic: definitions and methods arrive from the
// compiler in final order and no map iteration reaches the output. Headers
// carry the protocol version but no timestamp, so regenerating from an
// unchanged model is byte-identical.
package python

import (
	"strings"

	"github.com/teranos/peergen/compiler"
)

// typingImports is the fixed typing surface of the types artifact.
var typingImports = []string{
	"List", "Dict", "Union", "Tuple",
	"Literal", "TypeAlias", "TypedDict", "NotRequired",
}

// Options configure rendering. The zero value attributes the header to
// peergen and names the types module "protocol".
type Options struct {
	// Attribution names the generating tool in the DO NOT EDIT header.
	Attribution string
	// TypesModule is the module name of the shared types artifact; the role
	// modules import their definitions from it.
	TypesModule string
}

func (o Options) withDefaults() Options {
	if o.Attribution == "" {
		o.Attribution = "peergen"
	}
	if o.TypesModule == "" {
		o.TypesModule = "protocol"
	}
	return o
}

// File is one rendered output file.
type File struct {
	Name    string
	Content []byte
}

// Generator renders compiled results to Python source files.
type Generator struct {
	opts Options
}

// NewGenerator creates a Python generator.
func NewGenerator(opts Options) *Generator {
	return &Generator{opts: opts.withDefaults()}
}

// Files renders the full artifact set of one compilation: the shared types
// module, the two role modules, and an empty package __init__.py, in that
// order.
func (g *Generator) Files(result *compiler.Result) []File {
	return []File{
		{Name: g.opts.TypesModule + ".py", Content: []byte(g.TypesSource(result))},
		{Name: "initiator.py", Content: []byte(g.RoleSource(result, result.Initiator))},
		{Name: "responder.py", Content: []byte(g.RoleSource(result, result.Responder))},
		{Name: "__init__.py", Content: []byte{}},
	}
}

// TypesSource renders the shared types module: fixed imports, then every
// definition in dependency order, forward-referenced names quoted.
func (g *Generator) TypesSource(result *compiler.Result) string {
	units := []string{
		fromImports("__future__", []string{"annotations"}),
		fromImports("enum", []string{"Enum"}),
		fromImports("typing", typingImports),
	}
	for _, def := range result.Definitions.Definitions {
		units = append(units, renderDefinition(def, result.Definitions.Quoted(def.Name)))
	}
	return g.assemble(result.Version, units)
}

// RoleSource renders one role module: typing imports, the resolved imports
// from the types module, then the role class with its dispatch entrypoint.
func (g *Generator) RoleSource(result *compiler.Result, artifact *compiler.Artifact) string {
	units := []string{
		fromImports("typing", []string{"List", "Union"}),
	}
	if len(artifact.Imports) > 0 {
		units = append(units, fromImports("."+g.opts.TypesModule, artifact.Imports))
	}
	units = append(units, renderRoleClass(artifact))
	return g.assemble(result.Version, units)
}

// assemble prefixes the header and joins units two blank lines apart, each
// unit trimmed of trailing newlines, the file ending in exactly one.
func (g *Generator) assemble(version string, units []string) string {
	var sb strings.Builder
	sb.WriteString("# Code generated by ")
	sb.WriteString(g.opts.Attribution)
	sb.WriteString(" from a protocol metamodel. DO NOT EDIT.\n")
	if version != "" {
		sb.WriteString("# Protocol version: ")
		sb.WriteString(version)
		sb.WriteString("\n")
	}
	sb.WriteString("\n")

	for i, unit := range units {
		if i > 0 {
			sb.WriteString("\n\n")
		}
		sb.WriteString(strings.TrimRight(unit, "\n"))
	}
	sb.WriteString("\n")
	return sb.String()
}
