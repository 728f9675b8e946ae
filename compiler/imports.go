package compiler

import (
	"regexp"
)

// identPattern matches bare identifier tokens in rendered annotation text.
// Two characters minimum: single-letter tokens never name a definition here,
// and the scan stays byte-compatible with what a reader of the rendered
// artifact would pick out.
var identPattern = regexp.MustCompile(`[a-zA-Z_]\w+`)

// ResolveImports lists the defined names a role artifact needs from the
// types artifact: a lexical scan over every method's parameter annotations
// then its return annotation, in artifact order, filtered to names the
// definitions actually bind, first mention wins, no duplicates.
func ResolveImports(defs []*Definition, artifact *Artifact) []string {
	defined := make(map[string]bool, len(defs))
	for _, d := range defs {
		defined[d.Name] = true
	}

	var imports []string
	seen := make(map[string]bool)
	scan := func(annotation string) {
		for _, tok := range identPattern.FindAllString(annotation, -1) {
			if seen[tok] || !defined[tok] {
				continue
			}
			seen[tok] = true
			imports = append(imports, tok)
		}
	}

	for _, m := range artifact.Methods {
		for _, p := range m.Params {
			scan(p.Type.String())
		}
		scan(m.Returns.String())
	}
	return imports
}
