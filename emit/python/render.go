package python

import (
	"strings"

	"github.com/teranos/peergen/compiler"
)

// fromImports renders a from-import line; more than three names switch to
// the parenthesized one-per-line form.
func fromImports(module string, names []string) string {
	if len(names) > 3 {
		return "from " + module + " import (\n\t" + strings.Join(names, ",\n\t") + "\n)"
	}
	return "from " + module + " import " + strings.Join(names, ", ")
}

// docstring renders documentation as a triple-quoted string. Escape
// sequences spelled out in the documentation text (\r, \n, \t) are escaped
// once more so they read literally; any remaining backslash switches the
// whole docstring to raw form.
func docstring(text string) string {
	escaped := strings.ReplaceAll(text, `\r`, `\\r`)
	escaped = strings.ReplaceAll(escaped, `\n`, `\\n`)
	escaped = strings.ReplaceAll(escaped, `\t`, `\\t`)
	if strings.Contains(escaped, `\`) {
		return `r"""` + escaped + `"""`
	}
	return `"""` + escaped + `"""`
}

// indent prefixes every non-blank line. Blank lines (docstring paragraph
// breaks) stay bare.
func indent(text, prefix string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if strings.TrimSpace(line) != "" {
			lines[i] = prefix + line
		}
	}
	return strings.Join(lines, "\n")
}

func renderDefinition(def *compiler.Definition, quoted map[string]bool) string {
	switch def.Kind {
	case compiler.DefEnum:
		return renderEnum(def)
	case compiler.DefAlias:
		return renderAlias(def, quoted)
	default:
		return renderClass(def, quoted)
	}
}

// renderClass renders a structure definition. No declared parents means the
// record base class; parent names are never quoted, only field annotations
// carry forward references.
func renderClass(def *compiler.Definition, quoted map[string]bool) string {
	var sb strings.Builder
	sb.WriteString("class ")
	sb.WriteString(def.Name)
	sb.WriteString("(")
	if len(def.Parents) == 0 {
		sb.WriteString("TypedDict")
	} else {
		parents := make([]string, 0, len(def.Parents))
		for _, p := range def.Parents {
			parents = append(parents, p.String())
		}
		sb.WriteString(strings.Join(parents, ", "))
	}
	sb.WriteString("):\n")

	var body []string
	if def.Doc != "" {
		body = append(body, docstring(def.Doc))
	}
	for _, f := range def.Fields {
		annotation := f.Type.Render(quoted)
		if f.Optional {
			annotation = "NotRequired[" + annotation + "]"
		}
		line := compiler.EscapeKeyword(f.Name) + ": " + annotation
		if f.Doc != "" {
			line += "\n" + docstring(f.Doc)
		}
		body = append(body, line)
	}
	if len(body) == 0 {
		body = append(body, "pass")
	}

	sb.WriteString(indent(strings.Join(body, "\n"), "\t"))
	return sb.String()
}

func renderEnum(def *compiler.Definition) string {
	var sb strings.Builder
	sb.WriteString("class ")
	sb.WriteString(def.Name)
	sb.WriteString("(")
	parents := make([]string, 0, len(def.Parents))
	for _, p := range def.Parents {
		parents = append(parents, p.String())
	}
	sb.WriteString(strings.Join(parents, ", "))
	sb.WriteString("):\n")

	if len(def.Entries) == 0 {
		sb.WriteString("\tpass")
		return sb.String()
	}

	lines := make([]string, 0, len(def.Entries))
	for _, entry := range def.Entries {
		lines = append(lines, compiler.EscapeKeyword(entry.Name)+" = "+entry.Value.Repr())
	}
	sb.WriteString(indent(strings.Join(lines, "\n"), "\t"))
	return sb.String()
}

func renderAlias(def *compiler.Definition, quoted map[string]bool) string {
	line := compiler.EscapeKeyword(def.Name) + ": TypeAlias = " + def.Alias.Render(quoted)
	if def.Doc != "" {
		line += "\n" + docstring(def.Doc)
	}
	return line
}

func renderRoleClass(artifact *compiler.Artifact) string {
	var sb strings.Builder
	sb.WriteString("class ")
	sb.WriteString(artifact.Role.String())
	sb.WriteString(":\n")

	methods := make([]string, 0, len(artifact.Methods))
	for _, m := range artifact.Methods {
		methods = append(methods, renderMethod(m, artifact.Table))
	}
	sb.WriteString(indent(strings.Join(methods, "\n\n"), "\t"))
	return sb.String()
}

func renderMethod(m compiler.Method, table *compiler.DispatchTable) string {
	var sb strings.Builder
	sb.WriteString("def ")
	sb.WriteString(m.Name)
	sb.WriteString("(self")
	for _, p := range m.Params {
		sb.WriteString(", ")
		sb.WriteString(p.Name)
		sb.WriteString(": ")
		sb.WriteString(p.Type.String())
	}
	sb.WriteString(") -> ")
	sb.WriteString(m.Returns.String())
	sb.WriteString(":\n")

	var body []string
	if m.Doc != "" {
		body = append(body, docstring(m.Doc))
	}
	body = append(body, methodBody(m, table))
	sb.WriteString(indent(strings.Join(body, "\n"), "\t"))
	return sb.String()
}

func methodBody(m compiler.Method, table *compiler.DispatchTable) string {
	switch m.Kind {
	case compiler.MethodRequestSender:
		return "self.request(method=" + compiler.Repr(m.WireMethod) + ", params=params)"
	case compiler.MethodNotificationSender:
		return "self.notify(method=" + compiler.Repr(m.WireMethod) + ", params=params)"
	case compiler.MethodDispatch:
		return dispatchBody(table)
	default:
		// Handler stubs establish the contract; the subclass supplies the
		// behavior. An unoverridden stub fails hard instead of returning None.
		return "raise NotImplementedError()"
	}
}

// dispatchBody renders the boundary map in table order and the lookup call.
// An unknown method is a KeyError at the lookup, never a silent drop.
func dispatchBody(table *compiler.DispatchTable) string {
	entries := table.Entries()
	if len(entries) == 0 {
		return "handle_map = {}\nreturn handle_map[method](params_or_result)"
	}
	parts := make([]string, 0, len(entries))
	for _, e := range entries {
		parts = append(parts, compiler.Repr(e.WireMethod)+": self."+e.Handler)
	}
	return "handle_map = {\n\t" + strings.Join(parts, ",\n\t") +
		"\n\t}\nreturn handle_map[method](params_or_result)"
}
