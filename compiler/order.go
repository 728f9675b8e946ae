package compiler

// Ordered is the orderer's output: every definition exactly once, referenced
// definitions ahead of their referencers except across recorded cycle edges.
type Ordered struct {
	Definitions []*Definition

	// ForwardRefs maps a definition name to the referenced names that could
	// not be placed ahead of it (cycles, self-references included). Renderers
	// quote these names where the target language evaluates eagerly.
	ForwardRefs map[string][]string
}

// Quoted returns the forward-referenced name set for one definition.
func (o *Ordered) Quoted(defName string) map[string]bool {
	refs := o.ForwardRefs[defName]
	if len(refs) == 0 {
		return nil
	}
	set := make(map[string]bool, len(refs))
	for _, r := range refs {
		set[r] = true
	}
	return set
}

// Order arranges definitions so that every referenced definition precedes
// its referencer, visiting in declared order so unrelated definitions keep
// their relative positions. A reference back into the in-progress chain is a
// cycle: the edge is recorded and the walk moves on instead of descending.
// Names that correspond to no definition are external and ignored.
func Order(defs []*Definition) *Ordered {
	byName := make(map[string]*Definition, len(defs))
	for _, d := range defs {
		byName[d.Name] = d
	}

	placed := make(map[string]bool, len(defs))
	inProgress := make(map[string]bool)
	out := &Ordered{
		Definitions: make([]*Definition, 0, len(defs)),
		ForwardRefs: make(map[string][]string),
	}

	var place func(d *Definition)
	place = func(d *Definition) {
		if placed[d.Name] {
			return
		}
		inProgress[d.Name] = true

		for _, ref := range d.References() {
			refDef, known := byName[ref]
			if !known || placed[ref] {
				continue
			}
			if inProgress[ref] {
				out.recordForward(d.Name, ref)
				continue
			}
			place(refDef)
		}

		delete(inProgress, d.Name)
		placed[d.Name] = true
		out.Definitions = append(out.Definitions, d)
	}

	for _, d := range defs {
		place(d)
	}
	return out
}

func (o *Ordered) recordForward(from, to string) {
	for _, existing := range o.ForwardRefs[from] {
		if existing == to {
			return
		}
	}
	o.ForwardRefs[from] = append(o.ForwardRefs[from], to)
}
