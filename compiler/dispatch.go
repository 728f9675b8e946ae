package compiler

import (
	"github.com/teranos/peergen/errors"
)

// DispatchEntry binds one wire method to the handler that receives it.
type DispatchEntry struct {
	WireMethod string
	Handler    string
}

// DispatchTableBuilder accumulates (wire method, handler) bindings in
// registration order. The in-progress table is never consumed directly;
// Freeze produces the immutable view the emitters read.
type DispatchTableBuilder struct {
	entries []DispatchEntry
	byWire  map[string]string
}

// NewDispatchTableBuilder returns an empty builder.
func NewDispatchTableBuilder() *DispatchTableBuilder {
	return &DispatchTableBuilder{byWire: make(map[string]string)}
}

// Register binds a wire method to a handler name. Registering the same
// binding again is idempotent; binding an already-registered method to a
// different handler is a conflict.
func (b *DispatchTableBuilder) Register(wireMethod, handler string) error {
	if existing, ok := b.byWire[wireMethod]; ok {
		if existing == handler {
			return nil
		}
		return errors.Wrapf(errors.ErrUnknownMethod,
			"wire method %q already bound to %q, cannot rebind to %q",
			wireMethod, existing, handler)
	}
	b.byWire[wireMethod] = handler
	b.entries = append(b.entries, DispatchEntry{WireMethod: wireMethod, Handler: handler})
	return nil
}

// Freeze seals the builder into an immutable DispatchTable. The builder must
// not be used afterwards.
func (b *DispatchTableBuilder) Freeze() *DispatchTable {
	t := &DispatchTable{entries: b.entries, byWire: b.byWire}
	b.entries = nil
	b.byWire = nil
	return t
}

// DispatchTable is a frozen wire-method routing table: ordered entries for
// emission, map lookup for queries.
type DispatchTable struct {
	entries []DispatchEntry
	byWire  map[string]string
}

// Entries returns the bindings in registration order.
func (t *DispatchTable) Entries() []DispatchEntry {
	return t.entries
}

// Len returns the number of bindings.
func (t *DispatchTable) Len() int {
	return len(t.entries)
}

// Handler resolves a wire method to its handler name.
func (t *DispatchTable) Handler(wireMethod string) (string, error) {
	h, ok := t.byWire[wireMethod]
	if !ok {
		return "", errors.Wrapf(errors.ErrUnknownMethod, "wire method %q", wireMethod)
	}
	return h, nil
}
