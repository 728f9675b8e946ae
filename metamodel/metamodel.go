// Package metamodel defines the declarative protocol description consumed by
// the compiler: structures, enumerations, type aliases, and direction-tagged
// requests and notifications.
//
// The model is loaded from JSON. Type expressions arrive as a tagged union
// dispatched on the "kind" field; decoding is the only place the union is
// open to the outside, so an unknown kind fails there, naming the kind.
package metamodel

import (
	"encoding/json"

	"github.com/teranos/peergen/errors"
)

// TypeKind tags the variants of the Type union.
type TypeKind string

const (
	KindBase           TypeKind = "base"
	KindReference      TypeKind = "reference"
	KindArray          TypeKind = "array"
	KindMap            TypeKind = "map"
	KindAnd            TypeKind = "and"
	KindOr             TypeKind = "or"
	KindTuple          TypeKind = "tuple"
	KindLiteral        TypeKind = "literal"
	KindStringLiteral  TypeKind = "stringLiteral"
	KindIntegerLiteral TypeKind = "integerLiteral"
	KindBooleanLiteral TypeKind = "booleanLiteral"
)

// Type is a recursively composed type expression. Exactly one field group is
// populated, selected by Kind:
//
//	base, reference          -> Name
//	array                    -> Element
//	map                      -> Key, Value
//	and, or, tuple           -> Items
//	literal                  -> Literal
//	stringLiteral            -> StringValue
//	integerLiteral           -> IntValue
//	booleanLiteral           -> BoolValue
//
// Values are immutable once decoded; the compiler never writes to them.
type Type struct {
	Kind TypeKind

	Name        string            // base scalar name or referenced definition name
	Element     *Type             // array element
	Key         *Type             // map key (base or reference, not re-verified here)
	Value       *Type             // map value
	Items       []*Type           // and/or/tuple members, declared order
	Literal     *StructureLiteral // inline anonymous record
	StringValue string
	IntValue    int
	BoolValue   bool
}

// UnmarshalJSON decodes one node of the tagged union, dispatching on "kind".
func (t *Type) UnmarshalJSON(data []byte) error {
	var head struct {
		Kind TypeKind `json:"kind"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return errors.Wrap(err, "decoding type kind")
	}

	t.Kind = head.Kind

	switch head.Kind {
	case KindBase, KindReference:
		var aux struct {
			Name string `json:"name"`
		}
		if err := json.Unmarshal(data, &aux); err != nil {
			return errors.Wrapf(err, "decoding %s type", head.Kind)
		}
		t.Name = aux.Name

	case KindArray:
		var aux struct {
			Element *Type `json:"element"`
		}
		if err := json.Unmarshal(data, &aux); err != nil {
			return errors.Wrap(err, "decoding array type")
		}
		t.Element = aux.Element

	case KindMap:
		var aux struct {
			Key   *Type `json:"key"`
			Value *Type `json:"value"`
		}
		if err := json.Unmarshal(data, &aux); err != nil {
			return errors.Wrap(err, "decoding map type")
		}
		t.Key, t.Value = aux.Key, aux.Value

	case KindAnd, KindOr, KindTuple:
		var aux struct {
			Items []*Type `json:"items"`
		}
		if err := json.Unmarshal(data, &aux); err != nil {
			return errors.Wrapf(err, "decoding %s type", head.Kind)
		}
		t.Items = aux.Items

	case KindLiteral:
		var aux struct {
			Value *StructureLiteral `json:"value"`
		}
		if err := json.Unmarshal(data, &aux); err != nil {
			return errors.Wrap(err, "decoding literal type")
		}
		t.Literal = aux.Value

	case KindStringLiteral:
		var aux struct {
			Value string `json:"value"`
		}
		if err := json.Unmarshal(data, &aux); err != nil {
			return errors.Wrap(err, "decoding string literal type")
		}
		t.StringValue = aux.Value

	case KindIntegerLiteral:
		var aux struct {
			Value int `json:"value"`
		}
		if err := json.Unmarshal(data, &aux); err != nil {
			return errors.Wrap(err, "decoding integer literal type")
		}
		t.IntValue = aux.Value

	case KindBooleanLiteral:
		var aux struct {
			Value bool `json:"value"`
		}
		if err := json.Unmarshal(data, &aux); err != nil {
			return errors.Wrap(err, "decoding boolean literal type")
		}
		t.BoolValue = aux.Value

	default:
		return errors.NewUnsupportedKind(string(head.Kind))
	}

	return nil
}

// MessageDirection declares which role(s) may send a message and which must
// handle it. Wire values keep the protocol description's client/server terms;
// the compiler maps them onto the symmetric Initiator/Responder roles.
type MessageDirection string

const (
	// DirectionInitiatorToResponder: the Initiator sends, the Responder handles.
	DirectionInitiatorToResponder MessageDirection = "clientToServer"
	// DirectionResponderToInitiator: the Responder sends, the Initiator handles.
	DirectionResponderToInitiator MessageDirection = "serverToClient"
	// DirectionBoth: either role may send; both must handle.
	DirectionBoth MessageDirection = "both"
)

// SentByInitiator reports whether the Initiator role sends this message.
func (d MessageDirection) SentByInitiator() bool {
	return d == DirectionInitiatorToResponder || d == DirectionBoth
}

// SentByResponder reports whether the Responder role sends this message.
func (d MessageDirection) SentByResponder() bool {
	return d == DirectionResponderToInitiator || d == DirectionBoth
}

// Property is one field of a structure or inline record.
type Property struct {
	Name          string `json:"name"`
	Type          *Type  `json:"type"`
	Optional      bool   `json:"optional"`
	Documentation string `json:"documentation"`
	Since         string `json:"since"`
	Proposed      bool   `json:"proposed"`
	Deprecated    string `json:"deprecated"`
}

// StructureLiteral is an unnamed record used inline in a type expression.
type StructureLiteral struct {
	Properties    []Property `json:"properties"`
	Documentation string     `json:"documentation"`
	Since         string     `json:"since"`
	Proposed      bool       `json:"proposed"`
	Deprecated    string     `json:"deprecated"`
}

// Structure is a named record type. Extends forms a polymorphic subtype
// relation; mixins only copy the referenced structure's own declared
// properties (one level, no subtype relation).
type Structure struct {
	Name          string     `json:"name"`
	Extends       []*Type    `json:"extends"`
	Mixins        []*Type    `json:"mixins"`
	Properties    []Property `json:"properties"`
	Documentation string     `json:"documentation"`
	Since         string     `json:"since"`
	Proposed      bool       `json:"proposed"`
	Deprecated    string     `json:"deprecated"`
}

// EnumerationType names the scalar backing an enumeration: one of string,
// integer, or uinteger.
type EnumerationType struct {
	Kind string `json:"kind"`
	Name string `json:"name"`
}

// EnumValue is an enumeration entry's literal value: a string or an integer.
// The decoded value is carried byte-for-byte; no re-encoding or case
// normalization happens downstream.
type EnumValue struct {
	StringValue string
	IntValue    int
	IsString    bool
}

// UnmarshalJSON accepts either a JSON string or a JSON number.
func (v *EnumValue) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		v.IsString = true
		return json.Unmarshal(data, &v.StringValue)
	}
	return json.Unmarshal(data, &v.IntValue)
}

// MarshalJSON renders the value back in its original JSON shape.
func (v EnumValue) MarshalJSON() ([]byte, error) {
	if v.IsString {
		return json.Marshal(v.StringValue)
	}
	return json.Marshal(v.IntValue)
}

// EnumerationEntry is one named value of an enumeration.
type EnumerationEntry struct {
	Name          string    `json:"name"`
	Value         EnumValue `json:"value"`
	Documentation string    `json:"documentation"`
	Since         string    `json:"since"`
	Proposed      bool      `json:"proposed"`
	Deprecated    string    `json:"deprecated"`
}

// Enumeration is a named set of scalar-backed entries. Entry values are
// unique; entry order is the declared order.
type Enumeration struct {
	Name                 string             `json:"name"`
	Type                 *EnumerationType   `json:"type"`
	Values               []EnumerationEntry `json:"values"`
	SupportsCustomValues bool               `json:"supportsCustomValues"`
	Documentation        string             `json:"documentation"`
	Since                string             `json:"since"`
	Proposed             bool               `json:"proposed"`
	Deprecated           string             `json:"deprecated"`
}

// TypeAlias binds a name to a type expression.
type TypeAlias struct {
	Name          string `json:"name"`
	Type          *Type  `json:"type"`
	Documentation string `json:"documentation"`
	Since         string `json:"since"`
	Proposed      bool   `json:"proposed"`
	Deprecated    string `json:"deprecated"`
}

// Request is a message expecting a result from the handling role.
type Request struct {
	Method              string           `json:"method"`
	TypeName            string           `json:"typeName"`
	Params              *Type            `json:"params"`
	Result              *Type            `json:"result"`
	PartialResult       *Type            `json:"partialResult"`
	ErrorData           *Type            `json:"errorData"`
	RegistrationMethod  string           `json:"registrationMethod"`
	RegistrationOptions *Type            `json:"registrationOptions"`
	MessageDirection    MessageDirection `json:"messageDirection"`
	Documentation       string           `json:"documentation"`
	Since               string           `json:"since"`
	Proposed            bool             `json:"proposed"`
	Deprecated          string           `json:"deprecated"`
}

// Notification is a fire-and-forget message; no result path exists.
type Notification struct {
	Method              string           `json:"method"`
	TypeName            string           `json:"typeName"`
	Params              *Type            `json:"params"`
	RegistrationMethod  string           `json:"registrationMethod"`
	RegistrationOptions *Type            `json:"registrationOptions"`
	MessageDirection    MessageDirection `json:"messageDirection"`
	Documentation       string           `json:"documentation"`
	Since               string           `json:"since"`
	Proposed            bool             `json:"proposed"`
	Deprecated          string           `json:"deprecated"`
}

// MetaData carries the protocol version string.
type MetaData struct {
	Version string `json:"version"`
}

// MetaModel is the full protocol description.
type MetaModel struct {
	MetaData      MetaData       `json:"metaData"`
	Requests      []Request      `json:"requests"`
	Notifications []Notification `json:"notifications"`
	Structures    []Structure    `json:"structures"`
	Enumerations  []Enumeration  `json:"enumerations"`
	TypeAliases   []TypeAlias    `json:"typeAliases"`
}
