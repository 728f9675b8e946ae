package compiler

import (
	"strings"

	"github.com/teranos/peergen/errors"
	"github.com/teranos/peergen/metamodel"
)

// Role identifies one side of the connection. The roles are symmetric: both
// artifacts carry senders, handler stubs, and a dispatch table; only the
// direction tags decide which methods land where.
type Role int

const (
	RoleInitiator Role = iota
	RoleResponder
)

func (r Role) String() string {
	if r == RoleInitiator {
		return "Initiator"
	}
	return "Responder"
}

// MethodKind tags what a generated method does; the emitter picks the body
// shape from it.
type MethodKind int

const (
	// MethodRequestSender sends a request: body calls self.request.
	MethodRequestSender MethodKind = iota
	// MethodNotificationSender sends a notification: body calls self.notify.
	MethodNotificationSender
	// MethodResultHandler receives the result of a request this role sent.
	// Stub body; the subclass overrides.
	MethodResultHandler
	// MethodRequestHandler receives a request and returns its result. Stub.
	MethodRequestHandler
	// MethodNotificationHandler receives a notification. Stub.
	MethodNotificationHandler
	// MethodDispatch is the boundary entrypoint routing a wire method to the
	// matching handler via the dispatch table. Always last in the artifact.
	MethodDispatch
)

// Param is one method parameter (the instance receiver is implicit).
type Param struct {
	Name string
	Type Expr
}

// Method is one generated method of a role class.
type Method struct {
	Kind       MethodKind
	Name       string
	WireMethod string // the protocol method string; empty for MethodDispatch
	Params     []Param
	Returns    Expr
	Doc        string
}

// Artifact is one compiled role class: methods in model order (requests
// first, then notifications, dispatch entrypoint last), the frozen dispatch
// table, and the defined names the class needs from the types artifact.
type Artifact struct {
	Role    Role
	Methods []Method
	Table   *DispatchTable
	Imports []string
}

type artifactBuilder struct {
	role    Role
	methods []Method
	table   *DispatchTableBuilder
}

func newArtifactBuilder(role Role) *artifactBuilder {
	return &artifactBuilder{role: role, table: NewDispatchTableBuilder()}
}

func (b *artifactBuilder) add(m Method) {
	b.methods = append(b.methods, m)
}

func (b *artifactBuilder) register(wireMethod, handler string) error {
	if err := b.table.Register(wireMethod, handler); err != nil {
		return errors.Wrapf(err, "%s dispatch table", strings.ToLower(b.role.String()))
	}
	return nil
}

// finish appends the dispatch entrypoint and freezes the table. The
// entrypoint goes last so a lexical scan of the class sees every annotation,
// its own included.
func (b *artifactBuilder) finish() *Artifact {
	b.add(Method{
		Kind: MethodDispatch,
		Name: "handle",
		Params: []Param{
			{Name: "method", Type: NameExpr("str")},
			{Name: "params_or_result", Type: NameExpr("LSPAny")},
		},
		Returns: NoneExpr(),
	})
	return &Artifact{Role: b.role, Methods: b.methods, Table: b.table.Freeze()}
}

// CompileMessages compiles requests then notifications into the two role
// artifacts. Direction decides placement; direction=both places a sender and
// the request-handler form on each role, one dispatch entry per role under
// the shared wire method.
func CompileMessages(model *metamodel.MetaModel) (*Artifact, *Artifact, error) {
	initiator := newArtifactBuilder(RoleInitiator)
	responder := newArtifactBuilder(RoleResponder)

	for i := range model.Requests {
		if err := compileRequest(&model.Requests[i], initiator, responder); err != nil {
			return nil, nil, err
		}
	}
	for i := range model.Notifications {
		if err := compileNotification(&model.Notifications[i], initiator, responder); err != nil {
			return nil, nil, err
		}
	}

	return initiator.finish(), responder.finish(), nil
}

func compileRequest(req *metamodel.Request, initiator, responder *artifactBuilder) error {
	name := methodIdent(req.TypeName, req.Method)
	handlerName := "handle_" + name

	params, err := CompileType(req.Params)
	if err != nil {
		return errors.Wrapf(err, "request %q params", req.Method)
	}
	result, err := CompileType(req.Result)
	if err != nil {
		return errors.Wrapf(err, "request %q result", req.Method)
	}

	sender := Method{
		Kind:       MethodRequestSender,
		Name:       name,
		WireMethod: req.Method,
		Params:     []Param{{Name: "params", Type: params}},
		Returns:    NoneExpr(),
		Doc:        req.Documentation,
	}
	resultHandler := Method{
		Kind:       MethodResultHandler,
		Name:       handlerName,
		WireMethod: req.Method,
		Params: []Param{
			{Name: "context", Type: NameExpr("dict")},
			{Name: "result", Type: result},
		},
		Returns: NoneExpr(),
	}
	requestHandler := Method{
		Kind:       MethodRequestHandler,
		Name:       handlerName,
		WireMethod: req.Method,
		Params: []Param{
			{Name: "context", Type: NameExpr("dict")},
			{Name: "params", Type: params},
		},
		Returns: result,
	}

	// When both roles send, the result-handler form is dropped: the two
	// stubs would collide on the shared handler identifier, and each role
	// already needs the request-handler form to serve incoming calls.
	both := req.MessageDirection == metamodel.DirectionBoth

	if req.MessageDirection.SentByInitiator() {
		initiator.add(sender)
		if !both {
			initiator.add(resultHandler)
			if err := initiator.register(req.Method, handlerName); err != nil {
				return err
			}
		}
		responder.add(requestHandler)
		if err := responder.register(req.Method, handlerName); err != nil {
			return err
		}
	}
	if req.MessageDirection.SentByResponder() {
		responder.add(sender)
		if !both {
			responder.add(resultHandler)
			if err := responder.register(req.Method, handlerName); err != nil {
				return err
			}
		}
		initiator.add(requestHandler)
		if err := initiator.register(req.Method, handlerName); err != nil {
			return err
		}
	}

	return nil
}

func compileNotification(ntf *metamodel.Notification, initiator, responder *artifactBuilder) error {
	name := methodIdent(ntf.TypeName, ntf.Method)
	handlerName := "handle_" + name

	params, err := CompileType(ntf.Params)
	if err != nil {
		return errors.Wrapf(err, "notification %q params", ntf.Method)
	}

	sender := Method{
		Kind:       MethodNotificationSender,
		Name:       name,
		WireMethod: ntf.Method,
		Params:     []Param{{Name: "params", Type: params}},
		Returns:    NoneExpr(),
		Doc:        ntf.Documentation,
	}
	handler := Method{
		Kind:       MethodNotificationHandler,
		Name:       handlerName,
		WireMethod: ntf.Method,
		Params: []Param{
			{Name: "context", Type: NameExpr("dict")},
			{Name: "params", Type: params},
		},
		Returns: NoneExpr(),
	}

	if ntf.MessageDirection.SentByInitiator() {
		initiator.add(sender)
		responder.add(handler)
		if err := responder.register(ntf.Method, handlerName); err != nil {
			return err
		}
	}
	if ntf.MessageDirection.SentByResponder() {
		responder.add(sender)
		initiator.add(handler)
		if err := initiator.register(ntf.Method, handlerName); err != nil {
			return err
		}
	}

	return nil
}

// methodIdent derives the generated method identifier: snake case of the
// declared type name, or of a name derived from the wire method when the
// model omits one ("$"-prefixed segments dropped, remaining segments
// capitalized and joined).
func methodIdent(typeName, wireMethod string) string {
	if typeName == "" {
		typeName = typeNameFromWire(wireMethod)
	}
	return snakeIdent(typeName)
}

func typeNameFromWire(wireMethod string) string {
	var b strings.Builder
	for _, seg := range strings.Split(wireMethod, "/") {
		if seg == "" || strings.HasPrefix(seg, "$") {
			continue
		}
		r := seg[0]
		if r >= 'a' && r <= 'z' {
			r -= 'a' - 'A'
		}
		b.WriteByte(r)
		b.WriteString(seg[1:])
	}
	return b.String()
}

// snakeIdent inserts an underscore at every boundary where a non-uppercase
// byte is followed by an uppercase one, then lowercases: Hover -> hover,
// DidOpenTextDocument -> did_open_text_document, UIElement -> uielement.
func snakeIdent(name string) string {
	var b strings.Builder
	b.Grow(len(name) + 4)
	for i := 0; i < len(name); i++ {
		c := name[i]
		if c >= 'A' && c <= 'Z' {
			if i > 0 && !(name[i-1] >= 'A' && name[i-1] <= 'Z') {
				b.WriteByte('_')
			}
			c += 'a' - 'A'
		}
		b.WriteByte(c)
	}
	return b.String()
}
