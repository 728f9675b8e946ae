package compiler

import (
	"github.com/teranos/peergen/logger"
	"github.com/teranos/peergen/metamodel"
)

// Result is one full compilation: the ordered types artifact and the two
// role artifacts, with their protocol imports resolved. A Result is only
// produced when every stage succeeded; emitters never see partial output.
type Result struct {
	Version     string
	Definitions *Ordered
	Initiator   *Artifact
	Responder   *Artifact
}

// Compile runs the whole pipeline over a metamodel. Pure: no I/O, no
// environment reads, identical models produce identical Results.
func Compile(model *metamodel.MetaModel) (*Result, error) {
	defs, err := BuildDefinitions(model)
	if err != nil {
		return nil, err
	}

	ordered := Order(defs)

	initiator, responder, err := CompileMessages(model)
	if err != nil {
		return nil, err
	}

	initiator.Imports = ResolveImports(defs, initiator)
	responder.Imports = ResolveImports(defs, responder)

	logger.Debugw("compiled metamodel",
		logger.FieldModel, model.MetaData.Version,
		logger.FieldStructures, len(model.Structures),
		logger.FieldEnums, len(model.Enumerations),
		logger.FieldAliases, len(model.TypeAliases),
		logger.FieldRequests, len(model.Requests),
		logger.FieldNotifications, len(model.Notifications),
	)

	return &Result{
		Version:     model.MetaData.Version,
		Definitions: ordered,
		Initiator:   initiator,
		Responder:   responder,
	}, nil
}
