package server

import (
	"hxls/internal/snippet"

	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

func (s *Server) textDocumentCompletion(
	context *glsp.Context,
	params *protocol.CompletionParams,
) (any, error) {
	if !s.features.completion {
		return nil, nil
	}

	snap, err := s.docs.Snapshot(params.TextDocument.URI)
	if err != nil {
		return nil, err
	}

	pos := params.Position
	if snap.IsFieldAccess(pos) {
		return nil, nil
	}

	vars := s.variableContext(snap, pos, "")
	snippets := s.registry.Snippets(snap.LanguageID)
	items := snippet.Complete(snippets, snap.WordAt(pos), vars)
	if len(items) == 0 {
		return nil, nil
	}
	return items, nil
}
