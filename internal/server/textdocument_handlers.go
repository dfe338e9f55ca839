package server

import (
	"errors"
	"fmt"
	"log"

	"hxls/internal/document"

	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

func (s *Server) textDocumentDidOpen(
	context *glsp.Context,
	params *protocol.DidOpenTextDocumentParams,
) error {
	doc := params.TextDocument
	s.docs.Open(doc.URI, doc.LanguageID, doc.Version, doc.Text)
	s.colors.Drop(doc.URI)
	return nil
}

func (s *Server) textDocumentDidChange(
	context *glsp.Context,
	params *protocol.DidChangeTextDocumentParams,
) error {
	uri := params.TextDocument.URI

	changes := make([]document.Change, 0, len(params.ContentChanges))
	for _, raw := range params.ContentChanges {
		switch change := raw.(type) {
		case protocol.TextDocumentContentChangeEvent:
			changes = append(changes, document.Change{Range: change.Range, Text: change.Text})
		case protocol.TextDocumentContentChangeEventWhole:
			changes = append(changes, document.Change{Text: change.Text})
		default:
			return fmt.Errorf("unexpected change event type %T", raw)
		}
	}

	err := s.docs.ApplyChanges(uri, params.TextDocument.Version, changes)
	switch {
	case errors.Is(err, document.ErrStaleVersion):
		// Nothing to answer on a notification; log and keep state intact.
		log.Printf("didChange: %v", err)
		return nil
	case err != nil:
		return err
	}
	return nil
}

func (s *Server) textDocumentDidSave(
	context *glsp.Context,
	params *protocol.DidSaveTextDocumentParams,
) error {
	if params.Text == nil {
		return nil
	}
	return s.docs.Replace(params.TextDocument.URI, *params.Text)
}

func (s *Server) textDocumentDidClose(
	context *glsp.Context,
	params *protocol.DidCloseTextDocumentParams,
) error {
	uri := params.TextDocument.URI
	s.colors.Drop(uri)
	return s.docs.Close(uri)
}
