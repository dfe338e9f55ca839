package server

import (
	"context"

	"hxls/internal/document"
	"hxls/internal/variables"

	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// requestContext derives the context for spawned shell work from the
// protocol request, so cancelling the request terminates its processes.
func requestContext(glspContext *glsp.Context) context.Context {
	if glspContext != nil && glspContext.Context != nil {
		return glspContext.Context
	}
	return context.Background()
}

// variableContext builds the per-request variable binding set from a
// document snapshot, cursor position and selection.
func (s *Server) variableContext(
	snap *document.Snapshot,
	pos protocol.Position,
	selection string,
) *variables.Context {
	path, err := URIToPath(snap.URI)
	if err != nil {
		path = snap.URI
	}

	lineText, _ := snap.Line(pos.Line)

	ctx := &variables.Context{
		FilePath:     path,
		Workspace:    s.root,
		Line:         pos.Line,
		Column:       pos.Character,
		LineText:     lineText,
		CurrentWord:  snap.WordAt(pos),
		SelectedText: selection,
	}
	ctx.ReadClipboard()
	return ctx
}
