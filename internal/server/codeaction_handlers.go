package server

import (
	"log"

	"hxls/internal/action"

	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

func (s *Server) textDocumentCodeAction(
	glspContext *glsp.Context,
	params *protocol.CodeActionParams,
) (any, error) {
	if !s.features.codeAction {
		return nil, nil
	}

	uri := params.TextDocument.URI
	snap, err := s.docs.Snapshot(uri)
	if err != nil {
		return nil, err
	}

	selection, err := snap.RangeText(params.Range)
	if err != nil {
		return nil, err
	}
	vars := s.variableContext(snap, params.Range.End, selection)

	definitions := s.registry.Actions(snap.LanguageID)
	results := s.actions.EvaluateFilters(requestContext(glspContext), definitions, vars)

	items := action.CodeActions(results, vars, uri, params.Range)
	items = append(items, action.CaseActions(selection, uri, params.Range)...)
	items = append(items, action.MarkdownActions(snap.LanguageID, selection, uri, params.Range)...)
	if len(items) == 0 {
		return nil, nil
	}
	return items, nil
}

func (s *Server) codeActionResolve(
	glspContext *glsp.Context,
	params *protocol.CodeAction,
) (*protocol.CodeAction, error) {
	data, err := action.DecodeData(params.Data)
	if err != nil {
		// Built-in actions carry their edit already; nothing to resolve.
		return params, nil
	}

	snap, err := s.docs.Snapshot(data.URI)
	if err != nil {
		return nil, err
	}
	selection, err := snap.RangeText(data.Range)
	if err != nil {
		return nil, err
	}

	vars := s.variableContext(snap, data.Range.End, selection)
	output, err := s.actions.Execute(requestContext(glspContext), data.Command, selection, vars.Env())
	if err != nil {
		log.Printf("action %q failed: %v", params.Title, err)
		showError(glspContext, "Action "+params.Title+" failed: "+err.Error())
		return params, nil
	}
	if output == "" {
		// Fire-and-forget command; no document edit results.
		return params, nil
	}

	resolved := *params
	resolved.Data = nil
	kind := protocol.CodeActionKindRefactorRewrite
	resolved.Kind = &kind
	resolved.Edit = &protocol.WorkspaceEdit{
		Changes: map[protocol.DocumentUri][]protocol.TextEdit{
			data.URI: {{Range: data.Range, NewText: output}},
		},
	}
	return &resolved, nil
}

func showError(glspContext *glsp.Context, message string) {
	if glspContext == nil {
		return
	}
	glspContext.Notify("window/showMessage", protocol.ShowMessageParams{
		Type:    protocol.MessageTypeError,
		Message: message,
	})
}
