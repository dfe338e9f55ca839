package server

import (
	"encoding/json"
	"log"

	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

const (
	commandReloadSnippets = "hxls.reload.snippets"
	commandReloadActions  = "hxls.reload.actions"
)

func (s *Server) initialize(
	context *glsp.Context,
	params *protocol.InitializeParams,
) (any, error) {
	// Config
	var config Config
	if params.InitializationOptions != nil {
		configJson, err := json.Marshal(params.InitializationOptions)
		if err != nil {
			return nil, err
		}
		if err := json.Unmarshal(configJson, &config); err != nil {
			return nil, err
		}
	}
	s.features = featuresFrom(config)
	log.Printf("Config: %v", config)

	// Root
	if params.RootURI != nil {
		root, err := URIToPath(*params.RootURI)
		if err != nil {
			return nil, err
		}
		s.root = root
	} else if len(params.WorkspaceFolders) > 0 {
		root, err := URIToPath(params.WorkspaceFolders[0].URI)
		if err != nil {
			return nil, err
		}
		s.root = root
	}
	s.registry.SetWorkspaceRoot(s.root)

	syncKind := protocol.TextDocumentSyncKindIncremental

	capabilities := protocol.ServerCapabilities{
		TextDocumentSync: &protocol.TextDocumentSyncOptions{
			OpenClose: &protocol.True,
			Change:    &syncKind,
			Save:      &protocol.SaveOptions{IncludeText: &protocol.True},
		},
		ExecuteCommandProvider: &protocol.ExecuteCommandOptions{
			Commands: []string{commandReloadSnippets, commandReloadActions},
		},
	}
	// Only advertise what the editor asked for; a narrowed feature set
	// must not see the excluded capability at all.
	if s.features.completion {
		capabilities.CompletionProvider = &protocol.CompletionOptions{
			ResolveProvider: &protocol.False,
		}
	}
	if s.features.codeAction {
		capabilities.CodeActionProvider = &protocol.CodeActionOptions{
			CodeActionKinds: []protocol.CodeActionKind{
				protocol.CodeActionKindEmpty,
				protocol.CodeActionKindRefactorRewrite,
				protocol.CodeActionKindRefactorInline,
			},
			ResolveProvider: &protocol.True,
		}
	}
	if s.features.colors {
		capabilities.ColorProvider = true
	}

	return protocol.InitializeResult{
		Capabilities: capabilities,
	}, nil
}

func (s *Server) initialized(
	context *glsp.Context,
	params *protocol.InitializedParams,
) error {
	log.Println("Client initialized.")
	return nil
}

func (s *Server) shutdown(context *glsp.Context) error {
	s.pool.Stop()
	return nil
}
