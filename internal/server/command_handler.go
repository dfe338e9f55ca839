package server

import (
	"fmt"
	"log"

	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

func (s *Server) workspaceExecuteCommand(
	glspContext *glsp.Context,
	params *protocol.ExecuteCommandParams,
) (any, error) {
	switch params.Command {
	case commandReloadSnippets:
		log.Println("reloading snippets")
		s.registry.ReloadSnippets()
		return nil, nil
	case commandReloadActions:
		log.Println("reloading actions")
		s.registry.ReloadActions()
		return nil, nil
	}
	return nil, fmt.Errorf("unknown command %q", params.Command)
}
