package server

import (
	"fmt"
	"net/url"
	"strings"

	"hxls/internal/action"
	"hxls/internal/colors"
	"hxls/internal/document"
	"hxls/internal/registry"
	"hxls/internal/scheduler"

	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"
)

const (
	workerCount    = 8
	colorCacheSize = 64
)

// Config is what the editor may pass as initializationOptions. An absent
// features list enables everything; a narrowed list suppresses the
// excluded capability entirely.
type Config struct {
	Features []string `json:"features"`
}

type featureSet struct {
	completion bool
	codeAction bool
	colors     bool
}

func featuresFrom(config Config) featureSet {
	if len(config.Features) == 0 {
		return featureSet{completion: true, codeAction: true, colors: true}
	}
	var f featureSet
	for _, name := range config.Features {
		switch name {
		case "completion":
			f.completion = true
		case "code-action":
			f.codeAction = true
		case "document-colors":
			f.colors = true
		}
	}
	return f
}

type Server struct {
	handler  *protocol.Handler
	root     string
	features featureSet
	docs     *document.Manager
	registry *registry.Registry
	colors   *colors.Cache
	pool     *scheduler.Scheduler
	actions  *action.Engine
}

func NewServer() (*server.Server, error) {
	colorCache, err := colors.NewCache(colorCacheSize)
	if err != nil {
		return nil, fmt.Errorf("color cache: %w", err)
	}

	pool := scheduler.NewScheduler(workerCount)

	ls := &Server{
		docs:     document.NewManager(),
		registry: registry.New(),
		colors:   colorCache,
		pool:     pool,
		actions:  action.NewEngine(pool),
	}
	ls.handler = &protocol.Handler{
		Initialize:                    ls.initialize,
		Initialized:                   ls.initialized,
		TextDocumentDidOpen:           ls.textDocumentDidOpen,
		TextDocumentDidChange:         ls.textDocumentDidChange,
		TextDocumentDidSave:           ls.textDocumentDidSave,
		TextDocumentDidClose:          ls.textDocumentDidClose,
		TextDocumentCompletion:        ls.textDocumentCompletion,
		TextDocumentCodeAction:        ls.textDocumentCodeAction,
		CodeActionResolve:             ls.codeActionResolve,
		TextDocumentColor:             ls.textDocumentColor,
		TextDocumentColorPresentation: ls.textDocumentColorPresentation,
		WorkspaceExecuteCommand:       ls.workspaceExecuteCommand,
		Shutdown:                      ls.shutdown,
	}

	return server.NewServer(ls.handler, "hxls", false), nil
}

// URIToPath converts a file URI to a filesystem path.
func URIToPath(uri string) (string, error) {
	if !strings.Contains(uri, "://") {
		return uri, nil
	}
	parsed, err := url.Parse(uri)
	if err != nil {
		return "", fmt.Errorf("failed to parse uri: %w", err)
	}
	return parsed.Path, nil
}
