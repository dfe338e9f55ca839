package registry

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
)

const (
	snippetsDir = "snippets"
	actionsDir  = "actions"
	// globalExt marks snippet files that apply to every language id.
	globalExt = ".code-snippets"
)

// Registry resolves snippet and action definitions per language id,
// caching results for the process lifetime. Construct one per server and
// pass it by reference; there is no package-level state.
type Registry struct {
	userDir      string // e.g. ~/.config/helix
	workspaceDir string // nearest ancestor .helix dir, "" when absent

	mu       sync.RWMutex
	snippets map[string][]Snippet
	actions  map[string][]Action
}

func New() *Registry {
	r := &Registry{
		snippets: make(map[string][]Snippet),
		actions:  make(map[string][]Action),
	}
	if dir, err := os.UserConfigDir(); err == nil {
		r.userDir = filepath.Join(dir, "helix")
	}
	return r
}

// SetWorkspaceRoot records the workspace root reported at initialize and
// locates the nearest ancestor .helix directory at or above it.
func (r *Registry) SetWorkspaceRoot(root string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.workspaceDir = findHelixDir(root)
}

func findHelixDir(root string) string {
	for dir := root; dir != ""; {
		candidate := filepath.Join(dir, ".helix")
		if info, err := os.Stat(candidate); err == nil && info.IsDir() {
			return candidate
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return ""
}

// Snippets returns the merged snippet set for a language id in
// declaration order: a name keeps the position of its first definition
// while more specific sources override its value. The first call per
// language loads from disk; later calls hit the cache. Concurrent first
// loads are idempotent: the first registration sticks and duplicates are
// discarded.
func (r *Registry) Snippets(languageID string) []Snippet {
	lang := strings.ToLower(languageID)

	r.mu.RLock()
	cached, ok := r.snippets[lang]
	userDir, wsDir := r.userDir, r.workspaceDir
	r.mu.RUnlock()
	if ok {
		return cached
	}

	merged := newOrderedSet[Snippet]()
	// Least specific first; later loads override on name collision.
	for _, dir := range []string{userDir, wsDir} {
		if dir == "" {
			continue
		}
		base := filepath.Join(dir, snippetsDir)
		for _, path := range globalSnippetFiles(base) {
			loadSnippetFile(path, merged)
		}
		loadSnippetFile(filepath.Join(base, lang+".json"), merged)
	}
	list := merged.list()

	r.mu.Lock()
	defer r.mu.Unlock()
	if prior, ok := r.snippets[lang]; ok {
		return prior
	}
	r.snippets[lang] = list
	return list
}

// Actions returns the merged action set for a language id in declaration
// order, loading and caching on first use. Filters later run in exactly
// this order.
func (r *Registry) Actions(languageID string) []Action {
	lang := strings.ToLower(languageID)

	r.mu.RLock()
	cached, ok := r.actions[lang]
	userDir, wsDir := r.userDir, r.workspaceDir
	r.mu.RUnlock()
	if ok {
		return cached
	}

	merged := newOrderedSet[Action]()
	for _, dir := range []string{userDir, wsDir} {
		if dir == "" {
			continue
		}
		loadActionFile(filepath.Join(dir, actionsDir, lang+".json"), merged)
	}
	list := merged.list()

	r.mu.Lock()
	defer r.mu.Unlock()
	if prior, ok := r.actions[lang]; ok {
		return prior
	}
	r.actions[lang] = list
	return list
}

// ReloadSnippets drops the snippet cache; the next request reloads from
// disk. This is the only invalidation path besides process restart.
func (r *Registry) ReloadSnippets() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.snippets = make(map[string][]Snippet)
}

// ReloadActions drops the action cache.
func (r *Registry) ReloadActions() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.actions = make(map[string][]Action)
}

func globalSnippetFiles(dir string) []string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}
	var files []string
	for _, entry := range entries {
		if !entry.IsDir() && filepath.Ext(entry.Name()) == globalExt {
			files = append(files, filepath.Join(dir, entry.Name()))
		}
	}
	sort.Strings(files)
	return files
}
