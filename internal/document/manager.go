package document

import (
	"fmt"
	"sync"

	protocol "github.com/tliron/glsp/protocol_3_16"
)

// Change is one content change from a didChange notification. A nil Range
// replaces the whole document.
type Change struct {
	Range *protocol.Range
	Text  string
}

// Manager owns every open document. Documents under different URIs are
// fully independent; access to one document serializes through its
// holder's lock.
type Manager struct {
	mu   sync.RWMutex
	docs map[string]*holder
}

type holder struct {
	mu      sync.RWMutex
	current *Snapshot
}

func NewManager() *Manager {
	return &Manager{docs: make(map[string]*holder)}
}

// Open registers a document. Reopening an already-open URI replaces its
// content, which covers editors that resend didOpen after a reload.
func (m *Manager) Open(uri, languageID string, version int32, text string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.docs[uri] = &holder{current: newSnapshot(uri, languageID, version, text)}
}

// Close drops a document.
func (m *Manager) Close(uri string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.docs[uri]; !ok {
		return fmt.Errorf("close %s: %w", uri, ErrUnknownDocument)
	}
	delete(m.docs, uri)
	return nil
}

// Snapshot returns the current immutable view of a document.
func (m *Manager) Snapshot(uri string) (*Snapshot, error) {
	h, err := m.holder(uri)
	if err != nil {
		return nil, err
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.current, nil
}

// ApplyChanges applies a didChange notification in order. The version must
// be strictly newer than the current one; stale notifications leave the
// document untouched.
func (m *Manager) ApplyChanges(uri string, version int32, changes []Change) error {
	h, err := m.holder(uri)
	if err != nil {
		return fmt.Errorf("change %s: %w", uri, err)
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if version <= h.current.Version {
		return fmt.Errorf("change %s version %d <= %d: %w",
			uri, version, h.current.Version, ErrStaleVersion)
	}

	next := h.current
	for _, change := range changes {
		next, err = next.apply(version, change.Range, change.Text)
		if err != nil {
			return fmt.Errorf("change %s: %w", uri, err)
		}
	}
	h.current = next
	return nil
}

// Replace swaps the full content, keeping the current version. Used for
// didSave notifications that include text.
func (m *Manager) Replace(uri, text string) error {
	h, err := m.holder(uri)
	if err != nil {
		return err
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	h.current = newSnapshot(h.current.URI, h.current.LanguageID, h.current.Version, text)
	return nil
}

func (m *Manager) holder(uri string) (*holder, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	h, ok := m.docs[uri]
	if !ok {
		return nil, ErrUnknownDocument
	}
	return h, nil
}
