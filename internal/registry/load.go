package registry

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/tidwall/jsonc"
)

// stripComments removes //, /* */ and # comments from a config file.
// jsonc handles the first two; # lines are blanked beforehand since they
// are not part of the JSONC dialect. Trailing commas stay and fail the
// decode.
func stripComments(data []byte) []byte {
	var b strings.Builder
	b.Grow(len(data))

	inString := false
	lineStart := true
	for i := 0; i < len(data); i++ {
		ch := data[i]
		switch {
		case inString:
			if ch == '\\' && i+1 < len(data) {
				b.WriteByte(ch)
				i++
				ch = data[i]
			} else if ch == '"' {
				inString = false
			}
		case ch == '"':
			inString = true
		case ch == '#' && lineStart:
			for i < len(data) && data[i] != '\n' {
				i++
			}
			if i < len(data) {
				b.WriteByte('\n')
			}
			lineStart = true
			continue
		}
		b.WriteByte(ch)
		lineStart = ch == '\n' || (lineStart && (ch == ' ' || ch == '\t'))
	}

	return jsonc.ToJSON([]byte(b.String()))
}

// rawEntry is one named definition, in file order.
type rawEntry struct {
	name string
	raw  json.RawMessage
}

// decodeEntries parses one definition file into named raw entries,
// preserving declaration order, which a plain map decode would lose. The
// caller decodes each entry itself so one malformed entry cannot discard
// the rest of the file.
func decodeEntries(path string) ([]rawEntry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	dec := json.NewDecoder(bytes.NewReader(stripComments(data)))
	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if tok != json.Delim('{') {
		return nil, fmt.Errorf("parse %s: top level must be an object", path)
	}

	var entries []rawEntry
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
		name, ok := keyTok.(string)
		if !ok {
			return nil, fmt.Errorf("parse %s: unexpected key %v", path, keyTok)
		}
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
		entries = append(entries, rawEntry{name: name, raw: raw})
	}
	return entries, nil
}

// orderedSet accumulates merged definitions. A name keeps the position of
// its first appearance while later sources override its value.
type orderedSet[T any] struct {
	order  []string
	byName map[string]T
}

func newOrderedSet[T any]() *orderedSet[T] {
	return &orderedSet[T]{byName: make(map[string]T)}
}

func (s *orderedSet[T]) put(name string, v T) {
	if _, ok := s.byName[name]; !ok {
		s.order = append(s.order, name)
	}
	s.byName[name] = v
}

func (s *orderedSet[T]) list() []T {
	out := make([]T, 0, len(s.order))
	for _, name := range s.order {
		out = append(out, s.byName[name])
	}
	return out
}

// loadSnippetFile merges the valid entries of one snippet file into dst,
// overriding earlier definitions of the same name.
func loadSnippetFile(path string, dst *orderedSet[Snippet]) {
	entries, err := decodeEntries(path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			log.Printf("snippets: %v", err)
		}
		return
	}
	for _, e := range entries {
		var s Snippet
		if err := json.Unmarshal(e.raw, &s); err != nil {
			log.Printf("snippets: %s entry %q skipped: %v", path, e.name, err)
			continue
		}
		if len(s.Prefix) == 0 || len(s.Body) == 0 {
			log.Printf("snippets: %s entry %q skipped: missing prefix or body", path, e.name)
			continue
		}
		s.Name = e.name
		dst.put(e.name, s)
	}
}

// loadActionFile merges the valid entries of one action file into dst.
func loadActionFile(path string, dst *orderedSet[Action]) {
	entries, err := decodeEntries(path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			log.Printf("actions: %v", err)
		}
		return
	}
	for _, e := range entries {
		var a Action
		if err := json.Unmarshal(e.raw, &a); err != nil {
			log.Printf("actions: %s entry %q skipped: %v", path, e.name, err)
			continue
		}
		if a.Title == "" || len(a.Shell) == 0 {
			log.Printf("actions: %s entry %q skipped: missing title or shell", path, e.name)
			continue
		}
		a.Name = e.name
		dst.put(e.name, a)
	}
}
