// Package registry loads and caches snippet and action definitions from
// the user config directory and the workspace .helix directory.
package registry

import (
	"encoding/json"
	"strings"
)

// StrOrSeq accepts either a JSON string or an array of strings. Sequences
// render joined by newlines.
type StrOrSeq []string

func (s *StrOrSeq) UnmarshalJSON(data []byte) error {
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		*s = StrOrSeq{single}
		return nil
	}
	var many []string
	if err := json.Unmarshal(data, &many); err != nil {
		return err
	}
	*s = StrOrSeq(many)
	return nil
}

func (s StrOrSeq) String() string {
	return strings.Join(s, "\n")
}

// First returns the first element or the empty string.
func (s StrOrSeq) First() string {
	if len(s) == 0 {
		return ""
	}
	return s[0]
}

// Snippet is a named completion template. Immutable after load.
type Snippet struct {
	Name        string   `json:"-"`
	Prefix      StrOrSeq `json:"prefix"`
	Body        StrOrSeq `json:"body"`
	Description StrOrSeq `json:"description,omitempty"`
}

// Action is a conditionally-offered shell command. An empty Filter means
// always enabled. Immutable after load.
type Action struct {
	Name        string   `json:"-"`
	Title       string   `json:"title"`
	Filter      StrOrSeq `json:"filter"`
	Shell       StrOrSeq `json:"shell"`
	Description StrOrSeq `json:"description,omitempty"`
}
