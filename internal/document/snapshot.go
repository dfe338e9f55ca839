package document

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	protocol "github.com/tliron/glsp/protocol_3_16"
)

var (
	// ErrInvalidPosition is returned when an LSP position cannot be mapped
	// onto the document content.
	ErrInvalidPosition = errors.New("invalid position")
	// ErrUnknownDocument is returned for operations on a URI that was never
	// opened or has been closed.
	ErrUnknownDocument = errors.New("unknown document")
	// ErrStaleVersion is returned when a change notification carries a
	// version that is not newer than the current one.
	ErrStaleVersion = errors.New("stale document version")
)

// Snapshot is an immutable view of a document at one version. All position
// translation happens against a snapshot, so an in-flight request never
// observes a concurrent edit.
type Snapshot struct {
	URI         string
	LanguageID  string
	Version     int32
	Text        string
	lineOffsets []int // byte offset of each line start, lineOffsets[0] == 0
}

func newSnapshot(uri, languageID string, version int32, text string) *Snapshot {
	return &Snapshot{
		URI:         uri,
		LanguageID:  languageID,
		Version:     version,
		Text:        text,
		lineOffsets: scanLineOffsets(text, 0, []int{0}),
	}
}

// scanLineOffsets extends offsets with the start offset of every line that
// begins at or after from. offsets must already cover all lines starting
// before from.
func scanLineOffsets(text string, from int, offsets []int) []int {
	for i := from; i < len(text); i++ {
		if text[i] == '\n' {
			offsets = append(offsets, i+1)
		}
	}
	return offsets
}

// LineCount reports the number of lines, counting the trailing line even
// when it is empty.
func (s *Snapshot) LineCount() int {
	return len(s.lineOffsets)
}

// lineSpan returns the byte range [start, end) of a line, excluding the
// terminating newline.
func (s *Snapshot) lineSpan(line int) (int, int, error) {
	if line < 0 || line >= len(s.lineOffsets) {
		return 0, 0, fmt.Errorf("line %d of %d: %w", line, len(s.lineOffsets), ErrInvalidPosition)
	}
	start := s.lineOffsets[line]
	end := len(s.Text)
	if line+1 < len(s.lineOffsets) {
		end = s.lineOffsets[line+1] - 1 // strip '\n'
	}
	return start, end, nil
}

// Line returns the text of a line without its newline.
func (s *Snapshot) Line(line uint32) (string, error) {
	start, end, err := s.lineSpan(int(line))
	if err != nil {
		return "", err
	}
	return s.Text[start:end], nil
}

// ToOffset converts an LSP position (line, UTF-16 code unit) to a byte
// offset into Text. A position one past the last unit of a line maps to the
// line end; anything further is invalid.
func (s *Snapshot) ToOffset(pos protocol.Position) (int, error) {
	start, end, err := s.lineSpan(int(pos.Line))
	if err != nil {
		return 0, err
	}

	var units uint32
	for i := start; i < end; {
		if units >= pos.Character {
			return i, nil
		}
		r, size := utf8.DecodeRuneInString(s.Text[i:])
		units += utf16Len(r)
		i += size
	}
	if units >= pos.Character {
		return end, nil
	}
	return 0, fmt.Errorf("character %d beyond line %d: %w", pos.Character, pos.Line, ErrInvalidPosition)
}

// ToPosition converts a byte offset into an LSP position. Offsets inside a
// multi-byte rune snap to the rune start.
func (s *Snapshot) ToPosition(offset int) (protocol.Position, error) {
	if offset < 0 || offset > len(s.Text) {
		return protocol.Position{}, fmt.Errorf("offset %d of %d bytes: %w", offset, len(s.Text), ErrInvalidPosition)
	}
	line := sort.Search(len(s.lineOffsets), func(i int) bool {
		return s.lineOffsets[i] > offset
	}) - 1

	var units uint32
	for i := s.lineOffsets[line]; i < offset; {
		r, size := utf8.DecodeRuneInString(s.Text[i:])
		if i+size > offset {
			break
		}
		units += utf16Len(r)
		i += size
	}
	return protocol.Position{Line: uint32(line), Character: units}, nil
}

// RangeText returns the text covered by rng.
func (s *Snapshot) RangeText(rng protocol.Range) (string, error) {
	start, err := s.ToOffset(rng.Start)
	if err != nil {
		return "", err
	}
	end, err := s.ToOffset(rng.End)
	if err != nil {
		return "", err
	}
	if end < start {
		return "", fmt.Errorf("range end before start: %w", ErrInvalidPosition)
	}
	return s.Text[start:end], nil
}

// WordAt returns the word around pos, where a word is a run of letters,
// digits and underscores. Empty when pos touches no word.
func (s *Snapshot) WordAt(pos protocol.Position) string {
	line, err := s.Line(pos.Line)
	if err != nil {
		return ""
	}
	col, err := columnByteOffset(line, pos.Character)
	if err != nil {
		return ""
	}

	start := col
	for start > 0 {
		r, size := utf8.DecodeLastRuneInString(line[:start])
		if !isWordRune(r) {
			break
		}
		start -= size
	}
	end := col
	for end < len(line) {
		r, size := utf8.DecodeRuneInString(line[end:])
		if !isWordRune(r) {
			break
		}
		end += size
	}
	return line[start:end]
}

// IsFieldAccess reports whether the word immediately before pos hangs off a
// punctuation character, e.g. `foo.ba|` or `obj::me|`. Snippet completion
// is suppressed in that context.
func (s *Snapshot) IsFieldAccess(pos protocol.Position) bool {
	line, err := s.Line(pos.Line)
	if err != nil {
		return false
	}
	col, err := columnByteOffset(line, pos.Character)
	if err != nil {
		return false
	}

	for col > 0 {
		r, size := utf8.DecodeLastRuneInString(line[:col])
		if isPunctuationRune(r) {
			return true
		}
		if !isWordRune(r) {
			return false
		}
		col -= size
	}
	return false
}

// columnByteOffset maps a UTF-16 column to a byte offset within one line.
func columnByteOffset(line string, character uint32) (int, error) {
	var units uint32
	for i := 0; i < len(line); {
		if units >= character {
			return i, nil
		}
		r, size := utf8.DecodeRuneInString(line[i:])
		units += utf16Len(r)
		i += size
	}
	if units >= character {
		return len(line), nil
	}
	return 0, fmt.Errorf("column %d: %w", character, ErrInvalidPosition)
}

func utf16Len(r rune) uint32 {
	if r >= 0x10000 {
		return 2
	}
	return 1
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

func isPunctuationRune(r rune) bool {
	if r == '_' {
		return false
	}
	return unicode.IsPunct(r) || unicode.IsSymbol(r)
}

// apply produces the snapshot that results from one content change. Line
// offsets before the edited line are reused instead of rescanning the whole
// document.
func (s *Snapshot) apply(version int32, rng *protocol.Range, newText string) (*Snapshot, error) {
	if rng == nil {
		return newSnapshot(s.URI, s.LanguageID, version, newText), nil
	}

	start, err := s.ToOffset(rng.Start)
	if err != nil {
		return nil, err
	}
	end, err := s.ToOffset(rng.End)
	if err != nil {
		return nil, err
	}
	if end < start {
		return nil, fmt.Errorf("change range end before start: %w", ErrInvalidPosition)
	}

	var b strings.Builder
	b.Grow(len(s.Text) - (end - start) + len(newText))
	b.WriteString(s.Text[:start])
	b.WriteString(newText)
	b.WriteString(s.Text[end:])
	text := b.String()

	keep := int(rng.Start.Line) + 1
	offsets := make([]int, keep, len(s.lineOffsets))
	copy(offsets, s.lineOffsets[:keep])

	return &Snapshot{
		URI:         s.URI,
		LanguageID:  s.LanguageID,
		Version:     version,
		Text:        text,
		lineOffsets: scanLineOffsets(text, offsets[keep-1], offsets),
	}, nil
}
