package document_test

import (
	"errors"
	"testing"

	"hxls/internal/document"

	protocol "github.com/tliron/glsp/protocol_3_16"
)

func open(t *testing.T, text string) *document.Snapshot {
	t.Helper()
	m := document.NewManager()
	m.Open("file:///test.md", "markdown", 1, text)
	snap, err := m.Snapshot("file:///test.md")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return snap
}

func TestToOffset(t *testing.T) {
	// "日本" is two 3-byte runes, one UTF-16 unit each.
	// "😀" is a 4-byte rune taking two UTF-16 units.
	snap := open(t, "hello\n日本😀x\nlast")

	tests := []struct {
		name string
		pos  protocol.Position
		want int
	}{
		{"start", protocol.Position{Line: 0, Character: 0}, 0},
		{"mid line", protocol.Position{Line: 0, Character: 3}, 3},
		{"line end", protocol.Position{Line: 0, Character: 5}, 5},
		{"multibyte", protocol.Position{Line: 1, Character: 2}, 12},
		{"after surrogate pair", protocol.Position{Line: 1, Character: 4}, 16},
		{"second line end", protocol.Position{Line: 1, Character: 5}, 17},
		{"last line", protocol.Position{Line: 2, Character: 4}, 22},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := snap.ToOffset(tt.pos)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("expected offset %d, got %d", tt.want, got)
			}
		})
	}
}

func TestToOffsetInvalid(t *testing.T) {
	snap := open(t, "one\ntwo")

	invalid := []protocol.Position{
		{Line: 5, Character: 0},
		{Line: 0, Character: 4},
	}
	for _, pos := range invalid {
		if _, err := snap.ToOffset(pos); !errors.Is(err, document.ErrInvalidPosition) {
			t.Fatalf("position %+v: expected ErrInvalidPosition, got %v", pos, err)
		}
	}
}

func TestToPositionRoundTrip(t *testing.T) {
	snap := open(t, "hello\n日本😀x\nlast")

	positions := []protocol.Position{
		{Line: 0, Character: 0},
		{Line: 0, Character: 5},
		{Line: 1, Character: 2},
		{Line: 1, Character: 4},
		{Line: 2, Character: 4},
	}
	for _, pos := range positions {
		offset, err := snap.ToOffset(pos)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		back, err := snap.ToPosition(offset)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if back != pos {
			t.Fatalf("position %+v round-tripped to %+v", pos, back)
		}
	}
}

func TestRangeText(t *testing.T) {
	snap := open(t, "first line\nsecond line")

	got, err := snap.RangeText(protocol.Range{
		Start: protocol.Position{Line: 0, Character: 6},
		End:   protocol.Position{Line: 1, Character: 6},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "line\nsecond" {
		t.Fatalf("expected %q, got %q", "line\nsecond", got)
	}
}

func TestWordAt(t *testing.T) {
	snap := open(t, "let total_sum = a+b")

	tests := []struct {
		name      string
		character uint32
		want      string
	}{
		{"word middle", 7, "total_sum"},
		{"word start", 4, "total_sum"},
		{"word end", 13, "total_sum"},
		{"whitespace", 3, "let"},
		{"operator", 18, "b"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := snap.WordAt(protocol.Position{Line: 0, Character: tt.character})
			if got != tt.want {
				t.Fatalf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestIsFieldAccess(t *testing.T) {
	snap := open(t, "foo.bar baz")

	if !snap.IsFieldAccess(protocol.Position{Line: 0, Character: 7}) {
		t.Fatal("expected field access after a dot")
	}
	if snap.IsFieldAccess(protocol.Position{Line: 0, Character: 11}) {
		t.Fatal("expected no field access after whitespace")
	}
	if snap.IsFieldAccess(protocol.Position{Line: 0, Character: 3}) {
		t.Fatal("expected no field access at line-leading word")
	}
}

func TestLineCount(t *testing.T) {
	tests := []struct {
		text string
		want int
	}{
		{"", 1},
		{"one", 1},
		{"one\n", 2},
		{"one\ntwo\nthree", 3},
	}
	for _, tt := range tests {
		snap := open(t, tt.text)
		if got := snap.LineCount(); got != tt.want {
			t.Fatalf("%q: expected %d lines, got %d", tt.text, tt.want, got)
		}
	}
}
