package colors_test

import (
	"testing"

	"hxls/internal/colors"
)

// parse is a test helper that fails when text is not a literal.
func parse(t *testing.T, text string) colors.Literal {
	t.Helper()
	lit, ok := colors.ParseLiteral(text)
	if !ok {
		t.Fatalf("expected %q to parse", text)
	}
	return lit
}

func TestPresentKeepsNotation(t *testing.T) {
	tests := []struct {
		name     string
		original string
		edited   colors.Value
		want     string
	}{
		{
			"hex",
			"#ffffff",
			colors.Value{R: 1, A: 1},
			"#ff0000",
		},
		{
			"hex short stays short",
			"#fff",
			colors.Value{R: 1, G: 1, B: 1, A: 1},
			"#fff",
		},
		{
			"hex short widens when needed",
			"#fff",
			colors.Value{R: 128 / 255.0, G: 128 / 255.0, B: 128 / 255.0, A: 1},
			"#808080",
		},
		{
			"rgb ints",
			"rgb(255, 0, 0)",
			colors.Value{G: 0.5, B: 1, A: 1},
			"rgb(0, 128, 255)",
		},
		{
			"rgb percents",
			"rgb(100%, 0%, 0%)",
			colors.Value{R: 0.5, G: 0.25, B: 1, A: 1},
			"rgb(50%, 25%, 100%)",
		},
		{
			"rgba keeps alpha form",
			"rgba(255, 0, 0, 0.5)",
			colors.Value{B: 1, A: 0.25},
			"rgba(0, 0, 255, 0.25)",
		},
		{
			"hsl round trip",
			"hsl(240, 50%, 50%)",
			colors.Value{R: 0.25, G: 0.25, B: 0.75, A: 1},
			"hsl(240, 50%, 50%)",
		},
		{
			"srgb",
			"srgb(1.0, 0.5, 0.0)",
			colors.Value{G: 0.25, B: 1, A: 1},
			"srgb(0.0, 0.25, 1.0)",
		},
		{
			"srgba",
			"srgba(1.0, 0.0, 0.0, 0.5)",
			colors.Value{R: 1, A: 0.25},
			"srgba(1.0, 0.0, 0.0, 0.25)",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := colors.Present(parse(t, tt.original), tt.edited)
			if got != tt.want {
				t.Fatalf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

// Notations without an alpha channel cannot express a translucent edit;
// the presentation switches to #rrggbbaa.
func TestPresentAlphaFallsBackToHex(t *testing.T) {
	tests := []struct {
		original string
		edited   colors.Value
		want     string
	}{
		{"#ff0000", colors.Value{R: 1, A: 0.5}, "#ff000080"},
		{"rgb(255, 0, 0)", colors.Value{R: 1, A: 0.5}, "#ff000080"},
		{"hsl(240, 50%, 50%)", colors.Value{R: 0.25, G: 0.25, B: 0.75, A: 0.5}, "#4040bf80"},
		{"srgb(1.0, 0.0, 0.0)", colors.Value{R: 1, A: 0.5}, "#ff000080"},
	}
	for _, tt := range tests {
		got := colors.Present(parse(t, tt.original), tt.edited)
		if got != tt.want {
			t.Fatalf("%q: expected %q, got %q", tt.original, tt.want, got)
		}
	}
}

func TestPresentationRoundTrips(t *testing.T) {
	// Presenting a literal's own color must reproduce the source text.
	literals := []string{
		"#336699",
		"#fa0",
		"rgb(51, 102, 153)",
		"rgb(50%, 25%, 100%)",
		"rgba(51, 102, 153, 0.5)",
		"hsl(240, 50%, 50%)",
		"hsv(0, 1.0, 1.0)",
		"srgb(0.2, 0.4, 0.6)",
		"srgba(0.2, 0.4, 0.6, 0.8)",
	}
	for _, text := range literals {
		lit := parse(t, text)
		if got := colors.Present(lit, lit.Color); got != text {
			t.Fatalf("expected %q to round-trip, got %q", text, got)
		}
	}
}
