package snippet_test

import (
	"reflect"
	"testing"

	"hxls/internal/snippet"
	"hxls/internal/variables"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name string
		body string
		want []snippet.Segment
	}{
		{
			"plain text",
			"hello world",
			[]snippet.Segment{{Kind: snippet.Literal, Text: "hello world"}},
		},
		{
			"bare tabstop",
			"fn $1()",
			[]snippet.Segment{
				{Kind: snippet.Literal, Text: "fn "},
				{Kind: snippet.Tabstop, Text: "$1"},
				{Kind: snippet.Literal, Text: "()"},
			},
		},
		{
			"tabstop with default",
			"${1:name}",
			[]snippet.Segment{{Kind: snippet.Tabstop, Text: "${1:name}"}},
		},
		{
			"nested default braces",
			"${1:outer ${2:inner}}",
			[]snippet.Segment{{Kind: snippet.Tabstop, Text: "${1:outer ${2:inner}}"}},
		},
		{
			"variable",
			"in $TM_FILENAME",
			[]snippet.Segment{
				{Kind: snippet.Literal, Text: "in "},
				{Kind: snippet.Variable, Text: "$TM_FILENAME", Name: "TM_FILENAME"},
			},
		},
		{
			"braced variable",
			"${TM_FILENAME_BASE}.bak",
			[]snippet.Segment{
				{Kind: snippet.Variable, Text: "${TM_FILENAME_BASE}", Name: "TM_FILENAME_BASE"},
				{Kind: snippet.Literal, Text: ".bak"},
			},
		},
		{
			"longest variable name wins",
			"$TM_FILENAME_BASE",
			[]snippet.Segment{
				{Kind: snippet.Variable, Text: "$TM_FILENAME_BASE", Name: "TM_FILENAME_BASE"},
			},
		},
		{
			"unknown name stays literal",
			"cost $PRICE",
			[]snippet.Segment{{Kind: snippet.Literal, Text: "cost $PRICE"}},
		},
		{
			"trailing dollar",
			"done$",
			[]snippet.Segment{{Kind: snippet.Literal, Text: "done$"}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := snippet.Tokenize(tt.body)
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("expected %+v, got %+v", tt.want, got)
			}
		})
	}
}

func TestRender(t *testing.T) {
	ctx := &variables.Context{
		FilePath:     "/ws/readme.md",
		Workspace:    "/ws",
		SelectedText: "chosen",
	}

	tests := []struct {
		name string
		body string
		want string
	}{
		{"variables resolve", "# $TM_FILENAME_BASE", "# readme"},
		{"tabstops survive", "fn ${1:name}($2) { $0 }", "fn ${1:name}($2) { $0 }"},
		{"selection", "> $TM_SELECTED_TEXT <", "> chosen <"},
		{"mixed", "${TM_FILENAME}: ${1:todo}", "readme.md: ${1:todo}"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := snippet.Render(snippet.Tokenize(tt.body), ctx)
			if got != tt.want {
				t.Fatalf("expected %q, got %q", tt.want, got)
			}
		})
	}
}
