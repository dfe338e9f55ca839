package action

import (
	"strings"
	"unicode"

	"github.com/iancoleman/strcase"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// CaseActions offers snake/Pascal/camel conversions for a single-line
// ASCII selection. These sit on top of the action pipeline but need no
// process: the edit is computed synchronously.
func CaseActions(selection string, uri string, rng protocol.Range) []protocol.CodeAction {
	if rng.Start.Line != rng.End.Line {
		return nil
	}
	if len(selection) <= 1 || !isASCII(selection) {
		return nil
	}

	conversions := []struct {
		title   string
		convert func(string) string
	}{
		{"case_snake", strcase.ToSnake},
		{"CasePascal", strcase.ToCamel},
		{"caseCamel", strcase.ToLowerCamel},
	}

	var out []protocol.CodeAction
	for _, c := range conversions {
		converted := c.convert(selection)
		if converted == selection {
			continue
		}
		out = append(out, editAction(c.title, protocol.CodeActionKindRefactorInline, uri, rng, converted))
	}
	return out
}

// editAction builds a code action carrying a ready WorkspaceEdit that
// replaces rng with newText.
func editAction(title string, kind protocol.CodeActionKind, uri string, rng protocol.Range, newText string) protocol.CodeAction {
	preferred := true
	return protocol.CodeAction{
		Title:       title,
		Kind:        &kind,
		IsPreferred: &preferred,
		Edit: &protocol.WorkspaceEdit{
			Changes: map[protocol.DocumentUri][]protocol.TextEdit{
				uri: {{Range: rng, NewText: newText}},
			},
		},
	}
}

func isASCII(s string) bool {
	for _, r := range s {
		if r > unicode.MaxASCII {
			return false
		}
	}
	return true
}

// trimEOL strips one trailing newline so wraps like **text** never span
// onto the next line.
func trimEOL(s string) string {
	return strings.TrimRight(s, "\r\n")
}
