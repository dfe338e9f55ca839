package action

import (
	"fmt"
	"strings"

	protocol "github.com/tliron/glsp/protocol_3_16"
)

// ListType selects the marker style for list conversion.
type ListType int

const (
	Ordered ListType = iota
	Unordered
	TaskList
)

// MarkdownActions offers cosmetic markdown transforms for the current
// selection: emphasis wraps on one line, list conversion across lines and
// table formatting for pipe tables. Only markdown documents get them.
func MarkdownActions(languageID, selection string, uri string, rng protocol.Range) []protocol.CodeAction {
	if languageID != "markdown" {
		return nil
	}

	var out []protocol.CodeAction
	kind := protocol.CodeActionKindRefactorRewrite

	if rng.Start.Line == rng.End.Line {
		if selection == "" {
			return nil
		}
		out = append(out,
			editAction("Bold", kind, uri, rng, "**"+selection+"**"),
			editAction("Italic", kind, uri, rng, "_"+selection+"_"),
			editAction("Strikethrough", kind, uri, rng, "~~"+selection+"~~"),
		)
		return out
	}

	lists := []struct {
		title string
		typ   ListType
	}{
		{"Order List", Ordered},
		{"Unorder List", Unordered},
		{"Task List", TaskList},
	}
	for _, l := range lists {
		if converted, ok := ConvertToList(selection, l.typ); ok {
			out = append(out, editAction(l.title, kind, uri, rng, converted))
		}
	}

	if rng.End.Line-rng.Start.Line > 1 {
		if formatted, ok := FormatTable(selection); ok {
			out = append(out, editAction("Table Format", kind, uri, rng, formatted))
		}
	}
	return out
}

// ConvertToList rewrites each non-empty line of selection with the
// requested marker, stripping any existing ordered/unordered/task marker
// first. It reports false when the result equals the input.
func ConvertToList(selection string, typ ListType) (string, bool) {
	trailing := strings.HasSuffix(selection, "\n")
	lines := strings.Split(trimEOL(selection), "\n")

	counter := 0
	for i, line := range lines {
		indent, content := splitIndent(line)
		if content == "" {
			continue
		}
		content = stripListMarker(content)

		switch typ {
		case Ordered:
			counter++
			lines[i] = fmt.Sprintf("%s%d. %s", indent, counter, content)
		case Unordered:
			lines[i] = indent + "- " + content
		case TaskList:
			lines[i] = indent + "- [ ] " + content
		}
	}

	result := strings.Join(lines, "\n")
	if trailing {
		result += "\n"
	}
	if result == selection {
		return "", false
	}
	return result, true
}

func splitIndent(line string) (string, string) {
	trimmed := strings.TrimLeft(line, " \t")
	return line[:len(line)-len(trimmed)], trimmed
}

// stripListMarker removes one leading list marker: "- [x] ", "- ", "* ",
// "+ " or "3. ".
func stripListMarker(s string) string {
	for _, marker := range []string{"- [ ] ", "- [x] ", "- [X] "} {
		if strings.HasPrefix(s, marker) {
			return s[len(marker):]
		}
	}
	for _, marker := range []string{"- ", "* ", "+ "} {
		if strings.HasPrefix(s, marker) {
			return s[len(marker):]
		}
	}
	digits := 0
	for digits < len(s) && s[digits] >= '0' && s[digits] <= '9' {
		digits++
	}
	if digits > 0 && digits+1 < len(s) && s[digits] == '.' && s[digits+1] == ' ' {
		return s[digits+2:]
	}
	return s
}

// FormatTable pads the cells of a pipe table so every column has uniform
// width. Separator rows (dashes, optional colons) are re-rendered to the
// column width. Returns false when the selection is not a pipe table.
func FormatTable(selection string) (string, bool) {
	trailing := strings.HasSuffix(selection, "\n")
	lines := strings.Split(trimEOL(selection), "\n")

	type row struct {
		cells     []string
		separator bool
	}
	var rows []row
	var widths []int

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if !strings.Contains(trimmed, "|") {
			return "", false
		}
		trimmed = strings.Trim(trimmed, "|")
		cells := strings.Split(trimmed, "|")
		r := row{cells: make([]string, len(cells)), separator: true}
		for i, cell := range cells {
			cell = strings.TrimSpace(cell)
			r.cells[i] = cell
			if !isSeparatorCell(cell) {
				r.separator = false
			}
		}
		for i, cell := range r.cells {
			if r.separator {
				continue
			}
			if i >= len(widths) {
				widths = append(widths, 0)
			}
			if len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
		rows = append(rows, r)
	}
	if len(rows) < 2 {
		return "", false
	}

	var b strings.Builder
	for i, r := range rows {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteByte('|')
		for col := range widths {
			var cell string
			if col < len(r.cells) {
				cell = r.cells[col]
			}
			if r.separator {
				b.WriteString(" " + separatorCell(cell, widths[col]) + " ")
			} else {
				b.WriteString(" " + pad(cell, widths[col]) + " ")
			}
			b.WriteByte('|')
		}
	}
	result := b.String()
	if trailing {
		result += "\n"
	}
	if result == selection {
		return "", false
	}
	return result, true
}

func isSeparatorCell(cell string) bool {
	if cell == "" {
		return false
	}
	for _, r := range cell {
		if r != '-' && r != ':' {
			return false
		}
	}
	return true
}

func separatorCell(cell string, width int) string {
	left := strings.HasPrefix(cell, ":")
	right := strings.HasSuffix(cell, ":")
	dashes := width
	if left {
		dashes--
	}
	if right {
		dashes--
	}
	if dashes < 3 {
		dashes = 3
	}
	out := strings.Repeat("-", dashes)
	if left {
		out = ":" + out
	}
	if right {
		out += ":"
	}
	return out
}

func pad(cell string, width int) string {
	if len(cell) >= width {
		return cell
	}
	return cell + strings.Repeat(" ", width-len(cell))
}
