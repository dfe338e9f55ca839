// Package snippet matches typed prefixes against registered snippets and
// renders their bodies, substituting variables while leaving tabstops for
// the editor.
package snippet

import (
	"strings"

	"hxls/internal/variables"
)

type SegmentKind int

const (
	Literal SegmentKind = iota
	Tabstop
	Variable
)

// Segment is one typed piece of a snippet body. Substitution only ever
// rewrites Variable segments; Tabstop segments keep their source text.
type Segment struct {
	Kind SegmentKind
	Text string // literal text, or the raw tabstop token ($1, ${2:default})
	Name string // variable name for Variable segments
}

// Tokenize splits a snippet body into Literal, Tabstop and Variable
// segments in a single pass.
func Tokenize(body string) []Segment {
	var segments []Segment
	var literal strings.Builder

	flush := func() {
		if literal.Len() > 0 {
			segments = append(segments, Segment{Kind: Literal, Text: literal.String()})
			literal.Reset()
		}
	}

	for i := 0; i < len(body); {
		if body[i] != '$' || i+1 >= len(body) {
			literal.WriteByte(body[i])
			i++
			continue
		}

		if n := tabstopLen(body[i:]); n > 0 {
			flush()
			segments = append(segments, Segment{Kind: Tabstop, Text: body[i : i+n]})
			i += n
			continue
		}
		if name, n, ok := variableAt(body[i:]); ok {
			flush()
			segments = append(segments, Segment{Kind: Variable, Text: body[i : i+n], Name: name})
			i += n
			continue
		}

		literal.WriteByte('$')
		i++
	}
	flush()
	return segments
}

// Render substitutes Variable segments against ctx and reassembles the
// body. Unregistered variable names and all tabstops come through
// verbatim.
func Render(segments []Segment, ctx *variables.Context) string {
	var b strings.Builder
	for _, seg := range segments {
		switch seg.Kind {
		case Variable:
			if value, ok := ctx.Resolve(seg.Name); ok {
				b.WriteString(value)
				continue
			}
			b.WriteString(seg.Text)
		default:
			b.WriteString(seg.Text)
		}
	}
	return b.String()
}

// tabstopLen reports the byte length of a tabstop token at the start of s
// ($1, ${2} or ${3:default}), or 0 when s starts with something else.
func tabstopLen(s string) int {
	if len(s) < 2 {
		return 0
	}
	if isDigit(s[1]) {
		n := 1
		for n < len(s) && isDigit(s[n]) {
			n++
		}
		return n
	}
	if s[1] != '{' || len(s) < 3 || !isDigit(s[2]) {
		return 0
	}
	i := 2
	for i < len(s) && isDigit(s[i]) {
		i++
	}
	if i < len(s) && s[i] == ':' {
		depth := 1
		for i++; i < len(s); i++ {
			if s[i] == '{' {
				depth++
			} else if s[i] == '}' {
				if depth--; depth == 0 {
					return i + 1
				}
			}
		}
		return 0
	}
	if i < len(s) && s[i] == '}' {
		return i + 1
	}
	return 0
}

func variableAt(s string) (string, int, bool) {
	if s[1] == '{' {
		end := strings.IndexByte(s, '}')
		if end < 0 {
			return "", 0, false
		}
		inner := s[2:end]
		for _, name := range variables.Names {
			if strings.EqualFold(inner, name) {
				return name, end + 1, true
			}
		}
		return "", 0, false
	}

	best := ""
	for _, name := range variables.Names {
		if len(name) <= len(best) || len(s)-1 < len(name) {
			continue
		}
		if strings.EqualFold(s[1:1+len(name)], name) {
			best = name
		}
	}
	if best == "" {
		return "", 0, false
	}
	return best, 1 + len(best), true
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }
