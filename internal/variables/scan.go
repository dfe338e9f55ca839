package variables

import (
	"sort"
	"strings"
)

// matchOrder holds the registered names longest-first so that the scanner
// always takes the longest possible match at each dollar sign.
var matchOrder = func() []string {
	names := make([]string, len(Names))
	copy(names, Names)
	sort.SliceStable(names, func(i, j int) bool {
		return len(names[i]) > len(names[j])
	})
	return names
}()

// Substitute rewrites every $NAME and ${NAME} reference in text with its
// resolved value. Tabstops ($1, ${2:default}) and unregistered names stay
// verbatim, as does everything else, including shell metacharacters.
// A string without variable tokens passes through unchanged.
func (c *Context) Substitute(text string) string {
	var b strings.Builder
	b.Grow(len(text))

	for i := 0; i < len(text); {
		dollar := strings.IndexByte(text[i:], '$')
		if dollar < 0 {
			b.WriteString(text[i:])
			break
		}
		b.WriteString(text[i : i+dollar])
		i += dollar

		if name, consumed, ok := c.matchAt(text[i:]); ok {
			value, _ := c.Resolve(name)
			b.WriteString(value)
			i += consumed
			continue
		}
		b.WriteByte('$')
		i++
	}
	return b.String()
}

// matchAt tries to read a variable reference at the start of s, which
// begins with '$'. It reports the canonical name and how many bytes the
// reference spans.
func (c *Context) matchAt(s string) (string, int, bool) {
	if len(s) < 2 {
		return "", 0, false
	}

	if s[1] == '{' {
		end := strings.IndexByte(s, '}')
		if end < 0 {
			return "", 0, false
		}
		inner := s[2:end]
		for _, name := range matchOrder {
			if strings.EqualFold(inner, name) {
				return name, end + 1, true
			}
		}
		return "", 0, false
	}

	for _, name := range matchOrder {
		if len(s)-1 < len(name) {
			continue
		}
		if strings.EqualFold(s[1:1+len(name)], name) {
			return name, 1 + len(name), true
		}
	}
	return "", 0, false
}
