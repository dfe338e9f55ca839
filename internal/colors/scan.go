// Package colors detects literal color expressions in document text and
// regenerates them after editor color-picker edits.
package colors

import (
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Family tags the notation a literal was written in.
type Family int

const (
	Hex Family = iota
	HexShort
	RGB
	RGBA
	HSL
	HSLA
	HSV
	HSVA
	SRGB
	SRGBA
)

// NumForm records the lexical shape of one channel token, decided purely
// from the token text: a % suffix, a decimal point, or neither.
type NumForm int

const (
	FormInt NumForm = iota
	FormFloat
	FormPercent
)

// Value holds normalized RGBA channel values in [0,1].
type Value struct {
	R, G, B, A float64
}

// Literal is one parsed color expression with enough origin metadata to
// re-render an edited value in the same notation.
type Literal struct {
	Family Family
	Forms  []NumForm // per channel, in source order
	Color  Value
}

// Match is a literal found by Scan, with byte offsets into the scanned
// text.
type Match struct {
	Start, End int
	Literal    Literal
}

// Function notations, longest prefix first so rgb( is never matched as a
// leftover inside rgba(.
var prefixes = []struct {
	prefix string
	family Family
}{
	{"srgba(", SRGBA},
	{"srgb(", SRGB},
	{"rgba(", RGBA},
	{"rgb(", RGB},
	{"hsla(", HSLA},
	{"hsl(", HSL},
	{"hsva(", HSVA},
	{"hsv(", HSV},
}

// Scan finds every well-formed color literal in text. Out-of-range or
// malformed literals produce no match; scanning resumes after them.
func Scan(text string) []Match {
	var matches []Match

	for i := 0; i < len(text); {
		if text[i] == '#' {
			if lit, n, ok := parseHexAt(text[i:]); ok {
				matches = append(matches, Match{Start: i, End: i + n, Literal: lit})
				i += n
				continue
			}
			i++
			continue
		}

		// Function notations only start at a word boundary; otherwise a
		// rejected srgb( would re-match through its embedded rgb(.
		if i > 0 && isWordByte(text[i-1]) {
			i++
			continue
		}

		matched := false
		for _, p := range prefixes {
			if !hasFoldPrefix(text[i:], p.prefix) {
				continue
			}
			body, n := closure(text[i+len(p.prefix):])
			if n < 0 {
				break
			}
			end := i + len(p.prefix) + n
			if lit, ok := parseFunction(p.family, body); ok {
				matches = append(matches, Match{Start: i, End: end, Literal: lit})
				i = end
				matched = true
			}
			break
		}
		if !matched {
			i++
		}
	}
	return matches
}

// ParseLiteral parses a standalone literal, e.g. the range text handed
// back by a colorPresentation request.
func ParseLiteral(text string) (Literal, bool) {
	text = strings.TrimSpace(text)
	if strings.HasPrefix(text, "#") {
		lit, n, ok := parseHexAt(text)
		if !ok || n != len(text) {
			return Literal{}, false
		}
		return lit, true
	}
	for _, p := range prefixes {
		if !hasFoldPrefix(text, p.prefix) {
			continue
		}
		body, n := closure(text[len(p.prefix):])
		if n < 0 || len(p.prefix)+n != len(text) {
			return Literal{}, false
		}
		return parseFunction(p.family, body)
	}
	return Literal{}, false
}

// closure returns the text up to the matching close paren and the number
// of bytes consumed including it, or -1 when unbalanced.
func closure(s string) (string, int) {
	depth := 1
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '(':
			depth++
		case ')':
			if depth--; depth == 0 {
				return s[:i], i + 1
			}
		}
	}
	return "", -1
}

func isWordByte(b byte) bool {
	return b == '_' ||
		b >= '0' && b <= '9' ||
		b >= 'a' && b <= 'z' ||
		b >= 'A' && b <= 'Z'
}

func hasFoldPrefix(s, prefix string) bool {
	return len(s) >= len(prefix) && strings.EqualFold(s[:len(prefix)], prefix)
}

// parseHexAt reads #RRGGBB or #RGB at the start of s. Hex digit runs of
// any other length are rejected outright.
func parseHexAt(s string) (Literal, int, bool) {
	run := 0
	for run+1 < len(s) && run < 8 && isHexDigit(s[run+1]) {
		run++
	}

	switch run {
	case 6:
		return Literal{
			Family: Hex,
			Color: Value{
				R: hexByte(s[1:3]),
				G: hexByte(s[3:5]),
				B: hexByte(s[5:7]),
				A: 1,
			},
		}, 7, true
	case 3:
		return Literal{
			Family: HexShort,
			Color: Value{
				R: hexNibble(s[1]),
				G: hexNibble(s[2]),
				B: hexNibble(s[3]),
				A: 1,
			},
		}, 4, true
	}
	return Literal{}, 0, false
}

func isHexDigit(b byte) bool {
	return b >= '0' && b <= '9' || b >= 'a' && b <= 'f' || b >= 'A' && b <= 'F'
}

func hexByte(s string) float64 {
	v, _ := strconv.ParseUint(s, 16, 8)
	return float64(v) / 255
}

func hexNibble(b byte) float64 {
	v, _ := strconv.ParseUint(string(b), 16, 8)
	return float64(v*16+v) / 255
}

// channel is one parsed component token.
type channel struct {
	value float64
	form  NumForm
}

func parseChannel(token string) (channel, bool) {
	token = strings.TrimSpace(token)
	if token == "" {
		return channel{}, false
	}

	form := FormInt
	num := token
	if strings.HasSuffix(token, "%") {
		form = FormPercent
		num = token[:len(token)-1]
	} else if strings.ContainsRune(token, '.') {
		form = FormFloat
	}

	v, err := strconv.ParseFloat(num, 64)
	if err != nil || v < 0 {
		return channel{}, false
	}
	return channel{value: v, form: form}, true
}

func splitChannels(body string, want int) ([]channel, bool) {
	parts := strings.Split(body, ",")
	if len(parts) != want {
		return nil, false
	}
	chans := make([]channel, want)
	for i, part := range parts {
		c, ok := parseChannel(part)
		if !ok {
			return nil, false
		}
		chans[i] = c
	}
	return chans, true
}

func parseFunction(family Family, body string) (Literal, bool) {
	switch family {
	case RGB, RGBA:
		return parseRGBLike(family, body)
	case HSL, HSLA, HSV, HSVA:
		return parseHueLike(family, body)
	case SRGB, SRGBA:
		return parseLinear(family, body)
	}
	return Literal{}, false
}

func channelCount(family Family) int {
	switch family {
	case RGBA, HSLA, HSVA, SRGBA:
		return 4
	}
	return 3
}

// parseRGBLike handles rgb()/rgba(): color channels are int 0-255, float
// 0.0-255.0 or percent 0-100%; the alpha channel is percent or 0-1.
func parseRGBLike(family Family, body string) (Literal, bool) {
	chans, ok := splitChannels(body, channelCount(family))
	if !ok {
		return Literal{}, false
	}

	lit := Literal{Family: family, Color: Value{A: 1}}
	out := [3]*float64{&lit.Color.R, &lit.Color.G, &lit.Color.B}
	for i, c := range chans[:3] {
		v, ok := normalize(c, 255)
		if !ok {
			return Literal{}, false
		}
		*out[i] = v
		lit.Forms = append(lit.Forms, c.form)
	}
	if len(chans) == 4 {
		a, ok := normalize(chans[3], 1)
		if !ok {
			return Literal{}, false
		}
		lit.Color.A = a
		lit.Forms = append(lit.Forms, chans[3].form)
	}
	return lit, true
}

// parseHueLike handles hsl()/hsla()/hsv()/hsva(): hue is 0-360 with no
// percent form; saturation and lightness/value are percent or 0-1 floats.
func parseHueLike(family Family, body string) (Literal, bool) {
	chans, ok := splitChannels(body, channelCount(family))
	if !ok {
		return Literal{}, false
	}

	hue := chans[0]
	if hue.form == FormPercent || hue.value > 360 {
		return Literal{}, false
	}
	s, ok := normalize(chans[1], 1)
	if !ok {
		return Literal{}, false
	}
	lv, ok := normalize(chans[2], 1)
	if !ok {
		return Literal{}, false
	}
	alpha := 1.0
	forms := []NumForm{hue.form, chans[1].form, chans[2].form}
	if len(chans) == 4 {
		if alpha, ok = normalize(chans[3], 1); !ok {
			return Literal{}, false
		}
		forms = append(forms, chans[3].form)
	}

	var c colorful.Color
	switch family {
	case HSL, HSLA:
		c = colorful.Hsl(hue.value, s, lv)
	default:
		c = colorful.Hsv(hue.value, s, lv)
	}
	c = c.Clamped()

	return Literal{
		Family: family,
		Forms:  forms,
		Color:  Value{R: c.R, G: c.G, B: c.B, A: alpha},
	}, true
}

// parseLinear handles srgb()/srgba(): 0.0-1.0 values only, no percent.
func parseLinear(family Family, body string) (Literal, bool) {
	chans, ok := splitChannels(body, channelCount(family))
	if !ok {
		return Literal{}, false
	}

	lit := Literal{Family: family, Color: Value{A: 1}}
	out := [4]*float64{&lit.Color.R, &lit.Color.G, &lit.Color.B, &lit.Color.A}
	for i, c := range chans {
		if c.form == FormPercent || c.value > 1 {
			return Literal{}, false
		}
		*out[i] = c.value
		lit.Forms = append(lit.Forms, c.form)
	}
	return lit, true
}

// normalize maps a channel token to [0,1] given its integer-form maximum.
// Values outside the notation's range reject the literal; nothing is
// clamped.
func normalize(c channel, max float64) (float64, bool) {
	var v float64
	switch c.form {
	case FormPercent:
		v = c.value / 100
	default:
		v = c.value / max
	}
	if v < 0 || v > 1 {
		return 0, false
	}
	return v, true
}
