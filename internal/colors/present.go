package colors

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Present renders an edited color in the notation of the original
// literal. When the family cannot represent the new value losslessly
// (hue precision, or alpha on an alpha-less form) it falls back to hex.
func Present(original Literal, edited Value) string {
	switch original.Family {
	case Hex, HexShort:
		return presentHex(original.Family, edited)
	case RGB, RGBA:
		return presentRGB(original, edited)
	case HSL, HSLA, HSV, HSVA:
		return presentHue(original, edited)
	case SRGB, SRGBA:
		return presentLinear(original, edited)
	}
	return hexString(edited)
}

func presentHex(family Family, v Value) string {
	if v.A < 1 {
		return hexString(v)
	}
	r, g, b := channelBytes(v)
	if family == HexShort && shortable(r) && shortable(g) && shortable(b) {
		return fmt.Sprintf("#%x%x%x", r&0xf, g&0xf, b&0xf)
	}
	return fmt.Sprintf("#%02x%02x%02x", r, g, b)
}

func presentRGB(lit Literal, v Value) string {
	if lit.Family == RGB && v.A < 1 {
		return hexString(v)
	}

	parts := []string{
		formatChannel(v.R, lit.Forms[0], 255),
		formatChannel(v.G, lit.Forms[1], 255),
		formatChannel(v.B, lit.Forms[2], 255),
	}
	if lit.Family == RGBA {
		parts = append(parts, formatChannel(v.A, alphaForm(lit), 1))
		return "rgba(" + strings.Join(parts, ", ") + ")"
	}
	return "rgb(" + strings.Join(parts, ", ") + ")"
}

func presentHue(lit Literal, v Value) string {
	alphaless := lit.Family == HSL || lit.Family == HSV
	if alphaless && v.A < 1 {
		return hexString(v)
	}

	c := colorful.Color{R: v.R, G: v.G, B: v.B}
	var h, s, lv float64
	var name string
	switch lit.Family {
	case HSL, HSLA:
		h, s, lv = c.Hsl()
		name = "hsl"
	default:
		h, s, lv = c.Hsv()
		name = "hsv"
	}

	// Round-trip check: grey tones collapse hue information and extreme
	// values lose precision; those fall back to hex.
	var back colorful.Color
	if name == "hsl" {
		back = colorful.Hsl(h, s, lv)
	} else {
		back = colorful.Hsv(h, s, lv)
	}
	if !back.Clamped().AlmostEqualRgb(c.Clamped()) {
		return hexString(v)
	}

	parts := []string{
		strconv.FormatFloat(round(h, 0), 'f', -1, 64),
		formatChannel(s, lit.Forms[1], 1),
		formatChannel(lv, lit.Forms[2], 1),
	}
	if !alphaless {
		name += "a"
		parts = append(parts, formatChannel(v.A, alphaForm(lit), 1))
	}
	return name + "(" + strings.Join(parts, ", ") + ")"
}

func presentLinear(lit Literal, v Value) string {
	parts := []string{
		formatFloat(v.R),
		formatFloat(v.G),
		formatFloat(v.B),
	}
	if lit.Family == SRGB {
		if v.A < 1 {
			return hexString(v)
		}
		return "srgb(" + strings.Join(parts, ", ") + ")"
	}
	parts = append(parts, formatFloat(v.A))
	return "srgba(" + strings.Join(parts, ", ") + ")"
}

// formatChannel renders one channel in its recorded lexical form. max is
// the integer-form scale (255 for rgb channels, 1 for normalized ones).
func formatChannel(v float64, form NumForm, max float64) string {
	switch form {
	case FormPercent:
		return strconv.FormatFloat(round(v*100, 1), 'f', -1, 64) + "%"
	case FormFloat:
		return formatFloat(v * max)
	default:
		return strconv.Itoa(int(math.Round(v * max)))
	}
}

func formatFloat(v float64) string {
	s := strconv.FormatFloat(round(v, 3), 'f', -1, 64)
	if !strings.ContainsRune(s, '.') {
		s += ".0"
	}
	return s
}

func alphaForm(lit Literal) NumForm {
	if len(lit.Forms) == 4 {
		return lit.Forms[3]
	}
	return FormFloat
}

// hexString is the universal fallback: #rrggbb, or #rrggbbaa when the
// edited color carries alpha.
func hexString(v Value) string {
	r, g, b := channelBytes(v)
	if v.A < 1 {
		return fmt.Sprintf("#%02x%02x%02x%02x", r, g, b, int(math.Round(v.A*255)))
	}
	return fmt.Sprintf("#%02x%02x%02x", r, g, b)
}

func channelBytes(v Value) (int, int, int) {
	return int(math.Round(v.R * 255)), int(math.Round(v.G * 255)), int(math.Round(v.B * 255))
}

func shortable(b int) bool {
	return b%17 == 0
}

func round(v float64, places int) float64 {
	scale := math.Pow(10, float64(places))
	return math.Round(v*scale) / scale
}
