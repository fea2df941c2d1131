package scene

import (
	"image/color"
	"math"
	"strconv"
	"strings"

	css "github.com/mazznoer/csscolorparser"
)

const (
	DefaultFontSize = 16.0
	// line height used for "normal"
	normalLineHeight = 1.2
)

// FallbackColor is used for text whose color can't be parsed.
var FallbackColor = color.NRGBA{0x11, 0x11, 0x11, 0xff}

// Style is a subset of computed CSS style, kept as the raw strings.
type Style struct {
	FontFamily    string `yaml:"font_family"`
	FontSize      string `yaml:"font_size"`
	FontWeight    string `yaml:"font_weight"`
	FontStyle     string `yaml:"font_style"`
	Color         string `yaml:"color"`
	LineHeight    string `yaml:"line_height"`
	LetterSpacing string `yaml:"letter_spacing"`
}

func (s Style) FontSizePx() float64 {
	if size, ok := ParseLength(s.FontSize); ok && size > 0 {
		return size
	}
	return DefaultFontSize
}

func (s Style) LineHeightPx() float64 {
	return LineHeight(s.LineHeight, s.FontSizePx())
}

func (s Style) LetterSpacingPx() float64 {
	if spacing, ok := ParseLength(s.LetterSpacing); ok {
		return spacing
	}
	return 0
}

func (s Style) TextColor() color.NRGBA {
	return ParseColor(s.Color)
}

// Weight returns the numeric font weight, 400 when unset or unknown.
func (s Style) Weight() int {
	w := strings.ToLower(strings.TrimSpace(s.FontWeight))
	switch w {
	case "", "normal":
		return 400
	case "bold", "bolder":
		return 700
	case "lighter":
		return 300
	}
	if n, err := strconv.Atoi(w); err == nil && n > 0 {
		return n
	}
	return 400
}

func (s Style) Italic() bool {
	st := strings.ToLower(strings.TrimSpace(s.FontStyle))
	return st == "italic" || strings.HasPrefix(st, "oblique")
}

// Monospace reports whether the first family that names a known face is a
// monospaced one.
func (s Style) Monospace() bool {
	for _, family := range strings.Split(s.FontFamily, ",") {
		family = strings.ToLower(strings.Trim(strings.TrimSpace(family), `"'`))
		switch {
		case family == "monospace",
			strings.Contains(family, "mono"),
			strings.Contains(family, "courier"),
			strings.Contains(family, "consolas"),
			strings.Contains(family, "menlo"):
			return true
		case family == "sans-serif", family == "serif", family == "system-ui":
			return false
		}
	}
	return false
}

// ParseLength parses a CSS length in px. A bare number is taken as px.
func ParseLength(str string) (float64, bool) {
	str = strings.TrimSpace(str)
	str = strings.TrimSuffix(str, "px")
	if str == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(str, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// LineHeight resolves a CSS line-height against fontSize. "normal", empty
// and unparseable values give 1.2 times the font size, and a unitless value
// is a multiple of it.
func LineHeight(lineHeight string, fontSize float64) float64 {
	lh := strings.TrimSpace(lineHeight)
	fallback := fontSize * normalLineHeight

	if lh == "" || lh == "normal" {
		return fallback
	}
	if strings.HasSuffix(lh, "px") {
		if v, ok := ParseLength(lh); ok && v > 0 {
			return v
		}
		return fallback
	}
	if v, ok := ParseLength(lh); ok && v > 0 {
		return v * fontSize
	}
	return fallback
}

// ParseColor parses any CSS color, falling back to FallbackColor.
func ParseColor(str string) color.NRGBA {
	if strings.TrimSpace(str) == "" {
		return FallbackColor
	}
	c, err := css.Parse(str)
	if err != nil {
		return FallbackColor
	}
	return color.NRGBA{
		R: uint8(255*c.R + 0.5),
		G: uint8(255*c.G + 0.5),
		B: uint8(255*c.B + 0.5),
		A: uint8(255*c.A + 0.5),
	}
}
