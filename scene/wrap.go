package scene

import (
	"math"
	"strings"
)

// MeasureFunc returns the advance width of text in px.
type MeasureFunc func(text string) float64

// letter spacing below this is ignored
const minLetterSpacing = 0.001

// MeasureSpaced measures text with spacing added after every glyph.
func MeasureSpaced(text string, spacing float64, measure MeasureFunc) float64 {
	if math.Abs(spacing) < minLetterSpacing {
		return measure(text)
	}
	var width float64
	for _, r := range text {
		width += measure(string(r)) + spacing
	}
	return width
}

// Spaced reports whether spacing is large enough to need per glyph layout.
func Spaced(spacing float64) bool {
	return math.Abs(spacing) >= minLetterSpacing
}

// Wrap breaks text into lines no wider than maxWidth, splitting only on
// whitespace. A word wider than maxWidth on its own still gets its own line.
func Wrap(text string, maxWidth, spacing float64, measure MeasureFunc) []string {
	var lines []string
	current := ""

	for _, word := range strings.Fields(text) {
		candidate := word
		if current != "" {
			candidate = current + " " + word
		}
		if current == "" || MeasureSpaced(candidate, spacing, measure) <= maxWidth {
			current = candidate
		} else {
			lines = append(lines, current)
			current = word
		}
	}
	if current != "" {
		lines = append(lines, current)
	}

	return lines
}
