package scene

import (
	"errors"
	"image/color"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// every rune is 10px wide
func fixedMeasure(text string) float64 {
	return float64(len([]rune(text))) * 10
}

func TestWrap(t *testing.T) {
	tests := []struct {
		text  string
		width float64
		want  []string
	}{
		{"", 100, nil},
		{"   ", 100, nil},
		{"one", 100, []string{"one"}},
		{"one two three", 70, []string{"one two", "three"}},
		{"one two three", 1000, []string{"one two three"}},
		{"a  b\n\tc", 30, []string{"a b", "c"}},
		// too wide on its own
		{"extraordinary a", 50, []string{"extraordinary", "a"}},
		{"a extraordinary b", 50, []string{"a", "extraordinary", "b"}},
	}

	for _, tt := range tests {
		got := Wrap(tt.text, tt.width, 0, fixedMeasure)
		if strings.Join(got, "|") != strings.Join(tt.want, "|") {
			t.Errorf("Wrap(%q, %v) = %q, want %q", tt.text, tt.width, got, tt.want)
		}
	}
}

func TestWrapFits(t *testing.T) {
	text := "the quick brown fox jumps over the lazy dog and keeps running far away"
	for width := 10.0; width < 400; width += 13 {
		lines := Wrap(text, width, 0, fixedMeasure)

		if strings.Join(lines, " ") != text {
			t.Fatalf("width %v: lines do not reassemble the text: %q", width, lines)
		}
		for _, line := range lines {
			if fixedMeasure(line) > width && strings.Contains(line, " ") {
				t.Fatalf("width %v: line %q is %v wide", width, line, fixedMeasure(line))
			}
		}
	}
}

func TestWrapSpacing(t *testing.T) {
	// "ab cd" is 50px unspaced, 60px with 2px per glyph
	if got := Wrap("ab cd", 55, 0, fixedMeasure); len(got) != 1 {
		t.Errorf("unspaced = %q", got)
	}
	if got := Wrap("ab cd", 55, 2, fixedMeasure); len(got) != 2 {
		t.Errorf("spaced = %q", got)
	}
}

func TestMeasureSpaced(t *testing.T) {
	if got := MeasureSpaced("abc", 0.0005, fixedMeasure); got != 30 {
		t.Errorf("tiny spacing = %v, want 30", got)
	}
	if got := MeasureSpaced("abc", 1.5, fixedMeasure); got != 34.5 {
		t.Errorf("spaced = %v, want 34.5", got)
	}
	if got := MeasureSpaced("héllo", -1, fixedMeasure); got != 45 {
		t.Errorf("negative spacing = %v, want 45", got)
	}
}

func TestLineHeight(t *testing.T) {
	tests := []struct {
		lh   string
		size float64
		want float64
	}{
		{"", 20, 24},
		{"normal", 10, 12},
		{"30px", 20, 30},
		{"1.5", 20, 30},
		{"garbage", 20, 24},
		{"-4px", 20, 24},
	}
	for _, tt := range tests {
		if got := LineHeight(tt.lh, tt.size); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("LineHeight(%q, %v) = %v, want %v", tt.lh, tt.size, got, tt.want)
		}
	}
}

func TestParseLength(t *testing.T) {
	tests := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"16px", 16, true},
		{" 2.5px ", 2.5, true},
		{"-1px", -1, true},
		{"12", 12, true},
		{"normal", 0, false},
		{"", 0, false},
		{"NaN", 0, false},
	}
	for _, tt := range tests {
		got, ok := ParseLength(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ParseLength(%q) = %v, %v want %v, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in   string
		want color.NRGBA
	}{
		{"#ff0000", color.NRGBA{255, 0, 0, 255}},
		{"rgb(0, 128, 255)", color.NRGBA{0, 128, 255, 255}},
		{"white", color.NRGBA{255, 255, 255, 255}},
		{"", FallbackColor},
		{"not a color", FallbackColor},
	}
	for _, tt := range tests {
		if got := ParseColor(tt.in); got != tt.want {
			t.Errorf("ParseColor(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestStyle(t *testing.T) {
	s := Style{
		FontFamily:    `"JetBrains Mono", monospace`,
		FontWeight:    "bold",
		FontStyle:     "oblique 10deg",
		LetterSpacing: "normal",
	}
	if s.FontSizePx() != DefaultFontSize {
		t.Errorf("font size = %v", s.FontSizePx())
	}
	if !s.Monospace() || !s.Italic() || s.Weight() != 700 {
		t.Errorf("mono %v italic %v weight %v", s.Monospace(), s.Italic(), s.Weight())
	}
	if s.LetterSpacingPx() != 0 {
		t.Errorf("letter spacing = %v", s.LetterSpacingPx())
	}

	sans := Style{FontFamily: "Helvetica, sans-serif, monospace", FontWeight: "550"}
	if sans.Monospace() || sans.Weight() != 550 {
		t.Errorf("mono %v weight %v", sans.Monospace(), sans.Weight())
	}
}

func TestDefault(t *testing.T) {
	doc := Default()
	if doc.Width <= 0 || doc.Height <= 0 {
		t.Fatalf("page size %vx%v", doc.Width, doc.Height)
	}
	if doc.Empty() {
		t.Fatal("default document is empty")
	}

	paragraphs := 0
	for _, text := range doc.Texts {
		if text.Wraps() {
			paragraphs++
		}
		if text.Content() == "" {
			t.Errorf("text element at %v,%v has no content", text.X, text.Y)
		}
	}
	if paragraphs == 0 {
		t.Error("no wrapped paragraphs")
	}
}

func TestParseEmpty(t *testing.T) {
	doc, err := Parse(nil)
	if err != nil {
		t.Fatal(err)
	}
	if !doc.Empty() {
		t.Fatal("empty input is not an empty document")
	}

	if _, err := Parse([]byte("surfaces: [")); err == nil {
		t.Fatal("broken yaml parsed")
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()

	hidden := filepath.Join(dir, "hidden.yaml")
	data := "surfaces:\n  - {x: 0, y: 0, width: 0, height: 10}\ntexts:\n  - {tag: p, text: '  ', width: 10, height: 10}\n"
	if err := os.WriteFile(hidden, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}
	doc, err := Load(hidden)
	if !errors.Is(err, ErrNoElements) {
		t.Fatalf("err = %v, want ErrNoElements", err)
	}
	if doc == nil || len(doc.Surfaces) != 1 {
		t.Fatal("document not returned with ErrNoElements")
	}

	visible := filepath.Join(dir, "visible.yaml")
	if err := os.WriteFile(visible, []byte("surfaces:\n  - {x: 1, y: 2, width: 3, height: 4}\n"), 0644); err != nil {
		t.Fatal(err)
	}
	doc, err = Load(visible)
	if err != nil {
		t.Fatal(err)
	}
	if doc.Surfaces[0] != (Surface{1, 2, 3, 4}) {
		t.Fatalf("surface = %+v", doc.Surfaces[0])
	}

	if _, err := Load(filepath.Join(dir, "missing.yaml")); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("missing file err = %v", err)
	}
}
