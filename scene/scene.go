// Package scene describes the document that is rasterized as the effect's
// source: gradient surfaces and styled text blocks laid out in CSS pixels.
package scene

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"domfx/misc"
)

var ErrNoElements = errors.New("scene has no visible elements")

//go:embed default.yaml
var defaultDocument []byte

// Surface is a rounded rectangle filled with the surface gradient.
type Surface struct {
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

func (s Surface) Visible() bool {
	return s.Width > 0 && s.Height > 0
}

type Text struct {
	// "p" wraps inside Width, anything else is drawn on one line
	Tag  string `yaml:"tag"`
	Text string `yaml:"text"`

	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`

	Style Style `yaml:"style"`
}

func (t Text) Visible() bool {
	return t.Width > 0 && t.Height > 0
}

// Content returns the text with surrounding whitespace trimmed.
func (t Text) Content() string {
	return strings.TrimSpace(t.Text)
}

func (t Text) Wraps() bool {
	return strings.EqualFold(t.Tag, "p")
}

type Document struct {
	// logical page size the element boxes were laid out in
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`

	Surfaces []Surface `yaml:"surfaces"`
	Texts    []Text    `yaml:"texts"`
}

// Empty reports whether nothing in the document would be drawn.
func (d *Document) Empty() bool {
	for _, s := range d.Surfaces {
		if s.Visible() {
			return false
		}
	}
	for _, t := range d.Texts {
		if t.Visible() && t.Content() != "" {
			return false
		}
	}
	return true
}

// Parse decodes a YAML document. Empty input is an empty document.
func Parse(data []byte) (*Document, error) {
	doc := new(Document)
	if err := yaml.Unmarshal(data, doc); err != nil {
		return nil, fmt.Errorf("failed to parse scene: %w", err)
	}
	if doc.Width < 0 || doc.Height < 0 {
		return nil, fmt.Errorf("scene page size %vx%v is negative", doc.Width, doc.Height)
	}
	return doc, nil
}

// Default returns the built-in demo document.
func Default() *Document {
	doc, err := Parse(defaultDocument)
	if err != nil {
		panic(err)
	}
	return doc
}

// Load reads the document at path. A document that parses but draws
// nothing is returned together with ErrNoElements.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	doc, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	skipped := 0
	for _, s := range doc.Surfaces {
		if !s.Visible() {
			skipped++
		}
	}
	for _, t := range doc.Texts {
		if !t.Visible() {
			skipped++
		}
	}
	if skipped > 0 {
		misc.WarnLogger.Printf("%s: skipping %d zero sized elements", path, skipped)
	}

	if doc.Empty() {
		return doc, fmt.Errorf("%s: %w", path, ErrNoElements)
	}
	return doc, nil
}
