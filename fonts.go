package main

import (
	"bytes"

	ebt "github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomedium"
	"golang.org/x/image/font/gofont/gomediumitalic"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/gomonobold"
	"golang.org/x/image/font/gofont/gomonobolditalic"
	"golang.org/x/image/font/gofont/gomonoitalic"
	"golang.org/x/image/font/gofont/goregular"

	"domfx/scene"
)

type FontWeightClass int

const (
	FontRegular FontWeightClass = iota
	FontMedium
	FontBold
)

func WeightClass(weight int) FontWeightClass {
	switch {
	case weight >= 600:
		return FontBold
	case weight >= 500:
		return FontMedium
	}
	return FontRegular
}

type FontKey struct {
	Mono   bool
	Weight FontWeightClass
	Italic bool
}

var fontTTFs = map[FontKey][]byte{
	{false, FontRegular, false}: goregular.TTF,
	{false, FontMedium, false}:  gomedium.TTF,
	{false, FontBold, false}:    gobold.TTF,
	{false, FontRegular, true}:  goitalic.TTF,
	{false, FontMedium, true}:   gomediumitalic.TTF,
	{false, FontBold, true}:     gobolditalic.TTF,

	// there is no medium mono
	{true, FontRegular, false}: gomono.TTF,
	{true, FontMedium, false}:  gomono.TTF,
	{true, FontBold, false}:    gomonobold.TTF,
	{true, FontRegular, true}:  gomonoitalic.TTF,
	{true, FontMedium, true}:   gomonoitalic.TTF,
	{true, FontBold, true}:     gomonobolditalic.TTF,
}

// TheFontCache parses each face source once, on first use.
var TheFontCache struct {
	Sources map[FontKey]*ebt.GoTextFaceSource
}

func StyleFontKey(style scene.Style) FontKey {
	return FontKey{
		Mono:   style.Monospace(),
		Weight: WeightClass(style.Weight()),
		Italic: style.Italic(),
	}
}

func FontSource(key FontKey) (*ebt.GoTextFaceSource, error) {
	fc := &TheFontCache
	if fc.Sources == nil {
		fc.Sources = make(map[FontKey]*ebt.GoTextFaceSource)
	}

	if src, ok := fc.Sources[key]; ok {
		return src, nil
	}

	ttf, ok := fontTTFs[key]
	if !ok {
		ttf = goregular.TTF
	}
	src, err := ebt.NewGoTextFaceSource(bytes.NewReader(ttf))
	if err != nil {
		return nil, err
	}
	fc.Sources[key] = src
	return src, nil
}

// StyleFace returns a face for style at size px.
func StyleFace(style scene.Style, size float64) (*ebt.GoTextFace, error) {
	src, err := FontSource(StyleFontKey(style))
	if err != nil {
		return nil, err
	}
	return &ebt.GoTextFace{
		Source: src,
		Size:   size,
	}, nil
}
