package main

import (
	eb "github.com/hajimehoshi/ebiten/v2"
	ebt "github.com/hajimehoshi/ebiten/v2/text/v2"
)

func f64[N ~int | ~int32 | ~int64 | ~uint8 | ~float32](n N) float64 {
	return float64(n)
}

func f32[N ~int | ~float64](n N) float32 {
	return float32(n)
}

func CursorFPt() FPoint {
	mx, my := eb.CursorPosition()
	return FPt(f64(mx), f64(my))
}

func FontSize(face *ebt.GoTextFace) float64 {
	return face.Size
}

func FontLineSpacing(face *ebt.GoTextFace) float64 {
	m := face.Metrics()
	return m.HAscent + m.HDescent + m.HLineGap
}

// FitTextInRect scales and centers text in rect, keeping its aspect ratio.
func FitTextInRect(text string, face *ebt.GoTextFace, rect FRectangle) eb.GeoM {
	w, h := ebt.Measure(text, face, FontLineSpacing(face))

	geom := eb.GeoM{}
	if w <= 0 || h <= 0 {
		return geom
	}

	scale := min(rect.Dx()/w, rect.Dy()/h)
	geom.Scale(scale, scale)
	geom.Translate(
		rect.Min.X+(rect.Dx()-w*scale)*0.5,
		rect.Min.Y+(rect.Dy()-h*scale)*0.5,
	)
	return geom
}
