package main

import (
	"image/color"
)

func ColorNormalized(clr color.Color, multiplyAlpha bool) [4]float64 {
	c := ColorToNRGBA(clr)
	r, g, b, a := f64(c.R)/255, f64(c.G)/255, f64(c.B)/255, f64(c.A)/255

	if multiplyAlpha {
		r *= a
		g *= a
		b *= a
	}

	return [4]float64{r, g, b, a}
}

func ColorToNRGBA(clr color.Color) color.NRGBA {
	if clr == nil {
		return color.NRGBA{}
	}
	return color.NRGBAModel.Convert(clr).(color.NRGBA)
}

// GradientStop is a color at an offset in [0, 1] along a linear gradient.
type GradientStop struct {
	Offset float64
	Color  color.Color
}

// GradientUniforms packs up to 5 stops for the gradient shader. Missing
// stops repeat the last one.
func GradientUniforms(start, end FPoint, stops []GradientStop) map[string]any {
	const maxStops = 5

	colors := make([]float32, 0, maxStops*4)
	offsets := make([]float32, 0, maxStops)

	for i := range maxStops {
		stop := stops[min(i, len(stops)-1)]
		c := ColorNormalized(stop.Color, true)
		colors = append(colors, f32(c[0]), f32(c[1]), f32(c[2]), f32(c[3]))
		offsets = append(offsets, f32(stop.Offset))
	}

	return map[string]any{
		"Start":   []float32{f32(start.X), f32(start.Y)},
		"End":     []float32{f32(end.X), f32(end.Y)},
		"Colors":  colors,
		"Offsets": offsets,
	}
}
