package main

import (
	"image/color"

	eb "github.com/hajimehoshi/ebiten/v2"
	ebv "github.com/hajimehoshi/ebiten/v2/vector"
)

func FillRect(
	dst *eb.Image,
	rect FRectangle,
	clr color.Color,
) {
	ebv.DrawFilledRect(
		dst,
		f32(rect.Min.X), f32(rect.Min.Y), f32(rect.Dx()), f32(rect.Dy()),
		clr,
		TheGraphicsContext.AntiAlias,
	)
}

func StrokeRect(
	dst *eb.Image,
	rect FRectangle,
	strokeWidth float64,
	clr color.Color,
) {
	ebv.StrokeRect(
		dst,
		f32(rect.Min.X), f32(rect.Min.Y), f32(rect.Dx()), f32(rect.Dy()),
		f32(strokeWidth),
		clr,
		TheGraphicsContext.AntiAlias,
	)
}

// RoundRectPath traces rect with corners of radius r, clamped to half of
// the shorter side.
func RoundRectPath(rect FRectangle, r float64) *ebv.Path {
	r = max(0, min(r, min(rect.Dx(), rect.Dy())*0.5))

	x0, y0 := f32(rect.Min.X), f32(rect.Min.Y)
	x1, y1 := f32(rect.Max.X), f32(rect.Max.Y)
	rf := f32(r)

	p := &ebv.Path{}
	if r <= 0 {
		p.MoveTo(x0, y0)
		p.LineTo(x1, y0)
		p.LineTo(x1, y1)
		p.LineTo(x0, y1)
		p.Close()
		return p
	}

	p.MoveTo(x0+rf, y0)
	p.ArcTo(x1, y0, x1, y1, rf)
	p.ArcTo(x1, y1, x0, y1, rf)
	p.ArcTo(x0, y1, x0, y0, rf)
	p.ArcTo(x0, y0, x1, y0, rf)
	p.Close()

	return p
}

// FillPathVertices returns the triangles covering p, with every vertex
// colored clr and sampling the center of WhiteImage.
func FillPathVertices(p *ebv.Path, clr color.Color, vertices []eb.Vertex, indices []uint16) ([]eb.Vertex, []uint16) {
	start := len(vertices)
	vertices, indices = p.AppendVerticesAndIndicesForFilling(vertices, indices)

	c := ColorNormalized(clr, true)
	for i := start; i < len(vertices); i++ {
		vertices[i].SrcX = 1.5
		vertices[i].SrcY = 1.5
		vertices[i].ColorR = f32(c[0])
		vertices[i].ColorG = f32(c[1])
		vertices[i].ColorB = f32(c[2])
		vertices[i].ColorA = f32(c[3])
	}

	return vertices, indices
}
