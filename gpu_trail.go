package main

import (
	"image/color"

	eb "github.com/hajimehoshi/ebiten/v2"

	"domfx/trail"
)

// GPUTrail keeps the trail field in ebiten images.
//
// Stable is opaque and holds the value in its color channels. Scratch is
// premultiplied with alpha as coverage, so compositing it over Stable with
// source-over is the same blend the CPU field does.
type GPUTrail struct {
	Stable *eb.Image

	// result of the horizontal pass
	tmp     *eb.Image
	scratch *eb.Image

	w, h int
}

var _ trail.Target = (*GPUTrail)(nil)

func NewGPUTrail(w, h int) *GPUTrail {
	g := new(GPUTrail)
	g.Reset(w, h)
	return g
}

func (g *GPUTrail) Size() (int, int) {
	return g.w, g.h
}

func (g *GPUTrail) Reset(w, h int) {
	w = max(w, 1)
	h = max(h, 1)

	if g.Stable == nil || g.w != w || g.h != h {
		for _, img := range []*eb.Image{g.Stable, g.tmp, g.scratch} {
			if img != nil {
				img.Deallocate()
			}
		}
		g.Stable = eb.NewImage(w, h)
		g.tmp = eb.NewImage(w, h)
		g.scratch = eb.NewImage(w, h)
	}

	g.w, g.h = w, h
	g.Stable.Fill(color.Black)
	g.tmp.Clear()
	g.scratch.Clear()
}

func (g *GPUTrail) Advect(shiftX, shiftY, blurPx, feedback float64) {
	shader := GetShader(ShaderTrail)
	if shader == nil {
		// without the shader, let the field fade out in place
		g.scratch.Clear()
		return
	}

	BeginBlend(eb.BlendCopy)
	defer EndBlend()

	op := &DrawRectShaderOptions{}

	op.Images[0] = g.Stable
	op.Uniforms = map[string]any{
		"Shift":     []float32{f32(shiftX), f32(shiftY)},
		"Direction": []float32{1, 0},
		"Sigma":     f32(blurPx),
		"Feedback":  float32(1),
	}
	DrawRectShader(g.tmp, g.w, g.h, shader, op)

	op.Images[0] = g.tmp
	op.Uniforms = map[string]any{
		"Shift":     []float32{0, 0},
		"Direction": []float32{0, 1},
		"Sigma":     f32(blurPx),
		"Feedback":  f32(feedback),
	}
	DrawRectShader(g.scratch, g.w, g.h, shader, op)
}

func (g *GPUTrail) Decay(rate float64) {
	BeginBlend(eb.BlendSourceOver)
	defer EndBlend()

	FillRect(g.Stable, RectToFRect(g.Stable.Bounds()), color.NRGBA{0, 0, 0, uint8(rate*255 + 0.5)})
	DrawImage(g.Stable, g.scratch, nil)
}

func (g *GPUTrail) Stamp(x, y, size, alpha float64) {
	if alpha <= 0 || size <= 0 {
		return
	}

	BeginBlend(eb.BlendLighter)
	defer EndBlend()

	op := &DrawImageOptions{}
	op.GeoM.Scale(size, size)
	op.GeoM.Translate(x-size*0.5, y-size*0.5)
	op.ColorScale.ScaleAlpha(f32(alpha))

	DrawImage(g.Stable, WhiteImage, op)
}
