package fx

import (
	"math"

	"domfx/misc"
)

// Color is an RGB triple with channels in [0, 1].
type Color [3]float64

func (c Color) add(o Color) Color {
	return Color{c[0] + o[0], c[1] + o[1], c[2] + o[2]}
}

func (c Color) scale(k float64) Color {
	return Color{c[0] * k, c[1] * k, c[2] * k}
}

func (c Color) mix(o Color, t float64) Color {
	return Color{
		misc.Lerp(c[0], o[0], t),
		misc.Lerp(c[1], o[1], t),
		misc.Lerp(c[2], o[2], t),
	}
}

// Source is the rasterized snapshot, sampled bilinearly at normalized
// coordinates with clamp to edge addressing.
type Source interface {
	Sample(u, v float64) Color
}

// Field is the trail intensity, sampled like Source.
type Field interface {
	At01(u, v float64) float64
}

const (
	sampleMin = 0.001
	sampleMax = 0.999

	maxPixelSize = 22.0

	// constant influence used by the wave variant
	waveInfluence = 0.5
	waveAmplitude = 0.004
)

func sampleSafe(src Source, u, v float64) Color {
	return src.Sample(
		misc.Clamp(u, sampleMin, sampleMax),
		misc.Clamp(v, sampleMin, sampleMax),
	)
}

// Shade computes the output color at uv.
func Shade(src Source, field Field, un *Uniforms, u, v float64) Color {
	width := max(1, un.Width)
	height := max(1, un.Height)
	pxX, pxY := 1/width, 1/height

	radius := max(0.02, un.Radius)
	strength := misc.Clamp01(un.Strength)
	velocity := misc.Clamp01(un.Velocity)
	down := misc.Clamp01(un.Down)

	var tip, trailInf, influence float64
	var offX, offY float64

	if un.Wave {
		influence = waveInfluence
		offX = math.Sin(v*18+un.Time*1.7) * waveAmplitude
		offY = math.Cos(u*14+un.Time*1.3) * waveAmplitude
	} else {
		trail := field.At01(u, v)
		gradX := field.At01(u+pxX*2, v) - field.At01(u-pxX*2, v)
		gradY := field.At01(u, v+pxY*2) - field.At01(u, v-pxY*2)

		dist := math.Hypot(u-un.Mouse.X, v-un.Mouse.Y)
		tip = math.Exp(-math.Pow(dist/(radius*0.48), 2)*3.8) * strength
		trailInf = misc.Clamp(math.Pow(max(trail, 0), 0.7)*(0.68+strength*0.85), 0, 1.25)
		influence = misc.Clamp(trailInf+tip*0.22, 0, 1.45)

		motionX := un.Mouse.X - un.MousePrev.X
		motionY := un.Mouse.Y - un.MousePrev.Y
		var dirX, dirY float64
		if l := math.Hypot(motionX, motionY); l > 1e-5 {
			dirX, dirY = motionX/l, motionY/l
		}

		pull := (0.003 + velocity*0.008) * (tip*0.55 + trailInf*0.45)
		offX = dirX*pull + gradX*0.044*influence
		offY = dirY*pull + gradY*0.044*influence
	}

	localDisplacement := un.Displacement * influence * 2.2
	localChroma := un.Chroma * influence * 2.25
	localPixelate := misc.Clamp(un.Pixelate*influence*2.2, 0, 1)
	localBlur := misc.Clamp(un.Blur*influence*2+down*influence*0.08, 0, 1)

	pixelSize := max(1, misc.Lerp(1, maxPixelSize, localPixelate))
	snappedU := math.Floor(u*width/pixelSize) * pixelSize / width
	snappedV := math.Floor(v*height/pixelSize) * pixelSize / height

	baseU := snappedU + offX*(1+localDisplacement)
	baseV := snappedV + offY*(1+localDisplacement)

	shift := 0.0055 * localChroma
	color := Color{
		sampleSafe(src, baseU+shift, baseV)[0],
		sampleSafe(src, baseU, baseV)[1],
		sampleSafe(src, baseU-shift, baseV)[2],
	}

	blurX := pxX * (1 + localBlur*9)
	blurY := pxY * (1 + localBlur*9)
	blurred := sampleSafe(src, baseU+blurX, baseV).
		add(sampleSafe(src, baseU-blurX, baseV)).
		add(sampleSafe(src, baseU, baseV+blurY)).
		add(sampleSafe(src, baseU, baseV-blurY)).
		add(sampleSafe(src, baseU, baseV))
	color = color.mix(blurred.scale(1.0/5), localBlur)

	contrast := 1.02 + localDisplacement*0.16
	graded := Color{
		(color[0]-0.5)*contrast + 0.5,
		(color[1]-0.5)*contrast + 0.5,
		(color[2]-0.5)*contrast + 0.5,
	}

	localMix := misc.Clamp(max(influence*1.2, un.Mix*0.18), 0, 1)
	out := sampleSafe(src, u, v).mix(graded, localMix)

	for i := range out {
		out[i] = misc.Clamp01(out[i])
	}
	return out
}
