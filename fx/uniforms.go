// Package fx is the compositor: the per frame uniform block and a host
// side reference of the distortion shader.
package fx

import (
	"domfx/pointer"
	"domfx/settings"
	"domfx/timeline"
)

// UniformCount is the number of floats in the uniform block.
const UniformCount = 16

// Uniforms is everything the compositor reads besides its two textures.
type Uniforms struct {
	Width, Height float64 // surface pixels
	Time          float64 // seconds

	Displacement float64
	Chroma       float64
	Pixelate     float64
	Blur         float64
	// 1 applies a weak baseline of the effect to the whole surface
	Mix float64

	Mouse     pointer.Vec
	MousePrev pointer.Vec
	Radius    float64
	// pointer strength scaled by the trail texture mix
	Strength float64
	Velocity float64
	Down     float64

	Wave bool
}

// Pack builds the frame's uniforms from the sampled pass, the tuned gains
// and the smoothed pointer.
func Pack(w, h int, now float64, s timeline.Sample, cfg *settings.Settings, p pointer.State) Uniforms {
	u := Uniforms{
		Width:  float64(max(1, w)),
		Height: float64(max(1, h)),
		Time:   now,

		Displacement: s.Fx.Displacement * cfg.DisplacementGain,
		Chroma:       s.Fx.Chroma * cfg.ChromaGain,
		Pixelate:     s.Fx.Pixelate * cfg.PixelateGain,
		Blur:         s.Fx.Blur * cfg.BlurGain,

		Mouse:     p.Pos,
		MousePrev: p.Prev,
		Radius:    p.Radius,
		Strength:  p.Strength * cfg.TrailTextureMix,
		Velocity:  p.Velocity,

		Wave: cfg.Mode == settings.ModeWave,
	}
	if cfg.GlobalFx {
		u.Mix = 1
	}
	if p.Down {
		u.Down = 1
	}
	return u
}

// Floats returns the block as four vec4s:
//
//	(width, height, time, displacement)
//	(chroma, pixelate, blur, mix)
//	(mouse.x, mouse.y, prev.x, prev.y)
//	(radius, strength, velocity, down)
func (u *Uniforms) Floats() [UniformCount]float32 {
	return [UniformCount]float32{
		float32(u.Width), float32(u.Height), float32(u.Time), float32(u.Displacement),
		float32(u.Chroma), float32(u.Pixelate), float32(u.Blur), float32(u.Mix),
		float32(u.Mouse.X), float32(u.Mouse.Y), float32(u.MousePrev.X), float32(u.MousePrev.Y),
		float32(u.Radius), float32(u.Strength), float32(u.Velocity), float32(u.Down),
	}
}

// Map returns the uniforms keyed by the compositor shader's variable names.
func (u *Uniforms) Map() map[string]any {
	f := u.Floats()
	wave := float32(0)
	if u.Wave {
		wave = 1
	}
	return map[string]any{
		"Resolution":   []float32{f[0], f[1]},
		"Time":         f[2],
		"Displacement": f[3],
		"Chroma":       f[4],
		"Pixelate":     f[5],
		"Blur":         f[6],
		"Mix":          f[7],
		"Mouse":        []float32{f[8], f[9]},
		"MousePrev":    []float32{f[10], f[11]},
		"Radius":       f[12],
		"Strength":     f[13],
		"Velocity":     f[14],
		"Down":         f[15],
		"Wave":         wave,
	}
}
