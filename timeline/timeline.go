// Package timeline samples the cyclic sequence of effect passes.
//
// A Timeline has no mutable state. Every query is a function of absolute time,
// so the same time always yields the same sample.
package timeline

import (
	"math"

	"domfx/misc"
)

// Fx is the set of effect strengths a pass asks for.
// Values are typically in [0, 1].
type Fx struct {
	Displacement float64
	Chroma       float64
	Blur         float64
	Pixelate     float64
}

func (f Fx) Lerp(next Fx, t float64) Fx {
	return Fx{
		Displacement: misc.Lerp(f.Displacement, next.Displacement, t),
		Chroma:       misc.Lerp(f.Chroma, next.Chroma, t),
		Blur:         misc.Lerp(f.Blur, next.Blur, t),
		Pixelate:     misc.Lerp(f.Pixelate, next.Pixelate, t),
	}
}

type Pass struct {
	Label    string
	Duration float64 // seconds
	Fx       Fx
}

type Sample struct {
	Label string
	Fx    Fx

	Index int // active pass
	Next  int // pass being blended toward

	Phase float64 // linear phase inside the active pass, [0, 1]
	Eased float64 // Phase shaped by Smoothstep
}

// Changed reports whether the active pass differs from prev.
// Used to push label updates only on pass boundaries.
func (s Sample) Changed(prev Sample) bool {
	return s.Index != prev.Index || s.Label != prev.Label
}

// Smoothstep is 3p²-2p³ with p clamped to [0, 1].
func Smoothstep(p float64) float64 {
	p = misc.Clamp01(p)
	return p * p * (3 - 2*p)
}

type Timeline struct {
	passes []Pass
	total  float64
}

func New(passes ...Pass) *Timeline {
	tl := &Timeline{
		passes: append([]Pass(nil), passes...),
	}
	for _, p := range tl.passes {
		tl.total += p.Duration
	}
	return tl
}

// Default returns the authored four pass sequence.
func Default() *Timeline {
	return New(
		Pass{
			Label:    "Mtsdf pass 01",
			Duration: 2.3,
			Fx:       Fx{Displacement: 0.32, Chroma: 0.1, Blur: 0.06, Pixelate: 0.0},
		},
		Pass{
			Label:    "Mtsdf pass 02",
			Duration: 2.6,
			Fx:       Fx{Displacement: 0.82, Chroma: 0.72, Blur: 0.24, Pixelate: 0.18},
		},
		Pass{
			Label:    "Mtsdf pass 03",
			Duration: 2.2,
			Fx:       Fx{Displacement: 0.95, Chroma: 0.88, Blur: 0.16, Pixelate: 0.58},
		},
		Pass{
			Label:    "Recovery",
			Duration: 3.2,
			Fx:       Fx{Displacement: 0.07, Chroma: 0.02, Blur: 0.01, Pixelate: 0.0},
		},
	)
}

func (tl *Timeline) Passes() []Pass {
	return tl.passes
}

func (tl *Timeline) Len() int {
	return len(tl.passes)
}

func (tl *Timeline) Total() float64 {
	return tl.total
}

// Wrap maps any time into [0, Total()).
// Returns 0 when the timeline has no length.
func (tl *Timeline) Wrap(t float64) float64 {
	if tl.total <= 0 || math.IsNaN(t) || math.IsInf(t, 0) {
		return 0
	}
	if t >= 0 && t < tl.total {
		return t
	}
	wrapped := math.Mod(math.Mod(t, tl.total)+tl.total, tl.total)
	// math.Mod can return total itself for tiny negative inputs
	if wrapped >= tl.total {
		wrapped = 0
	}
	return wrapped
}

// Locate finds the active pass at time t, the pass it blends toward
// and the linear phase inside the active pass.
//
// Returns (0, 0, 0) for an empty timeline.
func (tl *Timeline) Locate(t float64) (active, next int, phase float64) {
	n := len(tl.passes)
	if n == 0 {
		return 0, 0, 0
	}
	if tl.total <= 0 {
		return 0, 0, 0
	}

	wrapped := tl.Wrap(t)

	acc := 0.0
	for i, pass := range tl.passes {
		end := acc + pass.Duration
		// a boundary belongs to the pass that starts there, so its phase is 0
		// and the label already names the new pass. the fx are the same as
		// ending the previous pass at phase 1.
		// the last pass always matches to absorb rounding at the wrap point.
		if wrapped < end || i == n-1 {
			if pass.Duration > 0 {
				phase = misc.Clamp01((wrapped - acc) / pass.Duration)
			}
			return i, (i + 1) % n, phase
		}
		acc = end
	}

	return 0, 0, 0
}

func (tl *Timeline) Sample(t float64) Sample {
	if len(tl.passes) == 0 {
		return Sample{}
	}

	if tl.total <= 0 {
		first := tl.passes[0]
		return Sample{
			Label: first.Label,
			Fx:    first.Fx,
		}
	}

	active, next, phase := tl.Locate(t)
	eased := Smoothstep(phase)

	cur := tl.passes[active]
	return Sample{
		Label: cur.Label,
		Fx:    cur.Fx.Lerp(tl.passes[next].Fx, eased),
		Index: active,
		Next:  next,
		Phase: phase,
		Eased: eased,
	}
}
