// Package trail simulates the decaying, advected field left behind by the
// pointer.
package trail

import (
	"math"

	"domfx/misc"
	"domfx/pointer"
	"domfx/settings"
)

const (
	HistoryCapacity = 42
	// ghosts below this life are evicted
	HistoryLifeFloor = 0.04

	historyDecayInside  = 0.968
	historyDecayOutside = 0.935
	historyPushStrength = 0.03

	// strength below which nothing is stamped while not pressed
	stampStrengthFloor = 0.005

	minRadiusPx = 5.0
	minStampPx  = 2.0
)

// Ghost is an afterimage of a past pointer position.
type Ghost struct {
	X, Y  float64 // pixels
	Speed float64
	Life  float64
}

type Simulator struct {
	Settings *settings.Settings
	Target   Target
	History  *Ring[Ghost]

	// stamps issued during the last Step
	Stamps int
}

func NewSimulator(s *settings.Settings, target Target) *Simulator {
	return &Simulator{
		Settings: s,
		Target:   target,
		History:  NewRing[Ghost](HistoryCapacity),
	}
}

// Resize reallocates the target when the size changed. A resized field is
// blank and the history is dropped, since old pixel positions are
// meaningless at the new size. Returns whether anything changed.
func (sim *Simulator) Resize(w, h int) bool {
	cw, ch := sim.Target.Size()
	if cw == w && ch == h {
		return false
	}
	sim.Target.Reset(w, h)
	sim.History.Clear()
	return true
}

// Step advances the field by one frame using the pointer state produced by
// this frame's tracker tick.
func (sim *Simulator) Step(p pointer.State) {
	cfg := sim.Settings
	sim.Stamps = 0

	w, h := sim.Target.Size()
	if w <= 0 || h <= 0 {
		return
	}
	fw, fh := float64(w), float64(h)

	// advection and feedback
	vx := (p.Pos.X - p.Prev.X) * fw
	vy := (p.Pos.Y - p.Prev.Y) * fh
	shiftX := -vx * cfg.TrailAdvection
	shiftY := -vy * cfg.TrailAdvection

	sim.Target.Advect(shiftX, shiftY, max(0, cfg.TrailBlurPx), misc.Clamp01(cfg.TrailFeedback))
	sim.Target.Decay(misc.Clamp01(cfg.TrailDecay))

	lifeDecay := historyDecayOutside
	if p.Inside {
		lifeDecay = historyDecayInside
	}

	if p.Strength < stampStrengthFloor && !p.Down {
		sim.decayHistory(lifeDecay)
		return
	}

	// segment stamping
	x0, y0 := p.Prev.X*fw, p.Prev.Y*fh
	x1, y1 := p.Pos.X*fw, p.Pos.Y*fh
	dx, dy := x1-x0, y1-y0
	segment := max(1, math.Hypot(dx, dy))

	radiusPx := max(minRadiusPx, fw*cfg.TrailRadius*(0.85+p.Velocity*cfg.TrailStretch))

	steps := max(1, int(math.Ceil(segment/max(1, radiusPx*cfg.TrailSpacing))))
	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		tipBias := math.Pow(t, cfg.TipBoost)
		alpha := cfg.TrailOpacity * p.Strength * (0.12 + 0.88*tipBias)
		r := radiusPx * (0.74 + 0.32*tipBias)
		sim.stamp(x0+dx*t, y0+dy*t, r, alpha)
	}

	if p.Down {
		sim.stamp(x1, y1, radiusPx*1.18, cfg.TrailOpacity*0.62)
	}

	// history ghosting
	if p.Inside && p.Strength > historyPushStrength {
		sim.History.Push(Ghost{X: x1, Y: y1, Speed: p.Velocity, Life: 1})
	}

	n := sim.History.Len()
	for i := 0; i < n; i++ {
		g := sim.History.At(i)
		age := float64(i) / float64(max(1, n-1))
		g.Life *= lifeDecay
		alpha := cfg.TrailOpacity * cfg.TrailGhost * g.Life * (1 - age*0.72)
		r := radiusPx * (0.62 + g.Speed*0.7) * (1 - age*0.45)
		sim.stamp(g.X, g.Y, r, alpha)
	}

	sim.evictHistory()
}

func (sim *Simulator) decayHistory(lifeDecay float64) {
	for i := 0; i < sim.History.Len(); i++ {
		sim.History.At(i).Life *= lifeDecay
	}
	sim.evictHistory()
}

func (sim *Simulator) evictHistory() {
	sim.History.Retain(func(g *Ghost) bool {
		return g.Life >= HistoryLifeFloor
	})
}

func (sim *Simulator) stamp(x, y, radius, alpha float64) {
	size := max(minStampPx, radius*2)
	sim.Target.Stamp(x, y, size, misc.Clamp01(alpha))
	sim.Stamps++
}
