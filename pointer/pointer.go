// Package pointer turns raw pointer events into a smoothed cursor state.
//
// Event handlers only write the target values. The smoothed values move once
// per frame in Tick, so input latency never destabilizes the simulation.
package pointer

import (
	"math"

	"domfx/misc"
)

type Vec struct {
	X, Y float64
}

func (v Vec) Sub(w Vec) Vec {
	return Vec{v.X - w.X, v.Y - w.Y}
}

func (v Vec) Len() float64 {
	return math.Hypot(v.X, v.Y)
}

// Rect is the surface's on-screen bounding rectangle in device coordinates.
type Rect struct {
	X, Y, W, H float64
}

// ToSurface maps device coordinates into normalized [0, 1] surface space.
// Returns false for a zero sized rect.
func ToSurface(rect Rect, x, y float64) (Vec, bool) {
	if rect.W == 0 || rect.H == 0 {
		return Vec{}, false
	}
	return Vec{
		X: misc.Clamp01((x - rect.X) / rect.W),
		Y: misc.Clamp01((y - rect.Y) / rect.H),
	}, true
}

type EventKind int

const (
	Enter EventKind = iota
	Move
	Down
	Up
	Leave
)

func (k EventKind) String() string {
	switch k {
	case Enter:
		return "enter"
	case Move:
		return "move"
	case Down:
		return "down"
	case Up:
		return "up"
	case Leave:
		return "leave"
	}
	return "unknown"
}

type Event struct {
	Kind EventKind
	X, Y float64 // device coordinates
}

const (
	followInside  = 0.24
	followOutside = 0.08

	velocityScale  = 38.0
	velocityFollow = 0.3

	strengthDown        = 1.0
	strengthHover       = 0.95
	strengthFollowIn    = 0.2
	strengthFollowOut   = 0.08
	radiusBase          = 0.12
	radiusVelocityBonus = 0.1
	radiusDownBonus     = 0.04
	radiusIdle          = 0.16
	radiusFollow        = 0.16

	initialRadius = 0.115
)

// State is the smoothed pointer. Positions are in normalized surface space.
type State struct {
	Pos    Vec
	Prev   Vec
	Target Vec

	Velocity float64 // [0, 1]
	Strength float64 // [0, 1]
	Radius   float64 // normalized influence radius

	Inside bool
	Down   bool
}

// Motion is the displacement of the smoothed position during the last tick.
func (s State) Motion() Vec {
	return s.Pos.Sub(s.Prev)
}

type Tracker struct {
	State State
}

func NewTracker() *Tracker {
	t := new(Tracker)
	t.Reset()
	return t
}

func (t *Tracker) Reset() {
	center := Vec{0.5, 0.5}
	t.State = State{
		Pos:    center,
		Prev:   center,
		Target: center,
		Radius: initialRadius,
	}
}

// Handle applies one raw event. Coordinates are mapped through rect, and an
// event carrying coordinates is dropped when rect has no area.
func (t *Tracker) Handle(rect Rect, ev Event) {
	s := &t.State

	switch ev.Kind {
	case Enter, Move:
		uv, ok := ToSurface(rect, ev.X, ev.Y)
		if !ok {
			return
		}
		s.Target = uv
		s.Inside = true
	case Down:
		uv, ok := ToSurface(rect, ev.X, ev.Y)
		if !ok {
			return
		}
		s.Target = uv
		s.Down = true
		s.Inside = true
	case Up:
		// released anywhere, not only over the surface
		s.Down = false
	case Leave:
		s.Inside = false
		s.Down = false
	}
}

// Tick advances the smoothed state by one frame.
// Smoothing assumes a fixed frame step and is not scaled by elapsed time.
func (t *Tracker) Tick() {
	s := &t.State

	s.Prev = s.Pos

	follow := followOutside
	if s.Inside {
		follow = followInside
	}
	s.Pos.X = misc.Lerp(s.Pos.X, s.Target.X, follow)
	s.Pos.Y = misc.Lerp(s.Pos.Y, s.Target.Y, follow)

	speed := min(1, s.Pos.Sub(s.Prev).Len()*velocityScale)
	s.Velocity = misc.Lerp(s.Velocity, speed, velocityFollow)

	targetStrength := 0.0
	strengthFollow := strengthFollowOut
	if s.Inside {
		targetStrength = strengthHover
		if s.Down {
			targetStrength = strengthDown
		}
		strengthFollow = strengthFollowIn
	}
	s.Strength = misc.Lerp(s.Strength, targetStrength, strengthFollow)

	targetRadius := radiusIdle
	if s.Inside {
		targetRadius = radiusBase + s.Velocity*radiusVelocityBonus
		if s.Down {
			targetRadius += radiusDownBonus
		}
	}
	s.Radius = misc.Lerp(s.Radius, targetRadius, radiusFollow)
}
