package main

import (
	eb "github.com/hajimehoshi/ebiten/v2"
	ebi "github.com/hajimehoshi/ebiten/v2/inpututil"

	"domfx/pointer"
)

// TheInputManager turns ebiten's polled input into the discrete pointer
// events the tracker expects.
var TheInputManager struct {
	// below fields are updated by TheInputManager
	// only public for convinience
	// don't write in to it

	Inside    bool
	LastPoint FPoint

	// the touch standing in for the mouse, if any
	Touching bool
	TouchID  eb.TouchID

	TouchingBuf     []eb.TouchID
	JustTouchedBuf  []eb.TouchID
	JustReleasedBuf []eb.TouchID

	Events []pointer.Event

	// a widget captured the pointer this frame
	Captured bool
}

func isTouchIdIn(ids []eb.TouchID, id eb.TouchID) bool {
	for _, other := range ids {
		if other == id {
			return true
		}
	}
	return false
}

func touchFPt(id eb.TouchID) FPoint {
	x, y := eb.TouchPosition(id)
	return FPt(f64(x), f64(y))
}

func prevTouchFPt(id eb.TouchID) FPoint {
	x, y := ebi.TouchPositionInPreviousTick(id)
	return FPt(f64(x), f64(y))
}

// UpdateInput polls input and fills TheInputManager.Events with this
// frame's pointer events over surface.
func UpdateInput(surface FRectangle) {
	im := &TheInputManager

	im.Events = im.Events[:0]
	im.Captured = false

	im.TouchingBuf = eb.AppendTouchIDs(im.TouchingBuf[:0])
	im.JustTouchedBuf = ebi.AppendJustPressedTouchIDs(im.JustTouchedBuf[:0])
	im.JustReleasedBuf = ebi.AppendJustReleasedTouchIDs(im.JustReleasedBuf[:0])

	emit := func(kind pointer.EventKind, pt FPoint) {
		im.Events = append(im.Events, pointer.Event{Kind: kind, X: pt.X, Y: pt.Y})
	}

	// =============================
	// touch
	// =============================
	if im.Touching {
		if isTouchIdIn(im.JustReleasedBuf, im.TouchID) || !isTouchIdIn(im.TouchingBuf, im.TouchID) {
			pt := prevTouchFPt(im.TouchID)
			emit(pointer.Up, pt)
			// touches do not hover
			emit(pointer.Leave, pt)
			im.Touching = false
			im.Inside = false
		} else {
			pt := touchFPt(im.TouchID)
			if pt != im.LastPoint {
				emit(pointer.Move, pt)
				im.LastPoint = pt
			}
		}
		return
	}

	if len(im.JustTouchedBuf) > 0 {
		id := im.JustTouchedBuf[0]
		pt := touchFPt(id)
		if pt.In(surface) {
			im.Touching = true
			im.TouchID = id
			im.Inside = true
			im.LastPoint = pt
			emit(pointer.Enter, pt)
			emit(pointer.Down, pt)
			return
		}
	}

	// =============================
	// mouse
	// =============================
	cursor := CursorFPt()
	inside := eb.IsFocused() && cursor.In(surface)

	switch {
	case inside && !im.Inside:
		emit(pointer.Enter, cursor)
	case inside && cursor != im.LastPoint:
		emit(pointer.Move, cursor)
	case !inside && im.Inside:
		emit(pointer.Leave, cursor)
	}

	if inside && ebi.IsMouseButtonJustPressed(eb.MouseButtonLeft) {
		emit(pointer.Down, cursor)
	}
	// released anywhere counts
	if ebi.IsMouseButtonJustReleased(eb.MouseButtonLeft) {
		emit(pointer.Up, cursor)
	}

	im.Inside = inside
	im.LastPoint = cursor
}

// FilterCapturedEvents drops presses that a widget consumed, keeping
// motion so the trail still follows the pointer over the widget.
func FilterCapturedEvents(events []pointer.Event) []pointer.Event {
	if !TheInputManager.Captured {
		return events
	}
	kept := events[:0]
	for _, ev := range events {
		if ev.Kind != pointer.Down {
			kept = append(kept, ev)
		}
	}
	return kept
}

func IsMouseButtonPressed(button eb.MouseButton) bool {
	return eb.IsMouseButtonPressed(button)
}

func IsMouseButtonJustPressed(button eb.MouseButton) bool {
	return ebi.IsMouseButtonJustPressed(button)
}

func IsKeyJustPressed(key eb.Key) bool {
	return ebi.IsKeyJustPressed(key)
}
