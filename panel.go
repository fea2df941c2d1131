package main

import (
	"fmt"
	"image/color"

	eb "github.com/hajimehoshi/ebiten/v2"

	"domfx/settings"
)

// Panel is the live tuning panel. It writes straight into Settings, the
// same object the simulator and compositor read every frame.
type Panel struct {
	Settings *settings.Settings

	Rect    FRectangle
	Visible bool

	// -1 : not focused
	// otherwise index of the knob being dragged
	Focused int

	// row moved by the keyboard
	Selected int

	knobs []settings.Knob
}

// rows after the knobs
const (
	panelRowGlobalFx = iota
	panelRowMode
	panelToggleRows
)

func NewPanel(s *settings.Settings) *Panel {
	return &Panel{
		Settings: s,
		Focused:  -1,
		knobs:    s.Knobs(),
	}
}

func (p *Panel) rowCount() int {
	return len(p.knobs) + panelToggleRows
}

func (p *Panel) rowRect(i int) FRectangle {
	rowH := p.Rect.Dy() / f64(p.rowCount())
	return FRectXYWH(
		p.Rect.Min.X, p.Rect.Min.Y+rowH*f64(i),
		p.Rect.Dx(), rowH,
	)
}

func (p *Panel) getTextRect(rect FRectangle) FRectangle {
	return FRectXYWH(
		rect.Min.X, rect.Min.Y,
		rect.Dx()*0.45, rect.Dy(),
	).Inset(3)
}

func (p *Panel) getSliderRect(rect FRectangle) FRectangle {
	sliderRect := FRectXYWH(
		rect.Min.X+rect.Dx()*0.45, rect.Min.Y,
		rect.Dx()*0.55, rect.Dy(),
	)

	return FRectScaleCentered(sliderRect.Inset(3), 1, 0.5)
}

// Layout places the panel along the right edge of a w x h surface.
func (p *Panel) Layout(w, h float64) {
	panelW := min(w*0.4, 380)
	rowH := min(28, h*0.9/f64(p.rowCount()))
	panelH := rowH * f64(p.rowCount())
	p.Rect = FRectXYWH(w-panelW-10, 10, panelW, panelH)
}

func (p *Panel) Update() {
	if IsKeyJustPressed(ShowPanelKey) {
		p.Visible = !p.Visible
	}
	if !p.Visible {
		p.Focused = -1
		return
	}

	p.updateKeyboard()

	cursor := CursorFPt()

	if !cursor.In(p.Rect) && p.Focused < 0 {
		return
	}

	// the trail ignores presses over the panel
	TheInputManager.Captured = true

	if IsMouseButtonJustPressed(eb.MouseButtonLeft) {
		for i := range p.rowCount() {
			row := p.rowRect(i)
			if !cursor.In(row) {
				continue
			}
			p.Selected = i
			if i < len(p.knobs) {
				if cursor.In(p.getSliderRect(row)) {
					p.Focused = i
				}
			} else {
				p.toggle(i - len(p.knobs))
			}
		}
	}

	if IsMouseButtonPressed(eb.MouseButtonLeft) {
		if p.Focused >= 0 {
			slider := p.getSliderRect(p.rowRect(p.Focused))
			k := p.knobs[p.Focused]

			t := (cursor.X - slider.Min.X) / slider.Dx()
			t = max(0, min(t, 1))
			k.Set(k.Min + (k.Max-k.Min)*t)
		}
	} else {
		p.Focused = -1
	}
}

func (p *Panel) updateKeyboard() {
	if IsKeyJustPressed(PanelUpKey) {
		p.Selected = (p.Selected - 1 + p.rowCount()) % p.rowCount()
	}
	if IsKeyJustPressed(PanelDownKey) {
		p.Selected = (p.Selected + 1) % p.rowCount()
	}

	dir := 0.0
	if IsKeyJustPressed(eb.KeyArrowLeft) {
		dir = -1
	}
	if IsKeyJustPressed(eb.KeyArrowRight) {
		dir = 1
	}
	if dir == 0 {
		return
	}

	if p.Selected < len(p.knobs) {
		k := p.knobs[p.Selected]
		k.Set(*k.Value + dir*k.Step)
	} else {
		p.toggle(p.Selected - len(p.knobs))
	}
}

func (p *Panel) toggle(row int) {
	switch row {
	case panelRowGlobalFx:
		p.Settings.GlobalFx = !p.Settings.GlobalFx
	case panelRowMode:
		ToggleMode(p.Settings)
	default:
		panic("UNREACHABLE")
	}
}

func ToggleMode(s *settings.Settings) {
	if s.Mode == settings.ModeWave {
		s.Mode = settings.ModePointer
	} else {
		s.Mode = settings.ModeWave
	}
}

func (p *Panel) Draw(dst *eb.Image) {
	if !p.Visible {
		return
	}

	// draw background
	FillRect(dst, p.Rect, color.NRGBA{0, 0, 0, 150})

	drawText := func(rect FRectangle, str string) {
		op := &DrawTextOptions{}
		op.GeoM.Concat(FitTextInRect(str, ClearFace, rect))
		DrawText(dst, str, ClearFace, op)
	}

	for i := range p.rowCount() {
		row := p.rowRect(i)

		if i == p.Selected {
			FillRect(dst, row, color.NRGBA{255, 255, 255, 30})
		}

		if i >= len(p.knobs) {
			var label string
			switch i - len(p.knobs) {
			case panelRowGlobalFx:
				label = fmt.Sprintf("global fx  %v", p.Settings.GlobalFx)
			case panelRowMode:
				label = fmt.Sprintf("mode  %v", p.Settings.Mode)
			}
			drawText(p.getTextRect(row), label)
			continue
		}

		k := p.knobs[i]
		slider := p.getSliderRect(row)

		// draw slider
		FillRect(dst, slider, color.NRGBA{255, 255, 255, 255})

		// draw cursor
		cursorX := slider.Min.X + slider.Dx()*k.Norm()
		cursorY := slider.Min.Y + slider.Dy()*0.5
		cursorRect := CenterFRectangle(FRectWH(8, slider.Dy()+5), cursorX, cursorY)
		FillRect(dst, cursorRect, color.NRGBA{0, 0, 0, 255})

		drawText(p.getTextRect(row), fmt.Sprintf("%-18s % 6.3f", k.Name, *k.Value))
	}
}
