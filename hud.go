package main

import (
	"fmt"
	"image/color"

	eb "github.com/hajimehoshi/ebiten/v2"

	"domfx/timeline"
)

// HUD shows the active pass in a tag at the top left and a caption at the
// bottom. Both are only rewritten when the pass changes.
type HUD struct {
	Tag     string
	Caption string

	// number of times the label was pushed
	Pushes int

	// renderer status, empty while the effect runs
	Status string

	last    timeline.Sample
	started bool
}

func NewHUD() *HUD {
	return new(HUD)
}

func (h *HUD) Update(s timeline.Sample, passCount int) {
	if h.started && !s.Changed(h.last) {
		return
	}
	h.started = true
	h.last = s

	h.Tag = s.Label
	h.Caption = fmt.Sprintf("pass %d/%d  %s", s.Index+1, passCount, s.Label)
	h.Pushes++
}

func (h *HUD) Draw(dst *eb.Image) {
	bounds := RectToFRect(dst.Bounds())

	const margin = 12
	scale := max(1, f64(dst.Bounds().Dx())/1280)

	drawLine := func(str string, rect FRectangle, clr color.Color) {
		if str == "" {
			return
		}
		FillRect(dst, rect, color.NRGBA{0, 0, 0, 110})

		op := &DrawTextOptions{}
		op.GeoM.Concat(FitTextInRect(str, ClearFace, rect.Inset(4*scale)))
		op.ColorScale.ScaleWithColor(clr)
		DrawText(dst, str, ClearFace, op)
	}

	lineH := 26 * scale

	tagRect := FRectXYWH(
		bounds.Min.X+margin*scale, bounds.Min.Y+margin*scale,
		lineH*0.6*f64(len(h.Tag)+2), lineH,
	)
	drawLine(h.Tag, tagRect, color.NRGBA{255, 255, 255, 255})

	captionRect := FRectXYWH(
		bounds.Min.X+margin*scale, bounds.Max.Y-margin*scale-lineH,
		lineH*0.6*f64(len(h.Caption)+2), lineH,
	)
	drawLine(h.Caption, captionRect, color.NRGBA{230, 230, 230, 255})

	if h.Status != "" {
		statusRect := FRectXYWH(
			bounds.Min.X+margin*scale, tagRect.Max.Y+6*scale,
			lineH*0.6*f64(len(h.Status)+2), lineH,
		)
		drawLine(h.Status, statusRect, color.NRGBA{255, 200, 120, 255})
	}
}
