package main

import (
	"fmt"
	"image/color"

	eb "github.com/hajimehoshi/ebiten/v2"
)

// Reasons the effect can't run. Either one is permanent for the session.
const (
	StatusDisabled     = "post effect disabled"
	statusInitTemplate = "post effect unavailable: %v"
)

func InitFailureStatus(err error) string {
	return fmt.Sprintf(statusInitTemplate, err)
}

// DrawFallback presents the undistorted snapshot with status boxed in the
// middle of dst.
func DrawFallback(dst *eb.Image, source *eb.Image, status string) {
	if source != nil {
		DrawImage(dst, source, nil)
	}

	if status == "" {
		return
	}

	bounds := RectToFRect(dst.Bounds())

	boxW := min(bounds.Dx()*0.8, 720)
	boxH := min(bounds.Dy()*0.2, 72)
	box := CenterFRectangle(
		FRectWH(boxW, boxH),
		bounds.Min.X+bounds.Dx()*0.5, bounds.Min.Y+bounds.Dy()*0.5,
	)

	FillRect(dst, box, color.NRGBA{255, 255, 255, 235})
	StrokeRect(dst, box, 2, color.NRGBA{20, 20, 20, 255})

	op := &DrawTextOptions{}
	op.GeoM.Concat(FitTextInRect(status, ClearFace, box.Inset(boxH*0.25)))
	op.ColorScale.ScaleWithColor(color.NRGBA{20, 20, 20, 255})
	DrawText(dst, status, ClearFace, op)
}
