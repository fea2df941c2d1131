package main

import (
	"image/color"
	"strings"

	eb "github.com/hajimehoshi/ebiten/v2"
	ebt "github.com/hajimehoshi/ebiten/v2/text/v2"
	ebv "github.com/hajimehoshi/ebiten/v2/vector"

	"domfx/scene"
)

const surfaceCornerRadius = 8

var (
	snapshotBackground = scene.ParseColor("#f5f5f3")

	backdropStops = []GradientStop{
		{0, scene.ParseColor("#f7f7f5")},
		{0.45, scene.ParseColor("#dfdfdc")},
		{1, scene.ParseColor("#bfc0bd")},
	}

	surfaceStops = []GradientStop{
		{0, scene.ParseColor("#1f1cff")},
		{0.28, scene.ParseColor("#32ccff")},
		{0.58, scene.ParseColor("#e33fd1")},
		{0.78, scene.ParseColor("#ffe36a")},
		{1, scene.ParseColor("#ef2d2d")},
	}
)

// SnapshotRenderer rasterizes a scene document into a surface sized image.
type SnapshotRenderer struct {
	Document *scene.Document

	vertices []eb.Vertex
	indices  []uint16
}

func NewSnapshotRenderer(doc *scene.Document) *SnapshotRenderer {
	return &SnapshotRenderer{Document: doc}
}

// Scale maps document px to pixels of dst.
func (sr *SnapshotRenderer) Scale(dst *eb.Image) float64 {
	if sr.Document == nil || sr.Document.Width <= 0 {
		return 1
	}
	return f64(dst.Bounds().Dx()) / sr.Document.Width
}

func (sr *SnapshotRenderer) Render(dst *eb.Image) {
	dst.Fill(snapshotBackground)

	bounds := RectToFRect(dst.Bounds())
	sr.fillGradient(
		dst,
		RoundRectPath(bounds, 0),
		FPt(bounds.Min.X, bounds.Min.Y), FPt(bounds.Min.X, bounds.Max.Y),
		backdropStops,
	)

	if sr.Document == nil {
		return
	}

	k := sr.Scale(dst)

	for _, s := range sr.Document.Surfaces {
		if !s.Visible() {
			continue
		}
		rect := FRectXYWH(s.X*k, s.Y*k, s.Width*k, s.Height*k)
		sr.fillGradient(
			dst,
			RoundRectPath(rect, surfaceCornerRadius*k),
			rect.Min, rect.Max,
			surfaceStops,
		)
	}

	for _, t := range sr.Document.Texts {
		if !t.Visible() {
			continue
		}
		if err := sr.drawText(dst, t, k); err != nil {
			DebugPrint("snapshot text", err)
		}
	}
}

func (sr *SnapshotRenderer) fillGradient(
	dst *eb.Image,
	path *ebv.Path,
	start, end FPoint,
	stops []GradientStop,
) {
	sr.vertices, sr.indices = FillPathVertices(
		path, color.White, sr.vertices[:0], sr.indices[:0],
	)

	if shader := GetShader(ShaderGradient); shader != nil {
		op := &DrawTrianglesShaderOptions{}
		op.Uniforms = GradientUniforms(start, end, stops)
		op.FillRule = eb.FillRuleNonZero
		DrawTrianglesShader(dst, sr.vertices, sr.indices, shader, op)
		return
	}

	// no gradient shader, paint the middle stop flat
	c := ColorNormalized(stops[len(stops)/2].Color, true)
	for i := range sr.vertices {
		sr.vertices[i].ColorR = f32(c[0])
		sr.vertices[i].ColorG = f32(c[1])
		sr.vertices[i].ColorB = f32(c[2])
		sr.vertices[i].ColorA = f32(c[3])
	}
	op := &DrawTrianglesOptions{}
	op.FillRule = eb.FillRuleNonZero
	DrawTriangles(dst, sr.vertices, sr.indices, WhiteImage, op)
}

func (sr *SnapshotRenderer) drawText(dst *eb.Image, t scene.Text, k float64) error {
	content := t.Content()
	if content == "" {
		return nil
	}

	style := t.Style
	face, err := StyleFace(style, style.FontSizePx()*k)
	if err != nil {
		return err
	}

	spacing := style.LetterSpacingPx() * k
	lineHeight := style.LineHeightPx() * k

	measure := func(str string) float64 {
		return ebt.Advance(str, face)
	}

	var lines []string
	if t.Wraps() {
		lines = scene.Wrap(content, t.Width*k, spacing, measure)
	} else {
		lines = []string{strings.Join(strings.Fields(content), " ")}
	}

	m := face.Metrics()
	// glyphs sit centered in their line box
	halfLeading := (lineHeight - (m.HAscent + m.HDescent)) * 0.5

	clr := style.TextColor()

	for i, line := range lines {
		x := t.X * k
		y := t.Y*k + f64(i)*lineHeight + halfLeading

		if !scene.Spaced(spacing) {
			op := &DrawTextOptions{}
			op.GeoM.Translate(x, y)
			op.ColorScale.ScaleWithColor(clr)
			DrawText(dst, line, face, op)
			continue
		}

		for _, r := range line {
			glyph := string(r)
			op := &DrawTextOptions{}
			op.GeoM.Translate(x, y)
			op.ColorScale.ScaleWithColor(clr)
			DrawText(dst, glyph, face, op)
			x += measure(glyph) + spacing
		}
	}

	return nil
}
