package fx

import (
	"image"
	"image/color"
	"math"
	"sync"
	"testing"

	"domfx/pointer"
	"domfx/settings"
	"domfx/timeline"
	"domfx/trail"
)

type constField float64

func (f constField) At01(u, v float64) float64 { return float64(f) }

type flatSource Color

func (s flatSource) Sample(u, v float64) Color { return Color(s) }

// horizontal ramp from black to white
type rampSource struct{}

func (rampSource) Sample(u, v float64) Color { return Color{u, u, u} }

type recordingSource struct {
	mu  sync.Mutex
	uvs [][2]float64
}

func (s *recordingSource) Sample(u, v float64) Color {
	s.mu.Lock()
	s.uvs = append(s.uvs, [2]float64{u, v})
	s.mu.Unlock()
	return Color{0.5, 0.5, 0.5}
}

func approx(a, b Color, eps float64) bool {
	for i := range a {
		if math.Abs(a[i]-b[i]) > eps {
			return false
		}
	}
	return true
}

func TestPack(t *testing.T) {
	cfg := settings.Defaults()
	cfg.ChromaGain = 2
	cfg.GlobalFx = true

	s := timeline.Sample{Fx: timeline.Fx{Displacement: 0.5, Chroma: 0.25, Blur: 0.125, Pixelate: 0.75}}
	p := pointer.State{
		Pos:      pointer.Vec{X: 0.25, Y: 0.75},
		Prev:     pointer.Vec{X: 0.5, Y: 0.5},
		Radius:   0.125,
		Strength: 0.5,
		Velocity: 0.25,
		Down:     true,
	}

	u := Pack(320, 200, 3, s, cfg, p)
	f := u.Floats()

	want := [UniformCount]float32{
		320, 200, 3, 0.5,
		0.5, 0.75, 0.125, 1,
		0.25, 0.75, 0.5, 0.5,
		0.125, float32(0.5 * cfg.TrailTextureMix), 0.25, 1,
	}
	if f != want {
		t.Fatalf("floats = %v\nwant     %v", f, want)
	}

	m := u.Map()
	if m["Wave"].(float32) != 0 {
		t.Error("wave set in pointer mode")
	}
	if r := m["Resolution"].([]float32); r[0] != 320 || r[1] != 200 {
		t.Errorf("resolution = %v", r)
	}
}

func TestPackDegenerateSize(t *testing.T) {
	u := Pack(0, -3, 0, timeline.Sample{}, settings.Defaults(), pointer.State{})
	if u.Width != 1 || u.Height != 1 {
		t.Fatalf("size = %vx%v", u.Width, u.Height)
	}
}

func TestIdleIsIdentity(t *testing.T) {
	src := flatSource{0.2, 0.4, 0.9}
	u := &Uniforms{
		Width: 100, Height: 100,
		Displacement: 1, Chroma: 1, Pixelate: 1, Blur: 1,
		Mouse: pointer.Vec{X: 0.5, Y: 0.5}, MousePrev: pointer.Vec{X: 0.5, Y: 0.5},
		Radius: 0.12,
	}
	got := Shade(src, constField(0), u, 0.3, 0.7)
	if !approx(got, Color(src), 1e-12) {
		t.Fatalf("got %v, want untouched %v", got, src)
	}
}

func TestGlobalBaseline(t *testing.T) {
	c := Color{0.1, 0.5, 0.8}
	u := &Uniforms{Width: 64, Height: 64, Mix: 1}

	got := Shade(flatSource(c), constField(0), u, 0.5, 0.5)

	var want Color
	for i := range c {
		graded := (c[i]-0.5)*1.02 + 0.5
		want[i] = c[i] + (graded-c[i])*0.18
	}
	if !approx(got, want, 1e-9) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestFiniteOnDegenerateInput(t *testing.T) {
	tests := []Uniforms{
		{},
		{Width: 1, Height: 1, Radius: 0, Strength: 5, Velocity: 9, Down: 3},
		{Width: 10, Height: 10, Mouse: pointer.Vec{X: 0.5, Y: 0.5}, MousePrev: pointer.Vec{X: 0.5, Y: 0.5}, Strength: 1},
		{Width: 50, Height: 20, Displacement: 4, Chroma: 4, Pixelate: 4, Blur: 4, Mix: 1, Strength: 1, Velocity: 1},
		{Width: 50, Height: 20, Wave: true, Time: 1e4, Displacement: 2},
	}

	for i, u := range tests {
		for _, uv := range [][2]float64{{0, 0}, {1, 1}, {0.5, 0.5}, {-3, 7}} {
			for _, field := range []Field{constField(0), constField(1), constField(1.7)} {
				c := Shade(rampSource{}, field, &u, uv[0], uv[1])
				for _, ch := range c {
					if math.IsNaN(ch) || ch < 0 || ch > 1 {
						t.Fatalf("case %d uv %v: channel %v", i, uv, ch)
					}
				}
			}
		}
	}
}

func TestSamplesAreClamped(t *testing.T) {
	src := &recordingSource{}
	u := &Uniforms{
		Width: 40, Height: 40,
		Displacement: 2, Chroma: 2, Blur: 1,
		Mouse: pointer.Vec{X: 0, Y: 0}, MousePrev: pointer.Vec{X: 0.2, Y: 0.1},
		Radius: 0.2, Strength: 1, Velocity: 1, Down: 1,
	}

	for _, uv := range [][2]float64{{0, 0}, {1, 1}, {-1, 2}, {0.0001, 0.9999}} {
		Shade(src, constField(1), u, uv[0], uv[1])
	}
	if len(src.uvs) == 0 {
		t.Fatal("source never sampled")
	}
	for _, uv := range src.uvs {
		for _, c := range uv {
			if c < 0.001 || c > 0.999 {
				t.Fatalf("sampled outside the safe range: %v", uv)
			}
		}
	}
}

func TestPixelateSnapsCells(t *testing.T) {
	u := &Uniforms{
		Width: 220, Height: 220,
		Pixelate: 1,
		// far away so only the trail drives the influence
		Mouse: pointer.Vec{X: -10, Y: -10}, MousePrev: pointer.Vec{X: -10, Y: -10},
		Radius:   0.1,
		Strength: 1,
	}

	at := func(px float64) Color {
		return Shade(rampSource{}, constField(1), u, (px+0.5)/220, 0.5)
	}

	if a, b := at(0), at(20); !approx(a, b, 1e-12) {
		t.Errorf("same cell differs: %v vs %v", a, b)
	}
	if a, b := at(0), at(30); approx(a, b, 1e-6) {
		t.Errorf("neighbouring cells match: %v", a)
	}
}

func TestTipFollowsPointer(t *testing.T) {
	u := &Uniforms{
		Width: 100, Height: 100,
		Displacement: 1, Chroma: 1,
		Mouse: pointer.Vec{X: 0.5, Y: 0.5}, MousePrev: pointer.Vec{X: 0.45, Y: 0.5},
		Radius: 0.2, Strength: 1, Velocity: 1,
	}

	near := Shade(rampSource{}, constField(0), u, 0.5, 0.5)
	far := Shade(rampSource{}, constField(0), u, 0.95, 0.95)

	if approx(near, Color{0.5, 0.5, 0.5}, 1e-6) {
		t.Errorf("no distortion under the pointer: %v", near)
	}
	if !approx(far, Color{0.95, 0.95, 0.95}, 1e-3) {
		t.Errorf("distortion far from the pointer: %v", far)
	}
}

func TestWaveIgnoresPointer(t *testing.T) {
	u := &Uniforms{Width: 100, Height: 100, Displacement: 0.5, Wave: true, Time: 2}
	a := Shade(rampSource{}, constField(0), u, 0.3, 0.3)

	u.Mouse = pointer.Vec{X: 0.3, Y: 0.3}
	u.Strength = 1
	b := Shade(rampSource{}, constField(1), u, 0.3, 0.3)

	if !approx(a, b, 1e-12) {
		t.Fatalf("pointer changed the wave variant: %v vs %v", a, b)
	}
}

func TestImageSource(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 1))
	img.Set(0, 0, color.RGBA{0, 0, 0, 255})
	img.Set(1, 0, color.RGBA{255, 255, 255, 255})
	src := NewImageSource(img)

	tests := []struct {
		u    float64
		want float64
	}{
		{0, 0},
		{0.25, 0},
		{0.5, 0.5},
		{0.75, 1},
		{2, 1},
	}
	for _, tt := range tests {
		if got := src.Sample(tt.u, 0.5)[0]; math.Abs(got-tt.want) > 1e-6 {
			t.Errorf("Sample(%v) = %v, want %v", tt.u, got, tt.want)
		}
	}
}

func TestRenderWithTrailField(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 32, 24))
	for i := range img.Pix {
		img.Pix[i] = 0x80
		if i%4 == 3 {
			img.Pix[i] = 0xff
		}
	}
	src := NewImageSource(img)

	field := trail.NewField(32, 24)
	field.Stamp(16, 12, 8, 1)

	u := &Uniforms{Width: 32, Height: 24, Displacement: 1, Chroma: 1, Radius: 0.1}
	dst := image.NewRGBA(image.Rect(0, 0, 32, 24))
	Render(dst, src, field, u)

	for i := 3; i < len(dst.Pix); i += 4 {
		if dst.Pix[i] != 0xff {
			t.Fatalf("alpha at %d = %d", i, dst.Pix[i])
		}
	}
	// a flat source stays flat apart from the contrast grade
	corner := dst.RGBAAt(0, 0)
	if corner.R != 0x80 {
		t.Errorf("untouched corner = %v", corner)
	}
}
