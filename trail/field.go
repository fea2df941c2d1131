package trail

import (
	"image"
	"math"
)

// Target is the storage the simulator draws the trail into.
//
// Advect renders the stable buffer, shifted and blurred, into a scratch
// buffer scaled by feedback. Decay darkens the stable buffer by rate and
// composites the scratch buffer back over it. Stamp adds a square of ink.
// Implementations must never read and write the same buffer in one step.
type Target interface {
	Size() (w, h int)
	Reset(w, h int)
	Advect(shiftX, shiftY, blurPx, feedback float64)
	Decay(rate float64)
	Stamp(x, y, size, alpha float64)
}

const maxBlurRadius = 16

// Field is a Target kept in host memory. Values are intensities in [0, 1].
type Field struct {
	w, h int

	stable []float32

	// premultiplied scratch value and its coverage
	scratch    []float32
	scratchCov []float32

	// intermediate pass buffers
	tmp    []float32
	tmpCov []float32

	kernel []float32
}

func NewField(w, h int) *Field {
	f := new(Field)
	f.Reset(w, h)
	return f
}

func (f *Field) Size() (int, int) {
	return f.w, f.h
}

func (f *Field) Reset(w, h int) {
	w = max(w, 0)
	h = max(h, 0)
	n := w * h

	f.w, f.h = w, h
	f.stable = resize(f.stable, n)
	f.scratch = resize(f.scratch, n)
	f.scratchCov = resize(f.scratchCov, n)
	f.tmp = resize(f.tmp, n)
	f.tmpCov = resize(f.tmpCov, n)
}

func resize(buf []float32, n int) []float32 {
	if cap(buf) < n {
		return make([]float32, n)
	}
	buf = buf[:n]
	clear(buf)
	return buf
}

// At returns the stable value at pixel (x, y), 0 outside the field.
func (f *Field) At(x, y int) float64 {
	if x < 0 || y < 0 || x >= f.w || y >= f.h {
		return 0
	}
	return float64(f.stable[y*f.w+x])
}

// At01 samples the stable buffer bilinearly at normalized coordinates,
// clamping to the edge.
func (f *Field) At01(u, v float64) float64 {
	if f.w == 0 || f.h == 0 {
		return 0
	}
	x := u*float64(f.w) - 0.5
	y := v*float64(f.h) - 0.5
	x = math.Max(0, math.Min(x, float64(f.w-1)))
	y = math.Max(0, math.Min(y, float64(f.h-1)))

	x0, y0 := int(x), int(y)
	x1, y1 := min(x0+1, f.w-1), min(y0+1, f.h-1)
	fx, fy := x-float64(x0), y-float64(y0)

	top := f.At(x0, y0)*(1-fx) + f.At(x1, y0)*fx
	bottom := f.At(x0, y1)*(1-fx) + f.At(x1, y1)*fx
	return top*(1-fy) + bottom*fy
}

// Values exposes the stable buffer in row-major order. Do not keep it
// across Reset.
func (f *Field) Values() []float32 {
	return f.stable
}

// Max returns the largest stable value.
func (f *Field) Max() float64 {
	var m float32
	for _, v := range f.stable {
		m = max(m, v)
	}
	return float64(m)
}

func (f *Field) Advect(shiftX, shiftY, blurPx, feedback float64) {
	if f.w == 0 || f.h == 0 {
		return
	}

	f.shift(shiftX, shiftY)
	f.blur(blurPx)

	fb := float32(feedback)
	for i := range f.scratch {
		f.scratch[i] *= fb
		f.scratchCov[i] *= fb
	}
}

// shift resamples stable at (x - shiftX, y - shiftY) into scratch.
// Samples outside the field are transparent.
func (f *Field) shift(shiftX, shiftY float64) {
	ix := math.Floor(shiftX)
	iy := math.Floor(shiftY)
	fx := float32(shiftX - ix)
	fy := float32(shiftY - iy)
	ox, oy := int(ix), int(iy)

	// source pixel (x-ox-1+a, y-oy-1+b) gets weight by bilinear fraction
	weights := [4]float32{
		fx * fy,             // (-1, -1)
		(1 - fx) * fy,       // (0, -1)
		fx * (1 - fy),       // (-1, 0)
		(1 - fx) * (1 - fy), // (0, 0)
	}
	offsets := [4][2]int{{-1, -1}, {0, -1}, {-1, 0}, {0, 0}}

	for y := 0; y < f.h; y++ {
		for x := 0; x < f.w; x++ {
			var v, cov float32
			for k, off := range offsets {
				w := weights[k]
				if w == 0 {
					continue
				}
				sx := x - ox + off[0]
				sy := y - oy + off[1]
				if sx < 0 || sy < 0 || sx >= f.w || sy >= f.h {
					continue
				}
				v += f.stable[sy*f.w+sx] * w
				cov += w
			}
			i := y*f.w + x
			f.scratch[i] = v
			f.scratchCov[i] = cov
		}
	}
}

// blur applies a separable gaussian with standard deviation blurPx to
// scratch and its coverage.
func (f *Field) blur(blurPx float64) {
	if blurPx < 0.01 {
		return
	}

	radius := min(int(math.Ceil(blurPx*2)), maxBlurRadius)
	f.kernel = f.kernel[:0]
	var sum float32
	for i := -radius; i <= radius; i++ {
		w := float32(math.Exp(-float64(i*i) / (2 * blurPx * blurPx)))
		f.kernel = append(f.kernel, w)
		sum += w
	}
	for i := range f.kernel {
		f.kernel[i] /= sum
	}

	// horizontal: scratch -> tmp
	for y := 0; y < f.h; y++ {
		row := y * f.w
		for x := 0; x < f.w; x++ {
			var v, cov float32
			for k, w := range f.kernel {
				sx := x + k - radius
				if sx < 0 || sx >= f.w {
					continue
				}
				v += f.scratch[row+sx] * w
				cov += f.scratchCov[row+sx] * w
			}
			f.tmp[row+x] = v
			f.tmpCov[row+x] = cov
		}
	}

	// vertical: tmp -> scratch
	for y := 0; y < f.h; y++ {
		for x := 0; x < f.w; x++ {
			var v, cov float32
			for k, w := range f.kernel {
				sy := y + k - radius
				if sy < 0 || sy >= f.h {
					continue
				}
				v += f.tmp[sy*f.w+x] * w
				cov += f.tmpCov[sy*f.w+x] * w
			}
			f.scratch[y*f.w+x] = v
			f.scratchCov[y*f.w+x] = cov
		}
	}
}

func (f *Field) Decay(rate float64) {
	keep := float32(1 - rate)
	for i, v := range f.stable {
		v *= keep
		// source-over of the premultiplied scratch
		v = f.scratch[i] + v*(1-f.scratchCov[i])
		f.stable[i] = clamp01f(v)
	}
}

// Stamp adds alpha over the square of side size centered at (x, y).
// Partially covered pixels receive a proportional share.
func (f *Field) Stamp(x, y, size, alpha float64) {
	if alpha <= 0 || size <= 0 {
		return
	}

	x0, x1 := x-size*0.5, x+size*0.5
	y0, y1 := y-size*0.5, y+size*0.5

	px0 := max(int(math.Floor(x0)), 0)
	px1 := min(int(math.Ceil(x1)), f.w)
	py0 := max(int(math.Floor(y0)), 0)
	py1 := min(int(math.Ceil(y1)), f.h)

	for py := py0; py < py1; py++ {
		covY := overlap(float64(py), y0, y1)
		row := py * f.w
		for px := px0; px < px1; px++ {
			a := float32(alpha * covY * overlap(float64(px), x0, x1))
			f.stable[row+px] = clamp01f(f.stable[row+px] + a)
		}
	}
}

// overlap returns how much of the unit cell [p, p+1) lies in [lo, hi).
func overlap(p, lo, hi float64) float64 {
	return math.Max(0, math.Min(p+1, hi)-math.Max(p, lo))
}

func clamp01f(v float32) float32 {
	return min(max(v, 0), 1)
}

// ToGray writes the stable buffer as 8-bit intensities.
func (f *Field) ToGray() *image.Gray {
	img := image.NewGray(image.Rect(0, 0, f.w, f.h))
	for i, v := range f.stable {
		img.Pix[i] = uint8(v*255 + 0.5)
	}
	return img
}

// WriteRGBA fills pix (len 4*w*h) with an opaque gray encoding of the field.
func (f *Field) WriteRGBA(pix []byte) {
	for i, v := range f.stable {
		c := uint8(v*255 + 0.5)
		pix[i*4+0] = c
		pix[i*4+1] = c
		pix[i*4+2] = c
		pix[i*4+3] = 0xff
	}
}
