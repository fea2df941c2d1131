package fx

import (
	"image"
	"image/color"
	"runtime"
	"sync"
)

// ImageSource is a Source backed by a copy of an image.
type ImageSource struct {
	w, h int
	pix  []float32 // rgb, row major
}

func NewImageSource(img image.Image) *ImageSource {
	b := img.Bounds()
	s := &ImageSource{
		w:   b.Dx(),
		h:   b.Dy(),
		pix: make([]float32, b.Dx()*b.Dy()*3),
	}

	i := 0
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			s.pix[i+0] = float32(c.R) / 255
			s.pix[i+1] = float32(c.G) / 255
			s.pix[i+2] = float32(c.B) / 255
			i += 3
		}
	}
	return s
}

func (s *ImageSource) Size() (int, int) {
	return s.w, s.h
}

func (s *ImageSource) texel(x, y int) Color {
	i := (y*s.w + x) * 3
	return Color{float64(s.pix[i]), float64(s.pix[i+1]), float64(s.pix[i+2])}
}

func (s *ImageSource) Sample(u, v float64) Color {
	if s.w == 0 || s.h == 0 {
		return Color{}
	}
	x := min(max(u*float64(s.w)-0.5, 0), float64(s.w-1))
	y := min(max(v*float64(s.h)-0.5, 0), float64(s.h-1))

	x0, y0 := int(x), int(y)
	x1, y1 := min(x0+1, s.w-1), min(y0+1, s.h-1)
	fx, fy := x-float64(x0), y-float64(y0)

	top := s.texel(x0, y0).mix(s.texel(x1, y0), fx)
	bottom := s.texel(x0, y1).mix(s.texel(x1, y1), fx)
	return top.mix(bottom, fy)
}

// Render shades every pixel of dst, sampling at pixel centers. Rows are
// split across GOMAXPROCS workers.
func Render(dst *image.RGBA, src Source, field Field, un *Uniforms) {
	b := dst.Bounds()
	w, h := b.Dx(), b.Dy()
	if w == 0 || h == 0 {
		return
	}

	rows := make(chan int)
	var wg sync.WaitGroup

	for range runtime.GOMAXPROCS(0) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for y := range rows {
				v := (float64(y) + 0.5) / float64(h)
				row := dst.Pix[dst.PixOffset(b.Min.X, b.Min.Y+y):]
				for x := 0; x < w; x++ {
					u := (float64(x) + 0.5) / float64(w)
					c := Shade(src, field, un, u, v)
					row[x*4+0] = uint8(c[0]*255 + 0.5)
					row[x*4+1] = uint8(c[1]*255 + 0.5)
					row[x*4+2] = uint8(c[2]*255 + 0.5)
					row[x*4+3] = 0xff
				}
			}
		}()
	}

	for y := 0; y < h; y++ {
		rows <- y
	}
	close(rows)
	wg.Wait()
}
