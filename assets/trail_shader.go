//go:build ignore

//kage:unit pixels

package main

// Uniform variables.
var Shift vec2 // pixels
var Direction vec2
var Sigma float
var Feedback float

// bilinear sample in source pixels, transparent outside the image
func sampleAt(p vec2) vec4 {
	origin := imageSrc0Origin()
	q := p - 0.5
	f := fract(q)
	p00 := floor(q) + 0.5 + origin

	top := mix(imageSrc0At(p00), imageSrc0At(p00+vec2(1, 0)), f.x)
	bottom := mix(imageSrc0At(p00+vec2(0, 1)), imageSrc0At(p00+vec2(1, 1)), f.x)
	return mix(top, bottom, f.y)
}

func Fragment(dstPos vec4, srcPos vec2, color vec4) vec4 {
	pos := dstPos.xy - imageDstOrigin() - Shift

	if Sigma < 0.01 {
		return sampleAt(pos) * Feedback
	}

	radius := min(ceil(Sigma*2), 16)
	sum := vec4(0)
	weights := 0.0
	for i := -16; i <= 16; i++ {
		x := float(i)
		if abs(x) <= radius {
			w := exp(-x * x / (2 * Sigma * Sigma))
			sum += sampleAt(pos+Direction*x) * w
			weights += w
		}
	}

	return sum / weights * Feedback
}
