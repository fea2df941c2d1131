//go:build ignore

//kage:unit pixels

package main

// Uniform variables.
var Resolution vec2
var Time float

var Displacement float
var Chroma float
var Pixelate float
var Blur float
var Mix float

var Mouse vec2
var MousePrev vec2
var Radius float
var Strength float
var Velocity float
var Down float

var Wave float

// bilinear sample with clamp to edge, uv in [0, 1]
func imageSrc0Linear(uv vec2) vec4 {
	origin := imageSrc0Origin()
	size := imageSrc0Size()

	p := clamp(uv*size-0.5, vec2(0), size-1)
	f := fract(p)
	p00 := floor(p) + 0.5 + origin
	p11 := min(p00+1, origin+size-0.5)

	top := mix(imageSrc0UnsafeAt(p00), imageSrc0UnsafeAt(vec2(p11.x, p00.y)), f.x)
	bottom := mix(imageSrc0UnsafeAt(vec2(p00.x, p11.y)), imageSrc0UnsafeAt(p11), f.x)
	return mix(top, bottom, f.y)
}

func imageSrc1Linear(uv vec2) vec4 {
	origin := imageSrc1Origin()
	size := imageSrc1Size()

	p := clamp(uv*size-0.5, vec2(0), size-1)
	f := fract(p)
	p00 := floor(p) + 0.5 + origin
	p11 := min(p00+1, origin+size-0.5)

	top := mix(imageSrc1UnsafeAt(p00), imageSrc1UnsafeAt(vec2(p11.x, p00.y)), f.x)
	bottom := mix(imageSrc1UnsafeAt(vec2(p00.x, p11.y)), imageSrc1UnsafeAt(p11), f.x)
	return mix(top, bottom, f.y)
}

func sampleSafe(uv vec2) vec3 {
	return imageSrc0Linear(clamp(uv, vec2(0.001), vec2(0.999))).rgb
}

func trailAt(uv vec2) float {
	return imageSrc1Linear(uv).r
}

func Fragment(dstPos vec4, srcPos vec2, color vec4) vec4 {
	uv := (dstPos.xy - imageDstOrigin()) / Resolution
	px := 1 / Resolution

	radius := max(0.02, Radius)
	strength := clamp(Strength, 0, 1)
	velocity := clamp(Velocity, 0, 1)
	down := clamp(Down, 0, 1)

	tip := 0.0
	trailInf := 0.0
	influence := 0.0
	offset := vec2(0)

	if Wave > 0.5 {
		influence = 0.5
		offset = vec2(sin(uv.y*18+Time*1.7), cos(uv.x*14+Time*1.3)) * 0.004
	} else {
		trail := trailAt(uv)
		grad := vec2(
			trailAt(uv+vec2(px.x*2, 0))-trailAt(uv-vec2(px.x*2, 0)),
			trailAt(uv+vec2(0, px.y*2))-trailAt(uv-vec2(0, px.y*2)),
		)

		d := distance(uv, Mouse) / (radius * 0.48)
		tip = exp(-d*d*3.8) * strength
		trailInf = clamp(pow(max(trail, 0), 0.7)*(0.68+strength*0.85), 0, 1.25)
		influence = clamp(trailInf+tip*0.22, 0, 1.45)

		motion := Mouse - MousePrev
		dir := vec2(0)
		if length(motion) > 1e-5 {
			dir = normalize(motion)
		}

		offset = dir*(0.003+velocity*0.008)*(tip*0.55+trailInf*0.45) + grad*0.044*influence
	}

	localDisplacement := Displacement * influence * 2.2
	localChroma := Chroma * influence * 2.25
	localPixelate := clamp(Pixelate*influence*2.2, 0, 1)
	localBlur := clamp(Blur*influence*2+down*influence*0.08, 0, 1)

	pixelSize := max(1, mix(1, 22, localPixelate))
	snapped := floor(uv*Resolution/pixelSize) * pixelSize / Resolution
	base := snapped + offset*(1+localDisplacement)

	shift := vec2(0.0055*localChroma, 0)
	clr := vec3(
		sampleSafe(base+shift).r,
		sampleSafe(base).g,
		sampleSafe(base-shift).b,
	)

	blurPx := px * (1 + localBlur*9)
	blurred := sampleSafe(base+vec2(blurPx.x, 0)) +
		sampleSafe(base-vec2(blurPx.x, 0)) +
		sampleSafe(base+vec2(0, blurPx.y)) +
		sampleSafe(base-vec2(0, blurPx.y)) +
		sampleSafe(base)
	clr = mix(clr, blurred/5, localBlur)

	contrast := 1.02 + localDisplacement*0.16
	graded := (clr-0.5)*contrast + 0.5
	localMix := clamp(max(influence*1.2, Mix*0.18), 0, 1)
	final := clamp(mix(sampleSafe(uv), graded, localMix), vec3(0), vec3(1))

	return vec4(final, 1)
}
