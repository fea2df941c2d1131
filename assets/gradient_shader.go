//go:build ignore

//kage:unit pixels

package main

// Uniform variables.
var Start vec2 // destination pixels
var End vec2
var Colors [5]vec4 // premultiplied
var Offsets [5]float

func segment(c vec4, t float, o0, o1 float, c0, c1 vec4) vec4 {
	if t <= o0 {
		return c
	}
	w := 1.0
	if o1 > o0 {
		w = clamp((t-o0)/(o1-o0), 0, 1)
	}
	return mix(c0, c1, w)
}

func Fragment(dstPos vec4, srcPos vec2, color vec4) vec4 {
	d := End - Start
	t := 0.0
	if dot(d, d) > 0 {
		t = clamp(dot(dstPos.xy-imageDstOrigin()-Start, d)/dot(d, d), 0, 1)
	}

	c := Colors[0]
	c = segment(c, t, Offsets[0], Offsets[1], Colors[0], Colors[1])
	c = segment(c, t, Offsets[1], Offsets[2], Colors[1], Colors[2])
	c = segment(c, t, Offsets[2], Offsets[3], Colors[2], Colors[3])
	c = segment(c, t, Offsets[3], Offsets[4], Colors[3], Colors[4])

	return c * color.a
}
