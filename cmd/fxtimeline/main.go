// fxtimeline prints where the pass timeline changes label over one cycle,
// with the blended effect strengths at each change.
package main

import (
	"flag"
	"fmt"
	"os"

	"domfx/timeline"
)

var (
	FlagFps     float64
	FlagSeconds float64
)

func init() {
	flag.Float64Var(&FlagFps, "fps", 120, "sampling rate")
	flag.Float64Var(&FlagSeconds, "seconds", 0, "length to sample, one cycle when 0")
}

func main() {
	flag.Parse()

	if FlagFps <= 0 {
		fmt.Fprintf(os.Stderr, "fps must be positive, got %v\n", FlagFps)
		os.Exit(1)
	}

	tl := timeline.Default()

	seconds := FlagSeconds
	if seconds <= 0 {
		seconds = tl.Total()
	}

	fmt.Printf("%d passes, cycle %.2fs\n", tl.Len(), tl.Total())

	var prev timeline.Sample
	frames := int(seconds * FlagFps)
	for frame := 0; frame <= frames; frame++ {
		t := float64(frame) / FlagFps
		s := tl.Sample(t)
		if frame > 0 && !s.Changed(prev) {
			continue
		}
		prev = s

		fmt.Printf(
			"%7.3fs  %-14s displacement %.3f  chroma %.3f  blur %.3f  pixelate %.3f\n",
			t, s.Label, s.Fx.Displacement, s.Fx.Chroma, s.Fx.Blur, s.Fx.Pixelate,
		)
	}
}
