package trail

import (
	"math"
	"testing"

	"domfx/pointer"
	"domfx/settings"
)

func TestRingEvictsOldest(t *testing.T) {
	r := NewRing[int](3)
	for i := 1; i <= 5; i++ {
		r.Push(i)
	}
	if r.Len() != 3 {
		t.Fatalf("len = %d, want 3", r.Len())
	}
	for i, want := range []int{5, 4, 3} {
		if got := *r.At(i); got != want {
			t.Errorf("At(%d) = %d, want %d", i, got, want)
		}
	}
}

func TestRingRetain(t *testing.T) {
	r := NewRing[int](5)
	for i := 1; i <= 7; i++ {
		r.Push(i)
	}
	// holds 7 6 5 4 3 newest first
	r.Retain(func(v *int) bool { return *v%2 == 1 })

	want := []int{7, 5, 3}
	if r.Len() != len(want) {
		t.Fatalf("len = %d, want %d", r.Len(), len(want))
	}
	for i, w := range want {
		if got := *r.At(i); got != w {
			t.Errorf("At(%d) = %d, want %d", i, got, w)
		}
	}

	r.Push(9)
	if *r.At(0) != 9 || *r.At(3) != 3 {
		t.Errorf("push after retain broke order")
	}
}

func TestFieldStampSaturates(t *testing.T) {
	f := NewField(16, 16)
	for range 20 {
		f.Stamp(8, 8, 4, 0.3)
	}
	if got := f.At(8, 8); got != 1 {
		t.Fatalf("center = %v, want saturated 1", got)
	}
	if got := f.At(0, 0); got != 0 {
		t.Fatalf("corner = %v, want 0", got)
	}
}

func TestFieldStampPartialCoverage(t *testing.T) {
	f := NewField(8, 8)
	// covers x in [2.5, 4.5), y in [2.5, 4.5)
	f.Stamp(3.5, 3.5, 2, 0.8)

	if got := f.At(3, 3); math.Abs(got-0.8) > 1e-6 {
		t.Errorf("inner pixel = %v, want 0.8", got)
	}
	if got := f.At(2, 3); math.Abs(got-0.4) > 1e-6 {
		t.Errorf("edge pixel = %v, want 0.4", got)
	}
	if got := f.At(2, 2); math.Abs(got-0.2) > 1e-6 {
		t.Errorf("corner pixel = %v, want 0.2", got)
	}
}

func TestFieldDecaysTowardZero(t *testing.T) {
	f := NewField(12, 12)
	f.Stamp(6, 6, 12, 1)

	prev := f.Max()
	for range 400 {
		f.Advect(0, 0, 1.2, 0.88)
		f.Decay(0.09)
		m := f.Max()
		if m > prev+1e-6 {
			t.Fatalf("field grew without stamping: %v > %v", m, prev)
		}
		prev = m
	}
	if prev > 0.05 {
		t.Fatalf("field did not decay: max %v", prev)
	}
}

func TestFieldShiftMovesInk(t *testing.T) {
	f := NewField(10, 1)
	f.Stamp(2.5, 0.5, 1, 1)

	f.Advect(3, 0, 0, 1)
	f.Decay(1)

	if got := f.At(5, 0); math.Abs(got-1) > 1e-6 {
		t.Errorf("shifted pixel = %v, want 1", got)
	}
	if got := f.At(2, 0); got > 1e-6 {
		t.Errorf("source pixel = %v, want 0", got)
	}
}

func TestFieldEdgeIsTransparent(t *testing.T) {
	f := NewField(4, 4)
	for y := range 4 {
		for x := range 4 {
			f.Stamp(float64(x)+0.5, float64(y)+0.5, 1, 0.5)
		}
	}

	// shifting right leaves column 0 without a source
	f.Advect(1, 0, 0, 1)
	f.Decay(0)

	if got := f.At(0, 1); math.Abs(got-0.5) > 1e-6 {
		t.Errorf("uncovered pixel = %v, want its old value 0.5", got)
	}
}

type call struct {
	op   string
	args [4]float64
}

type recordingTarget struct {
	w, h  int
	calls []call
}

func (r *recordingTarget) Size() (int, int) { return r.w, r.h }

func (r *recordingTarget) Reset(w, h int) {
	r.w, r.h = w, h
	r.calls = append(r.calls, call{op: "reset"})
}

func (r *recordingTarget) Advect(sx, sy, blur, fb float64) {
	r.calls = append(r.calls, call{"advect", [4]float64{sx, sy, blur, fb}})
}

func (r *recordingTarget) Decay(rate float64) {
	r.calls = append(r.calls, call{"decay", [4]float64{rate}})
}

func (r *recordingTarget) Stamp(x, y, size, alpha float64) {
	r.calls = append(r.calls, call{"stamp", [4]float64{x, y, size, alpha}})
}

func (r *recordingTarget) count(op string) int {
	n := 0
	for _, c := range r.calls {
		if c.op == op {
			n++
		}
	}
	return n
}

func TestStepOrderAndShift(t *testing.T) {
	cfg := settings.Defaults()
	target := &recordingTarget{w: 200, h: 100}
	sim := NewSimulator(cfg, target)

	p := pointer.State{
		Pos:      pointer.Vec{X: 0.6, Y: 0.5},
		Prev:     pointer.Vec{X: 0.5, Y: 0.5},
		Strength: 0.9,
		Velocity: 0.5,
		Radius:   0.12,
		Inside:   true,
	}
	sim.Step(p)

	if len(target.calls) < 3 {
		t.Fatalf("calls = %+v", target.calls)
	}
	if target.calls[0].op != "advect" || target.calls[1].op != "decay" {
		t.Fatalf("first calls = %v, %v", target.calls[0].op, target.calls[1].op)
	}

	wantShift := -(0.6 - 0.5) * 200 * cfg.TrailAdvection
	if got := target.calls[0].args[0]; math.Abs(got-wantShift) > 1e-9 {
		t.Errorf("shift x = %v, want %v", got, wantShift)
	}

	// tip stamp is the largest and strongest of the segment
	stamps := target.calls[2:]
	first, last := stamps[0], stamps[0]
	for _, c := range stamps {
		if c.op == "stamp" && c.args[0] > last.args[0] {
			last = c
		}
	}
	if !(last.args[2] > first.args[2] && last.args[3] > first.args[3]) {
		t.Errorf("segment is not tapered toward the tip: first %+v last %+v", first, last)
	}
	if sim.History.Len() != 1 {
		t.Errorf("history len = %d, want 1", sim.History.Len())
	}
}

func TestStepEarlyOut(t *testing.T) {
	target := &recordingTarget{w: 64, h: 64}
	sim := NewSimulator(settings.Defaults(), target)

	sim.Step(pointer.State{Strength: 0.001})

	if target.count("stamp") != 0 {
		t.Fatalf("stamped while idle: %d", target.count("stamp"))
	}
	if target.count("decay") != 1 || target.count("advect") != 1 {
		t.Fatal("field was not decayed while idle")
	}
}

func TestStepDownAddsTipStamp(t *testing.T) {
	cfg := settings.Defaults()

	still := pointer.State{
		Pos: pointer.Vec{X: 0.5, Y: 0.5}, Prev: pointer.Vec{X: 0.5, Y: 0.5},
		Strength: 1,
	}
	a := &recordingTarget{w: 100, h: 100}
	NewSimulator(cfg, a).Step(still)

	still.Down = true
	b := &recordingTarget{w: 100, h: 100}
	NewSimulator(cfg, b).Step(still)

	if b.count("stamp") != a.count("stamp")+1 {
		t.Fatalf("stamps up %d, down %d", a.count("stamp"), b.count("stamp"))
	}
}

func TestHistoryBounded(t *testing.T) {
	cfg := settings.Defaults()
	target := &recordingTarget{w: 100, h: 100}
	sim := NewSimulator(cfg, target)

	tr := pointer.NewTracker()
	rect := pointer.Rect{W: 100, H: 100}
	for i := range 500 {
		x := 50 + 40*math.Cos(float64(i)*0.1)
		y := 50 + 40*math.Sin(float64(i)*0.1)
		tr.Handle(rect, pointer.Event{Kind: pointer.Move, X: x, Y: y})
		tr.Tick()
		sim.Step(tr.State)

		if n := sim.History.Len(); n > HistoryCapacity {
			t.Fatalf("history len %d exceeds %d", n, HistoryCapacity)
		}
		for j := 0; j < sim.History.Len(); j++ {
			if sim.History.At(j).Life < HistoryLifeFloor {
				t.Fatalf("ghost below floor kept: %v", sim.History.At(j).Life)
			}
		}
	}

	// after leaving, history drains
	tr.Handle(rect, pointer.Event{Kind: pointer.Leave})
	for range 200 {
		tr.Tick()
		sim.Step(tr.State)
	}
	if n := sim.History.Len(); n != 0 {
		t.Fatalf("history len after leaving = %d, want 0", n)
	}
}

func TestFieldBoundedUnderContinuousStamping(t *testing.T) {
	cfg := settings.Defaults()
	cfg.TrailOpacity = 0.6
	field := NewField(48, 32)
	sim := NewSimulator(cfg, field)

	tr := pointer.NewTracker()
	rect := pointer.Rect{W: 48, H: 32}
	tr.Handle(rect, pointer.Event{Kind: pointer.Down, X: 24, Y: 16})
	for i := range 300 {
		tr.Handle(rect, pointer.Event{Kind: pointer.Move, X: float64(i % 48), Y: 16})
		tr.Tick()
		sim.Step(tr.State)
	}

	for i, v := range field.Values() {
		if v < 0 || v > 1 || math.IsNaN(float64(v)) {
			t.Fatalf("value %d out of range: %v", i, v)
		}
	}
	if field.Max() == 0 {
		t.Fatal("nothing was stamped")
	}
}

func TestResizeResetsField(t *testing.T) {
	field := NewField(32, 32)
	sim := NewSimulator(settings.Defaults(), field)

	tr := pointer.NewTracker()
	rect := pointer.Rect{W: 32, H: 32}
	tr.Handle(rect, pointer.Event{Kind: pointer.Down, X: 16, Y: 16})
	for range 10 {
		tr.Tick()
		sim.Step(tr.State)
	}
	if field.Max() == 0 {
		t.Fatal("no trail accumulated")
	}

	if sim.Resize(32, 32) {
		t.Fatal("same size reported as a resize")
	}
	if field.Max() == 0 {
		t.Fatal("no-op resize cleared the field")
	}

	if !sim.Resize(40, 24) {
		t.Fatal("resize not reported")
	}
	if w, h := field.Size(); w != 40 || h != 24 {
		t.Fatalf("size = %dx%d", w, h)
	}
	if field.Max() != 0 {
		t.Fatalf("trail survived resize: max %v", field.Max())
	}
	if sim.History.Len() != 0 {
		t.Fatal("history survived resize")
	}
}
