package settings

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultsWithinKnobRanges(t *testing.T) {
	s := Defaults()
	for _, k := range s.Knobs() {
		if *k.Value < k.Min || *k.Value > k.Max {
			t.Errorf("%s/%s default %v outside [%v, %v]", k.Group, k.Name, *k.Value, k.Min, k.Max)
		}
	}
}

func TestClamp(t *testing.T) {
	s := Defaults()
	s.TrailDecay = -4
	s.TrailFeedback = 3
	s.Tier = Tier(42)
	s.Mode = Mode(-1)
	s.Clamp()

	if s.TrailDecay != 0.01 {
		t.Errorf("decay = %v, want 0.01", s.TrailDecay)
	}
	if s.TrailFeedback != 0.98 {
		t.Errorf("feedback = %v, want 0.98", s.TrailFeedback)
	}
	if s.Tier != DesktopHigh || s.Mode != ModePointer {
		t.Errorf("tier/mode = %v/%v", s.Tier, s.Mode)
	}
}

func TestKnobSetSnapsAndClamps(t *testing.T) {
	s := Defaults()
	var blur Knob
	for _, k := range s.Knobs() {
		if k.Name == "blur px" {
			blur = k
		}
	}
	if blur.Value == nil {
		t.Fatal("blur px knob missing")
	}

	blur.Set(2.34)
	if d := s.TrailBlurPx - 2.3; d > 1e-9 || d < -1e-9 {
		t.Errorf("blur px = %v, want 2.3", s.TrailBlurPx)
	}
	blur.Set(100)
	if s.TrailBlurPx != 8 {
		t.Errorf("blur px = %v, want 8", s.TrailBlurPx)
	}
	if blur.Norm() != 1 {
		t.Errorf("norm = %v, want 1", blur.Norm())
	}
}

func TestUnmarshalKeepsDefaults(t *testing.T) {
	s, unknown, err := Unmarshal([]byte(`{"chroma_gain": 2, "tier": "mobile-low", "mode": "wave", "lens_radius": 0.2}`))
	if err != nil {
		t.Fatal(err)
	}
	if s.ChromaGain != 2 {
		t.Errorf("chroma gain = %v", s.ChromaGain)
	}
	if s.TrailDecay != Defaults().TrailDecay {
		t.Errorf("missing key lost its default: %v", s.TrailDecay)
	}
	if s.Tier != MobileLow || s.Mode != ModeWave {
		t.Errorf("tier/mode = %v/%v", s.Tier, s.Mode)
	}
	if len(unknown) != 1 || unknown[0] != "lens_radius" {
		t.Errorf("unknown = %v", unknown)
	}
}

func TestUnmarshalInvalid(t *testing.T) {
	cases := []string{
		`{`,
		`{"tier": "watch"}`,
		`{"blur_gain": "a lot"}`,
	}
	for _, c := range cases {
		if _, _, err := Unmarshal([]byte(c)); !errors.Is(err, ErrInvalid) {
			t.Errorf("Unmarshal(%s) err = %v, want ErrInvalid", c, err)
		}
	}
}

func TestLoadCreatesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")

	s, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if *s != *Defaults() {
		t.Errorf("loaded %+v, want defaults", s)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("default settings file not written: %v", err)
	}

	s.BlurGain = 0.5
	if err := Save(path, s); err != nil {
		t.Fatal(err)
	}
	again, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if again.BlurGain != 0.5 {
		t.Errorf("blur gain = %v, want 0.5", again.BlurGain)
	}
}

func TestTierBudget(t *testing.T) {
	if b := MobileLow.Budget(); b.RenderDivisor != 2 || b.MaxDeviceScale != 1 {
		t.Errorf("mobile budget = %+v", b)
	}
	for _, tier := range []Tier{DesktopHigh, DesktopUltra} {
		if b := tier.Budget(); b.MaxDeviceScale > 2 || b.RenderDivisor != 1 {
			t.Errorf("%v budget = %+v", tier, b)
		}
	}
}
