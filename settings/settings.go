// Package settings holds the single tunable settings object shared by the
// simulation, the compositor and the live tuning panel.
//
// There is no locking. Everything runs on the frame loop, and readers must
// tolerate values that changed since the previous frame.
package settings

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"reflect"
	"strings"

	"domfx/misc"
)

var ErrInvalid = errors.New("invalid settings")

type Settings struct {
	DisplacementGain float64 `json:"displacement_gain"`
	ChromaGain       float64 `json:"chroma_gain"`
	BlurGain         float64 `json:"blur_gain"`
	PixelateGain     float64 `json:"pixelate_gain"`
	GlobalFx         bool    `json:"global_fx"`

	TrailDecay      float64 `json:"trail_decay"`
	TrailFeedback   float64 `json:"trail_feedback"`
	TrailBlurPx     float64 `json:"trail_blur_px"`
	TrailAdvection  float64 `json:"trail_advection"`
	TrailOpacity    float64 `json:"trail_opacity"`
	TrailRadius     float64 `json:"trail_radius"`
	TrailStretch    float64 `json:"trail_stretch"`
	TrailSpacing    float64 `json:"trail_spacing"`
	TipBoost        float64 `json:"tip_boost"`
	TrailTextureMix float64 `json:"trail_texture_mix"`
	TrailGhost      float64 `json:"trail_ghost"`

	Tier Tier `json:"tier"`
	Mode Mode `json:"mode"`
}

func Defaults() *Settings {
	return &Settings{
		DisplacementGain: 1.0,
		ChromaGain:       1.0,
		BlurGain:         1.0,
		PixelateGain:     1.0,
		GlobalFx:         false,

		TrailDecay:      0.09,
		TrailFeedback:   0.88,
		TrailBlurPx:     1.2,
		TrailAdvection:  0.45,
		TrailOpacity:    0.18,
		TrailRadius:     0.06,
		TrailStretch:    0.45,
		TrailSpacing:    0.42,
		TipBoost:        2.2,
		TrailTextureMix: 0.6,
		TrailGhost:      0.52,

		Tier: DesktopHigh,
		Mode: ModePointer,
	}
}

// Knob is one slider of the tuning panel.
type Knob struct {
	Group string
	Name  string
	Value *float64

	Min, Max, Step float64
}

func (k Knob) Set(v float64) {
	if k.Step > 0 {
		steps := (v - k.Min) / k.Step
		v = k.Min + float64(int64(steps+0.5))*k.Step
	}
	*k.Value = misc.Clamp(v, k.Min, k.Max)
}

// Norm returns the knob position in [0, 1].
func (k Knob) Norm() float64 {
	if k.Max <= k.Min {
		return 0
	}
	return misc.Clamp01((*k.Value - k.Min) / (k.Max - k.Min))
}

func (s *Settings) Knobs() []Knob {
	return []Knob{
		{"Post FX", "displacement gain", &s.DisplacementGain, 0, 2.5, 0.01},
		{"Post FX", "chroma gain", &s.ChromaGain, 0, 2.5, 0.01},
		{"Post FX", "blur gain", &s.BlurGain, 0, 2.0, 0.01},
		{"Post FX", "pixelate gain", &s.PixelateGain, 0, 2.0, 0.01},

		{"Trail", "decay", &s.TrailDecay, 0.01, 0.45, 0.005},
		{"Trail", "feedback", &s.TrailFeedback, 0.0, 0.98, 0.01},
		{"Trail", "blur px", &s.TrailBlurPx, 0.0, 8.0, 0.1},
		{"Trail", "advection", &s.TrailAdvection, 0.0, 2.5, 0.01},
		{"Trail", "opacity", &s.TrailOpacity, 0.01, 0.6, 0.005},
		{"Trail", "radius", &s.TrailRadius, 0.03, 0.3, 0.005},
		{"Trail", "stretch", &s.TrailStretch, 0.0, 1.2, 0.01},
		{"Trail", "spacing", &s.TrailSpacing, 0.08, 0.9, 0.01},
		{"Trail", "tip boost", &s.TipBoost, 0.2, 3.0, 0.05},
		{"Trail", "ghost", &s.TrailGhost, 0.0, 1.0, 0.01},
		{"Trail", "texture mix", &s.TrailTextureMix, 0.0, 1.5, 0.01},
	}
}

// Clamp forces every knob into its panel range.
// Out of range values degrade to the nearest bound instead of failing.
func (s *Settings) Clamp() {
	for _, k := range s.Knobs() {
		*k.Value = misc.Clamp(*k.Value, k.Min, k.Max)
	}
	if !s.Tier.valid() {
		s.Tier = DesktopHigh
	}
	if !s.Mode.valid() {
		s.Mode = ModePointer
	}
}

func Marshal(s *Settings) ([]byte, error) {
	return json.MarshalIndent(s, "", "    ")
}

// Unmarshal parses data over the defaults, so missing keys keep their
// default value. Unknown keys are returned for reporting.
func Unmarshal(data []byte) (*Settings, []string, error) {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, nil, fmt.Errorf("%w: %w", ErrInvalid, err)
	}

	known := knownKeys(Settings{})
	var unknown []string
	for key := range raw {
		if !known[key] {
			unknown = append(unknown, key)
		}
	}

	s := Defaults()
	if err := json.Unmarshal(data, s); err != nil {
		return nil, unknown, fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	s.Clamp()

	return s, unknown, nil
}

// Load reads the settings file at path.
// A missing file is created with the defaults.
func Load(path string) (*Settings, error) {
	exists, err := misc.CheckFileExists(path)
	if err != nil {
		return nil, err
	}

	if !exists {
		misc.InfoLogger.Printf("creating default settings file at %s", path)
		s := Defaults()
		if err := Save(path, s); err != nil {
			misc.WarnLogger.Printf("failed to create default settings file: %v", err)
		}
		return s, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	s, unknown, err := Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	for _, key := range unknown {
		misc.WarnLogger.Printf("unrecognised setting key '%s' in %s", key, path)
	}

	return s, nil
}

func Save(path string, s *Settings) error {
	data, err := Marshal(s)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func knownKeys(v any) map[string]bool {
	keys := make(map[string]bool)
	t := reflect.TypeOf(v)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if jsonTag := field.Tag.Get("json"); jsonTag != "" {
			tagName := strings.Split(jsonTag, ",")[0]
			if tagName != "-" {
				keys[tagName] = true
			}
		}
	}
	return keys
}
