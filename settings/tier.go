package settings

import (
	"fmt"
	"strings"
)

// Tier picks a rendering budget for the device.
type Tier int

const (
	MobileLow Tier = iota
	DesktopHigh
	DesktopUltra
)

type Budget struct {
	// device pixel ratio is clamped to [1, MaxDeviceScale]
	MaxDeviceScale float64
	// surface pixels are divided by this after scaling
	RenderDivisor int
}

func (t Tier) Budget() Budget {
	switch t {
	case MobileLow:
		return Budget{MaxDeviceScale: 1, RenderDivisor: 2}
	default:
		return Budget{MaxDeviceScale: 2, RenderDivisor: 1}
	}
}

func (t Tier) valid() bool {
	return MobileLow <= t && t <= DesktopUltra
}

func (t Tier) String() string {
	switch t {
	case MobileLow:
		return "mobile-low"
	case DesktopHigh:
		return "desktop-high"
	case DesktopUltra:
		return "desktop-ultra"
	}
	return fmt.Sprintf("Tier(%d)", int(t))
}

func ParseTier(str string) (Tier, error) {
	for t := MobileLow; t <= DesktopUltra; t++ {
		if strings.EqualFold(str, t.String()) {
			return t, nil
		}
	}
	return DesktopHigh, fmt.Errorf("%w: unknown tier %q", ErrInvalid, str)
}

func (t Tier) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *Tier) UnmarshalText(text []byte) error {
	parsed, err := ParseTier(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Mode selects the compositor variant.
type Mode int

const (
	// pointer driven trail and tip influence
	ModePointer Mode = iota
	// animated wave displacement without pointer influence
	ModeWave
)

func (m Mode) valid() bool {
	return m == ModePointer || m == ModeWave
}

func (m Mode) String() string {
	switch m {
	case ModePointer:
		return "pointer"
	case ModeWave:
		return "wave"
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

func ParseMode(str string) (Mode, error) {
	switch strings.ToLower(str) {
	case "pointer":
		return ModePointer, nil
	case "wave":
		return ModeWave, nil
	}
	return ModePointer, fmt.Errorf("%w: unknown mode %q", ErrInvalid, str)
}

func (m Mode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

func (m *Mode) UnmarshalText(text []byte) error {
	parsed, err := ParseMode(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
