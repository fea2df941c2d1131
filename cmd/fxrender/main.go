// fxrender runs the effect on the CPU over a still image while a scripted
// pointer circles the middle of it, and writes every frame as a png.
//
// usage :
//
//	fxrender -src page.png -out frames -frames 240
package main

import (
	"flag"
	"fmt"
	"image"
	_ "image/jpeg"
	"image/png"
	"math"
	"os"
	"path/filepath"

	"github.com/schollz/progressbar/v3"
	"golang.org/x/image/draw"

	"domfx/fx"
	"domfx/pointer"
	"domfx/settings"
	"domfx/timeline"
	"domfx/trail"
)

var (
	FlagSrc          string
	FlagOut          string
	FlagFrames       int
	FlagWidth        int
	FlagHeight       int
	FlagFps          float64
	FlagSettingsPath string
	FlagMode         string
)

func init() {
	flag.StringVar(&FlagSrc, "src", "", "source image (png or jpeg)")
	flag.StringVar(&FlagOut, "out", "frames", "output folder")
	flag.IntVar(&FlagFrames, "frames", 120, "number of frames")
	flag.IntVar(&FlagWidth, "width", 640, "output width, the source is scaled to fit")
	flag.IntVar(&FlagHeight, "height", 0, "output height, keeps the source aspect when 0")
	flag.Float64Var(&FlagFps, "fps", 60, "frames per second of the simulated clock")
	flag.StringVar(&FlagSettingsPath, "settings", "", "settings file, defaults when empty")
	flag.StringVar(&FlagMode, "mode", "", "compositor mode (pointer, wave)")
}

func loadSource(path string, w, h int) (image.Image, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}

	b := img.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 {
		return nil, fmt.Errorf("%s is empty", path)
	}
	if h <= 0 {
		h = max(1, int(math.Round(float64(w)*float64(b.Dy())/float64(b.Dx()))))
	}

	scaled := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(scaled, scaled.Bounds(), img, b, draw.Src, nil)
	return scaled, nil
}

func loadSettings() (*settings.Settings, error) {
	s := settings.Defaults()
	if FlagSettingsPath != "" {
		data, err := os.ReadFile(FlagSettingsPath)
		if err != nil {
			return nil, err
		}
		s, _, err = settings.Unmarshal(data)
		if err != nil {
			return nil, err
		}
	}
	if FlagMode != "" {
		mode, err := settings.ParseMode(FlagMode)
		if err != nil {
			return nil, err
		}
		s.Mode = mode
	}
	return s, nil
}

// pointerEvents returns the events of frame i along a circle around the
// center. The button is held through the middle third.
func pointerEvents(i, frames int, w, h float64) []pointer.Event {
	angle := 2 * math.Pi * float64(i) / float64(max(1, frames)) * 1.5
	x := w * (0.5 + 0.3*math.Cos(angle))
	y := h * (0.5 + 0.3*math.Sin(angle))

	var events []pointer.Event
	switch i {
	case 0:
		events = append(events, pointer.Event{Kind: pointer.Enter, X: x, Y: y})
	case frames / 3:
		events = append(events, pointer.Event{Kind: pointer.Down, X: x, Y: y})
	case frames * 2 / 3:
		events = append(events, pointer.Event{Kind: pointer.Up, X: x, Y: y})
	}
	return append(events, pointer.Event{Kind: pointer.Move, X: x, Y: y})
}

func run() error {
	if FlagSrc == "" {
		return fmt.Errorf("-src is required")
	}
	if FlagFrames <= 0 || FlagWidth <= 0 || FlagFps <= 0 {
		return fmt.Errorf("frames, width and fps must be positive")
	}

	cfg, err := loadSettings()
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}

	img, err := loadSource(FlagSrc, FlagWidth, FlagHeight)
	if err != nil {
		return err
	}
	src := fx.NewImageSource(img)
	w, h := src.Size()

	if err := os.MkdirAll(FlagOut, 0755); err != nil {
		return err
	}

	tl := timeline.Default()
	tracker := pointer.NewTracker()
	field := trail.NewField(w, h)
	sim := trail.NewSimulator(cfg, field)

	rect := pointer.Rect{W: float64(w), H: float64(h)}
	dst := image.NewRGBA(image.Rect(0, 0, w, h))

	bar := progressbar.Default(int64(FlagFrames), "rendering")
	defer bar.Close()

	for i := range FlagFrames {
		now := float64(i) / FlagFps

		sample := tl.Sample(now)
		for _, ev := range pointerEvents(i, FlagFrames, float64(w), float64(h)) {
			tracker.Handle(rect, ev)
		}
		tracker.Tick()
		sim.Step(tracker.State)

		un := fx.Pack(w, h, now, sample, cfg, tracker.State)
		fx.Render(dst, src, field, &un)

		if err := writePNG(filepath.Join(FlagOut, fmt.Sprintf("frame-%04d.png", i)), dst); err != nil {
			return err
		}
		bar.Add(1)
	}

	return nil
}

func writePNG(path string, img image.Image) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(file, img); err != nil {
		file.Close()
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}
	return file.Close()
}

func main() {
	flag.Parse()

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fxrender: %v\n", err)
		os.Exit(1)
	}
}
