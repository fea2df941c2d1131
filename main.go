package main

import (
	"flag"
	"log"
	"net/http"
	_ "net/http/pprof"
	"os"

	eb "github.com/hajimehoshi/ebiten/v2"
	_ "github.com/silbinarywolf/preferdiscretegpu"

	"domfx/scene"
	"domfx/settings"
)

var (
	ScreenWidth  float64 = 1280
	ScreenHeight float64 = 800
)

var ErrorLogger *log.Logger = log.New(os.Stderr, "ERROR: ", log.Lshortfile)
var WarnLogger *log.Logger = log.New(os.Stderr, "WARN: ", log.Lshortfile)
var InfoLogger *log.Logger = log.New(os.Stdout, "INFO: ", log.Lshortfile)

var (
	FlagSettingsPath string
	FlagScenePath    string
	FlagHotReload    bool
	FlagNoFx         bool
	FlagTier         string
	FlagMode         string
	FlagPProf        bool
)

func init() {
	flag.StringVar(&FlagSettingsPath, "settings", "domfx-settings.json", "settings file, created when missing")
	flag.StringVar(&FlagScenePath, "scene", "", "scene document to rasterize, the built in page when empty")
	flag.BoolVar(&FlagHotReload, "hot", false, "enable hot reloading of shaders from ./assets")
	flag.BoolVar(&FlagNoFx, "nofx", false, "show the plain snapshot without the post effect")
	flag.StringVar(&FlagTier, "tier", "", "quality tier (mobile-low, desktop-high, desktop-ultra)")
	flag.StringVar(&FlagMode, "mode", "", "compositor mode (pointer, wave)")
	flag.BoolVar(&FlagPProf, "pprof", false, "enable pprof")
}

func loadSettings() *settings.Settings {
	s, err := settings.Load(FlagSettingsPath)
	if err != nil {
		ErrorLogger.Printf("failed to load settings, using defaults: %v", err)
		s = settings.Defaults()
	}

	if FlagTier != "" {
		tier, err := settings.ParseTier(FlagTier)
		if err != nil {
			ErrorLogger.Fatal(err)
		}
		s.Tier = tier
	}
	if FlagMode != "" {
		mode, err := settings.ParseMode(FlagMode)
		if err != nil {
			ErrorLogger.Fatal(err)
		}
		s.Mode = mode
	}

	return s
}

func loadDocument() *scene.Document {
	if FlagScenePath == "" {
		return scene.Default()
	}

	doc, err := scene.Load(FlagScenePath)
	if err != nil {
		if doc == nil {
			ErrorLogger.Fatalf("failed to load scene: %v", err)
		}
		// nothing to draw is not fatal
		WarnLogger.Print(err)
	}
	return doc
}

func main() {
	flag.Parse()

	if FlagPProf {
		DebugPutsPersist("pprof", "localhost:6060")
		go func() {
			InfoLogger.Print("initializing pprof")
			InfoLogger.Print(http.ListenAndServe("localhost:6060", nil))
		}()
	}

	InitClipboardManager()

	LoadAssets()

	app := NewApp(loadSettings(), loadDocument())

	eb.SetVsyncEnabled(true)
	eb.SetWindowSize(int(ScreenWidth), int(ScreenHeight))
	eb.SetWindowResizingMode(eb.WindowResizingModeEnabled)
	eb.SetWindowTitle("domfx")

	if err := eb.RunGame(app); err != nil {
		ErrorLogger.Fatal(err)
	}
}
