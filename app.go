package main

import (
	"fmt"
	"math"

	eb "github.com/hajimehoshi/ebiten/v2"

	"domfx/fx"
	"domfx/pointer"
	"domfx/scene"
	"domfx/settings"
	"domfx/timeline"
	"domfx/trail"
)

// App is the frame driver. Each Update runs one complete tick, Draw
// presents it.
type App struct {
	Settings *settings.Settings
	Timeline *timeline.Timeline
	Tracker  *pointer.Tracker

	Trail     *GPUTrail
	Simulator *trail.Simulator

	Snapshot *SnapshotRenderer
	Source   *eb.Image

	HUD   *HUD
	Panel *Panel

	// set once when the effect can't run, the snapshot is shown instead
	Status string

	SurfaceW, SurfaceH int

	Sample timeline.Sample

	ShowDebugConsole bool

	wantScreenshot bool
}

func NewApp(s *settings.Settings, doc *scene.Document) *App {
	a := new(App)

	a.Settings = s
	a.Timeline = timeline.Default()
	a.Tracker = pointer.NewTracker()

	a.Trail = NewGPUTrail(1, 1)
	a.Simulator = trail.NewSimulator(s, a.Trail)

	a.Snapshot = NewSnapshotRenderer(doc)

	a.HUD = NewHUD()
	a.Panel = NewPanel(s)

	a.initEffect()

	return a
}

func (a *App) initEffect() {
	if FlagNoFx {
		a.Status = StatusDisabled
		return
	}

	if err := LoadShaders(false); err != nil {
		ErrorLogger.Printf("failed to load shaders: %v", err)
	}

	if GetShader(ShaderFx) == nil || GetShader(ShaderTrail) == nil {
		err := ShaderLoadError(ShaderFx)
		if err == nil {
			err = ShaderLoadError(ShaderTrail)
		}
		a.Status = InitFailureStatus(err)
		ErrorLogger.Print(a.Status)
	}
	a.HUD.Status = a.Status
}

func (a *App) EffectEnabled() bool {
	return a.Status == ""
}

func (a *App) surfaceRect() FRectangle {
	return FRectWH(f64(a.SurfaceW), f64(a.SurfaceH))
}

func (a *App) Update() error {
	ClearDebugMsgs()

	// ==========================
	// update global timer
	// ==========================
	UpdateGlobalTimer()

	fpsStr := fmt.Sprintf("%.2f", eb.ActualFPS())
	tpsStr := fmt.Sprintf("%.2f", eb.ActualTPS())

	DebugPrint("FPS", fpsStr)
	DebugPrint("TPS", tpsStr)

	// ==========================
	// sample pass timeline
	// ==========================
	a.Sample = a.Timeline.Sample(GlobalTimerSeconds())
	a.HUD.Update(a.Sample, a.Timeline.Len())

	DebugPrint("pass", a.Sample.Label)
	DebugPrintf("phase", "%.3f", a.Sample.Eased)

	// ==========================
	// update pointer state
	// ==========================
	surface := a.surfaceRect()

	UpdateInput(surface)

	a.Panel.Layout(surface.Dx(), surface.Dy())
	a.Panel.Update()

	rect := PointerRect(surface)
	for _, ev := range FilterCapturedEvents(TheInputManager.Events) {
		a.Tracker.Handle(rect, ev)
	}
	a.Tracker.Tick()

	p := a.Tracker.State
	DebugPrintf("pointer", "%.3f %.3f", p.Pos.X, p.Pos.Y)
	DebugPrintf("strength", "%.3f", p.Strength)

	// ==========================
	// resize render targets
	// ==========================
	a.resize()

	// ==========================
	// rasterize source snapshot
	// ==========================
	if a.Source != nil {
		a.Snapshot.Render(a.Source)
	}

	// ==========================
	// advance trail field
	// ==========================
	if a.EffectEnabled() {
		a.Simulator.Step(p)
		DebugPrint("stamps", a.Simulator.Stamps)
		DebugPrint("ghosts", a.Simulator.History.Len())
	}

	a.updateHotkeys()

	return nil
}

// resize reallocates the snapshot and the trail when the surface size
// changed. The trail comes back blank.
func (a *App) resize() {
	w, h := max(a.SurfaceW, 1), max(a.SurfaceH, 1)

	if a.Source == nil || a.Source.Bounds().Dx() != w || a.Source.Bounds().Dy() != h {
		if a.Source != nil {
			a.Source.Deallocate()
		}
		a.Source = eb.NewImage(w, h)
	}

	if a.Simulator.Resize(w, h) {
		InfoLogger.Printf("surface resized to %dx%d", w, h)
	}
}

func (a *App) updateHotkeys() {
	if IsKeyJustPressed(ShowDebugConsoleKey) {
		a.ShowDebugConsole = !a.ShowDebugConsole
	}

	if FlagHotReload && IsKeyJustPressed(ReloadShadersKey) {
		InfoLogger.Print("reloading shaders")
		if err := LoadShaders(true); err != nil {
			ErrorLogger.Printf("failed to reload shaders: %v", err)
		}
		// a dev reload may fix what failed at startup
		if !FlagNoFx && GetShader(ShaderFx) != nil && GetShader(ShaderTrail) != nil {
			a.Status = ""
			a.HUD.Status = ""
		}
	}

	if IsKeyJustPressed(SaveSettingsKey) {
		if err := settings.Save(FlagSettingsPath, a.Settings); err != nil {
			ErrorLogger.Printf("failed to save settings: %v", err)
		} else {
			InfoLogger.Printf("saved settings to %s", FlagSettingsPath)
		}
	}

	if IsKeyJustPressed(CopySettingsKey) {
		data, err := settings.Marshal(a.Settings)
		if err != nil {
			ErrorLogger.Printf("failed to marshal settings: %v", err)
		} else if ClipboardWriteText(string(data)) {
			InfoLogger.Print("copied settings to clipboard")
		}
	}

	if IsKeyJustPressed(CycleTierKey) {
		a.Settings.Tier = (a.Settings.Tier + 1) % (settings.DesktopUltra + 1)
		InfoLogger.Printf("tier: %v", a.Settings.Tier)
	}

	if IsKeyJustPressed(ToggleModeKey) {
		ToggleMode(a.Settings)
		InfoLogger.Printf("mode: %v", a.Settings.Mode)
	}

	if IsKeyJustPressed(ResetTrailKey) {
		w, h := a.Trail.Size()
		a.Trail.Reset(w, h)
		a.Simulator.History.Clear()
	}

	if IsKeyJustPressed(ScreenshotKey) {
		a.wantScreenshot = true
	}

	DebugPrint("tier", a.Settings.Tier)
	DebugPrint("mode", a.Settings.Mode)
}

func (a *App) Draw(dst *eb.Image) {
	if a.EffectEnabled() && a.Source != nil {
		a.drawEffect(dst)
	} else {
		DrawFallback(dst, a.Source, a.Status)
	}

	if a.wantScreenshot {
		a.wantScreenshot = false
		if name, err := TakeScreenshot(dst, "./"); err != nil {
			ErrorLogger.Printf("failed to take screenshot: %v", err)
		} else {
			InfoLogger.Printf("saved screenshot %s", name)
		}
	}

	a.HUD.Draw(dst)
	a.Panel.Draw(dst)

	if a.ShowDebugConsole {
		DrawDebugMsgs(dst)
	}
}

func (a *App) drawEffect(dst *eb.Image) {
	w, h := a.Source.Bounds().Dx(), a.Source.Bounds().Dy()

	u := fx.Pack(w, h, GlobalTimerSeconds(), a.Sample, a.Settings, a.Tracker.State)

	BeginBlend(eb.BlendCopy)
	defer EndBlend()

	op := &DrawRectShaderOptions{}
	op.Uniforms = u.Map()
	op.Images[0] = a.Source
	op.Images[1] = a.Trail.Stable
	DrawRectShader(dst, w, h, GetShader(ShaderFx), op)
}

func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	ScreenWidth = f64(outsideWidth)
	ScreenHeight = f64(outsideHeight)

	budget := a.Settings.Tier.Budget()

	scale := 1.0
	if m := eb.Monitor(); m != nil {
		scale = m.DeviceScaleFactor()
	}
	scale = max(1, min(scale, budget.MaxDeviceScale))

	divisor := f64(max(1, budget.RenderDivisor))

	a.SurfaceW = max(1, int(math.Floor(ScreenWidth*scale/divisor)))
	a.SurfaceH = max(1, int(math.Floor(ScreenHeight*scale/divisor)))

	return a.SurfaceW, a.SurfaceH
}
