package main

import (
	eb "github.com/hajimehoshi/ebiten/v2"
)

const (
	ShowDebugConsoleKey eb.Key = eb.KeyF1
	ShowPanelKey        eb.Key = eb.KeyF2
	CycleTierKey        eb.Key = eb.KeyF3
	ToggleModeKey       eb.Key = eb.KeyF4
	ReloadShadersKey    eb.Key = eb.KeyF5
	CopySettingsKey     eb.Key = eb.KeyF6
	ResetTrailKey       eb.Key = eb.KeyF7
	SaveSettingsKey     eb.Key = eb.KeyF10
	ScreenshotKey       eb.Key = eb.KeyF12

	PanelUpKey   = eb.KeyW
	PanelDownKey = eb.KeyS
)
