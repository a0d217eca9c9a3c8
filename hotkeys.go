package main

import (
	eb "github.com/hajimehoshi/ebiten/v2"
)

const (
	ShowDebugConsoleKey eb.Key = eb.KeyF1

	ReloadShaderKey eb.Key = eb.KeyF5

	ToggleAntiAliasKey eb.Key = eb.KeyA

	CopyConfigKey eb.Key = eb.KeyC

	ScreenshotKey eb.Key = eb.KeyP
)
