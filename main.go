package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/silbinarywolf/preferdiscretegpu"

	eb "github.com/hajimehoshi/ebiten/v2"
	ebi "github.com/hajimehoshi/ebiten/v2/inpututil"

	"ribbons/config"
	"ribbons/frameloop"
	"ribbons/misc"
	"ribbons/ribbon"
)

const frameTimeSamples = 120

type App struct {
	ShowDebugConsole bool

	Config config.Config
	Seed   uint64

	Loop      *frameloop.Loop
	Surface   *EbitenSurface
	Scheduler *frameloop.FrameScheduler

	FrameTimes frameloop.FrameTimes

	ctx context.Context
}

func NewApp(ctx context.Context, cfg config.Config, seed uint64) *App {
	a := new(App)

	a.ctx = ctx
	a.Config = cfg
	a.Seed = seed

	a.Surface = NewEbitenSurface()
	a.Scheduler = frameloop.NewFrameScheduler()
	a.Loop = frameloop.New(a.Surface, a.Scheduler)
	a.FrameTimes = frameloop.NewFrameTimes(frameTimeSamples)

	return a
}

func (a *App) Init() error {
	return a.Loop.Init(
		a.ctx,
		a.Config.Window.Width, a.Config.Window.Height,
		func() (*ribbon.Scene, error) {
			timer := NewProfTimer("build scene")
			defer timer.Report()

			return ribbon.Build(a.Config, newRand(a.Seed))
		},
	)
}

func (a *App) Update() error {
	ClearDebugMsgs()

	// ==========================
	// loop status
	// ==========================
	if err := a.Loop.Err(); err != nil {
		return err
	}
	if a.ctx.Err() != nil || a.Loop.State() == frameloop.StateStopped {
		return eb.Termination
	}

	// ==========================
	// shader reloading
	// ==========================
	UpdateShader()

	if ebi.IsKeyJustPressed(ReloadShaderKey) {
		ReloadShader()
	}

	// ==========================
	// hotkeys
	// ==========================
	if ebi.IsKeyJustPressed(ShowDebugConsoleKey) {
		a.ShowDebugConsole = !a.ShowDebugConsole
	}

	if ebi.IsKeyJustPressed(ToggleAntiAliasKey) {
		SetAntiAlias(!IsAntiAliasOn())
	}

	if ebi.IsKeyJustPressed(ScreenshotKey) && a.Surface.Image != nil {
		if path, err := TakeScreenshot(a.Surface.Image); err != nil {
			misc.ErrLogger.Printf("failed to take screenshot: %v", err)
		} else {
			misc.InfoLogger.Printf("saved screenshot %s", path)
		}
	}

	if ebi.IsKeyJustPressed(CopyConfigKey) {
		a.copyConfig()
	}

	// ==========================
	// DebugPrint
	// ==========================
	w, h := a.Surface.Size()
	clock := a.Loop.Clock()

	DebugPrintf("FPS", "%.2f", eb.ActualFPS())
	DebugPrintf("TPS", "%.2f", eb.ActualTPS())
	DebugPrintf("frame", "%d (avg %v, last %v)",
		a.Loop.Frames(),
		a.FrameTimes.Average().Round(time.Microsecond),
		a.FrameTimes.Last().Round(time.Microsecond),
	)
	DebugPrintf("time", "%.3fs", clock.Seconds())
	DebugPrintf("size", "%dx%d", w, h)
	DebugPrint("anti alias", IsAntiAliasOn())
	DebugPrint("shader reloads", TheShaderManager.Reloads)
	if err := TheShaderManager.LoadError; err != nil {
		DebugPrint("shader error", err)
	}

	return nil
}

func (a *App) copyConfig() {
	data, err := a.Config.Encode()
	if err != nil {
		misc.ErrLogger.Printf("failed to encode config: %v", err)
		return
	}
	if ClipboardWriteText(string(data)) {
		misc.InfoLogger.Print("copied config to clipboard")
	}
}

func (a *App) Draw(dst *eb.Image) {
	if a.Scheduler.Pump() {
		a.FrameTimes.Mark(time.Now())
	}

	if a.Surface.Image != nil {
		// the surface matches the screen, copy it pixel for pixel
		BeginBlend(eb.BlendCopy)
		BeginFilter(eb.FilterNearest)
		DrawImage(dst, a.Surface.Image, nil)
		EndFilter()
		EndBlend()
	}

	if a.ShowDebugConsole {
		DrawDebugMsgs(dst)
	}
}

func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	a.Loop.Resize(outsideWidth, outsideHeight)

	return outsideWidth, outsideHeight
}

func runApp(parent context.Context, cfg config.Config, opts Options) error {
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	if opts.PProf {
		StartPprof()
	}

	InitClipboardManager()

	if err := InitShaderManager(); err != nil {
		misc.ErrLogger.Fatalf("failed to compile ribbon shader: %v", err)
	}

	if opts.HotReload {
		if err := WatchShader(); err != nil {
			misc.WarnLogger.Printf("hot reload is disabled: %v", err)
		}
		defer CloseShaderWatcher()
	}

	seed := resolveSeed(opts.Seed)
	DebugPrintfPersist("seed", "%d", seed)

	app := NewApp(ctx, cfg, seed)
	if err := app.Init(); err != nil {
		misc.ErrLogger.Fatalf("failed to initialize: %v", err)
	}
	defer app.Loop.Stop()

	eb.SetVsyncEnabled(cfg.Window.VSync)
	eb.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	if cfg.Window.Resizable {
		eb.SetWindowResizingMode(eb.WindowResizingModeEnabled)
	} else {
		eb.SetWindowResizingMode(eb.WindowResizingModeDisabled)
	}
	eb.SetWindowTitle(cfg.Window.Title)

	if err := eb.RunGame(app); err != nil {
		return fmt.Errorf("run: %w", err)
	}

	return nil
}

func main() {
	cmd := newRootCommand()
	if err := cmd.Execute(); err != nil {
		if !errors.Is(err, context.Canceled) {
			misc.ErrLogger.Print(err)
		}
		os.Exit(1)
	}
}
