// Package frameloop drives the per frame redraw of a ribbon scene.
//
// A Loop is single threaded: the host calls back into it from one
// goroutine, one frame at a time. Resize must be called from that same
// goroutine, between frames.
package frameloop

import (
	"context"
	"errors"
	"fmt"
	"time"

	"ribbons/ribbon"
)

var (
	ErrNoSurface       = errors.New("frameloop: no render surface")
	ErrNoScheduler     = errors.New("frameloop: no frame scheduler")
	ErrAlreadyRunning  = errors.New("frameloop: already initialized")
	ErrStopped         = errors.New("frameloop: stopped")
	ErrInvalidViewport = errors.New("frameloop: viewport size must be positive")
)

type State int

const (
	StateUninitialized State = iota
	StateRunning
	StateStopped
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateRunning:
		return "running"
	case StateStopped:
		return "stopped"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Surface is the render target owned by the host.
type Surface interface {
	SetSize(width, height int)
	// Render draws every ribbon of scene at clock time.
	Render(scene *ribbon.Scene, clock *Clock) error
}

// Scheduler runs a callback before the next repaint, once per request.
type Scheduler interface {
	RequestFrame(fn func(now time.Duration))
}

type Loop struct {
	state State

	surface   Surface
	scheduler Scheduler

	scene  *ribbon.Scene
	camera Camera
	clock  Clock

	ctx    context.Context
	frames int
	err    error
}

func New(surface Surface, scheduler Scheduler) *Loop {
	return &Loop{
		surface:   surface,
		scheduler: scheduler,
	}
}

// Init sizes the surface and camera, builds the scene and schedules the first frame.
//
// Cancelling ctx stops the loop at its next frame. A nil ctx never cancels.
func (l *Loop) Init(
	ctx context.Context,
	width, height int,
	build func() (*ribbon.Scene, error),
) error {
	switch l.state {
	case StateRunning:
		return ErrAlreadyRunning
	case StateStopped:
		return ErrStopped
	}
	if l.surface == nil {
		return ErrNoSurface
	}
	if l.scheduler == nil {
		return ErrNoScheduler
	}
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w, got %dx%d", ErrInvalidViewport, width, height)
	}

	l.updateSize(width, height)

	scene, err := build()
	if err != nil {
		return fmt.Errorf("build scene: %w", err)
	}

	if ctx == nil {
		ctx = context.Background()
	}
	l.ctx = ctx
	l.scene = scene
	l.state = StateRunning

	l.scheduler.RequestFrame(l.frame)

	return nil
}

func (l *Loop) frame(now time.Duration) {
	if l.state != StateRunning {
		return
	}
	if err := l.ctx.Err(); err != nil {
		l.stop(nil)
		return
	}

	l.clock.Set(now)

	if err := l.surface.Render(l.scene, &l.clock); err != nil {
		l.stop(fmt.Errorf("render frame %d: %w", l.frames, err))
		return
	}
	l.frames++

	// re-arm only after the frame completed
	if err := l.ctx.Err(); err != nil {
		l.stop(nil)
		return
	}
	l.scheduler.RequestFrame(l.frame)
}

// Resize syncs the surface and camera with a new viewport size.
// It reports whether anything changed. Calls outside the running state
// and non positive sizes are ignored.
func (l *Loop) Resize(width, height int) bool {
	if l.state != StateRunning {
		return false
	}
	if width <= 0 || height <= 0 {
		return false
	}
	if width == l.camera.Width && height == l.camera.Height {
		return false
	}

	l.updateSize(width, height)
	return true
}

func (l *Loop) updateSize(width, height int) {
	l.surface.SetSize(width, height)
	l.camera.SetSize(width, height)
}

// Stop tears the loop down. Pending frames become no-ops.
func (l *Loop) Stop() {
	l.stop(nil)
}

func (l *Loop) stop(err error) {
	if l.state == StateStopped {
		return
	}
	l.state = StateStopped
	if err != nil && l.err == nil {
		l.err = err
	}
}

func (l *Loop) State() State {
	return l.state
}

// Err is the failure that stopped the loop, if any.
func (l *Loop) Err() error {
	return l.err
}

func (l *Loop) Scene() *ribbon.Scene {
	return l.scene
}

func (l *Loop) Camera() Camera {
	return l.camera
}

func (l *Loop) Clock() *Clock {
	return &l.clock
}

// Frames is the number of frames drawn so far.
func (l *Loop) Frames() int {
	return l.frames
}
