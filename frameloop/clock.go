package frameloop

import (
	"time"

	"github.com/go-gl/mathgl/mgl32"
)

// Clock is the time every ribbon reads during a frame.
// It is written once per frame by the Loop and never goes backwards.
type Clock struct {
	now   time.Duration
	delta time.Duration
}

// Set moves the clock to t. Earlier values are ignored.
func (c *Clock) Set(t time.Duration) {
	if t < c.now {
		c.delta = 0
		return
	}
	c.delta = t - c.now
	c.now = t
}

func (c *Clock) Now() time.Duration {
	return c.now
}

// Seconds is the time base the vertex stage expects.
func (c *Clock) Seconds() float64 {
	return c.now.Seconds()
}

// Delta is how far the last Set moved the clock.
func (c *Clock) Delta() time.Duration {
	return c.delta
}

// Camera tracks the viewport. The vertex stage works in clip space
// and does not read it.
type Camera struct {
	Width, Height int
}

func (c *Camera) SetSize(width, height int) {
	c.Width = width
	c.Height = height
}

func (c *Camera) Aspect() float64 {
	if c.Height == 0 {
		return 1
	}
	return float64(c.Width) / float64(c.Height)
}

// ClipToPixel maps a clip space position to surface pixels.
// Clip y points up, pixel y points down: (-1, 1) is the top left corner
// and (1, -1) is (width, height).
func ClipToPixel(p mgl32.Vec2, width, height int) (x, y float32) {
	x = (p.X() + 1) * 0.5 * float32(width)
	y = (1 - p.Y()) * 0.5 * float32(height)
	return x, y
}
