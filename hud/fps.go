package hud

import "time"

const fpsWindow = 500 * time.Millisecond

// FPSCounter recomputes frames per second from the frame count over a fixed window.
type FPSCounter struct {
	window time.Duration
	start  time.Time
	frames int
	fps    float64
}

func NewFPSCounter() *FPSCounter {
	return &FPSCounter{window: fpsWindow}
}

// Tick records a frame. It returns the new rate and true when a window closed.
func (c *FPSCounter) Tick(now time.Time) (float64, bool) {
	if c.start.IsZero() {
		c.start = now
		return c.fps, false
	}
	c.frames++

	elapsed := now.Sub(c.start)
	if elapsed < c.window {
		return c.fps, false
	}
	c.fps = float64(c.frames) / elapsed.Seconds()
	c.frames = 0
	c.start = now
	return c.fps, true
}

func (c *FPSCounter) FPS() float64 { return c.fps }
