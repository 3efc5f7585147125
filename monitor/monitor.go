// Package monitor samples a millisecond clock once per rendered frame and
// derives the two numbers the overlay displays: frames per second, updated
// once per one-second window, and the duration of the most recent frame.
package monitor

import (
	"errors"
	"math"
	"time"
)

// Length of the FPS window in milliseconds
const Window = 1000.0

var ErrClockUnavailable = errors.New("clock unavailable")

// Clock returns milliseconds since an arbitrary epoch. Values must not
// decrease within a session.
type Clock interface {
	Now() float64
}

// ClockFunc adapts a plain function to the Clock interface.
type ClockFunc func() float64

func (f ClockFunc) Now() float64 {
	return f()
}

// SystemClock reads the monotonic part of time.Time, relative to the moment
// it was created.
type SystemClock struct {
	start time.Time
}

func NewSystemClock() *SystemClock {
	return &SystemClock{start: time.Now()}
}

func (c *SystemClock) Now() float64 {
	return float64(time.Since(c.start)) / float64(time.Millisecond)
}

// Monitor tracks frame timing. It is not safe for concurrent use.
type Monitor struct {
	clock Clock

	beginTime   float64
	windowStart float64
	frames      int

	fps float64
	ms  float64
}

// New creates a Monitor with both timestamps set to the current clock value.
func New(clock Clock) (*Monitor, error) {
	if clock == nil {
		return nil, ErrClockUnavailable
	}

	now := clock.Now()
	return &Monitor{
		clock:       clock,
		beginTime:   now,
		windowStart: now,
	}, nil
}

// Recalculate records one frame. The ms value is refreshed on every call,
// the fps value only when a full window has elapsed.
func (m *Monitor) Recalculate() {
	now := m.clock.Now()

	m.ms = math.Floor(math.Max(0, now-m.beginTime))
	m.frames++

	if now >= m.windowStart+Window {
		// windowStart+Window can round back to windowStart for very large
		// timestamps. Leave the window open until time actually moves.
		if elapsed := now - m.windowStart; elapsed > 0 {
			m.fps = math.Floor(float64(m.frames) * 1000 / elapsed)
			m.windowStart = now
			m.frames = 0
		}
	}

	m.beginTime = now
}

// FPS is the frame rate measured over the last completed window.
func (m *Monitor) FPS() float64 {
	return m.fps
}

// MS is the whole number of milliseconds between the last two frames.
func (m *Monitor) MS() float64 {
	return m.ms
}

// Frames is the number of frames counted in the current window.
func (m *Monitor) Frames() int {
	return m.frames
}

func (m *Monitor) BeginTime() float64 {
	return m.beginTime
}

func (m *Monitor) WindowStart() float64 {
	return m.windowStart
}

// SetBeginTime overrides the timestamp of the previous frame. Hosts that
// pause their render loop use it to keep the pause out of the next ms value.
func (m *Monitor) SetBeginTime(t float64) {
	m.beginTime = t
}

// SetWindowStart overrides the start of the current FPS window.
func (m *Monitor) SetWindowStart(t float64) {
	m.windowStart = t
}
