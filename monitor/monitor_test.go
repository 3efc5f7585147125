package monitor_test

import (
	"testing"
	"time"

	"github.com/danfragoso/gostats/monitor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	now float64
}

func (c *fakeClock) Now() float64 {
	return c.now
}

func (c *fakeClock) advance(ms float64) {
	c.now += ms
}

func TestNewWithoutClock(t *testing.T) {
	m, err := monitor.New(nil)
	require.ErrorIs(t, err, monitor.ErrClockUnavailable)
	assert.Nil(t, m)
}

func TestNewSeedsTimestamps(t *testing.T) {
	clock := &fakeClock{now: 1234.5}

	m, err := monitor.New(clock)
	require.NoError(t, err)

	assert.Equal(t, 1234.5, m.BeginTime())
	assert.Equal(t, 1234.5, m.WindowStart())
	assert.Zero(t, m.Frames())
	assert.Zero(t, m.FPS())
	assert.Zero(t, m.MS())
}

func TestFPSUnchangedWithinWindow(t *testing.T) {
	clock := &fakeClock{}
	m, err := monitor.New(clock)
	require.NoError(t, err)

	prev := m.Frames()
	for i := 0; i < 30; i++ {
		clock.advance(30)
		m.Recalculate()

		assert.Zero(t, m.FPS(), "call %d", i)
		assert.Greater(t, m.Frames(), prev)
		prev = m.Frames()
	}
	assert.Equal(t, 900.0, clock.now)
}

func TestWindowClose(t *testing.T) {
	clock := &fakeClock{}
	m, err := monitor.New(clock)
	require.NoError(t, err)

	for i := 0; i < 9; i++ {
		clock.advance(100)
		m.Recalculate()
	}
	require.Zero(t, m.FPS())
	require.Equal(t, 9, m.Frames())

	clock.advance(250)
	m.Recalculate()

	// 10 frames over 1150ms
	assert.Equal(t, 8.0, m.FPS())
	assert.Zero(t, m.Frames())
	assert.Equal(t, 1150.0, m.WindowStart())
	assert.Equal(t, 1150.0, m.BeginTime())
	assert.Equal(t, 250.0, m.MS())
}

func TestMSTruncates(t *testing.T) {
	clock := &fakeClock{now: 10}
	m, err := monitor.New(clock)
	require.NoError(t, err)

	clock.now = 26.999
	m.Recalculate()
	assert.Equal(t, 16.0, m.MS())

	clock.now = 27.5
	m.Recalculate()
	assert.Equal(t, 0.0, m.MS())
}

func TestZeroDurationWindow(t *testing.T) {
	// large enough that adding a second does not change the float64
	epoch := 1e20
	require.Equal(t, epoch, epoch+monitor.Window)

	clock := &fakeClock{now: epoch}
	m, err := monitor.New(clock)
	require.NoError(t, err)

	assert.NotPanics(t, func() {
		for i := 0; i < 5; i++ {
			m.Recalculate()
		}
	})
	assert.Zero(t, m.FPS())
	assert.Equal(t, 5, m.Frames())
	assert.Equal(t, epoch, m.WindowStart())

	// the next call with real elapsed time closes the window
	clock.now = epoch * 2
	m.Recalculate()
	assert.Zero(t, m.Frames())
	assert.Equal(t, clock.now, m.WindowStart())
}

func TestSixtyFrames(t *testing.T) {
	clock := &fakeClock{}
	m, err := monitor.New(clock)
	require.NoError(t, err)

	for i := 0; i < 60; i++ {
		clock.advance(16.67)
		m.Recalculate()
	}

	assert.Contains(t, []float64{59, 60}, m.FPS())
	assert.Contains(t, []float64{16, 17}, m.MS())
	assert.Zero(t, m.Frames())
}

func TestClockStepsBack(t *testing.T) {
	clock := &fakeClock{now: 500}
	m, err := monitor.New(clock)
	require.NoError(t, err)

	clock.now = 400
	m.Recalculate()
	assert.Zero(t, m.MS())
	assert.Zero(t, m.FPS())
}

func TestSetters(t *testing.T) {
	clock := &fakeClock{now: 5000}
	m, err := monitor.New(clock)
	require.NoError(t, err)

	m.SetBeginTime(4990)
	m.SetWindowStart(3000)
	m.Recalculate()

	assert.Equal(t, 10.0, m.MS())
	assert.Equal(t, 0.0, m.FPS(), "one frame over two seconds")
	assert.Equal(t, 5000.0, m.WindowStart())
}

func TestClockFunc(t *testing.T) {
	var c monitor.Clock = monitor.ClockFunc(func() float64 { return 42 })
	assert.Equal(t, 42.0, c.Now())
}

func TestSystemClockMonotonic(t *testing.T) {
	c := monitor.NewSystemClock()
	a := c.Now()
	time.Sleep(2 * time.Millisecond)
	b := c.Now()

	assert.GreaterOrEqual(t, a, 0.0)
	assert.Greater(t, b, a)
}
