package clock

import (
	"fmt"
	"time"
)

// DefaultCountdown is how long the clock holds before play starts.
const DefaultCountdown = 3 * time.Second

type State uint8

const (
	Holding State = iota
	Running
	Paused
)

func (s State) String() string {
	switch s {
	case Holding:
		return "Holding"
	case Running:
		return "Running"
	case Paused:
		return "Paused"
	}
	return fmt.Sprintf("State(%d)", uint8(s))
}

// Transition is emitted exactly once on each state edge.
type Transition uint8

const (
	Started Transition = iota + 1
	PausedEdge
	Resumed
)

func (t Transition) String() string {
	switch t {
	case Started:
		return "Started"
	case PausedEdge:
		return "Paused"
	case Resumed:
		return "Resumed"
	}
	return fmt.Sprintf("Transition(%d)", uint8(t))
}

// Clock is the song clock. It holds for a countdown, then accumulates
// elapsed time on every tick except while paused.
type Clock struct {
	state     State
	countdown time.Duration // Remaining hold time
	elapsed   time.Duration
	advanced  bool
}

func New(countdown time.Duration) *Clock {
	return &Clock{state: Holding, countdown: countdown}
}

// Tick advances the clock by one frame. toggle is the pause key edge for
// this frame. The returned transitions happened during this tick.
func (c *Clock) Tick(dt time.Duration, toggle bool) []Transition {
	c.advanced = false
	if dt < 0 {
		dt = 0
	}

	switch c.state {
	case Holding:
		c.countdown -= dt
		if c.countdown <= 0 {
			// Play begins on the next tick
			c.countdown = 0
			c.state = Running
			return []Transition{Started}
		}
	case Running:
		if toggle {
			c.state = Paused
			return []Transition{PausedEdge}
		}
		c.elapsed += dt
		c.advanced = true
	case Paused:
		if toggle {
			c.state = Running
			return []Transition{Resumed}
		}
	}
	return nil
}

func (c *Clock) State() State {
	return c.state
}

// Elapsed is the song time.
func (c *Clock) Elapsed() time.Duration {
	return c.elapsed
}

// Countdown is the hold time left before play starts.
func (c *Clock) Countdown() time.Duration {
	return c.countdown
}

// Advanced reports whether the last tick moved the song time.
func (c *Clock) Advanced() bool {
	return c.advanced
}
