package score

import (
	"fmt"
	"time"

	"github.com/hamoci/rhythme/internal/game"
)

// Scoreboard counts scored judgements. Counters only grow during a
// session.
type Scoreboard struct {
	Perfect uint64
	Great   uint64
	Bad     uint64
	Miss    uint64
}

func (s *Scoreboard) Record(acc game.Accuracy) {
	switch acc {
	case game.Perfect:
		s.Perfect++
	case game.Great:
		s.Great++
	case game.Bad:
		s.Bad++
	case game.Miss:
		s.Miss++
	case game.None:
	}
}

func (s Scoreboard) Total() uint64 {
	return s.Perfect + s.Great + s.Bad + s.Miss
}

func (s Scoreboard) String() string {
	return fmt.Sprintf("perfect %v great %v bad %v miss %v", s.Perfect, s.Great, s.Bad, s.Miss)
}

// Combo is the current streak of non Miss judgements.
type Combo struct {
	Current uint64
	Max     uint64
}

func (c *Combo) Apply(acc game.Accuracy) {
	switch acc {
	case game.None:
		return
	case game.Miss:
		c.Current = 0
		return
	case game.Perfect, game.Great, game.Bad:
		c.Current++
		if c.Current > c.Max {
			c.Max = c.Current
		}
	}
}

// Accuracy is the running accuracy percentage.
//
// Bad judgements are left out of both sides of the ratio while the
// scoreboard still shows them.
type Accuracy struct {
	percent float64
	valid   bool
}

// Update recomputes the percentage, keeping the previous value while no
// perfect, great or miss has been recorded.
func (a *Accuracy) Update(s Scoreboard) {
	den := s.Perfect + s.Great + s.Miss
	if den == 0 {
		return
	}
	a.percent = 100 * float64(s.Perfect*100+s.Great*90) / float64(100*den)
	a.valid = true
}

func (a Accuracy) Percent() float64 {
	return a.percent
}

// Valid reports whether any judgement has fed the percentage yet.
func (a Accuracy) Valid() bool {
	return a.valid
}

const (
	IndicatorDuration = 1500 * time.Millisecond
	IndicatorShrink   = 100 * time.Millisecond
	IndicatorScale    = 1.5 // Scale at the start of the shrink in
)

// Indicator is the transient judgement graphic.
type Indicator struct {
	accuracy game.Accuracy
	age      time.Duration
}

// Show restarts the indicator. None clears it.
func (i *Indicator) Show(acc game.Accuracy) {
	i.accuracy = acc
	i.age = 0
}

func (i *Indicator) Tick(dt time.Duration) {
	if i.accuracy == game.None {
		return
	}
	i.age += dt
	if i.age >= IndicatorDuration {
		i.accuracy = game.None
	}
}

// Accuracy is the graphic to draw, None when nothing is shown.
func (i *Indicator) Accuracy() game.Accuracy {
	return i.accuracy
}

// Scale shrinks from IndicatorScale to 1 over the first IndicatorShrink.
func (i *Indicator) Scale() float64 {
	if i.age >= IndicatorShrink {
		return 1
	}
	return IndicatorScale - (IndicatorScale-1)*float64(i.age)/float64(IndicatorShrink)
}
