package game

import (
	"fmt"
	"time"
)

// Accuracy is the classification of a judgement. None is the pending
// variant: it carries no score and clears the on-screen indicator.
type Accuracy uint8

const (
	None Accuracy = iota
	Perfect
	Great
	Bad
	Miss
)

func (a Accuracy) String() string {
	switch a {
	case None:
		return "None"
	case Perfect:
		return "Perfect"
	case Great:
		return "Great"
	case Bad:
		return "Bad"
	case Miss:
		return "Miss"
	}
	return fmt.Sprintf("Accuracy(%d)", uint8(a))
}

// Hit reports whether the accuracy counts towards the combo.
func (a Accuracy) Hit() bool {
	switch a {
	case Perfect, Great, Bad:
		return true
	case None, Miss:
		return false
	}
	panic(fmt.Sprintf("game: unhandled %v", a))
}

// Windows are symmetric tolerances around a note's reference time.
type Windows struct {
	Perfect time.Duration
	Great   time.Duration
}

var DefaultWindows = Windows{
	Perfect: 41670 * time.Microsecond,
	Great:   90 * time.Millisecond,
}

// Classify returns Perfect or Great for an offset inside the windows,
// None otherwise.
func (w Windows) Classify(offset time.Duration) Accuracy {
	if offset < 0 {
		offset = -offset
	}
	switch {
	case offset <= w.Perfect:
		return Perfect
	case offset <= w.Great:
		return Great
	}
	return None
}

// JudgementKind distinguishes what produced a judgement.
type JudgementKind uint8

const (
	// Resolve is a Short note judgement or a Long note release/fallback.
	Resolve JudgementKind = iota
	// Attack is the press phase of a Long note, hit or missed. The note
	// stays active afterwards.
	Attack
	// Pulse is the periodic repeat feedback while a Long note is held.
	// It feeds the combo and the indicator but not the scoreboard.
	Pulse
)

func (k JudgementKind) String() string {
	switch k {
	case Resolve:
		return "Resolve"
	case Attack:
		return "Attack"
	case Pulse:
		return "Pulse"
	}
	return fmt.Sprintf("JudgementKind(%d)", uint8(k))
}

// Judgement is emitted once per resolution and drives despawn, the
// accuracy indicator, the combo and key sounds.
type Judgement struct {
	Lane     Lane
	Accuracy Accuracy
	Kind     JudgementKind
	At       time.Duration // Song time the judgement was made
	Note     *Note
	Retired  bool // The note was removed from the field
}

// Scored reports whether the judgement increments a scoreboard counter.
func (j Judgement) Scored() bool {
	return j.Kind != Pulse && j.Accuracy != None
}
