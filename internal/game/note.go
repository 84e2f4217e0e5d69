package game

import (
	"fmt"
	"time"
)

// Lane is one of the four parallel tracks, each bound to one key.
type Lane uint8

const (
	First Lane = iota
	Second
	Third
	Fourth
)

// NumLanes is the number of lanes in a chart.
const NumLanes = 4

var laneNames = [NumLanes]string{"First", "Second", "Third", "Fourth"}

func (l Lane) String() string {
	if !l.Valid() {
		return fmt.Sprintf("Lane(%d)", uint8(l))
	}
	return laneNames[l]
}

func (l Lane) Valid() bool {
	return l < NumLanes
}

// Kind is the type of a note: a single tap or a press-and-hold.
type Kind uint8

const (
	Short Kind = iota
	Long
)

func (k Kind) String() string {
	switch k {
	case Short:
		return "Short"
	case Long:
		return "Long"
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

type Note struct {
	Lane  Lane
	Kind  Kind
	Start time.Duration // The time the note should be hit
	End   time.Duration // The time the note should be released, equal to Start for Short notes
	Speed float64       // Approach speed multiplier

	Index int // Position in the source file, used as a sort tie breaker
}

func NewNote(lane Lane, kind Kind, start, end time.Duration) *Note {
	if kind == Short {
		end = start
	}
	return &Note{
		Lane:  lane,
		Kind:  kind,
		Start: start,
		End:   end,
		Speed: 1,
	}
}

// Duration is the span between the note's start and end.
func (n *Note) Duration() time.Duration {
	return n.End - n.Start
}

func (n *Note) String() string {
	if n.Kind == Long {
		return fmt.Sprintf("%v %v %v-%v", n.Lane, n.Kind, n.Start, n.End)
	}
	return fmt.Sprintf("%v %v %v", n.Lane, n.Kind, n.Start)
}
