package game

import "time"

// Phase is the judgement state of an active Long note. Short notes stay
// Armed until they are retired.
type Phase uint8

const (
	Armed Phase = iota
	Held
	ResolvedBad // The attack was missed; the body lives on until its end
)

func (p Phase) String() string {
	switch p {
	case Armed:
		return "Armed"
	case Held:
		return "Held"
	case ResolvedBad:
		return "ResolvedBad"
	}
	return "Phase(?)"
}

// ActiveNote is a note that has been materialized on screen but not yet
// retired.
type ActiveNote struct {
	ID uint64
	*Note

	// This is state
	Phase    Phase
	Pushed   bool
	Missed   bool
	Accuracy Accuracy      // Attack accuracy for Long notes
	PushedAt time.Duration // When the note was pushed

	Y        float64 // Screen position of the note, or the middle of a Long note body
	ScaleY   float64 // Vertical scale of a Long note body
	Progress float64 // Fraction of a Long note that has been held, 0..1
}

// Field is the set of active notes, kept per lane in spawn order.
type Field struct {
	lanes  [NumLanes][]*ActiveNote
	nextID uint64
}

func (f *Field) Add(a *ActiveNote) *ActiveNote {
	f.nextID++
	a.ID = f.nextID
	f.lanes[a.Lane] = append(f.lanes[a.Lane], a)
	return a
}

// Remove deletes a note from its lane, keeping spawn order. It reports
// whether the note was present.
func (f *Field) Remove(a *ActiveNote) bool {
	q := f.lanes[a.Lane]
	for i, n := range q {
		if n.ID != a.ID {
			continue
		}
		copy(q[i:], q[i+1:])
		q[len(q)-1] = nil
		f.lanes[a.Lane] = q[:len(q)-1]
		return true
	}
	return false
}

// Lane returns the active notes of a lane in spawn order. The slice is
// owned by the field.
func (f *Field) Lane(l Lane) []*ActiveNote {
	return f.lanes[l]
}

func (f *Field) Empty(l Lane) bool {
	return len(f.lanes[l]) == 0
}

func (f *Field) Len() int {
	total := 0
	for l := range f.lanes {
		total += len(f.lanes[l])
	}
	return total
}

// Each calls fn for every active note, lane by lane in spawn order.
func (f *Field) Each(fn func(a *ActiveNote)) {
	for l := range f.lanes {
		for _, a := range f.lanes[l] {
			fn(a)
		}
	}
}
