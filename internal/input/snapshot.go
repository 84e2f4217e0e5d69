package input

import "github.com/hamoci/rhythme/internal/game"

// Snapshot is the key state of one tick. It is computed once per tick so
// judgement and backlight see the same edges.
type Snapshot struct {
	Pressed  [game.NumLanes]bool
	Held     [game.NumLanes]bool
	Released [game.NumLanes]bool
	Pause    bool // Pause toggle edge
	Quit     bool
}

// Action is what a key does.
type Action uint8

const (
	LaneKey Action = iota
	PauseKey
	QuitKey
)

// Event is a raw key edge from a device.
type Event struct {
	Action Action
	Lane   game.Lane
	Down   bool
}

// Tracker folds raw key events into per tick snapshots.
type Tracker struct {
	// AutoRelease releases every held lane one tick after it was pressed,
	// for devices that never report key releases.
	AutoRelease bool

	down    [game.NumLanes]bool
	pending Snapshot
}

func (t *Tracker) Apply(ev Event) {
	switch ev.Action {
	case PauseKey:
		if ev.Down {
			t.pending.Pause = true
		}
	case QuitKey:
		if ev.Down {
			t.pending.Quit = true
		}
	case LaneKey:
		if !ev.Lane.Valid() {
			return
		}
		if ev.Down && !t.down[ev.Lane] {
			t.pending.Pressed[ev.Lane] = true
		} else if !ev.Down && t.down[ev.Lane] {
			t.pending.Released[ev.Lane] = true
		}
		t.down[ev.Lane] = ev.Down
	}
}

// Snapshot returns the edges gathered since the last call together with
// the current held state, and clears the edges.
func (t *Tracker) Snapshot() Snapshot {
	s := t.pending
	s.Held = t.down
	t.pending = Snapshot{}
	if t.AutoRelease {
		for l := range t.down {
			if t.down[l] {
				t.down[l] = false
				t.pending.Released[l] = true
			}
		}
	}
	return s
}
