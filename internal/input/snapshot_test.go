package input

import (
	"testing"

	"github.com/hamoci/rhythme/internal/game"
)

func TestTrackerEdges(t *testing.T) {
	var tr Tracker

	tr.Apply(Event{Action: LaneKey, Lane: game.Second, Down: true})
	s := tr.Snapshot()
	if !s.Pressed[game.Second] || !s.Held[game.Second] || s.Released[game.Second] {
		t.Errorf("press frame %+v", s)
	}

	s = tr.Snapshot()
	if s.Pressed[game.Second] || !s.Held[game.Second] {
		t.Errorf("held frame %+v", s)
	}

	// Repeated downs do not produce another edge
	tr.Apply(Event{Action: LaneKey, Lane: game.Second, Down: true})
	if s = tr.Snapshot(); s.Pressed[game.Second] {
		t.Error("auto repeat produced a press edge")
	}

	tr.Apply(Event{Action: LaneKey, Lane: game.Second, Down: false})
	s = tr.Snapshot()
	if !s.Released[game.Second] || s.Held[game.Second] {
		t.Errorf("release frame %+v", s)
	}
}

func TestTrackerTapInsideOneFrame(t *testing.T) {
	var tr Tracker
	tr.Apply(Event{Action: LaneKey, Lane: game.Fourth, Down: true})
	tr.Apply(Event{Action: LaneKey, Lane: game.Fourth, Down: false})
	s := tr.Snapshot()
	if !s.Pressed[game.Fourth] || !s.Released[game.Fourth] || s.Held[game.Fourth] {
		t.Errorf("tap frame %+v", s)
	}
}

func TestTrackerAutoRelease(t *testing.T) {
	tr := Tracker{AutoRelease: true}
	tr.Apply(Event{Action: LaneKey, Lane: game.First, Down: true})
	tr.Apply(Event{Action: PauseKey, Down: true})

	s := tr.Snapshot()
	if !s.Pressed[game.First] || !s.Pause {
		t.Errorf("press frame %+v", s)
	}
	s = tr.Snapshot()
	if !s.Released[game.First] || s.Held[game.First] || s.Pause {
		t.Errorf("release frame %+v", s)
	}
	if s = tr.Snapshot(); s != (Snapshot{}) {
		t.Errorf("idle frame %+v", s)
	}
}

func TestBindings(t *testing.T) {
	b := DefaultBindings
	if ev, ok := b.fromRune('j'); !ok || ev.Action != LaneKey || ev.Lane != game.Third {
		t.Errorf("j mapped to %+v", ev)
	}
	if ev, ok := b.fromRune(' '); !ok || ev.Action != PauseKey {
		t.Errorf("space mapped to %+v", ev)
	}
	if _, ok := b.fromRune('x'); ok {
		t.Error("unbound rune mapped")
	}
	if ev, ok := b.fromCode(KeyK, false); !ok || ev.Lane != game.Fourth || ev.Down {
		t.Errorf("K release mapped to %+v", ev)
	}
	if ev, ok := b.fromCode(KeyEsc, true); !ok || ev.Action != QuitKey {
		t.Errorf("Esc mapped to %+v", ev)
	}
}

type fakeSource struct {
	events chan Event
}

func (f *fakeSource) Events() <-chan Event { return f.events }
func (f *fakeSource) Close() error        { close(f.events); return nil }

func TestDrain(t *testing.T) {
	src := &fakeSource{events: make(chan Event, 4)}
	src.events <- Event{Action: LaneKey, Lane: game.First, Down: true}
	src.events <- Event{Action: QuitKey, Down: true}

	var tr Tracker
	if !Drain(src, &tr) {
		t.Fatal("open source reported closed")
	}
	s := tr.Snapshot()
	if !s.Pressed[game.First] || !s.Quit {
		t.Errorf("drained %+v", s)
	}

	src.Close()
	if Drain(src, &tr) {
		t.Error("closed source reported open")
	}
}
