package session

import (
	"strings"
	"testing"
	"time"

	"github.com/hamoci/rhythme/internal/clock"
	"github.com/hamoci/rhythme/internal/game"
	"github.com/hamoci/rhythme/internal/input"
	"github.com/hamoci/rhythme/internal/parser"
	"github.com/hamoci/rhythme/internal/score"
	"github.com/hamoci/rhythme/internal/testdata"
)

const frame = 10 * time.Millisecond

func ms(n int) time.Duration {
	return time.Duration(n) * time.Millisecond
}

func load(t *testing.T, data string) *game.Chart {
	psr := &parser.DefaultParser{}
	chart, err := psr.ParseReader(strings.NewReader(data))
	if nil != err {
		t.Fatal("unable to parse chart", err)
	}
	return chart
}

// player drives a session frame by frame with scripted key edges keyed
// by song time.
type player struct {
	*Session
	tracker input.Tracker
	frames  []Frame
}

func start(t *testing.T, data string) *player {
	opts := DefaultOptions()
	opts.Countdown = 0
	p := &player{Session: New(load(t, data), opts)}
	if f := p.Tick(0, input.Snapshot{}); len(f.Transitions) != 1 || f.Transitions[0] != clock.Started {
		t.Fatalf("session did not start: %v", f.Transitions)
	}
	return p
}

func (p *player) key(lane game.Lane, down bool) {
	p.tracker.Apply(input.Event{Action: input.LaneKey, Lane: lane, Down: down})
}

func (p *player) pause() {
	p.tracker.Apply(input.Event{Action: input.PauseKey, Down: true})
}

// until ticks until the song time reaches at. Before each frame hook is
// called with the song time that frame will be judged at.
func (p *player) until(at time.Duration, hook func(next time.Duration)) {
	for p.Elapsed() < at {
		next := p.Elapsed() + frame
		if p.State() == clock.Paused {
			next = p.Elapsed()
		}
		if hook != nil {
			hook(next)
		}
		p.frames = append(p.frames, p.Tick(frame, p.tracker.Snapshot()))
	}
}

func TestShortGreat(t *testing.T) {
	p := start(t, "0,Short,1000\n")
	p.until(ms(1200), func(next time.Duration) {
		switch next {
		case ms(950):
			p.key(game.First, true)
		case ms(960):
			p.key(game.First, false)
		}
	})

	board := p.Scoreboard()
	if board != (score.Scoreboard{Great: 1}) {
		t.Errorf("scoreboard %v", board)
	}
	if p.Combo().Current != 1 {
		t.Errorf("combo %v", p.Combo().Current)
	}
	if !p.Finished() {
		t.Error("note not despawned")
	}
	if acc, _ := p.Indicator(); acc != game.Great {
		t.Errorf("indicator %v", acc)
	}
	if p.Accuracy().Percent() != 90 {
		t.Errorf("accuracy %v", p.Accuracy().Percent())
	}
}

func TestShortMiss(t *testing.T) {
	p := start(t, "0,Short,1000\n")
	p.until(ms(1090), nil)
	if p.Scoreboard().Miss != 0 || p.Finished() {
		t.Fatal("missed inside the window")
	}
	p.until(ms(1100), nil)

	if p.Scoreboard() != (score.Scoreboard{Miss: 1}) {
		t.Errorf("scoreboard %v", p.Scoreboard())
	}
	if p.Combo().Current != 0 || !p.Finished() {
		t.Errorf("combo %v finished %v", p.Combo().Current, p.Finished())
	}
}

func TestLongPerfect(t *testing.T) {
	p := start(t, "1,Long,2000,2500\n")
	p.until(ms(2700), func(next time.Duration) {
		switch next {
		case ms(2000):
			p.key(game.Second, true)
		case ms(2500):
			p.key(game.Second, false)
		}
	})

	if p.Scoreboard() != (score.Scoreboard{Perfect: 2}) {
		t.Errorf("scoreboard %v", p.Scoreboard())
	}
	if !p.Finished() {
		t.Error("note not despawned")
	}
	// Attack, one pulse while held and the release
	if p.Combo().Current != 3 {
		t.Errorf("combo %v", p.Combo().Current)
	}
}

func TestComboResetsOnMiss(t *testing.T) {
	p := start(t, "0,Short,500\n0,Short,1000\n0,Short,1500\n0,Short,2000\n")
	p.until(ms(2200), func(next time.Duration) {
		switch next {
		case ms(500), ms(1500), ms(2000):
			p.key(game.First, true)
		case ms(510), ms(1510), ms(2010):
			p.key(game.First, false)
		}
	})

	var combos []uint64
	var c score.Combo
	for _, f := range p.frames {
		for _, j := range f.Judgements {
			c.Apply(j.Accuracy)
			combos = append(combos, c.Current)
		}
	}
	expected := []uint64{1, 0, 1, 2}
	if len(combos) != len(expected) {
		t.Fatalf("combos %v, expected %v", combos, expected)
	}
	for i := range expected {
		if combos[i] != expected[i] {
			t.Errorf("combos %v, expected %v", combos, expected)
			break
		}
	}
	if p.Combo().Current != 2 || p.Combo().Max != 2 {
		t.Errorf("combo %+v", p.Combo())
	}
}

func TestKeySoundsAndBacklight(t *testing.T) {
	p := start(t, "2,Short,1000\n3,Short,1000\n")
	p.until(ms(1200), func(next time.Duration) {
		switch next {
		case ms(1000):
			p.key(game.Third, true)
		case ms(1100):
			p.key(game.Third, false)
		}
	})

	var sounds []game.Lane
	lit := 0
	for _, f := range p.frames {
		sounds = append(sounds, f.KeySounds...)
		if f.Backlight[game.Third] {
			lit++
		}
		if f.Backlight[game.Fourth] {
			t.Error("backlight on an untouched lane")
		}
	}
	if len(sounds) != 1 || sounds[0] != game.Third {
		t.Errorf("key sounds %v, expected only the hit lane", sounds)
	}
	if lit != 10 {
		t.Errorf("backlight lit for %d frames, expected 10", lit)
	}
}

func TestCountdownHoldsNotes(t *testing.T) {
	opts := DefaultOptions()
	opts.Countdown = 100 * time.Millisecond
	s := New(load(t, "0,Short,0\n"), opts)

	for i := 0; i < 9; i++ {
		f := s.Tick(frame, input.Snapshot{})
		if len(f.Spawned) != 0 || len(f.Judgements) != 0 {
			t.Fatalf("tick %d: activity while holding", i)
		}
	}
	f := s.Tick(frame, input.Snapshot{})
	if len(f.Transitions) != 1 || f.Transitions[0] != clock.Started {
		t.Fatalf("expected the clock to start, got %v", f.Transitions)
	}
	f = s.Tick(frame, input.Snapshot{})
	if len(f.Spawned) != 1 {
		t.Errorf("note not spawned once running")
	}
}

func TestPauseFreezesJudgement(t *testing.T) {
	p := start(t, "0,Short,1000\n")
	p.until(ms(900), nil)

	p.pause()
	p.frames = append(p.frames, p.Tick(frame, p.tracker.Snapshot()))
	if p.State() != clock.Paused {
		t.Fatal("not paused")
	}
	for i := 0; i < 100; i++ {
		f := p.Tick(frame, p.tracker.Snapshot())
		if len(f.Judgements) != 0 || f.Elapsed != ms(900) {
			t.Fatalf("session moved while paused: %v", f.Elapsed)
		}
	}
	p.pause()
	f := p.Tick(frame, p.tracker.Snapshot())
	if len(f.Transitions) != 1 || f.Transitions[0] != clock.Resumed {
		t.Fatalf("expected a resume, got %v", f.Transitions)
	}

	p.until(ms(1000), func(next time.Duration) {
		if next == ms(1000) {
			p.key(game.First, true)
		}
	})
	if p.Scoreboard() != (score.Scoreboard{Perfect: 1}) {
		t.Errorf("scoreboard %v", p.Scoreboard())
	}
}

func TestFullChart(t *testing.T) {
	p := start(t, testdata.Data)
	p.until(ms(5000), nil)

	if !p.Finished() {
		t.Fatal("chart not finished")
	}
	// Six short misses, and two misses per missed Long note
	board := p.Scoreboard()
	if board.Miss != 10 || board.Total() != 10 {
		t.Errorf("scoreboard %v", board)
	}
	if p.Accuracy().Percent() != 0 {
		t.Errorf("accuracy %v", p.Accuracy().Percent())
	}
}

func TestSessionLeavesChartIntact(t *testing.T) {
	chart := load(t, testdata.Data)
	opts := DefaultOptions()
	opts.Countdown = 0
	s := New(chart, opts)
	for i := 0; i < 600; i++ {
		s.Tick(frame, input.Snapshot{})
	}
	if chart.Remaining() != 8 {
		t.Errorf("session drained the source chart: %d left", chart.Remaining())
	}
}
