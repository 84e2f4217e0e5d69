package judge

import (
	"time"

	"github.com/hamoci/rhythme/internal/game"
	"github.com/hamoci/rhythme/internal/input"
	"go.uber.org/zap"
)

// Engine matches key edges against active notes and retires them.
// Lanes are judged independently; within a lane notes are scanned in
// spawn order and a key edge is consumed by at most one note.
type Engine struct {
	Windows game.Windows
	timers  [game.NumLanes]HoldTimer
	log     *zap.Logger
}

func New(w game.Windows, holdPeriod time.Duration, log *zap.Logger) *Engine {
	if log == nil {
		log = zap.NewNop()
	}
	e := &Engine{Windows: w, log: log}
	for i := range e.timers {
		e.timers[i].Period = holdPeriod
	}
	return e
}

// Timer exposes a lane's hold timer for presentation.
func (e *Engine) Timer(l game.Lane) *HoldTimer {
	return &e.timers[l]
}

// laneJudge carries the per lane state of one Judge call.
type laneJudge struct {
	*Engine
	lane    game.Lane
	field   *game.Field
	elapsed time.Duration
	dt      time.Duration
	press   bool // Unconsumed key down edge
	release bool // Unconsumed key up edge
	held    bool
	out     []game.Judgement
}

// Judge runs one tick of judgement at song time elapsed, dt after the
// previous tick, and returns the judgements made in lane order.
func (e *Engine) Judge(field *game.Field, keys input.Snapshot, elapsed, dt time.Duration) []game.Judgement {
	var out []game.Judgement
	for l := game.First; l < game.NumLanes; l++ {
		lj := laneJudge{
			Engine:  e,
			lane:    l,
			field:   field,
			elapsed: elapsed,
			dt:      dt,
			press:   keys.Pressed[l],
			release: keys.Released[l],
			held:    keys.Held[l],
			out:     out,
		}
		// The field slice changes as notes retire
		active := append([]*game.ActiveNote(nil), field.Lane(l)...)
		for _, a := range active {
			if a.Kind == game.Long {
				lj.long(a)
			} else {
				lj.short(a)
			}
		}
		out = lj.out
	}
	return out
}

func (j *laneJudge) emit(a *game.ActiveNote, kind game.JudgementKind, acc game.Accuracy) {
	j.out = append(j.out, game.Judgement{
		Lane:     j.lane,
		Accuracy: acc,
		Kind:     kind,
		At:       j.elapsed,
		Note:     a.Note,
	})
}

func (j *laneJudge) retire(a *game.ActiveNote, acc game.Accuracy) {
	j.field.Remove(a)
	j.out = append(j.out, game.Judgement{
		Lane:     j.lane,
		Accuracy: acc,
		Kind:     game.Resolve,
		At:       j.elapsed,
		Note:     a.Note,
		Retired:  true,
	})
	j.log.Debug("note retired",
		zap.Stringer("lane", j.lane),
		zap.Stringer("kind", a.Kind),
		zap.Duration("start", a.Start),
		zap.Duration("at", j.elapsed),
		zap.Stringer("accuracy", acc),
	)
}

func (j *laneJudge) short(a *game.ActiveNote) {
	if j.press {
		if acc := j.Windows.Classify(j.elapsed - a.Start); acc != game.None {
			j.press = false
			a.Pushed = true
			a.PushedAt = j.elapsed
			j.retire(a, acc)
			return
		}
	}
	if j.elapsed > a.Start+j.Windows.Great {
		a.Missed = true
		j.retire(a, game.Miss)
	}
}

func (j *laneJudge) long(a *game.ActiveNote) {
	great := j.Windows.Great

	switch a.Phase {
	case game.Armed:
		if j.press {
			if acc := j.Windows.Classify(j.elapsed - a.Start); acc != game.None {
				j.press = false
				a.Phase = game.Held
				a.Pushed = true
				a.PushedAt = j.elapsed
				a.Accuracy = acc
				j.Timer(j.lane).Reset()
				j.emit(a, game.Attack, acc)
				break
			}
		}
		if j.elapsed > a.Start+great {
			// The body stays on screen until its end
			a.Phase = game.ResolvedBad
			a.Missed = true
			j.emit(a, game.Attack, game.Miss)
		}

	case game.Held:
		if j.held && j.elapsed >= a.Start && j.elapsed <= a.End {
			for n := j.Timer(j.lane).Advance(j.dt); n > 0; n-- {
				j.emit(a, game.Pulse, game.None)
				j.emit(a, game.Pulse, a.Accuracy)
			}
			a.Progress = progress(a.Note, j.elapsed)
		}
		if j.release {
			if abs(j.elapsed-a.End) <= great {
				j.release = false
				a.Progress = 1
				j.retire(a, game.Perfect)
				return
			}
			if !a.Missed && j.elapsed > a.Start+great && j.elapsed < a.End-great {
				j.release = false
				a.Missed = true
				j.retire(a, game.Miss)
				return
			}
		}

	case game.ResolvedBad:
	}

	if j.elapsed > a.End+great {
		j.retire(a, game.Miss)
	}
}

func progress(n *game.Note, elapsed time.Duration) float64 {
	d := n.Duration()
	if d <= 0 {
		return 1
	}
	p := float64(elapsed-n.Start) / float64(d)
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}

func abs(x time.Duration) time.Duration {
	if x < 0 {
		return -x
	}
	return x
}
