// Package session runs one play of a chart. A Session owns the clock,
// the lane store, the active notes and the scoreboard, and advances them
// in a fixed order once per frame.
package session

import (
	"time"

	"github.com/hamoci/rhythme/internal/clock"
	"github.com/hamoci/rhythme/internal/game"
	"github.com/hamoci/rhythme/internal/input"
	"github.com/hamoci/rhythme/internal/judge"
	"github.com/hamoci/rhythme/internal/schedule"
	"github.com/hamoci/rhythme/internal/score"
	"go.uber.org/zap"
)

type Options struct {
	Countdown  time.Duration
	Windows    game.Windows
	HoldPeriod time.Duration
	Geometry   schedule.Geometry
	Log        *zap.Logger
}

func DefaultOptions() Options {
	return Options{
		Countdown:  clock.DefaultCountdown,
		Windows:    game.DefaultWindows,
		HoldPeriod: judge.DefaultHoldPeriod,
		Geometry:   schedule.DefaultGeometry,
	}
}

// Frame is everything one tick produced for the presentation layer.
type Frame struct {
	Elapsed     time.Duration
	Transitions []clock.Transition
	Spawned     []*game.ActiveNote
	Judgements  []game.Judgement
	KeySounds   []game.Lane
	Backlight   [game.NumLanes]bool
}

type Session struct {
	clock     *clock.Clock
	chart     *game.Chart
	field     game.Field
	scheduler *schedule.Scheduler
	engine    *judge.Engine

	board     score.Scoreboard
	combo     score.Combo
	accuracy  score.Accuracy
	indicator score.Indicator

	log *zap.Logger
}

// New starts a session on a copy of chart.
func New(chart *game.Chart, opts Options) *Session {
	log := opts.Log
	if log == nil {
		log = zap.NewNop()
	}
	return &Session{
		clock:     clock.New(opts.Countdown),
		chart:     chart.Clone(),
		scheduler: schedule.New(opts.Geometry),
		engine:    judge.New(opts.Windows, opts.HoldPeriod, log),
		log:       log,
	}
}

// Tick advances the session by dt with the key state of this frame.
// The clock moves first so that scheduling and judgement in every lane
// see the same song time.
func (s *Session) Tick(dt time.Duration, keys input.Snapshot) Frame {
	var f Frame
	f.Backlight = keys.Held
	for l := range keys.Pressed {
		f.Backlight[l] = f.Backlight[l] || keys.Pressed[l]
	}

	f.Transitions = s.clock.Tick(dt, keys.Pause)
	for _, t := range f.Transitions {
		s.log.Info("clock transition", zap.Stringer("transition", t), zap.Duration("elapsed", s.clock.Elapsed()))
	}
	f.Elapsed = s.clock.Elapsed()

	if s.clock.Advanced() && f.Elapsed > 0 {
		s.scheduler.Advance(&s.field, dt)
		f.Spawned = s.scheduler.Spawn(s.chart, &s.field, f.Elapsed)
		f.Judgements = s.engine.Judge(&s.field, keys, f.Elapsed, dt)
		for _, j := range f.Judgements {
			s.apply(j, &f)
		}
	}

	s.accuracy.Update(s.board)
	if s.clock.State() != clock.Paused {
		s.indicator.Tick(dt)
	}
	return f
}

func (s *Session) apply(j game.Judgement, f *Frame) {
	if j.Scored() {
		s.board.Record(j.Accuracy)
	}
	s.combo.Apply(j.Accuracy)
	s.indicator.Show(j.Accuracy)
	if j.Kind != game.Pulse && j.Accuracy.Hit() {
		f.KeySounds = append(f.KeySounds, j.Lane)
	}
}

// Finished reports whether every note has been spawned and retired.
func (s *Session) Finished() bool {
	return s.chart.Remaining() == 0 && s.field.Len() == 0
}

func (s *Session) State() clock.State {
	return s.clock.State()
}

func (s *Session) Elapsed() time.Duration {
	return s.clock.Elapsed()
}

func (s *Session) Countdown() time.Duration {
	return s.clock.Countdown()
}

func (s *Session) Scoreboard() score.Scoreboard {
	return s.board
}

func (s *Session) Combo() score.Combo {
	return s.combo
}

func (s *Session) Accuracy() score.Accuracy {
	return s.accuracy
}

// Indicator is the judgement graphic and its current scale.
func (s *Session) Indicator() (game.Accuracy, float64) {
	return s.indicator.Accuracy(), s.indicator.Scale()
}

// Active calls fn for every note on screen. fn must not keep or modify
// the notes.
func (s *Session) Active(fn func(a *game.ActiveNote)) {
	s.field.Each(fn)
}

// Geometry is the playfield the notes are positioned in.
func (s *Session) Geometry() schedule.Geometry {
	return s.scheduler.Geometry
}
