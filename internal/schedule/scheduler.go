package schedule

import (
	"time"

	"github.com/hamoci/rhythme/internal/game"
)

// Geometry describes the playfield in screen units. Notes approach the
// judge line from above, so positions decrease over time.
type Geometry struct {
	JudgeLine     float64 // Position of the judge line
	BaseSpeed     float64 // Units per second at a speed multiplier of 1
	SpawnDistance float64 // Distance above the judge line where notes appear
	NoteHeight    float64 // Height of a note sprite, the unit of Long note scale
}

var DefaultGeometry = Geometry{
	JudgeLine:     -300,
	BaseSpeed:     600,
	SpawnDistance: 530,
	NoteHeight:    20,
}

type Scheduler struct {
	Geometry Geometry
}

func New(g Geometry) *Scheduler {
	return &Scheduler{Geometry: g}
}

func (s *Scheduler) velocity(n *game.Note) float64 {
	return s.Geometry.BaseSpeed * n.Speed
}

// Position is where a note's head should be at the given song time.
func (s *Scheduler) Position(n *game.Note, elapsed time.Duration) float64 {
	return s.Geometry.JudgeLine + (n.Start-elapsed).Seconds()*s.velocity(n)
}

// Spawn materializes the head of every lane that has reached the spawn
// region. Several notes of one lane may spawn in the same tick.
func (s *Scheduler) Spawn(chart *game.Chart, field *game.Field, elapsed time.Duration) []*game.ActiveNote {
	var spawned []*game.ActiveNote
	threshold := s.Geometry.JudgeLine + s.Geometry.SpawnDistance
	for l := game.First; l < game.NumLanes; l++ {
		for {
			n, ok := chart.Peek(l)
			if !ok {
				break
			}
			y := s.Position(n, elapsed)
			if y > threshold {
				break
			}
			chart.Pop(l)

			a := &game.ActiveNote{Note: n, Y: y, ScaleY: 1}
			if n.Kind == game.Long {
				length := n.Duration().Seconds() * s.velocity(n)
				a.Y = y + length/2
				a.ScaleY = length / s.Geometry.NoteHeight
			}
			spawned = append(spawned, field.Add(a))
		}
	}
	return spawned
}

// Advance moves every active note towards the judge line.
func (s *Scheduler) Advance(field *game.Field, dt time.Duration) {
	field.Each(func(a *game.ActiveNote) {
		a.Y -= s.velocity(a.Note) * dt.Seconds()
	})
}

// Idle reports whether a lane has nothing queued and nothing on screen.
func (s *Scheduler) Idle(chart *game.Chart, field *game.Field, l game.Lane) bool {
	return chart.Len(l) == 0 && field.Empty(l)
}
