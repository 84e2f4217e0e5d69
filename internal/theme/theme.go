package theme

import "github.com/hamoci/rhythme/internal/game"

type Theme interface {
	RenderNote(lane game.Lane) string
	RenderHoldBody(lane game.Lane, held bool) string
	RenderHitField(lane game.Lane, lit bool) string
	RenderJudgement(acc game.Accuracy) string
}
