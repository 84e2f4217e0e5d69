package theme

import (
	"fmt"

	"github.com/hamoci/rhythme/internal/game"
)

type Color struct {
	R, G, B uint8
}

type DefaultTheme struct {
}

func (t *DefaultTheme) RenderNote(lane game.Lane) string {
	return colored(laneColors[lane], noteSym)
}

func (t *DefaultTheme) RenderHoldBody(lane game.Lane, held bool) string {
	if held {
		return colored(heldColor, holdSym)
	}
	return colored(laneColors[lane], holdSym)
}

func (t *DefaultTheme) RenderHitField(lane game.Lane, lit bool) string {
	if lit {
		return colored(laneColors[lane], litBarSym)
	}
	return barSym
}

// RenderJudgement is the indicator text, empty for None.
func (t *DefaultTheme) RenderJudgement(acc game.Accuracy) string {
	c, ok := judgementColors[acc]
	if !ok {
		return ""
	}
	return colored(c, acc.String())
}

func colored(c Color, s string) string {
	return fmt.Sprintf("\033[38;2;%v;%v;%vm%v\033[0m", c.R, c.G, c.B, s)
}

const (
	noteSym   = "▬▬▬"
	holdSym   = "┃ ┃"
	barSym    = "───"
	litBarSym = "━━━"
)

var (
	heldColor  = Color{255, 255, 255}
	laneColors = [game.NumLanes]Color{
		{236, 30, 0},  // red
		{0, 118, 236}, // blue
		{0, 118, 236}, // blue
		{236, 30, 0},  // red
	}
	judgementColors = map[game.Accuracy]Color{
		game.Perfect: {173, 236, 236},
		game.Great:   {0, 236, 128},
		game.Bad:     {236, 195, 0},
		game.Miss:    {236, 30, 0},
	}
)
