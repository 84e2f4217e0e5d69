package theme

import (
	"strings"
	"testing"

	"github.com/hamoci/rhythme/internal/game"
)

func TestRenderJudgement(t *testing.T) {
	th := &DefaultTheme{}
	if th.RenderJudgement(game.None) != "" {
		t.Error("None rendered a graphic")
	}
	for _, acc := range []game.Accuracy{game.Perfect, game.Great, game.Bad, game.Miss} {
		if s := th.RenderJudgement(acc); !strings.Contains(s, acc.String()) {
			t.Errorf("%v rendered as %q", acc, s)
		}
	}
}

func TestRenderHitField(t *testing.T) {
	th := &DefaultTheme{}
	for l := game.First; l < game.NumLanes; l++ {
		if th.RenderHitField(l, true) == th.RenderHitField(l, false) {
			t.Errorf("lane %v backlight not visible", l)
		}
	}
}
