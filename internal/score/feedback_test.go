package score

import (
	"math"
	"testing"
	"time"

	"github.com/hamoci/rhythme/internal/game"
)

var accuracyTests = map[Scoreboard]float64{
	{Perfect: 1}:                    100,
	{Great: 1}:                      90,
	{Miss: 1}:                       0,
	{Perfect: 1, Great: 1}:          95,
	{Perfect: 2, Miss: 2}:           50,
	{Perfect: 3, Great: 2, Miss: 5}: 48,
	// Bad is shown on the scoreboard but left out of the percentage
	{Perfect: 1, Bad: 9}: 100,
	{Miss: 1, Bad: 3}:    0,
}

func TestAccuracy(t *testing.T) {
	for board, expected := range accuracyTests {
		var acc Accuracy
		acc.Update(board)
		if math.Abs(acc.Percent()-expected) > 1e-9 {
			t.Errorf("%v: %v, expected %v", board, acc.Percent(), expected)
		}
		if acc.Percent() < 0 || acc.Percent() > 100 {
			t.Errorf("%v: %v out of range", board, acc.Percent())
		}
	}
}

func TestAccuracyHoldsWithoutJudgements(t *testing.T) {
	var acc Accuracy
	acc.Update(Scoreboard{})
	if acc.Valid() || acc.Percent() != 0 {
		t.Error("empty scoreboard produced a percentage")
	}

	acc.Update(Scoreboard{Perfect: 1, Great: 1})
	acc.Update(Scoreboard{Bad: 4})
	if !acc.Valid() || acc.Percent() != 95 {
		t.Errorf("percentage changed to %v with an empty denominator", acc.Percent())
	}
}

func TestCombo(t *testing.T) {
	var c Combo
	steps := []struct {
		acc     game.Accuracy
		current uint64
	}{
		{game.Perfect, 1},
		{game.Great, 2},
		{game.None, 2},
		{game.Bad, 3},
		{game.Miss, 0},
		{game.Miss, 0},
		{game.Perfect, 1},
	}
	for i, s := range steps {
		c.Apply(s.acc)
		if c.Current != s.current {
			t.Errorf("step %d (%v): combo %v, expected %v", i, s.acc, c.Current, s.current)
		}
	}
	if c.Max != 3 {
		t.Errorf("max combo %v, expected 3", c.Max)
	}
}

func TestScoreboardRecord(t *testing.T) {
	var s Scoreboard
	for _, acc := range []game.Accuracy{game.Perfect, game.Great, game.Bad, game.Miss, game.None, game.Miss} {
		s.Record(acc)
	}
	if s != (Scoreboard{Perfect: 1, Great: 1, Bad: 1, Miss: 2}) || s.Total() != 5 {
		t.Errorf("got %v", s)
	}
}

func TestIndicator(t *testing.T) {
	var i Indicator
	i.Show(game.Great)
	if i.Accuracy() != game.Great || i.Scale() != IndicatorScale {
		t.Fatalf("fresh indicator %v at scale %v", i.Accuracy(), i.Scale())
	}

	i.Tick(50 * time.Millisecond)
	if s := i.Scale(); s <= 1 || s >= IndicatorScale {
		t.Errorf("scale %v halfway through the shrink", s)
	}
	i.Tick(50 * time.Millisecond)
	if i.Scale() != 1 {
		t.Errorf("scale %v after the shrink", i.Scale())
	}

	i.Tick(IndicatorDuration)
	if i.Accuracy() != game.None {
		t.Errorf("indicator still showing %v", i.Accuracy())
	}

	i.Show(game.Perfect)
	i.Show(game.None)
	if i.Accuracy() != game.None {
		t.Error("None did not clear the indicator")
	}
}
