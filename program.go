package main

import (
	"fmt"
	"time"

	"github.com/hamoci/rhythme/internal/audio"
	"github.com/hamoci/rhythme/internal/config"
	"github.com/hamoci/rhythme/internal/game"
	"github.com/hamoci/rhythme/internal/input"
	"github.com/hamoci/rhythme/internal/parser"
	"github.com/hamoci/rhythme/internal/render"
	"github.com/hamoci/rhythme/internal/score"
	"github.com/hamoci/rhythme/internal/session"
	"github.com/hamoci/rhythme/internal/theme"
	"go.uber.org/zap"
)

type Program struct {
	Parser   parser.Parser
	Scorer   score.Scorer
	Renderer render.Renderer

	config *config.Config
	log    *zap.Logger

	song    *parser.Song
	chart   *game.Chart
	sum     string
	best    *score.Result
	session *session.Session

	source  input.Source
	tracker input.Tracker
	player  *audio.Player
	quit    bool
}

func (p *Program) Init(c *config.Config, log *zap.Logger) error {
	p.config = c
	p.log = log
	p.Parser = &parser.DefaultParser{}
	p.Scorer = &score.DefaultScorer{Path: c.Database}
	p.Renderer = &render.DefaultRenderer{Theme: &theme.DefaultTheme{}}

	var err error
	p.song, err = parser.Find(c.Directory)
	if nil != err {
		return err
	}
	p.chart, err = p.Parser.Parse(p.song.ChartFile)
	if nil != err {
		return err
	}
	p.sum = parser.Sum(p.chart)
	log.Info("chart loaded",
		zap.String("file", p.song.ChartFile),
		zap.Int64("short", p.chart.ShortCount),
		zap.Int64("long", p.chart.LongCount),
		zap.String("sum", p.sum),
	)

	if err := p.Scorer.Init(); nil != err {
		return err
	}
	p.best, err = p.Scorer.Best(p.sum)
	if nil != err {
		log.Warn("unable to load best result", zap.Error(err))
	}

	opts := session.DefaultOptions()
	opts.Countdown = c.Countdown
	opts.Geometry.BaseSpeed *= c.Speed
	opts.Log = log
	p.session = session.New(p.chart, opts)

	switch c.Input {
	case "evdev":
		p.source, err = input.OpenEvdev(c.Device, c.Bindings, log)
	default:
		// Terminals only report presses, so holds end on the next frame.
		p.tracker.AutoRelease = true
		p.source, err = input.OpenTerminal(c.Bindings, log)
	}
	if nil != err {
		return fmt.Errorf("unable to open %v input: %w", c.Input, err)
	}

	if p.song.AudioFile != "" {
		p.player, err = audio.Open(p.song, c.Volume, c.Offset, log)
		if nil != err {
			log.Warn("playing without audio", zap.Error(err))
			p.player = nil
		}
	}

	return p.Renderer.Init()
}

// Deinit releases the terminal, the speaker and the input device. The
// score database stays open until Close.
func (p *Program) Deinit() {
	if nil != p.Renderer {
		if err := p.Renderer.Deinit(); nil != err {
			p.log.Warn("unable to restore terminal", zap.Error(err))
		}
	}
	if nil != p.player {
		if err := p.player.Close(); nil != err {
			p.log.Warn("unable to close audio", zap.Error(err))
		}
		p.player = nil
	}
	if nil != p.source {
		if err := p.source.Close(); nil != err {
			p.log.Warn("unable to close input", zap.Error(err))
		}
		p.source = nil
	}
}

func (p *Program) Close() {
	if nil != p.Scorer {
		p.Scorer.Deinit()
	}
}

// Update runs one frame and reports whether the game should continue.
func (p *Program) Update(dt time.Duration) bool {
	if !input.Drain(p.source, &p.tracker) {
		p.log.Warn("input source closed")
		p.quit = true
		return false
	}
	keys := p.tracker.Snapshot()
	if keys.Quit {
		p.log.Info("quit", zap.Duration("elapsed", p.session.Elapsed()))
		p.quit = true
		return false
	}

	f := p.session.Tick(dt, keys)
	if nil != p.player {
		p.player.Follow(f.Elapsed, f.Transitions)
		for _, l := range f.KeySounds {
			p.player.KeySound(l)
		}
	}
	p.Renderer.Draw(p.session, &f)

	return !p.session.Finished()
}

func (p *Program) Run() {
	p.Renderer.RenderLoop(p.config.FramePeriod, p.Update)
}

// Result saves a completed play and returns a summary to print once the
// terminal is restored.
func (p *Program) Result() (string, error) {
	board := p.session.Scoreboard()
	acc := p.session.Accuracy()
	summary := fmt.Sprintf("%v\n%v  max combo %v  accuracy %.2f%%",
		p.song.Name, board, p.session.Combo().Max, acc.Percent())
	if nil != p.best {
		summary += fmt.Sprintf("\nbest %.2f%% on %v", p.best.Accuracy, p.best.PlayedAt.Format(time.RFC822))
	}
	if p.quit {
		return summary, nil
	}

	result := score.NewResult(p.sum, board, p.session.Combo(), acc)
	if err := p.Scorer.Save(result); nil != err {
		return summary, err
	}
	p.log.Info("result saved", zap.Stringer("id", result.ID), zap.Float64("accuracy", result.Accuracy))
	return summary, nil
}
