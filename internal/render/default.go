package render

import (
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/hamoci/rhythme/internal/clock"
	"github.com/hamoci/rhythme/internal/game"
	"github.com/hamoci/rhythme/internal/schedule"
	"github.com/hamoci/rhythme/internal/session"
	"github.com/hamoci/rhythme/internal/theme"
	"golang.org/x/term"
)

const (
	columnSpacing = 4
	barOffset     = 3 // Rows between the hit bar and the bottom edge
	splashFrames  = 24
)

type DefaultRenderer struct {
	Theme theme.Theme

	buffer       strings.Builder
	restoreState *term.State
	decorations  []*decoration
	overlay      string

	width, height int
}

type decoration struct {
	X, Y    int
	Content string
	Frames  int // remaining frames until removed
}

func (r *DefaultRenderer) Init() error {
	fd := int(os.Stdout.Fd())
	width, height, err := term.GetSize(fd)
	if nil != err {
		return fmt.Errorf("unable to get terminal size: %w", err)
	}
	r.width, r.height = width, height

	state, err := term.MakeRaw(fd)
	if nil != err {
		return err
	}
	r.restoreState = state

	fmt.Printf("%s%s%s",
		"\033[?1049h", // Enable alternate buffer
		"\033[?25l",   // Make the cursor invisible
		"\033[J",      // Clear the screen
	)
	return nil
}

func (r *DefaultRenderer) Deinit() error {
	if nil == r.restoreState {
		return nil
	}
	fmt.Printf("%s%s",
		"\033[?1049l", // Disable alternate buffer
		"\033[?25h",   // Make the cursor visible
	)
	err := term.Restore(int(os.Stdout.Fd()), r.restoreState)
	r.restoreState = nil
	return err
}

func (r *DefaultRenderer) AddDecoration(col, row int, content string, frames int) {
	r.decorations = append(r.decorations, &decoration{
		X:       col,
		Y:       row,
		Content: content,
		Frames:  frames,
	})
}

// SetOverlay shows a message in the middle of the playfield until it is
// replaced. An empty message removes it.
func (r *DefaultRenderer) SetOverlay(message string) {
	r.overlay = message
}

func (r *DefaultRenderer) tickDecorations() {
	nd := make([]*decoration, 0, len(r.decorations))
	for _, d := range r.decorations {
		if d.Frames == 0 {
			continue
		}
		r.Fill(d.Y, d.X, d.Content)
		nd = append(nd, d)
		d.Frames--
	}
	r.decorations = nd
}

func (r *DefaultRenderer) RenderLoop(framePeriod time.Duration, render func(dt time.Duration) bool) {
	cont := true
	last := time.Now()
	for cont {
		now := time.Now()
		deadline := now.Add(framePeriod)

		cont = render(now.Sub(last))
		last = now

		r.flush()
		time.Sleep(time.Until(deadline))
	}
}

func (r *DefaultRenderer) Fill(row, column int, message string) {
	r.buffer.WriteString("\033[")
	r.buffer.WriteString(strconv.Itoa(row))
	r.buffer.WriteString(";")
	r.buffer.WriteString(strconv.Itoa(column))
	r.buffer.WriteString("H")
	r.buffer.WriteString(message)
}

func (r *DefaultRenderer) flush() {
	os.Stdout.Write([]byte(r.buffer.String()))
	r.buffer.Reset()
}

func (r *DefaultRenderer) hitRow() int {
	return r.height - barOffset
}

func (r *DefaultRenderer) column(l game.Lane) int {
	mid := r.width / 2
	return mid + (2*int(l)-3)*columnSpacing - 1
}

// row maps a playfield position onto a terminal row. The spawn line is
// the top row and the judge line is the hit bar.
func (r *DefaultRenderer) row(g schedule.Geometry, y float64) int {
	rows := float64(r.hitRow() - 1)
	return r.hitRow() - int(math.Round((y-g.JudgeLine)/g.SpawnDistance*rows))
}

func (r *DefaultRenderer) visible(row int) bool {
	return row >= 1 && row <= r.height
}

// Draw renders one frame of a session.
func (r *DefaultRenderer) Draw(s *session.Session, f *session.Frame) {
	r.buffer.WriteString("\033[2J")
	g := s.Geometry()
	hit := r.hitRow()

	for _, t := range f.Transitions {
		switch t {
		case clock.PausedEdge:
			r.SetOverlay("PAUSED")
		case clock.Resumed, clock.Started:
			r.SetOverlay("")
		}
	}
	for _, j := range f.Judgements {
		if j.Retired && j.Accuracy.Hit() {
			r.AddDecoration(r.column(j.Lane), hit-1, " ✦ ", splashFrames)
		}
	}

	s.Active(func(a *game.ActiveNote) {
		col := r.column(a.Lane)
		if a.Kind == game.Long {
			half := a.ScaleY * g.NoteHeight / 2
			top := r.row(g, a.Y+half)
			bottom := r.row(g, a.Y-half)
			if a.Phase == game.Held && bottom > hit {
				bottom = hit
			}
			for row := top; row <= bottom; row++ {
				if r.visible(row) {
					r.Fill(row, col, r.Theme.RenderHoldBody(a.Lane, a.Phase == game.Held))
				}
			}
			return
		}
		if row := r.row(g, a.Y); r.visible(row) {
			r.Fill(row, col, r.Theme.RenderNote(a.Lane))
		}
	})

	for l := game.First; l < game.NumLanes; l++ {
		r.Fill(hit, r.column(l), r.Theme.RenderHitField(l, f.Backlight[l]))
	}
	r.tickDecorations()

	mid := r.width / 2
	if acc, scale := s.Indicator(); acc != game.None {
		label := r.Theme.RenderJudgement(acc)
		if scale > 1 {
			label = "\033[1m" + label
		}
		r.Fill(r.height/2, mid-4, label)
	}
	if combo := s.Combo().Current; combo > 1 {
		r.Fill(r.height/2+1, mid-2, fmt.Sprintf("%4d", combo))
	}
	switch {
	case s.State() == clock.Holding:
		r.Fill(r.height/2-2, mid-1, fmt.Sprintf("%d", int(math.Ceil(s.Countdown().Seconds()))))
	case r.overlay != "":
		r.Fill(r.height/2-2, mid-len(r.overlay)/2, r.overlay)
	}

	side := r.column(game.First) - 30
	if side < 2 {
		side = 2
	}
	board := s.Scoreboard()
	r.Fill(2, side, fmt.Sprintf("       Time: %8.2f s", s.Elapsed().Seconds()))
	r.Fill(4, side, fmt.Sprintf("   Accuracy: %8.2f %%", s.Accuracy().Percent()))
	r.Fill(5, side, fmt.Sprintf("  Max Combo: %8d", s.Combo().Max))
	r.Fill(7, side, fmt.Sprintf("    Perfect: %8d", board.Perfect))
	r.Fill(8, side, fmt.Sprintf("      Great: %8d", board.Great))
	r.Fill(9, side, fmt.Sprintf("        Bad: %8d", board.Bad))
	r.Fill(10, side, fmt.Sprintf("       Miss: %8d", board.Miss))
}
