package render

import (
	"time"

	"github.com/hamoci/rhythme/internal/session"
)

type Renderer interface {
	Init() error
	Deinit() error
	AddDecoration(col, row int, content string, frames int)
	SetOverlay(message string)
	RenderLoop(framePeriod time.Duration, render func(dt time.Duration) bool)
	Fill(row, column int, message string)
	Draw(s *session.Session, f *session.Frame)
}
