package parser

import (
	"io"

	"github.com/hamoci/rhythme/internal/game"
)

type Parser interface {
	Parse(file string) (*game.Chart, error)
	ParseReader(r io.Reader) (*game.Chart, error)
}
