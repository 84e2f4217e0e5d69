package testdata

import (
	"strings"

	"github.com/hamoci/rhythme/internal/game"
	"github.com/hamoci/rhythme/internal/parser"
)

// Data is a short chart touching every lane, with out of order lines and
// a tie in the first lane.
const Data = `0,Short,1000
1,Long,2000,2500
3,Short,1500
0,Short,500
2,Long,3000,4000
0,Short,1000
3,Short,1250
1,Short,2750
`

func GetChart() (*game.Chart, error) {
	psr := &parser.DefaultParser{}
	return psr.ParseReader(strings.NewReader(Data))
}
