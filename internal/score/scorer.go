package score

import (
	"time"

	"github.com/google/uuid"
)

type Scorer interface {
	Init() error
	Deinit()

	// Save the result of a finished session
	Save(result *Result) error

	// Load previous results for a chart, newest first
	Load(sum string) ([]Result, error)

	// Best is the result with the highest accuracy for a chart
	Best(sum string) (*Result, error)
}

type Result struct {
	ID         uuid.UUID
	Sum        string // Chart content hash
	Scoreboard Scoreboard
	MaxCombo   uint64
	Accuracy   float64
	PlayedAt   time.Time
}

func NewResult(sum string, board Scoreboard, combo Combo, acc Accuracy) *Result {
	return &Result{
		ID:         uuid.New(),
		Sum:        sum,
		Scoreboard: board,
		MaxCombo:   combo.Max,
		Accuracy:   acc.Percent(),
		PlayedAt:   time.Now(),
	}
}
