package drill

import (
	"fmt"
	"math"
	"strings"

	"github.com/lox/preflop-trainer/internal/ranges"
	"github.com/lox/preflop-trainer/poker"
)

// Mode selects how mixed-frequency hands are graded.
type Mode uint8

const (
	// ModeStrict expects a raise whenever the hand has any non-zero
	// frequency. This is the default.
	ModeStrict Mode = iota
	// ModeWeighted uses the scenario roll to pick the expected side of a
	// mixed strategy, and reports a frequency mistake when the trainee
	// picks the other side.
	ModeWeighted
)

func (m Mode) String() string {
	switch m {
	case ModeStrict:
		return "strict"
	case ModeWeighted:
		return "weighted"
	default:
		return "unknown"
	}
}

// ParseMode accepts "strict" and "weighted"; the empty string is strict.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "strict":
		return ModeStrict, nil
	case "weighted":
		return ModeWeighted, nil
	default:
		return 0, fmt.Errorf("unknown evaluation mode %q (want strict or weighted)", s)
	}
}

// Outcome grades one answer.
type Outcome uint8

const (
	OutcomeCorrect Outcome = iota
	OutcomeWrong
	OutcomeFrequencyMistake
)

func (o Outcome) String() string {
	switch o {
	case OutcomeCorrect:
		return "correct"
	case OutcomeWrong:
		return "wrong"
	case OutcomeFrequencyMistake:
		return "frequency mistake"
	default:
		return "unknown"
	}
}

// Credit is the score an outcome is worth.
func (o Outcome) Credit() float64 {
	switch o {
	case OutcomeCorrect:
		return 1
	case OutcomeFrequencyMistake:
		return 0.5
	default:
		return 0
	}
}

// Verdict is the result of grading one answer.
type Verdict struct {
	Correct       bool
	CorrectAction poker.Action
	Outcome       Outcome
	Class         poker.HandClass
	Frequency     float64
}

// Evaluator grades answers against a range table. It holds no mutable
// state and may be shared.
type Evaluator struct {
	table *ranges.Table
	mode  Mode
}

// NewEvaluator returns an evaluator for table.
func NewEvaluator(table *ranges.Table, mode Mode) *Evaluator {
	return &Evaluator{table: table, mode: mode}
}

// Mode returns the grading mode.
func (e *Evaluator) Mode() Mode {
	return e.mode
}

// Table returns the range table answers are graded against.
func (e *Evaluator) Table() *ranges.Table {
	return e.table
}

// CorrectAction returns the action expected for s.
func (e *Evaluator) CorrectAction(s Scenario) poker.Action {
	class := s.Class()
	switch e.mode {
	case ModeWeighted:
		freq := e.table.Frequency(s.Position, class)
		if e.table.Strategy(s.Position, class) != ranges.Mixed {
			return e.table.ActionFor(s.Position, class)
		}
		if int(math.Round(freq*RollRange)) > s.Roll {
			return poker.Raise
		}
		return poker.Fold
	default:
		return e.table.ActionFor(s.Position, class)
	}
}

// Evaluate grades action for scenario s.
func (e *Evaluator) Evaluate(s Scenario, action poker.Action) Verdict {
	class := s.Class()
	v := Verdict{
		CorrectAction: e.CorrectAction(s),
		Class:         class,
		Frequency:     e.table.Frequency(s.Position, class),
	}

	switch {
	case action == v.CorrectAction:
		v.Correct = true
		v.Outcome = OutcomeCorrect
	case e.mode == ModeWeighted && e.table.Strategy(s.Position, class) == ranges.Mixed:
		v.Outcome = OutcomeFrequencyMistake
	default:
		v.Outcome = OutcomeWrong
	}
	return v
}

// Frequencies returns the configured raise and fold frequencies for s.
func (e *Evaluator) Frequencies(s Scenario) (raise, fold float64) {
	raise = e.table.Frequency(s.Position, s.Class())
	return raise, 1 - raise
}
