// Package drill generates training scenarios and grades the trainee's answers
// against a range table.
package drill

import (
	"fmt"

	"github.com/lox/preflop-trainer/poker"
)

// RollRange is the exclusive upper bound of Scenario.Roll.
const RollRange = 100

// Scenario is one unopened-pot decision: a position and two hole cards.
// Roll is a uniform value in [0, RollRange) drawn with the scenario; only the
// weighted evaluation mode reads it, to decide which side of a mixed
// strategy is expected this time.
type Scenario struct {
	Position poker.Position
	Cards    poker.HoleCards
	Roll     int
}

// Class returns the hand class of the scenario's hole cards.
func (s Scenario) Class() poker.HandClass {
	return s.Cards.Class()
}

func (s Scenario) String() string {
	return fmt.Sprintf("%s: %s (%s)", s.Position, s.Cards, s.Class())
}
