package drill

import (
	"math/rand/v2"
	"slices"

	"github.com/lox/preflop-trainer/internal/ranges"
	"github.com/lox/preflop-trainer/poker"
)

// Focus weights per hand class, relative to one another. Mixed hands are
// where trainees make mistakes, so focus mode deals them far more often.
const (
	focusWeightMixed = 5000
	focusWeightRaise = 50
	focusWeightOther = 20
)

// Generator deals random scenarios. It owns its random source and is not
// safe for concurrent use; give each goroutine its own Generator.
type Generator struct {
	rng       *rand.Rand
	deck      *poker.Deck
	positions []poker.Position
	focus     *focusTable
}

// Option configures a Generator.
type Option func(*Generator)

// WithPositions restricts the positions scenarios are dealt from. An empty
// list keeps all five opening positions.
func WithPositions(positions ...poker.Position) Option {
	return func(g *Generator) {
		var keep []poker.Position
		for _, p := range positions {
			if p.Valid() && !slices.Contains(keep, p) {
				keep = append(keep, p)
			}
		}
		if len(keep) > 0 {
			g.positions = keep
		}
	}
}

// WithFocus switches hand selection from uniform dealing to weighted
// selection of hand classes, favouring the table's mixed-frequency hands.
func WithFocus(table *ranges.Table) Option {
	return func(g *Generator) {
		g.focus = newFocusTable(table)
	}
}

// NewGenerator returns a generator drawing from rng.
func NewGenerator(rng *rand.Rand, opts ...Option) *Generator {
	g := &Generator{
		rng:       rng,
		deck:      poker.NewDeck(rng),
		positions: poker.Positions[:],
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Positions returns the positions this generator deals from.
func (g *Generator) Positions() []poker.Position {
	return slices.Clone(g.positions)
}

// Next deals a scenario. Position and cards are drawn independently; by
// default the two cards come off a full deck without replacement, so every
// one of the 1326 combinations is equally likely.
func (g *Generator) Next() Scenario {
	pos := g.positions[g.rng.IntN(len(g.positions))]

	var cards poker.HoleCards
	if g.focus != nil {
		cards = g.focus.deal(g.rng, pos)
	} else {
		g.deck.Reset()
		cards, _ = g.deck.DealHoleCards()
	}

	return Scenario{
		Position: pos,
		Cards:    cards,
		Roll:     g.rng.IntN(RollRange),
	}
}

// focusTable holds cumulative class weights per position.
type focusTable struct {
	cumulative [poker.NumPositions][poker.NumHandClasses]int
}

func newFocusTable(table *ranges.Table) *focusTable {
	f := &focusTable{}
	for _, pos := range poker.Positions {
		total := 0
		for i, class := range poker.AllHandClasses() {
			switch table.Strategy(pos, class) {
			case ranges.Mixed:
				total += focusWeightMixed
			case ranges.AlwaysRaise:
				total += focusWeightRaise
			default:
				total += focusWeightOther
			}
			f.cumulative[pos][i] = total
		}
	}
	return f
}

func (f *focusTable) deal(rng *rand.Rand, pos poker.Position) poker.HoleCards {
	cum := f.cumulative[pos][:]
	target := rng.IntN(cum[len(cum)-1])
	// First class whose cumulative weight exceeds target; weights are
	// positive so cum is strictly increasing and i < len(cum).
	i, _ := slices.BinarySearch(cum, target+1)
	combos := poker.ClassFromIndex(i).Combos()
	return combos[rng.IntN(len(combos))]
}
