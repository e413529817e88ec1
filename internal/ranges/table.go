package ranges

import (
	"fmt"
	"slices"

	"github.com/lox/preflop-trainer/poker"
)

// Strategy classifies the configured play of one hand at one position.
type Strategy uint8

const (
	AlwaysFold Strategy = iota
	Mixed
	AlwaysRaise
)

// String returns the strategy name.
func (s Strategy) String() string {
	switch s {
	case AlwaysFold:
		return "always fold"
	case Mixed:
		return "mixed"
	case AlwaysRaise:
		return "always raise"
	default:
		return "unknown"
	}
}

// Table is the per-position strategy. It is built once and never mutated,
// so a *Table can be shared between goroutines without locking.
type Table struct {
	freqs      [poker.NumPositions][poker.NumHandClasses]float64
	configured [poker.NumPositions]bool
}

// Build parses one range string per position. Positions missing from defs
// fold every hand. Any malformed range fails the whole table.
func Build(defs map[poker.Position]string) (*Table, error) {
	ranges := make(map[poker.Position]Range, len(defs))
	for _, pos := range poker.Positions {
		notation, ok := defs[pos]
		if !ok {
			continue
		}
		r, err := Parse(notation)
		if err != nil {
			return nil, fmt.Errorf("position %s: %w", pos, err)
		}
		ranges[pos] = r
	}
	for pos := range defs {
		if !pos.Valid() {
			return nil, fmt.Errorf("%w: %d", poker.ErrUnknownPosition, pos)
		}
	}
	return NewTable(ranges), nil
}

// BuildFromSymbols is Build keyed by position symbols as they appear in
// configuration files ("UTG", "btn", ...). An unknown symbol is an error.
func BuildFromSymbols(defs map[string]string) (*Table, error) {
	symbols := make([]string, 0, len(defs))
	for sym := range defs {
		symbols = append(symbols, sym)
	}
	slices.Sort(symbols)

	byPos := make(map[poker.Position]string, len(defs))
	for _, sym := range symbols {
		pos, err := poker.ParsePosition(sym)
		if err != nil {
			return nil, err
		}
		if _, dup := byPos[pos]; dup {
			return nil, fmt.Errorf("position %s configured more than once", pos)
		}
		byPos[pos] = defs[sym]
	}
	return Build(byPos)
}

// NewTable builds a table from already parsed ranges.
func NewTable(ranges map[poker.Position]Range) *Table {
	t := &Table{}
	for pos, r := range ranges {
		if !pos.Valid() {
			continue
		}
		t.configured[pos] = true
		for class, freq := range r {
			if class.Valid() {
				t.freqs[pos][class.Index()] = freq
			}
		}
	}
	return t
}

// Frequency returns how often class is raised from pos.
func (t *Table) Frequency(pos poker.Position, class poker.HandClass) float64 {
	if t == nil || !pos.Valid() || !class.Valid() {
		return 0
	}
	return t.freqs[pos][class.Index()]
}

// Strategy reports whether class is always folded, always raised or mixed at pos.
func (t *Table) Strategy(pos poker.Position, class poker.HandClass) Strategy {
	switch freq := t.Frequency(pos, class); {
	case freq <= 0:
		return AlwaysFold
	case freq >= 1:
		return AlwaysRaise
	default:
		return Mixed
	}
}

// ActionFor collapses the configured frequency to one action: any non-zero
// frequency is a raise.
func (t *Table) ActionFor(pos poker.Position, class poker.HandClass) poker.Action {
	if t.Frequency(pos, class) > 0 {
		return poker.Raise
	}
	return poker.Fold
}

// Configured reports whether pos had a range in the configuration.
func (t *Table) Configured(pos poker.Position) bool {
	return t != nil && pos.Valid() && t.configured[pos]
}

// Positions returns the configured positions in table order.
func (t *Table) Positions() []poker.Position {
	var out []poker.Position
	for _, pos := range poker.Positions {
		if t.Configured(pos) {
			out = append(out, pos)
		}
	}
	return out
}

// Range returns a copy of the range configured for pos.
func (t *Table) Range(pos poker.Position) Range {
	r := make(Range)
	if t == nil || !pos.Valid() {
		return r
	}
	for i, freq := range t.freqs[pos] {
		if freq > 0 {
			r[poker.ClassFromIndex(i)] = freq
		}
	}
	return r
}
