package poker

import "fmt"

// HandKind distinguishes the three shapes of a starting hand.
type HandKind uint8

const (
	Pair HandKind = iota
	Suited
	Offsuit
)

// String returns the kind name.
func (k HandKind) String() string {
	switch k {
	case Pair:
		return "pair"
	case Suited:
		return "suited"
	case Offsuit:
		return "offsuit"
	default:
		return "unknown"
	}
}

// NumHandClasses is the number of canonical preflop hand classes:
// 13 pairs, 78 suited and 78 offsuit.
const NumHandClasses = NumRanks * NumRanks

// HandClass is the strategy-level abstraction of hole cards: a pocket pair,
// or a suited/offsuit combination with High > Low.
type HandClass struct {
	Kind HandKind
	High Rank
	Low  Rank
}

// NewPair returns the pocket pair of rank r.
func NewPair(r Rank) HandClass {
	return HandClass{Kind: Pair, High: r, Low: r}
}

// NewSuited returns the suited class of two distinct ranks, in either order.
func NewSuited(a, b Rank) HandClass {
	return newUnpaired(Suited, a, b)
}

// NewOffsuit returns the offsuit class of two distinct ranks, in either order.
func NewOffsuit(a, b Rank) HandClass {
	return newUnpaired(Offsuit, a, b)
}

func newUnpaired(kind HandKind, a, b Rank) HandClass {
	if a < b {
		a, b = b, a
	}
	return HandClass{Kind: kind, High: a, Low: b}
}

// Classify maps hole cards to their hand class. Equal ranks are always a
// pair; otherwise the higher rank is stored first.
func Classify(h HoleCards) HandClass {
	a, b := h.Cards()
	switch {
	case a.Rank() == b.Rank():
		return NewPair(a.Rank())
	case a.Suit() == b.Suit():
		return NewSuited(a.Rank(), b.Rank())
	default:
		return NewOffsuit(a.Rank(), b.Rank())
	}
}

// Valid reports whether c is one of the 169 canonical classes.
func (c HandClass) Valid() bool {
	if !c.High.Valid() || !c.Low.Valid() {
		return false
	}
	switch c.Kind {
	case Pair:
		return c.High == c.Low
	case Suited, Offsuit:
		return c.High > c.Low
	default:
		return false
	}
}

// Index places the class on the usual 13x13 chart and returns row*13+col.
// Row and column run from Ace (0) down to Two (12); pairs sit on the
// diagonal, suited hands above it and offsuit hands below it.
func (c HandClass) Index() int {
	row, col := c.Cell()
	return row*NumRanks + col
}

// Cell returns the chart row and column of the class.
func (c HandClass) Cell() (row, col int) {
	hi := int(Ace - c.High)
	lo := int(Ace - c.Low)
	if c.Kind == Offsuit {
		return lo, hi
	}
	return hi, lo
}

// ClassAt is the inverse of Cell.
func ClassAt(row, col int) HandClass {
	a := Ace - Rank(row)
	b := Ace - Rank(col)
	switch {
	case row == col:
		return NewPair(a)
	case row < col:
		return NewSuited(a, b)
	default:
		return NewOffsuit(a, b)
	}
}

// ClassFromIndex is the inverse of Index.
func ClassFromIndex(i int) HandClass {
	return ClassAt(i/NumRanks, i%NumRanks)
}

// AllHandClasses returns the 169 classes in chart order.
func AllHandClasses() []HandClass {
	classes := make([]HandClass, 0, NumHandClasses)
	for i := range NumHandClasses {
		classes = append(classes, ClassFromIndex(i))
	}
	return classes
}

// String returns the notation for the class, e.g. "AA", "AKs", "T9o".
func (c HandClass) String() string {
	switch c.Kind {
	case Pair:
		return c.High.String() + c.Low.String()
	case Suited:
		return c.High.String() + c.Low.String() + "s"
	case Offsuit:
		return c.High.String() + c.Low.String() + "o"
	default:
		return "??"
	}
}

// ParseHandClass parses "AA", "AKs" or "AKo". Rank order is normalised, so
// "KAs" is AKs.
func ParseHandClass(s string) (HandClass, error) {
	if len(s) < 2 || len(s) > 3 {
		return HandClass{}, fmt.Errorf("invalid hand notation length: %q", s)
	}
	a, ok := ParseRank(s[0])
	if !ok {
		return HandClass{}, fmt.Errorf("invalid rank %q in %q", s[0], s)
	}
	b, ok := ParseRank(s[1])
	if !ok {
		return HandClass{}, fmt.Errorf("invalid rank %q in %q", s[1], s)
	}

	if len(s) == 2 {
		if a != b {
			return HandClass{}, fmt.Errorf("%q: unpaired hands need an s or o suffix", s)
		}
		return NewPair(a), nil
	}

	if a == b {
		return HandClass{}, fmt.Errorf("%q: pocket pairs cannot be suited or offsuit", s)
	}
	switch s[2] {
	case 's':
		return NewSuited(a, b), nil
	case 'o':
		return NewOffsuit(a, b), nil
	default:
		return HandClass{}, fmt.Errorf("%q: invalid modifier %q", s, s[2])
	}
}

// NumCombos returns how many concrete hole-card combinations the class covers.
func (c HandClass) NumCombos() int {
	switch c.Kind {
	case Pair:
		return 6
	case Suited:
		return 4
	case Offsuit:
		return 12
	default:
		return 0
	}
}

// Combos enumerates every concrete holding of the class.
func (c HandClass) Combos() []HoleCards {
	combos := make([]HoleCards, 0, c.NumCombos())
	switch c.Kind {
	case Pair:
		for s1 := range Suit(NumSuits) {
			for s2 := s1 + 1; s2 < NumSuits; s2++ {
				combos = append(combos, MustHoleCards(NewCard(c.High, s1), NewCard(c.Low, s2)))
			}
		}
	case Suited:
		for s := range Suit(NumSuits) {
			combos = append(combos, MustHoleCards(NewCard(c.High, s), NewCard(c.Low, s)))
		}
	case Offsuit:
		for s1 := range Suit(NumSuits) {
			for s2 := range Suit(NumSuits) {
				if s1 != s2 {
					combos = append(combos, MustHoleCards(NewCard(c.High, s1), NewCard(c.Low, s2)))
				}
			}
		}
	}
	return combos
}
