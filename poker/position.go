package poker

import (
	"errors"
	"fmt"
	"strings"
)

// Position is a seat that can open an unopened pot. The big blind never
// opens and is deliberately absent.
type Position uint8

const (
	UTG Position = iota
	MP
	CO
	BTN
	SB
)

// NumPositions is the number of opening positions.
const NumPositions = 5

// Positions lists every opening position in table order.
var Positions = [NumPositions]Position{UTG, MP, CO, BTN, SB}

// ErrUnknownPosition is returned for position symbols outside the opening set.
var ErrUnknownPosition = errors.New("unknown position")

// Valid reports whether p is one of the opening positions.
func (p Position) Valid() bool {
	return p < NumPositions
}

// String returns the short symbol used in configuration ("UTG", "BTN", ...).
func (p Position) String() string {
	switch p {
	case UTG:
		return "UTG"
	case MP:
		return "MP"
	case CO:
		return "CO"
	case BTN:
		return "BTN"
	case SB:
		return "SB"
	default:
		return "?"
	}
}

// Name returns the long display name.
func (p Position) Name() string {
	switch p {
	case BTN:
		return "Button"
	case SB:
		return "Small Blind"
	default:
		return p.String()
	}
}

// ParsePosition converts a symbol such as "utg" or "BTN" into a Position.
func ParsePosition(s string) (Position, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "UTG":
		return UTG, nil
	case "MP":
		return MP, nil
	case "CO":
		return CO, nil
	case "BTN":
		return BTN, nil
	case "SB":
		return SB, nil
	case "BB":
		return 0, fmt.Errorf("%w: BB never opens the pot", ErrUnknownPosition)
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownPosition, s)
	}
}

// UnmarshalText implements encoding.TextUnmarshaler so positions can be
// used directly as command-line flag values.
func (p *Position) UnmarshalText(text []byte) error {
	pos, err := ParsePosition(string(text))
	if err != nil {
		return err
	}
	*p = pos
	return nil
}
