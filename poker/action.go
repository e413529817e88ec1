package poker

import (
	"fmt"
	"strings"
)

// Action is the opening decision: fold or raise.
type Action uint8

const (
	Fold Action = iota
	Raise
)

// String returns "fold" or "raise".
func (a Action) String() string {
	switch a {
	case Fold:
		return "fold"
	case Raise:
		return "raise"
	default:
		return "unknown"
	}
}

// ParseAction accepts "raise"/"r" and "fold"/"f", case-insensitively.
func ParseAction(s string) (Action, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "r", "raise":
		return Raise, nil
	case "f", "fold":
		return Fold, nil
	default:
		return 0, fmt.Errorf("unknown action %q", s)
	}
}
