// Package poker models cards, hole cards and the 169 preflop hand classes.
package poker

import (
	"errors"
	"fmt"
	"math/bits"
)

// Rank is a card rank, Two (0) through Ace (12).
type Rank uint8

// Rank constants (0-12 for 2-A)
const (
	Two Rank = iota
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
	Ace
)

// NumRanks is the number of distinct ranks.
const NumRanks = 13

// Suit is a card suit. Only suitedness matters to strategy.
type Suit uint8

// Suit constants
const (
	Clubs Suit = iota
	Diamonds
	Hearts
	Spades
)

// NumSuits is the number of distinct suits.
const NumSuits = 4

const (
	rankChars = "23456789TJQKA"
	suitChars = "cdhs"
)

// Valid reports whether r is one of the 13 ranks.
func (r Rank) Valid() bool {
	return r < NumRanks
}

// String returns the rank symbol ("2".."9", "T", "J", "Q", "K", "A").
func (r Rank) String() string {
	if !r.Valid() {
		return "?"
	}
	return string(rankChars[r])
}

// ParseRank converts a rank symbol into a Rank. Only the canonical
// upper-case symbols are accepted.
func ParseRank(c byte) (Rank, bool) {
	switch c {
	case '2':
		return Two, true
	case '3':
		return Three, true
	case '4':
		return Four, true
	case '5':
		return Five, true
	case '6':
		return Six, true
	case '7':
		return Seven, true
	case '8':
		return Eight, true
	case '9':
		return Nine, true
	case 'T':
		return Ten, true
	case 'J':
		return Jack, true
	case 'Q':
		return Queen, true
	case 'K':
		return King, true
	case 'A':
		return Ace, true
	default:
		return 0, false
	}
}

// Valid reports whether s is one of the 4 suits.
func (s Suit) Valid() bool {
	return s < NumSuits
}

// String returns the lower-case suit letter.
func (s Suit) String() string {
	if !s.Valid() {
		return "?"
	}
	return string(suitChars[s])
}

// Symbol returns the unicode suit glyph used by the trainer screen.
func (s Suit) Symbol() string {
	switch s {
	case Clubs:
		return "♣"
	case Diamonds:
		return "♦"
	case Hearts:
		return "♥"
	case Spades:
		return "♠"
	default:
		return "?"
	}
}

// IsRed returns true for hearts and diamonds.
func (s Suit) IsRed() bool {
	return s == Hearts || s == Diamonds
}

// Card represents a single card as a bit position in a uint64.
// Layout: [13 spades][13 hearts][13 diamonds][13 clubs]
type Card uint64

// Hand is a set of cards, one bit per card.
type Hand uint64

// NewCard creates a card from rank and suit.
func NewCard(rank Rank, suit Suit) Card {
	return Card(1) << (uint(suit)*NumRanks + uint(rank))
}

// Index returns which bit position this card occupies (0-51), or -1 for the zero card.
func (c Card) Index() int {
	if c == 0 {
		return -1
	}
	return bits.TrailingZeros64(uint64(c))
}

// Valid reports whether c is exactly one of the 52 cards.
func (c Card) Valid() bool {
	return bits.OnesCount64(uint64(c)) == 1 && c.Index() < 52
}

// Rank returns the rank of the card.
func (c Card) Rank() Rank {
	return Rank(c.Index() % NumRanks)
}

// Suit returns the suit of the card.
func (c Card) Suit() Suit {
	return Suit(c.Index() / NumRanks)
}

// String returns the string representation (e.g., "As", "Kh")
func (c Card) String() string {
	if !c.Valid() {
		return "??"
	}
	return c.Rank().String() + c.Suit().String()
}

// ParseCard parses a string like "As" into a Card
func ParseCard(s string) (Card, error) {
	if len(s) != 2 {
		return 0, fmt.Errorf("invalid card string: %q", s)
	}

	rank, ok := ParseRank(upper(s[0]))
	if !ok {
		return 0, fmt.Errorf("invalid rank: %c", s[0])
	}

	var suit Suit
	switch s[1] {
	case 'c', 'C':
		suit = Clubs
	case 'd', 'D':
		suit = Diamonds
	case 'h', 'H':
		suit = Hearts
	case 's', 'S':
		suit = Spades
	default:
		return 0, fmt.Errorf("invalid suit: %c", s[1])
	}

	return NewCard(rank, suit), nil
}

func upper(c byte) byte {
	if c >= 'a' && c <= 'z' {
		return c - ('a' - 'A')
	}
	return c
}

// NewHand creates a hand from multiple cards
func NewHand(cards ...Card) Hand {
	var h Hand
	for _, c := range cards {
		h |= Hand(c)
	}
	return h
}

// CountCards returns the number of cards in the hand
func (h Hand) CountCards() int {
	return bits.OnesCount64(uint64(h))
}

// ErrDuplicateCard is returned when both hole cards are the same card.
var ErrDuplicateCard = errors.New("hole cards must be two distinct cards")

// HoleCards is an unordered pair of two distinct cards. The zero value is
// not a valid holding; use NewHoleCards or ParseHoleCards.
type HoleCards struct {
	hi, lo Card
}

// NewHoleCards builds hole cards from two distinct valid cards. The pair is
// stored in a canonical order so that swapping the arguments yields an equal value.
func NewHoleCards(a, b Card) (HoleCards, error) {
	if !a.Valid() || !b.Valid() {
		return HoleCards{}, fmt.Errorf("invalid card in %s %s", a, b)
	}
	if a == b {
		return HoleCards{}, fmt.Errorf("%w: %s", ErrDuplicateCard, a)
	}
	if a.Rank() < b.Rank() || (a.Rank() == b.Rank() && a.Suit() < b.Suit()) {
		a, b = b, a
	}
	return HoleCards{hi: a, lo: b}, nil
}

// MustHoleCards is NewHoleCards for literals known to be valid.
func MustHoleCards(a, b Card) HoleCards {
	h, err := NewHoleCards(a, b)
	if err != nil {
		panic(err)
	}
	return h
}

// ParseHoleCards parses "AsKd", "As Kd" or "As,Kd".
func ParseHoleCards(s string) (HoleCards, error) {
	compact := make([]byte, 0, 4)
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case ' ', ',', '\t':
			continue
		}
		compact = append(compact, s[i])
	}
	if len(compact) != 4 {
		return HoleCards{}, fmt.Errorf("invalid hole cards: %q", s)
	}
	a, err := ParseCard(string(compact[:2]))
	if err != nil {
		return HoleCards{}, err
	}
	b, err := ParseCard(string(compact[2:]))
	if err != nil {
		return HoleCards{}, err
	}
	return NewHoleCards(a, b)
}

// Cards returns both cards, higher rank first.
func (h HoleCards) Cards() (Card, Card) {
	return h.hi, h.lo
}

// Hand returns the hole cards as a card set.
func (h HoleCards) Hand() Hand {
	return NewHand(h.hi, h.lo)
}

// Valid reports whether h was built from two distinct cards.
func (h HoleCards) Valid() bool {
	return h.hi.Valid() && h.lo.Valid() && h.hi != h.lo
}

// Suited reports whether both cards share a suit.
func (h HoleCards) Suited() bool {
	return h.hi.Suit() == h.lo.Suit()
}

// Class returns the hand class of the hole cards.
func (h HoleCards) Class() HandClass {
	return Classify(h)
}

// String returns e.g. "As Kd".
func (h HoleCards) String() string {
	return h.hi.String() + " " + h.lo.String()
}
