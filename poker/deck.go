package poker

import (
	"math/rand/v2"
)

// Deck represents a standard 52-card deck. Cards are drawn without
// replacement by an incremental Fisher-Yates shuffle, so only as many random
// draws are made as cards are dealt.
type Deck struct {
	cards [52]Card // Fixed size array
	next  int
	rng   *rand.Rand
}

// NewDeck creates a full deck drawing from rng.
func NewDeck(rng *rand.Rand) *Deck {
	d := &Deck{rng: rng}

	i := 0
	for suit := range Suit(NumSuits) {
		for rank := range Rank(NumRanks) {
			d.cards[i] = NewCard(rank, suit)
			i++
		}
	}
	return d
}

// DealOne deals a single card uniformly from the cards still in the deck.
// It returns the zero Card once the deck is exhausted.
func (d *Deck) DealOne() Card {
	if d.next >= len(d.cards) {
		return 0
	}
	j := d.next + d.rng.IntN(len(d.cards)-d.next)
	d.cards[d.next], d.cards[j] = d.cards[j], d.cards[d.next]
	card := d.cards[d.next]
	d.next++
	return card
}

// DealHoleCards deals two distinct cards.
func (d *Deck) DealHoleCards() (HoleCards, bool) {
	if d.CardsRemaining() < 2 {
		return HoleCards{}, false
	}
	h, err := NewHoleCards(d.DealOne(), d.DealOne())
	return h, err == nil
}

// Reset returns every dealt card to the deck.
func (d *Deck) Reset() {
	d.next = 0
}

// CardsRemaining returns the number of cards left in the deck
func (d *Deck) CardsRemaining() int {
	return len(d.cards) - d.next
}
