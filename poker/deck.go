package poker

import (
	"math/rand"
)

// Deck is a standard 52-card deck with a dealing cursor. Dealt cards occupy
// the positions before the cursor; Shuffle reorders every live card, dealt or
// not, and moves the cursor back to the start.
type Deck struct {
	cards [52]Card
	live  int // number of cards available to deal, starting at cards[0]
	next  int
	rng   *rand.Rand
}

// NewDeck creates a full 52-card deck shuffled with the given RNG.
func NewDeck(rng *rand.Rand) *Deck {
	d := &Deck{rng: rng}
	i := 0
	for suit := Suit(0); suit < 4; suit++ {
		for rank := Rank(0); rank < 13; rank++ {
			d.cards[i] = NewCard(rank, suit)
			i++
		}
	}
	d.live = len(d.cards)
	d.Shuffle()
	return d
}

// NewDeckExcluding creates a deck containing every card not in dead, shuffled
// with the given RNG. The excluded cards never occupy a live position, so
// Deal can never return one.
func NewDeckExcluding(rng *rand.Rand, dead CardMask) *Deck {
	d := &Deck{rng: rng}
	i := 0
	for suit := Suit(0); suit < 4; suit++ {
		for rank := Rank(0); rank < 13; rank++ {
			c := NewCard(rank, suit)
			if dead.Contains(c) {
				continue
			}
			d.cards[i] = c
			i++
		}
	}
	d.live = i
	d.Shuffle()
	return d
}

// Shuffle performs a Fisher-Yates shuffle over the live prefix and resets the
// dealing cursor to its start.
func (d *Deck) Shuffle() {
	d.next = 0
	for i := d.live - 1; i > 0; i-- {
		var j int
		if d.rng != nil {
			j = d.rng.Intn(i + 1)
		} else {
			j = rand.Intn(i + 1)
		}
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	}
}

// Deal deals n cards from the live prefix, advancing the cursor. It returns
// nil if fewer than n cards remain.
func (d *Deck) Deal(n int) []Card {
	if d.next+n > d.live {
		return nil
	}
	cards := d.cards[d.next : d.next+n]
	d.next += n
	return cards
}

// DealOne deals a single card, or the zero Card if the deck is exhausted.
func (d *Deck) DealOne() Card {
	if d.next >= d.live {
		return 0
	}
	card := d.cards[d.next]
	d.next++
	return card
}

// Reset reshuffles the deck and resets the dealing cursor.
func (d *Deck) Reset() {
	d.Shuffle()
}

// CardsRemaining returns the number of cards left to deal.
func (d *Deck) CardsRemaining() int {
	return d.live - d.next
}
