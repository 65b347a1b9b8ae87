package deck

import (
	"math/rand/v2"
)

// CardsPerDeck is the size of one full rank x suit set.
const CardsPerDeck = 52

// Deck is a shoe of one or more 52-card sets. It behaves as an endless
// supply: drawing from an empty deck rebuilds and reshuffles it first.
type Deck struct {
	numDecks   int
	cards      []Card
	rng        *rand.Rand
	reshuffles int
}

// New creates a shuffled deck made of numDecks full sets. numDecks below one
// is treated as one.
func New(numDecks int, rng *rand.Rand) *Deck {
	if numDecks < 1 {
		numDecks = 1
	}
	d := &Deck{
		numDecks: numDecks,
		cards:    make([]Card, 0, CardsPerDeck*numDecks),
		rng:      rng,
	}
	d.fill()
	d.Shuffle()
	return d
}

// NewWithCards creates a deck whose next draws return cards in the given
// order. Once they run out the deck rebuilds to numDecks full sets as usual.
func NewWithCards(numDecks int, rng *rand.Rand, cards []Card) *Deck {
	if numDecks < 1 {
		numDecks = 1
	}
	d := &Deck{
		numDecks: numDecks,
		cards:    make([]Card, len(cards), max(len(cards), CardsPerDeck*numDecks)),
		rng:      rng,
	}
	copy(d.cards, cards)
	return d
}

func (d *Deck) fill() {
	d.cards = d.cards[:0]
	for range d.numDecks {
		for _, suit := range Suits {
			for _, rank := range Ranks {
				d.cards = append(d.cards, NewCard(rank, suit))
			}
		}
	}
}

// Shuffle randomizes the order of the remaining cards in place
func (d *Deck) Shuffle() {
	for i := len(d.cards) - 1; i > 0; i-- {
		var j int
		if d.rng != nil {
			j = d.rng.IntN(i + 1)
		} else {
			j = rand.IntN(i + 1)
		}
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	}
}

// Draw removes and returns the top card. It never fails.
func (d *Deck) Draw() Card {
	if len(d.cards) == 0 {
		d.fill()
		d.Shuffle()
		d.reshuffles++
	}
	card := d.cards[0]
	d.cards = d.cards[1:]
	return card
}

// Remaining returns the number of cards left before the next rebuild
func (d *Deck) Remaining() int {
	return len(d.cards)
}

// Reshuffles returns how many times Draw had to rebuild an empty deck
func (d *Deck) Reshuffles() int {
	return d.reshuffles
}
