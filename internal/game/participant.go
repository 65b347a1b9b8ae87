package game

import "github.com/lox/blackjack/internal/deck"

// DealerName is the identity used for the house.
const DealerName = "Dealer"

// Participant is a seat at the table. Chips only matter for the player; the
// dealer's balance stays at zero.
type Participant struct {
	Name  string
	Chips int
	Hand  Hand
}

// NewPlayer creates the session's player with a starting balance
func NewPlayer(name string, chips int) *Participant {
	return &Participant{Name: name, Chips: chips}
}

// NewDealer creates the house participant
func NewDealer() *Participant {
	return &Participant{Name: DealerName}
}

// ResetHand clears the hand for a new round
func (p *Participant) ResetHand() {
	p.Hand = nil
}

// AddCard adds a card to the hand
func (p *Participant) AddCard(c deck.Card) {
	p.Hand = append(p.Hand, c)
}

// Value returns the best total of the current hand
func (p *Participant) Value() int {
	return p.Hand.Value()
}

// HasBlackjack reports a natural in the current hand
func (p *Participant) HasBlackjack() bool {
	return p.Hand.IsBlackjack()
}
