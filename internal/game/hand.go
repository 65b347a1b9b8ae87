package game

import (
	"strings"

	"github.com/lox/blackjack/internal/deck"
)

const (
	// Blackjack is the best possible hand value.
	Blackjack = 21

	// HiddenCard stands in for the dealer's face-down card.
	HiddenCard = "■"
)

// Hand is the ordered set of cards one participant holds for a round.
type Hand []deck.Card

// Value returns the best total for the hand. Aces count 11 and are demoted
// to 1 one at a time while the total exceeds 21. A result above 21 is a bust.
func (h Hand) Value() int {
	total, _ := h.total()
	return total
}

// Soft reports whether an ace is still counted as 11 in Value.
func (h Hand) Soft() bool {
	_, highAces := h.total()
	return highAces > 0
}

func (h Hand) total() (total, highAces int) {
	for _, c := range h {
		total += c.Rank.Points()
		if c.IsAce() {
			highAces++
		}
	}
	for total > Blackjack && highAces > 0 {
		total -= 10
		highAces--
	}
	return total, highAces
}

// IsBlackjack reports a natural: exactly two cards worth 21.
func (h Hand) IsBlackjack() bool {
	return len(h) == 2 && h.Value() == Blackjack
}

// IsBust reports whether the hand is over 21 with every ace at 1.
func (h Hand) IsBust() bool {
	return h.Value() > Blackjack
}

// Render returns the cards separated by spaces. With hideFirst the first
// card is masked, which is how the dealer's hole card is shown.
func (h Hand) Render(hideFirst bool) string {
	parts := make([]string, len(h))
	for i, c := range h {
		if i == 0 && hideFirst {
			parts[i] = HiddenCard
			continue
		}
		parts[i] = c.String()
	}
	return strings.Join(parts, " ")
}

// String renders the hand with every card face up.
func (h Hand) String() string {
	return h.Render(false)
}
