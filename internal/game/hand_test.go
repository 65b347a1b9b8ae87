package game

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lox/blackjack/internal/deck"
)

func hand(s string) Hand {
	return Hand(deck.MustParseCards(s))
}

func TestHandValue(t *testing.T) {
	tests := []struct {
		name  string
		cards string
		want  int
		soft  bool
	}{
		{"empty", "", 0, false},
		{"two numerics", "7♠ 9♦", 16, false},
		{"faces count ten", "K♠ Q♥", 20, false},
		{"ace high", "A♠ 6♥", 17, true},
		{"ace and ten", "A♠ K♥", 21, true},
		{"ace demoted", "A♠ 6♥ K♣", 17, false},
		{"two aces", "A♠ A♥", 12, true},
		{"three aces and eight", "A♠ A♥ A♦ 8♣", 21, true},
		{"four aces", "A♠ A♥ A♦ A♣", 14, true},
		{"all aces low still bust", "A♠ K♥ Q♦ 5♣", 26, false},
		{"bust without aces", "10♠ 6♥ 9♦", 25, false},
		{"five card 21", "2♠ 3♥ 4♦ 5♣ 7♠", 21, false},
		{"soft to hard", "A♠ 5♥ K♣ A♦", 17, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := hand(tt.cards)
			assert.Equal(t, tt.want, h.Value())
			assert.Equal(t, tt.soft, h.Soft())
			assert.Equal(t, tt.want > 21, h.IsBust())
		})
	}
}

// bestValue enumerates every 1/11 choice per ace and picks the highest total
// not over 21, or the lowest total when every choice busts.
func bestValue(h Hand) int {
	base, aces := 0, 0
	for _, c := range h {
		if c.IsAce() {
			aces++
			continue
		}
		base += c.Rank.Points()
	}
	best, lowest := -1, -1
	for high := 0; high <= aces; high++ {
		total := base + high*11 + (aces - high)
		if total <= 21 && total > best {
			best = total
		}
		if lowest < 0 || total < lowest {
			lowest = total
		}
	}
	if best >= 0 {
		return best
	}
	return lowest
}

func TestHandValueMatchesExhaustiveSearch(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	for range 5000 {
		n := 1 + rng.IntN(7)
		h := make(Hand, n)
		for i := range h {
			h[i] = deck.NewCard(deck.Ranks[rng.IntN(len(deck.Ranks))], deck.Suits[rng.IntN(len(deck.Suits))])
		}
		assert.Equal(t, bestValue(h), h.Value(), "hand %s", h)
	}
}

func TestHandIsBlackjack(t *testing.T) {
	tests := []struct {
		cards string
		want  bool
	}{
		{"A♠ K♥", true},
		{"10♦ A♣", true},
		{"A♠ J♠", true},
		{"A♠ 9♥", false},
		{"K♠ Q♥", false},
		{"7♠ 7♥ 7♦", false},
		{"A♠ 5♥ 5♦", false},
		{"A♠", false},
	}
	for _, tt := range tests {
		t.Run(tt.cards, func(t *testing.T) {
			assert.Equal(t, tt.want, hand(tt.cards).IsBlackjack())
		})
	}
}

func TestHandRender(t *testing.T) {
	h := hand("A♠ 10♥ K♣")
	assert.Equal(t, "A♠ 10♥ K♣", h.Render(false))
	assert.Equal(t, "■ 10♥ K♣", h.Render(true))
	assert.Equal(t, "A♠ 10♥ K♣", h.String())
	assert.Equal(t, "", Hand(nil).Render(true))
}

func TestParticipant(t *testing.T) {
	p := NewPlayer("Bob", 50)
	p.AddCard(deck.NewCard(deck.Ace, deck.Spades))
	p.AddCard(deck.NewCard(deck.King, deck.Hearts))
	assert.Equal(t, 21, p.Value())
	assert.True(t, p.HasBlackjack())

	p.ResetHand()
	assert.Empty(t, p.Hand)
	assert.Equal(t, 50, p.Chips)

	d := NewDealer()
	assert.Equal(t, DealerName, d.Name)
	assert.Zero(t, d.Chips)
}
