package simulator

import (
	"fmt"
	"slices"

	"github.com/lox/blackjack/internal/game"
)

// Strategy decides whether to hit given the player's hand and the dealer's
// face-up card.
type Strategy interface {
	Name() string
	Hit(player game.Hand, upCard int) bool
}

// Strategies lists the built-in strategy names
var Strategies = []string{"dealer", "cautious", "basic"}

// NewStrategy returns a built-in strategy by name
func NewStrategy(name string) (Strategy, error) {
	switch name {
	case "dealer":
		return thresholdStrategy{name: name, standOn: game.DealerStandsOn}, nil
	case "cautious":
		return thresholdStrategy{name: name, standOn: 12}, nil
	case "basic":
		return basicStrategy{}, nil
	default:
		return nil, fmt.Errorf("unknown strategy %q (want one of %v)", name, slices.Clone(Strategies))
	}
}

// thresholdStrategy hits until the hand reaches standOn
type thresholdStrategy struct {
	name    string
	standOn int
}

func (s thresholdStrategy) Name() string { return s.name }

func (s thresholdStrategy) Hit(player game.Hand, _ int) bool {
	return player.Value() < s.standOn
}

// basicStrategy is hit/stand basic strategy without doubles or splits
type basicStrategy struct{}

func (basicStrategy) Name() string { return "basic" }

func (basicStrategy) Hit(player game.Hand, upCard int) bool {
	total := player.Value()
	if player.Soft() {
		switch {
		case total <= 17:
			return true
		case total == 18:
			return upCard >= 9
		default:
			return false
		}
	}

	switch {
	case total <= 11:
		return true
	case total == 12:
		return upCard < 4 || upCard > 6
	case total <= 16:
		return upCard > 6
	default:
		return false
	}
}
