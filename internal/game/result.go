package game

// Result is the settlement category of a round. The string values are the
// ones persisted in the rounds table.
type Result string

const (
	Win             Result = "WIN"
	Lose            Result = "LOSE"
	Push            Result = "PUSH"
	PlayerBlackjack Result = "PLAYER_BJ"
	DealerBlackjack Result = "DEALER_BJ"
	PlayerBust      Result = "PLAYER_BUST"
	DealerBust      Result = "DEALER_BUST"
)

// Results lists every category.
var Results = []Result{Win, Lose, Push, PlayerBlackjack, DealerBlackjack, PlayerBust, DealerBust}

func (r Result) String() string {
	return string(r)
}

// Delta returns the change to the player's chips for this result.
func (r Result) Delta(bet int) int {
	switch r {
	case PlayerBlackjack:
		return BlackjackPayout(bet)
	case Win, DealerBust:
		return bet
	case Lose, PlayerBust, DealerBlackjack:
		return -bet
	default:
		return 0
	}
}

// BlackjackPayout returns the 3:2 winnings for a natural, rounded down.
func BlackjackPayout(bet int) int {
	return bet * 3 / 2
}

// ResolveNaturals decides a round where at least one side holds a natural.
// ok is false when neither does and play continues normally.
func ResolveNaturals(playerBlackjack, dealerBlackjack bool) (result Result, ok bool) {
	switch {
	case playerBlackjack && dealerBlackjack:
		return Push, true
	case playerBlackjack:
		return PlayerBlackjack, true
	case dealerBlackjack:
		return DealerBlackjack, true
	default:
		return "", false
	}
}

// Settle compares final values once both sides have played. The player is
// never over 21 here; a player bust is settled before the dealer acts.
func Settle(playerValue, dealerValue int) Result {
	switch {
	case dealerValue > Blackjack:
		return DealerBust
	case playerValue > dealerValue:
		return Win
	case playerValue < dealerValue:
		return Lose
	default:
		return Push
	}
}
