package game

import "time"

// RoundOutcome is the record of one settled round. It is passed by value and
// never changed after the engine emits it.
type RoundOutcome struct {
	SessionID     string
	PlayerName    string
	Round         int
	Bet           int
	PlayerHand    string
	PlayerValue   int
	DealerHand    string
	DealerValue   int
	Result        Result
	Delta         int
	ChipsAfter    int
	DeckRemaining int
	SettledAt     time.Time
}
