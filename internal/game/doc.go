// Package game implements the blackjack round engine.
//
// The main type is Engine, which plays one round at a time against an
// automated dealer: dealing, the natural check, the player's hit/stand turn,
// the dealer's turn and settlement. Session repeats rounds until the player
// runs out of chips or stops.
//
// # Basic Usage
//
//	player := game.NewPlayer("Alice", 100)
//	e := game.NewEngine(game.EngineConfig{
//	    Deck:    deck.New(1, randutil.New(seed)),
//	    Player:  player,
//	    Input:   input,
//	    Display: display,
//	})
//	outcome, err := e.PlayRound(ctx)
//
// # Collaborators
//
// The engine never touches the terminal or a database directly. It talks to
// three interfaces supplied at construction:
//   - Input: bets, hit/stand choices and "continue?" answers
//   - Display: renders the table whenever it changes
//   - Store: best-effort persistence of every RoundOutcome
//
// A nil Store is replaced by OfflineStore, so the round flow is identical with
// or without a database.
//
// # Deterministic Testing
//
// Supply a deck built with deck.NewWithCards to script the exact cards dealt.
// Cards are dealt player, dealer, player, dealer, then one per hit and one per
// dealer draw.
//
// # Settlement
//
// Chips follow a net-settlement model: the bet is never removed up-front, only
// the result's delta is applied once the round is decided.
package game
