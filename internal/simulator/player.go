package simulator

import (
	"context"

	"github.com/lox/blackjack/internal/game"
)

// autoPlayer answers the engine's prompts with a strategy. It is also the
// engine's display so it can see the table before each decision.
type autoPlayer struct {
	strategy Strategy
	bet      int
	view     game.TableView
}

func (p *autoPlayer) AskName(context.Context) (string, error) {
	return p.strategy.Name(), nil
}

func (p *autoPlayer) AskBet(_ context.Context, chips int) (int, error) {
	return min(p.bet, chips), nil
}

func (p *autoPlayer) AskChoice(_ context.Context, _ string, _ []string) (string, error) {
	if p.strategy.Hit(p.view.Player, upCard(p.view.Dealer)) {
		return game.ActionHit, nil
	}
	return game.ActionStand, nil
}

func (p *autoPlayer) AskContinue(context.Context, int) (bool, error) { return true, nil }
func (p *autoPlayer) Acknowledge(context.Context) error              { return nil }

func (p *autoPlayer) ShowTable(v game.TableView)   { p.view = v }
func (p *autoPlayer) ShowResult(game.RoundOutcome) {}
func (p *autoPlayer) Notice(string)                {}
func (p *autoPlayer) Message(string)               {}

// upCard returns the point value of the dealer's face-up card
func upCard(dealer game.Hand) int {
	if len(dealer) < 2 {
		return 0
	}
	return dealer[1].Rank.Points()
}
