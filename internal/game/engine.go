package game

import (
	"context"
	"fmt"
	"io"
	"slices"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/lox/blackjack/internal/deck"
	"github.com/lox/blackjack/internal/statistics"
)

// DealerStandsOn is the total at which the dealer stops drawing, soft or hard.
const DealerStandsOn = 17

// recentHistory is how many session results the table shows
const recentHistory = 5

// Phase is a step of the round state machine
type Phase int

const (
	PhaseDealing Phase = iota
	PhaseNaturalCheck
	PhasePlayerTurn
	PhaseDealerTurn
	PhaseSettlement
	PhaseDone
)

func (p Phase) String() string {
	switch p {
	case PhaseDealing:
		return "DEALING"
	case PhaseNaturalCheck:
		return "NATURAL_CHECK"
	case PhasePlayerTurn:
		return "PLAYER_TURN"
	case PhaseDealerTurn:
		return "DEALER_TURN"
	case PhaseSettlement:
		return "SETTLEMENT"
	case PhaseDone:
		return "DONE"
	default:
		return fmt.Sprintf("Phase(%d)", int(p))
	}
}

// EngineConfig wires an engine to its deck, player and collaborators. Deck,
// Player, Input and Display are required; the rest have defaults.
type EngineConfig struct {
	Deck      *deck.Deck
	Player    *Participant
	Input     Input
	Display   Display
	Store     Store               // defaults to OfflineStore
	History   *statistics.Tracker // defaults to a fresh tracker
	Clock     quartz.Clock        // defaults to the real clock
	Logger    *log.Logger         // defaults to a discarding logger
	SessionID string
}

// Engine plays rounds of blackjack between one player and the dealer
type Engine struct {
	deck      *deck.Deck
	player    *Participant
	dealer    *Participant
	input     Input
	display   Display
	store     Store
	history   *statistics.Tracker
	clock     quartz.Clock
	logger    *log.Logger
	sessionID string

	// Per-round state
	round       int
	bet         int
	phase       Phase
	result      Result
	statsFailed bool
}

// NewEngine creates an engine. The dealer is created here and lives as long
// as the engine.
func NewEngine(cfg EngineConfig) *Engine {
	e := &Engine{
		deck:      cfg.Deck,
		player:    cfg.Player,
		dealer:    NewDealer(),
		input:     cfg.Input,
		display:   cfg.Display,
		store:     cfg.Store,
		history:   cfg.History,
		clock:     cfg.Clock,
		logger:    cfg.Logger,
		sessionID: cfg.SessionID,
		phase:     PhaseDone,
	}
	if e.store == nil {
		e.store = OfflineStore{}
	}
	if e.history == nil {
		e.history = statistics.NewTracker(cfg.Player.Chips)
	}
	if e.clock == nil {
		e.clock = quartz.NewReal()
	}
	if e.logger == nil {
		e.logger = log.New(io.Discard)
	}
	e.logger = e.logger.WithPrefix("engine")
	return e
}

// Player returns the session's player
func (e *Engine) Player() *Participant { return e.player }

// Dealer returns the house participant
func (e *Engine) Dealer() *Participant { return e.dealer }

// Round returns the number of the current or last round
func (e *Engine) Round() int { return e.round }

// Phase returns the current state machine phase
func (e *Engine) Phase() Phase { return e.phase }

// History returns the session tracker the engine records into
func (e *Engine) History() *statistics.Tracker { return e.history }

// PlayRound plays one complete round and returns its outcome. An error is
// only returned when input fails mid-round; in that case nothing is settled
// or persisted and chips are unchanged.
func (e *Engine) PlayRound(ctx context.Context) (RoundOutcome, error) {
	if e.player.Chips <= 0 {
		return RoundOutcome{}, fmt.Errorf("player %q has no chips", e.player.Name)
	}

	e.round++
	e.bet = 0
	e.result = ""
	e.statsFailed = false
	e.phase = PhaseDealing

	var outcome RoundOutcome
	for e.phase != PhaseDone {
		var err error
		switch e.phase {
		case PhaseDealing:
			err = e.deal(ctx)
		case PhaseNaturalCheck:
			e.checkNaturals(ctx)
		case PhasePlayerTurn:
			err = e.playerTurn(ctx)
		case PhaseDealerTurn:
			e.dealerTurn(ctx)
		case PhaseSettlement:
			outcome = e.settle(ctx)
		}
		if err != nil {
			e.logger.Info("Round abandoned", "round", e.round, "phase", e.phase, "error", err)
			e.phase = PhaseDone
			return RoundOutcome{}, err
		}
	}
	return outcome, nil
}

func (e *Engine) deal(ctx context.Context) error {
	e.player.ResetHand()
	e.dealer.ResetHand()

	bet, err := e.input.AskBet(ctx, e.player.Chips)
	if err != nil {
		return err
	}
	if bet < 1 || bet > e.player.Chips {
		return fmt.Errorf("bet %d outside 1..%d", bet, e.player.Chips)
	}
	e.bet = bet

	for range 2 {
		e.player.AddCard(e.deck.Draw())
		e.dealer.AddCard(e.deck.Draw())
	}

	e.logger.Debug("Dealt",
		"round", e.round,
		"bet", bet,
		"player", e.player.Hand.String(),
		"dealer", e.dealer.Hand.String(),
		"remaining", e.deck.Remaining())
	e.phase = PhaseNaturalCheck
	return nil
}

func (e *Engine) checkNaturals(ctx context.Context) {
	result, ok := ResolveNaturals(e.player.HasBlackjack(), e.dealer.HasBlackjack())
	if !ok {
		e.phase = PhasePlayerTurn
		return
	}
	e.show(ctx, "Checking for Blackjack...", true)
	e.result = result
	e.phase = PhaseSettlement
}

// playerTurn handles one hit/stand decision
func (e *Engine) playerTurn(ctx context.Context) error {
	e.show(ctx, "Your turn (H = hit / S = stand)", false)

	choice, err := e.input.AskChoice(ctx, "Enter H or S: ", []string{ActionHit, ActionStand})
	if err != nil {
		return err
	}

	switch choice {
	case ActionHit:
		card := e.deck.Draw()
		e.player.AddCard(card)
		e.logger.Debug("Player hits", "card", card.String(), "value", e.player.Value(), "soft", e.player.Hand.Soft())
		if e.player.Hand.IsBust() {
			e.show(ctx, "You bust!", true)
			e.result = PlayerBust
			e.phase = PhaseSettlement
		}
	case ActionStand:
		e.logger.Debug("Player stands", "value", e.player.Value())
		e.phase = PhaseDealerTurn
	default:
		return fmt.Errorf("unexpected choice %q", choice)
	}
	return nil
}

func (e *Engine) dealerTurn(ctx context.Context) {
	// The hole card stays down until settlement
	e.show(ctx, "Dealer's turn...", false)
	for e.dealer.Value() < DealerStandsOn {
		card := e.deck.Draw()
		e.dealer.AddCard(card)
		e.logger.Debug("Dealer draws", "card", card.String(), "value", e.dealer.Value(), "soft", e.dealer.Hand.Soft())
		e.show(ctx, "Dealer draws...", false)
	}

	e.result = Settle(e.player.Value(), e.dealer.Value())
	e.show(ctx, "Settling...", true)
	e.phase = PhaseSettlement
}

// settle applies the result, persists exactly once and records history
func (e *Engine) settle(ctx context.Context) RoundOutcome {
	delta := e.result.Delta(e.bet)
	e.player.Chips += delta

	outcome := RoundOutcome{
		SessionID:     e.sessionID,
		PlayerName:    e.player.Name,
		Round:         e.round,
		Bet:           e.bet,
		PlayerHand:    e.player.Hand.String(),
		PlayerValue:   e.player.Value(),
		DealerHand:    e.dealer.Hand.String(),
		DealerValue:   e.dealer.Value(),
		Result:        e.result,
		Delta:         delta,
		ChipsAfter:    e.player.Chips,
		DeckRemaining: e.deck.Remaining(),
		SettledAt:     e.clock.Now(),
	}

	e.history.Add(statistics.Record{
		Round:      outcome.Round,
		Result:     outcome.Result.String(),
		Bet:        outcome.Bet,
		Delta:      outcome.Delta,
		ChipsAfter: outcome.ChipsAfter,
	})

	if err := e.store.LogRound(ctx, outcome); err != nil {
		e.logger.Warn("Failed to persist round", "round", outcome.Round, "error", err)
		e.display.Notice(fmt.Sprintf("Could not save round %d: %v", outcome.Round, err))
	}

	e.logger.Info("Round settled",
		"round", outcome.Round,
		"result", outcome.Result,
		"bet", outcome.Bet,
		"delta", outcome.Delta,
		"chips", outcome.ChipsAfter,
		"reshuffles", e.deck.Reshuffles())
	e.phase = PhaseDone
	return outcome
}

func (e *Engine) show(ctx context.Context, header string, reveal bool) {
	view := TableView{
		Header:         header,
		Round:          e.round,
		CardsRemaining: e.deck.Remaining(),
		PlayerName:     e.player.Name,
		Player:         slices.Clone(e.player.Hand),
		PlayerValue:    e.player.Value(),
		Dealer:         slices.Clone(e.dealer.Hand),
		DealerValue:    e.dealer.Value(),
		RevealDealer:   reveal,
		Chips:          e.player.Chips,
		Bet:            e.bet,
		Recent:         e.history.Recent(recentHistory),
	}

	// The notice travels with the view so a screen clear cannot wipe it
	stats, err := e.store.Stats(ctx, e.player.Name)
	if err != nil {
		if !e.statsFailed {
			e.logger.Warn("Failed to load player stats", "player", e.player.Name, "error", err)
			e.statsFailed = true
		}
		view.Notice = fmt.Sprintf("Could not load stats: %v", err)
	} else {
		view.Stats = stats
	}

	e.display.ShowTable(view)
}
