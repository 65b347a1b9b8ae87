package game

import (
	"context"
	"io"

	"github.com/charmbracelet/log"
)

// Session repeats rounds until the player is out of chips or declines to
// continue.
type Session struct {
	engine  *Engine
	input   Input
	display Display
	logger  *log.Logger
}

// NewSession creates a session around an engine. The input and display are
// usually the same ones the engine was built with.
func NewSession(engine *Engine, input Input, display Display, logger *log.Logger) *Session {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Session{
		engine:  engine,
		input:   input,
		display: display,
		logger:  logger.WithPrefix("session"),
	}
}

// Run plays rounds until the session ends. It returns nil when the player
// stops or goes broke, and the input error when input goes away mid-session.
func (s *Session) Run(ctx context.Context) error {
	player := s.engine.Player()
	s.logger.Info("Session started", "player", player.Name, "chips", player.Chips)

	for {
		if player.Chips <= 0 {
			s.display.Message("You're out of chips. Game over!")
			break
		}

		outcome, err := s.engine.PlayRound(ctx)
		if err != nil {
			return err
		}
		s.display.ShowResult(outcome)
		if err := s.input.Acknowledge(ctx); err != nil {
			return err
		}

		if player.Chips <= 0 {
			continue
		}
		again, err := s.input.AskContinue(ctx, player.Chips)
		if err != nil {
			return err
		}
		if !again {
			break
		}
	}

	s.logger.Info("Session finished", "player", player.Name, "rounds", s.engine.Round(), "chips", player.Chips)
	s.display.Message("Thanks for playing!")
	return nil
}
