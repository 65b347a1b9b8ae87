package game

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/stretchr/testify/require"

	"github.com/lox/blackjack/internal/deck"
	"github.com/lox/blackjack/internal/randutil"
)

// scriptedInput replays canned answers and reports io.EOF once a script runs out
type scriptedInput struct {
	name      string
	bets      []int
	choices   []string
	continues []bool

	betCalls      int
	choiceCalls   int
	continueCalls int
	acks          int
	ackErr        error
}

func (s *scriptedInput) AskName(context.Context) (string, error) {
	if s.name == "" {
		return "Player", nil
	}
	return s.name, nil
}

func (s *scriptedInput) AskBet(_ context.Context, chips int) (int, error) {
	s.betCalls++
	if len(s.bets) == 0 {
		return 0, io.EOF
	}
	bet := s.bets[0]
	s.bets = s.bets[1:]
	return bet, nil
}

func (s *scriptedInput) AskChoice(_ context.Context, _ string, options []string) (string, error) {
	s.choiceCalls++
	if len(s.choices) == 0 {
		return "", io.EOF
	}
	c := s.choices[0]
	s.choices = s.choices[1:]
	return c, nil
}

func (s *scriptedInput) AskContinue(context.Context, int) (bool, error) {
	s.continueCalls++
	if len(s.continues) == 0 {
		return false, io.EOF
	}
	c := s.continues[0]
	s.continues = s.continues[1:]
	return c, nil
}

func (s *scriptedInput) Acknowledge(context.Context) error {
	s.acks++
	return s.ackErr
}

// recordingDisplay keeps everything it was asked to show
type recordingDisplay struct {
	tables   []TableView
	results  []RoundOutcome
	notices  []string
	messages []string
}

func (d *recordingDisplay) ShowTable(v TableView)     { d.tables = append(d.tables, v) }
func (d *recordingDisplay) ShowResult(o RoundOutcome) { d.results = append(d.results, o) }
func (d *recordingDisplay) Notice(msg string)         { d.notices = append(d.notices, msg) }
func (d *recordingDisplay) Message(msg string)        { d.messages = append(d.messages, msg) }
func (d *recordingDisplay) lastTable() TableView      { return d.tables[len(d.tables)-1] }

// memoryStore is an in-memory Store with switchable failures
type memoryStore struct {
	players  map[string]int
	rounds   []RoundOutcome
	logErr   error
	statsErr error
}

func newMemoryStore() *memoryStore {
	return &memoryStore{players: make(map[string]int)}
}

func (m *memoryStore) EnsurePlayer(_ context.Context, name string) error {
	m.players[name] = 1
	return nil
}

func (m *memoryStore) LogRound(_ context.Context, o RoundOutcome) error {
	if m.logErr != nil {
		return m.logErr
	}
	m.rounds = append(m.rounds, o)
	return nil
}

func (m *memoryStore) Stats(_ context.Context, name string) (*PlayerStats, error) {
	if m.statsErr != nil {
		return nil, m.statsErr
	}
	stats := &PlayerStats{}
	for _, r := range m.rounds {
		if r.PlayerName != name {
			continue
		}
		stats.TotalRounds++
		stats.MaxChips = max(stats.MaxChips, r.ChipsAfter)
	}
	return stats, nil
}

func (m *memoryStore) Close() error { return nil }

var errStoreDown = errors.New("connection refused")

type testTable struct {
	engine  *Engine
	input   *scriptedInput
	display *recordingDisplay
	store   *memoryStore
	deck    *deck.Deck
	clock   *quartz.Mock
}

// newTestTable builds an engine whose deck deals cards in the given order
// (player, dealer, player, dealer, then hits and dealer draws).
func newTestTable(t *testing.T, chips int, cards string, input *scriptedInput) *testTable {
	t.Helper()
	d := deck.NewWithCards(1, randutil.New(1), deck.MustParseCards(cards))
	display := &recordingDisplay{}
	store := newMemoryStore()
	clock := quartz.NewMock(t)
	logger := log.NewWithOptions(io.Discard, log.Options{Level: log.ErrorLevel})

	e := NewEngine(EngineConfig{
		Deck:      d,
		Player:    NewPlayer("Alice", chips),
		Input:     input,
		Display:   display,
		Store:     store,
		Clock:     clock,
		Logger:    logger,
		SessionID: "test-session",
	})
	require.Equal(t, PhaseDone, e.Phase())
	return &testTable{engine: e, input: input, display: display, store: store, deck: d, clock: clock}
}

func (tt *testTable) play(t *testing.T) RoundOutcome {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	outcome, err := tt.engine.PlayRound(ctx)
	require.NoError(t, err)
	require.Equal(t, PhaseDone, tt.engine.Phase())
	return outcome
}
