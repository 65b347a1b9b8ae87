package statistics

import (
	"fmt"
	"maps"
	"math"
)

// Result strings as recorded by the engine
const (
	resultPlayerBlackjack = "PLAYER_BJ"
	resultPlayerBust      = "PLAYER_BUST"
)

// Record is the session-local summary of one settled round
type Record struct {
	Round      int    `json:"round"`
	Result     string `json:"result"`
	Bet        int    `json:"bet"`
	Delta      int    `json:"delta"`       // Chips won (positive) or lost (negative)
	ChipsAfter int    `json:"chips_after"` // Balance once the round settled
}

// String returns a one-line history entry, e.g. "Round 3: WIN -> chips 120"
func (r Record) String() string {
	return fmt.Sprintf("Round %d: %s -> chips %d", r.Round, r.Result, r.ChipsAfter)
}

// Tracker accumulates the rounds played in one session
type Tracker struct {
	StartChips int
	Rounds     int
	Wins       int // Rounds with a positive delta
	Losses     int // Rounds with a negative delta
	Pushes     int
	Blackjacks int // Player naturals
	Busts      int // Player busts
	Net        int
	PeakChips  int

	SumDelta  float64
	SumDelta2 float64 // Sum of squares for variance calculation
	ByResult  map[string]int

	records []Record
}

// NewTracker creates a tracker for a session starting with chips
func NewTracker(startChips int) *Tracker {
	return &Tracker{
		StartChips: startChips,
		PeakChips:  startChips,
		ByResult:   make(map[string]int),
	}
}

// Add incorporates a settled round
func (t *Tracker) Add(r Record) {
	if t.ByResult == nil {
		t.ByResult = make(map[string]int)
	}
	t.Rounds++
	t.Net += r.Delta
	t.SumDelta += float64(r.Delta)
	t.SumDelta2 += float64(r.Delta) * float64(r.Delta)
	t.ByResult[r.Result]++

	switch {
	case r.Delta > 0:
		t.Wins++
	case r.Delta < 0:
		t.Losses++
	default:
		t.Pushes++
	}
	switch r.Result {
	case resultPlayerBlackjack:
		t.Blackjacks++
	case resultPlayerBust:
		t.Busts++
	}

	if r.ChipsAfter > t.PeakChips {
		t.PeakChips = r.ChipsAfter
	}
	t.records = append(t.records, r)
}

// Mean returns the average chip delta per round
func (t *Tracker) Mean() float64 {
	if t.Rounds == 0 {
		return 0
	}
	return t.SumDelta / float64(t.Rounds)
}

// Variance returns the sample variance of the per-round deltas
func (t *Tracker) Variance() float64 {
	if t.Rounds < 2 {
		return 0
	}
	mean := t.Mean()
	return (t.SumDelta2 - float64(t.Rounds)*mean*mean) / float64(t.Rounds-1)
}

// StdDev returns the sample standard deviation of the per-round deltas
func (t *Tracker) StdDev() float64 {
	return math.Sqrt(t.Variance())
}

// StdError returns the standard error of the mean delta
func (t *Tracker) StdError() float64 {
	if t.Rounds == 0 {
		return 0
	}
	return t.StdDev() / math.Sqrt(float64(t.Rounds))
}

// ConfidenceInterval95 returns the 95% confidence interval for the mean delta
func (t *Tracker) ConfidenceInterval95() (low, high float64) {
	mean := t.Mean()
	margin := 1.96 * t.StdError()
	return mean - margin, mean + margin
}

// WinRate returns the fraction of rounds that gained chips
func (t *Tracker) WinRate() float64 {
	if t.Rounds == 0 {
		return 0
	}
	return float64(t.Wins) / float64(t.Rounds)
}

// Recent returns up to n of the latest records, oldest first
func (t *Tracker) Recent(n int) []Record {
	if n <= 0 || len(t.records) == 0 {
		return nil
	}
	start := max(len(t.records)-n, 0)
	out := make([]Record, len(t.records)-start)
	copy(out, t.records[start:])
	return out
}

// Records returns every round in play order
func (t *Tracker) Records() []Record {
	out := make([]Record, len(t.records))
	copy(out, t.records)
	return out
}

// Validate checks the tallies agree with each other
func (t *Tracker) Validate() error {
	if t.Wins+t.Losses+t.Pushes != t.Rounds {
		return fmt.Errorf("wins+losses+pushes (%d) does not match rounds (%d)",
			t.Wins+t.Losses+t.Pushes, t.Rounds)
	}
	if len(t.records) != t.Rounds {
		return fmt.Errorf("records length (%d) does not match rounds (%d)", len(t.records), t.Rounds)
	}
	if len(t.records) > 0 {
		last := t.records[len(t.records)-1].ChipsAfter
		if t.StartChips+t.Net != last {
			return fmt.Errorf("ledger mismatch: start %d + net %d != final %d", t.StartChips, t.Net, last)
		}
	}
	return nil
}

// Summary is the exportable view of a tracker
type Summary struct {
	Rounds     int            `json:"rounds"`
	Wins       int            `json:"wins"`
	Losses     int            `json:"losses"`
	Pushes     int            `json:"pushes"`
	Blackjacks int            `json:"blackjacks"`
	Busts      int            `json:"busts"`
	StartChips int            `json:"start_chips"`
	EndChips   int            `json:"end_chips"`
	PeakChips  int            `json:"peak_chips"`
	Net        int            `json:"net"`
	MeanDelta  float64        `json:"mean_delta"`
	StdDev     float64        `json:"std_dev"`
	WinRate    float64        `json:"win_rate"`
	ByResult   map[string]int `json:"by_result"`
	History    []Record       `json:"history"`
}

// Summary snapshots the tracker
func (t *Tracker) Summary() Summary {
	byResult := make(map[string]int, len(t.ByResult))
	maps.Copy(byResult, t.ByResult)

	return Summary{
		Rounds:     t.Rounds,
		Wins:       t.Wins,
		Losses:     t.Losses,
		Pushes:     t.Pushes,
		Blackjacks: t.Blackjacks,
		Busts:      t.Busts,
		StartChips: t.StartChips,
		EndChips:   t.StartChips + t.Net,
		PeakChips:  t.PeakChips,
		Net:        t.Net,
		MeanDelta:  t.Mean(),
		StdDev:     t.StdDev(),
		WinRate:    t.WinRate(),
		ByResult:   byResult,
		History:    t.Records(),
	}
}
