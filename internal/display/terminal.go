// Package display draws the blackjack table on a terminal.
package display

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/lox/blackjack/internal/game"
)

// DefaultLowCardThreshold is the remaining-card count below which the table
// warns about the coming reshuffle.
const DefaultLowCardThreshold = 15

const ruleWidth = 40

// Options controls how the table is drawn
type Options struct {
	LowCardThreshold int
	ClearScreen      bool
	Plain            bool // no colours
}

// Terminal renders table state to a terminal or any writer
type Terminal struct {
	out      *termenv.Output
	styles   styles
	lowCards int
	clear    bool
}

// New creates a terminal display writing to w
func New(w io.Writer, opts Options) *Terminal {
	out := termenv.NewOutput(w)
	renderer := lipgloss.NewRenderer(w)
	if opts.Plain {
		renderer.SetColorProfile(termenv.Ascii)
	}
	if opts.LowCardThreshold <= 0 {
		opts.LowCardThreshold = DefaultLowCardThreshold
	}
	return &Terminal{
		out:      out,
		styles:   newStyles(renderer),
		lowCards: opts.LowCardThreshold,
		clear:    opts.ClearScreen,
	}
}

// Clear wipes the screen when clearing is enabled
func (t *Terminal) Clear() {
	if t.clear {
		t.out.ClearScreen()
	}
}

// Banner prints the welcome text and house rules
func (t *Terminal) Banner() {
	t.Clear()
	fmt.Fprintln(t.out, t.styles.header.Render(" Welcome to Blackjack (21)! "))
	fmt.Fprintln(t.out, t.styles.info.Render("Blackjack pays 3:2, dealer stands on 17, aces count as 1 or 11."))
	fmt.Fprintln(t.out)
}

func (t *Terminal) ShowTable(v game.TableView) {
	t.Clear()
	s := t.styles
	var b strings.Builder

	if v.Header != "" {
		b.WriteString(s.header.Render(" " + v.Header + " "))
		b.WriteString("\n")
		b.WriteString(s.rule.Render(strings.Repeat("=", ruleWidth)))
		b.WriteString("\n")
	}
	if v.Notice != "" {
		b.WriteString(s.warning.Render("(" + v.Notice + ")"))
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "%s %d    %s %d\n",
		s.label.Render("Round:"), v.Round,
		s.label.Render("Cards remaining:"), v.CardsRemaining)
	if v.CardsRemaining < t.lowCards {
		b.WriteString(s.warning.Render("! Low on cards, the deck will be reshuffled automatically."))
		b.WriteString("\n")
	}
	b.WriteString(s.rule.Render(strings.Repeat("-", ruleWidth)))
	b.WriteString("\n")

	dealerValue := "?"
	if v.RevealDealer {
		dealerValue = strconv.Itoa(v.DealerValue)
	}
	fmt.Fprintf(&b, "%s %s  (value: %s)\n",
		s.label.Render("Dealer:"), t.renderHand(v.Dealer, !v.RevealDealer), s.value.Render(dealerValue))
	fmt.Fprintf(&b, "%s %s  (value: %s)\n",
		s.label.Render("You   :"), t.renderHand(v.Player, false), s.value.Render(strconv.Itoa(v.PlayerValue)))
	b.WriteString(s.rule.Render(strings.Repeat("-", ruleWidth)))
	b.WriteString("\n")

	fmt.Fprintf(&b, "%s %d    %s %d\n",
		s.label.Render("Chips:"), v.Chips,
		s.label.Render("Current bet:"), v.Bet)

	if v.Stats != nil {
		b.WriteString(s.info.Render(fmt.Sprintf("Lifetime: %d rounds played, best chips %d",
			v.Stats.TotalRounds, v.Stats.MaxChips)))
		b.WriteString("\n")
	}

	if len(v.Recent) > 0 {
		b.WriteString("\n")
		b.WriteString(s.label.Render("Recent results (this session):"))
		b.WriteString("\n")
		for _, rec := range v.Recent {
			b.WriteString("  " + rec.String() + "\n")
		}
	}

	fmt.Fprint(t.out, b.String())
}

func (t *Terminal) ShowResult(o game.RoundOutcome) {
	s := t.styles
	var line string
	switch o.Result {
	case game.PlayerBlackjack:
		line = s.success.Render(fmt.Sprintf("Blackjack! You win %d.", o.Delta))
	case game.DealerBlackjack:
		line = s.failure.Render("Dealer has Blackjack. You lose.")
	case game.PlayerBust:
		line = s.failure.Render("Bust! You lose.")
	case game.DealerBust:
		line = s.success.Render("Dealer busts! You win.")
	case game.Win:
		line = s.success.Render("You win!")
	case game.Lose:
		line = s.failure.Render("You lose.")
	case game.Push:
		if bothNaturals(o) {
			line = s.info.Render("Both have Blackjack. Push.")
		} else {
			line = s.info.Render("Push.")
		}
	default:
		line = string(o.Result)
	}
	fmt.Fprintln(t.out)
	fmt.Fprintln(t.out, line)
	fmt.Fprintf(t.out, "Chips: %d (%+d)\n", o.ChipsAfter, o.Delta)
}

func (t *Terminal) Notice(msg string) {
	fmt.Fprintln(t.out, t.styles.warning.Render("("+msg+")"))
}

func (t *Terminal) Message(msg string) {
	fmt.Fprintln(t.out, msg)
}

// renderHand colours each card of the hand's text form
func (t *Terminal) renderHand(h game.Hand, hideFirst bool) string {
	parts := strings.Fields(h.Render(hideFirst))
	for i, part := range parts {
		switch {
		case part == game.HiddenCard:
			parts[i] = t.styles.hidden.Render(part)
		case h[i].IsRed():
			parts[i] = t.styles.redCard.Render(part)
		default:
			parts[i] = t.styles.black.Render(part)
		}
	}
	return strings.Join(parts, " ")
}

func bothNaturals(o game.RoundOutcome) bool {
	return o.PlayerValue == game.Blackjack && o.DealerValue == game.Blackjack &&
		len(strings.Fields(o.PlayerHand)) == 2 && len(strings.Fields(o.DealerHand)) == 2
}
