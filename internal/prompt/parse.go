// Package prompt reads player decisions from a terminal. Validation lives in
// pure Parse functions; Line and Tea are the two prompters built on them.
package prompt

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// DefaultName is used when the player leaves the name prompt blank
const DefaultName = "Player"

// MinBet is the smallest accepted bet
const MinBet = 1

// ErrInterrupted is returned when the player cancels a prompt
var ErrInterrupted = errors.New("prompt: interrupted")

// Reason explains why an answer was rejected
type Reason int

const (
	ReasonOK Reason = iota
	ReasonNotInteger
	ReasonBelowMinimum
	ReasonAboveChips
	ReasonInvalidChoice
)

func (r Reason) String() string {
	switch r {
	case ReasonOK:
		return "ok"
	case ReasonNotInteger:
		return "Please enter a whole number."
	case ReasonBelowMinimum:
		return fmt.Sprintf("Bet must be at least %d.", MinBet)
	case ReasonAboveChips:
		return "Not enough chips, try again."
	case ReasonInvalidChoice:
		return "Invalid input."
	default:
		return fmt.Sprintf("Reason(%d)", int(r))
	}
}

// ParseBet validates a bet against the player's chips
func ParseBet(raw string, chips int) (int, Reason) {
	bet, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, ReasonNotInteger
	}
	if bet < MinBet {
		return 0, ReasonBelowMinimum
	}
	if bet > chips {
		return 0, ReasonAboveChips
	}
	return bet, ReasonOK
}

// ParseChoice matches raw against options ignoring case and surrounding
// space, returning the option as it was given.
func ParseChoice(raw string, options []string) (string, Reason) {
	raw = strings.TrimSpace(raw)
	for _, opt := range options {
		if strings.EqualFold(raw, opt) {
			return opt, ReasonOK
		}
	}
	return "", ReasonInvalidChoice
}

// ChoiceHint is the message shown after an invalid choice
func ChoiceHint(options []string) string {
	sorted := slices.Clone(options)
	for i, opt := range sorted {
		sorted[i] = strings.ToUpper(opt)
	}
	slices.Sort(sorted)
	return fmt.Sprintf("Invalid input, please enter %s.", strings.Join(sorted, ", "))
}

// ParseContinue reports whether the answer means "play again": blank or Y.
func ParseContinue(raw string) bool {
	answer := strings.TrimSpace(raw)
	return answer == "" || strings.EqualFold(answer, "y")
}

// ParseName trims the name and falls back to DefaultName
func ParseName(raw string) string {
	if name := strings.TrimSpace(raw); name != "" {
		return name
	}
	return DefaultName
}

// Prompt labels shared by both prompters
const (
	nameLabel     = "Enter your name (default Player): "
	betLabel      = "Enter your bet (minimum 1): "
	continueLabel = "Play another round? (Enter=Y / N=quit): "
	ackLabel      = "Press Enter to continue..."
)

// check returns an error message for a rejected answer, or "" to accept it
type check func(raw string) string

func acceptAll(string) string { return "" }

func betCheck(chips int) check {
	return func(raw string) string {
		if _, reason := ParseBet(raw, chips); reason != ReasonOK {
			return reason.String()
		}
		return ""
	}
}

func choiceCheck(options []string) check {
	return func(raw string) string {
		if _, reason := ParseChoice(raw, options); reason != ReasonOK {
			return ChoiceHint(options)
		}
		return ""
	}
}
