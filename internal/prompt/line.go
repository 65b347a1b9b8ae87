package prompt

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"
)

// Line prompts on a plain line-oriented stream. It is used when stdin is not
// a terminal or when fancy input is turned off.
type Line struct {
	in     *bufio.Reader
	out    io.Writer
	logger *log.Logger
}

// NewLine creates a line prompter reading answers from in and writing
// prompts and validation messages to out.
func NewLine(in io.Reader, out io.Writer, logger *log.Logger) *Line {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Line{
		in:     bufio.NewReader(in),
		out:    out,
		logger: logger.WithPrefix("prompt"),
	}
}

func (l *Line) AskName(ctx context.Context) (string, error) {
	raw, err := l.ask(ctx, nameLabel, acceptAll)
	if err != nil {
		return "", err
	}
	return ParseName(raw), nil
}

func (l *Line) AskBet(ctx context.Context, chips int) (int, error) {
	fmt.Fprintf(l.out, "Chips: %d\n", chips)
	raw, err := l.ask(ctx, betLabel, betCheck(chips))
	if err != nil {
		return 0, err
	}
	bet, _ := ParseBet(raw, chips)
	return bet, nil
}

func (l *Line) AskChoice(ctx context.Context, label string, options []string) (string, error) {
	raw, err := l.ask(ctx, label, choiceCheck(options))
	if err != nil {
		return "", err
	}
	choice, _ := ParseChoice(raw, options)
	return choice, nil
}

func (l *Line) AskContinue(ctx context.Context, chips int) (bool, error) {
	fmt.Fprintf(l.out, "Chips: %d\n", chips)
	raw, err := l.ask(ctx, continueLabel, acceptAll)
	if err != nil {
		return false, err
	}
	return ParseContinue(raw), nil
}

func (l *Line) Acknowledge(ctx context.Context) error {
	_, err := l.ask(ctx, ackLabel, acceptAll)
	return err
}

// ask re-prompts until check accepts the answer
func (l *Line) ask(ctx context.Context, label string, accept check) (string, error) {
	for {
		raw, err := l.readLine(ctx, label)
		if err != nil {
			return "", err
		}
		msg := accept(raw)
		if msg == "" {
			return raw, nil
		}
		l.logger.Debug("Rejected input", "label", strings.TrimSpace(label), "input", raw)
		fmt.Fprintf(l.out, "%s\n\n", msg)
	}
}

type lineResult struct {
	line string
	err  error
}

// readLine blocks until a line arrives or ctx is cancelled. A cancelled read
// leaves its goroutine waiting on the reader; the prompter is not used again
// after an interrupt.
func (l *Line) readLine(ctx context.Context, label string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", ErrInterrupted
	}
	fmt.Fprint(l.out, label)

	ch := make(chan lineResult, 1)
	go func() {
		line, err := l.in.ReadString('\n')
		ch <- lineResult{line, err}
	}()

	select {
	case <-ctx.Done():
		return "", ErrInterrupted
	case r := <-ch:
		if r.err != nil && (r.err != io.EOF || r.line == "") {
			return "", r.err
		}
		return strings.TrimRight(r.line, "\r\n"), nil
	}
}
