package prompt

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

var (
	promptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#04B575")).Bold(true)
	textStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FAFAFA"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B")).Bold(true)
)

// fieldModel is a single-line bubbletea prompt with inline validation
type fieldModel struct {
	input       textinput.Model
	accept      check
	errMsg      string
	value       string
	done        bool
	interrupted bool
}

func newFieldModel(label, placeholder string, accept check) *fieldModel {
	ti := textinput.New()
	ti.Prompt = label
	ti.Placeholder = placeholder
	ti.CharLimit = 64
	ti.PromptStyle = promptStyle
	ti.TextStyle = textStyle
	ti.Focus()

	return &fieldModel{input: ti, accept: accept}
}

func (m *fieldModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *fieldModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "ctrl+c", "esc":
			m.interrupted = true
			return m, tea.Quit
		case "enter":
			raw := m.input.Value()
			if errMsg := m.accept(raw); errMsg != "" {
				m.errMsg = errMsg
				m.input.SetValue("")
				return m, nil
			}
			m.value = raw
			m.done = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *fieldModel) View() string {
	if m.interrupted {
		return ""
	}
	if m.done {
		// Leave the answered prompt on screen
		return promptStyle.Render(m.input.Prompt) + m.value + "\n"
	}
	var b strings.Builder
	b.WriteString(m.input.View())
	b.WriteString("\n")
	if m.errMsg != "" {
		b.WriteString(errorStyle.Render(m.errMsg))
		b.WriteString("\n")
	}
	return b.String()
}

// Tea prompts with a small bubbletea program per question. Each program
// owns the terminal only while its question is open, so the display can
// print freely between prompts.
type Tea struct {
	in     io.Reader
	out    io.Writer
	logger *log.Logger
}

// NewTea creates a bubbletea prompter. Nil in or out use the terminal.
func NewTea(in io.Reader, out io.Writer, logger *log.Logger) *Tea {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Tea{in: in, out: out, logger: logger.WithPrefix("prompt")}
}

func (t *Tea) AskName(ctx context.Context) (string, error) {
	raw, err := t.ask(ctx, nameLabel, DefaultName, acceptAll)
	if err != nil {
		return "", err
	}
	return ParseName(raw), nil
}

func (t *Tea) AskBet(ctx context.Context, chips int) (int, error) {
	raw, err := t.ask(ctx, betLabel, fmt.Sprintf("1-%d", chips), betCheck(chips))
	if err != nil {
		return 0, err
	}
	bet, _ := ParseBet(raw, chips)
	return bet, nil
}

func (t *Tea) AskChoice(ctx context.Context, label string, options []string) (string, error) {
	raw, err := t.ask(ctx, label, strings.Join(options, "/"), choiceCheck(options))
	if err != nil {
		return "", err
	}
	choice, _ := ParseChoice(raw, options)
	return choice, nil
}

func (t *Tea) AskContinue(ctx context.Context, chips int) (bool, error) {
	raw, err := t.ask(ctx, fmt.Sprintf("Chips: %d. %s", chips, continueLabel), "Y", acceptAll)
	if err != nil {
		return false, err
	}
	return ParseContinue(raw), nil
}

func (t *Tea) Acknowledge(ctx context.Context) error {
	_, err := t.ask(ctx, ackLabel, "", acceptAll)
	return err
}

func (t *Tea) ask(ctx context.Context, label, placeholder string, accept check) (string, error) {
	opts := []tea.ProgramOption{tea.WithContext(ctx)}
	if t.in != nil {
		opts = append(opts, tea.WithInput(t.in))
	}
	if t.out != nil {
		opts = append(opts, tea.WithOutput(t.out))
	}

	final, err := tea.NewProgram(newFieldModel(label, placeholder, accept), opts...).Run()
	if err != nil {
		if errors.Is(err, tea.ErrProgramKilled) || ctx.Err() != nil {
			return "", ErrInterrupted
		}
		return "", fmt.Errorf("prompt: %w", err)
	}

	m, ok := final.(*fieldModel)
	if !ok || m.interrupted {
		t.logger.Debug("Prompt interrupted", "label", strings.TrimSpace(label))
		return "", ErrInterrupted
	}
	return m.value, nil
}
