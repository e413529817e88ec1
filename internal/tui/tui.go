// Package tui is the Bubble Tea front end of the trainer.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/lox/preflop-trainer/internal/drill"
	"github.com/lox/preflop-trainer/internal/session"
	"github.com/lox/preflop-trainer/poker"
)

// maxLogEntries is how many past answers are kept on screen.
const maxLogEntries = 8

type keyMap struct {
	Raise key.Binding
	Fold  key.Binding
	Help  key.Binding
	Quit  key.Binding
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Raise, k.Fold, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Raise, k.Fold}, {k.Help, k.Quit}}
}

var defaultKeys = keyMap{
	Raise: key.NewBinding(key.WithKeys("r", "R"), key.WithHelp("r", "raise")),
	Fold:  key.NewBinding(key.WithKeys("f", "F"), key.WithHelp("f", "fold")),
	Help:  key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more help")),
	Quit:  key.NewBinding(key.WithKeys("q", "ctrl+c", "esc"), key.WithHelp("q", "quit")),
}

// TUIModel represents the Bubble Tea model for a training session
type TUIModel struct {
	ctx     context.Context
	session *session.Session
	logger  *log.Logger

	keys keyMap
	help help.Model

	// State
	last     *session.Result
	answers  []string
	quitting bool
	width    int

	// Test mode
	testMode    bool
	capturedLog []string
}

// NewTUIModel creates a model that deals its first scenario immediately.
func NewTUIModel(ctx context.Context, sess *session.Session, logger *log.Logger) *TUIModel {
	return NewTUIModelWithOptions(ctx, sess, logger, false)
}

// NewTUIModelWithOptions creates a new TUI model with test mode option
func NewTUIModelWithOptions(ctx context.Context, sess *session.Session, logger *log.Logger, testMode bool) *TUIModel {
	m := &TUIModel{
		ctx:         ctx,
		session:     sess,
		logger:      logger.WithPrefix("tui"),
		keys:        defaultKeys,
		help:        help.New(),
		testMode:    testMode,
		capturedLog: []string{},
	}
	sess.Next()
	return m
}

// Init initializes the TUI model
func (m *TUIModel) Init() tea.Cmd {
	return tea.SetWindowTitle("Preflop Trainer")
}

// Update handles messages in the TUI
func (m *TUIModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		m.logger.Debug("Updating dimensions", "width", msg.Width, "height", msg.Height)

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			m.logger.Info("Quit requested", "score", m.session.Score())
			return m, tea.Quit
		case key.Matches(msg, m.keys.Raise):
			m.answer(poker.Raise)
		case key.Matches(msg, m.keys.Fold):
			m.answer(poker.Fold)
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
		}
	}
	return m, nil
}

// answer grades action and deals the next scenario.
func (m *TUIModel) answer(action poker.Action) {
	result, err := m.session.Answer(m.ctx, action)
	if err != nil {
		m.logger.Error("Failed to grade answer", "error", err)
		return
	}
	m.last = &result
	m.addLogEntry(describeResult(result))
	m.session.Next()
}

// View renders the TUI
func (m *TUIModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(HeaderStyle.Render("♠ ♥ Preflop Trainer ♦ ♣"))
	b.WriteString("  ")
	b.WriteString(InfoStyle.Render(fmt.Sprintf("%s mode • score %s", m.session.Mode(), m.session.Score())))
	b.WriteString("\n\n")

	if m.last != nil {
		b.WriteString(m.renderFeedback(*m.last))
		b.WriteString("\n\n")
	}

	scenario := m.Scenario()
	prompt := fmt.Sprintf("%s\n%s  %s\n\n%s",
		PositionStyle.Render(fmt.Sprintf("Unopened pot, you are in the %s (%s)", scenario.Position.Name(), scenario.Position)),
		formatCards(scenario.Cards),
		InfoStyle.Render(scenario.Class().String()),
		WarningStyle.Render("Raise or fold?"))
	pane := PaneStyle
	if m.width > 4 {
		pane = pane.Width(min(m.width-2, 60))
	}
	b.WriteString(pane.Render(prompt))
	b.WriteString("\n")

	if len(m.answers) > 0 {
		b.WriteString(InfoStyle.Render(strings.Join(m.answers, "\n")))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m *TUIModel) renderFeedback(r session.Result) string {
	freq := fmt.Sprintf("(raise %.0f%%, fold %.0f%%)", r.Raise*100, r.Fold*100)
	switch r.Verdict.Outcome {
	case drill.OutcomeCorrect:
		return SuccessStyle.Render(fmt.Sprintf("Correct! %s with %s.", r.Action, r.Verdict.Class)) + " " + InfoStyle.Render(freq)
	case drill.OutcomeFrequencyMistake:
		return WarningStyle.Render(fmt.Sprintf("Frequency mistake: this time %s with %s was expected.", r.Verdict.CorrectAction, r.Verdict.Class)) + " " + InfoStyle.Render(freq)
	default:
		return ErrorStyle.Render(fmt.Sprintf("Incorrect. The correct action with %s was %s.", r.Verdict.Class, r.Verdict.CorrectAction)) + " " + InfoStyle.Render(freq)
	}
}

// describeResult is the plain-text log line for an answered round.
func describeResult(r session.Result) string {
	return fmt.Sprintf("%s %s: %s, expected %s (%s)",
		r.Scenario.Position, r.Scenario.Cards, r.Action, r.Verdict.CorrectAction, r.Verdict.Outcome)
}

func (m *TUIModel) addLogEntry(entry string) {
	if m.testMode {
		m.capturedLog = append(m.capturedLog, entry)
	}
	m.answers = append([]string{entry}, m.answers...)
	if len(m.answers) > maxLogEntries {
		m.answers = m.answers[:maxLogEntries]
	}
}

// formatCards formats cards with colors
func formatCards(h poker.HoleCards) string {
	hi, lo := h.Cards()
	var formatted []string
	for _, card := range []poker.Card{hi, lo} {
		text := card.Rank().String() + card.Suit().Symbol()
		if card.Suit().IsRed() {
			formatted = append(formatted, RedCardStyle.Render(text))
		} else {
			formatted = append(formatted, BlackCardStyle.Render(text))
		}
	}
	return "[" + strings.Join(formatted, " ") + "]"
}

// Scenario returns the scenario currently shown.
func (m *TUIModel) Scenario() drill.Scenario {
	scenario, _ := m.session.Current()
	return scenario
}

// Score returns the session score so far.
func (m *TUIModel) Score() session.Score {
	return m.session.Score()
}

// Quitting reports whether the user asked to quit.
func (m *TUIModel) Quitting() bool {
	return m.quitting
}

// GetCapturedLog returns the captured log entries (test mode only)
func (m *TUIModel) GetCapturedLog() []string {
	if !m.testMode {
		return nil
	}
	result := make([]string, len(m.capturedLog))
	copy(result, m.capturedLog)
	return result
}

// IsTestMode returns whether the TUI is in test mode
func (m *TUIModel) IsTestMode() bool {
	return m.testMode
}

// Run starts the Bubble Tea program and blocks until the user quits. It
// returns the final model.
func Run(ctx context.Context, m *TUIModel, opts ...tea.ProgramOption) (*TUIModel, error) {
	opts = append([]tea.ProgramOption{tea.WithContext(ctx), tea.WithAltScreen()}, opts...)
	final, err := tea.NewProgram(m, opts...).Run()
	if err != nil {
		return m, fmt.Errorf("run tui: %w", err)
	}
	if fm, ok := final.(*TUIModel); ok {
		return fm, nil
	}
	return m, nil
}

var _ tea.Model = (*TUIModel)(nil)
