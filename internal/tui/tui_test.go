package tui

import (
	"context"
	"io"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/preflop-trainer/internal/drill"
	"github.com/lox/preflop-trainer/internal/randutil"
	"github.com/lox/preflop-trainer/internal/ranges"
	"github.com/lox/preflop-trainer/internal/session"
	"github.com/lox/preflop-trainer/poker"
)

func testTable(t *testing.T) *ranges.Table {
	t.Helper()
	table, err := ranges.Build(map[poker.Position]string{
		poker.UTG: "77+, AJs+, AQo+",
		poker.BTN: "22+, A2s+, K6s:0.5",
	})
	require.NoError(t, err)
	return table
}

func newTestModel(t *testing.T, testMode bool) (*TUIModel, *drill.Evaluator) {
	t.Helper()
	logger := log.NewWithOptions(io.Discard, log.Options{Level: log.ErrorLevel})
	eval := drill.NewEvaluator(testTable(t), drill.ModeStrict)
	gen := drill.NewGenerator(randutil.New(11))
	sess := session.New(gen, eval, logger)
	return NewTUIModelWithOptions(context.Background(), sess, logger, testMode), eval
}

func keyPress(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestTUITestMode(t *testing.T) {
	t.Run("test mode captures answers", func(t *testing.T) {
		m, eval := newTestModel(t, true)
		assert.True(t, m.IsTestMode())
		assert.Empty(t, m.GetCapturedLog())

		first := m.Scenario()
		want := "f"
		if eval.CorrectAction(first) == poker.Raise {
			want = "r"
		}
		_, cmd := m.Update(keyPress(want))
		assert.Nil(t, cmd)

		captured := m.GetCapturedLog()
		require.Len(t, captured, 1)
		assert.Contains(t, captured[0], first.Cards.String())
		assert.Contains(t, captured[0], "correct")
		assert.Equal(t, 1, m.Score().Asked)
		assert.Equal(t, 1, m.Score().Correct)
	})

	t.Run("production mode does not capture logs", func(t *testing.T) {
		m, _ := newTestModel(t, false)
		assert.False(t, m.IsTestMode())
		m.Update(keyPress("f"))
		assert.Nil(t, m.GetCapturedLog())
	})
}

func TestTUIAnsweringDealsNextScenario(t *testing.T) {
	m, _ := newTestModel(t, true)

	for _, k := range []string{"r", "f", "R", "F"} {
		m.Update(keyPress(k))
	}
	assert.Equal(t, 4, m.Score().Asked)
	assert.Len(t, m.GetCapturedLog(), 4)

	view := m.View()
	assert.Contains(t, view, "Preflop Trainer")
	assert.Contains(t, view, "Raise or fold?")
	assert.Contains(t, view, m.Scenario().Class().String())
}

func TestTUIIgnoresOtherKeys(t *testing.T) {
	m, _ := newTestModel(t, true)
	before := m.Scenario()

	m.Update(keyPress("x"))
	m.Update(keyPress("?"))
	assert.Equal(t, before, m.Scenario())
	assert.Zero(t, m.Score().Asked)
	assert.True(t, m.help.ShowAll)
}

func TestTUIQuit(t *testing.T) {
	for _, msg := range []tea.KeyMsg{keyPress("q"), {Type: tea.KeyCtrlC}, {Type: tea.KeyEsc}} {
		m, _ := newTestModel(t, true)
		m.Update(keyPress("f"))

		_, cmd := m.Update(msg)
		require.NotNil(t, cmd, "key %q", msg.String())
		assert.IsType(t, tea.QuitMsg{}, cmd())
		assert.True(t, m.Quitting())
		assert.Empty(t, m.View())
		assert.Equal(t, 1, m.Score().Asked, "the open scenario is not counted")
	}
}

func TestTUIWindowResize(t *testing.T) {
	m, _ := newTestModel(t, true)
	m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	assert.Equal(t, 80, m.width)
	assert.NotEmpty(t, m.View())
}

func TestRenderChart(t *testing.T) {
	table := testTable(t)
	chart := RenderChart(table, poker.BTN)

	assert.Contains(t, chart, "Button (BTN)")
	assert.Contains(t, chart, "AA")
	assert.Contains(t, chart, "50", "mixed hands show their frequency")
	assert.Contains(t, chart, "72o")
	assert.GreaterOrEqual(t, strings.Count(chart, "\n"), poker.NumRanks)

	empty := RenderChart(table, poker.SB)
	assert.Contains(t, empty, "0 classes")
}
