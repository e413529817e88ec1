package session

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/preflop-trainer/internal/drill"
	"github.com/lox/preflop-trainer/internal/history"
	"github.com/lox/preflop-trainer/internal/randutil"
	"github.com/lox/preflop-trainer/internal/ranges"
	"github.com/lox/preflop-trainer/poker"
)

type memoryRecorder struct {
	records []history.Record
	err     error
}

func (m *memoryRecorder) Record(_ context.Context, r history.Record) error {
	if m.err != nil {
		return m.err
	}
	m.records = append(m.records, r)
	return nil
}

func quietLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.ErrorLevel})
}

func newSession(t *testing.T, mode drill.Mode, opts ...Option) (*Session, *drill.Evaluator) {
	t.Helper()
	table, err := ranges.Build(map[poker.Position]string{
		poker.UTG: "77+, ATs+, KQs, AQo+",
		poker.BTN: "22+, A2s+, K6s:0.5, T9o:0.5",
	})
	require.NoError(t, err)
	eval := drill.NewEvaluator(table, mode)
	gen := drill.NewGenerator(randutil.New(7), drill.WithPositions(poker.UTG, poker.BTN))
	return New(gen, eval, quietLogger(), opts...), eval
}

func opposite(a poker.Action) poker.Action {
	if a == poker.Raise {
		return poker.Fold
	}
	return poker.Raise
}

func TestAnswerWithoutScenario(t *testing.T) {
	s, _ := newSession(t, drill.ModeStrict)
	_, err := s.Answer(context.Background(), poker.Fold)
	assert.ErrorIs(t, err, ErrNoScenario)

	s.Next()
	_, err = s.Answer(context.Background(), poker.Fold)
	require.NoError(t, err)

	_, err = s.Answer(context.Background(), poker.Fold)
	assert.ErrorIs(t, err, ErrNoScenario, "each scenario is answered once")
}

func TestScoreCountsOnlyAnsweredRounds(t *testing.T) {
	s, eval := newSession(t, drill.ModeStrict)
	ctx := context.Background()

	for range 3 {
		scenario := s.Next()
		_, err := s.Answer(ctx, eval.CorrectAction(scenario))
		require.NoError(t, err)
	}
	scenario := s.Next()
	_, err := s.Answer(ctx, opposite(eval.CorrectAction(scenario)))
	require.NoError(t, err)

	s.Next() // quit before answering

	_, pending := s.Current()
	assert.True(t, pending)

	score := s.Score()
	assert.Equal(t, 4, score.Asked)
	assert.Equal(t, 3, score.Correct)
	assert.Equal(t, 1, score.Wrong)
	assert.InDelta(t, 75.0, score.Percentage(), 1e-9)
	assert.Equal(t, "3/4 (75.0%)", score.String())
}

func TestScoreFrequencyMistakesEarnHalfCredit(t *testing.T) {
	sc := Score{}
	sc.add(drill.OutcomeCorrect)
	sc.add(drill.OutcomeFrequencyMistake)
	sc.add(drill.OutcomeFrequencyMistake)
	sc.add(drill.OutcomeWrong)

	assert.Equal(t, 4, sc.Asked)
	assert.InDelta(t, 2.0, sc.Credit(), 1e-9)
	assert.InDelta(t, 50.0, sc.Percentage(), 1e-9)
	assert.Zero(t, Score{}.Percentage())
	assert.Equal(t, "0/0 (0.0%)", Score{}.String())
}

func TestAnswerMeasuresLatency(t *testing.T) {
	clock := quartz.NewMock(t)
	s, _ := newSession(t, drill.ModeStrict, WithClock(clock))

	s.Next()
	clock.Advance(1500 * time.Millisecond)
	result, err := s.Answer(context.Background(), poker.Fold)
	require.NoError(t, err)
	assert.Equal(t, 1500*time.Millisecond, result.Latency)

	s.Next()
	clock.Advance(500 * time.Millisecond)
	_, err = s.Answer(context.Background(), poker.Fold)
	require.NoError(t, err)

	assert.Equal(t, 2, s.Latency().Count())
	assert.Equal(t, time.Second, s.Latency().Mean())
	assert.InDelta(t, 1.0, result.Raise+result.Fold, 1e-9)
}

func TestAnswerRecordsHistory(t *testing.T) {
	clock := quartz.NewMock(t)
	rec := &memoryRecorder{}
	s, eval := newSession(t, drill.ModeWeighted, WithClock(clock), WithRecorder(rec), WithID("session-1"))
	assert.Equal(t, "session-1", s.ID())
	assert.Equal(t, drill.ModeWeighted, s.Mode())

	scenario := s.Next()
	clock.Advance(time.Second)
	result, err := s.Answer(context.Background(), eval.CorrectAction(scenario))
	require.NoError(t, err)
	assert.True(t, result.Verdict.Correct)

	require.Len(t, rec.records, 1)
	r := rec.records[0]
	assert.Equal(t, "session-1", r.SessionID)
	assert.Equal(t, scenario.Position, r.Position)
	assert.Equal(t, scenario.Cards, r.Cards)
	assert.Equal(t, scenario.Class(), r.Class)
	assert.Equal(t, drill.OutcomeCorrect, r.Outcome)
	assert.Equal(t, drill.ModeWeighted, r.Mode)
	assert.Equal(t, time.Second, r.Latency)
	assert.Equal(t, clock.Now(), r.AnsweredAt)
}

func TestRecorderFailureDoesNotStopSession(t *testing.T) {
	rec := &memoryRecorder{err: errors.New("disk full")}
	s, _ := newSession(t, drill.ModeStrict, WithRecorder(rec))

	s.Next()
	_, err := s.Answer(context.Background(), poker.Raise)
	require.NoError(t, err)
	assert.Equal(t, 1, s.Score().Asked)
}

func TestGeneratedIDsAreUnique(t *testing.T) {
	a, _ := newSession(t, drill.ModeStrict)
	b, _ := newSession(t, drill.ModeStrict)
	assert.NotEmpty(t, a.ID())
	assert.NotEqual(t, a.ID(), b.ID())
}
