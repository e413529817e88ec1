// Package session runs a training session: it deals scenarios, grades the
// answers, keeps the score and forwards answered rounds to a recorder.
package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/google/uuid"

	"github.com/lox/preflop-trainer/internal/drill"
	"github.com/lox/preflop-trainer/internal/history"
	"github.com/lox/preflop-trainer/internal/statistics"
	"github.com/lox/preflop-trainer/poker"
)

// ErrNoScenario is returned by Answer when no scenario is awaiting an answer.
var ErrNoScenario = errors.New("no scenario awaiting an answer")

// Recorder stores answered rounds.
type Recorder interface {
	Record(ctx context.Context, r history.Record) error
}

// Result describes one answered round.
type Result struct {
	Scenario drill.Scenario
	Action   poker.Action
	Verdict  drill.Verdict
	Latency  time.Duration
	Raise    float64
	Fold     float64
}

// Session deals scenarios and grades answers. It is not safe for concurrent use.
type Session struct {
	id       string
	gen      *drill.Generator
	eval     *drill.Evaluator
	clock    quartz.Clock
	recorder Recorder
	logger   *log.Logger

	current drill.Scenario
	pending bool
	shownAt time.Time
	score   Score
	latency statistics.Latencies
}

// Option configures a Session.
type Option func(*Session)

// WithClock sets the clock used to measure decision latency.
func WithClock(clock quartz.Clock) Option {
	return func(s *Session) { s.clock = clock }
}

// WithRecorder stores every answered round in r.
func WithRecorder(r Recorder) Option {
	return func(s *Session) { s.recorder = r }
}

// WithID overrides the generated session ID.
func WithID(id string) Option {
	return func(s *Session) { s.id = id }
}

// New creates a session drawing scenarios from gen and grading them with eval.
func New(gen *drill.Generator, eval *drill.Evaluator, logger *log.Logger, opts ...Option) *Session {
	s := &Session{
		id:    uuid.NewString(),
		gen:   gen,
		eval:  eval,
		clock: quartz.NewReal(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = logger.WithPrefix("session").With("id", s.id)
	return s
}

// ID returns the session identifier used for history records.
func (s *Session) ID() string {
	return s.id
}

// Mode returns the evaluation mode answers are graded in.
func (s *Session) Mode() drill.Mode {
	return s.eval.Mode()
}

// Next deals a new scenario and starts its decision timer. An unanswered
// scenario is discarded and does not count towards the score.
func (s *Session) Next() drill.Scenario {
	if s.pending {
		s.logger.Debug("Discarding unanswered scenario", "scenario", s.current)
	}
	s.current = s.gen.Next()
	s.pending = true
	s.shownAt = s.clock.Now()
	s.logger.Debug("Dealt scenario", "position", s.current.Position, "cards", s.current.Cards, "roll", s.current.Roll)
	return s.current
}

// Current returns the scenario awaiting an answer, if any.
func (s *Session) Current() (drill.Scenario, bool) {
	return s.current, s.pending
}

// Answer grades action against the current scenario and updates the score.
func (s *Session) Answer(ctx context.Context, action poker.Action) (Result, error) {
	if !s.pending {
		return Result{}, ErrNoScenario
	}
	s.pending = false

	scenario := s.current
	verdict := s.eval.Evaluate(scenario, action)
	raise, fold := s.eval.Frequencies(scenario)
	answeredAt := s.clock.Now()
	result := Result{
		Scenario: scenario,
		Action:   action,
		Verdict:  verdict,
		Latency:  answeredAt.Sub(s.shownAt),
		Raise:    raise,
		Fold:     fold,
	}
	s.score.add(verdict.Outcome)
	s.latency.Add(scenario.Position, result.Latency)

	s.logger.Info("Answered",
		"position", scenario.Position,
		"class", verdict.Class,
		"action", action,
		"correct_action", verdict.CorrectAction,
		"outcome", verdict.Outcome,
		"latency", result.Latency)

	if s.recorder != nil {
		err := s.recorder.Record(ctx, history.Record{
			SessionID:     s.id,
			AnsweredAt:    answeredAt,
			Position:      scenario.Position,
			Cards:         scenario.Cards,
			Class:         verdict.Class,
			Action:        action,
			CorrectAction: verdict.CorrectAction,
			Outcome:       verdict.Outcome,
			Frequency:     verdict.Frequency,
			Mode:          s.eval.Mode(),
			Latency:       result.Latency,
		})
		if err != nil {
			s.logger.Warn("Failed to record answer", "error", err)
		}
	}
	return result, nil
}

// Score returns the running score. The scenario awaiting an answer is not
// counted.
func (s *Session) Score() Score {
	return s.score
}

// Latency returns decision time statistics for the answered rounds.
func (s *Session) Latency() *statistics.Latencies {
	return &s.latency
}

// Score tallies answered rounds. Frequency mistakes earn half credit.
type Score struct {
	Asked             int
	Correct           int
	FrequencyMistakes int
	Wrong             int
}

func (sc *Score) add(o drill.Outcome) {
	sc.Asked++
	switch o {
	case drill.OutcomeCorrect:
		sc.Correct++
	case drill.OutcomeFrequencyMistake:
		sc.FrequencyMistakes++
	default:
		sc.Wrong++
	}
}

// Credit returns the total credit earned.
func (sc Score) Credit() float64 {
	return float64(sc.Correct)*drill.OutcomeCorrect.Credit() +
		float64(sc.FrequencyMistakes)*drill.OutcomeFrequencyMistake.Credit()
}

// Percentage returns credit as a percentage of answered rounds, or 0 when
// nothing was answered.
func (sc Score) Percentage() float64 {
	if sc.Asked == 0 {
		return 0
	}
	return sc.Credit() / float64(sc.Asked) * 100
}

func (sc Score) String() string {
	return fmt.Sprintf("%g/%d (%.1f%%)", sc.Credit(), sc.Asked, sc.Percentage())
}
