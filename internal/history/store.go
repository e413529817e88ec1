// Package history persists answered training rounds in SQLite and reports
// accuracy per position and per hand class.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	_ "modernc.org/sqlite"

	"github.com/lox/preflop-trainer/internal/drill"
	"github.com/lox/preflop-trainer/poker"
)

// Record is one answered round.
type Record struct {
	SessionID     string
	AnsweredAt    time.Time
	Position      poker.Position
	Cards         poker.HoleCards
	Class         poker.HandClass
	Action        poker.Action
	CorrectAction poker.Action
	Outcome       drill.Outcome
	Frequency     float64
	Mode          drill.Mode
	Latency       time.Duration
}

// PositionStat summarises answers for one position.
type PositionStat struct {
	Position   poker.Position
	Answered   int
	Credit     float64
	AvgLatency time.Duration
}

// Accuracy returns credit as a share of answers.
func (p PositionStat) Accuracy() float64 {
	if p.Answered == 0 {
		return 0
	}
	return p.Credit / float64(p.Answered)
}

// Leak is a hand class that is often answered wrongly at a position.
type Leak struct {
	Position poker.Position
	Class    poker.HandClass
	Answered int
	Missed   int
}

// SessionSummary totals one training session.
type SessionSummary struct {
	ID        string
	StartedAt time.Time
	Answered  int
	Credit    float64
}

// Store provides SQLite-backed persistence for answered rounds.
type Store struct {
	db     *sql.DB
	logger *log.Logger
}

// Open opens (creating if needed) and migrates the history database.
func Open(ctx context.Context, path string, logger *log.Logger) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}

	cleanPath := filepath.Clean(path)
	if err := os.MkdirAll(filepath.Dir(cleanPath), 0o755); err != nil {
		return nil, fmt.Errorf("create history dir: %w", err)
	}

	dsn := cleanPath + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := applyMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	logger = logger.WithPrefix("history")
	logger.Debug("Opened history store", "path", cleanPath)
	return &Store{db: db, logger: logger}, nil
}

// Close releases the underlying SQLite connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Record stores one answered round.
func (s *Store) Record(ctx context.Context, r Record) error {
	if s == nil || s.db == nil {
		return fmt.Errorf("storage is not configured")
	}
	if r.SessionID == "" {
		return fmt.Errorf("session id is required")
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO answers (session_id, answered_at, position, cards, hand_class, action,
		 correct_action, outcome, credit, frequency, mode, latency_ms)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.SessionID,
		r.AnsweredAt.UTC().UnixMilli(),
		r.Position.String(),
		r.Cards.String(),
		r.Class.String(),
		r.Action.String(),
		r.CorrectAction.String(),
		r.Outcome.String(),
		r.Outcome.Credit(),
		r.Frequency,
		r.Mode.String(),
		r.Latency.Milliseconds(),
	)
	if err != nil {
		return fmt.Errorf("insert answer: %w", err)
	}
	s.logger.Debug("Recorded answer", "session", r.SessionID, "class", r.Class, "outcome", r.Outcome)
	return nil
}

// PositionStats returns totals per position in table order. Positions with
// no answers are omitted.
func (s *Store) PositionStats(ctx context.Context) ([]PositionStat, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT position, COUNT(*), SUM(credit), AVG(latency_ms)
		 FROM answers GROUP BY position`)
	if err != nil {
		return nil, fmt.Errorf("query position stats: %w", err)
	}
	defer func() { _ = rows.Close() }()

	byPos := make(map[poker.Position]PositionStat)
	for rows.Next() {
		var (
			sym     string
			stat    PositionStat
			latency float64
		)
		if err := rows.Scan(&sym, &stat.Answered, &stat.Credit, &latency); err != nil {
			return nil, fmt.Errorf("scan position stats: %w", err)
		}
		pos, err := poker.ParsePosition(sym)
		if err != nil {
			s.logger.Warn("Skipping answers with unknown position", "position", sym)
			continue
		}
		stat.Position = pos
		stat.AvgLatency = time.Duration(latency * float64(time.Millisecond))
		byPos[pos] = stat
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate position stats: %w", err)
	}

	var out []PositionStat
	for _, pos := range poker.Positions {
		if stat, ok := byPos[pos]; ok {
			out = append(out, stat)
		}
	}
	return out, nil
}

// Leaks returns the hand classes with the most missed answers (anything but
// fully correct), most missed first.
func (s *Store) Leaks(ctx context.Context, limit int) ([]Leak, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT position, hand_class, COUNT(*),
		        SUM(CASE WHEN outcome = ? THEN 0 ELSE 1 END) AS missed
		 FROM answers
		 GROUP BY position, hand_class
		 HAVING missed > 0
		 ORDER BY missed DESC, COUNT(*) DESC, position, hand_class
		 LIMIT ?`,
		drill.OutcomeCorrect.String(), limit)
	if err != nil {
		return nil, fmt.Errorf("query leaks: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []Leak
	for rows.Next() {
		var (
			sym, class string
			leak       Leak
		)
		if err := rows.Scan(&sym, &class, &leak.Answered, &leak.Missed); err != nil {
			return nil, fmt.Errorf("scan leaks: %w", err)
		}
		if leak.Position, err = poker.ParsePosition(sym); err != nil {
			continue
		}
		if leak.Class, err = poker.ParseHandClass(class); err != nil {
			continue
		}
		out = append(out, leak)
	}
	return out, rows.Err()
}

// Sessions returns the most recent sessions first.
func (s *Store) Sessions(ctx context.Context, limit int) ([]SessionSummary, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT session_id, MIN(answered_at), COUNT(*), SUM(credit)
		 FROM answers
		 GROUP BY session_id
		 ORDER BY MIN(answered_at) DESC
		 LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query sessions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []SessionSummary
	for rows.Next() {
		var (
			sum     SessionSummary
			started int64
		)
		if err := rows.Scan(&sum.ID, &started, &sum.Answered, &sum.Credit); err != nil {
			return nil, fmt.Errorf("scan sessions: %w", err)
		}
		sum.StartedAt = time.UnixMilli(started).UTC()
		out = append(out, sum)
	}
	return out, rows.Err()
}
