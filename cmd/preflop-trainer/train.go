package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"

	"github.com/lox/preflop-trainer/internal/config"
	"github.com/lox/preflop-trainer/internal/drill"
	"github.com/lox/preflop-trainer/internal/history"
	"github.com/lox/preflop-trainer/internal/randutil"
	"github.com/lox/preflop-trainer/internal/session"
	"github.com/lox/preflop-trainer/internal/tui"
	"github.com/lox/preflop-trainer/poker"
)

// TrainCmd runs the interactive trainer.
type TrainCmd struct {
	Seed      int64            `help:"Random seed (0 for random)" default:"${seed}"`
	Mode      string           `help:"Evaluation mode: strict or weighted (overrides the range file)" default:"${mode}"`
	Positions []poker.Position `help:"Positions to train (overrides the range file)" sep:","`
	Focus     bool             `help:"Deal mixed-frequency hands more often"`
}

func (cmd *TrainCmd) Run(g *Globals, locator config.Locator) error {
	logFile, err := os.OpenFile(g.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer func() {
		if err := logFile.Close(); err != nil {
			log.Error("Failed to close log file", "error", err)
		}
	}()

	logger, err := g.newLogger(logFile)
	if err != nil {
		return err
	}

	file, err := g.loadRangeFile(locator, logger)
	if err != nil {
		return err
	}
	table, err := file.Table()
	if err != nil {
		return err
	}
	mode, err := resolveMode(cmd.Mode, file)
	if err != nil {
		return err
	}

	positions, err := file.AllowedPositions()
	if err != nil {
		return err
	}
	if len(cmd.Positions) > 0 {
		positions = cmd.Positions
	}

	opts := []drill.Option{drill.WithPositions(positions...)}
	if cmd.Focus || file.Focus {
		opts = append(opts, drill.WithFocus(table))
	}

	rng, seed := randutil.NewOrRandom(cmd.Seed)
	gen := drill.NewGenerator(rng, opts...)
	eval := drill.NewEvaluator(table, mode)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var sessOpts []session.Option
	if !g.NoHistory {
		store, err := history.Open(ctx, g.HistoryDB, logger)
		if err != nil {
			logger.Warn("History disabled", "error", err)
		} else {
			defer func() {
				if err := store.Close(); err != nil {
					logger.Error("Failed to close history store", "error", err)
				}
			}()
			sessOpts = append(sessOpts, session.WithRecorder(store))
		}
	}

	sess := session.New(gen, eval, logger, sessOpts...)
	logger.Info("Starting training session",
		"session", sess.ID(),
		"seed", seed,
		"mode", mode,
		"positions", gen.Positions(),
		"focus", cmd.Focus || file.Focus,
		"ranges", file.Path)

	model, err := tui.Run(ctx, tui.NewTUIModel(ctx, sess, logger))
	if err != nil {
		return err
	}

	score := model.Score()
	logger.Info("Training session finished", "session", sess.ID(), "score", score)
	fmt.Fprintln(g.Stdout, tui.HeaderStyle.Render("Session complete"))
	fmt.Fprintf(g.Stdout, "Score: %s\n", score)
	if lat := sess.Latency(); lat.Count() > 0 {
		fmt.Fprintf(g.Stdout, "Decision time: median %s, 90th percentile %s\n",
			lat.Median().Round(100*time.Millisecond), lat.Percentile(0.9).Round(100*time.Millisecond))
	}
	if score.FrequencyMistakes > 0 {
		fmt.Fprintf(g.Stdout, "Correct: %d, frequency mistakes: %d, wrong: %d\n",
			score.Correct, score.FrequencyMistakes, score.Wrong)
	}
	return nil
}
