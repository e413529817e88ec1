package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/lox/preflop-trainer/internal/config"
	"github.com/lox/preflop-trainer/internal/drill"
	"github.com/lox/preflop-trainer/internal/ranges"
	"github.com/lox/preflop-trainer/poker"
)

// CheckCmd looks a hand up in a range string or in the loaded table.
type CheckCmd struct {
	Range    string `short:"r" help:"Range notation to check against, e.g. \"22+, AKs, K6s:0.5\""`
	Position string `short:"p" help:"Position whose configured range is checked"`
	Hand     string `arg:"" help:"Hand class (AKs, T9o, 77) or hole cards (AsKd)"`
}

func (cmd *CheckCmd) Run(g *Globals, locator config.Locator) error {
	class, err := parseHandArg(cmd.Hand)
	if err != nil {
		return err
	}

	if cmd.Range != "" {
		r, err := ranges.Parse(cmd.Range)
		if err != nil {
			return err
		}
		return checkRange(g.Stdout, r, class)
	}

	if cmd.Position == "" {
		return errors.New("either --range or --position is required")
	}
	pos, err := poker.ParsePosition(cmd.Position)
	if err != nil {
		return err
	}

	logger, err := g.newLogger(os.Stderr)
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
	return checkTable(g.Stdout, table, pos, class)
}

// parseHandArg accepts a hand class or two concrete cards.
func parseHandArg(s string) (poker.HandClass, error) {
	class, classErr := poker.ParseHandClass(s)
	if classErr == nil {
		return class, nil
	}
	cards, err := poker.ParseHoleCards(s)
	if err != nil {
		return poker.HandClass{}, fmt.Errorf("invalid hand %q: not a hand class (%v) or hole cards (%v)", s, classErr, err)
	}
	return cards.Class(), nil
}

func checkRange(w io.Writer, r ranges.Range, class poker.HandClass) error {
	freq := r.Frequency(class)
	if freq <= 0 {
		_, err := fmt.Fprintf(w, "%s: NOT in range\n", class)
		return err
	}
	_, err := fmt.Fprintf(w, "%s: in range, raise %s\n", class, percent(freq))
	return err
}

func checkTable(w io.Writer, table *ranges.Table, pos poker.Position, class poker.HandClass) error {
	if !table.Configured(pos) {
		_, err := fmt.Fprintf(w, "%s: no range configured, %s is a fold\n", pos, class)
		return err
	}
	eval := drill.NewEvaluator(table, drill.ModeStrict)
	scenario := drill.Scenario{Position: pos, Cards: class.Combos()[0]}
	raise, fold := eval.Frequencies(scenario)
	_, err := fmt.Fprintf(w, "%s %s: %s (raise %s, fold %s)\n",
		pos, class, table.Strategy(pos, class), percent(raise), percent(fold))
	return err
}

func percent(f float64) string {
	return fmt.Sprintf("%.0f%%", f*100)
}
