package main

import (
	"fmt"
	"os"

	"github.com/lox/preflop-trainer/internal/config"
	"github.com/lox/preflop-trainer/internal/tui"
	"github.com/lox/preflop-trainer/poker"
)

// ChartCmd prints hand charts for the configured ranges.
type ChartCmd struct {
	Position string `short:"p" help:"Position to show (default: every configured position)"`
}

func (cmd *ChartCmd) Run(g *Globals, locator config.Locator) error {
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

	positions := table.Positions()
	if cmd.Position != "" {
		pos, err := poker.ParsePosition(cmd.Position)
		if err != nil {
			return err
		}
		positions = []poker.Position{pos}
	}

	for i, pos := range positions {
		if i > 0 {
			fmt.Fprintln(g.Stdout)
		}
		fmt.Fprintln(g.Stdout, tui.RenderChart(table, pos))
	}
	return nil
}
