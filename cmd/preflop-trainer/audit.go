package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/lox/preflop-trainer/internal/audit"
	"github.com/lox/preflop-trainer/internal/config"
	"github.com/lox/preflop-trainer/internal/drill"
	"github.com/lox/preflop-trainer/internal/tui"
	"github.com/lox/preflop-trainer/poker"
)

// AuditCmd samples the scenario generator and reports its distribution.
type AuditCmd struct {
	Rounds    int              `short:"n" help:"Number of scenarios to generate" default:"1000000"`
	Workers   int              `short:"w" help:"Worker goroutines (0 = number of CPUs, up to 8)" default:"0"`
	Seed      int64            `help:"Random seed (0 for random)" default:"${seed}"`
	Mode      string           `help:"Evaluation mode used for the RAISE column (overrides the range file)" default:"${mode}"`
	Positions []poker.Position `help:"Positions to deal from (overrides the range file)" sep:","`
	Focus     bool             `help:"Audit focus sampling instead of uniform dealing"`
}

func (cmd *AuditCmd) Run(g *Globals, locator config.Locator) error {
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

	genOpts := []drill.Option{drill.WithPositions(positions...)}
	if cmd.Focus {
		genOpts = append(genOpts, drill.WithFocus(table))
	}

	seed := cmd.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("Running audit", "rounds", cmd.Rounds, "workers", cmd.Workers, "seed", seed, "focus", cmd.Focus)
	start := time.Now()
	dist, err := audit.Run(ctx, audit.Options{
		Rounds:    cmd.Rounds,
		Workers:   cmd.Workers,
		Seed:      seed,
		Generator: genOpts,
		Evaluator: drill.NewEvaluator(table, mode),
	})
	if err != nil {
		return err
	}
	logger.Info("Audit complete", "duration", time.Since(start).Round(time.Millisecond))

	return writeAudit(g.Stdout, dist, cmd.Focus)
}

func writeAudit(w io.Writer, dist *audit.Distribution, focus bool) error {
	fmt.Fprintln(w, tui.HeaderStyle.Render(fmt.Sprintf("Audit of %d scenarios", dist.Rounds)))

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "POSITION\tDEALT\tSHARE\tRAISE")
	for _, pos := range dist.Allowed {
		share := float64(dist.Positions[pos]) / float64(dist.Rounds)
		fmt.Fprintf(tw, "%s\t%d\t%.2f%%\t%.2f%%\n", pos, dist.Positions[pos], share*100, dist.RaiseShare(pos)*100)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintln(w)
	stat, df := dist.PositionChiSquare()
	fmt.Fprintf(w, "positions   chi2 = %8.2f  (df %d)\n", stat, df)
	stat, df = dist.ClassChiSquare()
	label := "hand classes"
	if focus {
		label = "hand classes (focus sampling is not uniform)"
	}
	fmt.Fprintf(w, "classes     chi2 = %8.2f  (df %d) %s\n", stat, df, label)
	stat, df = dist.CardChiSquare()
	_, err := fmt.Fprintf(w, "cards       chi2 = %8.2f  (df %d)\n", stat, df)
	return err
}
