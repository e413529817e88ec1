package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"github.com/lox/preflop-trainer/internal/history"
	"github.com/lox/preflop-trainer/internal/tui"
)

// StatsCmd reports accuracy from the history database.
type StatsCmd struct {
	Leaks    int `help:"Number of most-missed hands to list" default:"10"`
	Sessions int `help:"Number of recent sessions to list" default:"5"`
}

func (cmd *StatsCmd) Run(g *Globals) error {
	logger, err := g.newLogger(os.Stderr)
	if err != nil {
		return err
	}

	ctx := context.Background()
	store, err := history.Open(ctx, g.HistoryDB, logger)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	return writeStats(ctx, g.Stdout, store, cmd.Leaks, cmd.Sessions)
}

func writeStats(ctx context.Context, w io.Writer, store *history.Store, leaks, sessions int) error {
	positions, err := store.PositionStats(ctx)
	if err != nil {
		return err
	}
	if len(positions) == 0 {
		_, err := fmt.Fprintln(w, "No answers recorded yet. Run a training session first.")
		return err
	}

	fmt.Fprintln(w, tui.HeaderStyle.Render("Accuracy by position"))
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "POSITION\tANSWERED\tCREDIT\tACCURACY\tAVG TIME")
	for _, p := range positions {
		fmt.Fprintf(tw, "%s\t%d\t%g\t%.1f%%\t%s\n",
			p.Position, p.Answered, p.Credit, p.Accuracy()*100, p.AvgLatency.Round(100*time.Millisecond))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if leaks > 0 {
		list, err := store.Leaks(ctx, leaks)
		if err != nil {
			return err
		}
		if len(list) > 0 {
			fmt.Fprintln(w)
			fmt.Fprintln(w, tui.HeaderStyle.Render("Most missed hands"))
			tw = tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "POSITION\tHAND\tMISSED\tANSWERED")
			for _, l := range list {
				fmt.Fprintf(tw, "%s\t%s\t%d\t%d\n", l.Position, l.Class, l.Missed, l.Answered)
			}
			if err := tw.Flush(); err != nil {
				return err
			}
		}
	}

	if sessions > 0 {
		list, err := store.Sessions(ctx, sessions)
		if err != nil {
			return err
		}
		fmt.Fprintln(w)
		fmt.Fprintln(w, tui.HeaderStyle.Render("Recent sessions"))
		tw = tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "STARTED\tANSWERED\tSCORE")
		for _, s := range list {
			pct := 0.0
			if s.Answered > 0 {
				pct = s.Credit / float64(s.Answered) * 100
			}
			fmt.Fprintf(tw, "%s\t%d\t%.1f%%\n", s.StartedAt.Local().Format("2006-01-02 15:04"), s.Answered, pct)
		}
		return tw.Flush()
	}
	return nil
}
