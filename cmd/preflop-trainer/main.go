package main

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/muesli/termenv"

	"github.com/lox/preflop-trainer/internal/config"
	"github.com/lox/preflop-trainer/internal/drill"
)

// version is set by ldflags during build
var version = "dev"

// Globals are flags shared by every command.
type Globals struct {
	Config    string `short:"c" help:"Path to the range file (.hcl or .toml); searched for when unset"`
	LogLevel  string `short:"l" help:"Log level (debug, info, warn, error)" default:"${log_level}"`
	LogFile   string `help:"Log file used while the trainer screen is open" default:"${log_file}"`
	HistoryDB string `name:"history-db" help:"SQLite database for answered rounds" default:"${history_db}"`
	NoHistory bool   `help:"Do not record answered rounds" default:"${no_history}"`
	NoColor   bool   `help:"Disable colour output"`

	Stdout io.Writer `kong:"-"`
}

type CLI struct {
	Globals

	Version kong.VersionFlag `short:"v" help:"Show version"`
	Train   TrainCmd         `cmd:"" default:"withargs" help:"Run an interactive training session (default)"`
	Check   CheckCmd         `cmd:"" help:"Look up a hand in a range or in the loaded range table"`
	Chart   ChartCmd         `cmd:"" help:"Show the 13x13 hand chart for a position"`
	Stats   StatsCmd         `cmd:"" help:"Show accuracy from recorded sessions"`
	Audit   AuditCmd         `cmd:"" help:"Check the scenario generator's distribution"`
	Init    InitCmd          `cmd:"" help:"Write an example range file"`
}

func main() {
	settings, err := config.LoadSettings()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading settings: %v\n", err)
		os.Exit(1)
	}

	locator := config.DefaultLocator()
	cli := CLI{Globals: Globals{Stdout: os.Stdout}}
	parser, err := newParser(&cli, settings, locator)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	ctx, err := parse(parser, &cli, settings, os.Args[1:])
	parser.FatalIfErrorf(err)

	if cli.NoColor {
		lipgloss.SetColorProfile(termenv.Ascii)
	}

	err = ctx.Run(&cli.Globals, locator)
	ctx.FatalIfErrorf(err)
}

// newParser builds the command line parser, taking flag defaults from
// settings.
func newParser(cli *CLI, settings *config.Settings, locator config.Locator, opts ...kong.Option) (*kong.Kong, error) {
	historyDB := settings.HistoryDB
	if historyDB == "" {
		historyDB = locator.DefaultHistoryPath()
	}
	opts = append([]kong.Option{
		kong.Name("preflop-trainer"),
		kong.Description("Drill unopened-pot preflop decisions against your own ranges"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version":    version,
			"log_level":  settings.LogLevel,
			"log_file":   settings.LogFile,
			"history_db": historyDB,
			"no_history": strconv.FormatBool(settings.NoHistory),
			"seed":       strconv.FormatInt(settings.Seed, 10),
			"mode":       settings.Mode,
		},
	}, opts...)
	return kong.New(cli, opts...)
}

// parse parses args and applies the settings kong cannot express as flag
// defaults. An empty range path means "search for one", so PREFLOP_CONFIG is
// only applied when -c was not given.
func parse(parser *kong.Kong, cli *CLI, settings *config.Settings, args []string) (*kong.Context, error) {
	ctx, err := parser.Parse(args)
	if err != nil {
		return nil, err
	}
	if cli.Config == "" {
		cli.Config = settings.ConfigPath
	}
	return ctx, nil
}

// newLogger returns a logger writing to w at the configured level.
func (g *Globals) newLogger(w io.Writer) (*log.Logger, error) {
	level := log.InfoLevel
	if g.LogLevel != "" {
		parsed, err := log.ParseLevel(g.LogLevel)
		if err != nil {
			return nil, fmt.Errorf("invalid log level %q: %w", g.LogLevel, err)
		}
		level = parsed
	}
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05",
		Prefix:          "preflop",
		Level:           level,
	}), nil
}

// loadRangeFile locates, loads and validates the range file.
func (g *Globals) loadRangeFile(locator config.Locator, logger *log.Logger) (*config.RangeFile, error) {
	path, created, err := locator.Locate(g.Config)
	if err != nil {
		return nil, err
	}
	if created {
		logger.Warn("No range file found, wrote the example ranges", "path", path)
	}

	file, err := config.Load(path, logger.WithPrefix("config"))
	if err != nil {
		return nil, err
	}
	if err := file.Validate(); err != nil {
		return nil, err
	}
	logger.Debug("Loaded range file", "path", path, "positions", len(file.Ranges))
	return file, nil
}

// resolveMode prefers an explicit mode over the range file's.
func resolveMode(explicit string, file *config.RangeFile) (drill.Mode, error) {
	if explicit != "" {
		return drill.ParseMode(explicit)
	}
	return file.EvaluationMode()
}
