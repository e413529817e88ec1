package main

import (
	"fmt"
	"path/filepath"

	"github.com/lox/preflop-trainer/internal/config"
)

// InitCmd writes the bundled example range file.
type InitCmd struct {
	Path  string `arg:"" optional:"" help:"Where to write the file (default: the user configuration directory)" type:"path"`
	Force bool   `short:"f" help:"Overwrite an existing file"`
}

func (cmd *InitCmd) Run(g *Globals, locator config.Locator) error {
	path := cmd.Path
	if path == "" {
		if locator.UserConfigDir == "" {
			return fmt.Errorf("no user configuration directory; pass a path")
		}
		path = filepath.Join(locator.UserConfigDir, config.FileNames[0])
	}
	if err := config.WriteExample(path, cmd.Force); err != nil {
		return err
	}
	_, err := fmt.Fprintf(g.Stdout, "Wrote example ranges to %s\n", path)
	return err
}
