// Package config loads the trainer's range file and process settings.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/lox/preflop-trainer/internal/drill"
	"github.com/lox/preflop-trainer/internal/fileutil"
	"github.com/lox/preflop-trainer/internal/ranges"
	"github.com/lox/preflop-trainer/poker"
)

// RangeFile is the decoded range configuration: one raw range string per
// position symbol plus training options.
type RangeFile struct {
	Path      string
	Ranges    map[string]string
	Positions []string
	Mode      string
	Focus     bool
}

// hclRangeFile is the HCL layout:
//
//	position "UTG" { range = "22+, AKs" }
//	training { positions = ["UTG"], mode = "strict", focus = false }
type hclRangeFile struct {
	Positions []hclPosition `hcl:"position,block"`
	Training  *hclTraining  `hcl:"training,block"`
}

type hclPosition struct {
	Name  string `hcl:"name,label"`
	Range string `hcl:"range"`
}

type hclTraining struct {
	Positions []string `hcl:"positions,optional"`
	Mode      string   `hcl:"mode,optional"`
	Focus     bool     `hcl:"focus,optional"`
}

// tomlRangeFile is the TOML layout:
//
//	[unopened_raise.UTG]
//	range = "22+, AKs"
//	[generic]
//	allowed_spot_types = ["Open_UTG"]
type tomlRangeFile struct {
	UnopenedRaise map[string]tomlPosition `toml:"unopened_raise"`
	Generic       *tomlGeneric            `toml:"generic"`
	Training      *tomlTraining           `toml:"training"`
}

type tomlPosition struct {
	Range string `toml:"range"`
}

type tomlGeneric struct {
	AllowedSpotTypes []string `toml:"allowed_spot_types"`
}

type tomlTraining struct {
	Positions []string `toml:"positions"`
	Mode      string   `toml:"mode"`
	Focus     bool     `toml:"focus"`
}

// Load decodes a range file. The format is chosen by extension: ".toml"
// files are TOML, anything else is HCL.
func Load(path string, logger *log.Logger) (*RangeFile, error) {
	var (
		file *RangeFile
		err  error
	)
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		file, err = loadTOML(path, logger)
	} else {
		file, err = loadHCL(path)
	}
	if err != nil {
		return nil, err
	}
	file.Path = path
	if file.Mode == "" {
		file.Mode = drill.ModeStrict.String()
	}
	return file, nil
}

func loadHCL(path string) (*RangeFile, error) {
	parser := hclparse.NewParser()
	f, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var raw hclRangeFile
	diags = gohcl.DecodeBody(f.Body, nil, &raw)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	file := &RangeFile{Ranges: make(map[string]string, len(raw.Positions))}
	for _, p := range raw.Positions {
		if _, dup := file.Ranges[p.Name]; dup {
			return nil, fmt.Errorf("position %q defined more than once", p.Name)
		}
		file.Ranges[p.Name] = p.Range
	}
	if raw.Training != nil {
		file.Positions = raw.Training.Positions
		file.Mode = raw.Training.Mode
		file.Focus = raw.Training.Focus
	}
	return file, nil
}

func loadTOML(path string, logger *log.Logger) (*RangeFile, error) {
	var raw tomlRangeFile
	md, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return nil, fmt.Errorf("failed to decode TOML: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		logger.Warn("Ignoring unsupported configuration keys", "keys", strings.Join(keys, ", "))
	}

	file := &RangeFile{Ranges: make(map[string]string, len(raw.UnopenedRaise))}
	for name, p := range raw.UnopenedRaise {
		file.Ranges[name] = p.Range
	}

	if raw.Generic != nil {
		for _, spot := range raw.Generic.AllowedSpotTypes {
			kind, pos, ok := strings.Cut(spot, "_")
			if !ok || kind != "Open" {
				logger.Warn("Skipping unsupported spot type", "spot", spot)
				continue
			}
			file.Positions = append(file.Positions, pos)
		}
	}
	if raw.Training != nil {
		if len(raw.Training.Positions) > 0 {
			file.Positions = raw.Training.Positions
		}
		file.Mode = raw.Training.Mode
		file.Focus = raw.Training.Focus
	}
	// An empty position list means every position, so a spot list with no
	// trainable entries must not widen to all of them.
	if raw.Generic != nil && len(raw.Generic.AllowedSpotTypes) > 0 && len(file.Positions) == 0 {
		return nil, fmt.Errorf("generic.allowed_spot_types lists no Open_ spot types: %s",
			strings.Join(raw.Generic.AllowedSpotTypes, ", "))
	}
	return file, nil
}

// Validate checks position symbols and the evaluation mode. Range strings are
// checked when the table is built.
func (f *RangeFile) Validate() error {
	for name := range f.Ranges {
		if _, err := poker.ParsePosition(name); err != nil {
			return fmt.Errorf("%s: %w", f.Path, err)
		}
	}
	if _, err := f.AllowedPositions(); err != nil {
		return fmt.Errorf("%s: training positions: %w", f.Path, err)
	}
	if _, err := drill.ParseMode(f.Mode); err != nil {
		return fmt.Errorf("%s: %w", f.Path, err)
	}
	return nil
}

// Table parses every range string into the strategy table.
func (f *RangeFile) Table() (*ranges.Table, error) {
	table, err := ranges.BuildFromSymbols(f.Ranges)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", f.Path, err)
	}
	return table, nil
}

// AllowedPositions returns the positions to deal from. Empty means all.
func (f *RangeFile) AllowedPositions() ([]poker.Position, error) {
	out := make([]poker.Position, 0, len(f.Positions))
	for _, sym := range f.Positions {
		pos, err := poker.ParsePosition(sym)
		if err != nil {
			return nil, err
		}
		out = append(out, pos)
	}
	return out, nil
}

// EvaluationMode returns the parsed evaluation mode.
func (f *RangeFile) EvaluationMode() (drill.Mode, error) {
	return drill.ParseMode(f.Mode)
}

// WriteExample writes the bundled example range file to path, creating
// parent directories. An existing file is only replaced when overwrite is set.
func WriteExample(path string, overwrite bool) error {
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists", path)
		}
	}
	if err := fileutil.WriteFileAtomic(path, exampleRanges, 0o644); err != nil {
		return fmt.Errorf("write example config: %w", err)
	}
	return nil
}
