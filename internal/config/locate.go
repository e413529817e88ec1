package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// AppName names the per-user configuration directory.
const AppName = "preflop-trainer"

// FileNames are the range file names searched for, in order of preference.
var FileNames = []string{"ranges.hcl", "ranges.toml"}

//go:embed ranges.example.hcl
var exampleRanges []byte

// Locator finds the range file. Empty directories are skipped.
type Locator struct {
	WorkDir       string
	ExecutableDir string
	UserConfigDir string
	TempDir       string
}

// DefaultLocator searches the working directory, the executable's directory
// and the user configuration directory.
func DefaultLocator() Locator {
	l := Locator{TempDir: os.TempDir()}
	if wd, err := os.Getwd(); err == nil {
		l.WorkDir = wd
	}
	if exe, err := os.Executable(); err == nil {
		l.ExecutableDir = filepath.Dir(exe)
	}
	if dir, err := os.UserConfigDir(); err == nil {
		l.UserConfigDir = filepath.Join(dir, AppName)
	}
	return l
}

// Locate returns the range file to load. An explicit path must exist and
// be a regular file.
// Otherwise the search directories are tried in order, and when none holds a
// range file the bundled example is written to the user configuration
// directory (or, failing that, the temp directory) and returned.
func (l Locator) Locate(explicit string) (path string, created bool, err error) {
	if explicit != "" {
		info, err := os.Stat(explicit)
		if err != nil {
			return "", false, fmt.Errorf("range file: %w", err)
		}
		if info.IsDir() {
			return "", false, fmt.Errorf("range file: %s is a directory", explicit)
		}
		return explicit, false, nil
	}

	for _, dir := range []string{l.WorkDir, l.ExecutableDir, l.UserConfigDir} {
		if dir == "" {
			continue
		}
		for _, name := range FileNames {
			candidate := filepath.Join(dir, name)
			if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
				return candidate, false, nil
			}
		}
	}

	var errs []error
	if l.UserConfigDir != "" {
		target := filepath.Join(l.UserConfigDir, FileNames[0])
		err := WriteExample(target, false)
		if err == nil {
			return target, true, nil
		}
		errs = append(errs, err)
	}
	if l.TempDir != "" {
		target := filepath.Join(l.TempDir, fmt.Sprintf("preflop_trainer_ranges_%d.hcl", os.Getpid()))
		err := WriteExample(target, true)
		if err == nil {
			return target, true, nil
		}
		errs = append(errs, err)
	}
	return "", false, fmt.Errorf("no range file found and no example could be written: %w", errors.Join(errs...))
}

// DefaultHistoryPath is where answered rounds are stored unless configured.
func (l Locator) DefaultHistoryPath() string {
	if l.UserConfigDir != "" {
		return filepath.Join(l.UserConfigDir, "history.db")
	}
	return filepath.Join(l.TempDir, AppName+"-history.db")
}
