package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocateExplicit(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "mine.hcl", "")

	got, created, err := Locator{}.Locate(path)
	require.NoError(t, err)
	assert.Equal(t, path, got)
	assert.False(t, created)

	_, _, err = Locator{}.Locate(filepath.Join(dir, "missing.hcl"))
	assert.Error(t, err)

	_, _, err = Locator{}.Locate(dir)
	assert.ErrorContains(t, err, "is a directory")
}

func TestLocateSkipsDirectoriesNamedLikeRangeFiles(t *testing.T) {
	work := t.TempDir()
	user := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(work, "ranges.hcl"), 0o755))
	userFile := writeFile(t, user, "ranges.hcl", "")

	got, created, err := Locator{WorkDir: work, UserConfigDir: user}.Locate("")
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, userFile, got)
}

func TestLocateSearchOrder(t *testing.T) {
	work := t.TempDir()
	exe := t.TempDir()
	user := t.TempDir()
	l := Locator{WorkDir: work, ExecutableDir: exe, UserConfigDir: user}

	userFile := writeFile(t, user, "ranges.toml", "")
	got, _, err := l.Locate("")
	require.NoError(t, err)
	assert.Equal(t, userFile, got)

	exeFile := writeFile(t, exe, "ranges.hcl", "")
	got, _, err = l.Locate("")
	require.NoError(t, err)
	assert.Equal(t, exeFile, got)

	workTOML := writeFile(t, work, "ranges.toml", "")
	got, _, err = l.Locate("")
	require.NoError(t, err)
	assert.Equal(t, workTOML, got)

	workHCL := writeFile(t, work, "ranges.hcl", "")
	got, _, err = l.Locate("")
	require.NoError(t, err)
	assert.Equal(t, workHCL, got, "hcl is preferred over toml")
}

func TestLocateWritesExample(t *testing.T) {
	user := filepath.Join(t.TempDir(), "preflop-trainer")
	l := Locator{WorkDir: t.TempDir(), UserConfigDir: user}

	got, created, err := l.Locate("")
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, filepath.Join(user, "ranges.hcl"), got)

	data, err := os.ReadFile(got)
	require.NoError(t, err)
	assert.Equal(t, exampleRanges, data)

	again, created, err := l.Locate("")
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, got, again)
}

func TestLocateFallsBackToTempDir(t *testing.T) {
	tmp := t.TempDir()
	got, created, err := Locator{TempDir: tmp}.Locate("")
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, tmp, filepath.Dir(got))
}

func TestDefaultHistoryPath(t *testing.T) {
	assert.Equal(t, filepath.Join("/cfg", "history.db"), Locator{UserConfigDir: "/cfg"}.DefaultHistoryPath())
	assert.Equal(t, filepath.Join("/tmp", "preflop-trainer-history.db"), Locator{TempDir: "/tmp"}.DefaultHistoryPath())
}

func TestLoadSettings(t *testing.T) {
	dir := t.TempDir()
	dotenv := writeFile(t, dir, ".env", "PREFLOP_SEED=99\nPREFLOP_MODE=weighted\n")
	// godotenv sets variables directly; remove them once the test is done.
	t.Cleanup(func() {
		_ = os.Unsetenv("PREFLOP_SEED")
		_ = os.Unsetenv("PREFLOP_MODE")
	})

	t.Setenv("PREFLOP_CONFIG", "/etc/ranges.hcl")
	t.Setenv("PREFLOP_LOG_LEVEL", "debug")

	s, err := LoadSettings(dotenv)
	require.NoError(t, err)
	assert.Equal(t, "/etc/ranges.hcl", s.ConfigPath)
	assert.Equal(t, int64(99), s.Seed)
	assert.Equal(t, "weighted", s.Mode)
	assert.Equal(t, "debug", s.LogLevel)
	assert.Equal(t, "preflop-trainer.log", s.LogFile)
	assert.False(t, s.NoHistory)
}

func TestLoadSettingsInvalid(t *testing.T) {
	t.Setenv("PREFLOP_SEED", "not-a-number")
	_, err := LoadSettings(filepath.Join(t.TempDir(), "missing.env"))
	assert.Error(t, err)
}
