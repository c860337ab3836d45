package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRunner returns a Runner whose generator writes the stock settings
// fixture instead of shelling out.
func fakeRunner(t *testing.T) (*Runner, *int) {
	t.Helper()
	dir := t.TempDir()
	calls := 0
	r := NewRunner(dir)
	r.Logf = t.Logf
	r.Generate = func(ctx context.Context) error {
		calls++
		if err := os.MkdirAll(filepath.Join(dir, "config"), 0755); err != nil {
			return err
		}
		if err := os.WriteFile(filepath.Join(dir, SettingsPath), []byte(generatedSettings), 0644); err != nil {
			return err
		}
		return os.WriteFile(filepath.Join(dir, MarkerFile), []byte("#!/usr/bin/env python\n"), 0755)
	}
	return r, &calls
}

func TestRunFirstTimeAppliesAllEdits(t *testing.T) {
	r, _ := fakeRunner(t)
	require.NoError(t, r.Run(context.Background()))

	raw, err := os.ReadFile(filepath.Join(r.Dir, SettingsPath))
	require.NoError(t, err)
	settings := string(raw)

	assert.Contains(t, settings, "whitenoise.runserver_nostatic")
	assert.Contains(t, settings, "'django.middleware.security.SecurityMiddleware',\n    'whitenoise.middleware.WhiteNoiseMiddleware',")
	assert.Contains(t, settings, "ALLOWED_HOSTS = ['*']")
	assert.Contains(t, settings, "import dj_database_url")
}

func TestRunSecondTimeIsNoOp(t *testing.T) {
	r, calls := fakeRunner(t)
	require.NoError(t, r.Run(context.Background()))
	require.Equal(t, 1, *calls)

	before, err := os.ReadFile(filepath.Join(r.Dir, SettingsPath))
	require.NoError(t, err)

	var logged []string
	r.Logf = func(format string, v ...interface{}) {
		logged = append(logged, fmt.Sprintf(format, v...))
	}
	require.NoError(t, r.Run(context.Background()))
	assert.Equal(t, 1, *calls, "generator must not run again")

	after, err := os.ReadFile(filepath.Join(r.Dir, SettingsPath))
	require.NoError(t, err)
	assert.Equal(t, string(before), string(after))

	require.NotEmpty(t, logged)
	assert.Contains(t, logged[0], "already initialized")
}

func TestRunPastGuardDoesNotDuplicateEdits(t *testing.T) {
	r, _ := fakeRunner(t)
	require.NoError(t, r.Run(context.Background()))

	// Force the patch step again, bypassing the marker-file guard.
	require.NoError(t, r.PatchSettings())

	raw, err := os.ReadFile(filepath.Join(r.Dir, SettingsPath))
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(string(raw), "WhiteNoiseMiddleware"))
	assert.Equal(t, 1, strings.Count(string(raw), "import dj_database_url"))
}

func TestRunPropagatesGeneratorFailure(t *testing.T) {
	r, _ := fakeRunner(t)
	boom := errors.New("generator exploded")
	r.Generate = func(ctx context.Context) error { return boom }

	err := r.Run(context.Background())
	assert.ErrorIs(t, err, boom)
	assert.False(t, r.Initialized())
}

func TestPatchSettingsWarnsOnMissingMarker(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "config"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, SettingsPath), []byte("# empty\n"), 0644))

	r := NewRunner(dir)
	var logged []string
	r.Logf = func(format string, v ...interface{}) {
		logged = append(logged, fmt.Sprintf(format, v...))
	}

	require.NoError(t, r.PatchSettings())
	assert.Len(t, logged, 4)
	for _, line := range logged {
		assert.Contains(t, line, "rule skipped")
	}
}
