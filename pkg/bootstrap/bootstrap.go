// Package bootstrap provisions the legacy site the CRM grew out of: it runs
// the framework's own project generator once, then patches the generated
// settings file for deployment (static file serving, open host allowlist,
// DATABASE_URL-driven database).
package bootstrap

import (
	"context"
	"log"
	"os"
	"os/exec"
	"path/filepath"
)

const (
	// MarkerFile flags a directory as already initialized.
	MarkerFile = "manage.py"
	// SettingsPath is where the generator leaves the settings file.
	SettingsPath = "config/settings.py"
)

// DefaultGenerator is the external scaffolding command, run in the target
// directory.
var DefaultGenerator = []string{"django-admin", "startproject", "config", "."}

type Runner struct {
	Dir          string
	MarkerFile   string
	SettingsPath string
	// Generate invokes the external project generator. Replaceable so the
	// generator stays an opaque collaborator.
	Generate func(ctx context.Context) error
	Logf     func(format string, v ...interface{})
}

func NewRunner(dir string) *Runner {
	r := &Runner{
		Dir:          dir,
		MarkerFile:   MarkerFile,
		SettingsPath: SettingsPath,
		Logf:         log.Printf,
	}
	r.Generate = func(ctx context.Context) error {
		cmd := exec.CommandContext(ctx, DefaultGenerator[0], DefaultGenerator[1:]...)
		cmd.Dir = dir
		cmd.Stdout = os.Stdout
		cmd.Stderr = os.Stderr
		return cmd.Run()
	}
	return r
}

// Initialized reports whether the marker file already exists.
func (r *Runner) Initialized() bool {
	_, err := os.Stat(filepath.Join(r.Dir, r.MarkerFile))
	return err == nil
}

// Run performs the one-time setup. A second run in the same directory is a
// no-op success. Generator failures are returned as-is; patch rules whose
// marker text is missing are logged and skipped.
func (r *Runner) Run(ctx context.Context) error {
	if r.Initialized() {
		r.Logf("[info] already initialized (%s exists), nothing to do", r.MarkerFile)
		return nil
	}

	r.Logf("[info] running project generator in %s", r.Dir)
	if err := r.Generate(ctx); err != nil {
		return err
	}

	return r.PatchSettings()
}

// PatchSettings applies the deployment edits to the generated settings file.
// Each rule is idempotent; applying them again never duplicates an edit.
func (r *Runner) PatchSettings() error {
	path := filepath.Join(r.Dir, r.SettingsPath)
	raw, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	patched, skipped := ApplyPatches(string(raw))
	for _, name := range skipped {
		r.Logf("[warn] settings marker for %q not found, rule skipped", name)
	}

	if patched == string(raw) {
		return nil
	}
	return os.WriteFile(path, []byte(patched), 0644)
}
