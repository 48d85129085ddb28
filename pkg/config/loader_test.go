// Test Type: Unit Test
// Description: Tests for layered configuration loading

package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/arthur-debert/tidyforge/pkg/config"
	"github.com/arthur-debert/tidyforge/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeProjectFile(t *testing.T, dir, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "tidyforge.toml"), []byte(content), 0644))
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load(config.LoadOptions{ProjectDir: t.TempDir()})
	require.NoError(t, err)

	assert.Equal(t, 10*time.Millisecond, cfg.Scheduler.PollInterval)
	assert.Equal(t, "sh", cfg.Scheduler.Shell)
	assert.Equal(t, "clang", cfg.Build.Compiler)
	assert.Equal(t, 100, cfg.Reconcile.ContextRadius)
	assert.Contains(t, cfg.Tidy.Checks, "cppcoreguidelines-init-variables")
	assert.Contains(t, cfg.Build.Profiles, "release")
	assert.Contains(t, cfg.Build.Profiles, "debug")
}

func TestLoad_ProjectFileOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	writeProjectFile(t, dir, `
[scheduler]
poll_interval = "25ms"

[build]
max_failures = 3

[[reconcile.rules]]
name = "no-auto-ptr"
pattern = 'std::auto_ptr'
description = "auto_ptr is banned"

[[reconcile.rules]]
name = "null-macro"
pattern = '\bNULL_PTR\b'
action = "rewrite"
replace = "NULL"
`)

	cfg, err := config.Load(config.LoadOptions{ProjectDir: dir})
	require.NoError(t, err)

	assert.Equal(t, 25*time.Millisecond, cfg.Scheduler.PollInterval)
	assert.Equal(t, 3, cfg.Build.MaxFailures)
	require.Len(t, cfg.Reconcile.Rules, 2)
	assert.Equal(t, "no-auto-ptr", cfg.Reconcile.Rules[0].Name)
	assert.Equal(t, "rewrite", cfg.Reconcile.Rules[1].Action)
	// untouched defaults survive
	assert.Equal(t, "clang-tidy", cfg.Tidy.Binary)
}

func TestLoad_EnvAndOverrides(t *testing.T) {
	t.Setenv("TIDYFORGE_RECONCILE__CONTEXT_RADIUS", "250")
	t.Setenv("TIDYFORGE_TIDY__CHECKS", "modernize-use-bool-literals,readability-string-compare")

	cfg, err := config.Load(config.LoadOptions{
		ProjectDir: t.TempDir(),
		Overrides:  map[string]interface{}{"reconcile.dry_run": true},
	})
	require.NoError(t, err)

	assert.Equal(t, 250, cfg.Reconcile.ContextRadius)
	assert.Equal(t, []string{"modernize-use-bool-literals", "readability-string-compare"}, cfg.Tidy.Checks)
	assert.True(t, cfg.Reconcile.DryRun)
}

func TestLoad_ExplicitFileMustExist(t *testing.T) {
	_, err := config.Load(config.LoadOptions{ConfigFile: filepath.Join(t.TempDir(), "nope.toml")})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfigLoad))
}

func TestLoad_Validation(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"zero_poll_interval", "[scheduler]\npoll_interval = \"0s\"\n"},
		{"negative_radius", "[reconcile]\ncontext_radius = -1\n"},
		{"bad_rule_action", "[[reconcile.rules]]\nname = \"x\"\npattern = \"y\"\naction = \"explode\"\n"},
		{"rule_without_pattern", "[[reconcile.rules]]\nname = \"x\"\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			writeProjectFile(t, dir, tt.content)
			_, err := config.Load(config.LoadOptions{ProjectDir: dir})
			require.Error(t, err)
			assert.True(t, errors.IsErrorCode(err, errors.ErrConfigValid), "got %v", err)
		})
	}
}

func TestBuildConfig_Profile(t *testing.T) {
	cfg, err := config.Default()
	require.NoError(t, err)

	release, err := cfg.Build.Profile("release")
	require.NoError(t, err)
	assert.Contains(t, release.Defines, "NDEBUG")

	_, err = cfg.Build.Profile("profiling")
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfigValid))
}

func TestRender(t *testing.T) {
	cfg, err := config.Default()
	require.NoError(t, err)

	out, err := config.Render(cfg)
	require.NoError(t, err)
	assert.Contains(t, string(out), "clang-tidy")
	assert.Contains(t, string(out), "poll_interval")

	_, err = config.Render(&config.Config{})
	assert.Error(t, err)
}
