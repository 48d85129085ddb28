package config

import (
	"sort"
	"time"

	"github.com/arthur-debert/tidyforge/pkg/errors"
)

// Config is the effective tidyforge configuration.
type Config struct {
	Scheduler SchedulerConfig `koanf:"scheduler"`
	Build     BuildConfig     `koanf:"build"`
	Tidy      TidyConfig      `koanf:"tidy"`
	Reconcile ReconcileConfig `koanf:"reconcile"`

	// raw is the merged koanf tree, kept for rendering
	raw map[string]interface{}
}

// SchedulerConfig controls the job scheduler drain loop.
type SchedulerConfig struct {
	PollInterval time.Duration `koanf:"poll_interval"`
	Shell        string        `koanf:"shell"`
}

// BuildConfig describes how sources are compiled and linked.
type BuildConfig struct {
	Compiler    string                   `koanf:"compiler"`
	Linker      string                   `koanf:"linker"`
	ProjectDir  string                   `koanf:"project_dir"`
	Sources     []string                 `koanf:"sources"`
	BuildDir    string                   `koanf:"build_dir"`
	OutDir      string                   `koanf:"out_dir"`
	Output      string                   `koanf:"output"`
	MaxFailures int                      `koanf:"max_failures"`
	IncludeDirs []string                 `koanf:"include_dirs"`
	LibDirs     []string                 `koanf:"lib_dirs"`
	Defines     []string                 `koanf:"defines"`
	Flags       []string                 `koanf:"flags"`
	LinkFlags   []string                 `koanf:"link_flags"`
	Libs        []string                 `koanf:"libs"`
	Objects     []string                 `koanf:"objects"`
	Profiles    map[string]ProfileConfig `koanf:"profiles"`
}

// ProfileConfig holds the flags a build configuration selector adds.
type ProfileConfig struct {
	Defines   []string `koanf:"defines"`
	Flags     []string `koanf:"flags"`
	LinkFlags []string `koanf:"link_flags"`
}

// TidyConfig describes the clang-tidy analysis run.
type TidyConfig struct {
	Binary       string   `koanf:"binary"`
	Checks       []string `koanf:"checks"`
	Sources      []string `koanf:"sources"`
	BuildPath    string   `koanf:"build_path"`
	FormatStyle  string   `koanf:"format_style"`
	FixesDir     string   `koanf:"fixes_dir"`
	HeaderFilter string   `koanf:"header_filter"`
	ExtraArgs    []string `koanf:"extra_args"`
}

// ReconcileConfig tunes fix reconciliation.
type ReconcileConfig struct {
	ContextRadius int          `koanf:"context_radius"`
	Parallelism   int          `koanf:"parallelism"`
	DryRun        bool         `koanf:"dry_run"`
	DisabledRules []string     `koanf:"disabled_rules"`
	Rules         []RuleConfig `koanf:"rules"`
}

// RuleConfig is a user supplied filter rule.
type RuleConfig struct {
	Name        string `koanf:"name"`
	Pattern     string `koanf:"pattern"`
	Context     string `koanf:"context"`
	Action      string `koanf:"action"`
	Replace     string `koanf:"replace"`
	Description string `koanf:"description"`
}

// Profile returns the flags for a build configuration selector.
func (b BuildConfig) Profile(name string) (ProfileConfig, error) {
	p, ok := b.Profiles[name]
	if !ok {
		known := make([]string, 0, len(b.Profiles))
		for k := range b.Profiles {
			known = append(known, k)
		}
		sort.Strings(known)
		return ProfileConfig{}, errors.Newf(errors.ErrConfigValid,
			"unknown build configuration %q", name).
			WithDetail("known", known)
	}
	return p, nil
}

func (c *Config) validate() error {
	if c.Scheduler.PollInterval <= 0 {
		return errors.New(errors.ErrConfigValid, "scheduler.poll_interval must be positive")
	}
	if c.Reconcile.ContextRadius < 0 {
		return errors.New(errors.ErrConfigValid, "reconcile.context_radius must not be negative")
	}
	if c.Reconcile.Parallelism < 0 {
		return errors.New(errors.ErrConfigValid, "reconcile.parallelism must not be negative")
	}
	if c.Build.MaxFailures < 0 {
		return errors.New(errors.ErrConfigValid, "build.max_failures must not be negative")
	}
	for i, r := range c.Reconcile.Rules {
		if r.Name == "" || r.Pattern == "" {
			return errors.Newf(errors.ErrConfigValid, "reconcile rule %d needs a name and a pattern", i)
		}
		switch r.Action {
		case "", "reject", "rewrite":
		default:
			return errors.Newf(errors.ErrConfigValid, "reconcile rule %q has unknown action %q", r.Name, r.Action)
		}
	}
	return nil
}
