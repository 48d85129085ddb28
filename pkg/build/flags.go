package build

import (
	"path/filepath"

	"github.com/arthur-debert/tidyforge/pkg/config"
)

// Args holds the resolved compile and link arguments for a profile.
type Args struct {
	Profile string
	Compile []string
	Link    []string
}

// ResolveArgs maps a build configuration selector to compiler and linker
// arguments: base flags, then profile flags, then -D defines (base first)
// and -I include directories.
func ResolveArgs(cfg config.BuildConfig, profile string) (Args, error) {
	p, err := cfg.Profile(profile)
	if err != nil {
		return Args{}, err
	}

	var compile []string
	compile = append(compile, cfg.Flags...)
	compile = append(compile, p.Flags...)
	for _, d := range cfg.Defines {
		compile = append(compile, "-D"+d)
	}
	for _, d := range p.Defines {
		compile = append(compile, "-D"+d)
	}
	for _, dir := range cfg.IncludeDirs {
		compile = append(compile, "-I"+projectPath(cfg, dir))
	}

	var link []string
	link = append(link, cfg.LinkFlags...)
	link = append(link, p.LinkFlags...)

	return Args{Profile: profile, Compile: compile, Link: link}, nil
}

func projectPath(cfg config.BuildConfig, p string) string {
	if filepath.IsAbs(p) || cfg.ProjectDir == "" {
		return p
	}
	return filepath.Join(cfg.ProjectDir, p)
}
