package config

import (
	toml "github.com/pelletier/go-toml/v2"

	"github.com/arthur-debert/tidyforge/pkg/errors"
)

// Render returns the effective configuration as TOML.
func Render(cfg *Config) ([]byte, error) {
	if cfg == nil || cfg.raw == nil {
		return nil, errors.New(errors.ErrInvalidInput, "configuration was not produced by Load")
	}
	out, err := toml.Marshal(cfg.raw)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal, "failed to render configuration")
	}
	return out, nil
}
