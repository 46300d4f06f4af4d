package config

import (
	"github.com/IsaccBarker/Greatness/pkg/errors"
	"github.com/pelletier/go-toml/v2"
)

// Render returns the effective configuration as TOML
func (c *Config) Render() (string, error) {
	out, err := toml.Marshal(c.raw)
	if err != nil {
		return "", errors.Wrap(err, errors.ErrInternal, "failed to render configuration")
	}
	return string(out), nil
}
