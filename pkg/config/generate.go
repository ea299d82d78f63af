package config

import (
	"github.com/pelletier/go-toml/v2"

	kerrors "github.com/arthur-debert/kilib/pkg/errors"
)

// Render serializes a Config back to TOML, for `kilib config` output and
// for writing a starter user configuration file.
func Render(cfg *Config) ([]byte, error) {
	out, err := toml.Marshal(cfg)
	if err != nil {
		return nil, kerrors.Wrap(err, kerrors.ErrConfigLoad, "failed to render configuration")
	}
	return out, nil
}
