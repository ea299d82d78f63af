// Package config loads kilib's layered configuration: embedded defaults,
// then an optional user file under the XDG config directory, then KILIB_*
// environment variables.
package config

import (
	_ "embed"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	kerrors "github.com/arthur-debert/kilib/pkg/errors"
)

//go:embed kilib.toml
var defaultConfig []byte

// UserConfigFile is the name of the optional user configuration file,
// looked up under <xdg-config>/kilib/.
const UserConfigFile = "kilib.toml"

// Config is the unmarshalled settings tree.
type Config struct {
	Kicad  KicadConfig  `koanf:"kicad" toml:"kicad"`
	Import ImportConfig `koanf:"import" toml:"import"`
}

// KicadConfig locates the KiCad installation kilib imports into.
type KicadConfig struct {
	Version      string `koanf:"version" toml:"version"`
	PrefsDir     string `koanf:"prefs_dir" toml:"prefs_dir"`
	SymbolDir    string `koanf:"symbol_dir" toml:"symbol_dir"`
	FootprintDir string `koanf:"footprint_dir" toml:"footprint_dir"`
	ModelDir     string `koanf:"model_dir" toml:"model_dir"`
}

// ImportConfig holds import behavior settings.
type ImportConfig struct {
	OnConflict string `koanf:"on_conflict" toml:"on_conflict"`
}

// Load builds the configuration from all layers.
func Load() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, kerrors.Wrap(err, kerrors.ErrConfigLoad, "failed to load default configuration")
	}

	userPath := filepath.Join(xdg.ConfigHome, "kilib", UserConfigFile)
	if _, err := os.Stat(userPath); err == nil {
		if err := k.Load(file.Provider(userPath), toml.Parser()); err != nil {
			return nil, kerrors.Wrapf(err, kerrors.ErrConfigLoad,
				"failed to load user configuration from %s", userPath)
		}
	}

	// KILIB_KICAD_PREFS_DIR -> kicad.prefs_dir. Section and key are split
	// on the first underscore; key underscores are preserved.
	err := k.Load(env.Provider("KILIB_", ".", func(s string) string {
		s = strings.ToLower(strings.TrimPrefix(s, "KILIB_"))
		return strings.Replace(s, "_", ".", 1)
	}), nil)
	if err != nil {
		return nil, kerrors.Wrap(err, kerrors.ErrConfigLoad, "failed to load environment configuration")
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, kerrors.Wrap(err, kerrors.ErrConfigLoad, "failed to unmarshal configuration")
	}

	return &cfg, nil
}

// rawBytesProvider adapts an embedded byte slice to koanf's Provider
// interface.
type rawBytesProvider struct {
	bytes []byte
}

func (r *rawBytesProvider) ReadBytes() ([]byte, error) {
	return r.bytes, nil
}

func (r *rawBytesProvider) Read() (map[string]interface{}, error) {
	return nil, kerrors.New(kerrors.ErrConfigLoad, "rawBytesProvider does not support Read")
}
