// Package kipaths centralizes path handling for kilib: locating the KiCad
// preferences directory and its library tables, the bundled shared-support
// directories, and resolving the placeholder tokens KiCad library URIs use.
package kipaths

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/adrg/xdg"
	"github.com/arthur-debert/kilib/pkg/errors"
)

// Environment variable names.
const (
	// EnvPrefsDir overrides the KiCad preferences directory.
	EnvPrefsDir = "KILIB_PREFS_DIR"

	// EnvSymbolDir overrides the bundled symbol library directory.
	EnvSymbolDir = "KICAD_SYMBOL_DIR"

	// EnvFootprintDir overrides the bundled footprint library directory.
	EnvFootprintDir = "KICAD_FOOTPRINT_DIR"

	// EnvModelDir overrides the bundled 3D model directory.
	EnvModelDir = "KICAD_3DMODEL_DIR"

	// EnvModelSearchPath is KiCad's legacy 3D model search path list.
	EnvModelSearchPath = "KISYS3DMOD"
)

// Well-known file and directory names.
const (
	// SymbolTableFile is the symbol library table inside the prefs dir.
	SymbolTableFile = "sym-lib-table"

	// FootprintTableFile is the footprint library table inside the prefs dir.
	FootprintTableFile = "fp-lib-table"

	// ModelDirSuffix marks a directory of 3D model files.
	ModelDirSuffix = ".3dshapes"
)

// Paths provides centralized path discovery for kilib.
type Paths interface {
	KicadVersion() string
	PrefsDir() string
	SymbolTablePath() string
	FootprintTablePath() string
	SymbolDir() string
	FootprintDir() string
	ModelDir() string
	PlaceholderRoots() map[string]string
	ModelSearchRoots() []string
}

// Options configures New. Empty fields fall back to environment variables
// and then to platform defaults.
type Options struct {
	Version      string // KiCad major version, e.g. "9.0"
	PrefsDir     string
	SymbolDir    string
	FootprintDir string
	ModelDir     string
}

type paths struct {
	version      string
	prefsDir     string
	symbolDir    string
	footprintDir string
	modelDir     string
}

// New builds a Paths instance. Priority per directory: explicit option,
// environment override, platform default.
func New(opts Options) (Paths, error) {
	version := opts.Version
	if version == "" {
		version = "9.0"
	}

	p := &paths{version: version}

	p.prefsDir = firstNonEmpty(opts.PrefsDir, os.Getenv(EnvPrefsDir), defaultPrefsDir(version))
	if p.prefsDir == "" {
		return nil, errors.New(errors.ErrNotFound, "cannot determine KiCad preferences directory")
	}
	p.prefsDir = ExpandHome(p.prefsDir)

	shared := sharedSupportDir()
	p.symbolDir = firstNonEmpty(opts.SymbolDir, os.Getenv(EnvSymbolDir), joinIf(shared, "symbols"))
	p.footprintDir = firstNonEmpty(opts.FootprintDir, os.Getenv(EnvFootprintDir), joinIf(shared, "footprints"))
	p.modelDir = firstNonEmpty(opts.ModelDir, os.Getenv(EnvModelDir), joinIf(shared, "3dmodels"))

	return p, nil
}

func (p *paths) KicadVersion() string { return p.version }
func (p *paths) PrefsDir() string     { return p.prefsDir }
func (p *paths) SymbolDir() string    { return p.symbolDir }
func (p *paths) FootprintDir() string { return p.footprintDir }
func (p *paths) ModelDir() string     { return p.modelDir }

// SymbolTablePath returns the sym-lib-table location.
func (p *paths) SymbolTablePath() string {
	return filepath.Join(p.prefsDir, SymbolTableFile)
}

// FootprintTablePath returns the fp-lib-table location.
func (p *paths) FootprintTablePath() string {
	return filepath.Join(p.prefsDir, FootprintTableFile)
}

// PlaceholderRoots maps the URI placeholder tokens KiCad writes into its
// library tables to the discovered directories. Both historical spellings
// of the 3D model token are covered.
func (p *paths) PlaceholderRoots() map[string]string {
	major := strings.SplitN(p.version, ".", 2)[0]
	return map[string]string{
		"${KICAD" + major + "_SYMBOL_DIR}":    p.symbolDir,
		"${KICAD" + major + "_FOOTPRINT_DIR}": p.footprintDir,
		"${KICAD" + major + "_3DMODEL_DIR}":   p.modelDir,
		"${KICAD" + major + "_3D_MODEL_DIR}":  p.modelDir,
	}
}

// ModelSearchRoots returns every directory that may hold *.3dshapes
// libraries: the bundled model dir plus the KISYS3DMOD path list.
func (p *paths) ModelSearchRoots() []string {
	var roots []string
	if p.modelDir != "" {
		roots = append(roots, p.modelDir)
	}
	if extra := os.Getenv(EnvModelSearchPath); extra != "" {
		roots = append(roots, filepath.SplitList(extra)...)
	}
	return roots
}

// defaultPrefsDir returns the platform's KiCad preferences directory.
func defaultPrefsDir(version string) string {
	if runtime.GOOS == "darwin" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		return filepath.Join(home, "Library", "Preferences", "kicad", version)
	}
	return filepath.Join(xdg.ConfigHome, "kicad", version)
}

// sharedSupportDir probes the usual KiCad install locations and returns
// the first that exists, or "".
func sharedSupportDir() string {
	var candidates []string
	if runtime.GOOS == "darwin" {
		candidates = []string{
			"/Applications/KiCad/KiCad.app/Contents/SharedSupport",
			"/Applications/KiCad.app/Contents/SharedSupport",
		}
	} else {
		candidates = []string{
			"/usr/share/kicad",
			"/usr/local/share/kicad",
		}
	}
	for _, dir := range candidates {
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			return dir
		}
	}
	return ""
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func joinIf(dir, sub string) string {
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, sub)
}
