package importer

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"github.com/arthur-debert/kilib/pkg/errors"
	"github.com/arthur-debert/kilib/pkg/kipaths"
	"github.com/arthur-debert/kilib/pkg/libtable"
	"github.com/arthur-debert/kilib/pkg/logging"
	"github.com/arthur-debert/kilib/pkg/sexp"
	"github.com/arthur-debert/kilib/pkg/symlib"
)

// Supported source file extensions.
const (
	ExtSymbolLib = ".kicad_sym"
	ExtFootprint = ".kicad_mod"
	ExtStep      = ".step"
	ExtWRL       = ".wrl"
)

// Importer routes incoming asset files into KiCad libraries.
type Importer struct {
	paths kipaths.Paths
	log   zerolog.Logger
}

// New creates an Importer bound to the given path discovery.
func New(p kipaths.Paths) *Importer {
	return &Importer{
		paths: p,
		log:   logging.GetLogger("importer"),
	}
}

// Result describes a completed import.
type Result struct {
	Message     string
	Library     string
	Destination string
	Added       int
	Updated     int
}

// Import routes source into target by file extension: .kicad_sym files are
// merged into the target symbol library, .kicad_mod files are copied into
// the target footprint library, and .step/.wrl models are copied into the
// target's .3dshapes directory. Unknown extensions fail with UNSUPPORTED.
func (im *Importer) Import(source string, target libtable.Record, policy symlib.Policy) (*Result, error) {
	switch strings.ToLower(filepath.Ext(source)) {
	case ExtSymbolLib:
		return im.ImportSymbols(source, target, policy)
	case ExtFootprint:
		return im.ImportFootprint(source, target)
	case ExtStep, ExtWRL:
		return im.ImportModel(source, target)
	default:
		return nil, errors.Newf(errors.ErrUnsupported,
			"unsupported file type %q", filepath.Ext(source))
	}
}

// ImportSymbols merges the symbols of the source library file into the
// target library under the given conflict policy. Conflict detection
// completes before the destination is written, so a rejected merge leaves
// the destination file untouched.
func (im *Importer) ImportSymbols(source string, target libtable.Record, policy symlib.Policy) (*Result, error) {
	if err := im.ensureNotBundledSymbol(source); err != nil {
		return nil, err
	}

	destPath, err := kipaths.Resolve(target.URI(), im.paths.PlaceholderRoots())
	if err != nil {
		return nil, err
	}

	// A URI pointing at a directory means: drop the incoming file inside it.
	if info, statErr := os.Stat(destPath); statErr == nil && info.IsDir() {
		destPath = filepath.Join(destPath, filepath.Base(source))
	}

	sourceAbs, err := filepath.Abs(source)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "cannot resolve source path %s", source)
	}
	if sourceAbs == destPath {
		return nil, errors.New(errors.ErrInvalidInput,
			"source and destination symbol libraries are identical")
	}

	incoming, err := im.loadSymbolLibrary(sourceAbs)
	if err != nil {
		return nil, err
	}

	var existing *symlib.Document
	if _, statErr := os.Stat(destPath); statErr == nil {
		existing, err = im.loadSymbolLibrary(destPath)
		if err != nil {
			return nil, err
		}
	}

	merged, err := symlib.Merge(existing, incoming, policy)
	if err != nil {
		if kerr, ok := err.(*errors.Error); ok {
			kerr.WithDetail("path", destPath)
		}
		return nil, err
	}

	if err := os.MkdirAll(filepath.Dir(destPath), 0755); err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileWrite,
			"cannot create library directory %s", filepath.Dir(destPath))
	}
	output := sexp.Serialize(merged.Doc.Recompose())
	if err := os.WriteFile(destPath, []byte(output), 0644); err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileWrite,
			"cannot write merged library %s", destPath)
	}

	im.log.Info().
		Str("source", sourceAbs).
		Str("destination", destPath).
		Int("added", merged.Added).
		Int("updated", merged.Updated).
		Str("policy", policy.String()).
		Msg("Symbol library merged")

	message := fmt.Sprintf("Added %d %s from %s into %s (%s)",
		merged.Added, plural(merged.Added, "symbol"), filepath.Base(source),
		target.Name(), destPath)
	if merged.Updated > 0 {
		message = fmt.Sprintf("Added %d, updated %d %s from %s into %s (%s)",
			merged.Added, merged.Updated, plural(merged.Added+merged.Updated, "symbol"),
			filepath.Base(source), target.Name(), destPath)
	}

	return &Result{
		Message:     message,
		Library:     target.Name(),
		Destination: destPath,
		Added:       merged.Added,
		Updated:     merged.Updated,
	}, nil
}

// ImportFootprint copies a .kicad_mod file into the target footprint
// library directory. Footprints are one file per entry, so "merge" is a
// copy with an existence check.
func (im *Importer) ImportFootprint(source string, target libtable.Record) (*Result, error) {
	destPath, err := kipaths.Resolve(target.URI(), im.paths.PlaceholderRoots())
	if err != nil {
		return nil, err
	}
	if info, statErr := os.Stat(destPath); statErr == nil && info.IsDir() {
		destPath = filepath.Join(destPath, filepath.Base(source))
	}

	if _, statErr := os.Stat(destPath); statErr == nil {
		return nil, errors.Newf(errors.ErrAlreadyExists,
			"footprint %q already exists in %s", filepath.Base(source), target.Name()).
			WithDetail("path", destPath)
	}
	if err := im.ensureDistinct(source, destPath, "footprint files"); err != nil {
		return nil, err
	}

	if err := copyFile(source, destPath); err != nil {
		return nil, err
	}

	im.log.Info().Str("source", source).Str("destination", destPath).Msg("Footprint copied")

	return &Result{
		Message:     fmt.Sprintf("Copied footprint %s into %s", filepath.Base(source), target.Name()),
		Library:     target.Name(),
		Destination: destPath,
		Added:       1,
	}, nil
}

// ImportModel copies a .step/.wrl file into the target's .3dshapes
// directory, creating it next to the library when the URI does not already
// name one.
func (im *Importer) ImportModel(source string, target libtable.Record) (*Result, error) {
	destRoot, err := kipaths.Resolve(target.URI(), im.paths.PlaceholderRoots())
	if err != nil {
		return nil, err
	}

	var modelDir string
	info, statErr := os.Stat(destRoot)
	switch {
	case strings.HasSuffix(strings.ToLower(destRoot), kipaths.ModelDirSuffix):
		modelDir = destRoot
	case statErr == nil && info.IsDir():
		modelDir = filepath.Join(destRoot, target.Name()+kipaths.ModelDirSuffix)
	default:
		// URI names a file; place models in a sibling .3dshapes folder.
		modelDir = filepath.Join(filepath.Dir(destRoot), target.Name()+kipaths.ModelDirSuffix)
	}

	destPath := filepath.Join(modelDir, filepath.Base(source))

	if _, statErr := os.Stat(destPath); statErr == nil {
		return nil, errors.Newf(errors.ErrAlreadyExists,
			"3D model %q already exists in %s", filepath.Base(source), target.Name()).
			WithDetail("path", destPath)
	}
	if err := im.ensureDistinct(source, destPath, "3D model files"); err != nil {
		return nil, err
	}

	if err := copyFile(source, destPath); err != nil {
		return nil, err
	}

	im.log.Info().Str("source", source).Str("destination", destPath).Msg("3D model copied")

	return &Result{
		Message:     fmt.Sprintf("Copied 3D model %s into %s (%s)", filepath.Base(source), target.Name(), modelDir),
		Library:     target.Name(),
		Destination: destPath,
		Added:       1,
	}, nil
}

// loadSymbolLibrary reads and splits a symbol library file.
func (im *Importer) loadSymbolLibrary(path string) (*symlib.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "cannot read symbol library %s", path)
	}
	root, err := sexp.Parse(string(data))
	if err != nil {
		if kerr, ok := err.(*errors.Error); ok {
			kerr.WithDetail("path", path)
		}
		return nil, err
	}
	doc, err := symlib.Split(root)
	if err != nil {
		if kerr, ok := err.(*errors.Error); ok {
			kerr.WithDetail("path", path)
		}
		return nil, err
	}
	return doc, nil
}

// ensureNotBundledSymbol refuses to import from KiCad's own bundled symbol
// directory, which would invite overwriting stock libraries.
func (im *Importer) ensureNotBundledSymbol(source string) error {
	bundled := im.paths.SymbolDir()
	if bundled == "" {
		return nil
	}

	bundledAbs, err := filepath.Abs(bundled)
	if err != nil {
		return nil
	}
	sourceAbs, err := filepath.Abs(source)
	if err != nil {
		return nil
	}

	rel, err := filepath.Rel(bundledAbs, sourceAbs)
	if err != nil {
		return nil
	}
	if rel == "." || (!strings.HasPrefix(rel, "..") && !filepath.IsAbs(rel)) {
		return errors.New(errors.ErrInvalidInput,
			"refusing to import from KiCad's built-in symbols directory").
			WithDetail("path", sourceAbs)
	}
	return nil
}

func (im *Importer) ensureDistinct(source, dest, what string) error {
	sourceAbs, err1 := filepath.Abs(source)
	destAbs, err2 := filepath.Abs(dest)
	if err1 == nil && err2 == nil && sourceAbs == destAbs {
		return errors.Newf(errors.ErrInvalidInput,
			"source and destination %s are identical", what)
	}
	return nil
}

func copyFile(source, dest string) error {
	in, err := os.Open(source)
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileAccess, "cannot open %s", source)
	}
	defer func() { _ = in.Close() }()

	if err := os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "cannot create directory %s", filepath.Dir(dest))
	}

	out, err := os.Create(dest)
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "cannot create %s", dest)
	}
	defer func() { _ = out.Close() }()

	if _, err := io.Copy(out, in); err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "cannot copy %s to %s", source, dest)
	}
	return nil
}

func plural(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}
