// Package importer orchestrates KiCad asset imports: it locates target
// libraries through the library tables, routes incoming files by type, and
// drives the parse/merge/serialize cycle for symbol libraries.
package importer

import (
	"github.com/arthur-debert/kilib/pkg/errors"
	"github.com/arthur-debert/kilib/pkg/kipaths"
	"github.com/arthur-debert/kilib/pkg/libtable"
	"github.com/arthur-debert/kilib/pkg/logging"
)

// Library type names as used in tables and on the CLI.
const (
	TypeSymbol    = "symbol"
	TypeFootprint = "footprint"
	TypeModel     = "model"
)

// Cache holds the library definitions read from the KiCad tables plus the
// discovered 3D model libraries. It is an explicit object owned by the
// caller and refreshed on demand; nothing in this package keeps
// process-wide state.
type Cache struct {
	paths kipaths.Paths

	Symbols    []libtable.Record
	Footprints []libtable.Record
	Models     []libtable.Record
}

// NewCache creates an empty cache bound to the given path discovery.
// Call Refresh before use.
func NewCache(p kipaths.Paths) *Cache {
	return &Cache{paths: p}
}

// Refresh re-reads both library tables from disk and re-discovers 3D model
// libraries. Table read failures degrade to empty lists; they never abort.
func (c *Cache) Refresh() {
	logger := logging.GetLogger("importer.cache")

	c.Symbols = libtable.ReadFile(c.paths.SymbolTablePath())
	c.Footprints = libtable.ReadFile(c.paths.FootprintTablePath())
	c.Models = DiscoverModelLibraries(c.paths)

	logger.Debug().
		Int("symbols", len(c.Symbols)).
		Int("footprints", len(c.Footprints)).
		Int("models", len(c.Models)).
		Msg("Library tables refreshed")
}

// ForType returns the cached records for a library type, or nil for an
// unknown type.
func (c *Cache) ForType(libraryType string) []libtable.Record {
	switch libraryType {
	case TypeSymbol:
		return c.Symbols
	case TypeFootprint:
		return c.Footprints
	case TypeModel:
		return c.Models
	}
	return nil
}

// Find locates a library by type and name.
func (c *Cache) Find(libraryType, name string) (libtable.Record, error) {
	for _, record := range c.ForType(libraryType) {
		if record.Name() == name {
			return record, nil
		}
	}
	return nil, errors.Newf(errors.ErrNotFound,
		"no %s library named %q in the KiCad library tables", libraryType, name).
		WithDetail("type", libraryType).
		WithDetail("name", name)
}
