package importer

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/kilib/pkg/kipaths"
	"github.com/arthur-debert/kilib/pkg/libtable"
	"github.com/arthur-debert/kilib/pkg/logging"
)

// DiscoverModelLibraries enumerates 3D model libraries by scanning every
// model search root for *.3dshapes directories. 3D libraries have no table
// file, so discovery synthesizes Records with name, type and uri keys.
// Roots that do not exist are skipped; duplicate directories (the same
// path reachable from two roots) appear once.
func DiscoverModelLibraries(p kipaths.Paths) []libtable.Record {
	logger := logging.GetLogger("importer.discover")

	var records []libtable.Record
	seen := make(map[string]struct{})

	for _, root := range p.ModelSearchRoots() {
		if root == "" {
			continue
		}
		expanded := kipaths.ExpandHome(root)
		if abs, err := filepath.Abs(expanded); err == nil {
			expanded = abs
		}

		entries, err := os.ReadDir(expanded)
		if err != nil {
			if !os.IsNotExist(err) {
				logger.Warn().Err(err).Str("root", expanded).Msg("Unable to enumerate 3D library root")
			}
			continue
		}

		for _, entry := range entries {
			name := entry.Name()
			if !strings.HasSuffix(name, kipaths.ModelDirSuffix) {
				continue
			}

			uri := filepath.Join(expanded, name)
			if _, ok := seen[uri]; ok {
				continue
			}
			seen[uri] = struct{}{}

			records = append(records, libtable.Record{
				libtable.KeyName: strings.TrimSuffix(name, kipaths.ModelDirSuffix),
				libtable.KeyType: TypeModel,
				libtable.KeyURI:  uri,
			})
		}
	}

	return records
}
