// Package libtable reads KiCad library-table files (sym-lib-table,
// fp-lib-table) into flat key/value records.
//
// Table files are advisory: a missing or corrupt table must not block an
// import, so ReadFile degrades to an empty result instead of propagating
// parse failures. Read, the in-memory entry point, still reports a syntax
// error when the document itself is unreadable.
package libtable

import (
	"os"

	"github.com/arthur-debert/kilib/pkg/logging"
	"github.com/arthur-debert/kilib/pkg/sexp"
)

// Well-known record keys. Tables may carry additional keys; all are kept.
const (
	KeyName    = "name"
	KeyType    = "type"
	KeyURI     = "uri"
	KeyOptions = "options"
	KeyDescr   = "descr"
)

// libTag marks a library entry inside a table document.
const libTag = "lib"

// Record is one library entry: a mapping from key to value. Unknown keys
// are preserved as opaque strings.
type Record map[string]string

// Name returns the library's display name.
func (r Record) Name() string { return r[KeyName] }

// Type returns the library's declared type (commonly "KiCad").
func (r Record) Type() string { return r[KeyType] }

// URI returns the library's location, possibly containing placeholder
// tokens such as ${KICAD9_SYMBOL_DIR}.
func (r Record) URI() string { return r[KeyURI] }

// Options returns the library's option string, if any.
func (r Record) Options() string { return r[KeyOptions] }

// Descr returns the library's description, if any.
func (r Record) Descr() string { return r[KeyDescr] }

// Read parses a library-table document and collects every `lib` entry.
// Children of a lib node that are not exactly 2-element (key value) pairs
// of atoms are skipped; a record that yields zero pairs is discarded.
func Read(text string) ([]Record, error) {
	root, err := sexp.Parse(text)
	if err != nil {
		return nil, err
	}

	var records []Record
	if !root.IsList() {
		return records, nil
	}

	for _, node := range root.Children {
		if !node.IsList() || node.HeadSymbol() != libTag {
			continue
		}
		record := Record{}
		for _, pair := range node.Children[1:] {
			if !pair.IsList() || len(pair.Children) != 2 {
				continue
			}
			key, value := pair.Children[0], pair.Children[1]
			if !key.IsAtom() || !value.IsAtom() {
				continue
			}
			record[key.Text] = value.Text
		}
		if len(record) > 0 {
			records = append(records, record)
		}
	}

	return records, nil
}

// ReadFile reads a library table from disk. It never fails: a missing file
// yields nil, and an unreadable or malformed file is logged at warn level
// and also yields nil.
func ReadFile(path string) []Record {
	logger := logging.GetLogger("libtable")

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			logger.Warn().Err(err).Str("path", path).Msg("Unable to read library table")
		}
		return nil
	}

	records, err := Read(string(data))
	if err != nil {
		logger.Warn().Err(err).Str("path", path).Msg("Unable to parse library table")
		return nil
	}

	return records
}
