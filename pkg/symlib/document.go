// Package symlib provides a typed view over KiCad symbol-library documents
// and the merge engine that combines them.
//
// A symbol library is a single S-expression rooted at `kicad_symbol_lib`.
// Its children split into two ordered groups: metadata nodes (version,
// generator and friends) and named `symbol` entries. The package never
// inspects entry bodies; it cares only about document shape and entry
// names.
package symlib

import (
	"github.com/arthur-debert/kilib/pkg/errors"
	"github.com/arthur-debert/kilib/pkg/sexp"
)

const (
	// RootTag is the head symbol every symbol-library document must carry.
	RootTag = "kicad_symbol_lib"

	// EntryTag marks a named symbol entry within the document.
	EntryTag = "symbol"
)

// Document is the decomposed view of a symbol library: the header atom,
// the ordered metadata nodes, and the ordered named entries.
type Document struct {
	Header   *sexp.Node
	Metadata []*sexp.Node
	Entries  []*sexp.Node
}

// Split decomposes a parsed root node into a Document. It fails with a
// STRUCTURE_ERROR if the root is not a list, is empty, or is not tagged
// kicad_symbol_lib. Children keep their relative order within each group.
func Split(root *sexp.Node) (*Document, error) {
	if root == nil || !root.IsList() || len(root.Children) == 0 {
		return nil, errors.New(errors.ErrStructure, "document root is not a non-empty list")
	}
	if root.HeadSymbol() != RootTag {
		return nil, errors.Newf(errors.ErrStructure,
			"not a symbol library: expected (%s ...), found %q", RootTag, describeHead(root))
	}

	doc := &Document{Header: root.Children[0]}
	for _, node := range root.Children[1:] {
		if node.IsList() && node.HeadSymbol() == EntryTag {
			doc.Entries = append(doc.Entries, node)
		} else {
			doc.Metadata = append(doc.Metadata, node)
		}
	}
	return doc, nil
}

// EntryName returns the unique identifier of a symbol entry: the textual
// form of its second element. It fails with a STRUCTURE_ERROR when the
// entry has no name field.
func EntryName(entry *sexp.Node) (string, error) {
	if !entry.IsList() || len(entry.Children) < 2 {
		return "", errors.New(errors.ErrStructure, "symbol entry missing name field")
	}
	return entry.Children[1].Text, nil
}

// Recompose rebuilds the root node as [header, metadata..., entries...],
// preserving the relative order within each group.
func (d *Document) Recompose() *sexp.Node {
	children := make([]*sexp.Node, 0, 1+len(d.Metadata)+len(d.Entries))
	children = append(children, d.Header)
	children = append(children, d.Metadata...)
	children = append(children, d.Entries...)
	return sexp.NewList(children...)
}

// Names returns every entry name in document order.
func (d *Document) Names() ([]string, error) {
	names := make([]string, 0, len(d.Entries))
	for _, entry := range d.Entries {
		name, err := EntryName(entry)
		if err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, nil
}

func describeHead(root *sexp.Node) string {
	head := root.Head()
	if head == nil {
		return ""
	}
	if head.IsAtom() {
		return head.Text
	}
	return "(...)"
}
