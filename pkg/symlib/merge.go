package symlib

import (
	"sort"
	"strings"

	"github.com/arthur-debert/kilib/pkg/errors"
	"github.com/arthur-debert/kilib/pkg/sexp"
)

// Policy decides the fate of an incoming entry whose name already exists
// in the destination document.
type Policy int

const (
	// RejectOnConflict aborts the merge, reporting every colliding name.
	RejectOnConflict Policy = iota

	// OverwriteOnConflict replaces the existing entry in place.
	OverwriteOnConflict
)

// String returns the CLI spelling of the policy.
func (p Policy) String() string {
	switch p {
	case OverwriteOnConflict:
		return "overwrite"
	default:
		return "reject"
	}
}

// ParsePolicy converts the CLI spelling into a Policy.
func ParsePolicy(s string) (Policy, error) {
	switch strings.ToLower(s) {
	case "reject":
		return RejectOnConflict, nil
	case "overwrite":
		return OverwriteOnConflict, nil
	default:
		return RejectOnConflict, errors.Newf(errors.ErrInvalidInput,
			"unknown conflict policy %q (want reject or overwrite)", s)
	}
}

// MergeResult is the outcome of a successful merge.
type MergeResult struct {
	Doc     *Document
	Added   int
	Updated int
}

// Merge combines incoming into existing under the given policy.
//
// When existing is nil the merged document takes header, metadata and
// entries wholly from incoming. Otherwise the header and metadata of
// existing are kept unchanged (the destination's declared format marker
// and provenance are authoritative) and incoming entries are folded in:
// new names append in incoming order, colliding names either abort the
// merge (RejectOnConflict, with a CONFLICT error naming every collision)
// or replace the existing entry at its original position
// (OverwriteOnConflict).
//
// The conflict scan runs to completion before any mutation, so a rejected
// merge leaves both inputs untouched.
func Merge(existing, incoming *Document, policy Policy) (*MergeResult, error) {
	if incoming == nil {
		return nil, errors.New(errors.ErrInvalidInput, "incoming document is required")
	}

	if existing == nil {
		doc := &Document{
			Header:   incoming.Header,
			Metadata: cloneNodes(incoming.Metadata),
			Entries:  cloneNodes(incoming.Entries),
		}
		return &MergeResult{Doc: doc, Added: len(doc.Entries)}, nil
	}

	index := make(map[string]int, len(existing.Entries))
	for i, entry := range existing.Entries {
		name, err := EntryName(entry)
		if err != nil {
			return nil, err
		}
		index[name] = i
	}

	incomingNames, err := incoming.Names()
	if err != nil {
		return nil, err
	}

	// Full conflict scan before anything is mutated.
	conflictSet := make(map[string]struct{})
	for _, name := range incomingNames {
		if _, ok := index[name]; ok {
			conflictSet[name] = struct{}{}
		}
	}
	if policy == RejectOnConflict && len(conflictSet) > 0 {
		conflicts := make([]string, 0, len(conflictSet))
		for name := range conflictSet {
			conflicts = append(conflicts, name)
		}
		sort.Strings(conflicts)
		return nil, errors.Newf(errors.ErrConflict,
			"symbols already present in target library: %s", strings.Join(conflicts, ", ")).
			WithDetail("conflicts", conflicts)
	}

	result := &MergeResult{
		Doc: &Document{
			Header:   existing.Header,
			Metadata: cloneNodes(existing.Metadata),
			Entries:  cloneNodes(existing.Entries),
		},
	}

	for i, entry := range incoming.Entries {
		name := incomingNames[i]
		if pos, ok := index[name]; ok {
			result.Doc.Entries[pos] = entry
			result.Updated++
			continue
		}
		result.Doc.Entries = append(result.Doc.Entries, entry)
		index[name] = len(result.Doc.Entries) - 1
		result.Added++
	}

	return result, nil
}

func cloneNodes(nodes []*sexp.Node) []*sexp.Node {
	if nodes == nil {
		return nil
	}
	out := make([]*sexp.Node, len(nodes))
	copy(out, nodes)
	return out
}
