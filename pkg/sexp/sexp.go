// Package sexp implements the nested-list ("S-expression") text format used
// by KiCad library files.
//
// The data model is deliberately tiny: a Node is either an atom (a bare
// symbol or a quoted string literal) or an ordered list of Nodes. The parser
// attaches no meaning to any token; numeric-looking symbols stay symbols,
// and library semantics live in higher layers (pkg/libtable, pkg/symlib).
//
// Two API tiers are provided:
//
//   - Parse/ParseAll: text to Node tree, with positioned syntax errors
//   - Serialize: Node tree to canonically indented text
package sexp

// Kind discriminates the Node variants.
type Kind int

const (
	// List is an ordered sequence of child Nodes.
	List Kind = iota

	// Symbol is a bare, unquoted token, printed verbatim.
	Symbol

	// String is a quoted literal; Text holds the decoded contents.
	String
)

// Node is a parsed S-expression value: an atom or a list of Nodes.
type Node struct {
	Kind     Kind
	Text     string  // atom text; unused for lists
	Children []*Node // list children; unused for atoms
}

// NewSymbol returns a bare-symbol atom.
func NewSymbol(text string) *Node {
	return &Node{Kind: Symbol, Text: text}
}

// NewString returns a quoted-string atom holding the decoded text.
func NewString(text string) *Node {
	return &Node{Kind: String, Text: text}
}

// NewList returns a list node over the given children.
func NewList(children ...*Node) *Node {
	return &Node{Kind: List, Children: children}
}

// IsList reports whether n is a list.
func (n *Node) IsList() bool {
	return n != nil && n.Kind == List
}

// IsAtom reports whether n is a symbol or string atom.
func (n *Node) IsAtom() bool {
	return n != nil && n.Kind != List
}

// Head returns the first child of a list, or nil.
func (n *Node) Head() *Node {
	if !n.IsList() || len(n.Children) == 0 {
		return nil
	}
	return n.Children[0]
}

// HeadSymbol returns the head atom's text if the list starts with a bare
// symbol, and "" otherwise. It is the tag-dispatch helper used by the
// document layers.
func (n *Node) HeadSymbol() string {
	head := n.Head()
	if head == nil || head.Kind != Symbol {
		return ""
	}
	return head.Text
}

// Equal reports structural equality: same kind, same atom text, and
// pairwise-equal children. Whitespace and formatting are not part of the
// model, so two parses of differently formatted but equivalent text
// compare equal.
func Equal(a, b *Node) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.Kind != b.Kind {
		return false
	}
	if a.Kind != List {
		return a.Text == b.Text
	}
	if len(a.Children) != len(b.Children) {
		return false
	}
	for i := range a.Children {
		if !Equal(a.Children[i], b.Children[i]) {
			return false
		}
	}
	return true
}
