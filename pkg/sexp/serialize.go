package sexp

import "strings"

// Serialize renders a Node tree as canonically indented text. It is a total
// function: any well-formed tree serializes without error, and re-parsing
// the output yields a structurally equal tree.
//
// Layout rules: each list child goes on its own line, indented two spaces
// deeper than its parent. A list whose head is itself a list puts the open
// paren alone on its line; otherwise the head atom rides inline after it.
// The output ends with exactly one trailing newline.
func Serialize(n *Node) string {
	var b strings.Builder
	writeNode(&b, n, 0)
	b.WriteByte('\n')
	return b.String()
}

func writeNode(b *strings.Builder, n *Node, depth int) {
	pad := strings.Repeat("  ", depth)
	if n.IsAtom() {
		b.WriteString(pad)
		b.WriteString(formatAtom(n))
		return
	}

	if len(n.Children) == 0 {
		b.WriteString(pad)
		b.WriteString("()")
		return
	}

	head := n.Children[0]
	rest := n.Children[1:]

	b.WriteString(pad)
	b.WriteByte('(')
	bodyStart := rest
	if head.IsList() {
		// Head is a sub-list: open paren on its own line, head recurses
		// as the first body item.
		b.WriteByte('\n')
		writeNode(b, head, depth+1)
	} else {
		b.WriteString(formatAtom(head))
	}

	if !head.IsList() && len(bodyStart) == 0 {
		b.WriteByte(')')
		return
	}

	for _, child := range bodyStart {
		b.WriteByte('\n')
		writeNode(b, child, depth+1)
	}
	b.WriteByte('\n')
	b.WriteString(pad)
	b.WriteByte(')')
}

// formatAtom renders an atom through the same quoting rule the parser
// consumes: symbols print verbatim, strings print quoted with the
// characters the parser decodes re-escaped.
func formatAtom(n *Node) string {
	if n.Kind == Symbol {
		return n.Text
	}
	var b strings.Builder
	b.WriteByte('"')
	for i := 0; i < len(n.Text); i++ {
		c := n.Text[i]
		switch c {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\t':
			b.WriteString(`\t`)
		default:
			b.WriteByte(c)
		}
	}
	b.WriteByte('"')
	return b.String()
}
