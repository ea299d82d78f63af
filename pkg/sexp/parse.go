package sexp

import (
	"strings"

	"github.com/arthur-debert/kilib/pkg/errors"
)

// scanner walks the source rune by rune, tracking line and column so syntax
// errors can point at the offending token.
type scanner struct {
	src  string
	pos  int
	line int // 1-based
	col  int // 1-based
}

func newScanner(src string) *scanner {
	return &scanner{src: src, line: 1, col: 1}
}

func (s *scanner) eof() bool {
	return s.pos >= len(s.src)
}

func (s *scanner) peek() byte {
	return s.src[s.pos]
}

func (s *scanner) advance() byte {
	c := s.src[s.pos]
	s.pos++
	if c == '\n' {
		s.line++
		s.col = 1
	} else {
		s.col++
	}
	return c
}

func (s *scanner) skipSpace() {
	for !s.eof() {
		switch s.peek() {
		case ' ', '\t', '\r', '\n':
			s.advance()
		default:
			return
		}
	}
}

func (s *scanner) errorf(line, col int, format string, args ...interface{}) *errors.Error {
	return errors.Newf(errors.ErrSyntax, format, args...).
		WithDetail("line", line).
		WithDetail("col", col)
}

// Parse reads exactly one S-expression from text. It fails with a
// SYNTAX_ERROR on empty input, unbalanced parentheses, unterminated string
// literals, or trailing content after the first expression.
func Parse(text string) (*Node, error) {
	s := newScanner(text)
	s.skipSpace()
	if s.eof() {
		return nil, errors.New(errors.ErrSyntax, "empty input, expected an expression")
	}
	node, err := s.readNode()
	if err != nil {
		return nil, err
	}
	s.skipSpace()
	if !s.eof() {
		return nil, s.errorf(s.line, s.col, "unexpected content after expression at %d:%d", s.line, s.col)
	}
	return node, nil
}

// ParseAll reads every top-level S-expression from text. Unlike Parse it
// accepts zero expressions (whitespace-only input yields an empty slice).
func ParseAll(text string) ([]*Node, error) {
	s := newScanner(text)
	var nodes []*Node
	for {
		s.skipSpace()
		if s.eof() {
			return nodes, nil
		}
		node, err := s.readNode()
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, node)
	}
}

func (s *scanner) readNode() (*Node, error) {
	s.skipSpace()
	if s.eof() {
		return nil, s.errorf(s.line, s.col, "unexpected end of input at %d:%d", s.line, s.col)
	}
	line, col := s.line, s.col
	switch s.peek() {
	case '(':
		return s.readList()
	case ')':
		return nil, s.errorf(line, col, "unexpected ')' at %d:%d", line, col)
	case '"':
		return s.readString()
	default:
		return s.readSymbol(), nil
	}
}

func (s *scanner) readList() (*Node, error) {
	openLine, openCol := s.line, s.col
	s.advance() // consume '('
	var children []*Node
	for {
		s.skipSpace()
		if s.eof() {
			return nil, s.errorf(openLine, openCol,
				"unclosed '(' opened at %d:%d", openLine, openCol)
		}
		if s.peek() == ')' {
			s.advance()
			return NewList(children...), nil
		}
		child, err := s.readNode()
		if err != nil {
			return nil, err
		}
		children = append(children, child)
	}
}

func (s *scanner) readString() (*Node, error) {
	openLine, openCol := s.line, s.col
	s.advance() // consume opening quote
	var b strings.Builder
	for {
		if s.eof() {
			return nil, s.errorf(openLine, openCol,
				"unterminated string literal opened at %d:%d", openLine, openCol)
		}
		c := s.advance()
		switch c {
		case '"':
			return NewString(b.String()), nil
		case '\\':
			if s.eof() {
				return nil, s.errorf(openLine, openCol,
					"unterminated string literal opened at %d:%d", openLine, openCol)
			}
			esc := s.advance()
			switch esc {
			case '"', '\\':
				b.WriteByte(esc)
			case 'n':
				b.WriteByte('\n')
			case 't':
				b.WriteByte('\t')
			default:
				// Unknown escapes pass through undecoded, matching the
				// tolerant quoting rule of the file format.
				b.WriteByte('\\')
				b.WriteByte(esc)
			}
		default:
			b.WriteByte(c)
		}
	}
}

func isDelimiter(c byte) bool {
	switch c {
	case ' ', '\t', '\r', '\n', '(', ')', '"':
		return true
	}
	return false
}

func (s *scanner) readSymbol() *Node {
	start := s.pos
	for !s.eof() && !isDelimiter(s.peek()) {
		s.advance()
	}
	return NewSymbol(s.src[start:s.pos])
}
