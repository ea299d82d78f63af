package sexp

import (
	"testing"

	"github.com/arthur-debert/kilib/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  *Node
	}{
		{
			name:  "bare symbol",
			input: "hello",
			want:  NewSymbol("hello"),
		},
		{
			name:  "numeric-looking token stays a symbol",
			input: "20.32",
			want:  NewSymbol("20.32"),
		},
		{
			name:  "quoted string",
			input: `"hello world"`,
			want:  NewString("hello world"),
		},
		{
			name:  "escaped quote and backslash",
			input: `"a \"b\" c:\\temp"`,
			want:  NewString(`a "b" c:\temp`),
		},
		{
			name:  "empty list",
			input: "()",
			want:  NewList(),
		},
		{
			name:  "flat list",
			input: "(lib (name devices))",
			want: NewList(
				NewSymbol("lib"),
				NewList(NewSymbol("name"), NewSymbol("devices")),
			),
		},
		{
			name:  "mixed atoms",
			input: `(property "Reference" "R" (at 0 1.27 0))`,
			want: NewList(
				NewSymbol("property"),
				NewString("Reference"),
				NewString("R"),
				NewList(NewSymbol("at"), NewSymbol("0"), NewSymbol("1.27"), NewSymbol("0")),
			),
		},
		{
			name:  "deep nesting",
			input: "(a (b (c (d (e)))))",
			want: NewList(NewSymbol("a"),
				NewList(NewSymbol("b"),
					NewList(NewSymbol("c"),
						NewList(NewSymbol("d"),
							NewList(NewSymbol("e")))))),
		},
		{
			name:  "surrounding whitespace",
			input: "\n\t (version 20211014) \n",
			want:  NewList(NewSymbol("version"), NewSymbol("20211014")),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.input)
			require.NoError(t, err)
			assert.True(t, Equal(tt.want, got), "parsed tree differs:\n%s", Serialize(got))
		})
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantMsg string
	}{
		{
			name:    "empty input",
			input:   "",
			wantMsg: "empty input",
		},
		{
			name:    "whitespace only",
			input:   "  \n\t",
			wantMsg: "empty input",
		},
		{
			name:    "unclosed paren",
			input:   "(lib (name",
			wantMsg: "unclosed '('",
		},
		{
			name:    "stray closing paren",
			input:   ")",
			wantMsg: "unexpected ')'",
		},
		{
			name:    "unterminated string",
			input:   `(name "broken`,
			wantMsg: "unterminated string",
		},
		{
			name:    "dangling escape",
			input:   `"broken\`,
			wantMsg: "unterminated string",
		},
		{
			name:    "trailing content",
			input:   "(a) (b)",
			wantMsg: "unexpected content",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.input)
			require.Error(t, err)
			assert.True(t, errors.IsErrorCode(err, errors.ErrSyntax),
				"want SYNTAX_ERROR, got %v", err)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestParseErrorPosition(t *testing.T) {
	_, err := Parse("(a\n  \"broken")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "2:3")

	details := errors.GetErrorDetails(err)
	require.NotNil(t, details)
	assert.Equal(t, 2, details["line"])
	assert.Equal(t, 3, details["col"])
}

func TestParseAll(t *testing.T) {
	nodes, err := ParseAll("(a 1) (b 2)\n(c 3)")
	require.NoError(t, err)
	require.Len(t, nodes, 3)
	assert.Equal(t, "a", nodes[0].HeadSymbol())
	assert.Equal(t, "c", nodes[2].HeadSymbol())

	nodes, err = ParseAll("   \n ")
	require.NoError(t, err)
	assert.Empty(t, nodes)
}

func TestHeadSymbol(t *testing.T) {
	n, err := Parse(`(symbol "R_0402")`)
	require.NoError(t, err)
	assert.Equal(t, "symbol", n.HeadSymbol())

	assert.Equal(t, "", NewList().HeadSymbol())
	assert.Equal(t, "", NewList(NewString("quoted")).HeadSymbol())
	assert.Equal(t, "", NewSymbol("atom").HeadSymbol())
}

func TestEqual(t *testing.T) {
	a, err := Parse(`(lib (name "devices"))`)
	require.NoError(t, err)
	b, err := Parse("(lib\n  (name \"devices\"))")
	require.NoError(t, err)
	assert.True(t, Equal(a, b))

	// Atom kind matters: symbol devices != string "devices".
	c, err := Parse("(lib (name devices))")
	require.NoError(t, err)
	assert.False(t, Equal(a, c))
}
