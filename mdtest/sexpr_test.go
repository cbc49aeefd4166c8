package mdtest

import (
	"testing"

	"github.com/nalgeon/be"
)

func TestParseSymbol(t *testing.T) {
	node, err := Parse("hello")
	be.Err(t, err, nil)
	be.Equal(t, node.Type, NodeSymbol)
	be.Equal(t, node.Text, "hello")
}

func TestParseString(t *testing.T) {
	node, err := Parse(`"hello world"`)
	be.Err(t, err, nil)
	be.Equal(t, node.Type, NodeString)
	be.Equal(t, node.Text, "hello world")
}

func TestParseStringEscapes(t *testing.T) {
	node, err := Parse(`"a \"quoted\" word"`)
	be.Err(t, err, nil)
	be.Equal(t, node.Type, NodeString)
	be.Equal(t, node.Text, `a "quoted" word`)
}

func TestParseEmptyList(t *testing.T) {
	node, err := Parse("()")
	be.Err(t, err, nil)
	be.Equal(t, node.Type, NodeList)
	be.Equal(t, len(node.Items), 0)
}

func TestParseNestedList(t *testing.T) {
	node, err := Parse(`(binary "+" (integer 1) (integer 2))`)
	be.Err(t, err, nil)
	be.Equal(t, node.Type, NodeList)
	be.Equal(t, len(node.Items), 4)
	be.Equal(t, node.Items[0].Type, NodeSymbol)
	be.Equal(t, node.Items[0].Text, "binary")
	be.Equal(t, node.Items[1].Type, NodeString)
	be.Equal(t, node.Items[1].Text, "+")
	be.Equal(t, node.Items[2].Type, NodeList)
	be.Equal(t, node.Items[3].Type, NodeList)
}

func TestParseWhitespace(t *testing.T) {
	node, err := Parse("  (a\n\tb   c)  ")
	be.Err(t, err, nil)
	be.Equal(t, node.Type, NodeList)
	be.Equal(t, len(node.Items), 3)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		input string
		desc  string
	}{
		{"", "empty input"},
		{"(a b", "unterminated list"},
		{`"abc`, "unterminated string"},
		{")", "stray close paren"},
		{"a b", "trailing content"},
	}

	for _, tt := range tests {
		_, err := Parse(tt.input)
		if err == nil {
			t.Errorf("%s: expected error for %q", tt.desc, tt.input)
		}
	}
}

func TestRoundTrip(t *testing.T) {
	tests := []string{
		"hello",
		`"with \"escapes\""`,
		"()",
		`(let "a" int (integer 1))`,
		`(if (binary "<" (integer 1) (integer 2)) (block (return (integer 1))))`,
	}

	for _, input := range tests {
		node, err := Parse(input)
		be.Err(t, err, nil)
		be.Equal(t, node.String(), input)
	}
}

func TestEqual(t *testing.T) {
	a, err := Parse(`(binary "+" (integer 1) (integer 2))`)
	be.Err(t, err, nil)
	b, err := Parse(`(binary  "+"  (integer 1)  (integer 2))`)
	be.Err(t, err, nil)
	c, err := Parse(`(binary "-" (integer 1) (integer 2))`)
	be.Err(t, err, nil)

	be.True(t, Equal(a, b))
	be.True(t, !Equal(a, c))
	be.True(t, !Equal(a, nil))
	be.True(t, Equal(nil, nil))
}
