// Package mdtest extracts Lime language test cases from Markdown documents
// and provides the s-expression patterns their assertions are written in.
package mdtest

import (
	"fmt"
	"strings"
	"unicode"
)

// NodeType represents the type of a pattern Node
type NodeType int

const (
	NodeSymbol NodeType = iota
	NodeString
	NodeList
)

// Node is one element of a parsed s-expression: a bare atom, a quoted
// string, or a parenthesized list.
type Node struct {
	Type  NodeType
	Text  string  // NodeSymbol, NodeString
	Items []*Node // NodeList
}

func (n *Node) String() string {
	switch n.Type {
	case NodeSymbol:
		return n.Text
	case NodeString:
		escaped := strings.ReplaceAll(n.Text, "\\", "\\\\")
		escaped = strings.ReplaceAll(escaped, "\"", "\\\"")
		return "\"" + escaped + "\""
	case NodeList:
		parts := make([]string, len(n.Items))
		for i, item := range n.Items {
			parts[i] = item.String()
		}
		return "(" + strings.Join(parts, " ") + ")"
	default:
		return fmt.Sprintf("UNKNOWN_NODE_TYPE_%d", n.Type)
	}
}

// Equal reports whether two s-expressions are structurally identical.
func Equal(a, b *Node) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.Type != b.Type || a.Text != b.Text || len(a.Items) != len(b.Items) {
		return false
	}
	for i := range a.Items {
		if !Equal(a.Items[i], b.Items[i]) {
			return false
		}
	}
	return true
}

type parser struct {
	input []rune
	pos   int
}

// Parse parses input as a single s-expression. Trailing content after the
// expression is an error.
func Parse(input string) (*Node, error) {
	p := &parser{input: []rune(input)}
	p.skipSpace()
	node, err := p.parseNode()
	if err != nil {
		return nil, err
	}
	p.skipSpace()
	if p.pos < len(p.input) {
		return nil, fmt.Errorf("unexpected trailing content at offset %d", p.pos)
	}
	return node, nil
}

func (p *parser) parseNode() (*Node, error) {
	if p.pos >= len(p.input) {
		return nil, fmt.Errorf("unexpected end of input")
	}

	switch p.input[p.pos] {
	case '(':
		return p.parseList()
	case ')':
		return nil, fmt.Errorf("unexpected ')' at offset %d", p.pos)
	case '"':
		return p.parseString()
	default:
		return p.parseSymbol()
	}
}

func (p *parser) parseList() (*Node, error) {
	p.pos++ // (
	node := &Node{Type: NodeList}

	for {
		p.skipSpace()
		if p.pos >= len(p.input) {
			return nil, fmt.Errorf("unterminated list")
		}
		if p.input[p.pos] == ')' {
			p.pos++
			return node, nil
		}
		item, err := p.parseNode()
		if err != nil {
			return nil, err
		}
		node.Items = append(node.Items, item)
	}
}

func (p *parser) parseString() (*Node, error) {
	p.pos++ // opening quote
	var sb strings.Builder

	for p.pos < len(p.input) {
		c := p.input[p.pos]
		switch c {
		case '"':
			p.pos++
			return &Node{Type: NodeString, Text: sb.String()}, nil
		case '\\':
			p.pos++
			if p.pos >= len(p.input) {
				return nil, fmt.Errorf("unterminated escape sequence")
			}
			sb.WriteRune(p.input[p.pos])
			p.pos++
		default:
			sb.WriteRune(c)
			p.pos++
		}
	}
	return nil, fmt.Errorf("unterminated string")
}

func (p *parser) parseSymbol() (*Node, error) {
	start := p.pos
	for p.pos < len(p.input) && !isDelimiter(p.input[p.pos]) {
		p.pos++
	}
	if p.pos == start {
		return nil, fmt.Errorf("empty symbol at offset %d", start)
	}
	return &Node{Type: NodeSymbol, Text: string(p.input[start:p.pos])}, nil
}

func (p *parser) skipSpace() {
	for p.pos < len(p.input) && unicode.IsSpace(p.input[p.pos]) {
		p.pos++
	}
}

func isDelimiter(c rune) bool {
	return unicode.IsSpace(c) || c == '(' || c == ')' || c == '"'
}
