package main

import (
	"testing"

	"github.com/nalgeon/be"
)

func firstToken(input string) Token {
	return NewLexer(input).NextToken()
}

func TestIntLiteral(t *testing.T) {
	tok := firstToken("12345")
	be.Equal(t, tok.Type, TokenType(INT))
	be.Equal(t, tok.Literal, "12345")
}

func TestFloatLiteral(t *testing.T) {
	tok := firstToken("3.14")
	be.Equal(t, tok.Type, TokenType(FLOAT))
	be.Equal(t, tok.Literal, "3.14")
}

func TestFloatWithTwoDotsIsIllegal(t *testing.T) {
	tok := firstToken("1.2.3")
	be.Equal(t, tok.Type, TokenType(ILLEGAL))
	be.Equal(t, tok.Literal, "1.2.3")
}

func TestIdentifier(t *testing.T) {
	tok := firstToken("foobar")
	be.Equal(t, tok.Type, TokenType(IDENT))
	be.Equal(t, tok.Literal, "foobar")
}

func TestKeywords(t *testing.T) {
	tests := []struct {
		input string
		typ   TokenType
	}{
		{"let", LET},
		{"fn", FN},
		{"return", RETURN},
		{"if", IF},
		{"else", ELSE},
		{"true", TRUE},
		{"false", FALSE},
	}

	for _, tt := range tests {
		tok := firstToken(tt.input)
		be.Equal(t, tok.Type, tt.typ)
		be.Equal(t, tok.Literal, tt.input)
	}
}

func TestAltKeywords(t *testing.T) {
	tests := []struct {
		input string
		typ   TokenType
	}{
		{"lit", LET},
		{"be", ASSIGN},
		{"rn", SEMICOLON},
		{"bruh", FN},
		{"pause", RETURN},
		{"snek", ARROW},
	}

	for _, tt := range tests {
		tok := firstToken(tt.input)
		be.Equal(t, tok.Type, tt.typ)
		be.Equal(t, tok.Literal, tt.input)
	}
}

func TestTypeKeywords(t *testing.T) {
	for _, input := range []string{"int", "float", "bool"} {
		tok := firstToken(input)
		be.Equal(t, tok.Type, TokenType(TYPE))
		be.Equal(t, tok.Literal, input)
	}
}

func TestOperators(t *testing.T) {
	tests := []struct {
		input string
		typ   TokenType
	}{
		{"+", PLUS},
		{"-", MINUS},
		{"*", ASTERISK},
		{"/", SLASH},
		{"%", PERCENT},
		{"^", CARET},
		{"=", ASSIGN},
		{"==", EQ},
		{"!=", NOT_EQ},
		{"<", LT},
		{">", GT},
		{"<=", LE},
		{">=", GE},
	}

	for _, tt := range tests {
		tok := firstToken(tt.input)
		be.Equal(t, tok.Type, tt.typ)
		be.Equal(t, tok.Literal, tt.input)
	}
}

func TestDelimiters(t *testing.T) {
	tests := []struct {
		input string
		typ   TokenType
	}{
		{":", COLON},
		{";", SEMICOLON},
		{",", COMMA},
		{"->", ARROW},
		{"(", LPAREN},
		{")", RPAREN},
		{"{", LBRACE},
		{"}", RBRACE},
	}

	for _, tt := range tests {
		tok := firstToken(tt.input)
		be.Equal(t, tok.Type, tt.typ)
		be.Equal(t, tok.Literal, tt.input)
	}
}

func TestArrowVersusMinus(t *testing.T) {
	l := NewLexer("- -> -")
	be.Equal(t, l.NextToken().Type, TokenType(MINUS))
	be.Equal(t, l.NextToken().Type, TokenType(ARROW))
	be.Equal(t, l.NextToken().Type, TokenType(MINUS))
	be.Equal(t, l.NextToken().Type, TokenType(EOF))
}

func TestMultipleTokens(t *testing.T) {
	l := NewLexer("let a: int = 10;")

	expected := []struct {
		typ     TokenType
		literal string
	}{
		{LET, "let"},
		{IDENT, "a"},
		{COLON, ":"},
		{TYPE, "int"},
		{ASSIGN, "="},
		{INT, "10"},
		{SEMICOLON, ";"},
		{EOF, ""},
	}

	for _, want := range expected {
		tok := l.NextToken()
		be.Equal(t, tok.Type, want.typ)
		be.Equal(t, tok.Literal, want.literal)
	}
}

func TestFunctionTokens(t *testing.T) {
	l := NewLexer("fn main() -> int { return 1; }")

	expected := []TokenType{
		FN, IDENT, LPAREN, RPAREN, ARROW, TYPE, LBRACE,
		RETURN, INT, SEMICOLON, RBRACE, EOF,
	}
	for _, want := range expected {
		be.Equal(t, l.NextToken().Type, want)
	}
}

func TestLineAndColumnTracking(t *testing.T) {
	l := NewLexer("let a: int = 1;\na = 2;")

	tests := []struct {
		literal string
		line    int
		col     int
	}{
		{"let", 1, 1},
		{"a", 1, 5},
		{":", 1, 6},
		{"int", 1, 8},
		{"=", 1, 12},
		{"1", 1, 14},
		{";", 1, 15},
		{"a", 2, 1},
		{"=", 2, 3},
		{"2", 2, 5},
		{";", 2, 6},
	}

	for _, tt := range tests {
		tok := l.NextToken()
		be.Equal(t, tok.Literal, tt.literal)
		be.Equal(t, tok.Line, tt.line)
		be.Equal(t, tok.Col, tt.col)
	}
}

func TestIllegalCharacter(t *testing.T) {
	tests := []string{"@", "#", "$", "~", "?", "!"}

	for _, input := range tests {
		tok := firstToken(input)
		be.Equal(t, tok.Type, TokenType(ILLEGAL))
	}
}

func TestIllegalDoesNotStall(t *testing.T) {
	l := NewLexer("@ a")
	be.Equal(t, l.NextToken().Type, TokenType(ILLEGAL))
	be.Equal(t, l.NextToken().Type, TokenType(IDENT))
	be.Equal(t, l.NextToken().Type, TokenType(EOF))
}

func TestWhitespace(t *testing.T) {
	tests := []string{"  x  y  ", "\tx\ty\t", "\nx\ny\n", "\r\nx\r\ny\r\n"}

	for _, input := range tests {
		l := NewLexer(input)
		be.Equal(t, l.NextToken().Literal, "x")
		be.Equal(t, l.NextToken().Literal, "y")
		be.Equal(t, l.NextToken().Type, TokenType(EOF))
	}
}

func TestEOF(t *testing.T) {
	tests := []string{"", " ", "\t\n\r"}

	for _, input := range tests {
		tok := firstToken(input)
		be.Equal(t, tok.Type, TokenType(EOF))
		be.Equal(t, tok.Literal, "")
	}
}

func TestEOFIsSticky(t *testing.T) {
	l := NewLexer("x")
	be.Equal(t, l.NextToken().Type, TokenType(IDENT))
	be.Equal(t, l.NextToken().Type, TokenType(EOF))
	be.Equal(t, l.NextToken().Type, TokenType(EOF))
}
