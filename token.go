package main

// TokenType is the type of token (identifier, operator, literal, etc.).
type TokenType string

// Definition of token types
const (
	// Special tokens
	ILLEGAL = "ILLEGAL"
	EOF     = "EOF"

	// Identifiers + literals
	IDENT = "IDENT" // main, foo, _bar
	INT   = "INT"   // 12345
	FLOAT = "FLOAT" // 3.14

	// Arithmetic operators
	PLUS     = "+"
	MINUS    = "-"
	ASTERISK = "*"
	SLASH    = "/"
	PERCENT  = "%"
	CARET    = "^"

	// Assignment
	ASSIGN = "="

	// Comparison operators
	EQ     = "=="
	NOT_EQ = "!="
	LT     = "<"
	GT     = ">"
	LE     = "<="
	GE     = ">="

	// Delimiters
	COLON     = ":"
	SEMICOLON = ";"
	COMMA     = ","
	ARROW     = "->"
	LPAREN    = "("
	RPAREN    = ")"
	LBRACE    = "{"
	RBRACE    = "}"

	// Keywords
	LET    = "LET"
	FN     = "FN"
	RETURN = "RETURN"
	IF     = "IF"
	ELSE   = "ELSE"
	TRUE   = "TRUE"
	FALSE  = "FALSE"

	// Type names (int, float, bool)
	TYPE = "TYPE"
)

// Token is a single lexical unit. Tokens are immutable once produced; Line
// and Col are 1-based and refer to the token's first character.
type Token struct {
	Type    TokenType
	Literal string
	Line    int
	Col     int
}

var keywords = map[string]TokenType{
	"let":    LET,
	"fn":     FN,
	"return": RETURN,
	"if":     IF,
	"else":   ELSE,
	"true":   TRUE,
	"false":  FALSE,
}

// altKeywords are alternate spellings accepted everywhere the canonical
// keyword (or symbol) is.
var altKeywords = map[string]TokenType{
	"lit":   LET,
	"be":    ASSIGN,
	"rn":    SEMICOLON,
	"bruh":  FN,
	"pause": RETURN,
	"snek":  ARROW,
}

var typeKeywords = map[string]bool{
	"int":   true,
	"float": true,
	"bool":  true,
}

// LookupIdent classifies an identifier spelling: keyword, alias spelling,
// type name, or plain identifier.
func LookupIdent(ident string) TokenType {
	if tt, ok := keywords[ident]; ok {
		return tt
	}
	if tt, ok := altKeywords[ident]; ok {
		return tt
	}
	if typeKeywords[ident] {
		return TYPE
	}
	return IDENT
}
