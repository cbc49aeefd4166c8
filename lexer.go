package main

// Lexer turns lime source text into a stream of tokens. It scans a single
// pass, character by character, and tracks 1-based line/column positions for
// diagnostics. The token stream is finite and not restartable: create a new
// Lexer per compilation.
type Lexer struct {
	input   string
	pos     int  // index of ch
	readPos int  // index after ch
	ch      byte // current character, 0 at end of input

	line int // 1-based line of ch
	col  int // 1-based column of ch
}

// NewLexer creates a Lexer positioned at the first character of input.
func NewLexer(input string) *Lexer {
	l := &Lexer{input: input, line: 1, col: 0}
	l.readChar()
	return l
}

// NextToken scans and returns the next token. Every call either advances the
// cursor or returns an EOF token; it never blocks or loops forever.
func (l *Lexer) NextToken() Token {
	l.skipWhitespace()

	line, col := l.line, l.col

	var tok Token
	switch l.ch {
	case '+':
		tok = l.newToken(PLUS)
	case '-':
		if l.peekChar() == '>' {
			l.readChar()
			tok = Token{Type: ARROW, Literal: "->", Line: line, Col: col}
		} else {
			tok = l.newToken(MINUS)
		}
	case '*':
		tok = l.newToken(ASTERISK)
	case '/':
		tok = l.newToken(SLASH)
	case '%':
		tok = l.newToken(PERCENT)
	case '^':
		tok = l.newToken(CARET)
	case '=':
		if l.peekChar() == '=' {
			l.readChar()
			tok = Token{Type: EQ, Literal: "==", Line: line, Col: col}
		} else {
			tok = l.newToken(ASSIGN)
		}
	case '!':
		if l.peekChar() == '=' {
			l.readChar()
			tok = Token{Type: NOT_EQ, Literal: "!=", Line: line, Col: col}
		} else {
			tok = l.newToken(ILLEGAL)
		}
	case '<':
		if l.peekChar() == '=' {
			l.readChar()
			tok = Token{Type: LE, Literal: "<=", Line: line, Col: col}
		} else {
			tok = l.newToken(LT)
		}
	case '>':
		if l.peekChar() == '=' {
			l.readChar()
			tok = Token{Type: GE, Literal: ">=", Line: line, Col: col}
		} else {
			tok = l.newToken(GT)
		}
	case ':':
		tok = l.newToken(COLON)
	case ';':
		tok = l.newToken(SEMICOLON)
	case ',':
		tok = l.newToken(COMMA)
	case '(':
		tok = l.newToken(LPAREN)
	case ')':
		tok = l.newToken(RPAREN)
	case '{':
		tok = l.newToken(LBRACE)
	case '}':
		tok = l.newToken(RBRACE)
	case 0:
		return Token{Type: EOF, Literal: "", Line: line, Col: col}
	default:
		if isLetter(l.ch) {
			lit := l.readIdentifier()
			return Token{Type: LookupIdent(lit), Literal: lit, Line: line, Col: col}
		}
		if isDigit(l.ch) {
			return l.readNumber(line, col)
		}
		tok = l.newToken(ILLEGAL)
	}

	l.readChar()
	return tok
}

func (l *Lexer) newToken(tt TokenType) Token {
	return Token{Type: tt, Literal: string(l.ch), Line: l.line, Col: l.col}
}

func (l *Lexer) readChar() {
	if l.ch == '\n' {
		l.line++
		l.col = 0
	}
	if l.readPos >= len(l.input) {
		l.ch = 0
	} else {
		l.ch = l.input[l.readPos]
	}
	l.pos = l.readPos
	l.readPos++
	l.col++
}

func (l *Lexer) peekChar() byte {
	if l.readPos >= len(l.input) {
		return 0
	}
	return l.input[l.readPos]
}

func (l *Lexer) skipWhitespace() {
	for l.ch == ' ' || l.ch == '\t' || l.ch == '\n' || l.ch == '\r' {
		l.readChar()
	}
}

func (l *Lexer) readIdentifier() string {
	start := l.pos
	for isLetter(l.ch) || isDigit(l.ch) {
		l.readChar()
	}
	return l.input[start:l.pos]
}

// readNumber scans an integer or float literal. A literal may contain at most
// one dot; a second dot turns the remainder into an ILLEGAL token rather than
// aborting the whole scan.
func (l *Lexer) readNumber(line, col int) Token {
	start := l.pos
	dots := 0
	for isDigit(l.ch) || l.ch == '.' {
		if l.ch == '.' {
			dots++
		}
		l.readChar()
	}
	lit := l.input[start:l.pos]

	switch dots {
	case 0:
		return Token{Type: INT, Literal: lit, Line: line, Col: col}
	case 1:
		return Token{Type: FLOAT, Literal: lit, Line: line, Col: col}
	default:
		return Token{Type: ILLEGAL, Literal: lit, Line: line, Col: col}
	}
}

func isLetter(c byte) bool {
	return ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z') || c == '_'
}

func isDigit(c byte) bool {
	return '0' <= c && c <= '9'
}
