package main

import "strconv"

// Precedence levels, lowest to highest. Each level binds tighter than the
// one before it.
const (
	LOWEST      = iota
	EQUALS      // == !=
	LESSGREATER // < <= > >=
	SUM         // + -
	PRODUCT     // * / %
	EXPONENT    // ^
	PREFIX      // reserved for prefix operators
	CALL        // f()
	INDEX       // reserved for subscripts
)

// precedences maps a token type to its infix precedence level. Tokens not in
// this map have LOWEST.
var precedences = map[TokenType]int{
	EQ:       EQUALS,
	NOT_EQ:   EQUALS,
	LT:       LESSGREATER,
	GT:       LESSGREATER,
	LE:       LESSGREATER,
	GE:       LESSGREATER,
	PLUS:     SUM,
	MINUS:    SUM,
	ASTERISK: PRODUCT,
	SLASH:    PRODUCT,
	PERCENT:  PRODUCT,
	CARET:    EXPONENT,
	LPAREN:   CALL,
}

type (
	prefixParseFn func() *ASTNode
	infixParseFn  func(left *ASTNode) *ASTNode
)

// Parser consumes the lexer's token stream and builds the AST. It keeps one
// token of lookahead and never throws: failures are recorded in Errors and
// the broken construct yields nil. There is no resynchronization after an
// error; the cursor stays wherever the failure left it.
type Parser struct {
	lex *Lexer

	curToken  Token
	peekToken Token

	Errors ErrorList

	prefixParseFns map[TokenType]prefixParseFn
	infixParseFns  map[TokenType]infixParseFn
}

// NewParser creates a Parser reading from l, primes the two-token lookahead,
// and registers all parse functions.
func NewParser(l *Lexer) *Parser {
	p := &Parser{
		lex:            l,
		prefixParseFns: make(map[TokenType]prefixParseFn),
		infixParseFns:  make(map[TokenType]infixParseFn),
	}

	p.prefixParseFns[IDENT] = p.parseIdentifier
	p.prefixParseFns[INT] = p.parseIntegerLiteral
	p.prefixParseFns[FLOAT] = p.parseFloatLiteral
	p.prefixParseFns[TRUE] = p.parseBooleanLiteral
	p.prefixParseFns[FALSE] = p.parseBooleanLiteral
	p.prefixParseFns[LPAREN] = p.parseGroupedExpression

	for _, tt := range []TokenType{
		PLUS, MINUS, ASTERISK, SLASH, PERCENT, CARET,
		EQ, NOT_EQ, LT, GT, LE, GE,
	} {
		p.infixParseFns[tt] = p.parseInfixExpression
	}
	p.infixParseFns[LPAREN] = p.parseCallExpression

	p.nextToken()
	p.nextToken()
	return p
}

func (p *Parser) nextToken() {
	p.curToken = p.peekToken
	p.peekToken = p.lex.NextToken()
}

func (p *Parser) curTokenIs(tt TokenType) bool  { return p.curToken.Type == tt }
func (p *Parser) peekTokenIs(tt TokenType) bool { return p.peekToken.Type == tt }

// expectPeek advances when the next token matches, otherwise records an
// unexpected-token diagnostic and leaves the cursor in place.
func (p *Parser) expectPeek(tt TokenType) bool {
	if p.peekTokenIs(tt) {
		p.nextToken()
		return true
	}
	p.Errors.Add(p.peekToken.Line, p.peekToken.Col,
		"expected next token to be %s, got %s instead", tt, p.peekToken.Type)
	return false
}

func (p *Parser) curPrecedence() int {
	if prec, ok := precedences[p.curToken.Type]; ok {
		return prec
	}
	return LOWEST
}

func (p *Parser) peekPrecedence() int {
	if prec, ok := precedences[p.peekToken.Type]; ok {
		return prec
	}
	return LOWEST
}

// ParseProgram parses top-level statements until end of input. Statements
// that failed to parse are skipped; their diagnostics are already recorded.
func (p *Parser) ParseProgram() *ASTNode {
	program := &ASTNode{Kind: NodeProgram, Line: 1, Col: 1}

	for !p.curTokenIs(EOF) {
		stmt := p.parseStatement()
		if stmt != nil {
			program.Children = append(program.Children, stmt)
		}
		p.nextToken()
	}

	return program
}

func (p *Parser) parseStatement() *ASTNode {
	switch p.curToken.Type {
	case LET:
		return p.parseLetStatement()
	case FN:
		return p.parseFunctionStatement()
	case RETURN:
		return p.parseReturnStatement()
	case IF:
		return p.parseIfStatement()
	default:
		return p.parseExpressionStatement()
	}
}

// parseLetStatement parses `let IDENT : TYPE = EXPR ;`.
func (p *Parser) parseLetStatement() *ASTNode {
	stmt := &ASTNode{Kind: NodeLet, Line: p.curToken.Line, Col: p.curToken.Col}

	if !p.expectPeek(IDENT) {
		return nil
	}
	stmt.String = p.curToken.Literal

	if !p.expectPeek(COLON) {
		return nil
	}
	if !p.expectPeek(TYPE) {
		return nil
	}
	stmt.TypeName = p.curToken.Literal

	if !p.expectPeek(ASSIGN) {
		return nil
	}
	p.nextToken()

	value := p.parseExpression(LOWEST)
	if value == nil {
		return nil
	}
	stmt.Children = []*ASTNode{value}

	for !p.curTokenIs(SEMICOLON) && !p.curTokenIs(EOF) {
		p.nextToken()
	}
	return stmt
}

// parseFunctionStatement parses `fn IDENT ( ) -> TYPE { BLOCK }`. The
// grammar accepts an empty parameter list only.
func (p *Parser) parseFunctionStatement() *ASTNode {
	stmt := &ASTNode{Kind: NodeFunc, Line: p.curToken.Line, Col: p.curToken.Col}

	if !p.expectPeek(IDENT) {
		return nil
	}
	stmt.String = p.curToken.Literal

	if !p.expectPeek(LPAREN) {
		return nil
	}
	if !p.peekTokenIs(RPAREN) {
		p.Errors.Add(p.peekToken.Line, p.peekToken.Col,
			"function parameters are not yet supported")
		return nil
	}
	p.nextToken()

	if !p.expectPeek(ARROW) {
		return nil
	}
	if !p.expectPeek(TYPE) {
		return nil
	}
	stmt.TypeName = p.curToken.Literal

	if !p.expectPeek(LBRACE) {
		return nil
	}
	body := p.parseBlockStatement()
	stmt.Children = []*ASTNode{body}
	return stmt
}

// parseReturnStatement parses `return EXPR ;`.
func (p *Parser) parseReturnStatement() *ASTNode {
	stmt := &ASTNode{Kind: NodeReturn, Line: p.curToken.Line, Col: p.curToken.Col}

	p.nextToken()
	value := p.parseExpression(LOWEST)
	if value == nil {
		return nil
	}
	stmt.Children = []*ASTNode{value}

	if !p.expectPeek(SEMICOLON) {
		return nil
	}
	return stmt
}

// parseIfStatement parses `if ( EXPR ) { BLOCK } [else { BLOCK }]`.
func (p *Parser) parseIfStatement() *ASTNode {
	stmt := &ASTNode{Kind: NodeIf, Line: p.curToken.Line, Col: p.curToken.Col}

	if !p.expectPeek(LPAREN) {
		return nil
	}
	p.nextToken()

	cond := p.parseExpression(LOWEST)
	if cond == nil {
		return nil
	}

	if !p.expectPeek(RPAREN) {
		return nil
	}
	if !p.expectPeek(LBRACE) {
		return nil
	}
	consequence := p.parseBlockStatement()
	stmt.Children = []*ASTNode{cond, consequence}

	if p.peekTokenIs(ELSE) {
		p.nextToken()
		if !p.expectPeek(LBRACE) {
			return nil
		}
		alternative := p.parseBlockStatement()
		stmt.Children = append(stmt.Children, alternative)
	}

	return stmt
}

// parseBlockStatement parses statements until the closing brace. The current
// token must be the opening brace on entry and is the closing brace (or EOF)
// on exit.
func (p *Parser) parseBlockStatement() *ASTNode {
	block := &ASTNode{Kind: NodeBlock, Line: p.curToken.Line, Col: p.curToken.Col}

	p.nextToken()
	for !p.curTokenIs(RBRACE) && !p.curTokenIs(EOF) {
		stmt := p.parseStatement()
		if stmt != nil {
			block.Children = append(block.Children, stmt)
		}
		p.nextToken()
	}
	return block
}

// parseExpressionStatement handles the fallback statement form: either an
// assignment (`IDENT = EXPR ;`) or a bare expression.
func (p *Parser) parseExpressionStatement() *ASTNode {
	if p.curTokenIs(IDENT) && p.peekTokenIs(ASSIGN) {
		return p.parseAssignStatement()
	}

	expr := p.parseExpression(LOWEST)
	if expr == nil {
		return nil
	}
	if p.peekTokenIs(SEMICOLON) {
		p.nextToken()
	}
	return expr
}

// parseAssignStatement parses `IDENT = EXPR ;`. Assignment is semantically
// distinct from let: the target must already be declared.
func (p *Parser) parseAssignStatement() *ASTNode {
	stmt := &ASTNode{
		Kind:   NodeAssign,
		String: p.curToken.Literal,
		Line:   p.curToken.Line,
		Col:    p.curToken.Col,
	}

	p.nextToken() // =
	p.nextToken()

	value := p.parseExpression(LOWEST)
	if value == nil {
		return nil
	}
	stmt.Children = []*ASTNode{value}

	if p.peekTokenIs(SEMICOLON) {
		p.nextToken()
	}
	return stmt
}

// parseExpression implements precedence climbing: consume infix operators
// while the next token binds strictly tighter than the level passed in.
// Equal-precedence chains therefore nest to the left.
func (p *Parser) parseExpression(precedence int) *ASTNode {
	prefix := p.prefixParseFns[p.curToken.Type]
	if prefix == nil {
		p.Errors.Add(p.curToken.Line, p.curToken.Col,
			"no prefix parse function for %s found", p.curToken.Type)
		return nil
	}
	left := prefix()

	for left != nil && !p.peekTokenIs(SEMICOLON) && precedence < p.peekPrecedence() {
		infix := p.infixParseFns[p.peekToken.Type]
		if infix == nil {
			return left
		}
		p.nextToken()
		left = infix(left)
	}

	return left
}

func (p *Parser) parseInfixExpression(left *ASTNode) *ASTNode {
	expr := &ASTNode{
		Kind: NodeBinary,
		Op:   p.curToken.Literal,
		Line: p.curToken.Line,
		Col:  p.curToken.Col,
	}

	precedence := p.curPrecedence()
	p.nextToken()

	right := p.parseExpression(precedence)
	if right == nil {
		return nil
	}
	expr.Children = []*ASTNode{left, right}
	return expr
}

func (p *Parser) parseCallExpression(callee *ASTNode) *ASTNode {
	if callee == nil || callee.Kind != NodeIdent {
		p.Errors.Add(p.curToken.Line, p.curToken.Col,
			"expected function name before call arguments")
		return nil
	}

	expr := &ASTNode{
		Kind:   NodeCall,
		String: callee.String,
		Line:   callee.Line,
		Col:    callee.Col,
	}

	if p.peekTokenIs(RPAREN) {
		p.nextToken()
		return expr
	}

	p.nextToken()
	arg := p.parseExpression(LOWEST)
	if arg == nil {
		return nil
	}
	expr.Children = append(expr.Children, arg)

	for p.peekTokenIs(COMMA) {
		p.nextToken()
		p.nextToken()
		arg = p.parseExpression(LOWEST)
		if arg == nil {
			return nil
		}
		expr.Children = append(expr.Children, arg)
	}

	if !p.expectPeek(RPAREN) {
		return nil
	}
	return expr
}

func (p *Parser) parseGroupedExpression() *ASTNode {
	p.nextToken()

	expr := p.parseExpression(LOWEST)
	if expr == nil {
		return nil
	}
	if !p.expectPeek(RPAREN) {
		return nil
	}
	return expr
}

func (p *Parser) parseIdentifier() *ASTNode {
	return &ASTNode{
		Kind:   NodeIdent,
		String: p.curToken.Literal,
		Line:   p.curToken.Line,
		Col:    p.curToken.Col,
	}
}

func (p *Parser) parseIntegerLiteral() *ASTNode {
	value, err := strconv.ParseInt(p.curToken.Literal, 10, 64)
	if err != nil {
		p.Errors.Add(p.curToken.Line, p.curToken.Col,
			"could not parse %q as an integer", p.curToken.Literal)
		return nil
	}
	return &ASTNode{
		Kind:    NodeInteger,
		Integer: value,
		Line:    p.curToken.Line,
		Col:     p.curToken.Col,
	}
}

func (p *Parser) parseFloatLiteral() *ASTNode {
	value, err := strconv.ParseFloat(p.curToken.Literal, 64)
	if err != nil {
		p.Errors.Add(p.curToken.Line, p.curToken.Col,
			"could not parse %q as a float", p.curToken.Literal)
		return nil
	}
	return &ASTNode{
		Kind:  NodeFloat,
		Float: value,
		Line:  p.curToken.Line,
		Col:   p.curToken.Col,
	}
}

func (p *Parser) parseBooleanLiteral() *ASTNode {
	return &ASTNode{
		Kind:    NodeBoolean,
		Boolean: p.curTokenIs(TRUE),
		Line:    p.curToken.Line,
		Col:     p.curToken.Col,
	}
}
