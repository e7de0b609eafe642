// Package parser builds FIS-25 syntax trees.
//
// The parser is recursive descent for statements and precedence climbing
// for binary expressions. It collects every syntax error it can find,
// resynchronizing at statement boundaries after each one.
package parser

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/fis25/compiler/internal/lexer"
	"github.com/fis25/compiler/internal/parser/ast"
	"github.com/fis25/compiler/internal/semantic/types"
)

// ErrSyntax is wrapped by every error the parser reports.
var ErrSyntax = errors.New("syntax error")

// bailout unwinds the parser to the nearest statement boundary.
type bailout struct{}

type Parser struct {
	lexer    *lexer.Lexer
	current  lexer.Token
	previous lexer.Token
	errors   []error

	// panicMode suppresses follow-on errors until the parser resyncs.
	panicMode bool
}

func New(l *lexer.Lexer) *Parser {
	p := &Parser{lexer: l}
	p.advance()
	return p
}

// Parse parses a whole program. The returned error joins every syntax
// error found; the tree is still returned and holds the statements that
// parsed cleanly.
func Parse(source, filename string) (*ast.Seq, error) {
	prog, errs := New(lexer.New(source, filename)).ParseProgram()
	return prog, errors.Join(errs...)
}

// ParseProgram parses statements until end of input.
func (p *Parser) ParseProgram() (*ast.Seq, []error) {
	prog := &ast.Seq{}
	for !p.isAtEnd() {
		if stmt := p.parseStmtRecover(); stmt != nil {
			prog.List = append(prog.List, stmt)
		}
	}
	return prog, p.errors
}

// parseStmtRecover parses one statement, turning a bailout into a nil
// statement and skipping to the next statement boundary.
func (p *Parser) parseStmtRecover() (stmt ast.Stmt) {
	start := p.current.Position.Offset
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		if _, ok := r.(bailout); !ok {
			panic(r)
		}
		stmt = nil
		if p.current.Position.Offset == start && !p.isAtEnd() {
			p.advance()
		}
		p.synchronize()
	}()
	return p.parseStmt()
}

func (p *Parser) parseStmt() ast.Stmt {
	if p.current.Type.IsType() {
		return p.parseTypedStmt()
	}

	switch p.current.Type {
	case lexer.TokenIdentifier:
		return p.parseIdentStmt()
	case lexer.TokenPixel:
		return p.parsePixel()
	case lexer.TokenKey:
		return p.parseKey()
	case lexer.TokenInput:
		return p.parseInput()
	case lexer.TokenPrint:
		return p.parsePrint()
	case lexer.TokenIf:
		return p.parseIf()
	case lexer.TokenWhile:
		return p.parseWhile()
	case lexer.TokenFor:
		return p.parseFor()
	case lexer.TokenReturn:
		return p.parseReturn()
	case lexer.TokenLeftBrace:
		return p.parseBlock()
	}
	p.fail("expected statement, got %s", describe(p.current))
	return nil
}

// parseTypedStmt handles the three forms that start with a type:
//
//	int x;  int x = e;  int a[10];  int f(int a) { ... }
func (p *Parser) parseTypedStmt() ast.Stmt {
	typeTok, typ := p.parseType()
	name := p.consume(lexer.TokenIdentifier, "expected identifier after type")

	switch {
	case p.check(lexer.TokenLeftParen):
		return p.parseFuncDecl(typeTok, typ, name)
	case p.match(lexer.TokenLeftBracket):
		decl := p.parseArrayDeclTail(typeTok, typ, name)
		p.consume(lexer.TokenSemicolon, "expected ';' after array declaration")
		return decl
	}

	decl := p.parseDeclareTail(typeTok, typ, name)
	p.consume(lexer.TokenSemicolon, "expected ';' after declaration")
	return decl
}

func (p *Parser) parseType() (lexer.Token, types.Type) {
	tok := p.current
	typ, ok := types.Parse(tok.Lexeme)
	if !tok.Type.IsType() || !ok {
		p.fail("expected type, got %s", describe(tok))
	}
	p.advance()
	return tok, typ
}

func (p *Parser) parseDeclareTail(typeTok lexer.Token, typ types.Type, name lexer.Token) *ast.Declare {
	if types.IsVoid(typ) {
		p.failAt(typeTok, "variable %s cannot have type void", name.Lexeme)
	}
	decl := &ast.Declare{TypePos: typeTok.Position, Type: typ, Name: name.Lexeme}
	if p.match(lexer.TokenAssign) {
		decl.Init = p.parseExpression()
	}
	return decl
}

func (p *Parser) parseArrayDeclTail(typeTok lexer.Token, typ types.Type, name lexer.Token) *ast.ArrayDecl {
	if types.IsVoid(typ) {
		p.failAt(typeTok, "array %s cannot have type void", name.Lexeme)
	}
	sizeTok := p.consume(lexer.TokenNumber, "expected array size")
	size, err := strconv.Atoi(sizeTok.Lexeme)
	if err != nil || size <= 0 {
		p.failAt(sizeTok, "array size must be a positive integer, got %s", sizeTok.Lexeme)
	}
	p.consume(lexer.TokenRightBracket, "expected ']' after array size")
	return &ast.ArrayDecl{TypePos: typeTok.Position, Elem: typ, Name: name.Lexeme, Size: size}
}

func (p *Parser) parseFuncDecl(typeTok lexer.Token, result types.Type, name lexer.Token) *ast.FuncDecl {
	fn := &ast.FuncDecl{TypePos: typeTok.Position, Result: result, Name: name.Lexeme}
	p.consume(lexer.TokenLeftParen, "expected '(' after function name")
	if !p.check(lexer.TokenRightParen) {
		for {
			paramTok, typ := p.parseType()
			pname := p.consume(lexer.TokenIdentifier, "expected parameter name")
			if types.IsVoid(typ) {
				p.failAt(paramTok, "parameter %s cannot have type void", pname.Lexeme)
			}
			fn.Params = append(fn.Params, &ast.Param{NamePos: pname.Position, Type: typ, Name: pname.Lexeme})
			if !p.match(lexer.TokenComma) {
				break
			}
		}
	}
	p.consume(lexer.TokenRightParen, "expected ')' after parameters")
	fn.Body = p.parseBlock()
	return fn
}

// parseIdentStmt handles assignments and call statements.
func (p *Parser) parseIdentStmt() ast.Stmt {
	if p.peekCall() {
		call := p.parsePrimary()
		p.consume(lexer.TokenSemicolon, "expected ';' after call")
		return &ast.ExprStmt{X: call}
	}
	stmt := p.parseAssignment()
	p.consume(lexer.TokenSemicolon, "expected ';' after assignment")
	return stmt
}

// peekCall reports whether the identifier under the cursor starts a call.
// It needs the token after the identifier, so it scans a copy of the lexer.
func (p *Parser) peekCall() bool {
	probe := *p.lexer
	for {
		tok, err := probe.NextToken()
		if err != nil {
			return false
		}
		if tok.Type != lexer.TokenComment {
			return tok.Type == lexer.TokenLeftParen
		}
	}
}

// parseAssignment parses `x = e` or `a[i] = e` without the semicolon.
func (p *Parser) parseAssignment() ast.Stmt {
	name := p.consume(lexer.TokenIdentifier, "expected identifier")
	if p.match(lexer.TokenLeftBracket) {
		index := p.parseExpression()
		p.consume(lexer.TokenRightBracket, "expected ']' after index")
		p.consume(lexer.TokenAssign, "expected '=' after array element")
		return &ast.AssignIndex{NamePos: name.Position, Name: name.Lexeme, Index: index, Value: p.parseExpression()}
	}
	p.consume(lexer.TokenAssign, "expected '=' after "+name.Lexeme)
	return &ast.Assign{NamePos: name.Position, Name: name.Lexeme, Value: p.parseExpression()}
}

// parseSimpleStmt parses the init and post clauses of a for loop.
func (p *Parser) parseSimpleStmt() ast.Stmt {
	if p.current.Type.IsType() {
		typeTok, typ := p.parseType()
		name := p.consume(lexer.TokenIdentifier, "expected identifier after type")
		return p.parseDeclareTail(typeTok, typ, name)
	}
	return p.parseAssignment()
}

func (p *Parser) parsePixel() ast.Stmt {
	kw := p.consume(lexer.TokenPixel, "expected 'pixel'")
	p.consume(lexer.TokenLeftParen, "expected '(' after pixel")
	x := p.parseExpression()
	p.consume(lexer.TokenComma, "expected ',' after x coordinate")
	y := p.parseExpression()
	p.consume(lexer.TokenComma, "expected ',' after y coordinate")
	color := p.parseExpression()
	p.consume(lexer.TokenRightParen, "expected ')' after pixel arguments")
	p.consume(lexer.TokenSemicolon, "expected ';' after pixel")
	return &ast.Pixel{PixelPos: kw.Position, X: x, Y: y, Color: color}
}

func (p *Parser) parseKey() ast.Stmt {
	kw := p.consume(lexer.TokenKey, "expected 'key'")
	p.consume(lexer.TokenLeftParen, "expected '(' after key")
	codeTok := p.consume(lexer.TokenNumber, "expected key code")
	code, err := strconv.Atoi(codeTok.Lexeme)
	if err != nil {
		p.failAt(codeTok, "key code must be an integer, got %s", codeTok.Lexeme)
	}
	p.consume(lexer.TokenComma, "expected ',' after key code")
	dest := p.consume(lexer.TokenIdentifier, "expected variable name")
	p.consume(lexer.TokenRightParen, "expected ')' after key arguments")
	p.consume(lexer.TokenSemicolon, "expected ';' after key")
	return &ast.Key{KeyPos: kw.Position, Code: code, Dest: dest.Lexeme}
}

func (p *Parser) parseInput() ast.Stmt {
	kw := p.consume(lexer.TokenInput, "expected 'input'")
	p.consume(lexer.TokenLeftParen, "expected '(' after input")
	dest := p.consume(lexer.TokenIdentifier, "expected variable name")
	p.consume(lexer.TokenRightParen, "expected ')' after input variable")
	p.consume(lexer.TokenSemicolon, "expected ';' after input")
	return &ast.Input{InputPos: kw.Position, Dest: dest.Lexeme}
}

func (p *Parser) parsePrint() ast.Stmt {
	kw := p.consume(lexer.TokenPrint, "expected 'print'")
	value := p.parseExpression()
	p.consume(lexer.TokenSemicolon, "expected ';' after print")
	return &ast.Print{PrintPos: kw.Position, Value: value}
}

func (p *Parser) parseIf() ast.Stmt {
	kw := p.consume(lexer.TokenIf, "expected 'if'")
	stmt := &ast.If{IfPos: kw.Position, Cond: p.parseCondition("if")}
	stmt.Then = p.parseBlock()
	if p.match(lexer.TokenElse) {
		if p.check(lexer.TokenIf) {
			stmt.Else = p.parseIf()
		} else {
			stmt.Else = p.parseBlock()
		}
	}
	return stmt
}

func (p *Parser) parseWhile() ast.Stmt {
	kw := p.consume(lexer.TokenWhile, "expected 'while'")
	cond := p.parseCondition("while")
	return &ast.While{WhilePos: kw.Position, Cond: cond, Body: p.parseBlock()}
}

func (p *Parser) parseFor() ast.Stmt {
	kw := p.consume(lexer.TokenFor, "expected 'for'")
	stmt := &ast.For{ForPos: kw.Position}
	p.consume(lexer.TokenLeftParen, "expected '(' after for")
	if !p.check(lexer.TokenSemicolon) {
		stmt.Init = p.parseSimpleStmt()
	}
	p.consume(lexer.TokenSemicolon, "expected ';' after for initializer")
	stmt.Cond = p.parseExpression()
	p.consume(lexer.TokenSemicolon, "expected ';' after for condition")
	if !p.check(lexer.TokenRightParen) {
		stmt.Post = p.parseSimpleStmt()
	}
	p.consume(lexer.TokenRightParen, "expected ')' after for clauses")
	stmt.Body = p.parseBlock()
	return stmt
}

func (p *Parser) parseReturn() ast.Stmt {
	kw := p.consume(lexer.TokenReturn, "expected 'return'")
	stmt := &ast.Return{ReturnPos: kw.Position}
	if !p.check(lexer.TokenSemicolon) {
		stmt.Value = p.parseExpression()
	}
	p.consume(lexer.TokenSemicolon, "expected ';' after return")
	return stmt
}

func (p *Parser) parseCondition(keyword string) ast.Expr {
	p.consume(lexer.TokenLeftParen, "expected '(' after "+keyword)
	cond := p.parseExpression()
	p.consume(lexer.TokenRightParen, "expected ')' after condition")
	return cond
}

// parseBlock parses `{ stmt* }`. Errors inside the block are recovered
// per statement so one bad line does not swallow the whole block.
func (p *Parser) parseBlock() *ast.Block {
	lbrace := p.consume(lexer.TokenLeftBrace, "expected '{'")
	block := &ast.Block{Lbrace: lbrace.Position}
	for !p.check(lexer.TokenRightBrace) && !p.isAtEnd() {
		if stmt := p.parseStmtRecover(); stmt != nil {
			block.List = append(block.List, stmt)
		}
	}
	p.consume(lexer.TokenRightBrace, "expected '}' to close block")
	return block
}

// Expressions

func (p *Parser) parseExpression() ast.Expr {
	return p.parsePrecedence(PrecOr)
}

// parsePrecedence parses a chain of binary operators binding at least as
// tightly as prec. All binary operators are left-associative.
func (p *Parser) parsePrecedence(prec Precedence) ast.Expr {
	left := p.parseUnary()
	for {
		opPrec := getPrecedence(p.current.Type)
		if opPrec == PrecNone || opPrec < prec {
			return left
		}
		opTok := p.current
		p.advance()
		op, _ := binaryOp(opTok.Type)
		right := p.parsePrecedence(opPrec + 1)
		left = &ast.BinaryExpr{X: left, Op: op, OpPos: opTok.Position, Y: right}
	}
}

func (p *Parser) parseUnary() ast.Expr {
	switch {
	case p.match(lexer.TokenNot):
		not := p.previous
		return &ast.NotExpr{NotPos: not.Position, X: p.parseUnary()}
	case p.match(lexer.TokenMinus):
		minus := p.previous
		if p.check(lexer.TokenNumber) {
			num := p.current
			p.advance()
			return p.numberLiteral(num, minus.Position, "-")
		}
		zero := &ast.IntLit{ValuePos: minus.Position}
		return &ast.BinaryExpr{X: zero, Op: ast.OpSub, OpPos: minus.Position, Y: p.parseUnary()}
	}
	return p.parsePrimary()
}

func (p *Parser) parsePrimary() ast.Expr {
	tok := p.current
	switch tok.Type {
	case lexer.TokenNumber:
		p.advance()
		return p.numberLiteral(tok, tok.Position, "")
	case lexer.TokenString:
		p.advance()
		return &ast.StringLit{ValuePos: tok.Position, Value: strings.TrimSuffix(strings.TrimPrefix(tok.Lexeme, `"`), `"`)}
	case lexer.TokenTrue, lexer.TokenFalse:
		p.advance()
		return &ast.BoolLit{ValuePos: tok.Position, Value: tok.Type == lexer.TokenTrue}
	case lexer.TokenIdentifier:
		p.advance()
		return p.parseIdentExpr(tok)
	case lexer.TokenLength:
		p.advance()
		p.consume(lexer.TokenLeftParen, "expected '(' after length")
		name := p.consume(lexer.TokenIdentifier, "expected array name")
		p.consume(lexer.TokenRightParen, "expected ')' after array name")
		return &ast.LengthExpr{LengthPos: tok.Position, Array: ident(name)}
	case lexer.TokenLeftParen:
		p.advance()
		expr := p.parseExpression()
		p.consume(lexer.TokenRightParen, "expected ')' after expression")
		return expr
	}
	p.fail("expected expression, got %s", describe(tok))
	return nil
}

// parseIdentExpr continues after an identifier: a plain name, an element
// read, or a call.
func (p *Parser) parseIdentExpr(name lexer.Token) ast.Expr {
	switch {
	case p.match(lexer.TokenLeftBracket):
		index := p.parseExpression()
		p.consume(lexer.TokenRightBracket, "expected ']' after index")
		return &ast.IndexExpr{Array: ident(name), Index: index}
	case p.match(lexer.TokenLeftParen):
		call := &ast.CallExpr{Func: ident(name)}
		if !p.check(lexer.TokenRightParen) {
			for {
				call.Args = append(call.Args, p.parseExpression())
				if !p.match(lexer.TokenComma) {
					break
				}
			}
		}
		p.consume(lexer.TokenRightParen, "expected ')' after arguments")
		return call
	}
	return ident(name)
}

func (p *Parser) numberLiteral(tok lexer.Token, pos lexer.Position, sign string) ast.Expr {
	text := sign + tok.Lexeme
	if strings.Contains(tok.Lexeme, ".") {
		v, err := strconv.ParseFloat(text, 64)
		if err != nil {
			p.failAt(tok, "invalid float literal %s", text)
		}
		return &ast.FloatLit{ValuePos: pos, Value: v}
	}
	v, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		p.failAt(tok, "integer literal %s out of range", text)
	}
	return &ast.IntLit{ValuePos: pos, Value: v}
}

func ident(tok lexer.Token) *ast.Ident {
	return &ast.Ident{NamePos: tok.Position, Name: tok.Lexeme}
}

// Helper methods

func (p *Parser) advance() {
	p.previous = p.current
	for {
		tok, err := p.lexer.NextToken()
		if err != nil {
			p.report(fmt.Errorf("%w: %w", ErrSyntax, err))
			tok.Type = lexer.TokenInvalid
		}
		if tok.Type != lexer.TokenComment {
			p.current = tok
			return
		}
	}
}

func (p *Parser) check(tokenType lexer.TokenType) bool {
	return p.current.Type == tokenType
}

func (p *Parser) match(tokenTypes ...lexer.TokenType) bool {
	for _, tokenType := range tokenTypes {
		if p.check(tokenType) {
			p.advance()
			return true
		}
	}
	return false
}

// consume advances past a token of the given type and returns it, or
// reports message and bails out to the enclosing statement.
func (p *Parser) consume(tokenType lexer.TokenType, message string) lexer.Token {
	if p.check(tokenType) {
		p.advance()
		return p.previous
	}
	p.fail("%s, got %s", message, describe(p.current))
	return lexer.Token{}
}

func (p *Parser) isAtEnd() bool {
	return p.current.Type == lexer.TokenEOF
}

func (p *Parser) fail(format string, args ...any) {
	p.failAt(p.current, format, args...)
}

func (p *Parser) failAt(tok lexer.Token, format string, args ...any) {
	p.report(fmt.Errorf("%s: %w: %s", tok.Position, ErrSyntax, fmt.Sprintf(format, args...)))
	panic(bailout{})
}

func (p *Parser) report(err error) {
	if p.panicMode {
		return
	}
	p.panicMode = true
	p.errors = append(p.errors, err)
}

// synchronize skips tokens until a statement boundary: just past a ';',
// or at a token that starts a statement or closes a block.
func (p *Parser) synchronize() {
	p.panicMode = false
	for !p.isAtEnd() {
		if p.previous.Type == lexer.TokenSemicolon {
			return
		}
		switch p.current.Type {
		case lexer.TokenInt, lexer.TokenFloat, lexer.TokenBool, lexer.TokenStringType,
			lexer.TokenVoid, lexer.TokenIf, lexer.TokenWhile, lexer.TokenFor,
			lexer.TokenReturn, lexer.TokenPixel, lexer.TokenKey, lexer.TokenInput,
			lexer.TokenPrint, lexer.TokenRightBrace:
			return
		}
		p.advance()
	}
}

func describe(tok lexer.Token) string {
	switch tok.Type {
	case lexer.TokenEOF:
		return "end of file"
	case lexer.TokenInvalid:
		return "invalid token"
	}
	return strconv.Quote(tok.Lexeme)
}
