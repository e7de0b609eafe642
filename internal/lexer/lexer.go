package lexer

import (
	"errors"
	"fmt"
	"unicode"
	"unicode/utf8"
)

var (
	ErrUnexpectedChar     = errors.New("unexpected character")
	ErrUnterminatedString = errors.New("unterminated string literal")
	ErrUnterminatedBlock  = errors.New("unterminated block comment")
)

// Lexer scans FIS-25 source one token at a time.
type Lexer struct {
	source   string
	filename string

	start     int // offset of the token being scanned
	startLine int
	startCol  int
	current   int
	line      int
	lineStart int // offset of the first byte of the current line
}

func New(source, filename string) *Lexer {
	return &Lexer{
		source:   source,
		filename: filename,
		line:     1,
	}
}

// NextToken returns the next token, comments included.
// At end of input it keeps returning TokenEOF.
func (l *Lexer) NextToken() (Token, error) {
	l.skipWhitespace()
	l.start = l.current
	l.startLine = l.line
	l.startCol = l.current - l.lineStart + 1

	if l.isAtEnd() {
		return l.makeToken(TokenEOF, ""), nil
	}

	ch := l.advance()
	switch {
	case isLetter(ch):
		return l.scanIdentifier(), nil
	case isDigit(ch):
		return l.scanNumber(), nil
	}

	switch ch {
	case '(':
		return l.makeToken(TokenLeftParen, "("), nil
	case ')':
		return l.makeToken(TokenRightParen, ")"), nil
	case '{':
		return l.makeToken(TokenLeftBrace, "{"), nil
	case '}':
		return l.makeToken(TokenRightBrace, "}"), nil
	case '[':
		return l.makeToken(TokenLeftBracket, "["), nil
	case ']':
		return l.makeToken(TokenRightBracket, "]"), nil
	case ';':
		return l.makeToken(TokenSemicolon, ";"), nil
	case ',':
		return l.makeToken(TokenComma, ","), nil
	case '+':
		return l.makeToken(TokenPlus, "+"), nil
	case '-':
		return l.makeToken(TokenMinus, "-"), nil
	case '*':
		return l.makeToken(TokenStar, "*"), nil
	case '%':
		return l.makeToken(TokenPercent, "%"), nil
	case '/':
		if l.match('/') {
			return l.scanLineComment(), nil
		}
		if l.match('*') {
			return l.scanBlockComment()
		}
		return l.makeToken(TokenSlash, "/"), nil
	case '=':
		if l.match('=') {
			return l.makeToken(TokenEqual, "=="), nil
		}
		return l.makeToken(TokenAssign, "="), nil
	case '!':
		if l.match('=') {
			return l.makeToken(TokenNotEqual, "!="), nil
		}
		return l.makeToken(TokenNot, "!"), nil
	case '<':
		if l.match('=') {
			return l.makeToken(TokenLessEqual, "<="), nil
		}
		return l.makeToken(TokenLess, "<"), nil
	case '>':
		if l.match('=') {
			return l.makeToken(TokenGreaterEqual, ">="), nil
		}
		return l.makeToken(TokenGreater, ">"), nil
	case '&':
		if l.match('&') {
			return l.makeToken(TokenAnd, "&&"), nil
		}
	case '|':
		if l.match('|') {
			return l.makeToken(TokenOr, "||"), nil
		}
	case '"':
		return l.scanString()
	}
	return l.makeToken(TokenInvalid, string(ch)), l.errorf(ErrUnexpectedChar, "%q", ch)
}

// Tokenize scans the whole source and returns every token except comments,
// ending with TokenEOF. It stops at the first lexical error.
func (l *Lexer) Tokenize() ([]Token, error) {
	var tokens []Token
	for {
		tok, err := l.NextToken()
		if err != nil {
			return tokens, err
		}
		if tok.Type == TokenComment {
			continue
		}
		tokens = append(tokens, tok)
		if tok.Type == TokenEOF {
			return tokens, nil
		}
	}
}

func (l *Lexer) advance() rune {
	if l.isAtEnd() {
		return 0
	}
	ch, size := utf8.DecodeRuneInString(l.source[l.current:])
	l.current += size
	if ch == '\n' {
		l.line++
		l.lineStart = l.current
	}
	return ch
}

func (l *Lexer) peek() rune {
	if l.isAtEnd() {
		return 0
	}
	ch, _ := utf8.DecodeRuneInString(l.source[l.current:])
	return ch
}

func (l *Lexer) peekNext() rune {
	if l.isAtEnd() {
		return 0
	}
	_, size := utf8.DecodeRuneInString(l.source[l.current:])
	if l.current+size >= len(l.source) {
		return 0
	}
	ch, _ := utf8.DecodeRuneInString(l.source[l.current+size:])
	return ch
}

func (l *Lexer) match(expected rune) bool {
	if l.peek() != expected || l.isAtEnd() {
		return false
	}
	l.advance()
	return true
}

func (l *Lexer) isAtEnd() bool {
	return l.current >= len(l.source)
}

func (l *Lexer) skipWhitespace() {
	for !l.isAtEnd() {
		switch l.peek() {
		case ' ', '\r', '\t', '\n':
			l.advance()
		default:
			return
		}
	}
}

func (l *Lexer) scanIdentifier() Token {
	for isLetter(l.peek()) || isDigit(l.peek()) {
		l.advance()
	}
	text := l.source[l.start:l.current]
	return l.makeToken(LookupKeyword(text), text)
}

// scanNumber reads an integer or a decimal float. A dot must be
// followed by a digit to belong to the number.
func (l *Lexer) scanNumber() Token {
	for isDigit(l.peek()) {
		l.advance()
	}
	if l.peek() == '.' && isDigit(l.peekNext()) {
		l.advance()
		for isDigit(l.peek()) {
			l.advance()
		}
	}
	return l.makeToken(TokenNumber, l.source[l.start:l.current])
}

// scanString reads a double-quoted literal. The lexeme keeps its quotes
// and escapes untouched, since the generator prints strings verbatim.
func (l *Lexer) scanString() (Token, error) {
	for !l.isAtEnd() {
		switch l.peek() {
		case '"':
			l.advance()
			return l.makeToken(TokenString, l.source[l.start:l.current]), nil
		case '\n':
			return l.makeToken(TokenInvalid, ""), l.errorf(ErrUnterminatedString, "")
		case '\\':
			l.advance()
		}
		l.advance()
	}
	return l.makeToken(TokenInvalid, ""), l.errorf(ErrUnterminatedString, "")
}

func (l *Lexer) scanLineComment() Token {
	for !l.isAtEnd() && l.peek() != '\n' {
		l.advance()
	}
	return l.makeToken(TokenComment, l.source[l.start:l.current])
}

func (l *Lexer) scanBlockComment() (Token, error) {
	for !l.isAtEnd() {
		if l.peek() == '*' && l.peekNext() == '/' {
			l.advance()
			l.advance()
			return l.makeToken(TokenComment, l.source[l.start:l.current]), nil
		}
		l.advance()
	}
	return l.makeToken(TokenInvalid, ""), l.errorf(ErrUnterminatedBlock, "")
}

func (l *Lexer) makeToken(tokenType TokenType, lexeme string) Token {
	return Token{
		Type:     tokenType,
		Lexeme:   lexeme,
		Position: l.startPosition(),
		Length:   l.current - l.start,
	}
}

func (l *Lexer) startPosition() Position {
	return Position{
		Filename: l.filename,
		Line:     l.startLine,
		Column:   l.startCol,
		Offset:   l.start,
	}
}

func (l *Lexer) errorf(kind error, format string, args ...any) error {
	if format == "" {
		return fmt.Errorf("%s: %w", l.startPosition(), kind)
	}
	return fmt.Errorf("%s: %w: %s", l.startPosition(), kind, fmt.Sprintf(format, args...))
}

func isLetter(ch rune) bool {
	return unicode.IsLetter(ch) || ch == '_'
}

func isDigit(ch rune) bool {
	return ch >= '0' && ch <= '9'
}
