package lexer

import "unicode/utf8"

// TokenType classifies a token.
type TokenType int

const (
	TokenEOF TokenType = iota
	TokenInvalid
	TokenComment

	// Literals
	TokenNumber
	TokenString
	TokenTrue
	TokenFalse
	TokenIdentifier

	// Statement keywords
	TokenIf
	TokenElse
	TokenWhile
	TokenFor
	TokenReturn
	TokenPixel
	TokenKey
	TokenInput
	TokenPrint
	TokenLength

	// Type keywords
	TokenInt
	TokenFloat
	TokenBool
	TokenStringType
	TokenVoid

	// Operators
	TokenPlus         // +
	TokenMinus        // -
	TokenStar         // *
	TokenSlash        // /
	TokenPercent      // %
	TokenEqual        // ==
	TokenNotEqual     // !=
	TokenLess         // <
	TokenLessEqual    // <=
	TokenGreater      // >
	TokenGreaterEqual // >=
	TokenAnd          // &&
	TokenOr           // ||
	TokenNot          // !
	TokenAssign       // =

	// Delimiters
	TokenLeftParen
	TokenRightParen
	TokenLeftBrace
	TokenRightBrace
	TokenLeftBracket
	TokenRightBracket
	TokenSemicolon
	TokenComma
)

var tokenNames = map[TokenType]string{
	TokenEOF:          "EOF",
	TokenInvalid:      "INVALID",
	TokenComment:      "COMMENT",
	TokenNumber:       "NUMBER",
	TokenString:       "STRING",
	TokenTrue:         "TRUE",
	TokenFalse:        "FALSE",
	TokenIdentifier:   "IDENTIFIER",
	TokenIf:           "IF",
	TokenElse:         "ELSE",
	TokenWhile:        "WHILE",
	TokenFor:          "FOR",
	TokenReturn:       "RETURN",
	TokenPixel:        "PIXEL",
	TokenKey:          "KEY",
	TokenInput:        "INPUT",
	TokenPrint:        "PRINT",
	TokenLength:       "LENGTH",
	TokenInt:          "INT",
	TokenFloat:        "FLOAT",
	TokenBool:         "BOOL",
	TokenStringType:   "STRINGTYPE",
	TokenVoid:         "VOID",
	TokenPlus:         "PLUS",
	TokenMinus:        "MINUS",
	TokenStar:         "STAR",
	TokenSlash:        "SLASH",
	TokenPercent:      "PERCENT",
	TokenEqual:        "EQUAL",
	TokenNotEqual:     "NOTEQUAL",
	TokenLess:         "LESS",
	TokenLessEqual:    "LESSEQUAL",
	TokenGreater:      "GREATER",
	TokenGreaterEqual: "GREATEREQUAL",
	TokenAnd:          "AND",
	TokenOr:           "OR",
	TokenNot:          "NOT",
	TokenAssign:       "ASSIGN",
	TokenLeftParen:    "LPAREN",
	TokenRightParen:   "RPAREN",
	TokenLeftBrace:    "LBRACE",
	TokenRightBrace:   "RBRACE",
	TokenLeftBracket:  "LBRACKET",
	TokenRightBracket: "RBRACKET",
	TokenSemicolon:    "SEMICOLON",
	TokenComma:        "COMMA",
}

func (tt TokenType) String() string {
	if name, ok := tokenNames[tt]; ok {
		return name
	}
	return "UNKNOWN"
}

// IsType reports whether the token names one of the built-in value types.
func (tt TokenType) IsType() bool {
	switch tt {
	case TokenInt, TokenFloat, TokenBool, TokenStringType, TokenVoid:
		return true
	}
	return false
}

var keywords = map[string]TokenType{
	"if":     TokenIf,
	"else":   TokenElse,
	"while":  TokenWhile,
	"for":    TokenFor,
	"return": TokenReturn,
	"pixel":  TokenPixel,
	"key":    TokenKey,
	"input":  TokenInput,
	"print":  TokenPrint,
	"length": TokenLength,
	"int":    TokenInt,
	"float":  TokenFloat,
	"bool":   TokenBool,
	"string": TokenStringType,
	"void":   TokenVoid,
	"true":   TokenTrue,
	"false":  TokenFalse,
}

// LookupKeyword returns the keyword token for ident, or TokenIdentifier.
func LookupKeyword(ident string) TokenType {
	if tt, ok := keywords[ident]; ok {
		return tt
	}
	return TokenIdentifier
}

// Token is a lexeme with its classification and starting position.
type Token struct {
	Type     TokenType
	Lexeme   string
	Position Position
	Length   int
}

func (t Token) String() string {
	return t.Type.String() + "(" + t.Lexeme + ") at " + t.Position.String()
}

// Span returns the source range covered by the token.
func (t Token) Span() Span {
	end := t.Position
	end.Column += utf8.RuneCountInString(t.Lexeme)
	end.Offset += t.Length
	return Span{Start: t.Position, End: end}
}
