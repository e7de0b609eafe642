package lexer

import "testing"

func TestTokenType_String(t *testing.T) {
	tests := []struct {
		tt   TokenType
		want string
	}{
		{TokenEOF, "EOF"},
		{TokenIdentifier, "IDENTIFIER"},
		{TokenPixel, "PIXEL"},
		{TokenStringType, "STRINGTYPE"},
		{TokenAnd, "AND"},
		{TokenType(9999), "UNKNOWN"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.tt.String(); got != tt.want {
				t.Errorf("TokenType.String() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLookupKeyword(t *testing.T) {
	tests := []struct {
		ident string
		want  TokenType
	}{
		{"while", TokenWhile},
		{"length", TokenLength},
		{"string", TokenStringType},
		{"true", TokenTrue},
		{"While", TokenIdentifier},
		{"pixels", TokenIdentifier},
	}

	for _, tt := range tests {
		t.Run(tt.ident, func(t *testing.T) {
			if got := LookupKeyword(tt.ident); got != tt.want {
				t.Errorf("LookupKeyword(%q) = %v, want %v", tt.ident, got, tt.want)
			}
		})
	}
}

func TestTokenType_IsType(t *testing.T) {
	for _, tt := range []TokenType{TokenInt, TokenFloat, TokenBool, TokenStringType, TokenVoid} {
		if !tt.IsType() {
			t.Errorf("%v.IsType() = false, want true", tt)
		}
	}
	for _, tt := range []TokenType{TokenIdentifier, TokenIf, TokenTrue} {
		if tt.IsType() {
			t.Errorf("%v.IsType() = true, want false", tt)
		}
	}
}

func TestToken_Span(t *testing.T) {
	tok := Token{
		Type:     TokenIdentifier,
		Lexeme:   "count",
		Position: Position{Filename: "a.fis", Line: 2, Column: 4, Offset: 10},
		Length:   5,
	}
	span := tok.Span()
	if span.End.Column != 9 || span.End.Offset != 15 {
		t.Errorf("Span().End = %+v, want column 9 offset 15", span.End)
	}
	if got := span.String(); got != "a.fis:2:4-9" {
		t.Errorf("Span().String() = %q", got)
	}
}
