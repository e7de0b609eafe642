package parser

import (
	"github.com/fis25/compiler/internal/lexer"
	"github.com/fis25/compiler/internal/parser/ast"
)

// Precedence orders binary operators from loosest to tightest binding.
type Precedence int

const (
	PrecNone       Precedence = iota
	PrecOr                    // ||
	PrecAnd                   // &&
	PrecEquality              // == !=
	PrecComparison            // < > <= >=
	PrecTerm                  // + -
	PrecFactor                // * / %
	PrecUnary                 // ! -
)

func getPrecedence(tokenType lexer.TokenType) Precedence {
	switch tokenType {
	case lexer.TokenOr:
		return PrecOr
	case lexer.TokenAnd:
		return PrecAnd
	case lexer.TokenEqual, lexer.TokenNotEqual:
		return PrecEquality
	case lexer.TokenLess, lexer.TokenLessEqual,
		lexer.TokenGreater, lexer.TokenGreaterEqual:
		return PrecComparison
	case lexer.TokenPlus, lexer.TokenMinus:
		return PrecTerm
	case lexer.TokenStar, lexer.TokenSlash, lexer.TokenPercent:
		return PrecFactor
	default:
		return PrecNone
	}
}

var binaryOps = map[lexer.TokenType]ast.BinaryOp{
	lexer.TokenPlus:         ast.OpAdd,
	lexer.TokenMinus:        ast.OpSub,
	lexer.TokenStar:         ast.OpMul,
	lexer.TokenSlash:        ast.OpDiv,
	lexer.TokenPercent:      ast.OpMod,
	lexer.TokenLess:         ast.OpLt,
	lexer.TokenGreater:      ast.OpGt,
	lexer.TokenLessEqual:    ast.OpLe,
	lexer.TokenGreaterEqual: ast.OpGe,
	lexer.TokenEqual:        ast.OpEq,
	lexer.TokenNotEqual:     ast.OpNe,
	lexer.TokenAnd:          ast.OpAnd,
	lexer.TokenOr:           ast.OpOr,
}

// binaryOp maps an operator token to its AST operator.
func binaryOp(tokenType lexer.TokenType) (ast.BinaryOp, bool) {
	op, ok := binaryOps[tokenType]
	return op, ok
}
