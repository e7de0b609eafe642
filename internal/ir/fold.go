package ir

import (
	"fmt"
	"strconv"

	"github.com/fis25/compiler/internal/parser/ast"
)

// FormatFloat renders a float operand with six decimals.
func FormatFloat(v float64) string {
	return fmt.Sprintf("%.6f", v)
}

// FormatInt renders an integer operand.
func FormatInt(v int64) string {
	return strconv.FormatInt(v, 10)
}

// Literal renders a numeric or boolean literal as an operand. Booleans
// are 1 and 0.
func Literal(e ast.Expr) (string, bool) {
	switch e := e.(type) {
	case *ast.IntLit:
		return FormatInt(e.Value), true
	case *ast.FloatLit:
		return FormatFloat(e.Value), true
	case *ast.BoolLit:
		return FormatInt(boolValue(e.Value)), true
	}
	return "", false
}

// Fold evaluates x op y at compile time. It succeeds only for +, - and *
// with two literal operands; the operands themselves are not folded
// first, so only the innermost constant pair of a chain collapses.
// Mixing a float operand in makes the result a float.
func Fold(op ast.BinaryOp, x, y ast.Expr) (string, bool) {
	if op != ast.OpAdd && op != ast.OpSub && op != ast.OpMul {
		return "", false
	}
	xi, xf, xIsFloat, ok := constant(x)
	if !ok {
		return "", false
	}
	yi, yf, yIsFloat, ok := constant(y)
	if !ok {
		return "", false
	}

	if xIsFloat || yIsFloat {
		var r float64
		switch op {
		case ast.OpAdd:
			r = xf + yf
		case ast.OpSub:
			r = xf - yf
		case ast.OpMul:
			r = xf * yf
		}
		return FormatFloat(r), true
	}

	var r int64
	switch op {
	case ast.OpAdd:
		r = xi + yi
	case ast.OpSub:
		r = xi - yi
	case ast.OpMul:
		r = xi * yi
	}
	return FormatInt(r), true
}

// constant extracts a literal's value as both int64 and float64.
func constant(e ast.Expr) (i int64, f float64, isFloat, ok bool) {
	switch e := e.(type) {
	case *ast.IntLit:
		return e.Value, float64(e.Value), false, true
	case *ast.BoolLit:
		v := boolValue(e.Value)
		return v, float64(v), false, true
	case *ast.FloatLit:
		return int64(e.Value), e.Value, true, true
	}
	return 0, 0, false, false
}

func boolValue(b bool) int64 {
	if b {
		return 1
	}
	return 0
}
