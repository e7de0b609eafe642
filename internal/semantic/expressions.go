package semantic

import (
	"github.com/fis25/compiler/internal/lexer"
	"github.com/fis25/compiler/internal/parser/ast"
	"github.com/fis25/compiler/internal/semantic/types"
	"github.com/fis25/compiler/internal/symtab"
)

// value checks e where its result is used. Unlike expr it rejects calls
// to functions that return nothing.
func (a *Analyzer) value(e ast.Expr) types.Type {
	t := a.expr(e)
	if call, ok := e.(*ast.CallExpr); ok && a.voidCalls[call] {
		a.Errorf(call.Pos(), IncompatibleAssignment, "%s returns no value", call.Func.Name)
	}
	return t
}

// expr infers the type of e, reporting problems on the way. Each
// expression is checked once; later calls return the cached type.
func (a *Analyzer) expr(e ast.Expr) types.Type {
	if t, ok := a.exprTypes[e]; ok {
		return t
	}
	t := a.infer(e)
	if t == nil {
		t = types.Void
	}
	a.exprTypes[e] = t
	return t
}

func (a *Analyzer) infer(e ast.Expr) types.Type {
	switch e := e.(type) {
	case *ast.IntLit, *ast.BoolLit:
		return types.Int
	case *ast.FloatLit:
		return types.Float
	case *ast.StringLit:
		return types.String
	case *ast.Ident:
		return a.ident(e)
	case *ast.IndexExpr:
		indexType := a.value(e.Index)
		sym := a.array(e.Array.Name, e.Array.NamePos)
		if sym == nil {
			return types.Void
		}
		a.checkIndex(sym, e.Index, indexType)
		return sym.Type
	case *ast.LengthExpr:
		if a.array(e.Array.Name, e.Array.NamePos) == nil {
			return types.Void
		}
		return types.Int
	case *ast.BinaryExpr:
		return a.binary(e)
	case *ast.NotExpr:
		if types.IsVoid(a.value(e.X)) {
			return types.Void
		}
		return types.Bool
	case *ast.CallExpr:
		return a.call(e)
	}
	return types.Void
}

func (a *Analyzer) ident(id *ast.Ident) types.Type {
	sym := a.table.Lookup(id.Name)
	switch {
	case sym == nil:
		a.Errorf(id.NamePos, UndeclaredVariable, "undeclared variable %s", id.Name)
		return types.Void
	case sym.Kind == symtab.SymbolArray:
		a.Errorf(id.NamePos, InvalidArrayAccess, "array %s used without an index", id.Name)
		return types.Void
	case sym.Kind == symtab.SymbolFunction:
		a.Errorf(id.NamePos, NotAVariable, "function %s used as a value", id.Name)
		return types.Void
	}
	if !sym.Initialized {
		a.Warnf(id.NamePos, UseBeforeInit, "%s may be used before it is initialized", id.Name)
	}
	return sym.Type
}

// array resolves name to an array symbol, reporting anything else.
func (a *Analyzer) array(name string, pos lexer.Position) *symtab.Symbol {
	sym := a.table.Lookup(name)
	switch {
	case sym == nil:
		a.Errorf(pos, UndeclaredVariable, "undeclared variable %s", name)
		return nil
	case sym.Kind != symtab.SymbolArray:
		a.Errorf(pos, InvalidArrayAccess, "%s is not an array", name)
		return nil
	}
	return sym
}

// checkIndex requires an int index and bounds-checks constant ones.
// Other indices cannot be verified statically and are accepted.
func (a *Analyzer) checkIndex(arr *symtab.Symbol, index ast.Expr, indexType types.Type) {
	if types.IsVoid(indexType) {
		return
	}
	if indexType != types.Int {
		a.Errorf(index.Pos(), InvalidArrayAccess, "index of %s must be int, got %s", arr.Name, indexType)
		return
	}
	if lit, ok := index.(*ast.IntLit); ok && (lit.Value < 0 || lit.Value >= int64(arr.ArraySize)) {
		a.Errorf(index.Pos(), ArrayIndexOutOfRange, "index %d out of range for %s[%d]", lit.Value, arr.Name, arr.ArraySize)
	}
}

func (a *Analyzer) binary(e *ast.BinaryExpr) types.Type {
	x := a.value(e.X)
	y := a.value(e.Y)
	if types.IsVoid(x) || types.IsVoid(y) {
		return types.Void
	}
	if !e.Op.IsArithmetic() {
		return types.Bool
	}
	if !types.IsNumeric(x) || !types.IsNumeric(y) {
		a.Errorf(e.OpPos, NonNumericOperand, "operator %s needs numeric operands, got %s and %s", e.Op, x, y)
		return types.Void
	}
	if types.IsFloat(x) || types.IsFloat(y) {
		return types.Float
	}
	return types.Int
}

func (a *Analyzer) call(e *ast.CallExpr) types.Type {
	argTypes := make([]types.Type, len(e.Args))
	for i, arg := range e.Args {
		argTypes[i] = a.value(arg)
	}

	fn := a.table.Lookup(e.Func.Name)
	switch {
	case fn == nil:
		a.Errorf(e.Func.NamePos, UndeclaredVariable, "undeclared function %s", e.Func.Name)
		return types.Void
	case fn.Kind != symtab.SymbolFunction:
		a.Errorf(e.Func.NamePos, NotAFunction, "%s is not a function", e.Func.Name)
		return types.Void
	case len(e.Args) != len(fn.Params):
		a.Errorf(e.Func.NamePos, ArgumentMismatch, "%s takes %d arguments, got %d", fn.Name, len(fn.Params), len(e.Args))
	default:
		for i, p := range fn.Params {
			t := argTypes[i]
			if !types.IsVoid(t) && !types.Compatible(p.Type, t) {
				a.Errorf(e.Args[i].Pos(), ArgumentMismatch, "argument %d of %s: cannot use %s as %s", i+1, fn.Name, t, p.Type)
			}
		}
	}

	if types.IsVoid(fn.ReturnType) {
		a.voidCalls[e] = true
		return types.Void
	}
	return fn.ReturnType
}
