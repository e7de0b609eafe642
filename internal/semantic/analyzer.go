// Package semantic checks FIS-25 programs for scope and type errors.
//
// Analysis is a single depth-first walk that fills the symbol table,
// infers a type for every expression and records diagnostics. It never
// stops at the first problem: every reachable error is reported in one run.
package semantic

import (
	"fmt"

	"github.com/fis25/compiler/internal/lexer"
	"github.com/fis25/compiler/internal/parser/ast"
	"github.com/fis25/compiler/internal/semantic/types"
	"github.com/fis25/compiler/internal/symtab"
)

type Analyzer struct {
	table *symtab.Table

	// exprTypes caches the inferred type of every expression checked so
	// far. An ill-typed expression maps to types.Void.
	exprTypes map[ast.Expr]types.Type

	// voidCalls marks calls to functions without a result.
	voidCalls map[*ast.CallExpr]bool

	diags    []*Diagnostic
	errors   int
	warnings int
}

func New() *Analyzer {
	a := &Analyzer{table: symtab.New()}
	a.reset()
	return a
}

func (a *Analyzer) reset() {
	a.table.Reset()
	a.exprTypes = make(map[ast.Expr]types.Type)
	a.voidCalls = make(map[*ast.CallExpr]bool)
	a.diags = nil
	a.errors = 0
	a.warnings = 0
}

// Analyze checks the program rooted at root. The error is non-nil only
// when the tree itself is malformed; problems in the program are
// reported through the Result.
func (a *Analyzer) Analyze(root ast.Stmt) (*Result, error) {
	if err := ast.Validate(root); err != nil {
		return nil, err
	}
	a.reset()
	a.stmt(root)

	return &Result{
		Diagnostics:  a.diags,
		ErrorCount:   a.errors,
		WarningCount: a.warnings,
		Symbols:      a.table.Count(),
		Declared:     a.table.Declared(),
	}, nil
}

// Symbols returns the symbol table as left by the last analysis.
func (a *Analyzer) Symbols() *symtab.Table {
	return a.table
}

// TypeOf returns the type inferred for e by the last analysis, or
// types.Void if e was not checked or is ill-typed.
func (a *Analyzer) TypeOf(e ast.Expr) types.Type {
	if t, ok := a.exprTypes[e]; ok {
		return t
	}
	return types.Void
}

// Errorf records an error diagnostic.
func (a *Analyzer) Errorf(pos lexer.Position, kind Kind, format string, args ...any) {
	a.errors++
	a.diags = append(a.diags, &Diagnostic{
		Kind:     kind,
		Severity: SeverityError,
		Pos:      pos,
		Message:  fmt.Sprintf(format, args...),
	})
}

// Warnf records a warning diagnostic.
func (a *Analyzer) Warnf(pos lexer.Position, kind Kind, format string, args ...any) {
	a.warnings++
	a.diags = append(a.diags, &Diagnostic{
		Kind:     kind,
		Severity: SeverityWarning,
		Pos:      pos,
		Message:  fmt.Sprintf(format, args...),
	})
}

func (a *Analyzer) stmt(s ast.Stmt) {
	switch s := s.(type) {
	case *ast.Seq:
		for _, child := range s.List {
			a.stmt(child)
		}
	case *ast.Block:
		a.table.EnterScope(symtab.ScopeBlock)
		for _, child := range s.List {
			a.stmt(child)
		}
		a.table.ExitScope()
	case *ast.Declare:
		a.declare(s)
	case *ast.Assign:
		a.assign(s)
	case *ast.AssignIndex:
		a.assignIndex(s)
	case *ast.ArrayDecl:
		sym := a.define(s.Name, s.Elem, symtab.SymbolArray, s.TypePos)
		if sym != nil {
			sym.SetArraySize(s.Size)
		}
	case *ast.Pixel:
		for i, arg := range []ast.Expr{s.X, s.Y, s.Color} {
			t := a.value(arg)
			if !types.IsVoid(t) && !types.Compatible(types.Int, t) {
				a.Errorf(arg.Pos(), NonNumericOperand, "pixel argument %d must be numeric, got %s", i+1, t)
			}
		}
	case *ast.Key:
		if sym := a.target(s.Dest, s.KeyPos); sym != nil {
			if !types.Compatible(types.Int, sym.Type) {
				a.Errorf(s.KeyPos, IncompatibleAssignment, "key state cannot be stored in %s variable %s", sym.Type, sym.Name)
			}
			sym.MarkInitialized()
		}
	case *ast.Input:
		if sym := a.target(s.Dest, s.InputPos); sym != nil {
			sym.MarkInitialized()
		}
	case *ast.Print:
		a.value(s.Value)
	case *ast.If:
		a.condition(s.Cond, "if")
		a.stmt(s.Then)
		if s.Else != nil {
			a.stmt(s.Else)
		}
	case *ast.While:
		a.condition(s.Cond, "while")
		a.stmt(s.Body)
	case *ast.For:
		a.table.EnterScope(symtab.ScopeLoop)
		if s.Init != nil {
			a.stmt(s.Init)
		}
		a.condition(s.Cond, "for")
		if s.Post != nil {
			a.stmt(s.Post)
		}
		a.stmt(s.Body)
		a.table.ExitScope()
	case *ast.FuncDecl:
		a.funcDecl(s)
	case *ast.Return:
		a.ret(s)
	case *ast.ExprStmt:
		a.expr(s.X)
	}
}

// define declares name in the current scope, reporting a duplicate.
func (a *Analyzer) define(name string, t types.Type, kind symtab.SymbolKind, pos lexer.Position) *symtab.Symbol {
	sym, err := a.table.Declare(name, t, kind, pos)
	if err != nil {
		a.Errorf(pos, DuplicateInScope, "%v", err)
		return nil
	}
	return sym
}

// declare handles `T x;` and `T x = e;`. The initializer is checked
// before x exists, so `int x = x;` refers to an outer x.
func (a *Analyzer) declare(s *ast.Declare) {
	var initType types.Type
	if s.Init != nil {
		initType = a.value(s.Init)
	}
	sym := a.define(s.Name, s.Type, symtab.SymbolVariable, s.TypePos)
	if s.Init == nil {
		return
	}
	if !types.IsVoid(initType) && !types.Compatible(s.Type, initType) {
		a.Errorf(s.Init.Pos(), IncompatibleAssignment, "cannot initialize %s variable %s with %s value", s.Type, s.Name, initType)
	}
	if sym != nil {
		sym.MarkInitialized()
	}
}

func (a *Analyzer) assign(s *ast.Assign) {
	valType := a.value(s.Value)
	sym := a.target(s.Name, s.NamePos)
	if sym == nil {
		return
	}
	if !types.IsVoid(valType) && !types.Compatible(sym.Type, valType) {
		a.Errorf(s.Value.Pos(), IncompatibleAssignment, "cannot assign %s value to %s variable %s", valType, sym.Type, sym.Name)
	}
	sym.MarkInitialized()
}

func (a *Analyzer) assignIndex(s *ast.AssignIndex) {
	indexType := a.value(s.Index)
	valType := a.value(s.Value)
	sym := a.array(s.Name, s.NamePos)
	if sym == nil {
		return
	}
	a.checkIndex(sym, s.Index, indexType)
	if !types.IsVoid(valType) && !types.Compatible(sym.Type, valType) {
		a.Errorf(s.Value.Pos(), IncompatibleAssignment, "cannot store %s value in %s array %s", valType, sym.Type, sym.Name)
	}
}

// target resolves the destination of a scalar store.
func (a *Analyzer) target(name string, pos lexer.Position) *symtab.Symbol {
	sym := a.table.Lookup(name)
	switch {
	case sym == nil:
		a.Errorf(pos, UndeclaredVariable, "undeclared variable %s", name)
		return nil
	case sym.Kind == symtab.SymbolArray:
		a.Errorf(pos, InvalidArrayAccess, "array %s needs an index", name)
		return nil
	case sym.Kind == symtab.SymbolFunction:
		a.Errorf(pos, NotAVariable, "cannot assign to function %s", name)
		return nil
	}
	return sym
}

func (a *Analyzer) condition(cond ast.Expr, keyword string) {
	t := a.value(cond)
	if !types.IsVoid(t) && !types.IsCondition(t) {
		a.Errorf(cond.Pos(), InvalidConditionType, "%s condition must be bool or int, got %s", keyword, t)
	}
}

func (a *Analyzer) funcDecl(s *ast.FuncDecl) {
	fn := a.define(s.Name, s.Result, symtab.SymbolFunction, s.TypePos)
	if fn == nil {
		// Still check the body against a detached symbol.
		fn = &symtab.Symbol{Name: s.Name, Kind: symtab.SymbolFunction, Type: s.Result}
	}
	fn.SetReturnType(s.Result)
	fn.MarkInitialized()

	a.table.EnterFunction(fn)
	for _, p := range s.Params {
		param := a.define(p.Name, p.Type, symtab.SymbolParameter, p.NamePos)
		if param == nil {
			param = &symtab.Symbol{Name: p.Name, Kind: symtab.SymbolParameter, Type: p.Type}
		}
		param.MarkInitialized()
		fn.AddParameter(param)
	}
	// Parameters and top-level locals share one scope, so a local cannot
	// redeclare a parameter.
	for _, child := range s.Body.List {
		a.stmt(child)
	}
	a.table.ExitScope()
}

func (a *Analyzer) ret(s *ast.Return) {
	var t types.Type
	if s.Value != nil {
		t = a.value(s.Value)
	}
	fn := a.table.Function()
	if fn == nil {
		return
	}
	want := fn.ReturnType
	switch {
	case s.Value == nil && !types.IsVoid(want):
		a.Errorf(s.ReturnPos, IncompatibleAssignment, "function %s must return a %s value", fn.Name, want)
	case s.Value != nil && types.IsVoid(want):
		a.Errorf(s.Value.Pos(), IncompatibleAssignment, "function %s does not return a value", fn.Name)
	case s.Value != nil && !types.IsVoid(t) && !types.Compatible(want, t):
		a.Errorf(s.Value.Pos(), IncompatibleAssignment, "cannot return %s value from function %s returning %s", t, fn.Name, want)
	}
}
