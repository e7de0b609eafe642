package symtab

import (
	"testing"

	"github.com/fis25/compiler/internal/lexer"
	"github.com/fis25/compiler/internal/semantic/types"
	"github.com/nalgeon/be"
)

func pos(line, col int) lexer.Position {
	return lexer.Position{Filename: "test.fis", Line: line, Column: col}
}

func TestSymbol_String(t *testing.T) {
	tests := []struct {
		name string
		sym  *Symbol
		want string
	}{
		{
			"variable",
			&Symbol{Name: "x", Kind: SymbolVariable, Type: types.Int, Pos: pos(1, 5)},
			"variable x: int at test.fis:1:5",
		},
		{
			"array",
			&Symbol{Name: "a", Kind: SymbolArray, Type: types.Float, ArraySize: 4, Pos: pos(2, 1)},
			"array a: float[4] at test.fis:2:1",
		},
		{
			"function",
			&Symbol{
				Name: "f", Kind: SymbolFunction, Type: types.Int, ReturnType: types.Int,
				Params: []*Symbol{{Name: "p", Type: types.Bool}}, Pos: pos(3, 1),
			},
			"function f: int(bool) at test.fis:3:1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.sym.String(); got != tt.want {
				t.Errorf("Symbol.String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSymbolKind_String(t *testing.T) {
	be.Equal(t, SymbolParameter.String(), "parameter")
	be.Equal(t, SymbolKind(42).String(), "unknown")
	be.Equal(t, ScopeLoop.String(), "loop")
}

func TestTable_DeclareAndLookup(t *testing.T) {
	tab := New()
	x, err := tab.Declare("x", types.Int, SymbolVariable, pos(1, 1))
	be.Err(t, err, nil)
	be.Equal(t, x.Level, 0)
	be.True(t, x.IsGlobal())
	be.True(t, !x.Initialized)

	be.Equal(t, tab.Lookup("x"), x)
	be.Equal(t, tab.LookupLocal("x"), x)
	be.True(t, tab.Lookup("y") == nil)
}

func TestTable_DuplicateInScope(t *testing.T) {
	tab := New()
	_, err := tab.Declare("x", types.Int, SymbolVariable, pos(1, 1))
	be.Err(t, err, nil)

	_, err = tab.Declare("x", types.Float, SymbolVariable, pos(2, 1))
	be.Err(t, err, ErrDuplicateInScope)
	be.Err(t, err, "test.fis:1:1")
	be.Equal(t, tab.Count(), 1)
	be.Equal(t, tab.Declared(), 1)
}

func TestTable_Shadowing(t *testing.T) {
	tab := New()
	outer, _ := tab.Declare("x", types.Int, SymbolVariable, pos(1, 1))

	tab.EnterScope(ScopeBlock)
	be.Equal(t, tab.Level(), 1)
	inner, err := tab.Declare("x", types.Float, SymbolVariable, pos(2, 3))
	be.Err(t, err, nil)
	be.Equal(t, inner.Level, 1)

	be.Equal(t, tab.Lookup("x"), inner)
	be.Equal(t, tab.Lookup("x").Type, types.Float)

	tab.ExitScope()
	be.Equal(t, tab.Level(), 0)
	be.Equal(t, tab.Lookup("x"), outer)
}

func TestTable_LookupLocalIgnoresOuter(t *testing.T) {
	tab := New()
	tab.Declare("g", types.Int, SymbolVariable, pos(1, 1))
	tab.EnterScope(ScopeBlock)

	be.True(t, tab.LookupLocal("g") == nil)
	be.True(t, tab.Lookup("g") != nil)
}

func TestTable_ExitScopeReleasesSymbols(t *testing.T) {
	tab := New()
	tab.Declare("a", types.Int, SymbolVariable, pos(1, 1))
	tab.EnterScope(ScopeBlock)
	tab.Declare("b", types.Int, SymbolVariable, pos(2, 1))
	tab.EnterScope(ScopeLoop)
	tab.Declare("c", types.Int, SymbolVariable, pos(3, 1))
	be.Equal(t, tab.Count(), 3)

	tab.ExitScope()
	be.True(t, tab.Lookup("c") == nil)
	be.Equal(t, tab.Count(), 2)

	tab.ExitScope()
	be.True(t, tab.Lookup("b") == nil)
	be.Equal(t, tab.Count(), 1)
	be.Equal(t, tab.Declared(), 3)
}

func TestTable_ExitGlobalIsNoop(t *testing.T) {
	tab := New()
	tab.Declare("a", types.Int, SymbolVariable, pos(1, 1))
	tab.ExitScope()
	tab.ExitScope()
	be.Equal(t, tab.Level(), 0)
	be.True(t, tab.Lookup("a") != nil)
}

func TestTable_SiblingScopes(t *testing.T) {
	tab := New()
	tab.EnterScope(ScopeBlock)
	first, _ := tab.Declare("t", types.Int, SymbolVariable, pos(1, 1))
	tab.ExitScope()

	tab.EnterScope(ScopeBlock)
	be.True(t, tab.Lookup("t") == nil)
	second, err := tab.Declare("t", types.Bool, SymbolVariable, pos(2, 1))
	be.Err(t, err, nil)
	be.True(t, first != second)
	tab.ExitScope()
}

func TestTable_Reset(t *testing.T) {
	tab := New()
	tab.Declare("a", types.Int, SymbolVariable, pos(1, 1))
	tab.EnterScope(ScopeBlock)
	tab.Reset()

	be.Equal(t, tab.Level(), 0)
	be.Equal(t, tab.Count(), 0)
	be.Equal(t, tab.Declared(), 0)
	be.True(t, tab.Lookup("a") == nil)
}

func TestTable_Functions(t *testing.T) {
	tab := New()
	fn, _ := tab.Declare("area", types.Float, SymbolFunction, pos(1, 1))
	fn.SetReturnType(types.Float)

	be.True(t, tab.Function() == nil)
	scope := tab.EnterFunction(fn)
	be.Equal(t, scope.Kind, ScopeFunction)
	be.Equal(t, tab.Function(), fn)

	w, _ := tab.Declare("w", types.Int, SymbolParameter, pos(1, 12))
	w.MarkInitialized()
	fn.AddParameter(w)

	tab.EnterScope(ScopeBlock)
	be.Equal(t, tab.Function(), fn)
	tab.ExitScope()
	tab.ExitScope()

	be.True(t, tab.Function() == nil)
	be.Equal(t, fn.FullType().String(), "float(int)")
	be.True(t, tab.Lookup("w") == nil)
}

func TestScope_SymbolsInOrder(t *testing.T) {
	tab := New()
	for _, name := range []string{"c", "a", "b"} {
		tab.Declare(name, types.Int, SymbolVariable, pos(1, 1))
	}
	arr, _ := tab.Declare("arr", types.Int, SymbolArray, pos(2, 1))
	arr.SetArraySize(8)

	var names []string
	for _, sym := range tab.Global().Symbols() {
		names = append(names, sym.Name)
	}
	be.Equal(t, names, []string{"c", "a", "b", "arr"})
	be.Equal(t, arr.Index, 3)
	be.Equal(t, arr.FullType().String(), "int[8]")
	be.True(t, !arr.IsScalar())
}
