package symtab

import (
	"github.com/fis25/compiler/internal/lexer"
	"github.com/fis25/compiler/internal/semantic/types"
)

// Table is a stack of open scopes. The bottom of the stack is the global
// scope, which is never closed.
type Table struct {
	scopes   []*Scope
	declared int
}

func New() *Table {
	t := &Table{}
	t.Reset()
	return t
}

// Reset discards every scope and symbol and reopens an empty global scope.
func (t *Table) Reset() {
	t.scopes = []*Scope{NewScope(ScopeGlobal, nil)}
	t.declared = 0
}

// EnterScope opens a nested scope and makes it current.
func (t *Table) EnterScope(kind ScopeKind) *Scope {
	s := NewScope(kind, t.Current())
	t.scopes = append(t.scopes, s)
	return s
}

// EnterFunction opens the scope of fn's body.
func (t *Table) EnterFunction(fn *Symbol) *Scope {
	s := t.EnterScope(ScopeFunction)
	s.Function = fn
	return s
}

// ExitScope closes the current scope, dropping its symbols. Closing the
// global scope is a no-op.
func (t *Table) ExitScope() {
	if len(t.scopes) > 1 {
		t.scopes[len(t.scopes)-1] = nil
		t.scopes = t.scopes[:len(t.scopes)-1]
	}
}

func (t *Table) Current() *Scope {
	return t.scopes[len(t.scopes)-1]
}

func (t *Table) Global() *Scope {
	return t.scopes[0]
}

// Level is the depth of the current scope; the global scope is 0.
func (t *Table) Level() int {
	return len(t.scopes) - 1
}

// Declare adds a symbol to the current scope. The error wraps
// ErrDuplicateInScope if the name is already declared in that scope;
// declarations in enclosing scopes are shadowed, not rejected.
func (t *Table) Declare(name string, typ types.Type, kind SymbolKind, pos lexer.Position) (*Symbol, error) {
	sym := &Symbol{Name: name, Type: typ, Kind: kind, Pos: pos}
	if err := t.Current().Define(sym); err != nil {
		return nil, err
	}
	t.declared++
	return sym, nil
}

// Lookup returns the innermost visible symbol named name, or nil.
func (t *Table) Lookup(name string) *Symbol {
	return t.Current().Lookup(name)
}

// LookupLocal looks only in the current scope.
func (t *Table) LookupLocal(name string) *Symbol {
	return t.Current().LookupLocal(name)
}

// Function returns the function whose body is being analyzed, or nil.
func (t *Table) Function() *Symbol {
	return t.Current().Function
}

// Count returns the number of symbols in all open scopes.
func (t *Table) Count() int {
	n := 0
	for _, s := range t.scopes {
		n += s.Len()
	}
	return n
}

// Declared returns the number of successful declarations since the last
// Reset, including symbols whose scopes have since closed.
func (t *Table) Declared() int {
	return t.declared
}
