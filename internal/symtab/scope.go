package symtab

import (
	"errors"
	"fmt"
)

// ErrDuplicateInScope is returned when a name is declared twice in the
// same scope.
var ErrDuplicateInScope = errors.New("duplicate declaration in scope")

type ScopeKind int

const (
	ScopeGlobal ScopeKind = iota
	ScopeFunction
	ScopeBlock
	ScopeLoop
)

func (sk ScopeKind) String() string {
	switch sk {
	case ScopeGlobal:
		return "global"
	case ScopeFunction:
		return "function"
	case ScopeBlock:
		return "block"
	case ScopeLoop:
		return "loop"
	default:
		return "unknown"
	}
}

// Scope holds the symbols declared directly in one lexical region.
type Scope struct {
	Kind   ScopeKind
	Parent *Scope
	Level  int

	// Function is the function whose body encloses this scope, or nil at
	// top level.
	Function *Symbol

	symbols map[string]*Symbol
	order   []*Symbol
}

func NewScope(kind ScopeKind, parent *Scope) *Scope {
	s := &Scope{
		Kind:    kind,
		Parent:  parent,
		symbols: make(map[string]*Symbol),
	}
	if parent != nil {
		s.Level = parent.Level + 1
		s.Function = parent.Function
	}
	return s
}

// Define adds sym to the scope. The error wraps ErrDuplicateInScope when
// the name is already taken here.
func (s *Scope) Define(sym *Symbol) error {
	if existing, ok := s.symbols[sym.Name]; ok {
		if existing.Pos.IsValid() {
			return fmt.Errorf("%w: %s already declared at %s", ErrDuplicateInScope, sym.Name, existing.Pos)
		}
		return fmt.Errorf("%w: %s already declared", ErrDuplicateInScope, sym.Name)
	}
	sym.Scope = s
	sym.Level = s.Level
	sym.Index = len(s.order)
	s.symbols[sym.Name] = sym
	s.order = append(s.order, sym)
	return nil
}

func (s *Scope) LookupLocal(name string) *Symbol {
	return s.symbols[name]
}

// Lookup searches this scope and then each enclosing one.
func (s *Scope) Lookup(name string) *Symbol {
	for scope := s; scope != nil; scope = scope.Parent {
		if sym, ok := scope.symbols[name]; ok {
			return sym
		}
	}
	return nil
}

// Symbols returns the scope's symbols in declaration order.
func (s *Scope) Symbols() []*Symbol {
	return s.order
}

func (s *Scope) Len() int {
	return len(s.order)
}

func (s *Scope) IsGlobal() bool {
	return s.Kind == ScopeGlobal
}
