// Package symtab implements the scoped symbol table used by semantic
// analysis.
package symtab

import (
	"github.com/fis25/compiler/internal/lexer"
	"github.com/fis25/compiler/internal/semantic/types"
)

type SymbolKind int

const (
	SymbolVariable SymbolKind = iota
	SymbolArray
	SymbolFunction
	SymbolParameter
)

func (sk SymbolKind) String() string {
	switch sk {
	case SymbolVariable:
		return "variable"
	case SymbolArray:
		return "array"
	case SymbolFunction:
		return "function"
	case SymbolParameter:
		return "parameter"
	default:
		return "unknown"
	}
}

// Symbol describes one declared name.
type Symbol struct {
	Name string
	Kind SymbolKind

	// Type is the declared value type. For arrays it is the element
	// type, for functions the result type.
	Type types.Type

	Initialized bool

	// ArraySize is set for arrays only.
	ArraySize int

	// ReturnType and Params are set for functions only.
	ReturnType types.Type
	Params     []*Symbol

	// Level is the scope depth the symbol was declared at; 0 is global.
	Level int
	Pos   lexer.Position
	Scope *Scope

	// Index is the declaration order within the owning scope.
	Index int
}

func (s *Symbol) String() string {
	return s.Kind.String() + " " + s.Name + ": " + s.FullType().String() + " at " + s.Pos.String()
}

// FullType returns the symbol's type as seen from outside: an array type
// for arrays, a function type for functions, Type otherwise.
func (s *Symbol) FullType() types.Type {
	switch s.Kind {
	case SymbolArray:
		return types.NewArray(s.Type, s.ArraySize)
	case SymbolFunction:
		params := make([]types.Type, len(s.Params))
		for i, p := range s.Params {
			params[i] = p.Type
		}
		result := s.ReturnType
		if result == nil {
			result = types.Void
		}
		return types.NewFunction(params, result)
	}
	return s.Type
}

// IsScalar reports whether the symbol names a single value that can be
// read or assigned directly.
func (s *Symbol) IsScalar() bool {
	return s.Kind == SymbolVariable || s.Kind == SymbolParameter
}

func (s *Symbol) IsGlobal() bool {
	return s.Level == 0
}

func (s *Symbol) MarkInitialized() {
	s.Initialized = true
}

func (s *Symbol) SetArraySize(n int) {
	s.ArraySize = n
}

func (s *Symbol) SetReturnType(t types.Type) {
	s.ReturnType = t
}

func (s *Symbol) AddParameter(p *Symbol) {
	s.Params = append(s.Params, p)
}
