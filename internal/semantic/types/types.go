// Package types defines the FIS-25 value types and the compatibility
// rules between them.
package types

import (
	"fmt"
	"strings"
)

// Type is a FIS-25 value type. Primitive types are singletons and can be
// compared with ==; composite types use Equals.
type Type interface {
	String() string
	Equals(other Type) bool
	AssignableTo(target Type) bool
	kind() TypeKind
}

type TypeKind int

const (
	KindVoid TypeKind = iota
	KindInt
	KindFloat
	KindBool
	KindString
	KindArray
	KindFunction
)

type primitive struct {
	name string
	k    TypeKind
}

func (p *primitive) String() string { return p.name }

func (p *primitive) Equals(other Type) bool {
	return other != nil && other.kind() == p.k && p.k <= KindString
}

func (p *primitive) AssignableTo(target Type) bool { return Compatible(p, target) }
func (p *primitive) kind() TypeKind                  { return p.k }

var (
	// Void means "no type". It is the result of every ill-typed expression.
	Void   Type = &primitive{"void", KindVoid}
	Int    Type = &primitive{"int", KindInt}
	Float  Type = &primitive{"float", KindFloat}
	Bool   Type = &primitive{"bool", KindBool}
	String Type = &primitive{"string", KindString}
)

// ArrayType is a fixed-size array of a primitive element type.
type ArrayType struct {
	Elem Type
	Size int
}

func NewArray(elem Type, size int) *ArrayType {
	return &ArrayType{Elem: elem, Size: size}
}

func (a *ArrayType) String() string {
	return fmt.Sprintf("%s[%d]", a.Elem, a.Size)
}

func (a *ArrayType) Equals(other Type) bool {
	o, ok := other.(*ArrayType)
	return ok && o.Size == a.Size && a.Elem.Equals(o.Elem)
}

// AssignableTo is false: arrays are never copied as a whole.
func (a *ArrayType) AssignableTo(Type) bool { return false }
func (a *ArrayType) kind() TypeKind         { return KindArray }

type FunctionType struct {
	Params []Type
	Result Type
}

func NewFunction(params []Type, result Type) *FunctionType {
	return &FunctionType{Params: params, Result: result}
}

func (f *FunctionType) String() string {
	params := make([]string, len(f.Params))
	for i, p := range f.Params {
		params[i] = p.String()
	}
	return fmt.Sprintf("%s(%s)", f.Result, strings.Join(params, ", "))
}

func (f *FunctionType) Equals(other Type) bool {
	o, ok := other.(*FunctionType)
	if !ok || len(o.Params) != len(f.Params) || !f.Result.Equals(o.Result) {
		return false
	}
	for i, p := range f.Params {
		if !p.Equals(o.Params[i]) {
			return false
		}
	}
	return true
}

func (f *FunctionType) AssignableTo(Type) bool { return false }
func (f *FunctionType) kind() TypeKind         { return KindFunction }

// Compatible reports whether values of a and b may be mixed in an
// assignment. The relation is symmetric: identical primitive types,
// int with float, and int with bool. Void is compatible with nothing.
func Compatible(a, b Type) bool {
	if a == nil || b == nil || IsVoid(a) || IsVoid(b) {
		return false
	}
	if a.Equals(b) {
		return a.kind() <= KindString
	}
	pair := func(x, y TypeKind) bool {
		return (a.kind() == x && b.kind() == y) || (a.kind() == y && b.kind() == x)
	}
	return pair(KindInt, KindFloat) || pair(KindInt, KindBool)
}

// IsNumeric reports whether t takes part in arithmetic.
func IsNumeric(t Type) bool {
	return t != nil && (t.kind() == KindInt || t.kind() == KindFloat)
}

// IsCondition reports whether t can drive a branch: bool, or int as a
// zero/non-zero truth value.
func IsCondition(t Type) bool {
	return t != nil && (t.kind() == KindBool || t.kind() == KindInt)
}

func IsVoid(t Type) bool   { return t == nil || t.kind() == KindVoid }
func IsFloat(t Type) bool  { return t != nil && t.kind() == KindFloat }
func IsString(t Type) bool { return t != nil && t.kind() == KindString }

// Parse maps a type keyword to its type.
func Parse(name string) (Type, bool) {
	switch name {
	case "int":
		return Int, true
	case "float":
		return Float, true
	case "bool":
		return Bool, true
	case "string":
		return String, true
	case "void":
		return Void, true
	}
	return nil, false
}
