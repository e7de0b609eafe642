package types

import (
	"testing"

	"github.com/nalgeon/be"
)

func TestPrimitiveType_String(t *testing.T) {
	tests := []struct {
		typ      Type
		expected string
	}{
		{Int, "int"},
		{Float, "float"},
		{Bool, "bool"},
		{String, "string"},
		{Void, "void"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if got := tt.typ.String(); got != tt.expected {
				t.Errorf("Type.String() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestCompatible(t *testing.T) {
	tests := []struct {
		name string
		a, b Type
		want bool
	}{
		{"int int", Int, Int, true},
		{"float float", Float, Float, true},
		{"string string", String, String, true},
		{"bool bool", Bool, Bool, true},
		{"int float", Int, Float, true},
		{"int bool", Int, Bool, true},
		{"float bool", Float, Bool, false},
		{"string int", String, Int, false},
		{"string float", String, Float, false},
		{"string bool", String, Bool, false},
		{"void void", Void, Void, false},
		{"void int", Void, Int, false},
		{"array", NewArray(Int, 3), NewArray(Int, 3), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Compatible(tt.a, tt.b); got != tt.want {
				t.Errorf("Compatible(%s, %s) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
			if got := Compatible(tt.b, tt.a); got != tt.want {
				t.Errorf("Compatible(%s, %s) = %v, want %v", tt.b, tt.a, got, tt.want)
			}
		})
	}
}

func TestAssignableTo(t *testing.T) {
	be.True(t, Float.AssignableTo(Int))
	be.True(t, Bool.AssignableTo(Int))
	be.True(t, !String.AssignableTo(Int))
	be.True(t, !NewArray(Int, 2).AssignableTo(NewArray(Int, 2)))
}

func TestPredicates(t *testing.T) {
	be.True(t, IsNumeric(Int))
	be.True(t, IsNumeric(Float))
	be.True(t, !IsNumeric(Bool))
	be.True(t, !IsNumeric(String))

	be.True(t, IsCondition(Bool))
	be.True(t, IsCondition(Int))
	be.True(t, !IsCondition(Float))
	be.True(t, !IsCondition(String))

	be.True(t, IsVoid(Void))
	be.True(t, IsVoid(nil))
	be.True(t, !IsVoid(Int))
}

func TestArrayType(t *testing.T) {
	a := NewArray(Float, 10)
	be.Equal(t, a.String(), "float[10]")
	be.True(t, a.Equals(NewArray(Float, 10)))
	be.True(t, !a.Equals(NewArray(Float, 11)))
	be.True(t, !a.Equals(NewArray(Int, 10)))
	be.True(t, !a.Equals(Float))
}

func TestFunctionType(t *testing.T) {
	f := NewFunction([]Type{Int, Float}, Void)
	be.Equal(t, f.String(), "void(int, float)")
	be.True(t, f.Equals(NewFunction([]Type{Int, Float}, Void)))
	be.True(t, !f.Equals(NewFunction([]Type{Int}, Void)))
	be.True(t, !f.Equals(NewFunction([]Type{Int, Float}, Int)))
}

func TestParse(t *testing.T) {
	for _, name := range []string{"int", "float", "bool", "string", "void"} {
		typ, ok := Parse(name)
		be.True(t, ok)
		be.Equal(t, typ.String(), name)
	}
	_, ok := Parse("char")
	be.True(t, !ok)
}
