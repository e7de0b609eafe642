// Package ir defines the FIS-25 three-address code and lowers syntax
// trees into it.
//
// Every instruction prints as one line of whitespace-separated fields,
// the format the FIS-25 virtual machine reads. Operands are plain
// strings: a variable or temporary name, a numeric literal, or a quoted
// string.
package ir

import (
	"fmt"
	"strings"
)

// Instruction is one three-address instruction.
type Instruction interface {
	String() string

	// Operands returns the operands the instruction reads.
	Operands() []string

	// Result returns the name the instruction writes, or "".
	Result() string
}

// Opcode names a binary operation.
type Opcode int

const (
	OpAdd Opcode = iota
	OpSub
	OpMul
	OpDiv
	OpMod
	OpLt
	OpGt
	OpLte
	OpGte
	OpEq
	OpNeq
)

var opcodeNames = [...]string{
	OpAdd: "ADD",
	OpSub: "SUB",
	OpMul: "MUL",
	OpDiv: "DIV",
	OpMod: "MOD",
	OpLt:  "LT",
	OpGt:  "GT",
	OpLte: "LTE",
	OpGte: "GTE",
	OpEq:  "EQ",
	OpNeq: "NEQ",
}

func (op Opcode) String() string {
	if op >= 0 && int(op) < len(opcodeNames) {
		return opcodeNames[op]
	}
	return "?"
}

// Var declares a variable: VAR name.
type Var struct {
	Name string
}

func (v *Var) String() string      { return "VAR " + v.Name }
func (v *Var) Operands() []string { return nil }
func (v *Var) Result() string     { return "" }

// Assign copies Src into Dest: ASSIGN src dest.
type Assign struct {
	Src  string
	Dest string
}

func (a *Assign) String() string      { return "ASSIGN " + a.Src + " " + a.Dest }
func (a *Assign) Operands() []string { return []string{a.Src} }
func (a *Assign) Result() string     { return a.Dest }

// BinaryOp computes Dest = X op Y: ADD x y dest.
type BinaryOp struct {
	Op   Opcode
	X, Y string
	Dest string
}

func (b *BinaryOp) String() string {
	return fmt.Sprintf("%s %s %s %s", b.Op, b.X, b.Y, b.Dest)
}
func (b *BinaryOp) Operands() []string { return []string{b.X, b.Y} }
func (b *BinaryOp) Result() string     { return b.Dest }

// Pixel plots a point: PIXEL x y color.
type Pixel struct {
	X, Y, Color string
}

func (p *Pixel) String() string      { return "PIXEL " + p.X + " " + p.Y + " " + p.Color }
func (p *Pixel) Operands() []string { return []string{p.X, p.Y, p.Color} }
func (p *Pixel) Result() string     { return "" }

// Key binds the state of key Code to Dest: KEY code dest.
type Key struct {
	Code int
	Dest string
}

func (k *Key) String() string      { return fmt.Sprintf("KEY %d %s", k.Code, k.Dest) }
func (k *Key) Operands() []string { return nil }
func (k *Key) Result() string     { return k.Dest }

// Input reads a value into Dest: INPUT dest.
type Input struct {
	Dest string
}

func (i *Input) String() string      { return "INPUT " + i.Dest }
func (i *Input) Operands() []string { return nil }
func (i *Input) Result() string     { return i.Dest }

// Print writes Value, an operand or a quoted string: PRINT value.
type Print struct {
	Value string
}

func (p *Print) String() string      { return "PRINT " + p.Value }
func (p *Print) Operands() []string { return []string{p.Value} }
func (p *Print) Result() string     { return "" }

// IfFalse jumps to Target when Cond is zero: IFFALSE cond GOTO label.
type IfFalse struct {
	Cond   string
	Target string
}

func (i *IfFalse) String() string      { return "IFFALSE " + i.Cond + " GOTO " + i.Target }
func (i *IfFalse) Operands() []string { return []string{i.Cond} }
func (i *IfFalse) Result() string     { return "" }

type Goto struct {
	Target string
}

func (g *Goto) String() string      { return "GOTO " + g.Target }
func (g *Goto) Operands() []string { return nil }
func (g *Goto) Result() string     { return "" }

type Label struct {
	Name string
}

func (l *Label) String() string      { return "LABEL " + l.Name }
func (l *Label) Operands() []string { return nil }
func (l *Label) Result() string     { return "" }

// Return ends execution of the current routine. Value may be empty.
type Return struct {
	Value string
}

func (r *Return) String() string {
	if r.Value == "" {
		return "RETURN"
	}
	return "RETURN " + r.Value
}

func (r *Return) Operands() []string {
	if r.Value == "" {
		return nil
	}
	return []string{r.Value}
}
func (r *Return) Result() string { return "" }

// IsName reports whether operand refers to a variable or temporary
// rather than being a literal.
func IsName(operand string) bool {
	if operand == "" {
		return false
	}
	c := operand[0]
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

// Quote renders s as a string operand.
func Quote(s string) string {
	return `"` + s + `"`
}

// IsString reports whether operand is a quoted string.
func IsString(operand string) bool {
	return len(operand) >= 2 && strings.HasPrefix(operand, `"`) && strings.HasSuffix(operand, `"`)
}
