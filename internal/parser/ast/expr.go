package ast

import "github.com/fis25/compiler/internal/lexer"

type IntLit struct {
	ValuePos lexer.Position
	Value    int64
}

type FloatLit struct {
	ValuePos lexer.Position
	Value    float64
}

type BoolLit struct {
	ValuePos lexer.Position
	Value    bool
}

// StringLit holds the literal text without the surrounding quotes.
// Escape sequences are kept as written.
type StringLit struct {
	ValuePos lexer.Position
	Value    string
}

type Ident struct {
	NamePos lexer.Position
	Name    string
}

// IndexExpr is an array element read: Array[Index].
type IndexExpr struct {
	Array *Ident
	Index Expr
}

// LengthExpr is length(Array).
type LengthExpr struct {
	LengthPos lexer.Position
	Array     *Ident
}

type BinaryExpr struct {
	X     Expr
	Op    BinaryOp
	OpPos lexer.Position
	Y     Expr
}

type NotExpr struct {
	NotPos lexer.Position
	X      Expr
}

type CallExpr struct {
	Func *Ident
	Args []Expr
}

func (x *IntLit) Pos() lexer.Position     { return x.ValuePos }
func (x *FloatLit) Pos() lexer.Position   { return x.ValuePos }
func (x *BoolLit) Pos() lexer.Position    { return x.ValuePos }
func (x *StringLit) Pos() lexer.Position  { return x.ValuePos }
func (x *Ident) Pos() lexer.Position      { return x.NamePos }
func (x *IndexExpr) Pos() lexer.Position  { return posOf(x.Array) }
func (x *LengthExpr) Pos() lexer.Position { return x.LengthPos }
func (x *BinaryExpr) Pos() lexer.Position { return x.OpPos }
func (x *NotExpr) Pos() lexer.Position    { return x.NotPos }
func (x *CallExpr) Pos() lexer.Position   { return posOf(x.Func) }

func (*IntLit) exprNode()     {}
func (*FloatLit) exprNode()   {}
func (*BoolLit) exprNode()    {}
func (*StringLit) exprNode()  {}
func (*Ident) exprNode()      {}
func (*IndexExpr) exprNode()  {}
func (*LengthExpr) exprNode() {}
func (*BinaryExpr) exprNode() {}
func (*NotExpr) exprNode()    {}
func (*CallExpr) exprNode()   {}

// IsLiteral reports whether e is a numeric or boolean literal, the
// operands constant folding works on.
func IsLiteral(e Expr) bool {
	switch e.(type) {
	case *IntLit, *FloatLit, *BoolLit:
		return true
	}
	return false
}

// BinaryOp is a binary operator.
type BinaryOp int

const (
	OpAdd BinaryOp = iota
	OpSub
	OpMul
	OpDiv
	OpMod
	OpLt
	OpGt
	OpLe
	OpGe
	OpEq
	OpNe
	OpAnd
	OpOr
)

var opSymbols = [...]string{
	OpAdd: "+",
	OpSub: "-",
	OpMul: "*",
	OpDiv: "/",
	OpMod: "%",
	OpLt:  "<",
	OpGt:  ">",
	OpLe:  "<=",
	OpGe:  ">=",
	OpEq:  "==",
	OpNe:  "!=",
	OpAnd: "&&",
	OpOr:  "||",
}

func (op BinaryOp) String() string {
	if op >= 0 && int(op) < len(opSymbols) {
		return opSymbols[op]
	}
	return "?"
}

func (op BinaryOp) IsArithmetic() bool { return op <= OpMod }
func (op BinaryOp) IsComparison() bool { return op >= OpLt && op <= OpNe }
func (op BinaryOp) IsLogical() bool    { return op == OpAnd || op == OpOr }

func posOf(n Node) lexer.Position {
	if isNil(n) {
		return lexer.Position{}
	}
	return n.Pos()
}
