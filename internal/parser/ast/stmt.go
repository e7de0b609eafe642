package ast

import (
	"github.com/fis25/compiler/internal/lexer"
	"github.com/fis25/compiler/internal/semantic/types"
)

// Seq is a statement list with no scope of its own. A parsed program
// is a *Seq.
type Seq struct {
	List []Stmt
}

// Block is a braced statement list; it opens a scope.
type Block struct {
	Lbrace lexer.Position
	List   []Stmt
}

// Declare introduces a scalar variable, optionally initialized:
// `int x;` or `int x = e;`.
type Declare struct {
	TypePos lexer.Position
	Type    types.Type
	Name    string
	Init    Expr // nil when absent
}

// Assign stores into an existing scalar: `x = e;`.
type Assign struct {
	NamePos lexer.Position
	Name    string
	Value   Expr
}

// AssignIndex stores into an array element: `a[i] = e;`.
type AssignIndex struct {
	NamePos lexer.Position
	Name    string
	Index   Expr
	Value   Expr
}

// ArrayDecl declares a fixed-size array: `int a[10];`.
type ArrayDecl struct {
	TypePos lexer.Position
	Elem    types.Type
	Name    string
	Size    int
}

type Pixel struct {
	PixelPos lexer.Position
	X, Y     Expr
	Color    Expr
}

// Key binds keyboard key Code to the variable Dest.
type Key struct {
	KeyPos lexer.Position
	Code   int
	Dest   string
}

type Input struct {
	InputPos lexer.Position
	Dest     string
}

type Print struct {
	PrintPos lexer.Position
	Value    Expr
}

// If is an if statement. Else is nil, a *Block, or an *If for an
// else-if chain.
type If struct {
	IfPos lexer.Position
	Cond  Expr
	Then  *Block
	Else  Stmt
}

type While struct {
	WhilePos lexer.Position
	Cond     Expr
	Body     *Block
}

// For is `for (Init; Cond; Post) Body`. Init and Post may be nil.
type For struct {
	ForPos lexer.Position
	Init   Stmt
	Cond   Expr
	Post   Stmt
	Body   *Block
}

type Param struct {
	NamePos lexer.Position
	Type    types.Type
	Name    string
}

type FuncDecl struct {
	TypePos lexer.Position
	Result  types.Type
	Name    string
	Params  []*Param
	Body    *Block
}

type Return struct {
	ReturnPos lexer.Position
	Value     Expr // nil for a bare return
}

// ExprStmt evaluates an expression for its effect, in practice a call.
type ExprStmt struct {
	X Expr
}

func (s *Seq) Pos() lexer.Position {
	if len(s.List) == 0 {
		return lexer.Position{}
	}
	return posOf(s.List[0])
}
func (s *Block) Pos() lexer.Position       { return s.Lbrace }
func (s *Declare) Pos() lexer.Position     { return s.TypePos }
func (s *Assign) Pos() lexer.Position      { return s.NamePos }
func (s *AssignIndex) Pos() lexer.Position { return s.NamePos }
func (s *ArrayDecl) Pos() lexer.Position   { return s.TypePos }
func (s *Pixel) Pos() lexer.Position       { return s.PixelPos }
func (s *Key) Pos() lexer.Position         { return s.KeyPos }
func (s *Input) Pos() lexer.Position       { return s.InputPos }
func (s *Print) Pos() lexer.Position       { return s.PrintPos }
func (s *If) Pos() lexer.Position          { return s.IfPos }
func (s *While) Pos() lexer.Position       { return s.WhilePos }
func (s *For) Pos() lexer.Position         { return s.ForPos }
func (s *Param) Pos() lexer.Position       { return s.NamePos }
func (s *FuncDecl) Pos() lexer.Position    { return s.TypePos }
func (s *Return) Pos() lexer.Position      { return s.ReturnPos }
func (s *ExprStmt) Pos() lexer.Position    { return posOf(s.X) }

func (*Seq) stmtNode()         {}
func (*Block) stmtNode()       {}
func (*Declare) stmtNode()     {}
func (*Assign) stmtNode()      {}
func (*AssignIndex) stmtNode() {}
func (*ArrayDecl) stmtNode()   {}
func (*Pixel) stmtNode()       {}
func (*Key) stmtNode()         {}
func (*Input) stmtNode()       {}
func (*Print) stmtNode()       {}
func (*If) stmtNode()          {}
func (*While) stmtNode()       {}
func (*For) stmtNode()         {}
func (*FuncDecl) stmtNode()    {}
func (*Return) stmtNode()      {}
func (*ExprStmt) stmtNode()    {}
