package ir

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/fis25/compiler/internal/lexer"
	"github.com/fis25/compiler/internal/parser/ast"
)

// ErrUnsupported is wrapped by errors for constructs the instruction set
// cannot express: dynamic array indexing, functions and calls.
var ErrUnsupported = errors.New("unsupported construct")

// Builder lowers a checked syntax tree into a Program. Each Build starts
// from fresh counters, so temporaries are T0, T1, ... and labels L0,
// L1, ... within one program.
type Builder struct {
	prog   *Program
	labels int
	temps  int

	// declared holds every name a VAR has been emitted for. Blocks do not
	// introduce scopes here: a name is declared once per program.
	declared map[string]bool

	errors []error
}

func NewBuilder() *Builder {
	return &Builder{}
}

// Build lowers root. The tree is expected to have passed semantic
// analysis. The error joins every unsupported construct found; the
// partial program is returned alongside it.
func (b *Builder) Build(root ast.Stmt) (*Program, error) {
	if err := ast.Validate(root); err != nil {
		return nil, err
	}
	b.prog = &Program{}
	b.labels = 0
	b.temps = 0
	b.declared = make(map[string]bool)
	b.errors = nil

	b.stmt(root)
	return b.prog, errors.Join(b.errors...)
}

// LabelCount returns the number of labels allocated by the last Build.
func (b *Builder) LabelCount() int { return b.labels }

// TempCount returns the number of temporaries allocated by the last Build.
func (b *Builder) TempCount() int { return b.temps }

func (b *Builder) emit(instr Instruction) {
	b.prog.Emit(instr)
}

// declare emits VAR name unless name was declared before.
func (b *Builder) declare(name string) {
	if b.declared[name] {
		return
	}
	b.declared[name] = true
	b.emit(&Var{Name: name})
}

func (b *Builder) newTemp() string {
	t := "T" + strconv.Itoa(b.temps)
	b.temps++
	b.declare(t)
	return t
}

func (b *Builder) newLabel() string {
	l := "L" + strconv.Itoa(b.labels)
	b.labels++
	return l
}

func (b *Builder) unsupported(pos lexer.Position, format string, args ...any) {
	b.errors = append(b.errors, fmt.Errorf("%s: %w: %s", pos, ErrUnsupported, fmt.Sprintf(format, args...)))
}

func (b *Builder) stmt(s ast.Stmt) {
	switch s := s.(type) {
	case *ast.Seq:
		for _, child := range s.List {
			b.stmt(child)
		}
	case *ast.Block:
		for _, child := range s.List {
			b.stmt(child)
		}
	case *ast.Declare:
		b.declare(s.Name)
		if s.Init != nil {
			b.store(s.Name, s.Init)
		}
	case *ast.Assign:
		b.declare(s.Name)
		b.store(s.Name, s.Value)
	case *ast.AssignIndex:
		lit, ok := s.Index.(*ast.IntLit)
		if !ok {
			b.unsupported(s.NamePos, "store to %s with a non-constant index", s.Name)
			return
		}
		dest := element(s.Name, lit.Value)
		b.declare(dest)
		b.store(dest, s.Value)
	case *ast.ArrayDecl:
		for i := 0; i < s.Size; i++ {
			b.declare(element(s.Name, int64(i)))
		}
		length := s.Name + "_length"
		b.declare(length)
		b.emit(&Assign{Src: strconv.Itoa(s.Size), Dest: length})
	case *ast.Pixel:
		x := b.expr(s.X)
		y := b.expr(s.Y)
		c := b.expr(s.Color)
		b.emit(&Pixel{X: x, Y: y, Color: c})
	case *ast.Key:
		b.declare(s.Dest)
		b.emit(&Key{Code: s.Code, Dest: s.Dest})
	case *ast.Input:
		b.declare(s.Dest)
		b.emit(&Input{Dest: s.Dest})
	case *ast.Print:
		if str, ok := s.Value.(*ast.StringLit); ok {
			b.emit(&Print{Value: Quote(str.Value)})
			return
		}
		b.emit(&Print{Value: b.expr(s.Value)})
	case *ast.If:
		b.ifStmt(s)
	case *ast.While:
		start := b.newLabel()
		end := b.newLabel()
		b.emit(&Label{Name: start})
		b.emit(&IfFalse{Cond: b.expr(s.Cond), Target: end})
		b.stmt(s.Body)
		b.emit(&Goto{Target: start})
		b.emit(&Label{Name: end})
	case *ast.For:
		if s.Init != nil {
			b.stmt(s.Init)
		}
		start := b.newLabel()
		end := b.newLabel()
		b.emit(&Label{Name: start})
		b.emit(&IfFalse{Cond: b.expr(s.Cond), Target: end})
		b.stmt(s.Body)
		if s.Post != nil {
			b.stmt(s.Post)
		}
		b.emit(&Goto{Target: start})
		b.emit(&Label{Name: end})
	case *ast.Return:
		if s.Value == nil {
			b.emit(&Return{})
			return
		}
		b.emit(&Return{Value: b.expr(s.Value)})
	case *ast.FuncDecl:
		b.unsupported(s.TypePos, "function %s", s.Name)
	case *ast.ExprStmt:
		b.expr(s.X)
	}
}

func (b *Builder) ifStmt(s *ast.If) {
	cond := b.expr(s.Cond)
	if s.Else == nil {
		end := b.newLabel()
		b.emit(&IfFalse{Cond: cond, Target: end})
		b.stmt(s.Then)
		b.emit(&Label{Name: end})
		return
	}
	elseLabel := b.newLabel()
	end := b.newLabel()
	b.emit(&IfFalse{Cond: cond, Target: elseLabel})
	b.stmt(s.Then)
	b.emit(&Goto{Target: end})
	b.emit(&Label{Name: elseLabel})
	b.stmt(s.Else)
	b.emit(&Label{Name: end})
}

// store assigns value to dest. Literals and plain names are assigned
// directly, whatever their magnitude; anything else is lowered first.
func (b *Builder) store(dest string, value ast.Expr) {
	src, ok := Literal(value)
	if !ok {
		if id, isIdent := value.(*ast.Ident); isIdent {
			src = id.Name
		} else {
			src = b.expr(value)
		}
	}
	b.emit(&Assign{Src: src, Dest: dest})
}

// expr lowers e and returns the operand holding its value.
func (b *Builder) expr(e ast.Expr) string {
	switch e := e.(type) {
	case *ast.IntLit:
		if e.Value >= 0 && e.Value <= 100 {
			return FormatInt(e.Value)
		}
		return b.materialize(FormatInt(e.Value))
	case *ast.FloatLit, *ast.BoolLit:
		lit, _ := Literal(e)
		return b.materialize(lit)
	case *ast.StringLit:
		return Quote(e.Value)
	case *ast.Ident:
		return e.Name
	case *ast.IndexExpr:
		if lit, ok := e.Index.(*ast.IntLit); ok {
			return element(e.Array.Name, lit.Value)
		}
		b.unsupported(e.Pos(), "read of %s with a non-constant index", e.Array.Name)
		return "0"
	case *ast.LengthExpr:
		return e.Array.Name + "_length"
	case *ast.BinaryExpr:
		return b.binary(e)
	case *ast.NotExpr:
		x := b.expr(e.X)
		t := b.newTemp()
		b.emit(&BinaryOp{Op: OpEq, X: x, Y: "0", Dest: t})
		return t
	case *ast.CallExpr:
		b.unsupported(e.Pos(), "call of %s", e.Func.Name)
		return "0"
	}
	return "0"
}

// materialize copies a literal into a fresh temporary.
func (b *Builder) materialize(lit string) string {
	t := b.newTemp()
	b.emit(&Assign{Src: lit, Dest: t})
	return t
}

var opcodes = map[ast.BinaryOp]Opcode{
	ast.OpAdd: OpAdd,
	ast.OpSub: OpSub,
	ast.OpMul: OpMul,
	ast.OpDiv: OpDiv,
	ast.OpMod: OpMod,
	ast.OpLt:  OpLt,
	ast.OpGt:  OpGt,
	ast.OpLe:  OpLte,
	ast.OpGe:  OpGte,
	ast.OpEq:  OpEq,
	ast.OpNe:  OpNeq,
}

// binary lowers a binary expression. Booleans are 0/1 integers: AND is a
// product, OR is a sum compared against zero.
func (b *Builder) binary(e *ast.BinaryExpr) string {
	if lit, ok := Fold(e.Op, e.X, e.Y); ok {
		return lit
	}
	x := b.expr(e.X)
	y := b.expr(e.Y)

	switch e.Op {
	case ast.OpAnd:
		t := b.newTemp()
		b.emit(&BinaryOp{Op: OpMul, X: x, Y: y, Dest: t})
		return t
	case ast.OpOr:
		sum := b.newTemp()
		t := b.newTemp()
		b.emit(&BinaryOp{Op: OpAdd, X: x, Y: y, Dest: sum})
		b.emit(&BinaryOp{Op: OpGt, X: sum, Y: "0", Dest: t})
		return t
	}

	t := b.newTemp()
	b.emit(&BinaryOp{Op: opcodes[e.Op], X: x, Y: y, Dest: t})
	return t
}

func element(array string, index int64) string {
	return array + "_" + strconv.FormatInt(index, 10)
}
