package parser

import (
	"strconv"
	"testing"

	"github.com/fis25/compiler/internal/lexer"
	"github.com/fis25/compiler/internal/parser/ast"
	"github.com/fis25/compiler/internal/semantic/types"
	"github.com/nalgeon/be"
)

func mustParse(t *testing.T, src string) []ast.Stmt {
	t.Helper()
	prog, err := Parse(src, "test.fis")
	be.Err(t, err, nil)
	be.Err(t, ast.Validate(prog), nil)
	return prog.List
}

func parseExpr(t *testing.T, src string) ast.Expr {
	t.Helper()
	stmts := mustParse(t, "print "+src+";")
	be.Equal(t, len(stmts), 1)
	return stmts[0].(*ast.Print).Value
}

// sexpr renders an expression in prefix form so tests can compare shapes.
func sexpr(e ast.Expr) string {
	switch e := e.(type) {
	case *ast.IntLit:
		return strconv.FormatInt(e.Value, 10)
	case *ast.FloatLit:
		return "float"
	case *ast.BoolLit:
		if e.Value {
			return "true"
		}
		return "false"
	case *ast.StringLit:
		return `"` + e.Value + `"`
	case *ast.Ident:
		return e.Name
	case *ast.IndexExpr:
		return e.Array.Name + "[" + sexpr(e.Index) + "]"
	case *ast.LengthExpr:
		return "length(" + e.Array.Name + ")"
	case *ast.NotExpr:
		return "(! " + sexpr(e.X) + ")"
	case *ast.BinaryExpr:
		return "(" + e.Op.String() + " " + sexpr(e.X) + " " + sexpr(e.Y) + ")"
	case *ast.CallExpr:
		s := e.Func.Name + "("
		for i, a := range e.Args {
			if i > 0 {
				s += " "
			}
			s += sexpr(a)
		}
		return s + ")"
	}
	return "?"
}

func TestParseExpressions(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{"1 + 2 * 3", "(+ 1 (* 2 3))"},
		{"(1 + 2) * 3", "(* (+ 1 2) 3)"},
		{"a - b - c", "(- (- a b) c)"},
		{"a / b % c", "(% (/ a b) c)"},
		{"a || b && c", "(|| a (&& b c))"},
		{"a < b == c > d", "(== (< a b) (> c d))"},
		{"!a && b", "(&& (! a) b)"},
		{"-5", "-5"},
		{"-x", "(- 0 x)"},
		{"3 - -2", "(- 3 -2)"},
		{"arr[i + 1]", "arr[(+ i 1)]"},
		{"length(arr) - 1", "(- length(arr) 1)"},
		{"f(1, x, 2 * y)", "f(1 x (* 2 y))"},
		{"true != false", "(!= true false)"},
		{`"hi"`, `"hi"`},
		{"1.5 >= x", "(>= float x)"},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			be.Equal(t, sexpr(parseExpr(t, tt.src)), tt.want)
		})
	}
}

func TestParseLiterals(t *testing.T) {
	f := parseExpr(t, "150.25").(*ast.FloatLit)
	be.Equal(t, f.Value, 150.25)

	n := parseExpr(t, "-7.5").(*ast.FloatLit)
	be.Equal(t, n.Value, -7.5)

	s := parseExpr(t, `"a \"q\""`).(*ast.StringLit)
	be.Equal(t, s.Value, `a \"q\"`)
}

func TestParseDeclarations(t *testing.T) {
	stmts := mustParse(t, "int x; float y = 2.5; bool b = true; string s = \"t\"; int a[10];")
	be.Equal(t, len(stmts), 5)

	x := stmts[0].(*ast.Declare)
	be.Equal(t, x.Name, "x")
	be.Equal(t, x.Type, types.Int)
	be.True(t, x.Init == nil)

	y := stmts[1].(*ast.Declare)
	be.Equal(t, y.Type, types.Float)
	be.Equal(t, y.Init.(*ast.FloatLit).Value, 2.5)

	be.Equal(t, stmts[2].(*ast.Declare).Type, types.Bool)
	be.Equal(t, stmts[3].(*ast.Declare).Type, types.String)

	arr := stmts[4].(*ast.ArrayDecl)
	be.Equal(t, arr.Name, "a")
	be.Equal(t, arr.Elem, types.Int)
	be.Equal(t, arr.Size, 10)
}

func TestParseAssignments(t *testing.T) {
	stmts := mustParse(t, "x = 1; a[2] = x + 1; f(x);")

	as := stmts[0].(*ast.Assign)
	be.Equal(t, as.Name, "x")
	be.Equal(t, sexpr(as.Value), "1")

	ai := stmts[1].(*ast.AssignIndex)
	be.Equal(t, ai.Name, "a")
	be.Equal(t, sexpr(ai.Index), "2")
	be.Equal(t, sexpr(ai.Value), "(+ x 1)")

	call := stmts[2].(*ast.ExprStmt).X.(*ast.CallExpr)
	be.Equal(t, call.Func.Name, "f")
	be.Equal(t, len(call.Args), 1)
}

func TestParseBuiltins(t *testing.T) {
	stmts := mustParse(t, `pixel(x, y + 1, 255); key(32, jump); input(name); print "hola"; print x * 2;`)

	px := stmts[0].(*ast.Pixel)
	be.Equal(t, sexpr(px.X), "x")
	be.Equal(t, sexpr(px.Y), "(+ y 1)")
	be.Equal(t, sexpr(px.Color), "255")

	key := stmts[1].(*ast.Key)
	be.Equal(t, key.Code, 32)
	be.Equal(t, key.Dest, "jump")

	be.Equal(t, stmts[2].(*ast.Input).Dest, "name")
	be.Equal(t, stmts[3].(*ast.Print).Value.(*ast.StringLit).Value, "hola")
	be.Equal(t, sexpr(stmts[4].(*ast.Print).Value), "(* x 2)")
}

func TestParseControlFlow(t *testing.T) {
	src := `
if (x > 1) { print x; }
if (x) { x = 1; } else if (y) { x = 2; } else { x = 3; }
while (i < 10) { i = i + 1; }
for (int i = 0; i < 5; i = i + 1) { print i; }
for (; go;) { }
`
	stmts := mustParse(t, src)
	be.Equal(t, len(stmts), 5)

	simple := stmts[0].(*ast.If)
	be.Equal(t, sexpr(simple.Cond), "(> x 1)")
	be.Equal(t, len(simple.Then.List), 1)
	be.True(t, simple.Else == nil)

	chain := stmts[1].(*ast.If)
	elif := chain.Else.(*ast.If)
	be.Equal(t, sexpr(elif.Cond), "y")
	_, ok := elif.Else.(*ast.Block)
	be.True(t, ok)

	loop := stmts[2].(*ast.While)
	be.Equal(t, sexpr(loop.Cond), "(< i 10)")

	fr := stmts[3].(*ast.For)
	be.Equal(t, fr.Init.(*ast.Declare).Name, "i")
	be.Equal(t, sexpr(fr.Cond), "(< i 5)")
	be.Equal(t, fr.Post.(*ast.Assign).Name, "i")

	bare := stmts[4].(*ast.For)
	be.True(t, bare.Init == nil)
	be.True(t, bare.Post == nil)
}

func TestParseFunctions(t *testing.T) {
	stmts := mustParse(t, "int add(int a, float b) { return a + b; } void tick() { return; } tick();")

	add := stmts[0].(*ast.FuncDecl)
	be.Equal(t, add.Name, "add")
	be.Equal(t, add.Result, types.Int)
	be.Equal(t, len(add.Params), 2)
	be.Equal(t, add.Params[1].Type, types.Float)
	be.Equal(t, sexpr(add.Body.List[0].(*ast.Return).Value), "(+ a b)")

	tick := stmts[1].(*ast.FuncDecl)
	be.Equal(t, tick.Result, types.Void)
	be.Equal(t, len(tick.Params), 0)
	be.True(t, tick.Body.List[0].(*ast.Return).Value == nil)
}

func TestParseComments(t *testing.T) {
	stmts := mustParse(t, "// header\nint x = 1; /* inline */ print x; // tail")
	be.Equal(t, len(stmts), 2)
}

func TestParsePositions(t *testing.T) {
	stmts := mustParse(t, "int x;\n  x = 4;")
	be.Equal(t, stmts[1].Pos().String(), "test.fis:2:3")
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name   string
		src    string
		errors int
	}{
		{"missing semicolon", "int x = 1 print x;", 1},
		{"missing expression", "int x = ;", 1},
		{"bad statement start", "+ 3;", 1},
		{"void variable", "void v;", 1},
		{"zero array size", "int a[0];", 1},
		{"float array size", "int a[2.5];", 1},
		{"unclosed block", "while (x) { print x;", 1},
		{"stray brace", "}", 1},
		{"two bad lines", "int x = ;\nint y = 3;\nprint ;", 2},
		{"error inside block", "if (x) { y = ; print 1; }\nprint 2;", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, errs := New(lexer.New(tt.src, "test.fis")).ParseProgram()
			be.Equal(t, len(errs), tt.errors)
			for _, err := range errs {
				be.Err(t, err, ErrSyntax)
			}
		})
	}
}

func TestParseRecovery(t *testing.T) {
	prog, err := Parse("int x = ;\nint y = 3;\nif (y) { z = ; print y; }", "test.fis")
	be.Err(t, err, ErrSyntax)

	be.Equal(t, len(prog.List), 2)
	be.Equal(t, prog.List[0].(*ast.Declare).Name, "y")
	body := prog.List[1].(*ast.If).Then.List
	be.Equal(t, len(body), 1)
	_, isPrint := body[0].(*ast.Print)
	be.True(t, isPrint)
}

func TestParseLexicalError(t *testing.T) {
	_, err := Parse("int x = 3 @ 4;", "test.fis")
	be.Err(t, err, ErrSyntax)
	be.Err(t, err, lexer.ErrUnexpectedChar)
}
