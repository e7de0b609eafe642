// Package ast declares the syntax tree for FIS-25 programs.
//
// Every node kind is its own Go type holding only the fields that kind
// needs. Trees are built once by the parser and never modified afterwards;
// the analyzer keeps inferred types in a side table.
package ast

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/fis25/compiler/internal/lexer"
)

// ErrMalformed reports a tree with a missing required child. It signals a
// parser defect, not an error in the user's program.
var ErrMalformed = errors.New("malformed syntax tree")

type Node interface {
	Pos() lexer.Position
}

type Expr interface {
	Node
	exprNode()
}

type Stmt interface {
	Node
	stmtNode()
}

// Inspect traverses the tree rooted at node in depth-first order. If f
// returns false the children of that node are skipped. Nil children are
// not visited.
func Inspect(node Node, f func(Node) bool) {
	if isNil(node) || !f(node) {
		return
	}
	for _, child := range Children(node) {
		Inspect(child, f)
	}
}

// Children returns the direct children of node in source order,
// omitting the optional ones that are absent.
func Children(node Node) []Node {
	var out []Node
	add := func(nodes ...Node) {
		for _, n := range nodes {
			if !isNil(n) {
				out = append(out, n)
			}
		}
	}

	switch n := node.(type) {
	case *IndexExpr:
		add(n.Array, n.Index)
	case *LengthExpr:
		add(n.Array)
	case *BinaryExpr:
		add(n.X, n.Y)
	case *NotExpr:
		add(n.X)
	case *CallExpr:
		add(n.Func)
		for _, a := range n.Args {
			add(a)
		}
	case *Seq:
		for _, s := range n.List {
			add(s)
		}
	case *Block:
		for _, s := range n.List {
			add(s)
		}
	case *Declare:
		add(n.Init)
	case *Assign:
		add(n.Value)
	case *AssignIndex:
		add(n.Index, n.Value)
	case *Pixel:
		add(n.X, n.Y, n.Color)
	case *Print:
		add(n.Value)
	case *If:
		add(n.Cond, n.Then, n.Else)
	case *While:
		add(n.Cond, n.Body)
	case *For:
		add(n.Init, n.Cond, n.Post, n.Body)
	case *FuncDecl:
		add(n.Body)
	case *Return:
		add(n.Value)
	case *ExprStmt:
		add(n.X)
	}
	return out
}

// Validate checks that every required child in the tree is present.
// The returned error wraps ErrMalformed.
func Validate(root Node) error {
	if isNil(root) {
		return fmt.Errorf("%w: nil root", ErrMalformed)
	}
	var err error
	Inspect(root, func(n Node) bool {
		if err != nil {
			return false
		}
		if what := missingChild(n); what != "" {
			err = fmt.Errorf("%w: %T at %s has no %s", ErrMalformed, n, n.Pos(), what)
			return false
		}
		return true
	})
	return err
}

func missingChild(node Node) string {
	switch n := node.(type) {
	case *Ident:
		if n.Name == "" {
			return "name"
		}
	case *IndexExpr:
		switch {
		case n.Array == nil:
			return "array"
		case isNil(n.Index):
			return "index"
		}
	case *LengthExpr:
		if n.Array == nil {
			return "array"
		}
	case *BinaryExpr:
		switch {
		case isNil(n.X):
			return "left operand"
		case isNil(n.Y):
			return "right operand"
		}
	case *NotExpr:
		if isNil(n.X) {
			return "operand"
		}
	case *CallExpr:
		if n.Func == nil {
			return "callee"
		}
	case *Declare:
		switch {
		case n.Name == "":
			return "name"
		case n.Type == nil:
			return "type"
		}
	case *Assign:
		switch {
		case n.Name == "":
			return "name"
		case isNil(n.Value):
			return "value"
		}
	case *AssignIndex:
		switch {
		case n.Name == "":
			return "name"
		case isNil(n.Index):
			return "index"
		case isNil(n.Value):
			return "value"
		}
	case *ArrayDecl:
		switch {
		case n.Name == "":
			return "name"
		case n.Elem == nil:
			return "element type"
		}
	case *Pixel:
		if isNil(n.X) || isNil(n.Y) || isNil(n.Color) {
			return "coordinate or color"
		}
	case *Key:
		if n.Dest == "" {
			return "destination"
		}
	case *Input:
		if n.Dest == "" {
			return "destination"
		}
	case *Print:
		if isNil(n.Value) {
			return "value"
		}
	case *If:
		switch {
		case isNil(n.Cond):
			return "condition"
		case n.Then == nil:
			return "body"
		}
	case *While:
		switch {
		case isNil(n.Cond):
			return "condition"
		case n.Body == nil:
			return "body"
		}
	case *For:
		switch {
		case isNil(n.Cond):
			return "condition"
		case n.Body == nil:
			return "body"
		}
	case *FuncDecl:
		switch {
		case n.Name == "":
			return "name"
		case n.Result == nil:
			return "result type"
		case n.Body == nil:
			return "body"
		}
	case *ExprStmt:
		if isNil(n.X) {
			return "expression"
		}
	}
	return ""
}

// isNil catches both a nil interface and an interface holding a typed
// nil pointer, which optional fields such as If.Else can carry.
func isNil(n Node) bool {
	if n == nil {
		return true
	}
	v := reflect.ValueOf(n)
	return v.Kind() == reflect.Pointer && v.IsNil()
}
