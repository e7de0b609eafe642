// Package compiler runs the FIS-25 pipeline: parse, check, then lower to
// three-address code.
package compiler

import (
	"errors"
	"fmt"
	"io"

	"github.com/fis25/compiler/internal/ir"
	"github.com/fis25/compiler/internal/parser"
	"github.com/fis25/compiler/internal/parser/ast"
	"github.com/fis25/compiler/internal/semantic"
)

var (
	// ErrSyntax is wrapped by errors for programs that do not parse.
	ErrSyntax = parser.ErrSyntax
	// ErrSemantic is wrapped by errors for programs that fail analysis.
	ErrSemantic = errors.New("semantic errors")
)

// Options controls which phases run.
type Options struct {
	// SkipSemantic lowers the tree without checking it first.
	SkipSemantic bool
}

// Result holds everything one compilation produced. Program is nil when
// compilation stopped before code generation.
type Result struct {
	Program     *ir.Program
	Diagnostics []*semantic.Diagnostic

	// Symbols counts the declarations still live after analysis and
	// Declared counts every declaration made. Both are zero when
	// analysis was skipped.
	Symbols  int
	Declared int

	Labels int
	Temps  int
}

// Warnings returns the warning diagnostics.
func (r *Result) Warnings() []*semantic.Diagnostic {
	var out []*semantic.Diagnostic
	for _, d := range r.Diagnostics {
		if d.Severity == semantic.SeverityWarning {
			out = append(out, d)
		}
	}
	return out
}

// CompileSource parses src and compiles it. filename is used only in
// positions.
func CompileSource(src, filename string, opts Options) (*Result, error) {
	root, err := parser.Parse(src, filename)
	if err != nil {
		return nil, err
	}
	return Compile(root, opts)
}

// Compile checks and lowers an already parsed program. Code is generated
// only when analysis reports no errors; the diagnostics are returned in
// the Result either way.
func Compile(root ast.Stmt, opts Options) (*Result, error) {
	res := &Result{}

	if !opts.SkipSemantic {
		analysis, err := semantic.New().Analyze(root)
		if err != nil {
			return nil, err
		}
		res.Diagnostics = analysis.Diagnostics
		res.Symbols = analysis.Symbols
		res.Declared = analysis.Declared
		if !analysis.OK() {
			return res, fmt.Errorf("%w: %d found: %w", ErrSemantic, analysis.ErrorCount, analysis.Err())
		}
	}

	b := ir.NewBuilder()
	prog, err := b.Build(root)
	if prog == nil {
		return res, err
	}
	res.Labels = b.LabelCount()
	res.Temps = b.TempCount()
	if err != nil {
		return res, err
	}
	if errs := prog.Verify(); len(errs) > 0 {
		return res, errors.Join(errs...)
	}
	res.Program = prog
	return res, nil
}

// WriteProgram writes prog preceded by a comment header naming the
// source file.
func WriteProgram(w io.Writer, prog *ir.Program, source string) error {
	if _, err := fmt.Fprintf(w, "// FIS-25 compiler\n// source: %s\n// generated automatically\n\n", source); err != nil {
		return err
	}
	_, err := prog.WriteTo(w)
	return err
}
