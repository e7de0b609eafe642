package compiler

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fis25/compiler/internal/golden"
	"github.com/fis25/compiler/internal/ir"
	"github.com/fis25/compiler/internal/semantic"
	"github.com/nalgeon/be"
)

func TestGolden(t *testing.T) {
	files, err := filepath.Glob("testdata/*.md")
	be.Err(t, err, nil)
	be.True(t, len(files) > 0)

	for _, file := range files {
		t.Run(strings.TrimSuffix(filepath.Base(file), ".md"), func(t *testing.T) {
			content, err := os.ReadFile(file)
			be.Err(t, err, nil)
			cases, err := golden.Extract(content)
			be.Err(t, err, nil)

			for _, tc := range cases {
				t.Run(tc.Name, func(t *testing.T) {
					res, err := CompileSource(tc.Source, filepath.Base(file), Options{})
					be.True(t, res != nil)

					if tc.HasDiagnostics {
						got := make([]string, len(res.Diagnostics))
						for i, d := range res.Diagnostics {
							got[i] = d.Severity.String() + ": " + d.Kind.String()
						}
						be.Equal(t, strings.Join(got, "\n"), strings.Join(tc.Diagnostics, "\n"))
					}
					if tc.HasTAC {
						be.Err(t, err, nil)
						be.Equal(t, strings.Join(res.Program.Lines(), "\n"), strings.Join(tc.TAC, "\n"))
					} else {
						be.Err(t, err, ErrSemantic)
						be.True(t, res.Program == nil)
					}
				})
			}
		})
	}
}

func TestCompileSource_Counts(t *testing.T) {
	src := "int x = 5; int y = x + 3; if (y > 5) { int z = y; print z; }"
	res, err := CompileSource(src, "main.fis", Options{})
	be.Err(t, err, nil)
	be.Equal(t, res.Symbols, 2)
	be.Equal(t, res.Declared, 3)
	be.Equal(t, res.Labels, 1)
	be.Equal(t, res.Temps, 2)
	be.Equal(t, len(res.Warnings()), 0)
}

func TestCompileSource_SyntaxError(t *testing.T) {
	res, err := CompileSource("int = 5;", "main.fis", Options{})
	be.Err(t, err, ErrSyntax)
	be.True(t, res == nil)
}

func TestCompileSource_SemanticErrorCount(t *testing.T) {
	res, err := CompileSource("int y = z + 1;", "main.fis", Options{})
	be.Err(t, err, ErrSemantic)
	be.Err(t, err, semantic.ErrUndeclaredVariable)
	be.Err(t, err, "1 found")
	be.Equal(t, len(res.Diagnostics), 1)
	be.True(t, res.Program == nil)
}

func TestCompileSource_SkipSemantic(t *testing.T) {
	// The type error goes unnoticed; the code is still well formed.
	res, err := CompileSource(`int x = 1; x = "text";`, "main.fis", Options{SkipSemantic: true})
	be.Err(t, err, nil)
	be.Equal(t, res.Symbols, 0)
	be.Equal(t, res.Program.Lines(), []string{"VAR x", "ASSIGN 1 x", `ASSIGN "text" x`})

	// Reading a name nobody declared fails verification instead.
	res, err = CompileSource("print ghost;", "main.fis", Options{SkipSemantic: true})
	be.Err(t, err, ir.ErrVerify)
	be.True(t, res.Program == nil)
}

func TestCompileSource_Unsupported(t *testing.T) {
	src := "int twice(int n) { return n * 2; } int x = twice(4);"
	res, err := CompileSource(src, "main.fis", Options{})
	be.Err(t, err, ir.ErrUnsupported)
	be.True(t, !errors.Is(err, ErrSemantic))
	be.Equal(t, len(res.Diagnostics), 0)
	be.True(t, res.Program == nil)
}

func TestWriteProgram(t *testing.T) {
	res, err := CompileSource("int x = 5;", "main.fis", Options{})
	be.Err(t, err, nil)

	var buf bytes.Buffer
	err = WriteProgram(&buf, res.Program, "main.fis")
	be.Err(t, err, nil)
	want := "// FIS-25 compiler\n// source: main.fis\n// generated automatically\n\nVAR x\nASSIGN 5 x\n"
	be.Equal(t, buf.String(), want)
}
