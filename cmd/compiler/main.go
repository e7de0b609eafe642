// Command compiler translates a FIS-25 source file into three-address
// code for the FIS-25 virtual machine.
//
// Usage:
//
//	compiler [-o output] [-v] [-s] file.fis
package main

import (
	"bytes"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/fis25/compiler/internal/compiler"
	"github.com/fis25/compiler/internal/semantic"
)

const defaultOutput = "salida.fis25"

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes the command and returns the process exit code.
func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("compiler", flag.ContinueOnError)
	fs.SetOutput(stderr)
	output := fs.String("o", defaultOutput, "Output file path")
	verbose := fs.Bool("v", false, "Show details of each phase")
	skipSemantic := fs.Bool("s", false, "Skip semantic analysis")
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: compiler [-o output] [-v] [-s] <file.fis>\n")
		fmt.Fprintf(stderr, "Compile a FIS-25 program to three-address code\n\n")
		fmt.Fprintf(stderr, "Flags:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 1
	}
	if fs.NArg() != 1 {
		fmt.Fprintf(stderr, "Error: expected exactly one source file\n")
		fs.Usage()
		return 1
	}
	filename := fs.Arg(0)

	source, err := os.ReadFile(filename)
	if err != nil {
		fmt.Fprintf(stderr, "Error reading file %s: %v\n", filename, err)
		return 1
	}
	if *verbose {
		fmt.Fprintf(stdout, "Compiling %s\n", filename)
	}

	res, err := compiler.CompileSource(string(source), filename, compiler.Options{SkipSemantic: *skipSemantic})
	if res != nil {
		for _, d := range res.Diagnostics {
			fmt.Fprintf(stderr, "%v\n", d)
		}
	}
	if err != nil {
		switch {
		case errors.Is(err, compiler.ErrSemantic):
			fmt.Fprintf(stderr, "Semantic analysis failed: %d error(s)\n", countErrors(res.Diagnostics))
		default:
			fmt.Fprintf(stderr, "Compilation failed:\n%v\n", err)
		}
		return 1
	}

	var buf bytes.Buffer
	if err := compiler.WriteProgram(&buf, res.Program, filename); err != nil {
		fmt.Fprintf(stderr, "Error generating code: %v\n", err)
		return 1
	}
	if err := os.WriteFile(*output, buf.Bytes(), 0644); err != nil {
		fmt.Fprintf(stderr, "Error writing %s: %v\n", *output, err)
		return 1
	}

	fmt.Fprintf(stdout, "Generated %s (%d instructions)\n", *output, res.Program.Len())
	if *verbose {
		fmt.Fprintf(stdout, "Symbols declared: %d\n", res.Symbols)
		fmt.Fprintf(stdout, "Labels generated: %d\n", res.Labels)
		fmt.Fprintf(stdout, "Temporaries: %d\n", res.Temps)
	}
	return 0
}

func countErrors(diags []*semantic.Diagnostic) int {
	n := 0
	for _, d := range diags {
		if d.Severity == semantic.SeverityError {
			n++
		}
	}
	return n
}
