// Package golden reads compiler test cases written as Markdown documents.
//
// Each case starts at a heading of the form "Test: <name>" and holds one
// fis fence with the source program, followed by at least one expectation
// fence: tac (the generated program, one instruction per line) or
// diagnostics (one "<severity>: <kind>" line per diagnostic, in order).
// Fences without a language are commentary and are ignored.
package golden

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// ErrFormat is wrapped by every error about a malformed document.
var ErrFormat = errors.New("malformed test document")

// Fence languages.
const (
	LangSource      = "fis"
	LangTAC         = "tac"
	LangDiagnostics = "diagnostics"
)

const headingPrefix = "Test: "

// Case is one test case.
type Case struct {
	Name string
	Line int

	Source string

	// TAC and Diagnostics hold the expectations. HasTAC and
	// HasDiagnostics tell an empty expectation from a missing one.
	TAC            []string
	HasTAC         bool
	Diagnostics    []string
	HasDiagnostics bool
}

// Extract parses a Markdown document and returns its test cases in order.
func Extract(markdown []byte) ([]Case, error) {
	doc := goldmark.New().Parser().Parse(text.NewReader(markdown))

	var cases []Case
	var current *Case

	err := ast.Walk(doc, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		switch n := node.(type) {
		case *ast.Heading:
			title := nodeText(n, markdown)
			if !strings.HasPrefix(title, headingPrefix) {
				return ast.WalkContinue, nil
			}
			if current != nil {
				if err := current.validate(); err != nil {
					return ast.WalkStop, err
				}
				cases = append(cases, *current)
			}
			current = &Case{
				Name: strings.TrimSpace(strings.TrimPrefix(title, headingPrefix)),
				Line: lineOf(n, markdown),
			}

		case *ast.FencedCodeBlock:
			lang := string(n.Language(markdown))
			if lang == "" {
				return ast.WalkContinue, nil
			}
			line := lineOf(n, markdown)
			if current == nil {
				return ast.WalkStop, fmt.Errorf("line %d: %w: %s fence outside of a test case", line, ErrFormat, lang)
			}
			body := strings.TrimRight(blockText(n, markdown), "\n")

			switch lang {
			case LangSource:
				if current.Source != "" {
					return ast.WalkStop, fmt.Errorf("line %d: %w: test %q has more than one %s fence", line, ErrFormat, current.Name, lang)
				}
				current.Source = body
			case LangTAC:
				current.TAC = splitLines(body)
				current.HasTAC = true
			case LangDiagnostics:
				current.Diagnostics = splitLines(body)
				current.HasDiagnostics = true
			default:
				return ast.WalkStop, fmt.Errorf("line %d: %w: unknown fence language %q in test %q", line, ErrFormat, lang, current.Name)
			}
		}
		return ast.WalkContinue, nil
	})
	if err != nil {
		return nil, err
	}

	if current != nil {
		if err := current.validate(); err != nil {
			return nil, err
		}
		cases = append(cases, *current)
	}
	return cases, nil
}

func (c *Case) validate() error {
	if c.Source == "" {
		return fmt.Errorf("line %d: %w: test %q has no %s fence", c.Line, ErrFormat, c.Name, LangSource)
	}
	if !c.HasTAC && !c.HasDiagnostics {
		return fmt.Errorf("line %d: %w: test %q has no expectation", c.Line, ErrFormat, c.Name)
	}
	return nil
}

func nodeText(node ast.Node, source []byte) string {
	var buf bytes.Buffer
	ast.Walk(node, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if t, ok := n.(*ast.Text); ok && entering {
			buf.Write(t.Segment.Value(source))
		}
		return ast.WalkContinue, nil
	})
	return buf.String()
}

func blockText(block *ast.FencedCodeBlock, source []byte) string {
	var buf bytes.Buffer
	lines := block.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		buf.Write(seg.Value(source))
	}
	return buf.String()
}

// splitLines splits body into trimmed, non-blank lines.
func splitLines(body string) []string {
	var out []string
	for _, l := range strings.Split(body, "\n") {
		if l = strings.TrimSpace(l); l != "" {
			out = append(out, l)
		}
	}
	return out
}

// lineOf returns the 1-based line a block node starts on. Headings carry
// their text as a line segment; fences carry their first content line,
// so a fence is reported at its opening marker.
func lineOf(node ast.Node, source []byte) int {
	lines := node.Lines()
	if lines.Len() == 0 {
		return 1
	}
	start := lines.At(0).Start
	line := 1 + bytes.Count(source[:min(start, len(source))], []byte("\n"))
	if _, ok := node.(*ast.FencedCodeBlock); ok && line > 1 {
		line--
	}
	return line
}
