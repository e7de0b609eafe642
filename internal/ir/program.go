package ir

import (
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrVerify is wrapped by every problem Program.Verify reports.
var ErrVerify = errors.New("invalid program")

// Program is a linear sequence of instructions.
type Program struct {
	Instructions []Instruction
}

func (p *Program) Emit(instr Instruction) {
	p.Instructions = append(p.Instructions, instr)
}

func (p *Program) Len() int {
	return len(p.Instructions)
}

// WriteTo writes the program one instruction per line.
func (p *Program) WriteTo(w io.Writer) (int64, error) {
	var total int64
	for _, instr := range p.Instructions {
		n, err := io.WriteString(w, instr.String()+"\n")
		total += int64(n)
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

func (p *Program) String() string {
	var sb strings.Builder
	p.WriteTo(&sb)
	return sb.String()
}

// Lines returns the text of each instruction.
func (p *Program) Lines() []string {
	lines := make([]string, len(p.Instructions))
	for i, instr := range p.Instructions {
		lines[i] = instr.String()
	}
	return lines
}

// Verify checks the program's structural invariants: every label is
// defined exactly once, every jump targets a defined label, and every
// name is declared by a VAR before it is read or written.
func (p *Program) Verify() []error {
	var errs []error
	fail := func(i int, format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: instruction %d: %s", ErrVerify, i, fmt.Sprintf(format, args...)))
	}

	labels := make(map[string]int)
	for i, instr := range p.Instructions {
		if l, ok := instr.(*Label); ok {
			if prev, dup := labels[l.Name]; dup {
				fail(i, "label %s already defined at instruction %d", l.Name, prev)
				continue
			}
			labels[l.Name] = i
		}
	}

	declared := make(map[string]bool)
	for i, instr := range p.Instructions {
		switch in := instr.(type) {
		case *Var:
			if declared[in.Name] {
				fail(i, "%s declared twice", in.Name)
			}
			declared[in.Name] = true
			continue
		case *IfFalse:
			if _, ok := labels[in.Target]; !ok {
				fail(i, "jump to undefined label %s", in.Target)
			}
		case *Goto:
			if _, ok := labels[in.Target]; !ok {
				fail(i, "jump to undefined label %s", in.Target)
			}
		}
		for _, op := range instr.Operands() {
			if IsName(op) && !declared[op] {
				fail(i, "%s read before declaration", op)
			}
		}
		if dest := instr.Result(); dest != "" && !declared[dest] {
			fail(i, "%s written before declaration", dest)
		}
	}
	return errs
}
