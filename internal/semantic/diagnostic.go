package semantic

import (
	"errors"
	"fmt"

	"github.com/fis25/compiler/internal/lexer"
	"github.com/fis25/compiler/internal/symtab"
)

// Sentinel errors, one per diagnostic kind. A *Diagnostic unwraps to the
// sentinel of its kind, so callers can test with errors.Is.
var (
	ErrUndeclaredVariable   = errors.New("undeclared variable")
	ErrDuplicateInScope     = symtab.ErrDuplicateInScope
	ErrInvalidArrayAccess   = errors.New("invalid array access")
	ErrArrayIndexOutOfRange = errors.New("array index out of range")
	ErrNonNumericOperand    = errors.New("non-numeric operand")
	ErrIncompatibleAssign   = errors.New("incompatible assignment type")
	ErrInvalidConditionType = errors.New("invalid condition type")
	ErrUseBeforeInit        = errors.New("use before initialization")
	ErrNotAVariable         = errors.New("not a variable")
	ErrNotAFunction         = errors.New("not a function")
	ErrArgumentMismatch     = errors.New("argument mismatch")
)

// Kind classifies a diagnostic.
type Kind int

const (
	UndeclaredVariable Kind = iota
	DuplicateInScope
	InvalidArrayAccess
	ArrayIndexOutOfRange
	NonNumericOperand
	IncompatibleAssignment
	InvalidConditionType
	UseBeforeInit
	NotAVariable
	NotAFunction
	ArgumentMismatch
)

var kindErrors = [...]error{
	UndeclaredVariable:     ErrUndeclaredVariable,
	DuplicateInScope:       ErrDuplicateInScope,
	InvalidArrayAccess:     ErrInvalidArrayAccess,
	ArrayIndexOutOfRange:   ErrArrayIndexOutOfRange,
	NonNumericOperand:      ErrNonNumericOperand,
	IncompatibleAssignment: ErrIncompatibleAssign,
	InvalidConditionType:   ErrInvalidConditionType,
	UseBeforeInit:          ErrUseBeforeInit,
	NotAVariable:           ErrNotAVariable,
	NotAFunction:           ErrNotAFunction,
	ArgumentMismatch:       ErrArgumentMismatch,
}

// Err returns the sentinel error for the kind.
func (k Kind) Err() error {
	if k >= 0 && int(k) < len(kindErrors) {
		return kindErrors[k]
	}
	return errors.New("unknown diagnostic")
}

func (k Kind) String() string {
	return k.Err().Error()
}

type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
)

func (s Severity) String() string {
	if s == SeverityWarning {
		return "warning"
	}
	return "error"
}

// Diagnostic is one problem found in the source program.
type Diagnostic struct {
	Kind     Kind
	Severity Severity
	Pos      lexer.Position
	Message  string
}

func (d *Diagnostic) Error() string {
	if d.Pos.IsValid() {
		return fmt.Sprintf("%s: %s: %s", d.Pos, d.Severity, d.Message)
	}
	return fmt.Sprintf("%s: %s", d.Severity, d.Message)
}

func (d *Diagnostic) Unwrap() error {
	return d.Kind.Err()
}

// Result summarizes one analysis run.
type Result struct {
	// Diagnostics holds errors and warnings in the order they were found.
	Diagnostics  []*Diagnostic
	ErrorCount   int
	WarningCount int

	// Symbols is the number of symbols still live after analysis (the
	// global scope); Declared counts every successful declaration.
	Symbols  int
	Declared int
}

// OK reports whether the program has no errors. Warnings do not count.
func (r *Result) OK() bool {
	return r.ErrorCount == 0
}

// Errors returns the error-severity diagnostics.
func (r *Result) Errors() []*Diagnostic {
	return r.filter(SeverityError)
}

func (r *Result) Warnings() []*Diagnostic {
	return r.filter(SeverityWarning)
}

// Err joins the error-severity diagnostics, or returns nil if there are
// none.
func (r *Result) Err() error {
	var errs []error
	for _, d := range r.Errors() {
		errs = append(errs, d)
	}
	return errors.Join(errs...)
}

func (r *Result) filter(sev Severity) []*Diagnostic {
	var out []*Diagnostic
	for _, d := range r.Diagnostics {
		if d.Severity == sev {
			out = append(out, d)
		}
	}
	return out
}
