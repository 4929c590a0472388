package refvm

import (
	"errors"

	"github.com/ezrec/starjconf/translate"
)

var f = translate.From

var (
	// Machine errors
	ErrStackEmpty      = errors.New(f("stack empty"))
	ErrStackFull       = errors.New(f("stack full"))
	ErrPcRange         = errors.New(f("pc outside program"))
	ErrStepLimit       = errors.New(f("step limit exceeded"))
	ErrDivideByZero    = errors.New(f("divide by zero"))
	ErrRegisterInvalid = errors.New(f("register invalid"))

	// Assembler errors
	ErrLabelInvalid       = errors.New(f("label invalid"))
	ErrLabelDuplicate     = errors.New(f("label duplicated"))
	ErrOpcodeExtraArgs    = errors.New(f("excessive arguments"))
	ErrOpcodeValueMissing = errors.New(f("value missing"))
	ErrOperandInvalid     = errors.New(f("operand invalid"))
)

type ErrLabelMissing string

func (el ErrLabelMissing) Error() string {
	return f("label %v missing", string(el))
}

type ErrParseNumber string

func (err ErrParseNumber) Error() string {
	return f("'%v' is not a number", string(err))
}

type ErrParseValue string

func (err ErrParseValue) Error() string {
	return f("'%v' is not a value, register or label", string(err))
}

type ErrSyntax struct {
	LineNo int
	Line   string
	Err    error
}

func (err *ErrSyntax) Error() string {
	return f("line %d '%v' %v", err.LineNo, err.Line, err.Err)
}

func (err *ErrSyntax) Unwrap() error {
	return err.Err
}

// ErrExec locates a runtime failure.
type ErrExec struct {
	Pc     int
	LineNo int
	Err    error
}

func (err *ErrExec) Error() string {
	return f("pc %v (line %v) %v", err.Pc, err.LineNo, err.Err)
}

func (err *ErrExec) Unwrap() error {
	return err.Err
}
